package swap

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/nwjs-swap/internal/domain/game"
)

// TestBackupCopiesOnce creates the backup and reuses it on the next call.
func TestBackupCopiesOnce(t *testing.T) {
	t.Parallel()

	gameDir := newGameDir(t, "My Game")

	backupDir, err := Backup(context.Background(), gameDir)
	require.NoError(t, err)
	require.Equal(t, game.BackupDir(gameDir), backupDir)
	require.Equal(t, filepath.Join(filepath.Dir(gameDir), "My Game_backup"), backupDir)
	require.Equal(t, "main", readFile(t, filepath.Join(backupDir, "www", "js", "main.js")))

	writeFile(t, filepath.Join(gameDir, "www", "js", "main.js"), "changed")

	again, err := Backup(context.Background(), gameDir)
	require.NoError(t, err)
	require.Equal(t, backupDir, again)
	require.Equal(t, "main", readFile(t, filepath.Join(backupDir, "www", "js", "main.js")))
}
