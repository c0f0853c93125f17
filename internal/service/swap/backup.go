package swap

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/oshokin/nwjs-swap/internal/domain/game"
	"github.com/oshokin/nwjs-swap/internal/logger"
	"github.com/oshokin/nwjs-swap/internal/service/common"
)

// Backup copies gameDir to its sibling backup folder and returns the folder.
// An existing backup is kept as it is and reused.
func Backup(ctx context.Context, gameDir string) (string, error) {
	backupDir := game.BackupDir(gameDir)

	if common.Exists(backupDir) {
		logger.InfoKV(ctx, "Backup already exists, keeping it", "path", backupDir)

		return backupDir, nil
	}

	logger.InfoKV(ctx, "Creating backup", "path", backupDir)

	if err := common.CopyDir(gameDir, backupDir); err != nil {
		// A partial copy would be reused by the next run.
		_ = common.Remove(backupDir)

		return "", fmt.Errorf("backup %s: %w", gameDir, err)
	}

	if size, err := common.TreeSize(backupDir); err == nil {
		logger.InfoKV(ctx, "Backup created", "path", backupDir,
			"size", humanize.Bytes(uint64(size))) //nolint:gosec // Sizes are never negative.
	}

	return backupDir, nil
}
