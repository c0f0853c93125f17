package swap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/nwjs-swap/internal/domain/game"
	"github.com/oshokin/nwjs-swap/internal/platform"
)

// TestRunWithLocalRuntime swaps in a local runtime and reports the result.
func TestRunWithLocalRuntime(t *testing.T) {
	t.Parallel()

	gameDir := newGameDir(t, "Hero Quest")
	writeFile(t, filepath.Join(gameDir, "nw"), "old-runtime")
	writeFile(t, filepath.Join(gameDir, "old-runtime.dll"), "old")

	runtimeDir := t.TempDir()
	writeFile(t, filepath.Join(runtimeDir, "nw"), "new-runtime")
	writeFile(t, filepath.Join(runtimeDir, "README.md"), "readme")
	writeFile(t, filepath.Join(runtimeDir, "locales", "en-US.pak"), "en")
	writeFile(t, filepath.Join(runtimeDir, "locales", "ru.pak"), "ru")

	result, err := Run(context.Background(), &Options{
		GameDir:        gameDir,
		RuntimeDir:     runtimeDir,
		ExecutableName: "HeroQuest",
		Backup:         true,
		Shortcut:       true,
		Platform:       platform.For("linux", "x86_64"),
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.RunID)
	require.Equal(t, filepath.Join(gameDir, "HeroQuest"), result.Executable)
	require.Equal(t, "new-runtime", readFile(t, result.Executable))
	require.Equal(t, 5, result.Removed)
	require.Equal(t, 3, result.Installed)
	require.Equal(t, 2, result.Cleaned)
	require.False(t, result.Downloaded)
	require.Empty(t, result.ShortcutPath)

	require.NoFileExists(t, filepath.Join(gameDir, "old-runtime.dll"))
	require.NoFileExists(t, filepath.Join(gameDir, "README.md"))
	require.NoFileExists(t, filepath.Join(gameDir, "locales", "ru.pak"))
	require.Equal(t, "<html></html>", readFile(t, filepath.Join(gameDir, "index.html")))
	require.NoDirExists(t, game.HoldingDir(gameDir))

	require.Equal(t, game.BackupDir(gameDir), result.BackupDir)
	require.Equal(t, "old-runtime", readFile(t, filepath.Join(result.BackupDir, "nw")))
}

// TestRunInvalidTarget fails validation without touching anything.
func TestRunInvalidTarget(t *testing.T) {
	t.Parallel()

	_, err := Run(context.Background(), &Options{
		GameDir:  filepath.Join(t.TempDir(), "missing"),
		Platform: platform.For("linux", "x86_64"),
	})
	require.ErrorIs(t, err, game.ErrNotFound)
}

// TestRunExtraCleanup removes names added through ExtraCleanup.
func TestRunExtraCleanup(t *testing.T) {
	t.Parallel()

	gameDir := newGameDir(t, "game")

	runtimeDir := t.TempDir()
	writeFile(t, filepath.Join(runtimeDir, "nw"), "nw")
	writeFile(t, filepath.Join(runtimeDir, "swiftshader", "libEGL.so"), "egl")

	result, err := Run(context.Background(), &Options{
		GameDir:        gameDir,
		RuntimeDir:     runtimeDir,
		ExecutableName: "Game",
		ExtraCleanup:   []string{"swiftshader"},
		Platform:       platform.For("linux", "x86_64"),
	})
	require.NoError(t, err)
	require.Equal(t, 1, result.Cleaned)
	require.NoDirExists(t, filepath.Join(gameDir, "swiftshader"))
}

// TestRunRejectsUnsafeExecutableName stops before touching the game folder.
func TestRunRejectsUnsafeExecutableName(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"www", "../outside"} {
		gameDir := newGameDir(t, "game")

		runtimeDir := t.TempDir()
		writeFile(t, filepath.Join(runtimeDir, "nw"), "nw")

		_, err := Run(context.Background(), &Options{
			GameDir:        gameDir,
			RuntimeDir:     runtimeDir,
			ExecutableName: name,
			Platform:       platform.For("linux", "x86_64"),
		})
		require.ErrorIs(t, err, game.ErrBadExecutableName, name)
		require.Equal(t, "main", readFile(t, filepath.Join(gameDir, "www", "js", "main.js")), name)
		require.NoDirExists(t, filepath.Join(gameDir, ".www.old"), name)
		require.NoFileExists(t, filepath.Join(gameDir, "nw"), name)
		require.NoFileExists(t, filepath.Join(filepath.Dir(gameDir), "outside"), name)
	}
}

// TestRunKeepsLeftoverHoldingArea refuses to run while an earlier holding area exists.
func TestRunKeepsLeftoverHoldingArea(t *testing.T) {
	t.Parallel()

	gameDir := newGameDir(t, "game")
	holding := game.HoldingDir(gameDir)
	writeFile(t, filepath.Join(holding, "index.html"), "<html>only copy</html>")

	runtimeDir := t.TempDir()
	writeFile(t, filepath.Join(runtimeDir, "nw"), "nw")

	_, err := Run(context.Background(), &Options{
		GameDir:    gameDir,
		RuntimeDir: runtimeDir,
		Backup:     true,
		Platform:   platform.For("linux", "x86_64"),
	})
	require.ErrorIs(t, err, errStaleHoldingArea)
	require.ErrorContains(t, err, holding)
	require.Equal(t, "<html>only copy</html>", readFile(t, filepath.Join(holding, "index.html")))
	require.NoFileExists(t, filepath.Join(gameDir, "nw"))

	_, statErr := os.Stat(game.BackupDir(gameDir))
	require.True(t, os.IsNotExist(statErr))
}
