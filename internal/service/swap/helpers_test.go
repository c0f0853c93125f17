package swap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/oshokin/nwjs-swap/internal/logger"
)

// writeFile creates path with its parent directories.
func writeFile(t *testing.T, path, contents string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

// readFile returns the contents of path.
func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(data)
}

// newGameDir creates a minimal game folder named name under a fresh temp folder.
func newGameDir(t *testing.T, name string) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), name)
	writeFile(t, filepath.Join(dir, "package.json"), `{"name":"game","main":"index.html"}`)
	writeFile(t, filepath.Join(dir, "www", "js", "main.js"), "main")
	writeFile(t, filepath.Join(dir, "index.html"), "<html></html>")

	return dir
}

// observedContext returns a context whose logger records warnings and above.
func observedContext() (context.Context, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.WarnLevel)

	return logger.ToContext(context.Background(), zap.New(core).Sugar()), logs
}
