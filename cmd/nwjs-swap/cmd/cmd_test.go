package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// execute runs rootCmd with args and returns its standard output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// Flag variables are package globals; start every run from the defaults.
	configPath, gamePath, nwjsVersion, nwjsPath, executableName = "", "", "", "", ""
	noSDK, noBackup, verbose, interactive, force = false, false, false, false, false

	var out bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()

	return out.String(), err
}

// TestConfigInitAndURL writes default settings and builds a URL from them.
func TestConfigInitAndURL(t *testing.T) {
	settingsPath := filepath.Join(t.TempDir(), "nwjs-swap.yaml")

	out, err := execute(t, "config", "init", "--config", settingsPath)
	require.NoError(t, err)
	require.Contains(t, out, settingsPath)

	_, err = execute(t, "config", "init", "--config", settingsPath)
	require.ErrorIs(t, err, errSettingsExist)

	_, err = execute(t, "config", "init", "--config", settingsPath, "--force")
	require.NoError(t, err)

	out, err = execute(t, "url", "--config", settingsPath, "--os", "linux", "--arch", "x86_64")
	require.NoError(t, err)
	require.Equal(t, "https://dl.nwjs.io/v0.49.2/nwjs-sdk-v0.49.2-linux-x64.tar.gz\n", out)

	out, err = execute(t, "url", "--config", settingsPath, "--os", "windows", "--arch", "x86",
		"--nwjs-version", "0.72.0", "--no-sdk")
	require.NoError(t, err)
	require.Equal(t, "https://dl.nwjs.io/v0.72.0/nwjs-v0.72.0-win-ia32.zip\n", out)

	_, err = execute(t, "url", "--config", settingsPath, "--nwjs-version", "newest")
	require.Error(t, err)
}

// TestRootRequiresGamePathWithoutTerminal refuses to prompt when stdin is not a terminal.
func TestRootRequiresGamePathWithoutTerminal(t *testing.T) {
	if stdinIsTerminal() {
		t.Skip("stdin is a terminal")
	}

	settingsPath := filepath.Join(t.TempDir(), "nwjs-swap.yaml")

	_, err := execute(t, "config", "init", "--config", settingsPath)
	require.NoError(t, err)

	_, err = execute(t, "--config", settingsPath)
	require.ErrorIs(t, err, errGamePathRequired)
}

// TestRootRejectsBadVersion checks --nwjs-version before anything else runs.
func TestRootRejectsBadVersion(t *testing.T) {
	settingsPath := filepath.Join(t.TempDir(), "nwjs-swap.yaml")

	_, err := execute(t, "config", "init", "--config", settingsPath)
	require.NoError(t, err)

	_, err = execute(t, "--config", settingsPath, "--game-path", t.TempDir(), "--nwjs-version", "newest")
	require.ErrorContains(t, err, "runtime version must look like")
}
