package prompt

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// script joins answer lines into prompter input.
func script(lines ...string) *strings.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

// TestAskDefaults accepts every default after retrying a bad path.
func TestAskDefaults(t *testing.T) {
	t.Parallel()

	gameDir := t.TempDir()

	var out bytes.Buffer

	p := New(script(
		"",
		filepath.Join(gameDir, "missing"),
		`"`+gameDir+`"`,
		"",
		"",
		"",
		"",
		"",
		"",
	), &out)

	answers, err := p.Ask(context.Background(), Answers{SDK: true, Backup: true})
	require.NoError(t, err)
	require.Equal(t, &Answers{
		GamePath:       gameDir,
		ExecutableName: "Game",
		Version:        "v0.49.2",
		SDK:            true,
		Backup:         true,
	}, answers)
	require.Contains(t, out.String(), "Folder not found")
	require.Contains(t, out.String(), "Please enter a path")
}

// TestAskCustomAnswers covers a custom version, flags, rejected executable names and the .exe suffix.
func TestAskCustomAnswers(t *testing.T) {
	t.Parallel()

	gameDir := t.TempDir()
	runtimeDir := filepath.Join(t.TempDir(), "nwjs")
	require.NoError(t, os.Mkdir(runtimeDir, 0o755))

	p := New(script(
		gameDir,
		"www",
		"../outside",
		"Adventure.exe",
		"'"+runtimeDir+"'",
		"9",
		"5",
		"latest",
		"5",
		"0.100.1",
		"n",
		"no",
		"y",
	), new(bytes.Buffer))

	answers, err := p.Ask(context.Background(), Answers{SDK: true, Backup: true})
	require.NoError(t, err)
	require.Equal(t, &Answers{
		GamePath:       gameDir,
		ExecutableName: "Adventure",
		RuntimePath:    runtimeDir,
		Version:        "v0.100.1",
		SDK:            false,
		Backup:         false,
		Verbose:        true,
	}, answers)
}

// TestAskMenuChoice selects a listed version.
func TestAskMenuChoice(t *testing.T) {
	t.Parallel()

	p := New(script(t.TempDir(), "", "", "3", "", "", ""), new(bytes.Buffer))

	answers, err := p.Ask(context.Background(), Answers{})
	require.NoError(t, err)
	require.Equal(t, "v0.72.0", answers.Version)
	require.False(t, answers.SDK)
}

// TestAskEOF aborts when input ends early.
func TestAskEOF(t *testing.T) {
	t.Parallel()

	p := New(strings.NewReader(t.TempDir()+"\n"), new(bytes.Buffer))

	_, err := p.Ask(context.Background(), Answers{})
	require.ErrorIs(t, err, ErrAborted)
}

// TestConfirm prints the summary and reads the answer.
func TestConfirm(t *testing.T) {
	t.Parallel()

	answers := &Answers{GamePath: "/games/quest", ExecutableName: "Quest", Version: "v0.49.2", SDK: true}

	var out bytes.Buffer

	proceed, err := New(script("n"), &out).Confirm(context.Background(), answers)
	require.NoError(t, err)
	require.False(t, proceed)
	require.Contains(t, out.String(), "/games/quest")
	require.Contains(t, out.String(), "SDK")

	proceed, err = New(script(""), new(bytes.Buffer)).Confirm(context.Background(), answers)
	require.NoError(t, err)
	require.True(t, proceed)
}
