package validator

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/nwjs-swap/internal/domain/game"
)

// newGame creates a game folder named name with the given manifest and an empty www folder.
func newGame(t *testing.T, name, manifest string) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, game.AssetsDirname), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, game.ManifestFilename), []byte(manifest), 0o644))

	return dir
}

// TestValidateDerivesName fills a blank name and keeps every other field.
func TestValidateDerivesName(t *testing.T) {
	t.Parallel()

	original := `{"main":"www/index.html","name":"","window":{"title":"Ящик","width":816},"js-flags":"--expose-gc"}`
	dir := newGame(t, "My Great Game", original)

	report, err := Validate(context.Background(), dir)
	require.NoError(t, err)
	require.True(t, report.Fixed)
	require.Equal(t, "my-great-game", report.Name)

	data, err := os.ReadFile(filepath.Join(dir, game.ManifestFilename))
	require.NoError(t, err)
	require.Contains(t, string(data), "Ящик")

	var before, after map[string]any
	require.NoError(t, json.Unmarshal([]byte(original), &before))
	require.NoError(t, json.Unmarshal(data, &after))

	require.Equal(t, "my-great-game", after["name"])

	delete(before, "name")
	delete(after, "name")
	require.Equal(t, before, after)
}

// TestValidateIdempotent writes nothing on a second run.
func TestValidateIdempotent(t *testing.T) {
	t.Parallel()

	dir := newGame(t, "Quest", `{"main": "www/index.html"}`)
	path := filepath.Join(dir, game.ManifestFilename)

	first, err := Validate(context.Background(), dir)
	require.NoError(t, err)
	require.True(t, first.Fixed)

	fixed, err := os.ReadFile(path)
	require.NoError(t, err)

	second, err := Validate(context.Background(), dir)
	require.NoError(t, err)
	require.False(t, second.Fixed)
	require.Equal(t, "quest", second.Name)

	again, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, fixed, again)
}

// TestValidateKeepsPresentName leaves a manifest with a name untouched.
func TestValidateKeepsPresentName(t *testing.T) {
	t.Parallel()

	original := "{\n\"name\":   \"keep-me\",\"main\":\"www/index.html\"}\n"
	dir := newGame(t, "Other", original)

	report, err := Validate(context.Background(), dir)
	require.NoError(t, err)
	require.False(t, report.Fixed)
	require.Equal(t, "keep-me", report.Name)

	data, err := os.ReadFile(filepath.Join(dir, game.ManifestFilename))
	require.NoError(t, err)
	require.Equal(t, original, string(data))
}

// TestValidateLintWarnings reports schema issues without failing.
func TestValidateLintWarnings(t *testing.T) {
	t.Parallel()

	dir := newGame(t, "game", `{"name":"game","window":{"width":"wide"}}`)

	report, err := Validate(context.Background(), dir)
	require.NoError(t, err)
	require.NotEmpty(t, report.Issues)
}

// TestValidateErrors checks the failure kinds in order.
func TestValidateErrors(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	_, err := Validate(context.Background(), filepath.Join(root, "absent"))
	require.ErrorIs(t, err, game.ErrNotFound)

	noManifest := filepath.Join(root, "no-manifest")
	require.NoError(t, os.MkdirAll(filepath.Join(noManifest, game.AssetsDirname), 0o755))
	_, err = Validate(context.Background(), noManifest)
	require.ErrorIs(t, err, game.ErrInvalidTarget)

	noAssets := filepath.Join(root, "no-assets")
	require.NoError(t, os.MkdirAll(noAssets, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(noAssets, game.ManifestFilename), []byte(`{}`), 0o644))
	_, err = Validate(context.Background(), noAssets)
	require.ErrorIs(t, err, game.ErrInvalidTarget)

	assetsFile := filepath.Join(root, "assets-file")
	require.NoError(t, os.MkdirAll(assetsFile, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(assetsFile, game.ManifestFilename), []byte(`{}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(assetsFile, game.AssetsDirname), []byte("x"), 0o644))
	_, err = Validate(context.Background(), assetsFile)
	require.ErrorIs(t, err, game.ErrInvalidTarget)

	malformed := newGame(t, "malformed", `{"name":`)
	_, err = Validate(context.Background(), malformed)
	require.ErrorIs(t, err, game.ErrMalformedManifest)

	notObject := newGame(t, "array", `["name"]`)
	_, err = Validate(context.Background(), notObject)
	require.ErrorIs(t, err, game.ErrMalformedManifest)
}
