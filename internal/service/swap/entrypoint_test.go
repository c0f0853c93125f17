package swap

import (
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

// scriptTag matches the src of every script tag.
var scriptTag = regexp.MustCompile(`<script type="text/javascript" src="([^"]+)"></script>`)

// TestEntryPointPluginsThenMain keeps plugins.js before main.js when nothing else is known.
func TestEntryPointPluginsThenMain(t *testing.T) {
	t.Parallel()

	assets := t.TempDir()
	writeFile(t, filepath.Join(assets, "js", "main.js"), "main")
	writeFile(t, filepath.Join(assets, "js", "plugins.js"), "plugins")

	page, err := RenderEntryPoint("Game", ScriptSources(assets))
	require.NoError(t, err)

	matches := scriptTag.FindAllStringSubmatch(string(page), -1)
	require.Len(t, matches, 2)
	require.Equal(t, "js/plugins.js", matches[0][1])
	require.Equal(t, "js/main.js", matches[1][1])
}

// TestScriptSourcesOrder lists libraries, then core scripts, then plugins and main.
func TestScriptSourcesOrder(t *testing.T) {
	t.Parallel()

	assets := t.TempDir()
	for _, name := range []string{
		"js/main.js",
		"js/rpg_windows.js",
		"js/rpg_core.js",
		"js/plugins.js",
		"js/libs/lz-string.js",
		"js/libs/pixi.js",
		"js/libs/unknown.js",
		"js/custom.js",
	} {
		writeFile(t, filepath.Join(assets, filepath.FromSlash(name)), "x")
	}

	require.Equal(t, []string{
		"js/libs/pixi.js",
		"js/libs/lz-string.js",
		"js/rpg_core.js",
		"js/rpg_windows.js",
		"js/plugins.js",
		"js/main.js",
	}, ScriptSources(assets))
}

// TestScriptSourcesFallback references main.js when no known script exists.
func TestScriptSourcesFallback(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{"js/main.js"}, ScriptSources(t.TempDir()))
}

// TestRenderEntryPointEscapesTitle escapes markup in the folder name.
func TestRenderEntryPointEscapesTitle(t *testing.T) {
	t.Parallel()

	page, err := RenderEntryPoint("<Quest>", []string{"js/main.js"})
	require.NoError(t, err)
	require.Contains(t, string(page), "<title>&lt;Quest&gt;</title>")
}
