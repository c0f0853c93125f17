package swap

import (
	"bytes"
	"html/template"
	"os"
	"path"
	"path/filepath"

	"github.com/oshokin/nwjs-swap/internal/domain/game"
	"github.com/oshokin/nwjs-swap/internal/service/common"
)

const entryPointMode os.FileMode = 0o644

// entryPointTemplate mirrors the index.html RPG Maker MV deploys.
//
//nolint:gochecknoglobals // Parsed once.
var entryPointTemplate = template.Must(template.New(game.EntryPointFilename).Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="apple-mobile-web-app-capable" content="yes">
    <meta name="apple-mobile-web-app-status-bar-style" content="black-translucent">
    <meta name="viewport" content="user-scalable=no">
    <link rel="icon" href="icon/icon.png" type="image/png">
    <title>{{ .Title }}</title>
    <style type="text/css">
        body {
            margin: 0;
            padding: 0;
        }
        canvas {
            cursor: default;
        }
    </style>
</head>
<body style="background-color: black">
{{- range .Scripts }}
    <script type="text/javascript" src="{{ . }}"></script>
{{- end }}
</body>
</html>
`))

// entryPoint is the data rendered into entryPointTemplate.
type entryPoint struct {
	Title   string
	Scripts []string
}

// ScriptSources lists the known scripts present under assetsDir, as paths
// relative to assetsDir, in load order: libraries, core scripts, then
// plugins.js and main.js. When none exist the result is js/main.js alone.
func ScriptSources(assetsDir string) []string {
	scriptsDir := filepath.Join(assetsDir, game.ScriptsDirname)

	var sources []string

	for _, name := range game.LibScripts {
		if common.Exists(filepath.Join(scriptsDir, game.LibsDirname, name)) {
			sources = append(sources, path.Join(game.ScriptsDirname, game.LibsDirname, name))
		}
	}

	for _, group := range [][]string{game.CoreScripts, game.TrailingScripts} {
		for _, name := range group {
			if common.Exists(filepath.Join(scriptsDir, name)) {
				sources = append(sources, path.Join(game.ScriptsDirname, name))
			}
		}
	}

	if len(sources) == 0 {
		sources = []string{path.Join(game.ScriptsDirname, game.FallbackScript)}
	}

	return sources
}

// RenderEntryPoint renders an index.html that loads scripts in order.
func RenderEntryPoint(title string, scripts []string) ([]byte, error) {
	var buf bytes.Buffer

	if err := entryPointTemplate.Execute(&buf, entryPoint{Title: title, Scripts: scripts}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// WriteEntryPoint renders and writes an index.html to target.
func WriteEntryPoint(target, title string, scripts []string) error {
	contents, err := RenderEntryPoint(title, scripts)
	if err != nil {
		return err
	}

	return os.WriteFile(target, contents, entryPointMode)
}
