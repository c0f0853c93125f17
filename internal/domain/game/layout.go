package game

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// ManifestFilename is the NW.js application manifest.
	ManifestFilename = "package.json"
	// AssetsDirname holds the game's own assets and scripts.
	AssetsDirname = "www"
	// EntryPointFilename is the page NW.js loads first.
	EntryPointFilename = "index.html"
	// ScriptsDirname is the scripts folder inside AssetsDirname.
	ScriptsDirname = "js"
	// LibsDirname is the third-party library folder inside ScriptsDirname.
	LibsDirname = "libs"
	// LocalesDirname holds the runtime's per-locale resource packs.
	LocalesDirname = "locales"

	// DefaultLocale is the locale kept when pruning LocalesDirname.
	DefaultLocale = "en-US"
	// DefaultExecutableName is the name given to the runtime executable.
	DefaultExecutableName = "Game"

	// RuntimeDirMarker identifies the extracted runtime folder (case-insensitive).
	RuntimeDirMarker = "nwjs"

	exeSuffix = ".exe"

	holdingPrefix = "temp_"
	holdingSuffix = "_files"
	backupSuffix  = "_backup"
)

// PreserveSet lists the paths that belong to the game, in copy order.
//
//nolint:gochecknoglobals // Static ordered list.
var PreserveSet = []string{
	ManifestFilename,
	AssetsDirname,
	EntryPointFilename,
}

// CriticalSet lists the PreserveSet members that must be present in the
// holding area before anything in the game directory may be deleted.
//
//nolint:gochecknoglobals // Static ordered list.
var CriticalSet = []string{
	ManifestFilename,
	AssetsDirname,
}

// CleanupSet lists runtime files and folders a game does not need.
//
//nolint:gochecknoglobals // Static ordered list.
var CleanupSet = []string{
	// Development and debugging tools.
	"chromedriver",
	"chromedriver.exe",
	"nw_100_percent.pak",
	"nw_200_percent.pak",
	// Documentation and credits.
	"ACKNOWLEDGEMENTS",
	"AUTHORS",
	"CHANGELOG.md",
	"LICENSE",
	"README.md",
	"credits.html",
	// SDK leftovers.
	"payload",
	"debug.log",
	"pnacl",
	// Optional helpers and scale packs.
	"notification_helper.exe",
	"chrome_100_percent.pak",
	"chrome_200_percent.pak",
}

// LibScripts are the RPG Maker MV libraries under www/js/libs, in load order.
//
//nolint:gochecknoglobals // Static ordered list.
var LibScripts = []string{
	"pixi.js",
	"pixi-tilemap.js",
	"pixi-picture.js",
	"fpsmeter.js",
	"lz-string.js",
}

// CoreScripts are the RPG Maker MV core scripts under www/js, in load order.
//
//nolint:gochecknoglobals // Static ordered list.
var CoreScripts = []string{
	"rpg_core.js",
	"rpg_managers.js",
	"rpg_objects.js",
	"rpg_scenes.js",
	"rpg_sprites.js",
	"rpg_windows.js",
}

// TrailingScripts are always loaded last, in this order.
//
//nolint:gochecknoglobals // Static ordered list.
var TrailingScripts = []string{
	"plugins.js",
	"main.js",
}

// FallbackScript is referenced when no known script exists.
const FallbackScript = "main.js"

// HoldingDir returns the sibling directory used to stage game files across the wipe.
func HoldingDir(gameDir string) string {
	gameDir = filepath.Clean(gameDir)

	return filepath.Join(filepath.Dir(gameDir), holdingPrefix+filepath.Base(gameDir)+holdingSuffix)
}

// BackupDir returns the sibling directory a full backup is written to.
func BackupDir(gameDir string) string {
	gameDir = filepath.Clean(gameDir)

	return filepath.Join(filepath.Dir(gameDir), filepath.Base(gameDir)+backupSuffix)
}

// LocaleFiles returns the file names kept in LocalesDirname for locale.
func LocaleFiles(locale string) []string {
	return []string{locale + ".pak", locale + ".pak.info"}
}

// DeriveName turns a directory name into a manifest identifier:
// spaces become hyphens and letters are lower-cased.
func DeriveName(dirName string) string {
	return cases.Lower(language.Und).String(strings.ReplaceAll(dirName, " ", "-"))
}

// CheckExecutableName rejects an executable name that is not a plain file
// name or that would replace a PreserveSet member. A trailing ".exe" in any
// letter case is ignored.
func CheckExecutableName(name string) error {
	name = strings.TrimSpace(name)

	stem := name
	if strings.HasSuffix(strings.ToLower(stem), exeSuffix) {
		stem = stem[:len(stem)-len(exeSuffix)]
	}

	switch {
	case stem == "":
		return fmt.Errorf("%w: name is empty", ErrBadExecutableName)
	case strings.ContainsAny(name, `/\`), stem == ".", stem == "..":
		return fmt.Errorf("%w: %q must be a plain file name", ErrBadExecutableName, name)
	}

	for _, member := range PreserveSet {
		if strings.EqualFold(stem, member) || strings.EqualFold(name, member) {
			return fmt.Errorf("%w: %q would replace the game's %s", ErrBadExecutableName, name, member)
		}
	}

	return nil
}
