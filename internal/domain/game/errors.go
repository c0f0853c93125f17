package game

import "errors"

// Error kinds of a runtime swap. Steps wrap them with context;
// callers classify with errors.Is.
var (
	// ErrNotFound means the game directory does not exist.
	ErrNotFound = errors.New("game directory not found")
	// ErrInvalidTarget means the directory lacks package.json or www.
	ErrInvalidTarget = errors.New("not an RPG Maker MV game directory")
	// ErrMalformedManifest means package.json could not be parsed.
	ErrMalformedManifest = errors.New("malformed package.json")
	// ErrDownloadFailed means the runtime archive could not be downloaded.
	ErrDownloadFailed = errors.New("runtime download failed")
	// ErrExtraction means the archive could not be unpacked or holds no runtime folder.
	ErrExtraction = errors.New("runtime extraction failed")
	// ErrCriticalFileMissing means the holding area is incomplete; nothing was deleted.
	ErrCriticalFileMissing = errors.New("critical game files were not saved")
	// ErrExecutableNotFound means no runtime executable exists after installation.
	ErrExecutableNotFound = errors.New("runtime executable not found")
	// ErrBadExecutableName means the requested executable name is not a plain
	// file name inside the game folder or collides with a game file.
	ErrBadExecutableName = errors.New("invalid executable name")
)
