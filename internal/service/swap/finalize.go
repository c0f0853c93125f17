package swap

import (
	"context"
	"crypto"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	goupdate "github.com/doitdistributed/go-update"

	"github.com/oshokin/nwjs-swap/internal/domain/game"
	"github.com/oshokin/nwjs-swap/internal/logger"
	"github.com/oshokin/nwjs-swap/internal/platform"
	"github.com/oshokin/nwjs-swap/internal/service/common"
)

// errDestinationIsDir is returned when the executable name is taken by a directory.
var errDestinationIsDir = errors.New("executable destination is a directory")

// Finalizer renames the runtime executable and strips unneeded runtime files.
type Finalizer struct {
	// Platform selects candidate names and the executable suffix.
	Platform *platform.Platform
	// ExecutableName is the requested executable name, with or without ".exe".
	ExecutableName string
	// CleanupSet lists names removed from the game folder.
	CleanupSet []string
	// KeepLocale is the only locale left in the locales folder.
	KeepLocale string

	// remove deletes one path; replaced in tests.
	remove func(path string) error
}

// Finalized describes what Finalize did.
type Finalized struct {
	// Executable is the renamed executable, empty when none was found.
	Executable string
	// Source is the runtime executable that was renamed.
	Source string
	// Cleaned counts removed cleanup-set entries and locale files.
	Cleaned int
}

// Finalize renames the first runtime executable found, then removes the
// cleanup set and prunes locales. Cleanup runs even when no executable is
// found; the game.ErrExecutableNotFound error is returned afterwards.
func (f *Finalizer) Finalize(ctx context.Context, gameDir string) (*Finalized, error) {
	ctx = logger.WithName(ctx, "finalizer")

	if f.remove == nil {
		f.remove = common.Remove
	}

	result := new(Finalized)

	executable, source, renameErr := f.renameExecutable(ctx, gameDir)
	if renameErr == nil {
		result.Executable = executable
		result.Source = source
	}

	result.Cleaned = f.removeCleanupSet(ctx, gameDir) + f.pruneLocales(ctx, gameDir)

	if result.Cleaned > 0 {
		logger.InfoKV(ctx, "Removed unneeded runtime files", "count", result.Cleaned)
	} else {
		logger.Info(ctx, "No unneeded runtime files to remove")
	}

	return result, renameErr
}

func (f *Finalizer) renameExecutable(ctx context.Context, gameDir string) (string, string, error) {
	name := f.ExecutableName
	if platform.TrimExecutableSuffix(name) == "" {
		name = game.DefaultExecutableName
	}

	if err := game.CheckExecutableName(name); err != nil {
		return "", "", err
	}

	destination := filepath.Join(gameDir, f.Platform.ExecutableName(name))
	if info, err := os.Lstat(destination); err == nil && info.IsDir() {
		return "", "", fmt.Errorf("%w: %s is a directory", errDestinationIsDir, destination)
	}

	candidates := f.Platform.ExecutableCandidates()

	for _, candidate := range candidates {
		source := filepath.Join(gameDir, candidate)

		info, err := os.Stat(source)
		if err != nil || info.IsDir() {
			continue
		}

		if source == destination {
			logger.InfoKV(ctx, "Executable already has the requested name", "path", destination)

			return destination, source, f.Platform.MarkExecutable(destination)
		}

		// Case-insensitive filesystems see "nw.exe" and "NW.exe" as one file.
		if destInfo, statErr := os.Stat(destination); statErr == nil && os.SameFile(info, destInfo) {
			if err = os.Rename(source, destination); err != nil {
				return "", "", fmt.Errorf("rename %s: %w", candidate, err)
			}

			return destination, source, nil
		}

		if err = replaceFile(source, destination); err != nil {
			return "", "", fmt.Errorf("rename %s: %w", candidate, err)
		}

		logger.InfoKV(ctx, "Renamed executable", "from", candidate, "to", filepath.Base(destination))

		return destination, source, nil
	}

	logger.ErrorKV(ctx, "Runtime executable not found", "looked_for", candidates)

	return "", "", fmt.Errorf("%w: looked for %v", game.ErrExecutableNotFound, candidates)
}

// replaceFile atomically writes source over destination through go-update
// and removes source. go-update deletes the displaced destination itself.
func replaceFile(source, destination string) error {
	checksum, err := fileChecksum(source)
	if err != nil {
		return err
	}

	// go-update swaps the target aside, so it has to exist.
	if _, err = os.Stat(destination); os.IsNotExist(err) {
		created, createErr := os.Create(filepath.Clean(destination))
		if createErr != nil {
			return createErr
		}

		if err = created.Close(); err != nil {
			return err
		}
	}

	input, err := os.Open(filepath.Clean(source))
	if err != nil {
		return err
	}

	err = goupdate.Apply(input, goupdate.Options{
		TargetPath: destination,
		TargetMode: platform.ExecutableMode,
		Checksum:   checksum,
		Hash:       crypto.SHA256,
	})

	_ = input.Close()

	if err != nil {
		return err
	}

	return os.Remove(source)
}

func fileChecksum(path string) ([]byte, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = file.Close()
	}()

	hash := sha256.New()
	if _, err = io.Copy(hash, file); err != nil {
		return nil, err
	}

	return hash.Sum(nil), nil
}

func (f *Finalizer) removeCleanupSet(ctx context.Context, gameDir string) int {
	removed := 0

	for _, name := range f.CleanupSet {
		path := filepath.Join(gameDir, name)
		if !common.Exists(path) {
			continue
		}

		if err := f.remove(path); err != nil {
			logger.WarnKV(ctx, "Could not remove", "item", name, "error", err)
			continue
		}

		removed++

		logger.DebugKV(ctx, "Removed", "item", name)
	}

	return removed
}

// pruneLocales removes every regular file in the locales folder except the
// kept locale's pack and its info file.
func (f *Finalizer) pruneLocales(ctx context.Context, gameDir string) int {
	localesDir := filepath.Join(gameDir, game.LocalesDirname)
	if !common.IsDir(localesDir) {
		return 0
	}

	locale := f.KeepLocale
	if locale == "" {
		locale = game.DefaultLocale
	}

	keep := make(map[string]struct{}, 2)
	for _, name := range game.LocaleFiles(locale) {
		keep[name] = struct{}{}
	}

	entries, err := os.ReadDir(localesDir)
	if err != nil {
		logger.WarnKV(ctx, "Could not list locales", "error", err)
		return 0
	}

	removed := 0

	for _, entry := range entries {
		if _, kept := keep[entry.Name()]; kept || !entry.Type().IsRegular() {
			continue
		}

		if err = f.remove(filepath.Join(localesDir, entry.Name())); err != nil {
			logger.WarnKV(ctx, "Could not remove locale", "file", entry.Name(), "error", err)
			continue
		}

		removed++

		logger.DebugKV(ctx, "Removed locale", "file", entry.Name())
	}

	return removed
}
