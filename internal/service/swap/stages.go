package swap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oshokin/nwjs-swap/internal/domain/game"
	"github.com/oshokin/nwjs-swap/internal/logger"
	"github.com/oshokin/nwjs-swap/internal/platform"
	"github.com/oshokin/nwjs-swap/internal/service/common"
	"github.com/oshokin/nwjs-swap/internal/service/validator"
)

// Stages are the steps around the destructive wipe. Run calls them in
// declaration order and never calls Wipe unless Preserve succeeded.
type Stages interface {
	// Preserve copies the game's own files from gameDir into holdingDir and
	// verifies the critical ones arrived.
	Preserve(ctx context.Context, gameDir, holdingDir string) error
	// Wipe removes every immediate child of gameDir and returns how many were removed.
	Wipe(ctx context.Context, gameDir string) (int, error)
	// Install copies every immediate child of runtimeDir into gameDir and
	// returns how many were copied.
	Install(ctx context.Context, runtimeDir, gameDir string) (int, error)
	// Restore copies the preserved files back into gameDir and removes holdingDir.
	Restore(ctx context.Context, holdingDir, gameDir string) error
}

// fsStages implements Stages on the local filesystem.
type fsStages struct {
	platform *platform.Platform
	// remove deletes one path; replaced in tests.
	remove func(path string) error
}

// NewStages returns the filesystem implementation of Stages.
func NewStages(p *platform.Platform) Stages { //nolint:ireturn // Callers swap implementations.
	return newFSStages(p)
}

func newFSStages(p *platform.Platform) *fsStages {
	if p == nil {
		p = platform.Detect()
	}

	return &fsStages{
		platform: p,
		remove:   common.Remove,
	}
}

// Preserve copies package.json, www and index.html into holdingDir.
func (s *fsStages) Preserve(ctx context.Context, gameDir, holdingDir string) error {
	if err := os.MkdirAll(holdingDir, 0o755); err != nil {
		return fmt.Errorf("create holding area: %w", err)
	}

	for _, name := range game.PreserveSet {
		source := filepath.Join(gameDir, name)
		if !common.Exists(source) {
			logger.WarnKV(ctx, "Game file not found, nothing to preserve", "file", name)
			continue
		}

		if err := common.Copy(source, filepath.Join(holdingDir, name)); err != nil {
			return fmt.Errorf("preserve %s: %w", name, err)
		}

		logger.DebugKV(ctx, "Preserved", "file", name)
	}

	for _, name := range game.CriticalSet {
		if !common.Exists(filepath.Join(holdingDir, name)) {
			return fmt.Errorf("%w: %s", game.ErrCriticalFileMissing, name)
		}
	}

	logger.InfoKV(ctx, "Game files preserved", "holding_area", holdingDir)

	return nil
}

// Wipe removes the children of gameDir one by one. A child that cannot be
// removed is logged and skipped.
func (s *fsStages) Wipe(ctx context.Context, gameDir string) (int, error) {
	entries, err := os.ReadDir(gameDir)
	if err != nil {
		return 0, fmt.Errorf("list game folder: %w", err)
	}

	removed := 0

	for _, entry := range entries {
		if err = s.remove(filepath.Join(gameDir, entry.Name())); err != nil {
			logger.WarnKV(ctx, "Could not remove", "item", entry.Name(), "error", err)
			continue
		}

		removed++
	}

	logger.InfoKV(ctx, "Game folder emptied", "removed", removed, "total", len(entries))

	return removed, nil
}

// Install copies the runtime into gameDir, stopping at the first failed copy.
func (s *fsStages) Install(ctx context.Context, runtimeDir, gameDir string) (int, error) {
	entries, err := os.ReadDir(runtimeDir)
	if err != nil {
		return 0, fmt.Errorf("list runtime folder: %w", err)
	}

	copied := 0

	for _, entry := range entries {
		target := filepath.Join(gameDir, entry.Name())

		if err = common.Copy(filepath.Join(runtimeDir, entry.Name()), target); err != nil {
			return copied, fmt.Errorf("install %s: %w", entry.Name(), err)
		}

		copied++

		if entry.Type().IsRegular() && s.platform.IsRuntimeBinary(entry.Name()) {
			if err = s.platform.MarkExecutable(target); err != nil {
				logger.WarnKV(ctx, "Could not mark runtime executable", "file", entry.Name(), "error", err)
			}
		}

		logger.DebugKV(ctx, "Installed", "item", entry.Name())
	}

	logger.InfoKV(ctx, "Runtime installed", "copied", copied)

	return copied, nil
}

// Restore copies the preserved files back over whatever the runtime put
// there, rebuilds a missing index.html, re-fixes package.json and removes
// the holding area.
func (s *fsStages) Restore(ctx context.Context, holdingDir, gameDir string) error {
	for _, name := range game.PreserveSet {
		source := filepath.Join(holdingDir, name)
		if !common.Exists(source) {
			continue
		}

		target := filepath.Join(gameDir, name)

		if err := s.remove(target); err != nil {
			return fmt.Errorf("clear %s: %w", name, err)
		}

		if err := common.Copy(source, target); err != nil {
			return fmt.Errorf("restore %s: %w", name, err)
		}

		logger.DebugKV(ctx, "Restored", "file", name)
	}

	if err := s.ensureEntryPoint(ctx, holdingDir, gameDir); err != nil {
		return err
	}

	if _, err := validator.FixManifest(ctx, gameDir); err != nil {
		return fmt.Errorf("re-check manifest: %w", err)
	}

	logger.Info(ctx, "Game files restored")

	if err := s.remove(holdingDir); err != nil {
		logger.WarnKV(ctx, "Could not remove holding area", "path", holdingDir, "error", err)
	}

	return nil
}

// ensureEntryPoint provides index.html when the game had none of its own.
func (s *fsStages) ensureEntryPoint(ctx context.Context, holdingDir, gameDir string) error {
	if common.Exists(filepath.Join(holdingDir, game.EntryPointFilename)) {
		return nil
	}

	target := filepath.Join(gameDir, game.EntryPointFilename)
	nested := filepath.Join(gameDir, game.AssetsDirname, game.EntryPointFilename)

	if common.Exists(nested) {
		if err := common.CopyFile(nested, target); err != nil {
			return fmt.Errorf("copy %s: %w", game.EntryPointFilename, err)
		}

		logger.InfoKV(ctx, "Copied entry point from assets", "from", nested)

		return nil
	}

	logger.Warn(ctx, "index.html not found, creating a basic one")

	scripts := ScriptSources(filepath.Join(gameDir, game.AssetsDirname))

	if err := WriteEntryPoint(target, filepath.Base(gameDir), scripts); err != nil {
		return fmt.Errorf("create %s: %w", game.EntryPointFilename, err)
	}

	logger.InfoKV(ctx, "Created entry point", "scripts", len(scripts))

	return nil
}
