package validator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oshokin/nwjs-swap/internal/domain/game"
	"github.com/oshokin/nwjs-swap/internal/logger"
	"github.com/oshokin/nwjs-swap/internal/repository/manifest"
)

const nameKey = "name"

// Report describes a validated game folder.
type Report struct {
	// Dir is the absolute game folder.
	Dir string
	// ManifestPath is the package.json location.
	ManifestPath string
	// Name is the manifest name after fixing.
	Name string
	// Fixed reports whether package.json was rewritten.
	Fixed bool
	// Issues are schema warnings about the manifest; they never fail validation.
	Issues []manifest.Issue
}

// Validate checks the folder shape in order (folder, package.json, www) and
// then fixes the manifest.
func Validate(ctx context.Context, dir string) (*Report, error) {
	ctx = logger.WithName(ctx, "validator")

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", dir, err)
	}

	info, err := os.Stat(absDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", game.ErrNotFound, absDir)
		}

		return nil, fmt.Errorf("inspect %s: %w", absDir, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a folder", game.ErrInvalidTarget, absDir)
	}

	manifestPath := filepath.Join(absDir, game.ManifestFilename)
	if _, err = os.Stat(manifestPath); err != nil {
		return nil, fmt.Errorf("%w: %s is missing", game.ErrInvalidTarget, game.ManifestFilename)
	}

	assets, err := os.Stat(filepath.Join(absDir, game.AssetsDirname))
	if err != nil || !assets.IsDir() {
		return nil, fmt.Errorf("%w: %s folder is missing", game.ErrInvalidTarget, game.AssetsDirname)
	}

	logger.DebugKV(ctx, "Game folder looks valid", "path", absDir)

	return FixManifest(ctx, absDir)
}

// FixManifest derives a name for a manifest whose name is blank and saves the
// document only when it changed. A second call on a fixed manifest writes nothing.
func FixManifest(ctx context.Context, dir string) (*Report, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", dir, err)
	}

	repo := manifest.NewFileRepository(absDir)

	doc, err := repo.Load(ctx)
	if err != nil {
		if errors.Is(err, manifest.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s is missing", game.ErrInvalidTarget, game.ManifestFilename)
		}

		return nil, err
	}

	report := &Report{
		Dir:          absDir,
		ManifestPath: repo.Path(),
	}

	if doc.IsBlank(nameKey) {
		derived := game.DeriveName(filepath.Base(absDir))

		if err = doc.SetString(nameKey, derived); err != nil {
			return nil, fmt.Errorf("set manifest name: %w", err)
		}

		if err = repo.Save(ctx, doc); err != nil {
			return nil, err
		}

		report.Fixed = true

		logger.InfoKV(ctx, "Added missing name to package.json", "name", derived)
	}

	report.Name, _ = doc.String(nameKey)
	report.Issues = lint(ctx, doc)

	return report, nil
}

// lint logs schema problems as warnings.
func lint(ctx context.Context, doc *manifest.Document) []manifest.Issue {
	issues, err := manifest.Lint(doc)
	if err != nil {
		logger.WarnKV(ctx, "Could not check package.json against the schema", "error", err)
		return nil
	}

	for _, issue := range issues {
		logger.WarnKV(ctx, "Suspicious package.json field", "field", issue.Path, "problem", issue.Message)
	}

	return issues
}
