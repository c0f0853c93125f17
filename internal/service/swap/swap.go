package swap

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/oshokin/nwjs-swap/internal/domain/game"
	"github.com/oshokin/nwjs-swap/internal/logger"
	"github.com/oshokin/nwjs-swap/internal/platform"
	"github.com/oshokin/nwjs-swap/internal/service/common"
	"github.com/oshokin/nwjs-swap/internal/service/fetcher"
	"github.com/oshokin/nwjs-swap/internal/service/validator"
)

// errStaleHoldingArea is returned when a holding area from an earlier run exists.
var errStaleHoldingArea = errors.New("holding area from an earlier run exists")

// Options are inputs accepted by the swap entry point.
type Options struct {
	// GameDir is the game folder to update.
	GameDir string
	// RuntimeDir is an NW.js folder to install instead of downloading one.
	RuntimeDir string
	// BaseURL is the download host; empty means the official one.
	BaseURL string
	// Version is the NW.js release to download.
	Version string
	// SDK selects the SDK flavor.
	SDK bool
	// ExecutableName is the name the runtime executable gets.
	ExecutableName string
	// Backup copies the game folder aside before any change.
	Backup bool
	// Shortcut creates a desktop shortcut where the platform supports it.
	Shortcut bool
	// KeepLocale is the only locale left after cleanup.
	KeepLocale string
	// CleanupSet replaces the built-in cleanup list when not nil.
	CleanupSet []string
	// ExtraCleanup is appended to the cleanup list.
	ExtraCleanup []string

	// Platform is the host variant; nil means the running one.
	Platform *platform.Platform
	// Client sends the download request; nil means http.DefaultClient.
	Client fetcher.Doer
	// Stages replaces the filesystem stages; used by tests.
	Stages Stages
	// ScratchRoot is the parent of the download scratch folder.
	ScratchRoot string
}

// Result summarizes a successful run.
type Result struct {
	// RunID tags every log line of the run.
	RunID string
	// GameDir is the absolute game folder.
	GameDir string
	// Executable is the renamed runtime executable.
	Executable string
	// BackupDir is the backup folder, empty when backups are off.
	BackupDir string
	// ShortcutPath is the created shortcut, empty when none was made.
	ShortcutPath string
	// RuntimeDir is the runtime folder that was installed.
	RuntimeDir string
	// Downloaded reports whether the runtime was downloaded.
	Downloaded bool
	// Removed counts items removed by the wipe.
	Removed int
	// Installed counts runtime items copied into the game folder.
	Installed int
	// Cleaned counts runtime files stripped after install.
	Cleaned int
	// ManifestFixed reports whether package.json was rewritten during validation.
	ManifestFixed bool
}

// runner holds the state of a single swap.
// It is intentionally unexported; call Run(ctx, Options) from callers.
type runner struct {
	opts       *Options
	platform   *platform.Platform
	stages     Stages
	result     *Result
	holdingDir string
	runtime    *fetcher.Runtime
}

// Run executes the swap pipeline and is the public entry point for the CLI.
func Run(ctx context.Context, opts *Options) (*Result, error) {
	runID := uuid.NewString()

	ctx = logger.WithName(ctx, "swap")
	ctx = logger.WithKV(ctx, "run_id", runID)

	r := newRunner(opts, runID)

	defer r.releaseRuntime(ctx)

	if err := r.run(ctx); err != nil {
		logger.ErrorKV(ctx, "Swap failed", "error", err)
		return nil, err
	}

	logger.InfoKV(ctx, "Swap completed", "executable", r.result.Executable)

	return r.result, nil
}

func newRunner(opts *Options, runID string) *runner {
	p := opts.Platform
	if p == nil {
		p = platform.Detect()
	}

	stages := opts.Stages
	if stages == nil {
		stages = NewStages(p)
	}

	return &runner{
		opts:     opts,
		platform: p,
		stages:   stages,
		result:   &Result{RunID: runID},
	}
}

// run performs the steps in order:
// 1) Check the executable name, validate the game folder and fix package.json.
// 2) Refuse to run over a leftover holding area; warn about running game processes.
// 3) Back up the game folder.
// 4) Resolve the runtime.
// 5) Preserve, wipe, install and restore.
// 6) Rename the executable and strip unneeded files.
// 7) Create a shortcut.
func (r *runner) run(ctx context.Context) error {
	if err := game.CheckExecutableName(r.executableName()); err != nil {
		return err
	}

	report, err := validator.Validate(ctx, r.opts.GameDir)
	if err != nil {
		return err
	}

	gameDir := report.Dir
	r.result.GameDir = gameDir
	r.result.ManifestFixed = report.Fixed

	if err = r.checkWritable(gameDir); err != nil {
		return err
	}

	if err = r.checkHoldingArea(ctx, gameDir); err != nil {
		return err
	}

	r.warnRunningProcesses(ctx)

	if r.opts.Backup {
		if r.result.BackupDir, err = Backup(ctx, gameDir); err != nil {
			return err
		}
	}

	if err = r.resolveRuntime(ctx); err != nil {
		return err
	}

	if err = r.replaceRuntime(ctx, gameDir); err != nil {
		return err
	}

	finalizer := &Finalizer{
		Platform:       r.platform,
		ExecutableName: r.opts.ExecutableName,
		CleanupSet:     r.cleanupSet(),
		KeepLocale:     r.opts.KeepLocale,
	}

	finalized, finalizeErr := finalizer.Finalize(ctx, gameDir)
	r.result.Cleaned = finalized.Cleaned

	if finalizeErr != nil {
		return finalizeErr
	}

	r.result.Executable = finalized.Executable

	r.createShortcut(ctx, gameDir)

	return nil
}

// replaceRuntime runs the guarded preserve, wipe, install and restore sequence.
func (r *runner) replaceRuntime(ctx context.Context, gameDir string) error {
	if err := r.stages.Preserve(ctx, gameDir, r.holdingDir); err != nil {
		r.discardHoldingArea(ctx)
		return err
	}

	removed, wipeErr := r.stages.Wipe(ctx, gameDir)
	r.result.Removed = removed

	var installErr error

	if wipeErr == nil {
		r.result.Installed, installErr = r.stages.Install(ctx, r.runtime.Dir, gameDir)
		if installErr != nil {
			logger.ErrorKV(ctx, "Install failed, putting game files back", "error", installErr)
		}
	}

	if err := r.stages.Restore(ctx, r.holdingDir, gameDir); err != nil {
		logger.ErrorKV(ctx, "Game files could not be restored; recover them from the holding area",
			"holding_area", r.holdingDir, "error", err)

		return errors.Join(fmt.Errorf("restore game files: %w", err), wipeErr, installErr)
	}

	return errors.Join(wipeErr, installErr)
}

func (r *runner) resolveRuntime(ctx context.Context) error {
	resolved, err := fetcher.Resolve(ctx, &fetcher.Options{
		LocalPath: r.opts.RuntimeDir,
		BaseURL:   r.opts.BaseURL,
		Release: fetcher.Release{
			Version:  r.version(),
			SDK:      r.opts.SDK,
			Platform: r.platform,
		},
		Client:      r.opts.Client,
		ScratchRoot: r.opts.ScratchRoot,
	})
	if err != nil {
		return err
	}

	r.runtime = resolved
	r.result.RuntimeDir = resolved.Dir
	r.result.Downloaded = resolved.Downloaded

	return nil
}

func (r *runner) version() string {
	if r.opts.Version == "" {
		return fetcher.DefaultVersion
	}

	return fetcher.NormalizeVersion(r.opts.Version)
}

func (r *runner) cleanupSet() []string {
	base := r.opts.CleanupSet
	if base == nil {
		base = game.CleanupSet
	}

	names := make([]string, 0, len(base)+len(r.opts.ExtraCleanup))
	names = append(names, base...)

	return append(names, r.opts.ExtraCleanup...)
}

// checkWritable fails early when the game folder or its parent, where the
// holding area goes, cannot be written.
func (r *runner) checkWritable(gameDir string) error {
	for _, dir := range []string{gameDir, filepath.Dir(gameDir)} {
		if err := platform.CheckWritable(dir); err != nil {
			return err
		}
	}

	return nil
}

// checkHoldingArea refuses to run while a holding area from an earlier run
// exists; it may hold the only copy of game files from a failed restore.
func (r *runner) checkHoldingArea(ctx context.Context, gameDir string) error {
	r.holdingDir = game.HoldingDir(gameDir)
	if !common.Exists(r.holdingDir) {
		return nil
	}

	logger.ErrorKV(ctx, "Holding area left by an earlier run; recover its files, then remove it",
		"holding_area", r.holdingDir)

	return fmt.Errorf("%w: %s", errStaleHoldingArea, r.holdingDir)
}

// warnRunningProcesses logs game or runtime processes that may hold files open.
func (r *runner) warnRunningProcesses(ctx context.Context) {
	names := append([]string{}, r.platform.ExecutableCandidates()...)
	names = append(names, r.platform.ExecutableName(r.executableName()))

	processes, err := common.RunningProcesses(names)
	if err != nil {
		logger.DebugKV(ctx, "Could not list processes", "error", err)
		return
	}

	for _, process := range processes {
		logger.WarnKV(ctx, "Close the game before updating it",
			"process", process.Executable, "pid", process.PID)
	}
}

func (r *runner) executableName() string {
	if platform.TrimExecutableSuffix(r.opts.ExecutableName) == "" {
		return game.DefaultExecutableName
	}

	return r.opts.ExecutableName
}

func (r *runner) createShortcut(ctx context.Context, gameDir string) {
	if !r.opts.Shortcut || r.platform.Shortcuts == nil {
		return
	}

	name := platform.TrimExecutableSuffix(r.executableName())

	path, err := r.platform.Shortcuts.CreateShortcut(ctx, platform.Shortcut{
		Path:        filepath.Join(gameDir, name+".lnk"),
		Target:      r.result.Executable,
		WorkingDir:  gameDir,
		Description: name,
	})
	if err != nil {
		logger.WarnKV(ctx, "Could not create shortcut", "error", err)
		return
	}

	if path != "" {
		r.result.ShortcutPath = path
		logger.InfoKV(ctx, "Created shortcut", "path", path)
	}
}

// discardHoldingArea removes the holding area when nothing was deleted yet.
func (r *runner) discardHoldingArea(ctx context.Context) {
	if err := common.Remove(r.holdingDir); err != nil {
		logger.WarnKV(ctx, "Could not remove holding area", "path", r.holdingDir, "error", err)
	}
}

// releaseRuntime removes the download scratch folder.
func (r *runner) releaseRuntime(ctx context.Context) {
	if err := r.runtime.Release(); err != nil {
		logger.WarnKV(ctx, "Could not remove scratch folder", "path", r.runtime.ScratchDir, "error", err)
	}
}
