package fetcher

import (
	"context"
	"fmt"
	"os"

	"github.com/oshokin/nwjs-swap/internal/logger"
	"github.com/oshokin/nwjs-swap/internal/service/common"
)

const scratchPattern = "nwjs-swap-"

// Options select where the runtime comes from.
type Options struct {
	// LocalPath is a runtime folder to use as-is when it exists.
	LocalPath string
	// BaseURL is the download host.
	BaseURL string
	// Release is downloaded when LocalPath is not usable.
	Release Release
	// Client sends the download request; nil means http.DefaultClient.
	Client Doer
	// ScratchRoot is the parent of the scratch folder; empty means the system temp folder.
	ScratchRoot string
}

// Runtime is a resolved runtime folder.
type Runtime struct {
	// Dir holds the runtime files to install.
	Dir string
	// ScratchDir is the temporary folder to release after the run; empty for local runtimes.
	ScratchDir string
	// Downloaded reports whether the runtime came from the network.
	Downloaded bool
}

// Release removes the scratch folder, if any.
func (r *Runtime) Release() error {
	if r == nil || r.ScratchDir == "" {
		return nil
	}

	return common.Remove(r.ScratchDir)
}

// Resolve returns the local runtime when opts.LocalPath exists, otherwise
// downloads and extracts opts.Release into a fresh scratch folder. On error
// the scratch folder is already removed.
func Resolve(ctx context.Context, opts *Options) (*Runtime, error) {
	ctx = logger.WithName(ctx, "fetcher")

	if opts.LocalPath != "" {
		if common.IsDir(opts.LocalPath) {
			logger.InfoKV(ctx, "Using existing runtime", "path", opts.LocalPath)

			return &Runtime{Dir: opts.LocalPath}, nil
		}

		logger.WarnKV(ctx, "Runtime folder not found, downloading instead", "path", opts.LocalPath)
	}

	WarnCompatibility(ctx, opts.Release)

	scratchDir, err := os.MkdirTemp(opts.ScratchRoot, scratchPattern)
	if err != nil {
		return nil, fmt.Errorf("create scratch folder: %w", err)
	}

	resolved := &Runtime{ScratchDir: scratchDir, Downloaded: true}

	archive, err := Download(ctx, opts.Client, DownloadURL(opts.BaseURL, opts.Release), scratchDir)
	if err != nil {
		_ = resolved.Release()

		return nil, err
	}

	logger.Info(ctx, "Extracting runtime archive")

	resolved.Dir, err = Extract(archive, scratchDir)
	if err != nil {
		_ = resolved.Release()

		return nil, err
	}

	logger.InfoKV(ctx, "Runtime ready", "path", resolved.Dir)

	return resolved, nil
}
