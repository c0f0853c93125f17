package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/oshokin/nwjs-swap/internal/domain/game"
	"github.com/oshokin/nwjs-swap/internal/logger"
	"github.com/oshokin/nwjs-swap/internal/version"
)

// errBadHTTPStatus is returned for any status other than 200.
var errBadHTTPStatus = errors.New("unexpected http status")

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Download fetches rawURL with a single GET and streams the body into dir,
// naming the file after the last URL path segment. Every failure wraps
// game.ErrDownloadFailed.
func Download(ctx context.Context, client Doer, rawURL, dir string) (string, error) {
	if client == nil {
		client = http.DefaultClient
	}

	target := filepath.Join(dir, path.Base(rawURL))

	written, err := download(ctx, client, rawURL, target)
	if err != nil {
		_ = os.Remove(target)

		return "", fmt.Errorf("%w: %w", game.ErrDownloadFailed, err)
	}

	logger.InfoKV(ctx, "Downloaded runtime archive",
		"path", target,
		"size", humanize.Bytes(uint64(written))) //nolint:gosec // io.Copy never returns a negative count.

	return target, nil
}

func download(ctx context.Context, client Doer, rawURL, target string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return 0, err
	}

	req.Header.Set("User-Agent", version.UserAgent())

	logger.InfoKV(ctx, "Downloading runtime", "url", rawURL)

	response, err := client.Do(req)
	if err != nil {
		return 0, err
	}

	defer func() {
		_ = response.Body.Close()
	}()

	if response.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%s, %s: %w", rawURL, response.Status, errBadHTTPStatus)
	}

	outputFile, err := os.Create(filepath.Clean(target))
	if err != nil {
		return 0, err
	}

	written, err := io.Copy(outputFile, response.Body)
	if err != nil {
		_ = outputFile.Close()

		return written, err
	}

	return written, outputFile.Close()
}
