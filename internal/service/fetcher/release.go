package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/oshokin/nwjs-swap/internal/logger"
	"github.com/oshokin/nwjs-swap/internal/platform"
)

const (
	// DefaultBaseURL is the official NW.js download host.
	DefaultBaseURL = "https://dl.nwjs.io"
	// DefaultVersion is the release RPG Maker MV games are known to run on.
	DefaultVersion = "v0.49.2"

	archivePrefix = "nwjs"
	sdkMarker     = "-sdk"
)

//nolint:gochecknoglobals // Parsed once.
var lastWindows7Release = semver.MustParse("0.72.0")

// errBadVersion is returned for a version that is not semantic.
var errBadVersion = errors.New("runtime version must look like v0.49.2")

// Release identifies one downloadable NW.js archive.
type Release struct {
	// Version is the release, normalized with a leading "v".
	Version string
	// SDK selects the SDK flavor.
	SDK bool
	// Platform supplies the OS and architecture tokens.
	Platform *platform.Platform
}

// NormalizeVersion trims spaces and guarantees a leading "v".
func NormalizeVersion(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || strings.HasPrefix(v, "v") {
		return v
	}

	return "v" + v
}

// ValidateVersion checks that v (with or without the leading "v") is a semantic version.
func ValidateVersion(v string) error {
	if _, err := parseVersion(v); err != nil {
		return fmt.Errorf("%q: %w", v, errBadVersion)
	}

	return nil
}

// ArchiveName returns the file name of the release archive, for example
// nwjs-sdk-v0.49.2-win-x64.zip.
func ArchiveName(release Release) string {
	var name strings.Builder

	name.WriteString(archivePrefix)

	if release.SDK {
		name.WriteString(sdkMarker)
	}

	fmt.Fprintf(&name, "-%s-%s-%s%s",
		NormalizeVersion(release.Version),
		release.Platform.OSToken,
		release.Platform.ArchToken,
		release.Platform.ArchiveExtension())

	return name.String()
}

// DownloadURL returns <base>/<version>/<archive name>.
func DownloadURL(baseURL string, release Release) string {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	name := ArchiveName(release)
	version := NormalizeVersion(release.Version)

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return strings.TrimRight(baseURL, "/") + "/" + version + "/" + name
	}

	// Use path.Join to normalize duplicate slashes when composing the URL path.
	parsed.Path = path.Join("/", parsed.Path, version, name)

	return parsed.String()
}

// WarnCompatibility logs when the release cannot run on every Windows
// version RPG Maker MV players still use.
func WarnCompatibility(ctx context.Context, release Release) {
	if !release.Platform.IsWindows() {
		return
	}

	parsed, err := parseVersion(release.Version)
	if err != nil {
		return
	}

	if parsed.GreaterThan(lastWindows7Release) {
		logger.WarnKV(ctx, "This runtime no longer supports Windows 7 and 8",
			"version", NormalizeVersion(release.Version),
			"last_supported", "v"+lastWindows7Release.String())
	}
}

func parseVersion(v string) (*semver.Version, error) {
	return semver.StrictNewVersion(strings.TrimPrefix(strings.TrimSpace(v), "v"))
}
