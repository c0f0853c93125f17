package fetcher

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"

	"github.com/oshokin/nwjs-swap/internal/domain/game"
)

const extractDirMode os.FileMode = 0o755

var (
	// errUnknownArchive is returned for an extension Extract cannot open.
	errUnknownArchive = errors.New("unsupported archive type")
	// errUnsafePath is returned for an entry that would land outside the destination.
	errUnsafePath = errors.New("archive entry escapes destination")
	// errNoRuntimeDir is returned when no extracted folder looks like a runtime.
	errNoRuntimeDir = errors.New("no runtime folder in archive")
)

// Extract unpacks archive into dest and returns the extracted runtime folder:
// the first child of dest whose name contains "nwjs" in any letter case.
func Extract(archive, dest string) (string, error) {
	var err error

	switch name := strings.ToLower(archive); {
	case strings.HasSuffix(name, ".zip"):
		err = extractZip(archive, dest)
	case strings.HasSuffix(name, ".gz"), strings.HasSuffix(name, ".tgz"):
		err = extractTarGz(archive, dest)
	default:
		err = fmt.Errorf("%s: %w", filepath.Base(archive), errUnknownArchive)
	}

	if err != nil {
		return "", fmt.Errorf("%w: %w", game.ErrExtraction, err)
	}

	runtimeDir, err := FindRuntimeDir(dest)
	if err != nil {
		return "", fmt.Errorf("%w: %w", game.ErrExtraction, err)
	}

	return runtimeDir, nil
}

// FindRuntimeDir returns the first immediate child directory of dir whose
// lower-cased name contains the runtime marker.
func FindRuntimeDir(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	for _, entry := range entries {
		if entry.IsDir() && strings.Contains(strings.ToLower(entry.Name()), game.RuntimeDirMarker) {
			return filepath.Join(dir, entry.Name()), nil
		}
	}

	return "", fmt.Errorf("%s: %w", dir, errNoRuntimeDir)
}

func extractZip(archive, dest string) error {
	reader, err := zip.OpenReader(archive)
	if err != nil {
		return fmt.Errorf("opening zip archive: %w", err)
	}

	defer func() {
		_ = reader.Close()
	}()

	for _, file := range reader.File {
		target, err := safeJoin(dest, file.Name)
		if err != nil {
			return err
		}

		mode := file.Mode()

		switch {
		case mode.IsDir():
			err = os.MkdirAll(target, extractDirMode)
		case mode&fs.ModeSymlink != 0:
			err = extractZipSymlink(file, dest, target)
		default:
			err = extractZipFile(file, target)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

func extractZipFile(file *zip.File, target string) error {
	source, err := file.Open()
	if err != nil {
		return fmt.Errorf("opening zip entry: %w", err)
	}

	defer func() {
		_ = source.Close()
	}()

	return writeFile(target, source, file.Mode().Perm())
}

func extractZipSymlink(file *zip.File, dest, target string) error {
	source, err := file.Open()
	if err != nil {
		return fmt.Errorf("opening zip entry: %w", err)
	}

	defer func() {
		_ = source.Close()
	}()

	link, err := io.ReadAll(source)
	if err != nil {
		return err
	}

	return writeSymlink(dest, target, string(link))
}

func extractTarGz(archive, dest string) error {
	file, err := os.Open(filepath.Clean(archive))
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}

	defer func() {
		_ = file.Close()
	}()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return fmt.Errorf("creating gzip reader: %w", err)
	}

	defer func() {
		_ = gz.Close()
	}()

	tr := tar.NewReader(gz)

	for {
		header, nextErr := tr.Next()
		if errors.Is(nextErr, io.EOF) {
			return nil
		}

		if nextErr != nil {
			return fmt.Errorf("reading tar entry: %w", nextErr)
		}

		target, err := safeJoin(dest, header.Name)
		if err != nil {
			return err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			err = os.MkdirAll(target, extractDirMode)
		case tar.TypeReg:
			err = writeFile(target, tr, header.FileInfo().Mode().Perm())
		case tar.TypeSymlink:
			err = writeSymlink(dest, target, header.Linkname)
		default:
			// Hard links, devices and the like never appear in runtime archives.
			continue
		}

		if err != nil {
			return err
		}
	}
}

func writeFile(target string, source io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), extractDirMode); err != nil {
		return err
	}

	if mode == 0 {
		mode = 0o644
	}

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}

	if _, err = io.Copy(out, source); err != nil {
		_ = out.Close()

		return fmt.Errorf("extracting %s: %w", target, err)
	}

	return out.Close()
}

// writeSymlink creates target pointing at link, refusing links that resolve outside dest.
func writeSymlink(dest, target, link string) error {
	resolved := link
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(filepath.Dir(target), link)
	}

	if !within(dest, resolved) {
		return fmt.Errorf("%s -> %s: %w", target, link, errUnsafePath)
	}

	if err := os.MkdirAll(filepath.Dir(target), extractDirMode); err != nil {
		return err
	}

	_ = os.Remove(target)

	return os.Symlink(link, target)
}

// safeJoin joins an archive entry name onto dest, rejecting names that escape it.
func safeJoin(dest, name string) (string, error) {
	target := filepath.Join(dest, filepath.FromSlash(name))
	if !within(dest, target) {
		return "", fmt.Errorf("%s: %w", name, errUnsafePath)
	}

	return target, nil
}

func within(root, path string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(path))
	if err != nil {
		return false
	}

	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}
