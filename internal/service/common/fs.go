//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// dirMode is used for directories created while copying when the source mode is unknown.
const dirMode os.FileMode = 0o755

// Exists reports whether path exists. Lstat is used so dangling links count.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// CopyFile copies a regular file, keeping its permissions and modification time.
// An existing destination is truncated.
func CopyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(filepath.Clean(src))
	if err != nil {
		return err
	}

	defer func() {
		_ = in.Close()
	}()

	out, err := os.OpenFile(filepath.Clean(dst), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err = io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copy %s: %w", src, err)
	}

	if err = out.Close(); err != nil {
		return err
	}

	// OpenFile does not change the mode of an existing file.
	if err = os.Chmod(dst, info.Mode().Perm()); err != nil {
		return err
	}

	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}

// CopyDir copies the tree rooted at src into dst, merging with whatever dst
// already contains.
func CopyDir(src, dst string) error {
	src = filepath.Clean(src)
	dst = filepath.Clean(dst)

	return filepath.WalkDir(src, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}

		target := filepath.Join(dst, rel)

		switch {
		case entry.Type()&fs.ModeSymlink != 0:
			return copySymlink(path, target)
		case entry.IsDir():
			return ensureDir(path, target)
		case entry.Type().IsRegular():
			return CopyFile(path, target)
		default:
			// Sockets, devices and pipes have no place in a game folder.
			return nil
		}
	})
}

// Copy copies src to dst whether it is a file, a directory or a symlink.
func Copy(src, dst string) error {
	info, err := os.Lstat(src)
	if err != nil {
		return err
	}

	switch {
	case info.Mode()&fs.ModeSymlink != 0:
		return copySymlink(src, dst)
	case info.IsDir():
		return CopyDir(src, dst)
	default:
		return CopyFile(src, dst)
	}
}

// Remove deletes path, recursively for directories. A missing path is not an error.
func Remove(path string) error {
	if err := os.RemoveAll(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	return nil
}

// TreeSize sums the sizes of the regular files under root.
func TreeSize(root string) (int64, error) {
	var total int64

	err := filepath.WalkDir(root, func(_ string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if !entry.Type().IsRegular() {
			return nil
		}

		info, err := entry.Info()
		if err != nil {
			return err
		}

		total += info.Size()

		return nil
	})

	return total, err
}

func ensureDir(src, dst string) error {
	mode := dirMode
	if info, err := os.Stat(src); err == nil {
		mode = info.Mode().Perm() | 0o700
	}

	if err := os.MkdirAll(dst, mode); err != nil {
		return err
	}

	return nil
}

func copySymlink(src, dst string) error {
	link, err := os.Readlink(src)
	if err != nil {
		return err
	}

	if err = Remove(dst); err != nil {
		return err
	}

	if err = os.MkdirAll(filepath.Dir(dst), dirMode); err != nil {
		return err
	}

	return os.Symlink(link, dst)
}
