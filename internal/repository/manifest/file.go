package manifest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oshokin/nwjs-swap/internal/domain/game"
)

// defaultFileMode is used when package.json is created from scratch.
const defaultFileMode os.FileMode = 0o644

// ErrNotFound is returned when package.json does not exist.
var ErrNotFound = errors.New("manifest not found")

// FileRepository loads and saves the package.json of one game directory.
type FileRepository struct {
	// path is the manifest location.
	path string
}

// NewFileRepository returns a repository for the package.json inside gameDir.
func NewFileRepository(gameDir string) *FileRepository {
	return &FileRepository{
		path: filepath.Join(filepath.Clean(gameDir), game.ManifestFilename),
	}
}

// Path returns the manifest location.
func (r *FileRepository) Path() string {
	return r.path
}

// Load reads and parses the manifest. Parse failures wrap game.ErrMalformedManifest.
func (r *FileRepository) Load(_ context.Context) (*Document, error) {
	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read manifest: %w", err)
	}

	doc, err := Parse(contents)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", game.ErrMalformedManifest, r.path, err)
	}

	return doc, nil
}

// Save writes the manifest, keeping the permissions of an existing file.
func (r *FileRepository) Save(_ context.Context, doc *Document) error {
	data, err := doc.Marshal()
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	mode := defaultFileMode
	if info, statErr := os.Stat(r.path); statErr == nil {
		mode = info.Mode().Perm()
	}

	if err = os.WriteFile(r.path, data, mode); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	return nil
}
