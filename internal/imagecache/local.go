package imagecache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// LocalStore keeps images in a directory on the local filesystem.
type LocalStore struct {
	dir string
}

// NewLocalStore creates a LocalStore rooted at dir. The directory is created
// on the first Put.
func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{dir: dir}
}

// Exists implements Store.
func (s *LocalStore) Exists(_ context.Context, name string) (bool, error) {
	_, err := os.Stat(filepath.Join(s.dir, name))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Put writes r to a temporary file and links it into place, so a concurrent
// reader never sees a partial image and a file that already exists wins.
func (s *LocalStore) Put(_ context.Context, name string, r io.Reader) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create image directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+name+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close image: %w", err)
	}

	if err := os.Link(tmpName, filepath.Join(s.dir, name)); err != nil && !errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("failed to store image: %w", err)
	}
	return nil
}

// Location implements Store. It returns the slash-separated path of the file
// relative to the working directory, e.g. images/hulk.jpg.
func (s *LocalStore) Location(name string) string {
	return filepath.ToSlash(filepath.Join(s.dir, name))
}
