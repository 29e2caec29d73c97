// Package blob stores uploaded file contents as opaque blobs keyed by a
// path chosen at save time. Metadata lives elsewhere; this package only
// deals in bytes.
package blob

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Store is the interface file contents are written to and read from.
type Store interface {
	// Save writes the blob under the given name and returns the locator
	// the record should carry, together with the number of bytes written.
	Save(name string, r io.Reader) (path string, size int64, err error)
	// Open returns a reader over the blob at the given locator.
	Open(path string) (io.ReadCloser, error)
	// Remove deletes the blob at the given locator.
	Remove(path string) error
}

// DiskStore keeps blobs as plain files under a managed directory.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the upload directory if needed and returns a store
// rooted there.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &DiskStore{dir: dir}, nil
}

// Save streams r into a new file under the store directory. On write error
// the partial file is removed so nothing is left behind.
func (s *DiskStore) Save(name string, r io.Reader) (string, int64, error) {
	path := filepath.Join(s.dir, filepath.Base(name))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create blob file: %w", err)
	}
	size, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return "", 0, fmt.Errorf("failed to write blob: %w", err)
	}
	return path, size, nil
}

// Open opens the blob at path for reading.
func (s *DiskStore) Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open blob %s: %w", path, err)
	}
	return f, nil
}

// Remove deletes the blob at path.
func (s *DiskStore) Remove(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to remove blob %s: %w", path, err)
	}
	return nil
}
