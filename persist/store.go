package persist

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Blob is one durable unit of persisted state. Version mirrors the envelope
// version inside Data so that backends can surface it as queryable metadata;
// the envelope stays authoritative.
type Blob struct {
	Version string
	Data    []byte
}

// Store is a destination for opaque versioned blobs. Each call performs
// exactly one full read or write and releases its resources on every path.
type Store interface {
	// Write persists the blob under key, replacing any previous blob.
	Write(ctx context.Context, key string, blob Blob) error

	// Read returns the blob stored under key, or ErrNotFound.
	Read(ctx context.Context, key string) (Blob, error)
}

// FileStore keeps one file per key under a directory. Writes go to a
// temporary file first and are moved into place with an atomic rename, so a
// crash leaves either the old blob or the new one, never a torn write.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed and returns a store over it.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("strata: create store dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the directory backing the store.
func (s *FileStore) Dir() string { return s.dir }

// path maps a key to its file. Keys must not escape the store directory.
func (s *FileStore) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("strata: invalid key %q", key)
	}
	return filepath.Join(s.dir, key), nil
}

// Write persists the blob under key. The metadata version is not stored
// separately; it lives inside the blob data.
func (s *FileStore) Write(ctx context.Context, key string, blob Blob) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.path(key)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, blob.Data, 0o644); err != nil {
		return fmt.Errorf("strata: write %q: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("strata: write %q: %w", key, err)
	}
	return nil
}

// Read returns the blob stored under key.
func (s *FileStore) Read(ctx context.Context, key string) (Blob, error) {
	if err := ctx.Err(); err != nil {
		return Blob{}, err
	}
	path, err := s.path(key)
	if err != nil {
		return Blob{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Blob{}, fmt.Errorf("%w: %q", ErrNotFound, key)
		}
		return Blob{}, fmt.Errorf("strata: read %q: %w", key, err)
	}
	return Blob{Data: data}, nil
}
