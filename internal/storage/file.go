package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore keeps the document in <dir>/<key>.json.
type FileStore struct {
	dir string
	key string
}

// NewFileStore creates a file store. The directory is created on first save.
func NewFileStore(dir, key string) (*FileStore, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	if dir == "" {
		dir = "."
	}
	return &FileStore{dir: dir, key: key}, nil
}

// Path returns the file the document is stored in.
func (s *FileStore) Path() string {
	return filepath.Join(s.dir, s.key+".json")
}

// Load reads the document file.
func (s *FileStore) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", s.Path(), ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.Path(), err)
	}
	return data, nil
}

// Save writes the document to a temporary file in the same directory and
// renames it into place, so a crash never leaves a partial document.
func (s *FileStore) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("save %s: %w", s.Path(), err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+s.key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("save %s: %w", s.Path(), err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("save %s: %w", s.Path(), err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("save %s: %w", s.Path(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save %s: %w", s.Path(), err)
	}
	if err := os.Rename(tmpName, s.Path()); err != nil {
		return fmt.Errorf("save %s: %w", s.Path(), err)
	}
	return nil
}
