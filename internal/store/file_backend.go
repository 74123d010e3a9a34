package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileBackend keeps each collection in <dir>/<name>.json. Writes truncate and
// rewrite the file in place, so a crash mid-write can leave it truncated.
type FileBackend struct {
	dir string
}

func NewFileBackend(dir string) *FileBackend {
	return &FileBackend{dir: dir}
}

func (b *FileBackend) Path(name string) string {
	return filepath.Join(b.dir, name+".json")
}

func (b *FileBackend) Load(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(b.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoDocument
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

func (b *FileBackend) Save(_ context.Context, name string, data []byte) error {
	if err := os.MkdirAll(b.dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := os.WriteFile(b.Path(name), data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
