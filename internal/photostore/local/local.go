package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/vbonduro/spotshare/internal/domain"
)

type LocalPhotoStore struct {
	basePath string
}

func NewLocalPhotoStore(basePath string) (*LocalPhotoStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create image directory: %w", err)
	}
	return &LocalPhotoStore{basePath: basePath}, nil
}

func (s *LocalPhotoStore) Save(ctx context.Context, filename string, r io.Reader) error {
	filePath, err := s.safeJoin(filename)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.basePath, 0755); err != nil {
		return fmt.Errorf("failed to create image directory: %w", err)
	}

	f, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		if cerr := f.Close(); cerr != nil {
			slog.Error("failed to close file after write error", "error", cerr)
		}
		if rerr := os.Remove(filePath); rerr != nil {
			slog.Error("failed to remove file after write error", "error", rerr)
		}
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		if rerr := os.Remove(filePath); rerr != nil {
			slog.Error("failed to remove file after close error", "error", rerr)
		}
		return fmt.Errorf("failed to close file: %w", err)
	}
	return nil
}

func (s *LocalPhotoStore) Get(ctx context.Context, filename string) (io.ReadCloser, string, error) {
	filePath, err := s.safeJoin(filename)
	if err != nil {
		return nil, "", err
	}

	f, err := os.Open(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", fmt.Errorf("image %q: %w", filename, domain.ErrNotFound)
		}
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}
	return f, ContentType(filename), nil
}

func (s *LocalPhotoStore) Delete(ctx context.Context, filename string) error {
	filePath, err := s.safeJoin(filename)
	if err != nil {
		return err
	}

	if err := os.Remove(filePath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("image %q: %w", filename, domain.ErrNotFound)
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// safeJoin resolves filename relative to basePath and rejects directory
// traversal. Rejected names read as not found.
func (s *LocalPhotoStore) safeJoin(filename string) (string, error) {
	absBase, err := filepath.Abs(s.basePath)
	if err != nil {
		return "", fmt.Errorf("invalid base path: %w", err)
	}

	absPath, err := filepath.Abs(filepath.Join(s.basePath, filename))
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal attempt %q: %w", filename, domain.ErrNotFound)
	}
	return absPath, nil
}

// ContentType derives the served MIME type from the extension alone; anything
// that is not PNG or JPEG is served as WebP.
func ContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "image/webp"
	}
}
