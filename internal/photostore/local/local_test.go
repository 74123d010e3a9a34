package local

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/spotshare/internal/domain"
)

func TestLocalPhotoStoreSaveAndGet(t *testing.T) {
	tmpdir := t.TempDir()
	store, err := NewLocalPhotoStore(tmpdir)
	require.NoError(t, err)

	ctx := context.Background()
	imageData := []byte("fake png data")

	require.NoError(t, store.Save(ctx, "42.png", bytes.NewReader(imageData)))

	reader, mimeType, err := store.Get(ctx, "42.png")
	require.NoError(t, err)
	defer reader.Close()

	assert.Equal(t, "image/png", mimeType)

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, imageData, data)
}

func TestLocalPhotoStoreSaveOverwrites(t *testing.T) {
	tmpdir := t.TempDir()
	store, err := NewLocalPhotoStore(tmpdir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "7.jpeg", bytes.NewReader([]byte("first version, longer"))))
	require.NoError(t, store.Save(ctx, "7.jpeg", bytes.NewReader([]byte("second"))))

	data, err := os.ReadFile(filepath.Join(tmpdir, "7.jpeg"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestLocalPhotoStoreDelete(t *testing.T) {
	tmpdir := t.TempDir()
	store, err := NewLocalPhotoStore(tmpdir)
	require.NoError(t, err)

	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "1.webp", bytes.NewReader([]byte("test data"))))
	require.NoError(t, store.Delete(ctx, "1.webp"))

	_, _, err = store.Get(ctx, "1.webp")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, store.Delete(ctx, "1.webp"), domain.ErrNotFound)
}

func TestLocalPhotoStoreNotFound(t *testing.T) {
	store, err := NewLocalPhotoStore(t.TempDir())
	require.NoError(t, err)

	_, _, err = store.Get(context.Background(), "nonexistent.jpg")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLocalPhotoStorePathTraversal(t *testing.T) {
	store, err := NewLocalPhotoStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()

	_, _, err = store.Get(ctx, "../../etc/passwd")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = store.Save(ctx, "../escape.png", bytes.NewReader([]byte("x")))
	assert.Error(t, err)
}

func TestContentType(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"1.png", "image/png"},
		{"1.PNG", "image/png"},
		{"1.jpg", "image/jpeg"},
		{"1.jpeg", "image/jpeg"},
		{"1.webp", "image/webp"},
		{"1.gif", "image/webp"},
		{"noext", "image/webp"},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, ContentType(tt.filename))
		})
	}
}
