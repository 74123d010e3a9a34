package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/spotshare/internal/db"
	"github.com/vbonduro/spotshare/internal/domain"
)

// countingBackend records how many saves reach the wrapped backend.
type countingBackend struct {
	Backend
	saves int
}

func (b *countingBackend) Save(ctx context.Context, name string, data []byte) error {
	b.saves++
	return b.Backend.Save(ctx, name, data)
}

func TestStringSetSeedsDefaultsOnce(t *testing.T) {
	backend := &countingBackend{Backend: NewFileBackend(t.TempDir())}
	categories := NewCategoryStore(backend, NewLocks(LockMutex), slog.Default())
	ctx := context.Background()

	first := categories.List(ctx)
	assert.Equal(t, domain.DefaultCategories, first)
	assert.Equal(t, 1, backend.saves)

	second := categories.List(ctx)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, backend.saves)
}

func TestStringSetSeededDocumentOnDisk(t *testing.T) {
	fb := NewFileBackend(t.TempDir())
	areas := NewAreaStore(fb, NewLocks(LockNone), slog.Default())

	areas.List(context.Background())

	data, err := os.ReadFile(fb.Path(AreasCollection))
	require.NoError(t, err)
	var stored []string
	require.NoError(t, json.Unmarshal(data, &stored))
	assert.Equal(t, domain.DefaultAreas, stored)
}

func TestStringSetEmptyDocumentIsSeededOnce(t *testing.T) {
	fb := NewFileBackend(t.TempDir())
	require.NoError(t, os.WriteFile(fb.Path(CategoriesCollection), []byte{}, 0644))
	backend := &countingBackend{Backend: fb}
	categories := NewCategoryStore(backend, NewLocks(LockMutex), slog.Default())
	ctx := context.Background()

	assert.Equal(t, domain.DefaultCategories, categories.List(ctx))
	assert.Equal(t, domain.DefaultCategories, categories.List(ctx))
	assert.Equal(t, 1, backend.saves)

	data, err := os.ReadFile(fb.Path(CategoriesCollection))
	require.NoError(t, err)
	var stored []string
	require.NoError(t, json.Unmarshal(data, &stored))
	assert.Equal(t, domain.DefaultCategories, stored)
}

func TestStringSetDefaultsAreNotAliased(t *testing.T) {
	categories := NewCategoryStore(NewFileBackend(t.TempDir()), NewLocks(LockMutex), slog.Default())

	got := categories.List(context.Background())
	got[0] = "changed"

	assert.Equal(t, "爬山", domain.DefaultCategories[0])
}

func TestStringSetAddUniqueIsIdempotent(t *testing.T) {
	backend := &countingBackend{Backend: NewFileBackend(t.TempDir())}
	categories := NewCategoryStore(backend, NewLocks(LockMutex), slog.Default())
	ctx := context.Background()

	_, err := categories.AddUnique(ctx, "露营")
	require.NoError(t, err)
	savesAfterFirst := backend.saves

	values, err := categories.AddUnique(ctx, "露营")
	require.NoError(t, err)
	assert.Equal(t, savesAfterFirst, backend.saves)

	occurrences := 0
	for _, v := range values {
		if v == "露营" {
			occurrences++
		}
	}
	assert.Equal(t, 1, occurrences)
	assert.Equal(t, "露营", values[len(values)-1])
}

func TestStringSetAddExistingDefaultIsNoop(t *testing.T) {
	categories := NewCategoryStore(NewFileBackend(t.TempDir()), NewLocks(LockMutex), slog.Default())

	values, err := categories.AddUnique(context.Background(), "爬山")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultCategories, values)
}

func TestStringSetIsCaseSensitive(t *testing.T) {
	areas := NewAreaStore(NewFileBackend(t.TempDir()), NewLocks(LockMutex), slog.Default())
	ctx := context.Background()

	_, err := areas.AddUnique(ctx, "Hangzhou")
	require.NoError(t, err)
	values, err := areas.AddUnique(ctx, "hangzhou")
	require.NoError(t, err)

	assert.Contains(t, values, "Hangzhou")
	assert.Contains(t, values, "hangzhou")
}

func TestStringSetOverSQLBackend(t *testing.T) {
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, d.Close()) })

	areas := NewAreaStore(NewSQLBackend(d), NewLocks(LockMutex), slog.Default())
	ctx := context.Background()

	assert.Equal(t, domain.DefaultAreas, areas.List(ctx))
	_, err = areas.AddUnique(ctx, "苏州")
	require.NoError(t, err)
	assert.Equal(t, append(append([]string{}, domain.DefaultAreas...), "苏州"), areas.List(ctx))
}
