package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenForTesting(t *testing.T) {
	db, err := OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, db.Close()) })

	assert.NoError(t, db.Ping())

	var tableName string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='collections'").Scan(&tableName)
	require.NoError(t, err)
	assert.Equal(t, "collections", tableName)
}

func TestOpenForTestingIsolated(t *testing.T) {
	a, err := OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	b, err := OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })

	_, err = a.Exec("INSERT INTO collections (name, document) VALUES ('spots', '[]')")
	require.NoError(t, err)

	var n int
	require.NoError(t, b.QueryRow("SELECT COUNT(*) FROM collections").Scan(&n))
	assert.Zero(t, n)
}

func TestOpenFileReappliesMigrationsIdempotently(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spotshare.db")

	first, err := Open(path)
	require.NoError(t, err)
	_, err = first.Exec("INSERT INTO collections (name, document) VALUES ('areas', '[\"杭州\"]')")
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	var doc string
	require.NoError(t, second.QueryRow("SELECT document FROM collections WHERE name = 'areas'").Scan(&doc))
	assert.Equal(t, `["杭州"]`, doc)
}
