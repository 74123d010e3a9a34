package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQLBackend keeps each collection document in a row of the collections
// table. Every Save is a single atomic statement.
type SQLBackend struct {
	db *sql.DB
}

func NewSQLBackend(db *sql.DB) *SQLBackend {
	return &SQLBackend{db: db}
}

func (b *SQLBackend) Load(ctx context.Context, name string) ([]byte, error) {
	var doc string
	err := b.db.QueryRowContext(ctx, `
		SELECT document FROM collections WHERE name = ?
	`, name).Scan(&doc)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoDocument
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}
	return []byte(doc), nil
}

func (b *SQLBackend) Save(ctx context.Context, name string, data []byte) error {
	_, err := b.db.ExecContext(ctx, `
		INSERT INTO collections (name, document) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET document = excluded.document, updated_at = datetime('now')
	`, name, string(data))
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", name, err)
	}
	return nil
}
