package store

import (
	"context"
	"errors"
)

// ErrNoDocument is returned by a Backend when the named collection has never
// been written.
var ErrNoDocument = errors.New("document does not exist")

// Backend loads and saves whole collection documents by name.
type Backend interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, data []byte) error
}
