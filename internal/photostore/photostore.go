package photostore

import (
	"context"
	"io"
)

// PhotoStore keeps image bytes under caller-chosen filenames. Save overwrites
// an existing file of the same name. Get and Delete wrap domain.ErrNotFound
// when the file is absent.
type PhotoStore interface {
	Save(ctx context.Context, filename string, r io.Reader) error
	Get(ctx context.Context, filename string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, filename string) error
}
