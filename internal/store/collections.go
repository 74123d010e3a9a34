package store

import (
	"log/slog"

	"github.com/vbonduro/spotshare/internal/domain"
)

const (
	SpotsCollection      = "spots"
	CategoriesCollection = "categories"
	AreasCollection      = "areas"
)

// NewSpotStore returns the Spots collection. A missing document reads as an
// empty list and is not seeded.
func NewSpotStore(backend Backend, locks *Locks, logger *slog.Logger) *Collection[domain.Spot] {
	return NewCollection(SpotsCollection, backend, locks, logger, Options[domain.Spot]{
		Key: func(s domain.Spot) string { return s.ID },
	})
}

func NewCategoryStore(backend Backend, locks *Locks, logger *slog.Logger) *StringSet {
	return NewStringSet(CategoriesCollection, backend, locks, logger, domain.DefaultCategories)
}

func NewAreaStore(backend Backend, locks *Locks, logger *slog.Logger) *StringSet {
	return NewStringSet(AreasCollection, backend, locks, logger, domain.DefaultAreas)
}
