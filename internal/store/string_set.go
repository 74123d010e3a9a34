package store

import (
	"context"
	"log/slog"
)

// StringSet is a collection of unique, case-sensitive strings kept in
// insertion order.
type StringSet struct {
	c *Collection[string]
}

func NewStringSet(name string, backend Backend, locks *Locks, logger *slog.Logger, defaults []string) *StringSet {
	return &StringSet{c: NewCollection(name, backend, locks, logger, Options[string]{
		Key:      func(s string) string { return s },
		Defaults: defaults,
		Seed:     true,
	})}
}

func (s *StringSet) Name() string {
	return s.c.Name()
}

func (s *StringSet) List(ctx context.Context) []string {
	return s.c.ReadAll(ctx)
}

// AddUnique appends value unless it is already present, and returns the
// resulting set. Adding an existing value writes nothing.
func (s *StringSet) AddUnique(ctx context.Context, value string) ([]string, error) {
	return s.c.mutate(ctx, func(values []string) ([]string, bool, error) {
		if s.c.index(values, value) >= 0 {
			return values, false, nil
		}
		return append(values, value), true, nil
	})
}
