package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/vbonduro/spotshare/internal/domain"
)

type Options[T any] struct {
	// Key identifies a record for UpsertByKey, DeleteByKey and Find.
	Key func(T) string
	// Defaults is returned when the document does not exist yet.
	Defaults []T
	// Seed persists Defaults the first time the missing document is read.
	Seed bool
}

// Collection is an ordered list of records persisted as one JSON document.
// Every operation reads the whole document and mutations write it back whole.
type Collection[T any] struct {
	name    string
	backend Backend
	lock    sync.Locker
	opts    Options[T]
	logger  *slog.Logger
}

func NewCollection[T any](name string, backend Backend, locks *Locks, logger *slog.Logger, opts Options[T]) *Collection[T] {
	return &Collection[T]{
		name:    name,
		backend: backend,
		lock:    locks.For(name),
		opts:    opts,
		logger:  logger,
	}
}

func (c *Collection[T]) Name() string {
	return c.name
}

// ReadAll never fails: read and decode errors are logged and the defaults
// returned in place of the stored records.
func (c *Collection[T]) ReadAll(ctx context.Context) []T {
	c.lock.Lock()
	defer c.lock.Unlock()

	records, err := c.load(ctx)
	if err != nil {
		c.logger.Error("failed to read collection", "collection", c.name, "error", err)
		return c.defaults()
	}
	return records
}

func (c *Collection[T]) WriteAll(ctx context.Context, records []T) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.save(ctx, records)
}

// Append places record at the head of the collection.
func (c *Collection[T]) Append(ctx context.Context, record T) error {
	_, err := c.mutate(ctx, func(records []T) ([]T, bool, error) {
		return append([]T{record}, records...), true, nil
	})
	return err
}

// Find returns the record stored under key.
func (c *Collection[T]) Find(ctx context.Context, key string) (T, error) {
	for _, r := range c.ReadAll(ctx) {
		if c.opts.Key(r) == key {
			return r, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%s %q: %w", c.name, key, domain.ErrNotFound)
}

// UpsertByKey applies fn to a copy of the record stored under key and
// persists the result. A missing key or an fn error leaves the document
// untouched.
func (c *Collection[T]) UpsertByKey(ctx context.Context, key string, fn func(*T) error) (T, error) {
	var updated T
	_, err := c.mutate(ctx, func(records []T) ([]T, bool, error) {
		i := c.index(records, key)
		if i < 0 {
			return nil, false, fmt.Errorf("%s %q: %w", c.name, key, domain.ErrNotFound)
		}
		r := records[i]
		if err := fn(&r); err != nil {
			return nil, false, err
		}
		records[i] = r
		updated = r
		return records, true, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return updated, nil
}

// DeleteByKey removes the record stored under key and returns it.
func (c *Collection[T]) DeleteByKey(ctx context.Context, key string) (T, error) {
	var removed T
	_, err := c.mutate(ctx, func(records []T) ([]T, bool, error) {
		i := c.index(records, key)
		if i < 0 {
			return nil, false, fmt.Errorf("%s %q: %w", c.name, key, domain.ErrNotFound)
		}
		removed = records[i]
		return append(records[:i], records[i+1:]...), true, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return removed, nil
}

// mutate runs one read-modify-write cycle. fn reports whether anything
// changed; unchanged results are not written. An unreadable document is
// treated like ReadAll treats it, so the write replaces it.
func (c *Collection[T]) mutate(ctx context.Context, fn func([]T) ([]T, bool, error)) ([]T, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	records, err := c.load(ctx)
	if err != nil {
		c.logger.Warn("collection unreadable, rewriting from defaults", "collection", c.name, "error", err)
		records = c.defaults()
	}
	next, changed, err := fn(records)
	if err != nil {
		return nil, err
	}
	if !changed {
		return records, nil
	}
	if err := c.save(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

func (c *Collection[T]) index(records []T, key string) int {
	for i, r := range records {
		if c.opts.Key(r) == key {
			return i
		}
	}
	return -1
}

// load reads the document. A missing or zero-length document yields the
// defaults, seeding them when configured; seeding failures are only logged.
func (c *Collection[T]) load(ctx context.Context) ([]T, error) {
	data, err := c.backend.Load(ctx, c.name)
	if err == nil && len(bytes.TrimSpace(data)) == 0 {
		err = ErrNoDocument
	}
	if errors.Is(err, ErrNoDocument) {
		records := c.defaults()
		if c.opts.Seed {
			if err := c.save(ctx, records); err != nil {
				c.logger.Warn("failed to seed collection", "collection", c.name, "error", err)
			} else {
				c.logger.Info("seeded collection", "collection", c.name, "count", len(records))
			}
		}
		return records, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s: %w", domain.ErrStorage, c.name, err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

func (c *Collection[T]) save(ctx context.Context, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: failed to encode %s: %w", domain.ErrStorage, c.name, err)
	}
	if err := c.backend.Save(ctx, c.name, data); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	c.logger.Debug("saved collection", "collection", c.name, "count", len(records))
	return nil
}

func (c *Collection[T]) defaults() []T {
	out := make([]T, len(c.opts.Defaults))
	copy(out, c.opts.Defaults)
	return out
}
