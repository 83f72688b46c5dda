// Package store persists the pharmacy collections as JSON documents on a
// storage.Backend and implements the domain repositories on top of them.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pharmacare/internal/storage"
)

// Document keys, namespaced to the application.
const (
	KeyProducts      = "pharmacy_products"
	KeyCustomers     = "pharmacy_customers"
	KeyPrescriptions = "pharmacy_prescriptions"
	KeyTransactions  = "pharmacy_transactions"
	KeySettings      = "pharmacy_settings"
)

// Store serialises every read-modify-write through a single mutex. Each
// mutation reads the whole collection, changes it and writes it back.
type Store struct {
	backend storage.Backend
	log     *slog.Logger
	now     func() time.Time
	newID   func() string

	mu sync.Mutex
}

type Option func(*Store)

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

func New(backend storage.Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		log:     slog.Default(),
		now:     time.Now,
		newID:   uuid.NewString,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Store) Close() error {
	return s.backend.Close()
}

// collectionDef describes how one keyed collection is decoded and seeded.
type collectionDef[T any] struct {
	key      string
	id       func(T) string
	defaults func(now time.Time) []T
}

// load returns the stored collection, seeding the defaults when the document
// is absent or cannot be decoded. Callers must hold s.mu.
func load[T any](ctx context.Context, s *Store, def collectionDef[T]) (*collection[T], error) {
	raw, err := s.backend.Get(ctx, def.key)

	switch {
	case errors.Is(err, storage.ErrNotFound):
		return seed(ctx, s, def)
	case err != nil:
		return nil, fmt.Errorf("reading %s: %w", def.key, err)
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		s.log.Warn("stored collection is unreadable, restoring defaults", "key", def.key, "error", err)
		return seed(ctx, s, def)
	}

	return newCollection(items, def.id), nil
}

func seed[T any](ctx context.Context, s *Store, def collectionDef[T]) (*collection[T], error) {
	c := newCollection(def.defaults(s.now()), def.id)
	if err := save(ctx, s, def, c); err != nil {
		return nil, fmt.Errorf("seeding %s: %w", def.key, err)
	}

	return c, nil
}

func save[T any](ctx context.Context, s *Store, def collectionDef[T], c *collection[T]) error {
	data, err := c.encode()
	if err != nil {
		return fmt.Errorf("encoding %s: %w", def.key, err)
	}

	if err := s.backend.Put(ctx, def.key, data); err != nil {
		return fmt.Errorf("writing %s: %w", def.key, err)
	}

	return nil
}

// read loads a collection under the store lock.
func read[T any](ctx context.Context, s *Store, def collectionDef[T]) (*collection[T], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return load(ctx, s, def)
}

// mutate loads a collection, applies fn and writes the result back. Nothing
// is written when fn fails.
func mutate[T any](ctx context.Context, s *Store, def collectionDef[T], fn func(c *collection[T]) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := load(ctx, s, def)
	if err != nil {
		return err
	}

	if err := fn(c); err != nil {
		return err
	}

	return save(ctx, s, def, c)
}
