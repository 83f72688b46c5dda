package memory

import (
	"context"
	"sync"

	"github.com/MrJamesThe3rd/pharmacare/internal/storage"
)

// Backend keeps documents in process memory. Contents are lost on exit.
type Backend struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func New() *Backend {
	return &Backend{docs: make(map[string][]byte)}
}

func (b *Backend) Get(_ context.Context, key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	v, ok := b.docs[key]
	if !ok {
		return nil, storage.ErrNotFound
	}

	return clone(v), nil
}

func (b *Backend) Put(_ context.Context, key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.docs[key] = clone(value)

	return nil
}

func (b *Backend) PutMulti(_ context.Context, docs map[string][]byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for k, v := range docs {
		b.docs[k] = clone(v)
	}

	return nil
}

func (b *Backend) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.docs, key)

	return nil
}

func (b *Backend) Close() error {
	return nil
}

func clone(v []byte) []byte {
	out := make([]byte, len(v))
	copy(out, v)

	return out
}
