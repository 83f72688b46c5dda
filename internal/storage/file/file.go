// Package file persists every document in a single JSON snapshot on disk.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/MrJamesThe3rd/pharmacare/internal/storage"
)

// Backend rewrites the whole snapshot on each mutation. The write goes to a
// temp file which is then renamed over the original, so a reader never sees a
// half-written snapshot.
type Backend struct {
	path string

	mu   sync.Mutex
	docs map[string]json.RawMessage
}

func New(path string) (*Backend, error) {
	docs, err := readSnapshot(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot %s: %w", path, err)
	}

	return &Backend{path: path, docs: docs}, nil
}

func (b *Backend) Get(_ context.Context, key string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	v, ok := b.docs[key]
	if !ok {
		return nil, storage.ErrNotFound
	}

	out := make([]byte, len(v))
	copy(out, v)

	return out, nil
}

func (b *Backend) Put(ctx context.Context, key string, value []byte) error {
	return b.PutMulti(ctx, map[string][]byte{key: value})
}

func (b *Backend) PutMulti(_ context.Context, docs map[string][]byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	next := make(map[string]json.RawMessage, len(b.docs)+len(docs))
	for k, v := range b.docs {
		next[k] = v
	}

	for k, v := range docs {
		if !json.Valid(v) {
			return fmt.Errorf("document %q is not valid JSON", k)
		}

		next[k] = json.RawMessage(append([]byte(nil), v...))
	}

	if err := writeSnapshot(b.path, next); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	b.docs = next

	return nil
}

func (b *Backend) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.docs[key]; !ok {
		return nil
	}

	next := make(map[string]json.RawMessage, len(b.docs))
	for k, v := range b.docs {
		if k != key {
			next[k] = v
		}
	}

	if err := writeSnapshot(b.path, next); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	b.docs = next

	return nil
}

func (b *Backend) Close() error {
	return nil
}

func readSnapshot(path string) (map[string]json.RawMessage, error) {
	docs := make(map[string]json.RawMessage)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return docs, nil
	}

	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return docs, nil
	}

	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, err
	}

	return docs, nil
}

func writeSnapshot(path string, docs map[string]json.RawMessage) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return err
	}

	temp := path + ".tmp"
	if err := os.WriteFile(temp, data, 0o644); err != nil {
		return err
	}

	return os.Rename(temp, path)
}
