// Package storage defines the key-value document backend the store persists
// its collections to.
package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("document not found")

// Backend stores opaque JSON documents by key.
type Backend interface {
	// Get returns ErrNotFound when the key has never been written.
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	// PutMulti writes every document or none of them.
	PutMulti(ctx context.Context, docs map[string][]byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
