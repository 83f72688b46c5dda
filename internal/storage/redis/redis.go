// Package redis stores documents as plain string keys in Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrJamesThe3rd/pharmacare/internal/storage"
)

type Config struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

type Backend struct {
	client *goredis.Client
	prefix string
}

// New connects to Redis and verifies the connection with a PING.
func New(cfg Config) (*Backend, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return NewWithClient(client, cfg.KeyPrefix), nil
}

func NewWithClient(client *goredis.Client, prefix string) *Backend {
	return &Backend{client: client, prefix: prefix}
}

func (b *Backend) key(k string) string {
	return b.prefix + k
}

func (b *Backend) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := b.client.Get(ctx, b.key(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, storage.ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", key, err)
	}

	return v, nil
}

func (b *Backend) Put(ctx context.Context, key string, value []byte) error {
	if err := b.client.Set(ctx, b.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}

	return nil
}

// PutMulti wraps the writes in MULTI/EXEC.
func (b *Backend) PutMulti(ctx context.Context, docs map[string][]byte) error {
	_, err := b.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		for k, v := range docs {
			pipe.Set(ctx, b.key(k), v, 0)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("writing %d documents: %w", len(docs), err)
	}

	return nil
}

func (b *Backend) Delete(ctx context.Context, key string) error {
	return b.client.Del(ctx, b.key(key)).Err()
}

func (b *Backend) Close() error {
	return b.client.Close()
}
