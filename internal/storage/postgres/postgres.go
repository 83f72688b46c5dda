// Package postgres stores documents as JSONB rows in a single key-value table.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/MrJamesThe3rd/pharmacare/internal/storage"
)

//go:embed migrations/*.sql
var migrations embed.FS

type Backend struct {
	db *sql.DB
}

func New(db *sql.DB) *Backend {
	return &Backend{db: db}
}

// Migrate brings the kv_documents schema up to date.
func Migrate(db *sql.DB) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("opening migration source: %w", err)
	}

	driver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("creating migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return fmt.Errorf("creating migration instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}

func (b *Backend) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte

	err := b.db.QueryRowContext(ctx, `SELECT value FROM kv_documents WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("selecting %s: %w", key, err)
	}

	return value, nil
}

const upsertQuery = `
	INSERT INTO kv_documents (key, value, updated_at)
	VALUES ($1, $2, NOW())
	ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
`

func (b *Backend) Put(ctx context.Context, key string, value []byte) error {
	if _, err := b.db.ExecContext(ctx, upsertQuery, key, value); err != nil {
		return fmt.Errorf("upserting %s: %w", key, err)
	}

	return nil
}

func (b *Backend) PutMulti(ctx context.Context, docs map[string][]byte) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for k, v := range docs {
		if _, err := tx.ExecContext(ctx, upsertQuery, k, v); err != nil {
			return fmt.Errorf("upserting %s: %w", k, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

func (b *Backend) Delete(ctx context.Context, key string) error {
	if _, err := b.db.ExecContext(ctx, `DELETE FROM kv_documents WHERE key = $1`, key); err != nil {
		return fmt.Errorf("deleting %s: %w", key, err)
	}

	return nil
}

func (b *Backend) Close() error {
	return b.db.Close()
}
