package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MrJamesThe3rd/pharmacare/internal/backup"
)

// Restore replaces every collection present in snap in a single write.
// Identifiers and timestamps are kept as given.
func (s *Store) Restore(ctx context.Context, snap *backup.Snapshot) error {
	docs := make(map[string][]byte, 5)

	add := func(key string, v any) error {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encoding %s: %w", key, err)
		}

		docs[key] = data

		return nil
	}

	if snap.Products != nil {
		if err := add(KeyProducts, snap.Products); err != nil {
			return err
		}
	}

	if snap.Customers != nil {
		if err := add(KeyCustomers, snap.Customers); err != nil {
			return err
		}
	}

	if snap.Prescriptions != nil {
		if err := add(KeyPrescriptions, snap.Prescriptions); err != nil {
			return err
		}
	}

	if snap.Transactions != nil {
		if err := add(KeyTransactions, snap.Transactions); err != nil {
			return err
		}
	}

	if snap.Settings != nil {
		if err := add(KeySettings, snap.Settings); err != nil {
			return err
		}
	}

	if len(docs) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.PutMulti(ctx, docs); err != nil {
		return fmt.Errorf("restoring snapshot: %w", err)
	}

	return nil
}

// Clear deletes every collection. The next read of each one seeds its
// defaults again.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range []string{KeyProducts, KeyCustomers, KeyPrescriptions, KeyTransactions, KeySettings} {
		if err := s.backend.Delete(ctx, key); err != nil {
			return fmt.Errorf("clearing %s: %w", key, err)
		}
	}

	s.log.Info("store cleared")

	return nil
}
