package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/pharmacare/internal/settings"
	"github.com/MrJamesThe3rd/pharmacare/internal/storage"
)

// GetSettings returns the stored settings, seeding the defaults on first access.
func (s *Store) GetSettings(ctx context.Context) (*settings.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadSettings(ctx)
}

func (s *Store) SaveSettings(ctx context.Context, st *settings.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.putJSON(ctx, KeySettings, st)
}

func (s *Store) loadSettings(ctx context.Context) (*settings.Settings, error) {
	raw, err := s.backend.Get(ctx, KeySettings)

	switch {
	case errors.Is(err, storage.ErrNotFound):
		return s.seedSettings(ctx)
	case err != nil:
		return nil, fmt.Errorf("reading %s: %w", KeySettings, err)
	}

	var st settings.Settings
	if err := json.Unmarshal(raw, &st); err != nil {
		s.log.Warn("stored settings are unreadable, restoring defaults", "key", KeySettings, "error", err)
		return s.seedSettings(ctx)
	}

	return &st, nil
}

func (s *Store) seedSettings(ctx context.Context) (*settings.Settings, error) {
	st := settings.Defaults()
	if err := s.putJSON(ctx, KeySettings, &st); err != nil {
		return nil, fmt.Errorf("seeding %s: %w", KeySettings, err)
	}

	return &st, nil
}

func (s *Store) putJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}

	if err := s.backend.Put(ctx, key, data); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}

	return nil
}
