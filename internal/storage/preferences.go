package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Preference returns the stored value of key for visitorID.
func (s *Store) Preference(ctx context.Context, visitorID, key string) (string, bool, error) {
	if err := s.ready(ctx); err != nil {
		return "", false, err
	}
	var value string
	err := s.db.QueryRowContext(ctx, `
		SELECT value FROM preferences WHERE visitor_id = ? AND key = ?
	`, visitorID, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get preference %s: %w", key, err)
	}
	return value, true, nil
}

// SetPreference stores value under key for visitorID, replacing any
// previous value.
func (s *Store) SetPreference(ctx context.Context, visitorID, key, value string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if visitorID == "" {
		return fmt.Errorf("visitor id is required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO preferences (visitor_id, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (visitor_id, key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, visitorID, key, value, toMillis(s.now()))
	if err != nil {
		return fmt.Errorf("set preference %s: %w", key, err)
	}
	return nil
}

// VisitorPreferences is the key/value storage of one visitor. It satisfies
// a11y.Storage.
type VisitorPreferences struct {
	ctx       context.Context
	store     *Store
	visitorID string
}

// Preferences returns the preference storage of visitorID bound to ctx.
func (s *Store) Preferences(ctx context.Context, visitorID string) *VisitorPreferences {
	return &VisitorPreferences{ctx: ctx, store: s, visitorID: visitorID}
}

// Get returns the value stored under key.
func (p *VisitorPreferences) Get(key string) (string, bool, error) {
	return p.store.Preference(p.ctx, p.visitorID, key)
}

// Set stores value under key.
func (p *VisitorPreferences) Set(key, value string) error {
	return p.store.SetPreference(p.ctx, p.visitorID, key, value)
}
