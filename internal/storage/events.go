package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nivar/journey/internal/analytics"
)

// EventRecord is a stored analytics event.
type EventRecord struct {
	ID        string            `json:"id"`
	VisitorID string            `json:"visitor_id,omitempty"`
	Name      string            `json:"name"`
	Params    map[string]string `json:"params"`
	Timestamp time.Time         `json:"timestamp"`
}

// RecordEvents stores a batch for visitorID in one transaction: either every
// event is stored or none is.
func (s *Store) RecordEvents(ctx context.Context, visitorID string, events []analytics.Event) ([]string, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin events: %w", err)
	}
	defer tx.Rollback()

	now := toMillis(s.now())
	ids := make([]string, 0, len(events))
	for i, e := range events {
		if err := analytics.Validate(e); err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		params := e.Params
		if params == nil {
			params = map[string]string{}
		}
		raw, err := json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("encode event params: %w", err)
		}
		id := uuid.NewString()
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO events (id, visitor_id, name, params, created_at)
			VALUES (?, ?, ?, ?, ?)
		`, id, visitorID, e.Name, string(raw), now); err != nil {
			return nil, fmt.Errorf("record event: %w", err)
		}
		ids = append(ids, id)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit events: %w", err)
	}
	return ids, nil
}

// RecentEvents returns up to limit events, newest first. An empty name
// matches every event.
func (s *Store) RecentEvents(ctx context.Context, name string, limit int) ([]EventRecord, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, visitor_id, name, params, created_at
		FROM events
		WHERE ? = '' OR name = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, name, name, limit)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []EventRecord
	for rows.Next() {
		var (
			e   EventRecord
			raw string
			at  int64
		)
		if err := rows.Scan(&e.ID, &e.VisitorID, &e.Name, &raw, &at); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if err := json.Unmarshal([]byte(raw), &e.Params); err != nil {
			return nil, fmt.Errorf("decode event %s params: %w", e.ID, err)
		}
		e.Timestamp = fromMillis(at)
		events = append(events, e)
	}
	return events, rows.Err()
}
