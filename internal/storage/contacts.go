package storage

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// ContactMessage is a message left through the contact form.
type ContactMessage struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Delivered bool      `json:"delivered"`
	Timestamp time.Time `json:"timestamp"`
}

// SaveContact stores m undelivered and returns its id.
func (s *Store) SaveContact(ctx context.Context, m ContactMessage) (int64, error) {
	if err := s.ready(ctx); err != nil {
		return 0, err
	}
	if strings.TrimSpace(m.Email) == "" || strings.TrimSpace(m.Message) == "" {
		return 0, fmt.Errorf("email and message are required")
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO contact_messages (name, email, message, delivered, created_at)
		VALUES (?, ?, ?, 0, ?)
	`, m.Name, m.Email, m.Message, toMillis(s.now()))
	if err != nil {
		return 0, fmt.Errorf("save contact message: %w", err)
	}
	return res.LastInsertId()
}

// MarkDelivered flags the contact message id as sent by mail.
func (s *Store) MarkDelivered(ctx context.Context, id int64) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `UPDATE contact_messages SET delivered = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark contact %d delivered: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("contact message %d not found", id)
	}
	return nil
}

// Contacts returns up to limit contact messages, newest first.
func (s *Store) Contacts(ctx context.Context, limit int) ([]ContactMessage, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, message, delivered, created_at
		FROM contact_messages
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query contacts: %w", err)
	}
	defer rows.Close()

	var msgs []ContactMessage
	for rows.Next() {
		var m ContactMessage
		var at int64
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.Delivered, &at); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		m.Timestamp = fromMillis(at)
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}
