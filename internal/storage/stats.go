package storage

import (
	"context"
	"fmt"
	"time"
)

// Count is a label with its number of occurrences.
type Count struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// Stats summarises traffic and engagement for the admin dashboard.
type Stats struct {
	TotalVisits       int64   `json:"total_visits"`
	UniqueVisitors    int64   `json:"unique_visitors"`
	VisitsToday       int64   `json:"visits_today"`
	VisitsThisWeek    int64   `json:"visits_this_week"`
	TotalEvents       int64   `json:"total_events"`
	Events            []Count `json:"events"`
	ScrollDepth       []Count `json:"scroll_depth"`
	SectionViews      []Count `json:"section_views"`
	OutboundLinks     []Count `json:"outbound_links"`
	AvgEngagementSecs float64 `json:"avg_engagement_seconds"`
	ContactMessages   int64   `json:"contact_messages"`
	RecentVisits      []Visit `json:"recent_visits"`
}

// Stats computes dashboard statistics relative to now.
func (s *Store) Stats(ctx context.Context, now time.Time) (*Stats, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	stats := &Stats{}
	y, m, d := now.UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	week := now.Add(-7 * 24 * time.Hour)

	scalars := []struct {
		query string
		args  []any
		dest  any
	}{
		{`SELECT COUNT(*) FROM visitors`, nil, &stats.TotalVisits},
		{`SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil, &stats.UniqueVisitors},
		{`SELECT COUNT(*) FROM visitors WHERE created_at >= ?`, []any{toMillis(today)}, &stats.VisitsToday},
		{`SELECT COUNT(*) FROM visitors WHERE created_at >= ?`, []any{toMillis(week)}, &stats.VisitsThisWeek},
		{`SELECT COUNT(*) FROM events`, nil, &stats.TotalEvents},
		{`SELECT COALESCE(AVG(CAST(json_extract(params, '$.time_seconds') AS REAL)), 0)
			FROM events WHERE name = 'engagement_time'`, nil, &stats.AvgEngagementSecs},
		{`SELECT COUNT(*) FROM contact_messages`, nil, &stats.ContactMessages},
	}
	for _, q := range scalars {
		if err := s.db.QueryRowContext(ctx, q.query, q.args...).Scan(q.dest); err != nil {
			return nil, fmt.Errorf("query stats: %w", err)
		}
	}

	var err error
	if stats.Events, err = s.counts(ctx, `
		SELECT name, COUNT(*) FROM events
		GROUP BY name ORDER BY COUNT(*) DESC, name`); err != nil {
		return nil, err
	}
	if stats.ScrollDepth, err = s.counts(ctx, `
		SELECT json_extract(params, '$.depth') AS depth, COUNT(*) FROM events
		WHERE name = 'scroll_depth' AND depth IS NOT NULL
		GROUP BY depth ORDER BY CAST(depth AS INTEGER)`); err != nil {
		return nil, err
	}
	if stats.SectionViews, err = s.counts(ctx, `
		SELECT json_extract(params, '$.section_id') AS section, COUNT(*) FROM events
		WHERE name = 'section_view' AND section IS NOT NULL
		GROUP BY section ORDER BY COUNT(*) DESC, section`); err != nil {
		return nil, err
	}
	if stats.OutboundLinks, err = s.counts(ctx, `
		SELECT json_extract(params, '$.url') AS url, COUNT(*) FROM events
		WHERE name = 'outbound_link' AND url IS NOT NULL
		GROUP BY url ORDER BY COUNT(*) DESC, url LIMIT 10`); err != nil {
		return nil, err
	}
	if stats.RecentVisits, err = s.RecentVisits(ctx, 50); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Store) counts(ctx context.Context, query string) ([]Count, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query counts: %w", err)
	}
	defer rows.Close()

	var out []Count
	for rows.Next() {
		var c Count
		if err := rows.Scan(&c.Label, &c.Count); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
