package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/nivar/journey/internal/a11y"
	"github.com/nivar/journey/internal/analytics"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "journey.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open("  "); err == nil {
		t.Fatal("Open(blank) error = nil")
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "journey.db")
	for i := 0; i < 2; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open() #%d error = %v", i, err)
		}
		var n int
		if err := s.db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&n); err != nil {
			t.Fatalf("count migrations: %v", err)
		}
		if n != 1 {
			t.Fatalf("applied migrations = %d, want 1", n)
		}
		_ = s.Close()
	}
}

func TestNilStore(t *testing.T) {
	t.Parallel()

	var s *Store
	if err := s.RecordVisit(context.Background(), Visit{HashedIP: "x"}); err != ErrNotConfigured {
		t.Fatalf("RecordVisit() error = %v, want %v", err, ErrNotConfigured)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
}

func TestVisitsAndCleanup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTestStore(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	visits := []Visit{
		{HashedIP: "aaaa", Path: "/", Timestamp: now.AddDate(-2, 0, 0)},
		{HashedIP: "aaaa", Path: "/", Timestamp: now.Add(-3 * 24 * time.Hour)},
		{HashedIP: "bbbb", Path: "/", Timestamp: now.Add(-time.Hour)},
	}
	for _, v := range visits {
		if err := s.RecordVisit(ctx, v); err != nil {
			t.Fatalf("RecordVisit() error = %v", err)
		}
	}
	if err := s.RecordVisit(ctx, Visit{}); err == nil {
		t.Fatal("RecordVisit(empty) error = nil")
	}

	got, err := s.RecentVisits(ctx, 10)
	if err != nil {
		t.Fatalf("RecentVisits() error = %v", err)
	}
	if len(got) != 3 || got[0].HashedIP != "bbbb" || !got[0].Timestamp.Equal(now.Add(-time.Hour)) {
		t.Fatalf("RecentVisits() = %+v", got)
	}

	removed, err := s.Cleanup(ctx, now.AddDate(-1, 0, 0))
	if err != nil {
		t.Fatalf("Cleanup() error = %v", err)
	}
	if removed != 1 {
		t.Fatalf("Cleanup() removed = %d, want 1", removed)
	}
}

func TestEventsRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTestStore(t)

	ids, err := s.RecordEvents(ctx, "v1", []analytics.Event{{Name: analytics.EventSectionView, Params: map[string]string{"section_id": "about"}}})
	if err != nil {
		t.Fatalf("RecordEvents() error = %v", err)
	}
	if len(ids) != 1 || ids[0] == "" {
		t.Fatalf("RecordEvents() ids = %v, want one id", ids)
	}
	id := ids[0]
	if _, err := s.RecordEvents(ctx, "v1", []analytics.Event{{Name: analytics.EventPageView}}); err != nil {
		t.Fatalf("RecordEvents() error = %v", err)
	}

	all, err := s.RecentEvents(ctx, "", 10)
	if err != nil {
		t.Fatalf("RecentEvents() error = %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("RecentEvents() = %d events, want 2", len(all))
	}
	views, err := s.RecentEvents(ctx, analytics.EventSectionView, 10)
	if err != nil {
		t.Fatalf("RecentEvents() error = %v", err)
	}
	if len(views) != 1 || views[0].ID != id || views[0].Params["section_id"] != "about" {
		t.Fatalf("RecentEvents(section_view) = %+v", views)
	}
}

func TestRecordEventsIsAllOrNothing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTestStore(t)

	batch := []analytics.Event{
		{Name: analytics.EventPageView},
		{Name: analytics.EventScrollDepth, Params: map[string]string{"depth": "25"}},
		{Name: "not_an_event"},
	}
	if _, err := s.RecordEvents(ctx, "v1", batch); err == nil {
		t.Fatal("RecordEvents() error = nil for a batch with an unknown event")
	}
	all, err := s.RecentEvents(ctx, "", 10)
	if err != nil {
		t.Fatalf("RecentEvents() error = %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("RecentEvents() = %d events after failed batch, want 0", len(all))
	}

	ids, err := s.RecordEvents(ctx, "v1", batch[:2])
	if err != nil {
		t.Fatalf("RecordEvents() error = %v", err)
	}
	if len(ids) != 2 || ids[0] == ids[1] {
		t.Fatalf("RecordEvents() ids = %v, want 2 distinct", ids)
	}
	if all, _ = s.RecentEvents(ctx, "", 10); len(all) != 2 {
		t.Fatalf("RecentEvents() = %d events, want 2", len(all))
	}
}

func TestPreferencesSatisfyA11yStorage(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTestStore(t)
	var store a11y.Storage = s.Preferences(ctx, "visitor-1")

	want := a11y.Settings{}.With(a11y.HighContrast, true)
	if err := a11y.Save(store, want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := a11y.Load(store)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != want {
		t.Fatalf("Load() = %+v, want %+v", got, want)
	}

	if _, ok, _ := s.Preference(ctx, "visitor-2", a11y.StorageKey); ok {
		t.Fatal("preference leaked across visitors")
	}
	if err := s.SetPreference(ctx, "", "k", "v"); err == nil {
		t.Fatal("SetPreference(no visitor) error = nil")
	}
}

func TestContacts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTestStore(t)

	id, err := s.SaveContact(ctx, ContactMessage{Name: "Ada", Email: "ada@example.com", Message: "hi"})
	if err != nil {
		t.Fatalf("SaveContact() error = %v", err)
	}
	if _, err := s.SaveContact(ctx, ContactMessage{Name: "Ada"}); err == nil {
		t.Fatal("SaveContact(no email) error = nil")
	}
	if err := s.MarkDelivered(ctx, id); err != nil {
		t.Fatalf("MarkDelivered() error = %v", err)
	}
	if err := s.MarkDelivered(ctx, id+100); err == nil {
		t.Fatal("MarkDelivered(unknown) error = nil")
	}
	msgs, err := s.Contacts(ctx, 10)
	if err != nil {
		t.Fatalf("Contacts() error = %v", err)
	}
	if len(msgs) != 1 || !msgs[0].Delivered || msgs[0].Email != "ada@example.com" {
		t.Fatalf("Contacts() = %+v", msgs)
	}
}

func TestStats(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTestStore(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	for _, v := range []Visit{
		{HashedIP: "a", Timestamp: now.Add(-time.Hour)},
		{HashedIP: "a", Timestamp: now.Add(-2 * 24 * time.Hour)},
		{HashedIP: "b", Timestamp: now.Add(-30 * 24 * time.Hour)},
	} {
		if err := s.RecordVisit(ctx, v); err != nil {
			t.Fatalf("RecordVisit() error = %v", err)
		}
	}
	events := []analytics.Event{
		{Name: analytics.EventScrollDepth, Params: map[string]string{"depth": "50%"}},
		{Name: analytics.EventScrollDepth, Params: map[string]string{"depth": "25%"}},
		{Name: analytics.EventScrollDepth, Params: map[string]string{"depth": "25%"}},
		{Name: analytics.EventSectionView, Params: map[string]string{"section_id": "about"}},
		{Name: analytics.EventOutboundLink, Params: map[string]string{"url": "https://github.com/x"}},
		{Name: analytics.EventEngagementTime, Params: map[string]string{"time_seconds": "10"}},
		{Name: analytics.EventEngagementTime, Params: map[string]string{"time_seconds": "20"}},
	}
	for _, e := range events {
		if _, err := s.RecordEvents(ctx, "v", []analytics.Event{e}); err != nil {
			t.Fatalf("RecordEvents() error = %v", err)
		}
	}

	stats, err := s.Stats(ctx, now)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.TotalVisits != 3 || stats.UniqueVisitors != 2 || stats.VisitsToday != 1 || stats.VisitsThisWeek != 2 {
		t.Fatalf("visit stats = %+v", stats)
	}
	if stats.TotalEvents != int64(len(events)) {
		t.Fatalf("TotalEvents = %d, want %d", stats.TotalEvents, len(events))
	}
	if len(stats.ScrollDepth) != 2 || stats.ScrollDepth[0] != (Count{Label: "25%", Count: 2}) {
		t.Fatalf("ScrollDepth = %+v", stats.ScrollDepth)
	}
	if len(stats.SectionViews) != 1 || stats.SectionViews[0].Label != "about" {
		t.Fatalf("SectionViews = %+v", stats.SectionViews)
	}
	if len(stats.OutboundLinks) != 1 {
		t.Fatalf("OutboundLinks = %+v", stats.OutboundLinks)
	}
	if stats.AvgEngagementSecs != 15 {
		t.Fatalf("AvgEngagementSecs = %v, want 15", stats.AvgEngagementSecs)
	}
	if stats.Events[0] != (Count{Label: analytics.EventScrollDepth, Count: 3}) {
		t.Fatalf("Events[0] = %+v", stats.Events[0])
	}
}
