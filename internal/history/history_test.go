package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/ndhoang/newsdesk/internal/api"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := openStore(t)

	articles := []api.Article{
		{ID: "a1", Headline: "First", URL: "https://example.com/1", Source: "Feed"},
		{ID: "a2", Headline: "Second", URL: "https://example.com/2", Source: "Feed"},
	}
	for _, a := range articles {
		if err := s.Record(a); err != nil {
			t.Fatalf("record %s: %v", a.ID, err)
		}
	}

	entries, err := s.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Headline == "" || entries[0].URL == "" {
		t.Errorf("entry missing fields: %+v", entries[0])
	}
}

func TestRecordRepeatViewBumpsNotDuplicates(t *testing.T) {
	s := openStore(t)

	a := api.Article{ID: "a1", Headline: "Old headline", URL: "https://example.com/1"}
	if err := s.Record(a); err != nil {
		t.Fatal(err)
	}
	a.Headline = "New headline"
	if err := s.Record(a); err != nil {
		t.Fatal(err)
	}

	entries, err := s.Recent(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1 (repeat view must not duplicate)", len(entries))
	}
	if entries[0].Headline != "New headline" {
		t.Errorf("headline = %q, repeat view must refresh it", entries[0].Headline)
	}
}

func TestRecordRejectsMissingID(t *testing.T) {
	s := openStore(t)
	if err := s.Record(api.Article{Headline: "no id"}); err == nil {
		t.Error("expected error for article without id")
	}
}

func TestRecentLimit(t *testing.T) {
	s := openStore(t)
	for _, id := range []string{"a1", "a2", "a3"} {
		if err := s.Record(api.Article{ID: id, Headline: id, URL: "https://example.com/" + id}); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := s.Recent(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("got %d entries, want 2", len(entries))
	}
}

func TestPruneAndClear(t *testing.T) {
	s := openStore(t)
	if err := s.Record(api.Article{ID: "a1", Headline: "x", URL: "https://example.com/1"}); err != nil {
		t.Fatal(err)
	}

	// Everything is fresh, so a 24h window prunes nothing.
	n, err := s.Prune(24 * time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("pruned %d fresh entries", n)
	}

	if err := s.Clear(); err != nil {
		t.Fatal(err)
	}
	entries, err := s.Recent(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("clear left %d entries", len(entries))
	}
}
