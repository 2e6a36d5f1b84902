// Package history records which articles the user opened, in a local
// sqlite database. It is local telemetry for the history command and
// never a source of server truth.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ndhoang/newsdesk/internal/api"
)

type Entry struct {
	ArticleID string
	Headline  string
	URL       string
	Source    string
	ViewedAt  time.Time
}

// Store keeps separate read and write handles; sqlite tolerates one
// writer at a time.
type Store struct {
	readDB  *sql.DB
	writeDB *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	readDB, err := sql.Open("sqlite", dbPath+"?mode=ro")
	if err != nil {
		writeDB.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}

	s := &Store{readDB: readDB, writeDB: writeDB}
	if err := s.init(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS views (
			article_id TEXT PRIMARY KEY,
			headline   TEXT NOT NULL,
			url        TEXT NOT NULL,
			source     TEXT NOT NULL DEFAULT '',
			viewed_at  DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_views_viewed_at ON views(viewed_at DESC);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	var errs []error
	if s.readDB != nil {
		errs = append(errs, s.readDB.Close())
	}
	if s.writeDB != nil {
		errs = append(errs, s.writeDB.Close())
	}
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// Record notes that an article was opened. A repeat view bumps the
// timestamp.
func (s *Store) Record(a api.Article) error {
	if a.ID == "" {
		return fmt.Errorf("recording view: article has no id")
	}
	_, err := s.writeDB.Exec(`
		INSERT INTO views (article_id, headline, url, source, viewed_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(article_id) DO UPDATE SET
			headline = excluded.headline,
			viewed_at = excluded.viewed_at
	`, a.ID, a.Headline, a.URL, a.Source, time.Now())
	return err
}

// Recent lists views, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.readDB.Query(`
		SELECT article_id, headline, url, source, viewed_at
		FROM views ORDER BY viewed_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ArticleID, &e.Headline, &e.URL, &e.Source, &e.ViewedAt); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Prune deletes views older than the retention window and returns how
// many went away.
func (s *Store) Prune(olderThan time.Duration) (int64, error) {
	res, err := s.writeDB.Exec(`DELETE FROM views WHERE viewed_at < ?`, time.Now().Add(-olderThan))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Clear empties the history.
func (s *Store) Clear() error {
	_, err := s.writeDB.Exec(`DELETE FROM views`)
	return err
}
