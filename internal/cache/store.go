// Package cache is an optional on-disk response cache backed by SQLite.
// Entries are opaque payloads addressed by (kind, key) and expire after a TTL.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	apperrors "filmpicker/internal/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS responses (
	kind      TEXT    NOT NULL,
	key       TEXT    NOT NULL,
	payload   BLOB    NOT NULL,
	stored_at INTEGER NOT NULL,
	PRIMARY KEY (kind, key)
)`

// Store is a TTL cache in a single SQLite file.
type Store struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// Open creates (if needed) and opens the cache at path. A ttl of zero or
// less keeps entries forever.
func Open(ctx context.Context, path string, ttl time.Duration) (*Store, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, apperrors.New(apperrors.CodeConfigurationError, "cache path is empty", nil)
	}
	//nolint:gosec // G301: cache lives next to user config
	if err := os.MkdirAll(filepath.Dir(trimmed), 0755); err != nil {
		return nil, apperrors.New(apperrors.CodeCache, "create cache directory", err)
	}

	db, err := sql.Open("sqlite", buildDSN(trimmed))
	if err != nil {
		return nil, apperrors.New(apperrors.CodeCache, "open cache db", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, apperrors.New(apperrors.CodeCache, "ping cache db", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, apperrors.New(apperrors.CodeCache, "create cache schema", err)
	}
	return &Store{db: db, ttl: ttl, now: time.Now}, nil
}

// buildDSN creates a read-write WAL DSN for the given path.
func buildDSN(path string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(path),
	}
	q := url.Values{}
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "busy_timeout(3000)")
	u.RawQuery = q.Encode()
	return u.String()
}

// Get returns the payload for (kind, key). Expired entries are reported as
// misses and left for Purge.
func (s *Store) Get(ctx context.Context, kind, key string) ([]byte, bool, error) {
	var (
		payload  []byte
		storedAt int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT payload, stored_at FROM responses WHERE kind = ? AND key = ?`,
		kind, key,
	).Scan(&payload, &storedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, apperrors.New(apperrors.CodeCache, fmt.Sprintf("read %s entry", kind), err)
	}
	if s.expired(storedAt) {
		return nil, false, nil
	}
	return payload, true, nil
}

// Put stores payload under (kind, key), replacing any previous entry.
func (s *Store) Put(ctx context.Context, kind, key string, payload []byte) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO responses (kind, key, payload, stored_at) VALUES (?, ?, ?, ?)
ON CONFLICT (kind, key) DO UPDATE SET payload = excluded.payload, stored_at = excluded.stored_at`,
		kind, key, payload, s.now().UnixNano(),
	)
	if err != nil {
		return apperrors.New(apperrors.CodeCache, fmt.Sprintf("write %s entry", kind), err)
	}
	return nil
}

// Purge deletes expired entries and returns how many were removed.
func (s *Store) Purge(ctx context.Context) (int64, error) {
	if s.ttl <= 0 {
		return 0, nil
	}
	cutoff := s.now().Add(-s.ttl).UnixNano()
	res, err := s.db.ExecContext(ctx, `DELETE FROM responses WHERE stored_at < ?`, cutoff)
	if err != nil {
		return 0, apperrors.New(apperrors.CodeCache, "purge cache", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) expired(storedAt int64) bool {
	if s.ttl <= 0 {
		return false
	}
	return s.now().Sub(time.Unix(0, storedAt)) > s.ttl
}
