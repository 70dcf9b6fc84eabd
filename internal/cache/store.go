package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"
)

// Store is a TTL-bounded response cache backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
	ttl  time.Duration
	now  func() time.Time
}

// Option customizes a Store.
type Option func(*Store)

// WithClock overrides the time source (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// Open creates or connects to the cache database at path. A non-positive ttl
// disables expiry.
func Open(ctx context.Context, path string, ttl time.Duration, opts ...Option) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("cache path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{
		db:   db,
		path: path,
		lock: flock.New(path + ".lock"),
		ttl:  ttl,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(store)
	}
	if err := store.withLock(ctx, func() error { return store.initSchema(ctx) }); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Key derives the cache key for one generation request.
func Key(provider, model, systemPrompt, prompt string) string {
	h := sha256.New()
	for _, part := range []string{provider, model, systemPrompt, prompt} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached response for key when present and fresh.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var (
		response  string
		createdAt int64
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT response, created_at FROM responses WHERE key = ?", key,
	).Scan(&response, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read cache entry: %w", err)
	}
	if s.expired(createdAt) {
		return "", false, nil
	}
	if err := s.exec(ctx, "UPDATE responses SET hits = hits + 1 WHERE key = ?", key); err != nil {
		return "", false, fmt.Errorf("record cache hit: %w", err)
	}
	return response, true, nil
}

// Put stores or replaces a response.
func (s *Store) Put(ctx context.Context, key, provider, model, response string) error {
	err := s.exec(ctx, `INSERT INTO responses (key, provider, model, response, created_at, hits)
		VALUES (?, ?, ?, ?, ?, 0)
		ON CONFLICT(key) DO UPDATE SET response = excluded.response, created_at = excluded.created_at, hits = 0`,
		key, provider, model, response, s.now().Unix())
	if err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}

// Prune deletes expired entries and returns how many were removed.
func (s *Store) Prune(ctx context.Context) (int64, error) {
	if s.ttl <= 0 {
		return 0, nil
	}
	var removed int64
	err := s.withLock(ctx, func() error {
		cutoff := s.now().Add(-s.ttl).Unix()
		return retryOnBusy(ctx, func() error {
			res, err := s.db.ExecContext(ctx, "DELETE FROM responses WHERE created_at <= ?", cutoff)
			if err != nil {
				return err
			}
			removed, err = res.RowsAffected()
			return err
		})
	})
	if err != nil {
		return 0, fmt.Errorf("prune cache: %w", err)
	}
	return removed, nil
}

// Stats summarizes cache contents.
type Stats struct {
	Entries int64
	Hits    int64
}

// Stats reports entry and hit totals.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(1), COALESCE(SUM(hits), 0) FROM responses").Scan(&st.Entries, &st.Hits)
	if err != nil {
		return Stats{}, fmt.Errorf("read cache stats: %w", err)
	}
	return st, nil
}

func (s *Store) expired(createdAt int64) bool {
	if s.ttl <= 0 {
		return false
	}
	return !s.now().Before(time.Unix(createdAt, 0).Add(s.ttl))
}

func (s *Store) withLock(ctx context.Context, fn func() error) error {
	ok, err := s.lock.TryLockContext(ctx, 50*time.Millisecond)
	if err != nil {
		return fmt.Errorf("acquire cache lock: %w", err)
	}
	if !ok {
		return errors.New("acquire cache lock: lock held by another process")
	}
	defer func() { _ = s.lock.Unlock() }()
	return fn()
}

func (s *Store) exec(ctx context.Context, query string, args ...any) error {
	return retryOnBusy(ctx, func() error {
		_, err := s.db.ExecContext(ctx, query, args...)
		return err
	})
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}
