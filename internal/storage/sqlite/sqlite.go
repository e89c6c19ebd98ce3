// Package sqlite stores request logs and the daily usage ledger in a local
// SQLite file.
package sqlite

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Storage is the SQLite-backed request log and usage ledger.
type Storage struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// schema is applied on every open; each statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS request_logs (
		id                TEXT PRIMARY KEY,
		request_id        TEXT NOT NULL,
		model             TEXT NOT NULL,
		provider          TEXT NOT NULL,
		prompt_tokens     INTEGER DEFAULT 0,
		completion_tokens INTEGER DEFAULT 0,
		total_tokens      INTEGER DEFAULT 0,
		is_streaming      INTEGER DEFAULT 0,
		status_code       INTEGER,
		error_message     TEXT,
		duration_ms       INTEGER,
		created_at        DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS usage_daily (
		date              TEXT NOT NULL,
		provider          TEXT NOT NULL DEFAULT '',
		model             TEXT NOT NULL,
		request_count     INTEGER DEFAULT 0,
		prompt_tokens     INTEGER DEFAULT 0,
		completion_tokens INTEGER DEFAULT 0,
		total_tokens      INTEGER DEFAULT 0,
		error_count       INTEGER DEFAULT 0,
		PRIMARY KEY (date, provider, model)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_logs_created ON request_logs(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_logs_model ON request_logs(model)`,
	`CREATE INDEX IF NOT EXISTS idx_logs_provider ON request_logs(provider)`,
	`CREATE INDEX IF NOT EXISTS idx_usage_date ON usage_daily(date)`,
}

// dsn enables WAL and a busy timeout so the single writer and concurrent
// readers do not fail with SQLITE_BUSY.
func dsn(path string) string {
	return path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
}

// New opens (or creates) the database at dbPath and brings its schema up
// to date.
func New(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection: SQLite serializes writers anyway.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &Storage{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Storage) init() error {
	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	if err := s.migrate(); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

// Close closes the database. Later calls are no-ops.
func (s *Storage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// newLogID returns a short prefixed row id, e.g. "log_1a2b3c4d".
func newLogID() string {
	return "log_" + uuid.NewString()[:8]
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
