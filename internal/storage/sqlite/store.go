// Package sqlite provides a SQLite-backed snapshot and telemetry store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/louisbranch/studyhall/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/studyhall/internal/storage"
	"github.com/louisbranch/studyhall/internal/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

const timeFormat = time.RFC3339Nano

// Store provides a SQLite-backed store implementing storage interfaces.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite store at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return store, nil
}

// Close closes the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// PutSnapshot overwrites the snapshot blob stored under key.
func (s *Store) PutSnapshot(ctx context.Context, key string, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("snapshot key is required")
	}
	if len(payload) == 0 {
		return fmt.Errorf("snapshot payload is required")
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO snapshots (key, payload, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
`, key, payload, time.Now().UTC().Format(timeFormat))
	if err != nil {
		return fmt.Errorf("put snapshot: %w", err)
	}
	return nil
}

// GetSnapshot returns the snapshot blob stored under key.
func (s *Store) GetSnapshot(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(key) == "" {
		return nil, fmt.Errorf("snapshot key is required")
	}

	var payload []byte
	row := s.sqlDB.QueryRowContext(ctx, "SELECT payload FROM snapshots WHERE key = ?", key)
	if err := row.Scan(&payload); err != nil {
		if err == sql.ErrNoRows {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	return payload, nil
}

// AppendTelemetryEvent records an operational telemetry event.
func (s *Store) AppendTelemetryEvent(ctx context.Context, evt storage.TelemetryEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(evt.Name) == "" {
		return fmt.Errorf("telemetry event name is required")
	}
	ts := evt.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO telemetry_events (timestamp, severity, name, detail) VALUES (?, ?, ?, ?)
`, ts.UTC().Format(timeFormat), evt.Severity, evt.Name, evt.Detail)
	if err != nil {
		return fmt.Errorf("append telemetry event: %w", err)
	}
	return nil
}

var (
	_ storage.SnapshotStore  = (*Store)(nil)
	_ storage.TelemetryStore = (*Store)(nil)
)
