package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/ndtran/shoutbox/internal/model"
)

// SQLiteStore implements the Store interface using a local SQLite database.
type SQLiteStore struct {
	db *sqlx.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	// Check if schema_version table exists.
	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// ReplaceFeed swaps the cached feed wholesale for the given shout-outs.
// Each row stores the raw JSON so the cache survives model additions.
func (s *SQLiteStore) ReplaceFeed(ctx context.Context, shoutouts []model.ShoutOut) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM feed_cache"); err != nil {
		return fmt.Errorf("clearing feed cache: %w", err)
	}

	const query = `
		INSERT INTO feed_cache (id, data, created_at, fetched_at)
		VALUES (?, ?, ?, ?)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing feed insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, so := range shoutouts {
		data, err := json.Marshal(so)
		if err != nil {
			return fmt.Errorf("marshaling shoutout %d: %w", so.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, so.ID, string(data), so.CreatedAt.UTC(), now); err != nil {
			return fmt.Errorf("caching shoutout %d: %w", so.ID, err)
		}
	}

	return tx.Commit()
}

// GetFeed returns the cached feed, newest first.
func (s *SQLiteStore) GetFeed(ctx context.Context) ([]model.ShoutOut, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT data FROM feed_cache ORDER BY created_at DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("querying feed cache: %w", err)
	}
	defer rows.Close()

	var shoutouts []model.ShoutOut
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning feed row: %w", err)
		}

		var so model.ShoutOut
		if err := json.Unmarshal([]byte(data), &so); err != nil {
			return nil, fmt.Errorf("unmarshaling cached shoutout: %w", err)
		}
		shoutouts = append(shoutouts, so)
	}

	return shoutouts, rows.Err()
}
