// Package postgres persists a webindex Snapshot as a single opaque
// blob in a Postgres-compatible database, an alternate backend to
// webindex.FileStore that cmd/sandcrawler selects when its
// --index-store-uri has a postgresql:// scheme.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/nicwatson/javasandcrawer/webindex"
)

const snapshotTable = "webindex_snapshots"

var (
	upsertSnapshotQuery = `
		INSERT INTO ` + snapshotTable + ` (id, data, saved_at)
		VALUES (1, $1, $2)
		ON CONFLICT (id)
		DO UPDATE SET data = $1, saved_at = $2
	`
	selectSnapshotQuery = `SELECT data FROM ` + snapshotTable + ` WHERE id = 1`
	deleteSnapshotQuery = `DELETE FROM ` + snapshotTable + ` WHERE id = 1`
)

var _ webindex.Store = (*Store)(nil)

// Store is a webindex.Store backed by Postgres. It keeps exactly one
// snapshot row, overwritten on every Save.
type Store struct {
	db *sql.DB
}

// New opens a connection to dsn, verifies it, and ensures the
// snapshot table exists.
func New(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS `+snapshotTable+` (
			id INTEGER PRIMARY KEY,
			data BYTEA NOT NULL,
			saved_at TIMESTAMPTZ NOT NULL
		)
	`); err != nil {
		return nil, fmt.Errorf("postgres: ensure schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save encodes snap and upserts it as the sole snapshot row.
func (s *Store) Save(snap webindex.Snapshot) error {
	data, err := webindex.EncodeSnapshot(snap)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, upsertSnapshotQuery, data, time.Now().UTC()); err != nil {
		return fmt.Errorf("postgres: save snapshot: %w", err)
	}

	return nil
}

// Load fetches and decodes the sole snapshot row.
func (s *Store) Load() (webindex.Snapshot, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var data []byte

	err := s.db.QueryRowContext(ctx, selectSnapshotQuery).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return webindex.Snapshot{}, fmt.Errorf("postgres: load snapshot: no snapshot saved")
		}

		return webindex.Snapshot{}, fmt.Errorf("postgres: load snapshot: %w", err)
	}

	return webindex.DecodeSnapshot(data)
}

// Clear deletes the sole snapshot row, if any.
func (s *Store) Clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, deleteSnapshotQuery); err != nil {
		return fmt.Errorf("postgres: clear snapshot: %w", err)
	}

	return nil
}
