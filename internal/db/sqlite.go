package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore implements benchmark.Store using SQLite
type SQLiteStore struct {
	runStore
}

// NewSQLiteStore creates a new SQLite store and applies migrations
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := newSQLiteStore(db)
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

func newSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{runStore{
		db:     db,
		rebind: func(q string) string { return q },
		insertRun: func(ctx context.Context, tx *sql.Tx, createdAt time.Time, runs int, seed int64, sizes string) (int64, error) {
			res, err := tx.ExecContext(ctx,
				`INSERT INTO runs (created_at, runs, seed, sizes) VALUES (?, ?, ?, ?)`,
				createdAt, runs, seed, sizes)
			if err != nil {
				return 0, err
			}
			return res.LastInsertId()
		},
	}}
}

func (s *SQLiteStore) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at DATETIME NOT NULL,
			runs INTEGER NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			sizes TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			distribution TEXT NOT NULL,
			algorithm TEXT NOT NULL,
			size INTEGER NOT NULL,
			avg_seconds REAL NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_results_run_id ON results(run_id);`,
	}
	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}
