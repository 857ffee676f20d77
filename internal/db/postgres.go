package db

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

// PostgresStore implements benchmark.Store using PostgreSQL
type PostgresStore struct {
	runStore
}

// NewPostgresStore creates a new Postgres store and applies migrations
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := newPostgresStore(db)
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

func newPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{runStore{
		db:     db,
		rebind: dollarPlaceholders,
		insertRun: func(ctx context.Context, tx *sql.Tx, createdAt time.Time, runs int, seed int64, sizes string) (int64, error) {
			// lib/pq does not support LastInsertId
			var id int64
			err := tx.QueryRowContext(ctx,
				`INSERT INTO runs (created_at, runs, seed, sizes) VALUES ($1, $2, $3, $4) RETURNING id`,
				createdAt, runs, seed, sizes).Scan(&id)
			return id, err
		},
	}}
}

// dollarPlaceholders rewrites ? placeholders as $1, $2, ...
func dollarPlaceholders(query string) string {
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *PostgresStore) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id BIGSERIAL PRIMARY KEY,
			created_at TIMESTAMPTZ NOT NULL,
			runs INTEGER NOT NULL,
			seed BIGINT NOT NULL DEFAULT 0,
			sizes TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS results (
			id BIGSERIAL PRIMARY KEY,
			run_id BIGINT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			distribution TEXT NOT NULL,
			algorithm TEXT NOT NULL,
			size INTEGER NOT NULL,
			avg_seconds DOUBLE PRECISION NOT NULL
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
