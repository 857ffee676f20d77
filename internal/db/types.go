package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"sortbench/internal/benchmark"
)

// runStore holds the SQL shared by the SQLite and Postgres stores. Queries
// are written with ? placeholders and rebound for the target driver.
type runStore struct {
	db     *sql.DB
	rebind func(query string) string
	// insertRun inserts the runs row and returns its ID.
	insertRun func(ctx context.Context, tx *sql.Tx, createdAt time.Time, runs int, seed int64, sizes string) (int64, error)
}

// Close closes the database connection
func (s *runStore) Close() error {
	return s.db.Close()
}

// Save stores the run and its results in one transaction and sets run.ID.
func (s *runStore) Save(ctx context.Context, run *benchmark.Run) error {
	sizes, err := json.Marshal(run.Sizes)
	if err != nil {
		return fmt.Errorf("failed to marshal sizes: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	id, err := s.insertRun(ctx, tx, run.Timestamp, run.Runs, int64(run.Seed), string(sizes))
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	query := s.rebind(`INSERT INTO results (run_id, distribution, algorithm, size, avg_seconds) VALUES (?, ?, ?, ?, ?)`)
	for _, r := range run.Results {
		if _, err := tx.ExecContext(ctx, query, id, r.Distribution, r.Algorithm, r.Size, r.AvgSeconds); err != nil {
			return fmt.Errorf("failed to insert result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	run.ID = id
	return nil
}

// LoadAll returns every stored run, oldest first.
func (s *runStore) LoadAll(ctx context.Context) ([]benchmark.Run, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, created_at, runs, seed, sizes FROM runs ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []benchmark.Run{}
	index := make(map[int64]int)
	for rows.Next() {
		var (
			run   benchmark.Run
			seed  int64
			sizes string
		)
		if err := rows.Scan(&run.ID, &run.Timestamp, &run.Runs, &seed, &sizes); err != nil {
			return nil, err
		}
		run.Seed = uint64(seed)
		if err := json.Unmarshal([]byte(sizes), &run.Sizes); err != nil {
			return nil, fmt.Errorf("failed to unmarshal sizes of run %d: %w", run.ID, err)
		}
		index[run.ID] = len(runs)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return runs, nil
	}

	resRows, err := s.db.QueryContext(ctx, `SELECT run_id, distribution, algorithm, size, avg_seconds FROM results ORDER BY run_id, id`)
	if err != nil {
		return nil, err
	}
	defer resRows.Close()

	for resRows.Next() {
		var (
			runID int64
			r     benchmark.Result
		)
		if err := resRows.Scan(&runID, &r.Distribution, &r.Algorithm, &r.Size, &r.AvgSeconds); err != nil {
			return nil, err
		}
		if i, ok := index[runID]; ok {
			runs[i].Results = append(runs[i].Results, r)
		}
	}
	return runs, resRows.Err()
}

// LoadLatest returns the most recent run, or nil when none is stored.
func (s *runStore) LoadLatest(ctx context.Context) (*benchmark.Run, error) {
	runs, err := s.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[len(runs)-1], nil
}
