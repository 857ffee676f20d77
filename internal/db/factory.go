package db

import (
	"fmt"
	"strings"

	"sortbench/internal/benchmark"
)

// Default locations used when no connection string is configured.
const (
	DefaultJSONPath   = ".sortbench/history.json"
	DefaultSQLitePath = ".sortbench/history.db"
)

// StoreConfig holds configuration for the storage backend
type StoreConfig struct {
	Type             string // "json", "sqlite" or "postgres"
	ConnectionString string // File path for JSON and SQLite, DSN for Postgres
}

// NewStore creates a new history store based on the provided configuration
func NewStore(config StoreConfig) (benchmark.Store, error) {
	switch strings.ToLower(config.Type) {
	case "postgres", "postgresql":
		if config.ConnectionString == "" {
			return nil, fmt.Errorf("postgres connection string is required")
		}
		return NewPostgresStore(config.ConnectionString)
	case "sqlite", "sqlite3":
		if config.ConnectionString == "" {
			config.ConnectionString = DefaultSQLitePath
		}
		if err := ensureDir(config.ConnectionString); err != nil {
			return nil, err
		}
		return NewSQLiteStore(config.ConnectionString)
	case "json", "":
		if config.ConnectionString == "" {
			config.ConnectionString = DefaultJSONPath
		}
		return benchmark.NewFileStore(config.ConnectionString)
	default:
		return nil, fmt.Errorf("unsupported store type: %s", config.Type)
	}
}
