// Package store persists distance lookups and colony runs in a single
// SQLite file (pure-Go driver modernc.org/sqlite).
//
// Two repositories share one connection pool:
//
//   - DistanceCache: directed pair distances; satisfies distance.Cache.
//   - Runs: finished colony runs with their route, history and parameters.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

const (
	// DefaultDBFileName is used by the CLI when no path is given.
	DefaultDBFileName = "colony.db"
	schemaVersion     = 1
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("store: not found")

// Store is a SQLite-backed store.
type Store struct {
	db     *sql.DB
	dbPath string
	mu     sync.RWMutex

	distanceCache *DistanceCache
	runs          *Runs
}

// Open opens (creating if needed) the database at dbPath.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	log.Printf("[STORE] Opening SQLite database at: %s", dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA cache_size = -16000", // 16MB cache
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %s: %w", pragma, err)
		}
	}

	s := &Store{db: db, dbPath: dbPath}
	if err := s.initSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	s.distanceCache = &DistanceCache{store: s}
	s.runs = &Runs{store: s}

	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string { return s.dbPath }

// DistanceCache returns the pair-distance repository.
func (s *Store) DistanceCache() *DistanceCache { return s.distanceCache }

// Runs returns the run-history repository.
func (s *Store) Runs() *Runs { return s.runs }

func (s *Store) initSchema(ctx context.Context) error {
	var version int
	err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		return s.createSchema(ctx)
	}
	if version > schemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported %d", version, schemaVersion)
	}

	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY
	);
	INSERT OR IGNORE INTO schema_version (version) VALUES (1);

	-- Directed pair distances in kilometres
	CREATE TABLE IF NOT EXISTS distance_cache (
		origin_lat REAL NOT NULL,
		origin_lng REAL NOT NULL,
		dest_lat REAL NOT NULL,
		dest_lng REAL NOT NULL,
		distance_km REAL NOT NULL,
		PRIMARY KEY (origin_lat, origin_lng, dest_lat, dest_lng)
	);

	-- Finished colony runs
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at INTEGER NOT NULL,
		provider TEXT NOT NULL,
		labels TEXT NOT NULL,
		route TEXT NOT NULL,
		distance REAL NOT NULL,
		history TEXT NOT NULL,
		best_iteration INTEGER NOT NULL,
		seed INTEGER NOT NULL,
		params TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
	`

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	log.Printf("[STORE] SQLite schema initialized (version %d)", schemaVersion)
	return nil
}

// Close checkpoints the WAL and closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	_, _ = s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")

	return s.db.Close()
}
