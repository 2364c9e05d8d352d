package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore keeps saves and runs in a local SQLite file.
type SQLiteStore struct {
	sqlStore
	path string
}

// OpenSQLite creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func OpenSQLite(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	dbPath, err := expandHome(dbPath)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// SQLite allows one writer at a time.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &SQLiteStore{sqlStore: sqlStore{db: db}, path: dbPath}
	if err := store.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

// Path is the resolved database file.
func (s *SQLiteStore) Path() string { return s.path }

func (s *SQLiteStore) migrate(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS saves (
			profile TEXT NOT NULL,
			save_key TEXT NOT NULL,
			data TEXT NOT NULL,
			updated_at INTEGER NOT NULL,
			PRIMARY KEY (profile, save_key)
		);

		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			profile TEXT NOT NULL,
			map_name TEXT NOT NULL,
			seed INTEGER NOT NULL,
			character_id TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			enemies_killed INTEGER NOT NULL DEFAULT 0,
			money_earned INTEGER NOT NULL DEFAULT 0,
			money_spent INTEGER NOT NULL DEFAULT 0,
			time_survived INTEGER NOT NULL DEFAULT 0,
			level_reached INTEGER NOT NULL DEFAULT 1,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_recent ON runs(profile, created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(profile, time_survived DESC, enemies_killed DESC);
	`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// expandHome expands a leading ~ to the user's home directory.
func expandHome(p string) (string, error) {
	if p == "" || p[0] != '~' {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}
