package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresStore keeps saves and runs in PostgreSQL, for servers where
// several frontends share one set of profiles.
type PostgresStore struct {
	sqlStore
}

// OpenPostgres connects using a lib/pq connection string and creates the
// schema if it doesn't exist.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &PostgresStore{sqlStore: sqlStore{db: db, numbered: true}}
	if err := store.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot initialize schema: %w", err)
	}
	return store, nil
}

func (s *PostgresStore) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS saves (
		profile TEXT NOT NULL,
		save_key TEXT NOT NULL,
		data JSONB NOT NULL,
		updated_at BIGINT NOT NULL,
		PRIMARY KEY (profile, save_key)
	);

	CREATE TABLE IF NOT EXISTS runs (
		id UUID PRIMARY KEY,
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
		created_at BIGINT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_recent ON runs(profile, created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(profile, time_survived DESC, enemies_killed DESC);
	`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

var (
	_ SaveStore = (*SQLiteStore)(nil)
	_ SaveStore = (*PostgresStore)(nil)
)
