package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/TJ42-dev/Block-Town-Survivors/internal/progression"
)

// sqlStore is the database/sql implementation shared by both backends.
// Queries are written with ? placeholders; numbered dialects rebind them.
type sqlStore struct {
	db       *sql.DB
	numbered bool
}

func (s *sqlStore) q(query string) string {
	if !s.numbered {
		return query
	}
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

// Close closes the database connection.
func (s *sqlStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *sqlStore) LoadSave(ctx context.Context, profile string) (progression.PersistentData, error) {
	var blob string
	err := s.db.QueryRowContext(ctx,
		s.q("SELECT data FROM saves WHERE profile = ? AND save_key = ?"),
		profileOrDefault(profile), SaveKey,
	).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return progression.DefaultSave(), nil
	}
	if err != nil {
		return progression.DefaultSave(), fmt.Errorf("storage: cannot load save: %w", err)
	}
	return decodeSave([]byte(blob))
}

func (s *sqlStore) WriteSave(ctx context.Context, profile string, data progression.PersistentData) error {
	blob, err := encodeSave(data)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		s.q(`INSERT INTO saves (profile, save_key, data, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (profile, save_key)
		 DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`),
		profileOrDefault(profile), SaveKey, string(blob), time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write save: %w", err)
	}
	return nil
}

// RecordRun inserts a finished run and returns it with ID and CreatedAt set.
func (s *sqlStore) RecordRun(ctx context.Context, run RunRecord) (RunRecord, error) {
	run = prepareRun(run)
	_, err := s.db.ExecContext(ctx,
		s.q(`INSERT INTO runs
		 (id, profile, map_name, seed, character_id, difficulty,
		  enemies_killed, money_earned, money_spent, time_survived, level_reached, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		run.ID, run.Profile, run.Map, run.Seed, string(run.Character), run.Difficulty,
		run.Report.EnemiesKilled, run.Report.MoneyEarned, run.Report.MoneySpent,
		run.Report.TimeSurvived, run.Report.LevelReached, run.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return run, fmt.Errorf("storage: cannot record run: %w", err)
	}
	return run, nil
}

const runColumns = `id, profile, map_name, seed, character_id, difficulty,
	enemies_killed, money_earned, money_spent, time_survived, level_reached, created_at`

// RecentRuns lists the profile's runs, newest first.
func (s *sqlStore) RecentRuns(ctx context.Context, profile string, limit int) ([]RunRecord, error) {
	return s.queryRuns(ctx,
		`SELECT `+runColumns+` FROM runs
		 WHERE profile = ?
		 ORDER BY created_at DESC, id
		 LIMIT ?`,
		profileOrDefault(profile), clampLimit(limit),
	)
}

// BestRuns lists the profile's longest runs; kills break ties, then the
// earlier run wins.
func (s *sqlStore) BestRuns(ctx context.Context, profile string, limit int) ([]RunRecord, error) {
	return s.queryRuns(ctx,
		`SELECT `+runColumns+` FROM runs
		 WHERE profile = ?
		 ORDER BY time_survived DESC, enemies_killed DESC, created_at ASC, id
		 LIMIT ?`,
		profileOrDefault(profile), clampLimit(limit),
	)
}

func (s *sqlStore) queryRuns(ctx context.Context, query string, args ...any) ([]RunRecord, error) {
	rows, err := s.db.QueryContext(ctx, s.q(query), args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var (
			r         RunRecord
			character string
			createdAt int64
		)
		if err := rows.Scan(
			&r.ID, &r.Profile, &r.Map, &r.Seed, &character, &r.Difficulty,
			&r.Report.EnemiesKilled, &r.Report.MoneyEarned, &r.Report.MoneySpent,
			&r.Report.TimeSurvived, &r.Report.LevelReached, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Character = progression.CharacterID(character)
		r.CreatedAt = time.UnixMilli(createdAt).UTC()
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}
