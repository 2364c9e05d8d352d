// Package storage persists profile saves and run history.
//
// Two backends implement SaveStore: a pure-Go SQLite database (the default,
// kept under ~/.blocktown) and PostgreSQL for shared servers.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/TJ42-dev/Block-Town-Survivors/internal/progression"
	"github.com/TJ42-dev/Block-Town-Survivors/internal/sim"
)

// SaveKey names the save blob. Profiles are keyed by (profile, SaveKey).
const SaveKey = "blocky_town_save_v1"

// DefaultProfile is used when no profile name is given.
const DefaultProfile = "default"

// DefaultPath is the SQLite database used when no DSN is configured.
const DefaultPath = "~/.blocktown/save.db"

// SaveStore loads and writes profile saves and records finished runs.
type SaveStore interface {
	// LoadSave returns the profile's save, or progression.DefaultSave when
	// the profile has never been written.
	LoadSave(ctx context.Context, profile string) (progression.PersistentData, error)
	WriteSave(ctx context.Context, profile string, data progression.PersistentData) error
	RecordRun(ctx context.Context, run RunRecord) (RunRecord, error)
	RecentRuns(ctx context.Context, profile string, limit int) ([]RunRecord, error)
	BestRuns(ctx context.Context, profile string, limit int) ([]RunRecord, error)
	Close() error
}

// RunRecord is one finished run.
type RunRecord struct {
	ID         string
	Profile    string
	Map        string
	Seed       int32
	Character  progression.CharacterID
	Difficulty string
	Report     sim.Report
	CreatedAt  time.Time
}

// NewRun prepares a record for a finished run.
func NewRun(profile, mapName string, seed int32, character progression.CharacterID, difficulty string, report sim.Report) RunRecord {
	return RunRecord{
		Profile:    profileOrDefault(profile),
		Map:        mapName,
		Seed:       seed,
		Character:  character,
		Difficulty: difficulty,
		Report:     report,
	}
}

// Open picks a backend from dsn: postgres:// and postgresql:// URLs go to
// PostgreSQL, anything else is a SQLite file path. An empty dsn opens
// DefaultPath.
func Open(ctx context.Context, dsn string) (SaveStore, error) {
	switch {
	case dsn == "":
		return OpenSQLite(ctx, DefaultPath)
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return OpenPostgres(ctx, dsn)
	default:
		return OpenSQLite(ctx, dsn)
	}
}

const (
	defaultRunLimit = 10
	maxRunLimit     = 1000
)

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultRunLimit
	}
	return min(limit, maxRunLimit)
}

func profileOrDefault(profile string) string {
	if strings.TrimSpace(profile) == "" {
		return DefaultProfile
	}
	return profile
}

// prepareRun fills in the ID and timestamp when the caller left them empty.
func prepareRun(run RunRecord) RunRecord {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	run.Profile = profileOrDefault(run.Profile)
	return run
}

func encodeSave(data progression.PersistentData) ([]byte, error) {
	blob, err := json.Marshal(data.Normalize())
	if err != nil {
		return nil, fmt.Errorf("storage: cannot encode save: %w", err)
	}
	return blob, nil
}

// decodeSave parses a stored blob. Fields missing from older saves keep
// their default values. A corrupt blob yields the default save alongside
// the error so callers can fall back to a fresh profile.
func decodeSave(blob []byte) (progression.PersistentData, error) {
	data := progression.DefaultSave()
	if err := json.Unmarshal(blob, &data); err != nil {
		return progression.DefaultSave(), fmt.Errorf("%w: %v", ErrCorruptSave, err)
	}
	return data.Normalize(), nil
}

// ErrCorruptSave is wrapped by LoadSave when the stored blob cannot be parsed.
var ErrCorruptSave = errors.New("storage: corrupt save")
