package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/TJ42-dev/Block-Town-Survivors/internal/progression"
	"github.com/TJ42-dev/Block-Town-Survivors/internal/sim"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "save.db")

	store, err := OpenSQLite(context.Background(), dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
	if store.Path() != dbPath {
		t.Errorf("Path() = %q, expected %q", store.Path(), dbPath)
	}
}

func TestOpenExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open(context.Background(), "~/.blocktown/save.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	want := filepath.Join(home, ".blocktown", "save.db")
	if _, err := os.Stat(want); err != nil {
		t.Errorf("expected database at %s: %v", want, err)
	}
}

func TestLoadSaveMissingProfile(t *testing.T) {
	store := openTestStore(t)

	got, err := store.LoadSave(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("LoadSave() failed: %v", err)
	}
	if got != progression.DefaultSave() {
		t.Errorf("LoadSave() = %+v, expected %+v", got, progression.DefaultSave())
	}
}

func TestSaveRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	data := progression.DefaultSave()
	data.TotalCash = 1234
	data.Upgrades.DamageLevel = 3

	if err := store.WriteSave(ctx, "alice", data); err != nil {
		t.Fatalf("WriteSave() failed: %v", err)
	}
	got, err := store.LoadSave(ctx, "alice")
	if err != nil {
		t.Fatalf("LoadSave() failed: %v", err)
	}
	if got != data {
		t.Errorf("LoadSave() = %+v, expected %+v", got, data)
	}

	// Overwrite.
	data.TotalCash = 0
	if err := store.WriteSave(ctx, "alice", data); err != nil {
		t.Fatalf("WriteSave() failed: %v", err)
	}
	got, _ = store.LoadSave(ctx, "alice")
	if got.TotalCash != 0 {
		t.Errorf("TotalCash after overwrite = %d, expected 0", got.TotalCash)
	}

	// Other profiles are untouched.
	other, _ := store.LoadSave(ctx, "bob")
	if other != progression.DefaultSave() {
		t.Errorf("LoadSave(bob) = %+v, expected default", other)
	}
}

func TestEmptyProfileIsDefault(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	data := progression.DefaultSave()
	data.TotalCash = 77
	if err := store.WriteSave(ctx, "", data); err != nil {
		t.Fatalf("WriteSave() failed: %v", err)
	}
	got, _ := store.LoadSave(ctx, DefaultProfile)
	if got.TotalCash != 77 {
		t.Errorf("TotalCash = %d, expected 77", got.TotalCash)
	}
}

func TestWriteSaveNormalizes(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.WriteSave(ctx, "p", progression.PersistentData{TotalCash: -5}); err != nil {
		t.Fatalf("WriteSave() failed: %v", err)
	}
	got, _ := store.LoadSave(ctx, "p")
	if got != progression.DefaultSave() {
		t.Errorf("LoadSave() = %+v, expected %+v", got, progression.DefaultSave())
	}
}

func TestLoadSaveCorrupt(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.db.ExecContext(ctx,
		"INSERT INTO saves (profile, save_key, data, updated_at) VALUES (?, ?, ?, ?)",
		"broken", SaveKey, "{not json", 0)
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	got, err := store.LoadSave(ctx, "broken")
	if !errors.Is(err, ErrCorruptSave) {
		t.Errorf("LoadSave() error = %v, expected ErrCorruptSave", err)
	}
	if got != progression.DefaultSave() {
		t.Errorf("LoadSave() = %+v, expected default save", got)
	}
}

func TestLoadSavePartialBlob(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.db.ExecContext(ctx,
		"INSERT INTO saves (profile, save_key, data, updated_at) VALUES (?, ?, ?, ?)",
		"legacy", SaveKey, `{"totalCash": 500}`, 0)
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	got, err := store.LoadSave(ctx, "legacy")
	if err != nil {
		t.Fatalf("LoadSave() failed: %v", err)
	}
	want := progression.DefaultSave()
	want.TotalCash = 500
	if got != want {
		t.Errorf("LoadSave() = %+v, expected %+v", got, want)
	}
}

func TestRecordRun(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	report := sim.Report{EnemiesKilled: 12, MoneyEarned: 120, TimeSurvived: 95, LevelReached: 3}
	run, err := store.RecordRun(ctx, NewRun("", "arena", 31337, progression.CharacterHank, "normal", report))
	if err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}
	if run.ID == "" {
		t.Error("RecordRun() did not assign an ID")
	}
	if run.CreatedAt.IsZero() {
		t.Error("RecordRun() did not assign CreatedAt")
	}

	runs, err := store.RecentRuns(ctx, DefaultProfile, 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("RecentRuns() returned %d runs, expected 1", len(runs))
	}
	got := runs[0]
	if got.ID != run.ID || got.Map != "arena" || got.Seed != 31337 ||
		got.Character != progression.CharacterHank || got.Difficulty != "normal" || got.Report != report {
		t.Errorf("RecentRuns()[0] = %+v, expected %+v", got, run)
	}
	if !got.CreatedAt.Equal(run.CreatedAt.Truncate(time.Millisecond)) {
		t.Errorf("CreatedAt = %v, expected %v", got.CreatedAt, run.CreatedAt)
	}
}

func TestRecentAndBestRuns(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	runs := []struct {
		id      string
		minutes int
		time    int
		kills   int
	}{
		{"a", 0, 60, 5},
		{"b", 1, 300, 40},
		{"c", 2, 120, 10},
		{"d", 3, 300, 55},
		{"e", 4, 30, 1},
	}
	for _, r := range runs {
		rec := NewRun("p", "arena", 1, progression.CharacterTom, "normal",
			sim.Report{TimeSurvived: r.time, EnemiesKilled: r.kills, LevelReached: 1})
		rec.ID = r.id
		rec.CreatedAt = base.Add(time.Duration(r.minutes) * time.Minute)
		if _, err := store.RecordRun(ctx, rec); err != nil {
			t.Fatalf("RecordRun(%s) failed: %v", r.id, err)
		}
	}
	// Different profile.
	if _, err := store.RecordRun(ctx, NewRun("q", "arena", 1, progression.CharacterTom, "normal",
		sim.Report{TimeSurvived: 999})); err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}

	tests := []struct {
		name  string
		query func(context.Context, string, int) ([]RunRecord, error)
		limit int
		want  []string
	}{
		{"recent", store.RecentRuns, 10, []string{"e", "d", "c", "b", "a"}},
		{"recent limited", store.RecentRuns, 2, []string{"e", "d"}},
		{"best", store.BestRuns, 10, []string{"d", "b", "c", "a", "e"}},
		{"best limited", store.BestRuns, 3, []string{"d", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.query(ctx, "p", tt.limit)
			if err != nil {
				t.Fatalf("query failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d runs, expected %d", len(got), len(tt.want))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("run[%d] = %s, expected %s", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestClampLimit(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-1, defaultRunLimit},
		{0, defaultRunLimit},
		{5, 5},
		{maxRunLimit + 1, maxRunLimit},
	}

	for _, tt := range tests {
		if got := clampLimit(tt.in); got != tt.want {
			t.Errorf("clampLimit(%d) = %d, expected %d", tt.in, got, tt.want)
		}
	}
}

func TestRebindPlaceholders(t *testing.T) {
	tests := []struct {
		numbered bool
		in, want string
	}{
		{false, "SELECT a FROM t WHERE x = ? AND y = ?", "SELECT a FROM t WHERE x = ? AND y = ?"},
		{true, "SELECT a FROM t WHERE x = ? AND y = ?", "SELECT a FROM t WHERE x = $1 AND y = $2"},
		{true, "SELECT 1", "SELECT 1"},
	}

	for _, tt := range tests {
		s := &sqlStore{numbered: tt.numbered}
		if got := s.q(tt.in); got != tt.want {
			t.Errorf("q(%q) = %q, expected %q", tt.in, got, tt.want)
		}
	}
}

// TestPostgresStore runs against a live database when BLOCKTOWN_TEST_POSTGRES
// holds a connection string.
func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("BLOCKTOWN_TEST_POSTGRES")
	if dsn == "" {
		t.Skip("BLOCKTOWN_TEST_POSTGRES not set")
	}
	ctx := context.Background()

	store, err := Open(ctx, dsn)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	profile := "test-" + time.Now().Format("150405.000000")
	data := progression.DefaultSave()
	data.TotalCash = 42
	if err := store.WriteSave(ctx, profile, data); err != nil {
		t.Fatalf("WriteSave() failed: %v", err)
	}
	got, err := store.LoadSave(ctx, profile)
	if err != nil {
		t.Fatalf("LoadSave() failed: %v", err)
	}
	if got != data {
		t.Errorf("LoadSave() = %+v, expected %+v", got, data)
	}

	if _, err := store.RecordRun(ctx, NewRun(profile, "arena", 7, progression.CharacterTom, "easy",
		sim.Report{TimeSurvived: 10, LevelReached: 1})); err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}
	runs, err := store.RecentRuns(ctx, profile, 5)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("RecentRuns() returned %d runs, expected 1", len(runs))
	}
}
