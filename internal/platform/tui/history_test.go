package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/TJ42-dev/Block-Town-Survivors/internal/progression"
	"github.com/TJ42-dev/Block-Town-Survivors/internal/sim"
	"github.com/TJ42-dev/Block-Town-Survivors/internal/storage"
)

func TestHistoryRecentRuns(t *testing.T) {
	store := newMemStore()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, kills := range []int{3, 9} {
		run := storage.NewRun("tester", "arena", 7, progression.CharacterTom, "normal",
			sim.Report{EnemiesKilled: kills, TimeSurvived: 90, LevelReached: 2, MoneyEarned: 1500})
		run.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		store.runs = append(store.runs, run)
	}
	store.runs = append(store.runs, storage.NewRun("someone-else", "arena", 1, progression.CharacterTom, "easy", sim.Report{}))

	m := NewHistoryModel(store, "tester", testRuntime)

	runs := m.Runs()
	if len(runs) != 2 {
		t.Fatalf("Runs() returned %d runs, expected 2", len(runs))
	}
	if runs[0].Report.EnemiesKilled != 9 {
		t.Errorf("first run kills = %d, expected the newest run first", runs[0].Report.EnemiesKilled)
	}

	rows := m.table.Rows()
	if len(rows) != 2 {
		t.Fatalf("table has %d rows, expected 2", len(rows))
	}
	expected := []string{"1", "", "Arena", "TOM", "01:30", "9", "2", "$1,500"}
	for i, want := range expected {
		if want != "" && rows[0][i] != want {
			t.Errorf("row 0 column %d = %q, expected %q", i, rows[0][i], want)
		}
	}
	if !strings.Contains(m.View(), "RECENT RUNS - tester") {
		t.Error("View() should show the recent title")
	}
}

func TestHistoryToggleShowsLoadError(t *testing.T) {
	m := tea.Model(NewHistoryModel(newMemStore(), "tester", testRuntime))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})

	h := m.(HistoryModel)
	if !h.best {
		t.Fatal("tab should switch to best runs")
	}
	view := h.View()
	if !strings.Contains(view, "BEST RUNS") || !strings.Contains(view, errBestUnsupported.Error()) {
		t.Errorf("View() = %q, expected the best title and the load error", view)
	}
}

func TestHistoryWithoutStore(t *testing.T) {
	m := NewHistoryModel(nil, "tester", testRuntime)
	if !strings.Contains(m.View(), "unavailable") {
		t.Error("View() should explain that history is unavailable")
	}

	next, _ := m.Update(runeKey("q"))
	if !next.(HistoryModel).IsQuitting() {
		t.Error("q should quit")
	}
}
