package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/TJ42-dev/Block-Town-Survivors/internal/config"
	"github.com/TJ42-dev/Block-Town-Survivors/internal/progression"
	"github.com/TJ42-dev/Block-Town-Survivors/internal/sim"
)

// fakeClock is a manually advanced run clock.
type fakeClock struct{ now time.Duration }

func (c *fakeClock) read() time.Duration { return c.now }

func newTestGame(t *testing.T, store *memStore, opts ...func(*Settings)) (GameModel, *fakeClock) {
	t.Helper()
	settings := DefaultSettings()
	settings.Profile = "tester"
	settings.Map = "arena"
	settings.Seed = 42
	settings.Options.SoundEnabled = false
	for _, o := range opts {
		o(&settings)
	}

	env := Env{Tuning: config.DefaultGameConfig()}
	if store != nil {
		env.Store = store
	}
	m := NewGameModel(env, settings, progression.DefaultSave(), testRuntime)

	// The run started at a real clock reading close to zero; the fake clock
	// continues from one second.
	clk := &fakeClock{now: time.Second}
	m.clock = clk.read
	return m, clk
}

func update(m tea.Model, msg tea.Msg) GameModel {
	next, _ := m.Update(msg)
	return next.(GameModel)
}

func TestGameModelStartsRunning(t *testing.T) {
	m, _ := newTestGame(t, nil)

	if m.sim.State() != sim.StateRunning {
		t.Fatalf("State() = %v, expected running", m.sim.State())
	}
	if m.seed != 42 || m.mapCfg.Seed != 42 {
		t.Errorf("seed = %d, map seed = %d, expected both 42", m.seed, m.mapCfg.Seed)
	}
	if m.preset.Name != "arena" {
		t.Errorf("preset = %q, expected arena", m.preset.Name)
	}
	if !strings.Contains(m.View(), "AMMO") {
		t.Error("View() should show the HUD")
	}
}

func TestGameModelUnknownMapFallsBack(t *testing.T) {
	m, _ := newTestGame(t, nil, func(s *Settings) { s.Map = "atlantis" })
	if m.preset.Name == "" || m.preset.Name == "atlantis" {
		t.Errorf("preset = %q, expected the default preset", m.preset.Name)
	}
}

func TestGameModelFire(t *testing.T) {
	m, clk := newTestGame(t, nil)
	before := m.snap.Ammo

	m = update(m, runeKey(" "))
	clk.now += 50 * time.Millisecond
	m = update(m, TickMsg{})

	if m.snap.Ammo != before-1 {
		t.Errorf("Ammo after firing = %d, expected %d", m.snap.Ammo, before-1)
	}
}

func TestGameModelPause(t *testing.T) {
	m, clk := newTestGame(t, nil)

	m = update(m, runeKey("p"))
	if !m.sim.Paused() {
		t.Fatal("p should pause the run")
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("View() should show the pause dialog")
	}

	elapsed := m.snap.ElapsedMS
	clk.now += 10 * time.Second
	m = update(m, TickMsg{})
	if m.snap.ElapsedMS != elapsed {
		t.Errorf("ElapsedMS moved while paused: %d -> %d", elapsed, m.snap.ElapsedMS)
	}

	m = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.sim.Paused() {
		t.Error("enter should resume the run")
	}
}

func TestGameModelLeave(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyMsg
		back bool
		quit bool
	}{
		{"quit", []tea.KeyMsg{runeKey("q")}, false, true},
		{"abandon from pause", []tea.KeyMsg{runeKey("p"), runeKey("b")}, true, false},
		{"b while running", []tea.KeyMsg{runeKey("b")}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestGame(t, nil)
			for _, k := range tt.keys {
				m = update(m, k)
			}
			if m.BackToMenu() != tt.back || m.IsQuitting() != tt.quit {
				t.Errorf("BackToMenu() = %v, IsQuitting() = %v, expected %v, %v",
					m.BackToMenu(), m.IsQuitting(), tt.back, tt.quit)
			}
		})
	}
}

func TestGameModelFinishRun(t *testing.T) {
	store := newMemStore()
	m, _ := newTestGame(t, store, func(s *Settings) { s.Options.UnlimitedCash = true })

	m.finishRun()

	if got := m.Save().TotalCash; got != progression.UnlimitedCashAmount {
		t.Errorf("TotalCash = %d, expected %d", got, progression.UnlimitedCashAmount)
	}
	if got := store.saves["tester"].TotalCash; got != progression.UnlimitedCashAmount {
		t.Errorf("stored TotalCash = %d, expected %d", got, progression.UnlimitedCashAmount)
	}
	if len(store.runs) != 1 {
		t.Fatalf("recorded %d runs, expected 1", len(store.runs))
	}
	run := store.runs[0]
	if run.Profile != "tester" || run.Map != "arena" || run.Seed != 42 || run.Difficulty != "normal" {
		t.Errorf("run = %+v, unexpected identity", run)
	}
	if run.Character != progression.CharacterTom {
		t.Errorf("run character = %v, expected %v", run.Character, progression.CharacterTom)
	}
}

func TestGameModelFinishRunWithoutStore(t *testing.T) {
	m, _ := newTestGame(t, nil)
	m.finishRun()
	if !m.recorded {
		t.Error("finishRun() should mark the run recorded")
	}
}

func TestGameOverLines(t *testing.T) {
	save := progression.DefaultSave()
	save.TotalCash = 900
	lines := gameOverLines(sim.Report{TimeSurvived: 75, EnemiesKilled: 12, LevelReached: 4, MoneyEarned: 120}, save)

	text := strings.Join(lines, "\n")
	for _, want := range []string{"01:15", "12", "$120", "$900"} {
		if !strings.Contains(text, want) {
			t.Errorf("gameOverLines() missing %q", want)
		}
	}
}

func TestPerkLines(t *testing.T) {
	perks := []progression.Perk{
		{Label: "Adrenaline", Rarity: progression.RarityCommon},
		{Label: "Hollow Points", Rarity: progression.RarityRare},
	}
	lines := perkLines(perks)
	if len(lines) != 4 {
		t.Fatalf("perkLines() returned %d lines, expected 4", len(lines))
	}
	if !strings.HasPrefix(lines[0], "1) Adrenaline") || !strings.HasPrefix(lines[1], "2) Hollow Points") {
		t.Errorf("perkLines() = %q", lines[:2])
	}
}
