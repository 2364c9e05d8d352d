package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/TJ42-dev/Block-Town-Survivors/internal/config"
	"github.com/TJ42-dev/Block-Town-Survivors/internal/core"
	"github.com/TJ42-dev/Block-Town-Survivors/internal/mapgen"
	"github.com/TJ42-dev/Block-Town-Survivors/internal/progression"
	"github.com/TJ42-dev/Block-Town-Survivors/internal/registry"
	"github.com/TJ42-dev/Block-Town-Survivors/internal/sim"
	"github.com/TJ42-dev/Block-Town-Survivors/internal/storage"
)

// footerHeight is the controls line under the world view.
const footerHeight = 1

const controlsHelp = "WASD move  Shift+WASD sprint  Arrows aim+fire  Space fire  R reload  P pause  Q quit"

// GameModel is the Bubble Tea model for one run and its game-over screen.
type GameModel struct {
	env       Env
	settings  Settings
	config    RuntimeConfig
	clock     func() time.Duration
	keyMapper *KeyMapper
	latch     *InputLatch
	screen    *core.Screen

	save     progression.PersistentData
	preset   registry.Preset
	mapCfg   mapgen.Config
	seed     int32
	world    *mapgen.Map
	sim      *sim.Simulation
	snap     sim.Snapshot
	recorded bool

	quitting   bool
	backToMenu bool
}

// NewGameModel starts a run for save with the given settings.
func NewGameModel(env Env, settings Settings, save progression.PersistentData, cfg RuntimeConfig) GameModel {
	epoch := time.Now()
	m := GameModel{
		env:       env,
		settings:  settings,
		config:    cfg,
		clock:     func() time.Duration { return time.Since(epoch) },
		keyMapper: NewKeyMapper(),
		latch:     NewInputLatch(0),
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		save:      save,
	}
	m.newRun()
	return m
}

// newRun generates the map and starts a fresh simulation. A fixed seed in
// the settings pins both the layout and the run; otherwise the preset's
// layout is kept and the run gets a random seed.
func (m *GameModel) newRun() {
	m.preset, _ = registry.Lookup(m.settings.Map)
	if m.preset.Name == "" {
		m.preset, _ = registry.Lookup(registry.DefaultPreset)
	}
	m.mapCfg = registry.Get(m.settings.Map)
	m.seed = m.settings.Seed
	if m.seed != 0 {
		m.mapCfg.Seed = m.seed
	} else {
		m.seed = registry.RandomSeed()
	}
	m.world = mapgen.Generate(m.mapCfg)

	tuning := m.env.Tuning
	config.ApplyPreset(&tuning, m.settings.Difficulty)

	opts := append(m.env.listeners(), sim.WithLogger(m.env.logger()))
	m.sim = sim.New(sim.Config{
		Tuning:    tuning,
		Stats:     progression.CalculateStats(m.save.Upgrades),
		Options:   m.settings.Options,
		Seed:      m.seed,
		WorldSize: m.mapCfg.WorldSize,
	}, m.world, opts...)

	m.recorded = false
	m.latch.Reset()
	if a := m.env.Audio; a != nil {
		a.SetEnabled(m.settings.Options.SoundEnabled)
		a.StartMusic()
	}
	m.sim.Start(m.clock())
	m.snap = m.sim.Snapshot()
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	now := m.clock()

	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.abandon()
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case m.sim.State() == sim.StateTerminated:
		switch action {
		case core.ActionRestart, core.ActionConfirm:
			m.newRun()
		case core.ActionBack, core.ActionPause:
			m.backToMenu = true
		}

	case len(m.sim.PendingPerks()) > 0:
		if i, ok := m.keyMapper.PerkChoice(msg, len(m.sim.PendingPerks())); ok {
			if err := m.sim.SelectPerk(now, i); err != nil {
				m.env.logger().Warn("perk selection failed", "err", err)
			}
		} else if action == core.ActionPause {
			m.togglePause(now)
		}

	case m.sim.Paused():
		switch action {
		case core.ActionPause, core.ActionConfirm:
			m.togglePause(now)
		case core.ActionBack:
			m.abandon()
			m.backToMenu = true
		}

	case action == core.ActionPause:
		m.togglePause(now)

	default:
		m.latch.Press(msg.String(), now)
	}

	m.snap = m.sim.Snapshot()
	return m, nil
}

func (m *GameModel) togglePause(now time.Duration) {
	if m.sim.Paused() {
		m.sim.Resume(now)
		return
	}
	m.latch.Reset()
	m.sim.Pause(now)
}

// abandon stops the music of a run that is left before game over.
func (m *GameModel) abandon() {
	if a := m.env.Audio; a != nil && m.sim.State() != sim.StateTerminated {
		a.StopMusic()
	}
}

// handleTick advances the simulation to the current clock reading.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	now := m.clock()
	m.sim.Tick(now, m.latch.Input(now, m.sim.Player()))
	m.snap = m.sim.Snapshot()

	if m.sim.State() == sim.StateTerminated && !m.recorded {
		m.finishRun()
	}
	return m, tickCmd(m.config.TickRate)
}

// finishRun banks the run's earnings and records it. Persistence is
// best-effort: failures are logged and the game continues.
func (m *GameModel) finishRun() {
	m.recorded = true
	report := m.sim.Report()
	m.save = progression.DepositEarnings(m.save, report.MoneyEarned)

	if a := m.env.Audio; a != nil {
		a.StopMusic()
	}

	store := m.env.Store
	if store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := store.WriteSave(ctx, m.settings.Profile, m.save); err != nil {
		m.env.logger().Warn("could not write save", "profile", m.settings.Profile, "err", err)
	}
	run := storage.NewRun(m.settings.Profile, m.preset.Name, m.seed,
		m.settings.Options.CharacterID, string(m.settings.Difficulty), report)
	if _, err := store.RecordRun(ctx, run); err != nil {
		m.env.logger().Warn("could not record run", "err", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.render()

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".blocktown", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	filename := fmt.Sprintf("%s_%s.txt", m.preset.Name, time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// render draws the current frame into the screen buffer.
func (m *GameModel) render() {
	s := m.screen
	s.Clear()
	if s.Width() == 0 || s.Height() == 0 {
		return
	}

	drawHUD(s, m.snap, m.preset.Title)
	area := core.NewRect(0, hudHeight, s.Width(), max(0, s.Height()-hudHeight-footerHeight))
	drawWorld(s, area, m.world, m.mapCfg.WorldSize, m.snap)
	drawAim(s, area, m.snap, m.latch.Facing())
	s.DrawText(0, s.Height()-1, controlsHelp, core.ColorDarkGray)

	switch {
	case m.sim.State() == sim.StateTerminated:
		drawDialog(s, area, "GAME OVER", gameOverLines(m.sim.Report(), m.save), core.ColorBrightRed)
	case len(m.sim.PendingPerks()) > 0:
		drawDialog(s, area, fmt.Sprintf("LEVEL %d", m.snap.Level), perkLines(m.sim.PendingPerks()), core.ColorBrightYellow)
	case m.sim.Paused():
		drawDialog(s, area, "PAUSED", []string{"P/Enter: resume", "B: abandon run", "Q: quit"}, core.ColorCyan)
	}
}

func perkLines(perks []progression.Perk) []string {
	lines := make([]string, 0, len(perks)+2)
	for i, p := range perks {
		lines = append(lines, fmt.Sprintf("%d) %-22s %-6s %s", i+1, p.Label, p.Rarity, p.Description))
	}
	return append(lines, "", "Press a number to choose")
}

func gameOverLines(r sim.Report, save progression.PersistentData) []string {
	return []string{
		fmt.Sprintf("Survived     %s", clock(r.TimeSurvived)),
		fmt.Sprintf("Kills        %d", r.EnemiesKilled),
		fmt.Sprintf("Level        %d", r.LevelReached),
		fmt.Sprintf("Earned       $%d", r.MoneyEarned),
		fmt.Sprintf("Bank         $%d", save.TotalCash),
		"",
		"N/Enter: new run  B/Esc: menu  Q: quit",
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.render()
	return RenderScreen(m.screen)
}

// Save returns the profile save, including earnings of finished runs.
func (m GameModel) Save() progression.PersistentData { return m.save }

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool { return m.quitting }

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool { return m.backToMenu }
