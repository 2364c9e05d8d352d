package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/TJ42-dev/Block-Town-Survivors/internal/progression"
)

type screenKind int

const (
	screenMenu screenKind = iota
	screenGame
	screenShop
	screenHistory
)

// SessionModel manages the full session flow: menu -> game, shop or
// history -> menu. It is the top-level model for local and SSH play and
// carries the save and the menu settings between screens.
type SessionModel struct {
	env      Env
	config   RuntimeConfig
	settings Settings
	save     progression.PersistentData
	screen   screenKind
	menu     MenuModel
	game     *GameModel
	shop     *ShopModel
	history  *HistoryModel
	quitting bool
}

// NewSessionModel creates a session that opens on the menu.
func NewSessionModel(env Env, settings Settings, save progression.PersistentData, cfg RuntimeConfig) SessionModel {
	return SessionModel{
		env:      env,
		config:   cfg,
		settings: settings,
		save:     save,
		menu:     NewMenuModel(settings, save, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenShop:
		return m.updateShop(msg)
	case screenHistory:
		return m.updateHistory(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	entry, ok := m.menu.Selected()
	if !ok {
		return m, cmd
	}
	m.settings = m.menu.Settings()

	switch entry {
	case EntryPlay:
		game := NewGameModel(m.env, m.settings, m.save, m.config)
		m.game = &game
		m.screen = screenGame
		m.env.logger().Info("run started", "profile", m.settings.Profile,
			"map", m.settings.Map, "character", m.settings.Options.CharacterID)
		return m, m.game.Init()

	case EntryShop:
		shop := NewShopModel(m.env, m.settings.Profile, m.save, m.config)
		m.shop = &shop
		m.screen = screenShop
		return m, m.shop.Init()

	case EntryHistory:
		history := NewHistoryModel(m.env.Store, m.settings.Profile, m.config)
		m.history = &history
		m.screen = screenHistory
		return m, m.history.Init()
	}
	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}
	m.save = m.game.Save()

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		m.game = nil
		return m.toMenu()
	}
	return m, cmd
}

// updateShop handles updates when in the upgrade shop.
func (m SessionModel) updateShop(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.shop.Update(msg)
	if shopModel, ok := newModel.(ShopModel); ok {
		m.shop = &shopModel
	}
	m.save = m.shop.Save()

	if m.shop.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.shop.IsGoingBack() {
		m.shop = nil
		return m.toMenu()
	}
	return m, cmd
}

// updateHistory handles updates when viewing run history.
func (m SessionModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.history.Update(msg)
	if historyModel, ok := newModel.(HistoryModel); ok {
		m.history = &historyModel
	}

	if m.history.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.history.IsGoingBack() {
		m.history = nil
		return m.toMenu()
	}
	return m, cmd
}

// toMenu rebuilds the menu so it shows the current bank and settings.
func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.settings, m.save, m.config)
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenShop:
		return m.shop.View()
	case screenHistory:
		return m.history.View()
	}
	return m.menu.View()
}

// Save returns the profile save as it stands now.
func (m SessionModel) Save() progression.PersistentData { return m.save }

// Run starts a local session in the alternate screen and blocks until the
// player quits.
func Run(env Env, settings Settings, save progression.PersistentData, cfg RuntimeConfig) error {
	p := tea.NewProgram(NewSessionModel(env, settings, save, cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
