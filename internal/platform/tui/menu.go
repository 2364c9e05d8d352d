package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/TJ42-dev/Block-Town-Survivors/internal/config"
	"github.com/TJ42-dev/Block-Town-Survivors/internal/progression"
	"github.com/TJ42-dev/Block-Town-Survivors/internal/registry"
)

// MenuEntry is a row of the main menu.
type MenuEntry int

const (
	EntryPlay MenuEntry = iota
	EntryCharacter
	EntryMap
	EntryDifficulty
	EntrySound
	EntryUnlimitedCash
	EntryShop
	EntryHistory
	EntryQuit
	entryCount
)

// MenuModel is the start menu: run settings plus the way to the shop and
// run history.
type MenuModel struct {
	settings  Settings
	save      progression.PersistentData
	presets   []registry.Preset
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	quitting  bool
	selected  MenuEntry
	chosen    bool
}

// NewMenuModel creates a new menu model.
func NewMenuModel(settings Settings, save progression.PersistentData, cfg RuntimeConfig) MenuModel {
	return MenuModel{
		settings:  settings,
		save:      save,
		presets:   registry.List(),
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < int(entryCount)-1 {
			m.cursor++
		}

	case MenuActionLeft:
		m.cycle(-1)

	case MenuActionRight:
		m.cycle(1)

	case MenuActionSelect:
		switch entry := MenuEntry(m.cursor); entry {
		case EntryPlay, EntryShop, EntryHistory:
			m.selected = entry
			m.chosen = true
		case EntryQuit:
			m.quitting = true
			return m, tea.Quit
		default:
			m.cycle(1)
		}
	}
	return m, nil
}

// cycle steps the setting under the cursor by dir.
func (m *MenuModel) cycle(dir int) {
	opts := &m.settings.Options
	switch MenuEntry(m.cursor) {
	case EntryCharacter:
		ids := make([]progression.CharacterID, len(progression.Characters))
		for i, c := range progression.Characters {
			ids[i] = c.ID
		}
		opts.CharacterID = step(ids, opts.CharacterID, dir)
	case EntryMap:
		names := make([]string, len(m.presets))
		for i, p := range m.presets {
			names[i] = p.Name
		}
		m.settings.Map = step(names, m.settings.Map, dir)
	case EntryDifficulty:
		m.settings.Difficulty = step(config.DifficultyPresets, m.settings.Difficulty, dir)
	case EntrySound:
		opts.SoundEnabled = !opts.SoundEnabled
	case EntryUnlimitedCash:
		opts.UnlimitedCash = !opts.UnlimitedCash
	}
}

// step returns the element dir places after cur, wrapping around. An
// unknown cur starts from the first element.
func step[T comparable](items []T, cur T, dir int) T {
	if len(items) == 0 {
		return cur
	}
	i := 0
	for j, it := range items {
		if it == cur {
			i = j + dir
			break
		}
	}
	return items[((i%len(items))+len(items))%len(items)]
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}

// label renders the text of one entry.
func (m MenuModel) label(e MenuEntry) string {
	opts := m.settings.Options
	switch e {
	case EntryPlay:
		return "Start run"
	case EntryCharacter:
		c := progression.CharacterByID(opts.CharacterID)
		return fmt.Sprintf("Character   < %s (%s) >", c.Name, progression.Weapons[c.Weapon].Name)
	case EntryMap:
		p, ok := registry.Lookup(m.settings.Map)
		if !ok {
			p, _ = registry.Lookup(registry.DefaultPreset)
		}
		return fmt.Sprintf("Map         < %s >", p.Title)
	case EntryDifficulty:
		return fmt.Sprintf("Difficulty  < %s >", m.settings.Difficulty)
	case EntrySound:
		return fmt.Sprintf("Sound       < %s >", onOff(opts.SoundEnabled))
	case EntryUnlimitedCash:
		return fmt.Sprintf("Unlimited $ < %s >", onOff(opts.UnlimitedCash))
	case EntryShop:
		return "Upgrade shop"
	case EntryHistory:
		return "Run history"
	case EntryQuit:
		return "Quit"
	}
	return ""
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("B L O C K   T O W N   S U R V I V O R S", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("Profile: %s   Bank: $%s", m.settings.Profile, humanize.Comma(int64(m.save.TotalCash))), m.width))
	b.WriteString("\n\n")

	for i := range int(entryCount) {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(fmt.Sprintf("%s%-34s", cursor, m.label(MenuEntry(i))), m.width))
		b.WriteString("\n")
	}

	if MenuEntry(m.cursor) == EntryCharacter {
		b.WriteString("\n")
		b.WriteString(centerText(progression.CharacterByID(m.settings.Options.CharacterID).Description, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Left/Right: Change  |  Enter: Select  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Settings returns the settings as edited so far.
func (m MenuModel) Settings() Settings {
	return m.settings
}

// Selected returns the chosen entry, if the user picked one.
func (m MenuModel) Selected() (MenuEntry, bool) {
	return m.selected, m.chosen
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	padding := (width - n) / 2
	return strings.Repeat(" ", padding) + text
}
