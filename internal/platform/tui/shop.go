package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/TJ42-dev/Block-Town-Survivors/internal/progression"
)

var (
	shopTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	shopOKStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	shopErrStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	shopHelpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// ShopModel spends banked cash on permanent upgrades.
type ShopModel struct {
	env       Env
	profile   string
	save      progression.PersistentData
	cursor    int
	width     int
	keyMapper *KeyMapper
	message   string
	failed    bool
	goingBack bool
	quitting  bool
}

// NewShopModel creates a shop for profile's save.
func NewShopModel(env Env, profile string, save progression.PersistentData, cfg RuntimeConfig) ShopModel {
	return ShopModel{
		env:       env,
		profile:   profile,
		save:      save,
		width:     cfg.ScreenW,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the shop.
func (m ShopModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the shop.
func (m ShopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.quitting = true
			return m, tea.Quit
		case MenuActionBack:
			m.goingBack = true
		case MenuActionUp:
			if m.cursor > 0 {
				m.cursor--
			}
		case MenuActionDown:
			if m.cursor < len(progression.UpgradeKinds) {
				m.cursor++
			}
		case MenuActionSelect:
			if m.cursor == len(progression.UpgradeKinds) {
				m.goingBack = true
				break
			}
			m.buy(progression.UpgradeKinds[m.cursor])
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

// buy purchases one level and persists the save when a store is present.
func (m *ShopModel) buy(kind progression.UpgradeKind) {
	spec := progression.Upgrades[kind]
	next, ok := progression.ApplyUpgrade(m.save, kind)
	if !ok {
		m.failed = true
		m.message = fmt.Sprintf("Not enough cash for %s ($%s)", spec.Name, humanize.Comma(int64(m.save.NextCost(kind))))
		return
	}
	m.save = next
	m.failed = false
	m.message = fmt.Sprintf("%s upgraded to level %d", spec.Name, next.Upgrades.Level(kind))

	if m.env.Store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := m.env.Store.WriteSave(ctx, m.profile, m.save); err != nil {
		m.env.logger().Warn("could not write save", "profile", m.profile, "err", err)
		m.failed = true
		m.message = "Upgrade bought but the save could not be written"
	}
}

// statText formats an upgrade value for display.
func statText(kind progression.UpgradeKind, v float64) string {
	switch kind {
	case progression.UpgradeHealth:
		return fmt.Sprintf("%.0f HP", v)
	case progression.UpgradeSpeed:
		return fmt.Sprintf("%.1f m/s", v)
	case progression.UpgradeFireRate:
		return fmt.Sprintf("%.0f ms", v)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}

// View renders the shop.
func (m ShopModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(shopTitleStyle.Render("UPGRADE SHOP"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Bank: $"+humanize.Comma(int64(m.save.TotalCash)), m.width))
	b.WriteString("\n\n")

	for i, kind := range progression.UpgradeKinds {
		spec := progression.Upgrades[kind]
		level := m.save.Upgrades.Level(kind)
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%-11s Lv %-3d %-10s -> %-10s $%s",
			cursor, spec.Name, level,
			statText(kind, spec.ValueAt(level)), statText(kind, spec.ValueAt(level+1)),
			humanize.Comma(int64(m.save.NextCost(kind))))
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}
	back := "  Back"
	if m.cursor == len(progression.UpgradeKinds) {
		back = "> Back"
	}
	b.WriteString(centerText(fmt.Sprintf("%-60s", back), m.width))
	b.WriteString("\n\n")

	if m.message != "" {
		style := shopOKStyle
		if m.failed {
			style = shopErrStyle
		}
		b.WriteString(centerText(style.Render(m.message), m.width))
		b.WriteString("\n\n")
	}

	b.WriteString(centerText(shopHelpStyle.Render("Up/Down: Navigate  |  Enter: Buy  |  Esc/B: Back  |  Q: Quit"), m.width))
	b.WriteString("\n")
	return b.String()
}

// Save returns the save after any purchases.
func (m ShopModel) Save() progression.PersistentData { return m.save }

// IsGoingBack returns true if user wants to go back to menu.
func (m ShopModel) IsGoingBack() bool { return m.goingBack }

// IsQuitting returns true if user wants to quit entirely.
func (m ShopModel) IsQuitting() bool { return m.quitting }
