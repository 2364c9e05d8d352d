package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/TJ42-dev/Block-Town-Survivors/internal/registry"
	"github.com/TJ42-dev/Block-Town-Survivors/internal/storage"
)

// maxRuns is how many runs the history screen loads.
const maxRuns = 100

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle},
		{k.Back, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("tab", "left", "right"),
			key.WithHelp("tab", "recent/best"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel lists finished runs of a profile, newest or best first.
type HistoryModel struct {
	store     storage.SaveStore
	profile   string
	best      bool
	runs      []storage.RunRecord
	loadErr   error
	now       func() time.Time
	table     table.Model
	help      help.Model
	keys      HistoryKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewHistoryModel creates the history screen and loads the recent runs.
func NewHistoryModel(store storage.SaveStore, profile string, cfg RuntimeConfig) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		store:   store,
		profile: profile,
		now:     time.Now,
		help:    h,
		keys:    DefaultHistoryKeyMap(),
		width:   cfg.ScreenW,
		height:  cfg.ScreenH,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table sized to the window.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "When", Width: 14},
		{Title: "Map", Width: 16},
		{Title: "Character", Width: 11},
		{Title: "Time", Width: 6},
		{Title: "Kills", Width: 6},
		{Title: "Lvl", Width: 4},
		{Title: "Earned", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-8)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load fetches runs for the current ordering.
func (m *HistoryModel) load() {
	m.runs, m.loadErr = nil, nil
	if m.store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if m.best {
			m.runs, m.loadErr = m.store.BestRuns(ctx, m.profile, maxRuns)
		} else {
			m.runs, m.loadErr = m.store.RecentRuns(ctx, m.profile, maxRuns)
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current runs.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		title := r.Map
		if p, ok := registry.Lookup(r.Map); ok {
			title = p.Title
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			humanize.RelTime(r.CreatedAt, m.now(), "ago", "from now"),
			title,
			string(r.Character),
			clock(r.Report.TimeSurvived),
			fmt.Sprintf("%d", r.Report.EnemiesKilled),
			fmt.Sprintf("%d", r.Report.LevelReached),
			"$" + humanize.Comma(int64(r.Report.MoneyEarned)),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.Toggle):
			m.best = !m.best
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Scrolling and everything else goes to the table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Title is the heading for the current ordering.
func (m HistoryModel) Title() string {
	if m.best {
		return fmt.Sprintf("BEST RUNS - %s", m.profile)
	}
	return fmt.Sprintf("RECENT RUNS - %s", m.profile)
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(centerText(titleStyle.Render(m.Title()), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))
	b.WriteString("\n")

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or an explanation of why it is empty.
func (m HistoryModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("Run history is unavailable: no save database.")
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load runs:\n" + m.loadErr.Error())
	case len(m.runs) == 0:
		return emptyStyle.Render("No runs recorded yet.\nSurvive a night to see it here!")
	}
	return m.table.View()
}

// Runs returns the loaded runs.
func (m HistoryModel) Runs() []storage.RunRecord { return m.runs }

// IsGoingBack returns true if user wants to go back to menu.
func (m HistoryModel) IsGoingBack() bool { return m.goingBack }

// IsQuitting returns true if user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool { return m.quitting }
