package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/waterdrop/internal/config"
	"github.com/vovakirdan/waterdrop/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 96  // Minimum width to show the profile sidebar
	sidebarWidth       = 20  // Width of the profile sidebar
	maxRounds          = 100 // Max rounds to load
)

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	NextProfile key.Binding
	PrevProfile key.Binding
	Order       key.Binding
	Back        key.Binding
	Quit        key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Order, k.NextProfile, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Order},
		{k.NextProfile, k.PrevProfile},
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
		NextProfile: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next profile"),
		),
		PrevProfile: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev profile"),
		),
		Order: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "top/recent"),
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

// HistoryModel is the Bubble Tea model for the round history screen.
type HistoryModel struct {
	store         *storage.Store
	profiles      []string
	profileCursor int
	recent        bool // Newest first instead of best first
	rounds        []storage.RoundEntry
	loadErr       error
	table         table.Model
	help          help.Model
	keys          HistoryKeyMap
	width         int
	height        int
	quitting      bool
	showSidebar   bool
}

// NewHistoryModel creates a history screen starting at the given profile.
func NewHistoryModel(store *storage.Store, current string, width, height int) HistoryModel {
	profiles, err := store.Profiles()
	if !slices.Contains(profiles, current) {
		profiles = append([]string{current}, profiles...)
	}

	m := HistoryModel{
		store:         store,
		profiles:      profiles,
		profileCursor: slices.Index(profiles, current),
		loadErr:       err,
		keys:          DefaultHistoryKeyMap(),
		help:          help.New(),
		width:         width,
		height:        height,
		showSidebar:   width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.loadRounds()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 6},
		{Title: "Level", Width: 7},
		{Title: "Clean", Width: 6},
		{Title: "Polluted", Width: 8},
		{Title: "Missed", Width: 6},
		{Title: "Streak", Width: 6},
		{Title: "Won", Width: 4},
		{Title: "Played", Width: 16},
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
		Background(lipgloss.Color("25")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *HistoryModel) currentProfile() string {
	if len(m.profiles) == 0 {
		return ""
	}
	return m.profiles[m.profileCursor]
}

// loadRounds loads the rounds of the selected profile in the selected order.
func (m *HistoryModel) loadRounds() {
	var (
		rounds []storage.RoundEntry
		err    error
	)
	if m.recent {
		rounds, err = m.store.RecentRounds(m.currentProfile(), maxRounds)
	} else {
		rounds, err = m.store.TopRounds(m.currentProfile(), maxRounds)
	}
	m.rounds = rounds
	m.loadErr = err
	m.updateTableRows()
}

// updateTableRows updates the table with current rounds.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.rounds))
	for i, r := range m.rounds {
		won := ""
		if r.Won {
			won = "yes"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			humanize.Comma(int64(r.Score)),
			config.Level(r.Difficulty).Title(),
			fmt.Sprintf("%d", r.Clean),
			fmt.Sprintf("%d", r.Polluted),
			fmt.Sprintf("%d", r.Missed),
			fmt.Sprintf("%d", r.BestStreak),
			won,
			humanize.Time(r.CreatedAt),
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
		case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextProfile):
			if len(m.profiles) > 0 {
				m.profileCursor = (m.profileCursor + 1) % len(m.profiles)
				m.loadRounds()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevProfile):
			if len(m.profiles) > 0 {
				m.profileCursor = (m.profileCursor - 1 + len(m.profiles)) % len(m.profiles)
				m.loadRounds()
			}
			return m, nil

		case key.Matches(msg, m.keys.Order):
			m.recent = !m.recent
			m.loadRounds()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginBottom(1)

	order := "BEST ROUNDS"
	if m.recent {
		order = "RECENT ROUNDS"
	}
	b.WriteString(titleStyle.Render(centerText(fmt.Sprintf("%s - %s", order, m.currentProfile()), m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the profile list next to the table.
func (m HistoryModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Profiles\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, p := range m.profiles {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.profileCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}

		name := p
		if maxLen := sidebarWidth - 6; len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout renders the selected profile above the table.
func (m HistoryModel) renderNarrowLayout() string {
	var b strings.Builder

	if len(m.profiles) > 1 {
		b.WriteString(centerText(fmt.Sprintf("< %s >", m.currentProfile()), m.width))
		b.WriteString("\n\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(tableStyle.Render(m.renderTableContent()))

	return b.String()
}

// renderTableContent renders the table, an error or the empty message.
func (m HistoryModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.loadErr != nil {
		return emptyStyle.Render("Could not load rounds:\n" + m.loadErr.Error())
	}
	if len(m.rounds) == 0 {
		return emptyStyle.Render("No rounds recorded yet.\nPlay a round to start your history!")
	}

	return m.table.View()
}

// RunHistory runs the round history screen.
func RunHistory(store *storage.Store, profileKey string, width, height int) error {
	p := tea.NewProgram(
		NewHistoryModel(store, profileKey, width, height),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
