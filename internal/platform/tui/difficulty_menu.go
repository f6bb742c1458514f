package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/waterdrop/internal/config"
	"github.com/vovakirdan/waterdrop/internal/core"
)

// DifficultyModel lets the player choose a level before the first round.
type DifficultyModel struct {
	table     config.DifficultyTable
	levels    []config.Level
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	selection config.Level
	choosing  bool
	quitting  bool
}

// NewDifficultyModel creates a selector with the cursor on the given level.
func NewDifficultyModel(table config.DifficultyTable, current config.Level, width, height int) DifficultyModel {
	levels := config.Levels()
	cursor := 0
	for i, l := range levels {
		if l == current {
			cursor = i
		}
	}
	return DifficultyModel{
		table:     table,
		levels:    levels,
		cursor:    cursor,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// Init initializes the model.
func (m DifficultyModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m DifficultyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m DifficultyModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Number keys pick a level directly.
	switch msg.String() {
	case "1", "2", "3":
		i := int(msg.String()[0] - '1')
		if i < len(m.levels) {
			m.choosing = false
			m.selection = m.levels[i]
			return m, tea.Quit
		}
	}

	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.levels)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.choosing = false
		m.selection = m.levels[m.cursor]
		return m, tea.Quit
	}

	return m, nil
}

// View renders the level list.
func (m DifficultyModel) View() string {
	if m.quitting || !m.choosing {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("W A T E R D R O P", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select difficulty:", m.width))
	b.WriteString("\n\n")

	for i, l := range m.levels {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		rc := m.table.Round(l)
		line := fmt.Sprintf("%s%d. %-7s %2ds, spawn every %dms, win at %d",
			cursor, i+1, l.Title(), rc.DurationSeconds, rc.InitialSpawnInterval().Milliseconds(), rc.WinThreshold)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  1-3: Quick pick  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the chosen level, or false if still choosing or quit.
func (m DifficultyModel) Selected() (config.Level, bool) {
	if m.choosing || m.quitting {
		return "", false
	}
	return m.selection, true
}

// centerText pads text on the left so it is centered in width columns.
func centerText(text string, width int) string {
	w := core.TextWidth(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// RunDifficultySelector shows the level menu. It reports false if the player
// quit instead of choosing.
func RunDifficultySelector(table config.DifficultyTable, current config.Level, cfg core.RuntimeConfig) (config.Level, bool, error) {
	model := NewDifficultyModel(table, current, cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", false, err
	}

	m, ok := finalModel.(DifficultyModel)
	if !ok {
		return "", false, nil
	}

	level, chosen := m.Selected()
	return level, chosen, nil
}
