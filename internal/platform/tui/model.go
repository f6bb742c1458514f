package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/waterdrop/internal/achievement"
	"github.com/vovakirdan/waterdrop/internal/config"
	"github.com/vovakirdan/waterdrop/internal/core"
	"github.com/vovakirdan/waterdrop/internal/game"
	"github.com/vovakirdan/waterdrop/internal/profile"
)

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

var levelActions = []struct {
	action core.Action
	level  config.Level
}{
	{core.ActionLevelEasy, config.LevelEasy},
	{core.ActionLevelNormal, config.LevelNormal},
	{core.ActionLevelHard, config.LevelHard},
}

// Options configures the play screen.
type Options struct {
	Config  config.Config
	Runtime core.RuntimeConfig
	Level   config.Level
	Store   profile.Store
	History game.RoundRecorder
	Audio   game.AudioSink
	Logger  *log.Logger
}

// Model is the Bubble Tea model of the play screen.
type Model struct {
	round      *game.Round
	board      *Board
	screen     *core.Screen
	config     core.RuntimeConfig
	keys       *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	logger     *log.Logger
	quitting   bool
}

// NewModel creates the play screen and loads the profile.
func NewModel(opts Options) Model {
	cfg := opts.Runtime
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	board := NewBoard(opts.Config)
	round := game.New(game.Options{
		Config:   opts.Config,
		Level:    opts.Level,
		Seed:     cfg.Seed,
		Store:    opts.Store,
		Renderer: board,
		Notifier: board,
		Audio:    opts.Audio,
		History:  opts.History,
		Logger:   logger,
	})

	m := Model{
		round:      round,
		board:      board,
		config:     cfg,
		keys:       NewKeyMapper(),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
		logger:     logger,
	}
	m.help.Width = cfg.ScreenW
	m.screen = core.NewScreen(cfg.ScreenW, m.boardHeight())
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}
	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleMouse turns left clicks on the play field into catch attempts.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if p, ok := m.board.FieldPoint(m.screen.Width(), m.screen.Height(), msg.X, msg.Y); ok {
		m.inputFrame.Click(p)
	}
	return m, nil
}

// handleResize processes window resize events. The round keeps running;
// drops are stored in field units and simply rescale.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width
	m.screen.Resize(msg.Width, m.boardHeight())
	return m, nil
}

// handleTick applies the input collected since the last tick, then advances
// the round by one frame.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.applyActions()
	for _, p := range m.inputFrame.Clicks {
		m.round.CatchAt(p)
	}
	m.inputFrame.Clear()

	dt := frameDuration(m.config.TickRate)
	m.round.Tick(dt)
	m.board.Advance(dt)

	return m, tickCmd(m.config.TickRate)
}

func (m *Model) applyActions() {
	f := m.inputFrame

	if f.Has(core.ActionHelp) {
		m.help.ShowAll = !m.help.ShowAll
		m.screen.Resize(m.config.ScreenW, m.boardHeight())
	}
	if f.Has(core.ActionDismiss) {
		m.board.Dismiss()
	}
	if f.Has(core.ActionBadges) {
		m.toggleBadges()
	}
	if f.Has(core.ActionMute) {
		muted := m.round.ToggleMute()
		m.logger.Debug("mute toggled", "muted", muted)
	}

	for _, lv := range levelActions {
		if f.Has(lv.action) && m.round.SelectLevel(lv.level) {
			m.logger.Debug("level selected", "level", lv.level)
		}
	}

	running := m.round.Phase() == game.PhaseRunning || m.round.Phase() == game.PhasePaused
	switch {
	case f.Has(core.ActionRestart) && !running:
		m.closeOverlays()
		m.round.Restart()
	case f.Has(core.ActionStart) && !running:
		m.closeOverlays()
		m.round.Start("")
	case f.Has(core.ActionPause):
		m.round.TogglePause()
	}
}

// toggleBadges opens or closes the achievements overlay. Opening it pauses
// a running round.
func (m *Model) toggleBadges() {
	if m.board.BadgesVisible() {
		m.board.Dismiss()
		return
	}
	if m.round.Phase() == game.PhaseRunning {
		m.round.TogglePause()
	}
	m.board.ShowBadges(achievement.Catalog(), m.round.Profile().Achievements)
}

func (m *Model) closeOverlays() {
	for m.board.Dismiss() {
	}
}

// boardHeight is the screen height left over by the help bar.
func (m Model) boardHeight() int {
	helpLines := 1
	if m.help.ShowAll {
		helpLines = 0
		for _, col := range m.keys.Keys().FullHelp() {
			helpLines = max(helpLines, len(col))
		}
	}
	return max(0, m.config.ScreenH-helpLines)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.board.Draw(m.screen, m.status())

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".waterdrop", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("waterdrop_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

func (m Model) status() Status {
	st := m.round.State()
	return Status{Phase: st.Phase, Level: st.Level, Muted: st.Muted}
}

// Round returns the round driven by this model.
func (m Model) Round() *game.Round {
	return m.round
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.board.Draw(m.screen, m.status())
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys.Keys()))
}

// Run starts the play screen and blocks until the player quits.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
