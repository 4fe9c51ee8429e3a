package tui

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/beshoelled/internal/core"
	"github.com/vovakirdan/beshoelled/internal/match3"
	"github.com/vovakirdan/beshoelled/internal/session"
	"github.com/vovakirdan/beshoelled/internal/storage"
)

// Options configures the game screen.
type Options struct {
	Session       session.Config
	Runtime       core.RuntimeConfig
	Timed         bool            // start with a timed game
	Store         storage.Backend // nil plays without persistence
	Logger        *log.Logger
	ScreenshotDir string // defaults to ~/.beshoelled/screenshots
}

// frameRenderer keeps the latest view pushed by the session.
type frameRenderer struct {
	view   session.View
	frames int
}

func (r *frameRenderer) Render(v session.View) {
	r.view = v
	r.frames++
}

// noticeBoard latches notifications until the next game starts.
type noticeBoard struct {
	notes []string
}

func (n *noticeBoard) Notify(msg string) {
	n.notes = append(n.notes, msg)
}

func (n *noticeBoard) clear() {
	n.notes = nil
}

// gameHistory writes each finished game to the recorder once.
type gameHistory struct {
	recorder storage.GameRecorder
	logger   *log.Logger
	written  bool
}

// reset arms the history for a new game; a game that never started has
// nothing to write.
func (h *gameHistory) reset(started bool) {
	h.written = !started
}

func (h *gameHistory) recordIfOver(s *session.Session) {
	if h.written || s.State() != session.StateGameOver {
		return
	}
	h.written = true
	if h.recorder == nil {
		return
	}
	mode := storage.ModeOf(s.Timed())
	if _, err := h.recorder.RecordGame(mode, s.Score(), s.Moves()); err != nil {
		h.logger.Warn("cannot record game", "mode", mode, "error", err)
	}
}

// Model is the Bubble Tea model for a game session.
type Model struct {
	session  *session.Session
	sched    *Scheduler
	frame    *frameRenderer
	notices  *noticeBoard
	history  *gameHistory
	logger   *log.Logger

	screen        *core.Screen
	keys          KeyMap
	help          help.Model
	config        core.RuntimeConfig
	screenshotDir string

	startTimed bool
	cursor     match3.Point
	quitting   bool
}

// NewModel creates a game screen. No game runs until Init.
func NewModel(opts Options) Model {
	cfg := opts.Runtime
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := Model{
		sched:         NewScheduler(cfg.LogicRate, cfg.RenderRate),
		frame:         &frameRenderer{},
		notices:       &noticeBoard{},
		history:       &gameHistory{logger: logger, written: true},
		logger:        logger,
		screen:        core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		keys:          DefaultKeyMap(),
		help:          help.New(),
		config:        cfg,
		screenshotDir: opts.ScreenshotDir,
		startTimed:    opts.Timed,
		cursor:        match3.Point{},
	}
	m.help.Width = cfg.ScreenW

	deps := session.Deps{
		Notifier:  m.notices,
		Scheduler: m.sched,
		Renderer:  m.frame,
		Rand:      rand.New(rand.NewSource(cfg.Seed)),
		Logger:    logger,
	}
	if opts.Store != nil {
		deps.Store = opts.Store
		if rec, ok := opts.Store.(storage.GameRecorder); ok {
			m.history.recorder = rec
		}
	}
	m.session = session.New(opts.Session, deps)
	return m
}

// Init starts the first game.
func (m Model) Init() tea.Cmd {
	return m.beginGame(m.startTimed)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case LogicTickMsg:
		if !m.sched.Current(msg.Gen) {
			return m, nil
		}
		m.session.OnLogicTick()
		m.history.recordIfOver(m.session)
		if !m.sched.Current(msg.Gen) {
			return m, nil
		}
		return m, m.sched.logicCmd()

	case RenderTickMsg:
		if !m.sched.Current(msg.Gen) {
			return m, nil
		}
		m.session.OnRenderTick()
		return m, m.sched.renderCmd()

	case TimerTickMsg:
		if !m.sched.Current(msg.Gen) {
			return m, nil
		}
		m.session.OnTimerTick()
		return m, m.sched.timerCmd()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.MapKey(msg)
	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	case core.ActionScreenshot:
		m.saveScreenshot()
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		m.moveCursor(action)
	case core.ActionSelect:
		m.selectCell(m.cursor)
	case core.ActionNewGame:
		return m, m.startGame(false)
	case core.ActionNewTimedGame:
		return m, m.startGame(true)
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	l := computeLayout(m.screen.Width(), m.frame.view.Width, m.frame.view.Height)
	target, p := l.hit(msg.X, msg.Y)
	switch target {
	case hitCell:
		m.cursor = p
		m.selectCell(p)
	case hitNewGame:
		return m, m.startGame(false)
	case hitNewTimedGame:
		return m, m.startGame(true)
	}
	return m, nil
}

// startGame replaces the session's board and returns the first ticks.
func (m *Model) startGame(timed bool) tea.Cmd {
	m.cursor = match3.Point{}
	return m.beginGame(timed)
}

// beginGame only touches state held behind pointers, so it is safe from
// the value receiver of Init.
func (m Model) beginGame(timed bool) tea.Cmd {
	m.notices.clear()
	err := m.session.NewGame(timed)
	if err != nil {
		m.logger.Error("cannot start game", "error", err)
		m.notices.Notify(fmt.Sprintf("Cannot start a game: %v", err))
	}
	m.history.reset(err == nil)
	m.session.OnRenderTick()
	return m.sched.Drain()
}

func (m *Model) moveCursor(action core.Action) {
	dx, dy := action.Delta()
	cfg := m.session.Config()
	m.cursor.X = core.Clamp(m.cursor.X+dx, 0, cfg.Width-1)
	m.cursor.Y = core.Clamp(m.cursor.Y+dy, 0, cfg.Height-1)
}

func (m *Model) selectCell(p match3.Point) {
	outcome, err := m.session.SelectCell(p.X, p.Y)
	if err != nil {
		m.logger.Debug("click ignored", "x", p.X, "y", p.Y, "error", err)
		return
	}
	m.logger.Debug("select", "x", p.X, "y", p.Y, "outcome", outcome)
	m.session.OnRenderTick()
}

// saveScreenshot saves the current screen as plain text.
func (m *Model) saveScreenshot() {
	dir := m.screenshotDir
	if dir == "" {
		dir = filepath.Join(os.Getenv("HOME"), ".beshoelled", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "dir", dir, "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("beshoelled_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "path", path, "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	helpView := m.help.View(m.keys)
	m.screen.Resize(m.config.ScreenW, core.Max(1, m.config.ScreenH-lipgloss.Height(helpView)))
	drawGame(m.screen, m.frame.view, m.cursor, m.notices.notes)

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" +
		helpStyle.Render(lipgloss.PlaceHorizontal(m.config.ScreenW, lipgloss.Center, helpView))
}

// Run starts the Bubble Tea program and blocks until the player quits.
func Run(opts Options) error {
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Clicks select cells and HUD buttons
	)

	_, err := p.Run()
	return err
}
