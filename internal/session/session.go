// Package session runs one player's games on a match3 board: scoring,
// high-score buckets, the optional countdown and the per-tick resolve loop.
// The host owns scheduling, drawing, storage and notifications; they are
// injected through Deps and called synchronously from the tick methods.
package session

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/beshoelled/internal/match3"
)

// Game-over notifications.
const (
	MsgNoMoreMoves = "Game over: no more moves"
	MsgOutOfTime   = "Game over: out of time."
)

// Shipped game constants.
const (
	DefaultWidth            = 8
	DefaultHeight           = 8
	DefaultTimeAllowed      = 30 // seconds at the start of a timed game
	DefaultTimeGainPerPiece = 1  // seconds added per removed piece
	MoveBonus               = 10 // points for every resolved move on top of one per piece
)

// HighScores holds the two persisted maxima.
type HighScores struct {
	Untimed int
	Timed   int
}

// HighScoreStore persists the high scores between sessions.
// A store with nothing saved yet returns zero scores and no error.
type HighScoreStore interface {
	Load() (HighScores, error)
	Save(HighScores) error
}

// Notifier shows a terminal message to the player.
type Notifier interface {
	Notify(message string)
}

// Scheduler drives the session's tick methods. Arm starts the logic and
// render ticks, and the timer tick when timed. Disarm stops all of them.
type Scheduler interface {
	Arm(timed bool)
	Disarm()
}

// Renderer draws a read-only view of the session.
type Renderer interface {
	Render(v View)
}

// State is the session's position in its state machine.
type State int

const (
	StateActiveUntimed State = iota
	StateActiveTimed
	StateGameOver
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateActiveUntimed:
		return "Active(untimed)"
	case StateActiveTimed:
		return "Active(timed)"
	case StateGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Config holds the board shape and timed-play rules.
type Config struct {
	Width            int
	Height           int
	Colors           int
	TimeAllowed      int
	TimeGainPerPiece int
	MaxSetupPasses   int
}

// DefaultConfig returns the shipped game settings.
func DefaultConfig() Config {
	return Config{
		Width:            DefaultWidth,
		Height:           DefaultHeight,
		Colors:           match3.PaletteSize,
		TimeAllowed:      DefaultTimeAllowed,
		TimeGainPerPiece: DefaultTimeGainPerPiece,
		MaxSetupPasses:   match3.DefaultMaxSetupPasses,
	}
}

// Deps are the session's collaborators. Nil fields get no-op stand-ins,
// a time-seeded Rand and a discarding logger.
type Deps struct {
	Store     HighScoreStore
	Notifier  Notifier
	Scheduler Scheduler
	Renderer  Renderer
	Rand      match3.Rand
	Logger    *log.Logger
}

// View is a read-only copy of everything the renderer needs.
type View struct {
	State         State
	Timed         bool
	Score         int
	HighScores    HighScores
	TimeRemaining int

	Width        int
	Height       int
	Colors       [][]match3.Color
	Selected     match3.Point
	HasSelection bool
	Locked       bool
	Moves        int
}

// HighScore returns the high score of the bucket the game is played in.
func (v View) HighScore() int {
	if v.Timed {
		return v.HighScores.Timed
	}
	return v.HighScores.Untimed
}

// GameOver reports whether the game has ended.
func (v View) GameOver() bool {
	return v.State == StateGameOver
}

// Session owns the current board and game state.
type Session struct {
	cfg Config

	store     HighScoreStore
	notifier  Notifier
	scheduler Scheduler
	renderer  Renderer
	rng       match3.Rand
	logger    *log.Logger

	board         *match3.Board
	score         int
	high          HighScores
	timed         bool
	timeRemaining int
	gameOver      bool
}

// New creates a session. It starts in GameOver until NewGame is called.
func New(cfg Config, deps Deps) *Session {
	s := &Session{
		cfg:       cfg,
		store:     deps.Store,
		notifier:  deps.Notifier,
		scheduler: deps.Scheduler,
		renderer:  deps.Renderer,
		rng:       deps.Rand,
		logger:    deps.Logger,
		gameOver:  true,
	}
	if s.store == nil {
		s.store = nopStore{}
	}
	if s.notifier == nil {
		s.notifier = nopNotifier{}
	}
	if s.scheduler == nil {
		s.scheduler = nopScheduler{}
	}
	if s.renderer == nil {
		s.renderer = nopRenderer{}
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	return s
}

// NewGame replaces the board and starts a game. The scheduler is disarmed
// before any state changes so no stale tick sees the new board half built.
func (s *Session) NewGame(timed bool) error {
	s.scheduler.Disarm()

	high, err := s.store.Load()
	if err != nil {
		s.logger.Warn("high scores unavailable, starting from zero", "error", err)
		high = HighScores{}
	}
	s.high = high
	s.score = 0
	s.timed = timed
	s.timeRemaining = 0
	if timed {
		s.timeRemaining = s.cfg.TimeAllowed
	}

	var opts []match3.Option
	if s.cfg.MaxSetupPasses > 0 {
		opts = append(opts, match3.WithMaxSetupPasses(s.cfg.MaxSetupPasses))
	}
	board, err := match3.New(s.cfg.Width, s.cfg.Height, s.cfg.Colors, s.rng, opts...)
	if err != nil {
		s.board = nil
		s.gameOver = true
		return fmt.Errorf("session: new game: %w", err)
	}

	s.board = board
	s.gameOver = false
	s.scheduler.Arm(timed)
	s.logger.Debug("new game", "timed", timed, "high", s.high.Untimed, "timed_high", s.high.Timed)
	return nil
}

// SelectCell forwards a click on grid cell (x, y) to the board.
// After game over every click is ignored.
func (s *Session) SelectCell(x, y int) (match3.Outcome, error) {
	if s.gameOver || s.board == nil {
		return match3.OutcomeLocked, nil
	}
	return s.board.SelectPiece(x, y)
}

// AdjustScore credits a resolved move that removed piecesRemoved pieces,
// extends the countdown in timed play, updates the active high-score bucket
// and saves both buckets.
func (s *Session) AdjustScore(piecesRemoved int) {
	s.score += piecesRemoved + MoveBonus
	if s.timed {
		s.timeRemaining += piecesRemoved * s.cfg.TimeGainPerPiece
		if s.score > s.high.Timed {
			s.high.Timed = s.score
		}
	} else if s.score > s.high.Untimed {
		s.high.Untimed = s.score
	}

	if err := s.store.Save(s.high); err != nil {
		s.logger.Warn("cannot save high scores", "error", err)
	}
}

// OnLogicTick advances the resolve loop by one step. A cascade still in
// progress gets one more resolve pass; a settled move is scored and the
// board is checked for deadlock. The countdown is checked on every tick.
func (s *Session) OnLogicTick() {
	if s.gameOver || s.board == nil {
		return
	}

	b := s.board
	switch {
	case b.NeedsRecheck():
		b.ResolveStep()
	case b.PendingRemovals() != 0:
		s.AdjustScore(b.ClearPending())
		if !b.HasLegalMove() {
			s.endGame(MsgNoMoreMoves)
		}
	}

	if s.timed && s.timeRemaining < 0 {
		s.endGame(MsgOutOfTime)
	}
}

// OnTimerTick takes one second off the countdown of a running timed game.
func (s *Session) OnTimerTick() {
	if s.timed && !s.gameOver {
		s.timeRemaining--
	}
}

// OnRenderTick hands the current view to the renderer.
func (s *Session) OnRenderTick() {
	s.renderer.Render(s.Snapshot())
}

func (s *Session) endGame(msg string) {
	s.gameOver = true
	s.scheduler.Disarm()
	s.logger.Info("game over", "reason", msg, "timed", s.timed, "score", s.score)
	s.OnRenderTick()
	s.notifier.Notify(msg)
}

// State returns the current state.
func (s *Session) State() State {
	switch {
	case s.gameOver:
		return StateGameOver
	case s.timed:
		return StateActiveTimed
	default:
		return StateActiveUntimed
	}
}

// Score returns the score of the current game.
func (s *Session) Score() int {
	return s.score
}

// HighScores returns both high-score buckets.
func (s *Session) HighScores() HighScores {
	return s.high
}

// Timed reports whether the current game has a countdown.
func (s *Session) Timed() bool {
	return s.timed
}

// TimeRemaining returns the countdown in seconds; zero when untimed.
func (s *Session) TimeRemaining() int {
	return s.timeRemaining
}

// Moves returns the swaps accepted in the current game.
func (s *Session) Moves() int {
	if s.board == nil {
		return 0
	}
	return s.board.Moves()
}

// Config returns the session's configuration.
func (s *Session) Config() Config {
	return s.cfg
}

// Snapshot captures the session and board state.
func (s *Session) Snapshot() View {
	v := View{
		State:         s.State(),
		Timed:         s.timed,
		Score:         s.score,
		HighScores:    s.high,
		TimeRemaining: s.timeRemaining,
		Width:         s.cfg.Width,
		Height:        s.cfg.Height,
	}
	if s.board == nil {
		return v
	}

	v.Width = s.board.Width()
	v.Height = s.board.Height()
	v.Colors = s.board.ColorGrid()
	v.Selected, v.HasSelection = s.board.Selected()
	v.Locked = s.board.PendingRemovals() != 0
	v.Moves = s.board.Moves()
	return v
}

type nopStore struct{}

func (nopStore) Load() (HighScores, error) { return HighScores{}, nil }
func (nopStore) Save(HighScores) error     { return nil }

type nopNotifier struct{}

func (nopNotifier) Notify(string) {}

type nopScheduler struct{}

func (nopScheduler) Arm(bool) {}
func (nopScheduler) Disarm()  {}

type nopRenderer struct{}

func (nopRenderer) Render(View) {}
