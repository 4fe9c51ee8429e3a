package tui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/beshoelled/internal/core"
	"github.com/vovakirdan/beshoelled/internal/match3"
	"github.com/vovakirdan/beshoelled/internal/session"
	"github.com/vovakirdan/beshoelled/internal/storage"
)

// memBackend is an in-memory backend that also keeps the game history.
type memBackend struct {
	high  session.HighScores
	games []storage.GameRecord
}

func (b *memBackend) Load() (session.HighScores, error) { return b.high, nil }
func (b *memBackend) Save(h session.HighScores) error  { b.high = h; return nil }
func (b *memBackend) Close() error                     { return nil }

func (b *memBackend) RecordGame(mode string, score, moves int) (int64, error) {
	b.games = append(b.games, storage.GameRecord{Mode: mode, Score: score, Moves: moves})
	return int64(len(b.games)), nil
}

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	opts.Session = session.DefaultConfig()
	opts.Runtime = core.RuntimeConfig{ScreenW: 80, ScreenH: 30, LogicRate: 8, RenderRate: 45, Seed: 42}
	m := NewModel(opts)
	m.Init()
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

// expire runs a timed game out of time.
func expire(t *testing.T, m Model) Model {
	t.Helper()
	for range session.DefaultTimeAllowed + 1 {
		m, _ = update(t, m, TimerTickMsg{Gen: m.sched.Gen()})
	}
	m, _ = update(t, m, LogicTickMsg{Gen: m.sched.Gen()})
	return m
}

func TestModelInitStartsGame(t *testing.T) {
	m := NewModel(Options{
		Session: session.DefaultConfig(),
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 30, LogicRate: 8, RenderRate: 45, Seed: 1},
	})
	assert.Equal(t, session.StateGameOver, m.session.State(), "no game before Init")

	cmd := m.Init()
	assert.NotNil(t, cmd, "Init should start the tick loop")
	assert.Equal(t, session.StateActiveUntimed, m.session.State())
	assert.True(t, m.sched.Armed())
	assert.Positive(t, m.frame.frames, "first frame is pushed right away")
	assert.Len(t, m.frame.view.Colors, session.DefaultHeight)
}

func TestModelStartsTimed(t *testing.T) {
	m := newTestModel(t, Options{Timed: true})
	assert.Equal(t, session.StateActiveTimed, m.session.State())
	assert.Equal(t, session.DefaultTimeAllowed, m.session.TimeRemaining())
}

func TestModelDropsStaleTicks(t *testing.T) {
	m := newTestModel(t, Options{Timed: true})
	stale := m.sched.Gen()

	m, cmd := update(t, m, runeKey('t'))
	require.NotNil(t, cmd)

	m, cmd = update(t, m, TimerTickMsg{Gen: stale})
	assert.Nil(t, cmd)
	assert.Equal(t, session.DefaultTimeAllowed, m.session.TimeRemaining())

	m, cmd = update(t, m, TimerTickMsg{Gen: m.sched.Gen()})
	assert.NotNil(t, cmd, "a current tick reschedules itself")
	assert.Equal(t, session.DefaultTimeAllowed-1, m.session.TimeRemaining())
}

func TestModelRenderTickPushesFrame(t *testing.T) {
	m := newTestModel(t, Options{})
	before := m.frame.frames

	m, cmd := update(t, m, RenderTickMsg{Gen: m.sched.Gen()})
	assert.NotNil(t, cmd)
	assert.Equal(t, before+1, m.frame.frames)
}

func TestModelCursorMovement(t *testing.T) {
	m := newTestModel(t, Options{})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, match3.Point{}, m.cursor, "cursor stays on the board")

	for range 10 {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	}
	m, _ = update(t, m, runeKey('j'))
	assert.Equal(t, match3.Point{X: session.DefaultWidth - 1, Y: 1}, m.cursor)
}

func TestModelKeyboardSelect(t *testing.T) {
	m := newTestModel(t, Options{})

	m, _ = update(t, m, runeKey('l'))
	m, _ = update(t, m, runeKey(' '))
	assert.True(t, m.frame.view.HasSelection)
	assert.Equal(t, match3.Point{X: 1}, m.frame.view.Selected)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.frame.view.HasSelection, "re-selecting a cell clears it")
}

func TestModelMouseSelect(t *testing.T) {
	m := newTestModel(t, Options{})
	l := computeLayout(m.screen.Width(), session.DefaultWidth, session.DefaultHeight)

	first := l.grid.CellRect(0, 0, cellW, cellH)
	m, _ = update(t, m, click(first.X, first.Y))
	assert.True(t, m.frame.view.HasSelection)
	assert.Equal(t, match3.Point{}, m.frame.view.Selected)

	far := l.grid.CellRect(3, 0, cellW, cellH)
	m, _ = update(t, m, click(far.X+1, far.Y+1))
	assert.False(t, m.frame.view.HasSelection, "a distant click clears the selection")
	assert.Equal(t, match3.Point{X: 3}, m.cursor, "clicks move the cursor")
}

func TestModelMouseIgnoresOtherEvents(t *testing.T) {
	m := newTestModel(t, Options{})
	l := computeLayout(m.screen.Width(), session.DefaultWidth, session.DefaultHeight)

	release := click(l.grid.X, l.grid.Y)
	release.Action = tea.MouseActionRelease
	m, _ = update(t, m, release)
	assert.False(t, m.frame.view.HasSelection)

	right := click(l.grid.X, l.grid.Y)
	right.Button = tea.MouseButtonRight
	m, _ = update(t, m, right)
	assert.False(t, m.frame.view.HasSelection)
}

func TestModelMouseNewGameLabels(t *testing.T) {
	m := newTestModel(t, Options{})
	l := computeLayout(m.screen.Width(), session.DefaultWidth, session.DefaultHeight)

	m, cmd := update(t, m, click(l.newTimed.X+2, l.newTimed.Y))
	assert.NotNil(t, cmd)
	assert.Equal(t, session.StateActiveTimed, m.session.State())

	m, _ = update(t, m, click(l.newGame.X, l.newGame.Y))
	assert.Equal(t, session.StateActiveUntimed, m.session.State())
}

func TestModelRecordsFinishedGameOnce(t *testing.T) {
	backend := &memBackend{}
	m := newTestModel(t, Options{Timed: true, Store: backend})

	m = expire(t, m)
	require.Equal(t, session.StateGameOver, m.session.State())
	assert.False(t, m.sched.Armed())
	assert.Equal(t, []string{session.MsgOutOfTime}, m.notices.notes)

	require.Len(t, backend.games, 1)
	assert.Equal(t, storage.ModeTimed, backend.games[0].Mode)

	m, cmd := update(t, m, LogicTickMsg{Gen: m.sched.Gen()})
	assert.Nil(t, cmd)
	m.history.recordIfOver(m.session)
	assert.Len(t, backend.games, 1)
}

func TestModelFailedFirstGameRecordsNothing(t *testing.T) {
	backend := &memBackend{}
	cfg := session.DefaultConfig()
	cfg.Width = 2
	m := NewModel(Options{
		Session: cfg,
		Store:   backend,
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 30, LogicRate: 8, RenderRate: 45, Seed: 42},
	})

	m.Init()
	require.Equal(t, session.StateGameOver, m.session.State())
	require.Len(t, m.notices.notes, 1)
	assert.Contains(t, m.notices.notes[0], "Cannot start a game")
	assert.Equal(t, match3.Point{}, m.cursor)

	m.history.recordIfOver(m.session)
	assert.Empty(t, backend.games, "a game that never started must not reach the history")
}

func TestModelNewGameDoesNotRecordUnfinished(t *testing.T) {
	backend := &memBackend{}
	m := newTestModel(t, Options{Store: backend})

	m, _ = update(t, m, runeKey('n'))
	m, _ = update(t, m, LogicTickMsg{Gen: m.sched.Gen()})
	assert.Empty(t, backend.games)
}

func TestModelGameOverOverlay(t *testing.T) {
	m := newTestModel(t, Options{Timed: true})
	m = expire(t, m)

	assert.Contains(t, m.View(), session.MsgOutOfTime)

	m, _ = update(t, m, runeKey('n'))
	assert.Empty(t, m.notices.notes, "a new game clears the overlay")
	assert.NotContains(t, m.View(), session.MsgOutOfTime)
}

func TestModelClicksIgnoredAfterGameOver(t *testing.T) {
	m := newTestModel(t, Options{Timed: true})
	m = expire(t, m)
	l := computeLayout(m.screen.Width(), session.DefaultWidth, session.DefaultHeight)

	m, _ = update(t, m, click(l.grid.X, l.grid.Y))
	assert.False(t, m.frame.view.HasSelection)
}

func TestModelFileBackendHasNoHistory(t *testing.T) {
	fs, err := storage.NewFileStore(filepath.Join(t.TempDir(), "high_scores.txt"))
	require.NoError(t, err)

	m := newTestModel(t, Options{Store: fs})
	assert.Nil(t, m.history.recorder)
}

func TestModelHelpToggle(t *testing.T) {
	m := newTestModel(t, Options{})
	short := m.View()

	m, _ = update(t, m, runeKey('?'))
	assert.True(t, m.help.ShowAll)
	assert.NotEqual(t, short, m.View())
}

func TestModelResize(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m.View()

	assert.Equal(t, 100, m.screen.Width())
	assert.Less(t, m.screen.Height(), 40, "the help bar takes the last rows")
}

func TestModelScreenshot(t *testing.T) {
	dir := t.TempDir()
	m := newTestModel(t, Options{ScreenshotDir: dir})
	m.View()

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), title)
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, Options{})
	m, cmd := update(t, m, runeKey('q'))
	assert.NotNil(t, cmd)
	assert.True(t, m.quitting)
	assert.Empty(t, m.View())
}
