package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/beshoelled/internal/session"
)

// timerRate is the countdown frequency in ticks per second.
const timerRate = 1

// Scheduler drives the session's periodic callbacks with tea.Tick commands.
//
// Every tick carries the generation it was armed in. Arm and Disarm both
// start a new generation, so ticks still in flight from an earlier game are
// dropped by the model when they arrive. The session calls Arm and Disarm
// from inside Update; the commands they produce are collected and handed to
// Bubble Tea by Drain.
type Scheduler struct {
	logicRate  int
	renderRate int

	gen     int
	armed   bool
	timed   bool
	pending []tea.Cmd
}

var _ session.Scheduler = (*Scheduler)(nil)

// NewScheduler creates a disarmed scheduler.
func NewScheduler(logicRate, renderRate int) *Scheduler {
	return &Scheduler{logicRate: logicRate, renderRate: renderRate}
}

// Arm starts a new generation of logic and render ticks, plus the
// countdown when timed.
func (s *Scheduler) Arm(timed bool) {
	s.gen++
	s.armed = true
	s.timed = timed
	s.pending = append(s.pending, s.logicCmd(), s.renderCmd())
	if timed {
		s.pending = append(s.pending, s.timerCmd())
	}
}

// Disarm stops all ticks.
func (s *Scheduler) Disarm() {
	s.gen++
	s.armed = false
	s.pending = nil
}

// Armed reports whether ticks are running.
func (s *Scheduler) Armed() bool {
	return s.armed
}

// Gen returns the current generation.
func (s *Scheduler) Gen() int {
	return s.gen
}

// Current reports whether a tick stamped with gen should still be handled.
func (s *Scheduler) Current(gen int) bool {
	return s.armed && gen == s.gen
}

// Drain returns the commands queued by Arm since the last call.
func (s *Scheduler) Drain() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}

func (s *Scheduler) logicCmd() tea.Cmd {
	gen := s.gen
	return tickCmd(s.logicRate, func() tea.Msg { return LogicTickMsg{Gen: gen} })
}

func (s *Scheduler) renderCmd() tea.Cmd {
	gen := s.gen
	return tickCmd(s.renderRate, func() tea.Msg { return RenderTickMsg{Gen: gen} })
}

func (s *Scheduler) timerCmd() tea.Cmd {
	gen := s.gen
	return tickCmd(timerRate, func() tea.Msg { return TimerTickMsg{Gen: gen} })
}
