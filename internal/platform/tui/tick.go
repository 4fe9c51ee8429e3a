// Package tui hosts a game session in a Bubble Tea program.
// It owns the tick loop, input mapping and drawing; all game rules live in
// the session and match3 packages.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// LogicTickMsg asks the session to advance the resolve loop.
type LogicTickMsg struct{ Gen int }

// RenderTickMsg asks the session to push a frame to the renderer.
type RenderTickMsg struct{ Gen int }

// TimerTickMsg takes one second off a timed game's countdown.
type TimerTickMsg struct{ Gen int }

// tickCmd returns a Bubble Tea command that delivers one message after
// 1/rate seconds.
func tickCmd(rate int, msg func() tea.Msg) tea.Cmd {
	if rate <= 0 {
		rate = 1
	}
	interval := time.Second / time.Duration(rate)
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return msg()
	})
}
