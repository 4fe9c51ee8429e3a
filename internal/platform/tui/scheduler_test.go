package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerStartsDisarmed(t *testing.T) {
	s := NewScheduler(8, 45)
	assert.False(t, s.Armed())
	assert.False(t, s.Current(s.Gen()))
	assert.Nil(t, s.Drain())
}

func TestSchedulerArmQueuesTicks(t *testing.T) {
	tests := []struct {
		name  string
		timed bool
		cmds  int
	}{
		{"untimed", false, 2},
		{"timed", true, 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewScheduler(8, 45)
			s.Arm(tc.timed)
			assert.True(t, s.Armed())
			assert.True(t, s.Current(s.Gen()))

			cmd := s.Drain()
			require.NotNil(t, cmd)
			batch, ok := cmd().(tea.BatchMsg)
			require.True(t, ok, "expected a batch of ticks")
			assert.Len(t, batch, tc.cmds)

			assert.Nil(t, s.Drain(), "drain should empty the queue")
		})
	}
}

func TestSchedulerGenerations(t *testing.T) {
	s := NewScheduler(8, 45)
	s.Arm(false)
	first := s.Gen()

	s.Disarm()
	assert.False(t, s.Current(first))
	assert.Nil(t, s.Drain(), "disarm drops queued ticks")

	s.Arm(true)
	assert.False(t, s.Current(first), "ticks of an earlier game stay stale")
	assert.True(t, s.Current(s.Gen()))
	assert.Greater(t, s.Gen(), first)
}

func TestSchedulerTicksCarryGeneration(t *testing.T) {
	s := NewScheduler(1000, 1000)
	s.Arm(false)
	gen := s.Gen()

	assert.Equal(t, LogicTickMsg{Gen: gen}, s.logicCmd()())
	assert.Equal(t, RenderTickMsg{Gen: gen}, s.renderCmd()())
}
