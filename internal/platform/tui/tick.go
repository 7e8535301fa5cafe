// Package tui provides the Bubble Tea integration for the arcade platform.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultTickRate is used when the runtime config leaves the rate unset.
const DefaultTickRate = 60

// maxFrame caps the wall time one tick may report after a stall.
const maxFrame = 250 * time.Millisecond

// TickMsg is sent to trigger a game simulation tick. Loop identifies the
// tick loop so a reopened game ignores ticks still in flight for the old one.
type TickMsg struct {
	Time time.Time
	Loop uint64
}

var loops atomic.Uint64

// newLoop returns a fresh tick loop identifier.
func newLoop() uint64 {
	return loops.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, loop uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Loop: loop}
	})
}

// frameTime returns the wall time between two ticks. The first tick of a
// run uses the nominal interval.
func frameTime(prev, now time.Time, tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}
	if prev.IsZero() || !now.After(prev) {
		return time.Second / time.Duration(tickRate)
	}
	return min(now.Sub(prev), maxFrame)
}
