// Package sim is the arcade simulation core shared by every game: a clamped
// clock, entity pools, a spawner, the actor's physics, collision checks and
// the session state machine that ties them together.
//
// Everything here is synchronous and deterministic for a given seed. Nothing
// draws, plays sound or touches storage directly; those concerns subscribe to
// the events a Session emits.
package sim

import (
	"math"
	"time"
)

// DefaultMaxStep is the largest step the clock hands out when none is configured.
const DefaultMaxStep = 0.033

// Clock turns raw frame times into simulation steps.
type Clock struct {
	MaxStep float64
}

// NewClock creates a clock with the given step ceiling in seconds.
func NewClock(maxStep float64) Clock {
	return Clock{MaxStep: maxStep}
}

// Tick clamps a raw elapsed time in seconds to [0, MaxStep].
// Negative and NaN input yields 0.
func (c Clock) Tick(raw float64) float64 {
	limit := c.MaxStep
	if !(limit > 0) || math.IsInf(limit, 1) {
		limit = DefaultMaxStep
	}
	if math.IsNaN(raw) || raw <= 0 {
		return 0
	}
	if raw > limit {
		return limit
	}
	return raw
}

// TickDuration is Tick for a wall-clock duration.
func (c Clock) TickDuration(d time.Duration) float64 {
	return c.Tick(d.Seconds())
}
