package core

import (
	"fmt"
	"time"
)

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Platform ticks per second (default 60)
	Seed     int64 // RNG seed; 0 means the platform picks one from the clock
	Store    Store // Best score and preferences; nil means in-memory only
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// TickInterval returns the wall-clock duration between platform ticks.
func (c RuntimeConfig) TickInterval() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.TickRate)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int           // Current score
	Best     int           // Best score known to the game
	Lives    int           // Remaining lives (energy for the dodger)
	Started  bool          // Whether a run has started
	GameOver bool          // Whether the run has ended
	Paused   bool          // Whether the run is paused
	RunID    string        // Identifier of the current run
	Duration time.Duration // Simulated time spent running
}

// StepResult is returned by Game.Step() after each platform tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []fmt.Stringer
}
