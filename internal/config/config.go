// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/spark-arcade/internal/sim"
)

// GameConfig contains the full configuration of one arcade game.
// The simulation rules sit at the top level of the YAML document.
type GameConfig struct {
	Title      string                            `yaml:"title"`
	Cells      CellSize                          `yaml:"cells"`
	Rules      sim.Config                        `yaml:",inline"`
	Difficulty DifficultyConfig                  `yaml:"difficulty"`
	Presets    map[DifficultyPreset]PresetTweaks `yaml:"presets"`
}

// CellSize is how many playfield pixels one terminal cell covers.
type CellSize struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Valid reports whether both dimensions are positive.
func (c CellSize) Valid() bool {
	return c.Width > 0 && c.Height > 0
}

// PresetTweaks are per-game rule changes applied on top of a difficulty preset.
type PresetTweaks struct {
	Lives       int                  `yaml:"lives"`        // 0 keeps the configured lives
	SpeedScale  float64              `yaml:"speed_scale"`  // multiplies start and max world speed
	MoveScale   float64              `yaml:"move_scale"`   // multiplies free-mode move speed
	Values      map[string]int       `yaml:"values"`       // entity type -> points
	EntitySpeed map[string]float64   `yaml:"entity_speed"` // entity type -> speed factor
	Intervals   map[string]sim.Range `yaml:"intervals"`    // stream name -> spawn interval
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a run.
type ProgressionConfig struct {
	Type  string  `yaml:"type"`   // "score", "time", or "none"
	MaxAt float64 `yaml:"max_at"` // score or seconds at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier   float64 `yaml:"speed_multiplier"`   // added to the speed factor at max difficulty
	IntervalReduction float64 `yaml:"interval_reduction"` // fraction removed from spawn intervals at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value into a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset modifies the config based on a difficulty preset and the
// game's own tweaks for that preset, if any.
func ApplyPreset(cfg *GameConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	tw, ok := cfg.Presets[preset]
	if !ok {
		return
	}
	rules := &cfg.Rules
	if tw.Lives > 0 {
		rules.Vitals.Lives = tw.Lives
		rules.Vitals.MaxLives = max(rules.Vitals.MaxLives, tw.Lives)
	}
	if tw.SpeedScale > 0 {
		rules.World.StartSpeed *= tw.SpeedScale
		rules.World.MaxSpeed *= tw.SpeedScale
	}
	if tw.MoveScale > 0 {
		rules.Actor.MoveSpeed *= tw.MoveScale
	}

	// Callers may share the slices; copy before writing.
	entities := make([]sim.EntityType, len(rules.Entities))
	copy(entities, rules.Entities)
	for i := range entities {
		if v, ok := tw.Values[entities[i].Name]; ok {
			entities[i].Value = v
		}
		if v, ok := tw.EntitySpeed[entities[i].Name]; ok {
			entities[i].Speed = v
		}
	}
	rules.Entities = entities

	streams := make([]sim.StreamConfig, len(rules.Streams))
	copy(streams, rules.Streams)
	for i := range streams {
		if r, ok := tw.Intervals[streams[i].Name]; ok {
			streams[i].Interval = r
		}
	}
	rules.Streams = streams
}

// Validate checks the config for values the game cannot run with.
func (c GameConfig) Validate() error {
	if !c.Cells.Valid() {
		return fmt.Errorf("cells: size must be positive, got %vx%v", c.Cells.Width, c.Cells.Height)
	}
	switch c.Difficulty.Progression.Type {
	case "", "none", "score", "time":
	default:
		return fmt.Errorf("difficulty: unknown progression %q", c.Difficulty.Progression.Type)
	}
	if err := c.Rules.Validate(); err != nil {
		return fmt.Errorf("rules: %w", err)
	}
	return nil
}
