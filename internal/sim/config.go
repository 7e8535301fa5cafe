package sim

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Range is a closed interval used for random draws.
// In YAML it is written either as a scalar (min == max) or as a [min, max] pair.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Fixed returns a range that always yields v.
func Fixed(v float64) Range {
	return Range{Min: v, Max: v}
}

// Between returns the range [lo, hi].
func Between(lo, hi float64) Range {
	return Range{Min: lo, Max: hi}
}

// IsZero reports whether the range was left unset.
func (r Range) IsZero() bool {
	return r.Min == 0 && r.Max == 0
}

// Scale multiplies both bounds by f.
func (r Range) Scale(f float64) Range {
	return Range{Min: r.Min * f, Max: r.Max * f}
}

// UnmarshalYAML accepts `3`, `[1, 2]` and `{min: 1, max: 2}`.
func (r *Range) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var v float64
		if err := value.Decode(&v); err != nil {
			return err
		}
		*r = Fixed(v)
		return nil
	case yaml.SequenceNode:
		var vs []float64
		if err := value.Decode(&vs); err != nil {
			return err
		}
		switch len(vs) {
		case 1:
			*r = Fixed(vs[0])
		case 2:
			*r = Between(vs[0], vs[1])
		default:
			return fmt.Errorf("range: expected 1 or 2 values, got %d", len(vs))
		}
		return nil
	case yaml.MappingNode:
		type plain Range
		var p plain
		if err := value.Decode(&p); err != nil {
			return err
		}
		*r = Range(p)
		return nil
	default:
		return fmt.Errorf("range: unsupported YAML node at line %d", value.Line)
	}
}

// Config holds the rules of one game. Lengths are playfield pixels at scale 1,
// times are seconds and speeds are pixels per second.
type Config struct {
	Clock     ClockConfig     `yaml:"clock"`
	World     WorldConfig     `yaml:"world"`
	Actor     ActorConfig     `yaml:"actor"`
	Streams   []StreamConfig  `yaml:"streams"`
	Entities  []EntityType    `yaml:"entities"`
	Vitals    VitalsConfig    `yaml:"vitals"`
	Effects   EffectsConfig   `yaml:"effects"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Collision CollisionConfig `yaml:"collision"`
	Particles ParticleConfig  `yaml:"particles"`
	Session   SessionConfig   `yaml:"session"`
}

// ClockConfig bounds the simulated step.
type ClockConfig struct {
	MaxStep float64 `yaml:"max_step"`
}

// WorldConfig describes the playfield and the world speed ramp.
type WorldConfig struct {
	StartSpeed  float64 `yaml:"start_speed"`  // px/s at t=0
	Growth      float64 `yaml:"growth"`       // multiplier growth per second: start*(1+growth*t)
	Accel       float64 `yaml:"accel"`        // linear increase in px/s per second
	MaxSpeed    float64 `yaml:"max_speed"`    // upper bound, px/s
	Floor       float64 `yaml:"floor"`        // floor line as a fraction of the playfield height
	SpawnMargin float64 `yaml:"spawn_margin"` // entities enter at width + margin
	PruneMargin float64 `yaml:"prune_margin"` // entities leave once right edge < -margin
}

// Mode selects how the actor moves.
type Mode string

const (
	ModeRunner Mode = "runner" // gravity and jumps along a floor
	ModeFree   Mode = "free"   // four-way movement clamped to the playfield
)

// ActorConfig describes the player-controlled actor.
type ActorConfig struct {
	Mode              Mode    `yaml:"mode"`
	Width             float64 `yaml:"width"`
	Height            float64 `yaml:"height"`
	AnchorX           float64 `yaml:"anchor_x"`     // fixed left edge in px
	AnchorRatio       float64 `yaml:"anchor_ratio"` // left edge as a fraction of width; wins over AnchorX
	StartY            float64 `yaml:"start_y"`      // free mode: centre as a fraction of height
	Gravity           float64 `yaml:"gravity"`
	JumpImpulse       float64 `yaml:"jump_impulse"`
	DoubleJumpImpulse float64 `yaml:"double_jump_impulse"`
	DoubleJump        bool    `yaml:"double_jump"`
	MoveSpeed         float64 `yaml:"move_speed"`
	HitKnock          float64 `yaml:"hit_knock"`
	SquashDecay       float64 `yaml:"squash_decay"`
}

// VitalsConfig holds lives, invulnerability and streak rules.
type VitalsConfig struct {
	Lives                  int     `yaml:"lives"`
	MaxLives               int     `yaml:"max_lives"`
	InvulnerableTime       float64 `yaml:"invulnerable_time"`
	ShieldInvulnerableTime float64 `yaml:"shield_invulnerable_time"`
	HitStop                float64 `yaml:"hit_stop"`
	BlockHitStop           float64 `yaml:"block_hit_stop"`
	StreakMax              int     `yaml:"streak_max"`
	StreakBonus            int     `yaml:"streak_bonus"`
}

// EffectsConfig holds power-up effect parameters.
type EffectsConfig struct {
	SlowDuration float64 `yaml:"slow_duration"`
	SlowFactor   float64 `yaml:"slow_factor"`
}

// ScoringConfig holds the passive score and distance rates.
type ScoringConfig struct {
	TimeRate       float64 `yaml:"time_rate"`        // points per second
	ScaleWithSpeed bool    `yaml:"scale_with_speed"` // multiply TimeRate by speed/start_speed
	DistanceRate   float64 `yaml:"distance_rate"`    // distance units per px travelled
}

// CollisionConfig selects the overlap test.
type CollisionConfig struct {
	Shape Shape `yaml:"shape"`
}

// Burst describes a particle burst.
type Burst struct {
	Count int   `yaml:"count"`
	VX    Range `yaml:"vx"`
	VY    Range `yaml:"vy"`
	Life  Range `yaml:"life"`
}

// ParticleConfig describes the particle pool.
type ParticleConfig struct {
	Max     int     `yaml:"max"`
	Gravity float64 `yaml:"gravity"`
	Jump    Burst   `yaml:"jump"`
	Pass    Burst   `yaml:"pass"`
	Hit     Burst   `yaml:"hit"`
}

// SessionConfig holds state machine options.
type SessionConfig struct {
	JumpStarts bool `yaml:"jump_starts"` // a jump while idle starts the run
}

// Lookup returns the entity type with the given name.
func (c Config) Lookup(name string) (EntityType, bool) {
	for _, t := range c.Entities {
		if t.Name == name {
			return t, true
		}
	}
	return EntityType{}, false
}

// Validate checks the rules for values the simulation cannot run with.
func (c Config) Validate() error {
	if c.Actor.Width <= 0 || c.Actor.Height <= 0 {
		return fmt.Errorf("actor: size must be positive, got %vx%v", c.Actor.Width, c.Actor.Height)
	}
	switch c.Actor.Mode {
	case ModeRunner, ModeFree, "":
	default:
		return fmt.Errorf("actor: unknown mode %q", c.Actor.Mode)
	}
	if c.World.MaxSpeed > 0 && c.World.MaxSpeed < c.World.StartSpeed {
		return fmt.Errorf("world: max_speed %v below start_speed %v", c.World.MaxSpeed, c.World.StartSpeed)
	}
	if c.Vitals.Lives <= 0 {
		return fmt.Errorf("vitals: lives must be positive, got %d", c.Vitals.Lives)
	}
	switch c.Collision.Shape {
	case ShapeBox, ShapeCircle, "":
	default:
		return fmt.Errorf("collision: unknown shape %q", c.Collision.Shape)
	}

	seen := make(map[string]bool, len(c.Entities))
	for _, t := range c.Entities {
		if t.Name == "" {
			return fmt.Errorf("entities: type without a name")
		}
		if seen[t.Name] {
			return fmt.Errorf("entities: duplicate type %q", t.Name)
		}
		seen[t.Name] = true
		switch t.Kind {
		case KindObstacle, KindHazard, KindCollectible:
		default:
			return fmt.Errorf("entities: %s: unknown kind %q", t.Name, t.Kind)
		}
		if t.Width.Min <= 0 || t.Width.Max < t.Width.Min {
			return fmt.Errorf("entities: %s: invalid width %v", t.Name, t.Width)
		}
	}

	for _, s := range c.Streams {
		if s.Interval.Min <= 0 || s.Interval.Max < s.Interval.Min {
			return fmt.Errorf("streams: %s: invalid interval %v", s.Name, s.Interval)
		}
		if err := checkWeights(c, s.Name, s.Weights); err != nil {
			return err
		}
		if s.Bonus != nil {
			if err := checkWeights(c, s.Name+" bonus", s.Bonus.Weights); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkWeights(c Config, stream string, ws []Weight) error {
	if len(ws) == 0 {
		return fmt.Errorf("streams: %s: no weights", stream)
	}
	for _, w := range ws {
		if _, ok := c.Lookup(w.Type); !ok {
			return fmt.Errorf("streams: %s: unknown entity type %q", stream, w.Type)
		}
		if w.Weight < 0 {
			return fmt.Errorf("streams: %s: negative weight for %q", stream, w.Type)
		}
	}
	return nil
}

// withDefaults fills values that have a sensible zero replacement.
func (c Config) withDefaults() Config {
	if c.Clock.MaxStep <= 0 {
		c.Clock.MaxStep = DefaultMaxStep
	}
	if c.Actor.Mode == "" {
		c.Actor.Mode = ModeRunner
	}
	if c.Actor.StartY <= 0 {
		c.Actor.StartY = 0.5
	}
	if c.World.Floor <= 0 || c.World.Floor > 1 {
		c.World.Floor = 1
	}
	if c.Collision.Shape == "" {
		c.Collision.Shape = ShapeBox
	}
	if c.Effects.SlowFactor <= 0 {
		c.Effects.SlowFactor = 1
	}
	if c.Vitals.Lives <= 0 {
		c.Vitals.Lives = 1
	}
	if c.Vitals.MaxLives < c.Vitals.Lives {
		c.Vitals.MaxLives = c.Vitals.Lives
	}
	return c
}
