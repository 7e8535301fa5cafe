package sim

import "github.com/vovakirdan/spark-arcade/internal/core"

// Kind tells the collision engine how an entity affects the actor.
type Kind string

const (
	KindObstacle    Kind = "obstacle"    // damages on contact, scores when passed
	KindHazard      Kind = "hazard"      // damages on contact, never scores
	KindCollectible Kind = "collectible" // scores and applies its effect on contact
)

// Placement decides where a new entity sits vertically.
type Placement string

const (
	PlacementGround   Placement = "ground"   // flush with the floor line
	PlacementFloating Placement = "floating" // drawn from the type's band
)

// Effect is what a collectible does besides scoring.
type Effect string

const (
	EffectNone   Effect = ""
	EffectShield Effect = "shield" // absorbs the next hit
	EffectSlow   Effect = "slow"   // slows entities for a while
	EffectEnergy Effect = "energy" // restores one life, up to the cap
)

// EntityType is the spawn recipe for one kind of entity.
type EntityType struct {
	Name      string    `yaml:"name"`
	Kind      Kind      `yaml:"kind"`
	Width     Range     `yaml:"width"`
	Height    Range     `yaml:"height"` // unset means square
	Placement Placement `yaml:"placement"`
	Band      Range     `yaml:"band"` // bottom edge band for floating types, fraction of height
	Value     int       `yaml:"value"`
	Effect    Effect    `yaml:"effect"`
	Speed     float64   `yaml:"speed"`   // speed factor relative to the world; unset means 1
	Consume   bool      `yaml:"consume"` // removed from the pool once resolved
}

// Entity is one spawned obstacle, hazard or collectible.
// After spawning only Box.X, Box.Y and the resolved flag ever change.
type Entity struct {
	ID          uint64
	Type        string
	Stream      string
	Kind        Kind
	Placement   Placement
	Box         core.Box
	Value       int
	Effect      Effect
	SpeedFactor float64
	Consumable  bool

	resolved bool
}

// Resolve marks the entity as scored or collided. It reports whether this
// call made the change; the flag never goes back to false.
func (e *Entity) Resolve() bool {
	if e.resolved {
		return false
	}
	e.resolved = true
	return true
}

// Resolved reports whether the entity has already had its effect.
func (e Entity) Resolved() bool {
	return e.resolved
}

// Damages reports whether touching the entity costs a life.
func (e Entity) Damages() bool {
	return e.Kind == KindObstacle || e.Kind == KindHazard
}

// Sequence hands out entity IDs. IDs are unique across all pools of a session.
type Sequence struct {
	next uint64
}

// Next returns a fresh ID, starting at 1.
func (s *Sequence) Next() uint64 {
	s.next++
	return s.next
}
