package sim

import "github.com/vovakirdan/spark-arcade/internal/core"

// ActorView is the read-only part of the actor a renderer needs.
type ActorView struct {
	Box        core.Box
	VY         float64
	Grounded   bool
	Charge     bool
	Squash     float64
	DoubleJump bool
}

// Snapshot is a copy of the session taken between steps.
// Mutating it never affects the session.
type Snapshot struct {
	State          State
	RunID          string
	Field          Field
	Elapsed        float64
	Score          int
	Best           int
	NewBest        bool
	Distance       float64
	Speed          float64
	EffectiveSpeed float64
	Vitals         Vitals
	Actor          ActorView
	Entities       []Entity
	Particles      []Particle
}

// Snapshot copies the current state for rendering.
func (s *Session) Snapshot() Snapshot {
	entities := make([]Entity, 0, s.pools.Len())
	for _, p := range s.pools.All() {
		entities = append(entities, p.items...)
	}
	return Snapshot{
		State:          s.state,
		RunID:          s.runID,
		Field:          s.field,
		Elapsed:        s.elapsed,
		Score:          s.Score(),
		Best:           s.best,
		NewBest:        s.newBest,
		Distance:       s.distance,
		Speed:          s.speed,
		EffectiveSpeed: s.EffectiveSpeed(),
		Vitals:         s.vitals,
		Actor: ActorView{
			Box:        s.actor.Box,
			VY:         s.actor.VY,
			Grounded:   s.actor.Grounded,
			Charge:     s.actor.Charge,
			Squash:     s.actor.Squash,
			DoubleJump: s.actor.DoubleJump(),
		},
		Entities:  entities,
		Particles: s.particles.Items(),
	}
}
