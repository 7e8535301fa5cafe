package sim

import "github.com/vovakirdan/spark-arcade/internal/core"

// Shape selects the overlap test.
type Shape string

const (
	ShapeBox    Shape = "box"    // axis-aligned bounding boxes
	ShapeCircle Shape = "circle" // circles inscribed in the boxes
)

// Overlaps tests a against b with the given shape. It is symmetric.
func Overlaps(shape Shape, a, b core.Box) bool {
	if shape == ShapeCircle {
		return core.CirclesOverlap(a, b)
	}
	return a.Overlaps(b)
}

// Vitals is the actor's damage and bonus state.
type Vitals struct {
	Lives        int
	MaxLives     int
	Streak       int
	Shield       bool
	Invulnerable float64 // seconds left
	Slow         float64 // seconds left
}

// Collider applies contact rules between the actor and the pools.
type Collider struct {
	Shape   Shape
	Vitals  VitalsConfig
	Effects EffectsConfig
}

// CheckAll tests every unresolved entity against the actor. Collectibles are
// handled before anything that damages, so a pickup in the same tick as a
// hit still counts. Each entity takes effect at most once.
func (c Collider) CheckAll(actor core.Box, v *Vitals, pools ...*Pool) []Event {
	var events []Event
	for _, p := range pools {
		for i := range p.items {
			e := &p.items[i]
			if e.Kind != KindCollectible || e.resolved || !Overlaps(c.Shape, actor, e.Box) {
				continue
			}
			e.Resolve()
			events = append(events, c.pickup(*e, v))
		}
	}

	for _, p := range pools {
		for i := range p.items {
			if v.Lives <= 0 {
				return events
			}
			e := &p.items[i]
			if !e.Damages() || e.resolved || !Overlaps(c.Shape, actor, e.Box) {
				continue
			}
			// Contact during an invulnerability window is ignored outright.
			if v.Invulnerable > 0 {
				continue
			}
			e.Resolve()
			events = append(events, c.damage(*e, v))
		}
	}
	return events
}

func (c Collider) pickup(e Entity, v *Vitals) Event {
	points := e.Value + v.Streak*c.Vitals.StreakBonus
	if c.Vitals.StreakMax > 0 {
		v.Streak = min(v.Streak+1, c.Vitals.StreakMax)
	}

	switch e.Effect {
	case EffectShield:
		v.Shield = true
	case EffectSlow:
		v.Slow = c.Effects.SlowDuration
	case EffectEnergy:
		v.Lives = min(v.Lives+1, max(v.MaxLives, v.Lives))
	}

	return Event{Kind: EventPickup, Entity: e, Points: points, Lives: v.Lives, Streak: v.Streak}
}

func (c Collider) damage(e Entity, v *Vitals) Event {
	if v.Shield {
		v.Shield = false
		v.Invulnerable = c.Vitals.ShieldInvulnerableTime
		return Event{Kind: EventBlocked, Entity: e, Lives: v.Lives, Streak: v.Streak}
	}

	v.Lives = max(v.Lives-1, 0)
	v.Streak = 0
	v.Invulnerable = c.Vitals.InvulnerableTime
	return Event{Kind: EventHit, Entity: e, Lives: v.Lives}
}

// CheckPassed resolves obstacles whose trailing edge is left of the actor's
// leading edge and awards their value once.
func (c Collider) CheckPassed(actor core.Box, pools ...*Pool) []Event {
	var events []Event
	for _, p := range pools {
		for i := range p.items {
			e := &p.items[i]
			if e.Kind != KindObstacle || e.resolved || e.Box.Right() >= actor.X {
				continue
			}
			e.Resolve()
			events = append(events, Event{Kind: EventPassed, Entity: *e, Points: e.Value})
		}
	}
	return events
}
