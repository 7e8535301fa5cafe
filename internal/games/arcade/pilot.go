package arcade

import (
	"math"

	"github.com/vovakirdan/spark-arcade/internal/core"
	"github.com/vovakirdan/spark-arcade/internal/sim"
)

// Pilot plays a cabinet without a human. The sim command uses it to
// exercise configs headlessly.
type Pilot struct {
	// Reaction is how far ahead a runner looks, in seconds of travel.
	Reaction float64
}

// NewPilot returns a pilot with a human-like reaction time.
func NewPilot() *Pilot {
	return &Pilot{Reaction: 0.18}
}

// Decide returns the input for the next tick.
func (p *Pilot) Decide(snap sim.Snapshot, mode sim.Mode) core.InputFrame {
	in := core.NewInputFrame()
	switch snap.State {
	case sim.StateIdle:
		in.Set(core.ActionConfirm)
		return in
	case sim.StateRunning:
	default:
		return in
	}

	if mode == sim.ModeFree {
		if a := p.steer(snap); a != core.ActionNone {
			in.Set(a)
		}
		return in
	}
	if p.shouldJump(snap) {
		in.Set(core.ActionJump)
	}
	return in
}

// shouldJump reports whether a ground entity is about to reach the actor.
func (p *Pilot) shouldJump(snap sim.Snapshot) bool {
	a := snap.Actor
	if !a.Grounded {
		return false
	}
	reach := snap.EffectiveSpeed * p.Reaction
	for _, e := range snap.Entities {
		if !e.Damages() || e.Resolved() || e.Placement != sim.PlacementGround {
			continue
		}
		gap := e.Box.X - a.Box.Right()
		if gap >= 0 && gap <= reach {
			return true
		}
	}
	return false
}

// steer dodges the nearest hazard in the actor's lane, otherwise heads for
// the nearest collectible.
func (p *Pilot) steer(snap sim.Snapshot) core.Action {
	a := snap.Actor.Box
	_, ay := a.Center()

	threat, threatDist := sim.Entity{}, math.Inf(1)
	target, targetDist := sim.Entity{}, math.Inf(1)
	for _, e := range snap.Entities {
		if e.Resolved() || e.Box.Right() < a.X {
			continue
		}
		dist := e.Box.X - a.Right()
		switch {
		case e.Damages():
			lane := e.Box.Y < a.Bottom()+a.H/2 && e.Box.Bottom() > a.Y-a.H/2
			if lane && dist < threatDist && dist < snap.EffectiveSpeed*1.2 {
				threat, threatDist = e, dist
			}
		case e.Kind == sim.KindCollectible:
			if dist < targetDist {
				target, targetDist = e, dist
			}
		}
	}

	if !math.IsInf(threatDist, 1) {
		_, ty := threat.Box.Center()
		roomAbove := a.Y > a.H
		roomBelow := a.Bottom() < snap.Field.Height-a.H
		if (ty > ay && roomAbove) || !roomBelow {
			return core.ActionUp
		}
		return core.ActionDown
	}
	if !math.IsInf(targetDist, 1) {
		_, ty := target.Box.Center()
		switch {
		case ty < ay-a.H/4:
			return core.ActionUp
		case ty > ay+a.H/4:
			return core.ActionDown
		}
	}
	return core.ActionNone
}
