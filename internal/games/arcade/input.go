package arcade

import (
	"github.com/vovakirdan/spark-arcade/internal/core"
	"github.com/vovakirdan/spark-arcade/internal/sim"
)

// holdTime is how long a direction stays held after its last key press.
// Terminals report presses only, so key repeat keeps the actor moving.
const holdTime = 0.25

// actionOrder fixes the order in which a frame's actions are applied.
var actionOrder = []core.Action{
	core.ActionRestart,
	core.ActionConfirm,
	core.ActionPause,
	core.ActionToggle,
	core.ActionJump,
	core.ActionUp,
	core.ActionDown,
	core.ActionLeft,
	core.ActionRight,
}

var directions = map[core.Action]sim.Direction{
	core.ActionUp:    sim.DirUp,
	core.ActionDown:  sim.DirDown,
	core.ActionLeft:  sim.DirLeft,
	core.ActionRight: sim.DirRight,
}

var opposite = [4]sim.Direction{
	sim.DirUp:    sim.DirDown,
	sim.DirDown:  sim.DirUp,
	sim.DirLeft:  sim.DirRight,
	sim.DirRight: sim.DirLeft,
}

// inputState tracks the held directions of a free-mode actor.
type inputState struct {
	held [4]float64 // seconds left per direction
}

// actions translates one frame of platform input into session actions.
func (c *Cabinet) actions(in core.InputFrame) []sim.Action {
	if in.Empty() {
		return nil
	}

	st := c.session.State()
	free := c.cfg.Rules.Actor.Mode == sim.ModeFree
	idle := st == sim.StateIdle || st == sim.StateEnded

	var out []sim.Action
	for _, a := range actionOrder {
		if !in.Has(a) {
			continue
		}
		switch a {
		case core.ActionRestart:
			out = append(out, sim.Action{Kind: sim.ActionRestart})
		case core.ActionConfirm:
			if idle {
				out = append(out, sim.Action{Kind: sim.ActionStart})
			} else if st == sim.StatePaused {
				out = append(out, sim.Action{Kind: sim.ActionPause})
			}
		case core.ActionPause:
			out = append(out, sim.Action{Kind: sim.ActionPause})
		case core.ActionToggle:
			c.toggleDoubleJump()
		case core.ActionJump:
			out = append(out, c.jumpAction(st, free)...)
		default:
			if !free {
				// Up doubles as jump for runners.
				if a == core.ActionUp && !in.Has(core.ActionJump) {
					out = append(out, c.jumpAction(st, free)...)
				}
				continue
			}
			out = append(out, c.hold(directions[a])...)
		}
	}
	return out
}

func (c *Cabinet) jumpAction(st sim.State, free bool) []sim.Action {
	switch {
	case st == sim.StateIdle && (free || !c.cfg.Rules.Session.JumpStarts):
		return []sim.Action{{Kind: sim.ActionStart}}
	case free:
		return nil
	default:
		return []sim.Action{{Kind: sim.ActionJump}}
	}
}

// hold starts or refreshes a direction and releases its opposite.
func (c *Cabinet) hold(d sim.Direction) []sim.Action {
	var out []sim.Action
	if o := opposite[d]; c.input.held[o] > 0 {
		c.input.held[o] = 0
		out = append(out, sim.Action{Kind: sim.ActionMoveEnd, Dir: o})
	}
	c.input.held[d] = holdTime
	return append(out, sim.Action{Kind: sim.ActionMoveBegin, Dir: d})
}

// release ends directions whose hold time ran out.
func (c *Cabinet) release(dt float64) {
	for d := range c.input.held {
		if c.input.held[d] <= 0 {
			continue
		}
		c.input.held[d] -= dt
		if c.input.held[d] <= 0 {
			c.input.held[d] = 0
			c.session.OnAction(sim.Action{Kind: sim.ActionMoveEnd, Dir: sim.Direction(d)})
		}
	}
}
