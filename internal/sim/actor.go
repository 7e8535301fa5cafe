package sim

import (
	"math"

	"github.com/vovakirdan/spark-arcade/internal/core"
)

// Squash levels set by jumping and landing; they decay back to 0.
const (
	jumpSquash = 1.0
	landSquash = 0.85
)

// Direction is a free-mode movement axis.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// JumpKind reports what ApplyJump did.
type JumpKind int

const (
	JumpNone JumpKind = iota
	JumpSingle
	JumpDouble
)

// Actor is the player-controlled body.
type Actor struct {
	Box      core.Box
	VY       float64
	Grounded bool
	Charge   bool    // double-jump charge, armed by a grounded jump
	Squash   float64 // presentation only

	cfg        ActorConfig
	scale      float64
	doubleJump bool
	steer      [4]bool
}

// NewActor creates an actor sized for scale.
func NewActor(cfg ActorConfig, scale float64) *Actor {
	a := &Actor{cfg: cfg, doubleJump: cfg.DoubleJump}
	a.setScale(scale)
	return a
}

func (a *Actor) setScale(scale float64) {
	if scale <= 0 {
		scale = 1
	}
	a.scale = scale
	a.Box.W = a.cfg.Width * scale
	a.Box.H = a.cfg.Height * scale
}

// Mode returns the configured movement mode.
func (a *Actor) Mode() Mode {
	return a.cfg.Mode
}

// SetDoubleJump enables or disables the double-jump charge.
func (a *Actor) SetDoubleJump(on bool) {
	a.doubleJump = on
	if !on {
		a.Charge = false
	}
}

// DoubleJump reports whether double jumps are enabled.
func (a *Actor) DoubleJump() bool {
	return a.doubleJump
}

// Reset puts the actor at its start position with no motion.
func (a *Actor) Reset(f Field) {
	a.VY = 0
	a.Charge = false
	a.Squash = 0
	a.steer = [4]bool{}
	a.Box.X = a.anchorX(f)
	if a.cfg.Mode == ModeFree {
		a.Grounded = false
		a.Box.Y = f.Height*a.cfg.StartY - a.Box.H/2
		a.clampToField(f)
		return
	}
	a.Grounded = true
	a.Box.Y = f.Floor - a.Box.H
}

// Place refits the actor to a resized field without resetting its motion.
func (a *Actor) Place(f Field) {
	a.setScale(f.Scale)
	if a.cfg.Mode == ModeFree {
		a.clampToField(f)
		return
	}
	a.Box.X = a.anchorX(f)
	rest := f.Floor - a.Box.H
	if a.Grounded || a.Box.Y > rest {
		a.Box.Y = rest
	}
}

func (a *Actor) anchorX(f Field) float64 {
	if a.cfg.AnchorRatio > 0 {
		return math.Floor(f.Width * a.cfg.AnchorRatio)
	}
	return a.cfg.AnchorX * a.scale
}

// Ballistic advances a falling body by one semi-implicit Euler step.
func Ballistic(y, vy, gravity, dt float64) (float64, float64) {
	vy += gravity * dt
	y += vy * dt
	return y, vy
}

// Integrate advances the actor by dt. In runner mode it reports true only on
// the tick the actor goes from airborne to grounded.
func (a *Actor) Integrate(dt float64, f Field) (landed bool) {
	if a.cfg.Mode == ModeFree {
		a.move(dt, f)
	} else {
		landed = a.fall(dt, f)
	}
	if decay := a.cfg.SquashDecay; decay > 0 {
		a.Squash = math.Max(0, a.Squash-dt*decay)
	}
	return landed
}

func (a *Actor) fall(dt float64, f Field) bool {
	y, vy := Ballistic(a.Box.Y, a.VY, a.cfg.Gravity*a.scale, dt)
	rest := f.Floor - a.Box.H
	if y < rest {
		a.Box.Y, a.VY = y, vy
		a.Grounded = false
		return false
	}

	wasAirborne := !a.Grounded
	a.Box.Y = rest
	a.VY = 0
	a.Grounded = true
	a.Charge = false
	if wasAirborne {
		a.Squash = landSquash
	}
	return wasAirborne
}

func (a *Actor) move(dt float64, f Field) {
	var dx, dy float64
	if a.steer[DirLeft] {
		dx--
	}
	if a.steer[DirRight] {
		dx++
	}
	if a.steer[DirUp] {
		dy--
	}
	if a.steer[DirDown] {
		dy++
	}
	speed := a.cfg.MoveSpeed * a.scale
	a.Box.X += dx * speed * dt
	a.Box.Y += dy * speed * dt
	a.clampToField(f)
}

func (a *Actor) clampToField(f Field) {
	a.Box.X = core.Clamp(a.Box.X, 0, math.Max(0, f.Width-a.Box.W))
	a.Box.Y = core.Clamp(a.Box.Y, 0, math.Max(0, f.Height-a.Box.H))
}

// ApplyJump jumps from the ground, or spends the double-jump charge in the air.
func (a *Actor) ApplyJump() JumpKind {
	if a.cfg.Mode == ModeFree {
		return JumpNone
	}
	if a.Grounded {
		a.VY = -a.cfg.JumpImpulse * a.scale
		a.Grounded = false
		a.Charge = a.doubleJump
		a.Squash = jumpSquash
		return JumpSingle
	}
	if a.Charge && a.doubleJump {
		a.VY = -a.cfg.DoubleJumpImpulse * a.scale
		a.Charge = false
		a.Squash = jumpSquash
		return JumpDouble
	}
	return JumpNone
}

// Steer starts or stops free-mode movement along d.
func (a *Actor) Steer(d Direction, on bool) {
	if d < DirUp || d > DirRight {
		return
	}
	a.steer[d] = on
}

// Steering reports whether the actor is moving along d.
func (a *Actor) Steering(d Direction) bool {
	if d < DirUp || d > DirRight {
		return false
	}
	return a.steer[d]
}

// Knock throws a runner upward after a hit.
func (a *Actor) Knock() {
	if a.cfg.Mode == ModeFree || a.cfg.HitKnock <= 0 {
		return
	}
	a.VY = -math.Max(a.VY, a.cfg.HitKnock*a.scale)
	a.Grounded = false
}
