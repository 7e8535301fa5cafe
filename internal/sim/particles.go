package sim

// Particle is a short-lived spark used for visual feedback.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Life   float64 // total lifetime in seconds
	Age    float64
}

// Remaining returns the fraction of life left, from 1 down to 0.
func (p Particle) Remaining() float64 {
	if p.Life <= 0 {
		return 0
	}
	return max(0, 1-p.Age/p.Life)
}

// Particles is a capped pool of particles.
type Particles struct {
	items   []Particle
	max     int
	gravity float64
}

// NewParticles creates a pool holding at most max particles.
func NewParticles(cfg ParticleConfig) *Particles {
	return &Particles{
		items:   make([]Particle, 0, max(cfg.Max, 0)),
		max:     cfg.Max,
		gravity: cfg.Gravity,
	}
}

// Emit adds a burst at (x, y) and returns how many particles fit under the cap.
func (ps *Particles) Emit(x, y float64, b Burst, src Source, scale float64) int {
	if scale <= 0 {
		scale = 1
	}
	n := 0
	for i := 0; i < b.Count && len(ps.items) < ps.max; i++ {
		ps.items = append(ps.items, Particle{
			X:    x,
			Y:    y,
			VX:   Uniform(src, b.VX) * scale,
			VY:   Uniform(src, b.VY) * scale,
			Life: Uniform(src, b.Life),
		})
		n++
	}
	return n
}

// Update ages and moves every particle, dropping the expired ones.
func (ps *Particles) Update(dt float64) {
	kept := ps.items[:0]
	for _, p := range ps.items {
		p.Age += dt
		if p.Age >= p.Life {
			continue
		}
		p.X += p.VX * dt
		p.Y += p.VY * dt
		p.VY += ps.gravity * dt
		kept = append(kept, p)
	}
	ps.items = kept
}

// Items returns a copy of the live particles.
func (ps *Particles) Items() []Particle {
	out := make([]Particle, len(ps.items))
	copy(out, ps.items)
	return out
}

// Len returns the number of live particles.
func (ps *Particles) Len() int {
	return len(ps.items)
}

// Clear removes every particle.
func (ps *Particles) Clear() {
	ps.items = ps.items[:0]
}
