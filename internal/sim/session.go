package sim

import (
	"math"

	"github.com/google/uuid"

	"github.com/vovakirdan/spark-arcade/internal/core"
)

// State is the run state of a session.
type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// ActionKind is an input the session understands.
type ActionKind int

const (
	ActionJump ActionKind = iota
	ActionPause
	ActionStart
	ActionRestart
	ActionMoveBegin
	ActionMoveEnd
)

// Action is one input event. Dir is only read by the move actions.
type Action struct {
	Kind ActionKind
	Dir  Direction
}

// Options are the per-session collaborators and initial surface size.
type Options struct {
	Seed       int64
	Store      core.Store // best score persistence; nil keeps it in memory
	BestKey    string
	Pacer      Pacer
	Width      float64
	Height     float64
	Scale      float64
	DoubleJump bool // initial double-jump preference
}

// Session owns one actor, its pools and the run state.
// It is not safe for concurrent use; one goroutine drives it.
type Session struct {
	cfg   Config
	opts  Options
	clock Clock
	src   Source
	pacer Pacer

	field     Field
	actor     *Actor
	seq       Sequence
	pools     PoolSet
	spawner   *Spawner
	collider  Collider
	particles *Particles

	state    State
	runID    string
	elapsed  float64
	score    float64
	distance float64
	speed    float64
	vitals   Vitals
	hitStop  float64
	best     int
	newBest  bool

	subscribers []func(Event)
}

// NewSession builds an idle session. The best score is read from the store once, here.
func NewSession(cfg Config, opts Options) *Session {
	cfg = cfg.withDefaults()
	if opts.Pacer == nil {
		opts.Pacer = steady{}
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 960, 540
	}

	s := &Session{
		cfg:       cfg,
		opts:      opts,
		clock:     NewClock(cfg.Clock.MaxStep),
		src:       NewSource(opts.Seed),
		pacer:     opts.Pacer,
		field:     NewField(opts.Width, opts.Height, opts.Scale, cfg.World),
		particles: NewParticles(cfg.Particles),
		collider: Collider{
			Shape:   cfg.Collision.Shape,
			Vitals:  cfg.Vitals,
			Effects: cfg.Effects,
		},
		best: core.ReadCount(opts.Store, opts.BestKey),
	}
	s.pools = NewPoolSet(&s.seq)
	s.actor = NewActor(cfg.Actor, s.field.Scale)
	s.actor.SetDoubleJump(opts.DoubleJump || cfg.Actor.DoubleJump)
	s.spawner = NewSpawner(cfg.Streams, cfg.Entities, s.src, s.pacer)
	s.reset()
	return s
}

// Subscribe registers fn to receive every event the session emits.
func (s *Session) Subscribe(fn func(Event)) {
	if fn != nil {
		s.subscribers = append(s.subscribers, fn)
	}
}

func (s *Session) emit(events []Event) []Event {
	for _, e := range events {
		for _, fn := range s.subscribers {
			fn(e)
		}
	}
	return events
}

// reset restores the initial run values. The random stream is not reseeded.
func (s *Session) reset() {
	s.elapsed = 0
	s.score = 0
	s.distance = 0
	s.hitStop = 0
	s.newBest = false
	s.speed = s.cfg.World.StartSpeed * s.field.Scale
	s.vitals = Vitals{
		Lives:    s.cfg.Vitals.Lives,
		MaxLives: s.cfg.Vitals.MaxLives,
	}
	for _, p := range s.pools.All() {
		p.Clear()
	}
	s.particles.Clear()
	s.actor.Reset(s.field)
	s.spawner.Reset()
}

// Start begins a run from idle or ended. It does nothing in other states.
func (s *Session) Start() []Event {
	if s.state != StateIdle && s.state != StateEnded {
		return nil
	}
	return s.emit(s.begin())
}

// Restart resets and starts a run from any state.
func (s *Session) Restart() []Event {
	return s.emit(s.begin())
}

func (s *Session) begin() []Event {
	s.reset()
	s.state = StateRunning
	s.runID = uuid.NewString()
	return []Event{{Kind: EventStarted, RunID: s.runID, Best: s.best}}
}

// Pause freezes a running session.
func (s *Session) Pause() []Event {
	if s.state != StateRunning {
		return nil
	}
	s.state = StatePaused
	return s.emit([]Event{{Kind: EventPaused}})
}

// Resume continues a paused session.
func (s *Session) Resume() []Event {
	if s.state != StatePaused {
		return nil
	}
	s.state = StateRunning
	return s.emit([]Event{{Kind: EventResumed}})
}

// TogglePause switches between running and paused.
func (s *Session) TogglePause() []Event {
	if s.state == StatePaused {
		return s.Resume()
	}
	return s.Pause()
}

// OnAction applies an input. Actions that make no sense in the current
// state are ignored.
func (s *Session) OnAction(a Action) []Event {
	switch a.Kind {
	case ActionJump:
		return s.jump()
	case ActionPause:
		return s.TogglePause()
	case ActionStart:
		return s.Start()
	case ActionRestart:
		return s.Restart()
	case ActionMoveBegin:
		s.actor.Steer(a.Dir, true)
	case ActionMoveEnd:
		s.actor.Steer(a.Dir, false)
	}
	return nil
}

func (s *Session) jump() []Event {
	var events []Event
	if s.state == StateIdle && s.cfg.Session.JumpStarts {
		events = append(events, s.begin()...)
	}
	if s.state != StateRunning {
		return s.emit(events)
	}

	switch s.actor.ApplyJump() {
	case JumpSingle:
		events = append(events, Event{Kind: EventJumped})
		s.burst(s.cfg.Particles.Jump, s.actor.Box.X+s.actor.Box.W*0.35, s.actor.Box.Bottom())
	case JumpDouble:
		events = append(events, Event{Kind: EventDoubleJumped})
		s.burst(s.cfg.Particles.Jump, s.actor.Box.X+s.actor.Box.W*0.35, s.actor.Box.Bottom())
	}
	return s.emit(events)
}

// SetDoubleJump changes the double-jump preference for this and later runs.
func (s *Session) SetDoubleJump(on bool) {
	s.actor.SetDoubleJump(on)
}

// Resize refits the playfield. Degenerate sizes are ignored; the run continues.
func (s *Session) Resize(w, h, scale float64) bool {
	if !(w > 0 && h > 0) || math.IsInf(w, 0) || math.IsInf(h, 0) {
		return false
	}
	if !(scale > 0) || math.IsInf(scale, 0) {
		scale = s.field.Scale
	}
	ratio := scale / s.field.Scale
	s.field = NewField(w, h, scale, s.cfg.World)
	s.speed *= ratio
	s.actor.Place(s.field)
	for _, p := range s.pools.All() {
		p.Ground(s.field.Floor)
	}
	s.emit([]Event{{Kind: EventResized}})
	return true
}

// Step runs one tick of raw wall time in seconds and returns what happened.
func (s *Session) Step(raw float64) []Event {
	dt := s.clock.Tick(raw)
	switch s.state {
	case StatePaused:
		return nil
	case StateIdle, StateEnded:
		// The world is frozen but sparks from the last hit settle.
		s.particles.Update(dt)
		return nil
	}
	if s.hitStop > 0 {
		s.hitStop -= dt
		return nil
	}

	var events []Event
	s.elapsed += dt
	s.vitals.Slow = math.Max(0, s.vitals.Slow-dt)
	s.vitals.Invulnerable = math.Max(0, s.vitals.Invulnerable-dt)

	s.ramp()
	eff := s.EffectiveSpeed()
	s.score += dt * s.timeRate()
	s.distance += eff / s.field.Scale * dt * s.cfg.Scoring.DistanceRate

	events = append(events, s.spawner.Update(dt, s.elapsed, s.Score(), s.field, s.pools)...)

	if s.actor.Integrate(dt, s.field) {
		events = append(events, Event{Kind: EventLanded})
	}

	for _, p := range s.pools.All() {
		p.Advance(dt, eff)
	}
	for _, e := range s.collider.CheckPassed(s.actor.Box, s.pools.Obstacles) {
		s.score += float64(e.Points)
		s.burst(s.cfg.Particles.Pass, s.actor.Box.Right(), s.actor.Box.Y+s.actor.Box.H*0.55)
		events = append(events, e)
	}
	prune := s.field.PruneX()
	for _, p := range s.pools.All() {
		p.Prune(prune)
	}
	s.particles.Update(dt)

	for _, e := range s.collider.CheckAll(s.actor.Box, &s.vitals, s.pools.All()...) {
		switch e.Kind {
		case EventPickup:
			s.score += float64(e.Points)
		case EventHit:
			s.hitStop = s.cfg.Vitals.HitStop
			s.actor.Knock()
			cx, cy := s.actor.Box.Center()
			s.burst(s.cfg.Particles.Hit, cx, cy)
		case EventBlocked:
			s.hitStop = s.cfg.Vitals.BlockHitStop
		}
		events = append(events, e)
	}

	if s.vitals.Lives <= 0 {
		events = append(events, s.end()...)
	}
	for _, p := range s.pools.All() {
		p.Sweep()
	}
	return s.emit(events)
}

// ramp raises the world speed toward its target; it never lowers it.
func (s *Session) ramp() {
	w := s.cfg.World
	target := (w.StartSpeed*(1+w.Growth*s.elapsed) + w.Accel*s.elapsed) * s.field.Scale
	target = s.pacer.Speed(target, s.Score(), s.elapsed)
	if w.MaxSpeed > 0 {
		target = math.Min(target, w.MaxSpeed*s.field.Scale)
	}
	s.speed = math.Max(s.speed, target)
}

func (s *Session) timeRate() float64 {
	rate := s.cfg.Scoring.TimeRate
	if s.cfg.Scoring.ScaleWithSpeed && s.cfg.World.StartSpeed > 0 {
		rate *= s.speed / (s.cfg.World.StartSpeed * s.field.Scale)
	}
	return rate
}

// end moves the session to ended once and records a new best.
func (s *Session) end() []Event {
	if s.state == StateEnded {
		return nil
	}
	s.state = StateEnded
	score := s.Score()
	events := []Event{{Kind: EventEnded, Score: score, Best: max(s.best, score), RunID: s.runID}}
	if score > s.best {
		s.best = score
		s.newBest = true
		if s.opts.Store != nil && s.opts.BestKey != "" {
			s.opts.Store.SetMax(s.opts.BestKey, score)
		}
		events = append(events, Event{Kind: EventNewBest, Score: score, Best: score})
	}
	return events
}

func (s *Session) burst(b Burst, x, y float64) {
	if b.Count > 0 {
		s.particles.Emit(x, y, b, s.src, s.field.Scale)
	}
}

// State returns the run state.
func (s *Session) State() State { return s.state }

// Score returns the whole points scored this run.
func (s *Session) Score() int { return int(math.Floor(s.score)) }

// Best returns the best score known to the session.
func (s *Session) Best() int { return s.best }

// Speed returns the world speed before effects.
func (s *Session) Speed() float64 { return s.speed }

// EffectiveSpeed returns the speed entities move at this tick.
func (s *Session) EffectiveSpeed() float64 {
	if s.vitals.Slow > 0 {
		return s.speed * s.cfg.Effects.SlowFactor
	}
	return s.speed
}

// Lives returns the remaining lives.
func (s *Session) Lives() int { return s.vitals.Lives }

// Elapsed returns the simulated seconds of the current run.
func (s *Session) Elapsed() float64 { return s.elapsed }

// RunID returns the identifier of the current run, empty before the first start.
func (s *Session) RunID() string { return s.runID }

// Field returns the playfield geometry.
func (s *Session) Field() Field { return s.field }
