package sim

import (
	"math"

	"github.com/vovakirdan/spark-arcade/internal/core"
)

// DefaultRetryDelay is used when a stream enforces a safe gap but sets no retry delay.
const DefaultRetryDelay = 0.12

// StreamConfig describes one independent spawn schedule.
type StreamConfig struct {
	Name        string       `yaml:"name"`
	Interval    Range        `yaml:"interval"`     // seconds between spawns
	First       Range        `yaml:"first"`        // countdown before the first spawn; unset means Interval
	Decay       float64      `yaml:"decay"`        // interval / (1 + elapsed*decay)
	MinInterval float64      `yaml:"min_interval"` // floor for the scaled interval
	SafeGap     float64      `yaml:"safe_gap"`     // logical px between the last spawn and the spawn line
	RetryDelay  float64      `yaml:"retry_delay"`  // wait when the gap is too small
	Weights     []Weight     `yaml:"weights"`
	Bonus       *BonusConfig `yaml:"bonus"`
}

// BonusConfig places power-ups ahead of a freshly spawned entity.
type BonusConfig struct {
	Chance      float64  `yaml:"chance"`
	MinInterval float64  `yaml:"min_interval"` // seconds between bonuses
	Weights     []Weight `yaml:"weights"`
	Offset      Range    `yaml:"offset"`    // logical px past the anchor's trailing edge
	Lift        float64  `yaml:"lift"`      // logical px above the floor
	Top         float64  `yaml:"top"`       // highest reachable y, fraction of height
	Clearance   float64  `yaml:"clearance"` // lowest y keeps this many logical px above the floor
}

// Pacer scales speed and spawn intervals with progress.
// config.DifficultyManager is the production implementation.
type Pacer interface {
	Speed(base float64, score int, elapsed float64) float64
	Interval(base float64, score int, elapsed float64) float64
}

// steady is the Pacer used when none is supplied.
type steady struct{}

func (steady) Speed(base float64, _ int, _ float64) float64    { return base }
func (steady) Interval(base float64, _ int, _ float64) float64 { return base }

type stream struct {
	cfg         StreamConfig
	countdown   float64
	lastID      uint64
	lastKind    Kind
	lastBonusAt float64
}

// Spawner decides when and what to spawn for every stream.
type Spawner struct {
	streams []*stream
	types   map[string]EntityType
	src     Source
	pacer   Pacer
}

// NewSpawner creates a spawner. Streams referencing unknown types never spawn them.
func NewSpawner(streams []StreamConfig, types []EntityType, src Source, pacer Pacer) *Spawner {
	if pacer == nil {
		pacer = steady{}
	}
	s := &Spawner{
		streams: make([]*stream, 0, len(streams)),
		types:   make(map[string]EntityType, len(types)),
		src:     src,
		pacer:   pacer,
	}
	for _, t := range types {
		s.types[t.Name] = t
	}
	for _, cfg := range streams {
		s.streams = append(s.streams, &stream{cfg: cfg})
	}
	s.Reset()
	return s
}

// Reset redraws every countdown and forgets previous spawns.
func (s *Spawner) Reset() {
	for _, st := range s.streams {
		first := st.cfg.First
		if first.IsZero() {
			first = st.cfg.Interval
		}
		st.countdown = Uniform(s.src, first)
		st.lastID = 0
		st.lastBonusAt = math.Inf(-1)
	}
}

// Countdown returns the time left before the named stream fires.
func (s *Spawner) Countdown(name string) (float64, bool) {
	for _, st := range s.streams {
		if st.cfg.Name == name {
			return st.countdown, true
		}
	}
	return 0, false
}

// Update advances every countdown by dt and spawns into pools when one expires.
func (s *Spawner) Update(dt, elapsed float64, score int, f Field, pools PoolSet) []Event {
	var events []Event
	for _, st := range s.streams {
		st.countdown -= dt
		if st.countdown > 0 {
			continue
		}

		if s.tooClose(st, f, pools) {
			st.countdown = st.cfg.RetryDelay
			if st.countdown <= 0 {
				st.countdown = DefaultRetryDelay
			}
			continue
		}

		if e, ok := s.spawn(st, f, pools); ok {
			events = append(events, Event{Kind: EventSpawned, Entity: e})
			if b, ok := s.bonus(st, e, elapsed, f, pools); ok {
				events = append(events, Event{Kind: EventBonusSpawned, Entity: b})
			}
		}
		st.countdown = s.nextInterval(st, elapsed, score)
	}
	return events
}

func (s *Spawner) tooClose(st *stream, f Field, pools PoolSet) bool {
	if st.cfg.SafeGap <= 0 || st.lastID == 0 {
		return false
	}
	last, ok := pools.For(st.lastKind).Find(st.lastID)
	if !ok {
		return false
	}
	return f.SpawnX()-last.Box.Right() < st.cfg.SafeGap*f.scale()
}

func (s *Spawner) spawn(st *stream, f Field, pools PoolSet) (Entity, bool) {
	name, ok := Pick(s.src, st.cfg.Weights)
	if !ok {
		return Entity{}, false
	}
	t, ok := s.types[name]
	if !ok {
		return Entity{}, false
	}
	e := pools.For(t.Kind).Spawn(Descriptor{Type: t, Stream: st.cfg.Name}, f, s.src)
	st.lastID = e.ID
	st.lastKind = e.Kind
	return e, true
}

// bonus rolls for a power-up anchored ahead of the entity just spawned.
func (s *Spawner) bonus(st *stream, anchor Entity, elapsed float64, f Field, pools PoolSet) (Entity, bool) {
	b := st.cfg.Bonus
	if b == nil || elapsed-st.lastBonusAt <= b.MinInterval {
		return Entity{}, false
	}
	if s.src.Float64() >= b.Chance {
		return Entity{}, false
	}
	name, ok := Pick(s.src, b.Weights)
	if !ok {
		return Entity{}, false
	}
	t, ok := s.types[name]
	if !ok {
		return Entity{}, false
	}
	st.lastBonusAt = elapsed

	scale := f.scale()
	place := func(w, h float64) (float64, float64) {
		x := anchor.Box.Right() + Uniform(s.src, b.Offset)*scale
		y := f.Floor - h - b.Lift*scale
		y = core.Clamp(y, b.Top*f.Height, f.Floor-h-b.Clearance*scale)
		return x, y
	}
	e := pools.For(t.Kind).Spawn(Descriptor{Type: t, Stream: st.cfg.Name, Position: place}, f, s.src)
	return e, true
}

func (s *Spawner) nextInterval(st *stream, elapsed float64, score int) float64 {
	base := Uniform(s.src, st.cfg.Interval)
	if st.cfg.Decay > 0 {
		base /= 1 + elapsed*st.cfg.Decay
	}
	base = s.pacer.Interval(base, score, elapsed)
	return math.Max(base, st.cfg.MinInterval)
}
