package sim

import (
	"math"

	"github.com/vovakirdan/spark-arcade/internal/core"
)

// Field is the playfield geometry in device pixels.
type Field struct {
	Width       float64
	Height      float64
	Scale       float64 // device pixels per logical pixel
	Floor       float64 // y of the floor line
	SpawnMargin float64 // logical px past the right edge where entities enter
	PruneMargin float64 // logical px past the left edge where entities leave
}

// NewField lays out a playfield of w x h device pixels.
func NewField(w, h, scale float64, world WorldConfig) Field {
	if scale <= 0 {
		scale = 1
	}
	ratio := world.Floor
	if ratio <= 0 || ratio > 1 {
		ratio = 1
	}
	return Field{
		Width:       w,
		Height:      h,
		Scale:       scale,
		Floor:       math.Floor(h * ratio),
		SpawnMargin: world.SpawnMargin,
		PruneMargin: world.PruneMargin,
	}
}

// Valid reports whether the field has a usable size.
func (f Field) Valid() bool {
	return f.Width > 0 && f.Height > 0
}

// SpawnX is the x where new entities appear.
func (f Field) SpawnX() float64 {
	return f.Width + f.SpawnMargin*f.scale()
}

// PruneX is the threshold a trailing edge must cross to be removed.
func (f Field) PruneX() float64 {
	return -f.PruneMargin * f.scale()
}

func (f Field) scale() float64 {
	if f.Scale <= 0 {
		return 1
	}
	return f.Scale
}

// Descriptor asks a pool for one entity.
type Descriptor struct {
	Type   EntityType
	Stream string
	// Position overrides the default placement once the size is known.
	Position func(w, h float64) (x, y float64)
}

// Pool holds the live entities of one kind.
type Pool struct {
	kind  Kind
	items []Entity
	seq   *Sequence
}

// NewPool creates an empty pool drawing IDs from seq.
func NewPool(kind Kind, seq *Sequence) *Pool {
	if seq == nil {
		seq = &Sequence{}
	}
	return &Pool{
		kind:  kind,
		items: make([]Entity, 0, 16),
		seq:   seq,
	}
}

// Kind returns the kind of entity the pool holds.
func (p *Pool) Kind() Kind {
	return p.kind
}

// Spawn appends a new entity at the trailing edge of the field.
func (p *Pool) Spawn(d Descriptor, f Field, src Source) Entity {
	t := d.Type
	scale := f.scale()

	w := Uniform(src, t.Width) * scale
	h := w
	if !t.Height.IsZero() {
		h = Uniform(src, t.Height) * scale
	}

	x := f.SpawnX()
	var y float64
	switch t.Placement {
	case PlacementFloating:
		band := t.Band.Scale(f.Height)
		y = Uniform(src, band) - h
	default:
		y = f.Floor - h
	}
	if d.Position != nil {
		x, y = d.Position(w, h)
	}

	speed := t.Speed
	if speed <= 0 {
		speed = 1
	}

	e := Entity{
		ID:          p.seq.Next(),
		Type:        t.Name,
		Stream:      d.Stream,
		Kind:        t.Kind,
		Placement:   t.Placement,
		Box:         core.NewBox(x, y, w, h),
		Value:       t.Value,
		Effect:      t.Effect,
		SpeedFactor: speed,
		Consumable:  t.Consume,
	}
	p.items = append(p.items, e)
	return e
}

// Advance moves every entity left by worldSpeed * its speed factor * dt.
func (p *Pool) Advance(dt, worldSpeed float64) {
	for i := range p.items {
		p.items[i].Box.X -= worldSpeed * p.items[i].SpeedFactor * dt
	}
}

// Prune removes entities whose trailing edge is left of threshold and
// returns how many were removed.
func (p *Pool) Prune(threshold float64) int {
	return p.retain(func(e *Entity) bool {
		return e.Box.Right() >= threshold
	})
}

// Sweep removes consumable entities that have been resolved.
func (p *Pool) Sweep() int {
	return p.retain(func(e *Entity) bool {
		return !(e.Consumable && e.resolved)
	})
}

// retain compacts the pool in place, keeping entities for which keep is true.
func (p *Pool) retain(keep func(e *Entity) bool) int {
	kept := p.items[:0]
	for i := range p.items {
		if keep(&p.items[i]) {
			kept = append(kept, p.items[i])
		}
	}
	removed := len(p.items) - len(kept)
	clear(p.items[len(kept):])
	p.items = kept
	return removed
}

// Ground puts ground entities back on a moved floor line.
func (p *Pool) Ground(floor float64) {
	for i := range p.items {
		if p.items[i].Placement == PlacementGround {
			p.items[i].Box.Y = floor - p.items[i].Box.H
		}
	}
}

// Find returns the entity with the given ID if it is still in the pool.
func (p *Pool) Find(id uint64) (Entity, bool) {
	for _, e := range p.items {
		if e.ID == id {
			return e, true
		}
	}
	return Entity{}, false
}

// Entities returns a copy of the live entities in spawn order.
func (p *Pool) Entities() []Entity {
	out := make([]Entity, len(p.items))
	copy(out, p.items)
	return out
}

// Len returns the number of live entities.
func (p *Pool) Len() int {
	return len(p.items)
}

// Clear removes every entity.
func (p *Pool) Clear() {
	clear(p.items)
	p.items = p.items[:0]
}

// PoolSet groups the pools of a session by kind.
type PoolSet struct {
	Obstacles    *Pool
	Hazards      *Pool
	Collectibles *Pool
}

// NewPoolSet creates one pool per kind sharing an ID sequence.
func NewPoolSet(seq *Sequence) PoolSet {
	return PoolSet{
		Obstacles:    NewPool(KindObstacle, seq),
		Hazards:      NewPool(KindHazard, seq),
		Collectibles: NewPool(KindCollectible, seq),
	}
}

// For returns the pool that holds entities of kind k.
func (ps PoolSet) For(k Kind) *Pool {
	switch k {
	case KindHazard:
		return ps.Hazards
	case KindCollectible:
		return ps.Collectibles
	default:
		return ps.Obstacles
	}
}

// All returns every pool, collectibles first.
func (ps PoolSet) All() []*Pool {
	return []*Pool{ps.Collectibles, ps.Obstacles, ps.Hazards}
}

// Len returns the number of live entities across all pools.
func (ps PoolSet) Len() int {
	n := 0
	for _, p := range ps.All() {
		n += p.Len()
	}
	return n
}
