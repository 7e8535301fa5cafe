package sim

import (
	"testing"

	"github.com/vovakirdan/spark-arcade/internal/core"
)

func testCollider() Collider {
	return Collider{
		Shape: ShapeBox,
		Vitals: VitalsConfig{
			Lives:                  3,
			MaxLives:               8,
			InvulnerableTime:       1.1,
			ShieldInvulnerableTime: 0.55,
			StreakMax:              5,
			StreakBonus:            5,
		},
		Effects: EffectsConfig{SlowDuration: 3.2, SlowFactor: 0.55},
	}
}

// put adds an entity of type t at box, bypassing the spawner.
func put(p *Pool, t EntityType, box core.Box) *Entity {
	t.Width = Fixed(box.W)
	t.Height = Fixed(box.H)
	p.Spawn(Descriptor{Type: t, Position: func(w, h float64) (float64, float64) {
		return box.X, box.Y
	}}, testField(), NewSource(1))
	return &p.items[len(p.items)-1]
}

var (
	actorBox   = core.NewBox(140, 420, 44, 64)
	touching   = core.NewBox(150, 444, 34, 40)
	faraway    = core.NewBox(600, 444, 34, 40)
	hazardType = EntityType{Name: "spike", Kind: KindObstacle, Value: 25}
)

func TestOverlapsSymmetric(t *testing.T) {
	src := NewSource(77)
	box := func() core.Box {
		return core.NewBox(Uniform(src, Between(0, 100)), Uniform(src, Between(0, 100)), Uniform(src, Between(1, 40)), Uniform(src, Between(1, 40)))
	}
	hits := 0
	for i := 0; i < 5000; i++ {
		a, b := box(), box()
		for _, shape := range []Shape{ShapeBox, ShapeCircle} {
			ab, ba := Overlaps(shape, a, b), Overlaps(shape, b, a)
			if ab != ba {
				t.Fatalf("%s: Overlaps(%v, %v) = %v but reversed = %v", shape, a, b, ab, ba)
			}
			if ab {
				hits++
			}
		}
	}
	if hits == 0 {
		t.Error("random boxes never overlapped; the property was not exercised")
	}
}

func TestOverlapsShapes(t *testing.T) {
	a := core.NewBox(0, 0, 40, 40)
	corner := core.NewBox(36, 36, 40, 40) // boxes overlap, circles do not
	if !Overlaps(ShapeBox, a, corner) {
		t.Error("boxes should overlap at the corner")
	}
	if Overlaps(ShapeCircle, a, corner) {
		t.Error("circles should not overlap at the corner")
	}
}

func TestCheckAllHit(t *testing.T) {
	c := testCollider()
	p := NewPool(KindObstacle, nil)
	e := put(p, hazardType, touching)
	put(p, hazardType, faraway)
	v := Vitals{Lives: 3, Streak: 4}

	events := c.CheckAll(actorBox, &v, p)
	if len(events) != 1 || events[0].Kind != EventHit {
		t.Fatalf("events = %v, expected one hit", events)
	}
	if v.Lives != 2 || v.Streak != 0 || v.Invulnerable != 1.1 {
		t.Errorf("vitals = %+v, expected lives 2, streak reset, 1.1 s window", v)
	}
	if !e.Resolved() {
		t.Error("the hit obstacle should be resolved")
	}
	if events[0].Lives != 2 {
		t.Errorf("event lives = %d", events[0].Lives)
	}
}

func TestCheckAllInvulnerableIgnores(t *testing.T) {
	c := testCollider()
	p := NewPool(KindObstacle, nil)
	e := put(p, hazardType, touching)
	v := Vitals{Lives: 3, Invulnerable: 0.4}

	if events := c.CheckAll(actorBox, &v, p); len(events) != 0 {
		t.Fatalf("contact inside the window produced %v", events)
	}
	if v.Lives != 3 || e.Resolved() {
		t.Errorf("contact inside the window changed state: %+v resolved=%v", v, e.Resolved())
	}
}

func TestCheckAllShieldBlocks(t *testing.T) {
	c := testCollider()
	p := NewPool(KindObstacle, nil)
	first := put(p, hazardType, touching)
	v := Vitals{Lives: 3, Shield: true}

	events := c.CheckAll(actorBox, &v, p)
	if len(events) != 1 || events[0].Kind != EventBlocked {
		t.Fatalf("events = %v, expected one block", events)
	}
	if v.Lives != 3 || v.Shield || v.Invulnerable != 0.55 {
		t.Errorf("vitals = %+v, expected lives unchanged, shield spent, 0.55 s window", v)
	}
	if !first.Resolved() {
		t.Error("the blocked obstacle should be resolved")
	}

	// A second hazard inside the window changes nothing.
	second := put(p, hazardType, touching)
	before := v
	if events := c.CheckAll(actorBox, &v, p); len(events) != 0 {
		t.Fatalf("second contact produced %v", events)
	}
	if v != before || second.Resolved() {
		t.Errorf("second contact changed state: %+v -> %+v", before, v)
	}
}

func TestCheckAllOneHitPerWindow(t *testing.T) {
	c := testCollider()
	p := NewPool(KindObstacle, nil)
	put(p, hazardType, touching)
	put(p, hazardType, touching)
	v := Vitals{Lives: 3}

	events := c.CheckAll(actorBox, &v, p)
	if Count(events, EventHit) != 1 || v.Lives != 2 {
		t.Errorf("two overlapping obstacles cost %d lives, expected 1", 3-v.Lives)
	}
}

func TestCheckAllNoWindowHitsEach(t *testing.T) {
	c := testCollider()
	c.Vitals.InvulnerableTime = 0
	p := NewPool(KindHazard, nil)
	meteor := EntityType{Name: "meteor", Kind: KindHazard, Consume: true}
	put(p, meteor, touching)
	put(p, meteor, touching)
	v := Vitals{Lives: 3}

	events := c.CheckAll(actorBox, &v, p)
	if Count(events, EventHit) != 2 || v.Lives != 1 {
		t.Errorf("events = %v lives = %d, expected each meteor to hit", events, v.Lives)
	}
	if n := p.Sweep(); n != 2 {
		t.Errorf("Sweep() = %d, expected both meteors consumed", n)
	}
}

func TestCheckAllStopsAtZeroLives(t *testing.T) {
	c := testCollider()
	c.Vitals.InvulnerableTime = 0
	p := NewPool(KindHazard, nil)
	meteor := EntityType{Name: "meteor", Kind: KindHazard}
	put(p, meteor, touching)
	last := put(p, meteor, touching)
	v := Vitals{Lives: 1}

	c.CheckAll(actorBox, &v, p)
	if v.Lives != 0 {
		t.Errorf("lives = %d", v.Lives)
	}
	if last.Resolved() {
		t.Error("entities after the fatal hit should be left alone")
	}
}

func TestCheckAllPickup(t *testing.T) {
	c := testCollider()
	p := NewPool(KindCollectible, nil)
	orb := EntityType{Name: "orb", Kind: KindCollectible, Value: 15, Effect: EffectEnergy, Consume: true}
	v := Vitals{Lives: 3, MaxLives: 8}

	expectedPoints := []int{15, 20, 25, 30, 35, 40, 40}
	for i, want := range expectedPoints {
		put(p, orb, touching)
		events := c.CheckAll(actorBox, &v, p)
		if len(events) != 1 || events[0].Kind != EventPickup {
			t.Fatalf("pickup %d: events = %v", i, events)
		}
		if events[0].Points != want {
			t.Errorf("pickup %d: points = %d, expected %d", i, events[0].Points, want)
		}
		p.Sweep()
	}
	if v.Streak != 5 {
		t.Errorf("streak = %d, expected the cap of 5", v.Streak)
	}
	if v.Lives != 8 {
		t.Errorf("lives = %d, expected energy capped at 8", v.Lives)
	}
}

func TestCheckAllEffects(t *testing.T) {
	c := testCollider()
	p := NewPool(KindCollectible, nil)
	put(p, EntityType{Name: "shield", Kind: KindCollectible, Value: 120, Effect: EffectShield}, touching)
	put(p, EntityType{Name: "slow", Kind: KindCollectible, Value: 90, Effect: EffectSlow}, touching)
	v := Vitals{Lives: 3}

	events := c.CheckAll(actorBox, &v, p)
	if Count(events, EventPickup) != 2 {
		t.Fatalf("events = %v", events)
	}
	if !v.Shield || v.Slow != 3.2 {
		t.Errorf("vitals = %+v, expected shield and 3.2 s slow", v)
	}
}

func TestCheckAllPickupBeforeHit(t *testing.T) {
	c := testCollider()
	obstacles := NewPool(KindObstacle, nil)
	collectibles := NewPool(KindCollectible, nil)
	put(obstacles, hazardType, touching)
	put(collectibles, EntityType{Name: "shield", Kind: KindCollectible, Effect: EffectShield}, touching)
	v := Vitals{Lives: 3}

	// The obstacle pool is scanned first, but the shield still absorbs the hit.
	events := c.CheckAll(actorBox, &v, obstacles, collectibles)
	if !Has(events, EventPickup) || !Has(events, EventBlocked) || Has(events, EventHit) {
		t.Errorf("events = %v, expected pickup then block", events)
	}
	if v.Lives != 3 {
		t.Errorf("lives = %d", v.Lives)
	}
}

func TestCheckAllIdempotent(t *testing.T) {
	c := testCollider()
	c.Vitals.InvulnerableTime = 0
	p := NewPool(KindCollectible, nil)
	put(p, EntityType{Name: "orb", Kind: KindCollectible, Value: 15}, touching)
	v := Vitals{Lives: 3}

	first := c.CheckAll(actorBox, &v, p)
	second := c.CheckAll(actorBox, &v, p)
	if len(first) != 1 || len(second) != 0 {
		t.Errorf("resolved entity scored again: %v then %v", first, second)
	}
}

func TestCheckPassed(t *testing.T) {
	c := testCollider()
	p := NewPool(KindObstacle, nil)
	behind := put(p, hazardType, core.NewBox(100, 444, 34, 40)) // right edge 134 < 140
	edge := put(p, hazardType, core.NewBox(106, 444, 34, 40))   // right edge 140, not past
	put(p, hazardType, faraway)

	events := c.CheckPassed(actorBox, p)
	if len(events) != 1 || events[0].Kind != EventPassed || events[0].Points != 25 {
		t.Fatalf("events = %v, expected one pass worth 25", events)
	}
	if !behind.Resolved() || edge.Resolved() {
		t.Errorf("resolved flags: behind=%v edge=%v", behind.Resolved(), edge.Resolved())
	}
	if again := c.CheckPassed(actorBox, p); len(again) != 0 {
		t.Errorf("pass awarded twice: %v", again)
	}
}

func TestPassedAndHitAreExclusive(t *testing.T) {
	c := testCollider()
	p := NewPool(KindObstacle, nil)
	e := put(p, hazardType, touching)
	v := Vitals{Lives: 3}

	c.CheckAll(actorBox, &v, p)
	p.Advance(1, 200) // now well behind the actor
	if events := c.CheckPassed(actorBox, p); len(events) != 0 {
		t.Errorf("a collided obstacle also scored a pass: %v", events)
	}
	if !e.Resolved() {
		t.Error("obstacle should stay resolved")
	}
}

func TestCheckPassedIgnoresHazards(t *testing.T) {
	c := testCollider()
	p := NewPool(KindHazard, nil)
	put(p, EntityType{Name: "meteor", Kind: KindHazard, Value: 10}, core.NewBox(0, 0, 20, 20))
	if events := c.CheckPassed(actorBox, p); len(events) != 0 {
		t.Errorf("hazards should never score passes: %v", events)
	}
}
