package sim

import (
	"math"
	"testing"

	"github.com/vovakirdan/spark-arcade/internal/core"
)

func testConfig() Config {
	return Config{
		Clock: ClockConfig{MaxStep: 0.033},
		World: WorldConfig{StartSpeed: 100, MaxSpeed: 400, Floor: 0.9, SpawnMargin: 40, PruneMargin: 120},
		Actor: ActorConfig{
			Mode: ModeRunner, Width: 44, Height: 64, AnchorX: 140,
			Gravity: 2400, JumpImpulse: 920, DoubleJumpImpulse: 900,
		},
		Vitals:    VitalsConfig{Lives: 3, InvulnerableTime: 1.1, ShieldInvulnerableTime: 0.55},
		Effects:   EffectsConfig{SlowDuration: 3.2, SlowFactor: 0.55},
		Collision: CollisionConfig{Shape: ShapeBox},
		Entities: []EntityType{
			{Name: "spike", Kind: KindObstacle, Width: Fixed(34), Height: Fixed(40), Placement: PlacementGround, Value: 25},
			{Name: "drone", Kind: KindObstacle, Width: Fixed(42), Height: Fixed(32), Placement: PlacementFloating, Band: Between(0.48, 0.66), Value: 45},
			{Name: "shield", Kind: KindCollectible, Width: Fixed(30), Effect: EffectShield, Value: 120, Consume: true},
		},
	}
}

func newTestSession(cfg Config, store core.Store) *Session {
	return NewSession(cfg, Options{Seed: 1, Store: store, BestKey: "test.best", Width: 960, Height: 540, Scale: 1})
}

// inject places an entity of the named type overlapping the actor.
func inject(t *testing.T, s *Session, name string) *Entity {
	t.Helper()
	typ, ok := s.cfg.Lookup(name)
	if !ok {
		t.Fatalf("unknown type %q", name)
	}
	w, h := typ.Width.Min, typ.Height.Min
	if h <= 0 {
		h = w
	}
	a := s.actor.Box
	return put(s.pools.For(typ.Kind), typ, core.NewBox(a.X+4, a.Bottom()-h, w, h))
}

// countingStore records how often each key is written.
type countingStore struct {
	*core.MemoryStore
	writes map[string]int
}

func newCountingStore() *countingStore {
	return &countingStore{MemoryStore: core.NewMemoryStore(), writes: map[string]int{}}
}

func (c *countingStore) Set(key string, value int) {
	c.writes[key]++
	c.MemoryStore.Set(key, value)
}

func (c *countingStore) SetMax(key string, value int) {
	c.writes[key]++
	c.MemoryStore.SetMax(key, value)
}

func TestSessionStateMachine(t *testing.T) {
	s := newTestSession(testConfig(), nil)

	steps := []struct {
		name     string
		do       func() []Event
		expected State
		event    EventKind
		silent   bool
	}{
		{"pause while idle", s.Pause, StateIdle, 0, true},
		{"resume while idle", s.Resume, StateIdle, 0, true},
		{"start", s.Start, StateRunning, EventStarted, false},
		{"start while running", s.Start, StateRunning, 0, true},
		{"pause", s.Pause, StatePaused, EventPaused, false},
		{"pause twice", s.Pause, StatePaused, 0, true},
		{"resume", s.Resume, StateRunning, EventResumed, false},
		{"toggle", s.TogglePause, StatePaused, EventPaused, false},
		{"toggle back", s.TogglePause, StateRunning, EventResumed, false},
		{"restart", s.Restart, StateRunning, EventStarted, false},
	}

	for _, st := range steps {
		events := st.do()
		if s.State() != st.expected {
			t.Fatalf("%s: state = %s, expected %s", st.name, s.State(), st.expected)
		}
		if st.silent && len(events) != 0 {
			t.Fatalf("%s: expected no events, got %v", st.name, events)
		}
		if !st.silent && !Has(events, st.event) {
			t.Fatalf("%s: expected %s, got %v", st.name, st.event, events)
		}
	}
}

func TestSessionIgnoresInvalidActions(t *testing.T) {
	s := newTestSession(testConfig(), nil)

	// Jump before start does nothing unless jump_starts is set.
	if events := s.OnAction(Action{Kind: ActionJump}); len(events) != 0 || s.State() != StateIdle {
		t.Errorf("jump while idle: %v, state %s", events, s.State())
	}
	if events := s.Step(0.016); len(events) != 0 {
		t.Errorf("step while idle produced %v", events)
	}
	if s.actor.Box.Y != s.field.Floor-64 {
		t.Error("idle step moved the actor")
	}

	s.Start()
	inject(t, s, "spike")
	s.vitals.Lives = 1
	s.Step(0.016)
	if s.State() != StateEnded {
		t.Fatalf("state = %s, expected ended", s.State())
	}

	for _, a := range []Action{{Kind: ActionJump}, {Kind: ActionPause}, {Kind: ActionMoveBegin, Dir: DirUp}} {
		if events := s.OnAction(a); len(events) != 0 || s.State() != StateEnded {
			t.Errorf("action %v while ended: %v, state %s", a, events, s.State())
		}
	}
	score := s.Score()
	if events := s.Step(0.016); len(events) != 0 || s.Score() != score {
		t.Error("ended session kept simulating")
	}
}

func TestSessionJumpStarts(t *testing.T) {
	cfg := testConfig()
	cfg.Session.JumpStarts = true
	s := newTestSession(cfg, nil)

	events := s.OnAction(Action{Kind: ActionJump})
	if !Has(events, EventStarted) || !Has(events, EventJumped) {
		t.Fatalf("events = %v, expected start and jump", events)
	}
	if s.State() != StateRunning || s.actor.Grounded {
		t.Errorf("state %s grounded %v", s.State(), s.actor.Grounded)
	}
}

func TestSessionThreeHitsEnd(t *testing.T) {
	cfg := testConfig()
	cfg.Vitals.HitStop = 0
	store := newCountingStore()
	s := newTestSession(cfg, store)
	s.Start()

	var all []Event
	s.Subscribe(func(e Event) { all = append(all, e) })

	for hit := 1; hit <= 3; hit++ {
		inject(t, s, "spike")
		events := s.Step(0.016)
		if Count(events, EventHit) != 1 {
			t.Fatalf("hit %d: events = %v", hit, events)
		}
		if s.Lives() != 3-hit {
			t.Fatalf("hit %d: lives = %d", hit, s.Lives())
		}
		if hit < 3 {
			if s.State() != StateRunning {
				t.Fatalf("hit %d: ended early", hit)
			}
			// Let the invulnerability window run out.
			for i := 0; i < 40; i++ {
				s.Step(0.033)
			}
		}
	}

	if s.State() != StateEnded {
		t.Fatalf("state = %s after three hits", s.State())
	}
	if Count(all, EventEnded) != 1 {
		t.Errorf("ended emitted %d times", Count(all, EventEnded))
	}
	s.Step(0.016)
	if Count(all, EventEnded) != 1 {
		t.Error("ended emitted again after the run ended")
	}
}

func TestSessionHitWindow(t *testing.T) {
	s := newTestSession(testConfig(), nil)
	s.Start()

	inject(t, s, "spike")
	s.Step(0.016)
	if s.Lives() != 2 {
		t.Fatalf("lives = %d", s.Lives())
	}
	for s.hitStop > 0 {
		s.Step(0.016)
	}

	// A fresh obstacle inside the window is ignored.
	inject(t, s, "spike")
	if events := s.Step(0.016); Has(events, EventHit) {
		t.Errorf("hit inside the invulnerability window: %v", events)
	}
	if s.Lives() != 2 {
		t.Errorf("lives = %d, expected 2", s.Lives())
	}
}

func TestSessionShieldScenario(t *testing.T) {
	cfg := testConfig()
	cfg.Vitals.HitStop = 0
	s := newTestSession(cfg, nil)
	s.Start()
	s.vitals.Shield = true

	inject(t, s, "spike")
	events := s.Step(0.016)
	if !Has(events, EventBlocked) || Has(events, EventHit) {
		t.Fatalf("events = %v, expected a block", events)
	}
	if s.Lives() != 3 || s.vitals.Shield || s.vitals.Invulnerable <= 0 {
		t.Fatalf("vitals = %+v", s.vitals)
	}

	before := s.vitals
	inject(t, s, "spike")
	events = s.Step(0.016)
	if Has(events, EventHit) || Has(events, EventBlocked) {
		t.Errorf("second contact within the window: %v", events)
	}
	if s.Lives() != before.Lives || s.vitals.Shield != before.Shield {
		t.Errorf("second contact changed vitals: %+v -> %+v", before, s.vitals)
	}
}

func TestSessionBestScore(t *testing.T) {
	cfg := testConfig()
	cfg.Vitals.Lives = 1
	store := newCountingStore()

	s := newTestSession(cfg, store)
	if s.Best() != 0 {
		t.Fatalf("initial best = %d", s.Best())
	}

	endWith := func(score float64) []Event {
		s.Restart()
		s.score = score
		inject(t, s, "spike")
		return s.Step(0.001)
	}

	events := endWith(150)
	if !Has(events, EventNewBest) {
		t.Errorf("events = %v, expected a new best", events)
	}
	if v, _ := store.Get("test.best"); v != 150 || s.Best() != 150 {
		t.Errorf("stored best = %d, session best = %d, expected 150", v, s.Best())
	}

	events = endWith(90)
	if Has(events, EventNewBest) {
		t.Errorf("90 should not be a new best: %v", events)
	}
	if v, _ := store.Get("test.best"); v != 150 {
		t.Errorf("stored best = %d, expected 150", v)
	}
	if store.writes["test.best"] != 1 {
		t.Errorf("best written %d times, expected once", store.writes["test.best"])
	}

	// A fresh session reads the persisted best once at creation.
	again := newTestSession(cfg, store)
	if again.Best() != 150 {
		t.Errorf("new session best = %d", again.Best())
	}
}

func TestSessionSharedStoreBestNeverDrops(t *testing.T) {
	cfg := testConfig()
	cfg.Vitals.Lives = 1
	store := core.NewMemoryStore()

	// Both sessions read best = 0 before either run ends.
	a := newTestSession(cfg, store)
	b := newTestSession(cfg, store)

	endWith := func(s *Session, score float64) {
		s.Restart()
		s.score = score
		inject(t, s, "spike")
		s.Step(0.001)
		if s.State() != StateEnded {
			t.Fatalf("run did not end: %v", s.State())
		}
	}

	endWith(b, 200)
	endWith(a, 150)

	if v, _ := store.Get("test.best"); v != 200 {
		t.Errorf("stored best = %d after runs of 200 and 150, expected 200", v)
	}
	if a.Best() != 150 {
		t.Errorf("session best = %d, expected its own 150", a.Best())
	}
}

func TestSessionMalformedBest(t *testing.T) {
	store := core.NewMemoryStore()
	store.Set("test.best", -40)
	s := newTestSession(testConfig(), store)
	if s.Best() != 0 {
		t.Errorf("negative stored best read as %d, expected 0", s.Best())
	}
}

func TestSessionRestartMatchesFreshStart(t *testing.T) {
	cfg := testConfig()
	cfg.Streams = []StreamConfig{{Name: "obstacles", Interval: Between(0.3, 0.6), Weights: []Weight{{"spike", 1}, {"drone", 1}}}}
	cfg.Scoring.TimeRate = 60

	fresh := newTestSession(cfg, nil)
	fresh.Start()
	want := fresh.Snapshot()

	s := newTestSession(cfg, nil)
	s.Start()
	for i := 0; i < 200; i++ {
		if i%20 == 0 {
			s.OnAction(Action{Kind: ActionJump})
		}
		s.Step(1.0 / 60)
	}
	if s.Score() == 0 || s.pools.Len() == 0 {
		t.Fatal("run did not progress")
	}
	s.Restart()
	got := s.Snapshot()

	if got.State != StateRunning || got.Score != want.Score || got.Vitals != want.Vitals {
		t.Errorf("restart state %s score %d vitals %+v, expected %s %d %+v",
			got.State, got.Score, got.Vitals, want.State, want.Score, want.Vitals)
	}
	if len(got.Entities) != 0 || got.Elapsed != 0 || got.Distance != 0 {
		t.Errorf("restart left entities=%d elapsed=%v distance=%v", len(got.Entities), got.Elapsed, got.Distance)
	}
	if got.Speed != want.Speed || got.Actor != want.Actor {
		t.Errorf("restart speed %v actor %+v, expected %v %+v", got.Speed, got.Actor, want.Speed, want.Actor)
	}
	if got.RunID == "" || got.RunID == want.RunID {
		t.Errorf("restart should get a new run id, got %q", got.RunID)
	}
}

func TestSessionSpeedMonotonic(t *testing.T) {
	cfg := testConfig()
	cfg.World = WorldConfig{StartSpeed: 360, Growth: 0.06, Accel: 10, MaxSpeed: 500, Floor: 0.9}
	cfg.Vitals.Lives = 1000
	cfg.Vitals.HitStop = 0
	cfg.Streams = []StreamConfig{{Name: "o", Interval: Between(0.2, 0.5), Weights: []Weight{{"spike", 1}, {"shield", 1}}}}
	s := newTestSession(cfg, nil)
	s.Start()

	prev := s.Speed()
	for i := 0; i < 3000; i++ {
		if i == 500 {
			s.vitals.Slow = 3
		}
		s.Step(1.0 / 60)
		if s.Speed() < prev {
			t.Fatalf("tick %d: speed dropped %v -> %v", i, prev, s.Speed())
		}
		if s.Speed() > 500 {
			t.Fatalf("tick %d: speed %v above the maximum", i, s.Speed())
		}
		if s.EffectiveSpeed() > s.Speed() {
			t.Fatalf("tick %d: effective speed above world speed", i)
		}
		prev = s.Speed()
	}
	if s.Speed() != 500 {
		t.Errorf("speed = %v after 50 s, expected the maximum", s.Speed())
	}
}

func TestSessionSlowEffect(t *testing.T) {
	cfg := testConfig()
	s := newTestSession(cfg, nil)
	s.Start()
	s.vitals.Slow = 1

	s.Step(0.01)
	if got, want := s.EffectiveSpeed(), s.Speed()*0.55; got != want {
		t.Errorf("effective speed = %v, expected %v", got, want)
	}
	for i := 0; i < 40; i++ {
		s.Step(0.033)
	}
	if s.EffectiveSpeed() != s.Speed() {
		t.Error("slow effect did not wear off")
	}
}

func TestSessionPassScoring(t *testing.T) {
	cfg := testConfig()
	s := newTestSession(cfg, nil)
	s.Start()

	typ, _ := cfg.Lookup("spike")
	a := s.actor.Box
	// An obstacle just ahead of the actor's leading edge, low enough to jump over.
	put(s.pools.Obstacles, typ, core.NewBox(a.X-34+0.5, s.field.Floor-40, 34, 40))
	s.actor.Box.Y = 0 // high above it
	s.actor.Grounded = false

	events := s.Step(0.016)
	if Count(events, EventPassed) != 1 || s.Score() != 25 {
		t.Errorf("events = %v score = %d, expected one pass worth 25", events, s.Score())
	}
	for i := 0; i < 10; i++ {
		if Has(s.Step(0.016), EventPassed) {
			t.Fatal("pass awarded twice")
		}
	}
}

func TestSessionPickupScoring(t *testing.T) {
	s := newTestSession(testConfig(), nil)
	s.Start()

	inject(t, s, "shield")
	events := s.Step(0.016)
	if !Has(events, EventPickup) || s.Score() != 120 || !s.vitals.Shield {
		t.Errorf("events = %v score = %d shield = %v", events, s.Score(), s.vitals.Shield)
	}
	if s.pools.Collectibles.Len() != 0 {
		t.Error("collected pickup should be swept")
	}
}

func TestSessionTimeScore(t *testing.T) {
	cfg := testConfig()
	cfg.World = WorldConfig{StartSpeed: 360, Growth: 0.06, MaxSpeed: 2400, Floor: 0.9}
	cfg.Scoring = ScoringConfig{TimeRate: 20, ScaleWithSpeed: true, DistanceRate: 10.0 / 520}
	s := newTestSession(cfg, nil)
	s.Start()

	for i := 0; i < 1000; i++ {
		s.Step(0.01) // 10 s
	}
	// Integral of 20 * (1 + 0.06 t) over 10 s is 260.
	if got := s.Score(); got < 258 || got > 262 {
		t.Errorf("score after 10 s = %d, expected about 260", got)
	}
	// 360 * (10 + 0.03 * 10^2) px scaled by 10/520.
	if d := s.Snapshot().Distance; d < 89 || d > 91.5 {
		t.Errorf("distance = %v, expected about 90", d)
	}
}

func TestSessionHitStop(t *testing.T) {
	cfg := testConfig()
	cfg.Vitals.HitStop = 0.06
	s := newTestSession(cfg, nil)
	s.Start()

	inject(t, s, "spike")
	s.Step(0.016)
	elapsed := s.Elapsed()
	s.Step(0.03)
	s.Step(0.02)
	if s.Elapsed() != elapsed {
		t.Errorf("world advanced during hit-stop: %v -> %v", elapsed, s.Elapsed())
	}
	s.Step(0.02)
	s.Step(0.02)
	if s.Elapsed() == elapsed {
		t.Error("hit-stop never released the world")
	}
}

func TestSessionPausedFreezes(t *testing.T) {
	cfg := testConfig()
	cfg.Streams = []StreamConfig{{Name: "o", Interval: Fixed(0.1), Weights: []Weight{{"spike", 1}}}}
	s := newTestSession(cfg, nil)
	s.Start()
	s.Step(0.033)
	s.Pause()

	before := s.Snapshot()
	for i := 0; i < 30; i++ {
		if events := s.Step(0.033); len(events) != 0 {
			t.Fatalf("paused step produced %v", events)
		}
	}
	after := s.Snapshot()
	if after.Elapsed != before.Elapsed || len(after.Entities) != len(before.Entities) {
		t.Error("paused session kept simulating")
	}
}

func TestSessionResize(t *testing.T) {
	cfg := testConfig()
	cfg.Scoring.TimeRate = 60
	s := newTestSession(cfg, nil)
	s.Start()
	for i := 0; i < 30; i++ {
		s.Step(0.016)
	}
	score, lives := s.Score(), s.Lives()

	for _, bad := range [][2]float64{{0, 400}, {800, 0}, {-5, 300}} {
		if s.Resize(bad[0], bad[1], 1) {
			t.Errorf("Resize(%v, %v) should be ignored", bad[0], bad[1])
		}
	}
	if s.Field().Width != 960 {
		t.Fatal("degenerate resize changed the field")
	}

	if !s.Resize(640, 360, 0) {
		t.Fatal("valid resize rejected")
	}
	f := s.Field()
	if f.Floor != 324 || f.Scale != 1 {
		t.Errorf("field = %+v, expected floor 324 at scale 1", f)
	}
	if s.actor.Box.Bottom() != 324 {
		t.Errorf("grounded actor bottom = %v, expected the new floor", s.actor.Box.Bottom())
	}
	if s.State() != StateRunning || s.Score() != score || s.Lives() != lives {
		t.Error("resize reset the run")
	}

	// Non-finite scales keep the current one.
	for _, scale := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if !s.Resize(960, 540, scale) {
			t.Fatalf("Resize with scale %v rejected", scale)
		}
		if f := s.Field(); f.Scale != 1 {
			t.Errorf("scale %v gave field scale %v, expected the previous 1", scale, f.Scale)
		}
	}
	s.Step(0.016)
	if sp := s.Speed(); math.IsNaN(sp) || sp > s.cfg.World.MaxSpeed {
		t.Errorf("speed = %v after bad scales", sp)
	}
}

func TestSessionSubscribersSeeEveryEvent(t *testing.T) {
	cfg := testConfig()
	cfg.Streams = []StreamConfig{{Name: "o", Interval: Fixed(0.2), Weights: []Weight{{"spike", 1}}}}
	s := newTestSession(cfg, nil)

	var seen []Event
	s.Subscribe(func(e Event) { seen = append(seen, e) })
	s.Subscribe(nil)

	var returned []Event
	returned = append(returned, s.Start()...)
	for i := 0; i < 70; i++ {
		returned = append(returned, s.Step(1.0/60)...)
	}
	returned = append(returned, s.Pause()...)

	if len(seen) != len(returned) {
		t.Fatalf("subscriber saw %d events, steps returned %d", len(seen), len(returned))
	}
	for i := range seen {
		if seen[i].Kind != returned[i].Kind {
			t.Fatalf("event %d: subscriber %s, returned %s", i, seen[i].Kind, returned[i].Kind)
		}
	}
	if Count(seen, EventSpawned) != 5 {
		t.Errorf("expected 5 spawns in 70 ticks, saw %d", Count(seen, EventSpawned))
	}
}

func TestSessionDeterminism(t *testing.T) {
	cfg := testConfig()
	cfg.World.Growth = 0.06
	cfg.Vitals.HitStop = 0.06
	cfg.Streams = []StreamConfig{{
		Name: "o", Interval: Between(0.55, 1.25), SafeGap: 90,
		Weights: []Weight{{"spike", 55}, {"drone", 45}},
		Bonus:   &BonusConfig{Chance: 0.3, Weights: []Weight{{"shield", 1}}, Offset: Between(120, 220), Lift: 70, Top: 0.35, Clearance: 22},
	}}

	run := func() Snapshot {
		s := NewSession(cfg, Options{Seed: 77, Width: 960, Height: 540, Scale: 1})
		s.Start()
		for i := 0; i < 900; i++ {
			if i%37 == 0 {
				s.OnAction(Action{Kind: ActionJump})
			}
			s.Step(1.0 / 60)
		}
		return s.Snapshot()
	}

	a, b := run(), run()
	if a.Score != b.Score || a.Vitals != b.Vitals || a.Actor != b.Actor || len(a.Entities) != len(b.Entities) {
		t.Fatalf("runs diverged: %+v vs %+v", a.Vitals, b.Vitals)
	}
	for i := range a.Entities {
		if a.Entities[i].Box != b.Entities[i].Box || a.Entities[i].Type != b.Entities[i].Type {
			t.Fatalf("entity %d differs", i)
		}
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := newTestSession(testConfig(), nil)
	s.Start()
	inject(t, s, "shield")

	snap := s.Snapshot()
	snap.Entities[0].Box.X = -1
	snap.Vitals.Lives = 99

	again := s.Snapshot()
	if again.Entities[0].Box.X == -1 || again.Vitals.Lives == 99 {
		t.Error("mutating a snapshot changed the session")
	}
}

func TestSessionFreeMode(t *testing.T) {
	cfg := testConfig()
	cfg.Actor = ActorConfig{Mode: ModeFree, Width: 56, Height: 56, AnchorX: 72, StartY: 0.5, MoveSpeed: 240}
	cfg.Collision.Shape = ShapeCircle
	s := newTestSession(cfg, nil)
	s.Start()

	x := s.actor.Box.X
	s.OnAction(Action{Kind: ActionMoveBegin, Dir: DirRight})
	s.Step(0.03125)
	if s.actor.Box.X != x+7.5 {
		t.Errorf("x = %v, expected %v", s.actor.Box.X, x+7.5)
	}
	s.OnAction(Action{Kind: ActionMoveEnd, Dir: DirRight})
	s.Step(0.03125)
	if s.actor.Box.X != x+7.5 {
		t.Error("actor kept moving after the move ended")
	}
	if events := s.OnAction(Action{Kind: ActionJump}); len(events) != 0 {
		t.Errorf("jump in free mode produced %v", events)
	}
}
