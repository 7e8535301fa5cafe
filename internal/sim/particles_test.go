package sim

import "testing"

func TestParticlesCap(t *testing.T) {
	ps := NewParticles(ParticleConfig{Max: 10})
	b := Burst{Count: 8, VX: Between(-100, 100), VY: Between(-200, -50), Life: Between(0.2, 0.4)}

	src := NewSource(3)
	if n := ps.Emit(0, 0, b, src, 1); n != 8 {
		t.Fatalf("first burst emitted %d", n)
	}
	if n := ps.Emit(0, 0, b, src, 1); n != 2 {
		t.Errorf("second burst emitted %d, expected 2 under the cap", n)
	}
	if ps.Len() != 10 {
		t.Errorf("Len() = %d", ps.Len())
	}
}

func TestParticlesExpire(t *testing.T) {
	ps := NewParticles(ParticleConfig{Max: 50, Gravity: 400})
	ps.Emit(100, 100, Burst{Count: 5, VY: Fixed(-100), Life: Fixed(0.25)}, NewSource(1), 1)

	ps.Update(0.125)
	items := ps.Items()
	if len(items) != 5 {
		t.Fatalf("expected 5 live particles, got %d", len(items))
	}
	if items[0].Y != 87.5 || items[0].VY != -50 {
		t.Errorf("particle = %+v, expected y 87.5 vy -50", items[0])
	}
	if r := items[0].Remaining(); r != 0.5 {
		t.Errorf("Remaining() = %v", r)
	}

	ps.Update(0.125)
	if ps.Len() != 0 {
		t.Errorf("expired particles kept: %d", ps.Len())
	}
}

func TestEventStrings(t *testing.T) {
	tests := []struct {
		event    Event
		expected string
	}{
		{Event{Kind: EventStarted}, "started"},
		{Event{Kind: EventPickup, Entity: Entity{ID: 4, Type: "orb"}, Points: 20, Streak: 2}, "pickup orb#4 +20 streak=2"},
		{Event{Kind: EventHit, Entity: Entity{ID: 9, Type: "meteor"}, Lives: 1}, "hit meteor#9 lives=1"},
		{Event{Kind: EventEnded, Score: 90, Best: 150}, "ended score=90 best=150"},
		{Event{Kind: EventKind(99)}, "event(99)"},
	}

	for _, tc := range tests {
		if got := tc.event.String(); got != tc.expected {
			t.Errorf("String() = %q, expected %q", got, tc.expected)
		}
	}
}

func TestEventCounting(t *testing.T) {
	events := []Event{{Kind: EventSpawned}, {Kind: EventPassed}, {Kind: EventSpawned}}
	if Count(events, EventSpawned) != 2 || !Has(events, EventPassed) || Has(events, EventHit) {
		t.Error("Has/Count disagree with the slice")
	}
}
