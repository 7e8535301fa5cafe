package sim

import "fmt"

// EventKind identifies what happened during a step or action.
type EventKind int

const (
	EventStarted EventKind = iota
	EventPaused
	EventResumed
	EventJumped
	EventDoubleJumped
	EventLanded
	EventSpawned
	EventBonusSpawned
	EventPassed
	EventPickup
	EventHit
	EventBlocked
	EventEnded
	EventNewBest
	EventResized
)

var eventNames = [...]string{
	EventStarted:      "started",
	EventPaused:       "paused",
	EventResumed:      "resumed",
	EventJumped:       "jumped",
	EventDoubleJumped: "double_jumped",
	EventLanded:       "landed",
	EventSpawned:      "spawned",
	EventBonusSpawned: "bonus_spawned",
	EventPassed:       "passed",
	EventPickup:       "pickup",
	EventHit:          "hit",
	EventBlocked:      "blocked",
	EventEnded:        "ended",
	EventNewBest:      "new_best",
	EventResized:      "resized",
}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventNames) {
		return fmt.Sprintf("event(%d)", int(k))
	}
	return eventNames[k]
}

// Event is emitted by the session. Only the fields relevant to Kind are set.
type Event struct {
	Kind   EventKind
	Entity Entity // spawned, passed, pickup, hit, blocked
	Points int    // passed, pickup
	Lives  int    // pickup, hit, blocked
	Streak int    // pickup
	Score  int    // ended, new_best
	Best   int    // ended, new_best
	RunID  string // started, ended
}

func (e Event) String() string {
	switch e.Kind {
	case EventSpawned, EventBonusSpawned:
		return fmt.Sprintf("%s %s#%d", e.Kind, e.Entity.Type, e.Entity.ID)
	case EventPassed:
		return fmt.Sprintf("%s %s#%d +%d", e.Kind, e.Entity.Type, e.Entity.ID, e.Points)
	case EventPickup:
		return fmt.Sprintf("%s %s#%d +%d streak=%d", e.Kind, e.Entity.Type, e.Entity.ID, e.Points, e.Streak)
	case EventHit, EventBlocked:
		return fmt.Sprintf("%s %s#%d lives=%d", e.Kind, e.Entity.Type, e.Entity.ID, e.Lives)
	case EventEnded, EventNewBest:
		return fmt.Sprintf("%s score=%d best=%d", e.Kind, e.Score, e.Best)
	default:
		return e.Kind.String()
	}
}

// Has reports whether any event in events is of kind k.
func Has(events []Event, k EventKind) bool {
	for _, e := range events {
		if e.Kind == k {
			return true
		}
	}
	return false
}

// Count returns how many events in events are of kind k.
func Count(events []Event, k EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == k {
			n++
		}
	}
	return n
}
