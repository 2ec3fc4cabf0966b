// Package telemetry provides per-turn records, session statistics, phase
// timing and CSV output.
package telemetry

import "github.com/pthm-cable/hunt/components"

// EventType identifies telemetry events.
type EventType uint8

const (
	EventMove EventType = iota
	EventMoveBlocked
	EventEat
	EventEscape
	EventNoTarget
	EventRepel
	EventRepelFailed
	EventCaught
	EventStarved
	EventLevelComplete
)

// String returns the event name used in logs.
func (t EventType) String() string {
	switch t {
	case EventMove:
		return "move"
	case EventMoveBlocked:
		return "move_blocked"
	case EventEat:
		return "eat"
	case EventEscape:
		return "escape"
	case EventNoTarget:
		return "no_target"
	case EventRepel:
		return "repel"
	case EventRepelFailed:
		return "repel_failed"
	case EventCaught:
		return "caught"
	case EventStarved:
		return "starved"
	case EventLevelComplete:
		return "level_complete"
	}
	return "unknown"
}

// Event represents a single telemetry event.
type Event struct {
	Type  EventType
	Turn  int
	Level int
	Kind  components.Kind // prey eaten or escaped, or the catching wolf

	// Optional fields depending on event type
	Count  int     // wolves displaced by a repel
	Amount float64 // hunger gained or spent
}

// NewEatEvent creates an event for prey that was eaten.
func NewEatEvent(turn, level int, kind components.Kind, gained float64) Event {
	return Event{Type: EventEat, Turn: turn, Level: level, Kind: kind, Amount: gained}
}

// NewEscapeEvent creates an event for prey that escaped a consume attempt.
func NewEscapeEvent(turn, level int, kind components.Kind, cost float64) Event {
	return Event{Type: EventEscape, Turn: turn, Level: level, Kind: kind, Amount: cost}
}

// NewRepelEvent creates an event for a repel that displaced wolves.
func NewRepelEvent(turn, level, displaced int, cost float64) Event {
	return Event{Type: EventRepel, Turn: turn, Level: level, Kind: components.KindWolf, Count: displaced, Amount: cost}
}

// NewCaughtEvent creates an event for a wolf reaching the player.
func NewCaughtEvent(turn, level int) Event {
	return Event{Type: EventCaught, Turn: turn, Level: level, Kind: components.KindWolf}
}

// NewEvent creates an event with no payload.
func NewEvent(t EventType, turn, level int) Event {
	return Event{Type: t, Turn: turn, Level: level}
}
