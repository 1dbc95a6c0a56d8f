package gameplay

import (
	"fmt"

	"github.com/leonelquinteros/gotext"

	"mouserun/pkg/game/rooms"
)

// EventKind identifies what happened during a tick
type EventKind int

// Event kinds
const (
	EventCrash EventKind = iota
	EventDoorPassed
	EventCollected
	EventRecycled
)

func (k EventKind) String() string {
	switch k {
	case EventCrash:
		return "crash"
	case EventDoorPassed:
		return "door_passed"
	case EventCollected:
		return "collected"
	case EventRecycled:
		return "recycled"
	}
	return "unknown"
}

// Event is one notable outcome of a tick
type Event struct {
	Kind   EventKind
	Slot   int
	Serial int
	Door   rooms.DoorPosition
	Z      float64
}

// Message returns the player-facing line for the event
func (e Event) Message() string {
	switch e.Kind {
	case EventCrash:
		return fmt.Sprintf(gotext.Get("CRASHED"), e.Door)
	case EventDoorPassed:
		return fmt.Sprintf(gotext.Get("DOOR_PASSED"), e.Door)
	case EventCollected:
		return gotext.Get("COLLECTED")
	case EventRecycled:
		return fmt.Sprintf(gotext.Get("ROOM_RECYCLED"), e.Serial)
	}
	return ""
}
