package gameplay

import (
	"testing"

	"github.com/leonelquinteros/gotext"
	"github.com/stretchr/testify/assert"

	"mouserun/pkg/game/rooms"
)

func TestEvent_Message(t *testing.T) {
	gotext.Configure("../../../locales", "en_GB", "default")

	assert.Equal(t, "Through the left door.", Event{Kind: EventDoorPassed, Door: rooms.DoorLeft}.Message())
	assert.Equal(t, "You ran into the closed center door.", Event{Kind: EventCrash, Door: rooms.DoorCenter}.Message())
	assert.Equal(t, "Room 12 built ahead.", Event{Kind: EventRecycled, Serial: 12}.Message())
	assert.Equal(t, "Cheese collected.", Event{Kind: EventCollected}.Message())
	assert.Empty(t, Event{Kind: EventKind(99)}.Message())
}

func TestEventKind_String(t *testing.T) {
	assert.Equal(t, "crash", EventCrash.String())
	assert.Equal(t, "door_passed", EventDoorPassed.String())
	assert.Equal(t, "collected", EventCollected.String())
	assert.Equal(t, "recycled", EventRecycled.String())
	assert.Equal(t, "unknown", EventKind(99).String())
}
