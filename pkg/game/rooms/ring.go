package rooms

import (
	"errors"

	"github.com/sirupsen/logrus"

	"mouserun/pkg/engine/scene"
)

// Ring buffer errors
var (
	ErrInvalidCapacity = errors.New("ring capacity must be positive")
	ErrNotInitialized  = errors.New("ring used before Initialize")
	ErrNilTemplates    = errors.New("nil room templates")
)

// noRoom is the lastIndex sentinel before the first write
const noRoom = -1

// RingBuffer is a fixed-capacity store of rooms. Writing a new room always
// overwrites the slot written capacity insertions earlier.
type RingBuffer struct {
	factory *Factory
	scene   *scene.Scene
	log     *logrus.Entry

	rooms        []Room
	recycleIndex int
	lastIndex    int
	written      int
}

// NewRingBuffer creates an empty ring. Initialize must be called before use.
func NewRingBuffer(factory *Factory, sc *scene.Scene, log *logrus.Entry) *RingBuffer {
	return &RingBuffer{
		factory:   factory,
		scene:     sc,
		log:       log,
		lastIndex: noRoom,
	}
}

// Initialize allocates capacity slots and fills every one of them in order.
// Calling it again starts a new session and releases the previous rooms.
func (b *RingBuffer) Initialize(capacity int, tpl *Templates) error {
	if capacity <= 0 {
		return ErrInvalidCapacity
	}
	if tpl == nil {
		return ErrNilTemplates
	}

	for i := range b.rooms {
		b.release(&b.rooms[i])
	}
	b.rooms = make([]Room, capacity)
	b.recycleIndex = 0
	b.lastIndex = noRoom
	b.written = 0

	for i := 0; i < capacity; i++ {
		b.write(i, tpl)
	}
	b.log.WithFields(logrus.Fields{
		"capacity":   capacity,
		"room_depth": tpl.RoomDepth,
		"last_z":     b.PositionOfLastRoom(),
	}).Info("room ring initialized")
	return nil
}

// Recycle overwrites the oldest room with a fresh one and returns it
func (b *RingBuffer) Recycle(tpl *Templates) (*Room, error) {
	if len(b.rooms) == 0 {
		return nil, ErrNotInitialized
	}
	if tpl == nil {
		return nil, ErrNilTemplates
	}
	return b.write(b.recycleIndex, tpl), nil
}

func (b *RingBuffer) write(index int, tpl *Templates) *Room {
	slot := b.recycleIndex
	b.release(&b.rooms[slot])

	room := b.factory.Create(index, tpl, b.PositionOfLastRoom(), b.lastIndex == noRoom)
	room.Slot = slot
	room.Serial = b.written
	b.rooms[slot] = room
	b.written++

	b.lastIndex = slot
	b.recycleIndex = (slot + 1) % len(b.rooms)

	b.log.WithFields(logrus.Fields{
		"slot":        slot,
		"serial":      room.Serial,
		"z":           room.PositionZ,
		"open_door":   DoorPosition(room.OpenDoor()).String(),
		"collectible": room.Collectible.Visible,
	}).Debug("room written")
	return &b.rooms[slot]
}

// release detaches a slot's previous occupant from the scene graph
func (b *RingBuffer) release(r *Room) {
	for _, n := range r.Nodes() {
		b.scene.Detach(n)
	}
}

// Capacity returns the number of slots
func (b *RingBuffer) Capacity() int {
	return len(b.rooms)
}

// RecycleIndex returns the slot the next write goes to
func (b *RingBuffer) RecycleIndex() int {
	return b.recycleIndex
}

// LastIndex returns the slot most recently written, or -1 before any write
func (b *RingBuffer) LastIndex() int {
	return b.lastIndex
}

// Written returns the number of rooms written since Initialize
func (b *RingBuffer) Written() int {
	return b.written
}

// PositionOfLastRoom returns the travel-axis position of the newest room,
// or the factory's start offset if nothing has been written yet.
func (b *RingBuffer) PositionOfLastRoom() float64 {
	if b.lastIndex == noRoom {
		return b.factory.Layout().StartZ
	}
	return b.rooms[b.lastIndex].PositionZ
}

// Room returns the room in slot, or nil if slot is out of range
func (b *RingBuffer) Room(slot int) *Room {
	if slot < 0 || slot >= len(b.rooms) {
		return nil
	}
	return &b.rooms[slot]
}

// Rooms returns the backing slots. Callers may read rooms and update door or
// collectible state but must not append to or reslice the result.
func (b *RingBuffer) Rooms() []Room {
	return b.rooms
}

// Oldest returns the room that the next Recycle will overwrite
func (b *RingBuffer) Oldest() *Room {
	return b.Room(b.recycleIndex)
}

// Newest returns the most recently written room
func (b *RingBuffer) Newest() *Room {
	return b.Room(b.lastIndex)
}

// Each calls fn for every room from oldest to newest
func (b *RingBuffer) Each(fn func(r *Room)) {
	n := len(b.rooms)
	for i := 0; i < n; i++ {
		fn(&b.rooms[(b.recycleIndex+i)%n])
	}
}
