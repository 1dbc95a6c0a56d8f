// Package rooms generates the stream of rooms the actor runs through: a
// factory that builds one room with a random open door and an optional
// collectible, and a fixed-capacity ring that recycles the oldest room.
package rooms

import (
	"mouserun/pkg/engine/geom"
	"mouserun/pkg/engine/scene"
)

// DoorPosition identifies one of the three doors in a room
type DoorPosition int

// Door positions, left to right as seen by the actor
const (
	DoorLeft DoorPosition = iota
	DoorCenter
	DoorRight
)

// DoorCount is the number of doors in every room
const DoorCount = 3

// String returns a short label for the door position
func (p DoorPosition) String() string {
	switch p {
	case DoorLeft:
		return "left"
	case DoorCenter:
		return "center"
	case DoorRight:
		return "right"
	}
	return "unknown"
}

// Door is a single passage in a room's front wall
type Door struct {
	Node     *scene.Node
	Position DoorPosition
	Open     bool // passable
	Passed   bool // the actor has gone through it
	Box      geom.Box3
}

// Collectible is the optional pickup placed behind the open door
type Collectible struct {
	Node      *scene.Node
	Box       geom.Box3
	Visible   bool // spawned in this room
	Collected bool
}

// Available reports whether the collectible can still be picked up
func (c *Collectible) Available() bool {
	return c.Visible && !c.Collected
}

// Room is one traversable segment
type Room struct {
	Shell       *scene.Node
	Doors       [DoorCount]Door
	Collectible Collectible
	PositionZ   float64
	Hidden      bool

	// Slot is the ring-buffer slot the room occupies
	Slot int
	// Serial counts rooms written since the ring was initialized, starting at 0
	Serial int
}

// OpenDoor returns the index of the open door, or -1 if the room is empty
func (r *Room) OpenDoor() int {
	for i := range r.Doors {
		if r.Doors[i].Open {
			return i
		}
	}
	return -1
}

// OpenDoorCount returns how many doors are open
func (r *Room) OpenDoorCount() int {
	n := 0
	for i := range r.Doors {
		if r.Doors[i].Open {
			n++
		}
	}
	return n
}

// IsZero reports whether the slot has never been written
func (r *Room) IsZero() bool {
	return r.Shell == nil
}

// Nodes returns every scene node owned by the room
func (r *Room) Nodes() []*scene.Node {
	if r.IsZero() {
		return nil
	}
	nodes := make([]*scene.Node, 0, DoorCount+2)
	nodes = append(nodes, r.Shell)
	for i := range r.Doors {
		nodes = append(nodes, r.Doors[i].Node)
	}
	return append(nodes, r.Collectible.Node)
}

// Activate makes a hidden room visible. The collectible only shows if it spawned.
func (r *Room) Activate() {
	if r.IsZero() || !r.Hidden {
		return
	}
	r.Hidden = false
	r.Shell.SetVisible(true)
	for i := range r.Doors {
		r.Doors[i].Node.SetVisible(true)
	}
	r.Collectible.Node.SetVisible(r.Collectible.Available())
}

// Collect marks the collectible as picked up and hides it
func (r *Room) Collect() bool {
	if !r.Collectible.Available() {
		return false
	}
	r.Collectible.Collected = true
	r.Collectible.Node.SetVisible(false)
	return true
}
