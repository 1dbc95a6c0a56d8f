package gameplay

import (
	"mouserun/pkg/engine/geom"
	"mouserun/pkg/game/rooms"
)

// DoorView is the render-facing state of one door
type DoorView struct {
	X      float64
	Z      float64
	Open   bool
	Passed bool
}

// RoomView is the render-facing state of one room
type RoomView struct {
	Slot        int
	Serial      int
	Z           float64
	Depth       float64
	Hidden      bool
	Doors       [rooms.DoorCount]DoorView
	Collectible bool
	CollectX    float64
	CollectZ    float64
}

// Snapshot is a copy of everything a renderer needs for one frame.
// It shares no memory with the session.
type Snapshot struct {
	Actor    geom.Vec3
	Lane     int
	Sphere   geom.Sphere
	Jumping  bool
	Rooms    []RoomView // oldest first
	Props    int
	Started  bool
	Over     bool
	Distance float64
	Score    int
	Doors    int
	Recycled int
	Speed    float64
	Factor   float64
	Messages []string
	Ticks    int
}

// Snapshot captures the current frame
func (s *Session) Snapshot() Snapshot {
	g := s.game
	snap := Snapshot{
		Actor:    s.actor.Position(),
		Lane:     s.actor.Lane(),
		Sphere:   s.sphere,
		Jumping:  g.Jumping,
		Rooms:    make([]RoomView, 0, s.ring.Capacity()),
		Props:    len(s.field),
		Started:  g.Started,
		Over:     g.Over,
		Distance: g.Distance,
		Score:    g.Score,
		Doors:    g.DoorsPassed,
		Recycled: g.Recycled,
		Speed:    s.Speed(),
		Factor:   g.SpeedMultiplier,
		Messages: append([]string(nil), g.Messages...),
		Ticks:    s.ticks,
	}
	s.ring.Each(func(r *rooms.Room) {
		v := RoomView{
			Slot:        r.Slot,
			Serial:      r.Serial,
			Z:           r.PositionZ,
			Depth:       s.templates.RoomDepth,
			Hidden:      r.Hidden,
			Collectible: r.Collectible.Available(),
			CollectX:    r.Collectible.Node.Position.X,
			CollectZ:    r.Collectible.Node.Position.Z,
		}
		for i := range r.Doors {
			d := &r.Doors[i]
			v.Doors[i] = DoorView{
				X:      d.Node.Position.X,
				Z:      d.Node.Position.Z,
				Open:   d.Open,
				Passed: d.Passed,
			}
		}
		snap.Rooms = append(snap.Rooms, v)
	})
	return snap
}

// OpenDoor returns the index of the room's open door
func (v RoomView) OpenDoor() int {
	for i, d := range v.Doors {
		if d.Open {
			return i
		}
	}
	return -1
}
