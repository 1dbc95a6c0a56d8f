package gameplay

import (
	"mouserun/pkg/game/rooms"
)

// doorClearance is the margin around a door box's Z extent in which the
// autopilot holds its lane, so the sphere never sweeps across a neighbouring panel
const doorClearance = 0.5

// Autopilot steers the actor towards the open door of the next room ahead.
// Headless runs and tests use it in place of a player.
type Autopilot struct {
	// JumpEvery jumps on every n-th call to Steer; zero never jumps
	JumpEvery int

	ticks int
}

// Steer nudges the session one lane towards the next unpassed open door
func (a *Autopilot) Steer(s *Session) {
	a.ticks++
	if a.JumpEvery > 0 && a.ticks%a.JumpEvery == 0 {
		s.Jump()
	}

	if nearDoorWall(s) {
		return
	}
	door, ok := NextDoor(s)
	if !ok {
		return
	}
	want := LaneForX(door.Node.Position.X, s.cfg.Gameplay.LaneOffset)
	switch lane := s.actor.Lane(); {
	case want < lane:
		s.MoveLeft()
	case want > lane:
		s.MoveRight()
	}
}

// NextDoor returns the open door of the nearest visible room the actor has
// not yet cleared. A passed door stays the target until the actor is beyond
// the far side of its box.
func NextDoor(s *Session) (*rooms.Door, bool) {
	z := s.actor.Position().Z
	var best *rooms.Door
	s.ring.Each(func(r *rooms.Room) {
		if r.Hidden {
			return
		}
		open := r.OpenDoor()
		if open < 0 {
			return
		}
		d := &r.Doors[open]
		if z < d.Box.Min.Z {
			return
		}
		if best == nil || d.Box.Min.Z > best.Box.Min.Z {
			best = d
		}
	})
	return best, best != nil
}

// nearDoorWall reports whether the actor is within doorClearance of any
// door box along Z, on either side of the wall
func nearDoorWall(s *Session) bool {
	z := s.actor.Position().Z
	near := false
	s.ring.Each(func(r *rooms.Room) {
		if r.IsZero() {
			return
		}
		for i := range r.Doors {
			box := r.Doors[i].Box
			if z <= box.Max.Z+doorClearance && z >= box.Min.Z-doorClearance {
				near = true
			}
		}
	})
	return near
}
