package gameplay

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mouserun/pkg/engine/geom"
	"mouserun/pkg/game/assets"
	"mouserun/pkg/game/config"
	"mouserun/pkg/game/rooms"
	"mouserun/pkg/logger"
)

const frame = 1.0 / 60

func newTestSession(t *testing.T, seed int64) *Session {
	t.Helper()
	lib, err := assets.LoadDefault(context.Background())
	require.NoError(t, err)
	s, err := NewSession(config.Default(), lib, rand.New(rand.NewSource(seed)), logger.Discard())
	require.NoError(t, err)
	return s
}

// forceOpen makes door the only open door of the room in slot and moves the
// collectible behind it
func forceOpen(s *Session, slot int, door rooms.DoorPosition) *rooms.Room {
	r := s.Ring().Room(slot)
	from := r.Doors[r.OpenDoor()].Node.Position
	to := r.Doors[door].Node.Position
	for i := range r.Doors {
		r.Doors[i].Open = rooms.DoorPosition(i) == door
	}
	shift := geom.V3(to.X-from.X, 0, to.Z-from.Z)
	r.Collectible.Node.Position = r.Collectible.Node.Position.Add(shift)
	r.Collectible.Box = r.Collectible.Box.Translate(shift)
	return r
}

func countKind(events []Event, kind EventKind) int {
	n := 0
	for _, ev := range events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

func TestNewSession_InitialState(t *testing.T) {
	s := newTestSession(t, 1)
	capacity := config.Default().Rooms.Capacity

	assert.Equal(t, capacity, s.Ring().Capacity())
	assert.Equal(t, capacity*(rooms.DoorCount+2)+1, s.Scene().Len())
	assert.InDelta(t, 0.14, s.Sphere().Radius, 1e-9)
	assert.InDelta(t, 4.0, s.Actor().Position().Z, 1e-9)
	assert.False(t, s.Game().Started)
}

func TestTick_BeforeStartDoesNothing(t *testing.T) {
	s := newTestSession(t, 1)
	assert.Nil(t, s.Tick(frame))
	assert.InDelta(t, 4.0, s.Actor().Position().Z, 1e-9)
	assert.Zero(t, s.Ticks())
}

func TestTick_SphereFollowsActor(t *testing.T) {
	s := newTestSession(t, 1)
	require.NoError(t, s.Start())

	s.MoveRight()
	for i := 0; i < 5; i++ {
		s.Tick(frame)
	}
	body := s.Actor().Rig().Body
	assert.True(t, s.Sphere().Center.ApproxEqual(body.WorldPosition(), 1e-12))
	assert.Less(t, s.Sphere().Center.Z, 4.0)
	assert.Greater(t, s.Sphere().Center.X, 0.0)
}

func TestTick_ActivatesRoomsWithinViewDistance(t *testing.T) {
	s := newTestSession(t, 2)
	require.NoError(t, s.Start())
	s.Tick(frame)

	cfg := config.Default().Gameplay
	horizon := s.Actor().Position().Z - cfg.ViewDistance
	depth := s.Templates().RoomDepth
	for _, r := range s.Ring().Rooms() {
		visible := r.PositionZ+depth >= horizon
		assert.Equal(t, !visible, r.Hidden, "room at z=%.2f", r.PositionZ)
	}
}

func TestTick_ClosedDoorEndsRun(t *testing.T) {
	s := newTestSession(t, 3)
	forceOpen(s, 0, rooms.DoorLeft)
	require.NoError(t, s.Start())

	var crash []Event
	for i := 0; i < 300 && !s.Game().Over; i++ {
		crash = append(crash, s.Tick(frame)...)
	}
	require.True(t, s.Game().Over)
	require.Equal(t, 1, countKind(crash, EventCrash))
	last := crash[len(crash)-1]
	assert.Equal(t, EventCrash, last.Kind)
	assert.Equal(t, rooms.DoorCenter, last.Door)
	assert.Equal(t, 0, last.Slot)

	z := s.Actor().Position().Z
	assert.Nil(t, s.Tick(frame), "no ticks after game over")
	assert.Equal(t, z, s.Actor().Position().Z)
	assert.ErrorIs(t, s.Start(), ErrGameOver)
	assert.NotEmpty(t, s.Game().Messages)
}

func TestTick_OpenDoorIsPassedOnce(t *testing.T) {
	s := newTestSession(t, 4)
	r := forceOpen(s, 0, rooms.DoorCenter)
	r.Collectible.Visible = true
	r.Collectible.Collected = false
	require.NoError(t, s.Start())

	var events []Event
	for s.Actor().Position().Z > -4 {
		events = append(events, s.Tick(frame)...)
		require.False(t, s.Game().Over)
	}

	assert.Equal(t, 1, countKind(events, EventDoorPassed))
	assert.Equal(t, 1, countKind(events, EventCollected))
	assert.True(t, r.Doors[rooms.DoorCenter].Passed)
	assert.True(t, r.Collectible.Collected)
	assert.Equal(t, 1, s.Game().DoorsPassed)
	assert.Equal(t, 1, s.Game().Score)
	assert.InDelta(t, 1+config.Default().Gameplay.SpeedRamp, s.Game().SpeedMultiplier, 1e-9)
	assert.Greater(t, s.Game().Distance, 0.0)
}

func TestAutopilot_LongRunRecyclesWithoutCrashing(t *testing.T) {
	s := newTestSession(t, 5)
	require.NoError(t, s.Start())
	capacity := s.Ring().Capacity()
	nodes := s.Scene().Len()

	var pilot Autopilot
	recycled := 0
	for i := 0; i < 3000; i++ {
		pilot.Steer(s)
		for _, ev := range s.Tick(frame) {
			if ev.Kind == EventRecycled {
				recycled++
				assert.GreaterOrEqual(t, ev.Serial, capacity)
			}
		}
		require.False(t, s.Game().Over, "crashed at tick %d z=%.2f", i, s.Actor().Position().Z)
		require.Equal(t, nodes, s.Scene().Len(), "scene grew at tick %d", i)
	}

	assert.Greater(t, recycled, capacity)
	assert.Equal(t, recycled, s.Game().Recycled)
	assert.Greater(t, s.Game().DoorsPassed, recycled)
	for _, r := range s.Ring().Rooms() {
		assert.Equal(t, 1, r.OpenDoorCount())
	}

	oldest := s.Ring().Oldest()
	assert.GreaterOrEqual(t, s.Actor().Position().Z, oldest.PositionZ-s.Templates().RoomDepth)
}

func TestAutopilot_JumpingStillPassesDoors(t *testing.T) {
	s := newTestSession(t, 6)
	require.NoError(t, s.Start())

	pilot := Autopilot{JumpEvery: 45}
	for i := 0; i < 900; i++ {
		pilot.Steer(s)
		s.Tick(frame)
		require.False(t, s.Game().Over, "crashed at tick %d", i)
	}
	assert.Greater(t, s.Game().DoorsPassed, 3)
}

func placeActor(s *Session, z float64) {
	s.actor.z = z
	s.actor.apply(0)
}

func TestAutopilot_HoldsLaneAcrossDoorWall(t *testing.T) {
	s := newTestSession(t, 5)
	r := forceOpen(s, 0, rooms.DoorLeft)
	box := r.Doors[rooms.DoorCenter].Box

	placeActor(s, box.Max.Z+0.02)
	assert.True(t, nearDoorWall(s), "inside the wall in front of the door origin")
	placeActor(s, box.Min.Z-0.02)
	assert.True(t, nearDoorWall(s), "just beyond the wall")
	placeActor(s, box.Max.Z+doorClearance+0.1)
	assert.False(t, nearDoorWall(s))
	placeActor(s, box.Min.Z-doorClearance-0.1)
	assert.False(t, nearDoorWall(s))
}

func TestNextDoor_KeepsPassedDoorUntilCleared(t *testing.T) {
	s := newTestSession(t, 5)
	require.NoError(t, s.Start())
	s.Tick(frame)
	r := forceOpen(s, 0, rooms.DoorLeft)
	left := &r.Doors[rooms.DoorLeft]

	placeActor(s, 4)
	door, ok := NextDoor(s)
	require.True(t, ok)
	assert.Same(t, left, door)

	left.Passed = true
	placeActor(s, left.Box.Max.Z)
	door, ok = NextDoor(s)
	require.True(t, ok)
	assert.Same(t, left, door, "a passed door is still the target while the actor is inside it")

	placeActor(s, left.Box.Min.Z-0.01)
	door, ok = NextDoor(s)
	require.True(t, ok)
	assert.NotSame(t, left, door)
	assert.Less(t, door.Box.Max.Z, left.Box.Min.Z)
}

func TestAutopilot_SeedsRunWithoutCrashing(t *testing.T) {
	for seed := int64(1); seed <= 8; seed++ {
		s := newTestSession(t, seed)
		require.NoError(t, s.Start())

		var pilot Autopilot
		for i := 0; i < 900; i++ {
			pilot.Steer(s)
			for _, ev := range s.Tick(frame) {
				require.NotEqual(t, EventCrash, ev.Kind, "seed %d crashed at tick %d x=%.3f z=%.3f",
					seed, i, s.Actor().Position().X, s.Actor().Position().Z)
			}
		}
		assert.Greater(t, s.Game().DoorsPassed, 3, "seed %d", seed)
	}
}

func TestRestart_BuildsFreshRun(t *testing.T) {
	s := newTestSession(t, 7)
	forceOpen(s, 0, rooms.DoorRight)
	require.NoError(t, s.Start())
	for i := 0; i < 300 && !s.Game().Over; i++ {
		s.Tick(frame)
	}
	require.True(t, s.Game().Over)

	require.NoError(t, s.Restart())
	assert.True(t, s.Game().Started)
	assert.False(t, s.Game().Over)
	assert.Zero(t, s.Game().Distance)
	assert.InDelta(t, 4.0, s.Actor().Position().Z, 1e-9)
	assert.Equal(t, s.Ring().Capacity()-1, s.Ring().LastIndex())
	assert.Zero(t, s.Ticks())
}

func TestPlaceScenery_SurvivesRestart(t *testing.T) {
	s := newTestSession(t, 8)
	s.PlaceScenery(true)
	props := len(s.Field())
	require.Positive(t, props)

	require.NoError(t, s.Restart())
	assert.Len(t, s.Field(), config.Default().Scatter.Reduced.Count)
	assert.Equal(t, props, s.Snapshot().Props)
}

func TestSnapshot_IsDetached(t *testing.T) {
	s := newTestSession(t, 9)
	require.NoError(t, s.Start())
	s.Tick(frame)

	snap := s.Snapshot()
	require.Len(t, snap.Rooms, s.Ring().Capacity())
	assert.Equal(t, s.Ring().Oldest().Serial, snap.Rooms[0].Serial)
	for _, v := range snap.Rooms {
		assert.GreaterOrEqual(t, v.OpenDoor(), 0)
	}

	s.Game().AddMessage("later")
	assert.NotContains(t, snap.Messages, "later")
}
