package renderer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mouserun/pkg/engine/geom"
	"mouserun/pkg/game/gameplay"
	"mouserun/pkg/game/rooms"
)

func testSnapshot(openDoor rooms.DoorPosition) gameplay.Snapshot {
	room := gameplay.RoomView{Z: -3, Depth: 7.5}
	xs := [rooms.DoorCount]float64{-2.5 / 3, 0, 2.5 / 3}
	for i := range room.Doors {
		room.Doors[i] = gameplay.DoorView{X: xs[i], Z: -2.97, Open: rooms.DoorPosition(i) == openDoor}
	}
	return gameplay.Snapshot{
		Actor: geom.V3(0, 0, 4),
		Rooms: []gameplay.RoomView{room},
	}
}

func TestColumn(t *testing.T) {
	assert.Equal(t, 1, Column(-5))
	assert.Equal(t, 8, Column(0))
	assert.Equal(t, MapCols-2, Column(5))
	assert.Less(t, Column(-0.8), Column(0))
	assert.Greater(t, Column(0.8), Column(0))
}

func TestLaneMap_Layout(t *testing.T) {
	const rows = 20
	grid := LaneMap(testSnapshot(rooms.DoorCenter), rows)
	require.Len(t, grid, rows)
	for _, row := range grid {
		require.Len(t, row, MapCols)
	}

	// Beyond the room
	for _, c := range grid[0] {
		assert.Equal(t, IconVoid, c.Glyph)
	}

	// Door wall: row 3 sits at z=-3
	door := grid[3]
	assert.Equal(t, IconWall, door[0].Glyph)
	assert.Equal(t, IconDoorClosed, door[Column(-0.8)].Glyph)
	assert.Equal(t, StyleDoorClosed, door[Column(-0.8)].Style)
	assert.Equal(t, IconDoorOpen, door[Column(0)].Glyph)
	assert.Equal(t, IconDoorClosed, door[Column(0.8)].Glyph)

	// Floor between door wall and actor
	assert.Equal(t, IconFloor, grid[10][Column(0)].Glyph)

	actor := grid[ActorRow(rows)][Column(0)]
	assert.Equal(t, IconActor, actor.Glyph)
	assert.Equal(t, StyleActor, actor.Style)
}

func TestLaneMap_States(t *testing.T) {
	const rows = 20
	snap := testSnapshot(rooms.DoorLeft)
	snap.Rooms[0].Doors[rooms.DoorLeft].Passed = true
	snap.Rooms[0].Collectible = true
	snap.Rooms[0].CollectX = 0
	snap.Rooms[0].CollectZ = -1
	snap.Actor.X = 0.8
	snap.Jumping = true

	grid := LaneMap(snap, rows)
	assert.Equal(t, IconDoorPassed, grid[3][Column(-0.8)].Glyph)
	assert.Equal(t, IconCollectible, grid[7][Column(0)].Glyph)
	assert.Equal(t, IconActorAir, grid[ActorRow(rows)][Column(0.8)].Glyph)

	snap.Over = true
	grid = LaneMap(snap, rows)
	assert.Equal(t, StyleDanger, grid[ActorRow(rows)][Column(0.8)].Style)
}

func TestLaneMap_HiddenRoomIsVoid(t *testing.T) {
	snap := testSnapshot(rooms.DoorCenter)
	snap.Rooms[0].Hidden = true
	out := String(LaneMap(snap, 20))
	assert.NotContains(t, out, string(IconFloor))
	assert.Contains(t, out, string(IconActor))
	assert.Equal(t, 20, strings.Count(out, "\n"))
}

func TestApplyMarkup(t *testing.T) {
	got := ApplyMarkup("GT{SCORE}: SCORE{12} plain", func(fn, operand string) string {
		return "<" + fn + ":" + operand + ">"
	})
	assert.Equal(t, "<GT:SCORE>: <SCORE:12> plain", got)
	assert.Equal(t, "distance 1.5", StripMarkup("distance SCORE{1.5}"))
}
