// Package renderer defines the rendering backend interface and the top-down
// lane map that every backend draws from.
package renderer

import (
	"math"
	"regexp"
	"strings"

	"mouserun/pkg/game/gameplay"
	"mouserun/pkg/game/rooms"
)

// Icons used on the lane map
const (
	IconActor       = '@'
	IconActorAir    = '^'
	IconWall        = '│'
	IconFloor       = '·'
	IconDoorClosed  = '█'
	IconDoorOpen    = ' '
	IconDoorPassed  = '░'
	IconLintel      = '▀'
	IconCollectible = '✦'
	IconVoid        = ' '
)

// Lane map geometry
const (
	MapCols      = 17   // two walls plus fifteen floor columns
	MetresPerRow = 0.5  // travel-axis distance covered by one row
	RowsBehind   = 2    // rows drawn behind the actor
	floorHalf    = 1.25 // half the room floor width
	doorHalf     = 0.35 // half a door panel width
)

// Cell is one glyph of the lane map
type Cell struct {
	Glyph rune
	Style TextStyle
}

// ActorRow returns the map row the actor is drawn on
func ActorRow(rows int) int {
	return rows - 1 - RowsBehind
}

// rowZ returns the travel-axis position at the centre of row
func rowZ(snap gameplay.Snapshot, rows, row int) float64 {
	return snap.Actor.Z - float64(ActorRow(rows)-row)*MetresPerRow
}

// Column returns the map column for lateral position x
func Column(x float64) int {
	inner := MapCols - 2
	col := 1 + int(math.Floor((x+floorHalf)/(2*floorHalf)*float64(inner)))
	return min(max(col, 1), inner)
}

// LaneMap lays out a rows-high top-down view of the track around the actor.
// Row 0 is the farthest ahead.
func LaneMap(snap gameplay.Snapshot, rows int) [][]Cell {
	grid := make([][]Cell, rows)
	for r := range grid {
		grid[r] = make([]Cell, MapCols)
		z := rowZ(snap, rows, r)
		room := roomAt(snap.Rooms, z)
		if room == nil {
			for c := range grid[r] {
				grid[r][c] = Cell{Glyph: IconVoid, Style: StyleNormal}
			}
			continue
		}
		fillRoomRow(grid[r], room, z)
	}

	for r := range grid {
		z := rowZ(snap, rows, r)
		for i := range snap.Rooms {
			v := &snap.Rooms[i]
			if v.Hidden || !v.Collectible {
				continue
			}
			if math.Abs(v.CollectZ-z) <= MetresPerRow/2 {
				grid[r][Column(v.CollectX)] = Cell{Glyph: IconCollectible, Style: StyleCollectible}
			}
		}
	}

	if row := ActorRow(rows); row >= 0 && row < rows {
		glyph := IconActor
		if snap.Jumping {
			glyph = IconActorAir
		}
		style := StyleActor
		if snap.Over {
			style = StyleDanger
		}
		grid[row][Column(snap.Actor.X)] = Cell{Glyph: glyph, Style: style}
	}
	return grid
}

// roomAt returns the visible room whose extent contains z
func roomAt(views []gameplay.RoomView, z float64) *gameplay.RoomView {
	for i := range views {
		v := &views[i]
		if !v.Hidden && z >= v.Z-MetresPerRow/2 && z <= v.Z+v.Depth {
			return v
		}
	}
	return nil
}

func fillRoomRow(row []Cell, room *gameplay.RoomView, z float64) {
	row[0] = Cell{Glyph: IconWall, Style: StyleWall}
	row[len(row)-1] = Cell{Glyph: IconWall, Style: StyleWall}

	doorWall := math.Abs(z-room.Doors[rooms.DoorLeft].Z) <= MetresPerRow/2
	for c := 1; c < len(row)-1; c++ {
		if doorWall {
			row[c] = Cell{Glyph: IconLintel, Style: StyleWall}
		} else {
			row[c] = Cell{Glyph: IconFloor, Style: StyleFloor}
		}
	}
	if !doorWall {
		return
	}
	for _, d := range room.Doors {
		cell := Cell{Glyph: IconDoorClosed, Style: StyleDoorClosed}
		switch {
		case d.Open && d.Passed:
			cell = Cell{Glyph: IconDoorPassed, Style: StyleDoorPassed}
		case d.Open:
			cell = Cell{Glyph: IconDoorOpen, Style: StyleDoorOpen}
		}
		for c := Column(d.X - doorHalf + 0.01); c <= Column(d.X+doorHalf-0.01); c++ {
			row[c] = cell
		}
	}
}

// String renders the map without styling
func String(grid [][]Cell) string {
	var b strings.Builder
	for _, row := range grid {
		for _, c := range row {
			b.WriteRune(c.Glyph)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// markupPattern matches FUNC{operand} markup in status and message text
var markupPattern = regexp.MustCompile(`([A-Z_]*){([a-z A-Z0-9_,.:%\-]+)}`)

// ApplyMarkup replaces FUNC{operand} markup using style. Unknown functions are
// left with their operand only.
func ApplyMarkup(msg string, style func(fn, operand string) string) string {
	return markupPattern.ReplaceAllStringFunc(msg, func(m string) string {
		parts := markupPattern.FindStringSubmatch(m)
		return style(parts[1], parts[2])
	})
}

// StripMarkup removes markup, keeping operands
func StripMarkup(msg string) string {
	return ApplyMarkup(msg, func(_, operand string) string { return operand })
}
