package rooms

import (
	"math/rand"

	"mouserun/pkg/engine/geom"
	"mouserun/pkg/engine/scene"
	"mouserun/pkg/game/config"
)

// Layout holds the fixed offsets used to place a room's parts
type Layout struct {
	StartZ            float64 // position of the very first room
	OverlapMargin     float64 // consecutive rooms overlap by this much
	DoorXOffset       float64 // lateral offset of the side doors
	DoorY             float64
	SideDoorZOffset   float64
	CenterDoorZOffset float64
	CollectibleY      float64
	CollectibleBehind float64 // distance from the open door towards -Z
	CollectibleChance float64
}

// LayoutFromConfig derives a Layout from the rooms config section
func LayoutFromConfig(c config.RoomsConfig) Layout {
	return Layout{
		StartZ:            c.StartZ,
		OverlapMargin:     c.OverlapMargin,
		DoorXOffset:       c.FloorWidth / 3,
		DoorY:             c.DoorY,
		SideDoorZOffset:   c.SideDoorZOffset,
		CenterDoorZOffset: c.CenterDoorZOffset,
		CollectibleY:      c.CollectibleY,
		CollectibleBehind: c.CollectibleBehind,
		CollectibleChance: c.CollectibleChance,
	}
}

// DefaultLayout is the layout of the default config
func DefaultLayout() Layout {
	return LayoutFromConfig(config.Default().Rooms)
}

// Factory builds rooms from templates
type Factory struct {
	rng    *rand.Rand
	scene  *scene.Scene
	layout Layout
}

// NewFactory creates a factory drawing from rng and attaching rooms to sc
func NewFactory(rng *rand.Rand, sc *scene.Scene, layout Layout) *Factory {
	return &Factory{rng: rng, scene: sc, layout: layout}
}

// Layout returns the factory's layout
func (f *Factory) Layout() Layout {
	return f.layout
}

// NextPosition returns where a room following one at lastZ goes.
// The first room of a session sits at the start offset.
func (f *Factory) NextPosition(tpl *Templates, lastZ float64, first bool) float64 {
	if first {
		return f.layout.StartZ
	}
	return lastZ - tpl.RoomDepth + f.layout.OverlapMargin
}

// doorOffsets returns the door origins relative to a room at z
func (f *Factory) doorOffsets(z float64) [DoorCount]geom.Vec3 {
	l := f.layout
	return [DoorCount]geom.Vec3{
		DoorLeft:   geom.V3(-l.DoorXOffset, l.DoorY, z+l.SideDoorZOffset),
		DoorCenter: geom.V3(0, l.DoorY, z+l.CenterDoorZOffset),
		DoorRight:  geom.V3(l.DoorXOffset, l.DoorY, z+l.SideDoorZOffset),
	}
}

// Create builds one room, attaches its nodes to the scene and returns it.
// Only index 0 of a fresh session starts visible.
func (f *Factory) Create(index int, tpl *Templates, lastZ float64, first bool) Room {
	z := f.NextPosition(tpl, lastZ, first)
	visible := index == 0 && first

	room := Room{
		Shell:     tpl.Shell.Clone(),
		PositionZ: z,
		Hidden:    !visible,
	}
	room.Shell.Position = geom.V3(0, 0, z)
	room.Shell.SetVisible(visible)

	positions := f.doorOffsets(z)
	for i := range room.Doors {
		tplNode, tplBox := tpl.LeftDoor, tpl.LeftDoorBox
		if DoorPosition(i) == DoorRight {
			tplNode, tplBox = tpl.RightDoor, tpl.RightDoorBox
		}
		node := tplNode.Clone()
		node.Position = positions[i]
		node.SetVisible(visible)
		room.Doors[i] = Door{
			Node:     node,
			Position: DoorPosition(i),
			Box:      tplBox.Clone().Translate(positions[i]),
		}
	}

	open := f.rng.Intn(DoorCount)
	room.Doors[open].Open = true

	openPos := positions[open]
	collectiblePos := geom.V3(openPos.X, f.layout.CollectibleY, openPos.Z-f.layout.CollectibleBehind)
	collectible := tpl.Collectible.Clone()
	collectible.Position = collectiblePos
	room.Collectible = Collectible{
		Node:    collectible,
		Box:     tpl.CollectibleBox.Clone().Translate(collectiblePos),
		Visible: f.rng.Float64() < f.layout.CollectibleChance,
	}
	collectible.SetVisible(visible && room.Collectible.Visible)

	for _, n := range room.Nodes() {
		f.scene.Attach(n)
	}
	return room
}
