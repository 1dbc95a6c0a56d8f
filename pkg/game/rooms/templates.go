package rooms

import (
	"errors"
	"fmt"

	"mouserun/pkg/engine/geom"
	"mouserun/pkg/engine/scene"
	"mouserun/pkg/game/assets"
)

// ErrDegenerateShell is returned when the room shell has no depth
var ErrDegenerateShell = errors.New("room shell has no depth")

// Templates are the shared, never-mutated inputs the factory clones from
type Templates struct {
	Shell       *scene.Node
	LeftDoor    *scene.Node
	RightDoor   *scene.Node
	Collectible *scene.Node

	LeftDoorBox    geom.Box3
	RightDoorBox   geom.Box3
	CollectibleBox geom.Box3

	// RoomDepth is the shell's extent along the travel axis
	RoomDepth float64
}

// NewTemplates measures the library's room, door and collectible templates
func NewTemplates(lib *assets.Library) (*Templates, error) {
	kinds := []assets.Kind{assets.KindRoom, assets.KindDoorLeft, assets.KindDoorRight, assets.KindCollectible}
	nodes := make([]*scene.Node, len(kinds))
	for i, kind := range kinds {
		nodes[i] = lib.Template(kind)
		if nodes[i] == nil {
			return nil, fmt.Errorf("%w: %s", assets.ErrMissingTemplate, kind)
		}
	}

	t := &Templates{
		Shell:       nodes[0],
		LeftDoor:    nodes[1],
		RightDoor:   nodes[2],
		Collectible: nodes[3],
	}
	// measure copies so the shared templates keep their cached transforms
	t.RoomDepth = t.Shell.Clone().WorldBounds().Size().Z
	t.LeftDoorBox = t.LeftDoor.Clone().WorldBounds()
	t.RightDoorBox = t.RightDoor.Clone().WorldBounds()
	t.CollectibleBox = t.Collectible.Clone().WorldBounds()

	if t.RoomDepth <= 0 {
		return nil, ErrDegenerateShell
	}
	return t, nil
}
