// Package scene is a minimal transform hierarchy. Child transforms are parent
// relative; world-space values are only current after UpdateWorld has run on an
// ancestor, so callers must resolve before reading them.
package scene

import (
	"mouserun/pkg/engine/geom"
)

// Node is one element of the scene graph
type Node struct {
	Name     string
	Position geom.Vec3
	Rotation geom.Euler
	Scale    geom.Vec3
	Visible  bool

	// Bounds is the local extent of the node's own geometry. Empty for pure groups.
	Bounds geom.Box3

	parent   *Node
	children []*Node
	world    geom.Mat4
}

// NewNode creates a visible node with unit scale and no geometry
func NewNode(name string) *Node {
	return &Node{
		Name:    name,
		Scale:   geom.One,
		Visible: true,
		Bounds:  geom.EmptyBox(),
		world:   geom.Identity(),
	}
}

// NewMesh creates a visible node whose geometry occupies bounds
func NewMesh(name string, bounds geom.Box3) *Node {
	n := NewNode(name)
	n.Bounds = bounds
	return n
}

// Parent returns the node's parent, or nil for a root
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the node's direct children. The slice must not be modified.
func (n *Node) Children() []*Node {
	return n.children
}

// Add attaches child to n, detaching it from any previous parent first
func (n *Node) Add(child *Node) {
	if child == nil || child == n {
		return
	}
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// Remove detaches child from n. Returns false if child was not a direct child of n.
func (n *Node) Remove(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// SetVisible sets visibility on n and every descendant
func (n *Node) SetVisible(visible bool) {
	n.Traverse(func(node *Node) {
		node.Visible = visible
	})
}

// Traverse calls fn for n and every descendant, parents before children
func (n *Node) Traverse(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.Traverse(fn)
	}
}

// FindByName returns the first node named name in n's subtree (depth-first), or nil
func (n *Node) FindByName(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, c := range n.children {
		if found := c.FindByName(name); found != nil {
			return found
		}
	}
	return nil
}

// Clone returns a deep copy of n's subtree. The copy has no parent and
// shares no mutable state with the original.
func (n *Node) Clone() *Node {
	c := &Node{
		Name:     n.Name,
		Position: n.Position,
		Rotation: n.Rotation,
		Scale:    n.Scale,
		Visible:  n.Visible,
		Bounds:   n.Bounds.Clone(),
		world:    n.world,
	}
	if len(n.children) > 0 {
		c.children = make([]*Node, 0, len(n.children))
		for _, child := range n.children {
			cc := child.Clone()
			cc.parent = c
			c.children = append(c.children, cc)
		}
	}
	return c
}

// LocalMatrix returns the node's transform relative to its parent
func (n *Node) LocalMatrix() geom.Mat4 {
	return geom.Compose(n.Position, n.Rotation, n.Scale)
}

// UpdateWorld recomputes the world transform of n and its whole subtree,
// composing through n's ancestors.
func (n *Node) UpdateWorld() {
	parentWorld := geom.Identity()
	if n.parent != nil {
		parentWorld = n.parent.resolvedAncestors()
	}
	n.updateWorld(parentWorld)
}

// resolvedAncestors returns a fresh world matrix for n without touching its descendants
func (n *Node) resolvedAncestors() geom.Mat4 {
	if n.parent == nil {
		return n.LocalMatrix()
	}
	return n.parent.resolvedAncestors().Mul(n.LocalMatrix())
}

func (n *Node) updateWorld(parentWorld geom.Mat4) {
	n.world = parentWorld.Mul(n.LocalMatrix())
	for _, c := range n.children {
		c.updateWorld(n.world)
	}
}

// WorldMatrix returns the world transform computed by the last UpdateWorld
func (n *Node) WorldMatrix() geom.Mat4 {
	return n.world
}

// WorldPosition returns the node's origin in world space as of the last UpdateWorld
func (n *Node) WorldPosition() geom.Vec3 {
	return n.world.Translation()
}

// WorldBounds resolves n's subtree and returns the axis-aligned box enclosing
// every descendant's geometry in world space.
func (n *Node) WorldBounds() geom.Box3 {
	n.UpdateWorld()
	box := geom.EmptyBox()
	n.Traverse(func(node *Node) {
		if node.Bounds.IsEmpty() {
			return
		}
		box = box.Union(node.Bounds.Transform(node.world))
	})
	return box
}
