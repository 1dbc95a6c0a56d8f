package scene

// Scene is the root container that live nodes are attached to
type Scene struct {
	root *Node
}

// New creates an empty scene
func New() *Scene {
	return &Scene{root: NewNode("scene")}
}

// Root returns the scene's root node
func (s *Scene) Root() *Node {
	return s.root
}

// Attach adds node as a top-level child of the scene
func (s *Scene) Attach(node *Node) {
	s.root.Add(node)
}

// Detach removes a top-level node. Returns false if node was not attached.
func (s *Scene) Detach(node *Node) bool {
	if node == nil {
		return false
	}
	return s.root.Remove(node)
}

// Contains reports whether node is a top-level child of the scene
func (s *Scene) Contains(node *Node) bool {
	return node != nil && node.parent == s.root
}

// Len returns the number of top-level nodes
func (s *Scene) Len() int {
	return len(s.root.children)
}

// Resolve forces world transform propagation for node's subtree
func (s *Scene) Resolve(node *Node) {
	if node == nil {
		return
	}
	node.UpdateWorld()
}

// ResolveAll forces world transform propagation for the whole scene
func (s *Scene) ResolveAll() {
	s.root.UpdateWorld()
}
