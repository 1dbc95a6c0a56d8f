package assets

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"mouserun/pkg/engine/scene"
)

// Errors returned while loading templates
var (
	ErrEmptyManifest   = errors.New("manifest has no templates")
	ErrMissingTemplate = errors.New("required template missing")
	ErrMissingNode     = errors.New("required sub-node missing")
	ErrUnnamedNode     = errors.New("node has no name")
	ErrInvertedBounds  = errors.New("bounds min exceeds max")
)

// Actor rig sub-node names
const (
	NodeBody          = "body"
	NodeTail          = "tail"
	NodeLeftRearFoot  = "left-rear-foot"
	NodeRightRearFoot = "right-rear-foot"
)

// ProgressFunc is told each time a template finishes building
type ProgressFunc func(kind Kind, done, total int)

// Library holds the loaded templates. Templates are never attached to a scene.
type Library struct {
	templates map[Kind]*scene.Node
}

// Load builds every template in the manifest concurrently.
// Fails if any required kind is absent or any node is malformed.
func Load(ctx context.Context, data []byte, progress ProgressFunc) (*Library, error) {
	m, err := ParseManifest(data)
	if err != nil {
		return nil, err
	}
	for _, kind := range RequiredKinds {
		if _, ok := m.Templates[kind]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingTemplate, kind)
		}
	}

	lib := &Library{templates: make(map[Kind]*scene.Node, len(m.Templates))}
	var mu sync.Mutex
	done := 0
	total := len(m.Templates)

	g, ctx := errgroup.WithContext(ctx)
	for kind, spec := range m.Templates {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			node, err := spec.Build()
			if err != nil {
				return fmt.Errorf("template %s: %w", kind, err)
			}
			node.UpdateWorld()

			mu.Lock()
			lib.templates[kind] = node
			done++
			n := done
			mu.Unlock()

			if progress != nil {
				progress(kind, n, total)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return lib, nil
}

// LoadDefault loads the built-in manifest
func LoadDefault(ctx context.Context) (*Library, error) {
	return Load(ctx, DefaultManifest(), nil)
}

// Template returns the shared template for kind, or nil if it was not loaded
func (l *Library) Template(kind Kind) *scene.Node {
	return l.templates[kind]
}

// Has reports whether kind was loaded
func (l *Library) Has(kind Kind) bool {
	_, ok := l.templates[kind]
	return ok
}

// Instance returns a fresh deep copy of the template for kind
func (l *Library) Instance(kind Kind) (*scene.Node, error) {
	tpl, ok := l.templates[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingTemplate, kind)
	}
	return tpl.Clone(), nil
}

// ActorRig is an actor instance with its named sub-nodes resolved
type ActorRig struct {
	Root          *scene.Node
	Body          *scene.Node
	Tail          *scene.Node
	LeftRearFoot  *scene.Node
	RightRearFoot *scene.Node
}

// Actor clones the actor template and resolves the sub-nodes used for the
// collision sphere and limb animation.
func (l *Library) Actor() (ActorRig, error) {
	root, err := l.Instance(KindActor)
	if err != nil {
		return ActorRig{}, err
	}
	rig := ActorRig{Root: root}

	parts := []struct {
		name string
		dst  **scene.Node
	}{
		{NodeBody, &rig.Body},
		{NodeTail, &rig.Tail},
		{NodeLeftRearFoot, &rig.LeftRearFoot},
		{NodeRightRearFoot, &rig.RightRearFoot},
	}
	for _, p := range parts {
		node := root.FindByName(p.name)
		if node == nil {
			return ActorRig{}, fmt.Errorf("actor %q: %w: %s", root.Name, ErrMissingNode, p.name)
		}
		*p.dst = node
	}
	return rig, nil
}
