// Package assets turns a template manifest into immutable scene-node templates.
// Consumers must Clone a template before attaching or mutating it.
package assets

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"mouserun/pkg/engine/geom"
	"mouserun/pkg/engine/scene"
)

//go:embed default.yaml
var defaultManifest []byte

// DefaultManifest returns the built-in template manifest
func DefaultManifest() []byte {
	return defaultManifest
}

// Kind names a template slot in the manifest
type Kind string

// Template kinds
const (
	KindRoom        Kind = "room"
	KindDoorLeft    Kind = "door_left"
	KindDoorRight   Kind = "door_right"
	KindCollectible Kind = "collectible"
	KindProp        Kind = "prop"
	KindActor       Kind = "actor"
	KindCastle      Kind = "castle"
)

// RequiredKinds are the templates a session cannot start without
var RequiredKinds = []Kind{KindRoom, KindDoorLeft, KindDoorRight, KindCollectible, KindProp, KindActor}

// Manifest is the YAML document describing every template
type Manifest struct {
	Templates map[Kind]NodeSpec `yaml:"templates"`
}

// NodeSpec describes one node and its subtree
type NodeSpec struct {
	Name     string      `yaml:"name"`
	Position [3]float64  `yaml:"position"`
	Rotation [3]float64  `yaml:"rotation"`
	Scale    *[3]float64 `yaml:"scale"`
	Hidden   bool        `yaml:"hidden"`
	Bounds   *BoundsSpec `yaml:"bounds"`
	Children []NodeSpec  `yaml:"children"`
}

// BoundsSpec is a local axis-aligned box
type BoundsSpec struct {
	Min [3]float64 `yaml:"min"`
	Max [3]float64 `yaml:"max"`
}

// ParseManifest decodes a manifest document
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if len(m.Templates) == 0 {
		return nil, fmt.Errorf("parsing manifest: %w", ErrEmptyManifest)
	}
	return &m, nil
}

func vec(a [3]float64) geom.Vec3 {
	return geom.V3(a[0], a[1], a[2])
}

// Build creates the node tree described by spec
func (spec NodeSpec) Build() (*scene.Node, error) {
	if spec.Name == "" {
		return nil, ErrUnnamedNode
	}

	n := scene.NewNode(spec.Name)
	n.Position = vec(spec.Position)
	n.Rotation = geom.Euler{X: spec.Rotation[0], Y: spec.Rotation[1], Z: spec.Rotation[2]}
	if spec.Scale != nil {
		n.Scale = vec(*spec.Scale)
	}
	n.Visible = !spec.Hidden

	if spec.Bounds != nil {
		b := geom.Box3{Min: vec(spec.Bounds.Min), Max: vec(spec.Bounds.Max)}
		if b.IsEmpty() {
			return nil, fmt.Errorf("node %q: %w", spec.Name, ErrInvertedBounds)
		}
		n.Bounds = b
	}

	for _, childSpec := range spec.Children {
		child, err := childSpec.Build()
		if err != nil {
			return nil, fmt.Errorf("under %q: %w", spec.Name, err)
		}
		n.Add(child)
	}
	return n, nil
}
