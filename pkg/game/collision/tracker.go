// Package collision keeps the actor's bounding sphere in world space and
// tests it against the boxes of the rooms currently in play.
package collision

import (
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"mouserun/pkg/engine/geom"
	"mouserun/pkg/engine/scene"
	"mouserun/pkg/game/rooms"
)

// ErrNoCollider is returned when the actor's collider node is missing or has no geometry
var ErrNoCollider = errors.New("actor collider has no geometry")

// sphereFit shrinks the half-extent so grazing contacts do not count
const sphereFit = 0.8

// HitKind says what the sphere touched
type HitKind int

// Hit kinds
const (
	HitDoor HitKind = iota
	HitCollectible
)

func (k HitKind) String() string {
	if k == HitCollectible {
		return "collectible"
	}
	return "door"
}

// Hit is one sphere/box intersection. Serial tells a recycled slot's new
// room apart from the one it replaced.
type Hit struct {
	Slot   int
	Serial int
	Kind   HitKind
	Door int  // door index, or the open door for a collectible
	Open bool // the door is passable
}

// Tracker owns the actor's collision sphere
type Tracker struct {
	log      *logrus.Entry
	touching mapset.Set[Hit]
}

// NewTracker creates a tracker
func NewTracker(log *logrus.Entry) *Tracker {
	return &Tracker{
		log:      log,
		touching: mapset.New[Hit](),
	}
}

// InitializeActorSphere sizes a sphere from the collider's own geometry and
// centres it on the collider's resolved world position
func (t *Tracker) InitializeActorSphere(root, collider *scene.Node) (geom.Sphere, error) {
	if collider == nil || collider.Bounds.IsEmpty() {
		return geom.Sphere{}, ErrNoCollider
	}
	s := geom.Sphere{
		Radius: collider.Bounds.Size().MaxComponent() * 0.5 * sphereFit,
	}
	t.UpdateActorSphere(root, collider, &s)

	t.log.WithFields(logrus.Fields{
		"collider": collider.Name,
		"radius":   s.Radius,
		"center":   s.Center,
	}).Debug("actor sphere initialized")
	return s, nil
}

// UpdateActorSphere resolves the actor's transforms and moves s onto the
// collider. The radius is left alone. A nil collider or sphere is logged and
// leaves s untouched.
func (t *Tracker) UpdateActorSphere(root, collider *scene.Node, s *geom.Sphere) {
	if collider == nil || s == nil {
		t.log.WithFields(logrus.Fields{
			"collider": collider != nil,
			"sphere":   s != nil,
		}).Warn("actor sphere not updated")
		return
	}
	if root != nil {
		root.UpdateWorld()
	} else {
		collider.UpdateWorld()
	}
	s.Center = collider.WorldPosition()
}

// Test returns every visible door and collectible the sphere intersects.
// Hidden rooms are not in play and never collide.
func (t *Tracker) Test(rs []rooms.Room, s geom.Sphere) []Hit {
	var hits []Hit
	for i := range rs {
		r := &rs[i]
		if r.IsZero() || r.Hidden {
			continue
		}
		for d := range r.Doors {
			if s.IntersectsBox(r.Doors[d].Box) {
				hits = append(hits, Hit{Slot: r.Slot, Serial: r.Serial, Kind: HitDoor, Door: d, Open: r.Doors[d].Open})
			}
		}
		if r.Collectible.Available() && s.IntersectsBox(r.Collectible.Box) {
			hits = append(hits, Hit{Slot: r.Slot, Serial: r.Serial, Kind: HitCollectible, Door: r.OpenDoor(), Open: true})
		}
	}
	return hits
}

// Contacts filters hits down to those that were not already touching on the
// previous call, and remembers the current set for next time
func (t *Tracker) Contacts(hits []Hit) []Hit {
	current := mapset.New[Hit]()
	var fresh []Hit
	for _, h := range hits {
		if current.Has(h) {
			continue
		}
		current.Put(h)
		if !t.touching.Has(h) {
			fresh = append(fresh, h)
		}
	}
	t.touching = current
	return fresh
}

// Reset forgets remembered contacts
func (t *Tracker) Reset() {
	t.touching = mapset.New[Hit]()
}
