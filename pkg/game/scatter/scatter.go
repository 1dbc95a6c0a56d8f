// Package scatter places decorative props around the level origin by
// rejection sampling in an annulus, keeping a rectangular zone clear.
package scatter

import (
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"

	"mouserun/pkg/engine/geom"
	"mouserun/pkg/engine/scene"
	"mouserun/pkg/game/config"
)

// Zone is an axis-aligned rectangle on the ground plane. Bounds are inclusive.
type Zone struct {
	MinX, MaxX float64
	MinZ, MaxZ float64
}

// Contains reports whether (x, z) lies inside the zone, edges included
func (r Zone) Contains(x, z float64) bool {
	return x >= r.MinX && x <= r.MaxX && z >= r.MinZ && z <= r.MaxZ
}

// Profile is one density tier
type Profile struct {
	Count       int
	MinRadius   float64
	MaxRadius   float64
	Exclusion   Zone
	MaxAttempts int
}

// ProfileFromConfig converts a config tier
func ProfileFromConfig(c config.ScatterProfile) Profile {
	return Profile{
		Count:     c.Count,
		MinRadius: c.MinRadius,
		MaxRadius: c.MaxRadius,
		Exclusion: Zone{
			MinX: c.ExcludeMinX,
			MaxX: c.ExcludeMaxX,
			MinZ: c.ExcludeMinZ,
			MaxZ: c.ExcludeMaxZ,
		},
		MaxAttempts: c.MaxAttempts,
	}
}

// FullProfile is the dense tier used on large viewports
func FullProfile() Profile {
	return ProfileFromConfig(config.Default().Scatter.Full)
}

// ReducedProfile is the sparse tier used on small viewports
func ReducedProfile() Profile {
	return ProfileFromConfig(config.Default().Scatter.Reduced)
}

// SelectProfile picks a default tier
func SelectProfile(reduced bool) Profile {
	if reduced {
		return ReducedProfile()
	}
	return FullProfile()
}

// Placer draws prop positions from an injected random source
type Placer struct {
	rng *rand.Rand
	log *logrus.Entry
}

// NewPlacer creates a placer. log may be nil.
func NewPlacer(rng *rand.Rand, log *logrus.Entry) *Placer {
	return &Placer{rng: rng, log: log}
}

// draw returns one candidate on the annulus
func (p *Placer) draw(prof Profile) (float64, float64) {
	angle := p.rng.Float64() * 2 * math.Pi
	dist := prof.MinRadius + p.rng.Float64()*(prof.MaxRadius-prof.MinRadius)
	return math.Cos(angle) * dist, math.Sin(angle) * dist
}

// Scatter returns up to prof.Count ground positions. A prop whose MaxAttempts
// draws all land in the exclusion zone is skipped.
func (p *Placer) Scatter(prof Profile) []geom.Vec3 {
	positions := make([]geom.Vec3, 0, prof.Count)
	skipped := 0

	for i := 0; i < prof.Count; i++ {
		placed := false
		for attempt := 0; attempt < prof.MaxAttempts; attempt++ {
			x, z := p.draw(prof)
			if prof.Exclusion.Contains(x, z) {
				continue
			}
			positions = append(positions, geom.V3(x, 0, z))
			placed = true
			break
		}
		if !placed {
			skipped++
		}
	}

	if skipped > 0 && p.log != nil {
		p.log.WithFields(logrus.Fields{
			"requested": prof.Count,
			"skipped":   skipped,
		}).Debug("scatter attempts exhausted")
	}
	return positions
}

// PlaceField clones template at every scattered position and attaches the
// clones to sc
func (p *Placer) PlaceField(sc *scene.Scene, template *scene.Node, prof Profile) []*scene.Node {
	if template == nil {
		return nil
	}
	positions := p.Scatter(prof)
	field := make([]*scene.Node, 0, len(positions))
	for _, pos := range positions {
		prop := template.Clone()
		prop.Position = pos
		sc.Attach(prop)
		field = append(field, prop)
	}
	return field
}
