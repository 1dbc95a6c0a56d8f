// Package setup dresses a level with the static scenery around the room track.
package setup

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"mouserun/pkg/engine/scene"
	"mouserun/pkg/game/assets"
	"mouserun/pkg/game/config"
	"mouserun/pkg/game/scatter"
)

// Level holds what SetupLevel attached to the scene
type Level struct {
	Profile scatter.Profile
	Field   []*scene.Node
	// Backdrop is nil when the manifest has no castle
	Backdrop *scene.Node
}

// Reduced reports whether a viewport cols wide should use the sparse tier
func Reduced(cfg config.ScatterConfig, cols int) bool {
	return cols > 0 && cols < cfg.ReducedBelowCols
}

// ProfileFor returns the configured scatter tier
func ProfileFor(cfg config.ScatterConfig, reduced bool) scatter.Profile {
	if reduced {
		return scatter.ProfileFromConfig(cfg.Reduced)
	}
	return scatter.ProfileFromConfig(cfg.Full)
}

// SetupLevel scatters prop clones around the origin and places the backdrop
func SetupLevel(sc *scene.Scene, lib *assets.Library, cfg config.Config, rng *rand.Rand, reduced bool, log *logrus.Entry) *Level {
	level := &Level{Profile: ProfileFor(cfg.Scatter, reduced)}

	placer := scatter.NewPlacer(rng, log)
	level.Field = placer.PlaceField(sc, lib.Template(assets.KindProp), level.Profile)

	if castle, err := lib.Instance(assets.KindCastle); err == nil {
		sc.Attach(castle)
		level.Backdrop = castle
	}
	return level
}
