package setup

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mouserun/pkg/engine/scene"
	"mouserun/pkg/game/assets"
	"mouserun/pkg/game/config"
	"mouserun/pkg/logger"
)

func TestReduced(t *testing.T) {
	cfg := config.Default().Scatter
	tests := []struct {
		cols int
		want bool
	}{
		{0, false},
		{60, true},
		{99, true},
		{100, false},
		{200, false},
	}
	for _, tt := range tests {
		if got := Reduced(cfg, tt.cols); got != tt.want {
			t.Errorf("Reduced(%d) = %v, want %v", tt.cols, got, tt.want)
		}
	}
}

func TestSetupLevel_FullTier(t *testing.T) {
	lib, err := assets.LoadDefault(context.Background())
	require.NoError(t, err)
	sc := scene.New()
	cfg := config.Default()

	level := SetupLevel(sc, lib, cfg, rand.New(rand.NewSource(1)), false, logger.Discard())

	assert.Equal(t, 250, level.Profile.Count)
	assert.Len(t, level.Field, 250)
	require.NotNil(t, level.Backdrop)
	assert.InDelta(t, -120, level.Backdrop.Position.Z, 1e-9)
	assert.Equal(t, 251, sc.Len())
	for _, prop := range level.Field {
		assert.Equal(t, "tree-fake", prop.Name)
		d := math.Hypot(prop.Position.X, prop.Position.Z)
		assert.True(t, d >= 10 && d <= 70, "prop at distance %v", d)
	}
	assert.Nil(t, lib.Template(assets.KindProp).Parent(), "template must not be attached")
}

func TestSetupLevel_ReducedTierFromConfig(t *testing.T) {
	lib, err := assets.LoadDefault(context.Background())
	require.NoError(t, err)
	cfg := config.Default()
	cfg.Scatter.Reduced.Count = 12

	level := SetupLevel(scene.New(), lib, cfg, rand.New(rand.NewSource(2)), true, logger.Discard())
	assert.Len(t, level.Field, 12)
	assert.Equal(t, 30.0, level.Profile.MaxRadius)
}
