package scatter

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mouserun/pkg/engine/geom"
	"mouserun/pkg/engine/scene"
	"mouserun/pkg/logger"
)

func newPlacer(seed int64) *Placer {
	return NewPlacer(rand.New(rand.NewSource(seed)), logger.Discard())
}

func assertInAnnulus(t *testing.T, positions []geom.Vec3, prof Profile) {
	t.Helper()
	for i, p := range positions {
		d := math.Hypot(p.X, p.Z)
		assert.GreaterOrEqual(t, d, prof.MinRadius-1e-9, "prop %d too close", i)
		assert.LessOrEqual(t, d, prof.MaxRadius+1e-9, "prop %d too far", i)
		assert.False(t, prof.Exclusion.Contains(p.X, p.Z), "prop %d at (%.2f, %.2f) inside exclusion zone", i, p.X, p.Z)
		assert.Zero(t, p.Y)
	}
}

func TestZone_ContainsIsInclusive(t *testing.T) {
	z := Zone{MinX: -5, MaxX: 5, MinZ: 0, MaxZ: 30}
	tests := []struct {
		x, z float64
		want bool
	}{
		{0, 15, true},
		{-5, 0, true},
		{5, 30, true},
		{5.0001, 10, false},
		{0, -0.0001, false},
		{0, 30.0001, false},
	}
	for _, tt := range tests {
		if got := z.Contains(tt.x, tt.z); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.z, got, tt.want)
		}
	}
}

func TestDefaultProfiles(t *testing.T) {
	full := FullProfile()
	assert.Equal(t, 250, full.Count)
	assert.Equal(t, 10.0, full.MinRadius)
	assert.Equal(t, 70.0, full.MaxRadius)
	assert.Equal(t, Zone{MinX: -5, MaxX: 5, MinZ: 0, MaxZ: 30}, full.Exclusion)
	assert.Equal(t, 10, full.MaxAttempts)

	reduced := ReducedProfile()
	assert.Equal(t, 50, reduced.Count)
	assert.Equal(t, 30.0, reduced.MaxRadius)
	assert.Equal(t, 10.0, reduced.Exclusion.MaxZ)

	assert.Equal(t, reduced, SelectProfile(true))
	assert.Equal(t, full, SelectProfile(false))
}

func TestScatter_FullTier(t *testing.T) {
	prof := FullProfile()
	positions := newPlacer(1).Scatter(prof)
	require.Len(t, positions, prof.Count)
	assertInAnnulus(t, positions, prof)
}

func TestScatter_ReducedTier(t *testing.T) {
	prof := ReducedProfile()
	positions := newPlacer(2).Scatter(prof)
	require.Len(t, positions, prof.Count)
	assertInAnnulus(t, positions, prof)
}

func TestScatter_ZoneCoveringEverythingSkipsAll(t *testing.T) {
	prof := FullProfile()
	prof.Exclusion = Zone{MinX: -100, MaxX: 100, MinZ: -100, MaxZ: 100}
	assert.Empty(t, newPlacer(3).Scatter(prof))
}

func TestScatter_HalfPlaneZoneSkipsSome(t *testing.T) {
	prof := Profile{
		Count:       2000,
		MinRadius:   10,
		MaxRadius:   20,
		Exclusion:   Zone{MinX: -100, MaxX: 100, MinZ: 0, MaxZ: 100},
		MaxAttempts: 3,
	}
	positions := newPlacer(4).Scatter(prof)

	// each prop fails with probability 1/8
	assert.Less(t, len(positions), prof.Count)
	assert.Greater(t, len(positions), 1600)
	for _, p := range positions {
		assert.Less(t, p.Z, 0.0)
	}
}

func TestScatter_NoAttemptsPlacesNothing(t *testing.T) {
	prof := FullProfile()
	prof.MaxAttempts = 0
	assert.Empty(t, newPlacer(5).Scatter(prof))
}

func TestScatter_SameSeedSameField(t *testing.T) {
	prof := ReducedProfile()
	assert.Equal(t, newPlacer(42).Scatter(prof), newPlacer(42).Scatter(prof))
	assert.NotEqual(t, newPlacer(42).Scatter(prof), newPlacer(43).Scatter(prof))
}

func TestPlaceField_AttachesClones(t *testing.T) {
	sc := scene.New()
	tree := scene.NewNode("tree")
	tree.Add(scene.NewMesh("trunk", geom.BoxFromCenterSize(geom.V3(0, 1, 0), geom.V3(0.4, 2, 0.4))))
	prof := ReducedProfile()

	field := NewPlacer(rand.New(rand.NewSource(6)), nil).PlaceField(sc, tree, prof)
	require.Len(t, field, prof.Count)
	assert.Equal(t, prof.Count, sc.Len())
	assert.Nil(t, tree.Parent(), "template must stay detached")
	assert.Equal(t, geom.Vec3{}, tree.Position)

	for _, prop := range field {
		assert.True(t, sc.Contains(prop))
		assert.NotSame(t, tree, prop)
		assert.Len(t, prop.Children(), 1)
	}
	assertInAnnulus(t, []geom.Vec3{field[0].Position}, prof)
}

func TestPlaceField_NilTemplate(t *testing.T) {
	sc := scene.New()
	assert.Nil(t, newPlacer(7).PlaceField(sc, nil, FullProfile()))
	assert.Zero(t, sc.Len())
}
