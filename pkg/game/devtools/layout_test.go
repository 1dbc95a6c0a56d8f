package devtools

import (
	"bytes"
	"context"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mouserun/pkg/engine/geom"
	"mouserun/pkg/engine/scene"
	"mouserun/pkg/game/assets"
	"mouserun/pkg/game/config"
	"mouserun/pkg/game/gameplay"
	"mouserun/pkg/logger"
)

func TestStats(t *testing.T) {
	assert.Equal(t, FieldStats{}, Stats(nil))

	a, b := scene.NewNode("a"), scene.NewNode("b")
	a.Position = geom.V3(3, 0, -4)
	b.Position = geom.V3(0, 0, 10)
	st := Stats([]*scene.Node{a, b})
	assert.Equal(t, 2, st.Count)
	assert.InDelta(t, 5, st.MinDist, 1e-9)
	assert.InDelta(t, 10, st.MaxDist, 1e-9)
	assert.InDelta(t, -4, st.MinZ, 1e-9)
	assert.InDelta(t, 10, st.MaxZ, 1e-9)
}

func TestDumpLayout(t *testing.T) {
	cfg := config.Default()
	lib, err := assets.LoadDefault(context.Background())
	require.NoError(t, err)
	s, err := gameplay.NewSession(cfg, lib, rand.New(rand.NewSource(3)), logger.Discard())
	require.NoError(t, err)
	s.PlaceScenery(true)

	var buf bytes.Buffer
	require.NoError(t, DumpLayout(&buf, s.Snapshot(), s.Field()))
	out := buf.String()

	assert.Contains(t, out, "--- Rooms (oldest first) ---")
	assert.Equal(t, cfg.Rooms.Capacity, strings.Count(out, "  slot: "))
	assert.Contains(t, out, "slot: 0 serial: 0 z: -3.00 hidden: false")
	assert.Contains(t, out, "count: 50")
	assert.Contains(t, out, "started: false")
	assert.Contains(t, out, "@")
}
