// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"mouserun/pkg/engine/scene"
	"mouserun/pkg/game/gameplay"
	"mouserun/pkg/game/renderer"
	"mouserun/pkg/game/rooms"
)

const layoutDumpFilename = "layout.txt"

// mapRows is the height of the lane map section
const mapRows = 40

// FieldStats summarises the decorative prop field
type FieldStats struct {
	Count   int
	MinDist float64
	MaxDist float64
	MinZ    float64
	MaxZ    float64
}

// Stats computes the radial and travel-axis extent of the field
func Stats(field []*scene.Node) FieldStats {
	st := FieldStats{Count: len(field)}
	if len(field) == 0 {
		return st
	}
	st.MinDist, st.MinZ = math.Inf(1), math.Inf(1)
	st.MaxDist, st.MaxZ = math.Inf(-1), math.Inf(-1)
	for _, n := range field {
		d := math.Hypot(n.Position.X, n.Position.Z)
		st.MinDist = min(st.MinDist, d)
		st.MaxDist = max(st.MaxDist, d)
		st.MinZ = min(st.MinZ, n.Position.Z)
		st.MaxZ = max(st.MaxZ, n.Position.Z)
	}
	return st
}

// doorSymbol returns the one-letter state of a door
func doorSymbol(d gameplay.DoorView) byte {
	switch {
	case d.Open && d.Passed:
		return 'p'
	case d.Open:
		return 'o'
	default:
		return '#'
	}
}

// DumpLayout writes the ring buffer, the run state, field stats and a lane map to w.
// Sections use key: value lines so the dump is easy to diff between seeds.
func DumpLayout(w io.Writer, snap gameplay.Snapshot, field []*scene.Node) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "=== LAYOUT DUMP (room ring, run state, prop field) ===")
	fmt.Fprintln(bw, "")
	fmt.Fprintln(bw, "--- Run ---")
	fmt.Fprintf(bw, "ticks: %d\n", snap.Ticks)
	fmt.Fprintf(bw, "started: %v\n", snap.Started)
	fmt.Fprintf(bw, "over: %v\n", snap.Over)
	fmt.Fprintf(bw, "actor: %.3f,%.3f,%.3f\n", snap.Actor.X, snap.Actor.Y, snap.Actor.Z)
	fmt.Fprintf(bw, "lane: %d\n", snap.Lane)
	fmt.Fprintf(bw, "sphere: center=%.3f,%.3f,%.3f radius=%.3f\n", snap.Sphere.Center.X, snap.Sphere.Center.Y, snap.Sphere.Center.Z, snap.Sphere.Radius)
	fmt.Fprintf(bw, "distance: %.2f\n", snap.Distance)
	fmt.Fprintf(bw, "score: %d\n", snap.Score)
	fmt.Fprintf(bw, "doors_passed: %d\n", snap.Doors)
	fmt.Fprintf(bw, "rooms_recycled: %d\n", snap.Recycled)
	fmt.Fprintf(bw, "speed: %.3f (x%.2f)\n", snap.Speed, snap.Factor)
	fmt.Fprintln(bw, "")

	fmt.Fprintln(bw, "--- Legend (doors) ---")
	fmt.Fprintln(bw, "# = closed  o = open  p = open and passed  L C R = left center right")
	fmt.Fprintln(bw, "")

	fmt.Fprintln(bw, "--- Rooms (oldest first) ---")
	for _, v := range snap.Rooms {
		open := "none"
		if i := v.OpenDoor(); i >= 0 {
			open = rooms.DoorPosition(i).String()
		}
		fmt.Fprintf(bw, "  slot: %d serial: %d z: %.2f hidden: %v doors: L%c C%c R%c open: %s",
			v.Slot, v.Serial, v.Z, v.Hidden,
			doorSymbol(v.Doors[rooms.DoorLeft]), doorSymbol(v.Doors[rooms.DoorCenter]), doorSymbol(v.Doors[rooms.DoorRight]),
			open)
		if v.Collectible {
			fmt.Fprintf(bw, " collectible: %.2f,%.2f", v.CollectX, v.CollectZ)
		}
		fmt.Fprintln(bw)
	}
	fmt.Fprintln(bw, "")

	st := Stats(field)
	fmt.Fprintln(bw, "--- Prop field ---")
	fmt.Fprintf(bw, "count: %d\n", st.Count)
	if st.Count > 0 {
		fmt.Fprintf(bw, "radius: %.2f..%.2f\n", st.MinDist, st.MaxDist)
		fmt.Fprintf(bw, "z: %.2f..%.2f\n", st.MinZ, st.MaxZ)
	}
	fmt.Fprintln(bw, "")

	fmt.Fprintln(bw, "--- Lane map (row 0 farthest ahead) ---")
	fmt.Fprint(bw, renderer.String(renderer.LaneMap(snap, mapRows)))

	return bw.Flush()
}

// DumpLayoutToFile writes the layout dump to layout.txt in the working directory
// and returns its absolute path.
func DumpLayoutToFile(snap gameplay.Snapshot, field []*scene.Node) (string, error) {
	absPath, err := filepath.Abs(layoutDumpFilename)
	if err != nil {
		return "", err
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := DumpLayout(f, snap, field); err != nil {
		return "", err
	}
	return absPath, nil
}
