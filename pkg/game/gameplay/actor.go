// Package gameplay drives a run: it moves the actor, keeps its collision
// sphere current, resolves hits against the rooms in play and decides when
// rooms are shown and recycled.
package gameplay

import (
	"math"

	"github.com/zyedidia/generic"

	"mouserun/pkg/engine/geom"
	"mouserun/pkg/game/assets"
	"mouserun/pkg/game/config"
)

// Lane indices
const (
	LaneLeft   = -1
	LaneCenter = 0
	LaneRight  = 1
)

// Pose amplitudes
const (
	bodyBob    = 0.012
	footSwing  = 0.6
	tailSwing  = 0.25
	strideRate = 9.0 // swing cycles per metre travelled
)

// Actor moves the rig between lanes, along the travel axis and through jumps
type Actor struct {
	rig assets.ActorRig
	cfg config.GameplayConfig

	lane    int
	x       float64
	z       float64
	stride  float64
	bodyY   float64
	jumping bool
	jumpT   float64
	jumpDur float64
}

// NewActor places rig at the start position in the centre lane
func NewActor(rig assets.ActorRig, cfg config.GameplayConfig) *Actor {
	a := &Actor{
		rig:   rig,
		cfg:   cfg,
		z:     cfg.ActorStartZ,
		bodyY: rig.Body.Position.Y,
	}
	a.apply(0)
	return a
}

// Rig returns the animated rig
func (a *Actor) Rig() assets.ActorRig {
	return a.rig
}

// Lane returns the target lane
func (a *Actor) Lane() int {
	return a.lane
}

// Position returns the rig root's local position
func (a *Actor) Position() geom.Vec3 {
	return a.rig.Root.Position
}

// Jumping reports whether a jump is in progress
func (a *Actor) Jumping() bool {
	return a.jumping
}

// Steer moves the target lane by delta, clamped to the outer lanes
func (a *Actor) Steer(delta int) {
	a.lane = generic.Clamp(a.lane+delta, LaneLeft, LaneRight)
}

// Jump starts a jump lasting the configured duration divided by speedFactor.
// Returns false if already airborne.
func (a *Actor) Jump(speedFactor float64) bool {
	if a.jumping {
		return false
	}
	a.jumping = true
	a.jumpT = 0
	a.jumpDur = a.cfg.JumpDuration / generic.Max(speedFactor, 1)
	return true
}

// Advance moves the actor by dt seconds at speed and updates its pose.
// World transforms are left stale.
func (a *Actor) Advance(dt, speed float64) {
	a.z -= dt * speed
	a.stride += dt * speed

	target := float64(a.lane) * a.cfg.LaneOffset
	step := math.Inf(1)
	if a.cfg.LaneChangeTime > 0 {
		step = dt * a.cfg.LaneOffset / a.cfg.LaneChangeTime
	}
	a.x = generic.Clamp(target, a.x-step, a.x+step)

	y := 0.0
	if a.jumping {
		a.jumpT += dt
		t := a.jumpT / a.jumpDur
		if t >= 1 {
			a.jumping = false
		} else {
			y = 4 * a.cfg.JumpHeight * t * (1 - t)
		}
	}
	a.apply(y)
}

// apply writes the current pose onto the rig's nodes
func (a *Actor) apply(y float64) {
	a.rig.Root.Position = geom.V3(a.x, y, a.z)

	phase := a.stride * strideRate
	swing := math.Sin(phase)
	if a.jumping {
		swing = 0
	}
	a.rig.Body.Position.Y = a.bodyY + bodyBob*math.Abs(swing)
	a.rig.LeftRearFoot.Rotation.X = footSwing * swing
	a.rig.RightRearFoot.Rotation.X = -footSwing * swing
	a.rig.Tail.Rotation.Y = tailSwing * math.Cos(phase)
}

// LaneForX returns the lane closest to x
func LaneForX(x, laneOffset float64) int {
	if laneOffset <= 0 {
		return LaneCenter
	}
	return generic.Clamp(int(math.Round(x/laneOffset)), LaneLeft, LaneRight)
}
