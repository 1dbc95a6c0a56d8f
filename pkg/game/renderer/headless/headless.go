// Package headless provides a renderer with no display. It logs run progress
// and is driven by the autopilot.
package headless

import (
	"context"

	"github.com/sirupsen/logrus"

	"mouserun/pkg/engine/input"
	"mouserun/pkg/game/gameplay"
)

// logEvery is the number of ticks between progress lines
const logEvery = 600

// Renderer logs snapshots instead of drawing them
type Renderer struct {
	log      *logrus.Entry
	lastTick int
	reported bool
}

// New creates a headless renderer
func New(log *logrus.Entry) *Renderer {
	return &Renderer{log: log, lastTick: -logEvery}
}

func (r *Renderer) Init() error { return nil }

// Intents returns nil; headless runs take no input
func (r *Renderer) Intents() <-chan input.Intent { return nil }

// Run blocks until ctx is done
func (r *Renderer) Run(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

func (r *Renderer) Close() {}

// ViewportCols returns 0, which keeps the full scatter tier
func (r *Renderer) ViewportCols() int { return 0 }

// RenderFrame logs progress periodically and the final result once
func (r *Renderer) RenderFrame(s gameplay.Snapshot) {
	fields := logrus.Fields{
		"tick":     s.Ticks,
		"distance": s.Distance,
		"score":    s.Score,
		"doors":    s.Doors,
		"recycled": s.Recycled,
		"speed":    s.Factor,
	}
	if s.Over {
		if !r.reported {
			r.reported = true
			r.log.WithFields(fields).Info("Run over")
		}
		return
	}
	if s.Ticks-r.lastTick >= logEvery {
		r.lastTick = s.Ticks
		r.log.WithFields(fields).Info("Progress")
	}
}
