package renderer

import (
	"context"

	"mouserun/pkg/engine/input"
	"mouserun/pkg/game/gameplay"
)

// TextStyle represents different text styling options
type TextStyle int

const (
	StyleNormal TextStyle = iota
	StyleWall
	StyleFloor
	StyleActor
	StyleDoorOpen
	StyleDoorClosed
	StyleDoorPassed
	StyleCollectible
	StyleSubtle
	StyleDanger
	StyleScore
)

// Renderer defines the interface for game rendering backends
type Renderer interface {
	// Init prepares colours, windows and input sources
	Init() error

	// RenderFrame draws one frame from a snapshot. It may be called from the
	// game loop goroutine.
	RenderFrame(s gameplay.Snapshot)

	// Intents delivers player input. A nil channel means the backend has no input.
	Intents() <-chan input.Intent

	// Run blocks until ctx is done or the backend is closed by the user.
	// Window backends must be run on the main goroutine.
	Run(ctx context.Context) error

	// ViewportCols returns the usable width in columns, used to pick the scatter tier
	ViewportCols() int

	// Close releases the backend and restores the terminal
	Close()
}

// Current holds the active renderer instance
var Current Renderer

// SetRenderer sets the active renderer
func SetRenderer(r Renderer) {
	Current = r
}

// RenderFrame renders a frame with the current renderer
func RenderFrame(s gameplay.Snapshot) {
	if Current != nil {
		Current.RenderFrame(s)
	}
}

// ViewportCols returns the current renderer's width, or 0 if there is none
func ViewportCols() int {
	if Current != nil {
		return Current.ViewportCols()
	}
	return 0
}
