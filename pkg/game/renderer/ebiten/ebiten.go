// Package ebiten provides an Ebiten-based 2D window renderer drawing the
// top-down lane map.
package ebiten

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/leonelquinteros/gotext"
	"github.com/sirupsen/logrus"

	engineinput "mouserun/pkg/engine/input"
	"mouserun/pkg/game/gameplay"
	"mouserun/pkg/game/renderer"
)

// keyCodes maps window keys to the binding codes shared with the terminal
var keyCodes = []struct {
	key  ebiten.Key
	code string
}{
	{ebiten.KeyArrowLeft, "arrow_left"},
	{ebiten.KeyArrowRight, "arrow_right"},
	{ebiten.KeyArrowUp, "arrow_up"},
	{ebiten.KeyA, "a"},
	{ebiten.KeyD, "d"},
	{ebiten.KeyH, "h"},
	{ebiten.KeyL, "l"},
	{ebiten.KeyW, "w"},
	{ebiten.KeyK, "k"},
	{ebiten.KeySpace, "space"},
	{ebiten.KeyQ, "q"},
	{ebiten.KeyEscape, "escape"},
	{ebiten.KeyR, "r"},
	{ebiten.KeyP, "p"},
}

// EbitenRenderer is the Ebiten-based graphical renderer
type EbitenRenderer struct {
	windowWidth  int
	windowHeight int
	tileSize     int

	fontSource *text.GoTextFaceSource
	cachedFace *text.GoTextFace

	// Latest frame, set by RenderFrame from the game loop
	snapshot      gameplay.Snapshot
	haveSnapshot  bool
	snapshotMutex sync.RWMutex

	// Input channel for communication between Ebiten and game loop
	inputChan chan engineinput.Intent

	ctx                context.Context
	closed             atomic.Bool
	windowOpenedLogged bool
	log                *logrus.Entry
}

// New creates a new Ebiten renderer
func New(log *logrus.Entry) *EbitenRenderer {
	return &EbitenRenderer{
		windowWidth:  480,
		windowHeight: 720,
		tileSize:     defaultTileSize,
		inputChan:    make(chan engineinput.Intent, 8),
		log:          log,
	}
}

// Init loads the font and sets up the window
func (e *EbitenRenderer) Init() error {
	src, err := loadFont()
	if err != nil {
		return err
	}
	e.fontSource = src

	ebiten.SetWindowSize(e.windowWidth, e.windowHeight)
	ebiten.SetWindowTitle(gotext.Get("WINDOW_TITLE"))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return nil
}

// Intents returns key presses mapped to intents
func (e *EbitenRenderer) Intents() <-chan engineinput.Intent {
	return e.inputChan
}

// RenderFrame stores the snapshot drawn by the next Draw call
func (e *EbitenRenderer) RenderFrame(s gameplay.Snapshot) {
	e.snapshotMutex.Lock()
	e.snapshot = s
	e.haveSnapshot = true
	e.snapshotMutex.Unlock()
}

// Run starts the Ebiten game loop. It must be called from the main goroutine.
func (e *EbitenRenderer) Run(ctx context.Context) error {
	e.ctx = ctx
	if err := ebiten.RunGame(e); err != nil {
		return fmt.Errorf("ebiten: %w", err)
	}
	return nil
}

// Close ends the game loop on its next update
func (e *EbitenRenderer) Close() {
	e.closed.Store(true)
}

// ViewportCols returns the window width in tiles
func (e *EbitenRenderer) ViewportCols() int {
	return e.windowWidth / e.tileSize
}

// Update handles input (Ebiten interface)
func (e *EbitenRenderer) Update() error {
	if !e.windowOpenedLogged {
		e.windowOpenedLogged = true
		w, h := ebiten.WindowSize()
		e.log.Infof("Main window opened (%dx%d)", w, h)
	}

	if e.closed.Load() {
		return ebiten.Termination
	}
	if e.ctx != nil && e.ctx.Err() != nil {
		return ebiten.Termination
	}

	for _, k := range keyCodes {
		if !inpututil.IsKeyJustPressed(k.key) {
			continue
		}
		intent := engineinput.MapToIntent(engineinput.DebouncedInput{Device: engineinput.DeviceKeyboard, Code: k.code})
		if intent.Action == engineinput.ActionNone {
			continue
		}
		// Non-blocking send to input channel
		select {
		case e.inputChan <- intent:
		default:
			// Channel full, drop input
		}
	}
	return nil
}

// Draw renders the latest snapshot (Ebiten interface)
func (e *EbitenRenderer) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	e.snapshotMutex.RLock()
	s, ok := e.snapshot, e.haveSnapshot
	e.snapshotMutex.RUnlock()
	if !ok {
		return
	}

	ts := e.tileSize
	rows := max(e.windowHeight/ts-statusRows-messageRows, 5)
	left := (e.windowWidth - renderer.MapCols*ts) / 2
	top := statusRows * ts

	vector.DrawFilledRect(screen, float32(left), float32(top), float32(renderer.MapCols*ts), float32(rows*ts), colorMapBackground, false)
	for r, row := range renderer.LaneMap(s, rows) {
		for c, cell := range row {
			x, y := left+c*ts, top+r*ts
			if bg, ok := styleBackgrounds[cell.Style]; ok {
				vector.DrawFilledRect(screen, float32(x), float32(y), float32(ts), float32(ts), bg, false)
			}
			if cell.Glyph != ' ' {
				e.drawColoredChar(screen, string(cell.Glyph), x, y, styleColors[cell.Style])
			}
		}
	}

	e.drawStatus(screen, s)
	e.drawMessages(screen, s, top+rows*ts+ts/2)
}

func (e *EbitenRenderer) drawStatus(screen *ebiten.Image, s gameplay.Snapshot) {
	e.drawColoredText(screen, fmt.Sprintf("GT{DISTANCE}: %.1f  GT{SCORE}: %d  GT{SPEED}: %.2fx", s.Distance, s.Score, s.Factor),
		8, 4, colorText)
	switch {
	case s.Over:
		e.drawColoredText(screen, gotext.Get("GAME_OVER"), 8, 4+e.tileSize, colorDanger)
	case !s.Started:
		e.drawColoredText(screen, gotext.Get("PRESS_TO_START"), 8, 4+e.tileSize, colorSubtle)
	}
}

func (e *EbitenRenderer) drawMessages(screen *ebiten.Image, s gameplay.Snapshot, y int) {
	for i, msg := range s.Messages {
		e.drawColoredText(screen, msg, 8, y+i*e.tileSize, colorSubtle)
	}
}

// Layout tracks the window size and uses it as the logical screen (Ebiten interface)
func (e *EbitenRenderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	e.windowWidth, e.windowHeight = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
