package ebiten

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/leonelquinteros/gotext"
	"golang.org/x/image/font/gofont/gomono"

	"mouserun/pkg/game/renderer"
)

// dynamicGet is used for runtime translation key lookups from markup.
var dynamicGet = gotext.Get

// loadFont parses the embedded monospace face used for tiles and UI text
func loadFont() (*text.GoTextFaceSource, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	return src, nil
}

// face returns a cached face scaled to the tile size
func (e *EbitenRenderer) face() *text.GoTextFace {
	size := baseFontSize * float64(e.tileSize) / defaultTileSize
	if e.cachedFace == nil || e.cachedFace.Size != size {
		e.cachedFace = &text.GoTextFace{Source: e.fontSource, Size: size}
	}
	return e.cachedFace
}

// drawColoredChar draws a glyph centred in the tile at pixel position x, y
func (e *EbitenRenderer) drawColoredChar(screen *ebiten.Image, char string, x, y int, col color.Color) {
	face := e.face()
	w, h := text.Measure(char, face, 0)

	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x)+(float64(e.tileSize)-w)/2, float64(y)+(float64(e.tileSize)-h)/2)
	op.ColorScale.ScaleWithColor(col)
	text.Draw(screen, char, face, op)
}

// drawColoredText draws a line of UI text after expanding GT{} markup
func (e *EbitenRenderer) drawColoredText(screen *ebiten.Image, str string, x, y int, col color.Color) {
	str = renderer.ApplyMarkup(str, func(fn, operand string) string {
		if fn == "GT" {
			return dynamicGet(operand)
		}
		return operand
	})

	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(col)
	text.Draw(screen, str, e.face(), op)
}
