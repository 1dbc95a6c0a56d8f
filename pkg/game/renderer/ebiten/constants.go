package ebiten

import (
	"image/color"

	"mouserun/pkg/game/renderer"
)

// Colour palette
var (
	colorBackground    = color.RGBA{26, 26, 46, 255}    // Dark blue-gray
	colorMapBackground = color.RGBA{15, 15, 26, 255}    // Darker for the track
	colorActor         = color.RGBA{0, 255, 0, 255}     // Bright green
	colorWall          = color.RGBA{180, 180, 200, 255} // Light gray-blue
	colorWallBg        = color.RGBA{60, 60, 80, 255}    // Wall tile background
	colorFloor         = color.RGBA{100, 100, 120, 255} // Medium gray
	colorDoorClosed    = color.RGBA{255, 255, 0, 255}   // Bright yellow
	colorDoorClosedBg  = color.RGBA{100, 100, 130, 220}
	colorDoorOpen      = color.RGBA{0, 220, 0, 255}     // Bright green
	colorDoorPassed    = color.RGBA{120, 120, 140, 255} // Medium gray
	colorCollectible   = color.RGBA{220, 170, 255, 255} // Bright purple
	colorSubtle        = color.RGBA{120, 130, 180, 255} // Soft blue-purple-gray
	colorText          = color.RGBA{200, 210, 245, 255} // Soft off-white
	colorScore         = color.RGBA{100, 255, 150, 255}
	colorDanger        = color.RGBA{255, 120, 120, 255}
)

// Tile size and layout
const (
	defaultTileSize = 24
	baseFontSize    = 16.0 // font size at the default tile size
	statusRows      = 2    // rows above the map
	messageRows     = 6    // rows below the map
)

// styleColors maps lane map styles to glyph colours
var styleColors = map[renderer.TextStyle]color.Color{
	renderer.StyleNormal:      colorText,
	renderer.StyleWall:        colorWall,
	renderer.StyleFloor:       colorFloor,
	renderer.StyleActor:       colorActor,
	renderer.StyleDoorOpen:    colorDoorOpen,
	renderer.StyleDoorClosed:  colorDoorClosed,
	renderer.StyleDoorPassed:  colorDoorPassed,
	renderer.StyleCollectible: colorCollectible,
	renderer.StyleSubtle:      colorSubtle,
	renderer.StyleDanger:      colorDanger,
	renderer.StyleScore:       colorScore,
}

// styleBackgrounds lists styles drawn on a filled tile
var styleBackgrounds = map[renderer.TextStyle]color.Color{
	renderer.StyleWall:       colorWallBg,
	renderer.StyleDoorClosed: colorDoorClosedBg,
}
