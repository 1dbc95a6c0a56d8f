// Package terminal wraps the handful of terminal queries the renderers need.
package terminal

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// ANSI control sequences
const (
	clearScreen = "\x1b[H\x1b[2J"
	homeCursor  = "\x1b[H"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
)

// GetSize returns the current terminal width and height.
// Falls back to defaults if the size cannot be determined.
func GetSize() (width, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// Interactive reports whether both stdin and stdout are terminals
func Interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// Clear wipes the screen and homes the cursor
func Clear(w io.Writer) {
	fmt.Fprint(w, clearScreen)
}

// Home moves the cursor to the top-left corner without clearing, so a frame
// can be redrawn in place
func Home(w io.Writer) {
	fmt.Fprint(w, homeCursor)
}

// HideCursor hides the cursor while frames are drawn
func HideCursor(w io.Writer) {
	fmt.Fprint(w, hideCursor)
}

// ShowCursor restores the cursor
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, showCursor)
}
