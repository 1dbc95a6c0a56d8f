package tui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"
	"github.com/sirupsen/logrus"

	"mouserun/pkg/engine/input"
	"mouserun/pkg/engine/terminal"
	"mouserun/pkg/game/gameplay"
	"mouserun/pkg/game/renderer"
)

// Viewport margins and minimum sizes
const (
	ViewportMinRows = 9
	// Lines needed outside the lane map:
	// - Status line + blank (2)
	// - Controls line (1)
	// - Messages pane (header + 5 messages + footer = 7)
	ViewportTopMargin = 10
)

// dynamicGet is used for runtime translation key lookups from markup.
var dynamicGet = gotext.Get

// TUIRenderer is the terminal-based renderer implementation
type TUIRenderer struct {
	colorWall        color.Style
	colorFloor       color.Style
	colorActor       color.Style
	colorDoorOpen    color.Style
	colorDoorClosed  color.Style
	colorDoorPassed  color.Style
	colorCollectible color.Style
	colorSubtle      color.Style
	colorDanger      color.Style
	colorScore       color.Style
	colorAction      color.Style
	colorActionShort color.Style

	out     io.Writer
	mu      sync.Mutex
	reader  *input.Reader
	intents <-chan input.Intent
	cancel  context.CancelFunc
	log     *logrus.Entry
}

// New creates a new TUI renderer
func New(log *logrus.Entry) *TUIRenderer {
	return &TUIRenderer{out: os.Stdout, log: log}
}

// Init sets up colours, puts the terminal into raw mode and starts reading keys
func (t *TUIRenderer) Init() error {
	t.colorWall = color.Style{color.FgGray}
	t.colorFloor = color.Style{color.FgBlue}
	t.colorActor = color.Style{color.FgGreen, color.BgBlack, color.OpBold}
	t.colorDoorOpen = color.Style{color.FgGreen}
	t.colorDoorClosed = color.Style{color.FgYellow, color.OpBold}
	t.colorDoorPassed = color.Style{color.FgGray}
	t.colorCollectible = color.Style{color.FgMagenta, color.OpBold}
	t.colorSubtle = color.Style{color.FgGray, color.OpBold}
	t.colorDanger = color.Style{color.FgRed, color.OpBold}
	t.colorScore = color.Style{color.FgCyan, color.OpBold}
	t.colorAction = color.Style{color.FgMagenta}
	t.colorActionShort = color.Style{color.FgMagenta, color.OpBold}

	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel
	t.reader = input.NewReader()
	intents, err := t.reader.Start(ctx)
	if err != nil {
		cancel()
		return fmt.Errorf("tui input: %w", err)
	}
	t.intents = intents

	terminal.Clear(t.out)
	terminal.HideCursor(t.out)
	return nil
}

// Intents returns key presses mapped to intents
func (t *TUIRenderer) Intents() <-chan input.Intent {
	return t.intents
}

// Run blocks until ctx is done; frames are pushed by RenderFrame
func (t *TUIRenderer) Run(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

// Close restores the cursor and the terminal mode
func (t *TUIRenderer) Close() {
	if t.cancel != nil {
		t.cancel()
	}
	terminal.ShowCursor(t.out)
	if t.reader != nil {
		if err := t.reader.Close(); err != nil && t.log != nil {
			t.log.WithError(err).Warn("Could not restore terminal")
		}
	}
}

// ViewportCols returns the terminal width
func (t *TUIRenderer) ViewportCols() int {
	cols, _ := terminal.GetSize()
	return cols
}

// viewportRows returns the number of lane map rows that fit the terminal
func (t *TUIRenderer) viewportRows() int {
	_, rows := terminal.GetSize()
	return max(rows-ViewportTopMargin, ViewportMinRows)
}

// StyleText applies a style to text
func (t *TUIRenderer) StyleText(text string, style renderer.TextStyle) string {
	switch style {
	case renderer.StyleWall:
		return t.colorWall.Sprint(text)
	case renderer.StyleFloor:
		return t.colorFloor.Sprint(text)
	case renderer.StyleActor:
		return t.colorActor.Sprint(text)
	case renderer.StyleDoorOpen:
		return t.colorDoorOpen.Sprint(text)
	case renderer.StyleDoorClosed:
		return t.colorDoorClosed.Sprint(text)
	case renderer.StyleDoorPassed:
		return t.colorDoorPassed.Sprint(text)
	case renderer.StyleCollectible:
		return t.colorCollectible.Sprint(text)
	case renderer.StyleSubtle:
		return t.colorSubtle.Sprint(text)
	case renderer.StyleDanger:
		return t.colorDanger.Sprint(text)
	case renderer.StyleScore:
		return t.colorScore.Sprint(text)
	default:
		return text
	}
}

// FormatText formats a message with the markup system
func (t *TUIRenderer) FormatText(msg string, args ...any) string {
	return renderer.ApplyMarkup(fmt.Sprintf(msg, args...), func(fn, operand string) string {
		switch fn {
		case "GT":
			return dynamicGet(operand)
		case "SCORE":
			return t.colorScore.Sprint(operand)
		case "DANGER":
			return t.colorDanger.Sprint(operand)
		case "SUBTLE":
			return t.colorSubtle.Sprint(operand)
		case "ACTION":
			return t.colorActionShort.Sprint(operand[0:1]) + t.colorAction.Sprint(operand[1:])
		default:
			return operand
		}
	})
}

// RenderFrame renders a complete game frame
func (t *TUIRenderer) RenderFrame(s gameplay.Snapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var b strings.Builder
	t.printStatusBar(&b, s)
	t.printMap(&b, s)
	t.printPossibleActions(&b)
	t.printMessagesPane(&b, s)

	// Raw mode needs explicit carriage returns
	w := bufio.NewWriter(t.out)
	terminal.Home(w)
	w.WriteString(strings.ReplaceAll(b.String(), "\n", "\x1b[K\r\n"))
	w.Flush()
}

// printStatusBar renders distance, score and speed
func (t *TUIRenderer) printStatusBar(b *strings.Builder, s gameplay.Snapshot) {
	b.WriteString(t.FormatText("GT{DISTANCE}: SCORE{%.1f}  GT{SCORE}: SCORE{%d}  GT{SPEED}: SCORE{%.2fx}",
		s.Distance, s.Score, s.Factor))
	if s.Over {
		b.WriteString("  " + t.colorDanger.Sprint(gotext.Get("GAME_OVER")))
	} else if !s.Started {
		b.WriteString("  " + t.colorSubtle.Sprint(gotext.Get("PRESS_TO_START")))
	}
	b.WriteString("\n\n")
}

// printMap renders the lane map centred in the terminal
func (t *TUIRenderer) printMap(b *strings.Builder, s gameplay.Snapshot) {
	cols, _ := terminal.GetSize()
	pad := strings.Repeat(" ", max((cols-renderer.MapCols)/2, 0))
	for _, row := range renderer.LaneMap(s, t.viewportRows()) {
		b.WriteString(pad)
		for _, c := range row {
			b.WriteString(t.StyleText(string(c.Glyph), c.Style))
		}
		b.WriteByte('\n')
	}
}

func (t *TUIRenderer) printPossibleActions(b *strings.Builder) {
	b.WriteString(t.FormatText("ACTION{a}/ACTION{d}: lane  ACTION{space}: jump  ACTION{r}estart  ACTION{q}uit\n"))
}

// printMessagesPane renders the messages log pane
func (t *TUIRenderer) printMessagesPane(b *strings.Builder, s gameplay.Snapshot) {
	width, _ := terminal.GetSize()

	label := " Messages "
	sideLen := max((width-len(label))/2, 1)
	leftDashes := strings.Repeat("─", sideLen)
	rightDashes := strings.Repeat("─", max(width-sideLen-len(label), 0))

	b.WriteString(t.colorSubtle.Sprint(leftDashes+label+rightDashes) + "\n")
	if len(s.Messages) == 0 {
		b.WriteString(t.colorSubtle.Sprint("  (no messages)") + "\n")
	} else {
		for _, msg := range s.Messages {
			fmt.Fprintf(b, "  %s\n", msg)
		}
	}
	b.WriteString(t.colorSubtle.Sprint(strings.Repeat("─", width)) + "\n")
}
