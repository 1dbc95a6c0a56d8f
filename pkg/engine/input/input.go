package input

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"time"

	"golang.org/x/term"
)

// ErrNotTerminal is returned when stdin is not an interactive terminal
var ErrNotTerminal = errors.New("stdin is not a terminal")

// repeatWindow suppresses auto-repeat from held keys
const repeatWindow = 60 * time.Millisecond

// ReadKey reads one key press from r and returns its code.
// Arrow keys arrive as CSI (ESC [) or SS3 (ESC O) sequences; a lone ESC with
// nothing buffered behind it is the escape key.
func ReadKey(r *bufio.Reader) (string, error) {
	b, err := r.ReadByte()
	if err != nil {
		return "", err
	}

	switch {
	case b == 0x1b:
		if r.Buffered() == 0 {
			return "escape", nil
		}
		return readEscape(r)
	case b == 3:
		return "ctrl_c", nil
	case b == ' ':
		return "space", nil
	case b == '\r' || b == '\n':
		return "enter", nil
	case b >= 'A' && b <= 'Z':
		return string(b + ('a' - 'A')), nil
	case b >= 32 && b < 127:
		return string(b), nil
	}
	return "", nil
}

// readEscape decodes the rest of an escape sequence
func readEscape(r *bufio.Reader) (string, error) {
	b2, err := r.ReadByte()
	if err != nil {
		return "", err
	}
	if b2 != '[' && b2 != 'O' {
		// Alt+key; report the key on its own
		return "", r.UnreadByte()
	}

	b3, err := r.ReadByte()
	if err != nil {
		return "", err
	}
	switch b3 {
	case 'A':
		return "arrow_up", nil
	case 'B':
		return "arrow_down", nil
	case 'C':
		return "arrow_right", nil
	case 'D':
		return "arrow_left", nil
	}
	// Unknown escape sequence - discard it
	return "", nil
}

// Reader turns raw terminal key presses into intents
type Reader struct {
	fd       int
	src      io.Reader
	oldState *term.State
	debounce Debouncer
}

// NewReader creates a reader on stdin
func NewReader() *Reader {
	return &Reader{
		fd:       int(os.Stdin.Fd()),
		src:      os.Stdin,
		debounce: Debouncer{Window: repeatWindow},
	}
}

// Start puts the terminal into raw mode and streams intents until ctx is
// done or the input closes. Close must be called to restore the terminal.
func (r *Reader) Start(ctx context.Context) (<-chan Intent, error) {
	if !term.IsTerminal(r.fd) {
		return nil, ErrNotTerminal
	}
	state, err := term.MakeRaw(r.fd)
	if err != nil {
		return nil, err
	}
	r.oldState = state

	out := make(chan Intent, 8)
	go r.pump(ctx, bufio.NewReader(r.src), out)
	return out, nil
}

func (r *Reader) pump(ctx context.Context, br *bufio.Reader, out chan<- Intent) {
	defer close(out)
	for {
		code, err := ReadKey(br)
		if err != nil {
			return
		}
		if code == "" {
			continue
		}
		raw := RawInput{Device: DeviceTerminal, Code: code, Timestamp: time.Now()}
		ev, ok := r.debounce.Accept(raw)
		if !ok {
			continue
		}
		intent := MapToIntent(ev)
		if intent.Action == ActionNone {
			continue
		}
		select {
		case out <- intent:
		case <-ctx.Done():
			return
		}
	}
}

// Close restores the terminal state saved by Start
func (r *Reader) Close() error {
	if r.oldState == nil {
		return nil
	}
	err := term.Restore(r.fd, r.oldState)
	r.oldState = nil
	return err
}
