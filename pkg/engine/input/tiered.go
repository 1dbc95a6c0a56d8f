package input

import (
	"sort"
	"time"
)

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceKeyboard
	DeviceTerminal
)

// Action represents a high‑level intent in the game.
type Action int

const (
	ActionNone Action = iota

	// Movement
	ActionLaneLeft
	ActionLaneRight
	ActionJump

	// Meta
	ActionQuit
	ActionRestart
	ActionDump // write the layout dump
)

// Intent is the high‑level description of what the player wants to do.
type Intent struct {
	Action Action
}

// RawInput is an event emitted directly from an input device.
// Code is a device‑specific identifier (e.g. "arrow_left", "space").
type RawInput struct {
	Device    Device
	Code      string
	Timestamp time.Time
}

// DebouncedInput is a raw event after key-repeat suppression
type DebouncedInput struct {
	Device Device
	Code   string
}

// Debouncer drops repeats of the same code that arrive within Window
type Debouncer struct {
	Window time.Duration

	lastCode string
	lastAt   time.Time
}

// Accept returns the debounced event and whether it should be processed
func (d *Debouncer) Accept(raw RawInput) (DebouncedInput, bool) {
	ev := DebouncedInput{Device: raw.Device, Code: raw.Code}
	if raw.Code == d.lastCode && !raw.Timestamp.IsZero() && raw.Timestamp.Sub(d.lastAt) < d.Window {
		return ev, false
	}
	d.lastCode = raw.Code
	d.lastAt = raw.Timestamp
	return ev, true
}

// bindings maps raw codes to actions.
// Multiple codes may point to the same Action.
var bindings = map[string]Action{
	// Lanes (arrows, WASD, Vim)
	"arrow_left":  ActionLaneLeft,
	"a":           ActionLaneLeft,
	"h":           ActionLaneLeft,
	"arrow_right": ActionLaneRight,
	"d":           ActionLaneRight,
	"l":           ActionLaneRight,

	// Jump
	"arrow_up": ActionJump,
	"space":    ActionJump,
	"w":        ActionJump,
	"k":        ActionJump,

	// Quit
	"q":      ActionQuit,
	"escape": ActionQuit,
	"ctrl_c": ActionQuit,

	"r": ActionRestart,
	"p": ActionDump,
}

// MapToIntent applies the bindings to a debounced input and returns a high‑level Intent.
func MapToIntent(ev DebouncedInput) Intent {
	if act, ok := bindings[ev.Code]; ok {
		return Intent{Action: act}
	}
	return Intent{Action: ActionNone}
}

// ActionName returns a human-friendly name for an action.
func ActionName(a Action) string {
	switch a {
	case ActionLaneLeft:
		return "Left"
	case ActionLaneRight:
		return "Right"
	case ActionJump:
		return "Jump"
	case ActionQuit:
		return "Quit"
	case ActionRestart:
		return "Restart"
	case ActionDump:
		return "Dump Layout"
	default:
		return "None"
	}
}

// GetBindingsByAction returns the current bindings grouped by action.
func GetBindingsByAction() map[Action][]string {
	result := make(map[Action][]string)
	for code, act := range bindings {
		result[act] = append(result[act], code)
	}
	// Ensure stable ordering of codes within each action so the help line doesn't flicker.
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}
