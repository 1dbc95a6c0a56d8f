package input

import (
	"bufio"
	"io"
	"strings"
	"testing"
	"time"
)

func readAll(t *testing.T, s string) []string {
	t.Helper()
	r := bufio.NewReader(strings.NewReader(s))
	var codes []string
	for {
		code, err := ReadKey(r)
		if err == io.EOF {
			return codes
		}
		if err != nil {
			t.Fatalf("ReadKey: %v", err)
		}
		codes = append(codes, code)
	}
}

func TestReadKey_Sequences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"csi arrows", "\x1b[A\x1b[B\x1b[C\x1b[D", []string{"arrow_up", "arrow_down", "arrow_right", "arrow_left"}},
		{"ss3 arrows", "\x1bOD\x1bOC", []string{"arrow_left", "arrow_right"}},
		{"letters fold case", "aD q", []string{"a", "d", "space", "q"}},
		{"ctrl c", "\x03", []string{"ctrl_c"}},
		{"enter", "\r", []string{"enter"}},
		{"lone escape", "\x1b", []string{"escape"}},
		{"unknown csi dropped", "\x1b[Zl", []string{"", "l"}},
		{"alt key", "\x1bx", []string{"", "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := readAll(t, tt.in)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("codes = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMapToIntent(t *testing.T) {
	tests := []struct {
		code string
		want Action
	}{
		{"arrow_left", ActionLaneLeft},
		{"d", ActionLaneRight},
		{"space", ActionJump},
		{"arrow_up", ActionJump},
		{"escape", ActionQuit},
		{"r", ActionRestart},
		{"p", ActionDump},
		{"z", ActionNone},
	}
	for _, tt := range tests {
		got := MapToIntent(DebouncedInput{Device: DeviceTerminal, Code: tt.code}).Action
		if got != tt.want {
			t.Errorf("MapToIntent(%q) = %s, want %s", tt.code, ActionName(got), ActionName(tt.want))
		}
	}
}

func TestDebouncer_DropsFastRepeats(t *testing.T) {
	d := Debouncer{Window: 50 * time.Millisecond}
	t0 := time.Unix(100, 0)

	if _, ok := d.Accept(RawInput{Code: "a", Timestamp: t0}); !ok {
		t.Fatal("first press dropped")
	}
	if _, ok := d.Accept(RawInput{Code: "a", Timestamp: t0.Add(10 * time.Millisecond)}); ok {
		t.Error("repeat inside window accepted")
	}
	if _, ok := d.Accept(RawInput{Code: "d", Timestamp: t0.Add(20 * time.Millisecond)}); !ok {
		t.Error("different key dropped")
	}
	if _, ok := d.Accept(RawInput{Code: "d", Timestamp: t0.Add(100 * time.Millisecond)}); !ok {
		t.Error("repeat after window dropped")
	}
}

func TestGetBindingsByAction_Sorted(t *testing.T) {
	codes := GetBindingsByAction()[ActionLaneLeft]
	want := []string{"a", "arrow_left", "h"}
	if strings.Join(codes, ",") != strings.Join(want, ",") {
		t.Errorf("bindings = %v, want %v", codes, want)
	}
}
