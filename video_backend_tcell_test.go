package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func newSimTcellOutput(t *testing.T) (*TcellOutput, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	to := newTcellOutput(func() (tcell.Screen, error) { return sim, nil })
	if err := to.SetDisplayConfig(DisplayConfig{Width: 4, Height: 4}); err != nil {
		t.Fatalf("config failed: %v", err)
	}
	if err := to.Start(); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	sim.SetSize(80, 24)
	t.Cleanup(func() { _ = to.Close() })
	return to, sim
}

func TestTcellUpdateFrameHalfBlocks(t *testing.T) {
	to, sim := newSimTcellOutput(t)

	frame := make([]byte, 4*4*4)
	set := func(x, y int, r, g, b byte) {
		off := (y*4 + x) * 4
		frame[off], frame[off+1], frame[off+2], frame[off+3] = r, g, b, 0xFF
	}
	set(0, 0, 0xFF, 0, 0)
	set(0, 1, 0, 0, 0xFF)

	if err := to.UpdateFrame(frame); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if to.GetFrameCount() != 1 {
		t.Fatalf("expected 1 frame, got %d", to.GetFrameCount())
	}

	r, _, style, _ := sim.GetContent(0, 0)
	if r != '▀' {
		t.Fatalf("expected half block, got %q", r)
	}
	fg, bg, _ := style.Decompose()
	if fg != tcell.NewRGBColor(0xFF, 0, 0) {
		t.Fatalf("expected red foreground, got %v", fg)
	}
	if bg != tcell.NewRGBColor(0, 0, 0xFF) {
		t.Fatalf("expected blue background, got %v", bg)
	}

	// 4 pixel rows fit in 2 cell rows; nothing is drawn below.
	if r, _, _, _ := sim.GetContent(0, 2); r == '▀' {
		t.Fatalf("expected row 2 untouched")
	}
}

func TestTcellUpdateFrameShortBuffer(t *testing.T) {
	to, _ := newSimTcellOutput(t)
	if err := to.UpdateFrame(make([]byte, 10)); err == nil {
		t.Fatalf("expected error for short frame")
	}
}

func TestTcellKeyEventsBecomeScancodes(t *testing.T) {
	to, sim := newSimTcellOutput(t)

	got := make(chan byte, 64)
	to.SetScancodeHandler(func(b byte) { got <- b })

	sim.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'A', tcell.ModShift))

	want := EncodeChar('A')
	var seq []byte
	deadline := time.After(2 * time.Second)
	for len(seq) < len(want) {
		select {
		case b := <-got:
			seq = append(seq, b)
		case <-deadline:
			t.Fatalf("timed out, got % X", seq)
		}
	}
	if !bytes.Equal(seq, want) {
		t.Fatalf("expected % X, got % X", want, seq)
	}
}

func TestTcellCtrlQClosesOutput(t *testing.T) {
	to, sim := newSimTcellOutput(t)

	sim.PostEvent(tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl))
	select {
	case <-to.Done():
	case <-time.After(2 * time.Second):
		t.Fatalf("expected Done after Ctrl+Q")
	}
}

func TestTcellKeySequence(t *testing.T) {
	ctrlC := EncodeKeyState(KeyLeftCtrl, true)
	ctrlC = append(ctrlC, EncodeKey(KeyC)...)
	ctrlC = append(ctrlC, EncodeKeyState(KeyLeftCtrl, false)...)

	tests := []struct {
		name string
		key  tcell.Key
		r    rune
		mod  tcell.ModMask
		want []byte
	}{
		{"letter", tcell.KeyRune, 'x', tcell.ModNone, EncodeKey(KeyX)},
		{"shifted", tcell.KeyRune, '!', tcell.ModShift, EncodeChar('!')},
		{"enter", tcell.KeyEnter, 0, tcell.ModNone, EncodeKey(KeyEnter)},
		{"del as backspace", tcell.KeyBackspace2, 0, tcell.ModNone, EncodeKey(KeyBackspace)},
		{"arrow", tcell.KeyLeft, 0, tcell.ModNone, EncodeKey(KeyArrowLeft)},
		{"function", tcell.KeyF5, 0, tcell.ModNone, EncodeKey(KeyF5)},
		{"control letter", tcell.KeyCtrlC, 0, tcell.ModCtrl, ctrlC},
		{"control rune", tcell.KeyRune, 'c', tcell.ModCtrl, ctrlC},
		{"non ascii", tcell.KeyRune, 'é', tcell.ModNone, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tcellKeySequence(tt.key, tt.r, tt.mod)
			if !bytes.Equal(got, tt.want) {
				t.Fatalf("expected % X, got % X", tt.want, got)
			}
		})
	}
}
