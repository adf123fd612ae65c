package main

import "testing"

func resetBoot(t *testing.T) {
	t.Helper()
	bootMu.Lock()
	bootSurface, bootConsole = nil, nil
	bootMu.Unlock()
	t.Cleanup(func() {
		bootMu.Lock()
		bootSurface, bootConsole = nil, nil
		bootMu.Unlock()
	})
}

func TestBoot_KprintBeforeBootPanics(t *testing.T) {
	resetBoot(t)
	expectPanic(t, "before display boot", func() { kprintln("too early") })
}

func TestBoot_KprintWritesToConsole(t *testing.T) {
	resetBoot(t)
	info := NewFrameBufferInfo(140, 52, 140, 3, PixelFormatBGR)
	front := make([]byte, info.ByteLen)
	c := bootDisplay(front, info, DefaultPalette)

	kprintf("boot %d", 1)
	kprintln()
	kprintln("ok")
	if c.RowString(0) != "boot 1" || c.RowString(1) != "ok" {
		t.Fatalf("unexpected rows %q %q", c.RowString(0), c.RowString(1))
	}
	if bootSurface.Frames() != 3 {
		t.Fatalf("expected one present per print, got %d", bootSurface.Frames())
	}
	expectPanic(t, "already booted", func() { bootDisplay(front, info, DefaultPalette) })
}
