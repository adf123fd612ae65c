package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseBootConfig_Defaults(t *testing.T) {
	cfg, err := parseBootConfig(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend != "ebiten" || cfg.Width != 640 || cfg.Height != 480 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Format != PixelFormatRGB || cfg.BytesPerPixel != 4 {
		t.Fatalf("expected rgb/4, got %v/%d", cfg.Format, cfg.BytesPerPixel)
	}
	info := cfg.FrameBufferInfo()
	if info.Stride != 640 || info.ByteLen != 640*480*4 {
		t.Fatalf("unexpected geometry: %+v", info)
	}
}

func TestParseBootConfig_Flags(t *testing.T) {
	cfg, err := parseBootConfig([]string{"-backend", "headless", "-width", "320", "-height", "200",
		"-stride-pad", "16", "-format", "u8", "-bpp", "1", "-bell", "-splash"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Format != PixelFormatU8 || cfg.BytesPerPixel != 1 || !cfg.Bell || !cfg.Splash {
		t.Fatalf("flags not applied: %+v", cfg)
	}
	if info := cfg.FrameBufferInfo(); info.Stride != 336 || info.ByteLen != 336*200 {
		t.Fatalf("unexpected geometry: %+v", info)
	}
}

func TestParseBootConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"backend", []string{"-backend", "vulkan"}, "unknown backend"},
		{"format", []string{"-format", "cmyk"}, "cmyk"},
		{"bpp", []string{"-format", "rgb", "-bpp", "2"}, "bytes per pixel"},
		{"negative pad", []string{"-stride-pad", "-1"}, "negative"},
		{"too small", []string{"-width", "4", "-height", "4"}, "character cell"},
		{"too large", []string{"-width", "8192"}, "exceeds"},
		{"empty", []string{"-height", "0"}, "empty geometry"},
		{"positional", []string{"extra"}, "unexpected argument"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseBootConfig(tt.args)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestParseBootConfig_Help(t *testing.T) {
	if _, err := parseBootConfig([]string{"-h"}); err != flag.ErrHelp {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
}

func waitFrames(t *testing.T, out *HeadlessOutput, n uint64) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for out.GetFrameCount() < n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d frames, got %d", n, out.GetFrameCount())
		}
		time.Sleep(time.Millisecond)
	}
}

func TestScanoutPublishesPresentedFrames(t *testing.T) {
	s, _ := newTestSurface(t, 4, 2, 4, 4, PixelFormatRGB)
	out := NewHeadlessOutput()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- scanout(ctx, s, out) }()

	waitFrames(t, out, 1)

	s.SetPixel(1, 1, 0x102030FF)
	s.Present()
	waitFrames(t, out, 2)

	want := s.ScanoutRGBA(nil)
	if got := out.LastFrame(); !bytes.Equal(got, want) {
		t.Fatalf("expected last frame % X, got % X", want, got)
	}

	cancel()
	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

type closingOutput struct {
	*HeadlessOutput
	done chan struct{}
}

func (c closingOutput) Done() <-chan struct{} { return c.done }

func TestScanoutStopsWhenDisplayCloses(t *testing.T) {
	s, _ := newTestSurface(t, 2, 2, 2, 4, PixelFormatRGB)
	out := closingOutput{HeadlessOutput: NewHeadlessOutput(), done: make(chan struct{})}
	close(out.done)

	if err := scanout(context.Background(), s, out); !errors.Is(err, errDisplayClosed) {
		t.Fatalf("expected errDisplayClosed, got %v", err)
	}
}

func TestWaitQuit(t *testing.T) {
	quit := make(chan struct{})
	close(quit)
	if err := waitQuit(context.Background(), quit); !errors.Is(err, errQuit) {
		t.Fatalf("expected errQuit, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := waitQuit(ctx, make(chan struct{})); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestQuitKeyEndsExecutor(t *testing.T) {
	k := &hostKeyboard{feed: func(byte) {}, quit: make(chan struct{})}
	exec := NewExecutor()
	exec.Spawn("idle", func(ctx context.Context) error {
		<-ctx.Done()
		return nil
	})
	exec.Spawn("quit", func(ctx context.Context) error {
		return waitQuit(ctx, k.Done())
	})
	k.process([]byte{hostQuitByte}, true)

	errc := make(chan error, 1)
	go func() { errc <- exec.Run(context.Background()) }()
	select {
	case err := <-errc:
		if !errors.Is(err, errQuit) {
			t.Fatalf("expected errQuit, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("executor did not stop after the quit key")
	}
}

func TestSourceFilesCarryHeader(t *testing.T) {
	files, err := filepath.Glob("*.go")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range files {
		if strings.HasSuffix(name, "_test.go") {
			continue
		}
		data, err := os.ReadFile(name)
		if err != nil {
			t.Fatal(err)
		}
		src := string(data)
		if strings.HasPrefix(src, "//go:build headless") {
			continue
		}
		if strings.HasPrefix(src, "//go:build") {
			src = src[strings.Index(src, "\n\n")+2:]
		}
		if !strings.HasPrefix(src, "// "+name+" - ") {
			t.Fatalf("%s: expected a %q header line", name, "// "+name+" - ")
		}
		if !strings.Contains(src, "License: GPLv3 or later") {
			t.Fatalf("%s: missing licence banner", name)
		}
	}
}
