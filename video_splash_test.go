package main

import (
	"image"
	"image/color"
	"testing"
)

func TestDrawSplashCoversBanner(t *testing.T) {
	s, _ := newTestSurface(t, 120, 60, 120, 4, PixelFormatRGB)
	s.Clear(0x000000FF)

	rows := drawSplash(s, "IntuitionConsole")
	if rows != splashHeight {
		t.Fatalf("expected %d rows, got %d", splashHeight, rows)
	}

	c, _ := s.Pixel(60, 6)
	r, _, b, _ := c.Channels()
	if b <= r || b < 0x60 {
		t.Fatalf("expected blue banner fill at (60,6), got %s", c)
	}
	fr, _, fb, _ := splashFill.Channels()
	// Fill over black comes out darker than the fill itself, by its alpha.
	if r > fr || b > fb || int(b) < int(fb)*3/4 {
		t.Fatalf("expected splash fill over black at (60,6), got %s", c)
	}
	if c, _ := s.Pixel(60, splashHeight+5); c != 0x000000FF {
		t.Fatalf("expected untouched pixel below banner, got %s", c)
	}
}

func TestDrawSplashTinySurface(t *testing.T) {
	s, _ := newTestSurface(t, 4, 4, 4, 4, PixelFormatRGB)
	if rows := drawSplash(s, "x"); rows != 0 {
		t.Fatalf("expected no splash on a 4x4 surface, got %d rows", rows)
	}
}

func TestBlendRGBAUnpremultiplies(t *testing.T) {
	s, _ := newTestSurface(t, 2, 1, 2, 4, PixelFormatRGB)
	s.Clear(0x000000FF)

	im := image.NewRGBA(image.Rect(0, 0, 2, 1))
	im.SetRGBA(0, 0, color.RGBA{R: 0xFF, A: 0xFF})
	// Half-transparent white, premultiplied.
	im.SetRGBA(1, 0, color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0x80})
	blendRGBA(s, im)

	if c, _ := s.Pixel(0, 0); c != 0xFF0000FF {
		t.Fatalf("expected opaque red, got %s", c)
	}
	c, _ := s.Pixel(1, 0)
	r, g, b, _ := c.Channels()
	if r != g || g != b || r < 0x70 || r > 0x90 {
		t.Fatalf("expected mid grey, got %s", c)
	}
}
