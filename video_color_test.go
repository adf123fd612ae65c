package main

import (
	"image/color"
	"testing"
)

func TestColor_Channels(t *testing.T) {
	c := RGBA(0x12, 0x34, 0x56, 0x78)
	if c != 0x12345678 {
		t.Fatalf("expected 0x12345678, got %s", c)
	}
	r, g, b, a := c.Channels()
	if r != 0x12 || g != 0x34 || b != 0x56 || a != 0x78 {
		t.Fatalf("unexpected channels %02X %02X %02X %02X", r, g, b, a)
	}
	if c.Opaque() != 0x123456FF {
		t.Fatalf("expected opaque 0x123456FF, got %s", c.Opaque())
	}
}

func TestColor_ImplementsColorModel(t *testing.T) {
	var c color.Color = DefaultPalette.LightRed
	got := color.NRGBAModel.Convert(c).(color.NRGBA)
	if got != (color.NRGBA{R: 0xFF, G: 0x55, B: 0x55, A: 0xFF}) {
		t.Fatalf("unexpected NRGBA %+v", got)
	}
	r, g, b, a := DefaultPalette.Clear.RGBA()
	if r|g|b|a != 0 {
		t.Fatalf("expected transparent clear, got %d %d %d %d", r, g, b, a)
	}
}

func TestBlend_Endpoints(t *testing.T) {
	src := RGBA(10, 200, 30, 0xFF)
	dst := RGBA(99, 1, 250, 0x80)
	if got := Blend(src, dst); got != src {
		t.Fatalf("alpha 255: expected %s, got %s", src, got)
	}
	clear := RGBA(10, 200, 30, 0)
	if got := Blend(clear, dst); got != dst {
		t.Fatalf("alpha 0: expected %s, got %s", dst, got)
	}
}

func TestBlend_Partial(t *testing.T) {
	// 102/255 = 0.4
	got := Blend(RGBA(255, 0, 0, 102), RGBA(0, 0, 0, 0))
	r, g, b, _ := got.Channels()
	if r != 102 || g != 0 || b != 0 {
		t.Fatalf("expected red 102, got %s", got)
	}
}

func TestBlend_TruncatesFloat32(t *testing.T) {
	// Exact arithmetic gives 51*190/255 = 38; float32 lands just below.
	got := Blend(RGBA(0, 0, 0, 65), RGBA(51, 0, 0, 255))
	if r, _, _, _ := got.Channels(); r != 37 {
		t.Fatalf("expected red 37, got %s", got)
	}
	got = Blend(RGBA(200, 0, 0, 128), RGBA(100, 0, 0, 255))
	if r, _, _, _ := got.Channels(); r != 150 {
		t.Fatalf("expected red 150, got %s", got)
	}
}

func TestMixGlyph_MatchesBlend(t *testing.T) {
	fg := RGBA(0, 0, 0, 0xFF)
	bg := RGBA(51, 0, 0, 0xFF)
	want, _, _, _ := Blend(RGBA(0, 0, 0, 65), bg).Channels()
	if r, _, _, _ := mixGlyph(fg, bg, 65).Channels(); r != want {
		t.Fatalf("expected red %d, got %d", want, r)
	}
}

func TestMixGlyph_KeepsForegroundAlpha(t *testing.T) {
	fg := RGBA(200, 100, 50, 0xFF)
	bg := RGBA(1, 2, 3, 0)
	if got := mixGlyph(fg, bg, 0xFF); got != fg {
		t.Fatalf("full intensity: expected %s, got %s", fg, got)
	}
	if got := mixGlyph(fg, bg, 0); got != RGBA(1, 2, 3, 0xFF) {
		t.Fatalf("zero intensity: expected bg with fg alpha, got %s", got)
	}
}

func TestPixelFormat_PackUnpackRoundTrip(t *testing.T) {
	colours := []Color{0, 0xFFFFFFFF, 0x12345678, DefaultPalette.Brown, DefaultPalette.LightCyan}
	for _, f := range []PixelFormat{PixelFormatRGB, PixelFormatBGR, PixelFormatU8} {
		for _, c := range colours {
			if got := f.Unpack(f.Pack(c)); got != c {
				t.Fatalf("%v: expected %s, got %s", f, c, got)
			}
		}
	}
}

func TestPixelFormat_ByteOrder(t *testing.T) {
	c := RGBA(1, 2, 3, 4)
	if got := PixelFormatRGB.Pack(c); got != [4]byte{1, 2, 3, 4} {
		t.Fatalf("rgb: got %v", got)
	}
	if got := PixelFormatBGR.Pack(c); got != [4]byte{3, 2, 1, 4} {
		t.Fatalf("bgr: got %v", got)
	}
}

func TestParsePixelFormat(t *testing.T) {
	for in, want := range map[string]PixelFormat{"rgb": PixelFormatRGB, "BGR": PixelFormatBGR, "u8": PixelFormatU8} {
		got, err := ParsePixelFormat(in)
		if err != nil || got != want {
			t.Fatalf("%q: expected %v, got %v (%v)", in, want, got, err)
		}
	}
	if _, err := ParsePixelFormat("yuv"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestPalette_Lookup(t *testing.T) {
	p := DefaultPalette
	cases := map[byte]Color{
		'0': p.Black, '4': p.Red, '7': p.LightGray, '9': p.LightBlue,
		'a': p.LightGreen, 'f': p.White, 'r': p.Clear,
	}
	for code, want := range cases {
		got, ok := p.Lookup(code)
		if !ok || got != want {
			t.Fatalf("code %q: expected %s, got %s", code, want, got)
		}
	}
	if _, ok := p.Lookup('g'); ok {
		t.Fatal("expected 'g' to be rejected")
	}
}
