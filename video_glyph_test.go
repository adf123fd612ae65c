package main

import "testing"

func TestGlyphs_CellSize(t *testing.T) {
	glyphs := NewBasicFontGlyphs()
	w, h := glyphs.CellSize()
	if w != 7 || h != 13 {
		t.Fatalf("expected 7x13 cells, got %dx%d", w, h)
	}
	for c := range 256 {
		g := glyphs.Raster(byte(c))
		if g.Width != w || g.Height != h || len(g.Pix) != w*h {
			t.Fatalf("glyph 0x%02X has shape %dx%d/%d", c, g.Width, g.Height, len(g.Pix))
		}
	}
}

func TestGlyphs_SpaceIsBlank(t *testing.T) {
	g := NewBasicFontGlyphs().Raster(' ')
	for i, v := range g.Pix {
		if v != 0 {
			t.Fatalf("expected blank space glyph, pixel %d = %d", i, v)
		}
	}
}

func TestGlyphs_PrintableHasInk(t *testing.T) {
	glyphs := NewBasicFontGlyphs()
	for _, c := range []byte("A#0z~") {
		if inkCount(glyphs.Raster(c)) == 0 {
			t.Fatalf("expected ink in glyph %q", c)
		}
	}
}

func TestGlyphs_NonPrintableSharesReplacement(t *testing.T) {
	glyphs := NewBasicFontGlyphs()
	rep := glyphs.Raster(0x01)
	if inkCount(rep) == 0 {
		t.Fatal("expected visible replacement glyph")
	}
	for _, c := range []byte{0x00, 0x1F, 0x7F, 0x80, 0xFF} {
		g := glyphs.Raster(c)
		for i := range g.Pix {
			if g.Pix[i] != rep.Pix[i] {
				t.Fatalf("glyph 0x%02X differs from replacement at %d", c, i)
			}
		}
	}
}

func TestGlyphs_HollowBox(t *testing.T) {
	g := hollowBox(7, 13)
	if g.At(1, 1) != 0xFF || g.At(5, 11) != 0xFF {
		t.Fatal("expected box corners set")
	}
	if g.At(3, 6) != 0 || g.At(0, 0) != 0 {
		t.Fatal("expected box interior and margin clear")
	}
}

func inkCount(g Glyph) int {
	n := 0
	for _, v := range g.Pix {
		if v != 0 {
			n++
		}
	}
	return n
}
