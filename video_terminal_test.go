package main

import (
	"strings"
	"testing"
)

// 70x39 with 7x13 cells gives a 10x4 grid: three full rows plus the guard.
func newTestConsole(t *testing.T) *TextConsole {
	t.Helper()
	surface := NewPixelSurface(NewFrameBufferInfo(70, 39, 72, 4, PixelFormatRGB))
	return NewTextConsole(surface, NewBasicFontGlyphs(), DefaultPalette)
}

type countingBell struct{ rings int }

func (b *countingBell) Ring() { b.rings++ }

func TestTextConsole_Size(t *testing.T) {
	c := newTestConsole(t)
	cols, rows := c.Size()
	if cols != 10 || rows != 4 {
		t.Fatalf("expected 10x4, got %dx%d", cols, rows)
	}
}

func TestTextConsole_TooSmallPanics(t *testing.T) {
	expectPanic(t, "cannot hold", func() {
		NewTextConsole(NewPixelSurface(NewFrameBufferInfo(5, 5, 5, 4, PixelFormatRGB)), NewBasicFontGlyphs(), DefaultPalette)
	})
}

func TestTextConsole_WriteSinglePresent(t *testing.T) {
	c := newTestConsole(t)
	before := c.surface.Frames()
	n, err := c.WriteString("hello\nworld")
	if err != nil || n != 11 {
		t.Fatalf("expected 11 bytes written, got %d (%v)", n, err)
	}
	if got := c.surface.Frames() - before; got != 1 {
		t.Fatalf("expected exactly one present, got %d", got)
	}
	if c.RowString(0) != "hello" || c.RowString(1) != "world" {
		t.Fatalf("unexpected rows %q %q", c.RowString(0), c.RowString(1))
	}
	if col, row := c.Cursor(); col != 5 || row != 1 {
		t.Fatalf("expected cursor (5,1), got (%d,%d)", col, row)
	}
}

func TestTextConsole_ColourEscape(t *testing.T) {
	c := newTestConsole(t)
	c.WriteString("\x1b2;4mRED\x1b0m")
	for i, ch := range []byte("RED") {
		cell, _ := c.Cell(i, 0)
		if cell.Char != ch || cell.FG != DefaultPalette.Red || cell.BG != DefaultPalette.Clear {
			t.Fatalf("cell %d: unexpected %+v", i, cell)
		}
	}
	fg, bg := c.Colors()
	if fg != DefaultPalette.White || bg != DefaultPalette.Clear {
		t.Fatalf("expected defaults after reset, got %s/%s", fg, bg)
	}
	if col, _ := c.Cursor(); col != 3 {
		t.Fatalf("expected escape bytes to take no columns, cursor at %d", col)
	}
}

func TestTextConsole_BackgroundEscape(t *testing.T) {
	c := newTestConsole(t)
	c.WriteString("\x1b1;1mX\x1b1;rmY")
	x, _ := c.Cell(0, 0)
	y, _ := c.Cell(1, 0)
	if x.BG != DefaultPalette.Blue || x.FG != DefaultPalette.White {
		t.Fatalf("expected white on blue, got %+v", x)
	}
	if y.BG != DefaultPalette.Clear {
		t.Fatalf("expected clear background, got %+v", y)
	}
}

func TestTextConsole_EscapeStatePersistsAcrossWrites(t *testing.T) {
	c := newTestConsole(t)
	c.WriteString("\x1b2")
	c.WriteString(";a")
	c.WriteString("mG")
	cell, _ := c.Cell(0, 0)
	if cell.Char != 'G' || cell.FG != DefaultPalette.LightGreen {
		t.Fatalf("expected light green G, got %+v", cell)
	}
}

func TestTextConsole_UnknownEscapeIsLiteral(t *testing.T) {
	c := newTestConsole(t)
	c.WriteString("\x1bxA")
	if got := c.RowString(0); got != "xA" {
		t.Fatalf("expected literal xA, got %q", got)
	}
}

func TestTextConsole_WrapOnce(t *testing.T) {
	c := newTestConsole(t)
	cols, _ := c.Size()
	c.WriteString(strings.Repeat("x", cols+5))
	if got := c.RowString(0); got != strings.Repeat("x", cols) {
		t.Fatalf("expected full first row, got %q", got)
	}
	if cell, _ := c.Cell(4, 1); cell.Char != 'x' {
		t.Fatalf("expected last char at (4,1), got %q", cell.Char)
	}
	if cell, _ := c.Cell(5, 1); cell.Char != ' ' {
		t.Fatalf("expected (5,1) blank, got %q", cell.Char)
	}
	if col, row := c.Cursor(); col != 5 || row != 1 {
		t.Fatalf("expected cursor (5,1), got (%d,%d)", col, row)
	}
}

func TestTextConsole_FullRowDefersWrap(t *testing.T) {
	c := newTestConsole(t)
	c.WriteString(strings.Repeat("y", 10))
	if col, row := c.Cursor(); col != 10 || row != 0 {
		t.Fatalf("expected cursor (10,0), got (%d,%d)", col, row)
	}
}

func TestTextConsole_Scroll(t *testing.T) {
	c := newTestConsole(t)
	c.WriteString("a\nb\nc\nd")
	for y, want := range []string{"b", "c", "d", ""} {
		if got := c.RowString(y); got != want {
			t.Fatalf("row %d: expected %q, got %q", y, want, got)
		}
	}
	if col, row := c.Cursor(); col != 1 || row != 2 {
		t.Fatalf("expected cursor (1,2), got (%d,%d)", col, row)
	}

	// The scrolled pixels must match a console that drew the same rows
	// directly.
	ref := newTestConsole(t)
	ref.WriteString("b\nc\nd")
	w, h := c.surface.Width(), c.surface.Height()
	for y := range h {
		for x := range w {
			got, _ := c.surface.Pixel(x, y)
			want, _ := ref.surface.Pixel(x, y)
			if got.Opaque() != want.Opaque() {
				t.Fatalf("pixel (%d,%d): expected %s, got %s", x, y, want, got)
			}
		}
	}
}

func TestTextConsole_ScrollKeepsLastRowBlank(t *testing.T) {
	c := newTestConsole(t)
	c.WriteString("1\n2\n3\n4\n5\n")
	_, rows := c.Size()
	last, _ := c.Row(rows - 1)
	for x, cell := range last {
		if cell != BlankCell(DefaultPalette.White, DefaultPalette.Clear) {
			t.Fatalf("guard row col %d not blank: %+v", x, cell)
		}
	}
	if got := c.RowString(1); got != "5" {
		t.Fatalf("expected 5 on row 1, got %q", got)
	}
}

func TestTextConsole_Backspace(t *testing.T) {
	c := newTestConsole(t)
	c.WriteString("ab")
	c.Backspace()
	if got := c.RowString(0); got != "a" {
		t.Fatalf("expected a, got %q", got)
	}
	c.Backspace()
	c.Backspace()
	if col, row := c.Cursor(); col != 0 || row != 0 {
		t.Fatalf("expected cursor at origin, got (%d,%d)", col, row)
	}

	c.WriteString("\nz")
	c.Backspace()
	c.Backspace()
	if col, row := c.Cursor(); col != 0 || row != 1 {
		t.Fatalf("expected backspace to stop at column 0, got (%d,%d)", col, row)
	}
}

func TestTextConsole_ControlBytes(t *testing.T) {
	c := newTestConsole(t)
	bell := &countingBell{}
	c.SetBell(bell)
	c.WriteString("ab\rX\tY\a")
	if got := c.RowString(0); got != "Xb      Y" {
		t.Fatalf("unexpected row %q", got)
	}
	if bell.rings != 1 {
		t.Fatalf("expected one bell, got %d", bell.rings)
	}
}

func TestTextConsole_TabWrapsAtEdge(t *testing.T) {
	c := newTestConsole(t)
	c.WriteString("012345678\tQ")
	if got := c.RowString(1); got != "Q" {
		t.Fatalf("expected Q on row 1, got %q", got)
	}
}

func TestTextConsole_Clear(t *testing.T) {
	c := newTestConsole(t)
	c.WriteString("junk\nmore")
	c.Clear()
	if col, row := c.Cursor(); col != 0 || row != 0 {
		t.Fatalf("expected cursor at origin, got (%d,%d)", col, row)
	}
	if c.RowString(0) != "" || c.RowString(1) != "" {
		t.Fatal("expected blank grid")
	}
	if got, _ := c.surface.Pixel(3, 3); got != DefaultPalette.Black {
		t.Fatalf("expected opaque black, got %s", got)
	}
}

func TestTextConsole_GlyphPixels(t *testing.T) {
	c := newTestConsole(t)
	c.WriteString("\x1b2;emI")
	g := c.glyphs.Raster('I')
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			px, _ := c.surface.Pixel(x, y)
			want := RGBA(0, 0, 0, 0xFF)
			if g.At(x, y) == 0xFF {
				want = DefaultPalette.Yellow
			}
			if g.At(x, y) == 0 || g.At(x, y) == 0xFF {
				if px != want {
					t.Fatalf("pixel (%d,%d): expected %s, got %s", x, y, want, px)
				}
			}
		}
	}
}

func TestTextConsole_Reinit(t *testing.T) {
	c := newTestConsole(t)
	c.WriteString("\x1b2;4mabc")
	p := DefaultPalette
	p.White = RGBA(0xEE, 0xEE, 0xEE, 0xFF)
	c.Reinit(p)
	if col, row := c.Cursor(); col != 0 || row != 0 {
		t.Fatalf("expected cursor reset, got (%d,%d)", col, row)
	}
	if fg, _ := c.Colors(); fg != p.White {
		t.Fatalf("expected new default fg, got %s", fg)
	}
	if c.RowString(0) != "" {
		t.Fatal("expected empty grid")
	}
	if got := c.Palette(); got != p {
		t.Fatal("expected new palette")
	}
}
