// video_glyph.go - Fixed-cell glyph rasters for the text console

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionConsole
License: GPLv3 or later
*/

package main

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Glyph is a cell-sized raster of intensities, row-major, 0 = background and
// 255 = full foreground.
type Glyph struct {
	Width  int
	Height int
	Pix    []byte
}

func (g Glyph) At(x, y int) uint8 {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return 0
	}
	return g.Pix[y*g.Width+x]
}

// GlyphSource hands out one raster per byte. Every raster has the same cell
// size and lookups never fail.
type GlyphSource interface {
	CellSize() (w, h int)
	Raster(c byte) Glyph
}

type glyphTable struct {
	cellW, cellH int
	glyphs       [256]Glyph
}

func (t *glyphTable) CellSize() (int, int) {
	return t.cellW, t.cellH
}

func (t *glyphTable) Raster(c byte) Glyph {
	return t.glyphs[c]
}

// NewBasicFontGlyphs rasterises basicfont.Face7x13 once. Printable ASCII maps
// to its own glyph; everything else shares the replacement glyph.
func NewBasicFontGlyphs() GlyphSource {
	return newFaceGlyphs(basicfont.Face7x13, basicfont.Face7x13.Advance, basicfont.Face7x13.Height)
}

func newFaceGlyphs(face font.Face, cellW, cellH int) *glyphTable {
	t := &glyphTable{cellW: cellW, cellH: cellH}
	ascent := face.Metrics().Ascent.Round()

	replacement, ok := rasterRune(face, '�', cellW, cellH, ascent)
	if !ok {
		replacement = hollowBox(cellW, cellH)
	}
	for i := range t.glyphs {
		c := byte(i)
		t.glyphs[i] = replacement
		if c < 0x20 || c > 0x7E {
			continue
		}
		if g, ok := rasterRune(face, rune(c), cellW, cellH, ascent); ok {
			t.glyphs[i] = g
		}
	}
	return t
}

func rasterRune(face font.Face, r rune, cellW, cellH, ascent int) (Glyph, bool) {
	g := Glyph{Width: cellW, Height: cellH, Pix: make([]byte, cellW*cellH)}
	dr, mask, maskp, _, ok := face.Glyph(fixed.P(0, ascent), r)
	if !ok || mask == nil {
		return g, false
	}
	cell := image.Rect(0, 0, cellW, cellH)
	area := dr.Intersect(cell)
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			mx := maskp.X + x - dr.Min.X
			my := maskp.Y + y - dr.Min.Y
			a := color.AlphaModel.Convert(mask.At(mx, my)).(color.Alpha)
			g.Pix[y*cellW+x] = a.A
		}
	}
	return g, true
}

func hollowBox(w, h int) Glyph {
	g := Glyph{Width: w, Height: h, Pix: make([]byte, w*h)}
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			if x == 1 || y == 1 || x == w-2 || y == h-2 {
				g.Pix[y*w+x] = 0xFF
			}
		}
	}
	return g
}
