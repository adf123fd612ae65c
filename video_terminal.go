// video_terminal.go - Glyph-based text console on top of the pixel surface

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
	"fmt"
	"sync"
)

const tabWidth = 8

// Bell is rung by the BEL control byte.
type Bell interface {
	Ring()
}

// TextConsole renders a character grid onto a PixelSurface. Each public call
// holds the console lock for its whole duration and ends with exactly one
// Present, so a Write becomes visible all at once.
type TextConsole struct {
	mu      sync.Mutex
	surface *PixelSurface
	glyphs  GlyphSource
	grid    *TextGrid
	bell    Bell

	cols, rows   int
	cellW, cellH int
	col, row     int

	palette  Palette
	fg, bg   Color
	esc      escState
	targetBG bool
}

// NewTextConsole sizes the grid from the surface and glyph cell. The grid has
// one more row than fits completely; that partial row is the scroll guard and
// the cursor never rests on it.
func NewTextConsole(surface *PixelSurface, glyphs GlyphSource, palette Palette) *TextConsole {
	cellW, cellH := glyphs.CellSize()
	if cellW <= 0 || cellH <= 0 || surface.Width() < cellW || surface.Height() < cellH {
		panic(fmt.Sprintf("text console: %dx%d surface cannot hold a %dx%d cell",
			surface.Width(), surface.Height(), cellW, cellH))
	}
	c := &TextConsole{
		surface: surface,
		glyphs:  glyphs,
		cellW:   cellW,
		cellH:   cellH,
		cols:    surface.Width() / cellW,
		rows:    surface.Height()/cellH + 1,
	}
	c.resetLocked(palette)
	return c
}

// Reinit swaps the palette and starts over with an empty grid, the cursor at
// the origin and default colours.
func (c *TextConsole) Reinit(palette Palette) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked(palette)
	c.surface.Clear(c.palette.Black)
	c.surface.Present()
}

func (c *TextConsole) resetLocked(palette Palette) {
	c.palette = palette
	c.fg, c.bg = palette.White, palette.Clear
	c.esc = escNormal
	c.targetBG = false
	c.col, c.row = 0, 0
	c.grid = NewTextGrid(c.cols, c.rows, c.blankLocked())
}

func (c *TextConsole) SetBell(b Bell) {
	c.mu.Lock()
	c.bell = b
	c.mu.Unlock()
}

// Write feeds p through the escape parser. It never fails; bytes the parser
// does not recognise are drawn literally.
func (c *TextConsole) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, b := range p {
		c.writeByteLocked(b)
	}
	c.surface.Present()
	return len(p), nil
}

func (c *TextConsole) WriteString(s string) (int, error) {
	return c.Write([]byte(s))
}

func (c *TextConsole) Printf(format string, args ...any) {
	fmt.Fprintf(c, format, args...)
}

func (c *TextConsole) Println(args ...any) {
	fmt.Fprintln(c, args...)
}

// Clear blanks the grid and paints the surface opaque black.
func (c *TextConsole) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.grid.Fill(c.blankLocked())
	c.col, c.row = 0, 0
	c.surface.Clear(c.palette.Black)
	c.surface.Present()
}

// Backspace erases the cell left of the cursor. It stops at column 0 and
// never moves to the previous row.
func (c *TextConsole) Backspace() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.backspaceLocked()
	c.surface.Present()
}

func (c *TextConsole) Palette() Palette {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.palette
}

func (c *TextConsole) Cursor() (col, row int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.col, c.row
}

func (c *TextConsole) Size() (cols, rows int) {
	return c.cols, c.rows
}

// Colors reports the current foreground and background.
func (c *TextConsole) Colors() (fg, bg Color) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fg, c.bg
}

func (c *TextConsole) Cell(x, y int) (ScreenCell, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.grid.Get(x, y)
}

func (c *TextConsole) Row(y int) ([]ScreenCell, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.grid.Row(y)
}

func (c *TextConsole) RowString(y int) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.grid.RowString(y)
}

func (c *TextConsole) writeByteLocked(b byte) {
	next, action := stepEscape(c.esc, b)
	c.esc = next
	switch action {
	case escActEmit:
		c.emitLocked(b)
	case escActReset:
		c.fg, c.bg = c.palette.White, c.palette.Clear
	case escActTargetBG:
		c.targetBG = true
	case escActTargetFG:
		c.targetBG = false
	case escActSetColour:
		colour, _ := c.palette.Lookup(b)
		if c.targetBG {
			c.bg = colour
		} else {
			c.fg = colour
		}
	}
}

func (c *TextConsole) emitLocked(b byte) {
	switch b {
	case '\n':
		c.newlineLocked()
	case '\r':
		c.col = 0
	case '\b':
		c.backspaceLocked()
	case '\t':
		if c.col >= c.cols {
			c.newlineLocked()
		}
		c.col = min((c.col/tabWidth+1)*tabWidth, c.cols)
	case '\a':
		if c.bell != nil {
			c.bell.Ring()
		}
	default:
		c.putLocked(b)
	}
}

// putLocked draws b at the cursor. Wrapping happens before drawing, so a
// full row leaves the cursor one past the last column until the next byte.
func (c *TextConsole) putLocked(b byte) {
	if c.col >= c.cols {
		c.newlineLocked()
	}
	c.grid.Set(c.col, c.row, ScreenCell{Char: b, FG: c.fg, BG: c.bg})
	c.renderCellLocked(c.col, c.row)
	c.col++
}

func (c *TextConsole) backspaceLocked() {
	if c.col == 0 {
		return
	}
	c.col--
	c.grid.Set(c.col, c.row, c.blankLocked())
	c.renderCellLocked(c.col, c.row)
}

func (c *TextConsole) newlineLocked() {
	c.col = 0
	c.row++
	if c.row < c.rows-1 {
		return
	}
	blank := c.blankLocked()
	c.grid.ScrollUp(blank)
	c.row--

	c.surface.ScrollUp(c.cellH)
	top := (c.rows - 2) * c.cellH
	c.surface.ClearRect(0, top, c.surface.Width(), c.surface.Height()-top, blank.BG)
	for x := 0; x < c.cols; x++ {
		c.renderCellLocked(x, c.row)
	}
}

func (c *TextConsole) renderCellLocked(col, row int) {
	cell, ok := c.grid.Get(col, row)
	if !ok {
		return
	}
	c.surface.DrawGlyph(col*c.cellW, row*c.cellH, c.glyphs.Raster(cell.Char), cell.FG, cell.BG)
}

func (c *TextConsole) blankLocked() ScreenCell {
	return BlankCell(c.palette.White, c.palette.Clear)
}
