// video_screen_buffer.go - Character cell grid behind the text console

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

import "strings"

type ScreenCell struct {
	Char byte
	FG   Color
	BG   Color
}

func BlankCell(fg, bg Color) ScreenCell {
	return ScreenCell{Char: ' ', FG: fg, BG: bg}
}

// TextGrid is the character-level mirror of what the console has drawn.
type TextGrid struct {
	cols, rows int
	cells      []ScreenCell
}

func NewTextGrid(cols, rows int, fill ScreenCell) *TextGrid {
	if cols <= 0 {
		cols = 1
	}
	if rows <= 0 {
		rows = 1
	}
	g := &TextGrid{
		cols:  cols,
		rows:  rows,
		cells: make([]ScreenCell, cols*rows),
	}
	for i := range g.cells {
		g.cells[i] = fill
	}
	return g
}

func (g *TextGrid) Width() int  { return g.cols }
func (g *TextGrid) Height() int { return g.rows }

func (g *TextGrid) Get(x, y int) (ScreenCell, bool) {
	if !g.inBounds(x, y) {
		return ScreenCell{}, false
	}
	return g.cells[y*g.cols+x], true
}

func (g *TextGrid) Set(x, y int, cell ScreenCell) {
	if !g.inBounds(x, y) {
		return
	}
	g.cells[y*g.cols+x] = cell
}

// Row returns a copy of row y.
func (g *TextGrid) Row(y int) ([]ScreenCell, bool) {
	if y < 0 || y >= g.rows {
		return nil, false
	}
	row := make([]ScreenCell, g.cols)
	copy(row, g.cells[y*g.cols:(y+1)*g.cols])
	return row, true
}

// SetRow replaces row y. Rows of the wrong length are ignored.
func (g *TextGrid) SetRow(y int, row []ScreenCell) {
	if y < 0 || y >= g.rows || len(row) != g.cols {
		return
	}
	copy(g.cells[y*g.cols:(y+1)*g.cols], row)
}

// ScrollUp drops row 0, shifts the rest up by one and fills the last row.
func (g *TextGrid) ScrollUp(fill ScreenCell) {
	copy(g.cells, g.cells[g.cols:])
	last := g.cells[(g.rows-1)*g.cols:]
	for i := range last {
		last[i] = fill
	}
}

func (g *TextGrid) Fill(fill ScreenCell) {
	for i := range g.cells {
		g.cells[i] = fill
	}
}

func (g *TextGrid) RowString(y int) string {
	if y < 0 || y >= g.rows {
		return ""
	}
	var sb strings.Builder
	for _, c := range g.cells[y*g.cols : (y+1)*g.cols] {
		ch := c.Char
		if ch == 0 {
			ch = ' '
		}
		sb.WriteByte(ch)
	}
	return strings.TrimRight(sb.String(), " ")
}

func (g *TextGrid) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.cols && y < g.rows
}
