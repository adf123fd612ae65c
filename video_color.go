// video_color.go - Colour packing, blending and the console palette

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

import "fmt"

// Color is a packed 0xRRGGBBAA value.
type Color uint32

func RGBA(r, g, b, a uint8) Color {
	return Color(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a))
}

// Channels splits the packed value into its 8-bit channels.
func (c Color) Channels() (r, g, b, a uint8) {
	return uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Opaque returns c with the alpha channel forced to 255.
func (c Color) Opaque() Color {
	return c | 0xFF
}

// RGBA implements image/color.Color. The stored channels are straight
// (not premultiplied), so they are scaled by alpha on the way out.
func (c Color) RGBA() (r, g, b, a uint32) {
	cr, cg, cb, ca := c.Channels()
	a = uint32(ca) * 0x101
	r = uint32(cr) * 0x101 * a / 0xFFFF
	g = uint32(cg) * 0x101 * a / 0xFFFF
	b = uint32(cb) * 0x101 * a / 0xFFFF
	return
}

func (c Color) String() string {
	return fmt.Sprintf("#%08X", uint32(c))
}

// mixChannel computes s*alpha + d*inv in float32 and truncates. Each product
// is converted explicitly so the compiler cannot fuse it into an FMA.
func mixChannel(s, d uint8, alpha, inv float32) uint8 {
	return uint8(float32(float32(s)*alpha) + float32(float32(d)*inv))
}

// Blend composites src over dst: out = src*alpha + dst*(1-alpha) for every
// channel, alpha included. Results are truncated, never rounded, so the
// output is bit-reproducible.
func Blend(src, dst Color) Color {
	sr, sg, sb, sa := src.Channels()
	dr, dg, db, da := dst.Channels()
	alpha := float32(sa) / 255.0
	inv := 1.0 - alpha
	return RGBA(
		mixChannel(sr, dr, alpha, inv),
		mixChannel(sg, dg, alpha, inv),
		mixChannel(sb, db, alpha, inv),
		mixChannel(sa, da, alpha, inv),
	)
}

// mixGlyph shades one glyph pixel: fg over bg weighted by the raster
// intensity. The result keeps the foreground alpha.
func mixGlyph(fg, bg Color, intensity uint8) Color {
	fr, fgc, fb, fa := fg.Channels()
	br, bgc, bb, _ := bg.Channels()
	alpha := float32(intensity) / 255.0
	inv := 1.0 - alpha
	return RGBA(
		mixChannel(fr, br, alpha, inv),
		mixChannel(fgc, bgc, alpha, inv),
		mixChannel(fb, bb, alpha, inv),
		fa,
	)
}

// PixelFormat is the channel order of the display memory.
type PixelFormat int

const (
	PixelFormatUnknown PixelFormat = iota
	PixelFormatRGB
	PixelFormatBGR
	PixelFormatU8
)

func (f PixelFormat) String() string {
	switch f {
	case PixelFormatRGB:
		return "rgb"
	case PixelFormatBGR:
		return "bgr"
	case PixelFormatU8:
		return "u8"
	default:
		return fmt.Sprintf("PixelFormat(%d)", int(f))
	}
}

// ParsePixelFormat maps a flag value to a format.
func ParsePixelFormat(s string) (PixelFormat, error) {
	switch s {
	case "rgb", "RGB":
		return PixelFormatRGB, nil
	case "bgr", "BGR":
		return PixelFormatBGR, nil
	case "u8", "U8", "gray":
		return PixelFormatU8, nil
	}
	return PixelFormatUnknown, fmt.Errorf("unknown pixel format %q", s)
}

func (f PixelFormat) supported() bool {
	return f == PixelFormatRGB || f == PixelFormatBGR || f == PixelFormatU8
}

// minBytesPerPixel is the narrowest pixel that still holds every colour
// channel of the format.
func (f PixelFormat) minBytesPerPixel() int {
	if f == PixelFormatU8 {
		return 1
	}
	return 3
}

// Pack orders the channels of c the way the format lays them out in memory.
// Only the first bytes-per-pixel bytes of the word are ever stored.
func (f PixelFormat) Pack(c Color) [4]byte {
	r, g, b, a := c.Channels()
	switch f {
	case PixelFormatRGB, PixelFormatU8:
		return [4]byte{r, g, b, a}
	case PixelFormatBGR:
		return [4]byte{b, g, r, a}
	}
	panic(fmt.Sprintf("pixel format %v not supported", f))
}

// Unpack is the inverse of Pack.
func (f PixelFormat) Unpack(w [4]byte) Color {
	switch f {
	case PixelFormatRGB, PixelFormatU8:
		return RGBA(w[0], w[1], w[2], w[3])
	case PixelFormatBGR:
		return RGBA(w[2], w[1], w[0], w[3])
	}
	panic(fmt.Sprintf("pixel format %v not supported", f))
}

// loadWord widens a stored pixel to a full word. Bytes the pixel does not
// carry read back as zero colour and opaque alpha.
func loadWord(px []byte) [4]byte {
	w := [4]byte{0, 0, 0, 0xFF}
	copy(w[:], px)
	return w
}

// Palette is the fixed 16-entry console palette plus the transparent
// "clear" colour.
type Palette struct {
	Clear      Color
	Black      Color
	Blue       Color
	Green      Color
	Cyan       Color
	Red        Color
	Magenta    Color
	Brown      Color
	LightGray  Color
	DarkGray   Color
	LightBlue  Color
	LightGreen Color
	LightCyan  Color
	LightRed   Color
	Pink       Color
	Yellow     Color
	White      Color
}

var DefaultPalette = Palette{
	Clear:      0x00_00_00_00,
	Black:      0x00_00_00_FF,
	Blue:       0x00_00_AA_FF,
	Green:      0x00_AA_00_FF,
	Cyan:       0x00_AA_AA_FF,
	Red:        0xAA_00_00_FF,
	Magenta:    0xAA_00_AA_FF,
	Brown:      0xAA_55_00_FF,
	LightGray:  0xAA_AA_AA_FF,
	DarkGray:   0x55_55_55_FF,
	LightBlue:  0x55_55_FF_FF,
	LightGreen: 0x55_FF_55_FF,
	LightCyan:  0x55_FF_FF_FF,
	LightRed:   0xFF_55_55_FF,
	Pink:       0xFF_55_FF_FF,
	Yellow:     0xFF_FF_55_FF,
	White:      0xFF_FF_FF_FF,
}

// Entries returns the 16 indexed colours in escape-code order.
func (p *Palette) Entries() [16]Color {
	return [16]Color{
		p.Black, p.Blue, p.Green, p.Cyan,
		p.Red, p.Magenta, p.Brown, p.LightGray,
		p.DarkGray, p.LightBlue, p.LightGreen, p.LightCyan,
		p.LightRed, p.Pink, p.Yellow, p.White,
	}
}

// Lookup resolves an escape palette code: '0'-'9' and 'a'-'f' index the
// palette, 'r' selects Clear.
func (p *Palette) Lookup(code byte) (Color, bool) {
	if code == 'r' {
		return p.Clear, true
	}
	idx, ok := paletteIndex(code)
	if !ok {
		return 0, false
	}
	return p.Entries()[idx], true
}

func paletteIndex(code byte) (int, bool) {
	switch {
	case code >= '0' && code <= '9':
		return int(code - '0'), true
	case code >= 'a' && code <= 'f':
		return int(code-'a') + 10, true
	}
	return 0, false
}
