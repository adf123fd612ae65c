// video_chip.go - Double-buffered pixel surface over boot framebuffer memory

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

// FrameBufferInfo describes the display memory handed over by the boot
// environment. Stride is in pixels and may exceed Width when rows are padded.
type FrameBufferInfo struct {
	ByteLen       int
	Width         int
	Height        int
	Stride        int
	BytesPerPixel int
	Format        PixelFormat
}

// NewFrameBufferInfo fills in ByteLen from the geometry.
func NewFrameBufferInfo(width, height, stride, bpp int, format PixelFormat) FrameBufferInfo {
	return FrameBufferInfo{
		ByteLen:       stride * height * bpp,
		Width:         width,
		Height:        height,
		Stride:        stride,
		BytesPerPixel: bpp,
		Format:        format,
	}
}

func (info FrameBufferInfo) validate() error {
	if !info.Format.supported() {
		return fmt.Errorf("pixel format %v not supported", info.Format)
	}
	if info.BytesPerPixel < info.Format.minBytesPerPixel() || info.BytesPerPixel > 4 {
		return fmt.Errorf("%d bytes per pixel cannot hold format %v", info.BytesPerPixel, info.Format)
	}
	if info.Width <= 0 || info.Height <= 0 {
		return fmt.Errorf("empty geometry %dx%d", info.Width, info.Height)
	}
	if info.Stride < info.Width {
		return fmt.Errorf("stride %d smaller than width %d", info.Stride, info.Width)
	}
	if info.ByteLen != info.Stride*info.Height*info.BytesPerPixel {
		return fmt.Errorf("byte length %d does not match %dx%dx%d", info.ByteLen, info.Stride, info.Height, info.BytesPerPixel)
	}
	return nil
}

// PixelSurface owns the display memory (front buffer) and an off-screen back
// buffer with the same layout. Drawing only touches the back buffer;
// Present publishes it.
//
// The zero value is the uninitialised boot state. Init must run exactly
// once before any other method.
type PixelSurface struct {
	mu          sync.Mutex
	frontBuffer []byte
	backBuffer  []byte
	info        FrameBufferInfo
	frames      uint64
}

// Init binds the display memory and allocates a zeroed back buffer.
// Geometry the surface cannot drive is a boot contract violation and
// panics: the hardware cannot be renegotiated at runtime.
func (s *PixelSurface) Init(front []byte, info FrameBufferInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.backBuffer != nil {
		panic("pixel surface initialised twice")
	}
	if err := info.validate(); err != nil {
		panic(fmt.Sprintf("pixel surface: %v", err))
	}
	if len(front) != info.ByteLen {
		panic(fmt.Sprintf("pixel surface: front buffer is %d bytes, geometry needs %d", len(front), info.ByteLen))
	}
	s.info = info
	s.frontBuffer = front
	s.backBuffer = make([]byte, info.ByteLen)
}

// NewPixelSurface allocates its own display memory. Used by hosted boot
// and tests, where there is no firmware framebuffer to bind.
func NewPixelSurface(info FrameBufferInfo) *PixelSurface {
	s := &PixelSurface{}
	s.Init(make([]byte, info.ByteLen), info)
	return s
}

func (s *PixelSurface) Info() FrameBufferInfo {
	return s.info
}

func (s *PixelSurface) Width() int {
	return s.info.Width
}

func (s *PixelSurface) Height() int {
	return s.info.Height
}

// Frames counts completed Present calls.
func (s *PixelSurface) Frames() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// Clear fills the whole back buffer. Alpha is forced to opaque since no
// supported format persists transparency.
func (s *PixelSurface) Clear(c Color) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bpp := s.info.BytesPerPixel
	word := s.info.Format.Pack(c.Opaque())
	buf := s.backBuffer
	if len(buf) == 0 {
		return
	}
	copy(buf, word[:bpp])
	// Double the filled prefix until the buffer is full.
	for filled := bpp; filled < len(buf); filled *= 2 {
		copy(buf[filled:], buf[:filled])
	}
}

// ClearRect is the opaque counterpart of FillRect: the clipped rectangle is
// overwritten with c at full opacity.
func (s *PixelSurface) ClearRect(x, y, w, h int, c Color) {
	s.mu.Lock()
	defer s.mu.Unlock()

	x0, y0, x1, y1, ok := s.clipLocked(x, y, w, h)
	if !ok {
		return
	}
	bpp := s.info.BytesPerPixel
	word := s.info.Format.Pack(c.Opaque())
	for py := y0; py < y1; py++ {
		off := s.offsetLocked(x0, py)
		for px := x0; px < x1; px++ {
			copy(s.backBuffer[off:off+bpp], word[:bpp])
			off += bpp
		}
	}
}

// SetPixel writes c without looking at what is underneath. Used for glyph
// rendering where every pixel is fully covered.
func (s *PixelSurface) SetPixel(x, y int, c Color) {
	s.mu.Lock()
	s.setPixelLocked(x, y, c)
	s.mu.Unlock()
}

// SetPixelBlended composites c over the existing back-buffer pixel.
func (s *PixelSurface) SetPixelBlended(x, y int, c Color) {
	s.mu.Lock()
	s.blendPixelLocked(x, y, c)
	s.mu.Unlock()
}

// DrawGlyph renders one cell with its top-left corner at (x, y). Each glyph
// pixel is fg mixed over bg by the raster intensity and stored opaquely.
func (s *PixelSurface) DrawGlyph(x, y int, g Glyph, fg, bg Color) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for gy := 0; gy < g.Height; gy++ {
		for gx := 0; gx < g.Width; gx++ {
			s.setPixelLocked(x+gx, y+gy, mixGlyph(fg, bg, g.Pix[gy*g.Width+gx]))
		}
	}
}

// Pixel reads back a back-buffer pixel.
func (s *PixelSurface) Pixel(x, y int) (Color, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.inBoundsLocked(x, y) {
		return 0, false
	}
	return s.loadLocked(s.offsetLocked(x, y)), true
}

// FillRect blends c over the rectangle. Pixels outside the surface are
// clipped one by one; the rest are still drawn.
func (s *PixelSurface) FillRect(x, y, w, h int, c Color) {
	s.mu.Lock()
	defer s.mu.Unlock()

	x0, y0, x1, y1, ok := s.clipLocked(x, y, w, h)
	if !ok {
		return
	}
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			s.blendPixelLocked(px, py, c)
		}
	}
}

// ScrollUp moves the back-buffer content up by rows raw scanlines. The
// bottom rows keep whatever they held before; callers clear them.
func (s *PixelSurface) ScrollUp(rows int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rows <= 0 || rows >= s.info.Height {
		return
	}
	rowBytes := s.info.Stride * s.info.BytesPerPixel
	copy(s.backBuffer, s.backBuffer[rows*rowBytes:])
}

// Present copies the back buffer onto the display memory. Nothing drawn
// since the previous Present is visible until this runs.
func (s *PixelSurface) Present() {
	s.mu.Lock()
	copy(s.frontBuffer, s.backBuffer)
	s.frames++
	s.mu.Unlock()
}

// ScanoutRGBA converts the displayed front buffer into tightly packed RGBA,
// the way a display controller reads physical memory. dst is reused when it
// is large enough.
func (s *PixelSurface) ScanoutRGBA(dst []byte) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	size := s.info.Width * s.info.Height * 4
	if cap(dst) < size {
		dst = make([]byte, size)
	}
	dst = dst[:size]
	bpp := s.info.BytesPerPixel
	i := 0
	for y := 0; y < s.info.Height; y++ {
		off := y * s.info.Stride * bpp
		for x := 0; x < s.info.Width; x++ {
			c := s.info.Format.Unpack(loadWord(s.frontBuffer[off : off+bpp]))
			r, g, b, _ := c.Channels()
			if s.info.Format == PixelFormatU8 {
				g, b = r, r
			}
			dst[i], dst[i+1], dst[i+2], dst[i+3] = r, g, b, 0xFF
			i += 4
			off += bpp
		}
	}
	return dst
}

func (s *PixelSurface) setPixelLocked(x, y int, c Color) {
	if !s.inBoundsLocked(x, y) {
		return
	}
	s.storeLocked(s.offsetLocked(x, y), c)
}

func (s *PixelSurface) blendPixelLocked(x, y int, c Color) {
	if !s.inBoundsLocked(x, y) {
		return
	}
	off := s.offsetLocked(x, y)
	s.storeLocked(off, Blend(c, s.loadLocked(off)))
}

func (s *PixelSurface) inBoundsLocked(x, y int) bool {
	return x >= 0 && y >= 0 && x < s.info.Width && y < s.info.Height
}

func (s *PixelSurface) offsetLocked(x, y int) int {
	return (y*s.info.Stride + x) * s.info.BytesPerPixel
}

func (s *PixelSurface) loadLocked(off int) Color {
	return s.info.Format.Unpack(loadWord(s.backBuffer[off : off+s.info.BytesPerPixel]))
}

func (s *PixelSurface) storeLocked(off int, c Color) {
	word := s.info.Format.Pack(c)
	copy(s.backBuffer[off:off+s.info.BytesPerPixel], word[:])
}

func (s *PixelSurface) clipLocked(x, y, w, h int) (x0, y0, x1, y1 int, ok bool) {
	x0, y0 = max(x, 0), max(y, 0)
	x1, y1 = min(x+w, s.info.Width), min(y+h, s.info.Height)
	return x0, y0, x1, y1, x0 < x1 && y0 < y1
}
