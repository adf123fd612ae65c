// video_splash.go - Boot splash banner drawn with gg

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

	"github.com/fogleman/gg"
)

const splashHeight = 40

var splashFill = RGBA(0x22, 0x3D, 0x9E, 0xD9)

// drawSplash renders a rounded title banner across the top of the back
// buffer and returns how many pixel rows it covers. The caller presents.
func drawSplash(s *PixelSurface, title string) int {
	w := s.Width()
	h := min(splashHeight, s.Height())
	if w < 8 || h < 8 {
		return 0
	}

	dc := gg.NewContext(w, h)
	dc.DrawRoundedRectangle(2, 2, float64(w-4), float64(h-4), 8)
	dc.SetColor(splashFill)
	dc.FillPreserve()
	dc.SetColor(DefaultPalette.LightBlue)
	dc.SetLineWidth(2)
	dc.Stroke()
	dc.SetColor(DefaultPalette.White)
	dc.DrawStringAnchored(title, float64(w)/2, float64(h)/2, 0.5, 0.35)

	im, ok := dc.Image().(*image.RGBA)
	if !ok {
		return 0
	}
	blendRGBA(s, im)
	return h
}

// blendRGBA composites a premultiplied RGBA image onto the surface at the
// origin.
func blendRGBA(s *PixelSurface, im *image.RGBA) {
	b := im.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := im.Pix[(y-b.Min.Y)*im.Stride:]
		for x := b.Min.X; x < b.Max.X; x++ {
			px := row[(x-b.Min.X)*4:]
			a := px[3]
			if a == 0 {
				continue
			}
			r := uint8(uint32(px[0]) * 255 / uint32(a))
			g := uint8(uint32(px[1]) * 255 / uint32(a))
			bl := uint8(uint32(px[2]) * 255 / uint32(a))
			s.SetPixelBlended(x-b.Min.X, y-b.Min.Y, RGBA(r, g, bl, a))
		}
	}
}
