// boot.go - Process-wide display singletons and kernel print helpers

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
	"io"
	"log"
	"os"
	"sync"
)

// diag carries diagnostics that must never go through the console itself.
var diag = log.New(os.Stderr, "console: ", log.LstdFlags)

func setDiagOutput(w io.Writer) {
	diag.SetOutput(w)
}

var (
	bootMu      sync.Mutex
	bootSurface *PixelSurface
	bootConsole *TextConsole
)

// bootDisplay binds the firmware framebuffer and brings up the console. It
// runs once; a second call is a boot sequence bug.
func bootDisplay(front []byte, info FrameBufferInfo, palette Palette) *TextConsole {
	bootMu.Lock()
	defer bootMu.Unlock()

	if bootConsole != nil {
		panic("display already booted")
	}
	surface := &PixelSurface{}
	surface.Init(front, info)
	console := NewTextConsole(surface, NewBasicFontGlyphs(), palette)
	bootSurface, bootConsole = surface, console
	return console
}

func kernelConsole() *TextConsole {
	bootMu.Lock()
	c := bootConsole
	bootMu.Unlock()
	if c == nil {
		panic("kprint before display boot")
	}
	return c
}

func kprintf(format string, args ...any) {
	fmt.Fprintf(kernelConsole(), format, args...)
}

func kprintln(args ...any) {
	fmt.Fprintln(kernelConsole(), args...)
}
