// video_backend_tcell.go - Terminal cell display backend

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
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
)

// TcellOutput renders the framebuffer into the host terminal, two pixels per
// cell using the upper half block, and plays terminal key events into the
// keyboard controller.
type TcellOutput struct {
	mu         sync.Mutex
	newScreen  func() (tcell.Screen, error)
	screen     tcell.Screen
	config     DisplayConfig
	started    bool
	frameCount atomic.Uint64
	handler    func(byte)
	done       chan struct{}
	closeOnce  sync.Once
	polling    sync.WaitGroup
}

func NewTcellOutput() (DisplayOutput, error) {
	return newTcellOutput(tcell.NewScreen), nil
}

func newTcellOutput(newScreen func() (tcell.Screen, error)) *TcellOutput {
	return &TcellOutput{
		newScreen: newScreen,
		config:    DisplayConfig{RefreshRate: 30},
		done:      make(chan struct{}),
	}
}

func (to *TcellOutput) Start() error {
	to.mu.Lock()
	defer to.mu.Unlock()
	if to.started {
		return nil
	}

	screen, err := to.newScreen()
	if err != nil {
		return &VideoError{Operation: "tcell start", Details: "create screen", Err: err}
	}
	if err := screen.Init(); err != nil {
		return &VideoError{Operation: "tcell start", Details: "init screen", Err: err}
	}
	screen.HideCursor()
	screen.Clear()
	to.screen = screen
	to.started = true

	to.polling.Add(1)
	go to.pollEvents(screen)
	return nil
}

func (to *TcellOutput) pollEvents(screen tcell.Screen) {
	defer to.polling.Done()
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		if !to.handleEvent(ev) {
			to.closeOnce.Do(func() { close(to.done) })
		}
	}
}

// handleEvent returns false when the user asked to quit.
func (to *TcellOutput) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlQ ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q' && ev.Modifiers()&tcell.ModCtrl != 0) {
			return false
		}
		to.emitSeq(tcellKeySequence(ev.Key(), ev.Rune(), ev.Modifiers()))
	case *tcell.EventResize:
		to.mu.Lock()
		if to.screen != nil {
			to.screen.Sync()
		}
		to.mu.Unlock()
	}
	return true
}

func (to *TcellOutput) emitSeq(seq []byte) {
	to.mu.Lock()
	handler := to.handler
	to.mu.Unlock()
	if handler == nil {
		return
	}
	for _, b := range seq {
		handler(b)
	}
}

func (to *TcellOutput) SetScancodeHandler(fn func(byte)) {
	to.mu.Lock()
	to.handler = fn
	to.mu.Unlock()
}

func (to *TcellOutput) Stop() error {
	to.mu.Lock()
	screen := to.screen
	to.screen = nil
	to.started = false
	to.mu.Unlock()

	if screen != nil {
		screen.Fini()
		to.polling.Wait()
	}
	return nil
}

func (to *TcellOutput) Close() error {
	err := to.Stop()
	to.closeOnce.Do(func() { close(to.done) })
	return err
}

func (to *TcellOutput) Done() <-chan struct{} {
	return to.done
}

func (to *TcellOutput) IsStarted() bool {
	to.mu.Lock()
	defer to.mu.Unlock()
	return to.started
}

func (to *TcellOutput) SetDisplayConfig(config DisplayConfig) error {
	if config.Width <= 0 || config.Height <= 0 {
		return &VideoError{
			Operation: "tcell config",
			Details:   "width and height must be positive",
		}
	}
	to.mu.Lock()
	defer to.mu.Unlock()
	if config.RefreshRate <= 0 {
		config.RefreshRate = to.config.RefreshRate
	}
	to.config = config
	return nil
}

func (to *TcellOutput) GetDisplayConfig() DisplayConfig {
	to.mu.Lock()
	defer to.mu.Unlock()
	return to.config
}

// UpdateFrame scales the RGBA frame to the terminal with nearest sampling.
// Each cell takes its foreground from the upper pixel and its background
// from the lower one.
func (to *TcellOutput) UpdateFrame(buffer []byte) error {
	to.mu.Lock()
	defer to.mu.Unlock()

	w, h := to.config.Width, to.config.Height
	if len(buffer) < w*h*4 {
		return &VideoError{
			Operation: "tcell frame",
			Details:   "frame shorter than configured size",
		}
	}
	if to.screen == nil || w == 0 || h == 0 {
		return nil
	}

	cols, rows := to.screen.Size()
	cols = min(cols, w)
	rows = min(rows, (h+1)/2)
	if cols <= 0 || rows <= 0 {
		return nil
	}

	for cy := 0; cy < rows; cy++ {
		top := (2 * cy) * h / (2 * rows)
		bottom := (2*cy + 1) * h / (2 * rows)
		for cx := 0; cx < cols; cx++ {
			x := cx * w / cols
			style := tcell.StyleDefault.
				Foreground(rgbaCellColor(buffer, (top*w+x)*4)).
				Background(rgbaCellColor(buffer, (bottom*w+x)*4))
			to.screen.SetContent(cx, cy, '▀', nil, style)
		}
	}
	to.screen.Show()
	to.frameCount.Add(1)
	return nil
}

func rgbaCellColor(buffer []byte, off int) tcell.Color {
	return tcell.NewRGBColor(int32(buffer[off]), int32(buffer[off+1]), int32(buffer[off+2]))
}

func (to *TcellOutput) GetFrameCount() uint64 {
	return to.frameCount.Load()
}

func (to *TcellOutput) GetRefreshRate() int {
	to.mu.Lock()
	defer to.mu.Unlock()
	return to.config.RefreshRate
}

// tcellKeySequence converts a terminal key event to the scancodes of an
// equivalent press and release. Terminals report no key up, so every event
// is a complete keystroke.
func tcellKeySequence(key tcell.Key, r rune, mod tcell.ModMask) []byte {
	switch key {
	case tcell.KeyRune:
		if r < 0x20 || r > 0x7E {
			return nil
		}
		if mod&tcell.ModCtrl != 0 && r >= 'a' && r <= 'z' {
			return withCtrl(EncodeChar(byte(r)))
		}
		return EncodeChar(byte(r))
	case tcell.KeyEnter:
		return EncodeKey(KeyEnter)
	case tcell.KeyTab:
		return EncodeKey(KeyTab)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return EncodeKey(KeyBackspace)
	case tcell.KeyEscape:
		return EncodeKey(KeyEscape)
	case tcell.KeyUp:
		return EncodeKey(KeyArrowUp)
	case tcell.KeyDown:
		return EncodeKey(KeyArrowDown)
	case tcell.KeyLeft:
		return EncodeKey(KeyArrowLeft)
	case tcell.KeyRight:
		return EncodeKey(KeyArrowRight)
	case tcell.KeyHome:
		return EncodeKey(KeyHome)
	case tcell.KeyEnd:
		return EncodeKey(KeyEnd)
	case tcell.KeyInsert:
		return EncodeKey(KeyInsert)
	case tcell.KeyDelete:
		return EncodeKey(KeyDelete)
	case tcell.KeyPgUp:
		return EncodeKey(KeyPageUp)
	case tcell.KeyPgDn:
		return EncodeKey(KeyPageDown)
	}
	if key >= tcell.KeyF1 && key <= tcell.KeyF12 {
		return EncodeKey(KeyF1 + KeyCode(key-tcell.KeyF1))
	}
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		return withCtrl(EncodeChar(byte('a' + key - tcell.KeyCtrlA)))
	}
	return nil
}

func withCtrl(seq []byte) []byte {
	if seq == nil {
		return nil
	}
	out := EncodeKeyState(KeyLeftCtrl, true)
	out = append(out, seq...)
	return append(out, EncodeKeyState(KeyLeftCtrl, false)...)
}
