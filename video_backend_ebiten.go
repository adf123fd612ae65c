//go:build !headless

// video_backend_ebiten.go - Ebiten window backend with keyboard controller emulation

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

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.design/x/clipboard"
)

const maxPasteBytes = 4096

type EbitenOutput struct {
	running     bool
	window      *ebiten.Image
	width       int
	height      int
	fullscreen  bool
	scale       int
	title       string
	frameBuffer []byte
	bufferMutex sync.RWMutex
	frameCount  uint64
	refreshRate int
	vsyncChan   chan struct{}
	done        chan struct{}
	scanHandler func(byte)

	clipboardOnce sync.Once
	clipboardOK   bool

	pressed []ebiten.Key
}

func NewEbitenOutput() (DisplayOutput, error) {
	return &EbitenOutput{
		width:       640,
		height:      480,
		scale:       1,
		title:       "IntuitionConsole",
		frameBuffer: make([]byte, 640*480*4),
		refreshRate: 60,
		vsyncChan:   make(chan struct{}, 1),
		done:        make(chan struct{}),
	}, nil
}

func (eo *EbitenOutput) Start() error {
	if eo.running {
		return nil
	}
	eo.bufferMutex.Lock()
	eo.done = make(chan struct{})
	eo.bufferMutex.Unlock()
	eo.running = true
	ebiten.SetWindowSize(eo.width*eo.scale, eo.height*eo.scale)
	ebiten.SetWindowTitle(eo.title)
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetVsyncEnabled(true)

	go func() {
		defer func() {
			eo.running = false
			eo.bufferMutex.RLock()
			done := eo.done
			eo.bufferMutex.RUnlock()
			select {
			case <-done:
			default:
				close(done)
			}
		}()
		if err := ebiten.RunGame(eo); err != nil {
			diag.Printf("ebiten: %v", err)
		}
	}()

	// Wait for first Draw call to ensure Ebiten is ready
	<-eo.vsyncChan
	return nil
}

func (eo *EbitenOutput) Stop() error {
	eo.running = false
	return nil
}

func (eo *EbitenOutput) Close() error {
	return eo.Stop()
}

func (eo *EbitenOutput) Done() <-chan struct{} {
	eo.bufferMutex.RLock()
	done := eo.done
	eo.bufferMutex.RUnlock()
	return done
}

func (eo *EbitenOutput) UpdateFrame(data []byte) error {
	eo.bufferMutex.Lock()
	copy(eo.frameBuffer, data)
	eo.bufferMutex.Unlock()
	return nil
}

func (eo *EbitenOutput) SetDisplayConfig(config DisplayConfig) error {
	eo.bufferMutex.Lock()
	defer eo.bufferMutex.Unlock()

	if config.Width <= 0 || config.Height <= 0 {
		return &VideoError{Operation: "display config", Details: "width and height must be positive"}
	}
	eo.width = config.Width
	eo.height = config.Height
	eo.scale = max(config.Scale, 1)
	if config.Title != "" {
		eo.title = config.Title
	}
	if config.RefreshRate > 0 {
		eo.refreshRate = config.RefreshRate
	}
	if newSize := eo.width * eo.height * 4; len(eo.frameBuffer) != newSize {
		eo.frameBuffer = make([]byte, newSize)
	}
	if eo.window != nil {
		eo.window.Deallocate()
		eo.window = nil
	}
	return nil
}

func (eo *EbitenOutput) GetDisplayConfig() DisplayConfig {
	eo.bufferMutex.RLock()
	defer eo.bufferMutex.RUnlock()
	return DisplayConfig{
		Width:       eo.width,
		Height:      eo.height,
		Scale:       eo.scale,
		RefreshRate: eo.refreshRate,
		Title:       eo.title,
	}
}

func (eo *EbitenOutput) GetFrameCount() uint64 {
	eo.bufferMutex.RLock()
	defer eo.bufferMutex.RUnlock()
	return eo.frameCount
}

func (eo *EbitenOutput) GetRefreshRate() int {
	return eo.refreshRate
}

func (eo *EbitenOutput) IsStarted() bool {
	return eo.running
}

func (eo *EbitenOutput) Update() error {
	if ebiten.IsWindowBeingClosed() || !eo.running {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		eo.fullscreen = !eo.fullscreen
		ebiten.SetFullscreen(eo.fullscreen)
	}
	eo.handleKeyboardInput()
	return nil
}

func (eo *EbitenOutput) SetScancodeHandler(fn func(byte)) {
	eo.bufferMutex.Lock()
	eo.scanHandler = fn
	eo.bufferMutex.Unlock()
}

func (eo *EbitenOutput) emitSeq(seq []byte) {
	eo.bufferMutex.RLock()
	handler := eo.scanHandler
	eo.bufferMutex.RUnlock()
	if handler == nil {
		return
	}
	for _, b := range seq {
		handler(b)
	}
}

// handleKeyboardInput acts as the keyboard controller: every physical key
// transition becomes its set 1 make or break code.
func (eo *EbitenOutput) handleKeyboardInput() {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight)
	shift := ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)

	// Clipboard paste: Ctrl+Shift+V
	if ctrl && shift && inpututil.IsKeyJustPressed(ebiten.KeyV) {
		eo.handleClipboardPaste()
	}

	eo.pressed = inpututil.AppendJustPressedKeys(eo.pressed[:0])
	for _, key := range eo.pressed {
		if key == ebiten.KeyF11 || (key == ebiten.KeyV && ctrl && shift) {
			continue
		}
		if code, ok := ebitenKeyCodes[key]; ok {
			eo.emitSeq(EncodeKeyState(code, true))
		}
	}
	eo.pressed = inpututil.AppendJustReleasedKeys(eo.pressed[:0])
	for _, key := range eo.pressed {
		if key == ebiten.KeyF11 || (key == ebiten.KeyV && ctrl && shift) {
			continue
		}
		if code, ok := ebitenKeyCodes[key]; ok {
			eo.emitSeq(EncodeKeyState(code, false))
		}
	}
}

func normalizePasteText(raw []byte) []byte {
	norm := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\r' {
			if i+1 < len(raw) && raw[i+1] == '\n' {
				i++
			}
			norm = append(norm, '\n')
			continue
		}
		norm = append(norm, raw[i])
	}
	if len(norm) > maxPasteBytes {
		norm = norm[:maxPasteBytes]
	}
	return norm
}

// handleClipboardPaste types the clipboard text. The shift keys held for
// the paste chord are released first so the decoder sees the text's own
// shift state.
func (eo *EbitenOutput) handleClipboardPaste() {
	eo.clipboardOnce.Do(func() {
		eo.clipboardOK = clipboard.Init() == nil
	})
	if !eo.clipboardOK {
		return
	}
	data := clipboard.Read(clipboard.FmtText)
	if len(data) == 0 {
		return
	}
	eo.emitSeq(EncodeKeyState(KeyLeftShift, false))
	eo.emitSeq(EncodeKeyState(KeyRightShift, false))
	eo.emitSeq(EncodeString(string(normalizePasteText(data))))
}

func (eo *EbitenOutput) Draw(screen *ebiten.Image) {
	eo.bufferMutex.Lock()
	if eo.window == nil {
		eo.window = ebiten.NewImage(eo.width, eo.height)
	}
	eo.window.WritePixels(eo.frameBuffer)
	eo.frameCount++
	eo.bufferMutex.Unlock()
	screen.DrawImage(eo.window, nil)

	select {
	case eo.vsyncChan <- struct{}{}:
	default:
	}
}

func (eo *EbitenOutput) Layout(_, _ int) (int, int) {
	eo.bufferMutex.RLock()
	defer eo.bufferMutex.RUnlock()
	return eo.width, eo.height
}

var ebitenKeyCodes = map[ebiten.Key]KeyCode{
	ebiten.KeyEscape: KeyEscape,
	ebiten.KeyF1:     KeyF1, ebiten.KeyF2: KeyF2, ebiten.KeyF3: KeyF3, ebiten.KeyF4: KeyF4,
	ebiten.KeyF5: KeyF5, ebiten.KeyF6: KeyF6, ebiten.KeyF7: KeyF7, ebiten.KeyF8: KeyF8,
	ebiten.KeyF9: KeyF9, ebiten.KeyF10: KeyF10, ebiten.KeyF12: KeyF12,
	ebiten.KeyBackquote: KeyBacktick,
	ebiten.KeyDigit1:    Key1, ebiten.KeyDigit2: Key2, ebiten.KeyDigit3: Key3, ebiten.KeyDigit4: Key4,
	ebiten.KeyDigit5: Key5, ebiten.KeyDigit6: Key6, ebiten.KeyDigit7: Key7, ebiten.KeyDigit8: Key8,
	ebiten.KeyDigit9: Key9, ebiten.KeyDigit0: Key0,
	ebiten.KeyMinus: KeyMinus, ebiten.KeyEqual: KeyEquals, ebiten.KeyBackspace: KeyBackspace,
	ebiten.KeyTab: KeyTab,
	ebiten.KeyQ:   KeyQ, ebiten.KeyW: KeyW, ebiten.KeyE: KeyE, ebiten.KeyR: KeyR, ebiten.KeyT: KeyT,
	ebiten.KeyY: KeyY, ebiten.KeyU: KeyU, ebiten.KeyI: KeyI, ebiten.KeyO: KeyO, ebiten.KeyP: KeyP,
	ebiten.KeyBracketLeft: KeyLeftBracket, ebiten.KeyBracketRight: KeyRightBracket,
	ebiten.KeyBackslash: KeyBackslash, ebiten.KeyCapsLock: KeyCapsLock,
	ebiten.KeyA: KeyA, ebiten.KeyS: KeyS, ebiten.KeyD: KeyD, ebiten.KeyF: KeyF, ebiten.KeyG: KeyG,
	ebiten.KeyH: KeyH, ebiten.KeyJ: KeyJ, ebiten.KeyK: KeyK, ebiten.KeyL: KeyL,
	ebiten.KeySemicolon: KeySemicolon, ebiten.KeyQuote: KeyQuote, ebiten.KeyEnter: KeyEnter,
	ebiten.KeyShiftLeft: KeyLeftShift,
	ebiten.KeyZ:         KeyZ, ebiten.KeyX: KeyX, ebiten.KeyC: KeyC, ebiten.KeyV: KeyV, ebiten.KeyB: KeyB,
	ebiten.KeyN: KeyN, ebiten.KeyM: KeyM,
	ebiten.KeyComma: KeyComma, ebiten.KeyPeriod: KeyPeriod, ebiten.KeySlash: KeySlash,
	ebiten.KeyShiftRight: KeyRightShift,
	ebiten.KeyControlLeft: KeyLeftCtrl, ebiten.KeyMetaLeft: KeyLeftWin, ebiten.KeyAltLeft: KeyLeftAlt,
	ebiten.KeySpace: KeySpace,
	ebiten.KeyAltRight: KeyRightAlt, ebiten.KeyMetaRight: KeyRightWin, ebiten.KeyContextMenu: KeyApps,
	ebiten.KeyControlRight: KeyRightCtrl,
	ebiten.KeyPrintScreen:  KeyPrintScreen, ebiten.KeyScrollLock: KeyScrollLock, ebiten.KeyPause: KeyPause,
	ebiten.KeyInsert: KeyInsert, ebiten.KeyHome: KeyHome, ebiten.KeyPageUp: KeyPageUp,
	ebiten.KeyDelete: KeyDelete, ebiten.KeyEnd: KeyEnd, ebiten.KeyPageDown: KeyPageDown,
	ebiten.KeyArrowUp: KeyArrowUp, ebiten.KeyArrowLeft: KeyArrowLeft,
	ebiten.KeyArrowDown: KeyArrowDown, ebiten.KeyArrowRight: KeyArrowRight,
	ebiten.KeyNumLock: KeyNumLock, ebiten.KeyNumpadDivide: KeyNumpadDivide,
	ebiten.KeyNumpadMultiply: KeyNumpadMultiply, ebiten.KeyNumpadSubtract: KeyNumpadSubtract,
	ebiten.KeyNumpadAdd: KeyNumpadAdd, ebiten.KeyNumpadEnter: KeyNumpadEnter,
	ebiten.KeyNumpadDecimal: KeyNumpadPeriod,
	ebiten.KeyNumpad0:       KeyNumpad0, ebiten.KeyNumpad1: KeyNumpad1, ebiten.KeyNumpad2: KeyNumpad2,
	ebiten.KeyNumpad3: KeyNumpad3, ebiten.KeyNumpad4: KeyNumpad4, ebiten.KeyNumpad5: KeyNumpad5,
	ebiten.KeyNumpad6: KeyNumpad6, ebiten.KeyNumpad7: KeyNumpad7, ebiten.KeyNumpad8: KeyNumpad8,
	ebiten.KeyNumpad9: KeyNumpad9,
}
