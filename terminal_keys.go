// terminal_keys.go - Raw host terminal input to set 1 scancodes

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

import "sync"

// Ctrl+Q on the host terminal ends the session; raw mode swallows SIGINT.
const hostQuitByte = 0x11

const maxCSIParams = 16

const (
	hostNormal = iota
	hostEscape
	hostCSI
	hostSS3
)

// hostKeyTranslator turns bytes from a raw-mode host terminal into the set 1
// scancodes a PC keyboard would have sent for the same keys.
type hostKeyTranslator struct {
	state  int
	params []byte
}

// Feed consumes one host byte and returns the scancodes it completes.
// Sequences it does not recognise are dropped whole.
func (t *hostKeyTranslator) Feed(b byte) []byte {
	switch t.state {
	case hostEscape:
		switch b {
		case '[':
			t.state = hostCSI
			t.params = t.params[:0]
			return nil
		case 'O':
			t.state = hostSS3
			return nil
		}
		t.state = hostNormal
		return append(EncodeKey(KeyEscape), t.Feed(b)...)
	case hostCSI:
		switch {
		case b >= 0x20 && b <= 0x3F:
			if len(t.params) < maxCSIParams {
				t.params = append(t.params, b)
			}
			return nil
		case b >= 0x40 && b <= 0x7E:
			t.state = hostNormal
			return csiKey(t.params, b)
		}
		// A control byte aborts the sequence and counts on its own.
		t.state = hostNormal
		return t.Feed(b)
	case hostSS3:
		t.state = hostNormal
		return ss3Key(b)
	}

	switch {
	case b == 0x1B:
		t.state = hostEscape
		return nil
	case b == '\r':
		return EncodeChar('\n')
	case b == 0x7F:
		// Terminals send DEL for the backspace key.
		return EncodeChar(0x08)
	case b >= 0x01 && b <= 0x1A && b != '\t' && b != '\n' && b != 0x08:
		out := EncodeKeyState(KeyLeftCtrl, true)
		out = append(out, EncodeChar('a'+b-1)...)
		return append(out, EncodeKeyState(KeyLeftCtrl, false)...)
	}
	return EncodeChar(b)
}

// Flush resolves a lone ESC once the host has nothing more to send. An
// unfinished CSI or SS3 sequence is discarded.
func (t *hostKeyTranslator) Flush() []byte {
	state := t.state
	t.state = hostNormal
	if state == hostEscape {
		return EncodeKey(KeyEscape)
	}
	return nil
}

// csiKey maps ESC [ params final. Modifier parameters after the first ';'
// are ignored, so Ctrl+Up is plain Up.
func csiKey(params []byte, final byte) []byte {
	switch final {
	case 'A':
		return EncodeKey(KeyArrowUp)
	case 'B':
		return EncodeKey(KeyArrowDown)
	case 'C':
		return EncodeKey(KeyArrowRight)
	case 'D':
		return EncodeKey(KeyArrowLeft)
	case 'H':
		return EncodeKey(KeyHome)
	case 'F':
		return EncodeKey(KeyEnd)
	case 'P', 'Q', 'R', 'S':
		return EncodeKey(KeyF1 + KeyCode(final-'P'))
	case '~':
		if key, ok := csiTildeKeys[csiFirstParam(params)]; ok {
			return EncodeKey(key)
		}
	}
	return nil
}

func csiFirstParam(params []byte) int {
	n := 0
	for _, p := range params {
		if p < '0' || p > '9' {
			break
		}
		n = n*10 + int(p-'0')
	}
	return n
}

var csiTildeKeys = map[int]KeyCode{
	1: KeyHome, 2: KeyInsert, 3: KeyDelete, 4: KeyEnd,
	5: KeyPageUp, 6: KeyPageDown, 7: KeyHome, 8: KeyEnd,
	11: KeyF1, 12: KeyF2, 13: KeyF3, 14: KeyF4, 15: KeyF5,
	17: KeyF6, 18: KeyF7, 19: KeyF8, 20: KeyF9, 21: KeyF10,
	23: KeyF11, 24: KeyF12,
}

// ss3Key maps ESC O final, sent for F1-F4 and for cursor keys in
// application mode.
func ss3Key(final byte) []byte {
	switch final {
	case 'P', 'Q', 'R', 'S':
		return EncodeKey(KeyF1 + KeyCode(final-'P'))
	case 'A', 'B', 'C', 'D', 'H', 'F':
		return csiKey(nil, final)
	}
	return nil
}

// hostKeyboard is the platform independent half of TerminalHost: it feeds
// translated scancodes onward and watches for the quit key.
type hostKeyboard struct {
	feed     func(byte)
	keys     hostKeyTranslator
	quit     chan struct{}
	quitOnce sync.Once
}

// process handles one chunk read from the host. idle reports that the host
// had nothing more queued, which settles a pending ESC.
func (k *hostKeyboard) process(chunk []byte, idle bool) {
	for _, b := range chunk {
		if b == hostQuitByte {
			k.quitOnce.Do(func() { close(k.quit) })
			continue
		}
		k.emit(k.keys.Feed(b))
	}
	if idle {
		k.emit(k.keys.Flush())
	}
}

func (k *hostKeyboard) emit(seq []byte) {
	for _, b := range seq {
		k.feed(b)
	}
}

// Done is closed once the user presses Ctrl+Q.
func (k *hostKeyboard) Done() <-chan struct{} {
	return k.quit
}
