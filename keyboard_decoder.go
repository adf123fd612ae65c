// keyboard_decoder.go - Scancode set 1 decoding and US 104-key layout

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
	"context"
	"errors"
	"fmt"
	"sync/atomic"
)

var (
	ErrUnknownKeyCode  = errors.New("unknown key code")
	ErrInvalidSequence = errors.New("invalid scancode sequence")
)

type KeyState int

const (
	KeyDown KeyState = iota
	KeyUp
)

type KeyEvent struct {
	Code  KeyCode
	State KeyState
}

type KeyKind int

const (
	KeyUnicode KeyKind = iota
	KeyRaw
)

// DecodedKey is either a character (Kind KeyUnicode, Char set) or a key with
// no character meaning (Kind KeyRaw, Code set).
type DecodedKey struct {
	Kind KeyKind
	Char byte
	Code KeyCode
}

func (k DecodedKey) String() string {
	if k.Kind == KeyUnicode {
		return fmt.Sprintf("Unicode(%q)", k.Char)
	}
	return fmt.Sprintf("RawKey(%v)", k.Code)
}

type decodeState int

const (
	decodeStart decodeState = iota
	decodeExtended
	decodePause1
	decodePause2
)

type modifiers struct {
	lshift, rshift bool
	lctrl, rctrl   bool
	lalt, ralt     bool
	capslock       bool
	numlock        bool
}

func (m modifiers) shift() bool { return m.lshift || m.rshift }

// Decoder turns scancode set 1 bytes into key events and key events into
// characters. Control combinations are ignored: Ctrl+C decodes as 'c'.
type Decoder struct {
	state   decodeState
	pauseUp bool
	mods    modifiers
}

func NewDecoder() *Decoder {
	return &Decoder{mods: modifiers{numlock: true}}
}

// AddByte advances the scancode state machine. It returns an event once a
// complete make or break sequence has been seen. On error the machine is
// back in its start state.
func (d *Decoder) AddByte(b byte) (KeyEvent, bool, error) {
	switch d.state {
	case decodeExtended:
		d.state = decodeStart
		code := b &^ scancodeRelease
		// Fake shifts wrapped around PrintScreen and the navigation cluster.
		if code == 0x2A || code == 0x36 {
			return KeyEvent{}, false, nil
		}
		return eventFor(set1Extended[code], b)

	case decodePause1:
		if b&^scancodeRelease != 0x1D {
			d.state = decodeStart
			return KeyEvent{}, false, fmt.Errorf("%w: 0x%02X after pause prefix", ErrInvalidSequence, b)
		}
		d.pauseUp = b&scancodeRelease != 0
		d.state = decodePause2
		return KeyEvent{}, false, nil

	case decodePause2:
		d.state = decodeStart
		if b&^scancodeRelease != 0x45 {
			return KeyEvent{}, false, fmt.Errorf("%w: 0x%02X in pause sequence", ErrInvalidSequence, b)
		}
		ev := KeyEvent{Code: KeyPause, State: KeyDown}
		if d.pauseUp {
			ev.State = KeyUp
		}
		return ev, true, nil
	}

	switch b {
	case scancodeExtended:
		d.state = decodeExtended
		return KeyEvent{}, false, nil
	case scancodePause:
		d.state = decodePause1
		return KeyEvent{}, false, nil
	}
	return eventFor(set1Base[b&^scancodeRelease], b)
}

func eventFor(key KeyCode, b byte) (KeyEvent, bool, error) {
	if key == KeyNone {
		return KeyEvent{}, false, fmt.Errorf("%w: 0x%02X", ErrUnknownKeyCode, b)
	}
	ev := KeyEvent{Code: key, State: KeyDown}
	if b&scancodeRelease != 0 {
		ev.State = KeyUp
	}
	return ev, true, nil
}

// Process applies ev to the modifier state and maps it through the layout.
// Releases and modifier keys produce nothing.
func (d *Decoder) Process(ev KeyEvent) (DecodedKey, bool) {
	down := ev.State == KeyDown
	switch ev.Code {
	case KeyLeftShift:
		d.mods.lshift = down
		return DecodedKey{}, false
	case KeyRightShift:
		d.mods.rshift = down
		return DecodedKey{}, false
	case KeyLeftCtrl:
		d.mods.lctrl = down
		return DecodedKey{}, false
	case KeyRightCtrl:
		d.mods.rctrl = down
		return DecodedKey{}, false
	case KeyLeftAlt:
		d.mods.lalt = down
		return DecodedKey{}, false
	case KeyRightAlt:
		d.mods.ralt = down
		return DecodedKey{}, false
	case KeyCapsLock:
		if down {
			d.mods.capslock = !d.mods.capslock
		}
		return DecodedKey{}, false
	case KeyNumLock:
		if down {
			d.mods.numlock = !d.mods.numlock
		}
		return DecodedKey{}, false
	}
	if !down {
		return DecodedKey{}, false
	}
	return d.mapKey(ev.Code), true
}

var numpadChars = map[KeyCode]struct {
	char byte
	nav  KeyCode
}{
	KeyNumpad0:      {'0', KeyInsert},
	KeyNumpad1:      {'1', KeyEnd},
	KeyNumpad2:      {'2', KeyArrowDown},
	KeyNumpad3:      {'3', KeyPageDown},
	KeyNumpad4:      {'4', KeyArrowLeft},
	KeyNumpad5:      {'5', KeyNone},
	KeyNumpad6:      {'6', KeyArrowRight},
	KeyNumpad7:      {'7', KeyHome},
	KeyNumpad8:      {'8', KeyArrowUp},
	KeyNumpad9:      {'9', KeyPageUp},
	KeyNumpadPeriod: {'.', KeyDelete},
}

func (d *Decoder) mapKey(key KeyCode) DecodedKey {
	if c, ok := controlChars[key]; ok {
		return DecodedKey{Kind: KeyUnicode, Char: c}
	}
	switch key {
	case KeyNumpadDivide:
		return DecodedKey{Kind: KeyUnicode, Char: '/'}
	case KeyNumpadMultiply:
		return DecodedKey{Kind: KeyUnicode, Char: '*'}
	case KeyNumpadSubtract:
		return DecodedKey{Kind: KeyUnicode, Char: '-'}
	case KeyNumpadAdd:
		return DecodedKey{Kind: KeyUnicode, Char: '+'}
	}
	if np, ok := numpadChars[key]; ok {
		if d.mods.numlock {
			return DecodedKey{Kind: KeyUnicode, Char: np.char}
		}
		if np.nav == KeyDelete {
			return DecodedKey{Kind: KeyUnicode, Char: 0x7F}
		}
		return DecodedKey{Kind: KeyRaw, Code: np.nav}
	}
	if chars, ok := us104Chars[key]; ok {
		shifted := d.mods.shift()
		if isLetterKey(chars) {
			shifted = shifted != d.mods.capslock
		}
		if shifted {
			return DecodedKey{Kind: KeyUnicode, Char: chars[1]}
		}
		return DecodedKey{Kind: KeyUnicode, Char: chars[0]}
	}
	return DecodedKey{Kind: KeyRaw, Code: key}
}

func isLetterKey(chars [2]byte) bool {
	return chars[0] >= 'a' && chars[0] <= 'z'
}

// KeyDecoder pulls scancodes from a stream until a key decodes. Bad
// sequences are counted and skipped, never returned.
type KeyDecoder struct {
	stream  *ScancodeStream
	decoder *Decoder
	errors  atomic.Uint64
}

func NewKeyDecoder(stream *ScancodeStream) *KeyDecoder {
	return &KeyDecoder{stream: stream, decoder: NewDecoder()}
}

func (k *KeyDecoder) Next(ctx context.Context) (DecodedKey, error) {
	for {
		b, err := k.stream.Next(ctx)
		if err != nil {
			return DecodedKey{}, err
		}
		ev, ok, err := k.decoder.AddByte(b)
		if err != nil {
			k.errors.Add(1)
			diag.Printf("keyboard: %v", err)
			continue
		}
		if !ok {
			continue
		}
		if key, ok := k.decoder.Process(ev); ok {
			return key, nil
		}
	}
}

// Errors counts discarded scancode sequences.
func (k *KeyDecoder) Errors() uint64 {
	return k.errors.Load()
}
