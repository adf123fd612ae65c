// keyboard_scancodes.go - PC set 1 scancode tables and key encoding

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

// KeyCode names a physical key on a US 104-key keyboard.
type KeyCode uint8

const (
	KeyNone KeyCode = iota
	KeyEscape
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyBacktick
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	Key0
	KeyMinus
	KeyEquals
	KeyBackspace
	KeyTab
	KeyQ
	KeyW
	KeyE
	KeyR
	KeyT
	KeyY
	KeyU
	KeyI
	KeyO
	KeyP
	KeyLeftBracket
	KeyRightBracket
	KeyBackslash
	KeyCapsLock
	KeyA
	KeyS
	KeyD
	KeyF
	KeyG
	KeyH
	KeyJ
	KeyK
	KeyL
	KeySemicolon
	KeyQuote
	KeyEnter
	KeyLeftShift
	KeyZ
	KeyX
	KeyC
	KeyV
	KeyB
	KeyN
	KeyM
	KeyComma
	KeyPeriod
	KeySlash
	KeyRightShift
	KeyLeftCtrl
	KeyLeftWin
	KeyLeftAlt
	KeySpace
	KeyRightAlt
	KeyRightWin
	KeyApps
	KeyRightCtrl
	KeyPrintScreen
	KeyScrollLock
	KeyPause
	KeyInsert
	KeyHome
	KeyPageUp
	KeyDelete
	KeyEnd
	KeyPageDown
	KeyArrowUp
	KeyArrowLeft
	KeyArrowDown
	KeyArrowRight
	KeyNumLock
	KeyNumpadDivide
	KeyNumpadMultiply
	KeyNumpadSubtract
	KeyNumpadAdd
	KeyNumpadEnter
	KeyNumpadPeriod
	KeyNumpad0
	KeyNumpad1
	KeyNumpad2
	KeyNumpad3
	KeyNumpad4
	KeyNumpad5
	KeyNumpad6
	KeyNumpad7
	KeyNumpad8
	KeyNumpad9
	keyCodeCount
)

var keyNames = [keyCodeCount]string{
	"None", "Escape", "F1", "F2", "F3", "F4", "F5", "F6", "F7", "F8", "F9", "F10", "F11", "F12",
	"Backtick", "1", "2", "3", "4", "5", "6", "7", "8", "9", "0", "Minus", "Equals", "Backspace",
	"Tab", "Q", "W", "E", "R", "T", "Y", "U", "I", "O", "P", "LeftBracket", "RightBracket", "Backslash",
	"CapsLock", "A", "S", "D", "F", "G", "H", "J", "K", "L", "Semicolon", "Quote", "Enter",
	"LeftShift", "Z", "X", "C", "V", "B", "N", "M", "Comma", "Period", "Slash", "RightShift",
	"LeftCtrl", "LeftWin", "LeftAlt", "Space", "RightAlt", "RightWin", "Apps", "RightCtrl",
	"PrintScreen", "ScrollLock", "Pause", "Insert", "Home", "PageUp", "Delete", "End", "PageDown",
	"ArrowUp", "ArrowLeft", "ArrowDown", "ArrowRight",
	"NumLock", "NumpadDivide", "NumpadMultiply", "NumpadSubtract", "NumpadAdd", "NumpadEnter", "NumpadPeriod",
	"Numpad0", "Numpad1", "Numpad2", "Numpad3", "Numpad4", "Numpad5", "Numpad6", "Numpad7", "Numpad8", "Numpad9",
}

func (k KeyCode) String() string {
	if k < keyCodeCount {
		return keyNames[k]
	}
	return "Unknown"
}

// Scancode set 1 prefixes and flags.
const (
	scancodeExtended = 0xE0
	scancodePause    = 0xE1
	scancodeRelease  = 0x80
)

// set1Base maps single-byte make codes.
var set1Base = [0x80]KeyCode{
	0x01: KeyEscape,
	0x02: Key1, 0x03: Key2, 0x04: Key3, 0x05: Key4, 0x06: Key5,
	0x07: Key6, 0x08: Key7, 0x09: Key8, 0x0A: Key9, 0x0B: Key0,
	0x0C: KeyMinus, 0x0D: KeyEquals, 0x0E: KeyBackspace, 0x0F: KeyTab,
	0x10: KeyQ, 0x11: KeyW, 0x12: KeyE, 0x13: KeyR, 0x14: KeyT,
	0x15: KeyY, 0x16: KeyU, 0x17: KeyI, 0x18: KeyO, 0x19: KeyP,
	0x1A: KeyLeftBracket, 0x1B: KeyRightBracket, 0x1C: KeyEnter, 0x1D: KeyLeftCtrl,
	0x1E: KeyA, 0x1F: KeyS, 0x20: KeyD, 0x21: KeyF, 0x22: KeyG,
	0x23: KeyH, 0x24: KeyJ, 0x25: KeyK, 0x26: KeyL,
	0x27: KeySemicolon, 0x28: KeyQuote, 0x29: KeyBacktick, 0x2A: KeyLeftShift, 0x2B: KeyBackslash,
	0x2C: KeyZ, 0x2D: KeyX, 0x2E: KeyC, 0x2F: KeyV, 0x30: KeyB, 0x31: KeyN, 0x32: KeyM,
	0x33: KeyComma, 0x34: KeyPeriod, 0x35: KeySlash, 0x36: KeyRightShift,
	0x37: KeyNumpadMultiply, 0x38: KeyLeftAlt, 0x39: KeySpace, 0x3A: KeyCapsLock,
	0x3B: KeyF1, 0x3C: KeyF2, 0x3D: KeyF3, 0x3E: KeyF4, 0x3F: KeyF5,
	0x40: KeyF6, 0x41: KeyF7, 0x42: KeyF8, 0x43: KeyF9, 0x44: KeyF10,
	0x45: KeyNumLock, 0x46: KeyScrollLock,
	0x47: KeyNumpad7, 0x48: KeyNumpad8, 0x49: KeyNumpad9, 0x4A: KeyNumpadSubtract,
	0x4B: KeyNumpad4, 0x4C: KeyNumpad5, 0x4D: KeyNumpad6, 0x4E: KeyNumpadAdd,
	0x4F: KeyNumpad1, 0x50: KeyNumpad2, 0x51: KeyNumpad3, 0x52: KeyNumpad0, 0x53: KeyNumpadPeriod,
	0x57: KeyF11, 0x58: KeyF12,
}

// set1Extended maps the byte following an 0xE0 prefix.
var set1Extended = [0x80]KeyCode{
	0x1C: KeyNumpadEnter, 0x1D: KeyRightCtrl,
	0x35: KeyNumpadDivide, 0x37: KeyPrintScreen, 0x38: KeyRightAlt,
	0x47: KeyHome, 0x48: KeyArrowUp, 0x49: KeyPageUp,
	0x4B: KeyArrowLeft, 0x4D: KeyArrowRight,
	0x4F: KeyEnd, 0x50: KeyArrowDown, 0x51: KeyPageDown,
	0x52: KeyInsert, 0x53: KeyDelete,
	0x5B: KeyLeftWin, 0x5C: KeyRightWin, 0x5D: KeyApps,
}

// Pause has no break code; the controller sends this whole sequence on press.
var pauseSequence = []byte{0xE1, 0x1D, 0x45, 0xE1, 0x9D, 0xC5}

type scancodeEntry struct {
	code     byte
	extended bool
}

var set1Reverse = func() [keyCodeCount]scancodeEntry {
	var rev [keyCodeCount]scancodeEntry
	for code, key := range set1Base {
		if key != KeyNone {
			rev[key] = scancodeEntry{code: byte(code)}
		}
	}
	for code, key := range set1Extended {
		if key != KeyNone {
			rev[key] = scancodeEntry{code: byte(code), extended: true}
		}
	}
	return rev
}()

// us104Chars gives the unshifted and shifted character of each printable key.
var us104Chars = map[KeyCode][2]byte{
	KeyBacktick: {'`', '~'},
	Key1:        {'1', '!'}, Key2: {'2', '@'}, Key3: {'3', '#'}, Key4: {'4', '$'}, Key5: {'5', '%'},
	Key6: {'6', '^'}, Key7: {'7', '&'}, Key8: {'8', '*'}, Key9: {'9', '('}, Key0: {'0', ')'},
	KeyMinus: {'-', '_'}, KeyEquals: {'=', '+'},
	KeyLeftBracket: {'[', '{'}, KeyRightBracket: {']', '}'}, KeyBackslash: {'\\', '|'},
	KeySemicolon: {';', ':'}, KeyQuote: {'\'', '"'},
	KeyComma: {',', '<'}, KeyPeriod: {'.', '>'}, KeySlash: {'/', '?'},
	KeySpace: {' ', ' '},
	KeyQ:     {'q', 'Q'}, KeyW: {'w', 'W'}, KeyE: {'e', 'E'}, KeyR: {'r', 'R'}, KeyT: {'t', 'T'},
	KeyY: {'y', 'Y'}, KeyU: {'u', 'U'}, KeyI: {'i', 'I'}, KeyO: {'o', 'O'}, KeyP: {'p', 'P'},
	KeyA: {'a', 'A'}, KeyS: {'s', 'S'}, KeyD: {'d', 'D'}, KeyF: {'f', 'F'}, KeyG: {'g', 'G'},
	KeyH: {'h', 'H'}, KeyJ: {'j', 'J'}, KeyK: {'k', 'K'}, KeyL: {'l', 'L'},
	KeyZ: {'z', 'Z'}, KeyX: {'x', 'X'}, KeyC: {'c', 'C'}, KeyV: {'v', 'V'}, KeyB: {'b', 'B'},
	KeyN: {'n', 'N'}, KeyM: {'m', 'M'},
}

// controlChars are keys that decode to a control character.
var controlChars = map[KeyCode]byte{
	KeyEnter:       '\n',
	KeyNumpadEnter: '\n',
	KeyBackspace:   0x08,
	KeyTab:         '\t',
	KeyEscape:      0x1B,
	KeyDelete:      0x7F,
}

type charKey struct {
	key   KeyCode
	shift bool
}

var charToKey = func() map[byte]charKey {
	m := make(map[byte]charKey, 2*len(us104Chars)+len(controlChars))
	for key, chars := range us104Chars {
		m[chars[0]] = charKey{key: key}
		if chars[1] != chars[0] {
			m[chars[1]] = charKey{key: key, shift: true}
		}
	}
	for key, c := range controlChars {
		if key != KeyNumpadEnter {
			m[c] = charKey{key: key}
		}
	}
	return m
}()

// EncodeKeyState returns the set 1 bytes a keyboard sends when key goes down
// or up. Keys without a scancode encode to nil.
func EncodeKeyState(key KeyCode, down bool) []byte {
	if key == KeyPause {
		if down {
			return append([]byte(nil), pauseSequence...)
		}
		return nil
	}
	if key == KeyNone || key >= keyCodeCount {
		return nil
	}
	e := set1Reverse[key]
	if e.code == 0 {
		return nil
	}
	b := e.code
	if !down {
		b |= scancodeRelease
	}
	if e.extended {
		return []byte{scancodeExtended, b}
	}
	return []byte{b}
}

// EncodeKey returns a full press and release of key.
func EncodeKey(key KeyCode) []byte {
	if key == KeyPause {
		return EncodeKeyState(key, true)
	}
	down := EncodeKeyState(key, true)
	if down == nil {
		return nil
	}
	return append(down, EncodeKeyState(key, false)...)
}

// EncodeChar types c on a US layout, holding left shift when the character
// needs it. Characters the layout cannot produce encode to nil.
func EncodeChar(c byte) []byte {
	ck, ok := charToKey[c]
	if !ok {
		return nil
	}
	if !ck.shift {
		return EncodeKey(ck.key)
	}
	out := EncodeKeyState(KeyLeftShift, true)
	out = append(out, EncodeKey(ck.key)...)
	return append(out, EncodeKeyState(KeyLeftShift, false)...)
}

// EncodeString concatenates EncodeChar over s, skipping what cannot be typed.
func EncodeString(s string) []byte {
	var out []byte
	for i := 0; i < len(s); i++ {
		out = append(out, EncodeChar(s[i])...)
	}
	return out
}
