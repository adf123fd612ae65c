// video_terminal_escape.go - ANSI escape sequence parser for the text console

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

// Output escape states. Colour sequences look like ESC <target> ; <code> m
// where target '1' selects the background and '2' the foreground.
type escState int

const (
	escNormal escState = iota
	escStart
	escParam
)

func (s escState) String() string {
	switch s {
	case escNormal:
		return "normal"
	case escStart:
		return "start"
	case escParam:
		return "param"
	}
	return "invalid"
}

type escAction int

const (
	escActNone escAction = iota
	escActEmit           // draw the byte (or run it as a control byte)
	escActReset          // fg and bg back to defaults
	escActTargetBG
	escActTargetFG
	escActSetColour // palette code for the current target
)

// stepEscape is the whole escape grammar: given the current state and one
// input byte it returns the next state and what the console must do.
func stepEscape(state escState, b byte) (escState, escAction) {
	switch state {
	case escNormal:
		if b == 0x1B {
			return escStart, escActNone
		}
		return escNormal, escActEmit

	case escStart:
		switch {
		case b == ';':
			return escParam, escActNone
		case b == 'm':
			return escNormal, escActReset
		case b == '1':
			return escStart, escActTargetBG
		case b == '2':
			return escStart, escActTargetFG
		case b == '0', b >= '3' && b <= '9', b >= 'a' && b <= 'f':
			return escStart, escActReset
		}
		return escNormal, escActEmit

	case escParam:
		switch {
		case b == 'm':
			return escNormal, escActNone
		case b == 'r', b >= '0' && b <= '9', b >= 'a' && b <= 'f':
			return escParam, escActSetColour
		}
		return escNormal, escActEmit
	}
	return escNormal, escActEmit
}
