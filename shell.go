// shell.go - Line-editing command shell on the text console

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
	"fmt"
	"slices"
	"strings"
)

// KeySource yields decoded keys, suspending until one is available.
type KeySource interface {
	Next(ctx context.Context) (DecodedKey, error)
}

type Command struct {
	Help string
	Run  func(sh *Shell, args []string)
}

type Shell struct {
	console  *TextConsole
	keys     KeySource
	prompt   string
	banner   string
	commands map[string]Command
	stats    func() string
}

func NewShell(console *TextConsole, keys KeySource) *Shell {
	sh := &Shell{
		console:  console,
		keys:     keys,
		prompt:   "$ ",
		commands: make(map[string]Command),
	}
	sh.registerBuiltins()
	return sh
}

func (sh *Shell) SetBanner(banner string) { sh.banner = banner }

// SetStats installs the reporter used by the stats command.
func (sh *Shell) SetStats(fn func() string) { sh.stats = fn }

func (sh *Shell) Register(name string, cmd Command) {
	sh.commands[name] = cmd
}

// Run reads and executes lines until the key source fails or ctx ends.
func (sh *Shell) Run(ctx context.Context) error {
	if sh.banner != "" {
		sh.console.WriteString(sh.banner)
	}
	for {
		sh.console.WriteString("\n" + sh.prompt)
		line, err := sh.ReadLine(ctx)
		if err != nil {
			return err
		}
		sh.Execute(line)
	}
}

// ReadLine echoes typed characters until Enter. Backspace edits the line but
// never crosses the prompt.
func (sh *Shell) ReadLine(ctx context.Context) (string, error) {
	var line []byte
	for {
		key, err := sh.keys.Next(ctx)
		if err != nil {
			return "", err
		}
		if key.Kind == KeyRaw {
			diag.Printf("shell: raw key %v", key.Code)
			continue
		}
		switch c := key.Char; {
		case c == '\n':
			sh.console.WriteString("\n")
			return string(line), nil
		case c == 0x08:
			if len(line) > 0 {
				sh.console.Backspace()
				line = line[:len(line)-1]
			}
		case c >= 0x20 && c < 0x7F:
			sh.console.Write([]byte{c})
			line = append(line, c)
		}
	}
}

// Execute runs one command line.
func (sh *Shell) Execute(line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}
	cmd, ok := sh.commands[fields[0]]
	if !ok {
		sh.console.Printf("%q not found\n", fields[0])
		return
	}
	cmd.Run(sh, fields[1:])
}

func (sh *Shell) registerBuiltins() {
	sh.Register("help", Command{Help: "list commands", Run: func(sh *Shell, _ []string) {
		names := make([]string, 0, len(sh.commands))
		for name := range sh.commands {
			names = append(names, name)
		}
		slices.Sort(names)
		sh.console.WriteString("commands:\n")
		for _, name := range names {
			sh.console.Printf("   %-8s %s\n", name, sh.commands[name].Help)
		}
	}})
	sh.Register("clear", Command{Help: "clear the screen", Run: func(sh *Shell, _ []string) {
		sh.console.Clear()
	}})
	sh.Register("echo", Command{Help: "print arguments", Run: func(sh *Shell, args []string) {
		sh.console.WriteString(strings.Join(args, " ") + "\n")
	}})
	sh.Register("colors", Command{Help: "show the palette", Run: func(sh *Shell, _ []string) {
		var b strings.Builder
		for _, code := range "0123456789abcdef" {
			fmt.Fprintf(&b, "\x1b1;%cm  ", code)
		}
		b.WriteString("\x1bm\n")
		sh.console.WriteString(b.String())
	}})
	sh.Register("stats", Command{Help: "show console counters", Run: func(sh *Shell, _ []string) {
		if sh.stats == nil {
			sh.console.WriteString("no stats\n")
			return
		}
		sh.console.WriteString(sh.stats() + "\n")
	}})
}
