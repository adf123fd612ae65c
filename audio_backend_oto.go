//go:build !headless

// audio_backend_oto.go - OTO v3 bell output

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

	"github.com/ebitengine/oto/v3"
)

// OtoBell plays console bells through the host sound device.
type OtoBell struct {
	ctx     *oto.Context
	player  *oto.Player
	stream  *bellStream
	started bool
	mutex   sync.Mutex
}

func NewOtoBell() (*OtoBell, error) {
	op := &oto.NewContextOptions{
		SampleRate:   int(bellSampleRate),
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, &VideoError{Operation: "bell init", Details: "audio context", Err: err}
	}
	<-ready

	ob := &OtoBell{ctx: ctx, stream: newBellStream()}
	ob.player = ctx.NewPlayer(ob.stream)
	return ob, nil
}

// Ring queues a tone and starts the player on first use.
func (ob *OtoBell) Ring() {
	ob.stream.Ring()

	ob.mutex.Lock()
	defer ob.mutex.Unlock()
	if !ob.started && ob.player != nil {
		ob.player.Play()
		ob.started = true
	}
}

func (ob *OtoBell) Close() {
	ob.mutex.Lock()
	defer ob.mutex.Unlock()

	if ob.player != nil {
		_ = ob.player.Close()
		ob.player = nil
	}
	ob.started = false
}
