// audio_bell.go - Terminal bell tone and mixer

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
	"encoding/binary"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
)

const (
	bellSampleRate = beep.SampleRate(48000)
	bellFrequency  = 880.0
	bellDuration   = 120 * time.Millisecond
	bellVolume     = 0.25
)

// bellTone is a sine with a short attack and release so back to back rings
// do not click.
type bellTone struct {
	sr   beep.SampleRate
	freq float64
	pos  int
	len  int
}

func newBellTone(sr beep.SampleRate, freq float64, d time.Duration) *bellTone {
	return &bellTone{sr: sr, freq: freq, len: sr.N(d)}
}

func (g *bellTone) Stream(samples [][2]float64) (n int, ok bool) {
	ramp := g.sr.N(5 * time.Millisecond)
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		sample := math.Sin(2 * math.Pi * g.freq * t)

		env := 1.0
		if ramp > 0 {
			env = math.Min(env, float64(g.pos)/float64(ramp))
			env = math.Min(env, float64(g.len-g.pos)/float64(ramp))
		}
		sample *= math.Max(env, 0) * bellVolume

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *bellTone) Err() error {
	return nil
}

// bellStream mixes pending rings and renders them as interleaved stereo
// float32 little endian, the layout the oto player pulls.
type bellStream struct {
	mu    sync.Mutex
	mixer *beep.Mixer
	buf   [][2]float64
	rings uint64
}

func newBellStream() *bellStream {
	return &bellStream{mixer: &beep.Mixer{}}
}

// Ring queues one tone. Safe to call with the console lock held.
func (s *bellStream) Ring() {
	tone := newBellTone(bellSampleRate, bellFrequency, bellDuration)
	s.mu.Lock()
	s.mixer.Add(beep.Take(tone.len, tone))
	s.rings++
	s.mu.Unlock()
}

// Rings reports how many tones have been queued.
func (s *bellStream) Rings() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rings
}

// Active reports how many tones are still playing.
func (s *bellStream) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mixer.Len()
}

func (s *bellStream) Read(p []byte) (int, error) {
	frames := len(p) / 8
	if frames == 0 {
		return 0, nil
	}
	if cap(s.buf) < frames {
		s.buf = make([][2]float64, frames)
	}
	samples := s.buf[:frames]

	s.mu.Lock()
	n, _ := s.mixer.Stream(samples)
	s.mu.Unlock()
	for i := n; i < frames; i++ {
		samples[i] = [2]float64{}
	}

	for i, frame := range samples {
		binary.LittleEndian.PutUint32(p[i*8:], math.Float32bits(float32(frame[0])))
		binary.LittleEndian.PutUint32(p[i*8+4:], math.Float32bits(float32(frame[1])))
	}
	return frames * 8, nil
}
