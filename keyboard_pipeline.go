// keyboard_pipeline.go - Interrupt-to-task scancode delivery

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
	"sync"
	"sync/atomic"
)

const scancodeQueueSize = 128

// ScancodeQueue is a lock-free single-producer/single-consumer ring. head is
// only written by the consumer and tail only by the producer; the counters
// run freely and wrap, their difference is the fill level.
type ScancodeQueue struct {
	buf  [scancodeQueueSize]byte
	head atomic.Uint32
	tail atomic.Uint32
}

// Push appends b, reporting false when the ring is full.
func (q *ScancodeQueue) Push(b byte) bool {
	t := q.tail.Load()
	if t-q.head.Load() == scancodeQueueSize {
		return false
	}
	q.buf[t%scancodeQueueSize] = b
	q.tail.Store(t + 1)
	return true
}

func (q *ScancodeQueue) Pop() (byte, bool) {
	h := q.head.Load()
	if h == q.tail.Load() {
		return 0, false
	}
	b := q.buf[h%scancodeQueueSize]
	q.head.Store(h + 1)
	return b, true
}

func (q *ScancodeQueue) Len() int {
	return int(q.tail.Load() - q.head.Load())
}

func (q *ScancodeQueue) Cap() int {
	return scancodeQueueSize
}

// ScancodePipeline connects the keyboard interrupt to the one task that
// consumes scancodes.
type ScancodePipeline struct {
	queue       ScancodeQueue
	waker       AtomicWaker
	dropped     atomic.Uint64
	overflowing atomic.Bool
	streamTaken atomic.Bool
}

func NewScancodePipeline() *ScancodePipeline {
	return &ScancodePipeline{}
}

// AddScancode is the producer side. It never blocks: on a full queue the
// byte is dropped and counted, and the consumer is not woken.
func (p *ScancodePipeline) AddScancode(b byte) {
	if !p.queue.Push(b) {
		p.dropped.Add(1)
		if !p.overflowing.Swap(true) {
			diag.Printf("scancode queue full, dropping keyboard input")
		}
		return
	}
	p.overflowing.Store(false)
	p.waker.Wake()
}

func (p *ScancodePipeline) Dropped() uint64 {
	return p.dropped.Load()
}

func (p *ScancodePipeline) Pending() int {
	return p.queue.Len()
}

// Stream hands out the consumer end. There is only one.
func (p *ScancodePipeline) Stream() *ScancodeStream {
	if p.streamTaken.Swap(true) {
		panic("scancode stream already taken")
	}
	return &ScancodeStream{pipeline: p}
}

type ScancodeStream struct {
	pipeline *ScancodePipeline
	park     chanWaker
}

// PollNext returns the next scancode, or false after registering w to be
// woken when one arrives. The second pop closes the window where a byte is
// pushed between the first pop and the registration.
func (s *ScancodeStream) PollNext(w Waker) (byte, bool) {
	p := s.pipeline
	if b, ok := p.queue.Pop(); ok {
		return b, true
	}
	p.waker.Register(w)
	if b, ok := p.queue.Pop(); ok {
		p.waker.Take()
		return b, true
	}
	return 0, false
}

// Next suspends the calling goroutine until a scancode is available or ctx
// is done.
func (s *ScancodeStream) Next(ctx context.Context) (byte, error) {
	if s.park == nil {
		s.park = newChanWaker()
	}
	for {
		if b, ok := s.PollNext(s.park); ok {
			return b, nil
		}
		select {
		case <-s.park:
		case <-ctx.Done():
			s.pipeline.waker.Take()
			return 0, ctx.Err()
		}
	}
}

var (
	keyboardPipeline   atomic.Pointer[ScancodePipeline]
	keyboardPipelineMu sync.Mutex
)

// NewScancodeStream creates the process-wide pipeline and returns its
// consumer. Calling it twice is a fatal error.
func NewScancodeStream() *ScancodeStream {
	keyboardPipelineMu.Lock()
	defer keyboardPipelineMu.Unlock()
	if keyboardPipeline.Load() != nil {
		panic("scancode stream already created")
	}
	p := NewScancodePipeline()
	s := p.Stream()
	keyboardPipeline.Store(p)
	return s
}

// AddScancode is the keyboard interrupt entry point. Scancodes that arrive
// before the stream exists are logged and dropped.
func AddScancode(b byte) {
	p := keyboardPipeline.Load()
	if p == nil {
		diag.Printf("scancode queue not initialised, dropping 0x%02X", b)
		return
	}
	p.AddScancode(b)
}
