package main

import (
	"context"
	"errors"
	"runtime"
	"sync/atomic"
	"testing"
	"time"
)

type countingWaker struct{ n atomic.Int32 }

func (w *countingWaker) Wake() { w.n.Add(1) }

func resetKeyboardPipeline(t *testing.T) {
	t.Helper()
	keyboardPipeline.Store(nil)
	t.Cleanup(func() { keyboardPipeline.Store(nil) })
}

func TestScancodeQueue_OverflowDropsNewest(t *testing.T) {
	p := NewScancodePipeline()
	for i := 1; i <= 200; i++ {
		p.AddScancode(byte(i))
	}
	if p.Dropped() != 72 {
		t.Fatalf("expected 72 dropped, got %d", p.Dropped())
	}
	s := p.Stream()
	for want := 1; want <= 128; want++ {
		got, ok := s.PollNext(&countingWaker{})
		if !ok || int(got) != want {
			t.Fatalf("expected %d, got %d (ok=%v)", want, got, ok)
		}
	}
	if _, ok := s.PollNext(&countingWaker{}); ok {
		t.Fatal("expected empty queue")
	}
}

func TestScancodeQueue_Wraparound(t *testing.T) {
	var q ScancodeQueue
	for round := range 5 {
		for i := range 100 {
			if !q.Push(byte(round + i)) {
				t.Fatalf("round %d: push %d failed", round, i)
			}
		}
		for i := range 100 {
			b, ok := q.Pop()
			if !ok || b != byte(round+i) {
				t.Fatalf("round %d: expected %d, got %d", round, round+i, b)
			}
		}
	}
	if q.Len() != 0 || q.Cap() != 128 {
		t.Fatalf("expected empty 128-slot queue, got len %d cap %d", q.Len(), q.Cap())
	}
}

func TestScancodePipeline_WakeOncePerBurst(t *testing.T) {
	p := NewScancodePipeline()
	s := p.Stream()
	w := &countingWaker{}

	if _, ok := s.PollNext(w); ok {
		t.Fatal("expected pending on empty queue")
	}
	p.AddScancode(0x1E)
	p.AddScancode(0x9E)
	p.AddScancode(0x30)
	if got := w.n.Load(); got != 1 {
		t.Fatalf("expected one wake, got %d", got)
	}
	for _, want := range []byte{0x1E, 0x9E, 0x30} {
		got, ok := s.PollNext(w)
		if !ok || got != want {
			t.Fatalf("expected 0x%02X, got 0x%02X (ok=%v)", want, got, ok)
		}
	}
	if _, ok := s.PollNext(w); ok {
		t.Fatal("expected pending after drain")
	}
	p.AddScancode(0x01)
	if got := w.n.Load(); got != 2 {
		t.Fatalf("expected second wake after re-registering, got %d", got)
	}
}

func TestScancodePipeline_FullQueueDoesNotWake(t *testing.T) {
	p := NewScancodePipeline()
	for i := range scancodeQueueSize {
		p.AddScancode(byte(i))
	}
	w := &countingWaker{}
	p.waker.Register(w)
	p.AddScancode(0xFF)
	if w.n.Load() != 0 {
		t.Fatal("expected no wake for a dropped scancode")
	}
	if p.Dropped() != 1 || p.Pending() != scancodeQueueSize {
		t.Fatalf("expected 1 dropped and full queue, got %d/%d", p.Dropped(), p.Pending())
	}
}

func TestScancodePipeline_SecondStreamPanics(t *testing.T) {
	p := NewScancodePipeline()
	p.Stream()
	expectPanic(t, "already taken", func() { p.Stream() })
}

func TestScancodeStream_NextDeliversInOrder(t *testing.T) {
	p := NewScancodePipeline()
	s := p.Stream()
	const total = 5000

	go func() {
		for i := range total {
			for p.Pending() == scancodeQueueSize {
				runtime.Gosched()
			}
			p.AddScancode(byte(i))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for i := range total {
		b, err := s.Next(ctx)
		if err != nil {
			t.Fatalf("after %d scancodes: %v", i, err)
		}
		if b != byte(i) {
			t.Fatalf("scancode %d: expected 0x%02X, got 0x%02X", i, byte(i), b)
		}
	}
	if p.Dropped() != 0 {
		t.Fatalf("expected no drops, got %d", p.Dropped())
	}
}

func TestScancodeStream_NextHonoursContext(t *testing.T) {
	s := NewScancodePipeline().Stream()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := s.Next(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestAddScancode_BeforeStreamIsDropped(t *testing.T) {
	resetKeyboardPipeline(t)
	AddScancode(0x1C)

	s := NewScancodeStream()
	if _, ok := s.PollNext(&countingWaker{}); ok {
		t.Fatal("expected early scancode to be dropped")
	}
	AddScancode(0x1C)
	if b, ok := s.PollNext(&countingWaker{}); !ok || b != 0x1C {
		t.Fatalf("expected 0x1C, got 0x%02X (ok=%v)", b, ok)
	}
	expectPanic(t, "already created", func() { NewScancodeStream() })
}

func TestAtomicWaker_TakeClears(t *testing.T) {
	var a AtomicWaker
	w := &countingWaker{}
	a.Register(w)
	if a.Take() != w {
		t.Fatal("expected registered waker")
	}
	a.Wake()
	if w.n.Load() != 0 {
		t.Fatal("expected no wake after take")
	}
	a.Register(WakerFunc(func() { w.n.Add(10) }))
	a.Wake()
	a.Wake()
	if w.n.Load() != 10 {
		t.Fatalf("expected a single wake, got %d", w.n.Load())
	}
}
