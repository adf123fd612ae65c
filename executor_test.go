package main

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestExecutor_RunsAllTasks(t *testing.T) {
	e := NewExecutor()
	var ran atomic.Int32
	for range 3 {
		e.Spawn("worker", func(ctx context.Context) error {
			ran.Add(1)
			return nil
		})
	}
	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ran.Load() != 3 {
		t.Fatalf("expected 3 tasks run, got %d", ran.Load())
	}
}

func TestExecutor_FailureCancelsOthers(t *testing.T) {
	boom := errors.New("boom")
	e := NewExecutor()
	e.Spawn("waiter", func(ctx context.Context) error {
		<-ctx.Done()
		return nil
	})
	e.Spawn("failer", func(ctx context.Context) error {
		return boom
	})

	done := make(chan error, 1)
	go func() { done <- e.Run(context.Background()) }()

	select {
	case err := <-done:
		if !errors.Is(err, boom) {
			t.Fatalf("expected boom, got %v", err)
		}
		if !strings.Contains(err.Error(), "task failer") {
			t.Fatalf("expected task name in error, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("executor did not stop after a task failed")
	}
}
