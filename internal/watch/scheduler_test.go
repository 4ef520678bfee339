package watch

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"curator/internal/logging"
)

func TestSchedulerCoalescesEventBursts(t *testing.T) {
	var builds atomic.Int32
	build := func(ctx context.Context) error {
		builds.Add(1)
		return nil
	}
	s := NewScheduler(30*time.Millisecond, build, logging.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	for i := 0; i < 10; i++ {
		s.Notify()
		time.Sleep(5 * time.Millisecond)
	}

	deadline := time.After(2 * time.Second)
	for builds.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("no build after event burst")
		case <-time.After(10 * time.Millisecond):
		}
	}
	// Let the quiet window pass fully to catch spurious extra builds.
	time.Sleep(100 * time.Millisecond)
	if got := builds.Load(); got != 1 {
		t.Errorf("builds = %d, want 1 coalesced build", got)
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Run returned %v, want context.Canceled", err)
	}
}

func TestSchedulerRebuildsAfterEventDuringBuild(t *testing.T) {
	var builds atomic.Int32
	release := make(chan struct{})
	var s *Scheduler
	build := func(ctx context.Context) error {
		if builds.Add(1) == 1 {
			// Change arrives while the first build is still running.
			s.Notify()
			<-release
		}
		return nil
	}
	s = NewScheduler(10*time.Millisecond, build, logging.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = s.Run(ctx) }()

	s.Notify()
	deadline := time.After(2 * time.Second)
	for builds.Load() < 1 {
		select {
		case <-deadline:
			t.Fatal("first build never started")
		case <-time.After(5 * time.Millisecond):
		}
	}
	close(release)

	for builds.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("no follow-up build after event during build")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestSchedulerKeepsRunningAfterBuildError(t *testing.T) {
	var builds atomic.Int32
	build := func(ctx context.Context) error {
		if builds.Add(1) == 1 {
			return errors.New("boom")
		}
		return nil
	}
	s := NewScheduler(10*time.Millisecond, build, logging.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = s.Run(ctx) }()

	s.Notify()
	deadline := time.After(2 * time.Second)
	for builds.Load() < 1 {
		select {
		case <-deadline:
			t.Fatal("first build never ran")
		case <-time.After(5 * time.Millisecond):
		}
	}

	s.Notify()
	for builds.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("scheduler stopped after build error")
		case <-time.After(5 * time.Millisecond):
		}
	}
}
