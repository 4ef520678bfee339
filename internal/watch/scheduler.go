package watch

import (
	"context"
	"log/slog"
	"time"

	"curator/internal/logging"
)

// BuildFunc runs one rebuild. It is invoked from the scheduler loop, never
// concurrently with itself.
type BuildFunc func(ctx context.Context) error

// Scheduler coalesces change notifications into rebuilds. Events arriving
// within the quiet window collapse into a single build; events arriving
// while a build runs are remembered and trigger exactly one follow-up.
type Scheduler struct {
	quiet  time.Duration
	build  BuildFunc
	events chan struct{}
	logger *slog.Logger
}

func NewScheduler(quiet time.Duration, build BuildFunc, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		quiet:  quiet,
		build:  build,
		events: make(chan struct{}, 1),
		logger: logging.NewComponentLogger(logger, "scheduler"),
	}
}

// Notify records that something changed. It never blocks: the single-slot
// buffer already holding an event means a rebuild is due anyway.
func (s *Scheduler) Notify() {
	select {
	case s.events <- struct{}{}:
	default:
	}
}

// Run drives the debounce loop until the context is canceled. Build errors
// are logged and do not stop the loop.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.events:
		}

		timer := time.NewTimer(s.quiet)
	settle:
		for {
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-s.events:
				if !timer.Stop() {
					<-timer.C
				}
				timer.Reset(s.quiet)
			case <-timer.C:
				break settle
			}
		}

		if err := s.build(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.logger.Error("rebuild failed", logging.Error(err))
		}
	}
}
