package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"curator/internal/config"
	"curator/internal/logging"
	"curator/internal/meta"
)

// Daemon ties the watcher and scheduler together behind a file lock so only
// one watch process runs per content root.
type Daemon struct {
	cfg    *config.Config
	store  *meta.Store
	build  BuildFunc
	logger *slog.Logger

	lockPath string
	lock     *flock.Flock
}

func NewDaemon(cfg *config.Config, store *meta.Store, build BuildFunc, logger *slog.Logger) *Daemon {
	lockPath := filepath.Join(cfg.LogDir(), "curator-watch.lock")
	return &Daemon{
		cfg:      cfg,
		store:    store,
		build:    build,
		logger:   logging.NewComponentLogger(logger, "watch"),
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}
}

// Run acquires the lock, performs an initial build, and then watches until
// the context is canceled. Cancellation is the normal way to stop and is
// reported as nil.
func (d *Daemon) Run(ctx context.Context) error {
	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another watch instance is already running")
	}
	defer func() {
		_ = d.lock.Unlock()
	}()

	d.logger.Info("watch started",
		logging.String("root", d.cfg.ContentDir()),
		logging.String("lock", d.lockPath),
		logging.Int("debounce_ms", d.cfg.Watch.DebounceMS))

	if err := d.build(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		d.logger.Error("initial build failed", logging.Error(err))
	}

	quiet := time.Duration(d.cfg.Watch.DebounceMS) * time.Millisecond
	scheduler := NewScheduler(quiet, d.build, d.logger)

	watcher, err := NewWatcher(d.cfg.ContentDir(), d.store, scheduler, d.logger)
	if err != nil {
		return err
	}
	defer watcher.Close()

	done := make(chan error, 2)
	go func() { done <- scheduler.Run(ctx) }()
	go func() { done <- watcher.Run(ctx) }()

	err = <-done
	if errors.Is(err, context.Canceled) {
		d.logger.Info("watch stopped")
		return nil
	}
	return err
}
