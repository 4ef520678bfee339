package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"curator/internal/logging"
	"curator/internal/meta"
	"curator/internal/scan"
)

// Watcher observes a content root recursively and forwards relevant
// filesystem changes to a scheduler. Relevant means image files, metadata
// files, and folder create or remove; editor droppings and thumbnail output
// under excluded directories are ignored.
type Watcher struct {
	root      string
	store     *meta.Store
	exclude   scan.ExcludeFunc
	scheduler *Scheduler
	fsw       *fsnotify.Watcher
	logger    *slog.Logger
}

func NewWatcher(root string, store *meta.Store, scheduler *Scheduler, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	w := &Watcher{
		root:      root,
		store:     store,
		exclude:   scan.DefaultExclude,
		scheduler: scheduler,
		fsw:       fsw,
		logger:    logging.NewComponentLogger(logger, "watcher"),
	}
	if err := w.addTree(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// addTree registers the root and every non-excluded subdirectory. fsnotify
// watches are not recursive, so each directory needs its own watch.
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root && w.exclude(entry.Name()) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// Run pumps filesystem events into the scheduler until the context is
// canceled. Watcher errors are logged, not fatal.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", logging.Error(err))
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	// New directories must be watched before their contents settle.
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if w.exclude(filepath.Base(event.Name)) {
				return
			}
			if err := w.fsw.Add(event.Name); err != nil {
				w.logger.Warn("watch new directory",
					logging.String("path", event.Name),
					logging.Error(err))
			}
			w.logger.Debug("folder added", logging.String("path", event.Name))
			w.scheduler.Notify()
			return
		}
	}

	if !w.relevant(event) {
		return
	}
	w.logger.Debug("change detected",
		logging.String("path", event.Name),
		logging.String("op", event.Op.String()))
	w.scheduler.Notify()
}

// relevant filters file events down to the inputs the manifest depends on.
// The metadata filename wins outright even when the exclusion predicate
// would reject it (the default name is underscore-prefixed). Removes and
// renames cannot be stat'ed, so extension and name are all we have; a
// removed project directory shows up the same way and still matters.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	name := filepath.Base(event.Name)
	if strings.EqualFold(name, w.store.Filename()) {
		return true
	}
	if w.exclude(name) {
		return false
	}
	if w.store.IsImage(name) {
		return true
	}
	if event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename) {
		return filepath.Ext(name) == ""
	}
	return false
}

func (w *Watcher) Close() error {
	return w.fsw.Close()
}
