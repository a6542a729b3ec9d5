// Package watch re-runs a handler when watched input files change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long to wait after the last event before handling
// a batch of changes.
const DefaultDebounce = 100 * time.Millisecond

// ErrNothingToWatch is returned by New when no input can be watched.
var ErrNothingToWatch = errors.New("no watchable input files")

// Handler is called with the name of a changed file, as it was given to New.
type Handler func(ctx context.Context, name string) error

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the debounce interval.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// Watcher tracks a fixed set of files. The parent directories are watched so
// files replaced by rename (as many editors save) are still seen.
type Watcher struct {
	fs       *fsnotify.Watcher
	names    []string          // in the order given
	targets  map[string]string // cleaned absolute path -> name
	debounce time.Duration
	logger   *slog.Logger
}

// New starts watching files. "-" (standard input) is skipped.
func New(files []string, opts ...Option) (*Watcher, error) {
	w := &Watcher{
		targets:  make(map[string]string),
		debounce: DefaultDebounce,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(w)
	}

	dirs := make(map[string]bool)
	for _, name := range files {
		if name == "-" {
			w.logger.Debug("not watching standard input")
			continue
		}
		abs, err := filepath.Abs(name)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", name, err)
		}
		abs = filepath.Clean(abs)
		if _, dup := w.targets[abs]; dup {
			continue
		}
		w.targets[abs] = name
		w.names = append(w.names, name)
		dirs[filepath.Dir(abs)] = true
	}
	if len(w.targets) == 0 {
		return nil, ErrNothingToWatch
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	w.fs = fsw
	return w, nil
}

// Files returns the watched file names in the order given.
func (w *Watcher) Files() []string {
	return w.names
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

// Run calls handle for every watched file that was written or created, once
// per debounce window and in the order the files were given. Calls never
// overlap. Run returns nil when ctx is done and the handler's error if it
// fails.
func (w *Watcher) Run(ctx context.Context, handle Handler) error {
	pending := make(map[string]bool)
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			name, ok := w.targets[filepath.Clean(event.Name)]
			if !ok {
				continue
			}
			w.logger.Debug("change detected", slog.String("name", name), slog.String("op", event.Op.String()))
			pending[name] = true
			fire = time.After(w.debounce)

		case <-fire:
			fire = nil
			for _, name := range w.names {
				if !pending[name] {
					continue
				}
				delete(pending, name)
				if err := handle(ctx, name); err != nil {
					return err
				}
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", slog.Any("error", err))
		}
	}
}
