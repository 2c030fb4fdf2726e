package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/felixgeelhaar/explore-go/domain/config"
	"github.com/felixgeelhaar/explore-go/infrastructure/logging"
)

// Watcher reloads a scenario file when it changes on disk. Editors often
// replace files via rename, so the parent directory is watched and events
// are filtered by path.
type Watcher struct {
	path     string
	loader   *Loader
	debounce time.Duration
	watcher  *fsnotify.Watcher
}

// WatcherOption configures a watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the quiet period before a change is reported.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithLoader sets the loader used to parse reloaded files.
func WithLoader(l *Loader) WatcherOption {
	return func(w *Watcher) {
		w.loader = l
	}
}

// NewWatcher creates a watcher for the given scenario file.
func NewWatcher(path string, opts ...WatcherOption) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve scenario path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:     abs,
		loader:   NewLoader(),
		debounce: 250 * time.Millisecond,
		watcher:  fw,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Watch delivers reloaded scenarios on the returned channel until ctx is
// cancelled. Files that fail to load are logged and skipped; the previous
// scenario stays in effect.
func (w *Watcher) Watch(ctx context.Context) <-chan *config.Scenario {
	out := make(chan *config.Scenario, 1)

	go func() {
		defer close(out)

		var timer *time.Timer
		var pending <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != w.path {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(w.debounce)
				} else {
					timer.Reset(w.debounce)
				}
				pending = timer.C
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				logging.Warn().Add(logging.ErrorField(err)).Msg("scenario watch error")
			case <-pending:
				pending = nil
				s, err := w.loader.LoadFile(w.path)
				if err != nil {
					logging.Warn().
						Add(logging.Str("path", w.path)).
						Add(logging.ErrorField(err)).
						Msg("scenario reload failed")
					continue
				}
				select {
				case out <- s:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}

// Close stops the underlying file watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
