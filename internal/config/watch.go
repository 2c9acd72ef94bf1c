package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/numentry/internal/field"
	"github.com/dshills/numentry/internal/logging"
)

// DefaultDebounce is how long the watcher waits for a burst of writes to
// settle before reloading.
const DefaultDebounce = 100 * time.Millisecond

// ReloadFunc receives a reloaded profile and the field options it
// describes. It is called from the goroutine running Watcher.Run.
type ReloadFunc func(p *Profile, opts []field.Option)

// Watcher reloads a profile, and its unit catalog, when either changes
// on disk.
type Watcher struct {
	mu sync.Mutex

	loader   *Loader
	path     string
	onReload ReloadFunc
	debounce time.Duration
	log      *logging.Logger

	fsw     *fsnotify.Watcher
	targets map[string]bool
	closed  bool
}

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithDebounce sets the debounce duration. Zero reloads on every event.
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithWatchLogger sets the watcher's logger.
func WithWatchLogger(l *logging.Logger) WatchOption {
	return func(w *Watcher) {
		if l != nil {
			w.log = l.WithComponent("config")
		}
	}
}

// NewWatcher creates a watcher for the profile at path. Directories are
// watched rather than files so that editors which save by rename are
// seen.
func NewWatcher(loader *Loader, path string, onReload ReloadFunc, opts ...WatchOption) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		loader:   loader,
		path:     abs,
		onReload: onReload,
		debounce: DefaultDebounce,
		log:      logging.Null(),
		fsw:      fsw,
		targets:  map[string]bool{abs: true},
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run processes file events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.log.Debug("%s %s", ev.Op, ev.Name)
			if w.debounce == 0 {
				_ = w.Reload()
				continue
			}
			timer.Reset(w.debounce)

		case <-timer.C:
			_ = w.Reload()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error: %v", err)
		}
	}
}

// Reload loads the profile now. On success the callback is invoked; on
// failure the error is logged and returned and the callback is not.
func (w *Watcher) Reload() error {
	p, err := w.loader.Load(w.path)
	if err == nil {
		var opts []field.Option
		opts, err = w.loader.Resolve(p)
		if err == nil {
			w.track(p)
			w.log.Info("reloaded %s", w.path)
			if w.onReload != nil {
				w.onReload(p, opts)
			}
			return nil
		}
	}
	w.log.Warn("reload rejected: %v", err)
	return err
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	return w.fsw.Close()
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.targets[filepath.Clean(ev.Name)]
}

// track adds the profile's catalog to the watched files.
func (w *Watcher) track(p *Profile) {
	path := p.CatalogPath()
	if path == "" {
		return
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || w.targets[abs] {
		return
	}
	if err := w.fsw.Add(filepath.Dir(abs)); err != nil {
		w.log.Warn("watch %s: %v", abs, err)
		return
	}
	w.targets[abs] = true
}
