package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/touchstone/internal/logging"
)

// DefaultDebounce coalesces the bursts of events editors produce on save.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reloads a configuration file when it changes and delivers the
// result on Updates. Only the newest configuration is kept when the
// receiver falls behind.
type Watcher struct {
	path     string
	debounce time.Duration
	load     func(path string) (Config, error)
	log      *logging.Logger

	fsw     *fsnotify.Watcher
	updates chan Config
	errors  chan error

	closeOnce sync.Once
	closeCh   chan struct{}
	wg        sync.WaitGroup
}

// NewWatcher watches path. The parent directory is watched so that
// editors replacing the file by rename are noticed.
func NewWatcher(path string, debounce time.Duration, log *logging.Logger) (*Watcher, error) {
	if log == nil {
		log = logging.Nop()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(absPath), err)
	}

	w := &Watcher{
		path:     absPath,
		debounce: debounce,
		load:     Load,
		log:      log.WithComponent("config"),
		fsw:      fsw,
		updates:  make(chan Config, 1),
		errors:   make(chan error, 1),
		closeCh:  make(chan struct{}),
	}

	w.wg.Add(1)
	go w.processLoop()

	return w, nil
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Updates delivers each successfully reloaded configuration.
func (w *Watcher) Updates() <-chan Config {
	return w.updates
}

// Errors delivers reload and watch failures.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops watching. Updates and Errors are closed afterwards.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.closeCh)
		w.wg.Wait()
		err = w.fsw.Close()
		close(w.updates)
		close(w.errors)
	})
	return err
}

func (w *Watcher) processLoop() {
	defer w.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.sendError(err)

		case <-fire:
			fire = nil
			w.reload()
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)
}

func (w *Watcher) reload() {
	cfg, err := w.load(w.path)
	if err != nil {
		w.log.Warn("reloading %s: %v", w.path, err)
		w.sendError(err)
		return
	}
	w.log.Info("reloaded %s", w.path)

	// Keep only the newest configuration.
	select {
	case <-w.updates:
	default:
	}
	w.updates <- cfg
}

func (w *Watcher) sendError(err error) {
	select {
	case w.errors <- err:
	default:
	}
}
