// Package watch reports changes to a single file, debouncing bursts of
// filesystem events into one callback.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
)

// DefaultDebounce is used when a non-positive debounce is given.
const DefaultDebounce = 250 * time.Millisecond

// Watcher monitors one file and calls onChange after writes settle.
type Watcher struct {
	path     string
	debounce time.Duration
	onChange func(ctx context.Context)

	watcher    *fsnotify.Watcher
	mu         sync.Mutex
	started    bool
	stopChan   chan struct{}
	reloadChan chan struct{}
	done       sync.WaitGroup
}

// New creates a watcher for path. onChange runs on its own goroutine, never
// concurrently with itself.
func New(path string, debounce time.Duration, onChange func(ctx context.Context)) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.FileSystemError("failed to resolve watched path").WithCause(err).WithContext("path", path).Build()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.FileSystemError("failed to create file watcher").WithCause(err).Build()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		path:       absPath,
		debounce:   debounce,
		onChange:   onChange,
		watcher:    fw,
		stopChan:   make(chan struct{}),
		reloadChan: make(chan struct{}, 1),
	}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Start watches the file's directory, which survives editors that replace
// the file by rename.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return nil
	}

	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		return errors.FileSystemError("failed to watch directory").WithCause(err).WithContext("path", dir).Build()
	}
	w.started = true
	slog.Info("Watching navigation source", logfields.Path(w.path))

	w.done.Add(2)
	go w.watchLoop(ctx)
	go w.reloadLoop(ctx)
	return nil
}

// Stop ends watching and waits for the loops to exit.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.started {
		w.mu.Unlock()
		return w.watcher.Close()
	}
	w.started = false
	close(w.stopChan)
	w.mu.Unlock()

	err := w.watcher.Close()
	w.done.Wait()
	if err != nil {
		return errors.FileSystemError("failed to close file watcher").WithCause(err).Build()
	}
	return nil
}

func (w *Watcher) watchLoop(ctx context.Context) {
	defer w.done.Done()
	name := filepath.Base(w.path)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			switch {
			case event.Has(fsnotify.Write), event.Has(fsnotify.Create), event.Has(fsnotify.Rename):
				slog.Debug("Navigation source changed", logfields.Path(event.Name), slog.String("op", event.Op.String()))
				w.trigger()
			case event.Has(fsnotify.Remove):
				slog.Warn("Navigation source removed", logfields.Path(event.Name))
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("File watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) reloadLoop(ctx context.Context) {
	defer w.done.Done()
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-w.stopChan:
			timer.Stop()
			return
		case <-w.reloadChan:
			timer.Reset(w.debounce)
		case <-timer.C:
			w.onChange(ctx)
		}
	}
}

func (w *Watcher) trigger() {
	select {
	case w.reloadChan <- struct{}{}:
	default:
	}
}
