package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 300 * time.Millisecond

// fileWatcher reports debounced writes to a single file. Editors that
// save via rename (write temp file, rename over the target) surface as
// Create events in the parent directory, so the watch is on the
// directory with events filtered by base name.
type fileWatcher struct {
	fsw      *fsnotify.Watcher
	path     string
	onChange chan struct{}
	done     chan struct{}
}

func newFileWatcher(path string) (*fileWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	return &fileWatcher{
		fsw:      fsw,
		path:     path,
		onChange: make(chan struct{}, 1),
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching and returns the channel change signals arrive
// on. The channel holds at most one pending signal.
func (w *fileWatcher) Start() (<-chan struct{}, error) {
	dir := filepath.Dir(w.path)
	if err := w.fsw.Add(dir); err != nil {
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}
	go w.loop()
	return w.onChange, nil
}

func (w *fileWatcher) Stop() error {
	close(w.done)
	return w.fsw.Close()
}

func (w *fileWatcher) loop() {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
				fire = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-fire:
					default:
					}
				}
				timer.Reset(watchDebounce)
			}

		case <-fire:
			timer, fire = nil, nil
			select {
			case w.onChange <- struct{}{}:
			default:
			}

		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			// Keep watching; the editor works without reload signals.

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

func (w *fileWatcher) relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	return filepath.Base(ev.Name) == filepath.Base(w.path)
}
