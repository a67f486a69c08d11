package watcher

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/promptloom/loom/internal/logger"
)

// Watcher observes the library folder and fires a single rescan callback
// after disk activity settles. Edits tend to arrive in bursts (editors write
// temp files, folders get copied in), so events are debounced.
type Watcher struct {
	fsw      *fsnotify.Watcher
	root     string
	debounce time.Duration
	onRescan func()
	done     chan struct{}
}

// New creates a watcher over root. onRescan runs on the watcher's goroutine;
// the caller is responsible for marshaling back onto whatever goroutine owns
// the tree.
func New(root string, debounce time.Duration, onRescan func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	w := &Watcher{
		fsw:      fsw,
		root:     root,
		debounce: debounce,
		onRescan: onRescan,
		done:     make(chan struct{}),
	}
	if err := w.addRecursive(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// addRecursive watches root and every subfolder; fsnotify has no recursive
// mode of its own.
func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// Start runs the event loop until Stop is called.
func (w *Watcher) Start() {
	go w.loop()
}

func (w *Watcher) loop() {
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			logger.Trace("fs event: %s", ev)
			if ev.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.fsw.Add(ev.Name); err != nil {
						logger.Warn("watch new folder %s: %v", ev.Name, err)
					}
				}
			}
			if pending && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(w.debounce)
			pending = true

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("watcher error: %v", err)

		case <-timer.C:
			pending = false
			w.onRescan()

		case <-w.done:
			return
		}
	}
}

// Stop ends the event loop and releases the OS watches.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsw.Close()
}
