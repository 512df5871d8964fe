// Package watch notices external changes to the opened image folder.
// Images added, removed, or renamed outside the editor trigger a
// debounced refresh signal so the collection can rescan without
// thrashing on bursts of filesystem events.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"sidecap/internal/log"
)

// Watcher monitors directories for image file changes using fsnotify.
// Events within the debounce window coalesce into a single refresh.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	refreshCh chan struct{}
	delay     time.Duration
	match     func(name string) bool

	mu      sync.Mutex
	timer   *time.Timer
	skip    map[string]bool
	running bool
	stopCh  chan struct{}
}

// New creates a watcher. match filters file names to the ones the
// collection cares about; delay is the debounce window.
func New(delay time.Duration, match func(name string) bool) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		fsWatcher: fsWatcher,
		refreshCh: make(chan struct{}, 1),
		delay:     delay,
		match:     match,
		skip:      make(map[string]bool),
		stopCh:    make(chan struct{}),
	}, nil
}

// AddDirectory adds a single directory to the watch set.
func (w *Watcher) AddDirectory(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("error accessing directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("failed to add directory %s to watcher: %w", dir, err)
	}
	log.WithFields(log.F("directory", dir)).Debug("Watching directory")
	return nil
}

// WatchTree adds root and every subdirectory except those named in
// skipDirs. fsnotify is not recursive on its own.
func (w *Watcher) WatchTree(root string, skipDirs ...string) error {
	w.mu.Lock()
	for _, d := range skipDirs {
		w.skip[d] = true
	}
	w.mu.Unlock()

	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			log.Warn("Skipping %s: %v", path, err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if w.skipped(d.Name()) {
			return filepath.SkipDir
		}
		return w.AddDirectory(path)
	})
}

func (w *Watcher) skipped(name string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.skip[name]
}

// Refresh returns the channel that signals a debounced refresh.
func (w *Watcher) Refresh() <-chan struct{} {
	return w.refreshCh
}

// Start begins the event loop.
func (w *Watcher) Start() error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.mu.Unlock()

	go func() {
		for {
			select {
			case event, ok := <-w.fsWatcher.Events:
				if !ok {
					return
				}
				if w.handleNewDirectory(event) {
					continue
				}
				if !w.relevant(event) {
					continue
				}
				log.Debug("Folder changed: %s (%s)", event.Name, event.Op)
				w.scheduleRefresh()

			case err, ok := <-w.fsWatcher.Errors:
				if !ok {
					return
				}
				log.WithFields(log.F("error", err)).Warn("Watcher error")

			case <-w.stopCh:
				return
			}
		}
	}()

	return nil
}

// handleNewDirectory extends the watch set when a directory appears
// under a watched one. fsnotify is not recursive, so without this a
// subfolder created after startup would stay invisible. Files dropped
// into the directory before the watch attaches produce no events, so a
// refresh is scheduled to pick them up. Returns true if the event was
// a directory creation.
func (w *Watcher) handleNewDirectory(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Create) {
		return false
	}
	info, err := os.Stat(event.Name)
	if err != nil || !info.IsDir() {
		return false
	}
	if w.skipped(filepath.Base(event.Name)) {
		return true
	}
	if err := w.AddDirectory(event.Name); err != nil {
		log.Warn("Cannot watch new directory %s: %v", event.Name, err)
		return true
	}
	w.scheduleRefresh()
	return true
}

// relevant reports whether an event should trigger a refresh: images
// appearing, disappearing, or being renamed. Writes to existing files
// don't change the collection's shape.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return false
	}
	return w.match == nil || w.match(filepath.Base(event.Name))
}

// scheduleRefresh restarts the debounce timer; the refresh signal
// fires once per quiet period.
func (w *Watcher) scheduleRefresh() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, func() {
		select {
		case w.refreshCh <- struct{}{}:
		default:
		}
	})
}

// Stop halts the watcher and releases the fsnotify handle.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	if w.running {
		w.running = false
		close(w.stopCh)
	}
	w.fsWatcher.Close()
}
