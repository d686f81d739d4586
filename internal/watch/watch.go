// Package watch reports when files in the merge list change or disappear.
package watch

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/fremen-fi/wavmerge/internal/logging"
)

// Op is what happened to a tracked file.
type Op int

const (
	// Changed means the file was written or recreated.
	Changed Op = iota
	// Removed means the file was deleted or renamed away.
	Removed
)

func (o Op) String() string {
	if o == Removed {
		return "removed"
	}
	return "changed"
}

// Event is delivered for tracked paths only.
type Event struct {
	Path string
	Op   Op
}

// Watcher watches the parent directories of a set of files. Directories are
// watched rather than files so that a deleted and recreated file is still seen.
type Watcher struct {
	fs     *fsnotify.Watcher
	events chan Event
	stop   chan struct{}
	done   chan struct{}

	mu      sync.Mutex
	tracked map[string]struct{}
	dirs    map[string]struct{}
}

// New starts a watcher with nothing tracked.
func New() (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fs:      fs,
		events:  make(chan Event, 64),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
		tracked: make(map[string]struct{}),
		dirs:    make(map[string]struct{}),
	}
	go w.loop()
	return w, nil
}

// Events returns the channel of events for tracked files.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Sync replaces the tracked set with paths.
func (w *Watcher) Sync(paths []string) {
	tracked := make(map[string]struct{}, len(paths))
	dirs := make(map[string]struct{})
	for _, p := range paths {
		clean := filepath.Clean(p)
		tracked[clean] = struct{}{}
		dirs[filepath.Dir(clean)] = struct{}{}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	for dir := range w.dirs {
		if _, ok := dirs[dir]; ok {
			continue
		}
		if err := w.fs.Remove(dir); err != nil {
			logging.Debug("unwatch directory", logging.String("dir", dir), logging.ErrorField(err))
		}
	}
	for dir := range dirs {
		if _, ok := w.dirs[dir]; ok {
			continue
		}
		if err := w.fs.Add(dir); err != nil {
			logging.Warn("watch directory", logging.String("dir", dir), logging.ErrorField(err))
			delete(dirs, dir)
		}
	}

	w.tracked = tracked
	w.dirs = dirs
}

// Close stops watching and closes the Events channel.
func (w *Watcher) Close() error {
	select {
	case <-w.stop:
		return nil
	default:
	}
	close(w.stop)
	err := w.fs.Close()
	<-w.done
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)
	defer close(w.events)

	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			ev, ok := w.translate(event)
			if !ok {
				continue
			}
			select {
			case w.events <- ev:
			case <-w.stop:
				return
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logging.Warn("watcher error", logging.ErrorField(err))
		case <-w.stop:
			return
		}
	}
}

func (w *Watcher) translate(event fsnotify.Event) (Event, bool) {
	path := filepath.Clean(event.Name)

	w.mu.Lock()
	_, ok := w.tracked[path]
	w.mu.Unlock()
	if !ok {
		return Event{}, false
	}

	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return Event{Path: path, Op: Removed}, true
	case event.Has(fsnotify.Write), event.Has(fsnotify.Create):
		return Event{Path: path, Op: Changed}, true
	}
	return Event{}, false
}
