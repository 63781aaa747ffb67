package toolfile

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/go-toolfile/toolfile/verbose"
)

// watchDebounce is how long the tree must stay quiet before onChange fires.
// Editors save through temp-file renames, so one logical edit produces a
// burst of events.
const watchDebounce = 300 * time.Millisecond

const watchOps = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename

// Watcher observes a toolset's base directory and reports, after a debounce
// window, that tool files changed. It never rescans on its own: the callback
// decides when to call Rescan, so the toolset stays serialized with its
// caller.
type Watcher struct {
	fsw      *fsnotify.Watcher
	baseDir  string
	maxDepth int
	ext      string
	settings *verbose.Settings

	// dirs is the watched directory set. Only the event loop touches it
	// once the loop has started.
	dirs map[string]bool

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// Watch starts observing the toolset's directory tree. onChange runs on the
// watcher's goroutine after events for the engine's files settle for 300ms.
// Directories created later within the depth bound join the watch set.
// Close the returned Watcher to stop.
func (t *Toolset) Watch(onChange func()) (*Watcher, error) {
	if onChange == nil {
		return nil, errors.New("onChange must not be nil")
	}
	if t.opts.engine == nil {
		return nil, errors.New("engine must not be nil")
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fsw:      fsw,
		baseDir:  t.baseDir,
		maxDepth: t.opts.maxDepth,
		ext:      t.opts.engine.Ext(),
		settings: t.opts.settings,
		dirs:     make(map[string]bool),
		done:     make(chan struct{}),
	}
	if err := w.addTree(); err != nil {
		fsw.Close()
		return nil, err
	}
	w.wg.Add(1)
	go w.loop(onChange)
	return w, nil
}

// Close stops the watcher and waits for the event loop to exit. Safe to call
// more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fsw.Close()
		w.wg.Wait()
	})
	return err
}

// addTree registers the base directory and every subdirectory within the
// depth bound. fsnotify watches are not recursive.
func (w *Watcher) addTree() error {
	return filepath.WalkDir(w.baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == w.baseDir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if dirDepth(w.baseDir, path) > w.maxDepth {
			return fs.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return err
		}
		w.dirs[path] = true
		return nil
	})
}

func (w *Watcher) loop(onChange func()) {
	defer w.wg.Done()
	var settled <-chan time.Time
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if w.relevant(event) {
				settled = time.After(watchDebounce)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.settings.Printf(verbose.Low, "Watch error: %v", err)
		case <-settled:
			settled = nil
			onChange()
		}
	}
}

// relevant decides whether an event can change the next scan's outcome and
// maintains the watch set as directories come and go.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&watchOps == 0 {
		return false
	}
	if w.dirs[event.Name] {
		if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
			delete(w.dirs, event.Name)
			return true
		}
		return false
	}
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if dirDepth(w.baseDir, event.Name) > w.maxDepth {
				return false
			}
			if err := w.fsw.Add(event.Name); err != nil {
				w.settings.Printf(verbose.Low, "Cannot watch directory '%s'. %v", event.Name, err)
			} else {
				w.dirs[event.Name] = true
			}
			// A directory moved in may already hold tool files.
			return true
		}
	}
	return strings.HasSuffix(event.Name, w.ext)
}
