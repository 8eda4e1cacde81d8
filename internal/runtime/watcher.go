package runtime

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/yaoapp/kun/log"
)

// ReloadDebounce is the window after a successful reload during which
// further file events are ignored, absorbing editor write bursts.
const ReloadDebounce = 500 * time.Millisecond

// reloadClock tracks the last successful reload for debouncing.
type reloadClock struct {
	last time.Time
}

func (c *reloadClock) withinDebounce(now time.Time) bool {
	return !c.last.IsZero() && now.Sub(c.last) < ReloadDebounce
}

func (c *reloadClock) mark(now time.Time) { c.last = now }

// Watcher wraps an fsnotify watcher for one instance's source file.
// Poll drains pending events without blocking — the frame loop calls it
// once per frame.
type Watcher struct {
	fs   *fsnotify.Watcher
	path string
}

// NewWatcher watches the given file. The parent directory is what
// actually gets registered, since editors commonly replace files via
// rename, which drops a direct file watch.
func NewWatcher(path string) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fs.Add(filepath.Dir(path)); err != nil {
		fs.Close()
		return nil, err
	}
	return &Watcher{fs: fs, path: path}, nil
}

// Poll drains pending events and reports whether the watched file
// changed. It never blocks.
func (w *Watcher) Poll() bool {
	if w == nil || w.fs == nil {
		return false
	}
	changed := false
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return changed
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				changed = true
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return changed
			}
			log.Warn("runtime: watcher error for %s: %v", w.path, err)
		default:
			return changed
		}
	}
}

// Close stops the underlying watcher.
func (w *Watcher) Close() error {
	if w == nil || w.fs == nil {
		return nil
	}
	return w.fs.Close()
}
