// watch.go reloads the book and tag lists when the book root changes.
//
// fsnotify is not recursive, so the root and every book directory are
// watched; new book directories are added as they appear. Bursts of events
// (an upload writes txt and tags.json through temp files) are debounced
// into one reload.

package tui

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jpl-au/bookrab/internal/logging"
)

const defaultDebounce = 150 * time.Millisecond

// Watcher calls onChange after the book root settles.
type Watcher struct {
	root     string
	watcher  *fsnotify.Watcher
	onChange func()
	debounce time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	mu       sync.Mutex
	timer    *time.Timer
	log      *slog.Logger
}

// NewWatcher creates a watcher for root. Call Start to begin watching.
func NewWatcher(root string, onChange func()) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		root:     root,
		watcher:  fw,
		onChange: onChange,
		debounce: defaultDebounce,
		stopCh:   make(chan struct{}),
		log:      logging.ForComponent(logging.CompWatch),
	}, nil
}

// Start watches the root and its book directories. The root is created
// if missing, matching what listing does.
func (w *Watcher) Start() error {
	if err := os.MkdirAll(w.root, 0o755); err != nil {
		return err
	}
	if err := w.watcher.Add(w.root); err != nil {
		return err
	}
	entries, err := os.ReadDir(w.root)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			w.add(filepath.Join(w.root, e.Name()))
		}
	}
	go w.loop()
	return nil
}

// Stop ends watching. It is safe to call more than once.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) add(dir string) {
	if err := w.watcher.Add(dir); err != nil {
		w.log.Warn("watch failed", slog.String("dir", dir), slog.Any("error", err))
	}
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.stopCh:
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if ev.Op&fsnotify.Create != 0 && filepath.Dir(ev.Name) == filepath.Clean(w.root) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					w.add(ev.Name)
				}
			}
			w.schedule()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", slog.Any("error", err))
		}
	}
}

// schedule restarts the debounce timer.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.onChange)
}
