package watcher

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher reports debounced changes of individual files. Changes
// are delivered on a channel so a frame loop can poll them without
// blocking.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	log      *slog.Logger
	debounce time.Duration
	changes  chan string

	mu     sync.Mutex
	files  map[string]bool
	timers map[string]*time.Timer
	closed bool
}

// NewFileWatcher creates a watcher that waits debounce after the last
// write before reporting a file
func NewFileWatcher(debounce time.Duration, log *slog.Logger) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	fw := &FileWatcher{
		watcher:  w,
		log:      log,
		debounce: debounce,
		changes:  make(chan string, 16),
		files:    make(map[string]bool),
		timers:   make(map[string]*time.Timer),
	}
	go fw.run()
	return fw, nil
}

// Watch adds files. Their directories are watched so that editors which
// replace a file on save are still noticed.
func (fw *FileWatcher) Watch(files ...string) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	for _, file := range files {
		absPath, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", file, err)
		}
		if err := fw.watcher.Add(filepath.Dir(absPath)); err != nil {
			return fmt.Errorf("failed to watch %s: %w", absPath, err)
		}
		fw.files[absPath] = true
	}
	return nil
}

// Changes delivers the absolute path of every changed file
func (fw *FileWatcher) Changes() <-chan string {
	return fw.changes
}

func (fw *FileWatcher) run() {
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				fw.handleFileChange(filepath.Clean(event.Name))
			}
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.log.Warn("watcher error", "err", err)
		}
	}
}

func (fw *FileWatcher) handleFileChange(path string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.closed || !fw.files[path] {
		return
	}
	if timer, ok := fw.timers[path]; ok {
		timer.Stop()
	}
	fw.timers[path] = time.AfterFunc(fw.debounce, func() {
		fw.mu.Lock()
		defer fw.mu.Unlock()
		if fw.closed {
			return
		}
		select {
		case fw.changes <- path:
		default:
			fw.log.Debug("change dropped, consumer is behind", "path", path)
		}
	})
}

// Close stops watching. Pending debounced changes are discarded.
func (fw *FileWatcher) Close() error {
	fw.mu.Lock()
	fw.closed = true
	for _, timer := range fw.timers {
		timer.Stop()
	}
	fw.mu.Unlock()
	return fw.watcher.Close()
}
