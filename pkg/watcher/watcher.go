// Package watcher re-runs a callback when watched files are written.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// FileWatcher watches mesh files and invokes a debounced callback on change
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	log      *zap.Logger
	mu       sync.Mutex
	handlers map[string]func(string)
	debounce time.Duration
	timers   map[string]*time.Timer
}

// New creates a watcher that waits debounce after the last event of a file
// before calling its handler.
func New(debounce time.Duration, log *zap.Logger) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &FileWatcher{
		watcher:  w,
		log:      log,
		handlers: make(map[string]func(string)),
		debounce: debounce,
		timers:   make(map[string]*time.Timer),
	}, nil
}

// Watch registers handler for each file
func (fw *FileWatcher) Watch(files []string, handler func(string)) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	for _, file := range files {
		absPath, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", file, err)
		}

		// Editors often replace files, so watch the directory and filter
		if err := fw.watcher.Add(filepath.Dir(absPath)); err != nil {
			return fmt.Errorf("failed to watch %s: %w", absPath, err)
		}

		fw.handlers[absPath] = handler
	}

	return nil
}

// Run dispatches file events until ctx is done, then closes the watcher
func (fw *FileWatcher) Run(ctx context.Context) error {
	defer fw.close()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				fw.schedule(event.Name)
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return nil
			}
			fw.log.Warn("watcher error", zap.Error(err))
		}
	}
}

// schedule (re)starts the debounce timer of a changed file
func (fw *FileWatcher) schedule(name string) {
	absPath, err := filepath.Abs(name)
	if err != nil {
		return
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()

	handler, ok := fw.handlers[absPath]
	if !ok {
		return
	}

	if timer, ok := fw.timers[absPath]; ok {
		timer.Stop()
	}

	fw.log.Debug("file changed", zap.String("path", absPath))
	fw.timers[absPath] = time.AfterFunc(fw.debounce, func() {
		handler(absPath)
	})
}

func (fw *FileWatcher) close() {
	fw.mu.Lock()
	for _, timer := range fw.timers {
		timer.Stop()
	}
	fw.timers = make(map[string]*time.Timer)
	fw.mu.Unlock()

	fw.watcher.Close()
}
