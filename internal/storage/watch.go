package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/julianstephens/lifetrack/internal/logger"
)

// Watcher calls onChange when the snapshot file is modified by another process.
// Events are debounced so a burst of writes produces one callback.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	onChange func(context.Context)
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

// NewWatcher watches path. The parent directory is watched so atomic
// rename-over writes are seen.
func NewWatcher(path string, debounce time.Duration, onChange func(context.Context)) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &Watcher{
		watcher:  w,
		path:     filepath.Clean(path),
		debounce: debounce,
		onChange: onChange,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching. It does not block.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.path), err)
	}
	w.running = true
	go w.run(ctx)
	logger.Debug("Watching snapshot for external changes", "path", w.path)
	return nil
}

// Stop stops the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		_ = w.watcher.Close()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	if err := w.watcher.Close(); err != nil {
		logger.Error("Failed to close file watcher", "error", err)
	}
}

// matches reports whether an event path refers to the watched file or its SQLite WAL.
func (w *Watcher) matches(name string) bool {
	name = filepath.Clean(name)
	return name == w.path || strings.HasPrefix(name, w.path+"-wal")
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.matches(event.Name) || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.debounce)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("File watcher error", "error", err)
		case <-timer.C:
			w.onChange(ctx)
		}
	}
}
