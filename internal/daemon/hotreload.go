package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jmylchreest/shout/internal/config"
)

// FileWatcher calls back when a file is written, created or renamed into
// place. Bursts of events from one save are coalesced.
type FileWatcher struct {
	mu     sync.Mutex
	logger *slog.Logger

	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	timer    *time.Timer

	onChange func()

	done    chan struct{}
	running bool
}

// NewFileWatcher creates a watcher for path. The parent directory is watched
// so editors that replace the file are still seen.
func NewFileWatcher(path string, logger *slog.Logger) (*FileWatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &FileWatcher{
		logger:   logger,
		watcher:  watcher,
		path:     path,
		debounce: 150 * time.Millisecond,
		done:     make(chan struct{}),
	}, nil
}

// SetDebounce sets how long to wait for further events before calling back.
func (w *FileWatcher) SetDebounce(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.debounce = d
}

// SetChangeCallback sets the function called after the file changes.
func (w *FileWatcher) SetChangeCallback(callback func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = callback
}

// Start begins watching until ctx is done or Stop is called.
func (w *FileWatcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.path), err)
	}

	go w.watch(ctx)

	w.logger.Debug("file watcher started", "path", w.path)
	return nil
}

// Stop stops watching.
func (w *FileWatcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}
	w.running = false
	if w.timer != nil {
		w.timer.Stop()
	}
	close(w.done)
	return w.watcher.Close()
}

func (w *FileWatcher) watch(ctx context.Context) {
	name := filepath.Base(w.path)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.schedule()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error", "path", w.path, "error", err)

		case <-ctx.Done():
			_ = w.Stop()
			return

		case <-w.done:
			return
		}
	}
}

func (w *FileWatcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	callback := w.onChange
	w.timer = time.AfterFunc(w.debounce, func() {
		w.logger.Debug("file changed", "path", w.path)
		if callback != nil {
			callback()
		}
	})
}

// ConfigWatcher reloads the configuration file when it changes. Invalid
// files are reported and the previous configuration is kept.
type ConfigWatcher struct {
	mu     sync.RWMutex
	logger *slog.Logger

	path    string
	files   *FileWatcher
	current *config.Config

	onReload func(cfg *config.Config)
	onError  func(err error)
}

// NewConfigWatcher creates a watcher for the config file at path, or the
// default path when empty.
func NewConfigWatcher(path string, logger *slog.Logger) (*ConfigWatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if path == "" {
		path = config.ConfigPath()
	}
	files, err := NewFileWatcher(path, logger)
	if err != nil {
		return nil, err
	}
	w := &ConfigWatcher{
		logger: logger,
		path:   path,
		files:  files,
	}
	files.SetChangeCallback(w.reload)
	return w, nil
}

// SetReloadCallback sets the function called with each valid new config.
func (w *ConfigWatcher) SetReloadCallback(callback func(cfg *config.Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onReload = callback
}

// SetErrorCallback sets the function called when a changed file is invalid.
func (w *ConfigWatcher) SetErrorCallback(callback func(err error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onError = callback
}

// Start begins watching with initial as the current configuration.
func (w *ConfigWatcher) Start(ctx context.Context, initial *config.Config) error {
	w.mu.Lock()
	w.current = initial
	w.mu.Unlock()

	if err := w.files.Start(ctx); err != nil {
		return err
	}
	w.logger.Debug("config watcher started", "path", w.path)
	return nil
}

// Stop stops watching.
func (w *ConfigWatcher) Stop() error {
	return w.files.Stop()
}

// Current returns the last valid configuration.
func (w *ConfigWatcher) Current() *config.Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

func (w *ConfigWatcher) reload() {
	w.mu.RLock()
	onReload, onError := w.onReload, w.onError
	w.mu.RUnlock()

	cfg, err := config.LoadConfig(w.path)
	if err != nil {
		w.logger.Warn("config file changed but failed to load", "error", err)
		if onError != nil {
			onError(err)
		}
		return
	}

	w.mu.Lock()
	w.current = cfg
	w.mu.Unlock()

	w.logger.Info("config reloaded", "path", w.path)
	if onReload != nil {
		onReload(cfg)
	}
}
