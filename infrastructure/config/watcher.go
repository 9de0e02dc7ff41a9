package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// DynamicConfig holds the runtime-changeable settings. Operators tune these
// without restarting the embedding application.
type DynamicConfig struct {
	Timeouts TimeoutOverrides `yaml:"timeouts"`
	Cache    CacheOverrides   `yaml:"cache"`
	Breaker  BreakerOverrides `yaml:"breaker"`
	Version  string           `yaml:"version"`
}

// TimeoutOverrides adjusts request deadlines, in seconds.
type TimeoutOverrides struct {
	RequestSeconds int `yaml:"requestSeconds"`
	GrocerySeconds int `yaml:"grocerySeconds"`
}

// CacheOverrides adjusts the cache windows, in hours.
type CacheOverrides struct {
	RecommendationHours int `yaml:"recommendationHours"`
	SelectionLockHours  int `yaml:"selectionLockHours"`
}

// BreakerOverrides toggles the API circuit breaker.
type BreakerOverrides struct {
	Enabled bool `yaml:"enabled"`
}

// Watcher watches a dynamic configuration file for changes and notifies
// registered listeners with the reloaded settings.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	current  *DynamicConfig
	mu       sync.RWMutex
	onChange []func(*DynamicConfig)
	logger   *zap.Logger
	stopCh   chan struct{}
}

// NewWatcher loads the dynamic config at path and prepares a file watcher.
func NewWatcher(path string, logger *zap.Logger) (*Watcher, error) {
	current, err := loadDynamicConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load initial dynamic config: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch config file: %w", err)
	}

	// Watch the directory too, so atomic saves (rename) are seen.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		logger.Warn("Failed to watch config directory", zap.Error(err))
	}

	return &Watcher{
		path:    path,
		watcher: watcher,
		current: current,
		logger:  logger,
		stopCh:  make(chan struct{}),
	}, nil
}

// Start begins watching for configuration changes.
func (w *Watcher) Start() {
	go w.watchLoop()
	w.logger.Info("Dynamic config watcher started", zap.String("path", w.path))
}

// Stop stops watching for configuration changes.
func (w *Watcher) Stop() {
	close(w.stopCh)
	w.watcher.Close()
	w.logger.Info("Dynamic config watcher stopped")
}

// Current returns the most recently loaded configuration.
func (w *Watcher) Current() *DynamicConfig {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// OnChange registers a callback invoked after each successful reload.
func (w *Watcher) OnChange(handler func(*DynamicConfig)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = append(w.onChange, handler)
}

func (w *Watcher) watchLoop() {
	// Debounce so editors that write in several syscalls trigger one reload.
	var debounceTimer *time.Timer
	const debounceDuration = 100 * time.Millisecond

	for {
		select {
		case <-w.stopCh:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(debounceDuration, w.reload)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("File watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	w.logger.Info("Dynamic config changed, reloading", zap.String("path", w.path))

	next, err := loadDynamicConfig(w.path)
	if err != nil {
		w.logger.Error("Failed to reload dynamic config", zap.Error(err))
		return
	}

	if err := validateDynamicConfig(next); err != nil {
		w.logger.Error("Invalid dynamic config, keeping current", zap.Error(err))
		return
	}

	w.mu.Lock()
	w.current = next
	handlers := make([]func(*DynamicConfig), len(w.onChange))
	copy(handlers, w.onChange)
	w.mu.Unlock()

	for _, handler := range handlers {
		go handler(next)
	}

	w.logger.Info("Dynamic config reloaded", zap.String("version", next.Version))
}

func loadDynamicConfig(path string) (*DynamicConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg DynamicConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse dynamic config: %w", err)
	}

	if err := validateDynamicConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validateDynamicConfig(cfg *DynamicConfig) error {
	if cfg.Timeouts.RequestSeconds < 0 || cfg.Timeouts.GrocerySeconds < 0 {
		return fmt.Errorf("timeouts cannot be negative")
	}
	if cfg.Cache.RecommendationHours < 0 || cfg.Cache.SelectionLockHours < 0 {
		return fmt.Errorf("cache windows cannot be negative")
	}
	return nil
}
