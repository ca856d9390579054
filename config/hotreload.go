// 配置热重载实现。
//
// 轮询配置文件的修改时间，变更后重新加载、验证并通知回调；
// 回调 panic 时回滚到旧配置。
package config

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ReloadCallback 在新配置生效后调用
type ReloadCallback func(oldConfig, newConfig *Config)

// HotReloader watches one config file and applies changes at runtime.
type HotReloader struct {
	mu sync.RWMutex

	path         string
	envPrefix    string
	pollInterval time.Duration

	config    *Config
	version   int
	lastMod   time.Time
	callbacks []ReloadCallback

	running bool
	stop    chan struct{}

	logger *zap.Logger
}

// HotReloadOption configures a HotReloader.
type HotReloadOption func(*HotReloader)

// WithPollInterval sets how often the file is checked.
func WithPollInterval(d time.Duration) HotReloadOption {
	return func(r *HotReloader) {
		r.pollInterval = d
	}
}

// WithHotReloadLogger sets the logger.
func WithHotReloadLogger(logger *zap.Logger) HotReloadOption {
	return func(r *HotReloader) {
		r.logger = logger
	}
}

// WithReloadEnvPrefix sets the env prefix used when reloading.
func WithReloadEnvPrefix(prefix string) HotReloadOption {
	return func(r *HotReloader) {
		r.envPrefix = prefix
	}
}

// NewHotReloader creates a reloader starting from initial.
func NewHotReloader(path string, initial *Config, opts ...HotReloadOption) *HotReloader {
	if initial == nil {
		initial = DefaultConfig()
	}
	r := &HotReloader{
		path:         path,
		envPrefix:    "VISUALZ",
		pollInterval: time.Second,
		config:       initial,
		version:      1,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With(zap.String("component", "config_reloader"))
	if info, err := os.Stat(path); err == nil {
		r.lastMod = info.ModTime()
	}
	return r
}

// OnReload registers a callback invoked after each successful reload.
func (r *HotReloader) OnReload(cb ReloadCallback) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.callbacks = append(r.callbacks, cb)
}

// Config returns the active configuration.
func (r *HotReloader) Config() *Config {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.config
}

// Version increments with every applied reload.
func (r *HotReloader) Version() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version
}

// Start begins polling until ctx is done or Stop is called.
func (r *HotReloader) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return fmt.Errorf("reloader already running")
	}
	r.running = true
	r.stop = make(chan struct{})
	stop := r.stop
	r.mu.Unlock()

	go r.pollLoop(ctx, stop)

	r.logger.Info("config hot reload started",
		zap.String("path", r.path),
		zap.Duration("poll_interval", r.pollInterval))
	return nil
}

// Stop ends polling.
func (r *HotReloader) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running {
		return
	}
	close(r.stop)
	r.running = false
}

func (r *HotReloader) pollLoop(ctx context.Context, stop <-chan struct{}) {
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C:
			if r.changed() {
				if err := r.Reload(); err != nil {
					r.logger.Error("failed to reload configuration", zap.Error(err))
				}
			}
		}
	}
}

func (r *HotReloader) changed() bool {
	info, err := os.Stat(r.path)
	if err != nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if info.ModTime().After(r.lastMod) {
		r.lastMod = info.ModTime()
		return true
	}
	return false
}

// Reload loads and validates the file, swaps it in and notifies callbacks.
// An invalid file keeps the current configuration. A panicking callback
// rolls the configuration back.
func (r *HotReloader) Reload() error {
	newConfig, err := NewLoader().WithConfigPath(r.path).WithEnvPrefix(r.envPrefix).Load()
	if err != nil {
		r.logger.Error("failed to load config from file, keeping current config",
			zap.Error(err), zap.String("path", r.path))
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := newConfig.Validate(); err != nil {
		r.logger.Error("invalid config from file, keeping current config",
			zap.Error(err), zap.String("path", r.path))
		return fmt.Errorf("invalid config: %w", err)
	}

	r.mu.Lock()
	oldConfig := r.config
	r.config = newConfig
	r.version++
	callbacks := append([]ReloadCallback(nil), r.callbacks...)
	r.mu.Unlock()

	if err := notifySafe(callbacks, oldConfig, newConfig); err != nil {
		r.mu.Lock()
		if r.config == newConfig {
			r.config = oldConfig
			r.version++
			r.logger.Error("reload callback failed, rolled back", zap.Error(err))
		}
		r.mu.Unlock()
		return fmt.Errorf("config applied but callback failed: %w", err)
	}

	r.logger.Info("configuration reloaded", zap.Int("version", r.Version()))
	return nil
}

// notifySafe 安全地通知回调（捕获 panic）
func notifySafe(callbacks []ReloadCallback, oldConfig, newConfig *Config) (retErr error) {
	defer func() {
		if rec := recover(); rec != nil {
			retErr = fmt.Errorf("callback panicked: %v", rec)
		}
	}()
	for _, cb := range callbacks {
		cb(oldConfig, newConfig)
	}
	return nil
}
