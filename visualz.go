// Package visualz wires the parametric generation pipeline from a single
// configuration: logging, metrics, tracing, the AI analyzer, templates, the
// material system, the result cache and the performance monitor.
//
// Usage:
//
//	p, err := visualz.New(cfg)
//	if err != nil { ... }
//	defer p.Close(ctx)
//	if err := p.Start(ctx); err != nil { ... }
//	results, err := p.GenerateFurnitureFromUserInput(ctx, req)
//
// NewFromFile additionally watches the YAML file and applies monitor
// threshold changes without a restart.
package visualz

import (
	"context"
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/saleemjadallah/visualz-backend-sub003/analyzer"
	"github.com/saleemjadallah/visualz-backend-sub003/config"
	"github.com/saleemjadallah/visualz-backend-sub003/culture"
	"github.com/saleemjadallah/visualz-backend-sub003/internal/cache"
	"github.com/saleemjadallah/visualz-backend-sub003/internal/logging"
	"github.com/saleemjadallah/visualz-backend-sub003/internal/metrics"
	"github.com/saleemjadallah/visualz-backend-sub003/internal/telemetry"
	"github.com/saleemjadallah/visualz-backend-sub003/llm"
	"github.com/saleemjadallah/visualz-backend-sub003/material"
	"github.com/saleemjadallah/visualz-backend-sub003/monitor"
	"github.com/saleemjadallah/visualz-backend-sub003/parametric"
	"github.com/saleemjadallah/visualz-backend-sub003/pipeline"
	"github.com/saleemjadallah/visualz-backend-sub003/template"
)

// Option customises how New assembles the pipeline.
type Option func(*options)

type options struct {
	logger     *zap.Logger
	registerer prometheus.Registerer
	gatherer   prometheus.Gatherer
	completer  llm.Completer
	database   culture.Database
	store      monitor.SnapshotStore
}

// WithLogger replaces the logger built from the log configuration.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithRegistry registers metrics on reg instead of a private registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(o *options) {
		o.registerer = reg
		o.gatherer = reg
	}
}

// WithCompleter replaces the OpenAI-compatible client built from the AI
// configuration. It is used even when AI is disabled in the configuration.
func WithCompleter(c llm.Completer) Option {
	return func(o *options) { o.completer = c }
}

// WithDatabase replaces the embedded cultural database.
func WithDatabase(db culture.Database) Option {
	return func(o *options) { o.database = db }
}

// WithSnapshotStore replaces the Redis snapshot store.
func WithSnapshotStore(s monitor.SnapshotStore) Option {
	return func(o *options) { o.store = s }
}

// Pipeline is the assembled generation pipeline.
type Pipeline struct {
	cfg       *config.Config
	logger    *zap.Logger
	gatherer  prometheus.Gatherer
	engine    *pipeline.Engine
	analyzer  *analyzer.Analyzer
	materials *material.System
	monitor   *monitor.Monitor
	telemetry *telemetry.Providers

	store      monitor.SnapshotStore
	redisStore *cache.RedisStore
	reloader   *config.HotReloader

	mu            sync.Mutex
	stopReporting func()
	closed        bool
}

// New assembles a pipeline from cfg. A nil cfg uses config.DefaultConfig.
func New(cfg *config.Config, opts ...Option) (*Pipeline, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	logger := o.logger
	if logger == nil {
		logger = logging.New(cfg.Log)
	}

	p := &Pipeline{cfg: cfg, logger: logger}

	var collector *metrics.Collector
	if cfg.Metrics.Enabled {
		if o.registerer == nil {
			reg := prometheus.NewRegistry()
			o.registerer, o.gatherer = reg, reg
		}
		collector = metrics.NewCollector(cfg.Metrics.Namespace, o.registerer, logger)
		p.gatherer = o.gatherer
	}

	providers, err := telemetry.Init(cfg.Telemetry, logger)
	if err != nil {
		logger.Warn("failed to initialize telemetry", zap.Error(err))
		providers = &telemetry.Providers{}
	}
	p.telemetry = providers

	db := o.database
	if db == nil {
		db = culture.Default()
	}

	completer := o.completer
	if completer == nil && cfg.AI.Enabled {
		completer = llm.NewOpenAICompatible(llm.Config{
			APIKey:      cfg.AI.APIKey,
			BaseURL:     cfg.AI.BaseURL,
			Model:       cfg.AI.Model,
			Temperature: cfg.AI.Temperature,
			MaxTokens:   cfg.AI.MaxTokens,
			Timeout:     cfg.AI.Timeout,
		}, logger)
	}
	analyzerOpts := []analyzer.Option{
		analyzer.WithDatabase(db),
		analyzer.WithTimeout(cfg.AI.Timeout),
		analyzer.WithRateLimit(cfg.AI.RateLimit, cfg.AI.RateBurst),
		analyzer.WithMetrics(collector),
		analyzer.WithLogger(logger),
	}
	if completer != nil {
		analyzerOpts = append(analyzerOpts, analyzer.WithCompleter(completer))
	}
	p.analyzer = analyzer.New(analyzerOpts...)

	p.monitor = monitor.New(
		monitor.WithHistorySize(cfg.Monitor.HistorySize),
		monitor.WithThresholds(thresholdsFrom(cfg.Monitor)),
		monitor.WithMetrics(collector),
		monitor.WithLogger(logger),
	)
	p.materials = material.NewSystem(db, cfg.Generation.MaterialCacheSize, logger)
	registry := template.DefaultRegistry(db)

	p.engine = pipeline.New(
		pipeline.WithDatabase(db),
		pipeline.WithAnalyzer(p.analyzer),
		pipeline.WithRegistry(registry),
		pipeline.WithMaterialSystem(p.materials),
		pipeline.WithMonitor(p.monitor),
		pipeline.WithMetrics(collector),
		pipeline.WithTracer(providers.Tracer()),
		pipeline.WithMeter(providers.Meter()),
		pipeline.WithLogger(logger),
		pipeline.WithCache(cfg.Generation.CacheSize, cfg.Generation.CacheTTL),
		pipeline.WithMaxPieces(cfg.Generation.MaxPiecesPerRequest),
		pipeline.WithConcurrency(cfg.Generation.Concurrency),
	)

	p.store = o.store
	if p.store == nil && cfg.Redis.Enabled {
		store, err := cache.NewRedisStore(redisConfigFrom(cfg.Redis), logger)
		if err != nil {
			logger.Warn("snapshot store unavailable, performance history will not persist", zap.Error(err))
		} else {
			p.store, p.redisStore = store, store
		}
	}

	logger.Info("generation pipeline ready",
		zap.Bool("ai_enabled", completer != nil),
		zap.Bool("metrics_enabled", collector != nil),
		zap.Bool("snapshots_enabled", p.store != nil),
		zap.Int("templates", registry.Len()))
	return p, nil
}

// NewFromFile loads configuration from a YAML file (overridden by VISUALZ_*
// environment variables) and watches it for changes once Start is called.
func NewFromFile(path string, opts ...Option) (*Pipeline, error) {
	cfg, err := config.NewLoader().WithConfigPath(path).Load()
	if err != nil {
		return nil, err
	}
	p, err := New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	p.reloader = config.NewHotReloader(path, cfg, config.WithHotReloadLogger(p.logger))
	p.reloader.OnReload(p.applyConfig)
	return p, nil
}

func thresholdsFrom(c config.MonitorConfig) monitor.Thresholds {
	return monitor.Thresholds{
		MaxGenerationTime: c.MaxGenerationTime,
		MaxPolygons:       c.MaxPolygons,
		MaxMemoryBytes:    c.MaxMemoryBytes,
	}
}

func redisConfigFrom(c config.RedisConfig) cache.Config {
	return cache.Config{
		Addr:                c.Addr,
		Password:            c.Password,
		DB:                  c.DB,
		KeyPrefix:           c.KeyPrefix,
		SnapshotTTL:         c.SnapshotTTL,
		MaxRetries:          c.MaxRetries,
		PoolSize:            c.PoolSize,
		MinIdleConns:        c.MinIdleConns,
		TLS:                 c.TLS,
		HealthCheckInterval: c.HealthCheckInterval,
	}
}

// applyConfig is the hot-reload callback. Only monitor thresholds apply at
// runtime; other sections take effect on the next New.
func (p *Pipeline) applyConfig(oldCfg, newCfg *config.Config) {
	if oldCfg.Monitor != newCfg.Monitor {
		p.monitor.SetThresholds(thresholdsFrom(newCfg.Monitor))
		p.logger.Info("monitor thresholds reloaded",
			zap.Duration("max_generation_time", newCfg.Monitor.MaxGenerationTime),
			zap.Int("max_polygons", newCfg.Monitor.MaxPolygons),
			zap.Int64("max_memory_bytes", newCfg.Monitor.MaxMemoryBytes))
	}
	if oldCfg.AI != newCfg.AI || oldCfg.Generation != newCfg.Generation || oldCfg.Redis != newCfg.Redis {
		p.logger.Warn("configuration changes outside the monitor section require a restart")
	}
}

// Start restores the performance snapshot, starts periodic reporting and
// config hot reload as configured.
func (p *Pipeline) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.store != nil {
		n, err := p.monitor.RestoreSnapshot(ctx, p.store, p.cfg.Monitor.SnapshotKey)
		switch {
		case cache.IsCacheMiss(err):
			p.logger.Debug("no performance snapshot to restore")
		case err != nil:
			p.logger.Warn("performance snapshot not restored", zap.Error(err))
		default:
			p.logger.Info("performance history restored", zap.Int("samples", n))
		}
	}

	if p.cfg.Monitor.ReportEnabled && p.stopReporting == nil {
		stop, err := p.monitor.StartReporting(ctx, p.cfg.Monitor.ReportSchedule)
		if err != nil {
			return err
		}
		p.stopReporting = stop
	}

	if p.reloader != nil {
		if err := p.reloader.Start(ctx); err != nil {
			p.logger.Debug("config reloader not started", zap.Error(err))
		}
	}
	return nil
}

// Close stops background work, saves the performance snapshot and releases
// the snapshot store and telemetry providers. It is safe to call twice.
func (p *Pipeline) Close(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true

	if p.stopReporting != nil {
		p.stopReporting()
		p.stopReporting = nil
	}
	if p.reloader != nil {
		p.reloader.Stop()
	}

	var errs []error
	if p.store != nil {
		if err := p.monitor.SaveSnapshot(ctx, p.store, p.cfg.Monitor.SnapshotKey); err != nil {
			errs = append(errs, err)
		}
	}
	if p.redisStore != nil {
		if err := p.redisStore.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := p.telemetry.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	_ = p.logger.Sync()
	return errors.Join(errs...)
}

// =============================================================================
// 🎯 生成接口
// =============================================================================

// GenerateFurnitureFromUserInput generates one result per requested piece.
func (p *Pipeline) GenerateFurnitureFromUserInput(ctx context.Context, req parametric.UserFurnitureRequest) ([]*pipeline.GenerationResult, error) {
	return p.engine.GenerateFurnitureFromUserInput(ctx, req)
}

// GenerateDesign returns the analysis together with the results.
func (p *Pipeline) GenerateDesign(ctx context.Context, req parametric.UserFurnitureRequest) (*pipeline.Design, error) {
	return p.engine.GenerateDesign(ctx, req)
}

// GenerateSinglePiece generates one artifact from explicit parameters.
func (p *Pipeline) GenerateSinglePiece(ctx context.Context, params parametric.Parameters) (*pipeline.GenerationResult, error) {
	return p.engine.GenerateSinglePiece(ctx, params)
}

// Analyze runs only the request analysis.
func (p *Pipeline) Analyze(ctx context.Context, req parametric.UserFurnitureRequest) *analyzer.Analysis {
	return p.analyzer.Analyze(ctx, req)
}

// OptimizeParameters refines parameters against constraints, with the model
// when available and rule-based otherwise.
func (p *Pipeline) OptimizeParameters(ctx context.Context, base parametric.Parameters, c parametric.OptimizationConstraints) parametric.Parameters {
	return p.analyzer.OptimizeParameters(ctx, base, c)
}

// OptimizeParametersInRealTime applies interactive adjustments without a
// model call.
func (p *Pipeline) OptimizeParametersInRealTime(current parametric.Parameters, adjustments map[string]any) parametric.Parameters {
	return p.engine.OptimizeParametersInRealTime(current, adjustments)
}

// ClearCache drops cached results and materials.
func (p *Pipeline) ClearCache() {
	p.engine.ClearCache()
	p.materials.ClearMaterialCache()
}

// CacheSize is the number of cached results.
func (p *Pipeline) CacheSize() int { return p.engine.CacheSize() }

// Monitor exposes the performance monitor for reports, callbacks and
// threshold changes.
func (p *Pipeline) Monitor() *monitor.Monitor { return p.monitor }

// Gatherer exposes the metrics registry, or nil when metrics are disabled.
func (p *Pipeline) Gatherer() prometheus.Gatherer { return p.gatherer }

// Config returns the active configuration.
func (p *Pipeline) Config() *config.Config {
	if p.reloader != nil {
		return p.reloader.Config()
	}
	return p.cfg
}

// Reload re-reads the configuration file immediately instead of waiting for
// the next poll. Only pipelines built by NewFromFile can reload.
func (p *Pipeline) Reload() error {
	if p.reloader == nil {
		return errNotFileBacked
	}
	return p.reloader.Reload()
}

var errNotFileBacked = errors.New("pipeline was not created from a config file")
