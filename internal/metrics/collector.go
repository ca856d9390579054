// Package metrics provides internal metrics collection.
// This package is internal and should not be imported by external projects.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// =============================================================================
// 📊 指标收集器
// =============================================================================

// Collector 指标收集器
type Collector struct {
	// 生成指标
	generationsTotal   *prometheus.CounterVec
	generationDuration *prometheus.HistogramVec
	generationPolygons *prometheus.HistogramVec
	generationMemory   *prometheus.HistogramVec
	fallbacksTotal     *prometheus.CounterVec

	// AI 指标
	aiCallsTotal   *prometheus.CounterVec
	aiCallDuration *prometheus.HistogramVec

	// 缓存指标
	cacheHits    *prometheus.CounterVec
	cacheMisses  *prometheus.CounterVec
	cacheEntries *prometheus.GaugeVec

	// 性能阈值指标
	thresholdBreaches *prometheus.CounterVec

	logger *zap.Logger
}

// NewCollector 创建指标收集器。reg 为 nil 时注册到默认 Registry。
func NewCollector(namespace string, reg prometheus.Registerer, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	c := &Collector{
		logger: logger.With(zap.String("component", "metrics")),
	}

	// 生成指标
	c.generationsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Total number of generated pieces",
		},
		[]string{"type", "culture", "status"},
	)

	c.generationDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Template and material generation time in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"type"},
	)

	c.generationPolygons = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_polygons",
			Help:      "Triangle count of generated geometry",
			Buckets:   prometheus.ExponentialBuckets(100, 4, 8),
		},
		[]string{"type"},
	)

	c.generationMemory = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_memory_bytes",
			Help:      "Estimated memory of generated geometry in bytes",
			Buckets:   prometheus.ExponentialBuckets(1024, 4, 8),
		},
		[]string{"type"},
	)

	c.fallbacksTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_fallbacks_total",
			Help:      "Total number of fallback artifacts by reason",
		},
		[]string{"type", "reason"},
	)

	// AI 指标
	c.aiCallsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ai_calls_total",
			Help:      "Total number of AI calls by outcome",
		},
		[]string{"operation", "outcome"},
	)

	c.aiCallDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ai_call_duration_seconds",
			Help:      "AI call duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"operation"},
	)

	// 缓存指标
	c.cacheHits = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Total number of cache hits",
		},
		[]string{"cache_type"},
	)

	c.cacheMisses = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	c.cacheEntries = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_entries",
			Help:      "Number of entries held by a cache",
		},
		[]string{"cache_type"},
	)

	// 性能阈值指标
	c.thresholdBreaches = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "threshold_breaches_total",
			Help:      "Total number of performance threshold breaches",
		},
		[]string{"key", "metric"},
	)

	c.logger.Info("metrics collector initialized", zap.String("namespace", namespace))

	return c
}

// =============================================================================
// 🪑 生成指标记录
// =============================================================================

// RecordGeneration 记录一次生成
func (c *Collector) RecordGeneration(pieceType, culture, status string, duration time.Duration, polygons int, memoryBytes int64) {
	c.generationsTotal.WithLabelValues(pieceType, culture, status).Inc()
	if status == "cached" {
		return
	}
	c.generationDuration.WithLabelValues(pieceType).Observe(duration.Seconds())
	c.generationPolygons.WithLabelValues(pieceType).Observe(float64(polygons))
	c.generationMemory.WithLabelValues(pieceType).Observe(float64(memoryBytes))
}

// RecordFallback 记录降级产物
func (c *Collector) RecordFallback(pieceType, reason string) {
	c.fallbacksTotal.WithLabelValues(pieceType, reason).Inc()
}

// =============================================================================
// 🤖 AI 指标记录
// =============================================================================

// RecordAICall 记录 AI 调用
func (c *Collector) RecordAICall(operation, outcome string, duration time.Duration) {
	c.aiCallsTotal.WithLabelValues(operation, outcome).Inc()
	c.aiCallDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// =============================================================================
// 💾 缓存指标记录
// =============================================================================

// RecordCacheHit 记录缓存命中
func (c *Collector) RecordCacheHit(cacheType string) {
	c.cacheHits.WithLabelValues(cacheType).Inc()
}

// RecordCacheMiss 记录缓存未命中
func (c *Collector) RecordCacheMiss(cacheType string) {
	c.cacheMisses.WithLabelValues(cacheType).Inc()
}

// RecordCacheSize 记录缓存条目数
func (c *Collector) RecordCacheSize(cacheType string, entries int) {
	c.cacheEntries.WithLabelValues(cacheType).Set(float64(entries))
}

// =============================================================================
// ⚠️ 阈值指标记录
// =============================================================================

// RecordThresholdBreach 记录阈值超限
func (c *Collector) RecordThresholdBreach(key, metric string) {
	c.thresholdBreaches.WithLabelValues(key, metric).Inc()
}
