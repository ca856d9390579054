package monitor

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/saleemjadallah/visualz-backend-sub003/internal/metrics"
	"github.com/saleemjadallah/visualz-backend-sub003/parametric"
)

// DefaultHistorySize is the number of samples kept per key.
const DefaultHistorySize = 1000

// Metric names used in evaluations and signals.
const (
	MetricGenerationTime = "generationTime"
	MetricPolygonCount   = "polygonCount"
	MetricMemoryUsage    = "memoryUsage"
)

// Metrics is the measured cost of one generation.
type Metrics struct {
	GenerationTime time.Duration
	PolygonCount   int
	MemoryUsage    int64
}

// Sample is a timestamped Metrics entry in a key's history.
type Sample struct {
	Timestamp time.Time
	Metrics
}

// Thresholds are the limits a generation is evaluated against. A value
// equal to its threshold counts as exceeding it.
type Thresholds struct {
	MaxGenerationTime time.Duration
	MaxPolygons       int
	MaxMemoryBytes    int64
}

// DefaultThresholds returns 1s, 50 000 polygons and 10 MB.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxGenerationTime: time.Second,
		MaxPolygons:       50000,
		MaxMemoryBytes:    10_000_000,
	}
}

// Status grades a generation against the thresholds.
type Status string

const (
	StatusExcellent Status = "excellent"
	StatusGood      Status = "good"
	StatusWarning   Status = "warning"
	StatusCritical  Status = "critical"
)

// Evaluation is the outcome of recording one generation.
type Evaluation struct {
	Key         string   `json:"key"`
	Status      Status   `json:"status"`
	Exceeded    []string `json:"exceeded,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// NeedsOptimization reports whether any threshold was reached.
func (e Evaluation) NeedsOptimization() bool { return len(e.Exceeded) > 0 }

// OptimizationSignal is delivered to callbacks when a threshold is reached.
type OptimizationSignal struct {
	Key         string
	Type        parametric.FurnitureType
	Culture     parametric.Culture
	Metrics     Metrics
	Exceeded    []string
	Suggestions []string
	Timestamp   time.Time
}

// OptimizationCallback receives optimization signals for one key.
type OptimizationCallback func(OptimizationSignal)

var suggestionTable = map[string][]string{
	MetricGenerationTime: {
		"reduce geometric detail for this furniture type",
		"warm the result cache for frequently requested parameters",
	},
	MetricPolygonCount: {
		"lower segment counts on curved parts",
		"reduce decorative intensity to drop ornament meshes",
	},
	MetricMemoryUsage: {
		"share materials across meshes",
		"reuse cached geometry instead of cloning it",
	},
}

// SnapshotStore persists exported monitor state.
type SnapshotStore interface {
	Save(ctx context.Context, key string, data []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
}

// Monitor keeps bounded per-key performance history and raises
// optimization signals. It is safe for concurrent use.
type Monitor struct {
	mu          sync.Mutex
	history     map[string][]Sample
	historySize int
	thresholds  Thresholds
	callbacks   map[string][]OptimizationCallback

	metrics *metrics.Collector
	logger  *zap.Logger
	now     func() time.Time
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithHistorySize bounds the per-key history.
func WithHistorySize(n int) Option {
	return func(m *Monitor) {
		if n > 0 {
			m.historySize = n
		}
	}
}

// WithThresholds sets the initial thresholds.
func WithThresholds(t Thresholds) Option {
	return func(m *Monitor) { m.thresholds = t }
}

// WithMetrics counts threshold breaches in Prometheus.
func WithMetrics(c *metrics.Collector) Option {
	return func(m *Monitor) { m.metrics = c }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(m *Monitor) {
		if l != nil {
			m.logger = l
		}
	}
}

// New creates a Monitor.
func New(opts ...Option) *Monitor {
	m := &Monitor{
		history:     make(map[string][]Sample),
		historySize: DefaultHistorySize,
		thresholds:  DefaultThresholds(),
		callbacks:   make(map[string][]OptimizationCallback),
		logger:      zap.NewNop(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With(zap.String("component", "performance_monitor"))
	return m
}

// Key builds the "<type>-<culture>" history key.
func Key(t parametric.FurnitureType, c parametric.Culture) string {
	return string(t) + "-" + string(c)
}

// trimHistory drops the oldest samples beyond size, reusing h's backing array.
func trimHistory(h []Sample, size int) []Sample {
	over := len(h) - size
	if over <= 0 {
		return h
	}
	n := copy(h, h[over:])
	clear(h[n:])
	return h[:n]
}

// RecordGeneration appends a sample for the key, evaluates it and notifies
// the key's callbacks when a threshold is reached.
func (m *Monitor) RecordGeneration(t parametric.FurnitureType, c parametric.Culture, sample Metrics) Evaluation {
	key := Key(t, c)

	m.mu.Lock()
	now := m.now()
	m.history[key] = trimHistory(append(m.history[key], Sample{Timestamp: now, Metrics: sample}), m.historySize)
	thresholds := m.thresholds
	exceeded := exceededMetrics(sample, thresholds)
	var callbacks []OptimizationCallback
	if len(exceeded) > 0 {
		callbacks = append(callbacks, m.callbacks[key]...)
	}
	m.mu.Unlock()

	eval := Evaluation{
		Key:      key,
		Status:   classify(sample, thresholds),
		Exceeded: exceeded,
	}
	if len(exceeded) == 0 {
		return eval
	}

	for _, metric := range exceeded {
		eval.Suggestions = append(eval.Suggestions, suggestionTable[metric]...)
		if m.metrics != nil {
			m.metrics.RecordThresholdBreach(key, metric)
		}
	}
	m.logger.Warn("performance threshold exceeded",
		zap.String("key", key),
		zap.Strings("exceeded", exceeded),
		zap.Duration("generation_time", sample.GenerationTime),
		zap.Int("polygons", sample.PolygonCount),
		zap.Int64("memory_bytes", sample.MemoryUsage))

	signal := OptimizationSignal{
		Key:         key,
		Type:        t,
		Culture:     c,
		Metrics:     sample,
		Exceeded:    exceeded,
		Suggestions: eval.Suggestions,
		Timestamp:   now,
	}
	for _, cb := range callbacks {
		m.notify(cb, signal)
	}
	return eval
}

func (m *Monitor) notify(cb OptimizationCallback, signal OptimizationSignal) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("optimization callback panicked",
				zap.String("key", signal.Key),
				zap.Any("recover", r))
		}
	}()
	cb(signal)
}

func exceededMetrics(s Metrics, t Thresholds) []string {
	var out []string
	if t.MaxGenerationTime > 0 && s.GenerationTime >= t.MaxGenerationTime {
		out = append(out, MetricGenerationTime)
	}
	if t.MaxPolygons > 0 && s.PolygonCount >= t.MaxPolygons {
		out = append(out, MetricPolygonCount)
	}
	if t.MaxMemoryBytes > 0 && s.MemoryUsage >= t.MaxMemoryBytes {
		out = append(out, MetricMemoryUsage)
	}
	return out
}

// Classify grades metrics by their largest threshold ratio.
func (m *Monitor) Classify(s Metrics) Status {
	return classify(s, m.Thresholds())
}

func classify(s Metrics, t Thresholds) Status {
	r := maxRatio(s, t)
	switch {
	case r < 0.5:
		return StatusExcellent
	case r < 0.8:
		return StatusGood
	case r < 1.0:
		return StatusWarning
	default:
		return StatusCritical
	}
}

func maxRatio(s Metrics, t Thresholds) float64 {
	r := 0.0
	if t.MaxGenerationTime > 0 {
		r = max(r, float64(s.GenerationTime)/float64(t.MaxGenerationTime))
	}
	if t.MaxPolygons > 0 {
		r = max(r, float64(s.PolygonCount)/float64(t.MaxPolygons))
	}
	if t.MaxMemoryBytes > 0 {
		r = max(r, float64(s.MemoryUsage)/float64(t.MaxMemoryBytes))
	}
	return r
}

// SetThresholds replaces the thresholds. Non-positive fields keep their
// current value.
func (m *Monitor) SetThresholds(t Thresholds) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.MaxGenerationTime > 0 {
		m.thresholds.MaxGenerationTime = t.MaxGenerationTime
	}
	if t.MaxPolygons > 0 {
		m.thresholds.MaxPolygons = t.MaxPolygons
	}
	if t.MaxMemoryBytes > 0 {
		m.thresholds.MaxMemoryBytes = t.MaxMemoryBytes
	}
}

// Thresholds returns the current thresholds.
func (m *Monitor) Thresholds() Thresholds {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.thresholds
}

// OnOptimizationNeeded registers a callback for a "<type>-<culture>" key.
func (m *Monitor) OnOptimizationNeeded(key string, cb OptimizationCallback) {
	if cb == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks[key] = append(m.callbacks[key], cb)
}

// History returns a copy of the samples recorded for a key, oldest first.
func (m *Monitor) History(key string) []Sample {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Sample(nil), m.history[key]...)
}

// ClearMetrics drops all history. Thresholds and callbacks are kept.
func (m *Monitor) ClearMetrics() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = make(map[string][]Sample)
}
