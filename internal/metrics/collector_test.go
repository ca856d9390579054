package metrics

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var collectorNamespaceSeq uint64

func nextTestNamespace() string {
	seq := atomic.AddUint64(&collectorNamespaceSeq, 1)
	return fmt.Sprintf("test_%d", seq)
}

func newTestCollector() *Collector {
	return NewCollector(nextTestNamespace(), prometheus.NewRegistry(), zap.NewNop())
}

// =============================================================================
// 🧪 Collector 测试
// =============================================================================

func TestNewCollector(t *testing.T) {
	collector := newTestCollector()

	assert.NotNil(t, collector)
	assert.NotNil(t, collector.generationsTotal)
	assert.NotNil(t, collector.generationDuration)
	assert.NotNil(t, collector.aiCallsTotal)
	assert.NotNil(t, collector.cacheHits)
	assert.NotNil(t, collector.thresholdBreaches)
}

func TestNewCollector_DefaultRegisterer(t *testing.T) {
	collector := NewCollector(nextTestNamespace(), nil, nil)
	assert.NotNil(t, collector)
}

func TestNewCollector_DuplicateNamespacePanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	ns := nextTestNamespace()
	NewCollector(ns, reg, nil)
	assert.Panics(t, func() { NewCollector(ns, reg, nil) })
}

func TestCollector_RecordGeneration(t *testing.T) {
	collector := newTestCollector()

	collector.RecordGeneration("chair", "japanese", "generated", 20*time.Millisecond, 400, 40960)
	collector.RecordGeneration("chair", "japanese", "generated", 10*time.Millisecond, 400, 40960)
	collector.RecordGeneration("chair", "japanese", "cached", 0, 400, 40960)

	assert.Equal(t, 2.0, testutil.ToFloat64(collector.generationsTotal.WithLabelValues("chair", "japanese", "generated")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.generationsTotal.WithLabelValues("chair", "japanese", "cached")))
	// cached hits do not add timing samples
	assert.Equal(t, 1, testutil.CollectAndCount(collector.generationDuration))
}

func TestCollector_RecordFallback(t *testing.T) {
	collector := newTestCollector()
	collector.RecordFallback("sofa", "panic")
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.fallbacksTotal.WithLabelValues("sofa", "panic")))
}

func TestCollector_RecordAICall(t *testing.T) {
	collector := newTestCollector()

	collector.RecordAICall("analyze", "success", time.Second)
	collector.RecordAICall("analyze", "timeout", 30*time.Second)
	collector.RecordAICall("optimize", "success", time.Second)

	assert.Equal(t, 3, testutil.CollectAndCount(collector.aiCallsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.aiCallsTotal.WithLabelValues("analyze", "timeout")))
}

func TestCollector_Cache(t *testing.T) {
	collector := newTestCollector()

	collector.RecordCacheHit("generation")
	collector.RecordCacheHit("generation")
	collector.RecordCacheMiss("generation")
	collector.RecordCacheSize("generation", 7)

	assert.Equal(t, 2.0, testutil.ToFloat64(collector.cacheHits.WithLabelValues("generation")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.cacheMisses.WithLabelValues("generation")))
	assert.Equal(t, 7.0, testutil.ToFloat64(collector.cacheEntries.WithLabelValues("generation")))
}

func TestCollector_RecordThresholdBreach(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector := NewCollector("breach", reg, nil)

	collector.RecordThresholdBreach("chair-japanese", "polygons")

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "breach_threshold_breaches_total")
}
