package pipeline

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/saleemjadallah/visualz-backend-sub003/analyzer"
	"github.com/saleemjadallah/visualz-backend-sub003/culture"
	"github.com/saleemjadallah/visualz-backend-sub003/internal/ctxkeys"
	"github.com/saleemjadallah/visualz-backend-sub003/internal/metrics"
	"github.com/saleemjadallah/visualz-backend-sub003/monitor"
	"github.com/saleemjadallah/visualz-backend-sub003/parametric"
	"github.com/saleemjadallah/visualz-backend-sub003/template"
	"github.com/saleemjadallah/visualz-backend-sub003/testutil"
	"github.com/saleemjadallah/visualz-backend-sub003/testutil/fixtures"
	"github.com/saleemjadallah/visualz-backend-sub003/testutil/mocks"
	"github.com/saleemjadallah/visualz-backend-sub003/types"
)

var namespaceSeq atomic.Int64

// =============================================================================
// 🧪 测试辅助
// =============================================================================

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	return New(append([]Option{WithLogger(zaptest.NewLogger(t))}, opts...)...)
}

// countingRegistry wraps every default template so tests can count
// geometry generations per type.
func countingRegistry(t *testing.T, db culture.Database) (*template.Registry, map[parametric.FurnitureType]*mocks.CountingTemplate) {
	t.Helper()
	base := template.DefaultRegistry(db)
	wrapped := make(map[parametric.FurnitureType]*mocks.CountingTemplate)
	var list []template.Template
	for _, typ := range base.Types() {
		inner, _ := base.Get(typ)
		c := mocks.NewCountingTemplate(inner)
		wrapped[typ] = c
		list = append(list, c)
	}
	r, err := template.NewRegistry(list...)
	require.NoError(t, err)
	return r, wrapped
}

func chair() parametric.Parameters {
	return fixtures.ChairParameters(parametric.CultureJapanese)
}

// =============================================================================
// 🪑 单件生成
// =============================================================================

func TestGenerateSinglePiece_Generates(t *testing.T) {
	e := newTestEngine(t)

	res, err := e.GenerateSinglePiece(testutil.TestContext(t), chair())
	require.NoError(t, err)

	assert.Equal(t, StatusGenerated, res.Status)
	assert.NotEmpty(t, res.ID)
	assert.Equal(t, parametric.Fingerprint(res.Parameters), res.Fingerprint)
	assert.Empty(t, parametric.Validate(res.Parameters))
	require.NotNil(t, res.Geometry)
	assert.False(t, res.Geometry.IsEmpty())
	assert.Equal(t, res.Geometry.PolygonCount(), res.PerformanceMetrics.PolygonCount)
	assert.Equal(t, res.Geometry.MemoryEstimate(), res.PerformanceMetrics.MemoryUsage)
	assert.NotEmpty(t, res.PerformanceMetrics.Rating)

	require.NotEmpty(t, res.Materials)
	for _, m := range res.Geometry.Meshes() {
		assert.NotEmpty(t, m.MaterialID, "every mesh carries a material")
	}
	assert.Equal(t, parametric.TypeChair, res.Metadata.Type)
	assert.GreaterOrEqual(t, res.CulturalAuthenticity.Overall, 0.0)
	assert.LessOrEqual(t, res.CulturalAuthenticity.Overall, 100.0)

	assert.Equal(t, 1, e.CacheSize())
	assert.Len(t, e.Monitor().History("chair-japanese"), 1)
}

func TestGenerateSinglePiece_CorrectsAvoidedMaterials(t *testing.T) {
	e := newTestEngine(t)

	p := chair()
	p.PrimaryMaterial = "velvet"
	res, err := e.GenerateSinglePiece(testutil.TestContext(t), p)
	require.NoError(t, err)

	assert.NotEqual(t, "velvet", res.Parameters.PrimaryMaterial)
	assert.Equal(t, "hinoki", res.Parameters.PrimaryMaterial)
	require.NotEmpty(t, res.Warnings)
	assert.Contains(t, res.Warnings[0], "velvet")
}

func TestGenerateSinglePiece_CacheIgnoresRepresentation(t *testing.T) {
	db := culture.Default()
	reg, counters := countingRegistry(t, db)
	e := newTestEngine(t, WithDatabase(db), WithRegistry(reg))
	ctx := testutil.TestContext(t)

	a := chair()
	b := a.Clone()
	b.Culture = " Japanese "
	b.ColorPalette = append([]string{" " + a.ColorPalette[0]}, a.ColorPalette[1:]...)
	b.Width = a.Width + 0.0001

	first, err := e.GenerateSinglePiece(ctx, a)
	require.NoError(t, err)
	second, err := e.GenerateSinglePiece(ctx, b)
	require.NoError(t, err)

	assert.Equal(t, StatusGenerated, first.Status)
	assert.Equal(t, StatusCached, second.Status)
	assert.Equal(t, first.Fingerprint, second.Fingerprint)
	assert.Same(t, first.Geometry, second.Geometry)
	assert.Equal(t, 1, counters[parametric.TypeChair].Calls())
	assert.Len(t, e.Monitor().History("chair-japanese"), 1, "cache hits are not re-measured")
}

func TestGenerateSinglePiece_KeySensitivity(t *testing.T) {
	db := culture.Default()
	reg, counters := countingRegistry(t, db)
	e := newTestEngine(t, WithDatabase(db), WithRegistry(reg))
	ctx := testutil.TestContext(t)

	base := chair()
	variants := []func(p *parametric.Parameters){
		func(p *parametric.Parameters) {},
		func(p *parametric.Parameters) { p.Width += 0.05 },
		func(p *parametric.Parameters) { p.CraftsmanshipLevel = parametric.CraftMaster },
		func(p *parametric.Parameters) { p.ColorPalette = []string{"#000000"} },
		func(p *parametric.Parameters) { p.ErgonomicProfile = parametric.ErgonomicAccessible },
	}
	seen := map[string]bool{}
	for _, mutate := range variants {
		p := base.Clone()
		mutate(&p)
		res, err := e.GenerateSinglePiece(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, StatusGenerated, res.Status)
		seen[res.Fingerprint] = true
	}
	assert.Len(t, seen, len(variants))
	assert.Equal(t, len(variants), counters[parametric.TypeChair].Calls())
	assert.Equal(t, len(variants), e.CacheSize())
}

func TestGenerateSinglePiece_ConcurrentCallsShareOneGeneration(t *testing.T) {
	db := culture.Default()
	reg, counters := countingRegistry(t, db)
	counters[parametric.TypeChair].WithDelay(50 * time.Millisecond)
	e := newTestEngine(t, WithDatabase(db), WithRegistry(reg))
	ctx := testutil.TestContext(t)

	const n = 16
	var wg sync.WaitGroup
	results := make([]*GenerationResult, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = e.GenerateSinglePiece(ctx, chair())
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, results[0].Fingerprint, results[i].Fingerprint)
		assert.NotEqual(t, StatusFallback, results[i].Status)
	}
	assert.Equal(t, 1, counters[parametric.TypeChair].Calls())
}

func TestGenerateSinglePiece_DifferentKeysDoNotBlock(t *testing.T) {
	db := culture.Default()
	reg, counters := countingRegistry(t, db)
	counters[parametric.TypeChair].WithDelay(300 * time.Millisecond)
	e := newTestEngine(t, WithDatabase(db), WithRegistry(reg))
	ctx := testutil.TestContext(t)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = e.GenerateSinglePiece(ctx, chair())
	}()
	testutil.AssertEventuallyTrue(t, func() bool { return counters[parametric.TypeChair].Calls() == 1 }, time.Second)

	start := time.Now()
	_, err := e.GenerateSinglePiece(ctx, parametric.Sanitize(parametric.Parameters{Type: parametric.TypeLighting}))
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 250*time.Millisecond)
	<-done
}

func TestGenerateSinglePiece_TemplateFailuresFallBack(t *testing.T) {
	tests := []struct {
		name  string
		setup func(c *mocks.CountingTemplate)
		code  types.ErrorCode
	}{
		{"error", func(c *mocks.CountingTemplate) { c.WithError(errors.New("mesh kernel crashed")) }, types.ErrTemplateFailure},
		{"panic", func(c *mocks.CountingTemplate) { c.WithPanic("index out of range") }, types.ErrTemplateFailure},
		{"empty geometry", func(c *mocks.CountingTemplate) { c.WithEmptyGeometry() }, types.ErrEmptyGeometry},
		{"metadata panic", func(c *mocks.CountingTemplate) { c.WithMetadataPanic("nil map write") }, types.ErrTemplateFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := culture.Default()
			reg, counters := countingRegistry(t, db)
			tt.setup(counters[parametric.TypeChair])
			e := newTestEngine(t, WithDatabase(db), WithRegistry(reg))
			ctx := testutil.TestContext(t)

			p := chair()
			res, err := e.GenerateSinglePiece(ctx, p)
			require.NoError(t, err)

			assert.Equal(t, StatusFallback, res.Status)
			assert.Contains(t, res.Error, string(tt.code))
			assert.Equal(t, 12, res.Geometry.PolygonCount(), "placeholder is a single box")
			assert.Equal(t, PlaceholderGeometry(res.Parameters).PolygonCount(), res.PerformanceMetrics.PolygonCount)
			assert.NotEmpty(t, res.Metadata.ID)
			assert.Zero(t, e.CacheSize(), "fallbacks are not cached")

			_, err = e.GenerateSinglePiece(ctx, p)
			require.NoError(t, err)
			assert.Equal(t, 2, counters[parametric.TypeChair].Calls())
		})
	}
}

func TestGenerateDesign_MetadataPanicFallsBack(t *testing.T) {
	db := culture.Default()
	reg, counters := countingRegistry(t, db)
	counters[parametric.TypeChair].WithMetadataPanic("nil map write")
	e := newTestEngine(t, WithDatabase(db), WithRegistry(reg), WithConcurrency(3))

	var d *Design
	require.NotPanics(t, func() {
		var err error
		d, err = e.GenerateDesign(testutil.TestContext(t), fixtures.BirthdayJapanese())
		require.NoError(t, err)
	})
	require.Len(t, d.Results, 10)

	for _, res := range d.Results {
		if res.Parameters.Type == parametric.TypeChair {
			assert.Equal(t, StatusFallback, res.Status)
			assert.Contains(t, res.Error, "template panic")
			assert.NotEmpty(t, res.Metadata.ID)
		} else {
			assert.NotEqual(t, StatusFallback, res.Status)
		}
	}
	assert.Equal(t, 3, e.CacheSize(), "only the healthy pieces are cached")
}

func TestGenerateSinglePiece_UnknownTemplate(t *testing.T) {
	db := culture.Default()
	reg, err := template.NewRegistry(template.Chair(db))
	require.NoError(t, err)
	e := newTestEngine(t, WithDatabase(db), WithRegistry(reg))

	res, err := e.GenerateSinglePiece(testutil.TestContext(t), parametric.Sanitize(parametric.Parameters{Type: parametric.TypeSofa}))
	assert.Nil(t, res)
	require.Error(t, err)
	assert.True(t, types.IsErrorCode(err, types.ErrUnknownTemplate))
}

func TestGenerateSinglePiece_CancelledContext(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.GenerateSinglePiece(testutil.CancelledContext(), chair())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerateSinglePiece_Span(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	e := newTestEngine(t, WithTracer(tp.Tracer("test")))
	ctx := testutil.TestContext(t)

	_, err := e.GenerateSinglePiece(ctx, chair())
	require.NoError(t, err)
	_, err = e.GenerateSinglePiece(ctx, chair())
	require.NoError(t, err)

	spans := sr.Ended()
	require.Len(t, spans, 2)
	hits := make([]bool, 0, 2)
	for _, s := range spans {
		assert.Equal(t, "pipeline.generate_piece", s.Name())
		attrs := map[attribute.Key]attribute.Value{}
		for _, kv := range s.Attributes() {
			attrs[kv.Key] = kv.Value
		}
		assert.Equal(t, "chair", attrs["piece.type"].AsString())
		assert.Equal(t, "japanese", attrs["piece.culture"].AsString())
		assert.NotEmpty(t, attrs["piece.fingerprint"].AsString())
		hits = append(hits, attrs["cache.hit"].AsBool())
	}
	assert.Equal(t, []bool{false, true}, hits)
}

func TestGenerateSinglePiece_Metrics(t *testing.T) {
	ns := fmt.Sprintf("pipeline_test_%d", namespaceSeq.Add(1))
	reg := prometheus.NewRegistry()
	e := newTestEngine(t, WithMetrics(metrics.NewCollector(ns, reg, zap.NewNop())))
	ctx := testutil.TestContext(t)

	for i := 0; i < 3; i++ {
		_, err := e.GenerateSinglePiece(ctx, chair())
		require.NoError(t, err)
	}

	cacheLabels := map[string]string{"cache_type": "result"}
	assert.Equal(t, 2.0, testutil.CounterValue(t, reg, ns+"_cache_hits_total", cacheLabels))
	assert.Equal(t, 1.0, testutil.CounterValue(t, reg, ns+"_cache_misses_total", cacheLabels))
	assert.Equal(t, 1.0, testutil.CounterValue(t, reg, ns+"_generations_total",
		map[string]string{"type": "chair", "culture": "japanese", "status": "generated"}))
}

func TestGenerateSinglePiece_ReportsToMonitor(t *testing.T) {
	mon := monitor.New(monitor.WithThresholds(monitor.Thresholds{MaxPolygons: 1}))
	var signals atomic.Int64
	mon.OnOptimizationNeeded("chair-japanese", func(monitor.OptimizationSignal) { signals.Add(1) })
	e := newTestEngine(t, WithMonitor(mon))

	res, err := e.GenerateSinglePiece(testutil.TestContext(t), chair())
	require.NoError(t, err)

	assert.Equal(t, monitor.StatusCritical, res.PerformanceMetrics.Rating)
	assert.NotEmpty(t, res.PerformanceMetrics.Suggestions)
	assert.Equal(t, int64(1), signals.Load())
}

// =============================================================================
// 📦 批量生成
// =============================================================================

func TestGenerateFurnitureFromUserInput_BirthdayJapaneseWithFailingAI(t *testing.T) {
	db := culture.Default()
	completer := mocks.NewMockCompleter().WithError(types.NewError(types.ErrAIUnavailable, "model offline"))
	a := analyzer.New(analyzer.WithCompleter(completer), analyzer.WithDatabase(db))
	e := newTestEngine(t, WithDatabase(db), WithAnalyzer(a))
	req := fixtures.BirthdayJapanese()

	d, err := e.GenerateDesign(testutil.TestContext(t), req)
	require.NoError(t, err)

	assert.Equal(t, analyzer.SourceFallback, d.Analysis.Source)
	assert.Equal(t, analyzer.FallbackAnalysis(req, db), d.Analysis)
	require.Len(t, d.Results, d.Analysis.TotalQuantity())
	assert.Len(t, d.Results, 10)

	i := 0
	for _, piece := range d.Analysis.Pieces {
		for n := 0; n < piece.Quantity; n++ {
			res := d.Results[i]
			require.NotNil(t, res)
			assert.Equal(t, piece.Type, res.Parameters.Type, "results follow piece order")
			assert.Equal(t, parametric.CultureJapanese, res.Parameters.Culture)
			assert.Empty(t, parametric.Validate(res.Parameters))
			assert.NotEqual(t, StatusFallback, res.Status)
			i++
		}
	}

	counts := d.Counts()
	assert.Equal(t, 10, counts[StatusGenerated]+counts[StatusCached])
	assert.Equal(t, 4, e.CacheSize(), "one entry per distinct piece")
	assert.Equal(t, 1, completer.CallCount())
}

func TestGenerateFurnitureFromUserInput_CapsPieces(t *testing.T) {
	e := newTestEngine(t, WithMaxPieces(5))

	d, err := e.GenerateDesign(testutil.TestContext(t), fixtures.WeddingItalian())
	require.NoError(t, err)
	require.Len(t, d.Results, 5)
	assert.True(t, d.Truncated)
	assert.Equal(t, d.Analysis.TotalQuantity(), d.Requested)

	got := make(map[parametric.FurnitureType]int)
	for _, res := range d.Results {
		got[res.Parameters.Type]++
	}
	for _, piece := range d.Analysis.Pieces {
		if piece.Priority == analyzer.PriorityEssential {
			assert.Positive(t, got[piece.Type], "essential %s dropped by the cap", piece.Type)
		}
	}
	assert.Equal(t, map[parametric.FurnitureType]int{
		parametric.TypeDiningTable: 1,
		parametric.TypeChair:       3,
		parametric.TypeLighting:    1,
	}, got)
}

func TestGenerateDesign_LargeEventKeepsTablesAndChairs(t *testing.T) {
	req := fixtures.BirthdayJapanese()
	req.GuestCount = 450
	e := newTestEngine(t, WithConcurrency(4))

	d, err := e.GenerateDesign(testutil.TestContext(t), req)
	require.NoError(t, err)
	require.Len(t, d.Results, DefaultMaxPiecesPerRequest)
	assert.True(t, d.Truncated)
	assert.Greater(t, d.Requested, DefaultMaxPiecesPerRequest)

	for _, piece := range d.Analysis.Pieces {
		if piece.Type == parametric.TypeChair {
			assert.Equal(t, 450, piece.Quantity, "one chair per guest before the cap")
		}
	}

	got := make(map[parametric.FurnitureType]int)
	prev := -1
	for _, res := range d.Results {
		got[res.Parameters.Type]++
		idx := slices.IndexFunc(d.Analysis.Pieces, func(p analyzer.Piece) bool { return p.Type == res.Parameters.Type })
		assert.GreaterOrEqual(t, idx, prev, "results follow piece order")
		prev = idx
	}
	assert.Positive(t, got[parametric.TypeDiningTable])
	assert.Greater(t, got[parametric.TypeChair], got[parametric.TypeDiningTable])
	for _, piece := range d.Analysis.Pieces {
		assert.Positive(t, got[piece.Type], "%s missing", piece.Type)
	}
}

func TestGenerateDesign_NotTruncatedWithinCap(t *testing.T) {
	e := newTestEngine(t)

	d, err := e.GenerateDesign(testutil.TestContext(t), fixtures.BirthdayJapanese())
	require.NoError(t, err)
	assert.False(t, d.Truncated)
	assert.Equal(t, len(d.Results), d.Requested)
}

func TestGenerateFurnitureFromUserInput_MissingTemplateBecomesPlaceholder(t *testing.T) {
	db := culture.Default()
	reg, err := template.NewRegistry(template.Chair(db), template.DiningTable(db))
	require.NoError(t, err)
	e := newTestEngine(t, WithDatabase(db), WithRegistry(reg), WithConcurrency(2))

	results, err := e.GenerateFurnitureFromUserInput(testutil.TestContext(t), fixtures.BirthdayJapanese())
	require.NoError(t, err)
	require.Len(t, results, 10)

	for _, res := range results {
		switch res.Parameters.Type {
		case parametric.TypeChair, parametric.TypeDiningTable:
			assert.NotEqual(t, StatusFallback, res.Status)
		default:
			assert.Equal(t, StatusFallback, res.Status)
			assert.Contains(t, res.Error, string(types.ErrUnknownTemplate))
			assert.Equal(t, 12, res.Geometry.PolygonCount())
		}
	}
}

func TestGenerateFurnitureFromUserInput_CancelledContext(t *testing.T) {
	e := newTestEngine(t)

	results, err := e.GenerateFurnitureFromUserInput(testutil.CancelledContext(), fixtures.BirthdayJapanese())
	assert.Nil(t, results)
	assert.ErrorIs(t, err, context.Canceled)
}

// =============================================================================
// 🔧 实时调整与缓存
// =============================================================================

func TestOptimizeParametersInRealTime(t *testing.T) {
	e := newTestEngine(t)
	current := chair()

	got := e.OptimizeParametersInRealTime(current, map[string]any{
		"formality_level":    "ceremonial",
		"craftsmanshipLevel": "master",
		"width":              5,
	})
	assert.Equal(t, parametric.FormalityCeremonial, got.Formality)
	assert.Equal(t, parametric.CraftMaster, got.CraftsmanshipLevel)
	assert.Equal(t, parametric.SpecFor(parametric.TypeChair).Width.Max, got.Width)
	assert.Equal(t, parametric.DefaultDecorativeIntensity(parametric.FormalityCeremonial, parametric.CraftMaster), got.DecorativeIntensity)
	assert.Empty(t, parametric.Validate(got))

	explicit := e.OptimizeParametersInRealTime(current, map[string]any{
		"formality":            "formal",
		"decorative_intensity": 0.12,
	})
	assert.Equal(t, 0.12, explicit.DecorativeIntensity)

	assert.Equal(t, current, chair(), "input is not modified")
}

func TestClearCache(t *testing.T) {
	e := newTestEngine(t)
	ctx := testutil.TestContext(t)

	_, err := e.GenerateSinglePiece(ctx, chair())
	require.NoError(t, err)
	require.Equal(t, 1, e.CacheSize())

	e.ClearCache()
	assert.Zero(t, e.CacheSize())

	res, err := e.GenerateSinglePiece(ctx, chair())
	require.NoError(t, err)
	assert.Equal(t, StatusGenerated, res.Status)
}

func TestWithCache_BoundsResults(t *testing.T) {
	e := newTestEngine(t, WithCache(2, 0))
	ctx := testutil.TestContext(t)

	for _, w := range []float64{0.40, 0.45, 0.50, 0.55} {
		p := chair()
		p.Width = w
		_, err := e.GenerateSinglePiece(ctx, p)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, e.CacheSize())
}

func TestGenerateDesign_RequestID(t *testing.T) {
	e := newTestEngine(t)

	ctx := ctxkeys.WithRequestID(testutil.TestContext(t), "req-42")
	d, err := e.GenerateDesign(ctx, fixtures.BirthdayJapanese())
	require.NoError(t, err)
	assert.Equal(t, "req-42", d.RequestID)

	d, err = e.GenerateDesign(testutil.TestContext(t), fixtures.BirthdayJapanese())
	require.NoError(t, err)
	assert.NotEmpty(t, d.RequestID)
	assert.NotEqual(t, "req-42", d.RequestID)
}

func TestGenerateSinglePiece_PieceCounter(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	e := newTestEngine(t, WithMeter(mp.Meter("test")))
	ctx := testutil.TestContext(t)

	p := fixtures.ChairParameters(parametric.CultureJapanese)
	for i := 0; i < 3; i++ {
		_, err := e.GenerateSinglePiece(ctx, p)
		require.NoError(t, err)
	}

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	byStatus := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "visualz.pieces" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				status, _ := dp.Attributes.Value("result.status")
				byStatus[status.AsString()] += dp.Value
			}
		}
	}
	assert.Equal(t, map[string]int64{"generated": 1, "cached": 2}, byStatus)
}
