package pipeline

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/saleemjadallah/visualz-backend-sub003/analyzer"
	"github.com/saleemjadallah/visualz-backend-sub003/culture"
	"github.com/saleemjadallah/visualz-backend-sub003/internal/cache"
	"github.com/saleemjadallah/visualz-backend-sub003/internal/ctxkeys"
	"github.com/saleemjadallah/visualz-backend-sub003/internal/metrics"
	"github.com/saleemjadallah/visualz-backend-sub003/material"
	"github.com/saleemjadallah/visualz-backend-sub003/monitor"
	"github.com/saleemjadallah/visualz-backend-sub003/parametric"
	"github.com/saleemjadallah/visualz-backend-sub003/scene"
	"github.com/saleemjadallah/visualz-backend-sub003/template"
	"github.com/saleemjadallah/visualz-backend-sub003/types"
)

// =============================================================================
// ⚙️ 生成引擎
// =============================================================================

// Defaults used when no option overrides them.
const (
	DefaultMaxPiecesPerRequest = 50
	DefaultConcurrency         = 8
	DefaultCacheSize           = 1000
)

const resultCache = "result"

// Engine turns requests and parameter sets into generation results. It is
// safe for concurrent use.
type Engine struct {
	analyzer  *analyzer.Analyzer
	registry  *template.Registry
	materials *material.System
	db        culture.Database
	monitor   *monitor.Monitor
	metrics   *metrics.Collector
	tracer    trace.Tracer
	meter     metric.Meter
	pieces    metric.Int64Counter
	logger    *zap.Logger

	cache     *cache.LRU[string, *GenerationResult]
	cacheSize int
	cacheTTL  time.Duration
	flight    singleflight.Group

	maxPieces   int
	concurrency int
}

// Option configures an Engine.
type Option func(*Engine)

// WithAnalyzer sets the request analyzer.
func WithAnalyzer(a *analyzer.Analyzer) Option {
	return func(e *Engine) { e.analyzer = a }
}

// WithRegistry sets the template registry.
func WithRegistry(r *template.Registry) Option {
	return func(e *Engine) { e.registry = r }
}

// WithMaterialSystem sets the material system.
func WithMaterialSystem(s *material.System) Option {
	return func(e *Engine) { e.materials = s }
}

// WithDatabase sets the cultural database used for compatibility checks and
// as the default for components not supplied explicitly.
func WithDatabase(db culture.Database) Option {
	return func(e *Engine) { e.db = db }
}

// WithMonitor sets the performance monitor.
func WithMonitor(m *monitor.Monitor) Option {
	return func(e *Engine) { e.monitor = m }
}

// WithMetrics records generations and cache behaviour in Prometheus.
func WithMetrics(c *metrics.Collector) Option {
	return func(e *Engine) { e.metrics = c }
}

// WithTracer sets the tracer for per-piece spans.
func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) { e.tracer = t }
}

// WithMeter sets the OpenTelemetry meter the piece counter is created on.
func WithMeter(m metric.Meter) Option {
	return func(e *Engine) { e.meter = m }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithCache bounds the result cache. A zero ttl keeps entries until evicted.
func WithCache(size int, ttl time.Duration) Option {
	return func(e *Engine) {
		if size > 0 {
			e.cacheSize = size
		}
		e.cacheTTL = ttl
	}
}

// WithMaxPieces caps the number of pieces generated for one request.
func WithMaxPieces(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxPieces = n
		}
	}
}

// WithConcurrency bounds how many pieces of one request generate at once.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// New creates an Engine. Components that are not supplied are built from the
// cultural database with default settings.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger:      zap.NewNop(),
		cacheSize:   DefaultCacheSize,
		maxPieces:   DefaultMaxPiecesPerRequest,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With(zap.String("component", "generation_engine"))

	if e.db == nil {
		e.db = culture.Default()
	}
	if e.registry == nil {
		e.registry = template.DefaultRegistry(e.db)
	}
	if e.materials == nil {
		e.materials = material.NewSystem(e.db, material.DefaultCacheSize, e.logger)
	}
	if e.analyzer == nil {
		e.analyzer = analyzer.New(analyzer.WithDatabase(e.db), analyzer.WithLogger(e.logger))
	}
	if e.monitor == nil {
		e.monitor = monitor.New(monitor.WithLogger(e.logger))
	}
	if e.tracer == nil {
		e.tracer = noop.NewTracerProvider().Tracer("pipeline")
	}
	if e.meter == nil {
		e.meter = metricnoop.NewMeterProvider().Meter("pipeline")
	}
	pieces, err := e.meter.Int64Counter("visualz.pieces",
		metric.WithDescription("Pieces returned, by type and result status"),
		metric.WithUnit("{piece}"))
	if err != nil {
		e.logger.Warn("piece counter unavailable", zap.Error(err))
		pieces, _ = metricnoop.NewMeterProvider().Meter("pipeline").Int64Counter("visualz.pieces")
	}
	e.pieces = pieces
	e.cache = cache.NewLRU[string, *GenerationResult](e.cacheSize, e.cacheTTL)
	return e
}

// Monitor returns the performance monitor the engine reports to.
func (e *Engine) Monitor() *monitor.Monitor { return e.monitor }

// Analyzer returns the request analyzer.
func (e *Engine) Analyzer() *analyzer.Analyzer { return e.analyzer }

// =============================================================================
// 📦 批量生成
// =============================================================================

// GenerateFurnitureFromUserInput analyzes the request and generates one
// result per requested piece, in piece order. The error is non-nil only when
// ctx is done.
func (e *Engine) GenerateFurnitureFromUserInput(ctx context.Context, req parametric.UserFurnitureRequest) ([]*GenerationResult, error) {
	d, err := e.GenerateDesign(ctx, req)
	if err != nil {
		return nil, err
	}
	return d.Results, nil
}

// GenerateDesign is GenerateFurnitureFromUserInput that also returns the
// analysis behind the results.
func (e *Engine) GenerateDesign(ctx context.Context, req parametric.UserFurnitureRequest) (*Design, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ctx, requestID := ctxkeys.EnsureRequestID(ctx)
	logger := e.logger.With(zap.String("request_id", requestID))

	analysis := e.analyzer.Analyze(ctx, req)
	items, requested := e.expand(logger, analysis)

	logger.Info("generating design",
		zap.String("event_type", req.EventType),
		zap.String("culture", string(req.Culture)),
		zap.String("analysis_source", string(analysis.Source)),
		zap.Int("pieces", len(items)))

	results := make([]*GenerationResult, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i, params := range items {
		i, params := i, params
		g.Go(func() error {
			res, err := e.GenerateSinglePiece(gctx, params)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				res = e.fallback(params, parametric.Fingerprint(params), nil, err)
				e.countPiece(gctx, res)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Warn("design cancelled", zap.Error(err))
		return nil, err
	}

	return &Design{
		RequestID: requestID,
		Analysis:  analysis,
		Results:   results,
		Requested: requested,
		Truncated: len(items) < requested,
	}, nil
}

// expand repeats each piece by its allocated quantity, in piece order. The
// second return value is the quantity the analysis asked for.
func (e *Engine) expand(logger *zap.Logger, a *analyzer.Analysis) ([]parametric.Parameters, int) {
	requested := a.TotalQuantity()
	counts := allocate(a.Pieces, e.maxPieces)
	var items []parametric.Parameters
	for i, piece := range a.Pieces {
		for n := 0; n < counts[i]; n++ {
			items = append(items, piece.Parameters.Clone())
		}
		if counts[i] < piece.Quantity {
			logger.Debug("piece quantity reduced",
				zap.String("type", string(piece.Type)),
				zap.String("priority", string(piece.Priority)),
				zap.Int("requested", piece.Quantity),
				zap.Int("allocated", counts[i]))
		}
	}
	if len(items) < requested {
		logger.Warn("request truncated",
			zap.Int("requested", requested),
			zap.Int("limit", e.maxPieces))
	}
	return items, requested
}

// =============================================================================
// 🪑 单件生成
// =============================================================================

// GenerateSinglePiece generates one artifact. Template failures produce a
// placeholder result rather than an error; the error is non-nil only for an
// unregistered type or a done context.
func (e *Engine) GenerateSinglePiece(ctx context.Context, p parametric.Parameters) (*GenerationResult, error) {
	ctx, span := e.tracer.Start(ctx, "pipeline.generate_piece")
	defer span.End()

	if err := ctx.Err(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	params, warnings := e.prepare(p)
	fp := parametric.Fingerprint(params)
	if id, ok := ctxkeys.RequestID(ctx); ok {
		span.SetAttributes(attribute.String("request.id", id))
	}
	span.SetAttributes(
		attribute.String("piece.type", string(params.Type)),
		attribute.String("piece.culture", string(params.Culture)),
		attribute.String("piece.fingerprint", fp),
	)

	if cached, ok := e.cache.Get(fp); ok {
		e.recordCache(true)
		span.SetAttributes(attribute.Bool("cache.hit", true))
		res := cached.withStatus(StatusCached)
		e.countPiece(ctx, res)
		return res, nil
	}
	e.recordCache(false)
	span.SetAttributes(attribute.Bool("cache.hit", false))

	tpl, ok := e.registry.Get(params.Type)
	if !ok {
		err := types.Errorf(types.ErrUnknownTemplate, "no template registered for %s", params.Type)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	v, _, shared := e.flight.Do(fp, func() (any, error) {
		// a concurrent flight may have finished between Get and Do
		if cached, ok := e.cache.Get(fp); ok {
			return cached.withStatus(StatusCached), nil
		}
		return e.generate(tpl, params, fp, warnings), nil
	})
	res := v.(*GenerationResult)
	if shared {
		span.SetAttributes(attribute.Bool("flight.shared", true))
		res = res.withStatus(res.Status)
	}
	span.SetAttributes(attribute.String("result.status", string(res.Status)))
	if res.Status == StatusFallback {
		span.SetStatus(codes.Error, res.Error)
	}
	e.countPiece(ctx, res)
	return res, nil
}

func (e *Engine) countPiece(ctx context.Context, res *GenerationResult) {
	e.pieces.Add(ctx, 1, metric.WithAttributes(
		attribute.String("piece.type", string(res.Parameters.Type)),
		attribute.String("result.status", string(res.Status)),
	))
}

// prepare sanitizes p and corrects it for the culture. The returned warnings
// list the conflicts found before correction.
func (e *Engine) prepare(p parametric.Parameters) (parametric.Parameters, []string) {
	s := parametric.Sanitize(p)
	profile := culture.ProfileOrModern(e.db, s.Culture)
	warnings := culture.CheckCompatibility(s, profile)
	if len(warnings) > 0 {
		e.logger.Debug("cultural conflicts corrected",
			zap.String("type", string(s.Type)),
			zap.String("culture", string(s.Culture)),
			zap.Strings("conflicts", warnings))
	}
	return culture.AdjustForAuthenticity(s, profile), warnings
}

func (e *Engine) generate(tpl template.Template, params parametric.Parameters, fp string, warnings []string) *GenerationResult {
	start := time.Now()
	art, err := e.build(tpl, params)
	elapsed := time.Since(start)
	if err != nil {
		res := e.fallback(params, fp, tpl, err)
		res.Warnings = warnings
		return res
	}

	sample := monitor.Metrics{
		GenerationTime: elapsed,
		PolygonCount:   art.geometry.PolygonCount(),
		MemoryUsage:    art.geometry.MemoryEstimate(),
	}
	eval := e.monitor.RecordGeneration(params.Type, params.Culture, sample)
	if e.metrics != nil {
		e.metrics.RecordGeneration(string(params.Type), string(params.Culture), string(StatusGenerated),
			elapsed, sample.PolygonCount, sample.MemoryUsage)
	}

	res := &GenerationResult{
		ID:                   uuid.NewString(),
		Fingerprint:          fp,
		Parameters:           params,
		Geometry:             art.geometry,
		Materials:            art.materials,
		Metadata:             art.metadata,
		CulturalAuthenticity: art.authenticity,
		PerformanceMetrics: PerformanceMetrics{
			GenerationTime: elapsed,
			PolygonCount:   sample.PolygonCount,
			MemoryUsage:    sample.MemoryUsage,
			Rating:         eval.Status,
			Suggestions:    eval.Suggestions,
		},
		Status:   StatusGenerated,
		Warnings: warnings,
	}
	e.cache.Set(fp, res)
	if e.metrics != nil {
		e.metrics.RecordCacheSize(resultCache, e.cache.Len())
	}

	e.logger.Debug("piece generated",
		zap.String("type", string(params.Type)),
		zap.String("culture", string(params.Culture)),
		zap.String("fingerprint", fp),
		zap.Duration("elapsed", elapsed),
		zap.Int("polygons", sample.PolygonCount))
	return res
}

// artifact is everything a template contributes to a generated result.
type artifact struct {
	geometry     *scene.Geometry
	materials    []material.Material
	metadata     template.Metadata
	authenticity Authenticity
}

// build runs the template and material system, converting panics and empty
// geometry into errors. Metadata and scoring run under the same recover.
func (e *Engine) build(tpl template.Template, params parametric.Parameters) (art artifact, err error) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("template panicked",
				zap.String("type", string(params.Type)),
				zap.Any("recover", r),
				zap.ByteString("stack", debug.Stack()))
			art = artifact{}
			err = types.NewError(types.ErrTemplateFailure, fmt.Sprintf("template panic: %v", r))
		}
	}()

	geom, err := tpl.GenerateGeometry(params)
	if err != nil {
		return artifact{}, types.NewError(types.ErrTemplateFailure, "geometry generation failed").WithCause(err)
	}
	if geom.IsEmpty() {
		return artifact{}, types.NewError(types.ErrEmptyGeometry, "template produced no meshes")
	}
	mats := e.materials.GenerateMaterials(params)
	e.materials.ApplyMaterials(geom, mats)
	return artifact{
		geometry:     geom,
		materials:    mats,
		metadata:     tpl.GenerateMetadata(params),
		authenticity: ScoreAuthenticity(params, culture.ProfileOrModern(e.db, params.Culture)),
	}, nil
}

func (e *Engine) recordCache(hit bool) {
	if e.metrics == nil {
		return
	}
	if hit {
		e.metrics.RecordCacheHit(resultCache)
	} else {
		e.metrics.RecordCacheMiss(resultCache)
	}
}

// =============================================================================
// 🔧 缓存与实时调整
// =============================================================================

// OptimizeParametersInRealTime merges adjustments onto current and sanitizes
// the result. Decorative intensity is re-derived from formality and
// craftsmanship unless the adjustments set it. No model is consulted.
func (e *Engine) OptimizeParametersInRealTime(current parametric.Parameters, adjustments map[string]any) parametric.Parameters {
	out := parametric.Merge(current, adjustments)
	explicit := false
	for k := range adjustments {
		if parametric.CanonicalKey(k) == "decorativeIntensity" {
			explicit = true
			break
		}
	}
	if !explicit {
		out.DecorativeIntensity = parametric.DefaultDecorativeIntensity(out.Formality, out.CraftsmanshipLevel)
	}
	return out
}

// ClearCache drops every cached result.
func (e *Engine) ClearCache() {
	e.cache.Clear()
	if e.metrics != nil {
		e.metrics.RecordCacheSize(resultCache, 0)
	}
	e.logger.Info("result cache cleared")
}

// CacheSize is the number of cached results.
func (e *Engine) CacheSize() int { return e.cache.Len() }
