package analyzer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/saleemjadallah/visualz-backend-sub003/culture"
	"github.com/saleemjadallah/visualz-backend-sub003/internal/metrics"
	"github.com/saleemjadallah/visualz-backend-sub003/llm"
	"github.com/saleemjadallah/visualz-backend-sub003/parametric"
	"github.com/saleemjadallah/visualz-backend-sub003/types"
)

// DefaultTimeout bounds a single model call.
const DefaultTimeout = 30 * time.Second

// Outcome labels recorded for every model call.
const (
	OutcomeSuccess  = "success"
	OutcomeDisabled = "disabled"
	OutcomeTimeout  = "timeout"
	OutcomeError    = "error"
	OutcomeInvalid  = "invalid_response"
)

// Analyzer turns user requests into furniture plans. The model is optional:
// every failure path ends in the deterministic rule tables.
type Analyzer struct {
	completer llm.Completer
	db        culture.Database
	limiter   *rate.Limiter
	timeout   time.Duration
	metrics   *metrics.Collector
	logger    *zap.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithCompleter sets the model client. Without one the analyzer always falls back.
func WithCompleter(c llm.Completer) Option {
	return func(a *Analyzer) { a.completer = c }
}

// WithDatabase sets the cultural database.
func WithDatabase(db culture.Database) Option {
	return func(a *Analyzer) { a.db = db }
}

// WithTimeout sets the per-call deadline.
func WithTimeout(d time.Duration) Option {
	return func(a *Analyzer) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// WithRateLimit throttles model calls. A non-positive rps disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(a *Analyzer) {
		if rps <= 0 {
			a.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		a.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithMetrics records call outcomes.
func WithMetrics(c *metrics.Collector) Option {
	return func(a *Analyzer) { a.metrics = c }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// New creates an Analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		timeout: DefaultTimeout,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.db == nil {
		a.db = culture.Default()
	}
	a.logger = a.logger.With(zap.String("component", "request_analyzer"))
	return a
}

// Analyze produces a plan for the request. It never fails: model errors,
// timeouts and unusable responses all yield FallbackAnalysis.
func (a *Analyzer) Analyze(ctx context.Context, req parametric.UserFurnitureRequest) *Analysis {
	req = req.Normalize()
	profile := culture.ProfileOrModern(a.db, parametric.Culture(req.Culture))

	raw, elapsed, err := a.complete(ctx, "analyze", SystemPrompt(), UserPrompt(req, profile))
	if err != nil {
		a.logger.Warn("analysis fell back to rules",
			zap.String("event_type", req.EventType),
			zap.String("culture", req.Culture),
			zap.Error(err))
		return FallbackAnalysis(req, a.db)
	}

	analysis, err := parseAnalysis(raw, req)
	if err != nil {
		a.record("analyze", OutcomeInvalid, elapsed)
		a.logger.Warn("unusable analysis response, falling back",
			zap.String("event_type", req.EventType),
			zap.Error(err))
		return FallbackAnalysis(req, a.db)
	}

	a.record("analyze", OutcomeSuccess, elapsed)

	for i := range analysis.Pieces {
		p := &analysis.Pieces[i]
		p.Parameters = culture.AdjustForAuthenticity(p.Parameters, culture.ProfileOrModern(a.db, p.Parameters.Culture))
	}
	a.logger.Debug("analysis completed",
		zap.Int("pieces", len(analysis.Pieces)),
		zap.Int("total_quantity", analysis.TotalQuantity()))
	return analysis
}

// OptimizeParameters asks the model for overrides and merges them onto
// base. Type and culture stay fixed. Any failure yields
// RuleBasedOptimization.
func (a *Analyzer) OptimizeParameters(ctx context.Context, base parametric.Parameters, c parametric.OptimizationConstraints) parametric.Parameters {
	base = parametric.Sanitize(base)

	raw, elapsed, err := a.complete(ctx, "optimize", SystemPrompt(), OptimizationPrompt(base, c))
	if err != nil {
		a.logger.Debug("optimization fell back to rules", zap.Error(err))
		return RuleBasedOptimization(base, c, a.db)
	}

	overrides, err := parseOverrides(raw)
	if err != nil {
		a.record("optimize", OutcomeInvalid, elapsed)
		a.logger.Warn("unusable optimization response, falling back", zap.Error(err))
		return RuleBasedOptimization(base, c, a.db)
	}

	a.record("optimize", OutcomeSuccess, elapsed)

	return parametric.Merge(base, overrides, "type", "culture")
}

type completion struct {
	text string
	err  error
}

// complete runs one model call under the deadline. Waiting on the rate
// limiter counts against the same deadline. Failures are recorded here;
// the caller records the outcome of a returned response.
func (a *Analyzer) complete(ctx context.Context, operation, system, user string) (string, time.Duration, error) {
	if a.completer == nil {
		a.record(operation, OutcomeDisabled, 0)
		return "", 0, types.NewError(types.ErrAIUnavailable, "no completer configured")
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			a.record(operation, OutcomeTimeout, time.Since(start))
			return "", time.Since(start), types.NewError(types.ErrAITimeout, "rate limiter wait exceeds deadline").WithCause(err).WithRetryable(true)
		}
	}

	done := make(chan completion, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- completion{err: fmt.Errorf("completer panicked: %v", r)}
			}
		}()
		text, err := a.completer.Complete(ctx, system, user)
		done <- completion{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		a.record(operation, OutcomeTimeout, time.Since(start))
		return "", time.Since(start), types.NewError(types.ErrAITimeout, fmt.Sprintf("%s call exceeded %s", operation, a.timeout)).WithCause(ctx.Err()).WithRetryable(true)
	case res := <-done:
		if res.err != nil {
			outcome := OutcomeError
			if errors.Is(res.err, context.DeadlineExceeded) || types.IsErrorCode(res.err, types.ErrAITimeout) {
				outcome = OutcomeTimeout
			}
			a.record(operation, outcome, time.Since(start))
			return "", time.Since(start), res.err
		}
		return res.text, time.Since(start), nil
	}
}

func (a *Analyzer) record(operation, outcome string, d time.Duration) {
	if a.metrics != nil {
		a.metrics.RecordAICall(operation, outcome, d)
	}
}
