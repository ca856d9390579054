package analyzer

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/saleemjadallah/visualz-backend-sub003/internal/metrics"
	"github.com/saleemjadallah/visualz-backend-sub003/llm"
	"github.com/saleemjadallah/visualz-backend-sub003/parametric"
	"github.com/saleemjadallah/visualz-backend-sub003/testutil"
	"github.com/saleemjadallah/visualz-backend-sub003/testutil/fixtures"
	"github.com/saleemjadallah/visualz-backend-sub003/testutil/mocks"
)

var namespaceSeq atomic.Uint64

func newTestMetrics() (*metrics.Collector, *prometheus.Registry, string) {
	ns := fmt.Sprintf("analyzer_test_%d", namespaceSeq.Add(1))
	reg := prometheus.NewRegistry()
	return metrics.NewCollector(ns, reg, zap.NewNop()), reg, ns
}

func aiCalls(t *testing.T, reg *prometheus.Registry, ns, operation, outcome string) float64 {
	return testutil.CounterValue(t, reg, ns+"_ai_calls_total", map[string]string{"operation": operation, "outcome": outcome})
}

func TestAnalyze_WithoutCompleterFallsBack(t *testing.T) {
	m, reg, ns := newTestMetrics()
	a := New(WithMetrics(m))

	got := a.Analyze(testutil.TestContext(t), fixtures.BirthdayJapanese())
	assert.Equal(t, SourceFallback, got.Source)
	assert.Equal(t, FallbackAnalysis(fixtures.BirthdayJapanese(), nil), got)
	assert.Equal(t, 1.0, aiCalls(t, reg, ns, "analyze", OutcomeDisabled))
}

func TestAnalyze_UsesModelResponse(t *testing.T) {
	m, reg, ns := newTestMetrics()
	completer := mocks.NewMockCompleter().WithResponse(fixtures.AnalysisResponse)
	a := New(WithCompleter(completer), WithMetrics(m))

	got := a.Analyze(testutil.TestContext(t), fixtures.BirthdayJapanese())
	assert.Equal(t, SourceAI, got.Source)
	require.Len(t, got.Pieces, 2)
	assert.Equal(t, 1, completer.CallCount())
	assert.Equal(t, 1.0, aiCalls(t, reg, ns, "analyze", OutcomeSuccess))

	call := completer.Calls()[0]
	assert.Contains(t, call.SystemPrompt, "furniture_pieces")
	assert.Contains(t, call.UserPrompt, "Birthday")
	assert.Contains(t, call.UserPrompt, "kumiko lattice")
	assert.Contains(t, call.UserPrompt, "Guests: 6")
}

func TestAnalyze_ModelErrorFallsBack(t *testing.T) {
	m, reg, ns := newTestMetrics()
	a := New(WithCompleter(mocks.NewMockCompleter().WithError(errors.New("503"))), WithMetrics(m))

	got := a.Analyze(testutil.TestContext(t), fixtures.BirthdayJapanese())
	assert.Equal(t, FallbackAnalysis(fixtures.BirthdayJapanese(), nil), got)
	assert.Equal(t, 1.0, aiCalls(t, reg, ns, "analyze", OutcomeError))
}

func TestAnalyze_InvalidResponseFallsBack(t *testing.T) {
	m, reg, ns := newTestMetrics()
	a := New(WithCompleter(mocks.NewMockCompleter().WithResponse(fixtures.MissingPiecesResponse)), WithMetrics(m))

	got := a.Analyze(testutil.TestContext(t), fixtures.BirthdayJapanese())
	assert.Equal(t, SourceFallback, got.Source)
	assert.Equal(t, 1.0, aiCalls(t, reg, ns, "analyze", OutcomeInvalid))
	assert.Zero(t, aiCalls(t, reg, ns, "analyze", OutcomeSuccess))
}

func TestAnalyze_TimeoutFallsBack(t *testing.T) {
	m, reg, ns := newTestMetrics()
	completer := mocks.NewMockCompleter().WithResponse(fixtures.AnalysisResponse).WithDelay(time.Second)
	a := New(WithCompleter(completer), WithTimeout(20*time.Millisecond), WithMetrics(m))

	got := a.Analyze(testutil.TestContext(t), fixtures.BirthdayJapanese())
	assert.Equal(t, SourceFallback, got.Source)
	assert.Equal(t, 1.0, aiCalls(t, reg, ns, "analyze", OutcomeTimeout))
}

func TestAnalyze_DeadlineHoldsWhenCompleterIgnoresContext(t *testing.T) {
	stubborn := llm.CompleterFunc(func(context.Context, string, string) (string, error) {
		time.Sleep(500 * time.Millisecond)
		return fixtures.AnalysisResponse, nil
	})
	a := New(WithCompleter(stubborn), WithTimeout(20*time.Millisecond))

	start := time.Now()
	got := a.Analyze(context.Background(), fixtures.BirthdayJapanese())
	assert.Less(t, time.Since(start), 400*time.Millisecond)
	assert.Equal(t, SourceFallback, got.Source)
}

func TestAnalyze_RateLimitWaitBeyondDeadlineFails(t *testing.T) {
	m, reg, ns := newTestMetrics()
	completer := mocks.NewMockCompleter().WithResponse(fixtures.AnalysisResponse)
	a := New(
		WithCompleter(completer),
		WithRateLimit(0.01, 1),
		WithTimeout(50*time.Millisecond),
		WithMetrics(m),
	)

	first := a.Analyze(testutil.TestContext(t), fixtures.BirthdayJapanese())
	second := a.Analyze(testutil.TestContext(t), fixtures.BirthdayJapanese())

	assert.Equal(t, SourceAI, first.Source)
	assert.Equal(t, SourceFallback, second.Source)
	assert.Equal(t, 1, completer.CallCount())
	assert.Equal(t, 1.0, aiCalls(t, reg, ns, "analyze", OutcomeTimeout))
}

func TestAnalyze_CompleterPanicFallsBack(t *testing.T) {
	a := New(WithCompleter(mocks.NewMockCompleter().WithPanic("kaboom")))

	var got *Analysis
	assert.NotPanics(t, func() {
		got = a.Analyze(testutil.TestContext(t), fixtures.BirthdayJapanese())
	})
	assert.Equal(t, SourceFallback, got.Source)
}

func TestAnalyze_AdjustsAvoidedMaterials(t *testing.T) {
	raw := `{"furniture_pieces": [{"type": "chair", "quantity": 2, "parameters": {"primaryMaterial": "acrylic"}}]}`
	a := New(WithCompleter(mocks.NewMockCompleter().WithResponse(raw)))

	got := a.Analyze(testutil.TestContext(t), fixtures.BirthdayJapanese())
	require.Len(t, got.Pieces, 1)
	assert.Equal(t, "hinoki", got.Pieces[0].Parameters.PrimaryMaterial)
}

func TestOptimizeParameters_MergesOverrides(t *testing.T) {
	m, reg, ns := newTestMetrics()
	completer := mocks.NewMockCompleter().WithResponse(fixtures.OptimizationResponse)
	a := New(WithCompleter(completer), WithMetrics(m))
	base := fixtures.ChairParameters(parametric.CultureJapanese)

	got := a.OptimizeParameters(testutil.TestContext(t), base, parametric.OptimizationConstraints{Space: "compact"})
	assert.Equal(t, parametric.TypeChair, got.Type, "type overrides are ignored")
	assert.Equal(t, 0.5, got.Width)
	assert.Equal(t, "bamboo", got.PrimaryMaterial)
	assert.Equal(t, base.Height, got.Height)
	assert.Empty(t, parametric.Validate(got))
	assert.Equal(t, 1.0, aiCalls(t, reg, ns, "optimize", OutcomeSuccess))
	assert.Contains(t, completer.Calls()[0].UserPrompt, "Space: compact")
}

func TestOptimizeParameters_FailureUsesRules(t *testing.T) {
	base := fixtures.ChairParameters(parametric.CultureItalian)
	c := parametric.OptimizationConstraints{Budget: "low", Accessibility: "wheelchair"}

	for name, completer := range map[string]llm.Completer{
		"error":   mocks.NewMockCompleter().WithError(errors.New("down")),
		"invalid": mocks.NewMockCompleter().WithResponse("not json"),
	} {
		t.Run(name, func(t *testing.T) {
			a := New(WithCompleter(completer))
			got := a.OptimizeParameters(testutil.TestContext(t), base, c)
			assert.Equal(t, RuleBasedOptimization(base, c, nil), got)
		})
	}
}
