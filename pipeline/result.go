package pipeline

import (
	"time"

	"github.com/saleemjadallah/visualz-backend-sub003/analyzer"
	"github.com/saleemjadallah/visualz-backend-sub003/material"
	"github.com/saleemjadallah/visualz-backend-sub003/monitor"
	"github.com/saleemjadallah/visualz-backend-sub003/parametric"
	"github.com/saleemjadallah/visualz-backend-sub003/scene"
	"github.com/saleemjadallah/visualz-backend-sub003/template"
)

// Status tells how a result was produced.
type Status string

const (
	StatusGenerated Status = "generated"
	StatusCached    Status = "cached"
	StatusFallback  Status = "fallback"
)

// PerformanceMetrics is the measured cost of producing a result.
type PerformanceMetrics struct {
	GenerationTime time.Duration  `json:"generationTime"`
	PolygonCount   int            `json:"polygonCount"`
	MemoryUsage    int64          `json:"memoryUsage"`
	Rating         monitor.Status `json:"rating,omitempty"`
	Suggestions    []string       `json:"suggestions,omitempty"`
}

// GenerationResult is one generated artifact. Results served from the cache
// share their geometry with other callers; use Geometry.Clone before
// modifying it.
type GenerationResult struct {
	ID                   string                `json:"id"`
	Fingerprint          string                `json:"fingerprint"`
	Parameters           parametric.Parameters `json:"parameters"`
	Geometry             *scene.Geometry       `json:"geometry"`
	Materials            []material.Material   `json:"materials"`
	Metadata             template.Metadata     `json:"metadata"`
	CulturalAuthenticity Authenticity          `json:"culturalAuthenticity"`
	PerformanceMetrics   PerformanceMetrics    `json:"performanceMetrics"`
	Status               Status                `json:"status"`
	Warnings             []string              `json:"warnings,omitempty"`
	Error                string                `json:"error,omitempty"`
}

// withStatus returns a shallow copy carrying a different status.
func (r *GenerationResult) withStatus(s Status) *GenerationResult {
	out := *r
	out.Status = s
	return &out
}

// Design is the outcome of a full user request: the analysis that drove it
// and one result per generated piece, in piece order. When the analysis asks
// for more pieces than the engine allows, Truncated is set and Requested
// keeps the asked-for total.
type Design struct {
	RequestID string              `json:"requestId"`
	Analysis  *analyzer.Analysis  `json:"analysis"`
	Results   []*GenerationResult `json:"results"`
	Requested int                 `json:"requested"`
	Truncated bool                `json:"truncated"`
}

// Counts tallies results by status.
func (d *Design) Counts() map[Status]int {
	out := make(map[Status]int, 3)
	for _, r := range d.Results {
		out[r.Status]++
	}
	return out
}
