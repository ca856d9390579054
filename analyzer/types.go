package analyzer

import "github.com/saleemjadallah/visualz-backend-sub003/parametric"

// Priority ranks how necessary a piece is for the event.
type Priority string

const (
	PriorityEssential   Priority = "essential"
	PriorityRecommended Priority = "recommended"
	PriorityOptional    Priority = "optional"
)

var priorities = []Priority{PriorityEssential, PriorityRecommended, PriorityOptional}

// Source records whether an analysis came from the model or the rule tables.
type Source string

const (
	SourceAI       Source = "ai"
	SourceFallback Source = "fallback"
)

// Quantity bounds of a single piece.
const (
	MinQuantity = 1
	MaxQuantity = parametric.MaxGuestCount
)

// Piece is one recommended furniture item with its sanitized parameters.
type Piece struct {
	Type                parametric.FurnitureType `json:"type"`
	Quantity            int                      `json:"quantity"`
	Priority            Priority                 `json:"priority"`
	Parameters          parametric.Parameters    `json:"parameters"`
	CulturalReasoning   string                   `json:"culturalReasoning"`
	FunctionalReasoning string                   `json:"functionalReasoning"`
}

// Analysis is the structured plan produced for a request.
type Analysis struct {
	Pieces                    []Piece `json:"furniturePieces"`
	OverallTheme              string  `json:"overallTheme"`
	CulturalAuthenticityNotes string  `json:"culturalAuthenticityNotes"`
	SpaceUtilization          string  `json:"spaceUtilization"`
	BudgetConsiderations      string  `json:"budgetConsiderations"`
	Source                    Source  `json:"source"`
}

// TotalQuantity sums the quantities of every piece.
func (a *Analysis) TotalQuantity() int {
	n := 0
	for _, p := range a.Pieces {
		n += p.Quantity
	}
	return n
}
