package parametric

import (
	"fmt"
	"strings"
)

// BudgetRange is the spending tier of a request.
type BudgetRange string

const (
	BudgetLow    BudgetRange = "low"
	BudgetMedium BudgetRange = "medium"
	BudgetHigh   BudgetRange = "high"
	BudgetLuxury BudgetRange = "luxury"
)

var budgetRanges = []BudgetRange{BudgetLow, BudgetMedium, BudgetHigh, BudgetLuxury}

// SpaceDimensions is the event space in meters.
type SpaceDimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
}

// Area returns the floor area in square meters.
func (s SpaceDimensions) Area() float64 {
	return s.Width * s.Depth
}

// UserFurnitureRequest is the raw request an outer layer hands to the pipeline.
type UserFurnitureRequest struct {
	EventType           string          `json:"eventType"`
	Culture             string          `json:"culture"`
	GuestCount          int             `json:"guestCount"`
	SpaceDimensions     SpaceDimensions `json:"spaceDimensions"`
	BudgetRange         string          `json:"budgetRange"`
	FormalityLevel      string          `json:"formalityLevel"`
	SpecialRequirements string          `json:"specialRequirements"`
}

// Request limits applied by Normalize.
const (
	DefaultGuestCount = 10
	MaxGuestCount     = 500
)

// DefaultSpace is used when the request omits or zeroes a space dimension.
var DefaultSpace = SpaceDimensions{Width: 6, Height: 3, Depth: 6}

// Normalize returns a copy with canonical identifiers and defaults filled in.
func (r UserFurnitureRequest) Normalize() UserFurnitureRequest {
	out := r
	out.EventType = canonical(r.EventType)
	if out.EventType == "" {
		out.EventType = "gathering"
	}
	out.Culture = string(NormalizeCulture(r.Culture))
	switch {
	case r.GuestCount <= 0:
		out.GuestCount = DefaultGuestCount
	case r.GuestCount > MaxGuestCount:
		out.GuestCount = MaxGuestCount
	}
	if !(r.SpaceDimensions.Width > 0) {
		out.SpaceDimensions.Width = DefaultSpace.Width
	}
	if !(r.SpaceDimensions.Height > 0) {
		out.SpaceDimensions.Height = DefaultSpace.Height
	}
	if !(r.SpaceDimensions.Depth > 0) {
		out.SpaceDimensions.Depth = DefaultSpace.Depth
	}
	out.BudgetRange = string(pickEnum(canonical(r.BudgetRange), budgetRanges, BudgetMedium))
	out.FormalityLevel = string(NormalizeFormality(r.FormalityLevel))
	out.SpecialRequirements = strings.TrimSpace(r.SpecialRequirements)
	return out
}

// OptimizationConstraints are the limits a parameter set is optimized against.
// The text fields are free-form; MaxWidth and MaxDepth are hard footprint caps
// in meters when positive.
type OptimizationConstraints struct {
	Space         string  `json:"space,omitempty"`
	Budget        string  `json:"budget,omitempty"`
	Accessibility string  `json:"accessibility,omitempty"`
	Cultural      string  `json:"cultural,omitempty"`
	MaxWidth      float64 `json:"maxWidth,omitempty"`
	MaxDepth      float64 `json:"maxDepth,omitempty"`
}

var (
	accessibilityWords = []string{"wheelchair", "accessible", "accessibility", "mobility", "elderly", "ada"}
	culturalWords      = []string{"traditional", "authentic", "heritage", "ceremony", "ceremonial"}
)

// ConstraintsFromRequest derives optimization constraints from a request.
func ConstraintsFromRequest(req UserFurnitureRequest) OptimizationConstraints {
	r := req.Normalize()
	space := r.SpaceDimensions
	c := OptimizationConstraints{
		Space:    fmt.Sprintf("%.1fm x %.1fm floor, %.1fm ceiling", space.Width, space.Depth, space.Height),
		Budget:   r.BudgetRange,
		MaxWidth: space.Width,
		MaxDepth: space.Depth,
	}
	// under 1.5 m² of floor per guest the room is tight
	if space.Area()/float64(r.GuestCount) < 1.5 {
		c.Space += ", compact"
	}
	if r.BudgetRange == string(BudgetLow) {
		c.Budget += ", tight"
	}
	special := strings.ToLower(r.SpecialRequirements)
	if ContainsAny(special, accessibilityWords) {
		c.Accessibility = r.SpecialRequirements
	}
	if ContainsAny(special, culturalWords) {
		c.Cultural = r.SpecialRequirements
	}
	return c
}

// ContainsAny reports whether s contains any of the words.
func ContainsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
