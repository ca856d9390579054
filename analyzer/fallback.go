package analyzer

import (
	"fmt"
	"math"
	"strings"

	"github.com/saleemjadallah/visualz-backend-sub003/culture"
	"github.com/saleemjadallah/visualz-backend-sub003/material"
	"github.com/saleemjadallah/visualz-backend-sub003/parametric"
)

// pieceRule derives one fallback piece from the guest count.
type pieceRule struct {
	t        parametric.FurnitureType
	priority Priority
	quantity func(guests int) int
	purpose  string
}

func perGuests(n int) func(int) int {
	return func(g int) int { return ceilDiv(g, n) }
}

func fixed(n int) func(int) int {
	return func(int) int { return n }
}

func guests(g int) int { return g }

var eventPlans = map[string][]pieceRule{
	"birthday": {
		{parametric.TypeDiningTable, PriorityEssential, perGuests(8), "shared table for cake and food"},
		{parametric.TypeChair, PriorityEssential, guests, "a seat for every guest"},
		{parametric.TypeLighting, PriorityRecommended, fixed(2), "warm festive light"},
		{parametric.TypeInteractiveExperience, PriorityOptional, fixed(1), "activity corner for guests"},
	},
	"wedding": {
		{parametric.TypeDiningTable, PriorityEssential, perGuests(10), "banquet tables"},
		{parametric.TypeChair, PriorityEssential, guests, "ceremony and dinner seating"},
		{parametric.TypeLighting, PriorityEssential, func(g int) int { return 2 + ceilDiv(g, 25) }, "layered evening light"},
		{parametric.TypeSofa, PriorityOptional, fixed(1), "lounge for the couple and elders"},
		{parametric.TypeSecuritySystem, PriorityOptional, fixed(1), "gift table and venue monitoring"},
	},
	"corporate": {
		{parametric.TypeDiningTable, PriorityEssential, perGuests(10), "meeting and catering tables"},
		{parametric.TypeChair, PriorityEssential, guests, "presentation seating"},
		{parametric.TypeLighting, PriorityRecommended, perGuests(20), "even working light"},
		{parametric.TypeSecuritySystem, PriorityRecommended, fixed(1), "equipment monitoring"},
	},
	"conference": {
		{parametric.TypeChair, PriorityEssential, guests, "audience seating"},
		{parametric.TypeDiningTable, PriorityEssential, perGuests(12), "registration and break tables"},
		{parametric.TypeLighting, PriorityEssential, perGuests(25), "bright even light"},
		{parametric.TypeInteractiveExperience, PriorityOptional, fixed(1), "sponsor or demo installation"},
	},
	"dinner-party": {
		{parametric.TypeDiningTable, PriorityEssential, perGuests(10), "one shared dining table"},
		{parametric.TypeChair, PriorityEssential, guests, "comfortable dining chairs"},
		{parametric.TypeLighting, PriorityRecommended, fixed(2), "soft table light"},
	},
	"tea-ceremony": {
		{parametric.TypeCoffeeTable, PriorityEssential, perGuests(5), "low table for the tea service"},
		{parametric.TypeBench, PriorityEssential, perGuests(3), "low seating"},
		{parametric.TypeLighting, PriorityRecommended, fixed(1), "quiet indirect light"},
	},
	"cocktail": {
		{parametric.TypeCoffeeTable, PriorityEssential, perGuests(8), "scattered standing and low tables"},
		{parametric.TypeSofa, PriorityRecommended, perGuests(15), "lounge clusters"},
		{parametric.TypeLighting, PriorityEssential, func(g int) int { return 2 + ceilDiv(g, 20) }, "accent lighting"},
	},
	"holiday": {
		{parametric.TypeDiningTable, PriorityEssential, perGuests(8), "family-style table"},
		{parametric.TypeChair, PriorityEssential, guests, "seating for every guest"},
		{parametric.TypeSofa, PriorityRecommended, fixed(1), "cozy lounge corner"},
		{parametric.TypeLighting, PriorityRecommended, fixed(3), "festive lighting"},
	},
	"graduation": {
		{parametric.TypeDiningTable, PriorityEssential, perGuests(8), "buffet and family tables"},
		{parametric.TypeChair, PriorityEssential, guests, "flexible family seating"},
		{parametric.TypeInteractiveExperience, PriorityRecommended, fixed(1), "photo and display installation"},
		{parametric.TypeLighting, PriorityRecommended, fixed(2), "celebratory light"},
	},
	"baby-shower": {
		{parametric.TypeSofa, PriorityEssential, perGuests(6), "comfortable lounge seating"},
		{parametric.TypeCoffeeTable, PriorityEssential, perGuests(8), "gift and snack tables"},
		{parametric.TypeChair, PriorityRecommended, func(g int) int { return ceilDiv(g, 2) }, "extra seating"},
		{parametric.TypeLighting, PriorityRecommended, fixed(2), "gentle light"},
	},
}

var genericPlan = []pieceRule{
	{parametric.TypeDiningTable, PriorityEssential, perGuests(8), "shared table"},
	{parametric.TypeChair, PriorityEssential, guests, "seating for every guest"},
	{parametric.TypeLighting, PriorityRecommended, fixed(2), "ambient light"},
}

func planFor(eventType string) []pieceRule {
	if plan, ok := eventPlans[eventType]; ok {
		return plan
	}
	return genericPlan
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 1
	}
	return (a + b - 1) / b
}

var craftByBudget = map[string]parametric.Craftsmanship{
	string(parametric.BudgetLow):    parametric.CraftStandard,
	string(parametric.BudgetMedium): parametric.CraftStandard,
	string(parametric.BudgetHigh):   parametric.CraftArtisan,
	string(parametric.BudgetLuxury): parametric.CraftMaster,
}

// FallbackAnalysis maps the request to a plan without calling the model.
// The same request always yields the same analysis, and every parameter set
// is sanitized. A nil db uses the embedded cultural database.
func FallbackAnalysis(req parametric.UserFurnitureRequest, db culture.Database) *Analysis {
	if db == nil {
		db = culture.Default()
	}
	req = req.Normalize()
	profile := culture.ProfileOrModern(db, parametric.Culture(req.Culture))
	constraints := parametric.ConstraintsFromRequest(req)

	formality := parametric.Formality(req.FormalityLevel)
	style := fallbackStyle(profile, formality)
	craft := craftByBudget[req.BudgetRange]

	out := &Analysis{Source: SourceFallback}
	for _, rule := range planFor(req.EventType) {
		qty := clampQuantity(rule.quantity(req.GuestCount))
		p := parametric.Parameters{
			Type:               rule.t,
			Culture:            parametric.Culture(req.Culture),
			Style:              style,
			Formality:          formality,
			PrimaryMaterial:    primaryFor(rule.t, profile),
			ColorPalette:       profile.Aesthetics.Palette,
			CraftsmanshipLevel: craft,
		}
		if style == parametric.StyleTraditional && len(profile.Elements) > 0 {
			p.CulturalElements = profile.Elements[:min(2, len(profile.Elements))]
		}
		p.DecorativeIntensity = parametric.DefaultDecorativeIntensity(formality, craft)
		if profile.Aesthetics.TypicalIntensity > 0 {
			p.DecorativeIntensity = (p.DecorativeIntensity + profile.Aesthetics.TypicalIntensity) / 2
		}
		sizeForGuests(&p, profile, req.GuestCount, qty)

		p = RuleBasedOptimization(p, constraints, db)
		p = culture.AdjustForAuthenticity(p, profile)

		out.Pieces = append(out.Pieces, Piece{
			Type:                rule.t,
			Quantity:            qty,
			Priority:            rule.priority,
			Parameters:          p,
			CulturalReasoning:   culturalReasoning(profile, p),
			FunctionalReasoning: fmt.Sprintf("%s for %d guests", rule.purpose, req.GuestCount),
		})
	}

	out.OverallTheme = fmt.Sprintf("%s %s for %d guests", profileName(profile), strings.ReplaceAll(req.EventType, "-", " "), req.GuestCount)
	if len(profile.Aesthetics.Principles) > 0 {
		out.CulturalAuthenticityNotes = "Guided by " + strings.Join(profile.Aesthetics.Principles, ", ")
	}
	out.SpaceUtilization = constraints.Space
	out.BudgetConsiderations = fmt.Sprintf("%s budget, %s craftsmanship", req.BudgetRange, craft)
	return out
}

func fallbackStyle(profile *culture.Profile, f parametric.Formality) parametric.Style {
	if (f == parametric.FormalityFormal || f == parametric.FormalityCeremonial) && profile.FitsStyle(parametric.StyleTraditional) {
		return parametric.StyleTraditional
	}
	if len(profile.Aesthetics.Styles) > 0 {
		return profile.Aesthetics.Styles[0]
	}
	return parametric.StyleContemporary
}

func primaryFor(t parametric.FurnitureType, profile *culture.Profile) string {
	if t == parametric.TypeSecuritySystem {
		return parametric.DefaultMaterial(t, profile.Culture)
	}
	if t == parametric.TypeSofa {
		// 软体家具优先织物
		for _, m := range append(append([]string{}, profile.Materials.Preferred...), profile.Materials.Traditional...) {
			if d, ok := material.Lookup(m); ok && d.Category == material.CategoryTextile && !profile.IsAvoided(m) {
				return m
			}
		}
	}
	if len(profile.Materials.Preferred) > 0 {
		return profile.Materials.Preferred[0]
	}
	return parametric.DefaultMaterial(t, profile.Culture)
}

// sizeForGuests scales tables to the seats they serve and follows the
// culture's habitual table height.
func sizeForGuests(p *parametric.Parameters, profile *culture.Profile, guests, tables int) {
	switch p.Type {
	case parametric.TypeDiningTable:
		seats := ceilDiv(guests, tables)
		p.Capacity = parametric.IntPtr(seats)
		// 每侧每位 0.6m
		p.Width = 0.6 * math.Ceil(float64(seats)/2)
		if p.Width < 0.9 {
			p.Width = 0.9
		}
		p.Height = profile.Proportions.TableHeight.Clamp(0.75)
		ratio := profile.Proportions.Ratio
		if ratio <= 0 {
			ratio = 1.6
		}
		p.Depth = math.Max(0.8, math.Min(p.Width/ratio, 1.2))
	case parametric.TypeBench:
		p.Capacity = parametric.IntPtr(min(6, ceilDiv(guests, tables)))
		p.Width = 0.5 * float64(*p.Capacity)
	case parametric.TypeChair:
		p.Capacity = parametric.IntPtr(1)
	}
}

func culturalReasoning(profile *culture.Profile, p parametric.Parameters) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("%s %s reflects %s material traditions", p.PrimaryMaterial, p.Type, profileName(profile)))
	if len(profile.Aesthetics.Principles) > 0 {
		parts = append(parts, "following "+profile.Aesthetics.Principles[0])
	}
	return strings.Join(parts, ", ")
}

func profileName(profile *culture.Profile) string {
	if profile.Name != "" {
		return profile.Name
	}
	return string(profile.Culture)
}

var compactWords = []string{"small", "compact", "limited", "tight", "narrow", "cramped"}
var tightBudgetWords = []string{"low", "tight", "limited", "economical", "cheap"}
var accessibilityWords = []string{"wheelchair", "accessible", "accessibility", "mobility", "elderly"}

// RuleBasedOptimization applies bounded deterministic adjustments for the
// constraints. The result is always sanitized. A nil db uses the embedded
// cultural database.
func RuleBasedOptimization(base parametric.Parameters, c parametric.OptimizationConstraints, db culture.Database) parametric.Parameters {
	if db == nil {
		db = culture.Default()
	}
	p := parametric.Sanitize(base)
	profile := culture.ProfileOrModern(db, p.Culture)

	if c.MaxWidth > 0 && p.Width > c.MaxWidth {
		scale := c.MaxWidth / p.Width
		p.Width *= scale
		p.Depth *= scale
	}
	if c.MaxDepth > 0 && p.Depth > c.MaxDepth {
		scale := c.MaxDepth / p.Depth
		p.Width *= scale
		p.Depth *= scale
	}
	if parametric.ContainsAny(strings.ToLower(c.Space), compactWords) {
		p.Width *= 0.85
		p.Depth *= 0.85
	}

	if parametric.ContainsAny(strings.ToLower(c.Budget), tightBudgetWords) {
		p.CraftsmanshipLevel = parametric.CraftStandard
		if material.IsPremium(p.PrimaryMaterial) {
			if alt := profile.Economical(material.IsPremium); alt != "" {
				p.PrimaryMaterial = alt
			} else {
				p.PrimaryMaterial = "pine"
			}
		}
		if material.IsPremium(p.SecondaryMaterial) {
			p.SecondaryMaterial = ""
		}
		p.DecorativeIntensity *= 0.7
	}

	if parametric.ContainsAny(strings.ToLower(c.Accessibility), accessibilityWords) {
		p.ErgonomicProfile = parametric.ErgonomicAccessible
	}

	if parametric.ContainsAny(strings.ToLower(c.Cultural), []string{"traditional", "authentic"}) &&
		p.CraftsmanshipLevel.Rank() < parametric.CraftArtisan.Rank() {
		p.CraftsmanshipLevel = parametric.CraftArtisan
	}

	return parametric.Sanitize(p)
}
