package analyzer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/saleemjadallah/visualz-backend-sub003/culture"
	"github.com/saleemjadallah/visualz-backend-sub003/parametric"
)

var eventHints = map[string]string{
	"birthday":     "Birthday: keep the room sociable, leave open floor for a cake table and gifts, favour warm playful lighting.",
	"wedding":      "Wedding: ceremonial formality, long banquet tables, a clear aisle and layered lighting for the evening.",
	"corporate":    "Corporate event: durable neutral pieces, clear sight lines, seating that supports presentations and networking.",
	"dinner-party": "Dinner party: one shared table where every guest can talk, comfortable chairs for a long meal, soft lighting.",
	"tea-ceremony": "Tea ceremony: low seating, a single low table, restraint and natural materials, quiet indirect light.",
	"cocktail":     "Cocktail reception: mostly standing, scattered low tables, lounge clusters and accent lighting.",
	"conference":   "Conference: rows or clusters of chairs, presenter area, durable tables, even bright lighting.",
	"holiday":      "Holiday gathering: festive palette, family-style tables and a cozy lounge corner.",
	"graduation":   "Graduation: celebratory mood, flexible seating for families, a photo or display installation.",
	"baby-shower":  "Baby shower: soft palette, comfortable lounge seating, a gift table and gentle lighting.",
}

const genericHint = "General gathering: balance seating for every guest with circulation space and ambient lighting."

// EventHint returns the planning hint for an event type.
func EventHint(eventType string) string {
	if h, ok := eventHints[eventType]; ok {
		return h
	}
	return genericHint
}

func joinEnum[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

// SystemPrompt describes the output schema and the allowed values.
func SystemPrompt() string {
	var b strings.Builder
	b.WriteString("You are a furniture and event design planner with deep knowledge of cultural design traditions.\n")
	b.WriteString("Respond with a single JSON object and nothing else, using this shape:\n")
	b.WriteString(`{"furniture_pieces":[{"type":"","quantity":1,"priority":"essential","parameters":{},"cultural_reasoning":"","functional_reasoning":""}],`)
	b.WriteString(`"overall_theme":"","cultural_authenticity_notes":"","space_utilization":"","budget_considerations":""}` + "\n\n")
	b.WriteString("Allowed values:\n")
	fmt.Fprintf(&b, "- type: %s\n", joinEnum(parametric.FurnitureTypes))
	fmt.Fprintf(&b, "- culture: %s\n", joinEnum(parametric.Cultures))
	fmt.Fprintf(&b, "- style: %s\n", joinEnum(parametric.Styles))
	fmt.Fprintf(&b, "- formality: %s\n", joinEnum(parametric.Formalities))
	fmt.Fprintf(&b, "- ergonomicProfile: %s\n", joinEnum(parametric.ErgonomicProfiles))
	fmt.Fprintf(&b, "- craftsmanshipLevel: %s\n", joinEnum(parametric.CraftsmanshipLevels))
	fmt.Fprintf(&b, "- priority: %s\n", joinEnum(priorities))
	fmt.Fprintf(&b, "- primaryMaterial / secondaryMaterial: %s\n", strings.Join(parametric.Materials, ", "))
	fmt.Fprintf(&b, "- quantity: %d to %d; decorativeIntensity: 0 to 1; dimensions in meters\n", MinQuantity, MaxQuantity)
	b.WriteString("\nParameters use these keys: type, culture, width, height, depth, style, formality, primaryMaterial, ")
	b.WriteString("secondaryMaterial, culturalElements, capacity, ergonomicProfile, colorPalette, decorativeIntensity, craftsmanshipLevel.\n")
	b.WriteString("Respect each culture's proportions and avoid materials the tradition avoids.")
	return b.String()
}

// UserPrompt embeds the request, the event hint and the cultural profile.
func UserPrompt(req parametric.UserFurnitureRequest, profile *culture.Profile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Event type: %s\n", req.EventType)
	fmt.Fprintf(&b, "Culture: %s\n", req.Culture)
	fmt.Fprintf(&b, "Guests: %d\n", req.GuestCount)
	fmt.Fprintf(&b, "Space: %.1fm wide, %.1fm deep, %.1fm high\n",
		req.SpaceDimensions.Width, req.SpaceDimensions.Depth, req.SpaceDimensions.Height)
	fmt.Fprintf(&b, "Budget: %s\n", req.BudgetRange)
	fmt.Fprintf(&b, "Formality: %s\n", req.FormalityLevel)
	if req.SpecialRequirements != "" {
		fmt.Fprintf(&b, "Special requirements: %s\n", req.SpecialRequirements)
	}
	fmt.Fprintf(&b, "\nPlanning hint: %s\n", EventHint(req.EventType))
	if profile != nil {
		b.WriteString("\nCultural guidance:\n")
		fmt.Fprintf(&b, "- preferred materials: %s\n", strings.Join(profile.Materials.Preferred, ", "))
		if len(profile.Materials.Avoided) > 0 {
			fmt.Fprintf(&b, "- avoid: %s\n", strings.Join(profile.Materials.Avoided, ", "))
		}
		fmt.Fprintf(&b, "- principles: %s\n", strings.Join(profile.Aesthetics.Principles, ", "))
		fmt.Fprintf(&b, "- signature elements: %s\n", strings.Join(profile.Elements, ", "))
		fmt.Fprintf(&b, "- seat height %.2f to %.2f m, table height %.2f to %.2f m\n",
			profile.Proportions.SeatHeight.Min, profile.Proportions.SeatHeight.Max,
			profile.Proportions.TableHeight.Min, profile.Proportions.TableHeight.Max)
	}
	return b.String()
}

// OptimizationPrompt asks for parameter overrides under constraints.
func OptimizationPrompt(base parametric.Parameters, c parametric.OptimizationConstraints) string {
	current, _ := json.Marshal(base)
	var b strings.Builder
	b.WriteString("Refine these furniture parameters for the constraints below. ")
	b.WriteString("Respond with a JSON object holding only the parameter keys you change.\n\n")
	fmt.Fprintf(&b, "Current parameters: %s\n", current)
	if c.Space != "" {
		fmt.Fprintf(&b, "Space: %s\n", c.Space)
	}
	if c.MaxWidth > 0 || c.MaxDepth > 0 {
		fmt.Fprintf(&b, "Footprint limit: %.2fm x %.2fm\n", c.MaxWidth, c.MaxDepth)
	}
	if c.Budget != "" {
		fmt.Fprintf(&b, "Budget: %s\n", c.Budget)
	}
	if c.Accessibility != "" {
		fmt.Fprintf(&b, "Accessibility: %s\n", c.Accessibility)
	}
	if c.Cultural != "" {
		fmt.Fprintf(&b, "Cultural: %s\n", c.Cultural)
	}
	return b.String()
}
