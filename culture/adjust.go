package culture

import (
	"fmt"

	"github.com/saleemjadallah/visualz-backend-sub003/parametric"
)

// CheckCompatibility lists the conflicts between p and the profile.
func CheckCompatibility(p parametric.Parameters, profile *Profile) []string {
	if profile == nil {
		return nil
	}
	var issues []string
	if profile.IsAvoided(p.PrimaryMaterial) {
		issues = append(issues, fmt.Sprintf("primary material %s is avoided in %s design", p.PrimaryMaterial, profile.Culture))
	}
	if p.SecondaryMaterial != "" && profile.IsAvoided(p.SecondaryMaterial) {
		issues = append(issues, fmt.Sprintf("secondary material %s is avoided in %s design", p.SecondaryMaterial, profile.Culture))
	}
	if len(profile.Aesthetics.Styles) > 0 && !profile.FitsStyle(p.Style) {
		issues = append(issues, fmt.Sprintf("style %s is unusual for %s design", p.Style, profile.Culture))
	}
	return issues
}

// AdjustForAuthenticity replaces avoided materials with the culture's
// preferred ones and seeds traditional pieces with signature elements.
// The result is sanitized, and adjusting it again changes nothing.
func AdjustForAuthenticity(p parametric.Parameters, profile *Profile) parametric.Parameters {
	out := parametric.Sanitize(p)
	if profile == nil {
		return out
	}
	if profile.IsAvoided(out.PrimaryMaterial) {
		out.PrimaryMaterial = firstAllowed(profile, parametric.DefaultMaterial(out.Type, out.Culture))
	}
	if out.SecondaryMaterial != "" && profile.IsAvoided(out.SecondaryMaterial) {
		out.SecondaryMaterial = ""
	}
	if out.Style == parametric.StyleTraditional && len(out.CulturalElements) == 0 && len(profile.Elements) > 0 {
		n := 2
		if len(profile.Elements) < n {
			n = len(profile.Elements)
		}
		out.CulturalElements = append([]string(nil), profile.Elements[:n]...)
	}
	return parametric.Sanitize(out)
}

func firstAllowed(profile *Profile, fallback string) string {
	for _, m := range profile.Materials.Preferred {
		if !profile.IsAvoided(m) {
			return m
		}
	}
	if !profile.IsAvoided(fallback) {
		return fallback
	}
	return "oak"
}
