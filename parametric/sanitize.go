package parametric

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

var typeAliases = map[string]FurnitureType{
	"seat":         TypeChair,
	"seating":      TypeChair,
	"dining-chair": TypeChair,
	"armchair":     TypeChair,
	"table":        TypeDiningTable,
	"dinner-table": TypeDiningTable,
	"low-table":    TypeCoffeeTable,
	"side-table":   TypeCoffeeTable,
	"couch":        TypeSofa,
	"loveseat":     TypeSofa,
	"lamp":         TypeLighting,
	"light":        TypeLighting,
	"lantern":      TypeLighting,
	"security":     TypeSecuritySystem,
	"experience":   TypeInteractiveExperience,
	"interactive":  TypeInteractiveExperience,
	"installation": TypeInteractiveExperience,
}

// NormalizeType resolves a free-form type name. Unknown names map to chair.
func NormalizeType(s string) FurnitureType {
	t, _ := ParseType(s)
	return t
}

// ParseType resolves a type name and reports whether it was recognized.
func ParseType(s string) (FurnitureType, bool) {
	key := canonical(s)
	if t, ok := typeAliases[key]; ok {
		return t, true
	}
	for _, t := range FurnitureTypes {
		if string(t) == key {
			return t, true
		}
	}
	return TypeChair, false
}

// NormalizeCulture resolves a culture name. Unknown names map to modern.
func NormalizeCulture(s string) Culture {
	return pickEnum(canonical(s), Cultures, CultureModern)
}

// NormalizeFormality resolves a formality name. Unknown names map to semi-formal.
func NormalizeFormality(s string) Formality {
	key := canonical(s)
	if key == "semiformal" {
		key = string(FormalitySemiFormal)
	}
	return pickEnum(key, Formalities, FormalitySemiFormal)
}

// Sanitize returns a copy of p in which every field satisfies the schema:
// enums are replaced by their documented default when unrecognized, numbers
// are clamped into range, missing values are filled with type defaults and
// collections are normalized. Sanitize is idempotent.
func Sanitize(p Parameters) Parameters {
	out := Parameters{}
	out.Type = NormalizeType(string(p.Type))
	out.Culture = NormalizeCulture(string(p.Culture))

	spec := SpecFor(out.Type)
	out.Width = clampDimension(p.Width, spec.Width)
	out.Height = clampDimension(p.Height, spec.Height)
	out.Depth = clampDimension(p.Depth, spec.Depth)

	out.Style = pickEnum(canonical(string(p.Style)), Styles, StyleContemporary)
	out.Formality = NormalizeFormality(string(p.Formality))
	out.ErgonomicProfile = pickEnum(canonical(string(p.ErgonomicProfile)), ErgonomicProfiles, ErgonomicStandard)
	out.CraftsmanshipLevel = pickEnum(canonical(string(p.CraftsmanshipLevel)), CraftsmanshipLevels, CraftStandard)

	if m, ok := NormalizeMaterial(p.PrimaryMaterial); ok {
		out.PrimaryMaterial = m
	} else {
		out.PrimaryMaterial = DefaultMaterial(out.Type, out.Culture)
	}
	if m, ok := NormalizeMaterial(p.SecondaryMaterial); ok && m != out.PrimaryMaterial {
		out.SecondaryMaterial = m
	}

	out.CulturalElements = normalizeElements(p.CulturalElements)
	out.ColorPalette = normalizePalette(p.ColorPalette)
	if len(out.ColorPalette) == 0 {
		out.ColorPalette = DefaultPalette(out.Culture)
	}

	if p.Capacity != nil {
		c := *p.Capacity
		if c < 1 {
			c = 1
		}
		if c > spec.MaxCapacity {
			c = spec.MaxCapacity
		}
		out.Capacity = &c
	}

	if math.IsNaN(p.DecorativeIntensity) {
		out.DecorativeIntensity = DecorativeRange.Default
	} else {
		out.DecorativeIntensity = roundTo(clampFloat(p.DecorativeIntensity, DecorativeRange), 100)
	}
	return out
}

// SanitizeMap converts untrusted key/value data, typically decoded from an
// AI response, into trusted Parameters. Both camelCase and snake_case keys
// are accepted, numeric strings are parsed, and a scalar string where a list
// is expected becomes a single-element list.
func SanitizeMap(raw map[string]any) Parameters {
	var p Parameters
	p.Type = FurnitureType(stringField(raw, "type", "furniture_type", "furnitureType"))
	p.Culture = Culture(stringField(raw, "culture"))
	p.Width = floatField(raw, "width")
	p.Height = floatField(raw, "height")
	p.Depth = floatField(raw, "depth")
	p.Style = Style(stringField(raw, "style"))
	p.Formality = Formality(stringField(raw, "formality", "formality_level", "formalityLevel"))
	p.PrimaryMaterial = stringField(raw, "primaryMaterial", "primary_material")
	p.SecondaryMaterial = stringField(raw, "secondaryMaterial", "secondary_material")
	p.CulturalElements = stringSliceField(raw, "culturalElements", "cultural_elements")
	p.ErgonomicProfile = ErgonomicProfile(stringField(raw, "ergonomicProfile", "ergonomic_profile"))
	p.ColorPalette = stringSliceField(raw, "colorPalette", "color_palette")
	p.CraftsmanshipLevel = Craftsmanship(stringField(raw, "craftsmanshipLevel", "craftsmanship_level"))

	if v, ok := lookup(raw, "capacity"); ok {
		if f, ok := toFloat(v); ok {
			c := int(math.Round(clampFinite(f)))
			p.Capacity = &c
		}
	}
	p.DecorativeIntensity = DecorativeRange.Default
	if v, ok := lookup(raw, "decorativeIntensity", "decorative_intensity"); ok {
		if f, ok := toFloat(v); ok {
			p.DecorativeIntensity = f
		}
	}
	return Sanitize(p)
}

// ToMap renders p with the camelCase keys SanitizeMap accepts.
func ToMap(p Parameters) map[string]any {
	data, _ := json.Marshal(p)
	out := map[string]any{}
	_ = json.Unmarshal(data, &out)
	return out
}

// Validate lists the schema violations in p without repairing them.
func Validate(p Parameters) []string {
	fixed := Sanitize(p)
	var issues []string
	check := func(name string, ok bool) {
		if !ok {
			issues = append(issues, name+" invalid")
		}
	}
	check("type", fixed.Type == p.Type)
	if fixed.Type != p.Type {
		// dimensional limits depend on the type
		return issues
	}
	spec := SpecFor(p.Type)
	check("culture", fixed.Culture == p.Culture)
	check("width", spec.Width.Contains(p.Width))
	check("height", spec.Height.Contains(p.Height))
	check("depth", spec.Depth.Contains(p.Depth))
	check("style", fixed.Style == p.Style)
	check("formality", fixed.Formality == p.Formality)
	check("primaryMaterial", fixed.PrimaryMaterial == p.PrimaryMaterial)
	check("secondaryMaterial", fixed.SecondaryMaterial == p.SecondaryMaterial)
	check("ergonomicProfile", fixed.ErgonomicProfile == p.ErgonomicProfile)
	check("craftsmanshipLevel", fixed.CraftsmanshipLevel == p.CraftsmanshipLevel)
	check("colorPalette", len(p.ColorPalette) > 0)
	check("decorativeIntensity", DecorativeRange.Contains(p.DecorativeIntensity))
	if p.Capacity != nil {
		check("capacity", *p.Capacity >= 1 && *p.Capacity <= spec.MaxCapacity)
	}
	return issues
}

func clampDimension(v float64, r Range) float64 {
	if v == 0 || math.IsNaN(v) {
		return r.Default
	}
	return roundTo(clampFloat(v, r), 1000)
}

func clampFloat(v float64, r Range) float64 {
	if math.IsNaN(v) {
		return r.Default
	}
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

func clampFinite(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v > 1e6:
		return 1e6
	case v < -1e6:
		return -1e6
	}
	return v
}

func roundTo(v, scale float64) float64 {
	return math.Round(v*scale) / scale
}

func pickEnum[T ~string](key string, allowed []T, def T) T {
	for _, a := range allowed {
		if string(a) == key {
			return a
		}
	}
	return def
}

// canonical lowercases and hyphenates a free-form identifier.
func canonical(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("_", "-", " ", "-").Replace(s)
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return strings.Trim(s, "-")
}

func normalizeElements(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, e := range in {
		e = truncateRunes(strings.TrimSpace(e), MaxCulturalElementLen)
		if e == "" {
			continue
		}
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	sort.Strings(out)
	if len(out) > MaxCulturalElements {
		out = out[:MaxCulturalElements]
	}
	return out
}

func normalizePalette(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, c := range in {
		c = truncateRunes(strings.ToLower(strings.TrimSpace(c)), MaxColorLen)
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
		if len(out) == MaxPaletteColors {
			break
		}
	}
	return out
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:n]))
}

func lookup(raw map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func stringField(raw map[string]any, keys ...string) string {
	v, ok := lookup(raw, keys...)
	if !ok {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case []any:
		if len(s) > 0 {
			if first, ok := s[0].(string); ok {
				return first
			}
		}
	}
	return ""
}

func floatField(raw map[string]any, keys ...string) float64 {
	v, ok := lookup(raw, keys...)
	if !ok {
		return 0
	}
	f, ok := toFloat(v)
	if !ok {
		return 0
	}
	return f
}

func stringSliceField(raw map[string]any, keys ...string) []string {
	v, ok := lookup(raw, keys...)
	if !ok {
		return nil
	}
	switch s := v.(type) {
	case string:
		return []string{s}
	case []string:
		return append([]string(nil), s...)
	case []any:
		out := make([]string, 0, len(s))
		for _, item := range s {
			switch x := item.(type) {
			case string:
				out = append(out, x)
			case float64, int, json.Number:
				if f, ok := toFloat(x); ok {
					out = append(out, strconv.FormatFloat(f, 'f', -1, 64))
				}
			}
		}
		return out
	}
	return nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

var keyAliases = map[string]string{
	"formalityLevel": "formality",
	"furnitureType":  "type",
}

// CanonicalKey maps snake_case and alias keys onto the camelCase keys of ToMap.
func CanonicalKey(k string) string {
	parts := strings.Split(k, "_")
	for i := 1; i < len(parts); i++ {
		if parts[i] != "" {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	key := strings.Join(parts, "")
	if alias, ok := keyAliases[key]; ok {
		return alias
	}
	return key
}

// Merge applies overrides onto p and sanitizes the result. Override keys may
// use either naming convention; keys listed in locked are ignored.
func Merge(p Parameters, overrides map[string]any, locked ...string) Parameters {
	merged := ToMap(p)
	for k, v := range overrides {
		key := CanonicalKey(k)
		if containsKey(locked, key) {
			continue
		}
		merged[key] = v
	}
	return SanitizeMap(merged)
}

func containsKey(keys []string, k string) bool {
	for _, x := range keys {
		if x == k {
			return true
		}
	}
	return false
}
