package parametric

// Materials is the closed set of material identifiers a parameter set may name.
var Materials = []string{
	"oak", "walnut", "maple", "pine", "teak", "bamboo", "hinoki", "cedar",
	"rattan", "linen", "cotton", "silk", "wool", "leather", "velvet",
	"brass", "steel", "aluminum", "marble", "stone", "glass", "ceramic",
	"washi-paper", "acrylic",
}

var materialSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Materials))
	for _, id := range Materials {
		m[id] = struct{}{}
	}
	return m
}()

var materialAliases = map[string]string{
	"wood":       "oak",
	"hardwood":   "walnut",
	"metal":      "steel",
	"iron":       "steel",
	"gold":       "brass",
	"paper":      "washi-paper",
	"washi":      "washi-paper",
	"fabric":     "linen",
	"textile":    "cotton",
	"cane":       "rattan",
	"wicker":     "rattan",
	"granite":    "stone",
	"porcelain":  "ceramic",
	"plexiglass": "acrylic",
	"aluminium":  "aluminum",
}

// IsKnownMaterial reports whether id is in the material closed set.
func IsKnownMaterial(id string) bool {
	_, ok := materialSet[id]
	return ok
}

// NormalizeMaterial canonicalizes a material name and resolves aliases.
// The second return value is false when the name is not recognized.
func NormalizeMaterial(name string) (string, bool) {
	key := canonical(name)
	if alias, ok := materialAliases[key]; ok {
		key = alias
	}
	if IsKnownMaterial(key) {
		return key, true
	}
	return "", false
}

type cultureDefaults struct {
	material string
	palette  []string
}

var cultureDefaultTable = map[Culture]cultureDefaults{
	CultureJapanese:     {"hinoki", []string{"#f5f0e6", "#8b5a2b", "#2f2f2f", "#c0392b"}},
	CultureScandinavian: {"oak", []string{"#ffffff", "#d9cbb5", "#6b8e9f", "#2e2e2e"}},
	CultureItalian:      {"walnut", []string{"#8b0000", "#d4af37", "#f5f5dc", "#3e2723"}},
	CultureFrench:       {"oak", []string{"#f8f4e3", "#c9a96e", "#4a5d7e", "#b76e79"}},
	CultureMexican:      {"cedar", []string{"#e63946", "#f4a261", "#2a9d8f", "#264653"}},
	CultureModern:       {"steel", []string{"#ffffff", "#1f1f1f", "#9e9e9e", "#3f51b5"}},
}

// DefaultMaterial is the material substituted for a missing or unknown primary material.
func DefaultMaterial(t FurnitureType, c Culture) string {
	if t == TypeSecuritySystem {
		return "aluminum"
	}
	if d, ok := cultureDefaultTable[c]; ok {
		return d.material
	}
	return "oak"
}

// DefaultPalette is the palette substituted for a missing or empty color palette.
func DefaultPalette(c Culture) []string {
	d, ok := cultureDefaultTable[c]
	if !ok {
		d = cultureDefaultTable[CultureModern]
	}
	return append([]string(nil), d.palette...)
}

// DefaultDecorativeIntensity derives decorative intensity from formality and
// craftsmanship. Real-time tuning uses it to re-derive the field.
func DefaultDecorativeIntensity(f Formality, c Craftsmanship) float64 {
	base := 0.5
	switch f {
	case FormalityCasual:
		base = 0.3
	case FormalitySemiFormal:
		base = 0.45
	case FormalityFormal:
		base = 0.6
	case FormalityCeremonial:
		base = 0.75
	}
	return roundTo(clampFloat(base+0.1*float64(c.Rank()), DecorativeRange), 100)
}
