package material

// Category groups materials with similar surface behaviour.
type Category string

const (
	CategoryWood    Category = "wood"
	CategoryFiber   Category = "fiber"
	CategoryTextile Category = "textile"
	CategoryLeather Category = "leather"
	CategoryMetal   Category = "metal"
	CategoryStone   Category = "stone"
	CategoryGlass   Category = "glass"
	CategoryCeramic Category = "ceramic"
	CategoryPaper   Category = "paper"
	CategoryPolymer Category = "polymer"
)

// Definition is a catalog entry.
type Definition struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Category       Category `json:"category"`
	BaseColor      string   `json:"baseColor"`
	Roughness      float64  `json:"roughness"`
	Metalness      float64  `json:"metalness"`
	CostMultiplier float64  `json:"costMultiplier"`
	Premium        bool     `json:"premium"`
}

// Takes palette color instead of its natural color.
func (d Definition) dyeable() bool {
	switch d.Category {
	case CategoryTextile, CategoryLeather, CategoryPolymer, CategoryCeramic, CategoryPaper:
		return true
	}
	return false
}

var catalog = []Definition{
	{"oak", "Oak", CategoryWood, "#c19a6b", 0.65, 0, 1.0, false},
	{"walnut", "Walnut", CategoryWood, "#5d432c", 0.55, 0, 1.8, true},
	{"maple", "Maple", CategoryWood, "#e3c99a", 0.6, 0, 1.1, false},
	{"pine", "Pine", CategoryWood, "#e6c88f", 0.7, 0, 0.7, false},
	{"teak", "Teak", CategoryWood, "#b5835a", 0.5, 0, 2.0, true},
	{"bamboo", "Bamboo", CategoryFiber, "#d8c27a", 0.6, 0, 0.6, false},
	{"hinoki", "Hinoki Cypress", CategoryWood, "#f0dcb4", 0.55, 0, 1.9, true},
	{"cedar", "Cedar", CategoryWood, "#a0522d", 0.65, 0, 0.9, false},
	{"rattan", "Rattan", CategoryFiber, "#c8a165", 0.75, 0, 0.8, false},
	{"linen", "Linen", CategoryTextile, "#e9e4d4", 0.9, 0, 0.8, false},
	{"cotton", "Cotton", CategoryTextile, "#f5f5f0", 0.9, 0, 0.6, false},
	{"silk", "Silk", CategoryTextile, "#f3ead3", 0.35, 0, 2.4, true},
	{"wool", "Wool", CategoryTextile, "#e0d8c8", 0.95, 0, 1.0, false},
	{"leather", "Leather", CategoryLeather, "#6f4e37", 0.45, 0, 2.2, true},
	{"velvet", "Velvet", CategoryTextile, "#7b1e3c", 0.8, 0, 1.9, true},
	{"brass", "Brass", CategoryMetal, "#b5a642", 0.3, 1, 2.1, true},
	{"steel", "Steel", CategoryMetal, "#8a8d8f", 0.35, 1, 0.9, false},
	{"aluminum", "Aluminum", CategoryMetal, "#c0c4c8", 0.4, 1, 0.8, false},
	{"marble", "Marble", CategoryStone, "#eeeae2", 0.2, 0, 2.6, true},
	{"stone", "Stone", CategoryStone, "#8c8680", 0.8, 0, 1.3, false},
	{"glass", "Glass", CategoryGlass, "#e8f4f8", 0.05, 0, 1.2, false},
	{"ceramic", "Ceramic", CategoryCeramic, "#f2efe9", 0.3, 0, 1.1, false},
	{"washi-paper", "Washi Paper", CategoryPaper, "#f7f3e8", 0.85, 0, 0.5, false},
	{"acrylic", "Acrylic", CategoryPolymer, "#ffffff", 0.1, 0, 0.7, false},
}

var catalogIndex = func() map[string]Definition {
	m := make(map[string]Definition, len(catalog))
	for _, d := range catalog {
		m[d.ID] = d
	}
	return m
}()

// Neutral is returned for material types outside the catalog.
var Neutral = Definition{
	ID:             "neutral",
	Name:           "Neutral",
	Category:       CategoryPolymer,
	BaseColor:      "#b0b0b0",
	Roughness:      0.7,
	Metalness:      0,
	CostMultiplier: 1,
}

// Lookup finds a catalog entry by id.
func Lookup(id string) (Definition, bool) {
	d, ok := catalogIndex[id]
	return d, ok
}

// Catalog returns a copy of every catalog entry.
func Catalog() []Definition {
	return append([]Definition(nil), catalog...)
}

// IsPremium reports whether id names a premium material.
func IsPremium(id string) bool {
	return catalogIndex[id].Premium
}

// CostMultiplier of id, 1 for unknown ids.
func CostMultiplier(id string) float64 {
	if d, ok := catalogIndex[id]; ok {
		return d.CostMultiplier
	}
	return 1
}
