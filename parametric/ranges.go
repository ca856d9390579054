package parametric

// Range is an inclusive numeric interval with the value used when a field is missing.
type Range struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Default float64 `json:"default"`
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// TypeSpec holds the per-type dimensional limits in meters.
type TypeSpec struct {
	Width       Range
	Height      Range
	Depth       Range
	MaxCapacity int
}

var typeSpecs = map[FurnitureType]TypeSpec{
	TypeChair: {
		Width:       Range{0.35, 0.80, 0.48},
		Height:      Range{0.40, 1.20, 0.85},
		Depth:       Range{0.35, 0.80, 0.52},
		MaxCapacity: 1,
	},
	TypeBench: {
		Width:       Range{0.80, 3.00, 1.50},
		Height:      Range{0.35, 1.00, 0.45},
		Depth:       Range{0.30, 0.70, 0.40},
		MaxCapacity: 6,
	},
	TypeSofa: {
		Width:       Range{1.20, 3.50, 2.10},
		Height:      Range{0.60, 1.10, 0.85},
		Depth:       Range{0.70, 1.20, 0.90},
		MaxCapacity: 5,
	},
	TypeDiningTable: {
		Width:       Range{0.60, 4.00, 1.80},
		Height:      Range{0.30, 0.80, 0.75},
		Depth:       Range{0.60, 1.50, 0.90},
		MaxCapacity: 24,
	},
	TypeCoffeeTable: {
		Width:       Range{0.50, 1.80, 1.10},
		Height:      Range{0.25, 0.55, 0.42},
		Depth:       Range{0.40, 1.00, 0.60},
		MaxCapacity: 8,
	},
	TypeLighting: {
		Width:       Range{0.10, 1.50, 0.40},
		Height:      Range{0.20, 2.50, 1.60},
		Depth:       Range{0.10, 1.50, 0.40},
		MaxCapacity: 1,
	},
	TypeSecuritySystem: {
		Width:       Range{0.10, 10.0, 2.00},
		Height:      Range{0.10, 3.00, 2.20},
		Depth:       Range{0.10, 10.0, 2.00},
		MaxCapacity: 1,
	},
	TypeInteractiveExperience: {
		Width:       Range{0.50, 10.0, 3.00},
		Height:      Range{0.50, 4.00, 2.40},
		Depth:       Range{0.50, 10.0, 3.00},
		MaxCapacity: 200,
	},
}

// SpecFor returns the dimensional limits of a type. Unknown types use the chair spec.
func SpecFor(t FurnitureType) TypeSpec {
	if s, ok := typeSpecs[t]; ok {
		return s
	}
	return typeSpecs[TypeChair]
}

// DecorativeRange bounds DecorativeIntensity.
var DecorativeRange = Range{Min: 0, Max: 1, Default: 0.5}

// Limits on free-text collections.
const (
	MaxCulturalElements   = 12
	MaxCulturalElementLen = 64
	MaxPaletteColors      = 8
	MaxColorLen           = 32
)
