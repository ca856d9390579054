package culture

import (
	"github.com/saleemjadallah/visualz-backend-sub003/parametric"
)

// FloatRange is an inclusive interval in meters.
type FloatRange struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// Contains reports whether v lies in the interval.
func (r FloatRange) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Clamp bounds v to the interval.
func (r FloatRange) Clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Distance is how far v lies outside the interval, 0 when inside.
func (r FloatRange) Distance(v float64) float64 {
	if v < r.Min {
		return r.Min - v
	}
	if v > r.Max {
		return v - r.Max
	}
	return 0
}

// Proportions describes the dimensional habits of a culture.
type Proportions struct {
	SeatHeight  FloatRange `yaml:"seat_height" json:"seatHeight"`
	TableHeight FloatRange `yaml:"table_height" json:"tableHeight"`
	// Member thickness multiplier applied to legs, rails and frames.
	Mass float64 `yaml:"mass" json:"mass"`
	// Preferred width:depth ratio of table and seating footprints.
	Ratio float64 `yaml:"ratio" json:"ratio"`
}

// Materials groups the material vocabulary of a culture.
type Materials struct {
	Preferred   []string `yaml:"preferred" json:"preferred"`
	Traditional []string `yaml:"traditional" json:"traditional"`
	Avoided     []string `yaml:"avoided" json:"avoided"`
	Seasonal    []string `yaml:"seasonal" json:"seasonal"`
}

// Aesthetics describes color, pattern and ornament conventions.
type Aesthetics struct {
	Palette          []string           `yaml:"palette" json:"palette"`
	Patterns         []string           `yaml:"patterns" json:"patterns"`
	Principles       []string           `yaml:"principles" json:"principles"`
	Styles           []parametric.Style `yaml:"styles" json:"styles"`
	TypicalIntensity float64            `yaml:"typical_intensity" json:"typicalIntensity"`
}

// Ergonomics holds seating conventions.
type Ergonomics struct {
	FloorSeating   bool    `yaml:"floor_seating" json:"floorSeating"`
	BackrestAngle  float64 `yaml:"backrest_angle" json:"backrestAngle"`
	ArmrestsCommon bool    `yaml:"armrests_common" json:"armrestsCommon"`
}

// Profile is the design knowledge recorded for one culture.
type Profile struct {
	Culture     parametric.Culture `yaml:"culture" json:"culture"`
	Name        string             `yaml:"name" json:"name"`
	Description string             `yaml:"description" json:"description"`
	Proportions Proportions        `yaml:"proportions" json:"proportions"`
	Materials   Materials          `yaml:"materials" json:"materials"`
	Aesthetics  Aesthetics         `yaml:"aesthetics" json:"aesthetics"`
	Ergonomics  Ergonomics         `yaml:"ergonomics" json:"ergonomics"`
	Elements    []string           `yaml:"elements" json:"elements"`
	Craft       []string           `yaml:"craft_techniques" json:"craftTechniques"`
}

// IsAvoided reports whether the profile discourages a material.
func (p *Profile) IsAvoided(material string) bool {
	return contains(p.Materials.Avoided, material)
}

// IsTraditional reports whether a material is preferred or traditional.
func (p *Profile) IsTraditional(material string) bool {
	return contains(p.Materials.Preferred, material) || contains(p.Materials.Traditional, material)
}

// FitsStyle reports whether a style is among the culture's typical styles.
func (p *Profile) FitsStyle(s parametric.Style) bool {
	for _, st := range p.Aesthetics.Styles {
		if st == s {
			return true
		}
	}
	return false
}

// Economical returns the first preferred or traditional material that is not
// premium and not avoided, or "" when the vocabulary has none.
func (p *Profile) Economical(premium func(string) bool) string {
	for _, m := range append(append([]string{}, p.Materials.Preferred...), p.Materials.Traditional...) {
		if !premium(m) && !p.IsAvoided(m) {
			return m
		}
	}
	return ""
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
