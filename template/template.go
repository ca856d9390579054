package template

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/saleemjadallah/visualz-backend-sub003/culture"
	"github.com/saleemjadallah/visualz-backend-sub003/material"
	"github.com/saleemjadallah/visualz-backend-sub003/parametric"
	"github.com/saleemjadallah/visualz-backend-sub003/scene"
	"github.com/saleemjadallah/visualz-backend-sub003/types"
)

// Template generates geometry and metadata for one furniture type.
type Template interface {
	Type() parametric.FurnitureType
	GenerateGeometry(p parametric.Parameters) (*scene.Geometry, error)
	GenerateMetadata(p parametric.Parameters) Metadata
	CulturalProportions(c parametric.Culture) culture.Proportions
	ValidateParameters(p parametric.Parameters) bool
}

// Metadata describes a generated piece.
type Metadata struct {
	ID               string                   `json:"id"`
	Name             string                   `json:"name"`
	Type             parametric.FurnitureType `json:"type"`
	Culture          parametric.Culture       `json:"culture"`
	Description      string                   `json:"description"`
	Dimensions       scene.Vec3               `json:"dimensions"`
	EstimatedCost    float64                  `json:"estimatedCost"`
	AssemblyMinutes  int                      `json:"assemblyMinutes"`
	Capacity         int                      `json:"capacity"`
	Materials        []string                 `json:"materials"`
	CulturalElements []string                 `json:"culturalElements"`
	CraftTechniques  []string                 `json:"craftTechniques"`
	Tags             []string                 `json:"tags"`
	CreatedAt        time.Time                `json:"createdAt"`
}

// buildFunc produces the geometry of a sanitized parameter set.
type buildFunc func(p parametric.Parameters, profile *culture.Profile) *scene.Geometry

type furnitureTemplate struct {
	kind      parametric.FurnitureType
	name      string
	basePrice float64
	assembly  int
	db        culture.Database
	build     buildFunc
}

func (t *furnitureTemplate) Type() parametric.FurnitureType { return t.kind }

func (t *furnitureTemplate) CulturalProportions(c parametric.Culture) culture.Proportions {
	return culture.ProfileOrModern(t.db, c).Proportions
}

// ValidateParameters accepts only sanitized parameters of the template's type.
func (t *furnitureTemplate) ValidateParameters(p parametric.Parameters) bool {
	return p.Type == t.kind && len(parametric.Validate(p)) == 0
}

func (t *furnitureTemplate) GenerateGeometry(p parametric.Parameters) (*scene.Geometry, error) {
	if !t.ValidateParameters(p) {
		return nil, types.Errorf(types.ErrInvalidParameters, "%s template rejected parameters: %v", t.kind, parametric.Validate(p))
	}
	return t.build(p, culture.ProfileOrModern(t.db, p.Culture)), nil
}

func (t *furnitureTemplate) GenerateMetadata(p parametric.Parameters) Metadata {
	profile := culture.ProfileOrModern(t.db, p.Culture)

	mats := []string{p.PrimaryMaterial}
	if p.SecondaryMaterial != "" {
		mats = append(mats, p.SecondaryMaterial)
	}
	capacity := 1
	if p.Capacity != nil {
		capacity = *p.Capacity
	} else if p.Type.IsSeating() || p.Type.IsTable() || p.Type == parametric.TypeInteractiveExperience {
		capacity = DefaultCapacity(p)
	}

	return Metadata{
		ID:               uuid.NewString(),
		Name:             displayName(profile, p, t.name),
		Type:             t.kind,
		Culture:          p.Culture,
		Description:      describe(t.name, p, profile),
		Dimensions:       scene.Vec3{X: p.Width, Y: p.Height, Z: p.Depth},
		EstimatedCost:    EstimateCost(t.basePrice, p),
		AssemblyMinutes:  t.assembly + 15*p.CraftsmanshipLevel.Rank(),
		Capacity:         capacity,
		Materials:        mats,
		CulturalElements: append([]string(nil), p.CulturalElements...),
		CraftTechniques:  append([]string(nil), profile.Craft...),
		Tags:             []string{string(p.Type), string(p.Culture), string(p.Style), string(p.Formality)},
		CreatedAt:        time.Now().UTC(),
	}
}

// EstimateCost prices a piece from its type base price, material, craft,
// size and ornament. The result is always positive.
func EstimateCost(basePrice float64, p parametric.Parameters) float64 {
	matFactor := material.CostMultiplier(p.PrimaryMaterial)
	if p.SecondaryMaterial != "" {
		matFactor = 0.7*matFactor + 0.3*material.CostMultiplier(p.SecondaryMaterial)
	}
	craftFactor := []float64{1, 1.6, 2.5}[p.CraftsmanshipLevel.Rank()]

	spec := parametric.SpecFor(p.Type)
	defVolume := spec.Width.Default * spec.Height.Default * spec.Depth.Default
	sizeFactor := math.Sqrt(p.Width * p.Height * p.Depth / defVolume)
	sizeFactor = math.Max(0.5, math.Min(3, sizeFactor))

	cost := basePrice * matFactor * craftFactor * sizeFactor * (1 + 0.3*p.DecorativeIntensity)
	return math.Max(1, math.Round(cost*100)/100)
}

// DefaultCapacity derives capacity from the footprint when none is given.
func DefaultCapacity(p parametric.Parameters) int {
	limit := parametric.SpecFor(p.Type).MaxCapacity
	var n int
	switch {
	case p.Type == parametric.TypeChair:
		n = 1
	case p.Type.IsSeating():
		n = int(p.Width / 0.6)
	case p.Type == parametric.TypeDiningTable:
		n = 2*int(p.Width/0.6) + 2*int(p.Depth/0.9)
	case p.Type == parametric.TypeCoffeeTable:
		n = 2 * int(p.Width/0.5)
	case p.Type == parametric.TypeInteractiveExperience:
		n = int(p.Width * p.Depth / 1.5)
	default:
		n = 1
	}
	if n < 1 {
		n = 1
	}
	if n > limit {
		n = limit
	}
	return n
}

func describe(name string, p parametric.Parameters, profile *culture.Profile) string {
	d := fmt.Sprintf("A %s %s in %s", p.Formality, name, p.PrimaryMaterial)
	if p.SecondaryMaterial != "" {
		d += " and " + p.SecondaryMaterial
	}
	d += fmt.Sprintf(", %.2f x %.2f x %.2f m", p.Width, p.Depth, p.Height)
	if len(profile.Aesthetics.Principles) > 0 {
		d += ", following " + profile.Aesthetics.Principles[0]
	}
	return d
}

func displayName(profile *culture.Profile, p parametric.Parameters, name string) string {
	prefix := profile.Name
	if prefix == "" {
		prefix = string(p.Culture)
	}
	return fmt.Sprintf("%s %s %s", prefix, p.Style, name)
}
