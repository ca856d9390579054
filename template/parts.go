package template

import (
	"fmt"
	"math"

	"github.com/saleemjadallah/visualz-backend-sub003/culture"
	"github.com/saleemjadallah/visualz-backend-sub003/material"
	"github.com/saleemjadallah/visualz-backend-sub003/parametric"
	"github.com/saleemjadallah/visualz-backend-sub003/scene"
)

const (
	primary   = material.SlotPrimary
	secondary = material.SlotSecondary
	accent    = material.SlotAccent
)

// detail is the radial resolution of round parts.
func detail(p parametric.Parameters) int {
	return 8 + 4*p.CraftsmanshipLevel.Rank()
}

// member is the cross-section of legs, rails and posts.
func member(profile *culture.Profile) float64 {
	return 0.035 * profile.Proportions.Mass
}

// Turned legs for ornate and traditional work, square stock otherwise.
func roundLegs(p parametric.Parameters) bool {
	return p.Style == parametric.StyleOrnate || p.Style == parametric.StyleTraditional || p.Style == parametric.StyleRustic
}

func seatHeight(p parametric.Parameters, profile *culture.Profile) float64 {
	h := profile.Proportions.SeatHeight.Clamp(p.Height * 0.53)
	switch p.ErgonomicProfile {
	case parametric.ErgonomicAccessible:
		h = math.Max(h, 0.46)
	case parametric.ErgonomicPetite:
		h *= 0.93
	case parametric.ErgonomicTall:
		h *= 1.05
	}
	return math.Min(h, p.Height-0.05)
}

func armrests(p parametric.Parameters, profile *culture.Profile) bool {
	return profile.Ergonomics.ArmrestsCommon || p.ErgonomicProfile == parametric.ErgonomicAccessible
}

func leg(size, h float64, round bool, segments int) *scene.Mesh {
	if round {
		return scene.Cylinder(size/2, h, segments, primary)
	}
	return scene.Box(size, h, size, primary)
}

// legs places four legs inside the corners of a w x d footprint.
func legs(name string, w, d, h, size float64, round bool, segments int) *scene.Node {
	x, z := w/2-size, d/2-size
	corners := [4][2]float64{{-x, -z}, {x, -z}, {x, z}, {-x, z}}
	g := scene.Group(name+"s", scene.Vec3{})
	for i, c := range corners {
		g.Children = append(g.Children, scene.Part(fmt.Sprintf("%s-%d", name, i), scene.Vec3{X: c[0], Z: c[1]}, leg(size, h, round, segments)))
	}
	return g
}

// spread returns n evenly spaced offsets across span, centered on zero.
func spread(n int, span float64) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	step := span / float64(n)
	for i := range out {
		out[i] = -span/2 + step*(float64(i)+0.5)
	}
	return out
}

// ornamentCount grows with decorative intensity and the number of cultural
// elements, and never exceeds limit.
func ornamentCount(p parametric.Parameters, limit int) int {
	n := int(math.Round(p.DecorativeIntensity*float64(limit))) + len(p.CulturalElements)
	if n > limit {
		n = limit
	}
	return n
}

// addOrnaments places accent details along the top edge at height y.
func addOrnaments(g *scene.Geometry, p parametric.Parameters, y, span float64, limit int) {
	n := ornamentCount(p, limit)
	if n == 0 {
		return
	}
	size := 0.015 + 0.015*p.DecorativeIntensity
	group := scene.Group("ornaments", scene.Vec3{Y: y})
	for i, x := range spread(n, span) {
		var mesh *scene.Mesh
		if p.Style == parametric.StyleOrnate || p.Style == parametric.StyleTraditional {
			mesh = scene.Sphere(size, detail(p), accent)
		} else {
			mesh = scene.Box(size*2, size, size*2, accent)
		}
		group.Children = append(group.Children, scene.Part(fmt.Sprintf("ornament-%d", i), scene.Vec3{X: x}, mesh))
	}
	g.Add(group)
}

func capacityOf(p parametric.Parameters) int {
	if p.Capacity != nil {
		return *p.Capacity
	}
	return DefaultCapacity(p)
}
