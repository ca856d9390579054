package template

import (
	"fmt"
	"math"

	"github.com/saleemjadallah/visualz-backend-sub003/culture"
	"github.com/saleemjadallah/visualz-backend-sub003/parametric"
	"github.com/saleemjadallah/visualz-backend-sub003/scene"
)

// Chair returns the chair template.
func Chair(db culture.Database) Template {
	return &furnitureTemplate{kind: parametric.TypeChair, name: "chair", basePrice: 120, assembly: 20, db: db, build: buildChair}
}

// Bench returns the bench template.
func Bench(db culture.Database) Template {
	return &furnitureTemplate{kind: parametric.TypeBench, name: "bench", basePrice: 260, assembly: 30, db: db, build: buildBench}
}

// Sofa returns the sofa template.
func Sofa(db culture.Database) Template {
	return &furnitureTemplate{kind: parametric.TypeSofa, name: "sofa", basePrice: 900, assembly: 45, db: db, build: buildSofa}
}

func buildChair(p parametric.Parameters, profile *culture.Profile) *scene.Geometry {
	g := scene.New("chair")
	m := member(profile)
	t := 0.04 * profile.Proportions.Mass
	sh := seatHeight(p, profile)

	g.Add(legs("leg", p.Width, p.Depth, sh-t, m, roundLegs(p), detail(p)))
	g.Add(scene.Part("seat", scene.Vec3{Y: sh - t}, scene.Box(p.Width, t, p.Depth, primary)))
	if p.SecondaryMaterial != "" {
		g.Add(scene.Part("cushion", scene.Vec3{Y: sh}, scene.Box(p.Width-2*m, 0.03, p.Depth-2*m, secondary)))
	}
	g.Add(scene.Part("backrest", scene.Vec3{Y: sh, Z: -p.Depth/2 + t/2}, scene.Box(p.Width, p.Height-sh, t, primary)))

	if armrests(p, profile) {
		armH := math.Min(0.22, p.Height-sh)
		for i, x := range []float64{-p.Width/2 + m/2, p.Width/2 - m/2} {
			g.Add(scene.Part(fmt.Sprintf("armrest-%d", i), scene.Vec3{X: x, Y: sh}, scene.Box(m, armH, p.Depth, primary)))
		}
	}
	addOrnaments(g, p, p.Height, p.Width, 4)
	return g
}

func buildBench(p parametric.Parameters, profile *culture.Profile) *scene.Geometry {
	g := scene.New("bench")
	m := member(profile)
	t := 0.05 * profile.Proportions.Mass
	sh := seatHeight(p, profile)

	g.Add(legs("leg", p.Width, p.Depth, sh-t, m, roundLegs(p), detail(p)))
	if p.Width > 1.8 {
		// centre support for long spans
		g.Add(scene.Part("center-leg", scene.Vec3{}, leg(m, sh-t, roundLegs(p), detail(p))))
	}
	g.Add(scene.Part("seat", scene.Vec3{Y: sh - t}, scene.Box(p.Width, t, p.Depth, primary)))

	if p.SecondaryMaterial != "" {
		n := capacityOf(p)
		for i, x := range spread(n, p.Width) {
			g.Add(scene.Part(fmt.Sprintf("cushion-%d", i), scene.Vec3{X: x, Y: sh}, scene.Box(p.Width/float64(n)-0.02, 0.03, p.Depth-2*m, secondary)))
		}
	}
	if back := p.Height - sh; back > 0.2 {
		g.Add(scene.Part("backrest", scene.Vec3{Y: sh, Z: -p.Depth/2 + t/2}, scene.Box(p.Width, back, t, primary)))
	}
	addOrnaments(g, p, p.Height, p.Width, 6)
	return g
}

func buildSofa(p parametric.Parameters, profile *culture.Profile) *scene.Geometry {
	g := scene.New("sofa")
	m := member(profile)
	feet := 0.08
	arm := 0.12 * profile.Proportions.Mass
	base := math.Max(0.1, seatHeight(p, profile)-feet-0.12)
	upholstery := secondary
	if p.SecondaryMaterial == "" {
		upholstery = primary
	}

	g.Add(legs("foot", p.Width, p.Depth, feet, m*1.2, true, detail(p)))
	g.Add(scene.Part("base", scene.Vec3{Y: feet}, scene.Box(p.Width, base, p.Depth, primary)))

	n := capacityOf(p)
	inner := p.Width - 2*arm
	seatY := feet + base
	for i, x := range spread(n, inner) {
		g.Add(scene.Part(fmt.Sprintf("seat-cushion-%d", i), scene.Vec3{X: x, Y: seatY}, scene.Box(inner/float64(n)-0.01, 0.12, p.Depth-0.2, upholstery)))
		g.Add(scene.Part(fmt.Sprintf("back-cushion-%d", i), scene.Vec3{X: x, Y: seatY + 0.12, Z: -p.Depth/2 + 0.15}, scene.Box(inner/float64(n)-0.01, (p.Height-seatY-0.12)*0.8, 0.15, upholstery)))
	}
	g.Add(scene.Part("back", scene.Vec3{Y: feet, Z: -p.Depth/2 + 0.05}, scene.Box(p.Width, p.Height-feet, 0.1, primary)))
	armH := math.Min(p.Height-feet, base+0.35)
	for i, x := range []float64{-p.Width/2 + arm/2, p.Width/2 - arm/2} {
		g.Add(scene.Part(fmt.Sprintf("arm-%d", i), scene.Vec3{X: x, Y: feet}, scene.Box(arm, armH, p.Depth, primary)))
	}
	addOrnaments(g, p, p.Height, p.Width, 6)
	return g
}
