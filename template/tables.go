package template

import (
	"fmt"

	"github.com/saleemjadallah/visualz-backend-sub003/culture"
	"github.com/saleemjadallah/visualz-backend-sub003/parametric"
	"github.com/saleemjadallah/visualz-backend-sub003/scene"
)

// DiningTable returns the dining table template.
func DiningTable(db culture.Database) Template {
	return &furnitureTemplate{kind: parametric.TypeDiningTable, name: "dining table", basePrice: 650, assembly: 40, db: db, build: buildDiningTable}
}

// CoffeeTable returns the coffee table template.
func CoffeeTable(db culture.Database) Template {
	return &furnitureTemplate{kind: parametric.TypeCoffeeTable, name: "coffee table", basePrice: 300, assembly: 25, db: db, build: buildCoffeeTable}
}

func buildDiningTable(p parametric.Parameters, profile *culture.Profile) *scene.Geometry {
	g := scene.New("dining-table")
	m := member(profile) * 1.4
	top := 0.04 * profile.Proportions.Mass
	legH := p.Height - top

	g.Add(legs("leg", p.Width, p.Depth, legH, m, roundLegs(p), detail(p)))
	if p.Width > 2.4 {
		for i, x := range []float64{-p.Width / 6, p.Width / 6} {
			g.Add(scene.Part(fmt.Sprintf("mid-leg-%d", i), scene.Vec3{X: x}, leg(m, legH, roundLegs(p), detail(p))))
		}
	}

	apron := 0.08
	rails := scene.Group("aprons", scene.Vec3{Y: legH - apron})
	rails.Children = append(rails.Children,
		scene.Part("apron-front", scene.Vec3{Z: p.Depth/2 - m}, scene.Box(p.Width-2*m, apron, m/2, primary)),
		scene.Part("apron-back", scene.Vec3{Z: -p.Depth/2 + m}, scene.Box(p.Width-2*m, apron, m/2, primary)),
		scene.Part("apron-left", scene.Vec3{X: -p.Width/2 + m}, scene.Box(m/2, apron, p.Depth-2*m, primary)),
		scene.Part("apron-right", scene.Vec3{X: p.Width/2 - m}, scene.Box(m/2, apron, p.Depth-2*m, primary)),
	)
	g.Add(rails)

	g.Add(scene.Part("top", scene.Vec3{Y: legH}, scene.Box(p.Width, top, p.Depth, primary)))
	if p.SecondaryMaterial != "" {
		g.Add(scene.Part("runner", scene.Vec3{Y: p.Height}, scene.Box(p.Width*0.8, 0.004, p.Depth*0.3, secondary)))
	}
	addOrnaments(g, p, legH-apron, p.Width-2*m, 6)
	return g
}

func buildCoffeeTable(p parametric.Parameters, profile *culture.Profile) *scene.Geometry {
	g := scene.New("coffee-table")
	m := member(profile) * 1.2
	top := 0.035 * profile.Proportions.Mass
	legH := p.Height - top

	g.Add(legs("leg", p.Width, p.Depth, legH, m, roundLegs(p), detail(p)))
	g.Add(scene.Part("top", scene.Vec3{Y: legH}, scene.Box(p.Width, top, p.Depth, primary)))
	if p.DecorativeIntensity > 0.4 || p.SecondaryMaterial != "" {
		g.Add(scene.Part("shelf", scene.Vec3{Y: legH * 0.3}, scene.Box(p.Width-2*m, 0.02, p.Depth-2*m, secondary)))
	}
	addOrnaments(g, p, legH, p.Width-2*m, 4)
	return g
}
