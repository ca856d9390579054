package template

import (
	"fmt"
	"math"

	"github.com/saleemjadallah/visualz-backend-sub003/culture"
	"github.com/saleemjadallah/visualz-backend-sub003/parametric"
	"github.com/saleemjadallah/visualz-backend-sub003/scene"
)

// Lighting returns the lighting template.
func Lighting(db culture.Database) Template {
	return &furnitureTemplate{kind: parametric.TypeLighting, name: "light", basePrice: 150, assembly: 15, db: db, build: buildLighting}
}

// SecuritySystem returns the perimeter security template.
func SecuritySystem(db culture.Database) Template {
	return &furnitureTemplate{kind: parametric.TypeSecuritySystem, name: "security system", basePrice: 1200, assembly: 90, db: db, build: buildSecuritySystem}
}

// InteractiveExperience returns the interactive installation template.
func InteractiveExperience(db culture.Database) Template {
	return &furnitureTemplate{kind: parametric.TypeInteractiveExperience, name: "interactive experience", basePrice: 2500, assembly: 180, db: db, build: buildInteractiveExperience}
}

func buildLighting(p parametric.Parameters, profile *culture.Profile) *scene.Geometry {
	g := scene.New("lighting")
	seg := detail(p)
	radius := math.Min(p.Width, p.Depth) / 2
	baseH := 0.03
	shadeH := math.Min(p.Height*0.3, 0.6)
	poleH := p.Height - baseH - shadeH

	g.Add(scene.Part("base", scene.Vec3{}, scene.Cylinder(radius*0.6, baseH, seg, primary)))
	g.Add(scene.Part("pole", scene.Vec3{Y: baseH}, scene.Cylinder(member(profile)/3, poleH, seg, primary)))

	shade := secondary
	if p.SecondaryMaterial == "" {
		shade = primary
	}
	var shadeMesh *scene.Mesh
	if p.Culture == parametric.CultureJapanese {
		// andon lantern
		shadeMesh = scene.Box(radius*2, shadeH, radius*2, shade)
	} else {
		shadeMesh = scene.Cylinder(radius, shadeH, seg*2, shade)
	}
	g.Add(scene.Part("shade", scene.Vec3{Y: baseH + poleH}, shadeMesh))
	g.Add(scene.Part("bulb", scene.Vec3{Y: baseH + poleH + shadeH/2}, scene.Sphere(math.Min(0.04, radius/2), seg, accent)))
	addOrnaments(g, p, baseH+poleH, radius*2, 3)
	return g
}

func buildSecuritySystem(p parametric.Parameters, profile *culture.Profile) *scene.Geometry {
	g := scene.New("security-system")
	seg := detail(p)
	post := member(profile) * 2

	perimeter := 2 * (p.Width + p.Depth)
	n := int(math.Max(4, math.Ceil(perimeter/1.5)))
	posts := scene.Group("posts", scene.Vec3{})
	for i := 0; i < n; i++ {
		x, z := perimeterPoint(float64(i)/float64(n)*perimeter, p.Width, p.Depth)
		posts.Children = append(posts.Children, scene.Part(fmt.Sprintf("post-%d", i), scene.Vec3{X: x, Z: z}, scene.Cylinder(post/2, p.Height, seg, primary)))
	}
	g.Add(posts)

	for i, c := range [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
		at := scene.Vec3{X: c[0] * p.Width / 2, Y: p.Height, Z: c[1] * p.Depth / 2}
		cam := scene.Group(fmt.Sprintf("camera-%d", i), at,
			scene.Part("housing", scene.Vec3{}, scene.Box(0.12, 0.08, 0.2, secondary)),
			scene.Part("lens", scene.Vec3{Y: 0.04, Z: 0.1}, scene.Sphere(0.03, seg, accent)),
		)
		g.Add(cam)
	}
	g.Add(scene.Part("control-panel", scene.Vec3{Z: p.Depth / 2}, scene.Box(0.4, math.Min(1.2, p.Height), 0.15, primary)))
	return g
}

// perimeterPoint walks distance d clockwise around a w x depth rectangle
// centered on the origin, starting at the back-left corner.
func perimeterPoint(d, w, depth float64) (x, z float64) {
	switch {
	case d < w:
		return -w/2 + d, -depth / 2
	case d < w+depth:
		return w / 2, -depth/2 + (d - w)
	case d < 2*w+depth:
		return w/2 - (d - w - depth), depth / 2
	default:
		return -w / 2, depth/2 - (d - 2*w - depth)
	}
}

func buildInteractiveExperience(p parametric.Parameters, profile *culture.Profile) *scene.Geometry {
	g := scene.New("interactive-experience")
	seg := detail(p)
	platform := 0.1
	g.Add(scene.Part("platform", scene.Vec3{}, scene.Box(p.Width, platform, p.Depth, primary)))

	stations := capacityOf(p)/20 + 1
	if stations > 10 {
		stations = 10
	}
	kioskH := math.Min(1.4, p.Height-platform)
	for i, x := range spread(stations, p.Width*0.8) {
		station := scene.Group(fmt.Sprintf("station-%d", i), scene.Vec3{X: x, Y: platform},
			scene.Part("kiosk", scene.Vec3{}, scene.Box(0.5, kioskH, 0.4, primary)),
			scene.Part("display", scene.Vec3{Y: kioskH, Z: 0.1}, scene.Box(0.6, 0.4, 0.03, accent)),
		)
		g.Add(station)
	}

	if p.Height > 2 {
		canopy := secondary
		if p.SecondaryMaterial == "" {
			canopy = primary
		}
		g.Add(legs("canopy-pole", p.Width, p.Depth, p.Height, member(profile), true, seg))
		g.Add(scene.Part("canopy", scene.Vec3{Y: p.Height}, scene.Box(p.Width, 0.05, p.Depth, canopy)))
	}
	addOrnaments(g, p, platform, p.Width, 8)
	return g
}
