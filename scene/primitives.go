package scene

import "math"

// MinSegments is the lowest radial resolution a primitive accepts.
const MinSegments = 3

// Box builds an axis-aligned box resting on y=0 and centered on x and z.
// Each face has its own four vertices, giving 24 vertices and 12 triangles.
func Box(w, h, d float64, slot string) *Mesh {
	x, z := w/2, d/2
	corners := [8]Vec3{
		{-x, 0, -z}, {x, 0, -z}, {x, h, -z}, {-x, h, -z},
		{-x, 0, z}, {x, 0, z}, {x, h, z}, {-x, h, z},
	}
	faces := [6][4]int{
		{4, 5, 6, 7}, // front
		{1, 0, 3, 2}, // back
		{0, 4, 7, 3}, // left
		{5, 1, 2, 6}, // right
		{3, 7, 6, 2}, // top
		{0, 1, 5, 4}, // bottom
	}
	m := &Mesh{Slot: slot, Vertices: make([]Vec3, 0, 24), Indices: make([]int32, 0, 36)}
	for _, f := range faces {
		base := int32(len(m.Vertices))
		for _, c := range f {
			m.Vertices = append(m.Vertices, corners[c])
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}

// Cylinder builds a capped cylinder resting on y=0. It has 4*segments+2
// vertices and 4*segments triangles.
func Cylinder(radius, height float64, segments int, slot string) *Mesh {
	if segments < MinSegments {
		segments = MinSegments
	}
	n := int32(segments)
	m := &Mesh{Slot: slot}
	ring := func(y float64) {
		for i := 0; i < segments; i++ {
			a := 2 * math.Pi * float64(i) / float64(segments)
			m.Vertices = append(m.Vertices, Vec3{radius * math.Cos(a), y, radius * math.Sin(a)})
		}
	}

	// side walls
	ring(0)
	ring(height)
	for i := int32(0); i < n; i++ {
		j := (i + 1) % n
		m.Indices = append(m.Indices, i, n+i, n+j, i, n+j, j)
	}

	// caps
	for _, y := range []float64{0, height} {
		center := int32(len(m.Vertices))
		m.Vertices = append(m.Vertices, Vec3{0, y, 0})
		ring(y)
		for i := int32(0); i < n; i++ {
			j := (i + 1) % n
			if y == 0 {
				m.Indices = append(m.Indices, center, center+1+i, center+1+j)
			} else {
				m.Indices = append(m.Indices, center, center+1+j, center+1+i)
			}
		}
	}
	return m
}

// Sphere builds a UV sphere centered on the origin with segments sectors and
// segments/2 rings. It has (rings+1)*(segments+1) vertices and
// segments*(2*rings-2) triangles.
func Sphere(radius float64, segments int, slot string) *Mesh {
	if segments < MinSegments+1 {
		segments = MinSegments + 1
	}
	rings := segments / 2
	m := &Mesh{Slot: slot}
	for r := 0; r <= rings; r++ {
		phi := math.Pi * float64(r) / float64(rings)
		for s := 0; s <= segments; s++ {
			theta := 2 * math.Pi * float64(s) / float64(segments)
			m.Vertices = append(m.Vertices, Vec3{
				X: radius * math.Sin(phi) * math.Cos(theta),
				Y: radius * math.Cos(phi),
				Z: radius * math.Sin(phi) * math.Sin(theta),
			})
		}
	}
	stride := int32(segments + 1)
	for r := int32(0); r < int32(rings); r++ {
		for s := int32(0); s < int32(segments); s++ {
			a := r*stride + s
			b := a + stride
			if r != 0 {
				m.Indices = append(m.Indices, a, b, a+1)
			}
			if r != int32(rings)-1 {
				m.Indices = append(m.Indices, a+1, b, b+1)
			}
		}
	}
	return m
}

// Part is a convenience for a positioned mesh node.
func Part(name string, at Vec3, mesh *Mesh) *Node {
	return &Node{Name: name, Position: at, Mesh: mesh}
}

// Group is a node that only holds children.
func Group(name string, at Vec3, children ...*Node) *Node {
	return &Node{Name: name, Position: at, Children: children}
}
