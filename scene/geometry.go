package scene

import (
	"math"
)

// Vec3 is a point or extent in meters.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns v+o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Scale multiplies every component by s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []Vec3  `json:"vertices"`
	Indices  []int32 `json:"indices"`
	// Slot names the material role of the mesh, e.g. "primary" or "accent".
	Slot string `json:"slot"`
	// MaterialID is filled by the material system.
	MaterialID string `json:"materialId,omitempty"`
}

// TriangleCount returns len(Indices)/3.
func (m *Mesh) TriangleCount() int {
	if m == nil {
		return 0
	}
	return len(m.Indices) / 3
}

// Node is one named part of a model.
type Node struct {
	Name     string  `json:"name"`
	Position Vec3    `json:"position"`
	Mesh     *Mesh   `json:"mesh,omitempty"`
	Children []*Node `json:"children,omitempty"`
}

// Geometry is the root of a generated model.
type Geometry struct {
	Root *Node `json:"root"`
}

// New returns a geometry with an empty root node.
func New(name string) *Geometry {
	return &Geometry{Root: &Node{Name: name}}
}

// Add attaches a child node to the root and returns it.
func (g *Geometry) Add(n *Node) *Node {
	g.Root.Children = append(g.Root.Children, n)
	return n
}

// Walk visits every node depth-first, parents before children.
func (g *Geometry) Walk(fn func(n *Node)) {
	if g == nil || g.Root == nil {
		return
	}
	var visit func(n *Node)
	visit = func(n *Node) {
		fn(n)
		for _, c := range n.Children {
			visit(c)
		}
	}
	visit(g.Root)
}

// Meshes returns every mesh in walk order.
func (g *Geometry) Meshes() []*Mesh {
	var out []*Mesh
	g.Walk(func(n *Node) {
		if n.Mesh != nil {
			out = append(out, n.Mesh)
		}
	})
	return out
}

// PolygonCount is the exact number of triangles in the model.
func (g *Geometry) PolygonCount() int {
	total := 0
	for _, m := range g.Meshes() {
		total += m.TriangleCount()
	}
	return total
}

// Per-element storage costs used by MemoryEstimate.
const (
	BytesPerVertex   = 32 // position, normal and uv as float32
	BytesPerTriangle = 12 // three int32 indices
	BytesPerNode     = 256
)

// MemoryEstimate approximates the in-memory size of the model in bytes.
func (g *Geometry) MemoryEstimate() int64 {
	var total int64
	g.Walk(func(n *Node) {
		total += BytesPerNode
		if n.Mesh != nil {
			total += int64(len(n.Mesh.Vertices))*BytesPerVertex + int64(n.Mesh.TriangleCount())*BytesPerTriangle
		}
	})
	return total
}

// IsEmpty reports whether the model has no triangles.
func (g *Geometry) IsEmpty() bool {
	return g == nil || g.Root == nil || g.PolygonCount() == 0
}

// Bounds returns the axis-aligned bounding box of all vertices after
// applying node positions.
func (g *Geometry) Bounds() (min, max Vec3) {
	inf := math.Inf(1)
	min = Vec3{inf, inf, inf}
	max = Vec3{-inf, -inf, -inf}
	found := false

	var visit func(n *Node, offset Vec3)
	visit = func(n *Node, offset Vec3) {
		at := offset.Add(n.Position)
		if n.Mesh != nil {
			for _, v := range n.Mesh.Vertices {
				p := at.Add(v)
				min = Vec3{math.Min(min.X, p.X), math.Min(min.Y, p.Y), math.Min(min.Z, p.Z)}
				max = Vec3{math.Max(max.X, p.X), math.Max(max.Y, p.Y), math.Max(max.Z, p.Z)}
				found = true
			}
		}
		for _, c := range n.Children {
			visit(c, at)
		}
	}
	if g != nil && g.Root != nil {
		visit(g.Root, Vec3{})
	}
	if !found {
		return Vec3{}, Vec3{}
	}
	return min, max
}

// Clone returns a deep copy.
func (g *Geometry) Clone() *Geometry {
	if g == nil {
		return nil
	}
	return &Geometry{Root: cloneNode(g.Root)}
}

func cloneNode(n *Node) *Node {
	if n == nil {
		return nil
	}
	out := &Node{Name: n.Name, Position: n.Position}
	if n.Mesh != nil {
		m := *n.Mesh
		m.Vertices = append([]Vec3(nil), n.Mesh.Vertices...)
		m.Indices = append([]int32(nil), n.Mesh.Indices...)
		out.Mesh = &m
	}
	if len(n.Children) > 0 {
		out.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = cloneNode(c)
		}
	}
	return out
}
