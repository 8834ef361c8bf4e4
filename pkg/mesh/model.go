package mesh

import (
	"github.com/philipparndt/surfseg/pkg/geometry"
)

// Model is an ordered triangle soup. A triangle's index is its position in
// Triangles and never changes after loading.
type Model struct {
	Name      string
	Triangles []geometry.Triangle
}

// NewModel creates an empty model
func NewModel(name string) *Model {
	return &Model{
		Name:      name,
		Triangles: make([]geometry.Triangle, 0),
	}
}

// FromTriangles wraps an already parsed triangle sequence
func FromTriangles(name string, triangles []geometry.Triangle) *Model {
	model := NewModel(name)
	model.Triangles = append(model.Triangles, triangles...)
	return model
}

// AddTriangle adds a triangle to the model
func (m *Model) AddTriangle(triangle geometry.Triangle) {
	m.Triangles = append(m.Triangles, triangle)
}

// TriangleCount returns the number of triangles in the model
func (m *Model) TriangleCount() int {
	return len(m.Triangles)
}

// BoundingBox calculates the bounding box of the entire model
func (m *Model) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, triangle := range m.Triangles {
		bbox.Extend(triangle.V1)
		bbox.Extend(triangle.V2)
		bbox.Extend(triangle.V3)
	}
	return bbox
}

// SurfaceArea returns the summed area of all triangles
func (m *Model) SurfaceArea() float64 {
	area := 0.0
	for _, triangle := range m.Triangles {
		area += triangle.Area()
	}
	return area
}

// Centroid returns the area-weighted mean of the triangle centers. Meshes
// made only of degenerate triangles fall back to the plain mean.
func (m *Model) Centroid() geometry.Vector3 {
	if len(m.Triangles) == 0 {
		return geometry.Vector3{}
	}

	var weighted, plain geometry.Vector3
	total := 0.0
	for _, triangle := range m.Triangles {
		center := triangle.Center()
		area := triangle.Area()
		weighted = weighted.Add(center.Mul(area))
		plain = plain.Add(center)
		total += area
	}

	if total > 0 {
		return weighted.Mul(1 / total)
	}
	return plain.Mul(1 / float64(len(m.Triangles)))
}
