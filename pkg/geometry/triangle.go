package geometry

// DefaultAdjacencyRadius is the vertex-to-vertex distance below which two
// triangles count as touching without an exact shared vertex.
const DefaultAdjacencyRadius = 0.0025

// Triangle represents a triangular facet in 3D space
type Triangle struct {
	V1, V2, V3 Vector3
}

// NewTriangle creates a new triangle
func NewTriangle(v1, v2, v3 Vector3) Triangle {
	return Triangle{
		V1: v1,
		V2: v2,
		V3: v3,
	}
}

// Vertices returns the three corners in V1, V2, V3 order
func (t Triangle) Vertices() [3]Vector3 {
	return [3]Vector3{t.V1, t.V2, t.V3}
}

// Normal returns the unnormalized face normal (V2-V1) x (V3-V1)
func (t Triangle) Normal() Vector3 {
	edge1 := t.V2.Sub(t.V1)
	edge2 := t.V3.Sub(t.V1)
	return edge1.Cross(edge2)
}

// SharesVertexWith reports whether any vertex of t is identical to, or
// within radius of, any vertex of other. All nine pairs are checked.
func (t Triangle) SharesVertexWith(other Triangle, radius float64) bool {
	for _, a := range t.Vertices() {
		for _, b := range other.Vertices() {
			if a == b || a.Sub(b).Length() <= radius {
				return true
			}
		}
	}
	return false
}

// Area returns the surface area of the triangle
func (t Triangle) Area() float64 {
	return t.Normal().Length() / 2.0
}

// Center returns the centroid of the triangle
func (t Triangle) Center() Vector3 {
	return Vector3{
		X: (t.V1.X + t.V2.X + t.V3.X) / 3.0,
		Y: (t.V1.Y + t.V2.Y + t.V3.Y) / 3.0,
		Z: (t.V1.Z + t.V2.Z + t.V3.Z) / 3.0,
	}
}
