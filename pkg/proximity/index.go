package proximity

import (
	"math"

	"github.com/philipparndt/surfseg/pkg/geometry"
	"gonum.org/v1/gonum/spatial/kdtree"
)

// BoundaryIndex answers nearest-point queries against the vertices of every
// triangle outside one segment.
type BoundaryIndex struct {
	tree *kdtree.Tree
	size int
}

// NewBoundaryIndex builds a kd-tree over points. The slice is not retained.
func NewBoundaryIndex(points []geometry.Vector3) *BoundaryIndex {
	if len(points) == 0 {
		return &BoundaryIndex{}
	}

	pts := make(kdtree.Points, len(points))
	for i, p := range points {
		pts[i] = kdtree.Point{p.X, p.Y, p.Z}
	}

	return &BoundaryIndex{
		tree: kdtree.New(pts, false),
		size: len(points),
	}
}

// ExternalPoints returns V1, V2, V3 of every listed triangle, in order
func ExternalPoints(triangles []geometry.Triangle, indices []int) []geometry.Vector3 {
	points := make([]geometry.Vector3, 0, 3*len(indices))
	for _, i := range indices {
		t := triangles[i]
		points = append(points, t.V1, t.V2, t.V3)
	}
	return points
}

// Len returns the number of indexed points
func (b *BoundaryIndex) Len() int {
	return b.size
}

// Nearest returns the Euclidean distance from p to the closest indexed point
// and that point. ok is false when the index is empty.
func (b *BoundaryIndex) Nearest(p geometry.Vector3) (dist float64, match geometry.Vector3, ok bool) {
	if b.tree == nil {
		return 0, geometry.Vector3{}, false
	}

	got, d2 := b.tree.Nearest(kdtree.Point{p.X, p.Y, p.Z})
	nearest, isPoint := got.(kdtree.Point)
	if !isPoint {
		return 0, geometry.Vector3{}, false
	}
	return math.Sqrt(d2), geometry.NewVector3(nearest[0], nearest[1], nearest[2]), true
}
