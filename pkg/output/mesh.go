// Package output assembles the colored point/cell arrays handed to renderers
// and writes them to common mesh formats.
package output

import (
	"errors"
	"fmt"

	"github.com/philipparndt/surfseg/pkg/geometry"
)

var (
	// ErrFrozen is returned when appending to a builder after Freeze.
	ErrFrozen = errors.New("output builder already frozen")

	// ErrCardinality is returned when the accumulated arrays do not hold
	// exactly three points per triangle.
	ErrCardinality = errors.New("point count does not match triangle count")
)

// Color is an 8-bit RGB triple
type Color struct {
	R, G, B uint8
}

// Chunk accumulates the points and colors of one segment
type Chunk struct {
	Points []geometry.Vector3
	Colors []Color
}

// Append adds a point and its color
func (c *Chunk) Append(p geometry.Vector3, col Color) {
	c.Points = append(c.Points, p)
	c.Colors = append(c.Colors, col)
}

// Len returns the number of points in the chunk
func (c *Chunk) Len() int {
	return len(c.Points)
}

// Builder collects points and colors in visitation order. It is the only
// mutable stage of the output and becomes read-only once frozen.
type Builder struct {
	points []geometry.Vector3
	colors []Color
	frozen bool
}

// NewBuilder creates a builder with room for capacity points
func NewBuilder(capacity int) *Builder {
	return &Builder{
		points: make([]geometry.Vector3, 0, capacity),
		colors: make([]Color, 0, capacity),
	}
}

// Append adds one point and its color
func (b *Builder) Append(p geometry.Vector3, col Color) error {
	if b.frozen {
		return ErrFrozen
	}
	b.points = append(b.points, p)
	b.colors = append(b.colors, col)
	return nil
}

// AppendChunk adds all points of c in order
func (b *Builder) AppendChunk(c Chunk) error {
	if b.frozen {
		return ErrFrozen
	}
	if len(c.Points) != len(c.Colors) {
		return fmt.Errorf("%w: chunk has %d points and %d colors", ErrCardinality, len(c.Points), len(c.Colors))
	}
	b.points = append(b.points, c.Points...)
	b.colors = append(b.colors, c.Colors...)
	return nil
}

// Len returns the number of points appended so far
func (b *Builder) Len() int {
	return len(b.points)
}

// Freeze closes the builder and returns the mesh for triangleCount
// triangles. Cells are derived from the triangle count alone: cell k owns
// points 3k, 3k+1 and 3k+2, which are the corners of the k-th triangle
// appended.
func (b *Builder) Freeze(triangleCount int) (*Mesh, error) {
	if b.frozen {
		return nil, ErrFrozen
	}
	if len(b.points) != 3*triangleCount {
		return nil, fmt.Errorf("%w: %d points for %d triangles", ErrCardinality, len(b.points), triangleCount)
	}
	b.frozen = true

	cells := make([][3]int, triangleCount)
	for k := range cells {
		cells[k] = [3]int{3 * k, 3*k + 1, 3*k + 2}
	}

	return &Mesh{
		points: b.points,
		colors: b.colors,
		cells:  cells,
	}, nil
}

// Mesh is the frozen (points, colors, cells) triple. Slices returned by its
// accessors must not be modified.
type Mesh struct {
	points []geometry.Vector3
	colors []Color
	cells  [][3]int
}

// Points returns the point list
func (m *Mesh) Points() []geometry.Vector3 {
	return m.points
}

// Colors returns the per-point colors, parallel to Points
func (m *Mesh) Colors() []Color {
	return m.colors
}

// Cells returns one point index triple per triangle
func (m *Mesh) Cells() [][3]int {
	return m.cells
}

// TriangleCount returns the number of cells
func (m *Mesh) TriangleCount() int {
	return len(m.cells)
}

// Triangle returns the corner positions of cell k
func (m *Mesh) Triangle(k int) geometry.Triangle {
	c := m.cells[k]
	return geometry.NewTriangle(m.points[c[0]], m.points[c[1]], m.points[c[2]])
}

// BoundingBox returns the bounds of all points
func (m *Mesh) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, p := range m.points {
		bbox.Extend(p)
	}
	return bbox
}
