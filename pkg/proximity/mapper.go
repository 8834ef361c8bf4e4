package proximity

import (
	"github.com/philipparndt/surfseg/pkg/geometry"
	"github.com/philipparndt/surfseg/pkg/output"
)

// Mapper colors the points of one segment at a time
type Mapper struct {
	Mode QueryMode
}

// SegmentColoring is the colored point run of one segment
type SegmentColoring struct {
	Chunk output.Chunk
	// External is the number of points in the segment's boundary index
	External int
	// MinDistance and MaxDistance span the queried distances; both are zero
	// when the segment has no external points.
	MinDistance float64
	MaxDistance float64
}

// Isolated reports whether no point outside the segment existed
func (c SegmentColoring) Isolated() bool {
	return c.External == 0
}

// ColorSegment builds the boundary index from the nonMembers triangles and
// emits V1, V2, V3 of every member triangle in order, each with the color of
// its nearest-neighbor distance. When there are no external points every
// point receives SentinelColor.
func (m Mapper) ColorSegment(triangles []geometry.Triangle, members, nonMembers []int) SegmentColoring {
	index := NewBoundaryIndex(ExternalPoints(triangles, nonMembers))

	result := SegmentColoring{
		Chunk: output.Chunk{
			Points: make([]geometry.Vector3, 0, 3*len(members)),
			Colors: make([]output.Color, 0, 3*len(members)),
		},
		External: index.Len(),
	}

	first := true
	for _, i := range members {
		t := triangles[i]
		for _, v := range t.Vertices() {
			query := v
			if m.Mode == QueryFirstVertex {
				query = t.V1
			}

			col := SentinelColor
			if d, _, ok := index.Nearest(query); ok {
				col = ColorForDistance(d)
				if first || d < result.MinDistance {
					result.MinDistance = d
				}
				if first || d > result.MaxDistance {
					result.MaxDistance = d
				}
				first = false
			}
			result.Chunk.Append(v, col)
		}
	}

	return result
}
