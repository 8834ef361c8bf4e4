package proximity

import (
	"math"
	"testing"

	"github.com/philipparndt/surfseg/pkg/geometry"
	"github.com/philipparndt/surfseg/pkg/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func v(x, y, z float64) geometry.Vector3 {
	return geometry.NewVector3(x, y, z)
}

func TestColorForDistance(t *testing.T) {
	tests := []struct {
		name string
		d    float64
		want output.Color
	}{
		{"center", 100, output.Color{R: 127, G: 0, B: 128}},
		{"zero sentinel", 0, SentinelColor},
		{"negative", -5, SentinelColor},
		{"nan", math.NaN(), SentinelColor},
		{"far", math.Inf(1), output.Color{R: 255, G: 0, B: 0}},
		{"one step out", 110, output.Color{R: 186, G: 0, B: 69}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ColorForDistance(tt.d))
		})
	}
}

func TestColorForDistanceBoundsAndMonotonic(t *testing.T) {
	prev := ColorForDistance(1e-9)
	for d := 0.5; d < 400; d += 0.5 {
		c := ColorForDistance(d)
		require.Zero(t, c.G)
		require.Equal(t, 255, int(c.R)+int(c.B))
		require.GreaterOrEqual(t, c.R, prev.R, "red decreased at d=%v", d)
		prev = c
	}
}

func TestBoundaryIndexNearest(t *testing.T) {
	index := NewBoundaryIndex([]geometry.Vector3{
		v(10, 0, 0), v(0, 5, 0), v(-3, -4, 0),
	})
	require.Equal(t, 3, index.Len())

	d, match, ok := index.Nearest(v(0, 0, 0))
	require.True(t, ok)
	assert.InDelta(t, 5.0, d, 1e-12)
	assert.Contains(t, []geometry.Vector3{v(0, 5, 0), v(-3, -4, 0)}, match)

	d, match, ok = index.Nearest(v(9, 1, 0))
	require.True(t, ok)
	assert.InDelta(t, math.Sqrt2, d, 1e-12)
	assert.Equal(t, v(10, 0, 0), match)
}

func TestBoundaryIndexEmpty(t *testing.T) {
	index := NewBoundaryIndex(nil)
	assert.Zero(t, index.Len())
	_, _, ok := index.Nearest(v(1, 2, 3))
	assert.False(t, ok)
}

func TestExternalPoints(t *testing.T) {
	triangles := []geometry.Triangle{
		geometry.NewTriangle(v(0, 0, 0), v(1, 0, 0), v(0, 1, 0)),
		geometry.NewTriangle(v(5, 0, 0), v(6, 0, 0), v(5, 1, 0)),
	}
	assert.Equal(t, []geometry.Vector3{v(5, 0, 0), v(6, 0, 0), v(5, 1, 0)}, ExternalPoints(triangles, []int{1}))
}

func TestColorSegmentAtCenterDistance(t *testing.T) {
	triangles := []geometry.Triangle{
		geometry.NewTriangle(v(0, 0, 0), v(0, 1, 0), v(0, 0, 1)),
		geometry.NewTriangle(v(100, 0, 0), v(100, 1, 0), v(100, 0, 1)),
	}

	corners := triangles[0].Vertices()
	for _, mode := range []QueryMode{QueryOwnVertex, QueryFirstVertex} {
		res := Mapper{Mode: mode}.ColorSegment(triangles, []int{0}, []int{1})

		require.Equal(t, 3, res.Chunk.Len())
		assert.Equal(t, 3, res.External)
		assert.False(t, res.Isolated())
		assert.Equal(t, corners[:], res.Chunk.Points)
		for _, c := range res.Chunk.Colors {
			assert.Equal(t, output.Color{R: 127, G: 0, B: 128}, c, "mode %v", mode)
		}
		assert.InDelta(t, 100, res.MinDistance, 1e-12)
		assert.InDelta(t, 100, res.MaxDistance, 1e-12)
	}
}

func TestColorSegmentQueryModes(t *testing.T) {
	triangles := []geometry.Triangle{
		geometry.NewTriangle(v(0, 0, 0), v(-10, 0, 0), v(0, -10, 0)),
		geometry.NewTriangle(v(100, 0, 0), v(150, 0, 0), v(100, 50, 0)),
	}

	own := Mapper{Mode: QueryOwnVertex}.ColorSegment(triangles, []int{0}, []int{1})
	assert.Equal(t, output.Color{R: 127, B: 128}, own.Chunk.Colors[0])
	assert.Equal(t, output.Color{R: 186, B: 69}, own.Chunk.Colors[1])
	assert.InDelta(t, 110, own.MaxDistance, 1e-12)

	// V1 stands in for every vertex, so all three share its color
	first := Mapper{Mode: QueryFirstVertex}.ColorSegment(triangles, []int{0}, []int{1})
	for _, c := range first.Chunk.Colors {
		assert.Equal(t, output.Color{R: 127, B: 128}, c)
	}
	// Points are still emitted at their own positions
	assert.Equal(t, v(-10, 0, 0), first.Chunk.Points[1])
}

func TestColorSegmentWithoutExternalPoints(t *testing.T) {
	triangles := []geometry.Triangle{
		geometry.NewTriangle(v(0, 0, 0), v(1, 0, 0), v(0, 1, 0)),
		geometry.NewTriangle(v(1, 0, 0), v(2, 0, 0), v(2, 1, 0)),
	}

	res := Mapper{}.ColorSegment(triangles, []int{0, 1}, nil)

	assert.True(t, res.Isolated())
	require.Equal(t, 6, res.Chunk.Len())
	for _, c := range res.Chunk.Colors {
		assert.Equal(t, output.Color{R: 0, G: 0, B: 255}, c)
	}
}

func TestParseQueryMode(t *testing.T) {
	m, err := ParseQueryMode("First")
	require.NoError(t, err)
	assert.Equal(t, QueryFirstVertex, m)
	assert.Equal(t, "first", m.String())

	m, err = ParseQueryMode("")
	require.NoError(t, err)
	assert.Equal(t, QueryOwnVertex, m)

	_, err = ParseQueryMode("centroid")
	assert.Error(t, err)
}
