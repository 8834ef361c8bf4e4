package pipeline

import (
	"context"
	"math/rand"
	"strings"
	"testing"

	"github.com/philipparndt/surfseg/pkg/geometry"
	"github.com/philipparndt/surfseg/pkg/mesh"
	"github.com/philipparndt/surfseg/pkg/output"
	"github.com/philipparndt/surfseg/pkg/proximity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func tri(ax, ay, az, bx, by, bz, cx, cy, cz float64) geometry.Triangle {
	return geometry.NewTriangle(
		geometry.NewVector3(ax, ay, az),
		geometry.NewVector3(bx, by, bz),
		geometry.NewVector3(cx, cy, cz),
	)
}

func assertCardinality(t *testing.T, m *output.Mesh, n int) {
	t.Helper()
	require.Len(t, m.Points(), 3*n)
	require.Len(t, m.Colors(), 3*n)
	require.Len(t, m.Cells(), n)
	for k, cell := range m.Cells() {
		assert.Equal(t, [3]int{3 * k, 3*k + 1, 3*k + 2}, cell)
	}
}

func TestRunSharedVertexIsOneIsolatedSegment(t *testing.T) {
	triangles := []geometry.Triangle{
		tri(0, 0, 0, 1, 0, 0, 0, 1, 0),
		tri(1, 0, 0, 2, 0, 0, 2, 1, 0),
	}

	res, err := Run(context.Background(), triangles, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []int{1}, res.Graph.Neighbors(0))
	assert.Equal(t, []int{0}, res.Graph.Neighbors(1))
	require.Equal(t, 1, res.Segmentation.Len())
	assert.Equal(t, 1, res.Stats.Isolated)

	assertCardinality(t, res.Mesh, 2)
	for _, c := range res.Mesh.Colors() {
		assert.Equal(t, output.Color{R: 0, G: 0, B: 255}, c)
	}
}

func TestRunTwoSegmentsAtCenterDistance(t *testing.T) {
	triangles := []geometry.Triangle{
		tri(0, 0, 0, 0, 1, 0, 0, 0, 1),
		tri(100, 0, 0, 100, 1, 0, 100, 0, 1),
	}

	res, err := Run(context.Background(), triangles, DefaultOptions())
	require.NoError(t, err)

	assert.Zero(t, res.Graph.EdgeCount())
	assert.Equal(t, []int{1, 1}, res.Segmentation.Sizes())
	assertCardinality(t, res.Mesh, 2)
	for _, c := range res.Mesh.Colors() {
		assert.Equal(t, output.Color{R: 127, G: 0, B: 128}, c)
	}
	assert.Zero(t, res.Stats.Isolated)
}

func TestRunAfterMalformedLine(t *testing.T) {
	input := "0,0,0,0,1,0,0,0,1\n1,2,3,4,5\n100,0,0,100,1,0,100,0,1\n"
	model, diagnostics, err := mesh.ParseRecords(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, diagnostics, 1)

	res, err := Run(context.Background(), model.Triangles, DefaultOptions())
	require.NoError(t, err)
	assertCardinality(t, res.Mesh, 2)
}

func TestRunChainIsOneSegment(t *testing.T) {
	triangles := []geometry.Triangle{
		tri(0, 0, 0, 1, 0, 0, 0, 1, 0),
		tri(1, 0, 0, 2, 0, 0, 2, 1, 0),
		tri(2, 1, 0, 3, 1, 0, 3, 2, 0),
	}

	res, err := Run(context.Background(), triangles, DefaultOptions())
	require.NoError(t, err)

	assert.False(t, res.Graph.Has(0, 2))
	assert.Equal(t, []int{3}, res.Segmentation.Sizes())
}

func TestRunSegmentMajorPointOrder(t *testing.T) {
	// Triangles 0 and 2 form one segment, so the second visited triangle is 2
	triangles := []geometry.Triangle{
		tri(0, 0, 0, 1, 0, 0, 0, 1, 0),
		tri(50, 0, 0, 51, 0, 0, 50, 1, 0),
		tri(1, 0, 0, 2, 0, 0, 2, 1, 0),
	}

	res, err := Run(context.Background(), triangles, DefaultOptions())
	require.NoError(t, err)

	points := res.Mesh.Points()
	assert.Equal(t, triangles[0].V1, points[0])
	assert.Equal(t, triangles[2].V1, points[3])
	assert.Equal(t, triangles[1].V1, points[6])
	assertCardinality(t, res.Mesh, 3)
}

func TestRunEmpty(t *testing.T) {
	res, err := Run(context.Background(), nil, DefaultOptions())
	require.NoError(t, err)
	assertCardinality(t, res.Mesh, 0)
	assert.Zero(t, res.Segmentation.Len())
}

func randomMesh(rng *rand.Rand, n int) []geometry.Triangle {
	triangles := make([]geometry.Triangle, n)
	for i := range triangles {
		c := func() float64 { return float64(rng.Intn(60)) * 2.5 }
		triangles[i] = tri(c(), c(), c(), c(), c(), c(), c(), c(), c())
	}
	return triangles
}

func TestRunParallelMatchesSequential(t *testing.T) {
	triangles := randomMesh(rand.New(rand.NewSource(11)), 200)

	seqOpts := DefaultOptions()
	seqOpts.Logger = zaptest.NewLogger(t)
	seq, err := Run(context.Background(), triangles, seqOpts)
	require.NoError(t, err)

	parOpts := DefaultOptions()
	parOpts.Workers = 4
	par, err := Run(context.Background(), triangles, parOpts)
	require.NoError(t, err)

	assert.Equal(t, seq.Mesh.Points(), par.Mesh.Points())
	assert.Equal(t, seq.Mesh.Colors(), par.Mesh.Colors())
	assert.Equal(t, seq.Mesh.Cells(), par.Mesh.Cells())
	assert.Equal(t, seq.Stats.Segments, par.Stats.Segments)
}

func TestRunColorBounds(t *testing.T) {
	triangles := randomMesh(rand.New(rand.NewSource(5)), 150)

	for _, mode := range []proximity.QueryMode{proximity.QueryOwnVertex, proximity.QueryFirstVertex} {
		opts := DefaultOptions()
		opts.Mode = mode
		res, err := Run(context.Background(), triangles, opts)
		require.NoError(t, err)

		assertCardinality(t, res.Mesh, len(triangles))
		for _, c := range res.Mesh.Colors() {
			assert.Zero(t, c.G)
			assert.Equal(t, 255, int(c.R)+int(c.B))
		}
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Run(ctx, randomMesh(rand.New(rand.NewSource(1)), 20), DefaultOptions())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, res)
}
