package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/philipparndt/surfseg/internal/config"
	"github.com/philipparndt/surfseg/pkg/adjacency"
	"github.com/philipparndt/surfseg/pkg/mesh"
	"github.com/philipparndt/surfseg/pkg/segment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const twoSegments = `0,0,0,0,1,0,0,0,1
1,2,3,4,5
100,0,0,100,1,0,100,0,1
`

func writeInput(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "part.csv")
	require.NoError(t, os.WriteFile(path, []byte(twoSegments), 0o644))
	return path
}

func TestSegmentFileWritesOutputAndPreview(t *testing.T) {
	input := writeInput(t)
	dir := filepath.Dir(input)

	cfg := config.Default()
	cfg.Resolve(config.Flags{
		Output:      filepath.Join(dir, "out.ply"),
		Preview:     filepath.Join(dir, "out.png"),
		PreviewSize: 32,
	}, input)
	require.NoError(t, cfg.Validate())

	require.NoError(t, segmentFile(context.Background(), input, cfg, zaptest.NewLogger(t)))

	data, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "element vertex 6\n")
	assert.Contains(t, string(data), "0 0 0 127 0 128\n")
	assert.FileExists(t, cfg.Preview)
}

func TestSegmentFileMissingInput(t *testing.T) {
	cfg := config.Default()
	cfg.Resolve(config.Flags{}, "missing.csv")

	err := segmentFile(context.Background(), filepath.Join(t.TempDir(), "missing.csv"), cfg, zaptest.NewLogger(t))
	assert.ErrorIs(t, err, mesh.ErrFileAccess)
}

func TestPrintInfo(t *testing.T) {
	input := writeInput(t)
	model, diagnostics, err := mesh.Load(input)
	require.NoError(t, err)

	graph := adjacency.Build(model.Triangles, adjacency.DefaultRadius)
	seg := segment.Cluster(model.TriangleCount(), graph)

	var buf bytes.Buffer
	printInfo(&buf, input, model, diagnostics, graph, seg, adjacency.DefaultRadius, 10)

	out := buf.String()
	assert.Contains(t, out, "Triangles: 2\n")
	assert.Contains(t, out, "Surface area: 1.000000 units²\n")
	assert.Contains(t, out, "Centroid: (50.000000, 0.333333, 0.333333)\n")
	assert.Contains(t, out, "Adjacency radius: 0.0025\n")
	assert.Contains(t, out, "Skipped records: 1\n")
	assert.Contains(t, out, "Segments: 2\n")
	assert.Contains(t, out, "Largest 2 Segments:")
	assert.True(t, strings.Contains(out, "line 2:"), "diagnostic line missing in %q", out)
}

func TestInfoUsesConfigRadius(t *testing.T) {
	input := writeInput(t)
	cfgPath := filepath.Join(t.TempDir(), "surfseg.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("radius: 200\n"), 0o644))

	cfg, err := loadConfig(cfgPath, config.Flags{}, input)
	require.NoError(t, err)
	assert.Equal(t, 200.0, cfg.Radius)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"info", input, "--config", cfgPath})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		configFile = ""
	})
	require.NoError(t, rootCmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "Adjacency radius: 200\n")
	assert.Contains(t, out, "Segments: 1\n")
}

func TestLoadConfigFlagOverridesFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "surfseg.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("radius: 200\n"), 0o644))

	cfg, err := loadConfig(cfgPath, config.Flags{Radius: 0.5}, "part.csv")
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.Radius)
	assert.Equal(t, "part_segments.ply", cfg.Output)
}
