// Package pipeline runs the full segmentation and proximity coloring batch:
// adjacency, clustering, per-segment boundary queries and output assembly.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/philipparndt/surfseg/pkg/adjacency"
	"github.com/philipparndt/surfseg/pkg/geometry"
	"github.com/philipparndt/surfseg/pkg/output"
	"github.com/philipparndt/surfseg/pkg/proximity"
	"github.com/philipparndt/surfseg/pkg/segment"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Options controls a pipeline run
type Options struct {
	// Radius is the near-vertex adjacency radius
	Radius float64
	// Mode selects the per-vertex query position
	Mode proximity.QueryMode
	// Workers colors that many segments concurrently when greater than one
	Workers int
	// Logger receives progress output; nil disables logging
	Logger *zap.Logger
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{
		Radius:  adjacency.DefaultRadius,
		Mode:    proximity.QueryOwnVertex,
		Workers: 1,
	}
}

// SegmentStats summarizes one colored segment
type SegmentStats struct {
	Root        int
	Triangles   int
	External    int
	MinDistance float64
	MaxDistance float64
}

// Stats describes a finished run
type Stats struct {
	Triangles      int
	AdjacencyEdges int
	Segments       []SegmentStats
	// Isolated counts segments that had no external points
	Isolated int
	Elapsed  time.Duration
}

// Result is everything a run produces
type Result struct {
	Mesh         *output.Mesh
	Graph        *adjacency.Graph
	Segmentation *segment.Segmentation
	Stats        Stats
}

// Run segments triangles and colors every point by the distance from its
// segment to the nearest point of any other segment. No output is returned
// unless every stage completes.
func Run(ctx context.Context, triangles []geometry.Triangle, opts Options) (*Result, error) {
	start := time.Now()
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	graph := adjacency.Build(triangles, opts.Radius)
	log.Debug("adjacency built",
		zap.Int("triangles", len(triangles)),
		zap.Int("edges", graph.EdgeCount()),
		zap.Float64("radius", opts.Radius))

	seg := segment.Cluster(len(triangles), graph)
	log.Debug("segments clustered", zap.Int("segments", seg.Len()))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	colorings, err := colorSegments(ctx, triangles, seg, opts, log)
	if err != nil {
		return nil, err
	}

	builder := output.NewBuilder(3 * len(triangles))
	stats := Stats{
		Triangles:      len(triangles),
		AdjacencyEdges: graph.EdgeCount(),
		Segments:       make([]SegmentStats, seg.Len()),
	}
	for i, s := range seg.Segments() {
		c := colorings[i]
		if err := builder.AppendChunk(c.Chunk); err != nil {
			return nil, fmt.Errorf("segment %d: %w", s.Root, err)
		}
		if c.Isolated() {
			stats.Isolated++
		}
		stats.Segments[i] = SegmentStats{
			Root:        s.Root,
			Triangles:   s.Size(),
			External:    c.External,
			MinDistance: c.MinDistance,
			MaxDistance: c.MaxDistance,
		}
	}

	mesh, err := builder.Freeze(len(triangles))
	if err != nil {
		return nil, err
	}
	stats.Elapsed = time.Since(start)

	log.Info("segmentation complete",
		zap.Int("triangles", stats.Triangles),
		zap.Int("segments", len(stats.Segments)),
		zap.Int("isolated", stats.Isolated),
		zap.Duration("elapsed", stats.Elapsed))

	return &Result{
		Mesh:         mesh,
		Graph:        graph,
		Segmentation: seg,
		Stats:        stats,
	}, nil
}

// colorSegments colors every segment into its own chunk. Chunks are indexed
// by segment order so concurrent runs assemble the same output as
// sequential ones.
func colorSegments(ctx context.Context, triangles []geometry.Triangle, seg *segment.Segmentation, opts Options, log *zap.Logger) ([]proximity.SegmentColoring, error) {
	mapper := proximity.Mapper{Mode: opts.Mode}
	segments := seg.Segments()
	colorings := make([]proximity.SegmentColoring, len(segments))

	colorOne := func(i int) {
		s := segments[i]
		colorings[i] = mapper.ColorSegment(triangles, s.Members, seg.NonMembers(s.Root))
		log.Debug("segment colored",
			zap.Int("segment", s.Root),
			zap.Int("triangles", s.Size()),
			zap.Int("external_points", colorings[i].External))
	}

	if opts.Workers <= 1 {
		for i := range segments {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			colorOne(i)
		}
		return colorings, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i := range segments {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			colorOne(i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return colorings, nil
}
