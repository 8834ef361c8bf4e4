package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/philipparndt/surfseg/internal/config"
	"github.com/philipparndt/surfseg/pkg/adjacency"
	"github.com/philipparndt/surfseg/pkg/geometry"
	"github.com/philipparndt/surfseg/pkg/mesh"
	"github.com/philipparndt/surfseg/pkg/segment"
	"github.com/spf13/cobra"
)

var (
	infoCount int
	infoFlags config.Flags
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display mesh and segment statistics",
	Long:  "Show triangle and adjacency counts, the bounding box and the largest segments of a mesh without coloring it.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().IntVarP(&infoCount, "count", "n", 10, "Number of segments to list")
	infoCmd.Flags().Float64VarP(&infoFlags.Radius, "radius", "r", 0, "Adjacency radius for near-shared vertices (default 0.0025)")
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]

	cfg, err := loadConfig(configFile, infoFlags, filename)
	if err != nil {
		return err
	}

	model, diagnostics, err := mesh.Load(filename)
	if err != nil {
		return err
	}

	graph := adjacency.Build(model.Triangles, cfg.Radius)
	seg := segment.Cluster(model.TriangleCount(), graph)

	printInfo(cmd.OutOrStdout(), filename, model, diagnostics, graph, seg, cfg.Radius, infoCount)
	return nil
}

func printInfo(w io.Writer, filename string, model *mesh.Model, diagnostics []mesh.Diagnostic, graph *adjacency.Graph, seg *segment.Segmentation, radius float64, count int) {
	fmt.Fprintln(w, "Mesh Information")
	fmt.Fprintln(w, "================")
	if model.Name != "" {
		fmt.Fprintf(w, "Name: %s\n", model.Name)
	}
	fmt.Fprintf(w, "File: %s\n\n", filename)

	fmt.Fprintln(w, "Mesh Statistics:")
	fmt.Fprintf(w, "  Triangles: %d\n", model.TriangleCount())
	fmt.Fprintf(w, "  Skipped records: %d\n", len(diagnostics))
	fmt.Fprintf(w, "  Surface area: %.6f units²\n", model.SurfaceArea())
	fmt.Fprintf(w, "  Centroid: %s\n", formatVector(model.Centroid()))
	fmt.Fprintf(w, "  Adjacency radius: %g\n", radius)
	fmt.Fprintf(w, "  Adjacency edges: %d\n", graph.EdgeCount())
	fmt.Fprintf(w, "  Segments: %d\n\n", seg.Len())

	if bbox := model.BoundingBox(); !bbox.Empty() {
		fmt.Fprintln(w, "Bounding Box:")
		fmt.Fprintf(w, "  Min: %s\n", formatVector(bbox.Min))
		fmt.Fprintf(w, "  Max: %s\n", formatVector(bbox.Max))
		fmt.Fprintf(w, "  Diagonal: %.6f units\n\n", bbox.Diagonal())
	}

	segments := append([]segment.Segment(nil), seg.Segments()...)
	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].Size() > segments[j].Size()
	})
	if count > len(segments) {
		count = len(segments)
	}

	if count > 0 {
		fmt.Fprintf(w, "Largest %d Segments:\n", count)
		fmt.Fprintf(w, "  %-8s %-10s %-10s\n", "Root", "Triangles", "Points")
		for _, s := range segments[:count] {
			fmt.Fprintf(w, "  %-8d %-10d %-10d\n", s.Root, s.Size(), 3*s.Size())
		}
	}

	if len(diagnostics) > 0 {
		fmt.Fprintln(w, "\nSkipped Records:")
		for _, d := range diagnostics {
			fmt.Fprintf(w, "  %s\n", d)
		}
	}
}

// formatVector formats a 3D vector
func formatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
