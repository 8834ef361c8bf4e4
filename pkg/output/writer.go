package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
)

// Format selects an output file format
type Format string

const (
	FormatPLY  Format = "ply"
	FormatVTK  Format = "vtk"
	FormatJSON Format = "json"
)

// FormatFromPath derives the format from a file extension
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")); ext {
	case "ply":
		return FormatPLY, nil
	case "vtk":
		return FormatVTK, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (expected .ply, .vtk or .json)", ext)
	}
}

// Save writes m to path in the format given by its extension
func Save(path string, m *Mesh) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := Write(file, format, m); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return file.Close()
}

// Write encodes m in the given format
func Write(w io.Writer, format Format, m *Mesh) error {
	switch format {
	case FormatPLY:
		return WritePLY(w, m)
	case FormatVTK:
		return WriteVTK(w, m)
	case FormatJSON:
		return WriteJSON(w, m)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// WritePLY writes an ASCII PLY file with per-vertex colors
func WritePLY(w io.Writer, m *Mesh) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "ply")
	fmt.Fprintln(bw, "format ascii 1.0")
	fmt.Fprintln(bw, "comment generated by surfseg")
	fmt.Fprintf(bw, "element vertex %d\n", len(m.points))
	fmt.Fprintln(bw, "property double x")
	fmt.Fprintln(bw, "property double y")
	fmt.Fprintln(bw, "property double z")
	fmt.Fprintln(bw, "property uchar red")
	fmt.Fprintln(bw, "property uchar green")
	fmt.Fprintln(bw, "property uchar blue")
	fmt.Fprintf(bw, "element face %d\n", len(m.cells))
	fmt.Fprintln(bw, "property list uchar int vertex_indices")
	fmt.Fprintln(bw, "end_header")

	for i, p := range m.points {
		c := m.colors[i]
		fmt.Fprintf(bw, "%g %g %g %d %d %d\n", p.X, p.Y, p.Z, c.R, c.G, c.B)
	}
	for _, cell := range m.cells {
		fmt.Fprintf(bw, "3 %d %d %d\n", cell[0], cell[1], cell[2])
	}

	return bw.Flush()
}

// WriteVTK writes a legacy ASCII VTK polydata file with the colors stored as
// point scalars named "Colors".
func WriteVTK(w io.Writer, m *Mesh) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "# vtk DataFile Version 3.0")
	fmt.Fprintln(bw, "surfseg proximity coloring")
	fmt.Fprintln(bw, "ASCII")
	fmt.Fprintln(bw, "DATASET POLYDATA")
	fmt.Fprintf(bw, "POINTS %d double\n", len(m.points))
	for _, p := range m.points {
		fmt.Fprintf(bw, "%g %g %g\n", p.X, p.Y, p.Z)
	}

	fmt.Fprintf(bw, "POLYGONS %d %d\n", len(m.cells), 4*len(m.cells))
	for _, cell := range m.cells {
		fmt.Fprintf(bw, "3 %d %d %d\n", cell[0], cell[1], cell[2])
	}

	fmt.Fprintf(bw, "POINT_DATA %d\n", len(m.points))
	fmt.Fprintln(bw, "COLOR_SCALARS Colors 3")
	for _, c := range m.colors {
		fmt.Fprintf(bw, "%g %g %g\n", float64(c.R)/255, float64(c.G)/255, float64(c.B)/255)
	}

	return bw.Flush()
}

type jsonMesh struct {
	Points [][3]float64 `json:"points"`
	Colors [][3]int     `json:"colors"`
	Cells  [][3]int     `json:"cells"`
}

// WriteJSON writes the mesh as {"points": [...], "colors": [...], "cells": [...]}
func WriteJSON(w io.Writer, m *Mesh) error {
	doc := jsonMesh{
		Points: make([][3]float64, len(m.points)),
		Colors: make([][3]int, len(m.colors)),
		Cells:  m.cells,
	}
	for i, p := range m.points {
		doc.Points[i] = p.Components()
	}
	for i, c := range m.colors {
		doc.Colors[i] = [3]int{int(c.R), int(c.G), int(c.B)}
	}

	enc := json.NewEncoder(w)
	return enc.Encode(doc)
}
