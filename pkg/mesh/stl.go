package mesh

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/philipparndt/surfseg/pkg/geometry"
)

// ParseSTL reads an ASCII or binary STL stream. Facet normals stored in the
// file are ignored; they are recomputed from the vertices when needed.
func ParseSTL(reader io.ReadSeeker) (*Model, []Diagnostic, error) {
	// Read first few bytes to determine format
	header := make([]byte, 6)
	n, err := io.ReadFull(reader, header)
	if err != nil && err != io.ErrUnexpectedEOF {
		return nil, nil, fmt.Errorf("failed to read STL header: %w", err)
	}

	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return nil, nil, fmt.Errorf("failed to reset file pointer: %w", err)
	}

	// Binary files may also start with "solid", so the ASCII path only wins
	// when a facet keyword follows.
	if n >= 5 && strings.HasPrefix(string(header[:5]), "solid") && looksLikeASCII(reader) {
		if _, err := reader.Seek(0, io.SeekStart); err != nil {
			return nil, nil, fmt.Errorf("failed to reset file pointer: %w", err)
		}
		return parseASCII(reader)
	}

	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return nil, nil, fmt.Errorf("failed to reset file pointer: %w", err)
	}
	model, err := parseBinary(reader)
	return model, nil, err
}

func looksLikeASCII(reader io.Reader) bool {
	probe := make([]byte, 512)
	n, _ := io.ReadFull(reader, probe)
	text := string(probe[:n])
	return strings.Contains(text, "facet") || strings.Contains(text, "endsolid")
}

// parseASCII parses an ASCII STL file
func parseASCII(reader io.Reader) (*Model, []Diagnostic, error) {
	scanner := bufio.NewScanner(reader)
	model := NewModel("")

	var diagnostics []Diagnostic
	var vertices []geometry.Vector3
	var facetErr error
	facetLine := 0
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		fields := strings.Fields(line)

		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				model.Name = strings.Join(fields[1:], " ")
			}

		case "facet":
			vertices = vertices[:0]
			facetErr = nil
			facetLine = lineNo

		case "vertex":
			v, err := parseVertexFields(fields[1:])
			if err != nil {
				facetErr = err
				continue
			}
			vertices = append(vertices, v)

		case "endfacet":
			switch {
			case facetErr != nil:
				diagnostics = append(diagnostics, Diagnostic{Line: facetLine, Text: "facet", Err: facetErr})
			case len(vertices) != 3:
				diagnostics = append(diagnostics, Diagnostic{
					Line: facetLine,
					Text: "facet",
					Err:  fmt.Errorf("%w: expected 3 vertices, got %d", ErrMalformedRecord, len(vertices)),
				})
			default:
				model.AddTriangle(geometry.NewTriangle(vertices[0], vertices[1], vertices[2]))
			}
			vertices = vertices[:0]
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, diagnostics, fmt.Errorf("error reading ASCII STL: %w", err)
	}

	return model, diagnostics, nil
}

func parseVertexFields(fields []string) (geometry.Vector3, error) {
	if len(fields) != 3 {
		return geometry.Vector3{}, fmt.Errorf("%w: vertex needs 3 coordinates, got %d", ErrMalformedRecord, len(fields))
	}
	var c [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return geometry.Vector3{}, fmt.Errorf("%w: vertex coordinate %d: %v", ErrMalformedRecord, i+1, err)
		}
		c[i] = v
	}
	return geometry.NewVector3(c[0], c[1], c[2]), nil
}

// parseBinary parses a binary STL file
func parseBinary(reader io.Reader) (*Model, error) {
	model := NewModel("")

	// Read 80-byte header
	header := make([]byte, 80)
	if _, err := io.ReadFull(reader, header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	headerStr := strings.TrimSpace(string(bytes.TrimRight(header, "\x00")))
	if len(headerStr) > 0 {
		model.Name = headerStr
	}

	var triangleCount uint32
	if err := binary.Read(reader, binary.LittleEndian, &triangleCount); err != nil {
		return nil, fmt.Errorf("failed to read triangle count: %w", err)
	}

	// normal, three vertices, attribute byte count
	var facet struct {
		Normal     [3]float32
		V1, V2, V3 [3]float32
		Attribute  uint16
	}

	for i := uint32(0); i < triangleCount; i++ {
		if err := binary.Read(reader, binary.LittleEndian, &facet); err != nil {
			return nil, fmt.Errorf("failed to read triangle %d: %w", i, err)
		}
		model.AddTriangle(geometry.NewTriangle(
			toVector(facet.V1),
			toVector(facet.V2),
			toVector(facet.V3),
		))
	}

	return model, nil
}

func toVector(v [3]float32) geometry.Vector3 {
	return geometry.NewVector3(float64(v[0]), float64(v[1]), float64(v[2]))
}
