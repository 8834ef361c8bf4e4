package mesh

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/philipparndt/surfseg/pkg/geometry"
)

// fieldsPerRecord is three vertices of three coordinates each
const fieldsPerRecord = 9

// ParseRecords reads one triangle per line, each line holding nine
// comma-separated coordinates (x1,y1,z1,x2,y2,z2,x3,y3,z3). Lines with a
// different field count or a non-numeric field are skipped and reported as
// diagnostics. Blank lines are ignored.
func ParseRecords(reader io.Reader) (*Model, []Diagnostic, error) {
	// Records have no length limit, so lines are read whole instead of
	// through a bounded scanner buffer.
	buffered := bufio.NewReader(reader)
	model := NewModel("")

	var diagnostics []Diagnostic
	lineNo := 0

	for {
		raw, readErr := buffered.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, diagnostics, fmt.Errorf("error reading records: %w", readErr)
		}
		if readErr == io.EOF && raw == "" {
			break
		}

		lineNo++
		line := strings.TrimSpace(raw)
		if line != "" {
			triangle, err := parseRecord(line)
			if err != nil {
				diagnostics = append(diagnostics, Diagnostic{
					Line: lineNo,
					Text: line,
					Err:  err,
				})
			} else {
				model.AddTriangle(triangle)
			}
		}

		if readErr == io.EOF {
			break
		}
	}

	return model, diagnostics, nil
}

func parseRecord(line string) (geometry.Triangle, error) {
	fields := strings.Split(line, ",")
	if len(fields) != fieldsPerRecord {
		return geometry.Triangle{}, fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedRecord, fieldsPerRecord, len(fields))
	}

	var values [fieldsPerRecord]float64
	for i, field := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return geometry.Triangle{}, fmt.Errorf("%w: field %d: %v", ErrMalformedRecord, i+1, err)
		}
		values[i] = v
	}

	return geometry.NewTriangle(
		geometry.NewVector3(values[0], values[1], values[2]),
		geometry.NewVector3(values[3], values[4], values[5]),
		geometry.NewVector3(values[6], values[7], values[8]),
	), nil
}
