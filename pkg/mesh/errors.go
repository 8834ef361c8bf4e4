package mesh

import (
	"errors"
	"fmt"
)

var (
	// ErrFileAccess is returned when the mesh source cannot be opened or read.
	ErrFileAccess = errors.New("mesh file not accessible")

	// ErrMalformedRecord marks a record that was skipped during loading.
	ErrMalformedRecord = errors.New("malformed record")
)

// Diagnostic describes one skipped input record
type Diagnostic struct {
	Line int
	Text string
	Err  error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %v: %q", d.Line, d.Err, d.Text)
}
