// Package proximity colors every mesh point by how close its segment comes
// to the rest of the mesh.
package proximity

import (
	"fmt"
	"math"
	"strings"

	"github.com/philipparndt/surfseg/pkg/output"
)

const (
	// logisticCenter is the distance mapped to an even red/blue mix
	logisticCenter = 100.0
	// logisticSteepness scales the distance before the sigmoid
	logisticSteepness = 0.1
)

// SentinelColor is used for zero distances and for segments with no
// external points.
var SentinelColor = output.Color{R: 0, G: 0, B: 255}

// ColorForDistance maps a nearest-neighbor distance to a red/blue color.
// Far points trend to red, close points to blue. A distance that is not
// positive yields SentinelColor.
func ColorForDistance(d float64) output.Color {
	if !(d > 0) {
		return SentinelColor
	}
	red := uint8(math.Floor(255 / (1 + math.Exp(-logisticSteepness*(d-logisticCenter)))))
	return output.Color{R: red, G: 0, B: 255 - red}
}

// QueryMode selects which position is used for a vertex's nearest-neighbor
// query.
type QueryMode int

const (
	// QueryOwnVertex queries every vertex at its own position.
	QueryOwnVertex QueryMode = iota
	// QueryFirstVertex queries all three vertices of a triangle at V1 so a
	// triangle is colored by the distance of its first corner.
	QueryFirstVertex
)

// ParseQueryMode accepts "own" or "first"
func ParseQueryMode(s string) (QueryMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "own":
		return QueryOwnVertex, nil
	case "first":
		return QueryFirstVertex, nil
	default:
		return 0, fmt.Errorf("invalid query mode %q (expected own or first)", s)
	}
}

func (m QueryMode) String() string {
	switch m {
	case QueryOwnVertex:
		return "own"
	case QueryFirstVertex:
		return "first"
	default:
		return fmt.Sprintf("QueryMode(%d)", int(m))
	}
}
