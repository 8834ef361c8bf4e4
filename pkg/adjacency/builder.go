package adjacency

import (
	"math"

	"github.com/philipparndt/surfseg/pkg/geometry"
)

// DefaultRadius is the default proximity radius for near-shared vertices
const DefaultRadius = geometry.DefaultAdjacencyRadius

const (
	// cellSlack keeps the grid cell strictly larger than the radius so that
	// rounding in the cell division can never push two vertices within
	// radius more than one cell apart.
	cellSlack = 1.01

	// maxCellIndex bounds grid coordinates. Vertices beyond it are compared
	// against every triangle instead.
	maxCellIndex = 1 << 52
)

type cellKey [3]int64

// neighborhood holds the 27 cell offsets of a cell and its neighbors
var neighborhood []cellKey

func init() {
	for _, x := range []int64{-1, 0, 1} {
		for _, y := range []int64{-1, 0, 1} {
			for _, z := range []int64{-1, 0, 1} {
				neighborhood = append(neighborhood, cellKey{x, y, z})
			}
		}
	}
}

type pair struct {
	a, b int
}

// Build computes the adjacency graph of triangles. Two triangles are adjacent
// when any vertex of one equals, or lies within radius of, any vertex of the
// other. Vertices are bucketed into a uniform grid with cells larger than
// radius, so only triangles sharing or bordering a cell are tested. The
// result is identical to BuildBruteForce.
func Build(triangles []geometry.Triangle, radius float64) *Graph {
	g := newGraph(len(triangles))
	if len(triangles) < 2 {
		return g.finish()
	}

	cellSize := radius * cellSlack
	if math.IsInf(cellSize, 1) {
		// Every pair lies within radius; no grid can bound the candidates.
		return BuildBruteForce(triangles, radius)
	}
	if !(cellSize > 0) {
		// Only exact matches can connect; any cell size keeps equal
		// vertices together.
		cellSize = 1
	}

	cells := make(map[cellKey][]int)
	var overflow []int
	for i, t := range triangles {
		spilled := false
		for _, v := range t.Vertices() {
			key, ok := cellOf(v, cellSize)
			if !ok {
				if !spilled {
					overflow = append(overflow, i)
					spilled = true
				}
				continue
			}
			list := cells[key]
			if n := len(list); n > 0 && list[n-1] == i {
				continue
			}
			cells[key] = append(list, i)
		}
	}

	tested := make(map[pair]struct{})
	test := func(i, j int) {
		if i == j {
			return
		}
		if i > j {
			i, j = j, i
		}
		p := pair{i, j}
		if _, ok := tested[p]; ok {
			return
		}
		tested[p] = struct{}{}
		if triangles[i].SharesVertexWith(triangles[j], radius) {
			g.addEdge(i, j)
		}
	}

	for key, members := range cells {
		for _, offset := range neighborhood {
			other, ok := cells[cellKey{key[0] + offset[0], key[1] + offset[1], key[2] + offset[2]}]
			if !ok {
				continue
			}
			for _, i := range members {
				for _, j := range other {
					test(i, j)
				}
			}
		}
	}

	for _, i := range overflow {
		for j := range triangles {
			test(i, j)
		}
	}

	return g.finish()
}

// BuildBruteForce tests every unordered triangle pair. It is quadratic in the
// triangle count and serves as the reference for Build.
func BuildBruteForce(triangles []geometry.Triangle, radius float64) *Graph {
	g := newGraph(len(triangles))
	for i := 0; i < len(triangles); i++ {
		for j := i + 1; j < len(triangles); j++ {
			if triangles[i].SharesVertexWith(triangles[j], radius) {
				g.addEdge(i, j)
			}
		}
	}
	return g.finish()
}

func cellOf(v geometry.Vector3, cellSize float64) (cellKey, bool) {
	if !v.IsFinite() {
		return cellKey{}, false
	}
	var key cellKey
	for axis, c := range v.Components() {
		q := math.Floor(c / cellSize)
		if math.Abs(q) >= maxCellIndex {
			return cellKey{}, false
		}
		key[axis] = int64(q)
	}
	return key, true
}
