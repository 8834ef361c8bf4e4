package adjacency

import "sort"

// Graph is an undirected triangle adjacency graph over indices 0..Len()-1.
// j is a neighbor of i exactly when i is a neighbor of j.
type Graph struct {
	neighbors [][]int
	edges     int
}

func newGraph(n int) *Graph {
	return &Graph{neighbors: make([][]int, n)}
}

// addEdge records the undirected edge i-j. Callers guarantee i != j and that
// each pair is added once.
func (g *Graph) addEdge(i, j int) {
	g.neighbors[i] = append(g.neighbors[i], j)
	g.neighbors[j] = append(g.neighbors[j], i)
	g.edges++
}

func (g *Graph) finish() *Graph {
	for _, n := range g.neighbors {
		sort.Ints(n)
	}
	return g
}

// Len returns the number of triangles the graph was built for
func (g *Graph) Len() int {
	return len(g.neighbors)
}

// Neighbors returns the ascending neighbor indices of triangle i. The slice
// must not be modified.
func (g *Graph) Neighbors(i int) []int {
	return g.neighbors[i]
}

// Has reports whether triangles i and j are adjacent
func (g *Graph) Has(i, j int) bool {
	n := g.neighbors[i]
	k := sort.SearchInts(n, j)
	return k < len(n) && n[k] == j
}

// EdgeCount returns the number of undirected edges
func (g *Graph) EdgeCount() int {
	return g.edges
}

// Edges returns every undirected edge once as (i, j) with i < j, ordered by i
// then j.
func (g *Graph) Edges() [][2]int {
	edges := make([][2]int, 0, g.edges)
	for i, n := range g.neighbors {
		for _, j := range n {
			if i < j {
				edges = append(edges, [2]int{i, j})
			}
		}
	}
	return edges
}
