// Package segment groups triangles into connected segments and keeps a
// root to members index so membership queries do not rescan the forest.
package segment

import (
	"fmt"

	"github.com/philipparndt/surfseg/pkg/adjacency"
	"github.com/philipparndt/surfseg/pkg/unionfind"
)

// Segment is a maximal set of transitively adjacent triangles
type Segment struct {
	Root    int
	Members []int
}

// Size returns the number of triangles in the segment
func (s Segment) Size() int {
	return len(s.Members)
}

// Segmentation is the frozen result of clustering n triangles
type Segmentation struct {
	segments []Segment
	byRoot   map[int]int
	rootOf   []int
}

// Cluster registers every triangle 0..n-1 in a disjoint-set forest and
// unites the endpoints of every adjacency edge. Segments are ordered by their
// smallest triangle index, members ascend.
func Cluster(n int, g *adjacency.Graph) *Segmentation {
	if g.Len() != n {
		panic(fmt.Sprintf("segment: graph has %d nodes, expected %d", g.Len(), n))
	}

	forest := unionfind.New(n)
	for i := 0; i < n; i++ {
		forest.Add(i)
	}
	for _, e := range g.Edges() {
		forest.Unite(e[0], e[1])
	}

	return fromForest(forest, n)
}

func fromForest(forest *unionfind.Forest, n int) *Segmentation {
	s := &Segmentation{
		byRoot: make(map[int]int),
		rootOf: make([]int, n),
	}
	for i := 0; i < n; i++ {
		root := forest.Find(i)
		s.rootOf[i] = root
		idx, ok := s.byRoot[root]
		if !ok {
			idx = len(s.segments)
			s.byRoot[root] = idx
			s.segments = append(s.segments, Segment{Root: root})
		}
		s.segments[idx].Members = append(s.segments[idx].Members, i)
	}
	return s
}

// Len returns the number of segments
func (s *Segmentation) Len() int {
	return len(s.segments)
}

// TriangleCount returns the number of clustered triangles
func (s *Segmentation) TriangleCount() int {
	return len(s.rootOf)
}

// Segments returns all segments. The slice must not be modified.
func (s *Segmentation) Segments() []Segment {
	return s.segments
}

// RootOf returns the segment root of triangle i
func (s *Segmentation) RootOf(i int) int {
	return s.rootOf[i]
}

// Members returns the triangles of the segment identified by root
func (s *Segmentation) Members(root int) []int {
	idx, ok := s.byRoot[root]
	if !ok {
		panic(fmt.Sprintf("segment: unknown root %d", root))
	}
	return s.segments[idx].Members
}

// NonMembers returns every triangle outside the segment identified by root,
// ascending.
func (s *Segmentation) NonMembers(root int) []int {
	members := s.Members(root)
	others := make([]int, 0, len(s.rootOf)-len(members))
	for i, r := range s.rootOf {
		if r != root {
			others = append(others, i)
		}
	}
	return others
}

// Sizes returns the triangle count of every segment in segment order
func (s *Segmentation) Sizes() []int {
	sizes := make([]int, len(s.segments))
	for i, seg := range s.segments {
		sizes[i] = seg.Size()
	}
	return sizes
}
