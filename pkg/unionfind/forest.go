// Package unionfind implements a disjoint-set forest over integer ids with
// path compression and union by rank.
package unionfind

import "fmt"

// Forest is a disjoint-set forest. Ids must be registered with Add before
// they are used in any other call.
type Forest struct {
	parent map[int]int
	rank   map[int]int
	order  []int
}

// New creates an empty forest sized for capacity ids
func New(capacity int) *Forest {
	return &Forest{
		parent: make(map[int]int, capacity),
		rank:   make(map[int]int, capacity),
		order:  make([]int, 0, capacity),
	}
}

// Add registers x as a singleton set. Adding an id twice has no effect.
func (f *Forest) Add(x int) {
	if _, ok := f.parent[x]; ok {
		return
	}
	f.parent[x] = x
	f.rank[x] = 0
	f.order = append(f.order, x)
}

// Contains reports whether x has been registered
func (f *Forest) Contains(x int) bool {
	_, ok := f.parent[x]
	return ok
}

// Len returns the number of registered ids
func (f *Forest) Len() int {
	return len(f.order)
}

// Find returns the root of the set containing x. It panics if x was never
// added.
func (f *Forest) Find(x int) int {
	p, ok := f.parent[x]
	if !ok {
		panic(fmt.Sprintf("unionfind: find on unregistered id %d", x))
	}
	if p == x {
		return x
	}

	root := p
	for {
		next := f.parent[root]
		if next == root {
			break
		}
		root = next
	}

	for x != root {
		next := f.parent[x]
		f.parent[x] = root
		x = next
	}
	return root
}

// Unite merges the sets containing x and y
func (f *Forest) Unite(x, y int) {
	rootX := f.Find(x)
	rootY := f.Find(y)
	if rootX == rootY {
		return
	}

	switch rx, ry := f.rank[rootX], f.rank[rootY]; {
	case rx > ry:
		f.parent[rootY] = rootX
	case rx < ry:
		f.parent[rootX] = rootY
	default:
		f.parent[rootY] = rootX
		f.rank[rootX]++
	}
}

// Roots returns the distinct roots ordered by the first registered id of
// each set.
func (f *Forest) Roots() []int {
	seen := make(map[int]struct{})
	var roots []int
	for _, x := range f.order {
		r := f.Find(x)
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		roots = append(roots, r)
	}
	return roots
}

// MembersOf returns every id sharing the root of element, in registration
// order. It scans all ids.
func (f *Forest) MembersOf(element int) []int {
	root := f.Find(element)
	var members []int
	for _, x := range f.order {
		if f.Find(x) == root {
			members = append(members, x)
		}
	}
	return members
}

// NonMembersOf returns every id not sharing the root of element, in
// registration order. It scans all ids.
func (f *Forest) NonMembersOf(element int) []int {
	root := f.Find(element)
	var others []int
	for _, x := range f.order {
		if f.Find(x) != root {
			others = append(others, x)
		}
	}
	return others
}
