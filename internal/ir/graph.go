package ir

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// NoVertex stands for a missing vertex reference (for example the idom of the entry)
const NoVertex = -1

// Vertex is a basic block. Every reference to another vertex (predecessor,
// successor, immediate dominator, dominator-tree child) is an index into the
// owning Graph, so back-edges and the dominator tree overlay never form
// ownership cycles.
type Vertex struct {
	Index  int // position in Graph.Vertices, stable for the graph lifetime
	Number int // block number assigned by the builder
	Stmts  []*Stmt
	Preds  []int
	Succs  []int

	// Dominator tree overlay
	Idom     int
	Children []int

	// Order is the traversal index of the last numbering pass. Each algorithm
	// that depends on it renumbers first.
	Order     int
	Reachable bool
	visited   bool
}

// InsertHead prepends a statement (phi functions go here)
func (v *Vertex) InsertHead(s *Stmt) {
	v.Stmts = append([]*Stmt{s}, v.Stmts...)
}

// Append adds a statement at the end of the block
func (v *Vertex) Append(s *Stmt) {
	v.Stmts = append(v.Stmts, s)
}

// PredIndices returns every position of pred in the predecessor list of v
func (v *Vertex) PredIndices(pred int) []int {
	var idx []int
	for i, p := range v.Preds {
		if p == pred {
			idx = append(idx, i)
		}
	}
	return idx
}

// Phis returns the leading phi statements of the block
func (v *Vertex) Phis() []*Stmt {
	var phis []*Stmt
	for _, s := range v.Stmts {
		if s.Kind != KindPhi {
			break
		}
		phis = append(phis, s)
	}
	return phis
}

// Graph owns the vertices of one function in creation order. Vertex 0 is the entry.
type Graph struct {
	Vertices []*Vertex

	dominated bool
	frontier  []mapset.Set[int] // nil until computed, then one set per vertex
	placed    map[string]bool
}

// NewGraph creates an empty graph
func NewGraph() *Graph {
	return &Graph{
		Vertices: []*Vertex{},
		placed:   make(map[string]bool),
	}
}

// AddVertex creates a new empty, unconnected vertex
func (g *Graph) AddVertex() *Vertex {
	v := &Vertex{
		Index:  len(g.Vertices),
		Number: len(g.Vertices),
		Stmts:  []*Stmt{},
		Preds:  []int{},
		Succs:  []int{},
		Idom:   NoVertex,
	}
	g.Vertices = append(g.Vertices, v)
	return v
}

// Connect adds the edge from -> to. Parallel edges are kept.
func (g *Graph) Connect(from, to *Vertex) {
	from.Succs = append(from.Succs, to.Index)
	to.Preds = append(to.Preds, from.Index)
}

// Entry returns vertex 0, or nil for an empty graph
func (g *Graph) Entry() *Vertex {
	if len(g.Vertices) == 0 {
		return nil
	}
	return g.Vertices[0]
}

// Vertex returns the vertex at index i
func (g *Graph) Vertex(i int) *Vertex {
	return g.Vertices[i]
}

// Len returns the number of vertices
func (g *Graph) Len() int { return len(g.Vertices) }

// ReachableCount returns how many vertices the last numbering pass reached
func (g *Graph) ReachableCount() int {
	n := 0
	for _, v := range g.Vertices {
		if v.Reachable {
			n++
		}
	}
	return n
}

func (g *Graph) resetVisited() {
	for _, v := range g.Vertices {
		v.visited = false
	}
}

// numberDFS assigns a depth-first preorder index to every vertex reachable
// from the entry and marks reachability. Unreachable vertices get Order -1.
// Successors are explored in edge order.
func (g *Graph) numberDFS() []int {
	g.resetVisited()
	for _, v := range g.Vertices {
		v.Order = -1
		v.Reachable = false
	}
	if len(g.Vertices) == 0 {
		return nil
	}

	var order []int
	stack := []int{0}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		v := g.Vertices[i]
		if v.visited {
			continue
		}
		v.visited = true
		v.Reachable = true
		v.Order = len(order)
		order = append(order, i)

		for k := len(v.Succs) - 1; k >= 0; k-- {
			if !g.Vertices[v.Succs[k]].visited {
				stack = append(stack, v.Succs[k])
			}
		}
	}
	return order
}

// postorder returns the reachable vertices in CFG postorder from the entry
func (g *Graph) postorder() []int {
	g.resetVisited()
	var order []int

	var dfs func(i int)
	dfs = func(i int) {
		v := g.Vertices[i]
		if v.visited {
			return
		}
		v.visited = true
		for _, s := range v.Succs {
			dfs(s)
		}
		order = append(order, i)
	}
	if len(g.Vertices) > 0 {
		dfs(0)
	}
	return order
}

func (g *Graph) reversePostorder() []int {
	po := g.postorder()
	rpo := make([]int, len(po))
	for i, v := range po {
		rpo[len(po)-1-i] = v
	}
	return rpo
}

// domTreePostorder returns the dominator tree vertices rooted at the entry,
// children before parents
func (g *Graph) domTreePostorder() []int {
	var order []int

	var walk func(i int)
	walk = func(i int) {
		for _, c := range g.Vertices[i].Children {
			walk(c)
		}
		order = append(order, i)
	}
	if len(g.Vertices) > 0 {
		walk(0)
	}
	return order
}

// Dominates reports whether vertex a dominates vertex b. Every reachable
// vertex dominates itself. Unreachable vertices dominate nothing and are
// dominated by nothing.
func (g *Graph) Dominates(a, b int) bool {
	if !g.Vertices[a].Reachable || !g.Vertices[b].Reachable {
		return false
	}
	for v := b; v != NoVertex; v = g.Vertices[v].Idom {
		if v == a {
			return true
		}
	}
	return false
}

// StrictlyDominates reports whether a dominates b and a != b
func (g *Graph) StrictlyDominates(a, b int) bool {
	return a != b && g.Dominates(a, b)
}
