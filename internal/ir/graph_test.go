package ir

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// graphOf builds a graph with n vertices and the given edges, in order
func graphOf(n int, edges ...[2]int) *Graph {
	g := NewGraph()
	for i := 0; i < n; i++ {
		g.AddVertex()
	}
	for _, e := range edges {
		g.Connect(g.Vertices[e[0]], g.Vertices[e[1]])
	}
	return g
}

// shapes used across the dominance and frontier tests
var testGraphs = map[string]*struct {
	n     int
	edges [][2]int
}{
	"single":      {1, nil},
	"chain":       {3, [][2]int{{0, 1}, {1, 2}}},
	"diamond":     {5, [][2]int{{0, 1}, {1, 2}, {1, 3}, {2, 4}, {3, 4}}},
	"loop":        {5, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 2}, {2, 4}}},
	"self loop":   {3, [][2]int{{0, 1}, {1, 1}, {1, 2}}},
	"double edge": {3, [][2]int{{0, 1}, {1, 2}, {1, 2}}},
	"unreachable": {5, [][2]int{{0, 1}, {1, 2}, {3, 2}, {3, 4}}},
	"irreducible": {5, [][2]int{{0, 1}, {1, 2}, {1, 3}, {2, 3}, {3, 2}, {3, 4}}},
	"nested loops": {7, [][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 3}, {3, 5}, {5, 2}, {2, 6},
	}},
	// merge points fed by branches that are not nested in each other
	"crossed merges": {8, [][2]int{
		{0, 1}, {1, 2}, {1, 3}, {2, 4}, {3, 4}, {2, 5}, {3, 5}, {4, 6}, {5, 6}, {6, 7}, {4, 7},
	}},
}

func build(name string) *Graph {
	tg := testGraphs[name]
	return graphOf(tg.n, tg.edges...)
}

func randomGraph(r *rand.Rand, n int) *Graph {
	g := NewGraph()
	for i := 0; i < n; i++ {
		g.AddVertex()
	}
	for i := 0; i < n-1; i++ {
		g.Connect(g.Vertices[r.Intn(i+1)], g.Vertices[i+1])
	}
	for k := 0; k < n; k++ {
		from, to := r.Intn(n), 1+r.Intn(n-1)
		g.Connect(g.Vertices[from], g.Vertices[to])
	}
	return g
}

// pathDominates enumerates every simple path from the entry to v and reports
// whether all of them pass through d. It returns false when v is unreachable.
func pathDominates(g *Graph, d, v int) bool {
	onPath := make([]bool, len(g.Vertices))
	found := false
	all := true

	var dfs func(u int, seenD bool)
	dfs = func(u int, seenD bool) {
		if !all {
			return
		}
		seenD = seenD || u == d
		if u == v {
			found = true
			if !seenD {
				all = false
			}
			return
		}
		onPath[u] = true
		for _, s := range g.Vertices[u].Succs {
			if !onPath[s] {
				dfs(s, seenD)
			}
		}
		onPath[u] = false
	}
	dfs(0, false)
	return found && all
}

// ============================================================================
// Graph Construction Tests
// ============================================================================

func TestAddVertexAndConnect(t *testing.T) {
	g := NewGraph()
	a := g.AddVertex()
	b := g.AddVertex()
	g.Connect(a, b)
	g.Connect(a, b)

	assert.Equal(t, 2, g.Len())
	assert.Equal(t, 0, a.Index)
	assert.Equal(t, 1, b.Index)
	assert.Equal(t, NoVertex, b.Idom)
	assert.Equal(t, []int{1, 1}, a.Succs)
	assert.Equal(t, []int{0, 0}, b.Preds)
	assert.Equal(t, []int{0, 1}, b.PredIndices(0))
	assert.Same(t, a, g.Entry())
}

func TestEmptyGraph(t *testing.T) {
	g := NewGraph()
	assert.Nil(t, g.Entry())
	assert.ErrorIs(t, g.ComputeDominators(DominatorsReachability), ErrEmptyGraph)
	assert.ErrorIs(t, g.checkEntry(), ErrEmptyGraph)
}

func TestInsertHeadAndPhis(t *testing.T) {
	v := &Vertex{}
	v.Append(NewAssign("x", "", Lit("1")))
	v.InsertHead(NewPhi("y", 2))
	v.InsertHead(NewPhi("x", 2))

	require.Len(t, v.Stmts, 3)
	phis := v.Phis()
	require.Len(t, phis, 2)
	assert.Equal(t, "x", phis[0].Target.Name)
	assert.Equal(t, "y", phis[1].Target.Name)
}

func TestNumberDFSMarksReachability(t *testing.T) {
	g := build("unreachable")
	order := g.numberDFS()

	assert.Equal(t, []int{0, 1, 2}, order)
	assert.True(t, g.Vertices[2].Reachable)
	assert.False(t, g.Vertices[3].Reachable)
	assert.Equal(t, -1, g.Vertices[4].Order)
	assert.Equal(t, 3, g.ReachableCount())
}
