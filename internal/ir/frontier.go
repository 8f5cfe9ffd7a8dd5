package ir

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
)

// ComputeFrontiers builds the dominance frontier of every vertex using the
// Cytron et al. local/up decomposition. Vertices are visited in postorder of
// the dominator tree so every child frontier exists before its parent needs
// it. Unreachable vertices get an empty frontier.
func (g *Graph) ComputeFrontiers() error {
	if !g.dominated {
		return ErrDominatorsNotComputed
	}

	df := make([]mapset.Set[int], len(g.Vertices))
	for i := range df {
		df[i] = mapset.NewThreadUnsafeSet[int]()
	}

	for _, n := range g.domTreePostorder() {
		v := g.Vertices[n]
		// local
		for _, s := range v.Succs {
			if g.Vertices[s].Idom != n {
				df[n].Add(s)
			}
		}
		// up
		for _, c := range v.Children {
			df[c].Each(func(z int) bool {
				if g.Vertices[z].Idom != n {
					df[n].Add(z)
				}
				return false
			})
		}
	}

	g.frontier = df
	return nil
}

// HasFrontiers reports whether the dominance frontier has been computed
func (g *Graph) HasFrontiers() bool { return g.frontier != nil }

// Frontier returns DF(v) as sorted vertex indices, or nil when not computed
func (g *Graph) Frontier(v int) []int {
	if g.frontier == nil {
		return nil
	}
	return sortedIndices(g.frontier[v])
}

// FrontierSizes returns |DF(v)| for every vertex, or nil when not computed
func (g *Graph) FrontierSizes() []int {
	if g.frontier == nil {
		return nil
	}
	sizes := make([]int, len(g.frontier))
	for i, df := range g.frontier {
		sizes[i] = df.Cardinality()
	}
	return sizes
}

// frontierOf returns the union of DF(v) for v in set
func (g *Graph) frontierOf(set mapset.Set[int]) mapset.Set[int] {
	result := mapset.NewThreadUnsafeSet[int]()
	set.Each(func(v int) bool {
		result = result.Union(g.frontier[v])
		return false
	})
	return result
}

// IteratedFrontier returns DF+(set): the frontier of the set grown by its own
// frontier until the frontier stops changing.
func (g *Graph) IteratedFrontier(set mapset.Set[int]) (mapset.Set[int], error) {
	if g.frontier == nil {
		return nil, ErrFrontierNotComputed
	}

	s := mapset.NewThreadUnsafeSet(set.ToSlice()...)
	f := g.frontierOf(s)
	for {
		next := s.Union(f)
		nf := g.frontierOf(next)
		if nf.Equal(f) {
			return f, nil
		}
		f, s = nf, next
	}
}

func sortedIndices(set mapset.Set[int]) []int {
	out := set.ToSlice()
	sort.Ints(out)
	return out
}
