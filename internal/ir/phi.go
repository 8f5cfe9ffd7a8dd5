package ir

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
)

// Defs returns the reachable vertices holding at least one assignment to name,
// renamed or not
func (g *Graph) Defs(name string) mapset.Set[int] {
	defs := mapset.NewThreadUnsafeSet[int]()
	for _, v := range g.Vertices {
		if !v.Reachable {
			continue
		}
		for _, s := range v.Stmts {
			if s.Kind == KindAssign && s.Target.Name == name {
				defs.Add(v.Index)
				break
			}
		}
	}
	return defs
}

// PlacePhis inserts a phi for name at the head of every vertex in the
// iterated dominance frontier of its defining blocks. Each phi gets one
// unversioned slot per predecessor. Placing twice for the same variable is
// refused. It returns the vertices that received a phi, in index order.
func (g *Graph) PlacePhis(name string) ([]int, error) {
	if g.frontier == nil {
		return nil, ErrFrontierNotComputed
	}
	if g.placed[name] {
		return nil, fmt.Errorf("%s: %w", name, ErrPhiAlreadyPlaced)
	}

	places, err := g.IteratedFrontier(g.Defs(name))
	if err != nil {
		return nil, err
	}

	sites := sortedIndices(places)
	for _, i := range sites {
		v := g.Vertices[i]
		v.InsertHead(NewPhi(name, len(v.Preds)))
	}
	g.placed[name] = true
	return sites, nil
}
