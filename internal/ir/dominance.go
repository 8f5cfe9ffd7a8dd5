package ir

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// DominatorAlgorithm selects how immediate dominators are computed. Both
// produce the same tree.
type DominatorAlgorithm int

const (
	// DominatorsReachability removes each vertex in turn and marks everything
	// that becomes unreachable from the entry as dominated by it. O(V·(V+E)).
	DominatorsReachability DominatorAlgorithm = iota
	// DominatorsIterative is the Cooper-Harvey-Kennedy fixpoint over reverse postorder.
	DominatorsIterative
)

func (a DominatorAlgorithm) String() string {
	switch a {
	case DominatorsReachability:
		return "reachability"
	case DominatorsIterative:
		return "iterative"
	default:
		return fmt.Sprintf("DominatorAlgorithm(%d)", int(a))
	}
}

// ParseDominatorAlgorithm maps a flag value to an algorithm
func ParseDominatorAlgorithm(s string) (DominatorAlgorithm, error) {
	switch s {
	case "reachability", "":
		return DominatorsReachability, nil
	case "iterative", "chk":
		return DominatorsIterative, nil
	default:
		return 0, fmt.Errorf("unknown dominator algorithm %q (want reachability or iterative)", s)
	}
}

// ComputeDominators fills Idom and Children for every vertex reachable from
// the entry. The entry is the root of the dominator tree and has no idom.
// Unreachable vertices keep NoVertex and are skipped by later phases.
// Any previously computed dominance frontier is discarded.
func (g *Graph) ComputeDominators(alg DominatorAlgorithm) error {
	if len(g.Vertices) == 0 {
		return ErrEmptyGraph
	}
	for _, v := range g.Vertices {
		v.Idom = NoVertex
		v.Children = nil
	}
	g.dominated = false
	g.frontier = nil

	order := g.numberDFS()

	var err error
	switch alg {
	case DominatorsReachability:
		err = g.reachabilityDominators(order)
	case DominatorsIterative:
		err = g.iterativeDominators()
	default:
		err = fmt.Errorf("unknown dominator algorithm %d", int(alg))
	}
	if err != nil {
		return err
	}

	// Children in reverse postorder: a join block is walked after the
	// branches that reach it.
	for _, i := range g.reversePostorder() {
		v := g.Vertices[i]
		if v.Idom != NoVertex {
			parent := g.Vertices[v.Idom]
			parent.Children = append(parent.Children, v.Index)
		}
	}
	g.dominated = true
	return nil
}

// Dominated reports whether the dominator tree is up to date
func (g *Graph) Dominated() bool { return g.dominated }

func (g *Graph) setIdom(v, d int) error {
	if g.Vertices[v].Idom != NoVertex {
		return fmt.Errorf("vertex %d (had %d, got %d): %w", v, g.Vertices[v].Idom, d, ErrIdomReassigned)
	}
	g.Vertices[v].Idom = d
	return nil
}

// reachableWithout returns the vertices reachable from the entry when
// excluded is removed from the graph. Removing the entry leaves nothing.
func (g *Graph) reachableWithout(excluded int) *bitset.BitSet {
	seen := bitset.New(uint(len(g.Vertices)))
	if excluded == 0 {
		return seen
	}
	seen.Set(0)
	stack := []int{0}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, s := range g.Vertices[i].Succs {
			if s == excluded || seen.Test(uint(s)) {
				continue
			}
			seen.Set(uint(s))
			stack = append(stack, s)
		}
	}
	return seen
}

// dominatorSets returns, for each reachable vertex, the set of its dominators
// (itself included). Entries for unreachable vertices are nil.
func (g *Graph) dominatorSets(order []int) []*bitset.BitSet {
	n := uint(len(g.Vertices))
	dom := make([]*bitset.BitSet, len(g.Vertices))
	for _, v := range order {
		dom[v] = bitset.New(n)
	}
	for _, d := range order {
		r := g.reachableWithout(d)
		for _, v := range order {
			if !r.Test(uint(v)) {
				dom[v].Set(uint(d))
			}
		}
	}
	return dom
}

func (g *Graph) reachabilityDominators(order []int) error {
	dom := g.dominatorSets(order)

	for _, v := range order {
		if v == 0 {
			continue
		}
		strict := dom[v].Clone()
		strict.Clear(uint(v))

		// Strict dominators form a chain and a preorder visits each of them
		// before v, so the deepest one is the first guess. The closest
		// dominator property decides.
		guess := NoVertex
		for d, ok := strict.NextSet(0); ok; d, ok = strict.NextSet(d + 1) {
			if guess == NoVertex || g.Vertices[d].Order > g.Vertices[guess].Order {
				guess = int(d)
			}
		}
		idom := guess
		if idom == NoVertex || !dom[idom].Equal(strict) {
			idom = closestDominator(dom, strict)
		}
		if idom == NoVertex {
			return fmt.Errorf("vertex %d: %w", v, ErrNoImmediateDominator)
		}
		if err := g.setIdom(v, idom); err != nil {
			return err
		}
	}
	return nil
}

// closestDominator returns the strict dominator d whose own dominator set is
// exactly the strict dominator set of v: every other strict dominator of v
// dominates d.
func closestDominator(dom []*bitset.BitSet, strict *bitset.BitSet) int {
	for d, ok := strict.NextSet(0); ok; d, ok = strict.NextSet(d + 1) {
		if dom[d] != nil && dom[d].Equal(strict) {
			return int(d)
		}
	}
	return NoVertex
}

func (g *Graph) iterativeDominators() error {
	rpo := g.reversePostorder()
	rpoNum := make([]int, len(g.Vertices))
	for i := range rpoNum {
		rpoNum[i] = -1
	}
	for i, v := range rpo {
		rpoNum[v] = i
	}

	idom := make([]int, len(g.Vertices))
	for i := range idom {
		idom[i] = NoVertex
	}
	idom[0] = 0

	intersect := func(a, b int) int {
		for a != b {
			for rpoNum[a] > rpoNum[b] {
				a = idom[a]
			}
			for rpoNum[b] > rpoNum[a] {
				b = idom[b]
			}
		}
		return a
	}

	for changed := true; changed; {
		changed = false
		for _, v := range rpo[1:] {
			newIdom := NoVertex
			for _, p := range g.Vertices[v].Preds {
				if idom[p] == NoVertex {
					continue
				}
				if newIdom == NoVertex {
					newIdom = p
				} else {
					newIdom = intersect(p, newIdom)
				}
			}
			if newIdom != NoVertex && idom[v] != newIdom {
				idom[v] = newIdom
				changed = true
			}
		}
	}

	for _, v := range rpo[1:] {
		if idom[v] == NoVertex {
			return fmt.Errorf("vertex %d: %w", v, ErrNoImmediateDominator)
		}
		if err := g.setIdom(v, idom[v]); err != nil {
			return err
		}
	}
	return nil
}
