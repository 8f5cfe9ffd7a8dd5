package ir

import (
	"fmt"
)

type defSite struct {
	block int
	pos   int
}

// Verify checks a renamed graph: the dominator tree is well formed, statement
// shapes hold, every phi has one operand per predecessor, every definition of
// a variable in vars is versioned and unique, and every use is dominated by
// its definition. Phi slots fed by unreachable predecessors are not checked.
func (g *Graph) Verify(vars []string) error {
	if !g.dominated {
		return ErrDominatorsNotComputed
	}
	if err := g.checkDominatorTree(); err != nil {
		return err
	}

	isVar := make(map[string]bool, len(vars))
	for _, name := range vars {
		isVar[name] = true
	}

	defs := make(map[Value]defSite)
	for _, v := range g.Vertices {
		if !v.Reachable {
			continue
		}
		inPhis := true
		for pos, s := range v.Stmts {
			if err := s.checkShape(); err != nil {
				return fmt.Errorf("block %d: %v: %w", v.Number, err, ErrMalformedStatement)
			}
			if s.Kind == KindPhi {
				if !inPhis {
					return fmt.Errorf("block %d: phi after ordinary statement: %w", v.Number, ErrMalformedStatement)
				}
				if len(s.Args) != len(v.Preds) {
					return fmt.Errorf("block %d: %s has %d operands for %d predecessors: %w",
						v.Number, s, len(s.Args), len(v.Preds), ErrPhiArity)
				}
			} else {
				inPhis = false
			}
			if !s.HasTarget() {
				continue
			}
			if isVar[s.Target.Name] && !s.Target.Renamed() {
				return fmt.Errorf("block %d: definition %q has no version: %w", v.Number, s, ErrNotSSA)
			}
			if prev, dup := defs[s.Target]; dup {
				return fmt.Errorf("%s defined in blocks %d and %d: %w",
					s.Target, g.Vertices[prev.block].Number, v.Number, ErrNotSSA)
			}
			defs[s.Target] = defSite{block: v.Index, pos: pos}
		}
	}

	for _, v := range g.Vertices {
		if !v.Reachable {
			continue
		}
		for pos, s := range v.Stmts {
			for j, arg := range s.Args {
				if arg.IsLiteral() || arg.IsUndef() {
					continue
				}
				if isVar[arg.Name] && !arg.Renamed() {
					if s.Kind == KindPhi && !g.Vertices[v.Preds[j]].Reachable {
						continue
					}
					return fmt.Errorf("block %d: operand %s of %q has no version: %w", v.Number, arg, s, ErrNotSSA)
				}
				def, ok := defs[arg]
				if !ok {
					return fmt.Errorf("block %d: %s has no definition: %w", v.Number, arg, ErrNotSSA)
				}
				if s.Kind == KindPhi {
					pred := v.Preds[j]
					if g.Vertices[pred].Reachable && !g.Dominates(def.block, pred) {
						return fmt.Errorf("block %d: %s does not reach predecessor %d: %w",
							v.Number, arg, g.Vertices[pred].Number, ErrNotSSA)
					}
					continue
				}
				if !g.Dominates(def.block, v.Index) || (def.block == v.Index && def.pos >= pos) {
					return fmt.Errorf("block %d: use of %s not dominated by its definition: %w", v.Number, arg, ErrNotSSA)
				}
			}
		}
	}
	return nil
}

// checkDominatorTree checks that idom and children agree and that every
// reachable vertex reaches the entry through idom links.
func (g *Graph) checkDominatorTree() error {
	for _, v := range g.Vertices {
		if !v.Reachable {
			if v.Idom != NoVertex || len(v.Children) != 0 {
				return fmt.Errorf("unreachable vertex %d is in the dominator tree: %w", v.Index, ErrNotSSA)
			}
			continue
		}
		if v.Index == 0 {
			if v.Idom != NoVertex {
				return fmt.Errorf("entry has idom %d: %w", v.Idom, ErrNotSSA)
			}
			continue
		}
		if v.Idom == NoVertex {
			return fmt.Errorf("vertex %d: %w", v.Index, ErrNoImmediateDominator)
		}
		steps := 0
		for u := v.Index; u != 0; u = g.Vertices[u].Idom {
			if u == NoVertex || steps > len(g.Vertices) {
				return fmt.Errorf("vertex %d does not reach the entry through idom links: %w", v.Index, ErrNotSSA)
			}
			steps++
		}
		found := false
		for _, c := range g.Vertices[v.Idom].Children {
			if c == v.Index {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("vertex %d missing from children of %d: %w", v.Index, v.Idom, ErrNotSSA)
		}
	}
	return nil
}
