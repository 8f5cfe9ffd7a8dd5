package ir

import (
	"fmt"
)

// FirstBlock is the index of the first block carrying statements. Vertex 0 is
// the empty function header that only leads to it.
const FirstBlock = 1

// checkEntry enforces the function-entry convention: the entry has no
// statements, no predecessors and only leads to FirstBlock.
func (g *Graph) checkEntry() error {
	entry := g.Entry()
	if entry == nil {
		return ErrEmptyGraph
	}
	if len(entry.Stmts) != 0 {
		return fmt.Errorf("entry holds %d statements: %w", len(entry.Stmts), ErrEntryConvention)
	}
	if len(entry.Preds) != 0 {
		return fmt.Errorf("entry has %d predecessors: %w", len(entry.Preds), ErrEntryConvention)
	}
	for _, s := range entry.Succs {
		if s != FirstBlock {
			return fmt.Errorf("entry leads to vertex %d: %w", s, ErrEntryConvention)
		}
	}
	if len(g.Vertices) > FirstBlock && len(entry.Succs) == 0 {
		return fmt.Errorf("entry does not lead to vertex %d: %w", FirstBlock, ErrEntryConvention)
	}
	return nil
}

// renamer holds the version state of one variable. It is created fresh for
// every variable and its stack is empty again when the walk returns.
type renamer struct {
	g       *Graph
	name    string
	counter int
	stack   []int
}

func (r *renamer) top() (int, bool) {
	if len(r.stack) == 0 {
		return 0, false
	}
	return r.stack[len(r.stack)-1], true
}

// Rename gives every definition of name a fresh version and rewrites each
// use and phi operand to the version visible at that point, walking the
// dominator tree from FirstBlock. It returns how many versions were assigned.
func (g *Graph) Rename(name string) (int, error) {
	if !g.dominated {
		return 0, ErrDominatorsNotComputed
	}
	if !g.placed[name] {
		return 0, fmt.Errorf("%s: %w", name, ErrPhiNotPlaced)
	}
	if err := g.checkEntry(); err != nil {
		return 0, err
	}
	if len(g.Vertices) <= FirstBlock {
		return 0, nil
	}

	r := &renamer{g: g, name: name}
	if err := r.walk(FirstBlock); err != nil {
		return 0, err
	}
	return r.counter, nil
}

func (r *renamer) walk(i int) error {
	v := r.g.Vertices[i]
	pushed := 0

	for _, s := range v.Stmts {
		if s.Kind != KindPhi {
			for k := range s.Args {
				if !s.Args[k].Refers(r.name) {
					continue
				}
				top, ok := r.top()
				if !ok {
					return fmt.Errorf("%s in block %d: %w", r.name, v.Number, ErrUseBeforeDef)
				}
				s.Args[k].Version = top
			}
		}
		if s.Defines(r.name) {
			s.Target.Version = r.counter
			r.stack = append(r.stack, r.counter)
			r.counter++
			pushed++
		}
	}

	for _, si := range uniqueIndices(v.Succs) {
		succ := r.g.Vertices[si]
		slots := succ.PredIndices(i)
		if len(slots) == 0 {
			return fmt.Errorf("block %d -> %d: %w", v.Number, succ.Number, ErrMissingPredecessor)
		}
		for _, phi := range succ.Phis() {
			if phi.Target.Name != r.name {
				continue
			}
			if len(phi.Args) != len(succ.Preds) {
				return fmt.Errorf("%s in block %d: %w", r.name, succ.Number, ErrPhiArity)
			}
			val := Undef()
			if top, ok := r.top(); ok {
				val = Value{Name: r.name, Version: top}
			}
			for _, j := range slots {
				phi.Args[j] = val
			}
		}
	}

	for _, c := range v.Children {
		if err := r.walk(c); err != nil {
			return err
		}
	}

	r.stack = r.stack[:len(r.stack)-pushed]
	return nil
}

func uniqueIndices(in []int) []int {
	seen := make(map[int]bool, len(in))
	out := make([]int, 0, len(in))
	for _, i := range in {
		if !seen[i] {
			seen[i] = true
			out = append(out, i)
		}
	}
	return out
}
