package ir

// This file provides the main entry point for the IR system.
// Source is lowered to a control-flow graph, then rewritten into SSA form:
// dominators, dominance frontiers, phi placement and renaming, per variable.

import (
	"fmt"

	"goc/grammar"

	"github.com/tliron/commonlog"
)

// Options controls SSA construction
type Options struct {
	Dominators DominatorAlgorithm
	Verify     bool
	Logger     commonlog.Logger
}

// DefaultOptions uses the reachability dominator algorithm and verifies the result
func DefaultOptions() Options {
	return Options{Dominators: DominatorsReachability, Verify: true}
}

func (o Options) logger() commonlog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return commonlog.GetLogger("goc.ir")
}

// Construct rewrites fn into SSA form. Either every phase completes and
// fn.SSA is set, or the first failing phase's error is returned.
func Construct(fn *Function, opts Options) error {
	if fn.SSA {
		return fmt.Errorf("%s: already in SSA form", fn.Name)
	}
	log := opts.logger()
	g := fn.Graph

	if err := g.checkEntry(); err != nil {
		return fmt.Errorf("%s: %w", fn.Name, err)
	}
	if err := g.ComputeDominators(opts.Dominators); err != nil {
		return fmt.Errorf("%s: dominators: %w", fn.Name, err)
	}
	log.Debugf("%s: dominator tree built with %s over %d blocks, %d reachable",
		fn.Name, opts.Dominators, g.Len(), g.ReachableCount())

	if err := g.ComputeFrontiers(); err != nil {
		return fmt.Errorf("%s: dominance frontier: %w", fn.Name, err)
	}
	log.Debugf("%s: dominance frontier sizes %v", fn.Name, g.FrontierSizes())

	for _, name := range fn.Vars {
		sites, err := g.PlacePhis(name)
		if err != nil {
			return fmt.Errorf("%s: placing phis for %s: %w", fn.Name, name, err)
		}
		versions, err := g.Rename(name)
		if err != nil {
			return fmt.Errorf("%s: renaming %s: %w", fn.Name, name, err)
		}
		log.Debugf("%s: %s has %d phis at %v and %d versions", fn.Name, name, len(sites), sites, versions)
	}

	if opts.Verify {
		if err := g.Verify(fn.Vars); err != nil {
			return fmt.Errorf("%s: %w", fn.Name, err)
		}
		log.Debugf("%s: SSA verified", fn.Name)
	}

	fn.SSA = true
	return nil
}

// BuildProgram lowers the program's function and constructs its SSA form
func BuildProgram(program *grammar.Program, opts Options) (*Function, error) {
	name, body := program.Main()
	fn := Lower(name, body)
	if err := Construct(fn, opts); err != nil {
		return nil, err
	}
	return fn, nil
}

// PrintProgram returns the Graphviz rendering of fn
func PrintProgram(fn *Function) string {
	return PrintDot(fn.Graph)
}
