package ir

import "errors"

// Contract violations raised by the SSA pipeline. They indicate a bug in graph
// construction or in an earlier phase, never a problem in the source program.
var (
	ErrEmptyGraph            = errors.New("graph has no vertices")
	ErrEntryConvention       = errors.New("entry vertex must be an empty header")
	ErrIdomReassigned        = errors.New("immediate dominator assigned twice")
	ErrNoImmediateDominator  = errors.New("no closest strict dominator")
	ErrDominatorsNotComputed = errors.New("dominator tree not computed")
	ErrFrontierNotComputed   = errors.New("dominance frontier not computed")
	ErrPhiAlreadyPlaced      = errors.New("phi functions already placed for variable")
	ErrPhiNotPlaced          = errors.New("phi functions not placed for variable")
	ErrPhiArity              = errors.New("phi operand count differs from predecessor count")
	ErrUseBeforeDef          = errors.New("use of variable with no dominating definition")
	ErrMissingPredecessor    = errors.New("block is not a predecessor of its successor")
	ErrMalformedStatement    = errors.New("malformed statement")
	ErrNotSSA                = errors.New("graph is not in SSA form")
)
