package semantic

import (
	"goc/grammar"

	mapset "github.com/deckarep/golang-set/v2"
)

// FlowAnalyzer tracks which variables are definitely assigned at each point
// of a structured body. A branch contributes only what both arms assign; a
// while body may run zero times and contributes nothing after the loop.
type FlowAnalyzer struct {
	analyzer *Analyzer
}

// NewFlowAnalyzer creates a new flow analyzer
func NewFlowAnalyzer(analyzer *Analyzer) *FlowAnalyzer {
	return &FlowAnalyzer{analyzer: analyzer}
}

// AnalyzeBody checks every read in body and returns the set of variables
// definitely assigned at the return
func (fa *FlowAnalyzer) AnalyzeBody(body *grammar.Body) mapset.Set[string] {
	definite := fa.statements(body.Statements, mapset.NewThreadUnsafeSet[string]())
	if body.Return != nil {
		fa.expr(body.Return.Value, definite)
	}
	return definite
}

func (fa *FlowAnalyzer) statements(stmts []*grammar.Statement, definite mapset.Set[string]) mapset.Set[string] {
	for _, s := range stmts {
		switch {
		case s.Assign != nil:
			fa.expr(s.Assign.Value, definite)
			definite.Add(s.Assign.Target)
		case s.If != nil:
			definite = fa.ifStmt(s.If, definite)
		case s.While != nil:
			fa.expr(s.While.Cond, definite)
			if s.While.Body != nil {
				fa.statements(s.While.Body.Statements, definite.Clone())
			}
		}
	}
	return definite
}

func (fa *FlowAnalyzer) ifStmt(s *grammar.If, definite mapset.Set[string]) mapset.Set[string] {
	fa.expr(s.Cond, definite)

	then := definite.Clone()
	if s.Then != nil {
		then = fa.statements(s.Then.Statements, then)
	}
	otherwise := definite.Clone()
	if s.Else != nil {
		otherwise = fa.statements(s.Else.Statements, otherwise)
	}
	return then.Intersect(otherwise)
}

func (fa *FlowAnalyzer) expr(e *grammar.Expr, definite mapset.Set[string]) {
	fa.sum(e.Left, definite)
	if e.Compare != nil {
		fa.sum(e.Compare.Right, definite)
	}
}

func (fa *FlowAnalyzer) sum(s *grammar.Sum, definite mapset.Set[string]) {
	fa.term(s.Left, definite)
	for _, r := range s.Rest {
		fa.term(r.Right, definite)
	}
}

func (fa *FlowAnalyzer) term(t *grammar.Term, definite mapset.Set[string]) {
	fa.atom(t.Left, definite)
	for _, r := range t.Rest {
		fa.atom(r.Right, definite)
	}
}

func (fa *FlowAnalyzer) atom(a *grammar.Atom, definite mapset.Set[string]) {
	switch {
	case a.Ident != nil:
		fa.analyzer.use(a, definite)
	case a.Parens != nil:
		fa.expr(a.Parens, definite)
	}
}
