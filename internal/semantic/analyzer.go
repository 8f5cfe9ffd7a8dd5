package semantic

import (
	"sort"

	"goc/grammar"
	"goc/internal/errors"

	mapset "github.com/deckarep/golang-set/v2"
)

// Analyzer checks a parsed program before it is lowered: every variable that
// is read must be assigned somewhere, and on every path to the read.
type Analyzer struct {
	errors   []errors.CompilerError
	assigned mapset.Set[string] // every assignment target in the program
	used     mapset.Set[string]
	firstDef map[string]grammar.Assign
	reported map[usage]bool
}

type usage struct {
	name string
	line int
	col  int
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze runs all checks and returns errors and warnings in source order
func (a *Analyzer) Analyze(program *grammar.Program) []errors.CompilerError {
	a.errors = make([]errors.CompilerError, 0)
	a.assigned = mapset.NewThreadUnsafeSet[string]()
	a.used = mapset.NewThreadUnsafeSet[string]()
	a.firstDef = make(map[string]grammar.Assign)
	a.reported = make(map[usage]bool)

	_, body := program.Main()
	if body == nil {
		return a.errors
	}
	a.collectAssignments(body.Statements)

	flow := NewFlowAnalyzer(a)
	flow.AnalyzeBody(body)

	a.checkUnusedVariables()

	sort.SliceStable(a.errors, func(i, j int) bool {
		pi, pj := a.errors[i].Position, a.errors[j].Position
		if pi.Line != pj.Line {
			return pi.Line < pj.Line
		}
		return pi.Column < pj.Column
	})
	return a.errors
}

// GetErrors returns all errors with suggestions and proper formatting
func (a *Analyzer) GetErrors() []errors.CompilerError {
	return a.errors
}

// HasErrors reports whether any diagnostic is an error rather than a warning
func (a *Analyzer) HasErrors() bool {
	for _, err := range a.errors {
		if err.Level == errors.Error {
			return true
		}
	}
	return false
}

func (a *Analyzer) addCompilerError(err errors.CompilerError) {
	a.errors = append(a.errors, err)
}

func (a *Analyzer) collectAssignments(stmts []*grammar.Statement) {
	for _, s := range stmts {
		switch {
		case s.Assign != nil:
			if !a.assigned.Contains(s.Assign.Target) {
				a.firstDef[s.Assign.Target] = *s.Assign
			}
			a.assigned.Add(s.Assign.Target)
		case s.If != nil:
			if s.If.Then != nil {
				a.collectAssignments(s.If.Then.Statements)
			}
			if s.If.Else != nil {
				a.collectAssignments(s.If.Else.Statements)
			}
		case s.While != nil && s.While.Body != nil:
			a.collectAssignments(s.While.Body.Statements)
		}
	}
}

// use records a read of name at atom and reports it when the name is never
// assigned or not assigned on every path
func (a *Analyzer) use(atom *grammar.Atom, definite mapset.Set[string]) {
	name := *atom.Ident
	a.used.Add(name)

	key := usage{name: name, line: atom.Pos.Line, col: atom.Pos.Column}
	if a.reported[key] {
		return
	}
	pos := errors.PositionFrom(atom.Pos)
	switch {
	case !a.assigned.Contains(name):
		a.reported[key] = true
		a.addCompilerError(errors.UndefinedVariable(name, pos, a.findSimilarVariables(name)))
	case !definite.Contains(name):
		a.reported[key] = true
		a.addCompilerError(errors.UninitializedVariable(name, pos))
	}
}

func (a *Analyzer) checkUnusedVariables() {
	for name, def := range a.firstDef {
		if !a.used.Contains(name) {
			a.addCompilerError(errors.UnusedVariable(name, errors.PositionFrom(def.Pos)))
		}
	}
}
