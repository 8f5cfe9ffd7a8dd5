package ir

import (
	"fmt"

	"goc/grammar"
)

// TempPrefix starts the name of every lowering temporary. It cannot appear in
// a source identifier, so temporaries never collide with program variables.
const TempPrefix = "%t"

// Function is one lowered function: its graph and the program variables in
// order of first assignment.
type Function struct {
	Name  string
	Graph *Graph
	Vars  []string
	SSA   bool
}

// lowering is the per-function context threaded through the AST walk
type lowering struct {
	b     *Builder
	temps int
	vars  []string
	seen  map[string]bool
}

// rvalue is an expression reduced to one statement's worth of operands
type rvalue struct {
	args []Value
	op   string
}

// Lower builds the control-flow graph of body. Vertex 0 is an empty header
// and vertex 1 the first block holding statements.
func Lower(name string, body *grammar.Body) *Function {
	l := &lowering{b: NewBuilder(), seen: map[string]bool{}}
	l.b.NewBlock()
	l.b.NewBlock()

	l.statements(body.Statements)
	if body.Return != nil {
		rv := l.expr(body.Return.Value)
		l.b.AppendStatement(NewReturn(rv.op, rv.args...))
	}

	return &Function{Name: name, Graph: l.b.Graph(), Vars: l.vars}
}

func (l *lowering) declare(name string) {
	if !l.seen[name] {
		l.seen[name] = true
		l.vars = append(l.vars, name)
	}
}

func (l *lowering) temp() string {
	name := fmt.Sprintf("%s%d", TempPrefix, l.temps)
	l.temps++
	return name
}

func (l *lowering) statements(stmts []*grammar.Statement) {
	for _, s := range stmts {
		switch {
		case s.Assign != nil:
			l.assign(s.Assign)
		case s.If != nil:
			l.ifStmt(s.If)
		case s.While != nil:
			l.whileStmt(s.While)
		}
	}
}

func (l *lowering) assign(a *grammar.Assign) {
	rv := l.expr(a.Value)
	l.declare(a.Target)
	l.b.AppendStatement(NewAssign(a.Target, rv.op, rv.args...))
}

func (l *lowering) ifStmt(s *grammar.If) {
	rv := l.expr(s.Cond)
	l.b.AppendStatement(NewCompare(rv.op, rv.args...))
	cond := l.b.Current()

	l.b.NewBlock()
	if s.Then != nil {
		l.statements(s.Then.Statements)
	}
	join := l.b.NewBlock()

	if s.Else != nil {
		l.b.SetCurrent(cond)
		l.b.NewBlock()
		l.statements(s.Else.Statements)
		l.b.Connect(l.b.Current(), join)
	} else {
		l.b.Connect(cond, join)
	}
	l.b.SetCurrent(join)
}

func (l *lowering) whileStmt(s *grammar.While) {
	header := l.b.NewBlock()
	rv := l.expr(s.Cond)
	l.b.AppendStatement(NewCompare(rv.op, rv.args...))

	l.b.NewBlock()
	if s.Body != nil {
		l.statements(s.Body.Statements)
	}
	bodyEnd := l.b.Current()

	exit := l.b.NewDisconnectedBlock()
	l.b.Connect(bodyEnd, header)
	l.b.Connect(header, exit)
}

// expr lowers e so that the outermost operation is left for the caller
func (l *lowering) expr(e *grammar.Expr) rvalue {
	if e.Compare == nil {
		return l.sum(e.Left)
	}
	left := l.materialize(l.sum(e.Left))
	right := l.materialize(l.sum(e.Compare.Right))
	return rvalue{args: []Value{left, right}, op: e.Compare.Op}
}

func (l *lowering) sum(s *grammar.Sum) rvalue {
	acc := l.term(s.Left)
	for _, r := range s.Rest {
		left := l.materialize(acc)
		right := l.materialize(l.term(r.Right))
		acc = rvalue{args: []Value{left, right}, op: r.Op}
	}
	return acc
}

func (l *lowering) term(t *grammar.Term) rvalue {
	acc := l.atom(t.Left)
	for _, r := range t.Rest {
		left := l.materialize(acc)
		right := l.materialize(l.atom(r.Right))
		acc = rvalue{args: []Value{left, right}, op: r.Op}
	}
	return acc
}

func (l *lowering) atom(a *grammar.Atom) rvalue {
	switch {
	case a.Number != nil:
		return rvalue{args: []Value{Lit(*a.Number)}}
	case a.Ident != nil:
		return rvalue{args: []Value{Var(*a.Ident)}}
	case a.Parens != nil:
		return l.expr(a.Parens)
	default:
		panic("ir: empty atom")
	}
}

// materialize reduces rv to a single operand, spilling a binary operation
// into a fresh temporary
func (l *lowering) materialize(rv rvalue) Value {
	if rv.op == "" {
		return rv.args[0]
	}
	t := l.temp()
	l.b.AppendStatement(NewAssign(t, rv.op, rv.args...))
	return Var(t)
}
