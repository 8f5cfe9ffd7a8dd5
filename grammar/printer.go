package grammar

import (
	"fmt"
	"strings"
)

func indent(level int) string {
	return strings.Repeat("    ", level)
}

func (p *Program) String() string {
	name, body := p.Main()
	var b strings.Builder
	b.WriteString(name + " {\n")
	b.WriteString(body.StringWithIndent(1))
	b.WriteString("}\n")
	return b.String()
}

func (b *Body) StringWithIndent(level int) string {
	var sb strings.Builder
	for _, s := range b.Statements {
		sb.WriteString(s.StringWithIndent(level))
	}
	if b.Return != nil {
		sb.WriteString(indent(level) + "return " + b.Return.Value.String() + "\n")
	}
	return sb.String()
}

func (s *Statement) StringWithIndent(level int) string {
	switch {
	case s.If != nil:
		return s.If.StringWithIndent(level)
	case s.While != nil:
		return s.While.StringWithIndent(level)
	case s.Assign != nil:
		return fmt.Sprintf("%s%s = %s\n", indent(level), s.Assign.Target, s.Assign.Value)
	}
	return ""
}

func (i *If) StringWithIndent(level int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%sif (%s) {\n", indent(level), i.Cond))
	b.WriteString(i.Then.StringWithIndent(level + 1))
	if i.Else != nil {
		b.WriteString(indent(level) + "} else {\n")
		b.WriteString(i.Else.StringWithIndent(level + 1))
	}
	b.WriteString(indent(level) + "}\n")
	return b.String()
}

func (w *While) StringWithIndent(level int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%swhile (%s) {\n", indent(level), w.Cond))
	b.WriteString(w.Body.StringWithIndent(level + 1))
	b.WriteString(indent(level) + "}\n")
	return b.String()
}

func (bl *Block) StringWithIndent(level int) string {
	var b strings.Builder
	for _, s := range bl.Statements {
		b.WriteString(s.StringWithIndent(level))
	}
	return b.String()
}

func (e *Expr) String() string {
	if e.Compare == nil {
		return e.Left.String()
	}
	return fmt.Sprintf("%s %s %s", e.Left, e.Compare.Op, e.Compare.Right)
}

func (s *Sum) String() string {
	out := s.Left.String()
	for _, r := range s.Rest {
		out += " " + r.Op + " " + r.Right.String()
	}
	return out
}

func (t *Term) String() string {
	out := t.Left.String()
	for _, r := range t.Rest {
		out += " " + r.Op + " " + r.Right.String()
	}
	return out
}

func (a *Atom) String() string {
	switch {
	case a.Number != nil:
		return *a.Number
	case a.Ident != nil:
		return *a.Ident
	case a.Parens != nil:
		return "(" + a.Parens.String() + ")"
	}
	return ""
}
