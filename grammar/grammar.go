package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Program is either a named function `main { ... return e }` or a bare
// statement list ending in a return, which is treated as `main`.
type Program struct {
	Pos      lexer.Position
	Function *Function `parser:"@@"`
	Body     *Body     `parser:"| @@"`
}

type Function struct {
	Pos  lexer.Position
	Name string `parser:"@Ident \"{\""`
	Body *Body  `parser:"@@ \"}\""`
}

type Body struct {
	Pos        lexer.Position
	Statements []*Statement `parser:"@@*"`
	Return     *Return      `parser:"@@"`
}

type Statement struct {
	Pos    lexer.Position
	If     *If     `parser:"@@"`
	While  *While  `parser:"| @@"`
	Assign *Assign `parser:"| @@"`
}

type Assign struct {
	Pos    lexer.Position
	Target string `parser:"@Ident \"=\""`
	Value  *Expr  `parser:"@@"`
	Semi   bool   `parser:"[ @\";\" ]"`
}

type If struct {
	Pos  lexer.Position
	Cond *Expr  `parser:"\"if\" \"(\" @@ \")\""`
	Then *Block `parser:"@@"`
	Else *Block `parser:"[ \"else\" @@ ]"`
	Semi bool   `parser:"[ @\";\" ]"`
}

type While struct {
	Pos  lexer.Position
	Cond *Expr  `parser:"\"while\" \"(\" @@ \")\""`
	Body *Block `parser:"@@"`
	Semi bool   `parser:"[ @\";\" ]"`
}

type Block struct {
	Pos        lexer.Position
	Statements []*Statement `parser:"\"{\" @@* \"}\""`
}

type Return struct {
	Pos   lexer.Position
	Value *Expr `parser:"\"return\" @@"`
	Semi  bool  `parser:"[ @\";\" ]"`
}

// Expr is an arithmetic expression with at most one comparison on top
type Expr struct {
	Pos     lexer.Position
	Left    *Sum        `parser:"@@"`
	Compare *Comparison `parser:"[ @@ ]"`
}

type Comparison struct {
	Op    string `parser:"@(\"==\" | \"!=\" | \"<\" | \">\")"`
	Right *Sum   `parser:"@@"`
}

type Sum struct {
	Pos  lexer.Position
	Left *Term    `parser:"@@"`
	Rest []*SumOp `parser:"@@*"`
}

type SumOp struct {
	Op    string `parser:"@(\"+\" | \"-\")"`
	Right *Term  `parser:"@@"`
}

type Term struct {
	Pos  lexer.Position
	Left *Atom     `parser:"@@"`
	Rest []*TermOp `parser:"@@*"`
}

type TermOp struct {
	Op    string `parser:"@\"*\""`
	Right *Atom  `parser:"@@"`
}

type Atom struct {
	Pos    lexer.Position
	Number *string `parser:"@Integer"`
	Ident  *string `parser:"| @Ident"`
	Parens *Expr   `parser:"| \"(\" @@ \")\""`
}

// Main returns the function name and body, defaulting the name of a bare
// statement list to "main"
func (p *Program) Main() (string, *Body) {
	if p.Function != nil {
		return p.Function.Name, p.Function.Body
	}
	return "main", p.Body
}
