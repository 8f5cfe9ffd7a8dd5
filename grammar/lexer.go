package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

var GocLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		// Comments
		{Name: "Comment", Pattern: `//[^\n]*`, Action: nil},

		// Keywords must win over identifiers but not swallow "iffy" or "returned"
		{Name: "Keyword", Pattern: `\b(if|else|while|return)\b`, Action: nil},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`, Action: nil},

		// Integer literals
		{Name: "Integer", Pattern: `[0-9]+`, Action: nil},

		// Operators (two-character forms first)
		{Name: "Operator", Pattern: `==|!=|[-+*<>=]`, Action: nil},

		{Name: "Punctuation", Pattern: `[{}();]`, Action: nil},

		// Whitespace
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`, Action: nil},
	},
})

// Token is a lexed token tagged with its rule name
type Token struct {
	Kind  string
	Value string
	Pos   lexer.Position
}
