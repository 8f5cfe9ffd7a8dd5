package grammar

import (
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2"
)

var parser = participle.MustBuild[Program](
	participle.Lexer(GocLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(3),
)

func ParseFile(path string) (*Program, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ParseString(path, string(source))
}

// ParseString parses source; filename is used only for positions
func ParseString(filename, source string) (*Program, error) {
	return parser.ParseString(filename, source)
}

// Tokens lexes source without parsing, keeping comments. Whitespace is dropped.
func Tokens(filename, source string) ([]Token, error) {
	lex, err := GocLexer.LexString(filename, source)
	if err != nil {
		return nil, err
	}
	symbols := GocLexer.Symbols()
	names := make(map[int]string, len(symbols))
	for name, t := range symbols {
		names[int(t)] = name
	}

	var out []Token
	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, err
		}
		if tok.EOF() {
			return out, nil
		}
		kind := names[int(tok.Type)]
		if kind == "Whitespace" {
			continue
		}
		out = append(out, Token{Kind: kind, Value: tok.Value, Pos: tok.Pos})
	}
}
