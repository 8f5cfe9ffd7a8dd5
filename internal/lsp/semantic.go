package lsp

import (
	"goc/grammar"
)

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based positions
// TokenType is an index into the SemanticTokenTypes array
// TokenModifiers is a bitmask based on SemanticTokenModifiers
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int
	TokenModifiers int
}

// collectSemanticTokens classifies the lexed tokens of text. An identifier
// followed by '=' is an assignment target and carries the declaration
// modifier; one followed by '{' names the function.
func collectSemanticTokens(path, text string) ([]SemanticToken, error) {
	toks, err := grammar.Tokens(path, text)
	if err != nil {
		return nil, err
	}

	var tokens []SemanticToken
	for i, tok := range toks {
		var tokenType string
		modifiers := 0
		switch tok.Kind {
		case "Keyword":
			tokenType = "keyword"
		case "Integer":
			tokenType = "number"
		case "Operator":
			tokenType = "operator"
		case "Comment":
			tokenType = "comment"
		case "Ident":
			tokenType = "variable"
			if i+1 < len(toks) {
				switch toks[i+1].Value {
				case "=":
					modifiers = 1 << indexOf("declaration", SemanticTokenModifiers)
				case "{":
					tokenType = "function"
				}
			}
		default:
			continue
		}

		tokens = append(tokens, SemanticToken{
			Line:           uint32(tok.Pos.Line - 1),   // LSP uses 0-based line numbers
			StartChar:      uint32(tok.Pos.Column - 1), // LSP uses 0-based column numbers
			Length:         uint32(len(tok.Value)),
			TokenType:      indexOf(tokenType, SemanticTokenTypes),
			TokenModifiers: modifiers,
		})
	}
	return tokens, nil
}

// indexOf returns the index of a string in a slice, or 0 if not found
func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0
}
