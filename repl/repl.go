// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"goc/grammar"
	"goc/internal/compiler"
	"goc/internal/ir"
)

const (
	PROMPT       = ">> "
	CONT_PROMPT  = ".. "
	resetCommand = ":reset"
)

// Start reads statements line by line. Once the buffered text holds a
// `return` with every brace closed, the program is compiled and printed as an
// SSA listing and the buffer starts over. `:reset` drops the pending lines.
func Start(in io.Reader, out io.Writer, opts compiler.Options) {
	scanner := bufio.NewScanner(in)
	var pending []string

	for {
		if len(pending) == 0 {
			fmt.Fprint(out, PROMPT)
		} else {
			fmt.Fprint(out, CONT_PROMPT)
		}
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return
		}

		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == resetCommand:
			pending = nil
			continue
		}

		pending = append(pending, line)
		source := strings.Join(pending, "\n")
		if !complete(source) {
			continue
		}

		result := compiler.Compile("<repl>", source, opts)
		pending = nil
		fmt.Fprint(out, result.Format())
		if result.Failed() {
			continue
		}
		fmt.Fprint(out, ir.PrintListing(result.Function))
	}
}

// complete reports whether source is ready to compile: it contains the return
// keyword and no brace is left open. Text that does not lex is handed to the
// compiler right away so the error shows up.
func complete(source string) bool {
	tokens, err := grammar.Tokens("<repl>", source)
	if err != nil {
		return true
	}
	depth := 0
	returned := false
	for _, tok := range tokens {
		switch {
		case tok.Kind == "Keyword" && tok.Value == "return":
			returned = true
		case tok.Kind == "Punctuation" && tok.Value == "{":
			depth++
		case tok.Kind == "Punctuation" && tok.Value == "}":
			depth--
		}
	}
	return returned && depth <= 0
}
