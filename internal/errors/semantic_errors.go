package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
)

// SemanticErrorBuilder provides a fluent interface for creating semantic errors with suggestions
type SemanticErrorBuilder struct {
	err CompilerError
}

// NewSemanticError creates a new semantic error builder
func NewSemanticError(code, message string, pos Position) *SemanticErrorBuilder {
	return &SemanticErrorBuilder{
		err: CompilerError{
			Level:    Error,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// NewSemanticWarning creates a new semantic warning builder
func NewSemanticWarning(code, message string, pos Position) *SemanticErrorBuilder {
	b := NewSemanticError(code, message, pos)
	b.err.Level = Warning
	return b
}

// WithLength sets the length of the error span
func (b *SemanticErrorBuilder) WithLength(length int) *SemanticErrorBuilder {
	b.err.Length = length
	return b
}

// WithSuggestion adds a suggestion to the error
func (b *SemanticErrorBuilder) WithSuggestion(message string) *SemanticErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message})
	return b
}

// WithNote adds a note to the error
func (b *SemanticErrorBuilder) WithNote(note string) *SemanticErrorBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

// Build returns the completed compiler error
func (b *SemanticErrorBuilder) Build() CompilerError {
	return b.err
}

// UndefinedVariable creates an error for a variable that is never assigned
func UndefinedVariable(name string, pos Position, similarNames []string) CompilerError {
	builder := NewSemanticError(ErrorUndefinedVariable, fmt.Sprintf("undefined variable '%s'", name), pos).
		WithLength(len(name))

	switch len(similarNames) {
	case 0:
		builder = builder.WithSuggestion("assign the variable before reading it").
			WithNote("variables come into existence by assignment, e.g. 'x = 0'")
	case 1:
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean '%s'?", similarNames[0]))
	default:
		suggestions := strings.Join(similarNames, "', '")
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean one of: '%s'?", suggestions))
	}

	return builder.Build()
}

// UninitializedVariable creates an error for a read that some path reaches
// without an assignment
func UninitializedVariable(name string, pos Position) CompilerError {
	return NewSemanticError(ErrorUninitializedVariable,
		fmt.Sprintf("variable '%s' may be used before it is assigned", name), pos).
		WithLength(len(name)).
		WithSuggestion(fmt.Sprintf("assign '%s' before the branch or loop that defines it", name)).
		WithNote("assignments inside a while body or a single if branch do not count after it").
		Build()
}

// UnusedVariable creates a warning for a variable that is assigned but never read
func UnusedVariable(name string, pos Position) CompilerError {
	return NewSemanticWarning(WarningUnusedVariable, fmt.Sprintf("variable '%s' is never used", name), pos).
		WithLength(len(name)).
		Build()
}

// SyntaxError converts a parser error. Errors that carry no position are
// reported at the start of the file.
func SyntaxError(err error) CompilerError {
	var pe participle.Error
	if errors.As(err, &pe) {
		return NewSemanticError(ErrorSyntax, pe.Message(), PositionFrom(pe.Position())).Build()
	}
	return NewSemanticError(ErrorSyntax, err.Error(), Position{Line: 1, Column: 1}).Build()
}

// InternalError wraps a failure of SSA construction. It has no source position.
func InternalError(err error) CompilerError {
	return CompilerError{
		Level:   Error,
		Code:    ErrorInternal,
		Message: "SSA construction failed",
		Notes:   []string{err.Error()},
	}
}
