package errors

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/fatih/color"
)

// Position is a 1-based line/column location in a source file
type Position struct {
	Line   int
	Column int
	Offset int
}

// PositionFrom converts a lexer position
func PositionFrom(pos lexer.Position) Position {
	return Position{Line: pos.Line, Column: pos.Column, Offset: pos.Offset}
}

// ErrorLevel represents the severity of an error
type ErrorLevel string

const (
	Error   ErrorLevel = "error"
	Warning ErrorLevel = "warning"
)

// CompilerError is one diagnostic: a coded message at a source span, with
// optional fixes and notes
type CompilerError struct {
	Level       ErrorLevel
	Code        string
	Message     string
	Position    Position // zero when unknown
	Length      int
	Suggestions []Suggestion
	Notes       []string
}

func (e CompilerError) Error() string {
	if e.Position.Line > 0 {
		return fmt.Sprintf("%d:%d: %s[%s]: %s", e.Position.Line, e.Position.Column, e.Level, e.Code, e.Message)
	}
	return fmt.Sprintf("%s[%s]: %s", e.Level, e.Code, e.Message)
}

// Suggestion is a suggested fix
type Suggestion struct {
	Message string
}

var (
	dim   = color.New(color.Faint).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
	blue  = color.New(color.FgBlue).SprintFunc()
	red   = color.New(color.FgRed, color.Bold).SprintFunc()
	amber = color.New(color.FgYellow, color.Bold).SprintFunc()
)

// ErrorReporter renders diagnostics against the source they refer to
type ErrorReporter struct {
	filename string
	lines    []string
}

// NewErrorReporter creates a new error reporter for a file
func NewErrorReporter(filename, source string) *ErrorReporter {
	return &ErrorReporter{
		filename: filename,
		lines:    strings.Split(source, "\n"),
	}
}

// FormatErrors formats every error in order
func (er *ErrorReporter) FormatErrors(errs []CompilerError) string {
	var result strings.Builder
	for _, err := range errs {
		result.WriteString(er.FormatError(err))
	}
	return result.String()
}

// FormatError renders err Rust-style: a header, the location, the offending
// line between its neighbours with a marker under the span, then suggestions
// and notes. Errors without a position only get the header and the notes.
func (er *ErrorReporter) FormatError(err CompilerError) string {
	var b strings.Builder
	paint := levelColor(err.Level)
	fmt.Fprintf(&b, "%s[%s]: %s\n", paint(string(err.Level)), err.Code, err.Message)

	pos := err.Position
	if pos.Line <= 0 {
		for _, note := range err.Notes {
			fmt.Fprintf(&b, "  %s %s\n", blue("note:"), note)
		}
		b.WriteString("\n")
		return b.String()
	}

	width := max(3, len(strconv.Itoa(pos.Line+1)))
	gutter := strings.Repeat(" ", width)
	bar := dim("│")

	fmt.Fprintf(&b, "%s %s %s:%d:%d\n", gutter, dim("-->"), er.filename, pos.Line, pos.Column)
	fmt.Fprintf(&b, "%s %s\n", gutter, bar)

	for n := pos.Line - 1; n <= pos.Line+1; n++ {
		if n < 1 || n > len(er.lines) {
			continue
		}
		number := fmt.Sprintf("%*d", width, n)
		if n != pos.Line {
			fmt.Fprintf(&b, "%s %s %s\n", dim(number), bar, er.lines[n-1])
			continue
		}
		fmt.Fprintf(&b, "%s %s %s\n", bold(number), bar, er.lines[n-1])
		marker := strings.Repeat(" ", max(0, pos.Column-1)) + paint(strings.Repeat("^", max(1, err.Length)))
		fmt.Fprintf(&b, "%s %s %s\n", gutter, bar, marker)
	}

	for i, s := range err.Suggestions {
		if i == 0 {
			fmt.Fprintf(&b, "%s %s\n%s %s %s\n", gutter, bar, gutter, cyan("help:"), s.Message)
		} else {
			fmt.Fprintf(&b, "%s       %s\n", gutter, s.Message)
		}
	}
	for _, note := range err.Notes {
		fmt.Fprintf(&b, "%s %s %s %s\n", gutter, bar, blue("note:"), note)
	}

	b.WriteString("\n")
	return b.String()
}

func levelColor(level ErrorLevel) func(...interface{}) string {
	if level == Warning {
		return amber
	}
	return red
}
