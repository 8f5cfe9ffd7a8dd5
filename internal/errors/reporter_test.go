package errors

import (
	"fmt"
	"testing"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"goc/grammar"
)

func TestErrorReporter(t *testing.T) {
	source := `main {
    x = 1
    y = unknownVar + x
    return y
}`

	reporter := NewErrorReporter("test.goc", source)

	err := UndefinedVariable("unknownVar", Position{Line: 3, Column: 9}, []string{"knownVar", "anotherVar"})
	formatted := reporter.FormatError(err)

	// Should contain error level and code
	assert.Contains(t, formatted, "error")
	assert.Contains(t, formatted, ErrorUndefinedVariable)
	assert.Contains(t, formatted, "unknownVar")

	// Should contain location and the offending line
	assert.Contains(t, formatted, "test.goc:3:9")
	assert.Contains(t, formatted, "y = unknownVar + x")

	// Should contain suggestions
	assert.Contains(t, formatted, "did you mean")
	assert.Contains(t, formatted, "knownVar")
}

func TestFormatErrorLayout(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = noColor }()

	reporter := NewErrorReporter("test.goc", "x = 1\ny = cout\nreturn y")
	formatted := reporter.FormatError(UndefinedVariable("cout", Position{Line: 2, Column: 5}, []string{"count"}))

	expected := "error[E0001]: undefined variable 'cout'\n" +
		"    --> test.goc:2:5\n" +
		"    │\n" +
		"  1 │ x = 1\n" +
		"  2 │ y = cout\n" +
		"    │     ^^^^\n" +
		"  3 │ return y\n" +
		"    │\n" +
		"    help: did you mean 'count'?\n" +
		"\n"
	assert.Equal(t, expected, formatted)

	warning := reporter.FormatError(UnusedVariable("x", Position{Line: 1, Column: 1}))
	assert.Contains(t, warning, "warning[W0001]")
	assert.Contains(t, warning, "  1 │ x = 1\n    │ ^\n  2 │ y = cout\n")
}

func TestFormatErrorWithoutPosition(t *testing.T) {
	reporter := NewErrorReporter("test.goc", "return 0")
	formatted := reporter.FormatError(InternalError(fmt.Errorf("renaming x: boom")))

	assert.Contains(t, formatted, ErrorInternal)
	assert.Contains(t, formatted, "renaming x: boom")
	assert.NotContains(t, formatted, "-->")
}

func TestFormatErrors(t *testing.T) {
	reporter := NewErrorReporter("test.goc", "x = y\nreturn z")
	formatted := reporter.FormatErrors([]CompilerError{
		UndefinedVariable("y", Position{Line: 1, Column: 5}, nil),
		UndefinedVariable("z", Position{Line: 2, Column: 8}, nil),
	})

	assert.Contains(t, formatted, "test.goc:1:5")
	assert.Contains(t, formatted, "test.goc:2:8")
}

func TestUndefinedVariableError(t *testing.T) {
	pos := Position{Line: 1, Column: 5}

	err := UndefinedVariable("cout", pos, []string{"count"})
	assert.Equal(t, ErrorUndefinedVariable, err.Code)
	assert.Contains(t, err.Message, "cout")
	assert.Len(t, err.Suggestions, 1)
	assert.Contains(t, err.Suggestions[0].Message, "did you mean 'count'")
	assert.Equal(t, 4, err.Length)

	err = UndefinedVariable("xyz", pos, []string{})
	assert.Len(t, err.Suggestions, 1)
	assert.Contains(t, err.Suggestions[0].Message, "assign the variable")
	assert.Len(t, err.Notes, 1)

	err = UndefinedVariable("ab", pos, []string{"a", "b"})
	assert.Contains(t, err.Suggestions[0].Message, "one of: 'a', 'b'")
}

func TestUninitializedVariableError(t *testing.T) {
	err := UninitializedVariable("x", Position{Line: 4, Column: 12})
	assert.Equal(t, ErrorUninitializedVariable, err.Code)
	assert.Equal(t, Error, err.Level)
	assert.Equal(t, "4:12: error[E0017]: variable 'x' may be used before it is assigned", err.Error())
}

func TestUnusedVariableWarning(t *testing.T) {
	err := UnusedVariable("tmp", Position{Line: 1, Column: 1})
	assert.Equal(t, Warning, err.Level)
	assert.True(t, IsWarning(err.Code))
}

func TestSyntaxError(t *testing.T) {
	_, perr := grammar.ParseString("bad.goc", "main {\n  x = \n}")
	assert.Error(t, perr)

	err := SyntaxError(perr)
	assert.Equal(t, ErrorSyntax, err.Code)
	assert.Greater(t, err.Position.Line, 0)
	assert.NotEmpty(t, err.Message)

	err = SyntaxError(fmt.Errorf("read failed"))
	assert.Equal(t, Position{Line: 1, Column: 1}, err.Position)
}

func TestPositionFrom(t *testing.T) {
	pos := PositionFrom(lexer.Position{Filename: "a.goc", Offset: 7, Line: 2, Column: 3})
	assert.Equal(t, Position{Line: 2, Column: 3, Offset: 7}, pos)
}

func TestErrorCategories(t *testing.T) {
	assert.Equal(t, "Semantic Analysis", GetErrorCategory(ErrorUninitializedVariable))
	assert.Equal(t, "Parser", GetErrorCategory(ErrorSyntax))
	assert.Equal(t, "Internal", GetErrorCategory(ErrorInternal))
	assert.Equal(t, "Warning", GetErrorCategory(WarningUnusedVariable))
	assert.False(t, IsWarning(ErrorSyntax))
	assert.NotEqual(t, "Unknown error code", GetErrorDescription(ErrorInternal))
}
