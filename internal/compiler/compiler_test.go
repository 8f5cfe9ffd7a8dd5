package compiler

import (
	"path/filepath"
	"testing"

	"goc/internal/errors"
	"goc/internal/ir"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileExamples(t *testing.T) {
	files, err := filepath.Glob("../../examples/*.goc")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, path := range files {
		r, err := CompileFile(path, DefaultOptions())
		require.NoError(t, err)
		assert.False(t, r.Failed(), "%s:\n%s", path, r.Format())
		require.NotNil(t, r.Function, path)
		assert.True(t, r.Function.SSA, path)
	}
}

func TestCompileStopsAtSyntaxError(t *testing.T) {
	r := Compile("bad.goc", "main { return }", DefaultOptions())

	assert.True(t, r.Failed())
	assert.Nil(t, r.Program)
	require.Len(t, r.Errors, 1)
	assert.Equal(t, errors.ErrorSyntax, r.Errors[0].Code)
	assert.Contains(t, r.Format(), "bad.goc")
}

func TestCompileStopsAtSemanticError(t *testing.T) {
	r := Compile("undef.goc", "return y", DefaultOptions())

	assert.True(t, r.Failed())
	assert.NotNil(t, r.Program)
	assert.Nil(t, r.Function)
}

func TestCompileWarningsDoNotFail(t *testing.T) {
	r := Compile("warn.goc", "unused = 1\nreturn 0", DefaultOptions())

	assert.False(t, r.Failed())
	require.Len(t, r.Errors, 1)
	assert.Equal(t, errors.WarningUnusedVariable, r.Errors[0].Code)
	assert.NotNil(t, r.Function)
}

func TestCompileWithoutSSA(t *testing.T) {
	opts := DefaultOptions()
	opts.SSA = false
	r := Compile("cfg.goc", "x = 1\nreturn x", opts)

	require.NotNil(t, r.Function)
	assert.False(t, r.Function.SSA)
	assert.Equal(t, "x = 1", r.Function.Graph.Vertices[ir.FirstBlock].Stmts[0].String())
}

func TestCompileInternalError(t *testing.T) {
	opts := DefaultOptions()
	opts.IR.Dominators = ir.DominatorAlgorithm(9)
	r := Compile("x.goc", "x = 1\nreturn x", opts)

	assert.True(t, r.Failed())
	require.Len(t, r.Errors, 1)
	assert.Equal(t, errors.ErrorInternal, r.Errors[0].Code)
}

func TestCompileFileMissing(t *testing.T) {
	_, err := CompileFile("no-such-file.goc", DefaultOptions())
	assert.Error(t, err)
}
