package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeSource(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prog.goc")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func TestBuildEmitsDot(t *testing.T) {
	path := writeSource(t, "x = 5; while (x) { x = x - 1 }; return x")

	stdout, stderr, err := execute(t, "build", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "digraph g {")
	assert.Contains(t, stdout, "x1 = phi(x0, x2)")
	assert.Contains(t, stderr, "Successfully processed")
}

func TestBuildEmitsListingWithIterativeDominators(t *testing.T) {
	path := writeSource(t, "x = 1; if (x) { x = 2 } else { x = 3 }; return x;")

	stdout, _, err := execute(t, "build", path, "--emit", "ssa", "--dom", "iterative")
	require.NoError(t, err)
	assert.Contains(t, stdout, "FUNCTION main (SSA)")
	assert.Contains(t, stdout, "return x3")
}

func TestBuildEmitsCFGAndAST(t *testing.T) {
	path := writeSource(t, "x = 1\nreturn x")

	stdout, _, err := execute(t, "build", path, "--emit", "cfg")
	require.NoError(t, err)
	assert.Contains(t, stdout, "x = 1\\l")

	stdout, _, err = execute(t, "build", path, "--emit", "ast")
	require.NoError(t, err)
	assert.Equal(t, "main {\n    x = 1\n    return x\n}\n", stdout)
}

func TestBuildWritesOutputFile(t *testing.T) {
	path := writeSource(t, "x = 1\nreturn x")
	out := filepath.Join(t.TempDir(), "prog.dot")

	stdout, _, err := execute(t, "build", path, "-o", out)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "x0 = 1")
}

func TestBuildReportsErrors(t *testing.T) {
	path := writeSource(t, "count = 1\nreturn cout + count")

	stdout, stderr, err := execute(t, "build", path, "--no-verify")
	require.Error(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "E0001")
	assert.Contains(t, stderr, "Compilation failed")
}

func TestBuildRejectsBadFlags(t *testing.T) {
	path := writeSource(t, "return 0")

	_, _, err := execute(t, "build", path, "--emit", "svg")
	assert.Error(t, err)
	_, _, err = execute(t, "build", path, "--dom", "lt")
	assert.Error(t, err)
	_, _, err = execute(t, "build")
	assert.Error(t, err)
}

func TestReplCommand(t *testing.T) {
	var stdout bytes.Buffer
	cmd := newRootCommand()
	cmd.SetIn(bytes.NewBufferString("x = 1\nreturn x\n"))
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"repl"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "return x0")
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "goc "+version+"\n", stdout)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "1.50s", formatDuration(1500*time.Millisecond))
	assert.Equal(t, "2.0ms", formatDuration(2*time.Millisecond))
	assert.Equal(t, "10ns", formatDuration(10*time.Nanosecond))
}

func TestRunPrintsCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing file", []string{"build", filepath.Join(t.TempDir(), "missing.goc")}, "failed to read file"},
		{"unknown emit format", []string{"build", writeSource(t, "return 0"), "--emit", "foo"}, `unknown emit format "foo"`},
		{"unknown dominator algorithm", []string{"build", writeSource(t, "return 0"), "--dom", "bad"}, `unknown dominator algorithm "bad"`},
		{"unknown flag", []string{"build", "--frobnicate"}, "unknown flag"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(tt.args, &stdout, &stderr)
			assert.Equal(t, 1, code)
			assert.Contains(t, stderr.String(), "Error: ")
			assert.Contains(t, stderr.String(), tt.want)
		})
	}
}

func TestRunSucceeds(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 0, run([]string{"version"}, &stdout, &stderr))
	assert.Equal(t, "goc "+version+"\n", stdout.String())
	assert.Empty(t, stderr.String())
}
