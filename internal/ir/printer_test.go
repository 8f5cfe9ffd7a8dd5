package ir

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// ============================================================================
// Printer Tests
// ============================================================================

func TestPrintDot(t *testing.T) {
	fn := constructSource(t, "x = 1; if (x) { x = 2 } else { x = 3 }; return x;")
	out := PrintDot(fn.Graph)

	assert.True(t, strings.HasPrefix(out, "digraph g {\n  node [shape = box]\n"))
	assert.Contains(t, out, "  0 [label=\"0:\\l\"]\n")
	assert.Contains(t, out, "  1 [label=\"1:\\lx0 = 1\\li_cmp_ne_0 x0\\l\"]\n")
	assert.Contains(t, out, "  3 [label=\"3:\\lx3 = phi(x2, x1)\\lreturn x3\\l\"]\n")
	assert.Contains(t, out, "  1 -> 2\n  1 -> 4\n  2 -> 3\n")
	assert.Contains(t, out, "  4 -> 3\n")
	assert.True(t, strings.HasSuffix(out, "}\n"))
}

func TestPrintDotOneEdgeLinePerSuccessor(t *testing.T) {
	g := build("double edge")
	out := PrintDot(g)
	assert.Equal(t, 2, strings.Count(out, "1 -> 2\n"))
}

func TestPrintIsIdempotent(t *testing.T) {
	fn := constructSource(t, "x = 5; while (x) { x = x - 1 }; return x")

	assert.Equal(t, PrintDot(fn.Graph), PrintDot(fn.Graph))
	assert.Equal(t, PrintListing(fn), PrintListing(fn))
	assert.Equal(t, PrintDot(fn.Graph), PrintProgram(fn))
}

func TestPrintListing(t *testing.T) {
	fn := constructSource(t, "x = 5; while (x) { x = x - 1 }; return x")
	out := PrintListing(fn)

	assert.True(t, strings.HasPrefix(out, "FUNCTION main (SSA)\n"))
	assert.Contains(t, out, "block 2:\n  ; preds: 1, 3\n  ; idom: 1\n  ; df: 2\n  x1 = phi(x0, x2)\n")
	assert.Contains(t, out, "block 4:\n  ; preds: 2\n  ; idom: 2\n  ; df: -\n  return x1\n")
}

func TestPrintListingBeforeConstruction(t *testing.T) {
	fn := lowerSource(t, "x = 1; return x")
	out := PrintListing(fn)

	assert.True(t, strings.HasPrefix(out, "FUNCTION main (CFG)\n"))
	assert.NotContains(t, out, "; idom")
	assert.Contains(t, out, "  x = 1\n")
}

func TestPrintListingMarksUnreachable(t *testing.T) {
	g := build("unreachable")
	fn := &Function{Name: "f", Graph: g}
	assert.NoError(t, g.ComputeDominators(DominatorsReachability))

	out := PrintListing(fn)
	assert.Contains(t, out, "block 3: (unreachable)\n")
}
