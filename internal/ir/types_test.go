package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueKinds(t *testing.T) {
	assert.True(t, Lit("42").IsLiteral())
	assert.False(t, Var("x").IsLiteral())
	assert.True(t, Undef().IsUndef())
	assert.False(t, Undef().IsLiteral())
	assert.True(t, Var("%t3").IsTemp())

	x := Var("x")
	assert.True(t, x.Refers("x"))
	assert.False(t, x.Refers("xy"))
	assert.False(t, Var("x1").Refers("x"))
	x.Version = 4
	assert.False(t, x.Refers("x"))
	assert.Equal(t, "x4", x.String())
	assert.Equal(t, "undef", Undef().String())
}

func TestLiteralTextIsNotParsed(t *testing.T) {
	for _, text := range []string{"0", "09", "99999999999999999999"} {
		lit := Lit(text)
		assert.True(t, lit.IsLiteral(), text)
		assert.False(t, lit.Refers(text), text)
		assert.Equal(t, text, lit.String())
	}
	assert.False(t, Var("09").IsLiteral())
}

func TestRenderedVersionsCanCollide(t *testing.T) {
	a := Value{Name: "x", Version: 10}
	b := Value{Name: "x1", Version: 0}

	assert.Equal(t, a.String(), b.String())
	assert.NotEqual(t, a, b)
	defs := map[Value]bool{a: true}
	assert.False(t, defs[b])
}

func TestStmtString(t *testing.T) {
	tests := []struct {
		stmt *Stmt
		want string
	}{
		{NewAssign("x", "", Lit("1")), "x = 1"},
		{NewAssign("x", "+", Var("a"), Var("b")), "x = a + b"},
		{NewPhi("x", 2), "x = phi(x, x)"},
		{NewCompare("", Var("x")), "i_cmp_ne_0 x"},
		{NewReturn("-", Var("a"), Lit("1")), "return a - 1"},
		{NewEmpty(), "nop"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.stmt.String())
		assert.NoError(t, tt.stmt.checkShape(), tt.want)
	}
}

func TestStmtDefines(t *testing.T) {
	assert.True(t, NewAssign("x", "", Lit("1")).Defines("x"))
	assert.True(t, NewPhi("x", 1).Defines("x"))
	assert.False(t, NewAssign("x1", "", Lit("1")).Defines("x"))
	assert.False(t, NewReturn("", Var("x")).Defines("x"))
	assert.False(t, NewCompare("", Var("x")).HasTarget())
}

func TestCheckShape(t *testing.T) {
	assert.Error(t, NewAssign("x", "+", Var("a")).checkShape())
	assert.Error(t, NewReturn("").checkShape())
	bad := NewPhi("x", 2)
	bad.Op = "+"
	assert.Error(t, bad.checkShape())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "phi", KindPhi.String())
	assert.Panics(t, func() { _ = Kind(99).String() })
}
