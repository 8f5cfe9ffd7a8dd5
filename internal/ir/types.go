package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// IR statement model. Every statement is one of a closed set of kinds and
// carries at most one target and an ordered operand list.

// Kind tags the variant of a Stmt
type Kind int

const (
	KindEmpty Kind = iota
	KindAssign
	KindPhi
	KindCompare
	KindReturn
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindAssign:
		return "assign"
	case KindPhi:
		return "phi"
	case KindCompare:
		return "compare"
	case KindReturn:
		return "return"
	default:
		panic(fmt.Sprintf("ir: unknown statement kind %d", int(k)))
	}
}

// NoVersion marks a value that has not been renamed yet
const NoVersion = -1

// Value is a variable reference or an integer literal used by a statement.
// Once renamed a variable carries its SSA version and renders as name+version.
// That text is not unique (x with version 10 and x1 with version 0 both print
// x10); identity is the struct itself, which is what the verifier keys on.
type Value struct {
	Name    string
	Version int
	Literal bool
}

// Var returns an unversioned reference to a program variable or temporary
func Var(name string) Value {
	return Value{Name: name, Version: NoVersion}
}

// Lit returns an integer literal operand
func Lit(text string) Value {
	return Value{Name: text, Version: NoVersion, Literal: true}
}

// Undef is the operand stored in a phi slot whose predecessor has no reaching
// definition of the variable
func Undef() Value {
	return Value{Name: "", Version: NoVersion}
}

// IsLiteral reports whether the value is an integer literal. The text is kept
// as written and never parsed, so any digit string is accepted.
func (v Value) IsLiteral() bool { return v.Literal }

// IsUndef reports whether the value is the undefined phi operand
func (v Value) IsUndef() bool { return v.Name == "" }

// IsTemp reports whether the value names a lowering temporary
func (v Value) IsTemp() bool { return strings.HasPrefix(v.Name, TempPrefix) }

// Renamed reports whether the value has been assigned an SSA version
func (v Value) Renamed() bool { return v.Version != NoVersion }

// Refers reports whether v is a not-yet-renamed reference to variable name.
// Matching is exact on the whole name.
func (v Value) Refers(name string) bool {
	return !v.Literal && v.Version == NoVersion && v.Name == name
}

func (v Value) String() string {
	if v.IsUndef() {
		return "undef"
	}
	if v.Version == NoVersion {
		return v.Name
	}
	return v.Name + strconv.Itoa(v.Version)
}

// Stmt is a single IR statement.
//
// Target is set for Assign and Phi only. Op is set only when the statement
// combines exactly two operands. Phi statements hold one operand per
// predecessor edge of their block, in predecessor order.
type Stmt struct {
	Kind   Kind
	Target Value
	Args   []Value
	Op     string
}

// NewAssign builds `target = arg` or `target = left op right`
func NewAssign(target string, op string, args ...Value) *Stmt {
	return &Stmt{Kind: KindAssign, Target: Var(target), Args: args, Op: op}
}

// NewCompare builds the branch condition `i_cmp_ne_0 args...`
func NewCompare(op string, args ...Value) *Stmt {
	return &Stmt{Kind: KindCompare, Args: args, Op: op}
}

// NewReturn builds `return args...`
func NewReturn(op string, args ...Value) *Stmt {
	return &Stmt{Kind: KindReturn, Args: args, Op: op}
}

// NewPhi builds a phi for name with one unversioned slot per predecessor
func NewPhi(name string, preds int) *Stmt {
	args := make([]Value, preds)
	for i := range args {
		args[i] = Var(name)
	}
	return &Stmt{Kind: KindPhi, Target: Var(name), Args: args}
}

// NewEmpty builds a no-op statement
func NewEmpty() *Stmt {
	return &Stmt{Kind: KindEmpty}
}

// Defines reports whether the statement assigns the (unrenamed) variable name
func (s *Stmt) Defines(name string) bool {
	switch s.Kind {
	case KindAssign, KindPhi:
		return s.Target.Refers(name)
	case KindCompare, KindReturn, KindEmpty:
		return false
	default:
		panic(fmt.Sprintf("ir: unknown statement kind %d", int(s.Kind)))
	}
}

// HasTarget reports whether the statement kind carries a target
func (s *Stmt) HasTarget() bool {
	return s.Kind == KindAssign || s.Kind == KindPhi
}

// checkShape validates the operand/operator invariant of binary forms
func (s *Stmt) checkShape() error {
	switch s.Kind {
	case KindAssign, KindCompare, KindReturn:
		if s.Op != "" && len(s.Args) != 2 {
			return fmt.Errorf("%s with operator %q has %d operands", s.Kind, s.Op, len(s.Args))
		}
		if s.Op == "" && len(s.Args) != 1 {
			return fmt.Errorf("%s without operator has %d operands", s.Kind, len(s.Args))
		}
	case KindPhi:
		if s.Op != "" {
			return fmt.Errorf("phi carries operator %q", s.Op)
		}
	case KindEmpty:
	}
	return nil
}

func (s *Stmt) String() string {
	switch s.Kind {
	case KindEmpty:
		return "nop"
	case KindPhi:
		args := make([]string, len(s.Args))
		for i, a := range s.Args {
			args[i] = a.String()
		}
		return fmt.Sprintf("%s = phi(%s)", s.Target, strings.Join(args, ", "))
	case KindAssign:
		return fmt.Sprintf("%s = %s", s.Target, s.operandString())
	case KindReturn:
		return "return " + s.operandString()
	case KindCompare:
		return "i_cmp_ne_0 " + s.operandString()
	default:
		panic(fmt.Sprintf("ir: unknown statement kind %d", int(s.Kind)))
	}
}

func (s *Stmt) operandString() string {
	if s.Op == "" {
		if len(s.Args) == 0 {
			return ""
		}
		return s.Args[0].String()
	}
	return fmt.Sprintf("%s %s %s", s.Args[0], s.Op, s.Args[1])
}
