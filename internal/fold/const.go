package fold

import (
	"context"
	"fmt"
	"math"

	"github.com/termfx/vhdlcore/internal/ir"
)

// Const is a reference Lowerer/Evaluator pair that folds predefined
// operators over literal operands directly, bypassing any real bytecode
// backend. It exists for tests and for callers that only need scalar
// constant folding; a production build wires a real lower_thunk/exec_fold
// pair in its place (spec.md §6).
//
// Const recognizes a predefined operator by the Ident of the FuncDecl an
// FCall's "ref" slot points to ("+", "and", "sll", ...), matching how the
// rest of the tree IR identifies predefined subprograms — there is no
// separate operator-kind enum.
type Const struct{}

// NewConst returns a ready-to-use Const evaluator.
func NewConst() *Const { return &Const{} }

type constThunk struct {
	expr *ir.Node
}

func (t *constThunk) Release() {}

// Lower always succeeds for Const: the "lowering" is simply deferring
// evaluation to Fold, which walks expr directly.
func (c *Const) Lower(expr *ir.Node) (Thunk, error) {
	if expr == nil {
		return nil, nil
	}
	return &constThunk{expr: expr}, nil
}

// Fold evaluates the thunked expression tree, recursively reducing any
// FCall operands that are themselves constant. Operands that don't reduce
// to a literal are reported as an error, per spec.md §4.2.3's "lowering
// fails, original node preserved" contract — the caller (internal/simp)
// treats any error here as "not foldable after all" and keeps the
// original expression.
func (c *Const) Fold(ctx context.Context, arena *ir.Arena, expr *ir.Node, thunk Thunk) (*ir.Node, error) {
	t, ok := thunk.(*constThunk)
	if !ok || t == nil {
		return nil, fmt.Errorf("fold: Const.Fold given a foreign thunk")
	}
	return evalConst(arena, t.expr)
}

func evalConst(arena *ir.Arena, n *ir.Node) (*ir.Node, error) {
	switch n.Kind() {
	case ir.KindLiteral:
		return n, nil
	case ir.KindRef:
		return evalRef(arena, n)
	case ir.KindQualified, ir.KindTypeConv:
		return evalConst(arena, n.Value())
	case ir.KindFCall:
		return evalFCall(arena, n)
	default:
		return nil, fmt.Errorf("fold: %s is not foldable by Const", n.Kind())
	}
}

// evalRef resolves a reference to an enum literal or a constant, the two
// declaration kinds spec.md §3.2 allows besides a top-level unit. An enum
// literal's Value slot is its ordinal position, already a literal. A
// deferred constant (FlagFCall set, no Value) has no literal Const can
// reach without a real elaborator behind it, so it is reported as an
// error here and left unfolded by the caller, matching spec.md §4.2.2's
// fold-prevented handling for that case.
func evalRef(arena *ir.Arena, n *ir.Node) (*ir.Node, error) {
	target := n.Ref()
	if target == nil {
		return nil, fmt.Errorf("fold: ref with no resolved declaration")
	}
	switch target.Kind() {
	case ir.KindEnumLiteralDecl:
		if v := target.Value(); v != nil {
			return evalConst(arena, v)
		}
		return nil, fmt.Errorf("fold: enum literal %s has no ordinal value", target.Ident().Name())
	case ir.KindConstantDecl:
		if v := target.Value(); v != nil {
			return evalConst(arena, v)
		}
		return nil, fmt.Errorf("fold: deferred constant %s has no value Const can reach", target.Ident().Name())
	default:
		return nil, fmt.Errorf("fold: ref to %s is not foldable by Const", target.Kind())
	}
}

func evalFCall(arena *ir.Arena, n *ir.Node) (*ir.Node, error) {
	ref := n.Ref()
	if ref == nil {
		return nil, fmt.Errorf("fold: fcall with no resolved subprogram")
	}
	op := ref.Ident().Name()
	params := n.Params()
	lits := make([]*ir.Literal, len(params))
	for i, p := range params {
		v, err := evalConst(arena, p.Value)
		if err != nil {
			return nil, err
		}
		lits[i] = v.Literal()
	}
	switch len(lits) {
	case 1:
		return applyUnary(arena, op, lits[0])
	case 2:
		return applyBinary(arena, op, lits[0], lits[1])
	default:
		return nil, fmt.Errorf("fold: %q: unsupported arity %d", op, len(lits))
	}
}

func litNode(arena *ir.Arena, lit ir.Literal) *ir.Node {
	n := arena.New(ir.KindLiteral)
	v := lit
	n.SetLiteral(&v)
	return n
}

func intLit(arena *ir.Arena, v int64) *ir.Node {
	return litNode(arena, ir.Literal{Kind: ir.LiteralInt, Int: v})
}

func boolLit(arena *ir.Arena, v bool) *ir.Node {
	// Booleans are not a distinct literal kind in this IR (enumeration
	// literals are a semantic-analyzer concept outside its scope); Const
	// represents folded boolean results as an integer literal, 1 for TRUE
	// and 0 for FALSE, matching how internal/simp's dead-code elimination
	// reads a condition back out (see simp.asBool).
	if v {
		return intLit(arena, 1)
	}
	return intLit(arena, 0)
}

func realLit(arena *ir.Arena, v float64) *ir.Node {
	return litNode(arena, ir.Literal{Kind: ir.LiteralReal, Real: v})
}

func strLit(arena *ir.Arena, v string) *ir.Node {
	return litNode(arena, ir.Literal{Kind: ir.LiteralString, Str: v})
}

func applyUnary(arena *ir.Arena, op string, a *ir.Literal) (*ir.Node, error) {
	switch op {
	case "+":
		return litNode(arena, *a), nil
	case "-":
		switch a.Kind {
		case ir.LiteralInt:
			return intLit(arena, -a.Int), nil
		case ir.LiteralReal:
			return realLit(arena, -a.Real), nil
		}
	case "abs":
		switch a.Kind {
		case ir.LiteralInt:
			if a.Int < 0 {
				return intLit(arena, -a.Int), nil
			}
			return intLit(arena, a.Int), nil
		case ir.LiteralReal:
			return realLit(arena, math.Abs(a.Real)), nil
		}
	case "not":
		return boolLit(arena, a.Int == 0), nil
	}
	return nil, fmt.Errorf("fold: unsupported unary operator %q on %v", op, a.Kind)
}

func applyBinary(arena *ir.Arena, op string, a, b *ir.Literal) (*ir.Node, error) {
	if op == "&" {
		if a.Kind == ir.LiteralString && b.Kind == ir.LiteralString {
			return strLit(arena, a.Str+b.Str), nil
		}
		return nil, fmt.Errorf("fold: %q requires string operands", op)
	}
	switch {
	case a.Kind == ir.LiteralInt && b.Kind == ir.LiteralInt:
		return applyBinaryInt(arena, op, a.Int, b.Int)
	case a.Kind == ir.LiteralReal || b.Kind == ir.LiteralReal:
		return applyBinaryReal(arena, op, asReal(a), asReal(b))
	default:
		return nil, fmt.Errorf("fold: %q: unsupported operand kinds %v/%v", op, a.Kind, b.Kind)
	}
}

func asReal(l *ir.Literal) float64 {
	if l.Kind == ir.LiteralInt {
		return float64(l.Int)
	}
	return l.Real
}

func applyBinaryInt(arena *ir.Arena, op string, a, b int64) (*ir.Node, error) {
	switch op {
	case "+":
		return intLit(arena, a+b), nil
	case "-":
		return intLit(arena, a-b), nil
	case "*":
		return intLit(arena, a*b), nil
	case "/":
		if b == 0 {
			return nil, fmt.Errorf("fold: division by zero")
		}
		return intLit(arena, a/b), nil
	case "mod":
		if b == 0 {
			return nil, fmt.Errorf("fold: mod by zero")
		}
		m := a % b
		if m != 0 && (m < 0) != (b < 0) {
			m += b
		}
		return intLit(arena, m), nil
	case "rem":
		if b == 0 {
			return nil, fmt.Errorf("fold: rem by zero")
		}
		return intLit(arena, a%b), nil
	case "**":
		if b < 0 {
			return nil, fmt.Errorf("fold: negative integer exponent")
		}
		return intLit(arena, ipow(a, b)), nil
	case "and":
		return boolLit(arena, a != 0 && b != 0), nil
	case "or":
		return boolLit(arena, a != 0 || b != 0), nil
	case "xor":
		return boolLit(arena, (a != 0) != (b != 0)), nil
	case "nand":
		return boolLit(arena, !(a != 0 && b != 0)), nil
	case "nor":
		return boolLit(arena, !(a != 0 || b != 0)), nil
	case "xnor":
		return boolLit(arena, (a != 0) == (b != 0)), nil
	case "=":
		return boolLit(arena, a == b), nil
	case "/=":
		return boolLit(arena, a != b), nil
	case "<":
		return boolLit(arena, a < b), nil
	case "<=":
		return boolLit(arena, a <= b), nil
	case ">":
		return boolLit(arena, a > b), nil
	case ">=":
		return boolLit(arena, a >= b), nil
	}
	return nil, fmt.Errorf("fold: unsupported integer operator %q", op)
}

func applyBinaryReal(arena *ir.Arena, op string, a, b float64) (*ir.Node, error) {
	switch op {
	case "+":
		return realLit(arena, a+b), nil
	case "-":
		return realLit(arena, a-b), nil
	case "*":
		return realLit(arena, a*b), nil
	case "/":
		if b == 0 {
			return nil, fmt.Errorf("fold: division by zero")
		}
		return realLit(arena, a/b), nil
	case "**":
		return realLit(arena, math.Pow(a, b)), nil
	case "=":
		return boolLit(arena, a == b), nil
	case "/=":
		return boolLit(arena, a != b), nil
	case "<":
		return boolLit(arena, a < b), nil
	case "<=":
		return boolLit(arena, a <= b), nil
	case ">":
		return boolLit(arena, a > b), nil
	case ">=":
		return boolLit(arena, a >= b), nil
	}
	return nil, fmt.Errorf("fold: unsupported real operator %q", op)
}

func ipow(base, exp int64) int64 {
	var result int64 = 1
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}
