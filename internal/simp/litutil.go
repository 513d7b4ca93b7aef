package simp

import "github.com/termfx/vhdlcore/internal/ir"

// Booleans have no dedicated literal kind in this IR: BOOLEAN is just a
// two-valued enumeration type, and a resolved enum literal's Value slot is
// already its ordinal position as an int literal (KindEnumLiteralDecl).
// This package follows fold.Const's convention throughout and represents a
// folded boolean result the same way, as an integer literal: 0 for FALSE
// and nonzero for TRUE.

func (c *Context) intLiteral(like *ir.Node, v int64) *ir.Node {
	n := c.Arena.New(ir.KindLiteral)
	n.SetLiteral(&ir.Literal{Kind: ir.LiteralInt, Int: v})
	n.SetLoc(like.Loc())
	return n
}

func (c *Context) boolLiteral(like *ir.Node, v bool) *ir.Node {
	var i int64
	if v {
		i = 1
	}
	return c.intLiteral(like, i)
}

// asBool reads n as this package's boolean-as-integer-literal encoding.
func asBool(n *ir.Node) (bool, bool) {
	if n == nil || n.Kind() != ir.KindLiteral {
		return false, false
	}
	lit := n.Literal()
	if lit.Kind != ir.LiteralInt {
		return false, false
	}
	return lit.Int != 0, true
}

func literalsEqual(a, b *ir.Node) bool {
	if a == nil || b == nil || a.Kind() != ir.KindLiteral || b.Kind() != ir.KindLiteral {
		return false
	}
	la, lb := a.Literal(), b.Literal()
	if la.Kind != lb.Kind {
		return false
	}
	switch la.Kind {
	case ir.LiteralInt, ir.LiteralPhysical:
		return la.Int == lb.Int
	case ir.LiteralReal:
		return la.Real == lb.Real
	case ir.LiteralString, ir.LiteralChar:
		return la.Str == lb.Str
	case ir.LiteralNull:
		return true
	default:
		return false
	}
}

// literalInRange reports whether literal v falls within the literal
// bounds of discrete range r. Ranges whose bounds aren't both literal (or
// that are a 'RANGE-style expression range) can't be tested and report
// false — the caller treats that as "no match", leaving the case/select
// alternative unreduced rather than mis-resolving it.
func literalInRange(v *ir.Node, r *ir.Range) bool {
	if v == nil || v.Kind() != ir.KindLiteral || v.Literal().Kind != ir.LiteralInt {
		return false
	}
	if r == nil || r.Kind == ir.RangeExpr || r.Left == nil || r.Right == nil {
		return false
	}
	if r.Left.Kind() != ir.KindLiteral || r.Right.Kind() != ir.KindLiteral {
		return false
	}
	lo, hi := r.Left.Literal().Int, r.Right.Literal().Int
	if r.Kind == ir.RangeDownto {
		lo, hi = hi, lo
	}
	x := v.Literal().Int
	return x >= lo && x <= hi
}
