package simp

import (
	"context"

	"github.com/termfx/vhdlcore/internal/ir"
)

// simpFCall implements spec.md §4.2.2/§4.2.3 for one call site. Because
// Rewrite is post-order, every argument has already been simplified (and
// possibly folded down to a literal) by the time simplify reaches the
// call itself — so foldable only needs to look at n's immediate shape, not
// recurse through the whole subtree by hand.
func (c *Context) simpFCall(n *ir.Node) *ir.Node {
	c.normalizeParams(n)

	if n.Flags()&c.mask == 0 {
		return n
	}
	if !c.foldable(n) {
		c.note(n, "expression is not foldable under the active static mask")
		return n
	}
	return c.foldExpr(n)
}

// foldable reports whether n, in its current (already-simplified) shape,
// can be handed to the evaluator: a literal, a reference to an enum
// literal or a foldable (or fcall-flagged deferred) constant, a
// qualified/converted literal, an aggregate of foldable associations, or
// a call to a non-impure, non-foreign subprogram with entirely foldable
// arguments (spec.md §4.2.2).
func (c *Context) foldable(n *ir.Node) bool {
	switch n.Kind() {
	case ir.KindLiteral:
		return true
	case ir.KindRef:
		return c.refFoldable(n.Ref())
	case ir.KindQualified, ir.KindTypeConv:
		return c.foldable(n.Value())
	case ir.KindAggregate:
		for _, a := range n.Assocs() {
			if a.Value != nil && !c.foldable(a.Value) {
				return false
			}
		}
		return true
	case ir.KindFCall:
		ref := n.Ref()
		if ref == nil || ref.Flags().Has(ir.FlagImpure) {
			return false
		}
		for _, p := range n.Params() {
			if p.Value == nil || !c.foldable(p.Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// refFoldable implements the two declaration kinds spec.md §3.2 allows a
// ref slot to point to besides a top-level unit: an enum literal is
// foldable outright (its Value slot is just its ordinal position, not
// something to recurse into); a constant is foldable when its initializer
// is, or — lacking one, i.e. a deferred constant — when FlagFCall marks it
// as resolved by a later completion the evaluator can still reach (spec.md
// §4.2.2, "a deferred constant when the fcall mask bit is set").
func (c *Context) refFoldable(target *ir.Node) bool {
	if target == nil {
		return false
	}
	switch target.Kind() {
	case ir.KindEnumLiteralDecl:
		return true
	case ir.KindConstantDecl:
		if v := target.Value(); v != nil {
			return c.foldable(v)
		}
		return target.Flags().Has(ir.FlagFCall)
	default:
		return false
	}
}

// foldExpr lowers and evaluates n, returning the literal that replaces it
// or n itself unchanged if lowering declines (spec.md §4.2.3: "if lowering
// fails, the original node is preserved").
func (c *Context) foldExpr(n *ir.Node) *ir.Node {
	thunk, err := c.Lower.Lower(n)
	if err != nil || thunk == nil {
		c.note(n, "could not lower expression for folding")
		return n
	}
	defer thunk.Release()

	lit, err := c.Eval.Fold(context.Background(), c.Arena, n, thunk)
	if err != nil || lit == nil {
		c.note(n, "constant evaluation failed: %v", err)
		return n
	}
	lit.SetLoc(n.Loc())
	c.Stats.Folded++
	return lit
}
