package simp

import "github.com/termfx/vhdlcore/internal/ir"

// simpRef implements spec.md §4.2.4 and, for generic references, §4.2.6.
// Because Decls are rewritten before Stmts within any one parent (the
// fixed slot order in ir.Rewrite), a constant's own initializer has
// already been folded down to a literal (where possible) by the time any
// Ref to that constant is reached here.
func (c *Context) simpRef(n *ir.Node) *ir.Node {
	target := n.Ref()
	if target == nil {
		return n
	}

	if bound, ok := c.generics[target]; ok {
		if n.Flags().Has(ir.FlagFormalName) && !formalSubstitutable(bound) {
			// Reference resolution's compatibility check (spec.md §4.2.4):
			// a formal-name position requires the substituted actual to
			// still look like a name, not an arbitrary expression.
			return n
		}
		c.Stats.Substituted++
		return bound
	}

	switch target.Kind() {
	case ir.KindConstantDecl:
		v := target.Value()
		if v == nil {
			// Deferred constant: even one FlagFCall marks as reachable
			// through a later completion has no Value node here to
			// substitute in its place — that flag only tells foldable an
			// fcall argument built from this ref can still fold, not what
			// literal to replace the ref with directly.
			return n
		}
		if v.Kind() == ir.KindLiteral {
			return v
		}
		return n
	case ir.KindEnumLiteralDecl:
		if v := target.Value(); v != nil && v.Kind() == ir.KindLiteral {
			return v
		}
		return n
	case ir.KindGenericDecl:
		if v := target.Value(); v != nil && v.Kind() == ir.KindLiteral {
			return v // unbound generic falling back to its own default
		}
	}
	return n
}

// formalSubstitutable reports whether v is simple enough to stand in for
// a reference used in formal-parameter-name position — an aggregate or a
// function call cannot (spec.md §4.2.4).
func formalSubstitutable(v *ir.Node) bool {
	switch v.Kind() {
	case ir.KindAggregate, ir.KindFCall:
		return false
	default:
		return true
	}
}

// bindGenerics implements spec.md §4.2.6: it matches a block's generics
// list against its actual genmaps list — positionally first, then by
// name — falling back to each generic's own default for anything left
// unmapped, and records the binding for simpRef to consult.
func (c *Context) bindGenerics(generics []*ir.Node, genmaps []ir.Param) {
	if len(generics) == 0 {
		return
	}
	bound := make([]bool, len(generics))
	for _, m := range genmaps {
		idx := -1
		switch m.Kind {
		case ir.ParamPositional:
			idx = m.Pos
		case ir.ParamNamed:
			idx = indexOfFormal(generics, m.Name)
		}
		if idx < 0 || idx >= len(generics) || m.Value == nil {
			continue
		}
		c.generics[generics[idx]] = m.Value
		bound[idx] = true
	}
	for i, g := range generics {
		if bound[i] {
			continue
		}
		if def := g.Value(); def != nil {
			c.generics[g] = def
		}
	}
}
