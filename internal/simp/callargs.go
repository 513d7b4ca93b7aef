package simp

import "github.com/termfx/vhdlcore/internal/ir"

// normalizeParams implements spec.md §4.2.1 (simp_call_args): it rewrites
// n's actual parameter list into positional order matching the formal
// parameter list declared on n's resolved subprogram/instance (n.Ref()),
// filling any formal the call left out — or explicitly marked open — with
// its declared default. A call whose actuals are all positional, in order
// and not open is left untouched, even when it omits trailing formals.
func (c *Context) normalizeParams(n *ir.Node) {
	params := n.Params()
	if !needsNormalization(params) {
		return
	}
	ref := n.Ref()
	if ref == nil {
		return
	}
	formals := ref.Ports()
	if len(formals) == 0 {
		return
	}

	normalized := make([]ir.Param, len(formals))
	filled := make([]bool, len(formals))
	for i := range normalized {
		normalized[i] = ir.Param{Kind: ir.ParamPositional, Pos: i}
	}

	for _, p := range params {
		idx := -1
		switch p.Kind {
		case ir.ParamPositional:
			idx = p.Pos
		case ir.ParamNamed:
			idx = indexOfFormal(formals, p.Name)
		}
		if idx < 0 || idx >= len(formals) {
			// A formal we can't place (e.g. resolution left it
			// ambiguous). Normalizing further could silently drop an
			// actual, so leave the call exactly as written.
			return
		}
		val := p.Value
		if val != nil && val.Kind() == ir.KindOpen {
			val = nil
		}
		if val != nil {
			normalized[idx].Value = val
			filled[idx] = true
		}
	}

	for i, f := range formals {
		if filled[i] {
			continue
		}
		def := f.Value()
		if def == nil {
			// No actual and no default: leave the call untouched so the
			// missing-argument condition surfaces wherever the caller
			// checks foldability/legality downstream, rather than
			// silently building an incomplete call.
			return
		}
		normalized[i].Value = def
	}

	n.SetParams(normalized)
}

// needsNormalization reports whether params contains anything
// normalizeParams would need to rewrite: a named actual, an out-of-order
// positional actual, or an explicit "open".
func needsNormalization(params []ir.Param) bool {
	for i, p := range params {
		if p.Kind != ir.ParamPositional || p.Pos != i {
			return true
		}
		if p.Value != nil && p.Value.Kind() == ir.KindOpen {
			return true
		}
	}
	return false
}

func indexOfFormal(formals []*ir.Node, name ir.Ident) int {
	for i, f := range formals {
		if f.Ident() == name {
			return i
		}
	}
	return -1
}
