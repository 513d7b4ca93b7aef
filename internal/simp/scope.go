package simp

import "github.com/termfx/vhdlcore/internal/ir"

// scopeFrame accumulates the implicit signal declarations and driving
// processes synthesized while Rewrite is inside one declarative region
// (an architecture, block, or generate statement), so they can be spliced
// into that region's own decls/stmts once its subtree is fully
// simplified (spec.md §4.2.5's 'DELAYED/'TRANSACTION synthesis).
type scopeFrame struct {
	owner   *ir.Node
	signals []*ir.Node
	drivers []*ir.Node
}

// isScopeHost reports whether k's Node can legally host both new signal
// declarations and a new concurrent process — the only kinds implicit
// signal synthesis may target.
func isScopeHost(k ir.Kind) bool {
	switch k {
	case ir.KindArch, ir.KindBlock, ir.KindIfGenerate, ir.KindForGenerate:
		return true
	default:
		return false
	}
}

func (c *Context) pushScope(n *ir.Node) {
	c.scopes = append(c.scopes, &scopeFrame{owner: n})
}

// popScope splices n's pending synthesized signals/processes into its own
// decls/stmts and pops the frame. It is a no-op if nothing was
// synthesized while inside n.
func (c *Context) popScope(n *ir.Node) {
	if len(c.scopes) == 0 {
		return
	}
	f := c.scopes[len(c.scopes)-1]
	c.scopes = c.scopes[:len(c.scopes)-1]
	if f.owner != n {
		return
	}
	if len(f.signals) > 0 {
		n.SetDecls(append(n.Decls(), f.signals...))
	}
	if len(f.drivers) > 0 {
		n.SetStmts(append(n.Stmts(), f.drivers...))
	}
}

// currentScope returns the innermost open scope frame, or nil if
// synthesis is being attempted outside any declarative region.
func (c *Context) currentScope() *scopeFrame {
	if len(c.scopes) == 0 {
		return nil
	}
	return c.scopes[len(c.scopes)-1]
}
