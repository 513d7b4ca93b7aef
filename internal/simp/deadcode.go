package simp

import "github.com/termfx/vhdlcore/internal/ir"

// simpIf implements spec.md §4.2.7 for the if statement: a
// compile-time-constant condition collapses the node to whichever branch
// was actually taken (or removes it entirely if that branch is empty).
func (c *Context) simpIf(n *ir.Node) *ir.Node {
	v, ok := asBool(n.Value())
	if !ok {
		return n
	}
	c.Stats.DeadEliminated++
	if v {
		return c.wrapBranch(n, n.Stmts())
	}
	return c.wrapBranch(n, n.ElseStmts())
}

// simpWhile removes a loop whose condition is compile-time false; a
// constantly-true condition is left alone (it isn't dead, it just doesn't
// fold any further here).
func (c *Context) simpWhile(n *ir.Node) *ir.Node {
	if v, ok := asBool(n.Value()); ok && !v {
		c.Stats.DeadEliminated++
		return nil
	}
	return n
}

// simpCase implements spec.md §4.2.7 for case: a literal scrutinee lets
// the matching arm (or the "others" arm, or nothing) replace the whole
// statement.
func (c *Context) simpCase(n *ir.Node) *ir.Node {
	scrut := n.Value()
	if scrut.Kind() != ir.KindLiteral {
		return n
	}
	var othersArm *ir.Node
	for _, arm := range n.Stmts() {
		for _, choice := range arm.Assocs() {
			switch choice.Kind {
			case ir.AssocOthers:
				othersArm = arm
			case ir.AssocPositional, ir.AssocNamed:
				if literalsEqual(choice.Value, scrut) {
					c.Stats.DeadEliminated++
					return c.wrapBranch(n, arm.Stmts())
				}
			case ir.AssocRange:
				if literalInRange(scrut, choice.Range) {
					c.Stats.DeadEliminated++
					return c.wrapBranch(n, arm.Stmts())
				}
			}
		}
	}
	if othersArm != nil {
		c.Stats.DeadEliminated++
		return c.wrapBranch(n, othersArm.Stmts())
	}
	return n
}

// simpAssert drops an assertion whose condition folded to constant true —
// it can never fail, so it reports nothing (spec.md §4.2.7).
func (c *Context) simpAssert(n *ir.Node) *ir.Node {
	if v, ok := asBool(n.Value()); ok && v {
		c.Stats.DeadEliminated++
		return nil
	}
	return n
}

// simpIfGenerate mirrors simpIf for the concurrent if-generate statement:
// the taken branch's declarations and statements are promoted into a
// block in the generate statement's place, keeping its label.
func (c *Context) simpIfGenerate(n *ir.Node) *ir.Node {
	v, ok := asBool(n.Value())
	if !ok {
		return n
	}
	c.Stats.DeadEliminated++
	if v {
		return c.wrapGenerateBody(n, n.Decls(), n.Stmts())
	}
	return c.wrapGenerateBody(n, nil, n.ElseStmts())
}

// wrapBranch returns the single statement that survives dead-code
// elimination unwrapped, or — since a Rewrite callback can only return one
// Node — groups more than one into a block. The tree IR has no dedicated
// "sequential statement group" kind, so this reuses KindBlock purely as a
// container; it carries no generics or label of its own.
func (c *Context) wrapBranch(like *ir.Node, stmts []*ir.Node) *ir.Node {
	switch len(stmts) {
	case 0:
		return nil
	case 1:
		return stmts[0]
	default:
		blk := c.Arena.New(ir.KindBlock)
		blk.SetLoc(like.Loc())
		blk.SetStmts(stmts)
		return blk
	}
}

// wrapGenerateBody promotes a taken if-generate branch's decls/stmts into
// a plain block carrying the original generate statement's label, or
// removes the generate statement entirely if the branch was empty.
func (c *Context) wrapGenerateBody(like *ir.Node, decls, stmts []*ir.Node) *ir.Node {
	if len(decls) == 0 && len(stmts) == 0 {
		return nil
	}
	blk := c.Arena.New(ir.KindBlock)
	blk.SetLoc(like.Loc())
	blk.SetIdent(like.Ident())
	blk.SetDecls(decls)
	blk.SetStmts(stmts)
	return blk
}
