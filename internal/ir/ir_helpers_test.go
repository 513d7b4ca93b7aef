package ir

// buildSharedTree constructs an entity containing a constant declaration and
// a function whose two return statements both reference that same constant,
// giving tests a concrete case of intra-tree sharing to exercise Copy's and
// Write's back-reference handling.
func buildSharedTree(arena *Arena) (entity, constDecl *Node) {
	entity = arena.New(KindEntity)
	entity.SetIdent(Intern("counter"))
	entity.SetPorts(nil)
	entity.SetGenerics(nil)

	constDecl = arena.New(KindConstantDecl)
	constDecl.SetIdent(Intern("WIDTH"))
	lit := arena.New(KindLiteral)
	lit.SetLiteral(&Literal{Kind: LiteralInt, Int: 8})
	constDecl.SetValue(lit)

	fn := arena.New(KindFuncDecl)
	fn.SetIdent(Intern("width_of"))
	fn.SetPorts(nil)
	fn.SetDecls(nil)

	ref1 := arena.New(KindRef)
	ref1.SetRef(constDecl)
	ref2 := arena.New(KindRef)
	ref2.SetRef(constDecl)

	ret1 := arena.New(KindReturn)
	ret1.SetValue(ref1)
	ret2 := arena.New(KindReturn)
	ret2.SetValue(ref2)
	fn.SetStmts([]*Node{ret1, ret2})

	entity.SetDecls([]*Node{constDecl, fn})
	return entity, constDecl
}
