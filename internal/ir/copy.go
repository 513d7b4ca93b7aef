package ir

// Copy deep-copies root into arena, preserving sharing: if the same Node is
// reachable from root through two different paths, both paths resolve to
// the same copy, exactly mirroring the original aliasing (spec.md §4.1.7).
// Attached types are copied by reference, never duplicated. The "ref" slot
// is copied as a cross-reference into the ORIGINAL graph (not the copy) —
// copying a subtree doesn't fork the declarations it refers to.
func Copy(arena *Arena, root *Node) *Node {
	if root == nil {
		return nil
	}
	seen := make(map[*Node]*Node)
	return copyNode(arena, root, seen)
}

func copyNode(arena *Arena, n *Node, seen map[*Node]*Node) *Node {
	if n == nil {
		return nil
	}
	if c, ok := seen[n]; ok {
		return c
	}

	c := arena.New(n.kind)
	seen[n] = c

	c.loc = n.loc
	c.ident = n.ident
	c.ident2 = n.ident2
	c.typ = n.typ
	c.flags = n.flags
	c.ref = n.ref // cross-reference into the original graph, not re-copied

	if len(n.attrs) > 0 {
		c.attrs = make(map[string]any, len(n.attrs))
		for k, v := range n.attrs {
			c.attrs[k] = v
		}
	}

	c.ports = copySlice(arena, n.ports, seen)
	c.generics = copySlice(arena, n.generics, seen)
	c.decls = copySlice(arena, n.decls, seen)
	c.stmts = copySlice(arena, n.stmts, seen)
	c.elseStmts = copySlice(arena, n.elseStmts, seen)
	c.triggers = copySlice(arena, n.triggers, seen)
	c.waveforms = copySlice(arena, n.waveforms, seen)
	c.drivers = copySlice(arena, n.drivers, seen)
	c.contexts = copySlice(arena, n.contexts, seen)

	c.params = copyParams(arena, n.params, seen)
	c.genmaps = copyParams(arena, n.genmaps, seen)
	c.assocs = copyAssocs(arena, n.assocs, seen)

	c.target = copyNode(arena, n.target, seen)
	c.value = copyNode(arena, n.value, seen)
	c.delay = copyNode(arena, n.delay, seen)
	c.message = copyNode(arena, n.message, seen)
	c.severity = copyNode(arena, n.severity, seen)
	c.name = copyNode(arena, n.name, seen)
	c.spec = copyNode(arena, n.spec, seen)
	c.reject = copyNode(arena, n.reject, seen)
	c.left = copyNode(arena, n.left, seen)
	c.right = copyNode(arena, n.right, seen)
	c.rng = copyRange(arena, n.rng, seen)

	if n.lit != nil {
		lit := *n.lit
		c.lit = &lit
	}

	return c
}

func copySlice(arena *Arena, src []*Node, seen map[*Node]*Node) []*Node {
	if src == nil {
		return nil
	}
	dst := make([]*Node, len(src))
	for i, c := range src {
		dst[i] = copyNode(arena, c, seen)
	}
	return dst
}

func copyParams(arena *Arena, src []Param, seen map[*Node]*Node) []Param {
	if src == nil {
		return nil
	}
	dst := make([]Param, len(src))
	for i, p := range src {
		dst[i] = Param{
			Kind:  p.Kind,
			Pos:   p.Pos,
			Name:  p.Name,
			Value: copyNode(arena, p.Value, seen),
			Range: copyRange(arena, p.Range, seen),
		}
	}
	return dst
}

func copyAssocs(arena *Arena, src []Assoc, seen map[*Node]*Node) []Assoc {
	if src == nil {
		return nil
	}
	dst := make([]Assoc, len(src))
	for i, a := range src {
		dst[i] = Assoc{
			Kind:  a.Kind,
			Pos:   a.Pos,
			Name:  a.Name,
			Range: copyRange(arena, a.Range, seen),
			Value: copyNode(arena, a.Value, seen),
		}
	}
	return dst
}

func copyRange(arena *Arena, r *Range, seen map[*Node]*Node) *Range {
	if r == nil {
		return nil
	}
	return &Range{
		Kind:  r.Kind,
		Left:  copyNode(arena, r.Left, seen),
		Right: copyNode(arena, r.Right, seen),
	}
}
