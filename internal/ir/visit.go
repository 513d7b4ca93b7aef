package ir

// VisitFunc is called once per node during a traversal.
type VisitFunc func(n *Node)

// children appends n's direct structural children, in the canonical order
// also used by Write (spec.md §4.4). deep additionally yields the "ref"
// slot's target, matching spec.md §4.1.3: "deep mode additionally follows
// ref edges ... deep is used only by GC, not by user passes." Ordinary
// Visit/Rewrite callers leave deep false so they never re-enter shared
// declarations reached from a use site.
func (n *Node) children(deep bool, out []*Node) []*Node {
	k := n.kind
	if k.HasSlot(SPorts) {
		out = append(out, n.ports...)
	}
	if k.HasSlot(SGenerics) {
		out = append(out, n.generics...)
	}
	if k.HasSlot(SDecls) {
		out = append(out, n.decls...)
	}
	if k.HasSlot(SStmts) {
		out = append(out, n.stmts...)
	}
	if k.HasSlot(SElseStmts) {
		out = append(out, n.elseStmts...)
	}
	if k.HasSlot(STriggers) {
		out = append(out, n.triggers...)
	}
	if k.HasSlot(SWaveforms) {
		out = append(out, n.waveforms...)
	}
	if k.HasSlot(SDrivers) {
		out = append(out, n.drivers...)
	}
	if k.HasSlot(SContexts) {
		out = append(out, n.contexts...)
	}
	if k.HasSlot(SParams) {
		for _, p := range n.params {
			if p.Value != nil {
				out = append(out, p.Value)
			}
			out = appendRange(out, p.Range)
		}
	}
	if k.HasSlot(SGenmaps) {
		for _, p := range n.genmaps {
			if p.Value != nil {
				out = append(out, p.Value)
			}
			out = appendRange(out, p.Range)
		}
	}
	if k.HasSlot(SAssocs) {
		for _, a := range n.assocs {
			out = appendRange(out, a.Range)
			if a.Value != nil {
				out = append(out, a.Value)
			}
		}
	}
	if k.HasSlot(STarget) && n.target != nil {
		out = append(out, n.target)
	}
	if k.HasSlot(SValue) && n.value != nil {
		out = append(out, n.value)
	}
	if k.HasSlot(SDelay) && n.delay != nil {
		out = append(out, n.delay)
	}
	if k.HasSlot(SMessage) && n.message != nil {
		out = append(out, n.message)
	}
	if k.HasSlot(SSeverity) && n.severity != nil {
		out = append(out, n.severity)
	}
	if k.HasSlot(SRef) && deep && n.ref != nil {
		out = append(out, n.ref)
	}
	if k.HasSlot(SName) && n.name != nil {
		out = append(out, n.name)
	}
	if k.HasSlot(SSpec) && n.spec != nil {
		out = append(out, n.spec)
	}
	if k.HasSlot(SReject) && n.reject != nil {
		out = append(out, n.reject)
	}
	if k.HasSlot(SLeft) && n.left != nil {
		out = append(out, n.left)
	}
	if k.HasSlot(SRight) && n.right != nil {
		out = append(out, n.right)
	}
	if k.HasSlot(SRange) {
		out = appendRange(out, n.rng)
	}
	return out
}

func appendRange(out []*Node, r *Range) []*Node {
	if r == nil {
		return out
	}
	if r.Left != nil {
		out = append(out, r.Left)
	}
	if r.Right != nil {
		out = append(out, r.Right)
	}
	return out
}

// Visit walks root and every descendant reachable through structural
// (non-ref) slots exactly once, calling fn pre-order. Each call claims a
// fresh epoch from arena so repeated Visit calls never see stale "already
// visited" state from an earlier pass.
func Visit(arena *Arena, root *Node, fn VisitFunc) {
	if root == nil {
		return
	}
	epoch := arena.nextEpoch()
	visit(root, epoch, false, nil, fn)
}

// VisitOnly walks like Visit but only invokes fn for nodes of kind k;
// traversal still descends through every node's children regardless of
// kind.
func VisitOnly(arena *Arena, root *Node, k Kind, fn VisitFunc) {
	if root == nil {
		return
	}
	epoch := arena.nextEpoch()
	visit(root, epoch, false, nil, func(n *Node) {
		if n.kind == k {
			fn(n)
		}
	})
}

// visitDeep is the GC-only traversal that additionally follows ref edges.
func visitDeep(arena *Arena, root *Node, fn VisitFunc) {
	if root == nil {
		return
	}
	epoch := arena.nextEpoch()
	visit(root, epoch, true, nil, fn)
}

func visit(n *Node, epoch uint64, deep bool, buf []*Node, fn VisitFunc) {
	if n == nil || n.epoch == epoch {
		return
	}
	n.epoch = epoch
	fn(n)
	buf = n.children(deep, buf[:0])
	for _, c := range buf {
		visit(c, epoch, deep, nil, fn)
	}
}
