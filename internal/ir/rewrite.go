package ir

// RewriteFunc transforms one node post-order, returning its replacement (or
// itself, unchanged). Returning nil on a node that lives in a sequence slot
// (stmts, decls, ...) removes it from that sequence, per spec.md §4.1.6.
// Returning nil for a single-node slot clears that slot.
type RewriteFunc func(n *Node) *Node

// PreFunc is an optional hook invoked before Rewrite descends into a node's
// children. Returning false skips descent into that node entirely (but
// RewriteFunc still runs on the node itself afterward). Generic
// substitution uses this hook to bind a block's generic map before its body
// is rewritten; that hook always returns true, so nested blocks are
// descended into as well (spec.md §4.2).
type PreFunc func(n *Node) bool

// Rewrite performs a post-order rewrite of root: every structural child is
// rewritten first, then fn runs on root itself. Like Visit, it never
// descends through the "ref" slot — ref targets belong to whatever subtree
// declared them and are rewritten once, from there, not from every use
// site.
func Rewrite(arena *Arena, root *Node, pre PreFunc, fn RewriteFunc) *Node {
	if root == nil {
		return nil
	}
	epoch := arena.nextEpoch()
	return rewrite(root, epoch, pre, fn)
}

func rewrite(n *Node, epoch uint64, pre PreFunc, fn RewriteFunc) *Node {
	if n == nil {
		return nil
	}
	if n.epoch == epoch {
		// Already rewritten earlier in this pass (reached again through a
		// second sharing edge); return as-is rather than rewriting twice.
		return n
	}
	n.epoch = epoch

	descend := true
	if pre != nil {
		descend = pre(n)
	}
	if descend {
		rewriteChildren(n, epoch, pre, fn)
	}
	return fn(n)
}

func rewriteChildren(n *Node, epoch uint64, pre PreFunc, fn RewriteFunc) {
	k := n.kind

	rewriteSeq := func(getSlot Slot, get func() []*Node, set func([]*Node)) {
		if !k.HasSlot(getSlot) {
			return
		}
		src := get()
		if src == nil {
			return
		}
		dst := src[:0:0]
		for _, c := range src {
			r := rewrite(c, epoch, pre, fn)
			if r != nil {
				dst = append(dst, r)
			}
		}
		set(dst)
	}

	rewriteSeq(SPorts, func() []*Node { return n.ports }, func(v []*Node) { n.ports = v })
	rewriteSeq(SGenerics, func() []*Node { return n.generics }, func(v []*Node) { n.generics = v })
	rewriteSeq(SDecls, func() []*Node { return n.decls }, func(v []*Node) { n.decls = v })
	rewriteSeq(SStmts, func() []*Node { return n.stmts }, func(v []*Node) { n.stmts = v })
	rewriteSeq(SElseStmts, func() []*Node { return n.elseStmts }, func(v []*Node) { n.elseStmts = v })
	rewriteSeq(STriggers, func() []*Node { return n.triggers }, func(v []*Node) { n.triggers = v })
	rewriteSeq(SWaveforms, func() []*Node { return n.waveforms }, func(v []*Node) { n.waveforms = v })
	rewriteSeq(SDrivers, func() []*Node { return n.drivers }, func(v []*Node) { n.drivers = v })
	rewriteSeq(SContexts, func() []*Node { return n.contexts }, func(v []*Node) { n.contexts = v })

	if k.HasSlot(SParams) {
		for i := range n.params {
			n.params[i].Value = rewrite(n.params[i].Value, epoch, pre, fn)
			n.params[i].Range = rewriteRange(n.params[i].Range, epoch, pre, fn)
		}
	}
	if k.HasSlot(SGenmaps) {
		for i := range n.genmaps {
			n.genmaps[i].Value = rewrite(n.genmaps[i].Value, epoch, pre, fn)
			n.genmaps[i].Range = rewriteRange(n.genmaps[i].Range, epoch, pre, fn)
		}
	}
	if k.HasSlot(SAssocs) {
		for i := range n.assocs {
			n.assocs[i].Range = rewriteRange(n.assocs[i].Range, epoch, pre, fn)
			n.assocs[i].Value = rewrite(n.assocs[i].Value, epoch, pre, fn)
		}
	}

	if k.HasSlot(STarget) {
		n.target = rewrite(n.target, epoch, pre, fn)
	}
	if k.HasSlot(SValue) {
		n.value = rewrite(n.value, epoch, pre, fn)
	}
	if k.HasSlot(SDelay) {
		n.delay = rewrite(n.delay, epoch, pre, fn)
	}
	if k.HasSlot(SMessage) {
		n.message = rewrite(n.message, epoch, pre, fn)
	}
	if k.HasSlot(SSeverity) {
		n.severity = rewrite(n.severity, epoch, pre, fn)
	}
	if k.HasSlot(SName) {
		n.name = rewrite(n.name, epoch, pre, fn)
	}
	if k.HasSlot(SSpec) {
		n.spec = rewrite(n.spec, epoch, pre, fn)
	}
	if k.HasSlot(SReject) {
		n.reject = rewrite(n.reject, epoch, pre, fn)
	}
	if k.HasSlot(SLeft) {
		n.left = rewrite(n.left, epoch, pre, fn)
	}
	if k.HasSlot(SRight) {
		n.right = rewrite(n.right, epoch, pre, fn)
	}
	if k.HasSlot(SRange) {
		n.rng = rewriteRange(n.rng, epoch, pre, fn)
	}
	// ref is intentionally left untouched: see Visit's doc comment.
}

func rewriteRange(r *Range, epoch uint64, pre PreFunc, fn RewriteFunc) *Range {
	if r == nil {
		return nil
	}
	r.Left = rewrite(r.Left, epoch, pre, fn)
	r.Right = rewrite(r.Right, epoch, pre, fn)
	return r
}
