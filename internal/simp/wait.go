package simp

import (
	"strings"

	"github.com/termfx/vhdlcore/internal/ir"
)

// buildWait implements spec.md §4.2.9 (build_wait): it synthesizes a wait
// statement whose sensitivity list is every distinct signal read while
// evaluating roots, in order of first appearance, and marks it
// FlagStaticWait so later passes know the list was synthesized rather
// than written by hand.
//
// Longest-static-prefix reduction (spec.md §4.2.10) falls out of this
// walk for free given how this IR represents indexed/sliced names: there
// is no dedicated "indexed name" Kind (spec.md §9), so `x(i)` is just an
// FCall to a predefined indexing operator with the array as one
// parameter and the index expression as another. Recursing into every
// parameter already adds the array's own signal once (the static part of
// the prefix) and, only when the index expression itself reads a signal,
// that signal too — exactly the rule's intent, without needing a
// separate prefix-walking function.
func (c *Context) buildWait(roots []*ir.Node) *ir.Node {
	seen := make(map[*ir.Node]bool)
	var triggers []*ir.Node
	for _, r := range roots {
		c.collectTriggers(r, seen, &triggers)
	}
	w := c.Arena.New(ir.KindWait)
	w.SetTriggers(triggers)
	w.SetFlags(w.Flags().Set(ir.FlagStaticWait))
	return w
}

// buildBodyTriggers implements build_wait's all-sensitized case (spec.md
// §4.2.9: "an arbitrary expression (or body, when all-sensitized)"). Rather
// than a fixed set of expression roots, every signal read anywhere in
// stmts becomes a trigger, in order of first appearance — this is how an
// `(all)` sensitivity list resolves to every signal a process body reads,
// as opposed to the explicit-list/desugared-wait case buildWait covers.
func (c *Context) buildBodyTriggers(stmts []*ir.Node) []*ir.Node {
	seen := make(map[*ir.Node]bool)
	var triggers []*ir.Node
	for _, s := range stmts {
		c.collectTriggers(s, seen, &triggers)
	}
	return triggers
}

// simpProcess implements build_wait's all-sensitized case (spec.md §1,
// §4.2.9): a process declared `process (all)` carries no explicit
// sensitivity list of its own, so one is synthesized here from every
// signal the process body reads, the same way buildWait synthesizes one
// for a desugared concurrent statement's implicit process — except the
// roots here are the process's own statements rather than a caller-given
// expression set. A process that already carries an explicit or
// previously-synthesized trigger list is left alone.
func (c *Context) simpProcess(n *ir.Node) *ir.Node {
	if n.Flags().Has(ir.FlagAllSensitized) && len(n.Triggers()) == 0 {
		n.SetTriggers(c.buildBodyTriggers(n.Stmts()))
		n.SetFlags(n.Flags().Set(ir.FlagStaticWait))
	}
	return n
}

// collectTriggers appends the signals read while evaluating n to out,
// deduping by declaration pointer via seen (spec.md §8, Testable Property
// 5: "the synthesized sensitivity list contains each distinct signal
// declaration pointer at most once").
func (c *Context) collectTriggers(n *ir.Node, seen map[*ir.Node]bool, out *[]*ir.Node) {
	if n == nil {
		return
	}
	switch n.Kind() {
	case ir.KindLiteral, ir.KindOpen:
		return
	case ir.KindRef:
		target := n.Ref()
		if target == nil {
			return
		}
		switch target.Kind() {
		case ir.KindSignalDecl, ir.KindPortDecl, ir.KindAliasDecl:
			if !seen[target] {
				seen[target] = true
				*out = append(*out, n)
			}
		}
		return
	case ir.KindAttrRef:
		if attr := strings.ToUpper(n.Ident().Name()); attr == "EVENT" || attr == "ACTIVE" {
			c.collectTriggers(n.Name(), seen, out)
		}
		for _, p := range n.Params() {
			c.collectTriggers(p.Value, seen, out)
		}
		return
	}
	c.collectChildTriggers(n, seen, out)
}

// collectChildTriggers walks every read-side slot n's Kind legalizes. The
// write-side "target" slot is deliberately skipped: an assignment target
// is written, never read, so it is never a sensitivity source. "delay" is
// also skipped — a wait/waveform delay expression is evaluated once at
// the point of the assignment, not on every sensitivity event.
func (c *Context) collectChildTriggers(n *ir.Node, seen map[*ir.Node]bool, out *[]*ir.Node) {
	k := n.Kind()
	if k.HasSlot(ir.SValue) {
		c.collectTriggers(n.Value(), seen, out)
	}
	if k.HasSlot(ir.SMessage) {
		c.collectTriggers(n.Message(), seen, out)
	}
	if k.HasSlot(ir.SSeverity) {
		c.collectTriggers(n.Severity(), seen, out)
	}
	if k.HasSlot(ir.SName) {
		c.collectTriggers(n.Name(), seen, out)
	}
	if k.HasSlot(ir.SLeft) {
		c.collectTriggers(n.Left(), seen, out)
	}
	if k.HasSlot(ir.SRight) {
		c.collectTriggers(n.Right(), seen, out)
	}
	if k.HasSlot(ir.SRange) {
		c.collectRangeTriggers(n.Range(), seen, out)
	}
	if k.HasSlot(ir.SParams) {
		formals := callFormals(n)
		for _, p := range n.Params() {
			if formalReads(formals, p) {
				c.collectTriggers(p.Value, seen, out)
			}
			c.collectRangeTriggers(p.Range, seen, out)
		}
	}
	if k.HasSlot(ir.SAssocs) {
		for _, a := range n.Assocs() {
			c.collectTriggers(a.Value, seen, out)
			c.collectRangeTriggers(a.Range, seen, out)
		}
	}
	if k.HasSlot(ir.SWaveforms) {
		for _, w := range n.Waveforms() {
			c.collectTriggers(w, seen, out)
		}
	}
	if k.HasSlot(ir.SStmts) {
		for _, s := range n.Stmts() {
			c.collectTriggers(s, seen, out)
		}
	}
	if k.HasSlot(ir.SElseStmts) {
		for _, s := range n.ElseStmts() {
			c.collectTriggers(s, seen, out)
		}
	}
}

func (c *Context) collectRangeTriggers(r *ir.Range, seen map[*ir.Node]bool, out *[]*ir.Node) {
	if r == nil {
		return
	}
	c.collectTriggers(r.Left, seen, out)
	c.collectTriggers(r.Right, seen, out)
}

// callFormals resolves n's formal-parameter list when n is a call to a
// user subprogram, so collectChildTriggers can tell an out-mode actual
// from one that is actually read. Kinds without an SRef slot (KindAttrRef's
// params are attribute arguments, not a subprogram call) or whose Ref
// doesn't resolve yield nil, and a nil formals list means "treat every
// actual as a read" — the safe default when direction can't be determined.
func callFormals(n *ir.Node) []*ir.Node {
	if !n.Kind().HasSlot(ir.SRef) {
		return nil
	}
	ref := n.Ref()
	if ref == nil || !ref.Kind().HasSlot(ir.SPorts) {
		return nil
	}
	return ref.Ports()
}

// formalReads reports whether p's actual should be treated as a read for
// sensitivity-list purposes (spec.md §4.2.9: "add triggers from IN/INOUT
// arguments"). An actual whose matching formal is mode out is written, not
// read, and is excluded; everything else — including an actual whose
// formal can't be resolved — defaults to being a read.
func formalReads(formals []*ir.Node, p ir.Param) bool {
	formal := resolveFormal(formals, p)
	if formal == nil {
		return true
	}
	return !formal.Flags().Has(ir.FlagModeOut)
}

func resolveFormal(formals []*ir.Node, p ir.Param) *ir.Node {
	if p.Kind == ir.ParamNamed && p.Name != nil {
		for _, f := range formals {
			if f.Ident() == p.Name {
				return f
			}
		}
		return nil
	}
	if p.Pos >= 0 && p.Pos < len(formals) {
		return formals[p.Pos]
	}
	return nil
}
