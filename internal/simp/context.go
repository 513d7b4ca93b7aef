// Package simp implements the bottom-up tree simplification pass described
// in spec.md §4.2: constant folding, reference resolution, attribute
// folding with implicit signal synthesis, generic substitution, dead-code
// elimination, concurrent-statement desugaring and sensitivity-list
// synthesis. It is dispatched through internal/ir.Rewrite the same way
// internal/core's Pipeline dispatches its numbered steps in the teacher
// repo: one function per tree shape, driven from a single table.
package simp

import (
	"github.com/termfx/vhdlcore/internal/diag"
	"github.com/termfx/vhdlcore/internal/fold"
	"github.com/termfx/vhdlcore/internal/ir"
)

// Stats summarizes what one Simplify call did, for logging and for
// persistence via internal/store (spec.md §7: "a session-level summary").
type Stats struct {
	Folded          int
	DeadEliminated  int
	Desugared       int
	Substituted     int
	ImplicitSignals int
}

// Add accumulates b into s, for combining the Stats of several units
// simplified in one session.
func (s *Stats) Add(b Stats) {
	s.Folded += b.Folded
	s.DeadEliminated += b.DeadEliminated
	s.Desugared += b.Desugared
	s.Substituted += b.Substituted
	s.ImplicitSignals += b.ImplicitSignals
}

// Context carries one simplification run's configuration and scratch
// state. Callers construct one per unit with NewContext (or reuse one across
// units in a design, accumulating Stats); SimplifyLocal/SimplifyGlobal build
// a fresh one on every call.
type Context struct {
	Arena *ir.Arena
	Diags *diag.Engine
	Eval  fold.Evaluator
	Lower fold.Lowerer

	// mask gates which statically-known expressions are eligible for
	// folding: SimplifyLocal uses FlagLocallyStatic alone, SimplifyGlobal
	// additionally accepts FlagGloballyStatic once generics are bound
	// (spec.md §4.2.11).
	mask ir.Flags

	// EvalWarn requests a diag.Note whenever an expression under the active
	// mask fails to fold (spec.md §9's EVAL_WARN open question).
	EvalWarn bool

	// generics maps a generic (or block-generic) declaration Node to the
	// actual expression it is bound to for this run (spec.md §4.2.6).
	// Entries accumulate as Rewrite's PreFunc descends through nested
	// blocks; they are never removed, since each block's generics are
	// distinct Nodes and cannot collide with an outer scope's.
	generics map[*ir.Node]*ir.Node

	// predefined memoizes the synthetic FuncDecl Nodes used to identify a
	// predefined operator by name when synthesizing new expressions (e.g.
	// the "not" in a 'TRANSACTION signal's driving process). Real operator
	// calls found in source already carry their own Ref from the
	// external collaborator that built the tree; this cache only serves
	// nodes simp itself constructs.
	predefined map[string]*ir.Node

	synthSeq int

	// scopes tracks the stack of open declarative regions (architectures,
	// blocks, generate statements) Rewrite is currently inside, so implicit
	// signal synthesis knows where to splice its new decl/process pair
	// (spec.md §4.2.5).
	scopes []*scopeFrame

	Stats Stats
}

// NewContext builds a Context around the collaborators a Simplify call
// needs: arena to allocate from, eng to report diagnostics to (may be nil
// to suppress diagnostics), and the Lower/Eval pair driving constant
// folding.
func NewContext(arena *ir.Arena, eng *diag.Engine, lower fold.Lowerer, eval fold.Evaluator) *Context {
	return &Context{
		Arena:      arena,
		Diags:      eng,
		Eval:       eval,
		Lower:      lower,
		generics:   make(map[*ir.Node]*ir.Node),
		predefined: make(map[string]*ir.Node),
	}
}

// SimplifyLocal runs the local-only subset of the simplification pass
// (spec.md §4.2.11 SimplifyLocal): folding is gated on FlagLocallyStatic.
// No generic map is supplied for unit itself; as in SimplifyGlobal, a block
// inside unit that carries its own generic map still has it bound and its
// generic references substituted. Suitable for simplifying a package or
// entity before it is elaborated into any particular instance.
func SimplifyLocal(arena *ir.Arena, eng *diag.Engine, lower fold.Lowerer, eval fold.Evaluator, unit *ir.Node) (*ir.Node, Stats) {
	ctx := NewContext(arena, eng, lower, eval)
	return ctx.RunLocal(unit)
}

// RunLocal configures c for the local-only subset of the pass and drives
// it over unit, reusing whatever Diags/EvalWarn/collaborators c was already
// built with. Exported so callers that need EvalWarn or another non-default
// Context option (spec.md §4.2.2's EVAL_WARN, e.g.) can still select
// SimplifyLocal's mask without duplicating Context's constructor.
func (c *Context) RunLocal(unit *ir.Node) (*ir.Node, Stats) {
	c.mask = ir.FlagLocallyStatic
	return c.Run(unit), c.Stats
}

// SimplifyGlobal runs the full pass once an elaborated unit's generic map
// is known (spec.md §4.2.11 SimplifyGlobal): folding additionally accepts
// FlagGloballyStatic, and generic references are substituted by their
// bound actuals as Rewrite descends into each block.
func SimplifyGlobal(arena *ir.Arena, eng *diag.Engine, lower fold.Lowerer, eval fold.Evaluator, unit *ir.Node) (*ir.Node, Stats) {
	ctx := NewContext(arena, eng, lower, eval)
	return ctx.RunGlobal(unit)
}

// RunGlobal configures c for the full local+global mask and drives it over
// unit; see RunLocal for why this is exposed alongside the package-level
// SimplifyGlobal convenience function.
func (c *Context) RunGlobal(unit *ir.Node) (*ir.Node, Stats) {
	c.mask = ir.FlagLocallyStatic | ir.FlagGloballyStatic
	return c.Run(unit), c.Stats
}

// Run drives one post-order Rewrite pass of unit through the full rule
// table, dispatching on Kind the same way core.Pipeline.Apply dispatches
// its numbered steps in the teacher repo.
func (c *Context) Run(unit *ir.Node) *ir.Node {
	return ir.Rewrite(c.Arena, unit, c.preDescend, c.simplify)
}

// preDescend binds a block's generic map before Rewrite recurses into its
// body, so references inside the block see the substitution (spec.md
// §4.2.6). It never blocks descent — generic scoping in this pass is
// purely additive bookkeeping, not a traversal filter.
func (c *Context) preDescend(n *ir.Node) bool {
	if n.Kind() == ir.KindBlock {
		c.bindGenerics(n.Generics(), n.Genmaps())
	}
	if isScopeHost(n.Kind()) {
		c.pushScope(n)
	}
	return true
}

func (c *Context) simplify(n *ir.Node) *ir.Node {
	switch n.Kind() {
	case ir.KindFCall:
		return c.simpFCall(n)
	case ir.KindRef:
		return c.simpRef(n)
	case ir.KindAttrRef:
		return c.simpAttrRef(n)
	case ir.KindProcCall:
		c.normalizeParams(n)
		return n
	case ir.KindProcess:
		return c.simpProcess(n)
	case ir.KindIf:
		return c.simpIf(n)
	case ir.KindWhile:
		return c.simpWhile(n)
	case ir.KindCase:
		return c.simpCase(n)
	case ir.KindAssert:
		return c.simpAssert(n)
	case ir.KindIfGenerate:
		c.popScope(n)
		return c.simpIfGenerate(n)
	case ir.KindArch, ir.KindBlock, ir.KindForGenerate:
		c.popScope(n)
		return n
	case ir.KindNull:
		return nil
	case ir.KindConcAssert:
		return c.desugarConcAssert(n)
	case ir.KindConcSignalAssign:
		return c.desugarConcSignalAssign(n)
	case ir.KindConcProcCall:
		return c.desugarConcProcCall(n)
	case ir.KindConcSelectAssign:
		return c.desugarConcSelectAssign(n)
	default:
		return n
	}
}

func (c *Context) note(n *ir.Node, format string, args ...any) {
	if c.Diags == nil || !c.EvalWarn {
		return
	}
	_ = c.Diags.Emit(diag.New(diag.Note, n.Loc(), format, args...))
}

func (c *Context) nextSynthID() int {
	c.synthSeq++
	return c.synthSeq
}
