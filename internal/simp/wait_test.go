package simp_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/termfx/vhdlcore/internal/diag"
	"github.com/termfx/vhdlcore/internal/fold"
	"github.com/termfx/vhdlcore/internal/ir"
	"github.com/termfx/vhdlcore/internal/simp"
)

func TestSimplifyAllSensitizedProcessSynthesizesTriggers(t *testing.T) {
	arena := ir.NewArena()

	sigA := sigDecl(arena, "a")
	readA := arena.New(ir.KindRef)
	readA.SetRef(sigA)

	wave := arena.New(ir.KindWaveform)
	wave.SetValue(readA)

	targetY := arena.New(ir.KindRef)
	targetY.SetRef(sigDecl(arena, "y"))

	assign := arena.New(ir.KindSignalAssign)
	assign.SetTarget(targetY)
	assign.SetWaveforms([]*ir.Node{wave})

	process := arena.New(ir.KindProcess)
	process.SetFlags(ir.FlagAllSensitized)
	process.SetStmts([]*ir.Node{assign})

	c := fold.NewConst()
	result, _ := simp.SimplifyLocal(arena, newEngine(), c, c, process)

	require.Equal(t, ir.KindProcess, result.Kind())
	require.True(t, result.Flags().Has(ir.FlagStaticWait))
	triggers := result.Triggers()
	require.Len(t, triggers, 1)
	require.Same(t, sigA, triggers[0].Ref())
}

func TestSimplifyAllSensitizedProcessLeavesExplicitListAlone(t *testing.T) {
	arena := ir.NewArena()

	sigB := sigDecl(arena, "b")
	readB := arena.New(ir.KindRef)
	readB.SetRef(sigB)

	process := arena.New(ir.KindProcess)
	process.SetFlags(ir.FlagAllSensitized)
	process.SetTriggers([]*ir.Node{readB})
	process.SetStmts(nil)

	c := fold.NewConst()
	result, _ := simp.SimplifyLocal(arena, newEngine(), c, c, process)

	require.Len(t, result.Triggers(), 1)
	require.Same(t, readB, result.Triggers()[0])
	require.False(t, result.Flags().Has(ir.FlagStaticWait))
}

func procDeclWithPorts(arena *ir.Arena, name string, portModes ...ir.Flags) *ir.Node {
	decl := arena.New(ir.KindProcDecl)
	decl.SetIdent(ir.Intern(name))
	ports := make([]*ir.Node, len(portModes))
	for i, mode := range portModes {
		p := arena.New(ir.KindPortDecl)
		p.SetIdent(ir.Intern("formal"))
		p.SetFlags(mode)
		ports[i] = p
	}
	decl.SetPorts(ports)
	decl.SetStmts(nil)
	decl.SetDecls(nil)
	return decl
}

func TestCollectTriggersExcludesOutModeProcedureArgument(t *testing.T) {
	arena := ir.NewArena()

	sigIn := sigDecl(arena, "din")
	readIn := arena.New(ir.KindRef)
	readIn.SetRef(sigIn)

	sigOut := sigDecl(arena, "dout")
	readOut := arena.New(ir.KindRef)
	readOut.SetRef(sigOut)

	proc := procDeclWithPorts(arena, "update", 0, ir.FlagModeOut)

	call := arena.New(ir.KindProcCall)
	call.SetRef(proc)
	call.SetParams([]ir.Param{
		{Kind: ir.ParamPositional, Pos: 0, Value: readIn},
		{Kind: ir.ParamPositional, Pos: 1, Value: readOut},
	})

	process := arena.New(ir.KindProcess)
	process.SetFlags(ir.FlagAllSensitized)
	process.SetStmts([]*ir.Node{call})

	c := fold.NewConst()
	result, _ := simp.SimplifyLocal(arena, newEngine(), c, c, process)

	triggers := result.Triggers()
	require.Len(t, triggers, 1)
	require.Same(t, sigIn, triggers[0].Ref())
}

func TestCollectTriggersKeepsInOutModeProcedureArgument(t *testing.T) {
	arena := ir.NewArena()

	sigState := sigDecl(arena, "state")
	readState := arena.New(ir.KindRef)
	readState.SetRef(sigState)

	proc := procDeclWithPorts(arena, "advance", ir.FlagModeInOut)

	call := arena.New(ir.KindProcCall)
	call.SetRef(proc)
	call.SetParams([]ir.Param{
		{Kind: ir.ParamPositional, Pos: 0, Value: readState},
	})

	process := arena.New(ir.KindProcess)
	process.SetFlags(ir.FlagAllSensitized)
	process.SetStmts([]*ir.Node{call})

	c := fold.NewConst()
	result, _ := simp.SimplifyLocal(arena, newEngine(), c, c, process)

	triggers := result.Triggers()
	require.Len(t, triggers, 1)
	require.Same(t, sigState, triggers[0].Ref())
}

func TestFoldableTreatsEnumLiteralReferenceAsFoldable(t *testing.T) {
	arena := ir.NewArena()

	ordinal := intLit(arena, 1)
	enumLit := arena.New(ir.KindEnumLiteralDecl)
	enumLit.SetIdent(ir.Intern("HIGH"))
	enumLit.SetValue(ordinal)

	ref := arena.New(ir.KindRef)
	ref.SetRef(enumLit)

	cmp := call(arena, "=", ref, intLit(arena, 1))

	c := fold.NewConst()
	result, stats := simp.SimplifyLocal(arena, newEngine(), c, c, cmp)

	require.Equal(t, ir.KindLiteral, result.Kind())
	require.Equal(t, int64(1), result.Literal().Int)
	require.Equal(t, 1, stats.Folded)
}

// TestFoldableRecursesThroughConstantReferenceToUnreducedInitializer covers
// foldable's ref case on a reference whose target's own initializer is
// still an unreduced FCall — the ref slot is excluded from Rewrite's
// traversal (spec.md §4.1.3), so nothing simplifies constDecl's Value
// ahead of time; foldable must recurse into it by hand for the enclosing
// multiplication to fold at all.
func TestFoldableRecursesThroughConstantReferenceToUnreducedInitializer(t *testing.T) {
	arena := ir.NewArena()

	inner := call(arena, "+", intLit(arena, 2), intLit(arena, 2))
	constDecl := arena.New(ir.KindConstantDecl)
	constDecl.SetIdent(ir.Intern("WIDTH"))
	constDecl.SetValue(inner)

	ref := arena.New(ir.KindRef)
	ref.SetRef(constDecl)

	cmp := call(arena, "*", ref, intLit(arena, 3))

	c := fold.NewConst()
	result, stats := simp.SimplifyLocal(arena, newEngine(), c, c, cmp)

	require.Equal(t, ir.KindLiteral, result.Kind())
	require.Equal(t, int64(12), result.Literal().Int)
	require.Equal(t, 1, stats.Folded)
}

func TestFoldableAttemptsFCallFlaggedDeferredConstant(t *testing.T) {
	arena := ir.NewArena()

	deferredConst := arena.New(ir.KindConstantDecl)
	deferredConst.SetIdent(ir.Intern("WIDTH"))
	deferredConst.SetFlags(ir.FlagFCall)

	ref := arena.New(ir.KindRef)
	ref.SetRef(deferredConst)

	cmp := call(arena, "+", ref, intLit(arena, 1))

	var notes []string
	eng := newEngine()
	eng.Consumer = func(d *diag.Diag) { notes = append(notes, d.Text) }

	c := fold.NewConst()
	ctx := simp.NewContext(arena, eng, c, c)
	ctx.EvalWarn = true
	result, stats := ctx.RunLocal(cmp)

	require.Same(t, cmp, result)
	require.Equal(t, 0, stats.Folded)
	require.Len(t, notes, 1)
	require.True(t, strings.Contains(notes[0], "constant evaluation failed"),
		"expected an eval-failure note (foldable allowed the attempt), got %q", notes[0])
}
