package simp_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/termfx/vhdlcore/internal/diag"
	"github.com/termfx/vhdlcore/internal/fold"
	"github.com/termfx/vhdlcore/internal/ir"
	"github.com/termfx/vhdlcore/internal/loc"
	"github.com/termfx/vhdlcore/internal/simp"
)

func newEngine() *diag.Engine {
	return diag.NewEngine(loc.NewFileRegistry(), io.Discard, 0, diag.ColorNever)
}

func predefinedOp(arena *ir.Arena, name string) *ir.Node {
	decl := arena.New(ir.KindFuncDecl)
	decl.SetIdent(ir.Intern(name))
	return decl
}

func intLit(arena *ir.Arena, v int64) *ir.Node {
	n := arena.New(ir.KindLiteral)
	n.SetLiteral(&ir.Literal{Kind: ir.LiteralInt, Int: v})
	n.SetFlags(ir.FlagLocallyStatic)
	return n
}

func call(arena *ir.Arena, op string, args ...*ir.Node) *ir.Node {
	n := arena.New(ir.KindFCall)
	n.SetRef(predefinedOp(arena, op))
	params := make([]ir.Param, len(args))
	for i, a := range args {
		params[i] = ir.Param{Kind: ir.ParamPositional, Pos: i, Value: a}
	}
	n.SetParams(params)
	n.SetFlags(ir.FlagLocallyStatic)
	return n
}

func TestSimplifyLocalFoldsConstantExpression(t *testing.T) {
	arena := ir.NewArena()
	mul := call(arena, "*", intLit(arena, 3), intLit(arena, 4))
	add := call(arena, "+", intLit(arena, 2), mul)

	c := fold.NewConst()
	result, stats := simp.SimplifyLocal(arena, newEngine(), c, c, add)

	require.Equal(t, ir.KindLiteral, result.Kind())
	require.Equal(t, int64(14), result.Literal().Int)
	require.Equal(t, 2, stats.Folded)
}

func TestSimplifyIfWithConstantConditionKeepsTakenBranch(t *testing.T) {
	arena := ir.NewArena()
	cond := intLit(arena, 1)
	thenStmt := arena.New(ir.KindReport)
	elseStmt := arena.New(ir.KindReport)

	ifNode := arena.New(ir.KindIf)
	ifNode.SetValue(cond)
	ifNode.SetStmts([]*ir.Node{thenStmt})
	ifNode.SetElseStmts([]*ir.Node{elseStmt})

	c := fold.NewConst()
	result, stats := simp.SimplifyLocal(arena, newEngine(), c, c, ifNode)

	require.Same(t, thenStmt, result)
	require.Equal(t, 1, stats.DeadEliminated)
}

func TestSimplifyCaseSelectsMatchingArm(t *testing.T) {
	arena := ir.NewArena()
	scrut := intLit(arena, 2)

	arm1Body := arena.New(ir.KindReport)
	arm1 := arena.New(ir.KindCaseArm)
	arm1.SetAssocs([]ir.Assoc{{Kind: ir.AssocPositional, Value: intLit(arena, 1)}})
	arm1.SetStmts([]*ir.Node{arm1Body})

	arm2Body := arena.New(ir.KindReport)
	arm2 := arena.New(ir.KindCaseArm)
	arm2.SetAssocs([]ir.Assoc{{Kind: ir.AssocPositional, Value: intLit(arena, 2)}})
	arm2.SetStmts([]*ir.Node{arm2Body})

	othersBody := arena.New(ir.KindReport)
	othersArm := arena.New(ir.KindCaseArm)
	othersArm.SetAssocs([]ir.Assoc{{Kind: ir.AssocOthers}})
	othersArm.SetStmts([]*ir.Node{othersBody})

	caseNode := arena.New(ir.KindCase)
	caseNode.SetValue(scrut)
	caseNode.SetStmts([]*ir.Node{arm1, arm2, othersArm})

	c := fold.NewConst()
	result, stats := simp.SimplifyLocal(arena, newEngine(), c, c, caseNode)

	require.Same(t, arm2Body, result)
	require.Equal(t, 1, stats.DeadEliminated)
}

func TestDesugarConcSignalAssignSynthesizesProcess(t *testing.T) {
	arena := ir.NewArena()

	target := arena.New(ir.KindRef)
	target.SetRef(sigDecl(arena, "y"))

	srcRef := arena.New(ir.KindRef)
	srcRef.SetRef(sigDecl(arena, "a"))

	wave := arena.New(ir.KindWaveform)
	wave.SetValue(srcRef)

	conc := arena.New(ir.KindConcSignalAssign)
	conc.SetTarget(target)
	conc.SetWaveforms([]*ir.Node{wave})

	c := fold.NewConst()
	result, stats := simp.SimplifyLocal(arena, newEngine(), c, c, conc)

	require.Equal(t, ir.KindProcess, result.Kind())
	require.Equal(t, 1, stats.Desugared)

	stmts := result.Stmts()
	require.Len(t, stmts, 2)
	require.Equal(t, ir.KindSignalAssign, stmts[0].Kind())
	require.Equal(t, ir.KindWait, stmts[1].Kind())
	require.Len(t, stmts[1].Triggers(), 1)
}

func TestSynthesizeDelayedSignalUnderArchitecture(t *testing.T) {
	arena := ir.NewArena()

	prefixRef := arena.New(ir.KindRef)
	prefixRef.SetRef(sigDecl(arena, "a"))

	attr := arena.New(ir.KindAttrRef)
	attr.SetName(prefixRef)
	attr.SetIdent(ir.Intern("DELAYED"))

	target := arena.New(ir.KindRef)
	target.SetRef(sigDecl(arena, "b"))

	wave := arena.New(ir.KindWaveform)
	wave.SetValue(attr)

	assign := arena.New(ir.KindConcSignalAssign)
	assign.SetTarget(target)
	assign.SetWaveforms([]*ir.Node{wave})

	arch := arena.New(ir.KindArch)
	arch.SetIdent(ir.Intern("rtl"))
	arch.SetIdent2(ir.Intern("e"))
	arch.SetStmts([]*ir.Node{assign})

	c := fold.NewConst()
	result, stats := simp.SimplifyLocal(arena, newEngine(), c, c, arch)

	require.Equal(t, 1, stats.ImplicitSignals)
	require.Len(t, result.Decls(), 1)
	require.Equal(t, ir.KindSignalDecl, result.Decls()[0].Kind())
	require.Len(t, result.Stmts(), 2)
}

func sigDecl(arena *ir.Arena, name string) *ir.Node {
	n := arena.New(ir.KindSignalDecl)
	n.SetIdent(ir.Intern(name))
	return n
}
