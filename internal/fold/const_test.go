package fold_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/termfx/vhdlcore/internal/fold"
	"github.com/termfx/vhdlcore/internal/ir"
)

func predefinedOp(arena *ir.Arena, name string) *ir.Node {
	decl := arena.New(ir.KindFuncDecl)
	decl.SetIdent(ir.Intern(name))
	decl.SetPorts(nil)
	decl.SetDecls(nil)
	decl.SetStmts(nil)
	return decl
}

func intLit(arena *ir.Arena, v int64) *ir.Node {
	n := arena.New(ir.KindLiteral)
	n.SetLiteral(&ir.Literal{Kind: ir.LiteralInt, Int: v})
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
	return n
}

func TestConstFoldsArithmetic(t *testing.T) {
	arena := ir.NewArena()
	c := fold.NewConst()

	// 2 + 3 * 4
	mul := call(arena, "*", intLit(arena, 3), intLit(arena, 4))
	add := call(arena, "+", intLit(arena, 2), mul)

	thunk, err := c.Lower(add)
	require.NoError(t, err)
	require.NotNil(t, thunk)
	defer thunk.Release()

	result, err := c.Fold(context.Background(), arena, add, thunk)
	require.NoError(t, err)
	require.Equal(t, ir.KindLiteral, result.Kind())
	require.Equal(t, int64(14), result.Literal().Int)
}

func TestConstFoldsComparison(t *testing.T) {
	arena := ir.NewArena()
	c := fold.NewConst()

	expr := call(arena, "<", intLit(arena, 3), intLit(arena, 5))
	thunk, err := c.Lower(expr)
	require.NoError(t, err)
	result, err := c.Fold(context.Background(), arena, expr, thunk)
	require.NoError(t, err)
	require.Equal(t, int64(1), result.Literal().Int)
}

func TestConstRejectsUnresolvedRefOperand(t *testing.T) {
	arena := ir.NewArena()
	c := fold.NewConst()

	// A ref with no resolved target cannot be folded.
	ref := arena.New(ir.KindRef)
	expr := call(arena, "+", intLit(arena, 1), ref)

	thunk, err := c.Lower(expr)
	require.NoError(t, err)
	_, err = c.Fold(context.Background(), arena, expr, thunk)
	require.Error(t, err)
}

func TestConstDivisionByZero(t *testing.T) {
	arena := ir.NewArena()
	c := fold.NewConst()

	expr := call(arena, "/", intLit(arena, 1), intLit(arena, 0))
	thunk, err := c.Lower(expr)
	require.NoError(t, err)
	_, err = c.Fold(context.Background(), arena, expr, thunk)
	require.Error(t, err)
}

func TestConstFoldsReferenceToEnumLiteral(t *testing.T) {
	arena := ir.NewArena()
	c := fold.NewConst()

	enumLit := arena.New(ir.KindEnumLiteralDecl)
	enumLit.SetIdent(ir.Intern("HIGH"))
	enumLit.SetValue(intLit(arena, 1))

	ref := arena.New(ir.KindRef)
	ref.SetRef(enumLit)

	thunk, err := c.Lower(ref)
	require.NoError(t, err)
	result, err := c.Fold(context.Background(), arena, ref, thunk)
	require.NoError(t, err)
	require.Equal(t, int64(1), result.Literal().Int)
}

func TestConstFoldsReferenceToResolvedConstant(t *testing.T) {
	arena := ir.NewArena()
	c := fold.NewConst()

	constDecl := arena.New(ir.KindConstantDecl)
	constDecl.SetIdent(ir.Intern("WIDTH"))
	constDecl.SetValue(call(arena, "+", intLit(arena, 2), intLit(arena, 2)))

	ref := arena.New(ir.KindRef)
	ref.SetRef(constDecl)

	thunk, err := c.Lower(ref)
	require.NoError(t, err)
	result, err := c.Fold(context.Background(), arena, ref, thunk)
	require.NoError(t, err)
	require.Equal(t, int64(4), result.Literal().Int)
}

func TestConstRejectsReferenceToDeferredConstant(t *testing.T) {
	arena := ir.NewArena()
	c := fold.NewConst()

	deferredConst := arena.New(ir.KindConstantDecl)
	deferredConst.SetIdent(ir.Intern("WIDTH"))
	deferredConst.SetFlags(ir.FlagFCall)

	ref := arena.New(ir.KindRef)
	ref.SetRef(deferredConst)

	thunk, err := c.Lower(ref)
	require.NoError(t, err)
	_, err = c.Fold(context.Background(), arena, ref, thunk)
	require.Error(t, err)
}
