package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/termfx/vhdlcore/internal/fbuf"
	"github.com/termfx/vhdlcore/internal/ir"
	"github.com/termfx/vhdlcore/internal/loc"
)

// writeFixture builds a tiny entity declaring a foldable constant
// (WIDTH = 4 + 4) and serializes it to dir/name, returning the path.
func writeFixture(t *testing.T, dir, name string) string {
	t.Helper()

	arena := ir.NewArena()
	entity := arena.New(ir.KindEntity)
	entity.SetIdent(ir.Intern("counter"))
	entity.SetPorts(nil)
	entity.SetGenerics(nil)

	plus := arena.New(ir.KindFuncDecl)
	plus.SetIdent(ir.Intern("+"))

	four1 := arena.New(ir.KindLiteral)
	four1.SetLiteral(&ir.Literal{Kind: ir.LiteralInt, Int: 4})
	four1.SetFlags(ir.FlagLocallyStatic)
	four2 := arena.New(ir.KindLiteral)
	four2.SetLiteral(&ir.Literal{Kind: ir.LiteralInt, Int: 4})
	four2.SetFlags(ir.FlagLocallyStatic)

	add := arena.New(ir.KindFCall)
	add.SetRef(plus)
	add.SetParams([]ir.Param{
		{Kind: ir.ParamPositional, Pos: 0, Value: four1},
		{Kind: ir.ParamPositional, Pos: 1, Value: four2},
	})
	add.SetFlags(ir.FlagLocallyStatic)

	constDecl := arena.New(ir.KindConstantDecl)
	constDecl.SetIdent(ir.Intern("WIDTH"))
	constDecl.SetValue(add)

	entity.SetDecls([]*ir.Node{constDecl})

	reg := loc.NewFileRegistry()
	f := reg.Register("counter.vhd")
	entity.SetLoc(loc.New(f, 1, 0, 5, 3))

	var buf bytes.Buffer
	w := fbuf.NewWriter(&buf)
	require.NoError(t, ir.Write(w, arena, reg, entity))

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}
