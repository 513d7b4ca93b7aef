package ir

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/termfx/vhdlcore/internal/fbuf"
	"github.com/termfx/vhdlcore/internal/loc"
)

func TestWriteReadRoundTrip(t *testing.T) {
	arena := NewArena()
	entity, _ := buildSharedTree(arena)

	reg := loc.NewFileRegistry()
	f := reg.Register("counter.vhd")
	entity.SetLoc(loc.New(f, 1, 0, 20, 3))

	var buf bytes.Buffer
	w := fbuf.NewWriter(&buf)
	require.NoError(t, Write(w, arena, reg, entity))

	arena2 := NewArena()
	reg2 := loc.NewFileRegistry()
	r := fbuf.NewReader(&buf)
	rc, err := NewReadCtx(r, arena2, reg2)
	require.NoError(t, err)

	got, err := Read(r, rc)
	require.NoError(t, err)

	require.Equal(t, KindEntity, got.Kind())
	assert.Equal(t, "counter", got.Ident().Name())
	assert.Equal(t, 1, got.Loc().FirstLine())
	assert.Equal(t, "counter.vhd", reg2.Name(got.Loc().File()))

	gotConst := got.Decls()[0]
	gotFn := got.Decls()[1]
	assert.Equal(t, "WIDTH", gotConst.Ident().Name())
	assert.Equal(t, int64(8), gotConst.Value().Literal().Int)

	require.Len(t, gotFn.Stmts(), 2)
	ref1 := gotFn.Stmts()[0].Value()
	ref2 := gotFn.Stmts()[1].Value()
	assert.Same(t, ref1.Ref(), ref2.Ref(), "shared back-reference must deserialize to one shared node")
	assert.Same(t, gotConst, ref1.Ref(), "the shared node must be the same instance reached structurally")
}

func TestReadRejectsUnknownKindByte(t *testing.T) {
	var buf bytes.Buffer
	w := fbuf.NewWriter(&buf)
	reg := loc.NewFileRegistry()
	require.NoError(t, loc.WriteTable(w, reg))
	require.NoError(t, w.WriteRaw([]byte{0xAA}))

	arena := NewArena()
	reg2 := loc.NewFileRegistry()
	r := fbuf.NewReader(&buf)
	rc, err := NewReadCtx(r, arena, reg2)
	require.NoError(t, err)

	_, err = Read(r, rc)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestWriteReadPreservesNullSlots(t *testing.T) {
	arena := NewArena()
	n := arena.New(KindVariableAssign)
	n.SetTarget(nil)
	n.SetValue(nil)

	reg := loc.NewFileRegistry()
	var buf bytes.Buffer
	w := fbuf.NewWriter(&buf)
	require.NoError(t, Write(w, arena, reg, n))

	arena2 := NewArena()
	reg2 := loc.NewFileRegistry()
	r := fbuf.NewReader(&buf)
	rc, err := NewReadCtx(r, arena2, reg2)
	require.NoError(t, err)
	got, err := Read(r, rc)
	require.NoError(t, err)

	assert.Nil(t, got.Target())
	assert.Nil(t, got.Value())
}
