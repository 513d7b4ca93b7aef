package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlotAccessPanicsOnIllegalSlot(t *testing.T) {
	arena := NewArena()
	n := arena.New(KindNull)
	assert.Panics(t, func() { n.SetValue(nil) })
}

func TestLiteralSlotRoundTrip(t *testing.T) {
	arena := NewArena()
	n := arena.New(KindLiteral)
	n.SetLiteral(&Literal{Kind: LiteralInt, Int: 42})
	assert.Equal(t, int64(42), n.Literal().Int)
}

func TestAttrsBoundedAt16(t *testing.T) {
	arena := NewArena()
	n := arena.New(KindEntity)
	for i := 0; i < maxAttrs; i++ {
		n.SetAttr(string(rune('a'+i)), i)
	}
	assert.Panics(t, func() { n.SetAttr("overflow", true) })
}

func TestEnumLiteralDeclHoldsOrdinalValue(t *testing.T) {
	arena := NewArena()
	n := arena.New(KindEnumLiteralDecl)
	n.SetIdent(Intern("HIGH"))
	n.SetValue(arena.New(KindLiteral))
	assert.Equal(t, "enum_literal_decl", KindEnumLiteralDecl.String())
	assert.Panics(t, func() { n.SetPorts(nil) }, "enum literal decls have no ports slot")
}

func TestTypeRefIdentityNotStructural(t *testing.T) {
	a := NewOpaqueType("bit")
	b := NewOpaqueType("bit")
	assert.False(t, a.Equal(b), "types with the same name are still distinct handles")
	assert.True(t, a.Equal(a))
}

func TestIdentPointerEquality(t *testing.T) {
	in := NewInterner()
	a := in.Intern("clk")
	b := in.Intern("clk")
	c := in.Intern("rst")
	assert.True(t, a == b)
	assert.False(t, a == c)
	assert.Equal(t, "clk", a.Name())
}
