package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyPreservesStructuralSharing(t *testing.T) {
	arena := NewArena()
	entity, _ := buildSharedTree(arena)
	fn := entity.Decls()[1]
	lit := entity.Decls()[0].Value()

	// Make both return statements share the literal directly, so Copy has
	// an in-subtree sharing case (distinct from the ref-to-declaration case
	// buildSharedTree already sets up).
	fn.Stmts()[0].SetValue(lit)
	fn.Stmts()[1].SetValue(lit)

	copied := Copy(arena, entity)
	require.NotSame(t, entity, copied)

	cfn := copied.Decls()[1]
	assert.Same(t, cfn.Stmts()[0].Value(), cfn.Stmts()[1].Value(), "shared literal must copy to a single shared instance")
	assert.NotSame(t, lit, cfn.Stmts()[0].Value(), "copy must allocate new nodes, not alias the original")
}

func TestCopyLeavesRefPointingAtOriginalDeclaration(t *testing.T) {
	arena := NewArena()
	entity, constDecl := buildSharedTree(arena)

	fresh := arena.New(KindFuncDecl)
	_ = fresh

	copied := Copy(arena, entity)
	cfn := copied.Decls()[1]
	ref := cfn.Stmts()[0].Value()
	assert.Same(t, constDecl, ref.Ref(), "ref slots cross-reference the original graph, not the copy")
}

func TestCopyDoesNotDuplicateTypeHandle(t *testing.T) {
	arena := NewArena()
	n := arena.New(KindConstantDecl)
	n.SetIdent(Intern("X"))
	typ := NewOpaqueType("integer")
	n.SetType(typ)

	copied := Copy(arena, n)
	assert.True(t, typ.Equal(copied.Type()))
}
