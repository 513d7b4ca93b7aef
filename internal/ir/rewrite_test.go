package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewriteReplacesLiteral(t *testing.T) {
	arena := NewArena()
	entity, constDecl := buildSharedTree(arena)

	replacement := arena.New(KindLiteral)
	replacement.SetLiteral(&Literal{Kind: LiteralInt, Int: 16})

	Rewrite(arena, entity, nil, func(n *Node) *Node {
		if n.Kind() == KindLiteral {
			return replacement
		}
		return n
	})

	require.Equal(t, KindLiteral, constDecl.Value().Kind())
	assert.Equal(t, int64(16), constDecl.Value().Literal().Int)
}

func TestRewriteRemovesSequenceElementOnNil(t *testing.T) {
	arena := NewArena()
	entity, _ := buildSharedTree(arena)
	fn := entity.Decls()[1]
	require.Len(t, fn.Stmts(), 2)

	first := fn.Stmts()[0]
	Rewrite(arena, entity, nil, func(n *Node) *Node {
		if n == first {
			return nil
		}
		return n
	})

	assert.Len(t, fn.Stmts(), 1)
}

func TestRewritePreFuncSkipsDescent(t *testing.T) {
	arena := NewArena()
	entity, _ := buildSharedTree(arena)
	fn := entity.Decls()[1]

	var sawReturn bool
	Rewrite(arena, entity, func(n *Node) bool {
		return n != fn // skip descending into fn's own stmts
	}, func(n *Node) *Node {
		if n.Kind() == KindReturn {
			sawReturn = true
		}
		return n
	})

	assert.False(t, sawReturn)
}
