package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisitTouchesEachNodeOnce(t *testing.T) {
	arena := NewArena()
	entity, _ := buildSharedTree(arena)

	count := 0
	Visit(arena, entity, func(n *Node) { count++ })

	// entity, constDecl, literal, fn, ref1, ret1, ref2, ret2 = 8 nodes.
	assert.Equal(t, 8, count)
}

func TestVisitDoesNotFollowRefSlot(t *testing.T) {
	arena := NewArena()
	entity, constDecl := buildSharedTree(arena)

	var kinds []Kind
	fn := entity.Decls()[1]
	Visit(arena, fn, func(n *Node) { kinds = append(kinds, n.Kind()) })

	for _, k := range kinds {
		assert.NotEqual(t, KindConstantDecl, k)
	}
	_ = constDecl
}

func TestVisitOnlyFiltersCallback(t *testing.T) {
	arena := NewArena()
	entity, _ := buildSharedTree(arena)

	var refs int
	VisitOnly(arena, entity, KindRef, func(n *Node) { refs++ })
	assert.Equal(t, 2, refs)
}

func TestVisitIsIdempotentAcrossRepeatedCalls(t *testing.T) {
	arena := NewArena()
	entity, _ := buildSharedTree(arena)

	var first, second int
	Visit(arena, entity, func(n *Node) { first++ })
	Visit(arena, entity, func(n *Node) { second++ })
	assert.Equal(t, first, second)
}
