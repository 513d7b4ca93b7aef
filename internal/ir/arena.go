package ir

import "sync/atomic"

// Arena owns every Node allocated for one compilation session and backs the
// mark-and-sweep collector described in spec.md §4.1.4. Nodes never move
// once allocated; GC only ever drops the Arena's own reference to a dead
// Node so it can be collected by the Go runtime.
type Arena struct {
	nodes    []*Node
	epochGen uint64
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// nextEpoch hands out a process-unique epoch value for one traversal, GC,
// rewrite, or serialize pass.
func (a *Arena) nextEpoch() uint64 {
	return atomic.AddUint64(&a.epochGen, 1)
}

// New allocates a fresh, zero-valued Node of kind k and registers it with
// the arena.
func (a *Arena) New(k Kind) *Node {
	n := &Node{kind: k, id: uint32(len(a.nodes))}
	a.nodes = append(a.nodes, n)
	return n
}

// Len reports how many nodes the arena has ever allocated (including ones
// a prior GC pass has since dropped from its live set).
func (a *Arena) Len() int { return len(a.nodes) }

// Node returns the node with the given arena-assigned id, or nil if it has
// been collected.
func (a *Arena) Node(id uint32) *Node {
	if int(id) >= len(a.nodes) {
		return nil
	}
	return a.nodes[id]
}
