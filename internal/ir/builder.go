package ir

// Builder is the seam between a lexer/parser and the tree IR. Parsing VHDL
// source into Nodes is an external collaborator (spec.md §1, §6) — this
// repo only needs to agree on the handoff shape, not implement the other
// side of it.
type Builder interface {
	// Build parses src (named file for diagnostics) and returns the
	// top-level unit Nodes it contains, allocated from arena.
	Build(arena *Arena, file string, src []byte) ([]*Node, error)
}
