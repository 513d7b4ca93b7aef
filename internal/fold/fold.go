// Package fold defines the narrow seam onto the constant-folding backend
// (spec.md §1, §6: lower_thunk/exec_fold) that internal/simp drives during
// simplification. The package mirrors internal/evaluator's dependency
// injection pattern: simp depends on the two interfaces below, never on a
// concrete evaluator, so a real bytecode backend can be swapped in without
// touching the simplifier.
package fold

import (
	"context"

	"github.com/termfx/vhdlcore/internal/ir"
)

// Thunk is an opaque lowered form of one expression, produced by a Lowerer
// and consumed by exactly one Evaluator.Fold call. Callers must Release it
// once folding has run, win or lose.
type Thunk interface {
	Release()
}

// Lowerer turns a candidate expression into a Thunk the Evaluator can
// execute. Lowering is expected to fail gracefully: per spec.md §4.2.3,
// "if lowering fails, the original node is preserved" — a Lowerer signals
// that by returning (nil, nil), reserving the error return for genuine
// backend faults the caller should surface as a diagnostic.
type Lowerer interface {
	Lower(expr *ir.Node) (Thunk, error)
}

// Evaluator executes a lowered expression and produces the literal Node
// that replaces it in the tree. Fold must not mutate expr; the caller owns
// deciding whether to splice the result in. arena is the Arena the result
// Node must be allocated from — Evaluator implementations never keep their
// own Arena, since a single process may fold expressions belonging to
// several compilation units sharing different arenas over its lifetime.
type Evaluator interface {
	Fold(ctx context.Context, arena *ir.Arena, expr *ir.Node, thunk Thunk) (*ir.Node, error)
}
