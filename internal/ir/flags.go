package ir

// Flags is a per-node bitset of derived or declared properties (spec.md
// §3.2's "flags" slot). Flags are monotone: once set during a simplify pass
// they are never cleared by a later, unrelated pass — only Set/Clear
// explicitly contradicts that, which callers should use sparingly.
type Flags uint32

const (
	// FlagLocallyStatic marks an expression whose value is known without
	// elaboration context (spec §4.2, simp_fcall foldability test).
	FlagLocallyStatic Flags = 1 << iota
	// FlagGloballyStatic marks an expression static only after generics are
	// bound (spec §4.2 SimplifyGlobal).
	FlagGloballyStatic
	// FlagPredefined marks an implicitly-declared signal or subprogram
	// (spec §4.2 implicit 'DELAYED/'TRANSACTION signals).
	FlagPredefined
	// FlagImpure marks a function/procedure that may not be constant-folded.
	FlagImpure
	// FlagPostponed marks a postponed process or concurrent statement.
	FlagPostponed
	// FlagStaticWait marks a wait statement whose sensitivity list was
	// synthesized rather than written by hand (spec §4.2 build_wait).
	FlagStaticWait
	// FlagFormalName marks a reference used in formal-parameter position of
	// an association (spec §4.2 reference resolution's compatibility check).
	FlagFormalName
	// FlagDead marks a statement the simplifier proved unreachable but could
	// not physically remove from its parent slice (e.g. still referenced
	// elsewhere). Rewrite passes should treat it as already eliminated.
	FlagDead
	// FlagAllSensitized marks a process declared `process (all)`: its own
	// Triggers slot is synthesized from every signal its body reads rather
	// than written by hand or derived from a fixed root set (spec §4.2.9
	// build_wait's all-sensitized case).
	FlagAllSensitized
	// FlagModeOut marks a port or subprogram-formal declaration of mode out:
	// its actual is written, never read, and so is never a sensitivity
	// trigger (spec §4.2.9, "add triggers from IN/INOUT arguments").
	FlagModeOut
	// FlagModeInOut marks a port or subprogram-formal declaration of mode
	// inout: unlike out, its actual is still read and remains a trigger.
	// Absence of both FlagModeOut and FlagModeInOut means mode in, the
	// common case.
	FlagModeInOut
	// FlagFCall marks a deferred constant declaration (no Value attached)
	// whose full constant is nonetheless known to the elaborator, the way a
	// package body's completion resolves a package-header deferred constant.
	// foldable treats such a reference as foldable even without a Value to
	// recurse into (spec §4.2.2, "a deferred constant when the fcall mask
	// bit is set").
	FlagFCall
)

// Has reports whether all bits of want are set.
func (f Flags) Has(want Flags) bool { return f&want == want }

// Set returns f with want's bits added.
func (f Flags) Set(want Flags) Flags { return f | want }

// Clear returns f with want's bits removed.
func (f Flags) Clear(want Flags) Flags { return f &^ want }
