package ir

import (
	"fmt"

	"github.com/termfx/vhdlcore/internal/loc"
)

// RangeKind distinguishes the three ways a discrete range can be written.
type RangeKind uint8

const (
	RangeTo RangeKind = iota
	RangeDownto
	RangeExpr // 'RANGE/'REVERSE_RANGE of a prefix, or a subtype's own constraint
)

// Range is the auxiliary record backing the "range" slot (spec.md §3.2).
// It is a plain value type, never arena-allocated, since it has no identity
// of its own apart from the Node that owns it.
type Range struct {
	Kind  RangeKind
	Left  *Node
	Right *Node
}

// LiteralKind distinguishes the payload shape of a literal Node.
type LiteralKind uint8

const (
	LiteralInt LiteralKind = iota
	LiteralReal
	LiteralPhysical
	LiteralString
	LiteralChar
	LiteralNull
)

// Literal is the auxiliary record backing the "literal" slot.
type Literal struct {
	Kind LiteralKind
	Int  int64
	Real float64
	Str  string
}

// ParamKind distinguishes positional from named actuals.
type ParamKind uint8

const (
	ParamPositional ParamKind = iota
	ParamNamed
)

// Param is one entry of a "params"/"genmaps" slot (actual arguments to a
// call, instantiation, or generic map; spec.md §3.2).
type Param struct {
	Kind  ParamKind
	Pos   int
	Name  Ident
	Value *Node
	Range *Range
}

// AssocKind distinguishes the choice shape of an association-list entry
// (aggregate choices, case-statement alternatives, selected-assignment
// alternatives; spec.md §3.2).
type AssocKind uint8

const (
	AssocPositional AssocKind = iota
	AssocNamed
	AssocRange
	AssocOthers
)

// Assoc is one entry of an "assocs" slot.
type Assoc struct {
	Kind  AssocKind
	Pos   int
	Name  Ident
	Range *Range
	Value *Node
}

// Node is the single heterogeneous tree type spec.md §3.2 describes: every
// tree shape in the language is one Kind value away from every other, and
// unused slots simply sit at their zero value. Accessors assert slot
// legality so a bug that writes to the wrong slot for a Kind panics close
// to its cause instead of silently corrupting serialization.
type Node struct {
	kind Kind
	id   uint32
	loc  loc.Loc

	// generation-based bookkeeping shared by GC, Visit, Rewrite and Write
	// (spec.md §4.1.3/§4.1.5/§4.1.6/§4.4; Copy uses its own map): each of those
	// operations claims a process-unique epoch via Arena.nextEpoch and
	// compares it against this field to test "already touched in this
	// pass" in O(1), without needing to reset every node between passes.
	epoch    uint64
	auxIndex uint32

	ident  Ident
	ident2 Ident
	typ    TypeRef

	ports      []*Node
	generics   []*Node
	decls      []*Node
	stmts      []*Node
	elseStmts  []*Node
	triggers   []*Node
	waveforms  []*Node
	drivers    []*Node
	contexts   []*Node
	params     []Param
	genmaps    []Param
	assocs     []Assoc

	target   *Node
	value    *Node
	delay    *Node
	message  *Node
	severity *Node
	ref      *Node
	name     *Node
	spec     *Node
	reject   *Node
	left     *Node
	right    *Node

	rng *Range
	lit *Literal

	flags Flags
	attrs map[string]any
}

// Kind returns n's kind.
func (n *Node) Kind() Kind { return n.kind }

// ID returns n's stable arena index.
func (n *Node) ID() uint32 { return n.id }

// Loc returns n's source location.
func (n *Node) Loc() loc.Loc { return n.loc }

// SetLoc sets n's source location.
func (n *Node) SetLoc(l loc.Loc) { n.loc = l }

// Flags returns n's flag bitset.
func (n *Node) Flags() Flags { return n.flags }

// SetFlags replaces n's flag bitset.
func (n *Node) SetFlags(f Flags) { n.flags = f }

// Type returns n's attached type, or NoType.
func (n *Node) Type() TypeRef { return n.typ }

// SetType attaches a type to n. Legal on any kind that has a "type" slot.
func (n *Node) SetType(t TypeRef) {
	n.assertSlot(SType)
	n.typ = t
}

func (n *Node) assertSlot(s Slot) {
	if !n.kind.HasSlot(s) {
		panic(fmt.Sprintf("ir: kind %s does not legalize slot %#x", n.kind, s))
	}
}

// -- single-identifier slots --------------------------------------------

func (n *Node) Ident() Ident {
	n.assertSlot(SIdent)
	return n.ident
}

func (n *Node) SetIdent(id Ident) {
	n.assertSlot(SIdent)
	n.ident = id
}

func (n *Node) Ident2() Ident {
	n.assertSlot(SIdent2)
	return n.ident2
}

func (n *Node) SetIdent2(id Ident) {
	n.assertSlot(SIdent2)
	n.ident2 = id
}

// -- single-node slots ----------------------------------------------------

func (n *Node) Target() *Node { n.assertSlot(STarget); return n.target }
func (n *Node) SetTarget(v *Node) { n.assertSlot(STarget); n.target = v }

func (n *Node) Value() *Node { n.assertSlot(SValue); return n.value }
func (n *Node) SetValue(v *Node) { n.assertSlot(SValue); n.value = v }

func (n *Node) Delay() *Node { n.assertSlot(SDelay); return n.delay }
func (n *Node) SetDelay(v *Node) { n.assertSlot(SDelay); n.delay = v }

func (n *Node) Message() *Node { n.assertSlot(SMessage); return n.message }
func (n *Node) SetMessage(v *Node) { n.assertSlot(SMessage); n.message = v }

func (n *Node) Severity() *Node { n.assertSlot(SSeverity); return n.severity }
func (n *Node) SetSeverity(v *Node) { n.assertSlot(SSeverity); n.severity = v }

func (n *Node) Ref() *Node { n.assertSlot(SRef); return n.ref }
func (n *Node) SetRef(v *Node) { n.assertSlot(SRef); n.ref = v }

func (n *Node) Name() *Node { n.assertSlot(SName); return n.name }
func (n *Node) SetName(v *Node) { n.assertSlot(SName); n.name = v }

func (n *Node) Spec() *Node { n.assertSlot(SSpec); return n.spec }
func (n *Node) SetSpec(v *Node) { n.assertSlot(SSpec); n.spec = v }

func (n *Node) Reject() *Node { n.assertSlot(SReject); return n.reject }
func (n *Node) SetReject(v *Node) { n.assertSlot(SReject); n.reject = v }

func (n *Node) Left() *Node { n.assertSlot(SLeft); return n.left }
func (n *Node) SetLeft(v *Node) { n.assertSlot(SLeft); n.left = v }

func (n *Node) Right() *Node { n.assertSlot(SRight); return n.right }
func (n *Node) SetRight(v *Node) { n.assertSlot(SRight); n.right = v }

// -- sequence slots ---------------------------------------------------------

func (n *Node) Ports() []*Node { n.assertSlot(SPorts); return n.ports }
func (n *Node) SetPorts(v []*Node) { n.assertSlot(SPorts); n.ports = v }
func (n *Node) AppendPort(v *Node) { n.assertSlot(SPorts); n.ports = append(n.ports, v) }

func (n *Node) Generics() []*Node { n.assertSlot(SGenerics); return n.generics }
func (n *Node) SetGenerics(v []*Node) { n.assertSlot(SGenerics); n.generics = v }
func (n *Node) AppendGeneric(v *Node) { n.assertSlot(SGenerics); n.generics = append(n.generics, v) }

func (n *Node) Decls() []*Node { n.assertSlot(SDecls); return n.decls }
func (n *Node) SetDecls(v []*Node) { n.assertSlot(SDecls); n.decls = v }
func (n *Node) AppendDecl(v *Node) { n.assertSlot(SDecls); n.decls = append(n.decls, v) }

func (n *Node) Stmts() []*Node { n.assertSlot(SStmts); return n.stmts }
func (n *Node) SetStmts(v []*Node) { n.assertSlot(SStmts); n.stmts = v }
func (n *Node) AppendStmt(v *Node) { n.assertSlot(SStmts); n.stmts = append(n.stmts, v) }

func (n *Node) ElseStmts() []*Node { n.assertSlot(SElseStmts); return n.elseStmts }
func (n *Node) SetElseStmts(v []*Node) { n.assertSlot(SElseStmts); n.elseStmts = v }

func (n *Node) Triggers() []*Node { n.assertSlot(STriggers); return n.triggers }
func (n *Node) SetTriggers(v []*Node) { n.assertSlot(STriggers); n.triggers = v }

func (n *Node) Waveforms() []*Node { n.assertSlot(SWaveforms); return n.waveforms }
func (n *Node) SetWaveforms(v []*Node) { n.assertSlot(SWaveforms); n.waveforms = v }

func (n *Node) Drivers() []*Node { n.assertSlot(SDrivers); return n.drivers }
func (n *Node) SetDrivers(v []*Node) { n.assertSlot(SDrivers); n.drivers = v }

func (n *Node) Contexts() []*Node { n.assertSlot(SContexts); return n.contexts }
func (n *Node) SetContexts(v []*Node) { n.assertSlot(SContexts); n.contexts = v }

func (n *Node) Params() []Param { n.assertSlot(SParams); return n.params }
func (n *Node) SetParams(v []Param) { n.assertSlot(SParams); n.params = v }

func (n *Node) Genmaps() []Param { n.assertSlot(SGenmaps); return n.genmaps }
func (n *Node) SetGenmaps(v []Param) { n.assertSlot(SGenmaps); n.genmaps = v }

func (n *Node) Assocs() []Assoc { n.assertSlot(SAssocs); return n.assocs }
func (n *Node) SetAssocs(v []Assoc) { n.assertSlot(SAssocs); n.assocs = v }

// -- range/literal ----------------------------------------------------------

func (n *Node) Range() *Range { n.assertSlot(SRange); return n.rng }
func (n *Node) SetRange(v *Range) { n.assertSlot(SRange); n.rng = v }

func (n *Node) Literal() *Literal { n.assertSlot(SLiteral); return n.lit }
func (n *Node) SetLiteral(v *Literal) { n.assertSlot(SLiteral); n.lit = v }

// -- attrs --------------------------------------------------------------

// maxAttrs bounds the attrs dict per spec.md §3.2 ("bounded, at most 16
// entries — overflow is a compiler bug, not a user-facing error").
const maxAttrs = 16

// Attr looks up a node-level attribute by name.
func (n *Node) Attr(name string) (any, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// SetAttr records a node-level attribute, panicking if doing so would
// exceed maxAttrs distinct keys.
func (n *Node) SetAttr(name string, v any) {
	if n.attrs == nil {
		n.attrs = make(map[string]any, 4)
	}
	if _, exists := n.attrs[name]; !exists && len(n.attrs) >= maxAttrs {
		panic(fmt.Sprintf("ir: node %d: attrs dict exceeds %d entries", n.id, maxAttrs))
	}
	n.attrs[name] = v
}
