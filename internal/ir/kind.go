package ir

// Kind identifies the shape of a Node: which slots it is legal to populate
// and how the simplification and diagnostic passes interpret it. This
// mirrors the HAS_* predicate table in spec.md §3.2 — every Kind below maps
// to an explicit slot legality mask instead of a family of boolean
// predicates, since Go doesn't give us the C header's macro-per-predicate
// idiom for free.
type Kind uint8

const (
	KindInvalid Kind = iota

	// Top-level units (GC roots, spec §4.1.4).
	KindEntity
	KindArch
	KindPackage
	KindPackageBody
	KindElab

	// Declarations.
	KindGenericDecl
	KindPortDecl
	KindSignalDecl
	KindVariableDecl
	KindConstantDecl
	KindAliasDecl
	KindTypeDecl
	KindSubtypeDecl
	KindFuncDecl
	KindProcDecl
	KindEnumLiteralDecl

	// Concurrent statements.
	KindProcess
	KindBlock
	KindInstance
	KindConcSignalAssign
	KindConcProcCall
	KindConcSelectAssign
	KindConcAssert
	KindIfGenerate
	KindForGenerate

	// Sequential statements.
	KindIf
	KindWhile
	KindFor
	KindCase
	KindCaseArm
	KindSignalAssign
	KindVariableAssign
	KindProcCall
	KindWait
	KindAssert
	KindReport
	KindNull
	KindExit
	KindNext
	KindReturn

	// Expressions.
	KindFCall
	KindRef
	KindAttrRef
	KindLiteral
	KindAggregate
	KindQualified
	KindTypeConv
	KindWaveform
	KindOpen
)

// Slot is a bit in a Kind's legality mask identifying one optional Node
// field. loc, flags and attrs are always present and so are not gated.
type Slot uint32

const (
	SIdent Slot = 1 << iota
	SIdent2
	SType
	SPorts
	SGenerics
	SDecls
	SStmts
	SElseStmts
	STriggers
	SWaveforms
	SDrivers
	SContexts
	SParams
	SGenmaps
	SAssocs
	STarget
	SValue
	SDelay
	SMessage
	SSeverity
	SRef
	SName
	SSpec
	SReject
	SLeft
	SRight
	SRange
	SLiteral
)

// legality maps each Kind to the set of slots it may populate. Writing to a
// slot a Kind does not legalize is a programming error (Node accessors
// assert against this table).
var legality = map[Kind]Slot{
	KindEntity:      SIdent | SPorts | SGenerics | SDecls,
	KindArch:        SIdent | SIdent2 | SDecls | SStmts,
	KindPackage:     SIdent | SGenerics | SDecls,
	KindPackageBody: SIdent | SDecls,
	KindElab:        SIdent | SDecls | SStmts | SContexts,

	KindGenericDecl:  SIdent | SType | SValue,
	KindPortDecl:     SIdent | SType | SValue,
	KindSignalDecl:   SIdent | SType | SValue,
	KindVariableDecl: SIdent | SType | SValue,
	KindConstantDecl: SIdent | SType | SValue,
	KindAliasDecl:    SIdent | SType | SName,
	KindTypeDecl:     SIdent | SType,
	KindSubtypeDecl:  SIdent | SType | SRange,
	KindFuncDecl:     SIdent | SType | SPorts | SDecls | SStmts,
	KindProcDecl:     SIdent | SPorts | SDecls | SStmts,
	// KindEnumLiteralDecl's Value slot holds an int KindLiteral recording
	// the literal's position in its enumeration type, the same convention
	// GenericDecl/ConstantDecl use for a resolved value (spec §3.2 ref
	// invariant: "a ref slot must point to a declaration kind, an enum
	// literal, or a top-level unit").
	KindEnumLiteralDecl: SIdent | SType | SValue,

	KindProcess:          SIdent | SDecls | SStmts | STriggers,
	KindBlock:             SIdent | SGenerics | SGenmaps | SDecls | SStmts,
	KindInstance:          SIdent | SIdent2 | SGenmaps | SAssocs | SSpec,
	KindConcSignalAssign:  STarget | SWaveforms,
	KindConcProcCall:      SRef | SParams,
	KindConcSelectAssign:  STarget | SValue | SAssocs,
	KindConcAssert:        SValue | SMessage | SSeverity,
	KindIfGenerate:        SIdent | SValue | SDecls | SStmts | SElseStmts,
	KindForGenerate:       SIdent | SGenerics | SDecls | SStmts,

	KindIf:             SValue | SStmts | SElseStmts,
	KindWhile:          SValue | SStmts,
	KindFor:            SIdent | SRange | SStmts,
	KindCase:           SValue | SStmts,
	KindCaseArm:        SAssocs | SStmts,
	KindSignalAssign:   STarget | SWaveforms | SReject,
	KindVariableAssign: STarget | SValue,
	KindProcCall:       SRef | SParams,
	KindWait:           STriggers | SValue | SDelay,
	KindAssert:         SValue | SMessage | SSeverity,
	KindReport:         SMessage | SSeverity,
	KindNull:           0,
	KindExit:           SValue,
	KindNext:           SValue,
	KindReturn:         SValue,

	KindFCall:     SRef | SParams,
	KindRef:       SRef,
	KindAttrRef:   SName | SIdent | SParams,
	KindLiteral:   SLiteral,
	KindAggregate: SAssocs,
	KindQualified: SType | SValue,
	KindTypeConv:  SType | SValue,
	KindWaveform:  SValue | SDelay,
	KindOpen:      0,
}

// HasSlot reports whether k legalizes s.
func (k Kind) HasSlot(s Slot) bool {
	return legality[k]&s != 0
}

//go:generate stringer -type=Kind
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

var kindNames = map[Kind]string{
	KindInvalid:          "invalid",
	KindEntity:           "entity",
	KindArch:             "architecture",
	KindPackage:          "package",
	KindPackageBody:      "package_body",
	KindElab:             "elaborated",
	KindGenericDecl:      "generic_decl",
	KindPortDecl:         "port_decl",
	KindSignalDecl:       "signal_decl",
	KindVariableDecl:     "variable_decl",
	KindConstantDecl:     "constant_decl",
	KindAliasDecl:        "alias_decl",
	KindTypeDecl:         "type_decl",
	KindSubtypeDecl:      "subtype_decl",
	KindFuncDecl:         "func_decl",
	KindProcDecl:         "proc_decl",
	KindEnumLiteralDecl:  "enum_literal_decl",
	KindProcess:          "process",
	KindBlock:            "block",
	KindInstance:         "instance",
	KindConcSignalAssign: "conc_signal_assign",
	KindConcProcCall:     "conc_proc_call",
	KindConcSelectAssign: "conc_select_assign",
	KindConcAssert:       "conc_assert",
	KindIfGenerate:       "if_generate",
	KindForGenerate:      "for_generate",
	KindIf:               "if",
	KindWhile:            "while",
	KindFor:              "for",
	KindCase:             "case",
	KindCaseArm:          "case_arm",
	KindSignalAssign:     "signal_assign",
	KindVariableAssign:   "variable_assign",
	KindProcCall:         "proc_call",
	KindWait:             "wait",
	KindAssert:           "assert",
	KindReport:           "report",
	KindNull:             "null",
	KindExit:             "exit",
	KindNext:             "next",
	KindReturn:           "return",
	KindFCall:            "fcall",
	KindRef:              "ref",
	KindAttrRef:          "attr_ref",
	KindLiteral:          "literal",
	KindAggregate:        "aggregate",
	KindQualified:        "qualified",
	KindTypeConv:         "type_conv",
	KindWaveform:         "waveform",
	KindOpen:             "open",
}

// IsTopLevelUnit reports whether k is one of the GC-root unit kinds
// (spec.md §4.1.4).
func (k Kind) IsTopLevelUnit() bool {
	switch k {
	case KindEntity, KindArch, KindPackage, KindPackageBody, KindElab:
		return true
	default:
		return false
	}
}
