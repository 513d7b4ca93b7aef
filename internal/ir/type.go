package ir

// TypeRef is a narrow, reference-counted handle onto a type descriptor.
// Full type algebra (base types, constraints, records/arrays) is owned by
// the semantic analyzer collaborator (spec.md §6); the tree IR only needs
// to attach, share, and compare types, never construct them, so TypeRef
// exposes just enough surface for that.
type TypeRef struct {
	entry *typeEntry
}

type typeEntry struct {
	name string
	refs int32
}

// NoType is the zero TypeRef: an unattached, "no type yet" slot.
var NoType = TypeRef{}

// NewOpaqueType constructs a TypeRef identified only by name, for use by
// tests and by collaborators that haven't been wired in yet. Production
// TypeRefs are expected to come from the external semantic analyzer.
func NewOpaqueType(name string) TypeRef {
	return TypeRef{entry: &typeEntry{name: name, refs: 1}}
}

// IsValid reports whether t refers to an actual type.
func (t TypeRef) IsValid() bool { return t.entry != nil }

// Name returns the type's display name, or "" for NoType.
func (t TypeRef) Name() string {
	if t.entry == nil {
		return ""
	}
	return t.entry.name
}

// Equal reports whether t and other share the same underlying entry.
// Types are compared by identity, never structurally, matching spec.md
// §3.2's "attached types are shared by reference, never copied."
func (t TypeRef) Equal(other TypeRef) bool { return t.entry == other.entry }
