package ir

import "sync"

// Ident is an opaque interned symbol. Equality is pointer equality, matching
// spec.md §3.1's "Identifier" contract. The interner itself is treated as an
// external collaborator (spec §6 ident_intern) — Interner below is the
// narrow surface this package needs from it, with a process-default
// implementation so the rest of the repo doesn't have to inject one.
type Ident *identRecord

type identRecord struct {
	name string
}

// Interner canonically maps strings to Idents.
type Interner struct {
	mu sync.Mutex
	m  map[string]Ident
}

// NewInterner returns an empty interner.
func NewInterner() *Interner {
	return &Interner{m: make(map[string]Ident)}
}

// Intern returns the canonical Ident for s, creating it on first use.
func (in *Interner) Intern(s string) Ident {
	in.mu.Lock()
	defer in.mu.Unlock()
	if id, ok := in.m[s]; ok {
		return id
	}
	id := Ident(&identRecord{name: s})
	in.m[s] = id
	return id
}

// Name returns the text behind id, or "" for a nil Ident.
func (id Ident) Name() string {
	if id == nil {
		return ""
	}
	return (*identRecord)(id).name
}

// defaultInterner backs the package-level Intern helper used by callers that
// don't thread their own Interner (tests, synthesized names).
var defaultInterner = NewInterner()

// Intern interns s against the process-default interner.
func Intern(s string) Ident { return defaultInterner.Intern(s) }
