package loc

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"syscall"
)

// fileEntry is one row of the file registry: {file_ref, canonical_name,
// optional memory-mapped buffer, tried_open} per spec.md §3.1.
type fileEntry struct {
	name      string
	buf       []byte
	triedOpen bool
}

// FileRegistry interns source-file canonical paths and lazily memory-maps
// their contents for diagnostic source rendering (spec §5). File references
// are stable for the process lifetime of the registry.
type FileRegistry struct {
	mu      sync.Mutex
	entries []*fileEntry
	byName  map[string]FileRef
}

// NewFileRegistry returns an empty registry.
func NewFileRegistry() *FileRegistry {
	return &FileRegistry{byName: make(map[string]FileRef)}
}

// canonical collapses consecutive '/' separators, per spec.md §3.1.
func canonical(name string) string {
	var b strings.Builder
	prevSlash := false
	for _, r := range name {
		if r == '/' {
			if prevSlash {
				continue
			}
			prevSlash = true
		} else {
			prevSlash = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Register interns name, returning its stable FileRef. Registration
// de-duplicates by canonical name.
func (r *FileRegistry) Register(name string) FileRef {
	name = canonical(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	if ref, ok := r.byName[name]; ok {
		return ref
	}
	ref := FileRef(len(r.entries))
	if uint64(ref) >= uint64(InvalidFileRef) {
		// Exhausted the 16-bit file_ref space; saturate to invalid rather
		// than silently aliasing two files onto the same ref.
		return InvalidFileRef
	}
	r.entries = append(r.entries, &fileEntry{name: name})
	r.byName[name] = ref
	return ref
}

// Name returns the canonical name registered under ref, or "" if unknown.
func (r *FileRegistry) Name(ref FileRef) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if int(ref) < 0 || int(ref) >= len(r.entries) {
		return ""
	}
	return r.entries[ref].name
}

// Len reports the number of interned files.
func (r *FileRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Source returns the memory-mapped contents of ref's file, mapping it on
// first use and caching the buffer thereafter. A file that fails to open is
// marked tried_open so later calls do not retry the syscall (spec §5).
func (r *FileRegistry) Source(ref FileRef) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if int(ref) < 0 || int(ref) >= len(r.entries) {
		return nil, fmt.Errorf("loc: file ref %d out of range", ref)
	}
	e := r.entries[ref]
	if e.buf != nil {
		return e.buf, nil
	}
	if e.triedOpen {
		return nil, fmt.Errorf("loc: %s: previously failed to open", e.name)
	}
	e.triedOpen = true

	f, err := os.Open(e.name)
	if err != nil {
		return nil, fmt.Errorf("loc: open %s: %w", e.name, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("loc: stat %s: %w", e.name, err)
	}
	if info.Size() == 0 {
		e.buf = []byte{}
		return e.buf, nil
	}

	buf, err := syscall.Mmap(int(f.Fd()), 0, int(info.Size()), syscall.PROT_READ, syscall.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("loc: mmap %s: %w", e.name, err)
	}
	e.buf = buf
	return e.buf, nil
}

// Close releases every memory-mapped buffer held by the registry.
func (r *FileRegistry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var firstErr error
	for _, e := range r.entries {
		if e.buf != nil && len(e.buf) > 0 {
			if err := syscall.Munmap(e.buf); err != nil && firstErr == nil {
				firstErr = err
			}
			e.buf = nil
		}
	}
	return firstErr
}
