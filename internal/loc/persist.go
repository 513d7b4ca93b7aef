package loc

import (
	"errors"
	"fmt"

	"github.com/termfx/vhdlcore/internal/fbuf"
)

// magic identifies an fbuf stream as a location table (spec §4.4, §6).
const magic = 0xF00F

// ErrCorrupt is returned when a location stream fails magic validation or
// carries an out-of-range file reference. Per spec.md §7 this is a
// parse/semantic-corruption condition: the caller is expected to treat it as
// fatal rather than attempt recovery.
var ErrCorrupt = errors.New("loc: corrupt location stream")

// WriteTable writes the registry's interned file names as an fbuf header:
// magic, uleb128 file count, then each name length-prefixed.
func WriteTable(w *fbuf.Writer, reg *FileRegistry) error {
	if err := w.WriteU16(magic); err != nil {
		return err
	}
	n := reg.Len()
	if err := w.PutUint(uint64(n)); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := w.WriteString(reg.Name(FileRef(i))); err != nil {
			return err
		}
	}
	return nil
}

// WriteLoc writes a single packed location as a fixed-width u64.
func WriteLoc(w *fbuf.Writer, l Loc) error {
	return w.WriteU64(uint64(l))
}

// ReadTable reads an fbuf location-table header, producing the ordered list
// of file names the writer saw. It does not touch reg; use ReadCtx to
// remap subsequent ReadLoc calls into reg's own reference space.
func ReadTable(r *fbuf.Reader) ([]string, error) {
	m, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	if m != magic {
		return nil, fmt.Errorf("%w: bad magic %#x", ErrCorrupt, m)
	}
	n, err := r.GetUint()
	if err != nil {
		return nil, err
	}
	names := make([]string, n)
	for i := range names {
		s, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		names[i] = s
	}
	return names, nil
}

// ReadCtx remaps file references from a persisted stream's file table into a
// live FileRegistry, per spec.md §4.4: "when an old file_ref is first
// encountered, remap it to an existing loc_file (match by canonical name) or
// append a new one; record the mapping so subsequent references reuse it."
type ReadCtx struct {
	reg      *FileRegistry
	oldNames []string
	remap    map[FileRef]FileRef
}

// NewReadCtx reads the file table header from r and prepares to remap
// locations into reg.
func NewReadCtx(r *fbuf.Reader, reg *FileRegistry) (*ReadCtx, error) {
	names, err := ReadTable(r)
	if err != nil {
		return nil, err
	}
	return &ReadCtx{reg: reg, oldNames: names, remap: make(map[FileRef]FileRef)}, nil
}

// ReadLoc reads one packed location and remaps its file reference into the
// live registry, registering the underlying name on first encounter.
func (c *ReadCtx) ReadLoc(r *fbuf.Reader) (Loc, error) {
	raw, err := r.ReadU64()
	if err != nil {
		return Invalid, err
	}
	l := Loc(raw)
	oldRef := l.File()
	if oldRef == InvalidFileRef {
		return l, nil
	}
	if int(oldRef) >= len(c.oldNames) {
		return Invalid, fmt.Errorf("%w: file ref %d out of range (have %d files)", ErrCorrupt, oldRef, len(c.oldNames))
	}
	if newRef, ok := c.remap[oldRef]; ok {
		return l.withFile(newRef), nil
	}
	newRef := c.reg.Register(c.oldNames[oldRef])
	c.remap[oldRef] = newRef
	return l.withFile(newRef), nil
}
