package ir

import (
	"errors"
	"fmt"
	"math"

	"github.com/termfx/vhdlcore/internal/fbuf"
	"github.com/termfx/vhdlcore/internal/loc"
)

// ErrCorrupt is returned when a serialized tree stream fails structural
// validation (unknown kind byte, out-of-range back-reference).
var ErrCorrupt = errors.New("ir: corrupt tree stream")

const (
	markerNull    byte = 0xFF
	markerBackref byte = 0xFE
)

// Write serializes root (and, transitively, everything it shares structure
// with) to w, canonicalizing slot order per spec.md §4.4: a node seen twice
// during the same Write call is emitted once in full and referenced
// thereafter by a back-reference index, which keeps the format both
// compact and cycle-safe.
func Write(w *fbuf.Writer, arena *Arena, reg *loc.FileRegistry, root *Node) error {
	if err := loc.WriteTable(w, reg); err != nil {
		return err
	}
	wc := &writeCtx{epoch: arena.nextEpoch()}
	return wc.writeNode(w, root)
}

type writeCtx struct {
	epoch uint64
	next  uint32
}

func (wc *writeCtx) writeNode(w *fbuf.Writer, n *Node) error {
	if n == nil {
		return w.WriteRaw([]byte{markerNull})
	}
	if n.epoch == wc.epoch {
		if err := w.WriteRaw([]byte{markerBackref}); err != nil {
			return err
		}
		return w.PutUint(uint64(n.auxIndex))
	}
	n.epoch = wc.epoch
	n.auxIndex = wc.next
	wc.next++

	if err := w.WriteRaw([]byte{byte(n.kind)}); err != nil {
		return err
	}
	if err := loc.WriteLoc(w, n.loc); err != nil {
		return err
	}
	if err := wc.writeIdentOpt(w, n.ident); err != nil {
		return err
	}
	if err := wc.writeIdentOpt(w, n.ident2); err != nil {
		return err
	}
	if err := wc.writeTypeOpt(w, n.typ); err != nil {
		return err
	}
	if err := w.PutUint(uint64(n.flags)); err != nil {
		return err
	}

	k := n.kind
	if k.HasSlot(SPorts) {
		if err := wc.writeSeq(w, n.ports); err != nil {
			return err
		}
	}
	if k.HasSlot(SGenerics) {
		if err := wc.writeSeq(w, n.generics); err != nil {
			return err
		}
	}
	if k.HasSlot(SDecls) {
		if err := wc.writeSeq(w, n.decls); err != nil {
			return err
		}
	}
	if k.HasSlot(SStmts) {
		if err := wc.writeSeq(w, n.stmts); err != nil {
			return err
		}
	}
	if k.HasSlot(SElseStmts) {
		if err := wc.writeSeq(w, n.elseStmts); err != nil {
			return err
		}
	}
	if k.HasSlot(STriggers) {
		if err := wc.writeSeq(w, n.triggers); err != nil {
			return err
		}
	}
	if k.HasSlot(SWaveforms) {
		if err := wc.writeSeq(w, n.waveforms); err != nil {
			return err
		}
	}
	if k.HasSlot(SDrivers) {
		if err := wc.writeSeq(w, n.drivers); err != nil {
			return err
		}
	}
	if k.HasSlot(SContexts) {
		if err := wc.writeSeq(w, n.contexts); err != nil {
			return err
		}
	}
	if k.HasSlot(SParams) {
		if err := wc.writeParams(w, n.params); err != nil {
			return err
		}
	}
	if k.HasSlot(SGenmaps) {
		if err := wc.writeParams(w, n.genmaps); err != nil {
			return err
		}
	}
	if k.HasSlot(SAssocs) {
		if err := wc.writeAssocs(w, n.assocs); err != nil {
			return err
		}
	}
	if k.HasSlot(STarget) {
		if err := wc.writeNode(w, n.target); err != nil {
			return err
		}
	}
	if k.HasSlot(SValue) {
		if err := wc.writeNode(w, n.value); err != nil {
			return err
		}
	}
	if k.HasSlot(SDelay) {
		if err := wc.writeNode(w, n.delay); err != nil {
			return err
		}
	}
	if k.HasSlot(SMessage) {
		if err := wc.writeNode(w, n.message); err != nil {
			return err
		}
	}
	if k.HasSlot(SSeverity) {
		if err := wc.writeNode(w, n.severity); err != nil {
			return err
		}
	}
	if k.HasSlot(SRef) {
		if err := wc.writeNode(w, n.ref); err != nil {
			return err
		}
	}
	if k.HasSlot(SName) {
		if err := wc.writeNode(w, n.name); err != nil {
			return err
		}
	}
	if k.HasSlot(SSpec) {
		if err := wc.writeNode(w, n.spec); err != nil {
			return err
		}
	}
	if k.HasSlot(SReject) {
		if err := wc.writeNode(w, n.reject); err != nil {
			return err
		}
	}
	if k.HasSlot(SLeft) {
		if err := wc.writeNode(w, n.left); err != nil {
			return err
		}
	}
	if k.HasSlot(SRight) {
		if err := wc.writeNode(w, n.right); err != nil {
			return err
		}
	}
	if k.HasSlot(SRange) {
		if err := wc.writeRange(w, n.rng); err != nil {
			return err
		}
	}
	if k.HasSlot(SLiteral) {
		if err := wc.writeLiteral(w, n.lit); err != nil {
			return err
		}
	}
	return nil
}

func (wc *writeCtx) writeSeq(w *fbuf.Writer, nodes []*Node) error {
	if err := w.PutUint(uint64(len(nodes))); err != nil {
		return err
	}
	for _, c := range nodes {
		if err := wc.writeNode(w, c); err != nil {
			return err
		}
	}
	return nil
}

func (wc *writeCtx) writeIdentOpt(w *fbuf.Writer, id Ident) error {
	if id == nil {
		return w.WriteRaw([]byte{0})
	}
	if err := w.WriteRaw([]byte{1}); err != nil {
		return err
	}
	return w.WriteString(id.Name())
}

// writeTypeOpt persists only a type's display name. Full TypeRef identity
// (spec §3.2's "attached by reference, shared, never copied") belongs to
// the semantic analyzer collaborator (spec §6); a stream round-trip
// reconstructs an opaque stand-in type carrying the same name rather than
// the original shared TypeRef.
func (wc *writeCtx) writeTypeOpt(w *fbuf.Writer, t TypeRef) error {
	if !t.IsValid() {
		return w.WriteRaw([]byte{0})
	}
	if err := w.WriteRaw([]byte{1}); err != nil {
		return err
	}
	return w.WriteString(t.Name())
}

func (wc *writeCtx) writeParams(w *fbuf.Writer, params []Param) error {
	if err := w.PutUint(uint64(len(params))); err != nil {
		return err
	}
	for _, p := range params {
		if err := w.WriteRaw([]byte{byte(p.Kind)}); err != nil {
			return err
		}
		if err := w.PutUint(uint64(p.Pos)); err != nil {
			return err
		}
		if err := wc.writeIdentOpt(w, p.Name); err != nil {
			return err
		}
		if err := wc.writeNode(w, p.Value); err != nil {
			return err
		}
		if err := wc.writeRange(w, p.Range); err != nil {
			return err
		}
	}
	return nil
}

func (wc *writeCtx) writeAssocs(w *fbuf.Writer, assocs []Assoc) error {
	if err := w.PutUint(uint64(len(assocs))); err != nil {
		return err
	}
	for _, a := range assocs {
		if err := w.WriteRaw([]byte{byte(a.Kind)}); err != nil {
			return err
		}
		if err := w.PutUint(uint64(a.Pos)); err != nil {
			return err
		}
		if err := wc.writeIdentOpt(w, a.Name); err != nil {
			return err
		}
		if err := wc.writeRange(w, a.Range); err != nil {
			return err
		}
		if err := wc.writeNode(w, a.Value); err != nil {
			return err
		}
	}
	return nil
}

func (wc *writeCtx) writeRange(w *fbuf.Writer, r *Range) error {
	if r == nil {
		return w.WriteRaw([]byte{0})
	}
	if err := w.WriteRaw([]byte{1, byte(r.Kind)}); err != nil {
		return err
	}
	if err := wc.writeNode(w, r.Left); err != nil {
		return err
	}
	return wc.writeNode(w, r.Right)
}

func (wc *writeCtx) writeLiteral(w *fbuf.Writer, l *Literal) error {
	if l == nil {
		return w.WriteRaw([]byte{0})
	}
	if err := w.WriteRaw([]byte{1, byte(l.Kind)}); err != nil {
		return err
	}
	switch l.Kind {
	case LiteralInt, LiteralPhysical:
		return w.WriteU64(uint64(l.Int))
	case LiteralReal:
		return w.WriteU64(math.Float64bits(l.Real))
	case LiteralString, LiteralChar:
		return w.WriteString(l.Str)
	case LiteralNull:
		return nil
	default:
		return fmt.Errorf("%w: unknown literal kind %d", ErrCorrupt, l.Kind)
	}
}

// ReadCtx holds the state needed to read a stream of trees that may share
// structure or cross-reference nodes read earlier in the same stream.
type ReadCtx struct {
	arena   *Arena
	locs    *loc.ReadCtx
	byIndex []*Node
}

// NewReadCtx reads the leading file table and prepares to read one or more
// trees that reference it.
func NewReadCtx(r *fbuf.Reader, arena *Arena, reg *loc.FileRegistry) (*ReadCtx, error) {
	lc, err := loc.NewReadCtx(r, reg)
	if err != nil {
		return nil, err
	}
	return &ReadCtx{arena: arena, locs: lc}, nil
}

// Read deserializes one tree from r using rc's arena and file table.
func Read(r *fbuf.Reader, rc *ReadCtx) (*Node, error) {
	return rc.readNode(r)
}

func (rc *ReadCtx) readNode(r *fbuf.Reader) (*Node, error) {
	var mb [1]byte
	if err := r.ReadRaw(mb[:]); err != nil {
		return nil, err
	}
	switch mb[0] {
	case markerNull:
		return nil, nil
	case markerBackref:
		idx, err := r.GetUint()
		if err != nil {
			return nil, err
		}
		if int(idx) >= len(rc.byIndex) {
			return nil, fmt.Errorf("%w: back-reference %d out of range", ErrCorrupt, idx)
		}
		return rc.byIndex[idx], nil
	}

	k := Kind(mb[0])
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("%w: unknown kind byte %d", ErrCorrupt, mb[0])
	}
	n := rc.arena.New(k)
	rc.byIndex = append(rc.byIndex, n)

	l, err := rc.locs.ReadLoc(r)
	if err != nil {
		return nil, err
	}
	n.loc = l

	if n.ident, err = rc.readIdentOpt(r); err != nil {
		return nil, err
	}
	if n.ident2, err = rc.readIdentOpt(r); err != nil {
		return nil, err
	}
	if n.typ, err = rc.readTypeOpt(r); err != nil {
		return nil, err
	}
	flags, err := r.GetUint()
	if err != nil {
		return nil, err
	}
	n.flags = Flags(flags)

	if k.HasSlot(SPorts) {
		if n.ports, err = rc.readSeq(r); err != nil {
			return nil, err
		}
	}
	if k.HasSlot(SGenerics) {
		if n.generics, err = rc.readSeq(r); err != nil {
			return nil, err
		}
	}
	if k.HasSlot(SDecls) {
		if n.decls, err = rc.readSeq(r); err != nil {
			return nil, err
		}
	}
	if k.HasSlot(SStmts) {
		if n.stmts, err = rc.readSeq(r); err != nil {
			return nil, err
		}
	}
	if k.HasSlot(SElseStmts) {
		if n.elseStmts, err = rc.readSeq(r); err != nil {
			return nil, err
		}
	}
	if k.HasSlot(STriggers) {
		if n.triggers, err = rc.readSeq(r); err != nil {
			return nil, err
		}
	}
	if k.HasSlot(SWaveforms) {
		if n.waveforms, err = rc.readSeq(r); err != nil {
			return nil, err
		}
	}
	if k.HasSlot(SDrivers) {
		if n.drivers, err = rc.readSeq(r); err != nil {
			return nil, err
		}
	}
	if k.HasSlot(SContexts) {
		if n.contexts, err = rc.readSeq(r); err != nil {
			return nil, err
		}
	}
	if k.HasSlot(SParams) {
		if n.params, err = rc.readParams(r); err != nil {
			return nil, err
		}
	}
	if k.HasSlot(SGenmaps) {
		if n.genmaps, err = rc.readParams(r); err != nil {
			return nil, err
		}
	}
	if k.HasSlot(SAssocs) {
		if n.assocs, err = rc.readAssocs(r); err != nil {
			return nil, err
		}
	}
	if k.HasSlot(STarget) {
		if n.target, err = rc.readNode(r); err != nil {
			return nil, err
		}
	}
	if k.HasSlot(SValue) {
		if n.value, err = rc.readNode(r); err != nil {
			return nil, err
		}
	}
	if k.HasSlot(SDelay) {
		if n.delay, err = rc.readNode(r); err != nil {
			return nil, err
		}
	}
	if k.HasSlot(SMessage) {
		if n.message, err = rc.readNode(r); err != nil {
			return nil, err
		}
	}
	if k.HasSlot(SSeverity) {
		if n.severity, err = rc.readNode(r); err != nil {
			return nil, err
		}
	}
	if k.HasSlot(SRef) {
		if n.ref, err = rc.readNode(r); err != nil {
			return nil, err
		}
	}
	if k.HasSlot(SName) {
		if n.name, err = rc.readNode(r); err != nil {
			return nil, err
		}
	}
	if k.HasSlot(SSpec) {
		if n.spec, err = rc.readNode(r); err != nil {
			return nil, err
		}
	}
	if k.HasSlot(SReject) {
		if n.reject, err = rc.readNode(r); err != nil {
			return nil, err
		}
	}
	if k.HasSlot(SLeft) {
		if n.left, err = rc.readNode(r); err != nil {
			return nil, err
		}
	}
	if k.HasSlot(SRight) {
		if n.right, err = rc.readNode(r); err != nil {
			return nil, err
		}
	}
	if k.HasSlot(SRange) {
		if n.rng, err = rc.readRange(r); err != nil {
			return nil, err
		}
	}
	if k.HasSlot(SLiteral) {
		if n.lit, err = rc.readLiteral(r); err != nil {
			return nil, err
		}
	}
	return n, nil
}

func (rc *ReadCtx) readSeq(r *fbuf.Reader) ([]*Node, error) {
	count, err := r.GetUint()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	out := make([]*Node, count)
	for i := range out {
		out[i], err = rc.readNode(r)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (rc *ReadCtx) readIdentOpt(r *fbuf.Reader) (Ident, error) {
	var pb [1]byte
	if err := r.ReadRaw(pb[:]); err != nil {
		return nil, err
	}
	if pb[0] == 0 {
		return nil, nil
	}
	s, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	return Intern(s), nil
}

func (rc *ReadCtx) readTypeOpt(r *fbuf.Reader) (TypeRef, error) {
	var pb [1]byte
	if err := r.ReadRaw(pb[:]); err != nil {
		return NoType, err
	}
	if pb[0] == 0 {
		return NoType, nil
	}
	s, err := r.ReadString()
	if err != nil {
		return NoType, err
	}
	return NewOpaqueType(s), nil
}

func (rc *ReadCtx) readParams(r *fbuf.Reader) ([]Param, error) {
	count, err := r.GetUint()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	out := make([]Param, count)
	for i := range out {
		var kb [1]byte
		if err := r.ReadRaw(kb[:]); err != nil {
			return nil, err
		}
		pos, err := r.GetUint()
		if err != nil {
			return nil, err
		}
		name, err := rc.readIdentOpt(r)
		if err != nil {
			return nil, err
		}
		value, err := rc.readNode(r)
		if err != nil {
			return nil, err
		}
		rng, err := rc.readRange(r)
		if err != nil {
			return nil, err
		}
		out[i] = Param{Kind: ParamKind(kb[0]), Pos: int(pos), Name: name, Value: value, Range: rng}
	}
	return out, nil
}

func (rc *ReadCtx) readAssocs(r *fbuf.Reader) ([]Assoc, error) {
	count, err := r.GetUint()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	out := make([]Assoc, count)
	for i := range out {
		var kb [1]byte
		if err := r.ReadRaw(kb[:]); err != nil {
			return nil, err
		}
		pos, err := r.GetUint()
		if err != nil {
			return nil, err
		}
		name, err := rc.readIdentOpt(r)
		if err != nil {
			return nil, err
		}
		rng, err := rc.readRange(r)
		if err != nil {
			return nil, err
		}
		value, err := rc.readNode(r)
		if err != nil {
			return nil, err
		}
		out[i] = Assoc{Kind: AssocKind(kb[0]), Pos: int(pos), Name: name, Range: rng, Value: value}
	}
	return out, nil
}

func (rc *ReadCtx) readRange(r *fbuf.Reader) (*Range, error) {
	var pb [1]byte
	if err := r.ReadRaw(pb[:]); err != nil {
		return nil, err
	}
	if pb[0] == 0 {
		return nil, nil
	}
	var kb [1]byte
	if err := r.ReadRaw(kb[:]); err != nil {
		return nil, err
	}
	left, err := rc.readNode(r)
	if err != nil {
		return nil, err
	}
	right, err := rc.readNode(r)
	if err != nil {
		return nil, err
	}
	return &Range{Kind: RangeKind(kb[0]), Left: left, Right: right}, nil
}

func (rc *ReadCtx) readLiteral(r *fbuf.Reader) (*Literal, error) {
	var pb [1]byte
	if err := r.ReadRaw(pb[:]); err != nil {
		return nil, err
	}
	if pb[0] == 0 {
		return nil, nil
	}
	var kb [1]byte
	if err := r.ReadRaw(kb[:]); err != nil {
		return nil, err
	}
	lk := LiteralKind(kb[0])
	lit := &Literal{Kind: lk}
	switch lk {
	case LiteralInt, LiteralPhysical:
		v, err := r.ReadU64()
		if err != nil {
			return nil, err
		}
		lit.Int = int64(v)
	case LiteralReal:
		v, err := r.ReadU64()
		if err != nil {
			return nil, err
		}
		lit.Real = math.Float64frombits(v)
	case LiteralString, LiteralChar:
		s, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		lit.Str = s
	case LiteralNull:
	default:
		return nil, fmt.Errorf("%w: unknown literal kind %d", ErrCorrupt, kb[0])
	}
	return lit, nil
}
