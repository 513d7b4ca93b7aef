// Package loc implements spec.md §3.1 and §4.4: a packed 64-bit source
// location, an interned file registry backing both diagnostics and tree IR
// serialization, and the on-disk location-table format.
package loc

import "fmt"

// Loc is a packed source location: {first_line:20, first_column:12,
// line_delta:8, column_delta:8, file_ref:16}, most-significant field first.
type Loc uint64

const (
	fileRefBits  = 16
	colDeltaBits = 8
	lineDeltaBits = 8
	firstColBits  = 12
	firstLineBits = 20

	fileRefShift  = 0
	colDeltaShift = fileRefShift + fileRefBits
	lineDeltaShift = colDeltaShift + colDeltaBits
	firstColShift  = lineDeltaShift + lineDeltaBits
	firstLineShift = firstColShift + firstColBits

	fileRefMask  = 1<<fileRefBits - 1
	colDeltaMask = 1<<colDeltaBits - 1
	lineDeltaMask = 1<<lineDeltaBits - 1
	firstColMask  = 1<<firstColBits - 1
	firstLineMask = 1<<firstLineBits - 1

	// InvalidFileRef marks a Loc with no associated file.
	InvalidFileRef FileRef = fileRefMask
	// InvalidLine marks a Loc whose first_line field overflowed 20 bits.
	InvalidLine = firstLineMask
)

// FileRef is a stable index into a FileRegistry.
type FileRef uint16

// Invalid is the zero-information location: invalid file ref and line.
var Invalid = pack(InvalidLine, 0, 0, 0, InvalidFileRef)

// New constructs a Loc spanning [firstLine:firstCol, lastLine:lastCol] in
// file. A negative or overflowing first line, or a negative first column,
// yields Invalid; an oversized first column, line delta or column delta is
// clamped to its field's maximum, and a negative delta to zero.
func New(file FileRef, firstLine, firstCol, lastLine, lastCol int) Loc {
	if firstLine < 0 || firstLine >= firstLineMask || firstCol < 0 {
		return Invalid
	}
	if firstCol > firstColMask {
		firstCol = firstColMask
	}
	lineDelta := lastLine - firstLine
	if lineDelta < 0 {
		lineDelta = 0
	}
	if lineDelta > lineDeltaMask {
		lineDelta = lineDeltaMask
	}
	colDelta := lastCol - firstCol
	if colDelta < 0 {
		colDelta = 0
	}
	if colDelta > colDeltaMask {
		colDelta = colDeltaMask
	}
	return pack(uint32(firstLine), uint32(firstCol), uint32(lineDelta), uint32(colDelta), file)
}

func pack(firstLine, firstCol, lineDelta, colDelta uint32, file FileRef) Loc {
	var v uint64
	v |= uint64(firstLine&firstLineMask) << firstLineShift
	v |= uint64(firstCol&firstColMask) << firstColShift
	v |= uint64(lineDelta&lineDeltaMask) << lineDeltaShift
	v |= uint64(colDelta&colDeltaMask) << colDeltaShift
	v |= uint64(file) << fileRefShift
	return Loc(v)
}

// FirstLine returns the 1-based starting line, or InvalidLine.
func (l Loc) FirstLine() int { return int((uint64(l) >> firstLineShift) & firstLineMask) }

// FirstColumn returns the 0-based starting column.
func (l Loc) FirstColumn() int { return int((uint64(l) >> firstColShift) & firstColMask) }

// LineDelta returns the number of lines the range spans beyond FirstLine.
func (l Loc) LineDelta() int { return int((uint64(l) >> lineDeltaShift) & lineDeltaMask) }

// ColumnDelta returns the number of columns the range spans beyond FirstColumn
// (interpreted against the last line when LineDelta > 0).
func (l Loc) ColumnDelta() int { return int((uint64(l) >> colDeltaShift) & colDeltaMask) }

// File returns the file reference, or InvalidFileRef.
func (l Loc) File() FileRef { return FileRef(uint64(l) & fileRefMask) }

// LastLine returns FirstLine()+LineDelta().
func (l Loc) LastLine() int { return l.FirstLine() + l.LineDelta() }

// LastColumn returns FirstColumn()+ColumnDelta().
func (l Loc) LastColumn() int { return l.FirstColumn() + l.ColumnDelta() }

// IsValid reports whether l carries a real file and line.
func (l Loc) IsValid() bool {
	return l.File() != InvalidFileRef && l.FirstLine() != InvalidLine
}

// withFile returns a copy of l re-targeted at a different file reference,
// used when remapping locations read from a persisted stream (spec §4.4).
func (l Loc) withFile(f FileRef) Loc {
	return Loc((uint64(l) &^ fileRefMask) | uint64(f))
}

func (l Loc) String() string {
	if !l.IsValid() {
		return "<invalid>"
	}
	return fmt.Sprintf("%d:%d", l.FirstLine(), l.FirstColumn())
}
