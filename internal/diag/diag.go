package diag

import (
	"fmt"
	"sort"

	"github.com/termfx/vhdlcore/internal/loc"
)

// Hint is a secondary location attached to a Diag: "also see here", an
// alternate fix location, or a step of a trace. Priority orders hints that
// land on the same source line when rendering (spec.md §4.3).
type Hint struct {
	Loc      loc.Loc
	Text     string
	Priority int
}

// Diag is one coalesced diagnostic message: a primary location and level,
// plus zero or more hints and an optional call trace (spec.md §3.3).
type Diag struct {
	Level Level
	Loc   loc.Loc
	Text  string
	Hints []Hint
	Trace []loc.Loc
}

// New constructs a Diag at the given level and location.
func New(level Level, l loc.Loc, format string, args ...any) *Diag {
	return &Diag{Level: level, Loc: l, Text: fmt.Sprintf(format, args...)}
}

// Hint appends a secondary location to d, coalescing with an existing hint
// at the exact same location instead of duplicating it (spec.md §4.3:
// "multiple hints at one location are merged into a single rendered
// annotation").
func (d *Diag) Hint(l loc.Loc, format string, args ...any) *Diag {
	text := fmt.Sprintf(format, args...)
	for i := range d.Hints {
		if d.Hints[i].Loc == l {
			d.Hints[i].Text += "; " + text
			return d
		}
	}
	d.Hints = append(d.Hints, Hint{Loc: l, Text: text, Priority: len(d.Hints)})
	return d
}

// AddTrace appends one frame of a call/elaboration trace to d, rendered
// after hints in the order appended (spec.md §4.3).
func (d *Diag) AddTrace(l loc.Loc) *Diag {
	d.Trace = append(d.Trace, l)
	return d
}

// sortedHints returns d.Hints ordered by file, then line, then priority —
// the order Emit renders them in regardless of the order they were added.
func (d *Diag) sortedHints() []Hint {
	out := make([]Hint, len(d.Hints))
	copy(out, d.Hints)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Loc, out[j].Loc
		if a.File() != b.File() {
			return a.File() < b.File()
		}
		if a.FirstLine() != b.FirstLine() {
			return a.FirstLine() < b.FirstLine()
		}
		return out[i].Priority < out[j].Priority
	})
	return out
}
