package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/termfx/vhdlcore/internal/loc"
)

func TestHintCoalescesSameLocation(t *testing.T) {
	l := loc.New(0, 1, 0, 1, 3)
	d := New(Error, l, "bad thing")
	d.Hint(l, "first")
	d.Hint(l, "second")

	assert.Len(t, d.Hints, 1)
	assert.Equal(t, "first; second", d.Hints[0].Text)
}

func TestHintAtDifferentLocationAppends(t *testing.T) {
	l1 := loc.New(0, 1, 0, 1, 3)
	l2 := loc.New(0, 5, 0, 5, 3)
	d := New(Warn, l1, "bad thing")
	d.Hint(l1, "first")
	d.Hint(l2, "second")

	assert.Len(t, d.Hints, 2)
}

func TestSortedHintsOrderByLineThenPriority(t *testing.T) {
	lLate := loc.New(0, 10, 0, 10, 1)
	lEarly := loc.New(0, 2, 0, 2, 1)
	d := New(Note, loc.New(0, 1, 0, 1, 1), "msg")
	d.Hint(lLate, "late")
	d.Hint(lEarly, "early")

	sorted := d.sortedHints()
	assert.Equal(t, "early", sorted[0].Text)
	assert.Equal(t, "late", sorted[1].Text)
}
