package loc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackUnpack(t *testing.T) {
	l := New(7, 10, 3, 12, 5)
	assert.Equal(t, 10, l.FirstLine())
	assert.Equal(t, 3, l.FirstColumn())
	assert.Equal(t, 2, l.LineDelta())
	assert.Equal(t, 2, l.ColumnDelta())
	assert.Equal(t, FileRef(7), l.File())
	assert.True(t, l.IsValid())
}

func TestSaturatesToInvalidOnOverflow(t *testing.T) {
	l := New(0, firstLineMask+1, 0, 0, 0)
	assert.False(t, l.IsValid())
}

func TestDeltaSaturation(t *testing.T) {
	l := New(0, 1, 0, 1+lineDeltaMask+5, 0)
	assert.Equal(t, lineDeltaMask, l.LineDelta())
}

func TestInvalidSentinel(t *testing.T) {
	assert.False(t, Invalid.IsValid())
	assert.Equal(t, InvalidFileRef, Invalid.File())
}

func TestCanonicalCollapsesSlashes(t *testing.T) {
	assert.Equal(t, "/a/b/c.vhd", canonical("/a//b///c.vhd"))
}

func TestRegistryDedupesByCanonicalName(t *testing.T) {
	reg := NewFileRegistry()
	a := reg.Register("/src//top.vhd")
	b := reg.Register("/src/top.vhd")
	assert.Equal(t, a, b)
	assert.Equal(t, 1, reg.Len())
}

func TestRegistryAssignsStableRefs(t *testing.T) {
	reg := NewFileRegistry()
	a := reg.Register("a.vhd")
	b := reg.Register("b.vhd")
	assert.NotEqual(t, a, b)
	assert.Equal(t, "a.vhd", reg.Name(a))
	assert.Equal(t, "b.vhd", reg.Name(b))
}
