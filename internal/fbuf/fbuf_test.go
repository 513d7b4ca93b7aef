package fbuf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.WriteU16(0xF00F))
	require.NoError(t, w.PutUint(3))
	require.NoError(t, w.WriteString("entity.vhd"))
	require.NoError(t, w.WriteU64(0x1122334455667788))
	require.NoError(t, w.WriteRaw([]byte{1, 2, 3}))

	r := NewReader(&buf)

	u16, err := r.ReadU16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0xF00F), u16)

	n, err := r.GetUint()
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	s, err := r.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "entity.vhd", s)

	u64, err := r.ReadU64()
	require.NoError(t, err)
	assert.Equal(t, uint64(0x1122334455667788), u64)

	raw := make([]byte, 3)
	require.NoError(t, r.ReadRaw(raw))
	assert.Equal(t, []byte{1, 2, 3}, raw)
}

func TestLenTracksBytesWritten(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteU16(1))
	assert.EqualValues(t, 2, w.Len())
	require.NoError(t, w.WriteU64(1))
	assert.EqualValues(t, 10, w.Len())
}
