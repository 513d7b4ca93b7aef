// Package fbuf implements the narrow byte-stream codec that backs both the
// location table and the tree IR's on-disk format: fixed-width u16/u64
// fields, unsigned LEB128 varints, and raw byte runs, all multiplexed on a
// single stream. See spec.md §4.4 and §6.
package fbuf

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// Writer accumulates bytes for a single fbuf stream.
type Writer struct {
	w   io.Writer
	buf [binary.MaxVarintLen64]byte
	n   int64
}

// NewWriter wraps w for fbuf output.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int64 { return w.n }

// WriteU16 writes a fixed-width big-endian 16-bit field.
func (w *Writer) WriteU16(v uint16) error {
	binary.BigEndian.PutUint16(w.buf[:2], v)
	return w.write(w.buf[:2])
}

// WriteU64 writes a fixed-width big-endian 64-bit field.
func (w *Writer) WriteU64(v uint64) error {
	binary.BigEndian.PutUint64(w.buf[:8], v)
	return w.write(w.buf[:8])
}

// PutUint writes v as an unsigned LEB128 varint.
func (w *Writer) PutUint(v uint64) error {
	n := binary.PutUvarint(w.buf[:], v)
	return w.write(w.buf[:n])
}

// WriteRaw writes b verbatim with no length prefix.
func (w *Writer) WriteRaw(b []byte) error {
	return w.write(b)
}

// WriteString writes a uleb128 length prefix followed by the raw bytes of s.
func (w *Writer) WriteString(s string) error {
	if err := w.PutUint(uint64(len(s))); err != nil {
		return err
	}
	return w.write([]byte(s))
}

func (w *Writer) write(b []byte) error {
	n, err := w.w.Write(b)
	w.n += int64(n)
	if err != nil {
		return fmt.Errorf("fbuf: write: %w", err)
	}
	return nil
}

// Reader consumes bytes from a single fbuf stream.
type Reader struct {
	r *bufio.Reader
}

// NewReader wraps r for fbuf input.
func NewReader(r io.Reader) *Reader {
	if br, ok := r.(*bufio.Reader); ok {
		return &Reader{r: br}
	}
	return &Reader{r: bufio.NewReader(r)}
}

// ReadU16 reads a fixed-width big-endian 16-bit field.
func (r *Reader) ReadU16() (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r.r, buf[:]); err != nil {
		return 0, fmt.Errorf("fbuf: read u16: %w", err)
	}
	return binary.BigEndian.Uint16(buf[:]), nil
}

// ReadU64 reads a fixed-width big-endian 64-bit field.
func (r *Reader) ReadU64() (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r.r, buf[:]); err != nil {
		return 0, fmt.Errorf("fbuf: read u64: %w", err)
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}

// GetUint reads an unsigned LEB128 varint.
func (r *Reader) GetUint() (uint64, error) {
	v, err := binary.ReadUvarint(r.r)
	if err != nil {
		return 0, fmt.Errorf("fbuf: read varint: %w", err)
	}
	return v, nil
}

// ReadRaw reads exactly len(b) bytes into b.
func (r *Reader) ReadRaw(b []byte) error {
	if _, err := io.ReadFull(r.r, b); err != nil {
		return fmt.Errorf("fbuf: read raw: %w", err)
	}
	return nil
}

// ReadString reads a uleb128 length prefix followed by that many raw bytes.
func (r *Reader) ReadString() (string, error) {
	n, err := r.GetUint()
	if err != nil {
		return "", err
	}
	b := make([]byte, n)
	if err := r.ReadRaw(b); err != nil {
		return "", err
	}
	return string(b), nil
}
