package binary

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/wippyai/uasset/guid"
)

// Writer appends little-endian values to a growing buffer. It produces the
// byte layouts Cursor reads and backs the synthetic packages used in tests.
type Writer struct {
	buf *bytes.Buffer
}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{buf: &bytes.Buffer{}}
}

// Bytes returns the written bytes.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// U8 writes a single byte.
func (w *Writer) U8(b byte) {
	w.buf.WriteByte(b)
}

// WriteBytes writes a byte slice.
func (w *Writer) WriteBytes(data []byte) {
	w.buf.Write(data)
}

// Zeros writes n zero bytes.
func (w *Writer) Zeros(n int) {
	for i := 0; i < n; i++ {
		w.buf.WriteByte(0)
	}
}

// U16 writes a little-endian uint16.
func (w *Writer) U16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf.Write(b[:])
}

// U32 writes a little-endian uint32.
func (w *Writer) U32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

// I32 writes a little-endian int32.
func (w *Writer) I32(v int32) {
	w.U32(uint32(v))
}

// U64 writes a little-endian uint64.
func (w *Writer) U64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

// I64 writes a little-endian int64.
func (w *Writer) I64(v int64) {
	w.U64(uint64(v))
}

// F32 writes a little-endian float32.
func (w *Writer) F32(v float32) {
	w.U32(math.Float32bits(v))
}

// F64 writes a little-endian float64.
func (w *Writer) F64(v float64) {
	w.U64(math.Float64bits(v))
}

// FString writes a length-prefixed single-byte string with its NUL.
// The empty string is written as a zero length.
func (w *Writer) FString(s string) {
	if s == "" {
		w.I32(0)
		return
	}
	w.I32(int32(len(s) + 1))
	w.buf.WriteString(s)
	w.buf.WriteByte(0)
}

// WideFString writes a length-prefixed two-byte string with its NUL unit.
func (w *Writer) WideFString(s string) {
	units := []rune(s)
	w.I32(-int32(len(units) + 1))
	for _, r := range units {
		w.U16(uint16(r))
	}
	w.U16(0)
}

// GUID writes the raw sixteen bytes.
func (w *Writer) GUID(g guid.GUID) {
	w.buf.Write(g[:])
}

// NameRef writes an 8-byte name reference.
func (w *Writer) NameRef(index, number int32) {
	w.U32(uint32(index))
	w.U32(uint32(number))
}

// PatchI32 overwrites four bytes at off.
func (w *Writer) PatchI32(off int, v int32) {
	binary.LittleEndian.PutUint32(w.buf.Bytes()[off:], uint32(v))
}

// PatchI64 overwrites eight bytes at off.
func (w *Writer) PatchI64(off int, v int64) {
	binary.LittleEndian.PutUint64(w.buf.Bytes()[off:], uint64(v))
}
