package binary

import (
	"bytes"
	"encoding/binary"
	"math"
	"strconv"

	"github.com/wippyai/uasset/errors"
	"github.com/wippyai/uasset/guid"
)

// Cursor is a bounds-checked sequential reader over an immutable buffer.
//
// Positions are absolute offsets into the underlying buffer, including for
// cursors returned by Window, so error offsets always point into the file.
type Cursor struct {
	buf   []byte
	pos   int
	start int
	end   int
}

// NewCursor creates a Cursor over the whole buffer.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf, end: len(buf)}
}

// Window returns a cursor restricted to [start, start+size) of this cursor's
// range. The new cursor starts at start and shares the buffer.
func (c *Cursor) Window(start, size int64) (*Cursor, error) {
	if start < int64(c.start) || size < 0 || start > int64(c.end) || size > int64(c.end)-start {
		remaining := int64(c.end) - start
		if remaining < 0 {
			remaining = 0
		}
		return nil, errors.OutOfBounds(errors.PhaseRead, start, size, remaining)
	}
	return &Cursor{buf: c.buf, pos: int(start), start: int(start), end: int(start + size)}, nil
}

// Position returns the current absolute byte position.
func (c *Cursor) Position() int64 {
	return int64(c.pos)
}

// Start returns the first readable position.
func (c *Cursor) Start() int64 {
	return int64(c.start)
}

// End returns the exclusive end of the readable range.
func (c *Cursor) End() int64 {
	return int64(c.end)
}

// Remaining returns the number of unread bytes before End.
func (c *Cursor) Remaining() int64 {
	return int64(c.end - c.pos)
}

// Buffer returns the underlying buffer. Callers must not modify it.
func (c *Cursor) Buffer() []byte {
	return c.buf
}

// Seek repositions the cursor absolutely. pos may equal End.
func (c *Cursor) Seek(pos int64) error {
	if pos < int64(c.start) || pos > int64(c.end) {
		return errors.New(errors.PhaseRead, errors.KindOutOfBounds).
			Offset(pos).
			Detail("seek outside [%d, %d]", c.start, c.end).
			Build()
	}
	c.pos = int(pos)
	return nil
}

// Skip advances the cursor by n bytes.
func (c *Cursor) Skip(n int64) error {
	if err := c.need(n); err != nil {
		return err
	}
	c.pos += int(n)
	return nil
}

func (c *Cursor) need(n int64) error {
	if n < 0 || n > int64(c.end-c.pos) {
		return errors.OutOfBounds(errors.PhaseRead, int64(c.pos), n, int64(c.end-c.pos))
	}
	return nil
}

func (c *Cursor) take(n int64) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	b := c.buf[c.pos : c.pos+int(n)]
	c.pos += int(n)
	return b, nil
}

// ReadU8 reads one byte.
func (c *Cursor) ReadU8() (uint8, error) {
	b, err := c.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadI8 reads one signed byte.
func (c *Cursor) ReadI8() (int8, error) {
	v, err := c.ReadU8()
	return int8(v), err
}

// ReadU16 reads a little-endian uint16.
func (c *Cursor) ReadU16() (uint16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadI16 reads a little-endian int16.
func (c *Cursor) ReadI16() (int16, error) {
	v, err := c.ReadU16()
	return int16(v), err
}

// ReadU32 reads a little-endian uint32.
func (c *Cursor) ReadU32() (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadI32 reads a little-endian int32.
func (c *Cursor) ReadI32() (int32, error) {
	v, err := c.ReadU32()
	return int32(v), err
}

// ReadU64 reads a little-endian uint64.
func (c *Cursor) ReadU64() (uint64, error) {
	b, err := c.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadI64 reads a little-endian int64.
func (c *Cursor) ReadI64() (int64, error) {
	v, err := c.ReadU64()
	return int64(v), err
}

// ReadLE64 assembles eight bytes into a uint64 one byte at a time, least
// significant first. Export serial sizes and offsets go through this path.
func (c *Cursor) ReadLE64() (uint64, error) {
	b, err := c.take(8)
	if err != nil {
		return 0, err
	}
	var v uint64
	for i := 0; i < 8; i++ {
		v |= uint64(b[i]) << (8 * uint(i))
	}
	return v, nil
}

// ReadF32 reads a little-endian IEEE-754 float32.
func (c *Cursor) ReadF32() (float32, error) {
	v, err := c.ReadU32()
	return math.Float32frombits(v), err
}

// ReadF64 reads a little-endian IEEE-754 float64.
func (c *Cursor) ReadF64() (float64, error) {
	v, err := c.ReadU64()
	return math.Float64frombits(v), err
}

// ReadBytes returns an owned copy of the next n bytes.
func (c *Cursor) ReadBytes(n int64) ([]byte, error) {
	b, err := c.take(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

// ReadFString reads a length-prefixed string.
//
// A positive length L covers L single-byte characters including the
// terminating NUL. A negative length covers -L two-byte units including a NUL
// unit; each unit is narrowed to its low byte, which loses anything outside
// Latin-1. Trailing NULs are trimmed.
func (c *Cursor) ReadFString() (string, error) {
	start := c.pos
	n, err := c.ReadI32()
	if err != nil {
		return "", err
	}

	switch {
	case n == 0:
		return "", nil
	case n > 0:
		b, err := c.take(int64(n))
		if err != nil {
			c.pos = start
			return "", err
		}
		return string(bytes.TrimRight(b[:n-1], "\x00")), nil
	default:
		units := -int64(n)
		b, err := c.take(units * 2)
		if err != nil {
			c.pos = start
			return "", err
		}
		out := make([]byte, 0, units-1)
		for i := int64(0); i < units-1; i++ {
			out = append(out, b[i*2])
		}
		return string(bytes.TrimRight(out, "\x00")), nil
	}
}

// ReadGUID reads sixteen raw bytes. Rendering order is chosen by the caller.
func (c *Cursor) ReadGUID() (guid.GUID, error) {
	var g guid.GUID
	b, err := c.take(guid.Size)
	if err != nil {
		return g, err
	}
	copy(g[:], b)
	return g, nil
}

// ReadNameRef reads an 8-byte name reference.
func (c *Cursor) ReadNameRef() (NameRef, error) {
	v, err := c.ReadLE64()
	if err != nil {
		return NameRef{}, err
	}
	return SplitNameRef(v), nil
}

// SkipPadding consumes zero bytes one at a time and steps back onto the
// first non-zero byte. It stops at End without error and returns the number
// of zero bytes skipped.
func (c *Cursor) SkipPadding() int {
	skipped := 0
	for c.pos < c.end {
		b := c.buf[c.pos]
		c.pos++
		if b != 0 {
			c.pos--
			break
		}
		skipped++
	}
	return skipped
}

// NameRef is a name table reference: the low 32 bits index the table, the
// high 32 bits carry the instance number.
type NameRef struct {
	Index  int32 `json:"index"`
	Number int32 `json:"number,omitempty"`
}

// SplitNameRef splits a raw 8-byte name value.
func SplitNameRef(v uint64) NameRef {
	return NameRef{Index: int32(uint32(v)), Number: int32(uint32(v >> 32))}
}

// Display resolves the reference through resolve and appends the instance
// suffix. Number N > 0 renders as base_(N-1); an unresolvable index yields "".
func (r NameRef) Display(resolve func(int32) string) string {
	base := resolve(r.Index)
	if r.Number <= 0 || base == "" {
		return base
	}
	return base + "_" + strconv.Itoa(int(r.Number-1))
}
