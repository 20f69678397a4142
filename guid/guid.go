// Package guid renders 128-bit package identifiers.
//
// Package files carry GUIDs in two conventions that were never unified:
// OrderA keeps the sixteen bytes in file order, OrderB treats them as four
// little-endian 32-bit words the way the engine's FGuid type stores them.
// Callers pick the order per call site; both render as 8-4-4-4-12 hex digits
// (byte groups 4-2-2-2-6).
package guid

import (
	"encoding/binary"
	"encoding/hex"
	"strings"
)

// Size is the encoded length of a GUID.
const Size = 16

// GUID holds the raw sixteen bytes exactly as read from the file.
type GUID [Size]byte

// Order selects a byte reordering convention.
type Order uint8

const (
	// OrderA renders the bytes in file order.
	OrderA Order = iota
	// OrderB renders four little-endian uint32 words A, B, C, D as
	// A-B.hi-B.lo-C.hi-C.lo D.
	OrderB
)

func (o Order) String() string {
	switch o {
	case OrderA:
		return "A"
	case OrderB:
		return "B"
	default:
		return "unknown"
	}
}

// Canonical returns the GUID bytes rearranged into display order.
func (g GUID) Canonical(o Order) [Size]byte {
	if o != OrderB {
		return g
	}
	var out [Size]byte
	for w := 0; w < 4; w++ {
		v := binary.LittleEndian.Uint32(g[w*4:])
		binary.BigEndian.PutUint32(out[w*4:], v)
	}
	return out
}

// Format renders the GUID in the given order, lower case unless upper is set.
func (g GUID) Format(o Order, upper bool) string {
	c := g.Canonical(o)
	var buf [36]byte
	hex.Encode(buf[0:8], c[0:4])
	buf[8] = '-'
	hex.Encode(buf[9:13], c[4:6])
	buf[13] = '-'
	hex.Encode(buf[14:18], c[6:8])
	buf[18] = '-'
	hex.Encode(buf[19:23], c[8:10])
	buf[23] = '-'
	hex.Encode(buf[24:36], c[10:16])
	s := string(buf[:])
	if upper {
		return strings.ToUpper(s)
	}
	return s
}

// String renders OrderA lower case.
func (g GUID) String() string {
	return g.Format(OrderA, false)
}

// IsZero reports whether all bytes are zero.
func (g GUID) IsZero() bool {
	return g == GUID{}
}

// MarshalText renders OrderA lower case, so GUID fields encode as JSON strings.
func (g GUID) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}
