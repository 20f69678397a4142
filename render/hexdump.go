package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/wippyai/uasset/asset"
	"github.com/wippyai/uasset/errors"
)

const dumpWidth = 16

// HexDump writes data[start:start+size] in canonical hex+ASCII form. Line
// offsets are absolute positions in data.
func HexDump(w io.Writer, data []byte, start, size int64) error {
	if start < 0 || size < 0 || start > int64(len(data)) || size > int64(len(data))-start {
		return errors.OutOfBounds(errors.PhaseRead, start, size, int64(len(data))-start)
	}

	var b strings.Builder
	for off := start; off < start+size; off += dumpWidth {
		n := min(int64(dumpWidth), start+size-off)
		dumpLine(&b, off, data[off:off+n])
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// DumpExport hex dumps the serial range of export i.
func DumpExport(w io.Writer, data []byte, pkg *asset.Package, i int) error {
	e, err := pkg.Export(i)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "export %d %s (%s) serial %#x+%d\n",
		e.Index, e.Metadata.ObjectName, e.Metadata.ObjectType, e.SerialOffset, e.SerialSize)
	return HexDump(w, data, e.SerialOffset, e.SerialSize)
}

func dumpLine(b *strings.Builder, off int64, line []byte) {
	fmt.Fprintf(b, "%08x  ", off)
	for j := 0; j < dumpWidth; j++ {
		if j < len(line) {
			fmt.Fprintf(b, "%02x ", line[j])
		} else {
			b.WriteString("   ")
		}
		if j == 7 {
			b.WriteByte(' ')
		}
	}
	b.WriteString(" |")
	for _, c := range line {
		if c < 0x20 || c > 0x7e {
			c = '.'
		}
		b.WriteByte(c)
	}
	b.WriteString("|\n")
}
