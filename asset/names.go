package asset

import (
	"strconv"

	"github.com/wippyai/uasset/errors"
	"github.com/wippyai/uasset/internal/binary"
)

// NameRef is an 8-byte name table reference.
type NameRef = binary.NameRef

// NameEntry is one interned string of the name table.
type NameEntry struct {
	Text                  string `json:"text"`
	NonCasePreservingHash uint16 `json:"nonCasePreservingHash"`
	CasePreservingHash    uint16 `json:"casePreservingHash"`
}

// NameTable is the ordered list of names every other table refers to by
// index.
type NameTable struct {
	entries []NameEntry
	index   map[string]int32
}

// NewNameTable builds a table over entries. The first occurrence of a
// duplicated text wins in Lookup.
func NewNameTable(entries []NameEntry) *NameTable {
	t := &NameTable{entries: entries, index: make(map[string]int32, len(entries))}
	for i, e := range entries {
		if _, ok := t.index[e.Text]; !ok {
			t.index[e.Text] = int32(i)
		}
	}
	return t
}

// Resolve returns the text at index, or "" for any index outside the table.
func (t *NameTable) Resolve(index int32) string {
	if t == nil || index < 0 || int(index) >= len(t.entries) {
		return ""
	}
	return t.entries[index].Text
}

// Display resolves ref including its instance suffix.
func (t *NameTable) Display(ref NameRef) string {
	return ref.Display(t.Resolve)
}

// Lookup returns the index of text.
func (t *NameTable) Lookup(text string) (int32, bool) {
	if t == nil {
		return 0, false
	}
	i, ok := t.index[text]
	return i, ok
}

// Len returns the number of entries.
func (t *NameTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Entries returns a copy of the entries.
func (t *NameTable) Entries() []NameEntry {
	if t == nil {
		return nil
	}
	out := make([]NameEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Strings returns the entry texts in order.
func (t *NameTable) Strings() []string {
	out := make([]string, t.Len())
	for i := range out {
		out[i] = t.entries[i].Text
	}
	return out
}

// decodeNames reads header.NameCount entries at header.NameOffset.
func decodeNames(c *binary.Cursor, h *Header) (*NameTable, error) {
	if err := c.Seek(int64(h.NameOffset)); err != nil {
		return nil, errors.At(errors.PhaseNames, err, "names")
	}

	// Each entry takes at least 8 bytes: a length and two hashes.
	if int64(h.NameCount)*8 > c.Remaining() {
		e := errors.OutOfBounds(errors.PhaseNames, c.Position(), int64(h.NameCount)*8, c.Remaining())
		e.Path = []string{"names"}
		return nil, e
	}

	entries := make([]NameEntry, 0, h.NameCount)
	for i := int32(0); i < h.NameCount; i++ {
		var e NameEntry
		var err error
		if e.Text, err = c.ReadFString(); err == nil {
			if e.NonCasePreservingHash, err = c.ReadU16(); err == nil {
				e.CasePreservingHash, err = c.ReadU16()
			}
		}
		if err != nil {
			return nil, errors.At(errors.PhaseNames, err, "names", strconv.Itoa(int(i)))
		}
		entries = append(entries, e)
	}

	return NewNameTable(entries), nil
}
