// Package fixture builds synthetic package files byte-for-byte for tests.
//
// A Names table is shared between the Stream builders that produce export
// data and the Package builder that lays out the file:
//
//	names := fixture.NewNames()
//	s := fixture.NewStream(names)
//	s.Int("NodePosX", 120)
//	s.None()
//
//	p := fixture.NewPackage(names)
//	p.Exports = []fixture.Export{{Name: "K2Node_Event_0", Class: -1, Data: s.Bytes()}}
//	data := p.Build()
package fixture

// Names is a growing name table. Indices are assigned in first-use order.
type Names struct {
	list  []string
	index map[string]int32
}

// Reserved is always name 0. A stream tag word of zero reads as padding, so
// no tag may use index 0.
const Reserved = "/Script/CoreUObject"

// NewNames creates a table holding Reserved followed by initial in order.
func NewNames(initial ...string) *Names {
	n := &Names{index: make(map[string]int32)}
	n.Index(Reserved)
	for _, s := range initial {
		n.Index(s)
	}
	return n
}

// Index returns the index of s, adding it when missing.
func (n *Names) Index(s string) int32 {
	if i, ok := n.index[s]; ok {
		return i
	}
	i := int32(len(n.list))
	n.list = append(n.list, s)
	n.index[s] = i
	return i
}

// Resolve returns the text at i, or "" outside the table.
func (n *Names) Resolve(i int32) string {
	if i < 0 || int(i) >= len(n.list) {
		return ""
	}
	return n.list[i]
}

// List returns the names in index order.
func (n *Names) List() []string {
	out := make([]string, len(n.list))
	copy(out, n.list)
	return out
}

// Len returns the number of names.
func (n *Names) Len() int {
	return len(n.list)
}
