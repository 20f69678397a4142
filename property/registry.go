package property

import (
	"slices"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/uasset/internal/binary"
)

// Names resolves name table indices. Out-of-range indices resolve to "".
type Names interface {
	Resolve(index int32) string
}

// Context carries the state a decoder needs for one tag.
//
// The cursor is left at the tag's first payload byte. A decoder must leave it
// at the first byte after what it consumed; the stream continues from there.
type Context struct {
	Cursor   *binary.Cursor
	Names    Names
	Registry *Registry
	Log      *zap.Logger
	Path     []string
	Depth    int
	MaxDepth int
}

func (ctx *Context) path(name string) []string {
	out := make([]string, 0, len(ctx.Path)+1)
	out = append(out, ctx.Path...)
	return append(out, name)
}

// sub returns a context reading from c one nesting level deeper.
func (ctx *Context) sub(c *binary.Cursor, name string) *Context {
	return &Context{
		Cursor:   c,
		Names:    ctx.Names,
		Registry: ctx.Registry,
		Log:      ctx.Log,
		Path:     ctx.path(name),
		Depth:    ctx.Depth + 1,
		MaxDepth: ctx.MaxDepth,
	}
}

// Decoder interprets the payload of one tag.
//
// Decoders are stateless and shared across streams. All mutable state is
// passed via Context.
type Decoder interface {
	Decode(ctx *Context, tag *Tag) ([]Value, error)
}

// Func is an adapter to use ordinary functions as Decoders.
//
// Example:
//
//	r.RegisterType("IntProperty", property.Func(func(ctx *property.Context, tag *property.Tag) ([]property.Value, error) {
//	    v, err := ctx.Cursor.ReadI32()
//	    return []property.Value{property.Int(tag.ValueName(), int64(v))}, err
//	}))
type Func func(ctx *Context, tag *Tag) ([]Value, error)

// Decode implements Decoder.
func (f Func) Decode(ctx *Context, tag *Tag) ([]Value, error) {
	return f(ctx, tag)
}

// Element decodes one untagged element of an array, set or map.
type Element func(ctx *Context, name string) (Value, error)

// Row is a name-keyed entry. It applies only when the tag's declared shape
// matches; any other tag with the same name goes to the type table.
type Row struct {
	Type    string
	Struct  string  // required StructName or InnerType, empty for any
	Sizes   []int64 // accepted payload sizes, empty for any
	Decoder Decoder
}

// Matches reports whether tag has the declared shape of the row.
func (r Row) Matches(tag *Tag) bool {
	if tag.Type != r.Type {
		return false
	}
	if r.Struct != "" {
		switch tag.Type {
		case TypeStruct:
			if tag.StructName != r.Struct {
				return false
			}
		case TypeArray, TypeSet:
			if tag.InnerType != r.Struct {
				return false
			}
		}
	}
	if len(r.Sizes) > 0 && !slices.Contains(r.Sizes, tag.Size) {
		return false
	}
	return true
}

// Source reports which table produced a decoder.
type Source uint8

const (
	SourceNone Source = iota
	SourceName
	SourceType
)

func (s Source) String() string {
	switch s {
	case SourceName:
		return "name"
	case SourceType:
		return "type"
	default:
		return "none"
	}
}

// Registry maps property names, declared types, struct names and element
// types to decoders.
//
// Lookup is O(1) per table. A registry is safe for concurrent reads once
// populated; registration is not synchronized.
type Registry struct {
	rows     map[string]Row
	types    map[string]Decoder
	structs  map[string]Decoder
	elements map[string]Element
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		rows:     make(map[string]Row),
		types:    make(map[string]Decoder),
		structs:  make(map[string]Decoder),
		elements: make(map[string]Element),
	}
}

// RegisterName adds a name-keyed row, replacing any previous row.
func (r *Registry) RegisterName(name string, row Row) {
	r.rows[name] = row
}

// RegisterType adds a decoder for a declared type name.
func (r *Registry) RegisterType(typeName string, d Decoder) {
	r.types[typeName] = d
}

// RegisterTypeFunc registers a function as the decoder for a declared type.
func (r *Registry) RegisterTypeFunc(typeName string, fn func(*Context, *Tag) ([]Value, error)) {
	r.RegisterType(typeName, Func(fn))
}

// RegisterStruct adds a decoder for a StructProperty struct name.
func (r *Registry) RegisterStruct(structName string, d Decoder) {
	r.structs[structName] = d
}

// RegisterElement adds an untagged element decoder for a declared type.
func (r *Registry) RegisterElement(typeName string, e Element) {
	r.elements[typeName] = e
}

// Lookup returns the decoder for tag. A matching name row wins over the type
// table. A nil decoder means the stream cannot continue.
func (r *Registry) Lookup(tag *Tag) (Decoder, Source) {
	if row, ok := r.rows[tag.Name]; ok && row.Matches(tag) {
		return row.Decoder, SourceName
	}
	if d, ok := r.types[tag.Type]; ok {
		return d, SourceType
	}
	return nil, SourceNone
}

// Row returns the name-keyed row for name.
func (r *Registry) Row(name string) (Row, bool) {
	row, ok := r.rows[name]
	return row, ok
}

// Struct returns the decoder for a struct name, or nil.
func (r *Registry) Struct(name string) Decoder {
	return r.structs[name]
}

// Element returns the element decoder for a declared type, or nil.
func (r *Registry) Element(typeName string) Element {
	return r.elements[typeName]
}

// HasType returns true if a decoder is registered for the declared type.
func (r *Registry) HasType(typeName string) bool {
	_, ok := r.types[typeName]
	return ok
}

// Names returns the name-keyed rows, sorted.
func (r *Registry) Names() []string {
	return sortedKeys(r.rows)
}

// Types returns the registered declared types, sorted.
func (r *Registry) Types() []string {
	return sortedKeys(r.types)
}

// Structs returns the registered struct names, sorted.
func (r *Registry) Structs() []string {
	return sortedKeys(r.structs)
}

// MissingTypes returns the declared types in want that have no decoder.
func (r *Registry) MissingTypes(want []string) []string {
	var missing []string
	for _, t := range want {
		if !r.HasType(t) {
			missing = append(missing, t)
		}
	}
	return missing
}

// Clone returns a copy that can be extended without affecting r.
func (r *Registry) Clone() *Registry {
	out := NewRegistry()
	for k, v := range r.rows {
		out.rows[k] = v
	}
	for k, v := range r.types {
		out.types[k] = v
	}
	for k, v := range r.structs {
		out.structs[k] = v
	}
	for k, v := range r.elements {
		out.elements[k] = v
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the shared registry with every built-in decoder.
// It must not be modified; use Clone or NewDefaultRegistry to extend it.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewDefaultRegistry()
	})
	return defaultRegistry
}

// NewDefaultRegistry builds a fresh registry with every built-in decoder.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	registerTypes(r)
	registerElements(r)
	registerStructs(r)
	registerMetadata(r)
	return r
}
