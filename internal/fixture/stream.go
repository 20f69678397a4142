package fixture

import (
	"github.com/wippyai/uasset/guid"
	"github.com/wippyai/uasset/internal/binary"
)

// Stream writes a tagged-property stream.
type Stream struct {
	names *Names
	w     *binary.Writer
}

// NewStream creates an empty stream over names.
func NewStream(names *Names) *Stream {
	return &Stream{names: names, w: binary.NewWriter()}
}

// Bytes returns the stream written so far.
func (s *Stream) Bytes() []byte {
	return s.w.Bytes()
}

// Len returns the number of bytes written.
func (s *Stream) Len() int {
	return s.w.Len()
}

// Name writes an 8-byte reference to text.
func (s *Stream) Name(text string) {
	s.w.NameRef(s.names.Index(text), 0)
}

// Write appends raw bytes.
func (s *Stream) Write(b []byte) {
	s.w.WriteBytes(b)
}

// head writes name, type and the size word.
func (s *Stream) head(name, typ string, size int, arrayIndex int32) {
	s.Name(name)
	s.Name(typ)
	s.w.U32(uint32(size))
	s.w.U32(uint32(arrayIndex))
}

// Tag writes a tag without type-specific fields followed by payload.
func (s *Stream) Tag(name, typ string, payload []byte) {
	s.TagAt(name, typ, 0, payload)
}

// TagAt is Tag with a static array index.
func (s *Stream) TagAt(name, typ string, arrayIndex int32, payload []byte) {
	s.head(name, typ, len(payload), arrayIndex)
	s.w.U8(0)
	s.w.WriteBytes(payload)
}

// Int writes an IntProperty.
func (s *Stream) Int(name string, v int32) {
	p := binary.NewWriter()
	p.I32(v)
	s.Tag(name, "IntProperty", p.Bytes())
}

// Int64 writes an Int64Property.
func (s *Stream) Int64(name string, v int64) {
	p := binary.NewWriter()
	p.I64(v)
	s.Tag(name, "Int64Property", p.Bytes())
}

// Float writes a FloatProperty.
func (s *Stream) Float(name string, v float32) {
	p := binary.NewWriter()
	p.F32(v)
	s.Tag(name, "FloatProperty", p.Bytes())
}

// Double writes a DoubleProperty.
func (s *Stream) Double(name string, v float64) {
	p := binary.NewWriter()
	p.F64(v)
	s.Tag(name, "DoubleProperty", p.Bytes())
}

// Bool writes a BoolProperty; the value lives in the tag, the payload is empty.
func (s *Stream) Bool(name string, v bool) {
	s.head(name, "BoolProperty", 0, 0)
	if v {
		s.w.U8(1)
	} else {
		s.w.U8(0)
	}
	s.w.U8(0)
}

// Str writes a StrProperty.
func (s *Stream) Str(name, v string) {
	p := binary.NewWriter()
	p.FString(v)
	s.Tag(name, "StrProperty", p.Bytes())
}

// NameProp writes a NameProperty referencing v.
func (s *Stream) NameProp(name, v string) {
	p := binary.NewWriter()
	p.NameRef(s.names.Index(v), 0)
	s.Tag(name, "NameProperty", p.Bytes())
}

// Object writes an ObjectProperty holding a package index.
func (s *Stream) Object(name string, index int32) {
	p := binary.NewWriter()
	p.I32(index)
	s.Tag(name, "ObjectProperty", p.Bytes())
}

// Text writes a TextProperty with base history.
func (s *Stream) Text(name, namespace, key, source string) {
	p := binary.NewWriter()
	p.U32(0)
	p.U8(0)
	p.FString(namespace)
	p.FString(key)
	p.FString(source)
	s.Tag(name, "TextProperty", p.Bytes())
}

// Byte writes a one-byte ByteProperty.
func (s *Stream) Byte(name, enum string, v byte) {
	s.head(name, "ByteProperty", 1, 0)
	s.Name(enum)
	s.w.U8(0)
	s.w.U8(v)
}

// ByteEnum writes a ByteProperty holding an enum value name.
func (s *Stream) ByteEnum(name, enum, value string) {
	s.enum(name, "ByteProperty", enum, value)
}

// Enum writes an EnumProperty holding a value name.
func (s *Stream) Enum(name, enum, value string) {
	s.enum(name, "EnumProperty", enum, value)
}

func (s *Stream) enum(name, typ, enum, value string) {
	s.head(name, typ, 8, 0)
	s.Name(enum)
	s.w.U8(0)
	s.Name(value)
}

// Struct writes a StructProperty of structName with payload.
func (s *Stream) Struct(name, structName string, payload []byte) {
	s.head(name, "StructProperty", len(payload), 0)
	s.Name(structName)
	s.w.Zeros(guid.Size)
	s.w.U8(0)
	s.w.WriteBytes(payload)
}

// GuidStruct writes a Guid struct.
func (s *Stream) GuidStruct(name string, g guid.GUID) {
	s.Struct(name, "Guid", g[:])
}

// Nested writes a struct whose payload is the inner stream.
func (s *Stream) Nested(name, structName string, inner *Stream) {
	s.Struct(name, structName, inner.Bytes())
}

// Array writes an ArrayProperty of count elements already encoded in body.
func (s *Stream) Array(name, innerType string, count int, body []byte) {
	s.head(name, "ArrayProperty", 4+len(body), 0)
	s.Name(innerType)
	s.w.U8(0)
	s.w.I32(int32(count))
	s.w.WriteBytes(body)
}

// StructArray writes an array of structName elements with the inner element
// tag that precedes them.
func (s *Stream) StructArray(name, structName string, elems ...[]byte) {
	var size int
	for _, e := range elems {
		size += len(e)
	}

	inner := NewStream(s.names)
	inner.head(name, "StructProperty", size, 0)
	inner.Name(structName)
	inner.w.Zeros(guid.Size)
	inner.w.U8(0)
	for _, e := range elems {
		inner.w.WriteBytes(e)
	}

	s.head(name, "ArrayProperty", 4+inner.Len(), 0)
	s.Name("StructProperty")
	s.w.U8(0)
	s.w.I32(int32(len(elems)))
	s.w.WriteBytes(inner.Bytes())
}

// Map writes a MapProperty of count pairs already encoded in body.
func (s *Stream) Map(name, keyType, valueType string, count int, body []byte) {
	s.head(name, "MapProperty", 8+len(body), 0)
	s.Name(keyType)
	s.Name(valueType)
	s.w.U8(0)
	s.w.I32(0)
	s.w.I32(int32(count))
	s.w.WriteBytes(body)
}

// None writes the terminator.
func (s *Stream) None() {
	s.Name("None")
}

// Padding writes n zero bytes.
func (s *Stream) Padding(n int) {
	s.w.Zeros(n)
}

// Entity writes an entity sentinel with code in the high word followed by
// its fixed payload.
func (s *Stream) Entity(code, id int32, g guid.GUID) {
	s.w.NameRef(0, code)
	s.w.I32(0)
	s.w.I32(id)
	s.w.GUID(g)
	s.w.I32(0)
	s.w.GUID(g)
}
