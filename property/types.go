package property

import (
	"github.com/wippyai/uasset/errors"
)

// rawTypes carry payloads this package does not interpret. They are kept
// as bytes so the stream stays in sync.
var rawTypes = []string{
	TypeSet,
	"SoftObjectProperty",
	"SoftClassProperty",
	"LazyObjectProperty",
	"DelegateProperty",
	"MulticastDelegateProperty",
	"MulticastInlineDelegateProperty",
	"MulticastSparseDelegateProperty",
	"FieldPathProperty",
}

func registerTypes(r *Registry) {
	r.RegisterTypeFunc(TypeBool, decodeBool)
	r.RegisterType("Int8Property", fromElement(int8Element))
	r.RegisterType("Int16Property", fromElement(int16Element))
	r.RegisterType("IntProperty", fromElement(int32Element))
	r.RegisterType("Int64Property", fromElement(int64Element))
	r.RegisterType("UInt16Property", fromElement(uint16Element))
	r.RegisterType("UInt32Property", fromElement(uint32Element))
	r.RegisterType("UInt64Property", fromElement(uint64Element))
	r.RegisterType("FloatProperty", fromElement(floatElement))
	r.RegisterType("DoubleProperty", fromElement(doubleElement))
	r.RegisterTypeFunc(TypeByte, decodeByte)
	r.RegisterTypeFunc(TypeEnum, decodeEnum)
	r.RegisterType("StrProperty", fromElement(strElement))
	r.RegisterType("NameProperty", fromElement(nameElement))
	r.RegisterTypeFunc("TextProperty", decodeText)
	for _, t := range []string{"ObjectProperty", "ClassProperty", "WeakObjectProperty", "InterfaceProperty"} {
		r.RegisterType(t, fromElement(objectElement))
	}
	r.RegisterTypeFunc(TypeArray, decodeArray)
	r.RegisterTypeFunc(TypeMap, decodeMap)
	r.RegisterTypeFunc(TypeStruct, decodeStruct)
	for _, t := range rawTypes {
		r.RegisterTypeFunc(t, rawPayload)
	}
}

func registerElements(r *Registry) {
	r.RegisterElement(TypeBool, boolElement)
	r.RegisterElement(TypeByte, byteElement)
	r.RegisterElement("Int8Property", int8Element)
	r.RegisterElement("Int16Property", int16Element)
	r.RegisterElement("IntProperty", int32Element)
	r.RegisterElement("Int64Property", int64Element)
	r.RegisterElement("UInt16Property", uint16Element)
	r.RegisterElement("UInt32Property", uint32Element)
	r.RegisterElement("UInt64Property", uint64Element)
	r.RegisterElement("FloatProperty", floatElement)
	r.RegisterElement("DoubleProperty", doubleElement)
	r.RegisterElement("StrProperty", strElement)
	r.RegisterElement("NameProperty", nameElement)
	r.RegisterElement(TypeEnum, nameElement)
	for _, t := range []string{"ObjectProperty", "ClassProperty", "WeakObjectProperty", "InterfaceProperty"} {
		r.RegisterElement(t, objectElement)
	}
}

// fromElement turns an element decoder into a single-value type decoder.
func fromElement(e Element) Func {
	return func(ctx *Context, tag *Tag) ([]Value, error) {
		v, err := e(ctx, tag.ValueName())
		if err != nil {
			return nil, err
		}
		return []Value{v}, nil
	}
}

func boolElement(ctx *Context, name string) (Value, error) {
	b, err := ctx.Cursor.ReadU8()
	return Bool(name, b != 0), err
}

func byteElement(ctx *Context, name string) (Value, error) {
	b, err := ctx.Cursor.ReadU8()
	return Int(name, int64(b)), err
}

func int8Element(ctx *Context, name string) (Value, error) {
	v, err := ctx.Cursor.ReadI8()
	return Int(name, int64(v)), err
}

func int16Element(ctx *Context, name string) (Value, error) {
	v, err := ctx.Cursor.ReadI16()
	return Int(name, int64(v)), err
}

func int32Element(ctx *Context, name string) (Value, error) {
	v, err := ctx.Cursor.ReadI32()
	return Int(name, int64(v)), err
}

func int64Element(ctx *Context, name string) (Value, error) {
	v, err := ctx.Cursor.ReadI64()
	return Int(name, v), err
}

func uint16Element(ctx *Context, name string) (Value, error) {
	v, err := ctx.Cursor.ReadU16()
	return Int(name, int64(v)), err
}

func uint32Element(ctx *Context, name string) (Value, error) {
	v, err := ctx.Cursor.ReadU32()
	return Int(name, int64(v)), err
}

// uint64Element stores the bit pattern; values above MaxInt64 read negative.
func uint64Element(ctx *Context, name string) (Value, error) {
	v, err := ctx.Cursor.ReadU64()
	return Int(name, int64(v)), err
}

func floatElement(ctx *Context, name string) (Value, error) {
	v, err := ctx.Cursor.ReadF32()
	return Float(name, float64(v)), err
}

func doubleElement(ctx *Context, name string) (Value, error) {
	v, err := ctx.Cursor.ReadF64()
	return Float(name, v), err
}

func strElement(ctx *Context, name string) (Value, error) {
	s, err := ctx.Cursor.ReadFString()
	return String(name, s), err
}

func nameElement(ctx *Context, name string) (Value, error) {
	s, err := ctx.readName()
	return String(name, s), err
}

// objectElement reads a signed package index: negative imports, positive
// exports, zero null.
func objectElement(ctx *Context, name string) (Value, error) {
	v, err := ctx.Cursor.ReadI32()
	return Int(name, int64(v)), err
}

func decodeBool(_ *Context, tag *Tag) ([]Value, error) {
	return []Value{Bool(tag.ValueName(), tag.BoolValue)}, nil
}

// decodeByte reads a plain byte, a 32-bit value, or an enum value name,
// chosen by the declared size.
func decodeByte(ctx *Context, tag *Tag) ([]Value, error) {
	switch tag.Size {
	case 1:
		return fromElement(byteElement)(ctx, tag)
	case 4:
		return fromElement(int32Element)(ctx, tag)
	case 8:
		return fromElement(nameElement)(ctx, tag)
	default:
		return rawPayload(ctx, tag)
	}
}

func decodeEnum(ctx *Context, tag *Tag) ([]Value, error) {
	if tag.Size != 8 {
		return rawPayload(ctx, tag)
	}
	return fromElement(nameElement)(ctx, tag)
}

const (
	textHistoryBase = 0
	textHistoryNone = 255
)

// decodeText keeps the one displayable string of a text value and consumes
// the rest of the declared payload unread.
func decodeText(ctx *Context, tag *Tag) ([]Value, error) {
	c := ctx.Cursor
	name := tag.ValueName()

	if _, err := c.ReadU32(); err != nil { // flags
		return nil, err
	}
	history, err := c.ReadU8()
	if err != nil {
		return nil, err
	}

	var vals []Value
	switch history {
	case textHistoryBase:
		if _, err := c.ReadFString(); err != nil { // namespace
			return nil, err
		}
		if _, err := c.ReadFString(); err != nil { // key
			return nil, err
		}
		src, err := c.ReadFString()
		if err != nil {
			return nil, err
		}
		vals = append(vals, String(name, src))
	case textHistoryNone:
		has, err := c.ReadU32()
		if err != nil {
			return nil, err
		}
		s := ""
		if has != 0 {
			if s, err = c.ReadFString(); err != nil {
				return nil, err
			}
		}
		vals = append(vals, String(name, s))
	default:
		return rawPayload(ctx, tag)
	}

	if rest := tag.PayloadEnd() - c.Position(); rest > 0 {
		if err := c.Skip(rest); err != nil {
			return nil, err
		}
	}
	return vals, nil
}

// rawPayload rereads the whole declared payload as bytes.
func rawPayload(ctx *Context, tag *Tag) ([]Value, error) {
	c := ctx.Cursor
	if err := c.Seek(tag.PayloadOffset); err != nil {
		return nil, err
	}
	b, err := c.ReadBytes(tag.Size)
	if err != nil {
		return nil, err
	}
	return []Value{Bytes(tag.ValueName(), b)}, nil
}

// restOfPayload reads from the cursor to the end of the declared payload.
func restOfPayload(ctx *Context, tag *Tag, name string) ([]Value, error) {
	rest := tag.PayloadEnd() - ctx.Cursor.Position()
	if rest < 0 {
		rest = 0
	}
	b, err := ctx.Cursor.ReadBytes(rest)
	if err != nil {
		return nil, err
	}
	return []Value{Bytes(name, b)}, nil
}

func readCount(ctx *Context, tag *Tag) (int, error) {
	n, err := ctx.Cursor.ReadI32()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errors.New(errors.PhaseProperties, errors.KindInvalidData).
			Path(ctx.path(tag.Name)...).
			Offset(ctx.Cursor.Position() - 4).
			Detail("negative element count %d", n).
			Build()
	}
	return int(n), nil
}

// capacity bounds a preallocation by the bytes actually left.
func capacity(ctx *Context, n int) int {
	if rem := ctx.Cursor.Remaining(); int64(n) > rem {
		return int(rem)
	}
	return n
}

// decodeArray reads count elements of the inner type. Byte arrays become a
// single bytes value. Element types without a decoder are kept as raw bytes.
func decodeArray(ctx *Context, tag *Tag) ([]Value, error) {
	count, err := readCount(ctx, tag)
	if err != nil {
		return nil, err
	}
	name := tag.ValueName()
	body := tag.PayloadEnd() - ctx.Cursor.Position()

	el := ctx.Registry.Element(tag.InnerType)
	switch tag.InnerType {
	case TypeStruct:
		return decodeStructArray(ctx, tag, count, nil, "")
	case TypeByte:
		if body == int64(count) {
			b, err := ctx.Cursor.ReadBytes(body)
			if err != nil {
				return nil, err
			}
			return []Value{Bytes(name, b)}, nil
		}
		if body == int64(count)*8 {
			el = nameElement
		}
	}
	if el == nil {
		return restOfPayload(ctx, tag, name)
	}

	vals := make([]Value, 0, capacity(ctx, count))
	for i := 0; i < count; i++ {
		v, err := el(ctx, indexed(name, i))
		if err != nil {
			return vals, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}

// decodeStructArray reads the inner element tag and count struct elements.
// When want is set and the inner struct name equals it, force decodes every
// element instead of the registry's struct decoder.
func decodeStructArray(ctx *Context, tag *Tag, count int, force Decoder, want string) ([]Value, error) {
	c := ctx.Cursor
	name := tag.ValueName()

	inner, err := readInnerTag(ctx)
	if err != nil {
		return nil, err
	}
	if inner.Type != TypeStruct {
		return nil, errors.New(errors.PhaseProperties, errors.KindInvalidData).
			Path(ctx.path(tag.Name)...).
			Offset(inner.Offset).
			Detail("struct array element declared %s", inner.Type).
			Build()
	}

	dec := ctx.Registry.Struct(inner.StructName)
	if force != nil && inner.StructName == want {
		dec = force
	}
	if dec == nil {
		b, err := c.ReadBytes(inner.Size)
		if err != nil {
			return nil, err
		}
		return []Value{Bytes(name, b)}, nil
	}

	var elemSize int64
	if count > 0 {
		elemSize = inner.Size / int64(count)
	}
	innerEnd := inner.PayloadEnd()
	_, tagged := dec.(Tagged)
	if left := innerEnd - c.Position(); tagged && int64(count)*8 > left {
		// Every tagged element ends with at least a terminator.
		return nil, errors.New(errors.PhaseProperties, errors.KindInvalidData).
			Path(ctx.path(tag.Name)...).
			Offset(inner.PayloadOffset).
			Detail("struct array of %d %s elements in %d bytes", count, inner.StructName, left).
			Build()
	}

	vals := make([]Value, 0, capacity(ctx, count))
	for i := 0; i < count; i++ {
		at := c.Position()
		elem := &Tag{
			Name:          indexed(name, i),
			Type:          TypeStruct,
			StructName:    inner.StructName,
			Size:          elemSize,
			Offset:        c.Position(),
			PayloadOffset: c.Position(),
		}
		if tagged {
			// Tagged elements end at their own terminator.
			elem.Size = innerEnd - c.Position()
		}
		got, err := dec.Decode(ctx, elem)
		vals = append(vals, got...)
		if err != nil {
			return vals, err
		}
		if c.Position() == at {
			return vals, errors.New(errors.PhaseProperties, errors.KindInvalidData).
				Path(ctx.path(elem.Name)...).
				Offset(at).
				Detail("%s element consumed no bytes", inner.StructName).
				Build()
		}
	}
	return vals, nil
}

// decodeMap reads key/value pairs. Maps with removed keys or element types
// that need per-element tags are kept as raw bytes.
func decodeMap(ctx *Context, tag *Tag) ([]Value, error) {
	c := ctx.Cursor
	name := tag.ValueName()

	removed, err := c.ReadI32()
	if err != nil {
		return nil, err
	}
	keyEl := ctx.Registry.Element(tag.InnerType)
	valEl := ctx.Registry.Element(tag.ValueType)
	if removed != 0 || keyEl == nil || valEl == nil {
		return rawPayload(ctx, tag)
	}

	count, err := readCount(ctx, tag)
	if err != nil {
		return nil, err
	}
	vals := make([]Value, 0, capacity(ctx, count*2))
	for i := 0; i < count; i++ {
		entry := indexed(name, i)
		k, err := keyEl(ctx, entry+".Key")
		if err != nil {
			return vals, err
		}
		v, err := valEl(ctx, entry+".Value")
		if err != nil {
			return vals, err
		}
		vals = append(vals, k, v)
	}
	return vals, nil
}

// decodeStruct dispatches on the struct name; unknown structs are kept as
// raw bytes.
func decodeStruct(ctx *Context, tag *Tag) ([]Value, error) {
	dec := ctx.Registry.Struct(tag.StructName)
	if dec == nil {
		return rawPayload(ctx, tag)
	}
	return dec.Decode(ctx, tag)
}
