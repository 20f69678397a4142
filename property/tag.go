package property

import (
	"strconv"

	"github.com/wippyai/uasset/guid"
)

// Declared type names that change the tag layout.
const (
	TypeBool   = "BoolProperty"
	TypeByte   = "ByteProperty"
	TypeEnum   = "EnumProperty"
	TypeStruct = "StructProperty"
	TypeArray  = "ArrayProperty"
	TypeSet    = "SetProperty"
	TypeMap    = "MapProperty"
)

// Terminator is the property name that ends a stream.
const Terminator = "None"

// Tag is the header of one tagged property, everything before the payload.
type Tag struct {
	Name       string
	Type       string
	Size       int64
	ArrayIndex int32

	// Type-specific fields; which are set depends on Type.
	StructName string
	StructGUID guid.GUID
	BoolValue  bool
	EnumName   string
	InnerType  string
	ValueType  string

	HasPropertyGUID bool
	PropertyGUID    guid.GUID

	// Offset is the absolute position of the tag, PayloadOffset of the first
	// payload byte.
	Offset        int64
	PayloadOffset int64
}

// ValueName is the name decoded values carry: Name, or Name[i] for static
// array slots past the first.
func (t *Tag) ValueName() string {
	if t.ArrayIndex > 0 {
		return indexed(t.Name, int(t.ArrayIndex))
	}
	return t.Name
}

// PayloadEnd is the absolute position one past the declared payload.
func (t *Tag) PayloadEnd() int64 {
	return t.PayloadOffset + t.Size
}

func indexed(name string, i int) string {
	return name + "[" + strconv.Itoa(i) + "]"
}

// readTagBody reads everything after the 8-byte name up to the payload.
func readTagBody(ctx *Context, tag *Tag) error {
	c := ctx.Cursor

	var err error
	if tag.Type, err = ctx.readName(); err != nil {
		return err
	}

	sizeWord, err := c.ReadLE64()
	if err != nil {
		return err
	}
	tag.Size = int64(uint32(sizeWord))
	tag.ArrayIndex = int32(uint32(sizeWord >> 32))

	switch tag.Type {
	case TypeStruct:
		if tag.StructName, err = ctx.readName(); err != nil {
			return err
		}
		if tag.StructGUID, err = c.ReadGUID(); err != nil {
			return err
		}
	case TypeBool:
		b, err := c.ReadU8()
		if err != nil {
			return err
		}
		tag.BoolValue = b != 0
	case TypeByte, TypeEnum:
		if tag.EnumName, err = ctx.readName(); err != nil {
			return err
		}
	case TypeArray, TypeSet:
		if tag.InnerType, err = ctx.readName(); err != nil {
			return err
		}
	case TypeMap:
		if tag.InnerType, err = ctx.readName(); err != nil {
			return err
		}
		if tag.ValueType, err = ctx.readName(); err != nil {
			return err
		}
	}

	flag, err := c.ReadU8()
	if err != nil {
		return err
	}
	if flag != 0 {
		tag.HasPropertyGUID = true
		if tag.PropertyGUID, err = c.ReadGUID(); err != nil {
			return err
		}
	}

	tag.PayloadOffset = c.Position()
	return nil
}

// readInnerTag reads the element tag an array of structs carries before its
// elements.
func readInnerTag(ctx *Context) (*Tag, error) {
	c := ctx.Cursor
	inner := &Tag{Offset: c.Position()}

	ref, err := c.ReadNameRef()
	if err != nil {
		return nil, err
	}
	inner.Name = ref.Display(ctx.Names.Resolve)
	if err := readTagBody(ctx, inner); err != nil {
		return nil, err
	}
	return inner, nil
}

func (ctx *Context) readName() (string, error) {
	ref, err := ctx.Cursor.ReadNameRef()
	if err != nil {
		return "", err
	}
	return ref.Display(ctx.Names.Resolve), nil
}

