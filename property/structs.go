package property

import (
	"github.com/wippyai/uasset/errors"
	"github.com/wippyai/uasset/guid"
)

// Tagged is implemented by struct decoders whose payload is itself a tag
// stream. Array elements of such structs are delimited by their terminator
// instead of a fixed size.
type Tagged interface {
	Tagged() bool
}

// taggedStructs serialize their members as a nested tag stream.
var taggedStructs = []string{
	"MemberReference",
	"Key",
	"InputChord",
	"BlueprintInputKeyDelegateBinding",
	"BlueprintInputActionDelegateBinding",
	"BlueprintComponentDelegateBinding",
	"BPVariableDescription",
	"BPInterfaceDescription",
	"EdGraphPinType",
	"GraphReference",
	"PointerToUberGraphFrame",
}

func registerStructs(r *Registry) {
	r.RegisterStruct("Guid", guidStruct{upper: false})
	r.RegisterStruct("Vector", floats("X", "Y", "Z"))
	r.RegisterStruct("Vector2D", floats("X", "Y"))
	r.RegisterStruct("Vector4", floats("X", "Y", "Z", "W"))
	r.RegisterStruct("Rotator", floats("Pitch", "Yaw", "Roll"))
	r.RegisterStruct("Quat", floats("X", "Y", "Z", "W"))
	r.RegisterStruct("LinearColor", floats("R", "G", "B", "A"))
	r.RegisterStruct("Color", Func(decodeColor))
	r.RegisterStruct("IntPoint", ints("X", "Y"))
	r.RegisterStruct("IntVector", ints("X", "Y", "Z"))
	r.RegisterStruct("DateTime", fromElement(int64Element))
	r.RegisterStruct("Timespan", fromElement(int64Element))
	r.RegisterStruct("FrameNumber", fromElement(int32Element))
	r.RegisterStruct("Box", Func(decodeBox))
	r.RegisterStruct("GameplayTagContainer", Func(decodeTagContainer))
	for _, s := range taggedStructs {
		r.RegisterStruct(s, taggedStruct{})
	}
}

// guidStruct is a 16-byte Guid struct rendered in the four-word order.
type guidStruct struct {
	upper bool
}

func (g guidStruct) Decode(ctx *Context, tag *Tag) ([]Value, error) {
	v, err := ctx.Cursor.ReadGUID()
	if err != nil {
		return nil, err
	}
	return []Value{GUID(tag.ValueName(), v, guid.OrderB, g.upper)}, nil
}

// floats decodes one float member per name. The payload holds doubles when
// the declared size is eight bytes per member, floats otherwise.
func floats(members ...string) Func {
	return func(ctx *Context, tag *Tag) ([]Value, error) {
		wide := tag.Size == int64(8*len(members))
		return readMembers(ctx, tag, members, func(name string) (Value, error) {
			if wide {
				return doubleElement(ctx, name)
			}
			return floatElement(ctx, name)
		})
	}
}

func ints(members ...string) Func {
	return func(ctx *Context, tag *Tag) ([]Value, error) {
		return readMembers(ctx, tag, members, func(name string) (Value, error) {
			return int32Element(ctx, name)
		})
	}
}

func readMembers(ctx *Context, tag *Tag, members []string, read func(string) (Value, error)) ([]Value, error) {
	parent := tag.ValueName()
	vals := make([]Value, 0, len(members))
	for _, m := range members {
		v, err := read(parent + "." + m)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}

// decodeColor reads the four BGRA bytes.
func decodeColor(ctx *Context, tag *Tag) ([]Value, error) {
	return readMembers(ctx, tag, []string{"B", "G", "R", "A"}, func(name string) (Value, error) {
		return byteElement(ctx, name)
	})
}

// decodeBox reads Min and Max vectors and the IsValid byte.
func decodeBox(ctx *Context, tag *Tag) ([]Value, error) {
	name := tag.ValueName()
	comp := int64(4)
	if tag.Size == 49 {
		comp = 8
	}
	vec := floats("X", "Y", "Z")

	var vals []Value
	for _, corner := range []string{"Min", "Max"} {
		got, err := vec(ctx, &Tag{Name: name + "." + corner, Size: 3 * comp})
		if err != nil {
			return nil, err
		}
		vals = append(vals, got...)
	}
	valid, err := boolElement(ctx, name+".IsValid")
	if err != nil {
		return nil, err
	}
	return append(vals, valid), nil
}

// decodeTagContainer reads a count and that many tag names.
func decodeTagContainer(ctx *Context, tag *Tag) ([]Value, error) {
	count, err := readCount(ctx, tag)
	if err != nil {
		return nil, err
	}
	name := tag.ValueName()
	vals := make([]Value, 0, capacity(ctx, count))
	for i := 0; i < count; i++ {
		v, err := nameElement(ctx, indexed(name, i))
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}

// taggedStruct decodes its payload as a nested stream restricted to the
// declared payload. Member values are named Parent.Member.
type taggedStruct struct{}

func (taggedStruct) Tagged() bool { return true }

func (taggedStruct) Decode(ctx *Context, tag *Tag) ([]Value, error) {
	name := tag.ValueName()
	if ctx.Depth+1 > ctx.MaxDepth {
		return nil, errors.New(errors.PhaseProperties, errors.KindInvalidData).
			Path(ctx.path(name)...).
			Offset(tag.PayloadOffset).
			Detail("struct nesting deeper than %d", ctx.MaxDepth).
			Build()
	}

	win, err := ctx.Cursor.Window(tag.PayloadOffset, tag.Size)
	if err != nil {
		return nil, err
	}
	res := decodeStream(ctx.sub(win, name))
	vals := prefixed(name, res.Values)

	if err := ctx.Cursor.Seek(win.Position()); err != nil {
		return vals, err
	}
	if !res.Complete() {
		return vals, res.Err
	}
	return vals, nil
}
