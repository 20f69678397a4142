package property

import (
	"slices"
	"testing"
)

func TestRegistryLookup(t *testing.T) {
	r := DefaultRegistry()

	tests := []struct {
		name string
		tag  Tag
		want Source
	}{
		{"metadata row", Tag{Name: "NodePosX", Type: "IntProperty", Size: 4}, SourceName},
		{"row wrong type", Tag{Name: "NodePosX", Type: "StrProperty", Size: 9}, SourceType},
		{"row wrong size", Tag{Name: "NodePosX", Type: "IntProperty", Size: 8}, SourceType},
		{"guid row", Tag{Name: "NodeGuid", Type: TypeStruct, StructName: "Guid", Size: 16}, SourceName},
		{"guid row other struct", Tag{Name: "NodeGuid", Type: TypeStruct, StructName: "Vector", Size: 12}, SourceType},
		{"object array row", Tag{Name: "Nodes", Type: TypeArray, InnerType: "ObjectProperty", Size: 12}, SourceName},
		{"object array row other inner", Tag{Name: "Nodes", Type: TypeArray, InnerType: "IntProperty", Size: 12}, SourceType},
		{"ref row", Tag{Name: "FunctionReference", Type: TypeStruct, StructName: "MemberReference", Size: 40}, SourceName},
		{"plain type", Tag{Name: "Health", Type: "FloatProperty", Size: 4}, SourceType},
		{"unknown type", Tag{Name: "Health", Type: "MysteryProperty", Size: 4}, SourceNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, src := r.Lookup(&tt.tag)
			if src != tt.want {
				t.Errorf("Lookup source = %s, want %s", src, tt.want)
			}
			if (d == nil) != (tt.want == SourceNone) {
				t.Errorf("Lookup decoder nil = %v, want %v", d == nil, tt.want == SourceNone)
			}
		})
	}
}

func TestDefaultRegistryCoverage(t *testing.T) {
	r := DefaultRegistry()

	types := []string{
		"BoolProperty", "Int8Property", "Int16Property", "IntProperty", "Int64Property",
		"UInt16Property", "UInt32Property", "UInt64Property", "FloatProperty", "DoubleProperty",
		"ByteProperty", "EnumProperty", "StrProperty", "TextProperty", "NameProperty",
		"ObjectProperty", "ClassProperty", "WeakObjectProperty", "InterfaceProperty",
		"ArrayProperty", "MapProperty", "StructProperty", "SetProperty",
		"SoftObjectProperty", "SoftClassProperty", "LazyObjectProperty", "DelegateProperty",
		"MulticastDelegateProperty", "MulticastInlineDelegateProperty",
		"MulticastSparseDelegateProperty", "FieldPathProperty",
	}
	if missing := r.MissingTypes(types); len(missing) != 0 {
		t.Errorf("MissingTypes = %v, want none", missing)
	}

	for _, s := range []string{"Guid", "Vector", "Rotator", "LinearColor", "Box", "MemberReference", "EdGraphPinType"} {
		if r.Struct(s) == nil {
			t.Errorf("struct %q not registered", s)
		}
	}
	for _, n := range []string{"NodePosX", "bCommentBubbleVisible", "MemberName", "NodeGuid", "InputKey", "NewVariables"} {
		if _, ok := r.Row(n); !ok {
			t.Errorf("row %q not registered", n)
		}
	}
	if !slices.IsSorted(r.Names()) || !slices.IsSorted(r.Types()) || !slices.IsSorted(r.Structs()) {
		t.Error("listings should be sorted")
	}
}

func TestMetadataRowsAreDistinct(t *testing.T) {
	lists := [][]string{metaInts, metaBools, metaNames, metaObjects, metaStrings, metaGuids, metaEnums, metaObjectArrays}
	seen := make(map[string]bool)
	for _, l := range lists {
		for _, n := range l {
			if seen[n] {
				t.Errorf("%q bound to more than one shape", n)
			}
			seen[n] = true
		}
	}
	for n := range metaRefs {
		if seen[n] {
			t.Errorf("%q bound to more than one shape", n)
		}
		seen[n] = true
	}
	for n := range metaStructArrays {
		if seen[n] {
			t.Errorf("%q bound to more than one shape", n)
		}
	}
}

func TestRegistryClone(t *testing.T) {
	base := NewDefaultRegistry()
	clone := base.Clone()

	clone.RegisterTypeFunc("MysteryProperty", rawPayload)
	if base.HasType("MysteryProperty") {
		t.Error("registering on the clone changed the original")
	}
	if !clone.HasType("MysteryProperty") {
		t.Error("clone missing its own registration")
	}
	if !clone.HasType("IntProperty") {
		t.Error("clone lost inherited types")
	}
}

func TestRegistryMissingTypes(t *testing.T) {
	r := NewRegistry()
	r.RegisterTypeFunc("IntProperty", decodeBool)

	got := r.MissingTypes([]string{"IntProperty", "StrProperty", "TextProperty"})
	want := []string{"StrProperty", "TextProperty"}
	if !slices.Equal(got, want) {
		t.Errorf("MissingTypes = %v, want %v", got, want)
	}
}

func TestCustomTypeDecoder(t *testing.T) {
	r := NewDefaultRegistry()
	r.RegisterTypeFunc("MysteryProperty", func(ctx *Context, tag *Tag) ([]Value, error) {
		b, err := ctx.Cursor.ReadBytes(tag.Size)
		return []Value{Bytes(tag.ValueName(), b)}, err
	})

	d, src := r.Lookup(&Tag{Name: "X", Type: "MysteryProperty"})
	if d == nil || src != SourceType {
		t.Fatalf("Lookup found decoder %v from %s, want the custom type decoder", d != nil, src)
	}
}

func TestRowMatches(t *testing.T) {
	row := Row{Type: TypeByte, Sizes: []int64{1, 8}}

	tests := []struct {
		tag  Tag
		want bool
	}{
		{Tag{Type: TypeByte, Size: 1}, true},
		{Tag{Type: TypeByte, Size: 8}, true},
		{Tag{Type: TypeByte, Size: 4}, false},
		{Tag{Type: TypeEnum, Size: 8}, false},
	}
	for _, tt := range tests {
		if got := row.Matches(&tt.tag); got != tt.want {
			t.Errorf("Matches(%s size %d) = %v, want %v", tt.tag.Type, tt.tag.Size, got, tt.want)
		}
	}
}
