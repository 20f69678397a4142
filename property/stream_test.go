package property

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/uasset/errors"
	"github.com/wippyai/uasset/guid"
	"github.com/wippyai/uasset/internal/binary"
	"github.com/wippyai/uasset/internal/fixture"
)

func decodeAll(t *testing.T, names *fixture.Names, data []byte, opts Options) *Result {
	t.Helper()
	return Decode(data, 0, int64(len(data)), names, opts)
}

func valueStrings(vals []Value) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = v.String()
	}
	return out
}

func wantValues(t *testing.T, got []Value, want []string) {
	t.Helper()
	gs := valueStrings(got)
	if len(gs) != len(want) {
		t.Fatalf("values = %q, want %q", gs, want)
	}
	for i := range want {
		if gs[i] != want[i] {
			t.Errorf("value[%d] = %q, want %q", i, gs[i], want[i])
		}
	}
}

func testGUID() guid.GUID {
	var g guid.GUID
	for i := range g {
		g[i] = byte(i + 1)
	}
	return g
}

func TestDecodeTerminatorOnly(t *testing.T) {
	names := fixture.NewNames()
	s := fixture.NewStream(names)
	s.None()

	res := decodeAll(t, names, s.Bytes(), Options{})
	if res.State != StateTerminated {
		t.Fatalf("State = %s, want %s", res.State, StateTerminated)
	}
	if res.Err != nil {
		t.Errorf("Err = %v, want nil", res.Err)
	}
	if len(res.Values) != 0 {
		t.Errorf("Values = %v, want none", res.Values)
	}
	if res.Offset != 8 {
		t.Errorf("Offset = %d, want 8", res.Offset)
	}
}

func TestDecodeScalars(t *testing.T) {
	names := fixture.NewNames()
	s := fixture.NewStream(names)
	s.Int("Health", 100)
	s.Float("Speed", 1.5)
	s.Bool("bHidden", true)
	s.Str("Label", "hello")
	s.NameProp("DoorTag", "Door")
	s.Object("Owner", -2)
	s.Int64("Big", 1<<40)
	s.Double("Ratio", 0.25)
	s.Text("Title", "UI", "OpenKey", "Open")
	s.Byte("Mode", "None", 3)
	s.ByteEnum("DoorState", "EDoorState", "EDoorState::Open")
	s.Enum("Facing", "EFacing", "EFacing::Up")
	s.None()

	res := decodeAll(t, names, s.Bytes(), Options{})
	if res.State != StateTerminated {
		t.Fatalf("State = %s (%v), want %s", res.State, res.Err, StateTerminated)
	}
	wantValues(t, res.Values, []string{
		"Health = 100",
		"Speed = 1.5",
		"bHidden = true",
		`Label = "hello"`,
		`DoorTag = "Door"`,
		"Owner = -2",
		"Big = 1099511627776",
		"Ratio = 0.25",
		`Title = "Open"`,
		"Mode = 3",
		`DoorState = "EDoorState::Open"`,
		`Facing = "EFacing::Up"`,
	})
}

func TestStrPropertyDeclaredSizeMismatch(t *testing.T) {
	names := fixture.NewNames()
	s := fixture.NewStream(names)
	// Declared size 9, length prefix 8: "hello" plus three NULs.
	s.Name("Label")
	s.Name("StrProperty")
	w := binary.NewWriter()
	w.U32(9)
	w.U32(0)
	w.U8(0)
	w.WriteBytes([]byte{0x08, 0, 0, 0, 'h', 'e', 'l', 'l', 'o', 0, 0, 0})
	s.Write(w.Bytes())
	s.None()

	core, logs := observer.New(zapcore.WarnLevel)
	res := decodeAll(t, names, s.Bytes(), Options{Logger: zap.New(core)})

	if res.State != StateTerminated {
		t.Fatalf("State = %s (%v), want %s", res.State, res.Err, StateTerminated)
	}
	wantValues(t, res.Values, []string{`Label = "hello"`})

	warned := logs.FilterMessage("property consumed a different size than declared").All()
	if len(warned) != 1 {
		t.Fatalf("size warnings = %d, want 1", len(warned))
	}
	fields := warned[0].ContextMap()
	if fields["declared"] != int64(9) || fields["consumed"] != int64(12) {
		t.Errorf("declared/consumed = %v/%v, want 9/12", fields["declared"], fields["consumed"])
	}
}

func TestEntitySentinel(t *testing.T) {
	names := fixture.NewNames()
	s := fixture.NewStream(names)
	s.Entity(1, 42, testGUID())
	s.Int("Health", 5)
	s.None()

	data := s.Bytes()
	raw, err := binary.NewCursor(data).ReadLE64()
	if err != nil {
		t.Fatal(err)
	}
	if raw != 0x0000000100000000 {
		t.Fatalf("sentinel word = %#x, want 0x0000000100000000", raw)
	}

	res := decodeAll(t, names, data, Options{})
	if res.State != StateTerminated {
		t.Fatalf("State = %s (%v), want %s", res.State, res.Err, StateTerminated)
	}
	if res.Sentinels != 1 {
		t.Errorf("Sentinels = %d, want 1", res.Sentinels)
	}
	wantValues(t, res.Values, []string{
		"EntityReference.Id = 42",
		"EntityReference.Guid = " + testGUID().Format(guid.OrderB, false),
		"Health = 5",
	})
}

func TestEntitySentinelCodes(t *testing.T) {
	tests := []struct {
		code   int32
		entity bool
	}{
		{1, true},
		{2, true},
		{5, true},
		{10, true},
		{6, false},
		{0, false},
	}
	for _, tt := range tests {
		if got := isEntitySentinel(tt.code); got != tt.entity {
			t.Errorf("isEntitySentinel(%d) = %v, want %v", tt.code, got, tt.entity)
		}
	}
}

func TestPaddingBetweenTags(t *testing.T) {
	names := fixture.NewNames()
	s := fixture.NewStream(names)
	s.Int("A", 1)
	s.Padding(11)
	s.Int("B", 2)
	s.None()

	res := decodeAll(t, names, s.Bytes(), Options{})
	if res.State != StateTerminated {
		t.Fatalf("State = %s (%v), want %s", res.State, res.Err, StateTerminated)
	}
	if res.Padding != 11 {
		t.Errorf("Padding = %d, want 11", res.Padding)
	}
	wantValues(t, res.Values, []string{"A = 1", "B = 2"})
}

func TestTrailingPaddingExhausts(t *testing.T) {
	names := fixture.NewNames()
	s := fixture.NewStream(names)
	s.Int("A", 1)
	s.Padding(5)

	res := decodeAll(t, names, s.Bytes(), Options{})
	if res.State != StateExhausted {
		t.Fatalf("State = %s (%v), want %s", res.State, res.Err, StateExhausted)
	}
	if res.Padding != 5 {
		t.Errorf("Padding = %d, want 5", res.Padding)
	}
	if !res.Complete() {
		t.Error("exhausted stream should be complete")
	}
}

func TestShortTailIsOutOfBounds(t *testing.T) {
	names := fixture.NewNames()
	s := fixture.NewStream(names)
	s.Int("A", 1)
	tail := int64(s.Len())
	s.Padding(2)
	s.Write([]byte{7})

	res := decodeAll(t, names, s.Bytes(), Options{})
	if res.State != StateError {
		t.Fatalf("State = %s, want %s", res.State, StateError)
	}
	if !errors.Is(res.Err, errors.ErrOutOfBounds) {
		t.Errorf("Err = %v, want out_of_bounds", res.Err)
	}
	if res.Offset != tail {
		t.Errorf("Offset = %d, want %d", res.Offset, tail)
	}
	wantValues(t, res.Values, []string{"A = 1"})
}

func TestNoTerminatorExhausts(t *testing.T) {
	names := fixture.NewNames()
	s := fixture.NewStream(names)
	s.Int("A", 1)

	res := decodeAll(t, names, s.Bytes(), Options{})
	if res.State != StateExhausted {
		t.Fatalf("State = %s, want %s", res.State, StateExhausted)
	}
	wantValues(t, res.Values, []string{"A = 1"})
}

func TestUnknownPropertyKeepsEarlierValues(t *testing.T) {
	names := fixture.NewNames()
	s := fixture.NewStream(names)
	s.Int("A", 1)
	unknownAt := s.Len()
	s.Tag("Weird", "MysteryProperty", []byte{1, 2, 3})
	s.Int("B", 2)
	s.None()

	res := decodeAll(t, names, s.Bytes(), Options{Path: []string{"exports", "3"}})
	if res.State != StateUnknownProperty {
		t.Fatalf("State = %s, want %s", res.State, StateUnknownProperty)
	}
	if !errors.Is(res.Err, errors.ErrUnknownProperty) {
		t.Errorf("Err = %v, want unknown_property", res.Err)
	}
	if res.Offset != int64(unknownAt) {
		t.Errorf("Offset = %d, want %d", res.Offset, unknownAt)
	}
	wantValues(t, res.Values, []string{"A = 1"})

	var se *errors.Error
	if !errors.As(res.Err, &se) {
		t.Fatal("expected *errors.Error")
	}
	if want := []string{"exports", "3", "Weird"}; len(se.Path) != 3 || se.Path[2] != want[2] || se.Path[1] != want[1] {
		t.Errorf("Path = %v, want %v", se.Path, want)
	}
}

func TestTruncatedPayloadIsError(t *testing.T) {
	names := fixture.NewNames()
	s := fixture.NewStream(names)
	s.Int("A", 1)
	s.Name("B")
	s.Name("IntProperty")
	w := binary.NewWriter()
	w.U32(100)
	w.U32(0)
	w.U8(0)
	w.I32(7)
	s.Write(w.Bytes())

	res := decodeAll(t, names, s.Bytes(), Options{})
	if res.State != StateError {
		t.Fatalf("State = %s, want %s", res.State, StateError)
	}
	if !errors.Is(res.Err, errors.ErrOutOfBounds) {
		t.Errorf("Err = %v, want out_of_bounds", res.Err)
	}
	wantValues(t, res.Values, []string{"A = 1"})
}

func TestDecodeRangeOutsideBuffer(t *testing.T) {
	names := fixture.NewNames()
	s := fixture.NewStream(names)
	s.None()

	res := Decode(s.Bytes(), 0, int64(s.Len()+10), names, Options{})
	if res.State != StateError {
		t.Fatalf("State = %s, want %s", res.State, StateError)
	}
	if !errors.Is(res.Err, errors.ErrOutOfBounds) {
		t.Errorf("Err = %v, want out_of_bounds", res.Err)
	}
}

func TestDecodeStaysInsideRange(t *testing.T) {
	names := fixture.NewNames()
	s := fixture.NewStream(names)
	s.Int("A", 1)
	first := s.Len()
	s.Int("B", 2)
	s.None()

	res := Decode(s.Bytes(), 0, int64(first), names, Options{})
	if res.State != StateExhausted {
		t.Fatalf("State = %s, want %s", res.State, StateExhausted)
	}
	wantValues(t, res.Values, []string{"A = 1"})
}

func TestStaticArrayIndex(t *testing.T) {
	names := fixture.NewNames()
	s := fixture.NewStream(names)
	w := binary.NewWriter()
	w.I32(9)
	s.TagAt("Slots", "IntProperty", 2, w.Bytes())
	s.None()

	res := decodeAll(t, names, s.Bytes(), Options{})
	wantValues(t, res.Values, []string{"Slots[2] = 9"})
}

func TestMetadataRows(t *testing.T) {
	names := fixture.NewNames()
	s := fixture.NewStream(names)
	s.Int("NodePosX", 120)
	s.Str("NodePosY", "left")
	s.GuidStruct("NodeGuid", testGUID())
	s.GuidStruct("ItemGuid", testGUID())
	s.ByteEnum("EnabledState", "ENodeEnabledState", "ENodeEnabledState::Enabled")
	s.Byte("AdvancedPinDisplay", "ENodeAdvancedPins", 1)
	s.None()

	res := decodeAll(t, names, s.Bytes(), Options{})
	if res.State != StateTerminated {
		t.Fatalf("State = %s (%v), want %s", res.State, res.Err, StateTerminated)
	}
	wantValues(t, res.Values, []string{
		"NodePosX = 120",
		`NodePosY = "left"`,
		"NodeGuid = " + testGUID().Format(guid.OrderB, true),
		"ItemGuid = " + testGUID().Format(guid.OrderB, false),
		`EnabledState = "ENodeEnabledState::Enabled"`,
		"AdvancedPinDisplay = 1",
	})
}

func TestNestedMemberReference(t *testing.T) {
	names := fixture.NewNames()
	inner := fixture.NewStream(names)
	inner.NameProp("MemberName", "OnOpen")
	inner.Object("MemberParent", -1)
	inner.Bool("bSelfContext", true)
	inner.None()

	s := fixture.NewStream(names)
	s.Nested("FunctionReference", "MemberReference", inner)
	s.Int("NodePosX", 10)
	s.None()

	res := decodeAll(t, names, s.Bytes(), Options{})
	if res.State != StateTerminated {
		t.Fatalf("State = %s (%v), want %s", res.State, res.Err, StateTerminated)
	}
	wantValues(t, res.Values, []string{
		`FunctionReference.MemberName = "OnOpen"`,
		"FunctionReference.MemberParent = -1",
		"FunctionReference.bSelfContext = true",
		"NodePosX = 10",
	})
}

func TestNestedUnknownPropagates(t *testing.T) {
	names := fixture.NewNames()
	inner := fixture.NewStream(names)
	inner.NameProp("MemberName", "OnOpen")
	inner.Tag("Odd", "MysteryProperty", []byte{0xAA})
	inner.None()

	s := fixture.NewStream(names)
	s.Nested("EventReference", "MemberReference", inner)
	s.Int("After", 1)
	s.None()

	res := decodeAll(t, names, s.Bytes(), Options{})
	if res.State != StateUnknownProperty {
		t.Fatalf("State = %s, want %s", res.State, StateUnknownProperty)
	}
	wantValues(t, res.Values, []string{`EventReference.MemberName = "OnOpen"`})
}

func TestNestingDepthLimit(t *testing.T) {
	names := fixture.NewNames()
	deepest := fixture.NewStream(names)
	deepest.NameProp("MemberName", "X")
	deepest.None()

	middle := fixture.NewStream(names)
	middle.Nested("FunctionReference", "MemberReference", deepest)
	middle.None()

	s := fixture.NewStream(names)
	s.Nested("EventReference", "MemberReference", middle)
	s.None()

	res := decodeAll(t, names, s.Bytes(), Options{MaxDepth: 1})
	if res.State != StateError {
		t.Fatalf("State = %s, want %s", res.State, StateError)
	}
	if !errors.Is(res.Err, errors.ErrInvalidData) {
		t.Errorf("Err = %v, want invalid_data", res.Err)
	}

	res = decodeAll(t, names, s.Bytes(), Options{})
	if res.State != StateTerminated {
		t.Fatalf("default depth: State = %s (%v), want %s", res.State, res.Err, StateTerminated)
	}
	wantValues(t, res.Values, []string{`EventReference.FunctionReference.MemberName = "X"`})
}

func TestStructArrayOfTaggedElements(t *testing.T) {
	names := fixture.NewNames()
	var elems [][]byte
	for _, v := range []string{"Health", "Armor"} {
		e := fixture.NewStream(names)
		e.NameProp("VarName", v)
		e.None()
		elems = append(elems, e.Bytes())
	}

	s := fixture.NewStream(names)
	s.StructArray("NewVariables", "BPVariableDescription", elems...)
	s.Int("NodePosX", 1)
	s.None()

	res := decodeAll(t, names, s.Bytes(), Options{})
	if res.State != StateTerminated {
		t.Fatalf("State = %s (%v), want %s", res.State, res.Err, StateTerminated)
	}
	wantValues(t, res.Values, []string{
		`NewVariables[0].VarName = "Health"`,
		`NewVariables[1].VarName = "Armor"`,
		"NodePosX = 1",
	})
}

func TestStructArrayFixedElements(t *testing.T) {
	names := fixture.NewNames()
	var elems [][]byte
	for _, p := range [][2]int32{{1, 2}, {3, 4}} {
		w := binary.NewWriter()
		w.I32(p[0])
		w.I32(p[1])
		elems = append(elems, w.Bytes())
	}

	s := fixture.NewStream(names)
	s.StructArray("Cells", "IntPoint", elems...)
	s.None()

	res := decodeAll(t, names, s.Bytes(), Options{})
	if res.State != StateTerminated {
		t.Fatalf("State = %s (%v), want %s", res.State, res.Err, StateTerminated)
	}
	wantValues(t, res.Values, []string{
		"Cells[0].X = 1", "Cells[0].Y = 2",
		"Cells[1].X = 3", "Cells[1].Y = 4",
	})
}

func TestStructArrayCountBeyondPayload(t *testing.T) {
	for _, count := range []int32{1, 1 << 16, 1 << 30} {
		names := fixture.NewNames()
		s := fixture.NewStream(names)
		s.StructArray("NewVariables", "BPVariableDescription")
		s.None()

		// name, type and size (24), inner type name (8), flag (1), count
		data := s.Bytes()
		data[33] = byte(count)
		data[34] = byte(count >> 8)
		data[35] = byte(count >> 16)
		data[36] = byte(count >> 24)

		res := decodeAll(t, names, data, Options{})
		if res.State != StateError {
			t.Fatalf("count %d: State = %s, want %s", count, res.State, StateError)
		}
		if !errors.Is(res.Err, errors.ErrInvalidData) {
			t.Errorf("count %d: Err = %v, want invalid_data", count, res.Err)
		}
		if res.Offset != 0 {
			t.Errorf("count %d: Offset = %d, want 0", count, res.Offset)
		}
	}
}

func TestStructArrayElementWithoutProgress(t *testing.T) {
	reg := NewDefaultRegistry()
	reg.RegisterStruct("Marker", Func(func(*Context, *Tag) ([]Value, error) {
		return nil, nil
	}))

	names := fixture.NewNames()
	s := fixture.NewStream(names)
	s.StructArray("Markers", "Marker", nil, nil, nil)
	s.None()

	res := decodeAll(t, names, s.Bytes(), Options{Registry: reg})
	if res.State != StateError {
		t.Fatalf("State = %s, want %s", res.State, StateError)
	}
	if !errors.Is(res.Err, errors.ErrInvalidData) {
		t.Errorf("Err = %v, want invalid_data", res.Err)
	}
}

func TestUnknownStructArrayIsRaw(t *testing.T) {
	names := fixture.NewNames()
	s := fixture.NewStream(names)
	s.StructArray("Things", "MyThing", []byte{1, 2}, []byte{3, 4})
	s.None()

	res := decodeAll(t, names, s.Bytes(), Options{})
	if res.State != StateTerminated {
		t.Fatalf("State = %s (%v), want %s", res.State, res.Err, StateTerminated)
	}
	wantValues(t, res.Values, []string{"Things = 01020304"})
}

func TestArrays(t *testing.T) {
	names := fixture.NewNames()

	ints := binary.NewWriter()
	for _, v := range []int32{5, 6, 7} {
		ints.I32(v)
	}
	objs := binary.NewWriter()
	objs.I32(-1)
	objs.I32(2)
	soft := binary.NewWriter()
	soft.FString("/Game/A")

	s := fixture.NewStream(names)
	s.Array("Ids", "IntProperty", 3, ints.Bytes())
	s.Array("Blob", "ByteProperty", 4, []byte{1, 2, 3, 4})
	s.Array("Nodes", "ObjectProperty", 2, objs.Bytes())
	s.Array("Refs", "SoftObjectProperty", 1, soft.Bytes())
	s.Array("Empty", "IntProperty", 0, nil)
	s.None()

	res := decodeAll(t, names, s.Bytes(), Options{})
	if res.State != StateTerminated {
		t.Fatalf("State = %s (%v), want %s", res.State, res.Err, StateTerminated)
	}
	wantValues(t, res.Values, []string{
		"Ids[0] = 5", "Ids[1] = 6", "Ids[2] = 7",
		"Blob = 01020304",
		"Nodes[0] = -1", "Nodes[1] = 2",
		"Refs = 080000002f47616d652f4100",
	})
}

func TestNegativeArrayCount(t *testing.T) {
	names := fixture.NewNames()
	s := fixture.NewStream(names)
	s.Array("Ids", "IntProperty", -1, nil)
	s.None()

	res := decodeAll(t, names, s.Bytes(), Options{})
	if res.State != StateError {
		t.Fatalf("State = %s, want %s", res.State, StateError)
	}
	if !errors.Is(res.Err, errors.ErrInvalidData) {
		t.Errorf("Err = %v, want invalid_data", res.Err)
	}
}

func TestMap(t *testing.T) {
	names := fixture.NewNames()
	body := binary.NewWriter()
	body.NameRef(names.Index("Bronze"), 0)
	body.I32(1)
	body.NameRef(names.Index("Gold"), 0)
	body.I32(3)

	s := fixture.NewStream(names)
	s.Map("Scores", "NameProperty", "IntProperty", 2, body.Bytes())
	s.None()

	res := decodeAll(t, names, s.Bytes(), Options{})
	if res.State != StateTerminated {
		t.Fatalf("State = %s (%v), want %s", res.State, res.Err, StateTerminated)
	}
	wantValues(t, res.Values, []string{
		`Scores[0].Key = "Bronze"`, "Scores[0].Value = 1",
		`Scores[1].Key = "Gold"`, "Scores[1].Value = 3",
	})
}

func TestMapOfStructsIsRaw(t *testing.T) {
	names := fixture.NewNames()
	s := fixture.NewStream(names)
	s.Map("Lookup", "NameProperty", "StructProperty", 0, nil)
	s.None()

	res := decodeAll(t, names, s.Bytes(), Options{})
	if res.State != StateTerminated {
		t.Fatalf("State = %s (%v), want %s", res.State, res.Err, StateTerminated)
	}
	wantValues(t, res.Values, []string{"Lookup = 0000000000000000"})
}

func TestStructs(t *testing.T) {
	names := fixture.NewNames()

	vec := binary.NewWriter()
	vec.F32(1)
	vec.F32(2)
	vec.F32(3)
	wide := binary.NewWriter()
	wide.F64(0.5)
	wide.F64(1.5)
	wide.F64(2.5)
	color := []byte{10, 20, 30, 255}

	s := fixture.NewStream(names)
	s.Struct("Location", "Vector", vec.Bytes())
	s.Struct("Scale", "Vector", wide.Bytes())
	s.Struct("Tint", "Color", color)
	s.Struct("Blob", "MyStruct", []byte{9, 9})
	s.None()

	res := decodeAll(t, names, s.Bytes(), Options{})
	if res.State != StateTerminated {
		t.Fatalf("State = %s (%v), want %s", res.State, res.Err, StateTerminated)
	}
	wantValues(t, res.Values, []string{
		"Location.X = 1", "Location.Y = 2", "Location.Z = 3",
		"Scale.X = 0.5", "Scale.Y = 1.5", "Scale.Z = 2.5",
		"Tint.B = 10", "Tint.G = 20", "Tint.R = 30", "Tint.A = 255",
		"Blob = 0909",
	})
}

func TestRawTypesKeepStreamInSync(t *testing.T) {
	names := fixture.NewNames()
	path := binary.NewWriter()
	path.FString("/Game/Maps/Start.Start")
	path.FString("")

	s := fixture.NewStream(names)
	s.Tag("Level", "SoftObjectProperty", path.Bytes())
	s.Int("After", 3)
	s.None()

	res := decodeAll(t, names, s.Bytes(), Options{})
	if res.State != StateTerminated {
		t.Fatalf("State = %s (%v), want %s", res.State, res.Err, StateTerminated)
	}
	if len(res.Values) != 2 || res.Values[0].Kind != KindBytes || res.Values[1].String() != "After = 3" {
		t.Errorf("Values = %q", valueStrings(res.Values))
	}
}

func TestDecodeIsRepeatable(t *testing.T) {
	names := fixture.NewNames()
	s := fixture.NewStream(names)
	s.Int("A", 1)
	s.Str("B", "two")
	s.None()

	a := decodeAll(t, names, s.Bytes(), Options{})
	b := decodeAll(t, names, s.Bytes(), Options{})
	as, bs := valueStrings(a.Values), valueStrings(b.Values)
	if len(as) != len(bs) || a.State != b.State || a.Offset != b.Offset {
		t.Fatalf("results differ: %v %v", as, bs)
	}
	for i := range as {
		if as[i] != bs[i] {
			t.Errorf("value[%d] = %q, want %q", i, bs[i], as[i])
		}
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateDecoding, "decoding"},
		{StateTerminated, "terminated"},
		{StateExhausted, "exhausted"},
		{StateUnknownProperty, "unknown_property"},
		{StateError, "error"},
		{State(99), "invalid"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
