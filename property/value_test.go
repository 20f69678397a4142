package property

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/wippyai/uasset/guid"
)

func TestValueJSON(t *testing.T) {
	g := guid.GUID{0x78, 0x56, 0x34, 0x12}

	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"int", Int("NodePosX", -40), `{"name":"NodePosX","kind":"int","value":-40}`},
		{"float", Float("Speed", 2.5), `{"name":"Speed","kind":"float","value":2.5}`},
		{"nan", Float("Bad", math.NaN()), `{"name":"Bad","kind":"float","value":"NaN"}`},
		{"inf", Float("Far", math.Inf(1)), `{"name":"Far","kind":"float","value":"+Inf"}`},
		{"bool", Bool("bHidden", true), `{"name":"bHidden","kind":"bool","value":true}`},
		{"string", String("Label", "a\"b"), `{"name":"Label","kind":"string","value":"a\"b"}`},
		{"bytes", Bytes("Blob", []byte{0xde, 0xad}), `{"name":"Blob","kind":"bytes","value":"dead"}`},
		{"guid", GUID("NodeGuid", g, guid.OrderB, true), `{"name":"NodeGuid","kind":"guid","value":"12345678-0000-0000-0000-000000000000"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.v)
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != tt.want {
				t.Errorf("Marshal = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestValueText(t *testing.T) {
	long := make([]byte, 40)

	tests := []struct {
		v    Value
		want string
	}{
		{Int("A", 7), "7"},
		{Float("B", 0.1), "0.1"},
		{Bool("C", false), "false"},
		{String("D", "x"), `"x"`},
		{Bytes("E", []byte{1}), "01"},
		{Bytes("F", long), "0000000000000000000000000000000000000000000000000000000000000000... (40 bytes)"},
	}
	for _, tt := range tests {
		if got := tt.v.Text(); got != tt.want {
			t.Errorf("%s.Text() = %q, want %q", tt.v.Name, got, tt.want)
		}
	}
}

func TestKindString(t *testing.T) {
	kinds := map[Kind]string{
		KindInt:    "int",
		KindFloat:  "float",
		KindBool:   "bool",
		KindString: "string",
		KindBytes:  "bytes",
		KindGUID:   "guid",
		Kind(0):    "unknown",
	}
	for k, want := range kinds {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}

func TestTagValueName(t *testing.T) {
	tests := []struct {
		tag  Tag
		want string
	}{
		{Tag{Name: "Slots"}, "Slots"},
		{Tag{Name: "Slots", ArrayIndex: 3}, "Slots[3]"},
	}
	for _, tt := range tests {
		if got := tt.tag.ValueName(); got != tt.want {
			t.Errorf("ValueName() = %q, want %q", got, tt.want)
		}
	}
}
