package property

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/wippyai/uasset/guid"
)

// Kind identifies which field of a Value is populated.
type Kind uint8

const (
	KindInt Kind = iota + 1
	KindFloat
	KindBool
	KindString
	KindBytes
	KindGUID
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindGUID:
		return "guid"
	default:
		return "unknown"
	}
}

// Value is one decoded property value.
//
// Values are created by decoders and never mutated afterwards. Bytes is
// always an owned copy.
type Value struct {
	Name  string
	Kind  Kind
	Int   int64
	Float float64
	Bool  bool
	Str   string
	Bytes []byte
	GUID  guid.GUID
	// Order and Upper select how a GUID value renders.
	Order guid.Order
	Upper bool
}

func Int(name string, v int64) Value {
	return Value{Name: name, Kind: KindInt, Int: v}
}

func Float(name string, v float64) Value {
	return Value{Name: name, Kind: KindFloat, Float: v}
}

func Bool(name string, v bool) Value {
	return Value{Name: name, Kind: KindBool, Bool: v}
}

func String(name, v string) Value {
	return Value{Name: name, Kind: KindString, Str: v}
}

// Bytes wraps b without copying; callers pass buffers they own.
func Bytes(name string, b []byte) Value {
	return Value{Name: name, Kind: KindBytes, Bytes: b}
}

// GUID creates a GUID value rendered in the given order.
func GUID(name string, g guid.GUID, order guid.Order, upper bool) Value {
	return Value{Name: name, Kind: KindGUID, GUID: g, Order: order, Upper: upper}
}

// Interface returns the populated field as a Go value. GUIDs and bytes are
// returned in their rendered string form.
func (v Value) Interface() any {
	switch v.Kind {
	case KindInt:
		return v.Int
	case KindFloat:
		return v.Float
	case KindBool:
		return v.Bool
	case KindString:
		return v.Str
	case KindBytes:
		return hex.EncodeToString(v.Bytes)
	case KindGUID:
		return v.GUID.Format(v.Order, v.Upper)
	default:
		return nil
	}
}

// Text renders the value for display.
func (v Value) Text() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindString:
		return strconv.Quote(v.Str)
	case KindBytes:
		if len(v.Bytes) > 32 {
			return fmt.Sprintf("%s... (%d bytes)", hex.EncodeToString(v.Bytes[:32]), len(v.Bytes))
		}
		return hex.EncodeToString(v.Bytes)
	case KindGUID:
		return v.GUID.Format(v.Order, v.Upper)
	default:
		return "?"
	}
}

func (v Value) String() string {
	return v.Name + " = " + v.Text()
}

type jsonValue struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Value any    `json:"value"`
}

// MarshalJSON renders {"name", "kind", "value"}. Non-finite floats are
// emitted as strings since JSON has no literal for them.
func (v Value) MarshalJSON() ([]byte, error) {
	out := jsonValue{Name: v.Name, Kind: v.Kind.String(), Value: v.Interface()}
	if v.Kind == KindFloat && (math.IsNaN(v.Float) || math.IsInf(v.Float, 0)) {
		out.Value = strconv.FormatFloat(v.Float, 'g', -1, 64)
	}
	return json.Marshal(out)
}

// prefixed returns vals with each name prefixed by parent and a dot.
func prefixed(parent string, vals []Value) []Value {
	for i := range vals {
		vals[i].Name = parent + "." + vals[i].Name
	}
	return vals
}
