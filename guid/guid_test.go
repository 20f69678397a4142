package guid

import "testing"

func sequential() GUID {
	var g GUID
	for i := range g {
		g[i] = byte(i)
	}
	return g
}

func TestFormat(t *testing.T) {
	g := sequential()

	tests := []struct {
		name  string
		order Order
		upper bool
		want  string
	}{
		{"order A", OrderA, false, "00010203-0405-0607-0809-0a0b0c0d0e0f"},
		{"order A upper", OrderA, true, "00010203-0405-0607-0809-0A0B0C0D0E0F"},
		{"order B", OrderB, false, "03020100-0706-0504-0b0a-09080f0e0d0c"},
		{"order B upper", OrderB, true, "03020100-0706-0504-0B0A-09080F0E0D0C"},
	}

	for _, tt := range tests {
		if got := g.Format(tt.order, tt.upper); got != tt.want {
			t.Errorf("%s: Format() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestStringIsOrderA(t *testing.T) {
	g := sequential()
	if g.String() != g.Format(OrderA, false) {
		t.Errorf("String() = %q, want order A rendering", g.String())
	}
}

func TestIsZero(t *testing.T) {
	if !(GUID{}).IsZero() {
		t.Error("zero GUID should report IsZero")
	}
	if sequential().IsZero() {
		t.Error("non-zero GUID should not report IsZero")
	}
}

func TestOrderString(t *testing.T) {
	if OrderA.String() != "A" || OrderB.String() != "B" || Order(9).String() != "unknown" {
		t.Error("unexpected Order.String values")
	}
}
