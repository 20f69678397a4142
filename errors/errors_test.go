package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestErrorString(t *testing.T) {
	err := New(PhaseExports, KindOutOfBounds).
		Path("exports", "3").
		Offset(0x40).
		Detail("serial range %d+%d exceeds %d", 10, 20, 25).
		Build()

	want := "[exports] out_of_bounds at exports.3 (offset 0x40): serial range 10+20 exceeds 25"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestIsMatchesPhaseAndKind(t *testing.T) {
	err := FormatUnsupported(PhaseHeader, "compressed package")

	if !Is(err, &Error{Phase: PhaseHeader, Kind: KindFormatUnsupported}) {
		t.Error("expected phase+kind match")
	}
	if Is(err, &Error{Phase: PhaseExports, Kind: KindFormatUnsupported}) {
		t.Error("phase mismatch should not match")
	}
	if !Is(err, ErrFormatUnsupported) {
		t.Error("kind-only target should match")
	}
	if Is(err, ErrOutOfBounds) {
		t.Error("kind mismatch should not match")
	}
}

func TestAtKeepsCauseKind(t *testing.T) {
	cause := OutOfBounds(PhaseRead, 12, 4, 1)
	err := At(PhaseNames, fmt.Errorf("entry 2: %w", cause), "names", "2")

	if err.Kind != KindOutOfBounds {
		t.Errorf("Kind = %s, want %s", err.Kind, KindOutOfBounds)
	}
	if !err.HasOffset || err.Offset != 12 {
		t.Errorf("Offset = %d (set %v), want 12", err.Offset, err.HasOffset)
	}
	if !Is(err, &Error{Phase: PhaseRead, Kind: KindOutOfBounds}) {
		t.Error("cause should stay reachable through Unwrap")
	}
	if !strings.Contains(err.Error(), "caused by") {
		t.Errorf("Error() = %q, want cause text", err.Error())
	}
}

func TestAtPlainCause(t *testing.T) {
	err := At(PhaseLoad, fmt.Errorf("boom"))
	if err.Kind != KindInvalidData {
		t.Errorf("Kind = %s, want %s", err.Kind, KindInvalidData)
	}
	if err.HasOffset {
		t.Error("plain cause should not carry an offset")
	}
}

func TestKindOf(t *testing.T) {
	if got := KindOf(fmt.Errorf("x: %w", UnsupportedMetadata(PhaseHeader, "chunk ids", 2))); got != KindUnsupportedMetadata {
		t.Errorf("KindOf = %q, want %q", got, KindUnsupportedMetadata)
	}
	if got := KindOf(fmt.Errorf("plain")); got != "" {
		t.Errorf("KindOf(plain) = %q, want empty", got)
	}
}

func TestUnknownProperty(t *testing.T) {
	err := UnknownProperty([]string{"exports", "1"}, 0x99, "Mystery", "WidgetProperty")
	if !Is(err, ErrUnknownProperty) {
		t.Error("expected unknown property kind")
	}
	if err.Value != "Mystery" {
		t.Errorf("Value = %v, want Mystery", err.Value)
	}
}

func TestIOKeepsCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := IO(PhaseStore, cause, "insert package")
	if err.Kind != KindIO || err.Unwrap() != cause {
		t.Errorf("IO = %+v, want kind io wrapping the cause", err)
	}
	if want := "[store] io: insert package (caused by: disk full)"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
