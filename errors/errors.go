package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates which decode stage produced the error
type Phase string

const (
	PhaseRead       Phase = "read"       // cursor primitives
	PhaseHeader     Phase = "header"     // package summary
	PhaseNames      Phase = "names"      // name table
	PhaseImports    Phase = "imports"    // import table
	PhaseExports    Phase = "exports"    // export table
	PhaseProperties Phase = "properties" // tagged-property streams
	PhaseThumbnails Phase = "thumbnails" // thumbnail table
	PhaseRegistry   Phase = "registry"   // asset registry data
	PhaseLoad       Phase = "load"       // file loading
	PhaseStore      Phase = "store"      // package index
	PhaseServe      Phase = "serve"      // HTTP API
)

// Kind categorizes the error
type Kind string

const (
	KindOutOfBounds         Kind = "out_of_bounds"
	KindFormatUnsupported   Kind = "format_unsupported"
	KindUnsupportedMetadata Kind = "unsupported_metadata"
	KindUnknownProperty     Kind = "unknown_property"
	KindInvalidData         Kind = "invalid_data"
	KindNotFound            Kind = "not_found"
	KindInvalidInput        Kind = "invalid_input"
	KindIO                  Kind = "io" // file or database access failed
)

// Kind-only targets for errors.Is.
var (
	ErrOutOfBounds         = &Error{Kind: KindOutOfBounds}
	ErrFormatUnsupported   = &Error{Kind: KindFormatUnsupported}
	ErrUnsupportedMetadata = &Error{Kind: KindUnsupportedMetadata}
	ErrUnknownProperty     = &Error{Kind: KindUnknownProperty}
	ErrInvalidData         = &Error{Kind: KindInvalidData}
	ErrNotFound            = &Error{Kind: KindNotFound}
	ErrInvalidInput        = &Error{Kind: KindInvalidInput}
)

// Error is the structured error type used throughout the decoder
type Error struct {
	Value     any
	Cause     error
	Phase     Phase
	Kind      Kind
	Detail    string
	Path      []string
	Offset    int64
	HasOffset bool
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.HasOffset {
		fmt.Fprintf(&b, " (offset 0x%x)", e.Offset)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// An empty target Phase matches any phase.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		if t.Phase == "" {
			return e.Kind == t.Kind
		}
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Offset sets the byte offset that triggered the error
func (b *Builder) Offset(off int64) *Builder {
	b.err.Offset = off
	b.err.HasOffset = true
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// OutOfBounds creates a cursor overrun error
func OutOfBounds(phase Phase, offset, need, remaining int64) *Error {
	return &Error{
		Phase:     phase,
		Kind:      KindOutOfBounds,
		Detail:    fmt.Sprintf("need %d bytes, %d remain", need, remaining),
		Offset:    offset,
		HasOffset: true,
		Value:     need,
	}
}

// FormatUnsupported creates an error for payloads the decoder declines to handle
func FormatUnsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindFormatUnsupported,
		Detail: what,
	}
}

// UnsupportedMetadata creates an error for non-empty records the decoder does not model
func UnsupportedMetadata(phase Phase, what string, count int64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupportedMetadata,
		Detail: fmt.Sprintf("%s has %d entries", what, count),
		Value:  count,
	}
}

// UnknownProperty creates a stream-stop error for an unregistered property
func UnknownProperty(path []string, offset int64, name, typeName string) *Error {
	return &Error{
		Phase:     PhaseProperties,
		Kind:      KindUnknownProperty,
		Path:      path,
		Detail:    fmt.Sprintf("no decoder for %q (declared %s)", name, typeName),
		Offset:    offset,
		HasOffset: true,
		Value:     name,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// IO creates an error for a failed file or database operation
func IO(phase Phase, cause error, op string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindIO,
		Detail: op,
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// At attributes a lower-level failure to a stage and field path.
// The Kind and offset of a structured cause are kept; other causes become
// KindInvalidData.
func At(phase Phase, cause error, path ...string) *Error {
	e := &Error{
		Phase: phase,
		Kind:  KindInvalidData,
		Path:  path,
		Cause: cause,
	}
	var se *Error
	if stderrors.As(cause, &se) {
		e.Kind = se.Kind
		e.Offset = se.Offset
		e.HasOffset = se.HasOffset
	}
	return e
}

// KindOf returns the Kind of the first structured error in the chain.
func KindOf(err error) Kind {
	var se *Error
	if stderrors.As(err, &se) {
		return se.Kind
	}
	return ""
}

// Is forwards to the standard library so callers need a single import.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As forwards to the standard library so callers need a single import.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}
