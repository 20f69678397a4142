// Package errors provides structured error types for the package decoder.
//
// Errors are categorized by Phase (which decode stage failed) and Kind (error
// category). The Error type carries the field path, the byte offset that
// triggered the failure and the cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseExports, errors.KindOutOfBounds).
//		Path("exports", "3").
//		Offset(0x4a0).
//		Detail("serial range exceeds file length").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.OutOfBounds(errors.PhaseRead, offset, 4, remaining)
//	err := errors.FormatUnsupported(errors.PhaseHeader, "compressed package")
//
// A target with an empty Phase matches on Kind alone, so callers can test the
// failure category without knowing the stage:
//
//	if errors.Is(err, errors.ErrOutOfBounds) { ... }
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
