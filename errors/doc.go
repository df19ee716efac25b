// Package errors provides structured error types for the typeguard library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the key path that was being checked, the kind of the value that
// was received, the canonical signature that was expected, and an optional cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseWrite, errors.KindRejectedWrite).
//		Path("user", "age").
//		Actual("string").
//		Expected("number").
//		Detail("value does not match declared key type").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InvalidShape(path, value, "plain object")
//	err := errors.InvalidArgument(1, value, "number | string")
//
// All errors implement the standard error interface and support errors.Is/As.
// Matching with errors.Is compares Phase and Kind only, so the exported sentinels
// (ErrRejectedWrite, ErrInvalidArgument, ...) can be used as targets.
package errors
