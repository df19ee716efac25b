package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseConstruct Phase = "construct" // descriptor construction
	PhaseValidate  Phase = "validate"  // value validation
	PhaseWrite     Phase = "write"     // intercepted in-place write
	PhaseCall      Phase = "call"      // typed function invocation
	PhaseSchema    Phase = "schema"    // schema document compilation
	PhaseConfig    Phase = "config"    // configuration loading
)

// Kind categorizes the error
type Kind string

const (
	KindNullTypeViolation Kind = "null_type_violation"
	KindInvalidShape      Kind = "invalid_shape"
	KindInvalidArgument   Kind = "invalid_argument"
	KindInvalidReturn     Kind = "invalid_return"
	KindRejectedWrite     Kind = "rejected_write"
	KindInvalidHint       Kind = "invalid_hint"
	KindInvalidValue      Kind = "invalid_value"
	KindUnsupported       Kind = "unsupported"
	KindParse             Kind = "parse"
)

// Sentinels for errors.Is matching.
var (
	ErrNullTypeViolation = &Error{Phase: PhaseWrite, Kind: KindNullTypeViolation}
	ErrInvalidShape      = &Error{Phase: PhaseConstruct, Kind: KindInvalidShape}
	ErrInvalidArgument   = &Error{Phase: PhaseCall, Kind: KindInvalidArgument}
	ErrInvalidReturn     = &Error{Phase: PhaseCall, Kind: KindInvalidReturn}
	ErrRejectedWrite     = &Error{Phase: PhaseWrite, Kind: KindRejectedWrite}
)

// Error is the structured error type used throughout the library
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	Actual   string
	Expected string
	Detail   string
	Path     []string
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

	if e.Actual != "" || e.Expected != "" {
		b.WriteString(": ")
		if e.Actual != "" && e.Expected != "" {
			b.WriteString("got ")
			b.WriteString(e.Actual)
			b.WriteString(", expected ")
			b.WriteString(e.Expected)
		} else if e.Actual != "" {
			b.WriteString("got ")
			b.WriteString(e.Actual)
		} else {
			b.WriteString("expected ")
			b.WriteString(e.Expected)
		}
	}

	if e.Detail != "" {
		if e.Actual != "" || e.Expected != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
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

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
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

// Path sets the key path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Actual sets the kind of the received value
func (b *Builder) Actual(t string) *Builder {
	b.err.Actual = t
	return b
}

// Expected sets the canonical signature that was expected
func (b *Builder) Expected(t string) *Builder {
	b.err.Expected = t
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

// NullTypeViolation creates an error for a write into a descriptor that accepts nothing
func NullTypeViolation(path []string, value any, actual string) *Error {
	return &Error{
		Phase:    PhaseWrite,
		Kind:     KindNullTypeViolation,
		Path:     path,
		Actual:   actual,
		Expected: "null",
		Detail:   fmt.Sprintf("cannot assign %v to a type that accepts no values", preview(value)),
		Value:    value,
	}
}

// InvalidShape creates an error for a record shape that is not a plain object
func InvalidShape(path []string, value any, actual string) *Error {
	return &Error{
		Phase:    PhaseConstruct,
		Kind:     KindInvalidShape,
		Path:     path,
		Actual:   actual,
		Expected: "plain object",
		Detail:   fmt.Sprintf("record shape must be a string-keyed map, got %v", preview(value)),
		Value:    value,
	}
}

// InvalidArgument creates an error for a call argument no remaining overload accepts
func InvalidArgument(position int, value any, actual, possible string) *Error {
	return &Error{
		Phase:    PhaseCall,
		Kind:     KindInvalidArgument,
		Path:     []string{fmt.Sprintf("arg[%d]", position)},
		Actual:   actual,
		Expected: possible,
		Detail:   fmt.Sprintf("argument %d (%v) matches no remaining overload", position, preview(value)),
		Value:    value,
	}
}

// InvalidReturn creates an error for a result no remaining overload accepts
func InvalidReturn(value any, actual, possible string) *Error {
	return &Error{
		Phase:    PhaseCall,
		Kind:     KindInvalidReturn,
		Path:     []string{"return"},
		Actual:   actual,
		Expected: possible,
		Detail:   fmt.Sprintf("return value %v matches no remaining overload", preview(value)),
		Value:    value,
	}
}

// RejectedWrite creates an error for an intercepted write that was not committed
func RejectedWrite(path []string, value any, actual, expected, reason string) *Error {
	return &Error{
		Phase:    PhaseWrite,
		Kind:     KindRejectedWrite,
		Path:     path,
		Actual:   actual,
		Expected: expected,
		Detail:   reason,
		Value:    value,
	}
}

// InvalidValue creates a validation error for a whole document
func InvalidValue(path []string, value any, actual, expected string) *Error {
	return &Error{
		Phase:    PhaseValidate,
		Kind:     KindInvalidValue,
		Path:     path,
		Actual:   actual,
		Expected: expected,
		Value:    value,
	}
}

// Unsupported creates an error for an input the library cannot express
func Unsupported(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Path:   path,
		Detail: detail,
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

// preview keeps long values out of messages.
func preview(v any) string {
	s := fmt.Sprintf("%#v", v)
	if len(s) > 64 {
		s = s[:61] + "..."
	}
	return s
}
