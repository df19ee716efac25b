package typeguard

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/wippyai/typeguard/errors"
)

// Editable is an interception wrapper around a composite value. Writes go
// through Set, which validates them against the declared shape before they
// are committed. A rejected write returns an error matching
// errors.ErrRejectedWrite and leaves the container unchanged.
//
// Editable values are not safe for concurrent use.
type Editable interface {
	// Descriptor returns the descriptor the value is checked against.
	Descriptor() Descriptor

	// Get returns the element stored under key. Composite elements are
	// returned wrapped, so writes to them are intercepted as well.
	Get(key any) (any, bool)

	// Set validates and stores v under key.
	Set(key, v any) error

	// Len returns the number of elements or keys.
	Len() int

	// Value returns the underlying container.
	Value() any
}

// unwrap strips one Editable level.
func unwrap(v any) any {
	if e, ok := v.(Editable); ok {
		return e.Value()
	}
	return v
}

// Unwrap converts a value tree that may contain Editable wrappers back into
// plain maps and slices.
func Unwrap(v any) any {
	v = unwrap(v)
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = Unwrap(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Unwrap(e)
		}
		return out
	default:
		return v
	}
}

// keyName renders a container key for paths and log fields.
func keyName(key any) string {
	switch k := key.(type) {
	case string:
		return k
	case int:
		return "[" + strconv.Itoa(k) + "]"
	default:
		if i, ok := indexOf(key); ok {
			return "[" + strconv.Itoa(i) + "]"
		}
		return "<invalid key>"
	}
}

// indexOf converts a key to a slice index.
func indexOf(key any) (int, bool) {
	switch k := key.(type) {
	case int:
		return k, k >= 0
	case string:
		return 0, false
	}
	f, ok := toFloat(key)
	if !ok || f < 0 || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

func childPath(path []string, key any) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)
	return append(out, keyName(key))
}

// reject reports a write that was not committed.
func reject(path []string, key, v any, expected Descriptor, reason string) error {
	exp := ""
	if expected != nil {
		exp = expected.String()
	}
	err := errors.RejectedWrite(childPath(path, key), v, kindOf(v), exp, reason)
	Logger().Warn("rejected write",
		zap.Strings("path", err.Path),
		zap.String("actual", err.Actual),
		zap.String("expected", err.Expected),
		zap.String("reason", reason),
	)
	return err
}

// lazyWrap replaces a composite element with its interception wrapper the
// first time it is read.
func lazyWrap(d Descriptor, v any, path []string) (any, bool) {
	if d == nil || !declaresComposite(d) {
		return v, false
	}
	if _, ok := v.(Editable); ok || !isObjectLike(v) {
		return v, false
	}
	wrapped, err := editChild(d, v, path)
	if err != nil {
		return v, false
	}
	if _, ok := wrapped.(Editable); !ok {
		return v, false
	}
	return wrapped, true
}
