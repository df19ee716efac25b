package typeguard

import (
	"fmt"
	"math"
	"reflect"
)

type undefinedValue struct{}

func (undefinedValue) String() string { return "undefined" }

// Undefined marks an absent value: a missing record key, an unset field or
// the result of a function that returns nothing. It is distinct from nil,
// which represents null.
var Undefined = undefinedValue{}

// SymbolValue is a unique, identity-compared token.
type SymbolValue struct {
	description string
}

// NewSymbol creates a symbol that is equal only to itself.
func NewSymbol(description string) *SymbolValue {
	return &SymbolValue{description: description}
}

func (s *SymbolValue) String() string {
	return "Symbol(" + s.description + ")"
}

// Description returns the label the symbol was created with.
func (s *SymbolValue) Description() string {
	return s.description
}

var symbolType = reflect.TypeFor[*SymbolValue]()

func isNullish(v any) bool {
	return v == nil || v == any(Undefined)
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// toFloat converts any Go number to float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}

// ToNumber converts any Go number, possibly wrapped, to float64.
func ToNumber(v any) (float64, bool) {
	return toFloat(unwrap(v))
}

// IsInteger reports whether v is a number with no fractional part.
func IsInteger(v any) bool {
	f, ok := toFloat(unwrap(v))
	return ok && !math.IsInf(f, 0) && f == math.Trunc(f)
}

// asSlice returns v as []any. Slices of other element types are copied.
func asSlice(v any) ([]any, bool) {
	if s, ok := v.([]any); ok {
		return s, true
	}
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// asMap returns v as map[string]any. Other string-keyed maps are copied.
func asMap(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, m != nil
	}
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String || rv.IsNil() {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

func isCallable(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Func && !rv.IsNil()
}

// isObjectLike reports whether v is a container whose keys can be written.
func isObjectLike(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return true
	}
	if _, ok := asSlice(v); ok {
		return true
	}
	_, ok := asMap(v)
	return ok
}

// KindOfValue names the dynamic kind of v as it appears in error messages:
// null, undefined, boolean, number, string, array, object, function or
// symbol, and the Go type name for anything else.
func KindOfValue(v any) string { return kindOf(v) }

// kindOf names the dynamic kind of v for diagnostics.
func kindOf(v any) string {
	v = unwrap(v)
	switch v.(type) {
	case nil:
		return "null"
	case undefinedValue:
		return "undefined"
	case *SymbolValue:
		return "symbol"
	}
	rv := reflect.ValueOf(v)
	switch k := rv.Kind(); {
	case k == reflect.Bool:
		return "boolean"
	case k == reflect.String:
		return "string"
	case isNumberKind(k):
		return "number"
	case k == reflect.Slice || k == reflect.Array:
		return "array"
	case k == reflect.Map && rv.Type().Key().Kind() == reflect.String:
		return "object"
	case k == reflect.Func:
		return "function"
	default:
		return fmt.Sprintf("%T", v)
	}
}
