package typeguard

import (
	"reflect"

	"github.com/wippyai/typeguard/errors"
)

// basic is a leaf descriptor defined by a predicate.
type basic struct {
	leaf
	validate func(v any) bool
	init     func() any
	name     string
	kind     Kind
}

func (b *basic) Kind() Kind { return b.kind }
func (b *basic) IsValid(v any) bool { return b.validate(unwrap(v)) }
func (b *basic) Initialize() any { return b.init() }
func (b *basic) String() string { return b.name }

// nullType accepts no values at all.
type nullType struct {
	leaf
}

func (*nullType) Kind() Kind { return KindNull }
func (*nullType) IsValid(any) bool { return false }
func (*nullType) Initialize() any { return nil }
func (*nullType) String() string { return "null" }

// EditValue always fails: nothing can be stored into a null-typed slot.
func (*nullType) EditValue(v any) (any, error) {
	return nil, errors.NullTypeViolation(nil, v, kindOf(v))
}

var (
	// Null is the descriptor of Type() with no hints. It accepts nothing.
	Null Descriptor = &nullType{}

	// Any accepts every value. Undefined as a hint resolves to Any.
	Any Descriptor = &basic{
		kind:     KindAny,
		name:     "any",
		validate: func(any) bool { return true },
		init:     func() any { return Undefined },
	}

	Boolean Descriptor = &basic{
		kind:     KindBoolean,
		name:     "boolean",
		validate: func(v any) bool { return v != nil && reflect.TypeOf(v).Kind() == reflect.Bool },
		init:     func() any { return false },
	}

	// Number accepts every Go integer and float kind.
	Number Descriptor = &basic{
		kind:     KindNumber,
		name:     "number",
		validate: func(v any) bool { return v != nil && isNumberKind(reflect.TypeOf(v).Kind()) },
		init:     func() any { return float64(0) },
	}

	String Descriptor = &basic{
		kind:     KindString,
		name:     "string",
		validate: func(v any) bool { return v != nil && reflect.TypeOf(v).Kind() == reflect.String },
		init:     func() any { return "" },
	}

	// Object accepts string-keyed maps and structs, including pointers to structs.
	Object Descriptor = &basic{
		kind:     KindObject,
		name:     "object",
		validate: isObject,
		init:     func() any { return map[string]any{} },
	}

	// Array accepts any slice or array.
	Array Descriptor = &basic{
		kind: KindArray,
		name: "array",
		validate: func(v any) bool {
			_, ok := asSlice(v)
			return ok
		},
		init: func() any { return []any{} },
	}

	Symbol Descriptor = &basic{
		kind: KindSymbol,
		name: "symbol",
		validate: func(v any) bool {
			s, ok := v.(*SymbolValue)
			return ok && s != nil
		},
		init: func() any { return NewSymbol("") },
	}

	Function Descriptor = &basic{
		kind:     KindFunction,
		name:     "function",
		validate: isCallable,
		init:     func() any { return noop },
	}
)

var noop Callable = func(...any) (any, error) { return Undefined, nil }

func isObject(v any) bool {
	if _, ok := asMap(v); ok {
		return true
	}
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	return rv.Kind() == reflect.Struct
}

// NewBaseType creates an ad hoc leaf descriptor, for example an integer
// refinement of Number. Base types are not memoized: every call returns a
// distinct descriptor. defaultValue is returned by Initialize; when it is a
// func() any it is called to produce a fresh default each time.
func NewBaseType(validate func(v any) bool, name string, defaultValue any) Descriptor {
	init := func() any { return defaultValue }
	if f, ok := defaultValue.(func() any); ok {
		init = f
	}
	return &basic{
		kind:     KindCustom,
		name:     name,
		validate: validate,
		init:     init,
	}
}

// Integer is a Number refinement accepting only whole numbers.
var Integer = NewBaseType(IsInteger, "integer", float64(0))
