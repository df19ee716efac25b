package typeguard

import (
	"reflect"

	"go.uber.org/zap"

	"github.com/wippyai/typeguard/errors"
)

var (
	anyType    = reflect.TypeFor[any]()
	objectType = reflect.TypeFor[map[string]any]()
	arrayType  = reflect.TypeFor[[]any]()
)

// Type normalizes hints into a canonical descriptor:
//
//   - no hints yields Null, several hints yield their union
//   - a Descriptor is returned as is
//   - nil yields Null and Undefined yields Any
//   - a reflect.Type of a built-in kind yields the matching leaf (bool → Boolean,
//     numbers → Number, string → String, map[string]any → Object, []any → Array,
//     functions → Function, any → Any); other types yield a Class
//   - a slice or array yields a TupleOf its elements
//   - a string-keyed map yields a RecordOf
//   - a pointer, a channel or a map with non-string keys yields an Instance
//     matching that exact object
//   - a function value yields Function
//   - anything else yields a Literal matching that exact value
func (r *Registry) Type(hints ...any) Descriptor {
	switch len(hints) {
	case 0:
		return Null
	case 1:
		return r.resolve(hints[0])
	default:
		return r.union(hints)
	}
}

func (r *Registry) resolve(hint any) Descriptor {
	switch h := hint.(type) {
	case nil:
		return Null
	case Descriptor:
		return h
	case undefinedValue:
		return Any
	case ReturnHint:
		return r.resolve(h.hint)
	case reflect.Type:
		return r.fromType(h)
	case []any:
		return r.TupleOf(h...)
	case map[string]any:
		return r.record(h)
	}

	rv := reflect.ValueOf(hint)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		items, _ := asSlice(hint)
		return r.TupleOf(items...)
	case reflect.Map:
		if m, ok := asMap(hint); ok {
			return r.record(m)
		}
		if p, ok := identity(hint); ok {
			return r.instance(hint, p)
		}
	case reflect.Func:
		return Function
	case reflect.Pointer, reflect.Chan:
		if p, ok := identity(hint); ok {
			return r.instance(hint, p)
		}
	}
	return r.literal(hint)
}

func (r *Registry) fromType(t reflect.Type) Descriptor {
	switch t {
	case anyType:
		return Any
	case objectType:
		return Object
	case arrayType:
		return Array
	case symbolType:
		return Symbol
	}
	if t.PkgPath() != "" {
		return r.class(t)
	}
	switch k := t.Kind(); {
	case k == reflect.Bool:
		return Boolean
	case k == reflect.String:
		return String
	case isNumberKind(k):
		return Number
	case k == reflect.Func:
		return Function
	case k == reflect.Slice || k == reflect.Array:
		return Array
	case k == reflect.Map && t.Key().Kind() == reflect.String:
		return Object
	default:
		return r.class(t)
	}
}

// union flattens nested unions, drops Null (which accepts nothing) and
// deduplicates members.
func (r *Registry) union(hints []any) Descriptor {
	set := NewComparableSet()
	var add func(d Descriptor)
	add = func(d Descriptor) {
		if u, ok := d.(*UnionType); ok {
			for _, m := range u.members {
				add(m)
			}
			return
		}
		if d != Null {
			set.Add(d)
		}
	}
	for _, h := range hints {
		add(r.resolve(h))
	}

	switch set.Len() {
	case 0:
		return Null
	case 1:
		return set.items[0]
	default:
		return r.unionOf(set)
	}
}

// OneOf is Type with at least one hint; it documents union intent.
func (r *Registry) OneOf(hint any, hints ...any) Descriptor {
	return r.Type(append([]any{hint}, hints...)...)
}

// ArrayOf describes slices of the given element type. Several hints describe
// slices whose elements match any of them.
func (r *Registry) ArrayOf(hint any, hints ...any) Descriptor {
	return r.arrayOf(r.OneOf(hint, hints...))
}

// TupleOf describes fixed-length slices with one type per position.
func (r *Registry) TupleOf(hints ...any) Descriptor {
	items := make([]Descriptor, len(hints))
	for i, h := range hints {
		items[i] = r.resolve(h)
	}
	return r.tupleOf(items)
}

// RecordOf describes closed string-keyed maps. shape must be a string-keyed
// map of hints; anything else fails with an invalid_shape error. Extra
// arguments are ignored with a warning.
func (r *Registry) RecordOf(shape any, extra ...any) (Descriptor, error) {
	if len(extra) > 0 {
		Logger().Warn("recordOf takes a single shape; extra arguments ignored",
			zap.Int("extra", len(extra)))
	}
	if rec, ok := shape.(*RecordType); ok {
		return rec, nil
	}
	if _, isList := asSlice(shape); isList {
		return nil, errors.InvalidShape(nil, shape, kindOf(shape))
	}
	m, ok := asMap(shape)
	if !ok {
		return nil, errors.InvalidShape(nil, shape, kindOf(shape))
	}
	return r.record(m), nil
}

// MustRecordOf is like RecordOf but panics on an invalid shape.
func (r *Registry) MustRecordOf(shape any) Descriptor {
	d, err := r.RecordOf(shape)
	if err != nil {
		panic(err)
	}
	return d
}

func (r *Registry) record(shape map[string]any) Descriptor {
	fields := make(map[string]Descriptor, len(shape))
	for k, h := range shape {
		fields[k] = r.resolve(h)
	}
	return r.recordOf(fields)
}

// Nullable describes values that may also be nil or Undefined.
func (r *Registry) Nullable(hint any) Descriptor {
	inner := r.resolve(hint)
	if n, ok := inner.(*NullableType); ok {
		return n
	}
	return r.nullable(inner)
}

// Literal describes exactly one value.
func (r *Registry) Literal(v any) Descriptor {
	return r.literal(v)
}

// Func describes a typed function. Hints are parameter types; a return
// marker (Returns(hint), or a zero-argument function returning the hint)
// closes the current overload and starts a new one. Parameters left after
// the last marker form a final overload returning Any.
func (r *Registry) Func(hints ...any) Descriptor {
	var overloads []Overload
	var params []Descriptor
	for _, h := range hints {
		if ret, ok := returnMarker(h); ok {
			overloads = addOverload(overloads, Overload{Params: params, Return: r.resolve(ret)})
			params = nil
			continue
		}
		params = append(params, r.resolve(h))
	}
	if len(params) > 0 || len(overloads) == 0 {
		overloads = addOverload(overloads, Overload{Params: params, Return: Any})
	}
	return r.typedFunction(overloads)
}

// addOverload appends o unless an equal overload is already declared.
func addOverload(overloads []Overload, o Overload) []Overload {
	for _, known := range overloads {
		if known.equal(o) {
			return overloads
		}
	}
	return append(overloads, o)
}

func returnMarker(h any) (any, bool) {
	switch m := h.(type) {
	case ReturnHint:
		return m.hint, true
	case func() any:
		return m(), true
	case Descriptor, nil:
		return nil, false
	}
	rv := reflect.ValueOf(h)
	if rv.Kind() != reflect.Func || rv.IsNil() {
		return nil, false
	}
	if t := rv.Type(); t.NumIn() == 0 && t.NumOut() == 1 {
		return rv.Call(nil)[0].Interface(), true
	}
	return nil, false
}

// Package-level factories use the Default registry.

// Type normalizes hints into a canonical descriptor using the default registry.
func Type(hints ...any) Descriptor { return Default().Type(hints...) }

// OneOf describes a union using the default registry.
func OneOf(hint any, hints ...any) Descriptor { return Default().OneOf(hint, hints...) }

// ArrayOf describes slices using the default registry.
func ArrayOf(hint any, hints ...any) Descriptor { return Default().ArrayOf(hint, hints...) }

// TupleOf describes fixed-length slices using the default registry.
func TupleOf(hints ...any) Descriptor { return Default().TupleOf(hints...) }

// RecordOf describes closed string-keyed maps using the default registry.
func RecordOf(shape any, extra ...any) (Descriptor, error) {
	return Default().RecordOf(shape, extra...)
}

// MustRecordOf is like RecordOf but panics on an invalid shape.
func MustRecordOf(shape any) Descriptor { return Default().MustRecordOf(shape) }

// Nullable describes values that may be nil or Undefined using the default registry.
func Nullable(hint any) Descriptor { return Default().Nullable(hint) }

// Literal describes exactly one value using the default registry.
func Literal(v any) Descriptor { return Default().Literal(v) }

// Func describes a typed function using the default registry.
func Func(hints ...any) Descriptor { return Default().Func(hints...) }
