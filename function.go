package typeguard

import (
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/wippyai/typeguard/errors"
)

// Callable is the canonical form of a function value.
type Callable func(args ...any) (any, error)

// Method is a callable that receives its receiver explicitly. Wrapping a
// Method passes the receiver through unchanged.
type Method func(self any, args ...any) (any, error)

// ReturnHint marks the end of an overload in Func.
type ReturnHint struct {
	hint any
}

// Returns closes the overload built so far with the given return type.
func Returns(hint any) ReturnHint {
	return ReturnHint{hint: hint}
}

// Overload is one call signature.
type Overload struct {
	Return Descriptor
	Params []Descriptor
}

func (o Overload) String() string {
	parts := make([]string, len(o.Params))
	for i, p := range o.Params {
		parts[i] = p.String()
	}
	return "(" + strings.Join(parts, ", ") + ") => " + signature(o.Return)
}

func (o Overload) equal(other Overload) bool {
	return o.Return == other.Return && slices.Equal(o.Params, other.Params)
}

// acceptsMissing reports whether the parameters from position n on accept
// Undefined, so the overload can be called with only n arguments.
func (o Overload) acceptsMissing(n int) bool {
	for _, p := range o.Params[min(n, len(o.Params)):] {
		if !p.IsValid(Undefined) {
			return false
		}
	}
	return true
}

// TypedFunction describes one or more overloads. A function value is valid
// when it is callable; signatures are checked per call by the wrapper
// EditValue returns.
type TypedFunction struct {
	overloads []Overload
	name      string
}

func newTypedFunction(overloads []Overload) *TypedFunction {
	parts := make([]string, len(overloads))
	for i, o := range overloads {
		parts[i] = o.String()
		if len(overloads) > 1 {
			parts[i] = "(" + parts[i] + ")"
		}
	}
	return &TypedFunction{overloads: overloads, name: strings.Join(parts, " & ")}
}

func (f *TypedFunction) Kind() Kind { return KindFunc }

func (f *TypedFunction) IsValid(v any) bool { return isCallable(unwrap(v)) }

func (f *TypedFunction) IsValidAt(key, v any) bool { return false }

func (f *TypedFunction) SubtypeAt(key any) Descriptor { return nil }

// Initialize returns a stub that returns the default of the first overload's
// return type without running any logic.
func (f *TypedFunction) Initialize() any {
	ret := f.overloads[0].Return
	return Callable(func(...any) (any, error) {
		return ret.Initialize(), nil
	})
}

func (f *TypedFunction) String() string { return f.name }

// Overloads returns the call signatures in declaration order.
func (f *TypedFunction) Overloads() []Overload {
	return slices.Clone(f.overloads)
}

// sameOverloads reports whether a and b hold the same overloads in any order.
func sameOverloads(a, b []Overload) bool {
	return len(a) == len(b) && containsAll(a, b) && containsAll(b, a)
}

func containsAll(set, items []Overload) bool {
	for _, o := range items {
		if !slices.ContainsFunc(set, o.equal) {
			return false
		}
	}
	return true
}

// EditValue wraps a callable so every call is checked against the overloads.
// Callable and Method values keep their type; other Go functions are invoked
// through reflection and returned as a Callable. Non-callable values are
// returned unchanged.
func (f *TypedFunction) EditValue(v any) (any, error) {
	switch fn := v.(type) {
	case Callable:
		return Callable(func(args ...any) (any, error) {
			return f.call(args, func() (any, error) { return fn(args...) })
		}), nil
	case func(args ...any) (any, error):
		return f.EditValue(Callable(fn))
	case Method:
		return Method(func(self any, args ...any) (any, error) {
			return f.call(args, func() (any, error) { return fn(self, args...) })
		}), nil
	}
	if !isCallable(v) {
		return v, nil
	}
	rv := reflect.ValueOf(v)
	return Callable(func(args ...any) (any, error) {
		return f.call(args, func() (any, error) { return callReflect(rv, args) })
	}), nil
}

// call narrows the overloads argument by argument, runs invoke, and checks
// the result against the overloads that survived.
func (f *TypedFunction) call(args []any, invoke func() (any, error)) (any, error) {
	possible := f.overloads
	for i, arg := range args {
		var next []Overload
		for _, o := range possible {
			if i < len(o.Params) && o.Params[i].IsValid(arg) {
				next = append(next, o)
			}
		}
		if len(next) == 0 {
			return nil, errors.InvalidArgument(i, arg, kindOf(arg), paramsAt(possible, i))
		}
		possible = next
	}

	var next []Overload
	for _, o := range possible {
		if o.acceptsMissing(len(args)) {
			next = append(next, o)
		}
	}
	if len(next) == 0 {
		return nil, errors.InvalidArgument(len(args), Undefined, "undefined", paramsAt(possible, len(args)))
	}
	possible = next

	result, err := invoke()
	if err != nil {
		return nil, err
	}

	for _, o := range possible {
		if o.Return.IsValid(result) {
			return result, nil
		}
	}
	return nil, errors.InvalidReturn(result, kindOf(result), returnsOf(possible))
}

// paramsAt renders the parameter types still possible at position i.
func paramsAt(overloads []Overload, i int) string {
	set := NewComparableSet()
	for _, o := range overloads {
		if i < len(o.Params) {
			set.Add(o.Params[i])
		}
	}
	return joinSignatures(set.Items(), "no parameter")
}

func returnsOf(overloads []Overload) string {
	set := NewComparableSet()
	for _, o := range overloads {
		set.Add(o.Return)
	}
	return joinSignatures(set.Items(), "nothing")
}

func joinSignatures(ds []Descriptor, empty string) string {
	if len(ds) == 0 {
		return empty
	}
	parts := make([]string, len(ds))
	for i, d := range ds {
		parts[i] = signature(d)
	}
	return strings.Join(parts, " | ")
}

var errorType = reflect.TypeFor[error]()

// callReflect invokes an arbitrary Go function. Missing arguments are passed
// as zero values. A trailing error result is returned as the call error, no
// results yield Undefined and several results are returned as a slice.
func callReflect(fn reflect.Value, args []any) (any, error) {
	ft := fn.Type()
	if !ft.IsVariadic() && len(args) > ft.NumIn() {
		return nil, errors.New(errors.PhaseCall, errors.KindInvalidArgument).
			Detail("function %s takes %d arguments, got %d", ft, ft.NumIn(), len(args)).
			Build()
	}
	fixed := ft.NumIn()
	if ft.IsVariadic() {
		fixed--
	}
	for len(args) < fixed {
		args = append(slices.Clip(args), Undefined)
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		var pt reflect.Type
		if ft.IsVariadic() && i >= ft.NumIn()-1 {
			pt = ft.In(ft.NumIn() - 1).Elem()
		} else {
			pt = ft.In(i)
		}
		av, err := argValue(arg, pt, i)
		if err != nil {
			return nil, err
		}
		in[i] = av
	}

	out := fn.Call(in)
	if n := len(out); n > 0 && ft.Out(n-1) == errorType {
		if !out[n-1].IsNil() {
			return nil, out[n-1].Interface().(error)
		}
		out = out[:n-1]
	}
	switch len(out) {
	case 0:
		return Undefined, nil
	case 1:
		return out[0].Interface(), nil
	default:
		results := make([]any, len(out))
		for i, o := range out {
			results[i] = o.Interface()
		}
		return results, nil
	}
}

func argValue(arg any, pt reflect.Type, i int) (reflect.Value, error) {
	if isNullish(arg) {
		return reflect.Zero(pt), nil
	}
	av := reflect.ValueOf(unwrap(arg))
	switch {
	case av.Type().AssignableTo(pt):
		return av, nil
	case av.Type().ConvertibleTo(pt) && isNumberKind(av.Kind()) == isNumberKind(pt.Kind()):
		return av.Convert(pt), nil
	default:
		return reflect.Value{}, errors.New(errors.PhaseCall, errors.KindInvalidArgument).
			Path("arg["+strconv.Itoa(i)+"]").
			Actual(av.Type().String()).
			Expected(pt.String()).
			Detail("argument cannot be passed to the underlying Go function").
			Build()
	}
}
