package typeguard

import (
	"fmt"
	"reflect"
	"strconv"
	"unsafe"
	"weak"
)

// LiteralType accepts exactly one value. Numbers compare by numeric value, other
// comparable values with ==, and non-comparable values structurally.
type LiteralType struct {
	leaf
	value any
	key   any
}

func (l *LiteralType) Kind() Kind { return KindLiteral }

func (l *LiteralType) IsValid(v any) bool {
	v = unwrap(v)
	if l.key == nil {
		return DeepEqual(l.value, v)
	}
	k, ok := literalKey(v)
	return ok && k == l.key
}

func (l *LiteralType) Initialize() any { return l.value }

func (l *LiteralType) String() string { return formatLiteral(l.value) }

// Value returns the accepted value.
func (l *LiteralType) Value() any { return l.value }

// literalKey normalizes v into a map key; ok is false for non-comparable values.
func literalKey(v any) (any, bool) {
	if v == nil {
		return nil, false
	}
	if k, ok := numberKey(v); ok {
		return k, true
	}
	if !reflect.TypeOf(v).Comparable() {
		return nil, false
	}
	return v, true
}

// exactInt keys an integer that float64 cannot represent exactly.
type exactInt struct {
	neg bool
	abs uint64
}

// numberKey normalizes a number so equal values of different Go kinds share
// a key. Integers beyond float64 precision keep their exact value.
func numberKey(v any) (any, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := rv.Int()
		if f := float64(n); f >= -(1<<63) && f < 1<<63 && int64(f) == n {
			return f, true
		}
		if n < 0 {
			return exactInt{neg: true, abs: uint64(-n)}, true
		}
		return exactInt{abs: uint64(n)}, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n := rv.Uint()
		if f := float64(n); f < 1<<64 && uint64(f) == n {
			return f, true
		}
		return exactInt{abs: n}, true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return nil, false
	}
}

func formatLiteral(v any) string {
	switch t := v.(type) {
	case string:
		return strconv.Quote(t)
	case fmt.Stringer:
		return t.String()
	}
	if k, ok := numberKey(v); ok {
		if e, exact := k.(exactInt); exact {
			if e.neg {
				return "-" + strconv.FormatUint(e.abs, 10)
			}
			return strconv.FormatUint(e.abs, 10)
		}
		return strconv.FormatFloat(k.(float64), 'g', -1, 64)
	}
	return fmt.Sprintf("%v", v)
}

// Instance accepts exactly one object identity. It references the object
// weakly: an Instance does not keep its object alive, and once the object is
// collected the descriptor accepts nothing.
type Instance struct {
	leaf
	ref  weak.Pointer[byte]
	typ  reflect.Type
	name string
}

func (i *Instance) Kind() Kind { return KindInstance }

func (i *Instance) IsValid(v any) bool {
	p, ok := identity(unwrap(v))
	if !ok {
		return false
	}
	target := i.ref.Value()
	return target != nil && unsafe.Pointer(target) == p
}

// Initialize returns the referenced object, or nil if it has been collected.
func (i *Instance) Initialize() any {
	target := i.ref.Value()
	if target == nil {
		return nil
	}
	if i.typ.Kind() != reflect.Pointer {
		// Maps and channels are a single pointer word.
		p := unsafe.Pointer(target)
		return reflect.NewAt(i.typ, unsafe.Pointer(&p)).Elem().Interface()
	}
	return reflect.NewAt(i.typ.Elem(), unsafe.Pointer(target)).Interface()
}

func (i *Instance) String() string { return i.name }

// identity returns the address behind a non-nil pointer to a sized object,
// a map or a channel.
func identity(v any) (unsafe.Pointer, bool) {
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() || rv.Type().Elem().Size() == 0 {
			return nil, false
		}
	case reflect.Map, reflect.Chan:
		if rv.IsNil() {
			return nil, false
		}
	default:
		return nil, false
	}
	return rv.UnsafePointer(), true
}

// Class accepts values of one Go type: the type itself, a pointer to it, or
// any implementation when the type is an interface.
type Class struct {
	leaf
	typ reflect.Type
}

func (c *Class) Kind() Kind { return KindClass }

func (c *Class) IsValid(v any) bool {
	v = unwrap(v)
	if v == nil {
		return false
	}
	t := reflect.TypeOf(v)
	switch {
	case t == c.typ:
		return true
	case c.typ.Kind() == reflect.Interface:
		return t.Implements(c.typ)
	case t.Kind() == reflect.Pointer:
		return t.Elem() == c.typ
	default:
		return false
	}
}

// Initialize returns a pointer to a zero struct for struct types and the zero
// value otherwise.
func (c *Class) Initialize() any {
	if c.typ.Kind() == reflect.Struct {
		return reflect.New(c.typ).Interface()
	}
	return reflect.Zero(c.typ).Interface()
}

func (c *Class) String() string { return c.typ.String() }

// Type returns the Go type instances must have.
func (c *Class) Type() reflect.Type { return c.typ }
