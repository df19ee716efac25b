// Package witshape derives typeguard descriptors from WebAssembly Interface
// Types, so values crossing a component boundary can be checked in Go.
//
// Mapping:
//
//	bool                 -> Boolean
//	u8..u64, s8..s64     -> range-checked integer leaves (U8 ... S64)
//	f32, f64             -> Number
//	char, string         -> String
//	record               -> RecordOf, keyed by field name
//	list<T>              -> ArrayOf(T)
//	tuple<...>           -> TupleOf(...)
//	option<T>            -> Nullable(T)
//	enum                 -> union of case-name literals
//	flags                -> ArrayOf(union of flag-name literals)
//	result<T, E>         -> {ok: T} | {err: E}
//	variant              -> {tag: "<case>", value: T} per case
//
// Resource handles (own, borrow) are unsupported.
package witshape

import (
	"math"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/typeguard"
	"github.com/wippyai/typeguard/errors"
)

// Integer leaves, one per WIT integer kind.
var (
	U8  = intLeaf("u8", 0, math.MaxUint8)
	U16 = intLeaf("u16", 0, math.MaxUint16)
	U32 = intLeaf("u32", 0, math.MaxUint32)
	U64 = intLeaf("u64", 0, math.MaxUint64)
	S8  = intLeaf("s8", math.MinInt8, math.MaxInt8)
	S16 = intLeaf("s16", math.MinInt16, math.MaxInt16)
	S32 = intLeaf("s32", math.MinInt32, math.MaxInt32)
	S64 = intLeaf("s64", math.MinInt64, math.MaxInt64)
)

func intLeaf(name string, lo, hi float64) typeguard.Descriptor {
	return typeguard.NewBaseType(func(v any) bool {
		f, ok := typeguard.ToNumber(v)
		return ok && typeguard.IsInteger(f) && f >= lo && f <= hi
	}, name, float64(0))
}

// Converter maps WIT types to descriptors of one registry. Type definitions
// are converted once per converter.
type Converter struct {
	reg   *typeguard.Registry
	cache map[*wit.TypeDef]typeguard.Descriptor
}

// NewConverter creates a converter bound to reg. A nil reg uses the default
// registry.
func NewConverter(reg *typeguard.Registry) *Converter {
	if reg == nil {
		reg = typeguard.Default()
	}
	return &Converter{reg: reg, cache: make(map[*wit.TypeDef]typeguard.Descriptor)}
}

// FromWIT converts t using the default registry.
func FromWIT(t wit.Type) (typeguard.Descriptor, error) {
	return NewConverter(nil).Convert(t)
}

// Convert returns the descriptor for t.
func (c *Converter) Convert(t wit.Type) (typeguard.Descriptor, error) {
	return c.convert(t, nil)
}

// Signature describes a component function with the given parameter and
// result types. No results return Any; several results return a tuple.
func (c *Converter) Signature(params, results []wit.Type) (typeguard.Descriptor, error) {
	hints := make([]any, 0, len(params)+1)
	for i, p := range params {
		d, err := c.convert(p, []string{"param", itoa(i)})
		if err != nil {
			return nil, err
		}
		hints = append(hints, d)
	}

	var ret typeguard.Descriptor = typeguard.Any
	switch len(results) {
	case 0:
	case 1:
		d, err := c.convert(results[0], []string{"result"})
		if err != nil {
			return nil, err
		}
		ret = d
	default:
		items := make([]any, len(results))
		for i, r := range results {
			d, err := c.convert(r, []string{"result", itoa(i)})
			if err != nil {
				return nil, err
			}
			items[i] = d
		}
		ret = c.reg.TupleOf(items...)
	}
	return c.reg.Func(append(hints, typeguard.Returns(ret))...), nil
}

func (c *Converter) convert(t wit.Type, path []string) (typeguard.Descriptor, error) {
	switch t := t.(type) {
	case wit.Bool:
		return typeguard.Boolean, nil
	case wit.U8:
		return U8, nil
	case wit.U16:
		return U16, nil
	case wit.U32:
		return U32, nil
	case wit.U64:
		return U64, nil
	case wit.S8:
		return S8, nil
	case wit.S16:
		return S16, nil
	case wit.S32:
		return S32, nil
	case wit.S64:
		return S64, nil
	case wit.F32, wit.F64:
		return typeguard.Number, nil
	case wit.Char, wit.String:
		return typeguard.String, nil
	case *wit.TypeDef:
		if d, ok := c.cache[t]; ok {
			return d, nil
		}
		d, err := c.typeDef(t, path)
		if err != nil {
			return nil, err
		}
		c.cache[t] = d
		return d, nil
	default:
		return nil, errors.Unsupported(errors.PhaseConstruct, path, "unsupported WIT type: "+typeName(t))
	}
}

func (c *Converter) typeDef(t *wit.TypeDef, path []string) (typeguard.Descriptor, error) {
	switch kind := t.Kind.(type) {
	case *wit.Record:
		shape := make(map[string]any, len(kind.Fields))
		for _, f := range kind.Fields {
			d, err := c.convert(f.Type, sub(path, f.Name))
			if err != nil {
				return nil, err
			}
			shape[f.Name] = d
		}
		return c.reg.RecordOf(shape)

	case *wit.List:
		elem, err := c.convert(kind.Type, sub(path, "[]"))
		if err != nil {
			return nil, err
		}
		return c.reg.ArrayOf(elem), nil

	case *wit.Tuple:
		items := make([]any, len(kind.Types))
		for i, it := range kind.Types {
			d, err := c.convert(it, sub(path, itoa(i)))
			if err != nil {
				return nil, err
			}
			items[i] = d
		}
		return c.reg.TupleOf(items...), nil

	case *wit.Option:
		inner, err := c.convert(kind.Type, path)
		if err != nil {
			return nil, err
		}
		return c.reg.Nullable(inner), nil

	case *wit.Enum:
		if len(kind.Cases) == 0 {
			return nil, errors.Unsupported(errors.PhaseConstruct, path, "enum without cases")
		}
		names := make([]any, len(kind.Cases))
		for i, ec := range kind.Cases {
			names[i] = c.reg.Literal(ec.Name)
		}
		return c.reg.OneOf(names[0], names[1:]...), nil

	case *wit.Flags:
		if len(kind.Flags) == 0 {
			return c.reg.TupleOf(), nil
		}
		names := make([]any, len(kind.Flags))
		for i, f := range kind.Flags {
			names[i] = c.reg.Literal(f.Name)
		}
		return c.reg.ArrayOf(names[0], names[1:]...), nil

	case *wit.Result:
		ok, err := c.resultArm(kind.OK, sub(path, "ok"))
		if err != nil {
			return nil, err
		}
		fail, err := c.resultArm(kind.Err, sub(path, "err"))
		if err != nil {
			return nil, err
		}
		okRec, err := c.reg.RecordOf(map[string]any{"ok": ok})
		if err != nil {
			return nil, err
		}
		errRec, err := c.reg.RecordOf(map[string]any{"err": fail})
		if err != nil {
			return nil, err
		}
		return c.reg.OneOf(okRec, errRec), nil

	case *wit.Variant:
		if len(kind.Cases) == 0 {
			return nil, errors.Unsupported(errors.PhaseConstruct, path, "variant without cases")
		}
		arms := make([]any, len(kind.Cases))
		for i, vc := range kind.Cases {
			shape := map[string]any{"tag": c.reg.Literal(vc.Name)}
			if vc.Type != nil {
				d, err := c.convert(vc.Type, sub(path, vc.Name))
				if err != nil {
					return nil, err
				}
				shape["value"] = d
			}
			arm, err := c.reg.RecordOf(shape)
			if err != nil {
				return nil, err
			}
			arms[i] = arm
		}
		return c.reg.OneOf(arms[0], arms[1:]...), nil

	case *wit.Own, *wit.Borrow:
		return nil, errors.Unsupported(errors.PhaseConstruct, path, "resource handles cannot be checked structurally")

	case wit.Type:
		return c.convert(kind, path)

	default:
		return nil, errors.Unsupported(errors.PhaseConstruct, path, "unsupported WIT type definition: "+typeName(kind))
	}
}

// resultArm converts one side of a result. An absent type carries no payload
// and is represented by Undefined.
func (c *Converter) resultArm(t wit.Type, path []string) (typeguard.Descriptor, error) {
	if t == nil {
		return c.reg.Literal(typeguard.Undefined), nil
	}
	return c.convert(t, path)
}
