package typeguard

// Mismatch locates the innermost part of a value that does not conform.
type Mismatch struct {
	Path     []string
	Expected Descriptor
	Value    any
}

// Explain reports where v stops matching d. It returns false when v is valid.
// Records, tuples and arrays are descended into; any other descriptor,
// unions included, is reported as a whole.
func Explain(d Descriptor, v any) (Mismatch, bool) {
	if d.IsValid(v) {
		return Mismatch{}, false
	}
	return explain(d, unwrap(v), nil), true
}

func explain(d Descriptor, v any, path []string) Mismatch {
	here := Mismatch{Path: path, Expected: d, Value: v}
	switch t := d.(type) {
	case *NullableType:
		return explain(t.inner, v, path)
	case *RecordType:
		m, ok := asMap(v)
		if !ok {
			return here
		}
		for k, val := range m {
			if _, declared := t.fields[k]; !declared {
				return Mismatch{Path: childPath(path, k), Expected: nil, Value: val}
			}
		}
		for _, k := range t.keys {
			val, present := m[k]
			if !present {
				val = Undefined
			}
			if f := t.fields[k]; !f.IsValid(val) {
				return explain(f, unwrap(val), childPath(path, k))
			}
		}
	case *TupleType:
		items, ok := asSlice(v)
		if !ok || len(items) != len(t.items) {
			return here
		}
		for i, f := range t.items {
			if !f.IsValid(items[i]) {
				return explain(f, unwrap(items[i]), childPath(path, i))
			}
		}
	case *ArrayType:
		items, ok := asSlice(v)
		if !ok {
			return here
		}
		for i, item := range items {
			if !t.elem.IsValid(item) {
				return explain(t.elem, unwrap(item), childPath(path, i))
			}
		}
	}
	return here
}
