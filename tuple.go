package typeguard

import "strings"

// TupleType accepts slices of exactly its arity whose elements match the
// descriptor declared at each position.
type TupleType struct {
	items []Descriptor
	name  string
}

func newTupleType(items []Descriptor) *TupleType {
	parts := make([]string, len(items))
	for i, d := range items {
		parts[i] = d.String()
	}
	return &TupleType{
		items: items,
		name:  "[" + strings.Join(parts, ", ") + "]",
	}
}

func (t *TupleType) Kind() Kind { return KindTupleOf }

func (t *TupleType) IsValid(v any) bool {
	items, ok := asSlice(unwrap(v))
	if !ok || len(items) != len(t.items) {
		return false
	}
	for i, d := range t.items {
		if !d.IsValid(items[i]) {
			return false
		}
	}
	return true
}

func (t *TupleType) IsValidAt(key, v any) bool {
	d := t.SubtypeAt(key)
	return d != nil && d.IsValid(v)
}

func (t *TupleType) SubtypeAt(key any) Descriptor {
	i, ok := indexOf(key)
	if !ok || i >= len(t.items) {
		return nil
	}
	return t.items[i]
}

func (t *TupleType) Initialize() any {
	out := make([]any, len(t.items))
	for i, d := range t.items {
		out[i] = d.Initialize()
	}
	return out
}

func (t *TupleType) String() string { return t.name }

// Arity returns the number of positions.
func (t *TupleType) Arity() int { return len(t.items) }

// Items returns the positional descriptors.
func (t *TupleType) Items() []Descriptor {
	out := make([]Descriptor, len(t.items))
	copy(out, t.items)
	return out
}

func (t *TupleType) EditValue(v any) (any, error) { return t.editValueAt(v, nil) }

func (t *TupleType) editValueAt(v any, path []string) (any, error) {
	if e, ok := v.(*TupleValue); ok && e.desc == t {
		return e, nil
	}
	items, ok := asSlice(unwrap(v))
	if !ok {
		return v, nil
	}
	return &TupleValue{desc: t, items: items, path: path}, nil
}

// TupleValue intercepts writes to a slice typed with TupleType. Only declared
// positions are writable.
type TupleValue struct {
	desc  *TupleType
	items []any
	path  []string
}

func (w *TupleValue) Descriptor() Descriptor { return w.desc }

func (w *TupleValue) Len() int { return len(w.items) }

func (w *TupleValue) Value() any { return w.items }

func (w *TupleValue) Get(key any) (any, bool) {
	i, ok := indexOf(key)
	if !ok || i >= len(w.items) {
		return Undefined, false
	}
	v := w.items[i]
	if i < len(w.desc.items) {
		if wrapped, ok := lazyWrap(w.desc.items[i], v, childPath(w.path, i)); ok {
			w.items[i] = wrapped
			v = wrapped
		}
	}
	return v, true
}

func (w *TupleValue) Set(key, v any) error {
	i, ok := indexOf(key)
	if !ok {
		return reject(w.path, key, v, w.desc, "tuple index must be a non-negative integer")
	}
	if i >= len(w.desc.items) {
		return reject(w.path, key, v, w.desc, "index beyond tuple arity")
	}
	if i > len(w.items) {
		return reject(w.path, key, v, w.desc, "index out of range")
	}
	d := w.desc.items[i]
	if !d.IsValid(v) {
		return reject(w.path, key, v, d, "element does not match the tuple position type")
	}
	stored, err := editChild(d, v, childPath(w.path, i))
	if err != nil {
		return err
	}
	if i == len(w.items) {
		w.items = append(w.items, stored)
	} else {
		w.items[i] = stored
	}
	return nil
}
