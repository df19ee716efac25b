package typeguard

// ArrayType accepts slices whose every element matches the element descriptor.
// There is no length constraint.
type ArrayType struct {
	elem Descriptor
	name string
}

func newArrayType(elem Descriptor) *ArrayType {
	name := elem.String() + "[]"
	if elem.Kind() == KindUnion || elem.Kind() == KindFunc || elem.Kind() == KindNullable {
		name = "(" + elem.String() + ")[]"
	}
	return &ArrayType{elem: elem, name: name}
}

func (a *ArrayType) Kind() Kind { return KindArrayOf }

func (a *ArrayType) IsValid(v any) bool {
	items, ok := asSlice(unwrap(v))
	if !ok {
		return false
	}
	for _, item := range items {
		if !a.elem.IsValid(item) {
			return false
		}
	}
	return true
}

func (a *ArrayType) IsValidAt(key, v any) bool {
	_, ok := indexOf(key)
	return ok && a.elem.IsValid(v)
}

// SubtypeAt returns the element descriptor for every index.
func (a *ArrayType) SubtypeAt(key any) Descriptor {
	if _, ok := indexOf(key); !ok {
		return nil
	}
	return a.elem
}

func (a *ArrayType) Initialize() any { return []any{} }

func (a *ArrayType) String() string { return a.name }

// Elem returns the element descriptor.
func (a *ArrayType) Elem() Descriptor { return a.elem }

func (a *ArrayType) EditValue(v any) (any, error) { return a.editValueAt(v, nil) }

func (a *ArrayType) editValueAt(v any, path []string) (any, error) {
	if e, ok := v.(*ArrayValue); ok && e.desc == a {
		return e, nil
	}
	items, ok := asSlice(unwrap(v))
	if !ok {
		return v, nil
	}
	return &ArrayValue{desc: a, items: items, path: path}, nil
}

// ArrayValue intercepts writes to a slice typed with ArrayType. Indices up to
// and including Len are writable; writing at Len appends.
type ArrayValue struct {
	desc  *ArrayType
	items []any
	path  []string
}

func (w *ArrayValue) Descriptor() Descriptor { return w.desc }

func (w *ArrayValue) Len() int { return len(w.items) }

func (w *ArrayValue) Value() any { return w.items }

func (w *ArrayValue) Get(key any) (any, bool) {
	i, ok := indexOf(key)
	if !ok || i >= len(w.items) {
		return Undefined, false
	}
	v := w.items[i]
	if wrapped, ok := lazyWrap(w.desc.elem, v, childPath(w.path, i)); ok {
		w.items[i] = wrapped
		v = wrapped
	}
	return v, true
}

func (w *ArrayValue) Set(key, v any) error {
	i, ok := indexOf(key)
	if !ok {
		return reject(w.path, key, v, w.desc, "array index must be a non-negative integer")
	}
	if i > len(w.items) {
		return reject(w.path, key, v, w.desc, "index out of range")
	}
	if !w.desc.elem.IsValid(v) {
		return reject(w.path, key, v, w.desc.elem, "element does not match the array element type")
	}
	stored, err := editChild(w.desc.elem, v, childPath(w.path, i))
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

// Append writes each value at the end of the slice, stopping at the first
// rejected value.
func (w *ArrayValue) Append(values ...any) error {
	for _, v := range values {
		if err := w.Set(len(w.items), v); err != nil {
			return err
		}
	}
	return nil
}

// Truncate shortens the slice to n elements. Growing is not allowed since
// new slots would hold no valid element.
func (w *ArrayValue) Truncate(n int) error {
	if n < 0 || n > len(w.items) {
		return reject(w.path, "length", n, w.desc, "length can only shrink")
	}
	clear(w.items[n:])
	w.items = w.items[:n]
	return nil
}
