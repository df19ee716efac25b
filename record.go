package typeguard

import (
	"slices"
	"strings"
)

// RecordType accepts string-keyed maps with exactly the declared keys. A key
// may be absent only when its descriptor accepts Undefined, as Nullable does.
type RecordType struct {
	fields map[string]Descriptor
	keys   []string
	name   string
}

func newRecordType(fields map[string]Descriptor) *RecordType {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + fields[k].String()
	}
	return &RecordType{
		fields: fields,
		keys:   keys,
		name:   "{" + strings.Join(parts, ", ") + "}",
	}
}

func (r *RecordType) Kind() Kind { return KindRecordOf }

func (r *RecordType) IsValid(v any) bool {
	m, ok := asMap(unwrap(v))
	if !ok {
		return false
	}
	for k := range m {
		if _, declared := r.fields[k]; !declared {
			return false
		}
	}
	for _, k := range r.keys {
		val, present := m[k]
		if !present {
			val = Undefined
		}
		if !r.fields[k].IsValid(val) {
			return false
		}
	}
	return true
}

func (r *RecordType) IsValidAt(key, v any) bool {
	d := r.SubtypeAt(key)
	return d != nil && d.IsValid(v)
}

func (r *RecordType) SubtypeAt(key any) Descriptor {
	k, ok := key.(string)
	if !ok {
		return nil
	}
	return r.fields[k]
}

func (r *RecordType) Initialize() any {
	out := make(map[string]any, len(r.fields))
	for k, d := range r.fields {
		out[k] = d.Initialize()
	}
	return out
}

func (r *RecordType) String() string { return r.name }

// Keys returns the declared keys in sorted order.
func (r *RecordType) Keys() []string { return slices.Clone(r.keys) }

// Field returns the descriptor declared for key.
func (r *RecordType) Field(key string) (Descriptor, bool) {
	d, ok := r.fields[key]
	return d, ok
}

func (r *RecordType) EditValue(v any) (any, error) { return r.editValueAt(v, nil) }

func (r *RecordType) editValueAt(v any, path []string) (any, error) {
	if e, ok := v.(*RecordValue); ok && e.desc == r {
		return e, nil
	}
	m, ok := asMap(unwrap(v))
	if !ok {
		return v, nil
	}
	return &RecordValue{desc: r, fields: m, path: path}, nil
}

// RecordValue intercepts writes to a map typed with RecordType. Only declared
// keys are writable.
type RecordValue struct {
	desc   *RecordType
	fields map[string]any
	path   []string
}

func (w *RecordValue) Descriptor() Descriptor { return w.desc }

func (w *RecordValue) Len() int { return len(w.fields) }

func (w *RecordValue) Value() any { return w.fields }

func (w *RecordValue) Get(key any) (any, bool) {
	k, ok := key.(string)
	if !ok {
		return Undefined, false
	}
	v, ok := w.fields[k]
	if !ok {
		return Undefined, false
	}
	if wrapped, ok := lazyWrap(w.desc.fields[k], v, childPath(w.path, k)); ok {
		w.fields[k] = wrapped
		v = wrapped
	}
	return v, true
}

func (w *RecordValue) Set(key, v any) error {
	k, ok := key.(string)
	if !ok {
		return reject(w.path, key, v, w.desc, "record keys must be strings")
	}
	d, declared := w.desc.fields[k]
	if !declared {
		return reject(w.path, key, v, w.desc, "undeclared key")
	}
	if !d.IsValid(v) {
		return reject(w.path, key, v, d, "value does not match the declared key type")
	}
	stored, err := editChild(d, v, childPath(w.path, k))
	if err != nil {
		return err
	}
	w.fields[k] = stored
	return nil
}

// Delete removes key. Only keys whose descriptor accepts Undefined may be
// removed.
func (w *RecordValue) Delete(key string) error {
	d, declared := w.desc.fields[key]
	if !declared {
		return reject(w.path, key, Undefined, w.desc, "undeclared key")
	}
	if !d.IsValid(Undefined) {
		return reject(w.path, key, Undefined, d, "required key cannot be removed")
	}
	delete(w.fields, key)
	return nil
}
