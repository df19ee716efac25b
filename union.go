package typeguard

import (
	"strings"
)

// UnionType accepts a value when any of its members does. Members are flattened
// and deduplicated; a union always has at least two members.
type UnionType struct {
	reg     *Registry
	set     *ComparableSet
	members []Descriptor
	name    string
}

func newUnionType(reg *Registry, set *ComparableSet) *UnionType {
	members := set.Items()
	parts := make([]string, len(members))
	for i, m := range members {
		parts[i] = signature(m)
	}
	return &UnionType{
		reg:     reg,
		set:     set,
		members: members,
		name:    strings.Join(parts, " | "),
	}
}

func (u *UnionType) Kind() Kind { return KindUnion }

func (u *UnionType) IsValid(v any) bool {
	for _, m := range u.members {
		if m.IsValid(v) {
			return true
		}
	}
	return false
}

func (u *UnionType) IsValidAt(key, v any) bool {
	for _, m := range u.members {
		if m.IsValidAt(key, v) {
			return true
		}
	}
	return false
}

// SubtypeAt returns the union of every member's descriptor at key.
func (u *UnionType) SubtypeAt(key any) Descriptor {
	return subtypeAt(u.reg, u.members, key)
}

func subtypeAt(reg *Registry, members []Descriptor, key any) Descriptor {
	var subs []any
	for _, m := range members {
		if s := m.SubtypeAt(key); s != nil {
			subs = append(subs, s)
		}
	}
	switch len(subs) {
	case 0:
		return nil
	case 1:
		return subs[0].(Descriptor)
	default:
		return reg.Type(subs...)
	}
}

// Initialize returns the default of the first member.
func (u *UnionType) Initialize() any { return u.members[0].Initialize() }

func (u *UnionType) String() string { return u.name }

// Members returns the member descriptors in canonical order.
func (u *UnionType) Members() []Descriptor { return u.set.Items() }

func (u *UnionType) EditValue(v any) (any, error) { return u.editValueAt(v, nil) }

func (u *UnionType) editValueAt(v any, path []string) (any, error) {
	if e, ok := v.(*UnionValue); ok && e.union == u {
		return e, nil
	}
	raw := unwrap(v)
	if !isObjectLike(raw) {
		return v, nil
	}
	var possible []Descriptor
	for _, m := range u.members {
		if m.IsValid(raw) {
			possible = append(possible, m)
		}
	}
	if len(possible) == 0 {
		possible = u.members
	}
	if m, ok := asMap(raw); ok {
		return &UnionValue{union: u, possible: possible, record: m, path: path}, nil
	}
	items, _ := asSlice(raw)
	return &UnionValue{union: u, possible: possible, items: items, isList: true, path: path}, nil
}

// UnionValue intercepts writes to a value typed as a union. Each accepted
// write narrows the set of members the value may still belong to.
type UnionValue struct {
	union    *UnionType
	record   map[string]any
	items    []any
	possible []Descriptor
	path     []string
	isList   bool
}

func (w *UnionValue) Descriptor() Descriptor { return w.union }

// Possible returns the members the value can still belong to.
func (w *UnionValue) Possible() []Descriptor {
	out := make([]Descriptor, len(w.possible))
	copy(out, w.possible)
	return out
}

func (w *UnionValue) Len() int {
	if w.isList {
		return len(w.items)
	}
	return len(w.record)
}

func (w *UnionValue) Value() any {
	if w.isList {
		return w.items
	}
	return w.record
}

func (w *UnionValue) Get(key any) (any, bool) {
	var v any
	if w.isList {
		i, ok := indexOf(key)
		if !ok || i >= len(w.items) {
			return Undefined, false
		}
		v = w.items[i]
		if wrapped, ok := lazyWrap(subtypeAt(w.union.reg, w.possible, i), v, childPath(w.path, i)); ok {
			w.items[i] = wrapped
			v = wrapped
		}
		return v, true
	}
	k, ok := key.(string)
	if !ok {
		return Undefined, false
	}
	v, ok = w.record[k]
	if !ok {
		return Undefined, false
	}
	if wrapped, ok := lazyWrap(subtypeAt(w.union.reg, w.possible, k), v, childPath(w.path, k)); ok {
		w.record[k] = wrapped
		v = wrapped
	}
	return v, true
}

// Set applies the write to a shallow copy and keeps the members that accept
// the copy. The write is committed only when none of them declares a
// composite type at key, since a later nested write could not be routed to
// a single shape. Composite children are still intercepted on Get.
func (w *UnionValue) Set(key, v any) error {
	candidate, err := w.applied(key, v)
	if err != nil {
		return err
	}

	var compatible []Descriptor
	for _, m := range w.possible {
		if m.IsValid(candidate) {
			compatible = append(compatible, m)
		}
	}
	if len(compatible) == 0 {
		return reject(w.path, key, v, w.union, "no union member accepts the value after this write")
	}

	for _, m := range compatible {
		if declaresComposite(m.SubtypeAt(key)) {
			return reject(w.path, key, v, w.union,
				"ambiguous write: a possible member declares a composite type at this key")
		}
	}

	w.commit(key, v)
	w.possible = compatible
	return nil
}

// applied returns a shallow copy of the value with the write applied.
func (w *UnionValue) applied(key, v any) (any, error) {
	if w.isList {
		i, ok := indexOf(key)
		if !ok || i > len(w.items) {
			return nil, reject(w.path, key, v, w.union, "index out of range")
		}
		out := make([]any, len(w.items), len(w.items)+1)
		copy(out, w.items)
		if i == len(out) {
			out = append(out, v)
		} else {
			out[i] = v
		}
		return out, nil
	}
	k, ok := key.(string)
	if !ok {
		return nil, reject(w.path, key, v, w.union, "record keys must be strings")
	}
	out := make(map[string]any, len(w.record)+1)
	for rk, rv := range w.record {
		out[rk] = rv
	}
	out[k] = v
	return out, nil
}

func (w *UnionValue) commit(key, v any) {
	if w.isList {
		i, _ := indexOf(key)
		if i == len(w.items) {
			w.items = append(w.items, v)
		} else {
			w.items[i] = v
		}
		return
	}
	w.record[key.(string)] = v
}
