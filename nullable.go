package typeguard

// NullableType accepts nil and Undefined in addition to everything its inner
// descriptor accepts.
type NullableType struct {
	inner Descriptor
	name  string
}

func newNullableType(inner Descriptor) *NullableType {
	return &NullableType{inner: inner, name: signature(inner) + "?"}
}

func (n *NullableType) Kind() Kind { return KindNullable }

func (n *NullableType) IsValid(v any) bool {
	return isNullish(v) || n.inner.IsValid(v)
}

// IsValidAt delegates to the inner descriptor. Whether the value is currently
// null is tracked by the wrapper returned from EditValue, not here.
func (n *NullableType) IsValidAt(key, v any) bool { return n.inner.IsValidAt(key, v) }

func (n *NullableType) SubtypeAt(key any) Descriptor { return n.inner.SubtypeAt(key) }

func (n *NullableType) Initialize() any { return nil }

func (n *NullableType) String() string { return n.name }

// Inner returns the wrapped descriptor.
func (n *NullableType) Inner() Descriptor { return n.inner }

func (n *NullableType) EditValue(v any) (any, error) { return n.editValueAt(v, nil) }

// editValueAt passes null through and intercepts non-null values with the
// inner descriptor.
func (n *NullableType) editValueAt(v any, path []string) (any, error) {
	if isNullish(v) {
		return v, nil
	}
	return editChild(n.inner, v, path)
}
