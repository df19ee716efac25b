package typeguard

// Descriptor is a canonical description of one type shape.
//
// Descriptors returned by the factories are memoized: two structurally equal
// hints produce the same Descriptor, so == is a structural equality check.
// Implementations must be comparable (pointer receivers).
type Descriptor interface {
	Kind() Kind

	// IsValid reports whether v conforms to the shape.
	IsValid(v any) bool

	// IsValidAt reports whether v may be stored under key in a value of this shape.
	IsValidAt(key, v any) bool

	// SubtypeAt returns the descriptor declared for key, or nil.
	SubtypeAt(key any) Descriptor

	// EditValue returns v prepared for in-place mutation. Composite
	// descriptors return an Editable wrapper; leaves return v unchanged.
	EditValue(v any) (any, error)

	// Initialize returns the canonical default value.
	Initialize() any

	// String returns the canonical signature.
	String() string
}

// pathEditor is implemented by descriptors whose wrappers report the key path
// they were reached through.
type pathEditor interface {
	editValueAt(v any, path []string) (any, error)
}

func editChild(d Descriptor, v any, path []string) (any, error) {
	if pe, ok := d.(pathEditor); ok {
		return pe.editValueAt(v, path)
	}
	return d.EditValue(v)
}

// leaf supplies the defaults for descriptors without sub-structure.
type leaf struct{}

func (leaf) IsValidAt(key, v any) bool { return false }
func (leaf) SubtypeAt(key any) Descriptor { return nil }
func (leaf) EditValue(v any) (any, error) { return v, nil }

// declaresComposite reports whether values of d are containers that need
// interception, looking through nullable and union wrappers.
func declaresComposite(d Descriptor) bool {
	switch t := d.(type) {
	case nil:
		return false
	case *NullableType:
		return declaresComposite(t.inner)
	case *UnionType:
		for _, m := range t.members {
			if declaresComposite(m) {
				return true
			}
		}
		return false
	default:
		return d.Kind().IsComposite()
	}
}

// signature renders d for embedding in a larger signature.
func signature(d Descriptor) string {
	switch d.Kind() {
	case KindUnion, KindFunc:
		return "(" + d.String() + ")"
	default:
		return d.String()
	}
}
