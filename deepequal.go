package typeguard

import (
	"reflect"

	"github.com/google/go-cmp/cmp"
)

var deepEqualOptions = []cmp.Option{
	// Descriptors are canonical, so identity is their structural equality.
	cmp.Comparer(func(a, b Descriptor) bool { return a == b }),
	cmp.Exporter(func(reflect.Type) bool { return true }),
}

// DeepEqual reports whether a and b are structurally equal. Descriptors
// nested anywhere inside are compared by identity.
func DeepEqual(a, b any) bool {
	return cmp.Equal(a, b, deepEqualOptions...)
}
