package witshape

import (
	"fmt"
	"slices"
	"strconv"
)

func sub(path []string, elem string) []string {
	return append(slices.Clip(path), elem)
}

func itoa(i int) string { return strconv.Itoa(i) }

func typeName(v any) string { return fmt.Sprintf("%T", v) }
