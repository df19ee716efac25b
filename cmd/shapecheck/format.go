package main

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/wippyai/typeguard"
)

// formatValue renders a plain value tree as compact JSON-like text with
// sorted keys. Values JSON cannot express are shown by their Go rendering.
func formatValue(v any) string {
	var b strings.Builder
	writeValue(&b, typeguard.Unwrap(v))
	return b.String()
}

func writeValue(b *strings.Builder, v any) {
	switch t := v.(type) {
	case nil:
		b.WriteString("null")
	case string:
		b.WriteString(strconv.Quote(t))
	case bool:
		b.WriteString(strconv.FormatBool(t))
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.Quote(k))
			b.WriteString(": ")
			writeValue(b, typeguard.Unwrap(t[k]))
		}
		b.WriteByte('}')
	case []any:
		b.WriteByte('[')
		for i, e := range t {
			if i > 0 {
				b.WriteString(", ")
			}
			writeValue(b, typeguard.Unwrap(e))
		}
		b.WriteByte(']')
	default:
		if f, ok := typeguard.ToNumber(t); ok {
			b.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
			return
		}
		if typeguard.Function.IsValid(t) {
			b.WriteString("<function>")
			return
		}
		fmt.Fprint(b, t)
	}
}
