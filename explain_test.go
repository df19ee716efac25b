package typeguard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExplain(t *testing.T) {
	r := NewRegistry()
	rec := r.MustRecordOf(map[string]any{
		"name": String,
		"tags": r.ArrayOf(String),
		"pos":  r.TupleOf(Number, Number),
		"opt":  r.Nullable(r.MustRecordOf(map[string]any{"n": Number})),
	})
	valid := func() map[string]any {
		return map[string]any{"name": "x", "tags": []any{"a"}, "pos": []any{1, 2}}
	}

	tests := []struct {
		name     string
		mutate   func(m map[string]any)
		path     []string
		expected string
	}{
		{"missing key", func(m map[string]any) { delete(m, "name") }, []string{"name"}, "string"},
		{"array element", func(m map[string]any) { m["tags"] = []any{"a", 2} }, []string{"tags", "[1]"}, "string"},
		{"tuple arity", func(m map[string]any) { m["pos"] = []any{1} }, []string{"pos"}, "[number, number]"},
		{"tuple element", func(m map[string]any) { m["pos"] = []any{1, "y"} }, []string{"pos", "[1]"}, "number"},
		{"through nullable", func(m map[string]any) { m["opt"] = map[string]any{"n": "1"} }, []string{"opt", "n"}, "number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := valid()
			tt.mutate(v)
			m, bad := Explain(rec, v)
			if !assert.True(t, bad) {
				return
			}
			assert.Equal(t, tt.path, m.Path)
			assert.Equal(t, tt.expected, m.Expected.String())
		})
	}

	v := valid()
	v["extra"] = 1
	m, bad := Explain(rec, v)
	assert.True(t, bad)
	assert.Equal(t, []string{"extra"}, m.Path)
	assert.Nil(t, m.Expected)

	_, bad = Explain(rec, valid())
	assert.False(t, bad)
}
