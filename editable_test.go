package typeguard

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/typeguard/errors"
)

func TestRecordValue_EndToEnd(t *testing.T) {
	r := NewRegistry()
	rec := r.MustRecordOf(map[string]any{"a": Number, "b": r.Nullable(Number)})
	v := mustEdit(t, rec, map[string]any{})

	if err := v.Set("a", 42); err != nil {
		t.Fatalf("Set(a, 42) error: %v", err)
	}
	if got, _ := v.Get("a"); got != 42 {
		t.Errorf("a = %v, want 42", got)
	}

	err := v.Set("c", 1)
	e := asError(t, err)
	if e.Kind != errors.KindRejectedWrite {
		t.Errorf("Kind = %v, want rejected_write", e.Kind)
	}
	if _, ok := v.Get("c"); ok {
		t.Error("rejected key c was stored")
	}
	if diff := cmp.Diff(map[string]any{"a": 42}, v.Value()); diff != "" {
		t.Errorf("Value() mismatch (-want +got):\n%s", diff)
	}
	if !rec.IsValid(v) {
		t.Error("record should accept its own wrapper")
	}
}

func TestRecordValue_Set(t *testing.T) {
	r := NewRegistry()
	rec := r.MustRecordOf(map[string]any{"a": Number, "b": r.Nullable(String)})

	tests := []struct {
		name    string
		key     any
		value   any
		wantErr bool
		reason  string
	}{
		{"declared key", "a", 1, false, ""},
		{"nullable to nil", "b", nil, false, ""},
		{"nullable to value", "b", "x", false, ""},
		{"wrong type", "a", "1", true, "value does not match the declared key type"},
		{"undeclared", "z", 1, true, "undeclared key"},
		{"non-string key", 0, 1, true, "record keys must be strings"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := mustEdit(t, rec, map[string]any{"a": 0})
			before := Unwrap(v)
			err := v.Set(tt.key, tt.value)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("Set() error: %v", err)
				}
				return
			}
			e := asError(t, err)
			if e.Detail != tt.reason {
				t.Errorf("Detail = %q, want %q", e.Detail, tt.reason)
			}
			if diff := cmp.Diff(before, Unwrap(v)); diff != "" {
				t.Errorf("rejected write changed the value (-before +after):\n%s", diff)
			}
		})
	}
}

func TestRecordValue_Delete(t *testing.T) {
	r := NewRegistry()
	rec := r.MustRecordOf(map[string]any{"a": Number, "b": r.Nullable(Number)})
	v := mustEdit(t, rec, map[string]any{"a": 1, "b": 2}).(*RecordValue)

	if err := v.Delete("b"); err != nil {
		t.Fatalf("Delete(b) error: %v", err)
	}
	if _, ok := v.Get("b"); ok {
		t.Error("b still present after delete")
	}
	if err := v.Delete("a"); err == nil {
		t.Error("Delete(a) should be rejected")
	}
	if got, _ := v.Get("a"); got != 1 {
		t.Errorf("a = %v after rejected delete, want 1", got)
	}
}

func TestRecordValue_NestedPath(t *testing.T) {
	logs := observeLogs(t)
	r := NewRegistry()
	rec := r.MustRecordOf(map[string]any{
		"user": map[string]any{
			"tags": r.ArrayOf(String),
		},
	})
	v := mustEdit(t, rec, map[string]any{
		"user": map[string]any{"tags": []any{"a"}},
	})

	user, ok := v.Get("user")
	if !ok {
		t.Fatal("user missing")
	}
	userV, ok := user.(Editable)
	if !ok {
		t.Fatalf("user = %T, want Editable", user)
	}
	tags, _ := userV.Get("tags")
	tagsV, ok := tags.(*ArrayValue)
	if !ok {
		t.Fatalf("tags = %T, want *ArrayValue", tags)
	}

	err := tagsV.Set(1, 5)
	e := asError(t, err)
	if diff := cmp.Diff([]string{"user", "tags", "[1]"}, e.Path); diff != "" {
		t.Errorf("Path mismatch (-want +got):\n%s", diff)
	}
	if tagsV.Len() != 1 {
		t.Errorf("Len() = %d after rejected write, want 1", tagsV.Len())
	}

	entries := logs.FilterMessage("rejected write").All()
	if len(entries) != 1 {
		t.Fatalf("expected one rejected write log, got %d", len(entries))
	}
	if entries[0].Level != zapcore.WarnLevel {
		t.Errorf("Level = %v, want warn", entries[0].Level)
	}
	if got := entries[0].ContextMap()["expected"]; got != "string" {
		t.Errorf("expected field = %v, want string", got)
	}

	if err := tagsV.Set(1, "b"); err != nil {
		t.Fatalf("Set(1, b) error: %v", err)
	}
	want := map[string]any{"user": map[string]any{"tags": []any{"a", "b"}}}
	if diff := cmp.Diff(want, Unwrap(v)); diff != "" {
		t.Errorf("Unwrap() mismatch (-want +got):\n%s", diff)
	}
}

func TestArrayValue(t *testing.T) {
	r := NewRegistry()
	arr := r.ArrayOf(Number)
	v := mustEdit(t, arr, []any{1, 2}).(*ArrayValue)

	tests := []struct {
		name    string
		key     any
		value   any
		wantErr bool
		wantLen int
	}{
		{"overwrite", 0, 10, false, 2},
		{"append at length", 2, 3, false, 3},
		{"float index", 1.0, 20, false, 3},
		{"type mismatch", 0, "x", true, 3},
		{"gap", 5, 1, true, 3},
		{"negative", -1, 1, true, 3},
		{"string key", "0", 1, true, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Set(tt.key, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Set(%v, %v) error = %v, wantErr %v", tt.key, tt.value, err, tt.wantErr)
			}
			if v.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", v.Len(), tt.wantLen)
			}
		})
	}

	if diff := cmp.Diff([]any{10, 20, 3}, v.Value()); diff != "" {
		t.Errorf("Value() mismatch (-want +got):\n%s", diff)
	}
}

func TestArrayValue_AppendTruncate(t *testing.T) {
	v := mustEdit(t, NewRegistry().ArrayOf(String), []any{}).(*ArrayValue)

	if err := v.Append("a", "b"); err != nil {
		t.Fatalf("Append() error: %v", err)
	}
	if err := v.Append("c", 1, "d"); err == nil {
		t.Fatal("Append() should stop at the first invalid element")
	}
	if diff := cmp.Diff([]any{"a", "b", "c"}, v.Value()); diff != "" {
		t.Errorf("Value() mismatch (-want +got):\n%s", diff)
	}
	if err := v.Truncate(5); err == nil {
		t.Error("Truncate() should not grow the array")
	}
	if err := v.Truncate(1); err != nil {
		t.Fatalf("Truncate(1) error: %v", err)
	}
	if v.Len() != 1 {
		t.Errorf("Len() = %d, want 1", v.Len())
	}
}

func TestTupleValue(t *testing.T) {
	r := NewRegistry()
	tup := r.TupleOf(Number, String)
	v := mustEdit(t, tup, []any{1, "a"})

	if err := v.Set(1, "b"); err != nil {
		t.Fatalf("Set(1, b) error: %v", err)
	}

	tests := []struct {
		name   string
		key    any
		value  any
		reason string
	}{
		{"beyond arity", 2, 1, "index beyond tuple arity"},
		{"wrong type", 0, "x", "element does not match the tuple position type"},
		{"bad key", "x", 1, "tuple index must be a non-negative integer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := asError(t, v.Set(tt.key, tt.value))
			if e.Detail != tt.reason {
				t.Errorf("Detail = %q, want %q", e.Detail, tt.reason)
			}
		})
	}

	if diff := cmp.Diff([]any{1, "b"}, v.Value()); diff != "" {
		t.Errorf("Value() mismatch (-want +got):\n%s", diff)
	}
	if !tup.IsValid(v) {
		t.Error("tuple should accept its own wrapper")
	}
}

func TestNullableEditValue(t *testing.T) {
	r := NewRegistry()
	n := r.Nullable(r.ArrayOf(Number))

	out, err := n.EditValue(nil)
	if err != nil || out != nil {
		t.Fatalf("EditValue(nil) = %v, %v; want nil, nil", out, err)
	}
	v := mustEdit(t, n, []any{1})
	if v.Descriptor() != r.ArrayOf(Number) {
		t.Errorf("Descriptor() = %s, want number[]", v.Descriptor())
	}
	if err := v.Set(0, "x"); err == nil {
		t.Error("nullable wrapper should check the inner element type")
	}
}

func TestEditValue_Idempotent(t *testing.T) {
	rec := NewRegistry().MustRecordOf(map[string]any{"a": Number})
	v := mustEdit(t, rec, map[string]any{"a": 1})
	again, err := rec.EditValue(v)
	if err != nil {
		t.Fatalf("EditValue() error: %v", err)
	}
	if again != v {
		t.Error("EditValue of an existing wrapper should return it unchanged")
	}
}

func TestEditValue_Leaves(t *testing.T) {
	for _, d := range []Descriptor{Any, Number, String, Object, Array} {
		out, err := d.EditValue(5)
		if err != nil || out != 5 {
			t.Errorf("%s.EditValue(5) = %v, %v; want 5, nil", d, out, err)
		}
	}
}
