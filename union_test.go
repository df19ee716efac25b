package typeguard

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestUnion_Narrowing(t *testing.T) {
	r := NewRegistry()
	withB := r.MustRecordOf(map[string]any{"a": Number, "b": r.Nullable(Number)})
	withC := r.MustRecordOf(map[string]any{"a": Number, "c": r.Nullable(String)})
	u := r.OneOf(withB, withC)

	v := mustEdit(t, u, map[string]any{"a": 1}).(*UnionValue)
	if got := len(v.Possible()); got != 2 {
		t.Fatalf("Possible() has %d members, want 2", got)
	}

	// A write every member accepts keeps both possible.
	if err := v.Set("a", 2); err != nil {
		t.Fatalf("Set(a, 2) error: %v", err)
	}
	if got := len(v.Possible()); got != 2 {
		t.Errorf("Possible() has %d members after shared write, want 2", got)
	}

	if err := v.Set("b", 3); err != nil {
		t.Fatalf("Set(b, 3) error: %v", err)
	}
	if p := v.Possible(); len(p) != 1 || p[0] != withB {
		t.Fatalf("Possible() = %v, want [%s]", p, withB)
	}

	// c is valid for the union but not for the remaining member.
	before := Unwrap(v)
	if err := v.Set("c", "x"); err == nil {
		t.Fatal("Set(c) should be rejected after narrowing")
	}
	if diff := cmp.Diff(before, Unwrap(v)); diff != "" {
		t.Errorf("rejected write changed the value (-before +after):\n%s", diff)
	}
	if p := v.Possible(); len(p) != 1 || p[0] != withB {
		t.Errorf("rejected write changed Possible(): %v", p)
	}
}

func TestUnion_RejectedWriteRoundTrip(t *testing.T) {
	r := NewRegistry()
	u := r.OneOf(
		r.MustRecordOf(map[string]any{"kind": "a", "n": Number}),
		r.MustRecordOf(map[string]any{"kind": "b", "s": String}),
	)

	tests := []struct {
		name  string
		key   any
		value any
	}{
		{"wrong type", "n", "x"},
		{"other member key", "s", "x"},
		{"switch discriminant", "kind", "b"},
		{"unknown key", "z", 1},
		{"non-string key", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := mustEdit(t, u, map[string]any{"kind": "a", "n": 1})
			before := Unwrap(v)
			if err := v.Set(tt.key, tt.value); err == nil {
				t.Fatalf("Set(%v, %v) should be rejected", tt.key, tt.value)
			}
			if diff := cmp.Diff(before, Unwrap(v)); diff != "" {
				t.Errorf("rejected write changed the value (-before +after):\n%s", diff)
			}
		})
	}
}

func TestUnion_AmbiguousCompositeWrite(t *testing.T) {
	r := NewRegistry()
	left := r.MustRecordOf(map[string]any{"x": r.ArrayOf(Number), "k": r.Nullable("a")})
	right := r.MustRecordOf(map[string]any{"x": r.ArrayOf(Number), "k": r.Nullable("b")})
	v := mustEdit(t, r.OneOf(left, right), map[string]any{"x": []any{}}).(*UnionValue)

	err := v.Set("x", []any{1})
	e := asError(t, err)
	if !strings.HasPrefix(e.Detail, "ambiguous write") {
		t.Errorf("Detail = %q, want ambiguous write", e.Detail)
	}

	// Narrowing to one member does not make a composite write safe.
	if err := v.Set("k", "a"); err != nil {
		t.Fatalf("Set(k, a) error: %v", err)
	}
	if err := v.Set("x", []any{1}); err == nil {
		t.Error("Set(x) should be rejected while a member declares a composite at x")
	}

	// The existing child is still intercepted through Get.
	x, _ := v.Get("x")
	arr, ok := x.(*ArrayValue)
	if !ok {
		t.Fatalf("x = %T, want *ArrayValue", x)
	}
	if err := arr.Set(0, "s"); err == nil {
		t.Error("nested array should reject a string element")
	}
	if err := arr.Set(0, 2); err != nil {
		t.Errorf("nested array Set(0, 2) error: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"x": []any{2}, "k": "a"}, Unwrap(v)); diff != "" {
		t.Errorf("value mismatch (-want +got):\n%s", diff)
	}
}

func TestUnion_SingleMemberCompositeWrite(t *testing.T) {
	r := NewRegistry()
	u := r.OneOf(
		r.MustRecordOf(map[string]any{"k": "a", "x": r.ArrayOf(Number)}),
		r.MustRecordOf(map[string]any{"k": "b", "y": Number}),
	)
	v := mustEdit(t, u, map[string]any{"k": "a", "x": []any{}})

	before := Unwrap(v)
	if err := v.Set("x", []any{1}); err == nil {
		t.Fatal("Set(x) should be rejected: the only possible member declares a composite at x")
	}
	if diff := cmp.Diff(before, Unwrap(v)); diff != "" {
		t.Errorf("rejected write changed the value (-before +after):\n%s", diff)
	}
}

func TestUnion_Lists(t *testing.T) {
	r := NewRegistry()
	nums, strs := r.ArrayOf(Number), r.ArrayOf(String)
	v := mustEdit(t, r.OneOf(nums, strs), []any{}).(*UnionValue)

	if err := v.Set(0, 1); err != nil {
		t.Fatalf("Set(0, 1) error: %v", err)
	}
	if p := v.Possible(); len(p) != 1 || p[0] != nums {
		t.Fatalf("Possible() = %v, want [%s]", p, nums)
	}
	if err := v.Set(1, "a"); err == nil {
		t.Error("Set(1, a) should be rejected after narrowing to number[]")
	}
	if err := v.Set(3, 1); err == nil {
		t.Error("Set beyond length should be rejected")
	}
	if diff := cmp.Diff([]any{1}, v.Value()); diff != "" {
		t.Errorf("Value() mismatch (-want +got):\n%s", diff)
	}
}

func TestUnion_LeafPassThrough(t *testing.T) {
	u := NewRegistry().OneOf(Number, String)
	out, err := u.EditValue("x")
	if err != nil || out != "x" {
		t.Errorf("EditValue(x) = %v, %v; want x, nil", out, err)
	}
}

func TestUnion_GetWrapsComposite(t *testing.T) {
	r := NewRegistry()
	inner := r.MustRecordOf(map[string]any{"n": Number})
	u := r.OneOf(
		r.MustRecordOf(map[string]any{"kind": "a", "p": inner}),
		r.MustRecordOf(map[string]any{"kind": "b"}),
	)
	v := mustEdit(t, u, map[string]any{"kind": "a", "p": map[string]any{"n": 1}})

	p, ok := v.Get("p")
	if !ok {
		t.Fatal("p missing")
	}
	pv, ok := p.(*RecordValue)
	if !ok {
		t.Fatalf("p = %T, want *RecordValue", p)
	}
	if err := pv.Set("n", "x"); err == nil {
		t.Error("nested record should reject a string")
	}
	if _, ok := v.Get("missing"); ok {
		t.Error("Get(missing) should report false")
	}
}
