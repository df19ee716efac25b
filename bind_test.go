package typeguard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/typeguard/errors"
)

func TestBindField(t *testing.T) {
	r := NewRegistry()
	rec := r.MustRecordOf(map[string]any{"a": Number})

	tests := []struct {
		name    string
		d       Descriptor
		current any
		want    any
		wantErr bool
	}{
		{name: "default for nil", d: Number, current: nil, want: float64(0)},
		{name: "default for undefined", d: String, current: Undefined, want: ""},
		{name: "keeps valid value", d: Number, current: 5, want: 5},
		{name: "nullable keeps nil", d: r.Nullable(Number), current: nil, want: nil},
		{name: "invalid", d: Number, current: "x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BindField(tt.d, tt.current)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, errors.KindInvalidValue, asError(t, err).Kind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	got, err := BindField(rec, nil)
	require.NoError(t, err)
	v, ok := got.(*RecordValue)
	require.True(t, ok, "record field should be bound as an editable wrapper")
	assert.Error(t, v.Set("b", 1))
}

func TestBindSetter(t *testing.T) {
	logs := observeLogs(t)
	r := NewRegistry()

	got, err := BindSetter(Number, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, got)

	_, err = BindSetter(Number, "3")
	require.Error(t, err)
	assert.Equal(t, errors.KindRejectedWrite, asError(t, err).Kind)
	assert.Equal(t, 1, logs.FilterMessage("rejected assignment").Len())

	_, err = BindSetter(Null, 1)
	assert.Equal(t, errors.KindNullTypeViolation, asError(t, err).Kind)

	got, err = BindSetter(r.ArrayOf(String), []any{"a"})
	require.NoError(t, err)
	assert.IsType(t, &ArrayValue{}, got)
}

func TestBindMethod(t *testing.T) {
	f := NewRegistry().Func(Number, Returns(Number))

	got, err := BindMethod(f, func(x float64) float64 { return x * 2 })
	require.NoError(t, err)
	call := got.(Callable)

	out, err := call(2)
	require.NoError(t, err)
	assert.Equal(t, float64(4), out)

	_, err = call("2")
	assert.ErrorIs(t, err, errors.ErrInvalidArgument)

	_, err = BindMethod(f, 42)
	assert.Error(t, err)
}
