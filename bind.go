package typeguard

import (
	"go.uber.org/zap"

	"github.com/wippyai/typeguard/errors"
)

// BindField prepares the initial value of a typed field. A nil or Undefined
// current value is replaced by the descriptor's default; the result is
// returned ready for intercepted mutation.
func BindField(d Descriptor, current any) (any, error) {
	if isNullish(current) && !d.IsValid(current) {
		current = d.Initialize()
	}
	if !d.IsValid(current) {
		return nil, errors.InvalidValue(nil, current, kindOf(current), d.String())
	}
	return d.EditValue(current)
}

// BindSetter checks a value about to be assigned to a typed field. A value
// the descriptor rejects is reported and returned as a rejected_write error;
// the caller keeps the previous value.
func BindSetter(d Descriptor, v any) (any, error) {
	if d == Null {
		return d.EditValue(v)
	}
	if !d.IsValid(v) {
		err := errors.RejectedWrite(nil, v, kindOf(v), d.String(), "value does not match the field type")
		Logger().Warn("rejected assignment",
			zap.String("actual", err.Actual),
			zap.String("expected", err.Expected))
		return nil, err
	}
	return d.EditValue(v)
}

// BindMethod wraps fn so each call is checked against d. It is called once
// per method; the returned callable replaces the original.
func BindMethod(d Descriptor, fn any) (any, error) {
	if !d.IsValid(fn) {
		return nil, errors.InvalidValue(nil, fn, kindOf(fn), d.String())
	}
	return d.EditValue(fn)
}
