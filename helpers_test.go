package typeguard

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/typeguard/errors"
)

// asError extracts the structured error, failing the test if err is not one.
func asError(t *testing.T, err error) *errors.Error {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	e, ok := err.(*errors.Error)
	if !ok {
		t.Fatalf("expected *errors.Error, got %T: %v", err, err)
	}
	return e
}

// observeLogs routes the package logger to an in-memory core for the
// duration of the test.
func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zap.WarnLevel)
	prev := Logger()
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(prev) })
	return logs
}

func mustEdit(t *testing.T, d Descriptor, v any) Editable {
	t.Helper()
	out, err := d.EditValue(v)
	if err != nil {
		t.Fatalf("EditValue(%v) error: %v", v, err)
	}
	e, ok := out.(Editable)
	if !ok {
		t.Fatalf("EditValue(%v) = %T, want Editable", v, out)
	}
	return e
}
