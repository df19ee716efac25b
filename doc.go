// Package typeguard provides runtime structural type checking for dynamic Go values.
//
// A type is described declaratively with hints (kind markers, literal values, slices for
// tuples, string-keyed maps for records, or existing descriptors) and normalized into a
// canonical Descriptor. Descriptors validate values, synthesize default values, render a
// canonical signature, and wrap composite values so in-place writes are checked before
// they are committed.
//
// # Architecture Overview
//
//	typeguard/         Descriptors, registry, factories, interception wrappers
//	├── errors/        Structured error types (phase + kind)
//	├── schema/        YAML schema documents compiled into descriptors
//	├── witshape/      Descriptors built from WebAssembly Interface Types
//	└── cmd/shapecheck Command line checker and interactive explorer
//
// # Quick Start
//
//	user := typeguard.Type(map[string]any{
//		"name": typeguard.String,
//		"age":  typeguard.Nullable(typeguard.Number),
//		"tags": typeguard.ArrayOf(typeguard.String),
//	})
//
//	user.IsValid(map[string]any{"name": "ada", "tags": []any{"x"}}) // true
//	user.Initialize() // map[name: age:<nil> tags:[]]
//
// # Value Model
//
// Values have the shapes encoding/json produces when decoding into any: nil for null,
// bool, Go numbers, string, []any and map[string]any. Undefined marks an absent value.
// Any Go numeric kind is a number, any slice is an array, and any string-keyed map is an
// object. Pointers, channels and maps with non-string keys are compared by identity.
//
// # Canonical Descriptors
//
// Factories memoize through a Registry, so structurally equal hints produce the same
// descriptor instance:
//
//	typeguard.OneOf(typeguard.Number, typeguard.String) == typeguard.OneOf(typeguard.String, typeguard.Number)
//
// Reference equality of descriptors is therefore a valid structural equality check.
// Default() is the process-wide registry; Reset() clears it between tests.
//
// # Interception
//
// EditValue on a composite descriptor returns an Editable wrapper. Set validates the write
// against the declared shape and either commits it or returns a rejected_write error,
// leaving the container unchanged. Rejections are also logged through Logger().
//
//	v, _ := user.EditValue(map[string]any{"name": "ada", "tags": []any{}})
//	rec := v.(typeguard.Editable)
//	rec.Set("name", 42)    // rejected: expected string
//	rec.Set("email", "x")  // rejected: undeclared key
//
// Union wrappers narrow the set of still-possible members as writes are applied.
//
// # Typed Functions
//
// Func describes overloaded call signatures. A Returns marker closes an overload:
//
//	add := typeguard.Func(
//		typeguard.Number, typeguard.Number, typeguard.Returns(typeguard.Number),
//		typeguard.String, typeguard.String, typeguard.Returns(typeguard.String),
//	)
//
// EditValue wraps a callable so each call narrows overloads per argument and checks the
// result, returning invalid_argument or invalid_return errors.
//
// # Thread Safety
//
// Registries and descriptors are safe for concurrent use. Editable wrappers and wrapped
// functions keep per-value state and are NOT thread-safe.
package typeguard
