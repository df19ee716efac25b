package schema

import (
	"gopkg.in/yaml.v3"

	"github.com/wippyai/typeguard"
	"github.com/wippyai/typeguard/errors"
)

// ParseDocument decodes a JSON or YAML document into plain values: mappings
// become map[string]any, sequences []any. An empty document is Undefined.
func ParseDocument(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, errors.Wrap(errors.PhaseValidate, errors.KindParse, err, "parse document")
	}
	if v == nil && len(data) == 0 {
		return typeguard.Undefined, nil
	}
	return v, nil
}

// Validate decodes data and checks it against d. A non-conforming document
// yields an invalid_value error whose path points at the first mismatch.
func Validate(d typeguard.Descriptor, data []byte) error {
	v, err := ParseDocument(data)
	if err != nil {
		return err
	}
	m, bad := typeguard.Explain(d, v)
	if !bad {
		return nil
	}
	expected := "no such key"
	if m.Expected != nil {
		expected = m.Expected.String()
	}
	return errors.InvalidValue(m.Path, m.Value, typeguard.KindOfValue(m.Value), expected)
}
