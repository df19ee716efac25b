package schema

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/typeguard"
	"github.com/wippyai/typeguard/errors"
)

const (
	keyDefs = "$defs"
	keyType = "$type"
)

// Compiler turns schema nodes into descriptors of one registry.
type Compiler struct {
	reg  *typeguard.Registry
	defs map[string]*yaml.Node
	done map[string]typeguard.Descriptor
	busy map[string]bool
}

// NewCompiler creates a compiler bound to reg. A nil reg uses the default
// registry.
func NewCompiler(reg *typeguard.Registry) *Compiler {
	if reg == nil {
		reg = typeguard.Default()
	}
	return &Compiler{reg: reg}
}

// Compile parses a schema document using the default registry.
func Compile(data []byte) (typeguard.Descriptor, error) {
	return NewCompiler(nil).Compile(data)
}

// Load reads and compiles a schema file using the default registry.
func Load(path string) (typeguard.Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseSchema, errors.KindParse, err, "read schema "+path)
	}
	return Compile(data)
}

// Compile parses data as YAML and compiles the document.
func (c *Compiler) Compile(data []byte) (typeguard.Descriptor, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.PhaseSchema, errors.KindParse, err, "parse schema")
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New(errors.PhaseSchema, errors.KindParse).
			Detail("empty schema document").
			Build()
	}
	return c.CompileNode(doc.Content[0])
}

// CompileNode compiles a root node, honoring $defs and $type.
func (c *Compiler) CompileNode(root *yaml.Node) (typeguard.Descriptor, error) {
	c.defs = map[string]*yaml.Node{}
	c.done = map[string]typeguard.Descriptor{}
	c.busy = map[string]bool{}

	if root.Kind != yaml.MappingNode || lookup(root, keyDefs) == nil {
		return c.node(root, nil)
	}

	defs := lookup(root, keyDefs)
	if defs.Kind != yaml.MappingNode {
		return nil, invalid(defs, nil, "%s must be a mapping", keyDefs)
	}
	for i := 0; i+1 < len(defs.Content); i += 2 {
		name := defs.Content[i].Value
		if _, builtin := builtins[strings.TrimSuffix(name, "?")]; builtin || strings.HasSuffix(name, "?") {
			return nil, invalid(defs.Content[i], []string{keyDefs}, "definition %q shadows a built-in name", name)
		}
		c.defs[name] = defs.Content[i+1]
	}

	typ := lookup(root, keyType)
	if typ == nil {
		return nil, invalid(root, nil, "document with %s needs a %s entry", keyDefs, keyType)
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		if k := root.Content[i].Value; k != keyDefs && k != keyType {
			return nil, invalid(root.Content[i], nil, "unexpected top-level key %q", k)
		}
	}
	return c.node(typ, []string{keyType})
}

var builtins = map[string]typeguard.Descriptor{
	"null":     typeguard.Null,
	"any":      typeguard.Any,
	"boolean":  typeguard.Boolean,
	"number":   typeguard.Number,
	"string":   typeguard.String,
	"object":   typeguard.Object,
	"array":    typeguard.Array,
	"symbol":   typeguard.Symbol,
	"function": typeguard.Function,
	"integer":  typeguard.Integer,
}

func (c *Compiler) node(n *yaml.Node, path []string) (typeguard.Descriptor, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return c.node(n.Alias, path)
	case yaml.ScalarNode:
		return c.scalar(n, path)
	case yaml.SequenceNode:
		hints, err := c.nodes(n.Content, path)
		if err != nil {
			return nil, err
		}
		return c.reg.TupleOf(hints...), nil
	case yaml.MappingNode:
		if len(n.Content) == 2 && strings.HasPrefix(n.Content[0].Value, "$") {
			return c.directive(n.Content[0], n.Content[1], path)
		}
		return c.record(n, path)
	default:
		return nil, invalid(n, path, "unexpected node")
	}
}

func (c *Compiler) nodes(ns []*yaml.Node, path []string) ([]any, error) {
	hints := make([]any, len(ns))
	for i, item := range ns {
		d, err := c.node(item, sub(path, fmt.Sprintf("[%d]", i)))
		if err != nil {
			return nil, err
		}
		hints[i] = d
	}
	return hints, nil
}

func (c *Compiler) scalar(n *yaml.Node, path []string) (typeguard.Descriptor, error) {
	switch n.ShortTag() {
	case "!!null":
		return typeguard.Null, nil
	case "!!str":
	default:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, invalid(n, path, "cannot decode literal %q", n.Value)
		}
		return c.reg.Literal(v), nil
	}

	name, nullable := strings.CutSuffix(n.Value, "?")
	d, err := c.named(n, name, path)
	if err != nil {
		return nil, err
	}
	if nullable {
		return c.reg.Nullable(d), nil
	}
	return d, nil
}

func (c *Compiler) named(n *yaml.Node, name string, path []string) (typeguard.Descriptor, error) {
	if d, ok := builtins[name]; ok {
		return d, nil
	}
	if d, ok := c.done[name]; ok {
		return d, nil
	}
	def, ok := c.defs[name]
	if !ok {
		return nil, invalid(n, path, "unknown type name %q", name)
	}
	if c.busy[name] {
		return nil, invalid(n, path, "definition %q refers to itself", name)
	}
	c.busy[name] = true
	d, err := c.node(def, []string{keyDefs, name})
	delete(c.busy, name)
	if err != nil {
		return nil, err
	}
	c.done[name] = d
	return d, nil
}

func (c *Compiler) record(n *yaml.Node, path []string) (typeguard.Descriptor, error) {
	shape := make(map[string]any, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i]
		if key.Kind != yaml.ScalarNode {
			return nil, invalid(key, path, "record keys must be scalars")
		}
		name, optional := strings.CutSuffix(key.Value, "?")
		if strings.HasPrefix(name, "$") {
			return nil, invalid(key, path, "directive %s cannot be mixed with record fields", name)
		}
		if _, dup := shape[name]; dup {
			return nil, invalid(key, path, "duplicate field %q", name)
		}
		d, err := c.node(n.Content[i+1], sub(path, name))
		if err != nil {
			return nil, err
		}
		if optional {
			d = c.reg.Nullable(d)
		}
		shape[name] = d
	}
	return c.reg.RecordOf(shape)
}

// funcOverload is the YAML form of one $func overload.
type funcOverload struct {
	Params  []yaml.Node `yaml:"params"`
	Returns *yaml.Node  `yaml:"returns"`
}

// intRange is the YAML form of $integer bounds.
type intRange struct {
	Min *float64 `yaml:"min"`
	Max *float64 `yaml:"max"`
}

func (c *Compiler) directive(key, val *yaml.Node, path []string) (typeguard.Descriptor, error) {
	path = sub(path, key.Value)
	switch key.Value {
	case "$oneOf":
		if val.Kind != yaml.SequenceNode || len(val.Content) == 0 {
			return nil, invalid(val, path, "$oneOf takes a non-empty list")
		}
		hints, err := c.nodes(val.Content, path)
		if err != nil {
			return nil, err
		}
		return c.reg.OneOf(hints[0], hints[1:]...), nil

	case "$arrayOf":
		if val.Kind == yaml.SequenceNode {
			if len(val.Content) == 0 {
				return nil, invalid(val, path, "$arrayOf takes a type or a non-empty list")
			}
			hints, err := c.nodes(val.Content, path)
			if err != nil {
				return nil, err
			}
			return c.reg.ArrayOf(hints[0], hints[1:]...), nil
		}
		elem, err := c.node(val, path)
		if err != nil {
			return nil, err
		}
		return c.reg.ArrayOf(elem), nil

	case "$tupleOf":
		if val.Kind != yaml.SequenceNode {
			return nil, invalid(val, path, "$tupleOf takes a list")
		}
		hints, err := c.nodes(val.Content, path)
		if err != nil {
			return nil, err
		}
		return c.reg.TupleOf(hints...), nil

	case "$nullable":
		inner, err := c.node(val, path)
		if err != nil {
			return nil, err
		}
		return c.reg.Nullable(inner), nil

	case "$literal":
		var v any
		if err := val.Decode(&v); err != nil {
			return nil, invalid(val, path, "cannot decode literal")
		}
		return c.reg.Literal(v), nil

	case "$func":
		return c.function(val, path)

	case "$integer":
		return c.integer(val, path)

	default:
		return nil, invalid(key, path, "unknown directive %s", key.Value)
	}
}

func (c *Compiler) function(val *yaml.Node, path []string) (typeguard.Descriptor, error) {
	var overloads []funcOverload
	if err := val.Decode(&overloads); err != nil {
		return nil, invalid(val, path, "$func takes a list of {params, returns}")
	}
	var hints []any
	for i, o := range overloads {
		at := sub(path, fmt.Sprintf("[%d]", i))
		for j := range o.Params {
			d, err := c.node(&o.Params[j], sub(at, "params", fmt.Sprintf("[%d]", j)))
			if err != nil {
				return nil, err
			}
			hints = append(hints, d)
		}
		ret := typeguard.Any
		if o.Returns != nil {
			d, err := c.node(o.Returns, sub(at, "returns"))
			if err != nil {
				return nil, err
			}
			ret = d
		}
		hints = append(hints, typeguard.Returns(ret))
	}
	return c.reg.Func(hints...), nil
}

func (c *Compiler) integer(val *yaml.Node, path []string) (typeguard.Descriptor, error) {
	var r intRange
	if val.ShortTag() != "!!null" {
		if err := val.Decode(&r); err != nil {
			return nil, invalid(val, path, "$integer takes {min, max}")
		}
	}
	if r.Min == nil && r.Max == nil {
		return typeguard.Integer, nil
	}
	return IntegerRange(r.Min, r.Max), nil
}

// IntegerRange returns an integer refinement bounded by lower and upper,
// either of which may be nil.
func IntegerRange(lower, upper *float64) typeguard.Descriptor {
	lo, hi := "", ""
	if lower != nil {
		lo = fmt.Sprint(*lower)
	}
	if upper != nil {
		hi = fmt.Sprint(*upper)
	}

	var def float64
	if lower != nil && *lower > 0 {
		def = *lower
	}
	if upper != nil && *upper < 0 {
		def = *upper
	}
	return typeguard.NewBaseType(func(v any) bool {
		f, ok := typeguard.ToNumber(v)
		if !ok || !typeguard.IsInteger(f) {
			return false
		}
		return (lower == nil || f >= *lower) && (upper == nil || f <= *upper)
	}, "integer["+lo+".."+hi+"]", def)
}

func sub(path []string, elems ...string) []string {
	return append(slices.Clip(path), elems...)
}

func lookup(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

// invalid reports a schema error at the node's position.
func invalid(n *yaml.Node, path []string, format string, args ...any) error {
	return errors.New(errors.PhaseSchema, errors.KindInvalidHint).
		Path(path...).
		Detail("line %d, column %d: %s", n.Line, n.Column, fmt.Sprintf(format, args...)).
		Build()
}
