package typeguard

// Kind identifies the variant of a Descriptor.
type Kind uint8

const (
	KindNull Kind = iota
	KindAny
	KindBoolean
	KindNumber
	KindString
	KindObject
	KindArray
	KindSymbol
	KindFunction
	KindLiteral
	KindInstance
	KindClass
	KindUnion
	KindArrayOf
	KindTupleOf
	KindRecordOf
	KindNullable
	KindFunc
	KindCustom
)

var kindNames = [...]string{
	KindNull:     "null",
	KindAny:      "any",
	KindBoolean:  "boolean",
	KindNumber:   "number",
	KindString:   "string",
	KindObject:   "object",
	KindArray:    "array",
	KindSymbol:   "symbol",
	KindFunction: "function",
	KindLiteral:  "literal",
	KindInstance: "instance",
	KindClass:    "class",
	KindUnion:    "union",
	KindArrayOf:  "arrayOf",
	KindTupleOf:  "tupleOf",
	KindRecordOf: "recordOf",
	KindNullable: "nullable",
	KindFunc:     "func",
	KindCustom:   "custom",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsLeaf reports whether descriptors of this kind have no sub-structure.
func (k Kind) IsLeaf() bool {
	return k <= KindClass || k == KindCustom
}

// IsComposite reports whether values of this kind are keyed containers
// whose writes are intercepted.
func (k Kind) IsComposite() bool {
	switch k {
	case KindArrayOf, KindTupleOf, KindRecordOf:
		return true
	default:
		return false
	}
}
