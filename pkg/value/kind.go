package value

// Kind discriminates the closed set of value shapes.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindBytes
	KindString
	KindArray
	KindTable
	KindSequence
	KindMapping
	KindSet
	KindOpaque
)

var kindNames = [...]string{
	KindNull:     "null",
	KindBool:     "bool",
	KindInt:      "int",
	KindFloat:    "float",
	KindBytes:    "bytes",
	KindString:   "string",
	KindArray:    "array",
	KindTable:    "table",
	KindSequence: "sequence",
	KindMapping:  "mapping",
	KindSet:      "set",
	KindOpaque:   "opaque",
}

// defaultTypeNames are the runtime type names reported when an adapter does
// not supply one.
var defaultTypeNames = [...]string{
	KindNull:     "NoneType",
	KindBool:     "bool",
	KindInt:      "int",
	KindFloat:    "float",
	KindBytes:    "bytes",
	KindString:   "str",
	KindArray:    "ndarray",
	KindTable:    "table",
	KindSequence: "list",
	KindMapping:  "dict",
	KindSet:      "set",
	KindOpaque:   "object",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// IsContainer reports whether values of this kind hold other values
// (sequences, mappings and sets).
func (k Kind) IsContainer() bool {
	return k == KindSequence || k == KindMapping || k == KindSet
}

// IsScalar reports whether values of this kind have an empty shape.
func (k Kind) IsScalar() bool {
	switch k {
	case KindNull, KindBool, KindInt, KindFloat, KindBytes, KindOpaque:
		return true
	}
	return false
}
