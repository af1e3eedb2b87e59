package value

import (
	"fmt"
	"math"
	"math/big"
	"sort"
	"time"
)

// Value is one ingested runtime value. Only the fields matching Kind are set.
type Value struct {
	Kind     Kind
	TypeName string

	Bool  bool
	Int   int64
	Big   *big.Int // set instead of Int when the integer does not fit in 64 bits
	Float float64
	Str   string // KindString payload, or the display text of a KindOpaque value
	Bytes []byte

	Items   []*Value // KindSequence and KindSet, in iteration order
	Entries []Entry  // KindMapping, in insertion order

	Array *NDArray
	Table *Frame
}

// Entry is one key/value pair of a mapping.
type Entry struct {
	Key   string
	Value *Value
}

// Name returns the runtime type name, falling back to the kind's default.
func (v *Value) Name() string {
	if v.TypeName != "" {
		return v.TypeName
	}
	if v.Kind < 0 || int(v.Kind) >= len(defaultTypeNames) {
		return "object"
	}
	return defaultTypeNames[v.Kind]
}

// Len returns the element count of containers, the character count of
// strings and the byte count of byte strings. It is 0 for everything else.
func (v *Value) Len() int {
	switch v.Kind {
	case KindSequence, KindSet:
		return len(v.Items)
	case KindMapping:
		return len(v.Entries)
	case KindString:
		return len([]rune(v.Str))
	case KindBytes:
		return len(v.Bytes)
	}
	return 0
}

// First returns the first element of a sequence or set, or nil.
func (v *Value) First() *Value {
	if (v.Kind == KindSequence || v.Kind == KindSet) && len(v.Items) > 0 {
		return v.Items[0]
	}
	return nil
}

// Lookup returns the mapping entry stored under key.
func (v *Value) Lookup(key string) (*Value, bool) {
	for _, e := range v.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// =============================================================================
// Constructors
// =============================================================================

func NewNull() *Value { return &Value{Kind: KindNull} }

func NewBool(b bool) *Value { return &Value{Kind: KindBool, Bool: b} }

func NewInt(i int64) *Value { return &Value{Kind: KindInt, Int: i} }

// NewBigInt returns an integer value, keeping b only when it overflows int64.
func NewBigInt(b *big.Int) *Value {
	if b.IsInt64() {
		return NewInt(b.Int64())
	}
	return &Value{Kind: KindInt, Big: new(big.Int).Set(b)}
}

// NewUint returns an integer value for an unsigned 64-bit integer.
func NewUint(u uint64) *Value {
	if u <= math.MaxInt64 {
		return NewInt(int64(u))
	}
	return &Value{Kind: KindInt, Big: new(big.Int).SetUint64(u)}
}

func NewFloat(f float64) *Value { return &Value{Kind: KindFloat, Float: f} }

func NewString(s string) *Value { return &Value{Kind: KindString, Str: s} }

func NewBytes(b []byte) *Value { return &Value{Kind: KindBytes, Bytes: b} }

// NewSequence returns an ordered container. typeName may be empty.
func NewSequence(typeName string, items ...*Value) *Value {
	return &Value{Kind: KindSequence, TypeName: typeName, Items: items}
}

// NewSet returns an unordered container. typeName may be empty.
func NewSet(typeName string, items ...*Value) *Value {
	return &Value{Kind: KindSet, TypeName: typeName, Items: items}
}

// NewMapping returns a keyed container. typeName may be empty.
func NewMapping(typeName string, entries ...Entry) *Value {
	return &Value{Kind: KindMapping, TypeName: typeName, Entries: entries}
}

func NewArray(a *NDArray) *Value { return &Value{Kind: KindArray, Array: a} }

func NewTable(t *Frame) *Value { return &Value{Kind: KindTable, Table: t} }

// NewOpaque wraps a value the model has no kind for, keeping its display text.
func NewOpaque(typeName, display string) *Value {
	return &Value{Kind: KindOpaque, TypeName: typeName, Str: display}
}

// Append adds item to a sequence or set.
func (v *Value) Append(item *Value) {
	v.Items = append(v.Items, item)
}

// Set stores val under key in a mapping, replacing an existing entry.
func (v *Value) Set(key string, val *Value) {
	for i := range v.Entries {
		if v.Entries[i].Key == key {
			v.Entries[i].Value = val
			return
		}
	}
	v.Entries = append(v.Entries, Entry{Key: key, Value: val})
}

// Of converts a plain Go value into a Value. Maps with string keys are
// ordered by key since Go maps carry no order of their own.
func Of(x any) *Value {
	switch t := x.(type) {
	case nil:
		return NewNull()
	case *Value:
		return t
	case bool:
		return NewBool(t)
	case int:
		return NewInt(int64(t))
	case int8:
		return NewInt(int64(t))
	case int16:
		return NewInt(int64(t))
	case int32:
		return NewInt(int64(t))
	case int64:
		return NewInt(t)
	case uint:
		return NewUint(uint64(t))
	case uint8:
		return NewInt(int64(t))
	case uint16:
		return NewInt(int64(t))
	case uint32:
		return NewInt(int64(t))
	case uint64:
		return NewUint(t)
	case *big.Int:
		return NewBigInt(t)
	case float32:
		return NewFloat(float64(t))
	case float64:
		return NewFloat(t)
	case complex64:
		return NewOpaque("complex", FormatComplex(complex128(t)))
	case complex128:
		return NewOpaque("complex", FormatComplex(t))
	case string:
		return NewString(t)
	case []byte:
		return NewBytes(t)
	case time.Time:
		return NewOpaque("datetime", Timestamp{Time: t, Zoned: true}.ISO8601())
	case []any:
		seq := NewSequence("")
		for _, item := range t {
			seq.Append(Of(item))
		}
		return seq
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := NewMapping("")
		for _, k := range keys {
			m.Set(k, Of(t[k]))
		}
		return m
	case *NDArray:
		return NewArray(t)
	case *Frame:
		return NewTable(t)
	case fmt.Stringer:
		return NewOpaque(fmt.Sprintf("%T", x), t.String())
	}
	return NewOpaque(fmt.Sprintf("%T", x), fmt.Sprint(x))
}

// FormatComplex renders c the way Python prints complex numbers.
func FormatComplex(c complex128) string {
	re, im := real(c), imag(c)
	sign := "+"
	if im < 0 || (im == 0 && math.Signbit(im)) {
		sign = "-"
		im = -im
	}
	if re == 0 && !math.Signbit(re) {
		return fmt.Sprintf("%gj", imag(c))
	}
	return fmt.Sprintf("(%g%s%gj)", re, sign, im)
}
