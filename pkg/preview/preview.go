// Package preview turns values into bounded, JSON-safe previews.
//
// A [Serializer] never recurses more than one level: containers found inside
// a sequence preview are replaced by a placeholder naming their type, such as
// "<list>". Arrays are flattened in row-major order and cut at the preview cap
// without a marker; generic sequences and sets that exceed the cap get a
// trailing [Marker] element.
//
// Every value returned by the serializer encodes as valid JSON: non-finite
// floats become the strings "NaN", "Infinity" and "-Infinity", integers
// beyond 64 bits become [encoding/json.Number], and byte strings are decoded
// as UTF-8 with invalid sequences replaced.
package preview

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"time"

	"golang.org/x/text/encoding/unicode"

	"github.com/JRJacoby/SciViewer/pkg/value"
)

// Marker is appended to truncated sequence and set previews.
const Marker = "..."

// Options bound the size of previews.
type Options struct {
	Cap         int // elements kept from arrays, sequences and sets
	StringLimit int // characters kept from the preview of a string dataset
	OpaqueLimit int // characters kept from display strings of opaque values
	TableRows   int // rows rendered from tables
}

// DefaultOptions returns the standard preview bounds.
func DefaultOptions() Options {
	return Options{Cap: 20, StringLimit: 500, OpaqueLimit: 200, TableRows: 10}
}

// Serializer builds previews. The zero value is not usable; call New.
type Serializer struct {
	opts Options
}

// New returns a Serializer. Non-positive option fields take their defaults.
func New(opts Options) *Serializer {
	def := DefaultOptions()
	if opts.Cap <= 0 {
		opts.Cap = def.Cap
	}
	if opts.StringLimit <= 0 {
		opts.StringLimit = def.StringLimit
	}
	if opts.OpaqueLimit <= 0 {
		opts.OpaqueLimit = def.OpaqueLimit
	}
	if opts.TableRows <= 0 {
		opts.TableRows = def.TableRows
	}
	return &Serializer{opts: opts}
}

// Options returns the bounds in effect.
func (s *Serializer) Options() Options {
	return s.opts
}

// Preview returns the preview of v.
func (s *Serializer) Preview(v *value.Value) any {
	switch v.Kind {
	case value.KindArray:
		return s.array(v.Array)
	case value.KindSequence, value.KindSet:
		return s.sequence(v.Items)
	case value.KindTable:
		return s.Rows(v.Table)
	case value.KindMapping:
		return placeholder(v)
	case value.KindString:
		return truncate(v.Str, s.opts.StringLimit)
	}
	return s.Scalar(v)
}

// Attribute returns the form of a metadata value. Unlike Preview it keeps
// strings whole.
func (s *Serializer) Attribute(v *value.Value) any {
	if v.Kind == value.KindString {
		return v.Str
	}
	return s.Preview(v)
}

// Scalar returns the JSON-safe form of a single value. Containers, arrays
// and tables are not expanded; they become placeholders. Strings and byte
// strings are returned whole.
func (s *Serializer) Scalar(v *value.Value) any {
	switch v.Kind {
	case value.KindNull:
		return nil
	case value.KindBool:
		return v.Bool
	case value.KindInt:
		if v.Big != nil {
			return bigNumber(v.Big)
		}
		return v.Int
	case value.KindFloat:
		return float(v.Float)
	case value.KindBytes:
		return DecodeUTF8(v.Bytes)
	case value.KindString:
		return v.Str
	case value.KindOpaque:
		return truncate(v.Str, s.opts.OpaqueLimit)
	case value.KindArray, value.KindTable, value.KindSequence, value.KindMapping, value.KindSet:
		return placeholder(v)
	}
	return nil
}

// Element returns the JSON-safe form of one raw array element.
func (s *Serializer) Element(x any) any {
	switch t := x.(type) {
	case nil, bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return x
	case string:
		return t
	case float32:
		return float(float64(t))
	case float64:
		return float(t)
	case complex64:
		return value.FormatComplex(complex128(t))
	case complex128:
		return value.FormatComplex(t)
	case []byte:
		return DecodeUTF8(t)
	case *big.Int:
		return bigNumber(t)
	case *value.Value:
		return s.Scalar(t)
	case value.Temporal:
		return t.ISO8601()
	case time.Time:
		return value.Timestamp{Time: t, Zoned: true}.ISO8601()
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, field := range t {
			out[k] = s.Element(field)
		}
		return out
	}
	return truncate(fmt.Sprint(x), s.opts.OpaqueLimit)
}

func (s *Serializer) array(a *value.NDArray) any {
	if a == nil {
		return []any{}
	}
	if len(a.Shape) == 0 && a.Len() == 1 {
		return s.Element(a.At(0))
	}
	head := a.Head(s.opts.Cap)
	out := make([]any, len(head))
	for i, x := range head {
		out[i] = s.Element(x)
	}
	return out
}

func (s *Serializer) sequence(items []*value.Value) []any {
	n := min(len(items), s.opts.Cap)
	out := make([]any, 0, n+1)
	for _, item := range items[:n] {
		out = append(out, s.Scalar(item))
	}
	if len(items) > s.opts.Cap {
		out = append(out, Marker)
	}
	return out
}

func placeholder(v *value.Value) string {
	return "<" + v.Name() + ">"
}

// float maps non-finite values onto strings JSON can carry.
func float(f float64) any {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return f
}

func bigNumber(b *big.Int) json.Number {
	return json.Number(b.String())
}

// truncate keeps the first limit characters of s.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}

// DecodeUTF8 decodes b as UTF-8, replacing invalid sequences with U+FFFD.
func DecodeUTF8(b []byte) string {
	out, err := unicode.UTF8.NewDecoder().Bytes(b)
	if err != nil {
		return string([]rune(string(b)))
	}
	return string(out)
}
