// Package ndarray decodes NumPy array descriptors and raw array buffers.
//
// The .npy reader decodes numeric payloads itself; this package covers what
// it does not: dtype labels matching NumPy's own str(dtype), fixed-width byte
// and unicode strings, Fortran-ordered buffers, and the raw buffers embedded
// in pickled arrays.
package ndarray

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnsupported is returned for dtypes that cannot be decoded.
var ErrUnsupported = errors.New("unsupported dtype")

// Descr is a parsed NumPy type descriptor such as "<i8" or "|S10".
type Descr struct {
	Order    byte // '<', '>', '|' or '='
	Kind     byte // 'b', 'i', 'u', 'f', 'c', 'S', 'U', 'O', 'M', 'm', 'V'
	ItemSize int  // bytes per element as written in the descriptor
	Unit     string
}

// ParseDescr parses a descriptor string. A missing byte order means native
// (little-endian) order.
func ParseDescr(s string) (Descr, error) {
	var d Descr
	if s == "" {
		return d, fmt.Errorf("empty dtype descriptor")
	}
	switch s[0] {
	case '<', '>', '|', '=':
		d.Order = s[0]
		s = s[1:]
	default:
		d.Order = '='
	}
	if s == "" {
		return d, fmt.Errorf("dtype descriptor has no type")
	}
	if s == "?" {
		d.Kind, d.ItemSize = 'b', 1
		return d, nil
	}
	d.Kind = s[0]
	rest := s[1:]
	if i := strings.IndexByte(rest, '['); i >= 0 {
		d.Unit = rest[i+1 : len(rest)-1]
		rest = rest[:i]
	}
	if rest != "" {
		n, err := strconv.Atoi(rest)
		if err != nil {
			return d, fmt.Errorf("bad dtype descriptor %q: %w", s, err)
		}
		d.ItemSize = n
	}
	switch d.Kind {
	case 'b', 'i', 'u', 'f', 'c', 'S', 'U', 'O', 'M', 'm', 'V':
	default:
		return d, fmt.Errorf("%w: %q", ErrUnsupported, s)
	}
	if d.Kind == 'O' && d.ItemSize == 0 {
		d.ItemSize = 8
	}
	return d, nil
}

// Width returns the number of bytes one element occupies in a raw buffer.
// Unicode strings store four bytes per character.
func (d Descr) Width() int {
	if d.Kind == 'U' {
		return d.ItemSize * 4
	}
	return d.ItemSize
}

// BigEndian reports whether the buffer is stored most significant byte first.
func (d Descr) BigEndian() bool {
	return d.Order == '>'
}

// Label returns the dtype name NumPy prints for this descriptor.
func (d Descr) Label() string {
	switch d.Kind {
	case 'b':
		return "bool"
	case 'i':
		return "int" + strconv.Itoa(d.ItemSize*8)
	case 'u':
		return "uint" + strconv.Itoa(d.ItemSize*8)
	case 'f':
		return "float" + strconv.Itoa(d.ItemSize*8)
	case 'c':
		return "complex" + strconv.Itoa(d.ItemSize*8)
	case 'S':
		return "|S" + strconv.Itoa(d.ItemSize)
	case 'U':
		order := "<"
		if d.BigEndian() {
			order = ">"
		}
		return order + "U" + strconv.Itoa(d.ItemSize)
	case 'O':
		return "object"
	case 'M':
		return withUnit("datetime64", d.Unit)
	case 'm':
		return withUnit("timedelta64", d.Unit)
	case 'V':
		return "|V" + strconv.Itoa(d.ItemSize)
	}
	return string(d.Kind)
}

func withUnit(name, unit string) string {
	if unit == "" {
		return name
	}
	return name + "[" + unit + "]"
}

// LabelOf returns the NumPy dtype name for a descriptor string, or the
// descriptor itself when it cannot be parsed.
func LabelOf(descr string) string {
	d, err := ParseDescr(descr)
	if err != nil {
		return descr
	}
	return d.Label()
}
