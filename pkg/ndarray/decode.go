package ndarray

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"reflect"
	"unicode/utf8"
)

// Decode converts count elements of a raw buffer into a typed Go slice.
func Decode(d Descr, raw []byte, count int) (any, error) {
	w := d.Width()
	if w <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, d.Label())
	}
	if len(raw) < w*count {
		return nil, fmt.Errorf("array buffer holds %d bytes, need %d", len(raw), w*count)
	}
	var order binary.ByteOrder = binary.LittleEndian
	if d.BigEndian() {
		order = binary.BigEndian
	}
	elem := func(i int) []byte { return raw[i*w : (i+1)*w] }

	switch {
	case d.Kind == 'b':
		out := make([]bool, count)
		for i := range out {
			out[i] = raw[i] != 0
		}
		return out, nil
	case d.Kind == 'i' || d.Kind == 'M' || d.Kind == 'm':
		out := make([]int64, count)
		for i := range out {
			out[i] = signed(order, elem(i))
		}
		if d.Kind == 'i' {
			return narrowInts(out, w), nil
		}
		return out, nil
	case d.Kind == 'u':
		out := make([]uint64, count)
		for i := range out {
			out[i] = unsigned(order, elem(i))
		}
		return narrowUints(out, w), nil
	case d.Kind == 'f' && w == 2:
		out := make([]float32, count)
		for i := range out {
			out[i] = halfToFloat(order.Uint16(elem(i)))
		}
		return out, nil
	case d.Kind == 'f' && w == 4:
		out := make([]float32, count)
		for i := range out {
			out[i] = math.Float32frombits(order.Uint32(elem(i)))
		}
		return out, nil
	case d.Kind == 'f' && w == 8:
		out := make([]float64, count)
		for i := range out {
			out[i] = math.Float64frombits(order.Uint64(elem(i)))
		}
		return out, nil
	case d.Kind == 'c' && w == 8:
		out := make([]complex64, count)
		for i := range out {
			b := elem(i)
			out[i] = complex(math.Float32frombits(order.Uint32(b[:4])), math.Float32frombits(order.Uint32(b[4:])))
		}
		return out, nil
	case d.Kind == 'c' && w == 16:
		out := make([]complex128, count)
		for i := range out {
			b := elem(i)
			out[i] = complex(math.Float64frombits(order.Uint64(b[:8])), math.Float64frombits(order.Uint64(b[8:])))
		}
		return out, nil
	case d.Kind == 'S':
		out := make([][]byte, count)
		for i := range out {
			out[i] = bytes.TrimRight(elem(i), "\x00")
		}
		return out, nil
	case d.Kind == 'U':
		out := make([]string, count)
		for i := range out {
			out[i] = utf32(order, elem(i))
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, d.Label())
}

func signed(order binary.ByteOrder, b []byte) int64 {
	switch len(b) {
	case 1:
		return int64(int8(b[0]))
	case 2:
		return int64(int16(order.Uint16(b)))
	case 4:
		return int64(int32(order.Uint32(b)))
	default:
		return int64(order.Uint64(b))
	}
}

func unsigned(order binary.ByteOrder, b []byte) uint64 {
	switch len(b) {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(order.Uint16(b))
	case 4:
		return uint64(order.Uint32(b))
	default:
		return order.Uint64(b)
	}
}

func narrowInts(in []int64, width int) any {
	switch width {
	case 1:
		return convert[int64, int8](in)
	case 2:
		return convert[int64, int16](in)
	case 4:
		return convert[int64, int32](in)
	}
	return in
}

func narrowUints(in []uint64, width int) any {
	switch width {
	case 1:
		return convert[uint64, uint8](in)
	case 2:
		return convert[uint64, uint16](in)
	case 4:
		return convert[uint64, uint32](in)
	}
	return in
}

type integer interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

func convert[From, To integer](in []From) []To {
	out := make([]To, len(in))
	for i, v := range in {
		out[i] = To(v)
	}
	return out
}

func utf32(order binary.ByteOrder, b []byte) string {
	buf := make([]byte, 0, len(b)/4)
	for i := 0; i+4 <= len(b); i += 4 {
		r := rune(order.Uint32(b[i : i+4]))
		if r == 0 {
			break
		}
		if !utf8.ValidRune(r) {
			r = utf8.RuneError
		}
		buf = utf8.AppendRune(buf, r)
	}
	return string(buf)
}

// halfToFloat widens an IEEE 754 half-precision value.
func halfToFloat(h uint16) float32 {
	sign := uint32(h>>15) << 31
	exp := uint32(h>>10) & 0x1f
	frac := uint32(h) & 0x3ff
	switch {
	case exp == 0 && frac == 0:
		return math.Float32frombits(sign)
	case exp == 0:
		// subnormal
		f := float32(frac) / 1024 * float32(math.Pow(2, -14))
		if sign != 0 {
			return -f
		}
		return f
	case exp == 0x1f:
		return math.Float32frombits(sign | 0x7f800000 | frac<<13)
	}
	return math.Float32frombits(sign | (exp+112)<<23 | frac<<13)
}

// ToRowMajor reorders a column-major (Fortran) buffer into row-major order.
// data must be a slice holding the product of shape elements.
func ToRowMajor(data any, shape []int) any {
	if len(shape) < 2 {
		return data
	}
	src := reflect.ValueOf(data)
	n := src.Len()
	dst := reflect.MakeSlice(src.Type(), n, n)
	idx := make([]int, len(shape))
	for i := 0; i < n; i++ {
		// i is the row-major position; compute the column-major offset.
		off, stride := 0, 1
		for k := 0; k < len(shape); k++ {
			off += idx[k] * stride
			stride *= shape[k]
		}
		dst.Index(i).Set(src.Index(off))
		for k := len(shape) - 1; k >= 0; k-- {
			idx[k]++
			if idx[k] < shape[k] {
				break
			}
			idx[k] = 0
		}
	}
	return dst.Interface()
}
