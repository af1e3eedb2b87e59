package numpy

import (
	"encoding/binary"
	"fmt"
	"reflect"

	"github.com/sbinet/npyio/npy"

	"github.com/JRJacoby/SciViewer/pkg/ndarray"
	"github.com/JRJacoby/SciViewer/pkg/value"
)

// elemTypes maps dtype kind and item size to the slice element type the
// npy reader decodes into.
var elemTypes = map[[2]int]reflect.Type{
	{'b', 1}:  reflect.TypeOf(false),
	{'i', 1}:  reflect.TypeOf(int8(0)),
	{'i', 2}:  reflect.TypeOf(int16(0)),
	{'i', 4}:  reflect.TypeOf(int32(0)),
	{'i', 8}:  reflect.TypeOf(int64(0)),
	{'u', 1}:  reflect.TypeOf(uint8(0)),
	{'u', 2}:  reflect.TypeOf(uint16(0)),
	{'u', 4}:  reflect.TypeOf(uint32(0)),
	{'u', 8}:  reflect.TypeOf(uint64(0)),
	{'f', 4}:  reflect.TypeOf(float32(0)),
	{'f', 8}:  reflect.TypeOf(float64(0)),
	{'c', 8}:  reflect.TypeOf(complex64(0)),
	{'c', 16}: reflect.TypeOf(complex128(0)),
}

// decoder reads the payload of one array.
type decoder struct {
	header npy.Header
	// read decodes the payload into a pointer to a typed slice.
	read func(ptr any) error
	// raw returns the payload bytes for dtypes read does not handle. May be
	// nil when raw access is unavailable.
	raw func() ([]byte, error)
}

func (d decoder) decode() (*value.NDArray, error) {
	descr, err := ndarray.ParseDescr(d.header.Descr.Type)
	if err != nil {
		return nil, err
	}
	shape := append([]int{}, d.header.Descr.Shape...)
	arr := &value.NDArray{Shape: shape, DType: descr.Label()}
	n := arr.Size()

	if rt, ok := elemTypes[[2]int{int(descr.Kind), descr.ItemSize}]; ok {
		ptr := reflect.New(reflect.SliceOf(rt))
		ptr.Elem().Set(reflect.MakeSlice(reflect.SliceOf(rt), n, n))
		if err := d.read(ptr.Interface()); err != nil {
			return nil, err
		}
		arr.Data = ptr.Elem().Interface()
	} else {
		if d.raw == nil {
			return nil, fmt.Errorf("%w: %s", ndarray.ErrUnsupported, arr.DType)
		}
		buf, err := d.raw()
		if err != nil {
			return nil, err
		}
		if arr.Data, err = ndarray.Decode(descr, buf, n); err != nil {
			return nil, err
		}
	}

	if d.header.Descr.Fortran {
		arr.Data = ndarray.ToRowMajor(arr.Data, shape)
	}
	return arr, nil
}

// payload returns the bytes following the header of an in-memory .npy file.
func payload(file []byte) ([]byte, error) {
	if len(file) < 10 || string(file[1:6]) != "NUMPY" {
		return nil, fmt.Errorf("not a NumPy array file")
	}
	var start int
	switch file[6] {
	case 1:
		start = 10 + int(binary.LittleEndian.Uint16(file[8:10]))
	default:
		if len(file) < 12 {
			return nil, fmt.Errorf("truncated NumPy header")
		}
		start = 12 + int(binary.LittleEndian.Uint32(file[8:12]))
	}
	if start > len(file) {
		return nil, fmt.Errorf("truncated NumPy header")
	}
	return file[start:], nil
}
