package value

import "reflect"

// NDArray is an n-dimensional array stored flat in row-major order.
//
// Data is a typed Go slice ([]int64, []float32, []string, []complex128,
// [][]byte, []map[string]any for compound records, []*Value for object
// arrays, ...). Its length equals Size for fully read arrays.
type NDArray struct {
	Shape []int
	DType string
	Data  any
}

// Size returns the element count implied by Shape. A zero-dimensional array
// holds one element.
func (a *NDArray) Size() int {
	n := 1
	for _, d := range a.Shape {
		n *= d
	}
	return n
}

// Len returns the number of elements actually held in Data.
func (a *NDArray) Len() int {
	if a.Data == nil {
		return 0
	}
	rv := reflect.ValueOf(a.Data)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return 1
	}
	return rv.Len()
}

// At returns element i of the flattened data.
func (a *NDArray) At(i int) any {
	rv := reflect.ValueOf(a.Data)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return a.Data
	}
	return rv.Index(i).Interface()
}

// Head returns up to n leading elements in row-major order.
func (a *NDArray) Head(n int) []any {
	if l := a.Len(); n > l {
		n = l
	}
	out := make([]any, n)
	for i := range out {
		out[i] = a.At(i)
	}
	return out
}
