package tree

import "github.com/JRJacoby/SciViewer/pkg/value"

// ShapeOf returns the dataset shape of v.
func ShapeOf(v *value.Value) []int {
	switch {
	case v.Kind == value.KindArray:
		if v.Array == nil {
			return []int{}
		}
		return append([]int{}, v.Array.Shape...)
	case v.Kind == value.KindTable:
		if v.Table == nil {
			return []int{0, 0}
		}
		return []int{v.Table.NumRows, len(v.Table.Columns)}
	case v.Kind.IsScalar():
		return []int{}
	}
	return []int{v.Len()}
}

// DTypeOf returns the dtype label of v: the element type for arrays and the
// runtime type name for everything else.
func DTypeOf(v *value.Value) string {
	if v.Kind == value.KindArray && v.Array != nil && v.Array.DType != "" {
		return v.Array.DType
	}
	return v.Name()
}
