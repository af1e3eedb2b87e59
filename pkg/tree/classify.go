package tree

import (
	"strconv"

	"github.com/JRJacoby/SciViewer/pkg/value"
)

// IsGroupLike reports whether a sequence or set is expanded into indexed
// children. Only the first element is inspected: the container is group-like
// when that element is itself a container, an array or a table. Empty
// containers and non-containers are never group-like.
func IsGroupLike(v *value.Value) bool {
	first := v.First()
	if first == nil {
		return false
	}
	return first.Kind.IsContainer() || first.Kind == value.KindArray || first.Kind == value.KindTable
}

// IndexName returns the member name of the i-th element of a group-like
// sequence.
func IndexName(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}
