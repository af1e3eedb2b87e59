package pickle

import (
	"fmt"
	"math"
	"math/big"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/nlpodyssey/gopickle/types"

	"github.com/JRJacoby/SciViewer/pkg/ndarray"
	"github.com/JRJacoby/SciViewer/pkg/value"
)

// converter turns unpickled objects into values. Objects reached more than
// once map to the same *value.Value.
type converter struct {
	log  *log.Logger
	memo map[uintptr]*value.Value
}

func newConverter(logger *log.Logger) *converter {
	return &converter{log: logger, memo: make(map[uintptr]*value.Value)}
}

func (c *converter) convert(x any) *value.Value {
	key := pointer(x)
	if key != 0 {
		if v, ok := c.memo[key]; ok {
			return v
		}
	}

	switch t := x.(type) {
	case nil, types.NoneType:
		return value.NewNull()
	case *types.List:
		v := c.remember(key, value.NewSequence("list"))
		for _, item := range *t {
			v.Append(c.convert(item))
		}
		return v
	case *types.Tuple:
		v := c.remember(key, value.NewSequence("tuple"))
		for _, item := range *t {
			v.Append(c.convert(item))
		}
		return v
	case *types.Dict:
		v := c.remember(key, value.NewMapping("dict"))
		for _, e := range *t {
			v.Set(str(e.Key), c.convert(e.Value))
		}
		return v
	case *types.OrderedDict:
		v := c.remember(key, value.NewMapping("OrderedDict"))
		for el := t.List.Front(); el != nil; el = el.Next() {
			if e, ok := el.Value.(*types.OrderedDictEntry); ok {
				v.Set(str(e.Key), c.convert(e.Value))
			}
		}
		return v
	case *types.Set:
		return c.set(key, "set", keys(reflect.ValueOf(*t)))
	case *types.FrozenSet:
		return c.set(key, "frozenset", keys(reflect.ValueOf(*t)))
	case *pySet:
		name := "set"
		if t.frozen {
			name = "frozenset"
		}
		return c.set(key, name, t.items)
	case *ndarrayObject:
		return c.remember(key, value.NewArray(c.array(t)))
	case *numpyScalar:
		v := value.Of(t.x)
		v.TypeName = t.typeName
		return v
	case *dtype:
		return value.NewOpaque("dtype", t.String())
	case *object:
		return c.remember(key, value.NewOpaque(t.class.name, t.String()))
	case *class:
		return value.NewOpaque("type", "<class '"+t.String()+"'>")
	case bool, int, int64, float64, string, *big.Int, complex128:
		return value.Of(t)
	}
	if b, ok := byteSlice(x); ok {
		return value.NewBytes(b)
	}
	c.log.Debug("unknown unpickled type", "type", fmt.Sprintf("%T", x))
	return value.NewOpaque(fmt.Sprintf("%T", x), fmt.Sprint(x))
}

func (c *converter) remember(key uintptr, v *value.Value) *value.Value {
	if key != 0 {
		c.memo[key] = v
	}
	return v
}

// set converts set members ordered by their display form, since Python
// iteration order is not recoverable from the pickle.
func (c *converter) set(key uintptr, name string, items []any) *value.Value {
	v := c.remember(key, value.NewSet(name))
	sort.SliceStable(items, func(i, j int) bool { return repr(items[i]) < repr(items[j]) })
	for _, item := range items {
		v.Append(c.convert(item))
	}
	return v
}

// array decodes an ndarray buffer. Buffers that cannot be decoded leave the
// array empty so its shape and dtype are still reported.
func (c *converter) array(a *ndarrayObject) *value.NDArray {
	out := &value.NDArray{Shape: a.shape, DType: "object", Data: []any{}}
	if a.dtype == nil {
		return out
	}
	desc, err := a.dtype.parse()
	if err != nil {
		c.log.Debug("bad ndarray dtype", "dtype", a.dtype.descr, "err", err)
		return out
	}
	out.DType = desc.Label()

	if items, ok := elements(a.raw); ok && desc.Kind == 'O' {
		vals := make([]*value.Value, len(items))
		for i, item := range items {
			vals[i] = c.convert(item)
		}
		out.Data = vals
		return out
	}
	raw, ok := byteSlice(a.raw)
	if !ok {
		c.log.Debug("ndarray buffer not readable", "type", fmt.Sprintf("%T", a.raw))
		return out
	}
	data, err := ndarray.Decode(desc, raw, out.Size())
	if err != nil {
		c.log.Debug("ndarray buffer not decoded", "dtype", out.DType, "err", err)
		return out
	}
	if a.fortran {
		data = ndarray.ToRowMajor(data, a.shape)
	}
	out.Data = data
	return out
}

func pointer(x any) uintptr {
	rv := reflect.ValueOf(x)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() {
		return rv.Pointer()
	}
	return 0
}

func keys(m reflect.Value) []any {
	out := make([]any, 0, m.Len())
	for _, k := range m.MapKeys() {
		out = append(out, k.Interface())
	}
	return out
}

// elements returns the members of a list, tuple, set or Go slice.
func elements(x any) ([]any, bool) {
	switch t := x.(type) {
	case *types.List:
		return []any(*t), true
	case *types.Tuple:
		return []any(*t), true
	case *types.Set:
		return keys(reflect.ValueOf(*t)), true
	case *types.FrozenSet:
		return keys(reflect.ValueOf(*t)), true
	case *pySet:
		return t.items, true
	case []any:
		return t, true
	}
	rv := reflect.ValueOf(x)
	if rv.Kind() != reflect.Slice || rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// byteSlice returns the contents of bytes-like objects.
func byteSlice(x any) ([]byte, bool) {
	switch t := x.(type) {
	case []byte:
		return t, true
	case string:
		return []byte(t), true
	}
	rv := reflect.ValueOf(x)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
		return rv.Bytes(), true
	}
	return nil, false
}

// str renders a mapping key the way Python's str() does.
func str(x any) string {
	if s, ok := x.(string); ok {
		return s
	}
	return repr(x)
}

// repr renders x the way Python's repr() does for the common builtin types.
func repr(x any) string {
	switch t := x.(type) {
	case nil, types.NoneType:
		return "None"
	case bool:
		if t {
			return "True"
		}
		return "False"
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case *big.Int:
		return t.String()
	case float64:
		return floatRepr(t)
	case string:
		return "'" + strings.ReplaceAll(t, "'", `\'`) + "'"
	case []byte:
		return "b" + repr(string(t))
	case complex128:
		return value.FormatComplex(t)
	case *types.Tuple:
		parts := make([]string, t.Len())
		for i := range parts {
			parts[i] = repr(t.Get(i))
		}
		if len(parts) == 1 {
			return "(" + parts[0] + ",)"
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case fmt.Stringer:
		return t.String()
	}
	return fmt.Sprint(x)
}

func floatRepr(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case f == math.Trunc(f) && math.Abs(f) < 1e16:
		return strconv.FormatFloat(f, 'f', 1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
