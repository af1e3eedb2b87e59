package pickle

import (
	"fmt"
	"math/big"

	"github.com/nlpodyssey/gopickle/types"

	"github.com/JRJacoby/SciViewer/pkg/ndarray"
)

// function is a module-level callable referenced by a pickle.
type function func(args ...any) (any, error)

func (f function) Call(args ...any) (any, error) { return f(args...) }

var functions = map[string]function{
	"numpy.core.multiarray._reconstruct":  reconstruct,
	"numpy._core.multiarray._reconstruct": reconstruct,
	"numpy.core.multiarray.scalar":        scalar,
	"numpy._core.multiarray.scalar":       scalar,
	"numpy.core.numeric._frombuffer":      frombuffer,
	"numpy._core.numeric._frombuffer":     frombuffer,
	"numpy.dtype":                         newDType,
	"_codecs.encode":                      encode,
	"builtins.set":                        newSet(false),
	"__builtin__.set":                     newSet(false),
	"builtins.frozenset":                  newSet(true),
	"__builtin__.frozenset":               newSet(true),
	"builtins.bytearray":                  newByteArray,
	"__builtin__.bytearray":               newByteArray,
	"builtins.complex":                    newComplex,
	"__builtin__.complex":                 newComplex,
}

// findClass resolves global references the unpickler has no class for.
func findClass(module, name string) (any, error) {
	if fn, ok := functions[module+"."+name]; ok {
		return fn, nil
	}
	return &class{module: module, name: name}, nil
}

// class is any Python class without a dedicated reconstruction.
type class struct {
	module, name string
}

func (c *class) Call(args ...any) (any, error)  { return &object{class: c, args: args}, nil }
func (c *class) PyNew(args ...any) (any, error) { return &object{class: c, args: args}, nil }

func (c *class) String() string { return c.module + "." + c.name }

// object is an instance of a class. It keeps whatever the pickle handed to
// it but is only ever shown by its display string.
type object struct {
	class *class
	args  []any
	state any
	dict  []*types.DictEntry
}

func (o *object) PySetState(state any) error {
	o.state = state
	return nil
}

func (o *object) PyDictSet(key, val any) error {
	o.dict = append(o.dict, &types.DictEntry{Key: key, Value: val})
	return nil
}

func (o *object) String() string {
	return "<" + o.class.String() + " object>"
}

// pySet is a set built through the set or frozenset constructor.
type pySet struct {
	items  []any
	frozen bool
}

func newSet(frozen bool) function {
	return func(args ...any) (any, error) {
		s := &pySet{frozen: frozen}
		if len(args) > 0 {
			items, ok := elements(args[0])
			if !ok {
				return nil, fmt.Errorf("set: unsupported argument %T", args[0])
			}
			s.items = items
		}
		return s, nil
	}
}

func newByteArray(args ...any) (any, error) {
	switch len(args) {
	case 0:
		return []byte{}, nil
	case 1:
		if b, ok := byteSlice(args[0]); ok {
			return b, nil
		}
	default:
		return encode(args...)
	}
	return nil, fmt.Errorf("bytearray: unsupported argument %T", args[0])
}

func newComplex(args ...any) (any, error) {
	var parts [2]float64
	for i := 0; i < len(args) && i < 2; i++ {
		f, ok := number(args[i])
		if !ok {
			return nil, fmt.Errorf("complex: unsupported argument %T", args[i])
		}
		parts[i] = f
	}
	return complex(parts[0], parts[1]), nil
}

// encode implements _codecs.encode, which protocol 2 pickles use to carry
// bytes objects as latin-1 text.
func encode(args ...any) (any, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("encode: missing argument")
	}
	s, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("encode: unsupported argument %T", args[0])
	}
	encoding := "utf-8"
	if len(args) > 1 {
		if e, ok := args[1].(string); ok {
			encoding = e
		}
	}
	switch encoding {
	case "latin1", "latin-1", "iso-8859-1":
		out := make([]byte, 0, len(s))
		for _, r := range s {
			if r > 0xff {
				return nil, fmt.Errorf("encode: %q is not latin-1", r)
			}
			out = append(out, byte(r))
		}
		return out, nil
	}
	return []byte(s), nil
}

// =============================================================================
// NumPy
// =============================================================================

// dtype is a numpy.dtype built from its descriptor, e.g. "f8" or "U5".
type dtype struct {
	descr string
	order byte
	unit  string
}

func newDType(args ...any) (any, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("dtype: missing descriptor")
	}
	s, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("dtype: unsupported descriptor %T", args[0])
	}
	return &dtype{descr: s, order: '|'}, nil
}

// PySetState reads the byte order and, for datetimes, the unit from the
// dtype state tuple (version, order, subdescr, names, fields, elsize,
// alignment, flags[, metadata]).
func (d *dtype) PySetState(state any) error {
	t, ok := state.(*types.Tuple)
	if !ok {
		return nil
	}
	if t.Len() > 1 {
		if s, ok := t.Get(1).(string); ok && s != "" {
			d.order = s[0]
		}
	}
	if t.Len() > 8 {
		if meta, ok := t.Get(8).(*types.Tuple); ok && meta.Len() > 0 {
			switch u := meta.Get(0).(type) {
			case string:
				d.unit = u
			case []byte:
				d.unit = string(u)
			}
		}
	}
	return nil
}

func (d *dtype) parse() (ndarray.Descr, error) {
	desc, err := ndarray.ParseDescr(string(d.order) + d.descr)
	if err != nil {
		return desc, err
	}
	if d.unit != "" {
		desc.Unit = d.unit
	}
	return desc, nil
}

func (d *dtype) String() string {
	desc, err := d.parse()
	if err != nil {
		return d.descr
	}
	return desc.Label()
}

// ndarrayObject is a numpy.ndarray. raw is the flat buffer, or a list of
// objects for object arrays.
type ndarrayObject struct {
	shape   []int
	dtype   *dtype
	fortran bool
	raw     any
}

func reconstruct(args ...any) (any, error) {
	return &ndarrayObject{}, nil
}

// PySetState accepts (version, shape, dtype, is_fortran, rawdata) and the
// older form without the version.
func (a *ndarrayObject) PySetState(state any) error {
	t, ok := state.(*types.Tuple)
	if !ok {
		return fmt.Errorf("ndarray: state is %T, want tuple", state)
	}
	fields := []any(*t)
	if len(fields) == 5 {
		fields = fields[1:]
	}
	if len(fields) != 4 {
		return fmt.Errorf("ndarray: state has %d fields", len(fields))
	}
	shape, err := ints(fields[0])
	if err != nil {
		return err
	}
	dt, ok := fields[1].(*dtype)
	if !ok {
		return fmt.Errorf("ndarray: dtype is %T", fields[1])
	}
	fortran, _ := fields[2].(bool)
	a.shape, a.dtype, a.fortran, a.raw = shape, dt, fortran, fields[3]
	return nil
}

// frombuffer implements numpy's protocol 5 reduction
// _frombuffer(buffer, dtype, shape, order).
func frombuffer(args ...any) (any, error) {
	if len(args) != 4 {
		return nil, fmt.Errorf("_frombuffer: got %d arguments, want 4", len(args))
	}
	dt, ok := args[1].(*dtype)
	if !ok {
		return nil, fmt.Errorf("_frombuffer: dtype is %T", args[1])
	}
	shape, err := ints(args[2])
	if err != nil {
		return nil, err
	}
	order, _ := args[3].(string)
	return &ndarrayObject{shape: shape, dtype: dt, fortran: order == "F", raw: args[0]}, nil
}

// numpyScalar is a NumPy scalar such as numpy.float64(1.5).
type numpyScalar struct {
	typeName string
	x        any
}

func scalar(args ...any) (any, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("scalar: missing dtype")
	}
	dt, ok := args[0].(*dtype)
	if !ok {
		return nil, fmt.Errorf("scalar: dtype is %T", args[0])
	}
	desc, err := dt.parse()
	if err != nil {
		return nil, err
	}
	if desc.Kind == 'O' {
		if len(args) < 2 {
			return nil, nil
		}
		return args[1], nil
	}
	if len(args) < 2 {
		return nil, fmt.Errorf("scalar: missing data")
	}
	raw, ok := byteSlice(args[1])
	if !ok {
		return nil, fmt.Errorf("scalar: data is %T", args[1])
	}
	data, err := ndarray.Decode(desc, raw, 1)
	if err != nil {
		return nil, err
	}
	elems, _ := elements(data)
	if len(elems) != 1 {
		return nil, fmt.Errorf("scalar: decoded %d values", len(elems))
	}
	return &numpyScalar{typeName: desc.Label(), x: elems[0]}, nil
}

// ints converts a shape tuple.
func ints(x any) ([]int, error) {
	items, ok := elements(x)
	if !ok {
		return nil, fmt.Errorf("shape is %T, want tuple", x)
	}
	out := make([]int, len(items))
	for i, item := range items {
		switch n := item.(type) {
		case int:
			out[i] = n
		case int64:
			out[i] = int(n)
		case *big.Int:
			out[i] = int(n.Int64())
		default:
			return nil, fmt.Errorf("shape element is %T", item)
		}
	}
	return out, nil
}

func number(x any) (float64, bool) {
	switch n := x.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case *big.Int:
		f, _ := new(big.Float).SetInt(n).Float64()
		return f, true
	}
	return 0, false
}
