package hdf5

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/scigolib/hdf5"

	"github.com/JRJacoby/SciViewer/pkg/tree"
	"github.com/JRJacoby/SciViewer/pkg/value"
)

// info is the datatype and dataspace of a dataset.
type info struct {
	class string // "integer", "float", "string", "compound", "array", "class_N"
	size  int    // bytes per element
	dims  []int
	empty bool // null dataspace
}

// label returns the NumPy name of the element type.
func (i info) label() string {
	switch i.class {
	case "integer":
		return "int" + strconv.Itoa(i.size*8)
	case "float":
		return "float" + strconv.Itoa(i.size*8)
	case "string":
		return "|S" + strconv.Itoa(i.size)
	}
	return i.class
}

var (
	infoPattern = regexp.MustCompile(`^Dataset: (\S+) \(size=(\d+) bytes\), (scalar|null|unknown|\d+D array \[[^\]]*\])`)
	dimPattern  = regexp.MustCompile(`\d+`)
)

// parseInfo parses the summary line the reader produces for a dataset, for
// example "Dataset: integer (size=4 bytes), 2D array [3 x 4], contiguous".
// The layout is that of DatasetInfo.String in github.com/scigolib/hdf5
// v0.11.5-beta (internal/core/dataset_reader.go), which exports no
// structured form; re-check TestParseInfo when bumping the module.
func parseInfo(s string) (info, error) {
	m := infoPattern.FindStringSubmatch(s)
	if m == nil {
		return info{}, fmt.Errorf("unrecognized dataset description %q", s)
	}
	size, _ := strconv.Atoi(m[2])
	out := info{class: m[1], size: size, dims: []int{}}
	switch space := m[3]; space {
	case "scalar", "unknown":
	case "null":
		out.empty = true
	default:
		for _, d := range dimPattern.FindAllString(space[strings.IndexByte(space, '['):], -1) {
			n, _ := strconv.Atoi(d)
			out.dims = append(out.dims, n)
		}
	}
	return out, nil
}

type dataset struct {
	d   *hdf5.Dataset
	log *log.Logger

	once    sync.Once
	info    info
	infoErr error
}

func newDataset(d *hdf5.Dataset, l *log.Logger) *dataset {
	return &dataset{d: d, log: l}
}

func (d *dataset) describe() (info, error) {
	d.once.Do(func() {
		s, err := d.d.Info()
		if err != nil {
			d.infoErr = err
			return
		}
		d.info, d.infoErr = parseInfo(s)
	})
	return d.info, d.infoErr
}

func (d *dataset) Identity() uintptr { return 0 }

func (d *dataset) Attributes() ([]tree.Attribute, error) {
	attrs, err := d.d.Attributes()
	if err != nil {
		d.log.Debug("skipping dataset attributes", "dataset", d.d.Name(), "err", err)
		return nil, nil
	}
	out := make([]tree.Attribute, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, tree.Attribute{Name: a.Name, Value: readAttribute(a, d.log)})
	}
	return out, nil
}

func (d *dataset) Shape() []int {
	i, err := d.describe()
	if err != nil {
		return []int{}
	}
	return i.dims
}

func (d *dataset) DType() string {
	i, err := d.describe()
	if err != nil {
		return "unknown"
	}
	return i.label()
}

// Data reads the full dataset. Element classes the reader cannot decode
// yield a nil value and therefore a null preview.
func (d *dataset) Data() (*value.Value, error) {
	i, err := d.describe()
	if err != nil {
		return nil, err
	}
	if i.empty {
		return value.NewArray(&value.NDArray{Shape: i.dims, DType: i.label(), Data: []float64{}}), nil
	}

	var data any
	switch i.class {
	case "integer", "float":
		floats, err := d.d.Read()
		if err != nil {
			return nil, err
		}
		data = narrow(floats, i)
	case "string":
		strs, err := d.d.ReadStrings()
		if err != nil {
			return nil, err
		}
		data = strs
	case "compound":
		records, err := d.d.ReadCompound()
		if err != nil {
			return nil, err
		}
		rows := make([]map[string]any, len(records))
		for k, r := range records {
			rows[k] = map[string]any(r)
		}
		data = rows
	default:
		d.log.Debug("no preview for dataset", "dataset", d.d.Name(), "class", i.class)
		return nil, nil
	}
	return value.NewArray(&value.NDArray{Shape: i.dims, DType: i.label(), Data: data}), nil
}

// narrow restores the element type of numeric data, which the reader
// always widens to float64.
func narrow(in []float64, i info) any {
	switch {
	case i.class == "integer":
		out := make([]int64, len(in))
		for k, f := range in {
			out[k] = int64(f)
		}
		return out
	case i.size == 4:
		out := make([]float32, len(in))
		for k, f := range in {
			out[k] = float32(f)
		}
		return out
	}
	return in
}
