// Package hdf5 inspects HDF5 files.
package hdf5

import (
	"context"
	"path"

	"github.com/charmbracelet/log"
	"github.com/scigolib/hdf5"

	"github.com/JRJacoby/SciViewer/pkg/errors"
	"github.com/JRJacoby/SciViewer/pkg/formats"
	"github.com/JRJacoby/SciViewer/pkg/tree"
	"github.com/JRJacoby/SciViewer/pkg/value"
)

// Format is the HDF5 format. NetCDF-4 files are HDF5 files underneath.
var Format = &formats.Format{
	Name:        "hdf5",
	Aliases:     []string{"h5"},
	Extensions:  []string{".h5", ".hdf5", ".hdf", ".he5", ".nc4"},
	Description: "Inspect an HDF5 file as a tree of groups and datasets",
	Inspect:     Inspect,
}

// Inspect opens the file read-only and builds its tree. The root node is
// named "/".
func Inspect(ctx context.Context, filename string, opts formats.Options) (any, error) {
	f, err := hdf5.Open(filename)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unable to open HDF5 file %s", filename)
	}
	defer f.Close()

	root := f.Root()
	if root == nil {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "HDF5 file %s has no root group", filename)
	}
	return opts.Builder().Build(&group{g: root, log: opts.Log()}, "/", "/")
}

type group struct {
	g   *hdf5.Group
	log *log.Logger
}

func (g *group) Identity() uintptr { return 0 }

func (g *group) Attributes() ([]tree.Attribute, error) {
	attrs, err := g.g.Attributes()
	if err != nil {
		g.log.Debug("skipping group attributes", "group", g.g.Name(), "err", err)
		return nil, nil
	}
	out := make([]tree.Attribute, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, tree.Attribute{Name: a.Name, Value: readAttribute(a, g.log)})
	}
	return out, nil
}

func (g *group) Members() ([]tree.Member, error) {
	children := g.g.Children()
	out := make([]tree.Member, 0, len(children))
	for _, child := range children {
		name := path.Base(child.Name())
		switch c := child.(type) {
		case *hdf5.Group:
			out = append(out, tree.Member{Name: name, Source: &group{g: c, log: g.log}})
		case *hdf5.Dataset:
			out = append(out, tree.Member{Name: name, Source: newDataset(c, g.log)})
		default:
			g.log.Debug("skipping unknown HDF5 object", "name", child.Name())
		}
	}
	return out, nil
}

// valued is the part of an HDF5 attribute the reader exposes.
type valued interface {
	ReadValue() (interface{}, error)
}

// readAttribute converts an attribute payload. Payloads the reader cannot
// decode become nil, which renders as a null attribute.
func readAttribute(a valued, l *log.Logger) *value.Value {
	raw, err := a.ReadValue()
	if err != nil {
		l.Debug("unreadable attribute", "err", err)
		return nil
	}
	switch x := raw.(type) {
	case []int32:
		return vector(x, "int32", len(x))
	case []int64:
		return vector(x, "int64", len(x))
	case []float32:
		return vector(x, "float32", len(x))
	case []float64:
		return vector(x, "float64", len(x))
	case []string:
		return vector(x, "object", len(x))
	case []interface{}:
		return vector(x, "object", len(x))
	}
	return value.Of(raw)
}

func vector(data any, dtype string, n int) *value.Value {
	return value.NewArray(&value.NDArray{Shape: []int{n}, DType: dtype, Data: data})
}
