// Package numpy inspects NumPy .npy array files and .npz archives.
package numpy

import (
	"bytes"
	"context"
	"os"

	"github.com/sbinet/npyio/npy"

	"github.com/JRJacoby/SciViewer/pkg/errors"
	"github.com/JRJacoby/SciViewer/pkg/formats"
)

// NPY is the single-array .npy format.
var NPY = &formats.Format{
	Name:        "npy",
	Extensions:  []string{".npy"},
	Description: "Summarize a NumPy array file: shape, dtype, size and leading values",
	Inspect:     InspectNPY,
}

// InspectNPY reads the array and returns a *formats.ArraySummary. Previews are
// the first elements in row-major order, without a truncation marker.
func InspectNPY(ctx context.Context, path string, opts formats.Options) (any, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unable to read %s", path)
	}
	r, err := npy.NewReader(bytes.NewReader(file))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid NumPy file %s", path)
	}
	arr, err := decoder{
		header: r.Header,
		read:   r.Read,
		raw:    func() ([]byte, error) { return payload(file) },
	}.decode()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unable to decode %s", path)
	}
	opts.Log().Debug("read array", "shape", arr.Shape, "dtype", arr.DType)

	ser := opts.Serializer()
	head := arr.Head(ser.Options().Cap)
	out := &formats.ArraySummary{
		Shape:   arr.Shape,
		DType:   arr.DType,
		Size:    arr.Size(),
		Preview: make([]any, len(head)),
	}
	for i, x := range head {
		out.Preview[i] = ser.Element(x)
	}
	return out, nil
}
