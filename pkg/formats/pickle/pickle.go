// Package pickle inspects Python pickle files as generic object graphs.
//
// Pickles are decoded with gopickle. Classes the decoder does not know
// resolve through [findClass]: NumPy arrays, scalars and dtypes are rebuilt
// from their reduce protocol so their contents can be previewed, and every
// other class becomes an opaque object that records its constructor
// arguments and state without running any Python code.
//
// The decoded graph is converted into [value.Value] nodes with shared
// references preserved, so self-referencing containers reach the tree
// builder as real cycles and fail with a CYCLIC_STRUCTURE error.
package pickle

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/nlpodyssey/gopickle/pickle"

	"github.com/JRJacoby/SciViewer/pkg/errors"
	"github.com/JRJacoby/SciViewer/pkg/formats"
	"github.com/JRJacoby/SciViewer/pkg/tree"
)

// Format is the Python pickle format.
var Format = &formats.Format{
	Name:        "pickle",
	Aliases:     []string{"pkl"},
	Extensions:  []string{".pkl", ".pickle", ".p"},
	Description: "Inspect a Python pickle as a tree of containers and values",
	Inspect:     Inspect,
}

// Inspect unpickles the file and builds a tree rooted at "root" with path "/".
func Inspect(ctx context.Context, path string, opts formats.Options) (any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unable to read %s", path)
	}
	defer f.Close()

	u := pickle.NewUnpickler(bufio.NewReader(f))
	u.FindClass = findClass
	obj, err := u.Load()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid pickle %s", path)
	}
	opts.Log().Debug("unpickled", "type", fmt.Sprintf("%T", obj))

	v := newConverter(opts.Log()).convert(obj)
	return opts.Builder().Build(tree.FromValue(v), "root", "/")
}
