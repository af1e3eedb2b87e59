package numpy

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/sbinet/npyio/npz"

	sverrors "github.com/JRJacoby/SciViewer/pkg/errors"
	"github.com/JRJacoby/SciViewer/pkg/formats"
	"github.com/JRJacoby/SciViewer/pkg/ndarray"
	"github.com/JRJacoby/SciViewer/pkg/tree"
	"github.com/JRJacoby/SciViewer/pkg/value"
)

// NPZ is the .npz archive format: a root group with one dataset per array.
var NPZ = &formats.Format{
	Name:        "npz",
	Extensions:  []string{".npz"},
	Description: "Inspect a NumPy .npz archive as a group of arrays",
	Inspect:     InspectNPZ,
}

// InspectNPZ builds a tree whose root "/" holds one dataset per archive
// member, in archive order.
func InspectNPZ(ctx context.Context, path string, opts formats.Options) (any, error) {
	r, err := npz.Open(path)
	if err != nil {
		return nil, sverrors.Wrap(sverrors.ErrCodeInvalidFormat, err, "unable to open NumPy archive %s", path)
	}
	defer r.Close()
	return opts.Builder().Build(&archive{r: r, log: opts.Log()}, "/", "/")
}

type archive struct {
	r   *npz.Reader
	log *log.Logger
}

func (a *archive) Identity() uintptr                     { return 0 }
func (a *archive) Attributes() ([]tree.Attribute, error) { return nil, nil }

func (a *archive) Members() ([]tree.Member, error) {
	keys := a.r.Keys()
	out := make([]tree.Member, 0, len(keys))
	for _, key := range keys {
		out = append(out, tree.Member{
			Name:   strings.TrimSuffix(key, ".npy"),
			Source: &member{archive: a, key: key},
		})
	}
	return out, nil
}

type member struct {
	archive *archive
	key     string
}

func (m *member) Identity() uintptr                     { return 0 }
func (m *member) Attributes() ([]tree.Attribute, error) { return nil, nil }

func (m *member) Shape() []int {
	if h := m.archive.r.Header(m.key); h != nil {
		return append([]int{}, h.Descr.Shape...)
	}
	return []int{}
}

func (m *member) DType() string {
	if h := m.archive.r.Header(m.key); h != nil {
		return ndarray.LabelOf(h.Descr.Type)
	}
	return "unknown"
}

// Data decodes the member. Dtypes the archive reader cannot decode yield a
// null preview.
func (m *member) Data() (*value.Value, error) {
	h := m.archive.r.Header(m.key)
	if h == nil {
		return nil, sverrors.New(sverrors.ErrCodeInvalidFormat, "archive member %s has no header", m.key)
	}
	arr, err := decoder{
		header: *h,
		read:   func(ptr any) error { return m.archive.r.Read(m.key, ptr) },
	}.decode()
	if errors.Is(err, ndarray.ErrUnsupported) {
		m.archive.log.Debug("no preview for archive member", "member", m.key, "err", err)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return value.NewArray(arr), nil
}
