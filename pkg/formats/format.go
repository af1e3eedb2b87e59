package formats

import (
	"context"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/JRJacoby/SciViewer/pkg/errors"
	"github.com/JRJacoby/SciViewer/pkg/preview"
	"github.com/JRJacoby/SciViewer/pkg/tree"
)

// Format defines how one kind of file is inspected.
type Format struct {
	// Name is the format identifier and the name of its subcommand
	// (e.g., "hdf5", "npy", "parquet").
	Name string

	// Aliases are alternative subcommand names (e.g., "h5" for "hdf5").
	// May be nil or empty.
	Aliases []string

	// Extensions lists the lower-case file extensions, with leading dot,
	// that Detect maps to this format.
	Extensions []string

	// Description is a one-line summary used in help text.
	Description string

	// Inspect opens the file at path and returns a *tree.Node,
	// *ArraySummary or *TableSummary. Errors are *errors.Error values.
	Inspect func(ctx context.Context, path string, opts Options) (any, error)
}

// Matches reports whether name is the format's name or one of its aliases.
func (f *Format) Matches(name string) bool {
	name = strings.ToLower(name)
	return f.Name == name || slices.Contains(f.Aliases, name)
}

// Supports reports whether the format claims the extension of path.
func (f *Format) Supports(path string) bool {
	return slices.Contains(f.Extensions, strings.ToLower(filepath.Ext(path)))
}

// Options configures an inspection.
type Options struct {
	// Logger receives debug output about skipped or degraded content.
	// A nil Logger discards everything.
	Logger *log.Logger

	// Preview bounds preview sizes. Zero fields take their defaults.
	Preview preview.Options

	// MaxDepth bounds the depth of built trees. Zero means
	// tree.DefaultMaxDepth.
	MaxDepth int

	// MaxNodes bounds the node count of built trees. Zero means
	// tree.DefaultMaxNodes.
	MaxNodes int
}

var discard = log.New(io.Discard)

// Log returns the configured logger, or one that discards output.
func (o Options) Log() *log.Logger {
	if o.Logger == nil {
		return discard
	}
	return o.Logger
}

// Serializer returns a preview serializer for the configured bounds.
func (o Options) Serializer() *preview.Serializer {
	return preview.New(o.Preview)
}

// Builder returns a tree builder for the configured bounds.
func (o Options) Builder() *tree.Builder {
	return tree.NewBuilder(tree.WithSerializer(o.Serializer()), tree.WithMaxDepth(o.MaxDepth), tree.WithMaxNodes(o.MaxNodes))
}

// Find returns the format with the given name or alias, or nil.
func Find(name string, formats []*Format) *Format {
	for _, f := range formats {
		if f.Matches(name) {
			return f
		}
	}
	return nil
}

// Detect returns the format claiming the extension of path.
func Detect(path string, formats []*Format) (*Format, error) {
	for _, f := range formats {
		if f.Supports(path) {
			return f, nil
		}
	}
	ext := filepath.Ext(path)
	if ext == "" {
		return nil, errors.New(errors.ErrCodeFormatNotFound, "cannot detect format of %s: no file extension", filepath.Base(path))
	}
	return nil, errors.New(errors.ErrCodeFormatNotFound, "unsupported file type: %s", ext)
}
