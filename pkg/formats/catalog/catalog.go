// Package catalog provides the complete list of supported file formats.
//
// This package exists to break import cycles: the individual format packages
// (hdf5, numpy, etc.) import pkg/formats, so pkg/formats cannot import them
// back. Consumers that need the full format list import this package.
//
// Usage:
//
//	import "github.com/JRJacoby/SciViewer/pkg/formats/catalog"
//
//	for _, f := range catalog.All {
//	    fmt.Println(f.Name)
//	}
package catalog

import (
	"github.com/JRJacoby/SciViewer/pkg/formats"
	"github.com/JRJacoby/SciViewer/pkg/formats/document"
	"github.com/JRJacoby/SciViewer/pkg/formats/hdf5"
	"github.com/JRJacoby/SciViewer/pkg/formats/numpy"
	"github.com/JRJacoby/SciViewer/pkg/formats/parquet"
	"github.com/JRJacoby/SciViewer/pkg/formats/pickle"
)

// All is the canonical list of supported formats, in the order their
// commands are listed.
var All = []*formats.Format{
	hdf5.Format,
	numpy.NPY,
	numpy.NPZ,
	parquet.Format,
	pickle.Format,
	document.JSON,
	document.YAML,
	document.TOML,
	document.MsgPack,
}

// Find returns the format with the given name or alias, or nil if not found.
func Find(name string) *formats.Format {
	return formats.Find(name, All)
}

// Detect returns the format claiming the extension of path.
func Detect(path string) (*formats.Format, error) {
	return formats.Detect(path, All)
}
