// Package pkg provides the libraries behind SciViewer, a structure inspector
// for scientific data files.
//
// # Overview
//
// SciViewer opens a file, walks whatever hierarchy it contains and reduces it
// to one JSON object describing groups, datasets, attributes and short
// previews of the data. The pkg directory is organized into four areas:
//
//  1. [value], [ndarray] - the closed in-memory model every adapter decodes into
//  2. [tree], [preview] - the canonical tree builder and the JSON-safe preview serializer
//  3. [formats] - one adapter per file format, plus the [formats/catalog] registry
//  4. [io], [render], [config], [errors], [observability], [buildinfo] - supporting infrastructure
//
// # Architecture
//
// The data flow for one inspection:
//
//	file on disk
//	     ↓
//	[formats] adapter (hdf5, numpy, parquet, pickle, document)
//	     ↓
//	[value.Value] graph  or  [tree.Source] view of the file
//	     ↓
//	[tree.Builder] (classification, shape/dtype inference, cycle guard)
//	     ↓
//	[tree.Node] / [formats.ArraySummary] / [formats.TableSummary]
//	     ↓
//	[io.WriteJSON] → one JSON line on stdout
//
// # Quick Start
//
//	import (
//	    "context"
//	    "os"
//
//	    "github.com/JRJacoby/SciViewer/pkg/formats"
//	    "github.com/JRJacoby/SciViewer/pkg/formats/catalog"
//	    "github.com/JRJacoby/SciViewer/pkg/io"
//	)
//
//	f, err := catalog.Detect("run.h5")
//	if err != nil {
//	    return err
//	}
//	result, err := f.Inspect(context.Background(), "run.h5", formats.Options{})
//	if err != nil {
//	    return io.WriteError(err.Error(), os.Stdout)
//	}
//	return io.WriteJSON(result, os.Stdout)
//
// # Preview Limits
//
// Previews hold at most 20 elements per dataset, strings are cut at 500
// characters and opaque objects at 200, and tables show 10 rows. All four
// limits and the maximum tree depth are adjustable through [config] or
// [preview.Options].
//
// [value]: github.com/JRJacoby/SciViewer/pkg/value
// [ndarray]: github.com/JRJacoby/SciViewer/pkg/ndarray
// [tree]: github.com/JRJacoby/SciViewer/pkg/tree
// [preview]: github.com/JRJacoby/SciViewer/pkg/preview
// [formats]: github.com/JRJacoby/SciViewer/pkg/formats
// [formats/catalog]: github.com/JRJacoby/SciViewer/pkg/formats/catalog
// [io]: github.com/JRJacoby/SciViewer/pkg/io
// [render]: github.com/JRJacoby/SciViewer/pkg/render
// [config]: github.com/JRJacoby/SciViewer/pkg/config
// [errors]: github.com/JRJacoby/SciViewer/pkg/errors
// [observability]: github.com/JRJacoby/SciViewer/pkg/observability
// [buildinfo]: github.com/JRJacoby/SciViewer/pkg/buildinfo
// [value.Value]: github.com/JRJacoby/SciViewer/pkg/value.Value
// [tree.Source]: github.com/JRJacoby/SciViewer/pkg/tree.Source
// [tree.Builder]: github.com/JRJacoby/SciViewer/pkg/tree.Builder
// [tree.Node]: github.com/JRJacoby/SciViewer/pkg/tree.Node
// [formats.ArraySummary]: github.com/JRJacoby/SciViewer/pkg/formats.ArraySummary
// [formats.TableSummary]: github.com/JRJacoby/SciViewer/pkg/formats.TableSummary
// [io.WriteJSON]: github.com/JRJacoby/SciViewer/pkg/io.WriteJSON
// [preview.Options]: github.com/JRJacoby/SciViewer/pkg/preview.Options
package pkg
