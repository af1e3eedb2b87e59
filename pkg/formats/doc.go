// Package formats describes the file formats SciViewer can inspect.
//
// Each format subpackage (hdf5, numpy, parquet, pickle, document) exports one
// or more [Format] values. A Format names the format, lists the file
// extensions it claims and provides an Inspect function that opens a file
// and returns one of three result shapes:
//
//   - *tree.Node for tree-shaped formats (HDF5 files, .npz archives,
//     pickles and generic documents)
//   - *ArraySummary for single arrays (.npy files)
//   - *TableSummary for columnar tables (Parquet files)
//
// The full list of formats lives in the catalog subpackage, which exists to
// break the import cycle between this package and the format packages.
//
// # Detection
//
// [Detect] picks a format from a file's extension, case-insensitively.
// [Find] looks a format up by name or alias, the way the command-line
// subcommands address them.
package formats
