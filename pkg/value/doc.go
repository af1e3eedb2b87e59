// Package value defines the closed value model shared by every format adapter.
//
// Adapters translate whatever their reader library hands back (HDF5 attribute
// payloads, NumPy arrays, unpickled Python objects, decoded JSON documents)
// into a [Value] exactly once, at ingestion time. Everything downstream
// (classification, shape inference, preview construction) dispatches on
// [Value.Kind] with exhaustive switches instead of probing concrete types.
//
// # Kinds
//
// The set of kinds is fixed:
//
//	Null, Bool, Int, Float, Bytes, String        scalars
//	Array                                        n-dimensional, typed, row-major
//	Table                                        named columns with leading rows
//	Sequence, Mapping, Set                       generic containers
//	Opaque                                       anything else, kept as display text
//
// # Identity
//
// Values are always handled through pointers. Two references to the same
// *Value are the same object, which is how cyclic object graphs (a list that
// contains itself) are represented and later detected by the tree builder.
//
// # Type Names
//
// Every value carries a runtime type name used for dtype labels and preview
// placeholders ("list", "tuple", "dict", "ndarray"). When an adapter leaves
// [Value.TypeName] empty, [Value.Name] falls back to a default per kind.
package value
