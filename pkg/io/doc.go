// Package io writes inspection results as JSON.
//
// # Output Contract
//
// Every command that inspects a file writes exactly one JSON value followed
// by a newline. On success it is the result of the inspection: a node tree,
// an array summary or a table summary. On failure it is an error envelope:
//
//	{"error": "file not found: data.h5"}
//
// Use [WriteJSON] for results and [WriteError] for failures. Output is
// compact by default; [WriteIndentedJSON] exists for human consumption.
// HTML characters are not escaped, so placeholders such as "<list>" are
// written as-is.
//
// # Export
//
// [ExportJSON] writes a result to a file instead of a stream.
package io
