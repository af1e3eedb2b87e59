package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// errorEnvelope is the failure shape of the output contract.
type errorEnvelope struct {
	Error string `json:"error"`
}

// WriteJSON encodes v as a single line of JSON and writes it to w.
func WriteJSON(v any, w io.Writer) error {
	return write(v, w, "")
}

// WriteIndentedJSON encodes v with two-space indentation.
func WriteIndentedJSON(v any, w io.Writer) error {
	return write(v, w, "  ")
}

// WriteError writes the {"error": msg} envelope to w.
func WriteError(msg string, w io.Writer) error {
	return write(errorEnvelope{Error: msg}, w, "")
}

// ExportJSON writes v to a JSON file at path.
// This is a convenience wrapper around [WriteIndentedJSON] for file-based output.
func ExportJSON(v any, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteIndentedJSON(v, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func write(v any, w io.Writer, indent string) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
