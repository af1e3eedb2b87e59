// Package document inspects structured text and binary documents (JSON,
// YAML, TOML and MessagePack) as generic object graphs.
//
// Each decoder keeps mapping keys in document order and produces a
// [value.Value] tree that the canonical tree builder turns into nodes rooted
// at "root" with path "/". Mappings report the type name "dict" and arrays
// "list", matching how the same documents look once loaded into Python.
//
// YAML anchors and aliases are preserved as shared references, so an alias
// that points back into its own anchor is reported as a cyclic structure
// rather than expanded.
package document

import (
	"context"
	"os"

	"github.com/JRJacoby/SciViewer/pkg/errors"
	"github.com/JRJacoby/SciViewer/pkg/formats"
	"github.com/JRJacoby/SciViewer/pkg/tree"
	"github.com/JRJacoby/SciViewer/pkg/value"
)

const (
	mappingType  = "dict"
	sequenceType = "list"
)

// decodeFunc parses a whole document.
type decodeFunc func(data []byte) (*value.Value, error)

var (
	// JSON is the JSON document format.
	JSON = &formats.Format{
		Name:        "json",
		Extensions:  []string{".json"},
		Description: "Inspect a JSON document as a tree",
		Inspect:     inspector("JSON", decodeJSON),
	}

	// YAML is the YAML document format. Only the first document of a
	// stream is read.
	YAML = &formats.Format{
		Name:        "yaml",
		Aliases:     []string{"yml"},
		Extensions:  []string{".yaml", ".yml"},
		Description: "Inspect a YAML document as a tree",
		Inspect:     inspector("YAML", decodeYAML),
	}

	// TOML is the TOML document format.
	TOML = &formats.Format{
		Name:        "toml",
		Extensions:  []string{".toml"},
		Description: "Inspect a TOML document as a tree",
		Inspect:     inspector("TOML", decodeTOML),
	}

	// MsgPack is the MessagePack format.
	MsgPack = &formats.Format{
		Name:        "msgpack",
		Aliases:     []string{"mpk"},
		Extensions:  []string{".msgpack", ".mpk"},
		Description: "Inspect a MessagePack document as a tree",
		Inspect:     inspector("MessagePack", decodeMsgPack),
	}
)

// All lists the document formats.
var All = []*formats.Format{JSON, YAML, TOML, MsgPack}

func inspector(kind string, decode decodeFunc) func(context.Context, string, formats.Options) (any, error) {
	return func(ctx context.Context, path string, opts formats.Options) (any, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unable to read %s", path)
		}
		v, err := decode(data)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid %s document %s", kind, path)
		}
		opts.Log().Debug("decoded document", "format", kind, "type", v.Name())
		return opts.Builder().Build(tree.FromValue(v), "root", "/")
	}
}
