package tree

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// NodeKind tags a node as a group or a dataset.
type NodeKind int

const (
	KindGroup NodeKind = iota
	KindDataset
)

func (k NodeKind) String() string {
	if k == KindGroup {
		return "group"
	}
	return "dataset"
}

// Node is one entry of the canonical tree. Children is only meaningful for
// groups; Shape, DType and Preview only for datasets.
type Node struct {
	Name  string
	Path  string
	Kind  NodeKind
	Attrs map[string]any

	Children []*Node

	Shape   []int
	DType   string
	Preview any
}

// IsGroup reports whether n is a group.
func (n *Node) IsGroup() bool { return n.Kind == KindGroup }

// Walk visits n and its descendants depth-first in child order. Returning
// false from fn skips the children of that node.
func (n *Node) Walk(fn func(n *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}

// Find returns the node at path, or nil.
func (n *Node) Find(path string) *Node {
	var found *Node
	n.Walk(func(c *Node, _ int) bool {
		if found == nil && c.Path == path {
			found = c
		}
		return found == nil
	})
	return found
}

// ChildPath returns the path of a child called name under parent.
func ChildPath(parent, name string) string {
	return strings.TrimSuffix(parent, "/") + "/" + name
}

// FormatShape renders a shape the way NumPy prints tuples: "(2, 3)",
// "(4,)" or "()".
func FormatShape(shape []int) string {
	dims := make([]string, len(shape))
	for i, d := range shape {
		dims[i] = strconv.Itoa(d)
	}
	if len(dims) == 1 {
		return "(" + dims[0] + ",)"
	}
	return "(" + strings.Join(dims, ", ") + ")"
}

type groupJSON struct {
	Name     string         `json:"name"`
	Path     string         `json:"path"`
	Type     string         `json:"type"`
	Attrs    map[string]any `json:"attrs"`
	Children []*Node        `json:"children"`
}

type datasetJSON struct {
	Name    string         `json:"name"`
	Path    string         `json:"path"`
	Type    string         `json:"type"`
	Attrs   map[string]any `json:"attrs"`
	Shape   []int          `json:"shape"`
	DType   string         `json:"dtype"`
	Preview any            `json:"preview"`
}

// MarshalJSON implements json.Marshaler. Groups always carry "children" and
// datasets always carry "shape", "dtype" and "preview", even when empty.
func (n *Node) MarshalJSON() ([]byte, error) {
	attrs := n.Attrs
	if attrs == nil {
		attrs = map[string]any{}
	}
	if n.Kind == KindGroup {
		children := n.Children
		if children == nil {
			children = []*Node{}
		}
		return marshal(groupJSON{
			Name: n.Name, Path: n.Path, Type: n.Kind.String(),
			Attrs: attrs, Children: children,
		})
	}
	shape := n.Shape
	if shape == nil {
		shape = []int{}
	}
	return marshal(datasetJSON{
		Name: n.Name, Path: n.Path, Type: n.Kind.String(),
		Attrs: attrs, Shape: shape, DType: n.DType, Preview: n.Preview,
	})
}

// marshal encodes v without escaping HTML characters, so placeholders such
// as "<list>" stay readable.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
