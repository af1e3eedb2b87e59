package tree

import (
	"strings"

	"github.com/JRJacoby/SciViewer/pkg/errors"
	"github.com/JRJacoby/SciViewer/pkg/preview"
)

const (
	// DefaultMaxDepth bounds the nesting depth of built trees.
	DefaultMaxDepth = 512
	// DefaultMaxNodes bounds the total node count of built trees. Shared
	// references are expanded at every place they occur, so a small file
	// of aliases can describe an exponentially large tree.
	DefaultMaxNodes = 1_000_000
)

// errorPathLen caps how much of a node path an error message quotes.
const errorPathLen = 80

// Builder turns sources into nodes. A Builder is not safe for concurrent
// use.
type Builder struct {
	ser       *preview.Serializer
	maxDepth  int
	maxNodes  int
	nodes     int
	ancestors map[uintptr]struct{}
}

// Option configures a Builder.
type Option func(*Builder)

// WithSerializer sets the serializer used for previews and attributes.
func WithSerializer(s *preview.Serializer) Option {
	return func(b *Builder) { b.ser = s }
}

// WithMaxDepth sets the maximum nesting depth. Values below 1 are ignored.
func WithMaxDepth(depth int) Option {
	return func(b *Builder) {
		if depth > 0 {
			b.maxDepth = depth
		}
	}
}

// WithMaxNodes sets the maximum number of nodes in one tree. Values below 1
// are ignored.
func WithMaxNodes(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.maxNodes = n
		}
	}
}

// NewBuilder returns a Builder with default preview bounds and size limits.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		ser:      preview.New(preview.DefaultOptions()),
		maxDepth: DefaultMaxDepth,
		maxNodes: DefaultMaxNodes,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build builds the node for src. The root of a tree is normally built with
// path "/".
func (b *Builder) Build(src Source, name, path string) (*Node, error) {
	b.ancestors = make(map[uintptr]struct{})
	b.nodes = 0
	return b.build(src, name, path, 0)
}

func (b *Builder) build(src Source, name, path string, depth int) (*Node, error) {
	if depth > b.maxDepth {
		return nil, errors.New(errors.ErrCodeCyclicStructure, "cyclic or too-deep structure: more than %d levels of nesting", b.maxDepth)
	}
	if b.nodes++; b.nodes > b.maxNodes {
		return nil, errors.New(errors.ErrCodeCyclicStructure, "structure too large: more than %d nodes (at %s)", b.maxNodes, shortPath(path))
	}
	if id := src.Identity(); id != 0 {
		if _, seen := b.ancestors[id]; seen {
			return nil, errors.New(errors.ErrCodeCyclicStructure, "cyclic or too-deep structure at %s", shortPath(path))
		}
		b.ancestors[id] = struct{}{}
		defer delete(b.ancestors, id)
	}

	attrs, err := b.attributes(src)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read attributes of %s", path)
	}
	node := &Node{Name: name, Path: path, Attrs: attrs}

	switch s := src.(type) {
	case Group:
		node.Kind = KindGroup
		members, err := s.Members()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "list members of %s", path)
		}
		node.Children = make([]*Node, 0, len(members))
		for _, m := range members {
			child, err := b.build(m.Source, m.Name, ChildPath(path, m.Name), depth+1)
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, child)
		}
	case Leaf:
		node.Kind = KindDataset
		node.Shape = s.Shape()
		node.DType = s.DType()
		data, err := s.Data()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read %s", path)
		}
		if data != nil {
			node.Preview = b.ser.Preview(data)
		}
	default:
		return nil, errors.New(errors.ErrCodeInternal, "source at %s is neither a group nor a leaf", path)
	}
	return node, nil
}

func (b *Builder) attributes(src Source) (map[string]any, error) {
	attrs, err := src.Attributes()
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(attrs))
	for _, a := range attrs {
		if a.Value == nil {
			out[a.Name] = nil
			continue
		}
		out[a.Name] = b.ser.Attribute(a.Value)
	}
	return out, nil
}

// shortPath keeps the tail of a long path for error messages.
func shortPath(path string) string {
	if len(path) <= errorPathLen {
		return path
	}
	tail := path[len(path)-errorPathLen:]
	if i := strings.IndexByte(tail, '/'); i >= 0 {
		tail = tail[i:]
	}
	return "..." + tail
}
