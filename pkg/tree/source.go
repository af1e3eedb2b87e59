package tree

import (
	"reflect"

	"github.com/JRJacoby/SciViewer/pkg/value"
)

// Source is the capability every builder input has.
type Source interface {
	// Identity returns a key unique to the underlying object, used to detect
	// cycles. Sources that cannot take part in a cycle return 0.
	Identity() uintptr
	// Attributes returns the native metadata of the object, in source order.
	Attributes() ([]Attribute, error)
}

// Group is a source with ordered, named members.
type Group interface {
	Source
	Members() ([]Member, error)
}

// Leaf is a source rendered as a dataset.
type Leaf interface {
	Source
	Shape() []int
	DType() string
	// Data returns the value previewed for the dataset. A nil value with a
	// nil error yields a null preview.
	Data() (*value.Value, error)
}

// Member is a named child of a group.
type Member struct {
	Name   string
	Source Source
}

// Attribute is one metadata entry of a source.
type Attribute struct {
	Name  string
	Value *value.Value
}

// FromValue wraps a generic value as a Source. Mappings become groups keyed
// by entry, group-like sequences and sets become groups keyed by position,
// and every other value becomes a leaf.
func FromValue(v *value.Value) Source {
	switch {
	case v.Kind == value.KindMapping:
		return mappingSource{v}
	case IsGroupLike(v):
		return sequenceSource{v}
	}
	return valueLeaf{v}
}

func identity(v *value.Value) uintptr {
	return reflect.ValueOf(v).Pointer()
}

type mappingSource struct{ v *value.Value }

func (s mappingSource) Identity() uintptr                { return identity(s.v) }
func (s mappingSource) Attributes() ([]Attribute, error) { return nil, nil }

func (s mappingSource) Members() ([]Member, error) {
	out := make([]Member, len(s.v.Entries))
	for i, e := range s.v.Entries {
		out[i] = Member{Name: e.Key, Source: FromValue(e.Value)}
	}
	return out, nil
}

type sequenceSource struct{ v *value.Value }

func (s sequenceSource) Identity() uintptr { return identity(s.v) }

func (s sequenceSource) Attributes() ([]Attribute, error) {
	return []Attribute{
		{Name: "length", Value: value.NewInt(int64(len(s.v.Items)))},
		{Name: "type", Value: value.NewString(s.v.Name())},
	}, nil
}

func (s sequenceSource) Members() ([]Member, error) {
	out := make([]Member, len(s.v.Items))
	for i, item := range s.v.Items {
		out[i] = Member{Name: IndexName(i), Source: FromValue(item)}
	}
	return out, nil
}

type valueLeaf struct{ v *value.Value }

func (s valueLeaf) Identity() uintptr                { return 0 }
func (s valueLeaf) Attributes() ([]Attribute, error) { return nil, nil }
func (s valueLeaf) Shape() []int                     { return ShapeOf(s.v) }
func (s valueLeaf) DType() string                    { return DTypeOf(s.v) }
func (s valueLeaf) Data() (*value.Value, error)      { return s.v, nil }
