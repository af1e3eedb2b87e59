package document

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/JRJacoby/SciViewer/pkg/value"
)

const mergeTag = "!!merge"

func decodeYAML(data []byte) (*value.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	c := &yamlConverter{memo: make(map[*yaml.Node]*value.Value)}
	return c.convert(&doc)
}

// yamlConverter maps each node to a single value so aliases share the value
// of their anchor.
type yamlConverter struct {
	memo map[*yaml.Node]*value.Value
}

func (c *yamlConverter) convert(n *yaml.Node) (*value.Value, error) {
	if v, ok := c.memo[n]; ok {
		return v, nil
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return value.NewNull(), nil
		}
		return c.convert(n.Content[0])
	case yaml.AliasNode:
		return c.convert(n.Alias)
	case yaml.MappingNode:
		m := value.NewMapping(mappingType)
		c.memo[n] = m
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			child, err := c.convert(v)
			if err != nil {
				return nil, err
			}
			if k.Tag == mergeTag {
				merge(m, child)
				continue
			}
			m.Set(key(k), child)
		}
		return m, nil
	case yaml.SequenceNode:
		s := value.NewSequence(sequenceType)
		c.memo[n] = s
		for _, item := range n.Content {
			child, err := c.convert(item)
			if err != nil {
				return nil, err
			}
			s.Append(child)
		}
		return s, nil
	case yaml.ScalarNode:
		var x any
		if err := n.Decode(&x); err != nil {
			return nil, err
		}
		return value.Of(x), nil
	case 0:
		return value.NewNull(), nil
	}
	return nil, fmt.Errorf("line %d: unsupported node kind %v", n.Line, n.Kind)
}

// merge applies a "<<" key: entries of the merged mappings fill in keys the
// mapping does not set itself.
func merge(m, src *value.Value) {
	switch src.Kind {
	case value.KindMapping:
		for _, e := range src.Entries {
			if _, ok := m.Lookup(e.Key); !ok {
				m.Set(e.Key, e.Value)
			}
		}
	case value.KindSequence:
		for _, item := range src.Items {
			merge(m, item)
		}
	}
}

func key(k *yaml.Node) string {
	if k.Kind == yaml.ScalarNode {
		return k.Value
	}
	var x any
	if err := k.Decode(&x); err != nil {
		return k.Value
	}
	return fmt.Sprint(x)
}
