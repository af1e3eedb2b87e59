package document

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/JRJacoby/SciViewer/pkg/value"
)

// orderedMap is a decoded MessagePack map in wire order.
type orderedMap struct {
	keys []any
	vals []any
}

func decodeMsgPack(data []byte) (*value.Value, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetMapDecoder(decodeOrderedMap)
	x, err := dec.DecodeInterface()
	if err != nil {
		return nil, err
	}
	return msgpackValue(x), nil
}

func decodeOrderedMap(d *msgpack.Decoder) (any, error) {
	n, err := d.DecodeMapLen()
	if err != nil {
		return nil, err
	}
	if n == -1 {
		return nil, nil
	}
	m := &orderedMap{keys: make([]any, 0, n), vals: make([]any, 0, n)}
	for range n {
		k, err := d.DecodeInterface()
		if err != nil {
			return nil, err
		}
		v, err := d.DecodeInterface()
		if err != nil {
			return nil, err
		}
		m.keys = append(m.keys, k)
		m.vals = append(m.vals, v)
	}
	return m, nil
}

func msgpackValue(x any) *value.Value {
	switch t := x.(type) {
	case *orderedMap:
		m := value.NewMapping(mappingType)
		for i, k := range t.keys {
			m.Set(msgpackKey(k), msgpackValue(t.vals[i]))
		}
		return m
	case []any:
		s := value.NewSequence(sequenceType)
		for _, item := range t {
			s.Append(msgpackValue(item))
		}
		return s
	}
	return value.Of(x)
}

func msgpackKey(k any) string {
	switch t := k.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	}
	return fmt.Sprint(k)
}
