package preview

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"time"

	"github.com/JRJacoby/SciViewer/pkg/value"
)

// Row is one table row keyed by column name. It marshals as a JSON object
// with keys in column order.
type Row struct {
	Columns []string
	Cells   []any
}

// Get returns the cell stored under column.
func (r Row) Get(column string) (any, bool) {
	for i, c := range r.Columns {
		if c == column {
			return r.Cells[i], true
		}
	}
	return nil, false
}

// MarshalJSON implements json.Marshaler.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range r.Columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := marshal(c)
		if err != nil {
			return nil, err
		}
		v, err := marshal(r.Cells[i])
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", c, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Rows renders the leading rows of t.
func (s *Serializer) Rows(t *value.Frame) []Row {
	if t == nil {
		return []Row{}
	}
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	n := min(len(t.Rows), s.opts.TableRows)
	out := make([]Row, n)
	for i, row := range t.Rows[:n] {
		cells := make([]any, len(names))
		for j := range cells {
			if j < len(row) {
				cells[j] = s.Cell(row[j])
			}
		}
		out[i] = Row{Columns: names, Cells: cells}
	}
	return out
}

// Cell renders one table cell. Temporal cells become ISO-8601 strings,
// JSON-native cells pass through, and anything else becomes its display
// string.
func (s *Serializer) Cell(c any) any {
	switch t := c.(type) {
	case nil, bool, string, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return c
	case float32:
		return float(float64(t))
	case float64:
		return float(t)
	case *big.Int:
		return bigNumber(t)
	case value.Temporal:
		return t.ISO8601()
	case time.Time:
		return value.Timestamp{Time: t, Zoned: true}.ISO8601()
	case []byte:
		return DecodeUTF8(t)
	case *value.Value:
		return s.Scalar(t)
	case fmt.Stringer:
		return t.String()
	}
	return fmt.Sprint(c)
}
