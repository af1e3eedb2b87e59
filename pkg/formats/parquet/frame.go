package parquet

import (
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/JRJacoby/SciViewer/pkg/value"
)

// toFrame copies the first limit rows of tbl.
func toFrame(tbl arrow.Table, limit int) *value.Frame {
	schema := tbl.Schema()
	frame := &value.Frame{NumRows: int(tbl.NumRows())}
	for _, f := range schema.Fields() {
		frame.Columns = append(frame.Columns, value.Column{Name: f.Name, DType: f.Type.String()})
	}

	n := min(frame.NumRows, limit)
	frame.Rows = make([][]any, n)
	for r := range frame.Rows {
		frame.Rows[r] = make([]any, tbl.NumCols())
	}
	for c := 0; c < int(tbl.NumCols()); c++ {
		row := 0
		for _, chunk := range tbl.Column(c).Data().Chunks() {
			for i := 0; i < chunk.Len() && row < n; i++ {
				frame.Rows[row][c] = cell(chunk, i)
				row++
			}
			if row >= n {
				break
			}
		}
	}
	return frame
}

// cell converts one Arrow value. Temporal values keep their meaning so the
// serializer can render ISO-8601 text; types without a native counterpart
// fall back to Arrow's display string.
func cell(arr arrow.Array, i int) any {
	if arr.IsNull(i) {
		return nil
	}
	switch a := arr.(type) {
	case *array.Boolean:
		return a.Value(i)
	case *array.Int8:
		return a.Value(i)
	case *array.Int16:
		return a.Value(i)
	case *array.Int32:
		return a.Value(i)
	case *array.Int64:
		return a.Value(i)
	case *array.Uint8:
		return a.Value(i)
	case *array.Uint16:
		return a.Value(i)
	case *array.Uint32:
		return a.Value(i)
	case *array.Uint64:
		return a.Value(i)
	case *array.Float32:
		return a.Value(i)
	case *array.Float64:
		return a.Value(i)
	case *array.String:
		return a.Value(i)
	case *array.LargeString:
		return a.Value(i)
	case *array.Binary:
		return a.Value(i)
	case *array.LargeBinary:
		return a.Value(i)
	case *array.Timestamp:
		typ := a.DataType().(*arrow.TimestampType)
		t := a.Value(i).ToTime(typ.Unit)
		if typ.TimeZone == "" {
			return value.Timestamp{Time: t}
		}
		if loc, err := time.LoadLocation(typ.TimeZone); err == nil {
			t = t.In(loc)
		}
		return value.Timestamp{Time: t, Zoned: true}
	case *array.Date32:
		return value.Date{Time: a.Value(i).ToTime()}
	case *array.Date64:
		return value.Date{Time: a.Value(i).ToTime()}
	case *array.Time32:
		unit := a.DataType().(*arrow.Time32Type).Unit
		return value.TimeOfDay(time.Duration(a.Value(i)) * unit.Multiplier())
	case *array.Time64:
		unit := a.DataType().(*arrow.Time64Type).Unit
		return value.TimeOfDay(time.Duration(a.Value(i)) * unit.Multiplier())
	}
	return arr.ValueStr(i)
}
