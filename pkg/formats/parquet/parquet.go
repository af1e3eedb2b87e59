// Package parquet summarizes Parquet files.
//
// The summary reports file-level metadata (row, column and row-group
// counts, the on-disk size in MiB and the codec of the first column chunk),
// the Arrow schema, and the leading rows of the table. The whole table is
// read into memory to produce those rows.
package parquet

import (
	"context"
	"math"
	"os"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/metadata"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/JRJacoby/SciViewer/pkg/errors"
	"github.com/JRJacoby/SciViewer/pkg/formats"
)

// Format is the Parquet format.
var Format = &formats.Format{
	Name:        "parquet",
	Aliases:     []string{"pq"},
	Extensions:  []string{".parquet", ".pq"},
	Description: "Summarize a Parquet file: metadata, schema and the first rows",
	Inspect:     Inspect,
}

const mib = 1024 * 1024

// Inspect returns a *formats.TableSummary.
func Inspect(ctx context.Context, path string, opts formats.Options) (any, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unable to read %s", path)
	}

	rdr, err := file.OpenParquetFile(path, false)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid Parquet file %s", path)
	}
	defer rdr.Close()

	md := rdr.MetaData()
	out := &formats.TableSummary{
		Summary: formats.TableStats{
			Rows:        rdr.NumRows(),
			Columns:     md.Schema.NumColumns(),
			RowGroups:   rdr.NumRowGroups(),
			SizeMB:      math.Round(float64(info.Size())/mib*100) / 100,
			Compression: compression(md),
		},
	}

	fr, err := pqarrow.NewFileReader(rdr, pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unable to map %s to Arrow", path)
	}
	schema, err := fr.Schema()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnsupported, err, "unsupported schema in %s", path)
	}
	for _, f := range schema.Fields() {
		out.Schema = append(out.Schema, formats.SchemaField{Name: f.Name, DType: f.Type.String()})
	}
	if out.Schema == nil {
		out.Schema = []formats.SchemaField{}
	}

	tbl, err := fr.ReadTable(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unable to read rows of %s", path)
	}
	defer tbl.Release()
	opts.Log().Debug("read table", "rows", tbl.NumRows(), "columns", tbl.NumCols())

	ser := opts.Serializer()
	out.Preview = ser.Rows(toFrame(tbl, ser.Options().TableRows))
	return out, nil
}

// compression returns the codec of the first column chunk of the first row
// group, or "unknown" when the file has no row groups.
func compression(md *metadata.FileMetaData) string {
	if md.NumRowGroups() == 0 {
		return "unknown"
	}
	rg := md.RowGroup(0)
	if rg.NumColumns() == 0 {
		return "unknown"
	}
	cc, err := rg.ColumnChunk(0)
	if err != nil {
		return "unknown"
	}
	return cc.Compression().String()
}
