package formats

import "github.com/JRJacoby/SciViewer/pkg/preview"

// ArraySummary describes a single array file.
type ArraySummary struct {
	Shape   []int  `json:"shape"`
	DType   string `json:"dtype"`
	Size    int    `json:"size"`
	Preview []any  `json:"preview"`
}

// TableSummary describes a columnar table file.
type TableSummary struct {
	Summary TableStats    `json:"summary"`
	Schema  []SchemaField `json:"schema"`
	Preview []preview.Row `json:"preview"`
}

// TableStats holds file-level table metadata.
type TableStats struct {
	Rows        int64   `json:"rows"`
	Columns     int     `json:"columns"`
	RowGroups   int     `json:"row_groups"`
	SizeMB      float64 `json:"size_mb"`
	Compression string  `json:"compression"`
}

// SchemaField is one column of a table schema.
type SchemaField struct {
	Name  string `json:"name"`
	DType string `json:"dtype"`
}
