package value

// Frame is a columnar table. Only the leading rows needed for previews are
// held in Rows; NumRows is the full row count.
type Frame struct {
	Columns []Column
	NumRows int
	Rows    [][]any // Rows[i][j] is the cell of column j in row i
}

// Column describes one table column.
type Column struct {
	Name  string
	DType string
}
