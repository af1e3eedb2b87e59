package cli

import (
	"github.com/JRJacoby/SciViewer/pkg/errors"
	"github.com/JRJacoby/SciViewer/pkg/formats"
	"github.com/JRJacoby/SciViewer/pkg/tree"
)

// treeOf returns result as a node tree. Array summaries become a single
// dataset; table summaries become a group with one dataset per column whose
// preview holds that column's preview cells.
func treeOf(result any, name string) (*tree.Node, error) {
	switch r := result.(type) {
	case *tree.Node:
		return r, nil
	case *formats.ArraySummary:
		return &tree.Node{
			Name: name, Path: "/", Kind: tree.KindDataset,
			Attrs: map[string]any{"size": r.Size},
			Shape: r.Shape, DType: r.DType, Preview: r.Preview,
		}, nil
	case *formats.TableSummary:
		root := &tree.Node{
			Name: name, Path: "/", Kind: tree.KindGroup,
			Attrs: map[string]any{
				"rows":        r.Summary.Rows,
				"row_groups":  r.Summary.RowGroups,
				"size_mb":     r.Summary.SizeMB,
				"compression": r.Summary.Compression,
			},
		}
		for _, f := range r.Schema {
			cells := make([]any, 0, len(r.Preview))
			for _, row := range r.Preview {
				v, _ := row.Get(f.Name)
				cells = append(cells, v)
			}
			root.Children = append(root.Children, &tree.Node{
				Name: f.Name, Path: tree.ChildPath("/", f.Name), Kind: tree.KindDataset,
				Shape: []int{int(r.Summary.Rows)}, DType: f.DType, Preview: cells,
			})
		}
		return root, nil
	}
	return nil, errors.New(errors.ErrCodeInternal, "unexpected result type %T", result)
}
