package cli

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/JRJacoby/SciViewer/pkg/formats"
	"github.com/JRJacoby/SciViewer/pkg/preview"
	"github.com/JRJacoby/SciViewer/pkg/tree"
)

func TestTreeOfArray(t *testing.T) {
	got, err := treeOf(&formats.ArraySummary{
		Shape: []int{3}, DType: "int64", Size: 3, Preview: []any{1, 2, 3},
	}, "a.npy")
	if err != nil {
		t.Fatalf("treeOf() error = %v", err)
	}

	want := &tree.Node{
		Name: "a.npy", Path: "/", Kind: tree.KindDataset,
		Attrs: map[string]any{"size": 3},
		Shape: []int{3}, DType: "int64", Preview: []any{1, 2, 3},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("treeOf() mismatch (-want +got):\n%s", diff)
	}
}

func TestTreeOfTable(t *testing.T) {
	cols := []string{"id", "name"}
	got, err := treeOf(&formats.TableSummary{
		Summary: formats.TableStats{Rows: 100, Columns: 2, RowGroups: 1, SizeMB: 0.01, Compression: "SNAPPY"},
		Schema:  []formats.SchemaField{{Name: "id", DType: "int64"}, {Name: "name", DType: "utf8"}},
		Preview: []preview.Row{
			{Columns: cols, Cells: []any{int64(0), "a"}},
			{Columns: cols, Cells: []any{int64(1), nil}},
		},
	}, "t.parquet")
	if err != nil {
		t.Fatalf("treeOf() error = %v", err)
	}

	if !got.IsGroup() || len(got.Children) != 2 {
		t.Fatalf("treeOf() = %+v, want group with 2 columns", got)
	}
	name := got.Find("/name")
	if name == nil {
		t.Fatal("treeOf() missing /name")
	}
	if diff := cmp.Diff([]any{"a", nil}, name.Preview); diff != "" {
		t.Errorf("column preview mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{100}, name.Shape); diff != "" {
		t.Errorf("column shape mismatch (-want +got):\n%s", diff)
	}
	if got.Attrs["compression"] != "SNAPPY" {
		t.Errorf("attrs[compression] = %v, want SNAPPY", got.Attrs["compression"])
	}
}

func TestTreeOfUnknown(t *testing.T) {
	if _, err := treeOf(42, "x"); err == nil {
		t.Error("treeOf(42) error = nil, want error")
	}
}
