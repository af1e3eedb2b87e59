package nodelink

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/JRJacoby/SciViewer/pkg/observability"
	"github.com/JRJacoby/SciViewer/pkg/tree"
)

func sample() *tree.Node {
	return &tree.Node{
		Name: "/", Path: "/", Kind: tree.KindGroup,
		Children: []*tree.Node{
			{
				Name: "grp", Path: "/grp", Kind: tree.KindGroup,
				Attrs: map[string]any{"units": "m"},
				Children: []*tree.Node{
					{Name: "x", Path: "/grp/x", Kind: tree.KindDataset, Shape: []int{2, 3}, DType: "float64"},
				},
			},
			{Name: "v", Path: "/v", Kind: tree.KindDataset, Shape: []int{4}, DType: "int32"},
		},
	}
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(sample(), Options{})

	for _, want := range []string{
		"digraph G",
		`"/" -> "/grp"`,
		`"/grp" -> "/grp/x"`,
		`"/" -> "/v"`,
		`label="x\n(2, 3) float64"`,
		`label="v\n(4,) int32"`,
		`label="grp/"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %s", want)
		}
	}
	if strings.Contains(dot, "units") {
		t.Error("ToDOT() non-detailed output includes attributes")
	}
}

func TestToDOT_Detailed(t *testing.T) {
	dot := ToDOT(sample(), Options{Detailed: true})
	if !strings.Contains(dot, `grp/\nunits: m`) {
		t.Errorf("ToDOT() detailed output missing attributes:\n%s", dot)
	}
}

func TestToDOT_MaxNodes(t *testing.T) {
	dot := ToDOT(sample(), Options{MaxNodes: 2})

	if strings.Contains(dot, `"/grp/x"`) || strings.Contains(dot, `"/v"`) {
		t.Errorf("ToDOT() emitted nodes past MaxNodes:\n%s", dot)
	}
	if !strings.Contains(dot, `"/" -> "/grp"`) {
		t.Error("ToDOT() dropped edge between emitted nodes")
	}
}

func TestFmtLabel(t *testing.T) {
	tests := []struct {
		name string
		node *tree.Node
		want string
	}{
		{"root", &tree.Node{Name: "/", Path: "/", Kind: tree.KindGroup}, "/"},
		{"scalar", &tree.Node{Name: "n", Path: "/n", Kind: tree.KindDataset, Shape: []int{}, DType: "int64"}, "n\n() int64"},
		{"shapeless", &tree.Node{Name: "s", Path: "/s", Kind: tree.KindDataset, DType: "str"}, "s\nstr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fmtLabel(tt.node, false); got != tt.want {
				t.Errorf("fmtLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("a", attrValueLimit+5)
	if got := truncate(long); got != strings.Repeat("a", attrValueLimit)+"..." {
		t.Errorf("truncate() = %q", got)
	}
	if got := truncate("short"); got != "short" {
		t.Errorf("truncate() = %q, want %q", got, "short")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}
}

type recordingHooks struct {
	nodes int
	size  int
	err   error
}

func (r *recordingHooks) OnRenderStart(_ context.Context, _ string, n int) { r.nodes = n }
func (r *recordingHooks) OnRenderComplete(_ context.Context, _ string, size int, _ time.Duration, err error) {
	r.size, r.err = size, err
}

func TestSVG(t *testing.T) {
	rec := &recordingHooks{}
	observability.SetRenderHooks(rec)
	t.Cleanup(observability.Reset)

	svg, err := SVG(context.Background(), sample(), Options{})
	if err != nil {
		t.Fatalf("SVG() error = %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("SVG() output missing <svg> element")
	}
	if rec.nodes != 4 {
		t.Errorf("OnRenderStart nodeCount = %d, want 4", rec.nodes)
	}
	if rec.size != len(svg) || rec.err != nil {
		t.Errorf("OnRenderComplete size = %d err = %v, want %d <nil>", rec.size, rec.err, len(svg))
	}
}
