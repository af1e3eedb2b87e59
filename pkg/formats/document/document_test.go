package document

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/JRJacoby/SciViewer/pkg/errors"
	"github.com/JRJacoby/SciViewer/pkg/formats"
	"github.com/JRJacoby/SciViewer/pkg/tree"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func inspect(t *testing.T, f *formats.Format, name, content string) *tree.Node {
	t.Helper()
	result, err := f.Inspect(context.Background(), writeFile(t, name, []byte(content)), formats.Options{})
	require.NoError(t, err)
	node, ok := result.(*tree.Node)
	require.True(t, ok, "result should be *tree.Node, got %T", result)
	return node
}

func childNames(n *tree.Node) []string {
	out := make([]string, len(n.Children))
	for i, c := range n.Children {
		out[i] = c.Name
	}
	return out
}

func TestMappingScenario(t *testing.T) {
	want := &tree.Node{
		Name: "root", Path: "/", Kind: tree.KindGroup, Attrs: map[string]any{},
		Children: []*tree.Node{
			{
				Name: "a", Path: "/a", Kind: tree.KindDataset, Attrs: map[string]any{},
				Shape: []int{3}, DType: "list", Preview: []any{int64(1), int64(2), int64(3)},
			},
			{
				Name: "b", Path: "/b", Kind: tree.KindDataset, Attrs: map[string]any{},
				Shape: []int{5}, DType: "str", Preview: "hello",
			},
		},
	}

	tests := []struct {
		name    string
		format  *formats.Format
		file    string
		content string
	}{
		{"json", JSON, "doc.json", `{"a": [1, 2, 3], "b": "hello"}`},
		{"yaml", YAML, "doc.yaml", "a: [1, 2, 3]\nb: hello\n"},
		{"toml", TOML, "doc.toml", "a = [1, 2, 3]\nb = \"hello\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := inspect(t, tt.format, tt.file, tt.content)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Inspect() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestKeyOrder(t *testing.T) {
	tests := []struct {
		name    string
		format  *formats.Format
		file    string
		content string
	}{
		{"json", JSON, "doc.json", `{"zeta": 1, "alpha": 2, "mid": 3}`},
		{"yaml", YAML, "doc.yaml", "zeta: 1\nalpha: 2\nmid: 3\n"},
		{"toml", TOML, "doc.toml", "zeta = 1\nalpha = 2\nmid = 3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := inspect(t, tt.format, tt.file, tt.content)
			assert.Equal(t, []string{"zeta", "alpha", "mid"}, childNames(got))
		})
	}
}

func TestJSONValues(t *testing.T) {
	got := inspect(t, JSON, "doc.json",
		`{"big": 123456789012345678901234567890, "pi": 3.5, "none": null, "nested": [[1], [2]]}`)

	big := got.Find("/big")
	require.NotNil(t, big)
	assert.Equal(t, "123456789012345678901234567890", big.Preview.(interface{ String() string }).String())

	pi := got.Find("/pi")
	require.NotNil(t, pi)
	assert.Equal(t, 3.5, pi.Preview)
	assert.Equal(t, "float", pi.DType)

	none := got.Find("/none")
	require.NotNil(t, none)
	assert.Nil(t, none.Preview)

	nested := got.Find("/nested")
	require.NotNil(t, nested)
	assert.True(t, nested.IsGroup())
	assert.Equal(t, []string{"[0]", "[1]"}, childNames(nested))
}

func TestYAMLAnchors(t *testing.T) {
	got := inspect(t, YAML, "doc.yaml", `
base: &base
  color: red
  size: 3
derived:
  <<: *base
  size: 5
shared: *base
`)
	derived := got.Find("/derived")
	require.NotNil(t, derived)
	assert.ElementsMatch(t, []string{"color", "size"}, childNames(derived))
	assert.Equal(t, int64(5), got.Find("/derived/size").Preview)
	assert.Equal(t, "red", got.Find("/derived/color").Preview)
	assert.Equal(t, "red", got.Find("/shared/color").Preview)
}

func TestYAMLCycle(t *testing.T) {
	_, err := YAML.Inspect(context.Background(), writeFile(t, "loop.yaml", []byte("a: &x\n  - *x\n")), formats.Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeCyclicStructure), "got %v", err)
}

func TestYAMLAliasExpansionIsBounded(t *testing.T) {
	var doc strings.Builder
	doc.WriteString("l0: &l0 [1, 2]\n")
	for i := 1; i <= 9; i++ {
		refs := strings.TrimSuffix(strings.Repeat(fmt.Sprintf("*l%d, ", i-1), 9), ", ")
		fmt.Fprintf(&doc, "l%d: &l%d [%s]\n", i, i, refs)
	}

	path := writeFile(t, "laughs.yaml", []byte(doc.String()))
	_, err := YAML.Inspect(context.Background(), path, formats.Options{MaxNodes: 10_000})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeCyclicStructure), "got %v", err)
	assert.Contains(t, errors.UserMessage(err), "too large")
}

func TestTOMLTables(t *testing.T) {
	got := inspect(t, TOML, "doc.toml", `
title = "run"
day = 2024-03-01
start = 07:30:00

[server]
port = 8080
host = "localhost"

[[points]]
x = 1

[[points]]
x = 2
`)
	assert.Equal(t, []string{"title", "day", "start", "server", "points"}, childNames(got))
	assert.Equal(t, []string{"port", "host"}, childNames(got.Find("/server")))

	day := got.Find("/day")
	assert.Equal(t, "date", day.DType)
	assert.Equal(t, "2024-03-01", day.Preview)
	assert.Equal(t, "07:30:00", got.Find("/start").Preview)

	points := got.Find("/points")
	require.NotNil(t, points)
	assert.True(t, points.IsGroup())
	assert.Equal(t, int64(2), got.Find("/points/[1]/x").Preview)
}

func TestMsgPack(t *testing.T) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	require.NoError(t, enc.EncodeMapLen(3))
	require.NoError(t, enc.EncodeString("b"))
	require.NoError(t, enc.EncodeString("hello"))
	require.NoError(t, enc.EncodeString("a"))
	require.NoError(t, enc.Encode([]int{1, 2, 3}))
	require.NoError(t, enc.EncodeString("raw"))
	require.NoError(t, enc.EncodeBytes([]byte("xyz")))

	result, err := MsgPack.Inspect(context.Background(), writeFile(t, "doc.msgpack", buf.Bytes()), formats.Options{})
	require.NoError(t, err)
	got := result.(*tree.Node)

	assert.Equal(t, []string{"b", "a", "raw"}, childNames(got))
	a := got.Find("/a")
	assert.Equal(t, []int{3}, a.Shape)
	assert.Equal(t, []any{int64(1), int64(2), int64(3)}, a.Preview)
	raw := got.Find("/raw")
	assert.Equal(t, "bytes", raw.DType)
	assert.Equal(t, "xyz", raw.Preview)
}

func TestInvalidDocuments(t *testing.T) {
	tests := []struct {
		name    string
		format  *formats.Format
		file    string
		content string
	}{
		{"json syntax", JSON, "bad.json", `{"a": `},
		{"json trailing", JSON, "bad.json", `{} {}`},
		{"json empty", JSON, "empty.json", ``},
		{"yaml", YAML, "bad.yaml", "a: [1, 2\n"},
		{"toml", TOML, "bad.toml", "a = \n"},
		{"msgpack", MsgPack, "bad.msgpack", "\xc1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.format.Inspect(context.Background(), writeFile(t, tt.file, []byte(tt.content)), formats.Options{})
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat), "got %v", err)
		})
	}
}
