package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// execute runs the root command with args and returns stdout and the error.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeContext(t, context.Background(), args...)
}

func executeContext(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	root := New(&logs, LogWarn).RootCommand()
	root.SetOut(&out)
	root.SetErr(&logs)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	return out.String(), err
}

const mappingJSON = `{"name":"root","path":"/","type":"group","attrs":{},"children":[` +
	`{"name":"a","path":"/a","type":"dataset","attrs":{},"shape":[3],"dtype":"list","preview":[1,2,3]},` +
	`{"name":"b","path":"/b","type":"dataset","attrs":{},"shape":[5],"dtype":"str","preview":"hello"}]}` + "\n"

func TestFormatCommand(t *testing.T) {
	path := writeFile(t, "doc.json", `{"a": [1, 2, 3], "b": "hello"}`)

	out, err := execute(t, "json", path)
	require.NoError(t, err)
	assert.Equal(t, mappingJSON, out)
}

func TestInspectCommandDetects(t *testing.T) {
	path := writeFile(t, "doc.yaml", "a: [1, 2, 3]\nb: hello\n")

	out, err := execute(t, "inspect", path)
	require.NoError(t, err)
	assert.Equal(t, mappingJSON, out)
}

func TestFormatCommandAlias(t *testing.T) {
	path := writeFile(t, "doc.yml", "a: [1, 2, 3]\nb: hello\n")

	out, err := execute(t, "yml", path)
	require.NoError(t, err)
	assert.Equal(t, mappingJSON, out)
}

func TestUsageError(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no args", []string{"hdf5"}, `{"error":"Usage: sciviewer hdf5 <filepath>"}`},
		{"two args", []string{"npy", "a.npy", "b.npy"}, `{"error":"Usage: sciviewer npy <filepath>"}`},
		{"inspect", []string{"inspect"}, `{"error":"Usage: sciviewer inspect <filepath>"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if !errors.Is(err, ErrReported) {
				t.Fatalf("error = %v, want ErrReported", err)
			}
			if strings.TrimSpace(out) != tt.want {
				t.Errorf("stdout = %s, want %s", out, tt.want)
			}
		})
	}
}

func TestFlagErrorEnvelope(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains string
	}{
		{"unknown long flag", []string{"npy", "--bogus", "x.npy"}, "unknown flag: --bogus"},
		{"dash path", []string{"json", "-data.json"}, "unknown shorthand flag"},
		{"inspect", []string{"inspect", "--nope", "x.h5"}, "unknown flag: --nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			require.ErrorIs(t, err, ErrReported)

			var envelope map[string]string
			require.NoError(t, json.Unmarshal([]byte(out), &envelope), "stdout %q", out)
			assert.Contains(t, envelope["error"], tt.contains)
			assert.Contains(t, envelope["error"], "[--] <filepath>")
			assert.Equal(t, 1, strings.Count(out, "\n"))
		})
	}
}

func TestDashPathAfterSeparator(t *testing.T) {
	out, err := execute(t, "npy", "--", "-data.npy")
	require.ErrorIs(t, err, ErrReported)
	assert.Contains(t, out, "no such file: -data.npy")
}

func TestInterruptedInspectionWritesNothing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := executeContext(t, ctx, "npy", filepath.Join(t.TempDir(), "gone.npy"))
	require.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrReported)
	assert.Empty(t, out)
}

func TestErrorEnvelope(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name     string
		args     []string
		contains string
	}{
		{"missing file", []string{"parquet", filepath.Join(dir, "missing.parquet")}, "no such file"},
		{"malformed json", []string{"json", writeFile(t, "bad.json", "{")}, ""},
		{"not pickle", []string{"pickle", writeFile(t, "bad.pkl", "not a pickle")}, ""},
		{"unknown extension", []string{"inspect", writeFile(t, "notes.txt", "hi")}, "unsupported file type: .txt"},
		{"directory", []string{"hdf5", dir}, "is a directory"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			require.ErrorIs(t, err, ErrReported)

			lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
			require.Len(t, lines, 1, "stdout must hold exactly one JSON line")

			var envelope map[string]string
			require.NoError(t, json.Unmarshal([]byte(lines[0]), &envelope))
			require.Len(t, envelope, 1)
			assert.NotEmpty(t, envelope["error"])
			assert.Contains(t, envelope["error"], tt.contains)
		})
	}
}

func TestConfigFlag(t *testing.T) {
	cfg := writeFile(t, "sciviewer.toml", "[preview]\ncap = 2\n")
	doc := writeFile(t, "doc.json", `{"a": [1, 2, 3, 4]}`)

	out, err := execute(t, "--config", cfg, "json", doc)
	require.NoError(t, err)
	assert.Contains(t, out, `"preview":[1,2,"..."]`)
}

func TestConfigFlagInvalid(t *testing.T) {
	cfg := writeFile(t, "sciviewer.toml", "[preview]\ncolour = 2\n")
	doc := writeFile(t, "doc.json", `{}`)

	out, err := execute(t, "--config", cfg, "json", doc)
	require.ErrorIs(t, err, ErrReported)
	assert.Contains(t, out, "unknown config keys")
}

func TestShowCommand(t *testing.T) {
	path := writeFile(t, "doc.json", `{"grp": {"x": [1.5, 2.5]}, "name": "run-1"}`)

	out, err := execute(t, "show", path)
	require.NoError(t, err)
	for _, want := range []string{"doc.json", "grp", "x", "(2,) list", "name", "(5,) str"} {
		assert.Contains(t, out, want)
	}
}

func TestShowCommandAt(t *testing.T) {
	path := writeFile(t, "doc.json", `{"grp": {"x": [1.5, 2.5]}, "name": "run-1"}`)

	out, err := execute(t, "show", path, "--at", "/grp")
	require.NoError(t, err)
	assert.Contains(t, out, "(2,) list")
	assert.NotContains(t, out, "name")
}

func TestGraphCommandDOT(t *testing.T) {
	path := writeFile(t, "doc.json", `{"grp": {"x": 1}}`)

	out, err := execute(t, "graph", path)
	require.NoError(t, err)
	assert.Contains(t, out, "digraph G")
	assert.Contains(t, out, `"/" -> "/grp"`)
	assert.Contains(t, out, `"/grp" -> "/grp/x"`)
}

func TestGraphCommandFile(t *testing.T) {
	path := writeFile(t, "doc.json", `{"grp": {"x": 1}}`)
	dot := filepath.Join(t.TempDir(), "out.dot")

	out, err := execute(t, "graph", path, "-o", dot)
	require.NoError(t, err)
	assert.Contains(t, out, dot)

	data, err := os.ReadFile(dot)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "digraph G"))
}

func TestGraphCommandJSON(t *testing.T) {
	path := writeFile(t, "doc.json", `{"grp": {"x": 1}}`)
	out := filepath.Join(t.TempDir(), "tree.json")

	_, err := execute(t, "graph", path, "-o", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"name\": \"root\"")

	var node struct {
		Children []struct {
			Path string `json:"path"`
		} `json:"children"`
	}
	require.NoError(t, json.Unmarshal(data, &node))
	require.Len(t, node.Children, 1)
	assert.Equal(t, "/grp", node.Children[0].Path)
}

func TestGraphCommandUnsupportedOutput(t *testing.T) {
	path := writeFile(t, "doc.json", `{"x": 1}`)

	_, err := execute(t, "graph", path, "-o", filepath.Join(t.TempDir(), "out.bmp"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported graph output")
}

func TestCompletionCommand(t *testing.T) {
	out, err := execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "sciviewer")
}
