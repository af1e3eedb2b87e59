package hdf5

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/scigolib/hdf5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JRJacoby/SciViewer/pkg/errors"
	"github.com/JRJacoby/SciViewer/pkg/formats"
	"github.com/JRJacoby/SciViewer/pkg/tree"
)

func TestParseInfo(t *testing.T) {
	tests := []struct {
		in        string
		wantLabel string
		wantDims  []int
		wantEmpty bool
	}{
		{"Dataset: integer (size=4 bytes), 1D array [5], contiguous", "int32", []int{5}, false},
		{"Dataset: float (size=8 bytes), 2D array [3 x 4], chunked", "float64", []int{3, 4}, false},
		{"Dataset: float (size=4 bytes), 3D array [2 3 4], compact", "float32", []int{2, 3, 4}, false},
		{"Dataset: string (size=16 bytes), scalar, contiguous", "|S16", []int{}, false},
		{"Dataset: compound (size=12 bytes), 1D array [7], contiguous", "compound", []int{7}, false},
		{"Dataset: class_9 (size=16 bytes), null, contiguous", "class_9", []int{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseInfo(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLabel, got.label())
			assert.Equal(t, tt.wantDims, got.dims)
			assert.Equal(t, tt.wantEmpty, got.empty)
		})
	}

	_, err := parseInfo("something else")
	assert.Error(t, err)
}

// createGroup calls FileWriter.CreateGroup, whose result arity differs
// between releases of the writer.
func createGroup(t *testing.T, fw *hdf5.FileWriter, path string) {
	t.Helper()
	out := reflect.ValueOf(fw).MethodByName("CreateGroup").Call([]reflect.Value{reflect.ValueOf(path)})
	if err, ok := out[len(out)-1].Interface().(error); ok && err != nil {
		t.Fatalf("CreateGroup(%s): %v", path, err)
	}
}

func writeFixture(t *testing.T) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "fixture.h5")

	fw, err := hdf5.CreateForWrite(filename, hdf5.CreateTruncate)
	require.NoError(t, err)

	temps, err := fw.CreateDataset("/temperature", hdf5.Float64, []uint64{25})
	require.NoError(t, err)
	data := make([]float64, 25)
	for i := range data {
		data[i] = float64(i) + 0.5
	}
	require.NoError(t, temps.Write(data))
	require.NoError(t, temps.WriteAttribute("units", "Celsius"))
	require.NoError(t, temps.WriteAttribute("sensor_id", int32(42)))

	createGroup(t, fw, "/run")
	counts, err := fw.CreateDataset("/run/counts", hdf5.Int32, []uint64{2, 3})
	require.NoError(t, err)
	require.NoError(t, counts.Write([]int32{1, 2, 3, 4, 5, 6}))

	require.NoError(t, fw.Close())
	return filename
}

func TestInspect(t *testing.T) {
	filename := writeFixture(t)

	result, err := Inspect(context.Background(), filename, formats.Options{})
	require.NoError(t, err)

	root, ok := result.(*tree.Node)
	require.True(t, ok, "result should be a *tree.Node, got %T", result)
	assert.Equal(t, "/", root.Name)
	assert.Equal(t, "/", root.Path)
	assert.True(t, root.IsGroup())

	temps := root.Find("/temperature")
	require.NotNil(t, temps, "temperature dataset missing")
	assert.Equal(t, tree.KindDataset, temps.Kind)
	assert.Equal(t, []int{25}, temps.Shape)
	assert.Equal(t, "float64", temps.DType)
	p, ok := temps.Preview.([]any)
	require.True(t, ok)
	assert.Len(t, p, 20, "array previews are cut at the cap without a marker")
	assert.Equal(t, 0.5, p[0])
	assert.Equal(t, "Celsius", temps.Attrs["units"])
	assert.Equal(t, int64(42), temps.Attrs["sensor_id"])

	counts := root.Find("/run/counts")
	require.NotNil(t, counts, "counts dataset missing")
	assert.Equal(t, []int{2, 3}, counts.Shape)
	assert.Equal(t, "int32", counts.DType)
	assert.Equal(t, []any{int64(1), int64(2), int64(3), int64(4), int64(5), int64(6)}, counts.Preview)

	_, err = json.Marshal(root)
	require.NoError(t, err)
}

func TestInspectErrors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.h5")
	require.NoError(t, os.WriteFile(garbage, []byte("not an hdf5 file at all"), 0o644))

	for _, filename := range []string{garbage, filepath.Join(dir, "missing.h5")} {
		_, err := Inspect(context.Background(), filename, formats.Options{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat), "error %v should be INVALID_FORMAT", err)
	}
}
