package formats

import (
	"context"
	"testing"

	"github.com/JRJacoby/SciViewer/pkg/errors"
)

func nop(context.Context, string, Options) (any, error) { return nil, nil }

var testFormats = []*Format{
	{Name: "hdf5", Aliases: []string{"h5"}, Extensions: []string{".h5", ".hdf5"}, Inspect: nop},
	{Name: "npy", Extensions: []string{".npy"}, Inspect: nop},
}

func TestDetect(t *testing.T) {
	tests := []struct {
		path     string
		want     string
		wantCode errors.Code
	}{
		{"data/run.h5", "hdf5", ""},
		{"RUN.HDF5", "hdf5", ""},
		{"/tmp/x.npy", "npy", ""},
		{"table.csv", "", errors.ErrCodeFormatNotFound},
		{"Makefile", "", errors.ErrCodeFormatNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			f, err := Detect(tt.path, testFormats)
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Fatalf("Detect(%q) code = %q, want %q", tt.path, got, tt.wantCode)
			}
			if f != nil && f.Name != tt.want {
				t.Errorf("Detect(%q) = %s, want %s", tt.path, f.Name, tt.want)
			}
		})
	}
}

func TestFind(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"hdf5", "hdf5"},
		{"H5", "hdf5"},
		{"npy", "npy"},
		{"parquet", ""},
	}
	for _, tt := range tests {
		got := Find(tt.name, testFormats)
		switch {
		case tt.want == "" && got != nil:
			t.Errorf("Find(%q) = %s, want nil", tt.name, got.Name)
		case tt.want != "" && (got == nil || got.Name != tt.want):
			t.Errorf("Find(%q) = %v, want %s", tt.name, got, tt.want)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if opts.Log() == nil {
		t.Error("Log() = nil, want discarding logger")
	}
	if got := opts.Serializer().Options().Cap; got != 20 {
		t.Errorf("Serializer cap = %d, want 20", got)
	}
}
