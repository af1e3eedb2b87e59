package catalog

import (
	"testing"

	"github.com/JRJacoby/SciViewer/pkg/errors"
)

func TestAllUnique(t *testing.T) {
	if len(All) == 0 {
		t.Fatal("All should not be empty")
	}
	names := make(map[string]bool)
	exts := make(map[string]string)
	for _, f := range All {
		for _, n := range append([]string{f.Name}, f.Aliases...) {
			if names[n] {
				t.Errorf("name %q registered twice", n)
			}
			names[n] = true
		}
		for _, ext := range f.Extensions {
			if other, ok := exts[ext]; ok {
				t.Errorf("extension %s claimed by %s and %s", ext, other, f.Name)
			}
			exts[ext] = f.Name
		}
		if f.Inspect == nil {
			t.Errorf("%s has no Inspect function", f.Name)
		}
	}
}

func TestFind(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"hdf5", "hdf5"},
		{"h5", "hdf5"},
		{"PKL", "pickle"},
		{"npz", "npz"},
		{"yml", "yaml"},
		{"csv", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Find(tt.name)
			if tt.want == "" {
				if got != nil {
					t.Errorf("Find(%q) = %s, want nil", tt.name, got.Name)
				}
				return
			}
			if got == nil || got.Name != tt.want {
				t.Errorf("Find(%q) = %v, want %s", tt.name, got, tt.want)
			}
		})
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		path     string
		want     string
		wantCode errors.Code
	}{
		{"data/run.h5", "hdf5", ""},
		{"data/run.HDF5", "hdf5", ""},
		{"weights.npy", "npy", ""},
		{"bundle.npz", "npz", ""},
		{"table.parquet", "parquet", ""},
		{"model.pkl", "pickle", ""},
		{"config.yml", "yaml", ""},
		{"payload.mpk", "msgpack", ""},
		{"notes.txt", "", errors.ErrCodeFormatNotFound},
		{"Makefile", "", errors.ErrCodeFormatNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := Detect(tt.path)
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Errorf("Detect(%q) error = %v, want code %s", tt.path, err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("Detect(%q) error: %v", tt.path, err)
			}
			if got.Name != tt.want {
				t.Errorf("Detect(%q) = %s, want %s", tt.path, got.Name, tt.want)
			}
		})
	}
}
