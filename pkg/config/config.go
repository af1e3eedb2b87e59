// Package config loads the optional TOML file that tunes preview bounds.
//
// Every setting has a default, so the file may set any subset:
//
//	max_depth = 512
//	max_nodes = 1000000
//
//	[preview]
//	cap = 20
//	string_limit = 500
//	opaque_limit = 200
//	table_rows = 10
//
// Unknown keys are rejected so that typos do not silently fall back to
// defaults.
package config

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/JRJacoby/SciViewer/pkg/errors"
	"github.com/JRJacoby/SciViewer/pkg/preview"
	"github.com/JRJacoby/SciViewer/pkg/tree"
)

// Config holds the tunable limits of an inspection.
type Config struct {
	MaxDepth int     `toml:"max_depth"`
	MaxNodes int     `toml:"max_nodes"`
	Preview  Preview `toml:"preview"`
}

// Preview mirrors preview.Options.
type Preview struct {
	Cap         int `toml:"cap"`
	StringLimit int `toml:"string_limit"`
	OpaqueLimit int `toml:"opaque_limit"`
	TableRows   int `toml:"table_rows"`
}

// Default returns the built-in configuration.
func Default() *Config {
	p := preview.DefaultOptions()
	return &Config{
		MaxDepth: tree.DefaultMaxDepth,
		MaxNodes: tree.DefaultMaxNodes,
		Preview: Preview{
			Cap:         p.Cap,
			StringLimit: p.StringLimit,
			OpaqueLimit: p.OpaqueLimit,
			TableRows:   p.TableRows,
		},
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "unable to read config %s", path)
	}
	cfg := Default()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every limit is positive.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value int
	}{
		{"max_depth", c.MaxDepth},
		{"max_nodes", c.MaxNodes},
		{"preview.cap", c.Preview.Cap},
		{"preview.string_limit", c.Preview.StringLimit},
		{"preview.opaque_limit", c.Preview.OpaqueLimit},
		{"preview.table_rows", c.Preview.TableRows},
	}
	for _, f := range fields {
		if f.value <= 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must be positive, got %d", f.name, f.value)
		}
	}
	return nil
}

// PreviewOptions returns the preview bounds.
func (c *Config) PreviewOptions() preview.Options {
	return preview.Options{
		Cap:         c.Preview.Cap,
		StringLimit: c.Preview.StringLimit,
		OpaqueLimit: c.Preview.OpaqueLimit,
		TableRows:   c.Preview.TableRows,
	}
}
