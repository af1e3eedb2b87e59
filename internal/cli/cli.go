// Package cli implements the sciviewer command-line interface.
package cli

import (
	stderrors "errors"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/JRJacoby/SciViewer/pkg/buildinfo"
	"github.com/JRJacoby/SciViewer/pkg/config"
	"github.com/JRJacoby/SciViewer/pkg/formats"
	"github.com/JRJacoby/SciViewer/pkg/formats/catalog"
)

// =============================================================================
// Constants
// =============================================================================

const appName = "sciviewer"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogWarn  = log.WarnLevel
)

// ErrReported is returned by commands that already wrote their failure to
// stdout as a JSON error object. Callers should exit non-zero without
// printing anything else.
var ErrReported = stderrors.New("error reported")

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	verbose    bool
	configPath string
}

// New creates a new CLI instance logging to w at the given level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "SciViewer inspects scientific data files",
		Long: `SciViewer opens HDF5, NumPy, Parquet, pickle and structured document files
and prints their structure as a single JSON object: a tree of groups and
datasets, an array summary, or a table summary.`,
		Version:       buildinfo.Resolved(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging on stderr")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "TOML file overriding preview limits")

	for _, f := range catalog.All {
		root.AddCommand(c.formatCommand(f))
	}
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Options Helpers
// =============================================================================

// options builds adapter options from the --config file, or the defaults
// when none was given.
func (c *CLI) options(logger *log.Logger) (formats.Options, error) {
	cfg := config.Default()
	if c.configPath != "" {
		loaded, err := config.Load(c.configPath)
		if err != nil {
			return formats.Options{}, err
		}
		cfg = loaded
	}
	return formats.Options{
		Logger:   logger,
		Preview:  cfg.PreviewOptions(),
		MaxDepth: cfg.MaxDepth,
		MaxNodes: cfg.MaxNodes,
	}, nil
}
