package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JRJacoby/SciViewer/pkg/errors"
	"github.com/JRJacoby/SciViewer/pkg/formats"
	"github.com/JRJacoby/SciViewer/pkg/formats/catalog"
	pio "github.com/JRJacoby/SciViewer/pkg/io"
	"github.com/JRJacoby/SciViewer/pkg/observability"
)

// formatCommand creates the "<format> <filepath>" command for f. Argument
// errors are reported as JSON like any other failure, so cobra's own
// argument validation is disabled.
func (c *CLI) formatCommand(f *formats.Format) *cobra.Command {
	cmd := &cobra.Command{
		Use:     f.Name + " <filepath>",
		Aliases: f.Aliases,
		Short:   f.Description,
		Long: fmt.Sprintf(`%s

Prints one JSON object on stdout and exits 0, or prints {"error": "..."}
and exits 1. Extensions: %s`, f.Description, strings.Join(f.Extensions, " ")),
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return c.usage(cmd)
			}
			result, err := c.inspect(cmd.Context(), f, args[0])
			return c.emit(cmd, result, err)
		},
	}
	cmd.SetFlagErrorFunc(c.flagError)
	return cmd
}

func (c *CLI) inspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <filepath>",
		Short: "Inspect a file, choosing the format from its extension",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return c.usage(cmd)
			}
			result, err := c.detectAndInspect(cmd.Context(), args[0])
			return c.emit(cmd, result, err)
		},
	}
	cmd.SetFlagErrorFunc(c.flagError)
	return cmd
}

func (c *CLI) usage(cmd *cobra.Command) error {
	msg := fmt.Sprintf("Usage: %s <filepath>", cmd.CommandPath())
	if err := pio.WriteError(msg, cmd.OutOrStdout()); err != nil {
		return err
	}
	return ErrReported
}

// flagError reports a flag parsing failure in the JSON envelope. Paths
// starting with "-" must follow "--".
func (c *CLI) flagError(cmd *cobra.Command, err error) error {
	msg := fmt.Sprintf("%v (usage: %s [--] <filepath>)", err, cmd.CommandPath())
	if werr := pio.WriteError(msg, cmd.OutOrStdout()); werr != nil {
		return werr
	}
	return ErrReported
}

// emit writes result, or the error envelope for err, as a single JSON line.
// An interrupted inspection writes nothing and returns the context error.
func (c *CLI) emit(cmd *cobra.Command, result any, err error) error {
	if err != nil {
		if cerr := cmd.Context().Err(); cerr != nil {
			return fmt.Errorf("inspection interrupted: %w", cerr)
		}
	}
	out := cmd.OutOrStdout()
	if err == nil {
		// The encoder marshals fully before writing, so a failure here
		// leaves stdout untouched for the envelope below.
		if err = pio.WriteJSON(result, out); err == nil {
			return nil
		}
		err = errors.Wrap(errors.ErrCodeInternal, err, "unable to encode result")
	}
	if werr := pio.WriteError(errors.UserMessage(err), out); werr != nil {
		return werr
	}
	return ErrReported
}

func (c *CLI) detectAndInspect(ctx context.Context, path string) (any, error) {
	if err := errors.ValidateInputPath(path); err != nil {
		return nil, err
	}
	f, err := catalog.Detect(path)
	if err != nil {
		return nil, err
	}
	loggerFromContext(ctx).Debug("detected format", "format", f.Name, "path", path)
	return c.inspect(ctx, f, path)
}

// inspect validates path and runs the adapter for f, reporting to the
// observability hooks.
func (c *CLI) inspect(ctx context.Context, f *formats.Format, path string) (any, error) {
	logger := loggerFromContext(ctx)
	if err := errors.ValidateInputPath(path); err != nil {
		return nil, err
	}
	opts, err := c.options(logger)
	if err != nil {
		return nil, err
	}

	prog := newProgress(logger)
	done := observability.StartInspect(ctx, f.Name, path)
	result, err := f.Inspect(ctx, path, opts)
	done(err)
	if err != nil {
		return nil, err
	}
	prog.done("Inspected " + filepath.Base(path))
	return result, nil
}
