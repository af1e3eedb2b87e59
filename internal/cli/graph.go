package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JRJacoby/SciViewer/pkg/errors"
	pio "github.com/JRJacoby/SciViewer/pkg/io"
	"github.com/JRJacoby/SciViewer/pkg/render"
	"github.com/JRJacoby/SciViewer/pkg/render/nodelink"
	"github.com/JRJacoby/SciViewer/pkg/tree"
)

type graphOptions struct {
	output   string
	detailed bool
	maxNodes int
	scale    float64
}

func (c *CLI) graphCommand() *cobra.Command {
	var opts graphOptions

	cmd := &cobra.Command{
		Use:   "graph <filepath>",
		Short: "Draw a file's structure as a node-link diagram",
		Long: `Draw the groups and datasets of a file as a Graphviz diagram.

Without -o the DOT source is written to stdout. The output extension picks
the format: .dot, .svg, .pdf or .png. PDF and PNG need rsvg-convert. A .json
output saves the inspected tree itself, indented, for other tools to draw.`,
		Example: `  sciviewer graph data.h5 -o data.svg
  sciviewer graph model.pkl --detailed --max-nodes 200 -o model.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := c.detectAndInspect(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			root, err := treeOf(result, filepath.Base(args[0]))
			if err != nil {
				return err
			}
			return c.writeGraph(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (.dot, .svg, .pdf, .png, .json)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include attributes in node labels")
	cmd.Flags().IntVar(&opts.maxNodes, "max-nodes", 500, "maximum number of nodes to draw (0 = unlimited)")
	cmd.Flags().Float64Var(&opts.scale, "scale", 2.0, "PNG resolution multiplier")
	return cmd
}

func (c *CLI) writeGraph(cmd *cobra.Command, root *tree.Node, opts graphOptions) error {
	ctx := cmd.Context()
	nl := nodelink.Options{Detailed: opts.detailed, MaxNodes: opts.maxNodes}

	ext := strings.ToLower(filepath.Ext(opts.output))
	if ext == ".json" {
		if err := pio.ExportJSON(root, opts.output); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", opts.output)
		}
		printSuccess(cmd.OutOrStdout(), "Wrote tree")
		printFile(cmd.OutOrStdout(), opts.output)
		return nil
	}
	if opts.output == "" || ext == ".dot" || ext == ".gv" {
		dot := nodelink.ToDOT(root, nl)
		if opts.output == "" {
			_, err := fmt.Fprint(cmd.OutOrStdout(), dot)
			return err
		}
		return c.writeOutput(cmd, opts.output, []byte(dot))
	}

	spinner := newSpinner(cmd.ErrOrStderr(), "Rendering "+filepath.Base(opts.output))
	spinner.Start()
	data, err := renderGraph(cmd, root, nl, ext, opts.scale)
	spinner.Stop()
	if err != nil {
		return err
	}
	return c.writeOutput(cmd, opts.output, data)
}

func renderGraph(cmd *cobra.Command, root *tree.Node, nl nodelink.Options, ext string, scale float64) ([]byte, error) {
	switch ext {
	case ".svg", ".pdf", ".png":
	default:
		return nil, errors.New(errors.ErrCodeInvalidUsage, "unsupported graph output %q (use .dot, .svg, .pdf, .png or .json)", ext)
	}

	svg, err := nodelink.SVG(cmd.Context(), root, nl)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render graph")
	}
	switch ext {
	case ".pdf":
		return render.ToPDF(svg)
	case ".png":
		return render.ToPNG(svg, scale)
	}
	return svg, nil
}

func (c *CLI) writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	printSuccess(cmd.OutOrStdout(), "Wrote graph")
	printFile(cmd.OutOrStdout(), path)
	return nil
}
