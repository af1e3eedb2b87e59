package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	ltree "github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/JRJacoby/SciViewer/pkg/errors"
	"github.com/JRJacoby/SciViewer/pkg/formats"
	"github.com/JRJacoby/SciViewer/pkg/tree"
)

const showValueLimit = 60

type showOptions struct {
	depth int
	attrs bool
	at    string
}

func (c *CLI) showCommand() *cobra.Command {
	var opts showOptions

	cmd := &cobra.Command{
		Use:   "show <filepath>",
		Short: "Print a styled overview of a file",
		Long: `Print a human-readable overview of a file: an indented tree for
hierarchical formats, or a summary with a preview table for arrays and
Parquet files. The format is chosen from the file extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := c.detectAndInspect(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			name := filepath.Base(args[0])
			if opts.at != "" {
				if result, err = subtree(result, opts.at); err != nil {
					return err
				}
				name = opts.at
			}
			return show(cmd.OutOrStdout(), name, result, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.depth, "depth", "d", 0, "maximum tree depth to print (0 = unlimited)")
	cmd.Flags().BoolVarP(&opts.attrs, "attrs", "a", false, "list attributes under each node")
	cmd.Flags().StringVar(&opts.at, "at", "", "print only the subtree at this node path, e.g. /grp/x")
	return cmd
}

// subtree returns the node at path inside a tree result.
func subtree(result any, path string) (*tree.Node, error) {
	root, ok := result.(*tree.Node)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidUsage, "--at needs a hierarchical file, not a %s summary", summaryKind(result))
	}
	n := root.Find(path)
	if n == nil {
		return nil, errors.New(errors.ErrCodeInvalidPath, "no node at %s", path)
	}
	return n, nil
}

func summaryKind(result any) string {
	if _, ok := result.(*formats.TableSummary); ok {
		return "table"
	}
	return "array"
}

func show(w io.Writer, name string, result any, opts showOptions) error {
	switch r := result.(type) {
	case *tree.Node:
		fmt.Fprintln(w, showTree(r, name, opts).String())
	case *formats.ArraySummary:
		fmt.Fprintln(w, StyleTitle.Render(name))
		printKeyValue(w, "shape", tree.FormatShape(r.Shape))
		printKeyValue(w, "dtype", r.DType)
		printKeyValue(w, "size", strconv.Itoa(r.Size))
		printKeyValue(w, "preview", cellText(r.Preview))
	case *formats.TableSummary:
		fmt.Fprintln(w, StyleTitle.Render(name))
		printKeyValue(w, "rows", strconv.FormatInt(r.Summary.Rows, 10))
		printKeyValue(w, "columns", strconv.Itoa(r.Summary.Columns))
		printKeyValue(w, "row groups", strconv.Itoa(r.Summary.RowGroups))
		printKeyValue(w, "size", fmt.Sprintf("%.2f MB", r.Summary.SizeMB))
		printKeyValue(w, "compression", r.Summary.Compression)
		fmt.Fprintln(w, previewTable(r).Render())
	default:
		return errors.New(errors.ErrCodeInternal, "unexpected result type %T", result)
	}
	return nil
}

// showTree converts n into a lipgloss tree, cutting it at opts.depth.
func showTree(n *tree.Node, name string, opts showOptions) *ltree.Tree {
	t := ltree.Root(nodeLabel(n, name)).
		Enumerator(ltree.RoundedEnumerator).
		EnumeratorStyle(StyleDim)
	addChildren(t, n, 1, opts)
	return t
}

func addChildren(t *ltree.Tree, n *tree.Node, depth int, opts showOptions) {
	if opts.attrs {
		for _, k := range slices.Sorted(maps.Keys(n.Attrs)) {
			t.Child(StyleDim.Render("@" + k + " = " + truncateText(cellText(n.Attrs[k]))))
		}
	}
	if opts.depth > 0 && depth > opts.depth {
		if len(n.Children) > 0 {
			t.Child(StyleDim.Render(fmt.Sprintf("… %d more", len(n.Children))))
		}
		return
	}
	for _, c := range n.Children {
		if len(c.Children) == 0 && !(opts.attrs && len(c.Attrs) > 0) {
			t.Child(nodeLabel(c, c.Name))
			continue
		}
		sub := ltree.Root(nodeLabel(c, c.Name))
		addChildren(sub, c, depth+1, opts)
		t.Child(sub)
	}
}

func nodeLabel(n *tree.Node, name string) string {
	if n.IsGroup() {
		return StyleGroup.Render(name) + StyleDim.Render(fmt.Sprintf(" (%d)", len(n.Children)))
	}
	return StyleValue.Render(name) + " " + StyleDType.Render(tree.FormatShape(n.Shape)+" "+n.DType)
}

func previewTable(r *formats.TableSummary) *table.Table {
	headers := make([]string, len(r.Schema))
	for i, f := range r.Schema {
		headers[i] = f.Name
	}
	rows := make([][]string, len(r.Preview))
	for i, row := range r.Preview {
		cells := make([]string, len(headers))
		for j, h := range headers {
			v, _ := row.Get(h)
			cells[j] = truncateText(cellText(v))
		}
		rows[i] = cells
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

// cellText renders strings bare and everything else as compact JSON.
func cellText(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

func truncateText(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= showValueLimit {
		return s
	}
	return string(r[:showValueLimit]) + "…"
}
