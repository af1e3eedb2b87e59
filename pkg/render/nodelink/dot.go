package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/JRJacoby/SciViewer/pkg/observability"
	"github.com/JRJacoby/SciViewer/pkg/tree"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds node attributes to labels.
	Detailed bool

	// MaxNodes caps the number of emitted nodes. Zero means no limit.
	MaxNodes int
}

const attrValueLimit = 40

// ToDOT converts a tree to Graphviz DOT source. Node identifiers are the
// tree paths, so edges read "/a" -> "/a/b".
func ToDOT(root *tree.Node, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"Helvetica\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.2;\n")
	buf.WriteString("\n")

	type edge struct{ from, to string }
	var edges []edge
	emitted := make(map[string]bool)
	root.Walk(func(n *tree.Node, _ int) bool {
		if opts.MaxNodes > 0 && len(emitted) >= opts.MaxNodes {
			return false
		}
		emitted[n.Path] = true
		fmt.Fprintf(&buf, "  %q [%s];\n", n.Path, strings.Join(fmtAttrs(n, fmtLabel(n, opts.Detailed)), ", "))
		for _, c := range n.Children {
			edges = append(edges, edge{n.Path, c.Path})
		}
		return true
	})

	buf.WriteString("\n")
	for _, e := range edges {
		// Graphviz would invent unlabeled boxes for nodes cut by MaxNodes.
		if !emitted[e.to] {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.from, e.to)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *tree.Node, detailed bool) string {
	name := n.Name
	if n.IsGroup() && n.Path != "/" {
		name += "/"
	}

	var parts []string
	if !n.IsGroup() {
		parts = append(parts, fmtShape(n))
	}
	if detailed {
		for _, k := range slices.Sorted(maps.Keys(n.Attrs)) {
			parts = append(parts, fmt.Sprintf("%s: %s", k, truncate(fmt.Sprint(n.Attrs[k]))))
		}
	}
	if len(parts) == 0 {
		return name
	}
	return name + "\n" + strings.Join(parts, "\n")
}

func fmtShape(n *tree.Node) string {
	if n.Shape == nil {
		return n.DType
	}
	return tree.FormatShape(n.Shape) + " " + n.DType
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= attrValueLimit {
		return s
	}
	return string(r[:attrValueLimit]) + "..."
}

func fmtAttrs(n *tree.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if n.IsGroup() {
		attrs = append(attrs, "fillcolor=\"#dbe9f6\"")
	}
	return attrs
}

// SVG renders root to SVG, reporting to the observability render hooks.
func SVG(ctx context.Context, root *tree.Node, opts Options) ([]byte, error) {
	count := 0
	root.Walk(func(*tree.Node, int) bool { count++; return true })

	done := observability.StartRender(ctx, "svg", count)
	svg, err := RenderSVG(ctx, ToDOT(root, opts))
	done(len(svg), err)
	return svg, err
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the drawing scales from a
// zero origin with pixel width and height matching the view box.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
