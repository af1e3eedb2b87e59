// Package render draws inspected trees as images.
//
// # Overview
//
// The [nodelink] subpackage turns a [tree.Node] hierarchy into Graphviz DOT
// source and renders it to SVG in-process. This package holds the format
// conversions shared by renderers:
//
//	dot := nodelink.ToDOT(root, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)
//
// [ToPDF] and [ToPNG] shell out to rsvg-convert (librsvg), which must be on
// PATH.
//
// [nodelink]: github.com/JRJacoby/SciViewer/pkg/render/nodelink
// [tree.Node]: github.com/JRJacoby/SciViewer/pkg/tree.Node
package render
