// Package nodelink renders inspected trees as node-link diagrams.
//
// # Overview
//
// Every node of a [tree.Node] hierarchy becomes a box and every
// parent-child relation an arrow. Groups are shaded; datasets list their
// shape and dtype under the name.
//
// # Usage
//
//	dot := nodelink.ToDOT(root, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [SVG] does both steps and reports the rendering to the registered
// observability hooks.
//
// # Options
//
//   - Detailed: also list each node's attributes in its label
//   - MaxNodes: stop emitting nodes past this count (0 means no limit)
//
// # Dependencies
//
// Rendering uses [github.com/goccy/go-graphviz], which runs Graphviz
// in-process through WebAssembly, so no system install is needed for SVG.
//
// [tree.Node]: github.com/JRJacoby/SciViewer/pkg/tree.Node
package nodelink
