// Package nodelink exports workflow graphs as Graphviz node-link diagrams.
//
// # Overview
//
// The interactive view uses flowgraph's own layout. For users who want a
// Graphviz rendering (or DOT source to post-process), [ToDOT] emits the same
// nodes and edges with the state palette applied, and [RenderSVG] runs
// Graphviz in-process.
//
//	dot := nodelink.ToDOT(g, theme.Light(), nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// The generated DOT uses left-to-right layout (rankdir=LR). Edges reversed
// to break a dependency cycle are drawn dashed.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PNG conversion requires librsvg (rsvg-convert).
package nodelink
