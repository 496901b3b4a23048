// Package render turns workflow scenes into files and documents.
//
// # Overview
//
// The interactive view draws a [scene.Scene] onto a surface. Everything else
// (the CLI, the HTTP service, the cache) needs the same scene as bytes:
//
//   - [sink]: SVG and JSON materialization of a scene
//   - [nodelink]: Graphviz DOT export, rendered in-process to SVG
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG with the external rsvg-convert tool
// (from librsvg). The sink package uses them for raster and print output.
//
//	svg := sink.RenderSVG(s, sink.WithFixedSize())
//	png, err := render.ToPNG(ctx, svg, 2.0)
//
// [scene.Scene]: github.com/matzehuels/flowgraph/pkg/scene
// [sink]: github.com/matzehuels/flowgraph/pkg/render/sink
// [nodelink]: github.com/matzehuels/flowgraph/pkg/render/nodelink
package render
