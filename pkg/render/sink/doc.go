// Package sink materializes a [scene.Scene] as bytes.
//
// [RenderSVG] writes the same document a browser host would draw: an
// arrowhead marker in defs, a graph-container group carrying the viewport
// transform, edges below nodes, and node groups tagged with data-node-id and
// data-href for click handling. [RenderJSON] exports the scene itself.
// [RenderPNG] and [RenderPDF] convert the SVG through rsvg-convert.
//
// Every call renders the whole scene from scratch.
//
// [scene.Scene]: github.com/matzehuels/flowgraph/pkg/scene
package sink
