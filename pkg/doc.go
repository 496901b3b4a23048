// Package pkg provides the core libraries for flowgraph workflow rendering.
//
// # Overview
//
// flowgraph turns a workflow payload (a list of jobs with their state and
// dependencies) into a left-to-right graph drawing. The same drawing is
// exported as static artifacts or shown interactively with pan and zoom.
//
// # Architecture
//
// The typical data flow:
//
//	JSON / YAML payload
//	         ↓
//	    [workflow], [io] (decode and validate jobs)
//	         ↓
//	    [dag], [dag/transform] (graph, cycle breaking, ranks, subdivision)
//	         ↓
//	    [layout] (ordering, coordinates, edge routing)
//	         ↓
//	    [scene] (themed drawable: boxes, labels, edges, controls)
//	         ↓
//	    [render/sink], [render/nodelink] (SVG, JSON, DOT, PNG, PDF)
//
// Interactive hosts mount a [view] on a [surface]. The view owns a
// [viewport] controller and re-renders the scene when the payload changes.
//
// # Quick Start
//
//	nodes, _ := workflow.ParsePayload(payload)
//	g, _ := layout.Compute(nodes)
//	sc := scene.Build(g, theme.Light(), "/runs/42")
//	svg := sink.RenderSVG(sc, sink.WithFixedSize())
//
// # Main Packages
//
// [pipeline] - Parse, layout and render with caching. Used by the CLI and the
// HTTP server so both produce identical output.
//
// [cache] - Layout and artifact caching on disk or in Redis.
//
// [server] - HTTP rendering service with Prometheus metrics.
//
// [observability] - Hooks for pipeline, cache, HTTP and view events.
//
// [errors] - Coded errors shared by every entry point.
//
// [workflow]: https://pkg.go.dev/github.com/matzehuels/flowgraph/pkg/workflow
// [io]: https://pkg.go.dev/github.com/matzehuels/flowgraph/pkg/io
// [dag]: https://pkg.go.dev/github.com/matzehuels/flowgraph/pkg/dag
// [dag/transform]: https://pkg.go.dev/github.com/matzehuels/flowgraph/pkg/dag/transform
// [layout]: https://pkg.go.dev/github.com/matzehuels/flowgraph/pkg/layout
// [scene]: https://pkg.go.dev/github.com/matzehuels/flowgraph/pkg/scene
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/flowgraph/pkg/render/sink
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/flowgraph/pkg/render/nodelink
// [view]: https://pkg.go.dev/github.com/matzehuels/flowgraph/pkg/view
// [surface]: https://pkg.go.dev/github.com/matzehuels/flowgraph/pkg/surface
// [viewport]: https://pkg.go.dev/github.com/matzehuels/flowgraph/pkg/viewport
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/flowgraph/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/flowgraph/pkg/cache
// [server]: https://pkg.go.dev/github.com/matzehuels/flowgraph/pkg/server
// [observability]: https://pkg.go.dev/github.com/matzehuels/flowgraph/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/flowgraph/pkg/errors
package pkg
