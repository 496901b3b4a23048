package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/flowgraph/pkg/errors"
	"github.com/matzehuels/flowgraph/pkg/layout"
	"github.com/matzehuels/flowgraph/pkg/observability"
	"github.com/matzehuels/flowgraph/pkg/render/nodelink"
	"github.com/matzehuels/flowgraph/pkg/render/sink"
	"github.com/matzehuels/flowgraph/pkg/scene"
)

// Render materializes g in every format of opts.Formats.
//
// svg, json, png and pdf draw the same scene the interactive view shows.
// dot and graphviz hand the positioned graph to Graphviz instead.
func Render(ctx context.Context, g layout.Graph, opts Options) (artifacts map[string][]byte, err error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	defer func() { hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err) }()

	artifacts = make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := RenderFormat(ctx, g, format, opts)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat renders a single format.
func RenderFormat(ctx context.Context, g layout.Graph, format string, opts Options) ([]byte, error) {
	palette := opts.Palette()
	nodelinkOpts := nodelink.Options{Detailed: opts.Detailed, BasePath: opts.BasePath}

	var (
		data []byte
		err  error
	)
	switch format {
	case FormatSVG:
		data = sink.RenderSVG(scene.Build(g, palette, opts.BasePath), sink.WithFixedSize())
	case FormatJSON:
		data, err = sink.RenderJSON(scene.Build(g, palette, opts.BasePath))
	case FormatDOT:
		data = []byte(nodelink.ToDOT(g, palette, nodelinkOpts))
	case FormatGraphviz:
		data, err = nodelink.RenderSVG(ctx, nodelink.ToDOT(g, palette, nodelinkOpts))
	case FormatPNG:
		data, err = sink.RenderPNG(ctx, scene.Build(g, palette, opts.BasePath), opts.Scale)
	case FormatPDF:
		data, err = sink.RenderPDF(ctx, scene.Build(g, palette, opts.BasePath))
	default:
		return nil, ValidateFormat(format)
	}
	if err != nil {
		if errors.GetCode(err) != "" {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "render %s", format)
	}
	return data, nil
}
