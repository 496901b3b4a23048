package sink

import (
	"context"

	"github.com/matzehuels/flowgraph/pkg/render"
	"github.com/matzehuels/flowgraph/pkg/scene"
)

// RenderPNG renders the scene as PNG via SVG conversion. The SVG is always
// sized to the scene.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, s scene.Scene, scale float64, opts ...SVGOption) ([]byte, error) {
	if scale <= 0 {
		scale = 2.0
	}
	svg := RenderSVG(s, append(opts, WithFixedSize())...)
	return render.ToPNG(ctx, svg, scale)
}

// RenderPDF renders the scene as PDF via SVG conversion.
func RenderPDF(ctx context.Context, s scene.Scene, opts ...SVGOption) ([]byte, error) {
	svg := RenderSVG(s, append(opts, WithFixedSize())...)
	return render.ToPDF(ctx, svg)
}
