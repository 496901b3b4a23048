package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/flowgraph/pkg/geom"
	"github.com/matzehuels/flowgraph/pkg/layout"
	"github.com/matzehuels/flowgraph/pkg/render"
	"github.com/matzehuels/flowgraph/pkg/scene"
	"github.com/matzehuels/flowgraph/pkg/theme"
	"github.com/matzehuels/flowgraph/pkg/workflow"
)

func testScene(t *testing.T, p theme.Palette) scene.Scene {
	t.Helper()
	g, err := layout.Compute([]workflow.Node{
		{ID: "a", Name: "build", State: workflow.StateCompleted},
		{ID: "b", Name: "test <unit> & e2e", State: workflow.StateExecuting, Deps: []string{"build"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	return scene.Build(g, p, "/jobs")
}

func TestRenderSVG(t *testing.T) {
	s := testScene(t, theme.Light())
	svg := string(RenderSVG(s))

	for _, want := range []string{
		`width="100%" height="100%"`,
		`<marker id="arrowhead" markerWidth="8" markerHeight="6" refX="8" refY="3" orient="auto">`,
		`<path d="M 0 0 L 8 3 L 0 6 Z" fill="#6b7280"/>`,
		`<g class="graph-container" transform="matrix(1 0 0 1 0 0)">`,
		`d="M 200 64 L 260 64" fill="none" stroke="#6b7280" stroke-width="1.5" marker-end="url(#arrowhead)"`,
		`data-node-id="a" data-href="/jobs/a"`,
		`rx="8" ry="8" fill="#dcfce7" stroke="#4ade80" stroke-width="2"`,
		`font-size="13" font-weight="600">build</text>`,
		`font-size="10" opacity="0.75">executing</text>`,
		`test &lt;unit&gt; &amp; e2e`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q\n%s", want, svg)
		}
	}
	if strings.Contains(svg, "zoom-controls") {
		t.Error("controls rendered without WithControls")
	}
	if strings.Index(svg, `class="edge"`) > strings.Index(svg, `class="node"`) {
		t.Error("edges must be drawn below nodes")
	}
}

func TestRenderSVG_Options(t *testing.T) {
	s := testScene(t, theme.Dark())
	svg := string(RenderSVG(s,
		WithTransform(geom.Transform{Scale: 0.5, X: 12.25, Y: -3}),
		WithControls(geom.Size{W: 400, H: 300}),
		WithFixedSize(),
	))

	for _, want := range []string{
		`viewBox="0 0 460 128" width="460" height="128" data-theme="dark"`,
		`transform="matrix(0.5 0 0 0.5 12.25 -3)"`,
		`data-action="zoom-in"`,
		`data-action="zoom-out"`,
		`fill="#1f2937" stroke="#374151"`,
		`>−</text>`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
}

func TestRenderSVG_Deterministic(t *testing.T) {
	s := testScene(t, theme.Light())
	a := RenderSVG(s, WithControls(geom.Size{W: 800, H: 600}))
	b := RenderSVG(s, WithControls(geom.Size{W: 800, H: 600}))
	if !bytes.Equal(a, b) {
		t.Error("RenderSVG output differs between calls")
	}
}

func TestRenderJSON(t *testing.T) {
	s := testScene(t, theme.Light())
	data, err := RenderJSON(s, WithJSONTransform(geom.Transform{Scale: 2, X: 1, Y: 1}), WithJSONControls(geom.Size{W: 100, H: 100}))
	if err != nil {
		t.Fatal(err)
	}

	var out struct {
		Width     float64 `json:"width"`
		Theme     string  `json:"theme"`
		Nodes     []scene.Box
		Edges     []scene.Path
		Transform *geom.Transform
		Controls  []scene.Button
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if out.Width != 460 || out.Theme != "light" || len(out.Nodes) != 2 || len(out.Edges) != 1 {
		t.Errorf("decoded = %+v", out)
	}
	if out.Transform == nil || out.Transform.Scale != 2 {
		t.Errorf("transform = %+v", out.Transform)
	}
	if len(out.Controls) != 2 {
		t.Errorf("controls = %d", len(out.Controls))
	}
}

func TestRenderPNG(t *testing.T) {
	if !render.Available() {
		t.Skip("rsvg-convert not installed")
	}
	png, err := RenderPNG(context.Background(), testScene(t, theme.Light()), 1)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}
