package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/flowgraph/pkg/geom"
	"github.com/matzehuels/flowgraph/pkg/scene"
)

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	transform geom.Transform
	controls  *geom.Size
	fixed     bool
}

// WithTransform applies a viewport transform to the graph group.
func WithTransform(t geom.Transform) SVGOption {
	return func(r *svgRenderer) { r.transform = t }
}

// WithControls draws the zoom buttons for a surface of the given size.
func WithControls(size geom.Size) SVGOption {
	return func(r *svgRenderer) { r.controls = &size }
}

// WithFixedSize sizes the document to the scene instead of filling its
// container. Use it for files.
func WithFixedSize() SVGOption { return func(r *svgRenderer) { r.fixed = true } }

// RenderSVG materializes s as an SVG document: the arrowhead marker, a
// graph-container group holding edges then nodes, and optionally the zoom
// controls. Output is byte-for-byte stable for equal inputs.
func RenderSVG(s scene.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{transform: geom.Identity}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	if r.fixed {
		fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s" data-theme="%s">`+"\n",
			num(s.Width), num(s.Height), num(s.Width), num(s.Height), escapeXML(s.Theme))
	} else {
		fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="100%%" height="100%%" style="display:block" data-theme="%s">`+"\n",
			escapeXML(s.Theme))
	}

	renderDefs(&buf, s.Marker)

	t := r.transform
	fmt.Fprintf(&buf, `  <g class="graph-container" transform="matrix(%s 0 0 %s %s %s)">`+"\n",
		num(t.Scale), num(t.Scale), num(t.X), num(t.Y))
	for _, e := range s.Edges {
		renderEdge(&buf, e)
	}
	for _, b := range s.Nodes {
		renderNode(&buf, b)
	}
	buf.WriteString("  </g>\n")

	if r.controls != nil {
		renderControls(&buf, s.Controls(*r.controls))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderDefs(buf *bytes.Buffer, m scene.Marker) {
	buf.WriteString("  <defs>\n")
	fmt.Fprintf(buf, `    <marker id="%s" markerWidth="%s" markerHeight="%s" refX="%s" refY="%s" orient="auto">`+"\n",
		escapeXML(m.ID), num(m.Width), num(m.Height), num(m.RefX), num(m.RefY))
	fmt.Fprintf(buf, `      <path d="%s" fill="%s"/>`+"\n", m.D, escapeXML(m.Fill))
	buf.WriteString("    </marker>\n")
	buf.WriteString("  </defs>\n")
}

func renderEdge(buf *bytes.Buffer, e scene.Path) {
	fmt.Fprintf(buf, `    <path class="edge" d="%s" fill="none" stroke="%s" stroke-width="%s" marker-end="%s" data-from="%s" data-to="%s"/>`+"\n",
		e.D, escapeXML(e.Stroke), num(e.StrokeWidth), escapeXML(e.MarkerEnd), escapeXML(e.From), escapeXML(e.To))
}

func renderNode(buf *bytes.Buffer, b scene.Box) {
	fmt.Fprintf(buf, `    <g class="node" transform="translate(%s, %s)" style="cursor:pointer" data-node-id="%s" data-href="%s" data-state="%s">`+"\n",
		num(b.Rect.X), num(b.Rect.Y), escapeXML(b.NodeID), escapeXML(b.Href), escapeXML(string(b.State)))
	fmt.Fprintf(buf, `      <rect width="%s" height="%s" rx="%s" ry="%s" fill="%s" stroke="%s" stroke-width="%s"/>`+"\n",
		num(b.Rect.W), num(b.Rect.H), num(b.Radius), num(b.Radius), escapeXML(b.Fill), escapeXML(b.Stroke), num(b.StrokeWidth))
	renderText(buf, b.Label)
	renderText(buf, b.Status)
	buf.WriteString("    </g>\n")
}

func renderText(buf *bytes.Buffer, t scene.Text) {
	fmt.Fprintf(buf, `      <text x="%s" y="%s" text-anchor="middle" fill="%s" font-size="%s"`,
		num(t.X), num(t.Y), escapeXML(t.Fill), num(t.Size))
	if t.Weight > 0 {
		fmt.Fprintf(buf, ` font-weight="%d"`, t.Weight)
	}
	if t.Opacity != 1 {
		fmt.Fprintf(buf, ` opacity="%s"`, num(t.Opacity))
	}
	fmt.Fprintf(buf, ">%s</text>\n", escapeXML(t.Content))
}

func renderControls(buf *bytes.Buffer, buttons []scene.Button) {
	buf.WriteString(`  <g class="zoom-controls">` + "\n")
	for _, b := range buttons {
		r := b.Rect
		fmt.Fprintf(buf, `    <g class="zoom-button" data-action="%s" style="cursor:pointer">`+"\n", b.Action)
		fmt.Fprintf(buf, `      <rect x="%s" y="%s" width="%s" height="%s" rx="%s" fill="%s" stroke="%s" stroke-width="1"/>`+"\n",
			num(r.X), num(r.Y), num(r.W), num(r.H), num(scene.ButtonRadius),
			escapeXML(b.Colors.Background), escapeXML(b.Colors.Border))
		c := r.Center()
		fmt.Fprintf(buf, `      <text x="%s" y="%s" text-anchor="middle" dominant-baseline="central" fill="%s" font-size="%s" font-weight="600">%s</text>`+"\n",
			num(c.X), num(c.Y), escapeXML(b.Colors.Text), num(scene.ButtonFont), escapeXML(b.Label))
		buf.WriteString("    </g>\n")
	}
	buf.WriteString("  </g>\n")
}

func num(f float64) string { return scene.FormatFloat(f) }

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
