package scene

import (
	"slices"

	"github.com/matzehuels/flowgraph/pkg/geom"
	"github.com/matzehuels/flowgraph/pkg/layout"
	"github.com/matzehuels/flowgraph/pkg/theme"
	"github.com/matzehuels/flowgraph/pkg/workflow"
)

// Drawing constants.
const (
	MaxNameLen = 18

	NodeRadius      = 8.0
	NodeStrokeWidth = 2.0
	EdgeStrokeWidth = 1.5

	NameY      = 20.0
	NameSize   = 13.0
	NameWeight = 600
	StateY     = 37.0
	StateSize  = 10.0
	StateAlpha = 0.75

	MarkerID = "arrowhead"
)

// Scene is an immutable description of one render pass. It shares no memory
// with the layout it was built from; materializers (SVG, JSON, terminal)
// read it and never change it.
type Scene struct {
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Theme    string  `json:"theme"`
	BasePath string  `json:"basePath"`
	Marker   Marker  `json:"marker"`
	Edges    []Path  `json:"edges"`
	Nodes    []Box   `json:"nodes"`

	// ControlStyle colors the zoom buttons.
	ControlStyle theme.ControlColors `json:"controlStyle"`
}

// Marker is the arrowhead drawn at the end of every edge.
type Marker struct {
	ID     string  `json:"id"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	RefX   float64 `json:"refX"`
	RefY   float64 `json:"refY"`
	D      string  `json:"d"`
	Fill   string  `json:"fill"`
}

// Path is a routed edge.
type Path struct {
	From        string       `json:"from"`
	To          string       `json:"to"`
	Points      []geom.Point `json:"points"`
	D           string       `json:"d"`
	Stroke      string       `json:"stroke"`
	StrokeWidth float64      `json:"strokeWidth"`
	MarkerEnd   string       `json:"markerEnd"`
}

// Text is a line of text positioned relative to its box's top-left corner.
type Text struct {
	Content string  `json:"content"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Size    float64 `json:"size"`
	Weight  int     `json:"weight,omitempty"`
	Fill    string  `json:"fill"`
	Opacity float64 `json:"opacity"`
}

// Box is a node: a rounded rectangle with its name and state, and the hit
// target that raises a navigation intent.
type Box struct {
	NodeID      string         `json:"id"`
	Name        string         `json:"name"`
	State       workflow.State `json:"state"`
	Rect        geom.Rect      `json:"rect"`
	Radius      float64        `json:"radius"`
	Fill        string         `json:"fill"`
	Stroke      string         `json:"stroke"`
	StrokeWidth float64        `json:"strokeWidth"`
	Label       Text           `json:"label"`
	Status      Text           `json:"status"`
	Href        string         `json:"href"`
}

// Build turns a positioned graph into a scene using palette p. Node clicks
// navigate to basePath + "/" + id.
//
// Build is total and pure: identical arguments give equal scenes. Edges with
// fewer than two points are skipped.
func Build(g layout.Graph, p theme.Palette, basePath string) Scene {
	s := Scene{
		Width:    g.Width,
		Height:   g.Height,
		Theme:    p.Name,
		BasePath: basePath,
		Marker: Marker{
			ID:     MarkerID,
			Width:  8,
			Height: 6,
			RefX:   8,
			RefY:   3,
			D:      "M 0 0 L 8 3 L 0 6 Z",
			Fill:   p.Edge,
		},
		Edges:        make([]Path, 0, len(g.Edges)),
		Nodes:        make([]Box, 0, len(g.Nodes)),
		ControlStyle: p.Controls,
	}

	for _, e := range g.Edges {
		if len(e.Points) < 2 {
			continue
		}
		s.Edges = append(s.Edges, Path{
			From:        e.From,
			To:          e.To,
			Points:      slices.Clone(e.Points),
			D:           PathData(e.Points),
			Stroke:      p.Edge,
			StrokeWidth: EdgeStrokeWidth,
			MarkerEnd:   "url(#" + MarkerID + ")",
		})
	}

	for _, n := range g.Nodes {
		c := p.Resolve(n.State)
		s.Nodes = append(s.Nodes, Box{
			NodeID:      n.ID,
			Name:        n.Name,
			State:       n.State,
			Rect:        n.Rect(),
			Radius:      NodeRadius,
			Fill:        c.Fill,
			Stroke:      c.Stroke,
			StrokeWidth: NodeStrokeWidth,
			Label: Text{
				Content: Truncate(n.Name, MaxNameLen),
				X:       n.W / 2,
				Y:       NameY,
				Size:    NameSize,
				Weight:  NameWeight,
				Fill:    c.Text,
				Opacity: 1,
			},
			Status: Text{
				Content: n.State.Label(),
				X:       n.W / 2,
				Y:       StateY,
				Size:    StateSize,
				Fill:    c.Text,
				Opacity: StateAlpha,
			},
			Href: Intent{BasePath: basePath, NodeID: n.ID}.Path(),
		})
	}
	return s
}

// Size returns the scene's natural extent.
func (s Scene) Size() geom.Size { return geom.Size{W: s.Width, H: s.Height} }

// Empty reports whether the scene has no nodes.
func (s Scene) Empty() bool { return len(s.Nodes) == 0 }

// NodeAt returns the topmost box containing the scene point p. Boxes are
// drawn in order, so the last match wins.
func (s Scene) NodeAt(p geom.Point) (Box, bool) {
	for i := len(s.Nodes) - 1; i >= 0; i-- {
		if s.Nodes[i].Rect.Contains(p) {
			return s.Nodes[i], true
		}
	}
	return Box{}, false
}

// Box returns the box of the node named name.
func (s Scene) Box(name string) (Box, bool) {
	i := slices.IndexFunc(s.Nodes, func(b Box) bool { return b.Name == name })
	if i < 0 {
		return Box{}, false
	}
	return s.Nodes[i], true
}

// Intent returns the navigation intent for a click on box b.
func (s Scene) Intent(b Box) Intent {
	return Intent{BasePath: s.BasePath, NodeID: b.NodeID}
}
