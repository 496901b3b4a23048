package scene

import (
	"github.com/matzehuels/flowgraph/pkg/geom"
	"github.com/matzehuels/flowgraph/pkg/theme"
)

// Zoom control geometry, in surface pixels.
const (
	ButtonSize   = 28.0
	ButtonInset  = 8.0
	ButtonFont   = 16.0
	ButtonRadius = 4.0
	ZoomInLabel  = "+"
	ZoomOutLabel = "−"
)

// Action is what a control button does.
type Action int

const (
	ActionZoomIn Action = iota + 1
	ActionZoomOut
)

func (a Action) String() string {
	switch a {
	case ActionZoomIn:
		return "zoom-in"
	case ActionZoomOut:
		return "zoom-out"
	}
	return "none"
}

// Button is an on-screen zoom control. Rect is in surface coordinates: the
// controls stay put while the graph pans and zooms underneath.
type Button struct {
	Action Action              `json:"action"`
	Label  string              `json:"label"`
	Rect   geom.Rect           `json:"rect"`
	Colors theme.ControlColors `json:"colors"`
}

// Controls lays out the zoom buttons for a surface of the given size: a
// column in the bottom-left corner, zoom in above zoom out.
func (s Scene) Controls(size geom.Size) []Button {
	x := ButtonInset
	outY := size.H - ButtonInset - ButtonSize
	return []Button{
		{Action: ActionZoomIn, Label: ZoomInLabel, Rect: geom.Rect{X: x, Y: outY - ButtonSize, W: ButtonSize, H: ButtonSize}, Colors: s.ControlStyle},
		{Action: ActionZoomOut, Label: ZoomOutLabel, Rect: geom.Rect{X: x, Y: outY, W: ButtonSize, H: ButtonSize}, Colors: s.ControlStyle},
	}
}

// ControlAt returns the button under surface point p.
func (s Scene) ControlAt(size geom.Size, p geom.Point) (Button, bool) {
	for _, b := range s.Controls(size) {
		if b.Rect.Contains(p) {
			return b, true
		}
	}
	return Button{}, false
}
