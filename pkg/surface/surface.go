package surface

import (
	"github.com/matzehuels/flowgraph/pkg/geom"
	"github.com/matzehuels/flowgraph/pkg/scene"
)

// EventKind identifies an input event.
type EventKind int

const (
	PointerDown EventKind = iota + 1
	PointerMove
	PointerUp
	Wheel
	Click
)

func (k EventKind) String() string {
	switch k {
	case PointerDown:
		return "pointerdown"
	case PointerMove:
		return "pointermove"
	case PointerUp:
		return "pointerup"
	case Wheel:
		return "wheel"
	case Click:
		return "click"
	default:
		return "unknown"
	}
}

// Event is one input event in surface coordinates.
type Event struct {
	Kind EventKind
	Pos  geom.Point

	// DeltaY is the wheel delta for Wheel events. Positive values scroll
	// down and zoom out.
	DeltaY float64
}

// Handler handles an event and reports whether it consumed it.
type Handler func(Event) bool

// Content is what a render pass places on a surface.
type Content struct {
	Scene scene.Scene

	// Controls draws the zoom buttons in the bottom-left corner.
	Controls bool
}

// Surface is the host-provided drawing area.
type Surface interface {
	// Size returns the current width and height.
	Size() geom.Size

	SetVisible(visible bool)
	Visible() bool

	// Replace discards the current content and attaches c.
	Replace(c Content)
	// Clear removes all content and resets the transform.
	Clear()
	// Content returns the attached content, if any.
	Content() (Content, bool)

	SetTransform(t geom.Transform)
	Transform() geom.Transform

	// Listen registers h and returns a function that removes it. Calling the
	// release function more than once is harmless.
	Listen(h Handler) (release func())
}
