package viewport

import (
	"math"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/flowgraph/pkg/errors"
	"github.com/matzehuels/flowgraph/pkg/geom"
	"github.com/matzehuels/flowgraph/pkg/surface"
)

// fallbackGraph is the graph size Fit assumes when the layout reports none.
var fallbackGraph = geom.Size{W: 300, H: 200}

// Controller pans and zooms the content of one surface.
//
// A Controller owns the surface transform from New until Dispose. It is not
// safe for concurrent use; all calls, including event dispatch, are expected
// on the host's event goroutine.
type Controller struct {
	id      string
	surface surface.Surface
	content geom.Size
	opts    Options
	log     *log.Logger

	t        geom.Transform
	release  func()
	onChange []func(geom.Transform)

	dragging bool
	last     geom.Point
	disposed bool
}

// New attaches a controller to s for content of the given natural size. The
// initial transform is the identity; call Fit or Restore to position the
// content.
func New(s surface.Surface, content geom.Size, opts ...Option) (*Controller, error) {
	if s == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "viewport needs a surface")
	}
	o, err := Resolve(opts...)
	if err != nil {
		return nil, err
	}
	c := &Controller{
		id:      uuid.NewString(),
		surface: s,
		content: content,
		opts:    o,
		t:       geom.Identity,
	}
	c.log = o.Logger.With("viewport", c.id[:8])
	c.release = s.Listen(c.handle)
	s.SetTransform(c.t)
	c.log.Debug("attached", "content", content)
	return c, nil
}

// ID returns the controller's unique instance ID.
func (c *Controller) ID() string { return c.id }

// Transform returns the current transform.
func (c *Controller) Transform() geom.Transform { return c.t }

// Disposed reports whether Dispose was called.
func (c *Controller) Disposed() bool { return c.disposed }

// OnChange registers fn to run after every transform change.
func (c *Controller) OnChange(fn func(geom.Transform)) {
	if c.disposed || fn == nil {
		return
	}
	c.onChange = append(c.onChange, fn)
}

// ZoomAbs sets the scale to scale, keeping the surface point (cx, cy) fixed.
// The scale is not clamped.
func (c *Controller) ZoomAbs(cx, cy, scale float64) {
	if c.disposed || scale <= 0 {
		return
	}
	ratio := scale / c.t.Scale
	c.t.X = cx - ratio*(cx-c.t.X)
	c.t.Y = cy - ratio*(cy-c.t.Y)
	c.t.Scale = scale
	c.apply()
}

// MoveTo sets the translation. It is not bounded.
func (c *Controller) MoveTo(x, y float64) {
	if c.disposed {
		return
	}
	c.t.X, c.t.Y = x, y
	c.apply()
}

// ZoomAt multiplies the scale by factor around the surface point (cx, cy).
// The result is clamped to the zoom range and kept inside the elastic bounds.
func (c *Controller) ZoomAt(cx, cy, factor float64) {
	if c.disposed || factor <= 0 {
		return
	}
	if c.zoomByRatio(cx, cy, factor) {
		c.apply()
	}
}

// SmoothZoomAt animates the scale towards scale*factor around (cx, cy). Each
// frame is clamped like ZoomAt.
func (c *Controller) SmoothZoomAt(cx, cy, factor float64) {
	if c.disposed || factor <= 0 {
		return
	}
	from := c.t.Scale
	to := from * factor
	c.opts.Animator.Animate(c.opts.SmoothFrames, func(p float64) {
		if c.disposed {
			return
		}
		target := from + (to-from)*c.opts.Easing(p)
		if c.zoomByRatio(cx, cy, target/c.t.Scale) {
			c.apply()
		}
	})
}

// ZoomIn smoothly zooms in one step around the surface center.
func (c *Controller) ZoomIn() {
	center := c.center()
	c.SmoothZoomAt(center.X, center.Y, c.opts.ZoomStep)
}

// ZoomOut smoothly zooms out one step around the surface center.
func (c *Controller) ZoomOut() {
	center := c.center()
	c.SmoothZoomAt(center.X, center.Y, 1/c.opts.ZoomStep)
}

// Fit scales a graph of the given size to fit the surface without
// magnifying it and centers it. A zero dimension falls back to 300x200.
func (c *Controller) Fit(graph geom.Size) {
	if c.disposed {
		return
	}
	if graph.W <= 0 {
		graph.W = fallbackGraph.W
	}
	if graph.H <= 0 {
		graph.H = fallbackGraph.H
	}
	size := c.surface.Size()
	scale := min(size.W/graph.W, size.H/graph.H, 1)
	if scale <= 0 {
		scale = c.opts.MinZoom
	}
	c.t = geom.Transform{
		Scale: scale,
		X:     (size.W - graph.W*scale) / 2,
		Y:     (size.H - graph.H*scale) / 2,
	}
	c.log.Debug("fit", "graph", graph, "surface", size, "transform", c.t)
	c.apply()
}

// Restore reapplies a saved transform exactly.
func (c *Controller) Restore(t geom.Transform) error {
	if !t.Valid() {
		return errors.New(errors.ErrCodeInvalidInput, "invalid transform %+v", t)
	}
	if c.disposed {
		return nil
	}
	c.t = t
	c.log.Debug("restore", "transform", t)
	c.apply()
	return nil
}

// Dispose releases the surface listener. Later calls to any method are
// no-ops.
func (c *Controller) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	c.dragging = false
	c.onChange = nil
	if c.release != nil {
		c.release()
		c.release = nil
	}
	c.log.Debug("disposed")
}

func (c *Controller) handle(ev surface.Event) bool {
	if c.disposed {
		return false
	}
	switch ev.Kind {
	case surface.PointerDown:
		c.dragging = true
		c.last = ev.Pos
		return true
	case surface.PointerMove:
		if !c.dragging {
			return false
		}
		c.t.X += ev.Pos.X - c.last.X
		c.t.Y += ev.Pos.Y - c.last.Y
		c.last = ev.Pos
		c.keepInsideBounds()
		c.apply()
		return true
	case surface.PointerUp:
		if !c.dragging {
			return false
		}
		c.dragging = false
		return true
	case surface.Wheel:
		if ev.DeltaY == 0 {
			return false
		}
		c.ZoomAt(ev.Pos.X, ev.Pos.Y, c.wheelMultiplier(ev.DeltaY))
		return true
	}
	return false
}

// wheelMultiplier turns a wheel delta into a zoom factor, at most 25% per
// event.
func (c *Controller) wheelMultiplier(dy float64) float64 {
	step := min(0.25, math.Abs(dy*c.opts.WheelSpeed/128))
	if dy > 0 {
		return 1 - step
	}
	return 1 + step
}

// zoomByRatio scales around (cx, cy), clamping to the zoom range. It reports
// whether the transform changed.
//
// A scale already outside the range (an unclamped Fit of a large graph, a
// programmatic ZoomAbs) widens the range to include it, so a step towards
// the range never jumps past it and a step further away does nothing.
func (c *Controller) zoomByRatio(cx, cy, ratio float64) bool {
	lo := min(c.opts.MinZoom, c.t.Scale)
	hi := max(c.opts.MaxZoom, c.t.Scale)
	scale := c.t.Scale * ratio
	switch {
	case scale < lo:
		if c.t.Scale == lo {
			return false
		}
		scale = lo
	case scale > hi:
		if c.t.Scale == hi {
			return false
		}
		scale = hi
	}
	ratio = scale / c.t.Scale
	c.t.X = cx - ratio*(cx-c.t.X)
	c.t.Y = cy - ratio*(cy-c.t.Y)
	c.t.Scale = scale
	c.keepInsideBounds()
	return true
}

// keepInsideBounds shifts the translation so the transformed content still
// overlaps the surface's padded inner box.
func (c *Controller) keepInsideBounds() {
	size := c.surface.Size()
	pad := c.opts.BoundsPadding
	inner := geom.Rect{X: size.W * pad, Y: size.H * pad, W: size.W * (1 - 2*pad), H: size.H * (1 - 2*pad)}

	left, top := c.t.X, c.t.Y
	right := left + c.content.W*c.t.Scale
	bottom := top + c.content.H*c.t.Scale

	if diff := inner.X - right; diff > 0 {
		c.t.X += diff
	}
	if diff := inner.X + inner.W - left; diff < 0 {
		c.t.X += diff
	}
	if diff := inner.Y - bottom; diff > 0 {
		c.t.Y += diff
	}
	if diff := inner.Y + inner.H - top; diff < 0 {
		c.t.Y += diff
	}
}

func (c *Controller) center() geom.Point {
	size := c.surface.Size()
	return geom.Point{X: size.W / 2, Y: size.H / 2}
}

func (c *Controller) apply() {
	c.surface.SetTransform(c.t)
	for _, fn := range c.onChange {
		fn(c.t)
	}
}
