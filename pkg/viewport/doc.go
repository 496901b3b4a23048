// Package viewport pans and zooms a scene on a surface.
//
// A [Controller] owns the transform of one [surface.Surface]. It listens for
// drag and wheel events, clamps interactive zoom to [Options.MinZoom] and
// [Options.MaxZoom], and keeps the content overlapping a padded inner box of
// the surface so it cannot be flung out of sight.
//
// # Programmatic Control
//
// [Controller.Fit], [Controller.Restore], [Controller.ZoomAbs] and
// [Controller.MoveTo] set the transform directly and are not clamped. A view
// uses Fit on first mount and Restore after a data update, and a restored
// transform must come back exactly as it was saved.
//
// # Smooth Zoom
//
// [Controller.SmoothZoomAt] steps the scale through [Options.SmoothFrames]
// eased frames. Frames are driven by an [Animator]; the default [Immediate]
// runs them synchronously, so the call returns with the final transform in
// place.
//
// [surface.Surface]: github.com/matzehuels/flowgraph/pkg/surface
package viewport
