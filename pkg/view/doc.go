// Package view coordinates the lifecycle of an interactive workflow graph.
//
// A [View] binds one surface to a sequence of render passes:
//
//	unmounted → mounted (empty | graph) → destroyed
//
// [View.Mount] runs the first pass and auto-fits the graph. [View.Update]
// captures the current viewport transform, tears the previous scene down and
// restores the transform on the rebuilt one, so the user's viewpoint does not
// jump when the data changes. [View.Destroy] disposes the viewport and leaves
// the surface empty.
//
// # Atomic Passes
//
// Layout and scene construction run before anything on the surface is
// touched. If either fails the previous scene, viewport and transform stay
// as they were and the error is returned once. Nothing retries it.
//
// # Input
//
// Each pass registers one hit-testing listener after the viewport's pan/zoom
// listener. Clicks on the zoom buttons zoom, clicks on a node produce a
// navigation intent for the [Navigator], and everything else falls through to
// the viewport.
package view
