// Package surface defines the drawing area a view renders into.
//
// A [Surface] is a resizable rectangle owned by the host. The view places one
// [Content] on it per render pass, the viewport controller sets the
// transform, and input arrives as [Event] values dispatched to listeners
// registered with [Surface.Listen].
//
// # Dispatch Order
//
// Listeners run most-recently-registered first. The first handler that
// returns true consumes the event and later handlers never see it. A view
// registers its hit-testing listener after the viewport's pan/zoom listener,
// so a click on a node is consumed before it can start a pan.
//
// # Memory Surface
//
// [Memory] keeps everything in memory and materializes it as SVG on demand.
// Tests, the terminal host and the HTTP preview use it.
package surface
