// Package scene builds the drawable description of a workflow graph.
//
// [Build] combines a [layout.Graph] with a [theme.Palette] and produces a
// [Scene]: one rounded [Box] per node with its truncated name and lowercase
// state, one arrow-tipped [Path] per edge, and the shared arrowhead
// [Marker]. The scene is a plain value. Every render pass builds a new one
// and materializers draw it from scratch; nothing is patched in place.
//
// Boxes are hit targets. [Scene.NodeAt] finds the box under a scene point and
// [Scene.Intent] turns it into the navigation [Intent] handed to the host
// router.
//
// The zoom buttons are not part of the scene's coordinate space. They are
// positioned per surface size by [Scene.Controls].
//
// [layout.Graph]: github.com/matzehuels/flowgraph/pkg/layout
// [theme.Palette]: github.com/matzehuels/flowgraph/pkg/theme
package scene
