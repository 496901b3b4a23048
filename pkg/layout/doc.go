// Package layout positions a workflow graph for drawing.
//
// [Compute] takes the payload nodes and returns a [Graph]: a center and a
// fixed-size box per node, a polyline per dependency edge, and the bounding
// size. Layout direction is always left to right: prerequisites sit in
// columns left of their dependents.
//
// # Pipeline
//
// Compute runs a Sugiyama-style layered layout on a [dag.DAG]:
//
//  1. Cycle policy: [CycleBreak] reverses back edges, [CycleReject] fails
//  2. Ranking: longest path from sources ([transform.AssignLayers])
//  3. Subdivision: virtual nodes for edges spanning several ranks
//  4. Ordering: an [Orderer], by default [Barycentric]
//  5. Coordinates: rank → x, order → y with median alignment
//  6. Routing: box side, virtual centers, box side
//
// Every step iterates in payload order, so identical payloads produce
// identical graphs. A data refresh that keeps the node list stable therefore
// leaves every box where it was.
//
// [dag.DAG]: github.com/matzehuels/flowgraph/pkg/dag
// [transform.AssignLayers]: github.com/matzehuels/flowgraph/pkg/dag/transform
package layout
