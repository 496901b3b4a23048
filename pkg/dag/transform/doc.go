// Package transform provides the graph transformations that turn a workflow
// dependency graph into a properly layered DAG.
//
// # Overview
//
// Layered drawing needs a graph where every edge runs from one rank to the
// next. Workflow payloads give no such guarantee: dependencies may skip
// ranks, and a malformed payload may even contain cycles. The transforms here
// are applied in order:
//
//	reversed := transform.BreakCycles(g) // make g acyclic
//	transform.AssignLayers(g)            // longest-path ranks
//	chains := transform.Subdivide(g)     // one-rank hops via virtual nodes
//
// # Cycle Breaking
//
// [BreakCycles] reverses DFS back edges instead of deleting them. Each
// reversed edge is flagged so its route can be flipped back after layout and
// the arrowhead still points at the dependent job. Self-loops are dropped.
//
// # Layer Assignment
//
// [AssignLayers] computes ranks with Kahn's algorithm. Every job is placed
// one rank right of its deepest prerequisite.
//
// # Edge Subdivision
//
// [Subdivide] breaks long edges into chains of virtual nodes, one per skipped
// rank, and reports the [Chain] each original edge became.
package transform
