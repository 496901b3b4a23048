// Package dag provides a directed graph organized in ranks, the data
// structure behind flowgraph's layered left-to-right layout.
//
// # Overview
//
// A workflow is drawn as columns of jobs: every job sits in a rank (column),
// and after normalization every edge runs from one rank to the next. This
// package stores nodes with their rank, keeps adjacency lists in both
// directions, and answers the questions the layout stages ask: who are the
// children of a node, which nodes share a rank, how many edges cross between
// two ranks.
//
// # Basic Usage
//
// Create a graph with [New], add nodes with [DAG.AddNode] and edges with
// [DAG.AddEdge]:
//
//	g := dag.New()
//	g.AddNode(dag.Node{ID: "build", Rank: 0})
//	g.AddNode(dag.Node{ID: "test", Rank: 1})
//	g.AddEdge(dag.Edge{From: "build", To: "test"})
//
// Use [DAG.Validate] once ranks are assigned and long edges are subdivided to
// check that every edge spans exactly one rank and that no cycle remains.
//
// # Determinism
//
// All node listings follow insertion order, never map iteration order. Given
// the same payload, every transform and the layout built on them produce the
// same result.
//
// # Node Kinds
//
//   - [NodeKindRegular]: a job from the payload
//   - [NodeKindVirtual]: a waypoint splitting an edge that spans several ranks
//
// Virtual nodes carry their [Node.Origin] edge so the layout can turn a chain
// of waypoints back into a single routed polyline.
//
// # Edge Crossings
//
// [CountCrossings] and [CountLayerCrossings] count inversions with a Fenwick
// tree. The ordering heuristics in the layout package use them to pick the
// better of two candidate orderings.
//
// # Concurrency
//
// DAG instances are not safe for concurrent use.
//
// The [transform] subpackage holds the graph transformations: cycle breaking,
// rank assignment and edge subdivision.
//
// [transform]: github.com/matzehuels/flowgraph/pkg/dag/transform
package dag
