package transform

import "github.com/matzehuels/flowgraph/pkg/dag"

// BreakCycles makes g acyclic by reversing every DFS back edge, and returns
// the edges it changed in their original orientation.
//
// Unlike dropping back edges, reversal keeps every dependency visible: the
// reversed edge carries [dag.Edge.Reversed] so the layout can route it in its
// payload direction. Self-loops cannot be reversed and are removed.
//
// The search starts from sources, then from any node left unvisited, both in
// insertion order, so the choice of edges to reverse is deterministic.
func BreakCycles(g *dag.DAG) []dag.Edge {
	const (
		white = iota
		gray
		black
	)

	var changed []dag.Edge
	for _, e := range g.Edges() {
		if e.From == e.To {
			g.RemoveEdge(e.From, e.To)
			changed = append(changed, e)
		}
	}

	color := make(map[string]int, g.NodeCount())
	var backEdges []dag.Edge

	var dfs func(node string)
	dfs = func(node string) {
		color[node] = gray
		for _, child := range g.Children(node) {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				backEdges = append(backEdges, dag.Edge{From: node, To: child})
			}
		}
		color[node] = black
	}

	for _, n := range g.Sources() {
		if color[n.ID] == white {
			dfs(n.ID)
		}
	}
	for _, n := range g.Nodes() {
		if color[n.ID] == white {
			dfs(n.ID)
		}
	}

	for _, e := range backEdges {
		if g.ReverseEdge(e.From, e.To) {
			changed = append(changed, e)
		}
	}
	return changed
}
