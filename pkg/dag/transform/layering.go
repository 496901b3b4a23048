package transform

import "github.com/matzehuels/flowgraph/pkg/dag"

// AssignLayers assigns every node its rank: the length of the longest path
// reaching it from a source. Sources get rank 0 and every edge ends at least
// one rank after it starts.
//
// The traversal is Kahn's topological sort. Each node is pushed to one past
// the deepest of its parents, so a job always appears to the right of every
// job it depends on.
//
// AssignLayers assumes g is acyclic. Nodes on a cycle never reach zero
// in-degree and stay at rank 0; run [BreakCycles] first.
//
// Time complexity is O(V + E).
func AssignLayers(g *dag.DAG) {
	nodes := g.Nodes()
	inDegree := make(map[string]int, len(nodes))
	ranks := make(map[string]int, len(nodes))
	queue := make([]string, 0, len(nodes))

	for _, n := range nodes {
		degree := g.InDegree(n.ID)
		inDegree[n.ID] = degree
		ranks[n.ID] = 0
		if degree == 0 {
			queue = append(queue, n.ID)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, child := range g.Children(curr) {
			if r := ranks[curr] + 1; r > ranks[child] {
				ranks[child] = r
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	g.SetRanks(ranks)
}
