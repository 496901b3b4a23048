package dag_test

import (
	"fmt"

	"github.com/matzehuels/flowgraph/pkg/dag"
)

func ExampleDAG_basic() {
	// extract → transform → load
	g := dag.New()
	_ = g.AddNode(dag.Node{ID: "extract", Rank: 0})
	_ = g.AddNode(dag.Node{ID: "transform", Rank: 1})
	_ = g.AddNode(dag.Node{ID: "load", Rank: 2})
	_ = g.AddEdge(dag.Edge{From: "extract", To: "transform"})
	_ = g.AddEdge(dag.Edge{From: "transform", To: "load"})

	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Edges:", g.EdgeCount())
	fmt.Println("Ranks:", g.RankCount())
	// Output:
	// Nodes: 3
	// Edges: 2
	// Ranks: 3
}

func ExampleDAG_traversal() {
	g := dag.New()
	_ = g.AddNode(dag.Node{ID: "build", Rank: 0})
	_ = g.AddNode(dag.Node{ID: "lint", Rank: 1})
	_ = g.AddNode(dag.Node{ID: "test", Rank: 1})
	_ = g.AddEdge(dag.Edge{From: "build", To: "lint"})
	_ = g.AddEdge(dag.Edge{From: "build", To: "test"})

	fmt.Println("Children of build:", g.Children("build"))
	fmt.Println("Parents of test:", g.Parents("test"))
	fmt.Println("Rank 1:", dag.NodeIDs(g.NodesInRank(1)))
	// Output:
	// Children of build: [lint test]
	// Parents of test: [build]
	// Rank 1: [lint test]
}

func ExampleDAG_FindCycle() {
	g := dag.New()
	for _, id := range []string{"a", "b", "c"} {
		_ = g.AddNode(dag.Node{ID: id})
	}
	_ = g.AddEdge(dag.Edge{From: "a", To: "b"})
	_ = g.AddEdge(dag.Edge{From: "b", To: "c"})
	_ = g.AddEdge(dag.Edge{From: "c", To: "a"})

	fmt.Println(g.FindCycle())
	// Output:
	// [a b c a]
}

func ExampleCountLayerCrossings() {
	g := dag.New()
	_ = g.AddNode(dag.Node{ID: "a", Rank: 0})
	_ = g.AddNode(dag.Node{ID: "b", Rank: 0})
	_ = g.AddNode(dag.Node{ID: "x", Rank: 1})
	_ = g.AddNode(dag.Node{ID: "y", Rank: 1})
	_ = g.AddEdge(dag.Edge{From: "a", To: "y"})
	_ = g.AddEdge(dag.Edge{From: "b", To: "x"})

	fmt.Println(dag.CountLayerCrossings(g, []string{"a", "b"}, []string{"x", "y"}))
	fmt.Println(dag.CountLayerCrossings(g, []string{"a", "b"}, []string{"y", "x"}))
	// Output:
	// 1
	// 0
}
