package layout_test

import (
	"fmt"

	"github.com/matzehuels/flowgraph/pkg/layout"
	"github.com/matzehuels/flowgraph/pkg/workflow"
)

func ExampleCompute() {
	nodes := []workflow.Node{
		{ID: "a", Name: "build", State: workflow.StateCompleted},
		{ID: "b", Name: "test", State: workflow.StateExecuting, Deps: []string{"build"}},
		{ID: "c", Name: "deploy", State: workflow.StateScheduled, Deps: []string{"test", "approve"}},
	}

	g, err := layout.Compute(nodes)
	if err != nil {
		panic(err)
	}
	for _, n := range g.Nodes {
		fmt.Printf("%s rank=%d center=(%g,%g)\n", n.Name, n.Rank, n.X, n.Y)
	}
	fmt.Println("edges:", len(g.Edges))
	fmt.Printf("size: %gx%g\n", g.Width, g.Height)
	// Output:
	// build rank=0 center=(120,64)
	// test rank=1 center=(340,64)
	// deploy rank=2 center=(560,64)
	// edges: 2
	// size: 680x128
}
