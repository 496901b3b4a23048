package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/flowgraph/pkg/layout"
	"github.com/matzehuels/flowgraph/pkg/observability"
	"github.com/matzehuels/flowgraph/pkg/workflow"
)

// ComputeLayout positions nodes with the options' cycle policy.
func ComputeLayout(ctx context.Context, nodes []workflow.Node, opts Options) (g layout.Graph, err error) {
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(nodes))
	start := time.Now()
	defer func() { hooks.OnLayoutComplete(ctx, len(g.Nodes), len(g.Edges), time.Since(start), err) }()

	return layout.Compute(nodes, opts.LayoutOptions()...)
}
