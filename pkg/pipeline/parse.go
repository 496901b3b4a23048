package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/flowgraph/pkg/errors"
	fio "github.com/matzehuels/flowgraph/pkg/io"
	"github.com/matzehuels/flowgraph/pkg/observability"
	"github.com/matzehuels/flowgraph/pkg/workflow"
)

// Parse decodes and validates a payload. Unlike the interactive view, the
// static pipeline has nothing to show for an empty graph and reports it as an
// INVALID_PAYLOAD error.
func Parse(ctx context.Context, payload []byte, opts Options) (nodes []workflow.Node, err error) {
	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, opts.Source)
	start := time.Now()
	defer func() { hooks.OnParseComplete(ctx, opts.Source, len(nodes), time.Since(start), err) }()

	format, err := fio.ParseFormat(opts.PayloadFormat)
	if err != nil {
		return nil, err
	}
	nodes, err = fio.Decode(payload, format)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidPayload, "graph payload is empty")
	}
	return nodes, nil
}
