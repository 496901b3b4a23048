package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	fio "github.com/matzehuels/flowgraph/pkg/io"
	"github.com/matzehuels/flowgraph/pkg/pipeline"
)

// layoutCommand creates the layout command, which prints node positions and
// edge routes without rendering.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		asJSON  bool
		cycles  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "layout [file]",
		Short: "Compute and print a graph layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("cycles") {
				cycles = c.config.Cycles
			}
			return c.runLayout(cmd.Context(), args[0], cycles, asJSON, noCache)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the layout as JSON")
	cmd.Flags().StringVar(&cycles, "cycles", "", "cyclic dependencies: break (default), reject")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, input, cycles string, asJSON, noCache bool) error {
	payload, err := readInput(input)
	if err != nil {
		return err
	}
	opts := pipeline.Options{
		PayloadFormat: string(fio.DetectFormat(input)),
		Source:        input,
		Cycles:        cycles,
		Logger:        c.Logger,
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	nodes, err := pipeline.Parse(ctx, payload, opts)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	g, cached, err := runner.LayoutWithCacheInfo(ctx, nodes, opts)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(c.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(g)
	}

	printKeyValue(c.Out, "size", fmt.Sprintf("%g × %g", g.Width, g.Height))
	printStats(c.Out, len(g.Nodes), len(g.Edges), cached)
	for _, n := range g.Nodes {
		printDetail(c.Out, "%-20s rank %d  order %d  (%g, %g)", n.Name, n.Rank, n.Order, n.X, n.Y)
	}
	for _, e := range g.Edges {
		note := ""
		if e.Reversed {
			note = "  reversed"
		}
		printDetail(c.Out, "%s %s %s  %d points%s", e.From, iconArrow, e.To, len(e.Points), note)
	}
	return nil
}
