package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	fio "github.com/matzehuels/flowgraph/pkg/io"
	"github.com/matzehuels/flowgraph/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file (single format) or base path (multiple)
	formats  []string // svg, json, dot, graphviz, png, pdf
	theme    string   // light or dark
	basePath string   // navigation prefix baked into node links
	cycles   string   // break or reject
	detailed bool     // rank and id in Graphviz labels
	scale    float64  // PNG scale factor
	noCache  bool
	refresh  bool
}

// extensions maps formats to output file extensions.
var extensions = map[string]string{
	pipeline.FormatSVG:      ".svg",
	pipeline.FormatJSON:     ".json",
	pipeline.FormatDOT:      ".dot",
	pipeline.FormatGraphviz: ".gv.svg",
	pipeline.FormatPNG:      ".png",
	pipeline.FormatPDF:      ".pdf",
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a workflow graph to SVG, Graphviz, PNG or PDF",
		Long: `Render a workflow graph payload (JSON or YAML, "-" for stdin) to one or
more formats. Layouts and artifacts are cached; use --refresh to recompute.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			c.applyConfig(cmd, &opts)
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, dot, graphviz, png, pdf (comma-separated)")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "color theme: light (default), dark")
	cmd.Flags().StringVar(&opts.basePath, "base-path", "", "link nodes to <base-path>/<id>")
	cmd.Flags().StringVar(&opts.cycles, "cycles", "", "cyclic dependencies: break (default), reject")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show rank and id in Graphviz output")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")

	return cmd
}

// applyConfig fills flags the user did not set from the config file.
func (c *CLI) applyConfig(cmd *cobra.Command, opts *renderOpts) {
	if !cmd.Flags().Changed("theme") {
		opts.theme = c.config.Theme
	}
	if !cmd.Flags().Changed("base-path") {
		opts.basePath = c.config.BasePath
	}
	if !cmd.Flags().Changed("cycles") {
		opts.cycles = c.config.Cycles
	}
}

func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	payload, err := readInput(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	result, err := runner.Execute(ctx, payload, pipeline.Options{
		PayloadFormat: string(fio.DetectFormat(input)),
		Source:        input,
		Cycles:        opts.cycles,
		Formats:       opts.formats,
		Theme:         opts.theme,
		BasePath:      opts.basePath,
		Detailed:      opts.detailed,
		Scale:         opts.scale,
		Refresh:       opts.refresh,
		Logger:        c.Logger,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d artifact(s)", len(result.Artifacts)))

	paths := outputPaths(opts.output, input, opts.formats)
	printSuccess(c.Out, "Rendered %s", input)
	printStats(c.Out, result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.RenderHit)
	for _, format := range opts.formats {
		if err := writeOutput(paths[format], result.Artifacts[format]); err != nil {
			return err
		}
		printFile(c.Out, paths[format])
	}
	return nil
}

// outputPaths decides where each format is written. A single format goes to
// output as given; several formats share output (minus any known extension)
// as a base. Without output the input name is the base, and stdin writes
// "graph.<ext>".
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if output != "" && len(formats) == 1 {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + extensions[f]
	}
	return paths
}

// basePath strips a known extension from output, or derives the base from
// input when output is empty.
func basePath(output, input string) string {
	if output == "" {
		if input == "-" {
			return "graph"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	for _, ext := range []string{".gv.svg", ".svg", ".json", ".dot", ".png", ".pdf"} {
		if strings.HasSuffix(output, ext) {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}

func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
