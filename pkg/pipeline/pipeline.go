// Package pipeline renders workflow payloads to files and API responses.
//
// The static pipeline is the non-interactive sibling of the view package:
//
//  1. Parse: decode and validate a JSON or YAML payload
//  2. Layout: position nodes and route edges with the layout engine
//  3. Render: build the scene and materialize the requested formats
//
// Both the CLI and the HTTP service run it through a [Runner], which caches
// layouts and artifacts by content hash.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, payload, pipeline.Options{
//	    Formats: []string{pipeline.FormatSVG, pipeline.FormatDOT},
//	    Theme:   "dark",
//	})
//	svg := result.Artifacts[pipeline.FormatSVG]
//
// Each stage can also run on its own with [Runner.Parse], [Runner.Layout] and
// [Runner.Render].
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowgraph/pkg/cache"
	"github.com/matzehuels/flowgraph/pkg/errors"
	fio "github.com/matzehuels/flowgraph/pkg/io"
	"github.com/matzehuels/flowgraph/pkg/layout"
	"github.com/matzehuels/flowgraph/pkg/theme"
)

// Output formats.
const (
	FormatSVG      = "svg"      // scene as standalone SVG
	FormatJSON     = "json"     // scene description
	FormatDOT      = "dot"      // Graphviz source
	FormatGraphviz = "graphviz" // SVG drawn by Graphviz
	FormatPNG      = "png"
	FormatPDF      = "pdf"
)

// ValidFormats lists the supported output formats in display order.
var ValidFormats = []string{FormatSVG, FormatJSON, FormatDOT, FormatGraphviz, FormatPNG, FormatPDF}

// DefaultScale is the PNG scale factor.
const DefaultScale = 2.0

// Options configures a pipeline run. It doubles as the JSON body options of
// the HTTP API.
type Options struct {
	// Parse options
	PayloadFormat string `json:"payload_format,omitempty"` // json (default) or yaml
	Source        string `json:"-"`                        // label for logs and metrics

	// Layout options
	Cycles string `json:"cycles,omitempty"` // break (default) or reject

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Theme    string   `json:"theme,omitempty"` // light (default) or dark
	BasePath string   `json:"base_path,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // rank and id in DOT labels
	Scale    float64  `json:"scale,omitempty"`

	// Refresh skips cache reads. Results are still written.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`
}

// Result holds the outputs of a pipeline run.
type Result struct {
	Layout      layout.Graph
	PayloadHash string
	Artifacts   map[string][]byte
	Stats       Stats
	CacheInfo   CacheInfo
}

// Stats holds stage timings.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	ParseTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo records which stages were served from the cache.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool // all requested artifacts came from the cache
}

// ValidateFormat checks that format is supported. Formats are lowercase.
func ValidateFormat(format string) error {
	if !slices.Contains(ValidFormats, format) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format %q (must be one of: %s)",
			format, strings.Join(ValidFormats, ", "))
	}
	return nil
}

// ValidateFormats checks every format.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks options and fills defaults. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.PayloadFormat == "" {
		o.PayloadFormat = string(fio.FormatJSON)
	}
	if _, err := fio.ParseFormat(o.PayloadFormat); err != nil {
		return err
	}
	if _, err := layout.ParseCyclePolicy(o.Cycles); err != nil {
		return err
	}
	if o.Cycles == "" {
		o.Cycles = layout.CycleBreak.String()
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if _, err := theme.Parse(o.Theme); err != nil {
		return err
	}
	if o.Theme == "" {
		o.Theme = "light"
	}
	if err := errors.ValidateBasePath(o.BasePath); err != nil {
		return err
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %g", o.Scale)
	}
	if o.Source == "" {
		o.Source = "payload"
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return nil
}

// LayoutOptions converts the options for the layout engine.
func (o *Options) LayoutOptions() []layout.Option {
	policy, _ := layout.ParseCyclePolicy(o.Cycles)
	return []layout.Option{layout.WithCyclePolicy(policy), layout.WithLogger(o.Logger)}
}

// LayoutKeyOpts returns the cache key inputs of the layout stage.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Cycles:      o.Cycles,
		NodeWidth:   layout.DefaultNodeWidth,
		NodeHeight:  layout.DefaultNodeHeight,
		NodeSpacing: layout.DefaultNodeSpacing,
		RankSpacing: layout.DefaultRankSpacing,
	}
}

// ArtifactKeyOpts returns the cache key inputs of one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format, Theme: o.Theme, BasePath: o.BasePath}
	switch format {
	case FormatDOT, FormatGraphviz:
		k.Detailed = o.Detailed
	case FormatPNG:
		k.Scale = o.Scale
	}
	return k
}

// Palette returns the palette selected by Theme.
func (o *Options) Palette() theme.Palette {
	dark, _ := theme.Parse(o.Theme)
	return theme.Select(dark)
}
