package layout

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowgraph/pkg/errors"
)

// Default geometry. Every node box has the same size; spacing and margin are
// in scene units.
const (
	DefaultNodeWidth   = 160.0
	DefaultNodeHeight  = 48.0
	DefaultNodeSpacing = 24.0
	DefaultRankSpacing = 60.0
	DefaultMargin      = 40.0
	DefaultPasses      = 24
)

// CyclePolicy decides what Compute does with a payload whose dependencies
// form a cycle.
type CyclePolicy int

const (
	// CycleBreak reverses DFS back edges before ranking and routes them in
	// their original direction afterwards. Self-dependencies are dropped.
	CycleBreak CyclePolicy = iota
	// CycleReject fails with a CYCLIC_GRAPH error naming the cycle.
	CycleReject
)

// String returns the policy name used in flags and config files.
func (p CyclePolicy) String() string {
	if p == CycleReject {
		return "reject"
	}
	return "break"
}

// ParseCyclePolicy parses "break" or "reject".
func ParseCyclePolicy(s string) (CyclePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "break":
		return CycleBreak, nil
	case "reject":
		return CycleReject, nil
	default:
		return CycleBreak, errors.New(errors.ErrCodeInvalidInput, "unknown cycle policy %q (want break or reject)", s)
	}
}

// Options configures Compute.
type Options struct {
	NodeWidth   float64
	NodeHeight  float64
	NodeSpacing float64 // gap between neighbouring nodes of one rank
	RankSpacing float64 // gap between consecutive ranks
	Margin      float64 // blank border around the content
	Cycles      CyclePolicy
	Orderer     Orderer
	Logger      *log.Logger
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the standard left-to-right geometry.
func DefaultOptions() Options {
	return Options{
		NodeWidth:   DefaultNodeWidth,
		NodeHeight:  DefaultNodeHeight,
		NodeSpacing: DefaultNodeSpacing,
		RankSpacing: DefaultRankSpacing,
		Margin:      DefaultMargin,
		Cycles:      CycleBreak,
		Orderer:     Barycentric{Passes: DefaultPasses},
	}
}

// WithNodeSize sets the box size shared by all nodes.
func WithNodeSize(w, h float64) Option {
	return func(o *Options) { o.NodeWidth, o.NodeHeight = w, h }
}

// WithNodeSpacing sets the gap between nodes of the same rank.
func WithNodeSpacing(s float64) Option {
	return func(o *Options) { o.NodeSpacing = s }
}

// WithRankSpacing sets the gap between ranks.
func WithRankSpacing(s float64) Option {
	return func(o *Options) { o.RankSpacing = s }
}

// WithMargin sets the outer margin.
func WithMargin(m float64) Option {
	return func(o *Options) { o.Margin = m }
}

// WithCyclePolicy selects how cyclic payloads are handled.
func WithCyclePolicy(p CyclePolicy) Option {
	return func(o *Options) { o.Cycles = p }
}

// WithOrderer replaces the in-rank ordering heuristic.
func WithOrderer(ord Orderer) Option {
	return func(o *Options) { o.Orderer = ord }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

func (o *Options) validate() error {
	if o.NodeWidth <= 0 || o.NodeHeight <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "node size must be positive, got %gx%g", o.NodeWidth, o.NodeHeight)
	}
	if o.NodeSpacing < 0 || o.RankSpacing < 0 || o.Margin < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "spacing and margin must not be negative")
	}
	if o.Orderer == nil {
		o.Orderer = Barycentric{Passes: DefaultPasses}
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return nil
}
