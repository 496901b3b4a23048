package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowgraph/pkg/cache"
	"github.com/matzehuels/flowgraph/pkg/layout"
	"github.com/matzehuels/flowgraph/pkg/observability"
	"github.com/matzehuels/flowgraph/pkg/workflow"
)

// Runner executes the pipeline with caching.
// Both CLI and API use it so the caching rules live in one place.
//
// The Runner keeps no per-run state. Multiple goroutines can use the same
// Runner with different options as long as the cache is safe for concurrent
// use.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// A nil keyer means DefaultKeyer, a nil cache means NullCache.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs parse → layout → render.
func (r *Runner) Execute(ctx context.Context, payload []byte, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	result := &Result{}

	parseStart := time.Now()
	nodes, err := Parse(ctx, payload, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.NodeCount = len(nodes)
	result.PayloadHash = PayloadHash(nodes)

	r.Logger.Debug("parsed payload", "source", opts.Source, "nodes", len(nodes), "duration", result.Stats.ParseTime)

	layoutStart := time.Now()
	g, layoutHit, err := r.LayoutWithCacheInfo(ctx, nodes, opts)
	if err != nil {
		return nil, err
	}
	result.Layout = g
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.EdgeCount = len(g.Edges)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Debug("computed layout", "nodes", len(g.Nodes), "edges", len(g.Edges), "cached", layoutHit, "duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Debug("rendered outputs", "formats", opts.Formats, "cached", renderHit, "duration", result.Stats.RenderTime)

	return result, nil
}

// Layout computes a layout with caching.
func (r *Runner) Layout(ctx context.Context, nodes []workflow.Node, opts Options) (layout.Graph, error) {
	g, _, err := r.LayoutWithCacheInfo(ctx, nodes, opts)
	return g, err
}

// LayoutWithCacheInfo computes a layout with caching and reports whether it
// came from the cache. Layouts are keyed by the decoded nodes, so the same
// graph sent as JSON or YAML shares one entry.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, nodes []workflow.Node, opts Options) (layout.Graph, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return layout.Graph{}, false, err
	}
	key := r.Keyer.LayoutKey(PayloadHash(nodes), opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, ok := r.get(ctx, key, "layout"); ok {
			var g layout.Graph
			if err := json.Unmarshal(data, &g); err == nil {
				return g, true, nil
			}
			r.Logger.Warn("discarding unreadable cached layout", "key", key)
		}
	}

	g, err := ComputeLayout(ctx, nodes, opts)
	if err != nil {
		return layout.Graph{}, false, err
	}
	if data, err := json.Marshal(g); err == nil {
		r.set(ctx, key, "layout", data, cache.TTLLayout)
	}
	return g, false, nil
}

// Render renders g with caching.
func (r *Runner) Render(ctx context.Context, g layout.Graph, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, g, opts)
	return artifacts, err
}

// RenderWithCacheInfo renders every requested format, reusing cached
// artifacts. The boolean is true only if no format had to be rendered.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g layout.Graph, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	data, err := json.Marshal(g)
	if err != nil {
		return nil, false, fmt.Errorf("encode layout: %w", err)
	}
	layoutHash := cache.Hash(data)

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	keys := make(map[string]string, len(opts.Formats))
	for _, format := range opts.Formats {
		keys[format] = r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if !opts.Refresh {
			if cached, ok := r.get(ctx, keys[format], "artifact"); ok {
				artifacts[format] = cached
				continue
			}
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	sub := opts
	sub.Formats = missing
	rendered, err := Render(ctx, g, sub)
	if err != nil {
		return nil, false, err
	}
	for format, out := range rendered {
		artifacts[format] = out
		r.set(ctx, keys[format], "artifact", out, cache.TTLArtifact)
	}
	return artifacts, false, nil
}

// Close releases the cache.
func (r *Runner) Close() error { return r.Cache.Close() }

// PayloadHash hashes the canonical JSON encoding of nodes. A missing deps
// list and an empty one hash the same.
func PayloadHash(nodes []workflow.Node) string {
	canonical := make([]workflow.Node, len(nodes))
	for i, n := range nodes {
		if n.Deps == nil {
			n.Deps = []string{}
		}
		canonical[i] = n
	}
	data, _ := json.Marshal(canonical)
	return cache.Hash(data)
}

// get reads key and reports hooks. Backend errors count as misses.
func (r *Runner) get(ctx context.Context, key, keyType string) ([]byte, bool) {
	hooks := observability.Cache()
	data, ok, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "err", err)
	}
	if err != nil || !ok {
		hooks.OnCacheMiss(ctx, keyType)
		return nil, false
	}
	hooks.OnCacheHit(ctx, keyType)
	return data, true
}

// set writes key. Write failures are logged and otherwise ignored.
func (r *Runner) set(ctx context.Context, key, keyType string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}
