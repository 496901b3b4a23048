package pipeline

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowgraph/pkg/cache"
	"github.com/matzehuels/flowgraph/pkg/errors"
	"github.com/matzehuels/flowgraph/pkg/render"
)

const buildTest = `[
  {"id": "a", "name": "build", "state": "completed", "deps": []},
  {"id": "b", "name": "test", "state": "executing", "deps": ["build"]}
]`

const buildTestYAML = `
- id: a
  name: build
  state: completed
- id: b
  name: test
  state: executing
  deps: [build]
`

const cyclic = `[
  {"id": "a", "name": "a", "state": "completed", "deps": ["b"]},
  {"id": "b", "name": "b", "state": "completed", "deps": ["a"]}
]`

func newRunner(t *testing.T, c cache.Cache) *Runner {
	t.Helper()
	return NewRunner(c, nil, log.New(io.Discard))
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"json", false},
		{"dot", false},
		{"graphviz", false},
		{"png", false},
		{"pdf", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "dot"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.PayloadFormat != "json" || opts.Cycles != "break" || opts.Theme != "light" {
		t.Errorf("defaults = %q %q %q", opts.PayloadFormat, opts.Cycles, opts.Theme)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Scale != DefaultScale || opts.Logger == nil {
		t.Errorf("Scale = %g, Logger = %v", opts.Scale, opts.Logger)
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second call: %v", err)
	}

	bad := []Options{
		{PayloadFormat: "toml"},
		{Cycles: "ignore"},
		{Formats: []string{"gif"}},
		{Theme: "solarized"},
		{BasePath: "runs/42"},
		{Scale: -1},
	}
	for _, o := range bad {
		if err := o.ValidateAndSetDefaults(); err == nil {
			t.Errorf("%+v: expected error", o)
		}
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Theme: "dark", BasePath: "/runs/1", Detailed: true, Scale: 3}
	if k := opts.ArtifactKeyOpts(FormatSVG); k.Detailed || k.Scale != 0 {
		t.Errorf("svg key opts = %+v, want detail and scale ignored", k)
	}
	if k := opts.ArtifactKeyOpts(FormatDOT); !k.Detailed {
		t.Errorf("dot key opts = %+v, want Detailed", k)
	}
	if k := opts.ArtifactKeyOpts(FormatPNG); k.Scale != 3 {
		t.Errorf("png key opts = %+v, want Scale 3", k)
	}
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := newRunner(t, fc)
	defer r.Close()

	opts := Options{Formats: []string{FormatSVG, FormatJSON, FormatDOT}}
	first, err := r.Execute(ctx, []byte(buildTest), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.Stats.NodeCount != 2 || first.Stats.EdgeCount != 1 {
		t.Errorf("Stats = %+v", first.Stats)
	}
	if first.Layout.Width != 460 || first.Layout.Height != 128 {
		t.Errorf("layout size = %gx%g, want 460x128", first.Layout.Width, first.Layout.Height)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run CacheInfo = %+v, want misses", first.CacheInfo)
	}
	if len(first.PayloadHash) != 64 {
		t.Errorf("PayloadHash = %q", first.PayloadHash)
	}

	svg := first.Artifacts[FormatSVG]
	if !bytes.HasPrefix(svg, []byte("<svg")) {
		t.Errorf("svg artifact starts with %q", svg[:min(len(svg), 20)])
	}
	if !strings.Contains(string(first.Artifacts[FormatDOT]), `"build" -> "test";`) {
		t.Errorf("dot artifact missing edge:\n%s", first.Artifacts[FormatDOT])
	}
	if !bytes.Contains(first.Artifacts[FormatJSON], []byte(`"build"`)) {
		t.Errorf("json artifact missing node: %s", first.Artifacts[FormatJSON])
	}

	second, err := r.Execute(ctx, []byte(buildTest), opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run CacheInfo = %+v, want hits", second.CacheInfo)
	}
	for _, f := range opts.Formats {
		if !bytes.Equal(first.Artifacts[f], second.Artifacts[f]) {
			t.Errorf("%s artifact differs between runs", f)
		}
	}
	if second.Layout.String() != first.Layout.String() {
		t.Errorf("cached layout differs:\n%s\nvs\n%s", second.Layout, first.Layout)
	}

	opts.Refresh = true
	third, err := r.Execute(ctx, []byte(buildTest), opts)
	if err != nil {
		t.Fatalf("refresh Execute: %v", err)
	}
	if third.CacheInfo.LayoutHit || third.CacheInfo.RenderHit {
		t.Errorf("refresh CacheInfo = %+v, want misses", third.CacheInfo)
	}
}

func TestExecuteYAMLSharesLayout(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := newRunner(t, fc)

	fromJSON, err := r.Execute(ctx, []byte(buildTest), Options{})
	if err != nil {
		t.Fatal(err)
	}
	fromYAML, err := r.Execute(ctx, []byte(buildTestYAML), Options{PayloadFormat: "yaml"})
	if err != nil {
		t.Fatal(err)
	}
	if fromJSON.PayloadHash != fromYAML.PayloadHash {
		t.Errorf("hashes differ: %s vs %s", fromJSON.PayloadHash, fromYAML.PayloadHash)
	}
	if !fromYAML.CacheInfo.LayoutHit {
		t.Error("YAML payload should reuse the JSON layout")
	}
}

func TestExecutePartialRenderHit(t *testing.T) {
	ctx := context.Background()
	c := &countingCache{Cache: mustFileCache(t)}
	r := newRunner(t, c)

	if _, err := r.Execute(ctx, []byte(buildTest), Options{Formats: []string{FormatSVG}}); err != nil {
		t.Fatal(err)
	}
	c.sets = 0
	res, err := r.Execute(ctx, []byte(buildTest), Options{Formats: []string{FormatSVG, FormatDOT}})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.RenderHit {
		t.Error("RenderHit should be false when one format was rendered")
	}
	if c.sets != 1 {
		t.Errorf("cache writes = %d, want 1 (dot only)", c.sets)
	}
	if len(res.Artifacts) != 2 {
		t.Errorf("artifacts = %d, want 2", len(res.Artifacts))
	}
}

func TestExecuteErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		opts    Options
		want    errors.Code
	}{
		{"empty payload", "", Options{}, errors.ErrCodeInvalidPayload},
		{"empty array", "[]", Options{}, errors.ErrCodeInvalidPayload},
		{"malformed", "{", Options{}, errors.ErrCodeInvalidPayload},
		{"duplicate name", `[{"id":"a","name":"x"},{"id":"b","name":"x"}]`, Options{}, errors.ErrCodeInvalidPayload},
		{"cycle rejected", cyclic, Options{Cycles: "reject"}, errors.ErrCodeCyclicGraph},
		{"bad format", buildTest, Options{Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRunner(t, nil)
			_, err := r.Execute(context.Background(), []byte(tt.payload), tt.opts)
			if !errors.Is(err, tt.want) {
				t.Errorf("Execute() error = %v, want code %s", err, tt.want)
			}
		})
	}
}

func TestExecuteCycleBroken(t *testing.T) {
	r := newRunner(t, nil)
	res, err := r.Execute(context.Background(), []byte(cyclic), Options{Formats: []string{FormatDOT}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(string(res.Artifacts[FormatDOT]), "style=dashed") {
		t.Errorf("reversed edge not dashed:\n%s", res.Artifacts[FormatDOT])
	}
}

func TestExecuteRaster(t *testing.T) {
	if !render.Available() {
		t.Skip("rsvg-convert not installed")
	}
	r := newRunner(t, nil)
	res, err := r.Execute(context.Background(), []byte(buildTest), Options{Formats: []string{FormatPNG, FormatPDF}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !bytes.HasPrefix(res.Artifacts[FormatPNG], []byte("\x89PNG")) {
		t.Error("png artifact lacks PNG signature")
	}
	if !bytes.HasPrefix(res.Artifacts[FormatPDF], []byte("%PDF")) {
		t.Error("pdf artifact lacks PDF header")
	}
}

type countingCache struct {
	cache.Cache
	sets int
}

func (c *countingCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.sets++
	return c.Cache.Set(ctx, key, data, ttl)
}

func mustFileCache(t *testing.T) *cache.FileCache {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return fc
}
