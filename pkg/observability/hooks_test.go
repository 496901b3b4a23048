package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Pipeline hooks
	p := NoopPipelineHooks{}
	p.OnParseStart(ctx, "file")
	p.OnParseComplete(ctx, "file", 12, time.Second, nil)
	p.OnLayoutStart(ctx, 12)
	p.OnLayoutComplete(ctx, 12, 14, time.Second, nil)
	p.OnRenderStart(ctx, []string{"svg"})
	p.OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "layout")
	c.OnCacheMiss(ctx, "layout")
	c.OnCacheSet(ctx, "artifact", 1024)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/render/{format}")
	h.OnResponse(ctx, "POST", "/render/{format}", 200, time.Second)
	h.OnError(ctx, "POST", "/render/{format}", nil)

	// View hooks
	v := NoopViewHooks{}
	v.OnRenderPass("mount", 3, false, time.Millisecond, nil)
	v.OnNavigate("/runs/42/build")
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}
	if _, ok := View().(NoopViewHooks); !ok {
		t.Error("View() should return NoopViewHooks by default")
	}

	// Set custom hooks
	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	customView := &testViewHooks{}
	SetViewHooks(customView)
	if View() != customView {
		t.Error("SetViewHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
	if _, ok := View().(NoopViewHooks); !ok {
		t.Error("Reset() should restore NoopViewHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)

	// Setting nil should be ignored
	SetPipelineHooks(nil)

	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}

	Reset()
}

func TestPrometheus(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	m := NewPrometheus(reg)

	m.OnLayoutComplete(ctx, 5, 4, time.Millisecond, nil)
	m.OnLayoutComplete(ctx, 5, 4, time.Millisecond, errors.New("boom"))
	m.OnCacheHit(ctx, "layout")
	m.OnCacheMiss(ctx, "layout")
	m.OnCacheSet(ctx, "artifact", 512)
	m.OnResponse(ctx, "post", "/render/{format}", 200, time.Millisecond)
	m.OnError(ctx, "POST", "/render/{format}", errors.New("bad payload"))
	m.OnRenderPass("update", 3, true, time.Millisecond, nil)
	m.OnRenderPass("update", 3, false, time.Millisecond, errors.New("cyclic"))
	m.OnNavigate("/runs/1/build")

	tests := []struct {
		name string
		c    prometheus.Collector
		want float64
	}{
		{"layout errors", m.stageErrors.WithLabelValues("layout"), 1},
		{"cache hit", m.cacheOps.WithLabelValues("layout", "hit"), 1},
		{"cache miss", m.cacheOps.WithLabelValues("layout", "miss"), 1},
		{"cache bytes", m.cacheBytes.WithLabelValues("artifact"), 512},
		{"http 200", m.httpRequests.WithLabelValues("POST", "/render/{format}", "200"), 1},
		{"http errors", m.httpErrors.WithLabelValues("POST", "/render/{format}"), 1},
		{"view restored", m.viewPasses.WithLabelValues("update", "restored"), 1},
		{"view error", m.viewPasses.WithLabelValues("update", "error"), 1},
		{"navigations", m.navigations, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := testutil.ToFloat64(tt.c); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	if n := testutil.CollectAndCount(m.stageDuration); n != 1 {
		t.Errorf("stage duration series = %d, want 1", n)
	}
}

func TestPrometheusDuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewPrometheus(reg)
	defer func() {
		if recover() == nil {
			t.Error("second NewPrometheus on the same registry should panic")
		}
	}()
	NewPrometheus(reg)
}

// Test implementations
type testPipelineHooks struct{ NoopPipelineHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
type testViewHooks struct{ NoopViewHooks }
