package cli

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func TestCacheDir(t *testing.T) {
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)

	c := New(io.Discard, LogInfo)
	c.config = defaultConfig()

	dir, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(cacheHome, "flowgraph"); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}

	c.config.Cache.Dir = "/var/cache/fg"
	if dir, _ := c.cacheDir(); dir != "/var/cache/fg" {
		t.Errorf("configured dir ignored: %q", dir)
	}
}

func TestNewCacheBackends(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	c := New(io.Discard, LogInfo)
	c.config = defaultConfig()
	ctx := t.Context()

	fc, err := c.newCache(ctx, false)
	if err != nil {
		t.Fatalf("file backend: %v", err)
	}
	_ = fc.Close()

	c.config.Cache.Backend = backendNone
	nc, err := c.newCache(ctx, false)
	if err != nil {
		t.Fatalf("none backend: %v", err)
	}
	_ = nc.Close()

	c.config.Cache.Backend = backendRedis
	c.config.Cache.RedisURL = "not a url"
	if _, err := c.newCache(ctx, false); err == nil {
		t.Error("bad redis URL should fail")
	}
	if _, err := c.newCache(ctx, true); err != nil {
		t.Errorf("--no-cache should skip the backend: %v", err)
	}

	mr := miniredis.RunT(t)
	c.config.Cache.RedisURL = "redis://" + mr.Addr()
	rc, err := c.newCache(ctx, false)
	if err != nil {
		t.Fatalf("redis backend: %v", err)
	}
	if err := rc.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if !mr.Exists(c.config.Cache.Prefix + "k") {
		t.Errorf("key not stored under prefix %q: %v", c.config.Cache.Prefix, mr.Keys())
	}
	_ = rc.Close()
}
