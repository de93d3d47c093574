package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/claimviz/pkg/cache"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != filepath.Join(xdg, appName) {
		t.Errorf("cacheDir() = %q, want under %q", dir, xdg)
	}
}

func TestNewCacheBackends(t *testing.T) {
	ctx := context.Background()

	c := New(os.Stderr, LogInfo)
	c.global.cacheDir = t.TempDir()

	ch, err := c.newCache(ctx, false)
	if err != nil {
		t.Fatalf("newCache(file) error: %v", err)
	}
	if _, ok := ch.(*cache.Instrumented); !ok {
		t.Errorf("file backend should be instrumented, got %T", ch)
	}

	ch, err = c.newCache(ctx, true)
	if err != nil {
		t.Fatalf("newCache(noCache) error: %v", err)
	}
	if _, ok := ch.(*cache.NullCache); !ok {
		t.Errorf("--no-cache should give a NullCache, got %T", ch)
	}

	c.global.compress = true
	if _, err := c.newCache(ctx, false); err != nil {
		t.Errorf("newCache(compressed) error: %v", err)
	}

	c.global.cacheBackend = "memcached"
	_, err = c.newCache(ctx, false)
	if err == nil || !strings.Contains(err.Error(), "memcached") {
		t.Errorf("unknown backend error = %v", err)
	}
}

func TestCacheClearCommand(t *testing.T) {
	dir := t.TempDir()
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	_ = fc.Set(context.Background(), "render:abc", []byte("x"), cache.TTLRender)
	_ = fc.Set(context.Background(), "artifact:def", []byte("y"), cache.TTLArtifact)

	c := New(os.Stderr, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"cache", "clear", "--cache-dir", dir})
	if err := root.Execute(); err != nil {
		t.Fatalf("cache clear error: %v", err)
	}

	if _, hit, _ := fc.Get(context.Background(), "render:abc"); hit {
		t.Error("cache clear should remove entries")
	}
}
