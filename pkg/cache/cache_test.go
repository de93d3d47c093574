package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	apperr "github.com/matzehuels/claimviz/pkg/errors"
	"github.com/matzehuels/claimviz/pkg/observability"
	"github.com/matzehuels/claimviz/pkg/voxel"
)

var errTransient = errors.New("i/o timeout")

func init() {
	remoteBackoff.delay = time.Millisecond
}

// memCache is a map-backed Cache for wrapper tests.
type memCache struct {
	mu     sync.Mutex
	data   map[string][]byte
	closed bool
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (m *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = data
	return nil
}

func (m *memCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memCache) Close() error {
	m.closed = true
	return nil
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Error("NullCache.Get should always miss with nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "key"); hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "nested", "cache"))
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "render:abc"); err != nil || hit {
		t.Fatalf("Get on empty cache = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "render:abc", []byte(`[1,2,3]`), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "render:abc")
	if err != nil || !hit || string(data) != `[1,2,3]` {
		t.Fatalf("Get = %q, %v, %v", data, hit, err)
	}

	if err := c.Delete(ctx, "render:abc"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "render:abc"); hit {
		t.Error("entry should be gone after Delete")
	}
	if err := c.Delete(ctx, "render:abc"); err != nil {
		t.Errorf("Delete of missing key should succeed: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
	if _, err := os.Stat(c.path("k")); !errors.Is(err, os.ErrNotExist) {
		t.Error("expired entry should be removed")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := c.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry: hit %v err %v, want miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d entries, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("entries should be gone after Clear")
	}
}

func TestCompressed(t *testing.T) {
	ctx := context.Background()
	inner := newMemCache()
	c, err := NewCompressed(inner)
	if err != nil {
		t.Fatalf("NewCompressed: %v", err)
	}

	payload := []byte(strings.Repeat(`{"pos":{"x":1,"y":64,"z":1},"fake":"gold_block"},`, 200))
	if err := c.Set(ctx, "k", payload, time.Hour); err != nil {
		t.Fatal(err)
	}
	if stored := inner.data["k"]; len(stored) >= len(payload) {
		t.Errorf("stored %d bytes, want fewer than %d", len(stored), len(payload))
	}

	got, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(got) != string(payload) {
		t.Fatalf("Get round trip failed: hit %v err %v", hit, err)
	}

	inner.data["bad"] = []byte("not zstd")
	if _, hit, err := c.Get(ctx, "bad"); hit || err != nil {
		t.Errorf("undecodable entry: hit %v err %v, want miss", hit, err)
	}

	if err := c.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if !inner.closed {
		t.Error("Close should close the inner cache")
	}
}

type countingCacheHooks struct {
	observability.Noop
	hits, misses, sets map[string]int
}

func (h *countingCacheHooks) OnCacheHit(_ context.Context, k string)     { h.hits[k]++ }
func (h *countingCacheHooks) OnCacheMiss(_ context.Context, k string)    { h.misses[k]++ }
func (h *countingCacheHooks) OnCacheSet(_ context.Context, k string, _ int) { h.sets[k]++ }

func TestInstrumented(t *testing.T) {
	h := &countingCacheHooks{hits: map[string]int{}, misses: map[string]int{}, sets: map[string]int{}}
	observability.SetCacheHooks(h)
	defer observability.Reset()

	ctx := context.Background()
	c := NewInstrumented(newMemCache())
	key := "claimviz:" + NewDefaultKeyer().RenderKey("d1", RenderKeyOpts{Style: "claim"})

	_, _, _ = c.Get(ctx, key)
	_ = c.Set(ctx, key, []byte("x"), 0)
	_, _, _ = c.Get(ctx, key)

	if h.misses["render"] != 1 || h.sets["render"] != 1 || h.hits["render"] != 1 {
		t.Errorf("hooks = hits %v misses %v sets %v", h.hits, h.misses, h.sets)
	}
}

func TestKeyType(t *testing.T) {
	tests := map[string]string{
		"render:abc":                "render",
		"claimviz:artifact:abc":     "artifact",
		"plain":                     "unknown",
		":abc":                      "unknown",
	}
	for key, want := range tests {
		if got := KeyType(key); got != want {
			t.Errorf("KeyType(%q) = %q, want %q", key, got, want)
		}
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	h := 64

	base := RenderKeyOpts{Style: "claim", Min: [3]int{0, 64, 0}, Max: [3]int{9, 64, 9}}
	rk1 := k.RenderKey("d1", base)
	if !strings.HasPrefix(rk1, "render:") {
		t.Errorf("RenderKey should be prefixed: %s", rk1)
	}

	withHeight := base
	withHeight.Height = &h
	if rk1 == k.RenderKey("d1", withHeight) {
		t.Error("Different heights should produce different keys")
	}
	if rk1 == k.RenderKey("d2", base) {
		t.Error("Different world digests should produce different keys")
	}

	ak1 := k.ArtifactKey("r1", ArtifactKeyOpts{Format: "svg"})
	ak2 := k.ArtifactKey("r1", ArtifactKeyOpts{Format: "png"})
	if ak1 == ak2 {
		t.Error("Different ArtifactKeyOpts should produce different keys")
	}
}

func TestWorldDigest(t *testing.T) {
	a := voxel.NewGrid(0, 16)
	a.Set(voxel.C(0, 1, 0), voxel.Stone)
	a.Set(voxel.C(3, 2, 1), voxel.Water)

	b := voxel.NewGrid(0, 16)
	b.Set(voxel.C(3, 2, 1), voxel.Water)
	b.Set(voxel.C(0, 1, 0), voxel.Stone)

	if WorldDigest(a) != WorldDigest(b) {
		t.Error("digest should not depend on insertion order")
	}

	b.Set(voxel.C(0, 1, 0), voxel.Dirt)
	if WorldDigest(a) == WorldDigest(b) {
		t.Error("changed material should change the digest")
	}

	c := voxel.NewGrid(0, 32)
	c.Set(voxel.C(0, 1, 0), voxel.Stone)
	c.Set(voxel.C(3, 2, 1), voxel.Water)
	if WorldDigest(a) == WorldDigest(c) {
		t.Error("world bounds should be part of the digest")
	}
}

func TestBackoff(t *testing.T) {
	ctx := context.Background()
	b := backoff{attempts: 3, delay: time.Millisecond}

	calls := 0
	if err := b.do(ctx, "op", func() error { calls++; return nil }); err != nil || calls != 1 {
		t.Errorf("success: err %v calls %d", err, calls)
	}

	calls = 0
	errPermanent := errors.New("permanent")
	if err := b.do(ctx, "op", func() error { calls++; return errPermanent }); err != errPermanent || calls != 1 {
		t.Errorf("permanent: err %v calls %d", err, calls)
	}

	calls = 0
	err := b.do(ctx, "op", func() error {
		calls++
		if calls < 2 {
			return transient(errTransient)
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Errorf("retry once: err %v calls %d", err, calls)
	}

	calls = 0
	err = b.do(ctx, "redis get", func() error { calls++; return transient(errTransient) })
	if calls != 3 {
		t.Errorf("exhausted after %d calls, want 3", calls)
	}
	if !apperr.Is(err, apperr.ErrCodeCacheUnavailable) {
		t.Errorf("exhausted error should be CACHE_UNAVAILABLE: %v", err)
	}
	if !errors.Is(err, errTransient) {
		t.Error("exhausted error should wrap the last failure")
	}
}

func TestBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := backoff{attempts: 3, delay: time.Hour}.do(ctx, "op", func() error {
		return transient(errTransient)
	})
	if err != context.Canceled {
		t.Errorf("should return the context error: %v", err)
	}
}

func TestTransient(t *testing.T) {
	if transient(nil) != nil {
		t.Error("transient(nil) should be nil")
	}
	if isTransient(errTransient) {
		t.Error("plain error is not transient")
	}
	err := transient(errTransient)
	if !isTransient(err) || err.Error() != errTransient.Error() || !errors.Is(err, errTransient) {
		t.Errorf("transient wrap broken: %v", err)
	}
}
