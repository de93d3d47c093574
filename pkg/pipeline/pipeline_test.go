package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/claimviz/pkg/cache"
	apperr "github.com/matzehuels/claimviz/pkg/errors"
	"github.com/matzehuels/claimviz/pkg/scene"
	"github.com/matzehuels/claimviz/pkg/style"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"txt", false},
		{"svg", false},
		{"png", false},
		{"pdf", true},
		{"JSON", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !apperr.Is(err, apperr.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %q", tt.format, apperr.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"json", "svg"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"txt", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{ScenePath: "harbour.toml"}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Valid options should pass: %v", err)
	}

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatJSON {
		t.Errorf("Formats should default to [json], got %v", opts.Formats)
	}
	if opts.Concurrency != DefaultConcurrency {
		t.Errorf("Concurrency should be %d, got %d", DefaultConcurrency, opts.Concurrency)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale should be %d, got %d", DefaultScale, opts.Scale)
	}
	if opts.Logger == nil {
		t.Error("Logger should be set")
	}
}

func TestOptionsValidateForLoad(t *testing.T) {
	// Missing scene
	opts := Options{}
	if err := opts.ValidateForLoad(); err == nil {
		t.Error("Missing scene should fail")
	}

	opts = Options{ScenePath: "   "}
	if err := opts.ValidateForLoad(); err == nil {
		t.Error("Blank scene path should fail")
	}

	opts = Options{ScenePath: "a.toml", Concurrency: -1}
	if err := opts.ValidateForLoad(); err == nil {
		t.Error("Negative concurrency should fail")
	}

	// Decoded scene without a path
	opts = Options{Scene: &scene.File{}}
	if err := opts.ValidateForLoad(); err != nil {
		t.Errorf("Scene without path should pass: %v", err)
	}
}

func TestOptionsValidateForRender(t *testing.T) {
	opts := Options{Formats: []string{"svg", "gif"}}
	if err := opts.ValidateForRender(); err == nil {
		t.Error("Unknown format should fail")
	}

	opts = Options{Scale: -3}
	if err := opts.ValidateForRender(); err == nil {
		t.Error("Negative scale should fail")
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Scale: 24, Detailed: true}

	if k := opts.ArtifactKeyOpts(FormatJSON); k.Scale != 0 || k.Detailed {
		t.Errorf("json key should ignore preview settings, got %+v", k)
	}
	if k := opts.ArtifactKeyOpts(FormatSVG); k.Scale != 24 || !k.Detailed {
		t.Errorf("svg key should carry preview settings, got %+v", k)
	}
}

func TestWants(t *testing.T) {
	opts := Options{}
	if !opts.Wants("anything") {
		t.Error("Empty Only should select every request")
	}
	opts.Only = []string{"dock"}
	if !opts.Wants("dock") || opts.Wants("vault") {
		t.Error("Only should select exactly the named requests")
	}
}

// memCache is an in-memory cache.Cache that counts gets and sets.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	gets int
	sets int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (m *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	d, ok := m.data[key]
	return d, ok, nil
}

func (m *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	m.data[key] = data
	return nil
}

func (m *memCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memCache) Close() error { return nil }

func (m *memCache) setCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sets
}

// testScene is stone up to y=4 with two claims on top.
func testScene() *scene.File {
	return &scene.File{
		Name:  "plain",
		World: scene.WorldSpec{MinY: 0, MaxY: 32},
		Fills: []scene.FillSpec{
			{Min: scene.Point{-5, 0, -5}, Max: scene.Point{25, 4, 25}, Material: "stone"},
		},
		Requests: []scene.RequestSpec{
			{Name: "home", Style: "claim", Min: scene.Point{0, 5, 0}, Max: scene.Point{9, 5, 9}},
			{Name: "shop", Style: "admin-claim", Min: scene.Point{12, 5, 12}, Max: scene.Point{21, 5, 21}},
		},
	}
}

func TestExecute(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, nil)

	res, err := r.Execute(context.Background(), Options{
		Scene:   testScene(),
		Formats: []string{FormatJSON, FormatTXT},
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if res.RunID == "" {
		t.Error("RunID should be set")
	}
	if res.Scene != "plain" || res.WorldDigest == "" {
		t.Errorf("Scene/WorldDigest = %q/%q", res.Scene, res.WorldDigest)
	}
	if len(res.Renders) != 2 {
		t.Fatalf("Renders = %d, want 2", len(res.Renders))
	}
	if res.Renders[0].Name != "home" || res.Renders[1].Name != "shop" {
		t.Errorf("Renders out of scene order: %q, %q", res.Renders[0].Name, res.Renders[1].Name)
	}
	if res.Renders[1].Style != style.AdminClaim {
		t.Errorf("shop style = %v", res.Renders[1].Style)
	}
	for _, rr := range res.Renders {
		if len(rr.Instructions) != 12 {
			t.Errorf("%s: %d instructions, want 12", rr.Name, len(rr.Instructions))
		}
		if rr.CacheInfo.RenderHit || rr.CacheInfo.ArtifactHit {
			t.Errorf("%s: first run should miss the cache", rr.Name)
		}
		if !strings.HasPrefix(string(rr.Artifacts[FormatJSON]), "[") {
			t.Errorf("%s: json artifact is not an array", rr.Name)
		}
		if !strings.Contains(string(rr.Artifacts[FormatTXT]), "markers=") {
			t.Errorf("%s: txt artifact missing layer header", rr.Name)
		}
	}
	if res.Stats.Requests != 2 || res.Stats.Markers != 24 {
		t.Errorf("Stats = %+v", res.Stats)
	}
}

// readOnlyCache misses every Get and rejects every Set.
type readOnlyCache struct{ *cache.NullCache }

func (readOnlyCache) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("read-only file system")
}

func TestExecuteLogsCacheWriteFailures(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel})
	r := NewRunner(readOnlyCache{&cache.NullCache{}}, nil, logger)

	res, err := r.Execute(context.Background(), Options{
		Scene:   testScene(),
		Formats: []string{FormatJSON},
	})
	if err != nil {
		t.Fatalf("cache write failures must not fail the run: %v", err)
	}
	if len(res.Renders) != 2 {
		t.Fatalf("Renders = %d, want 2", len(res.Renders))
	}

	out := buf.String()
	for _, want := range []string{"cache write failed", "key=render", "key=artifact", "format=json"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestExecuteCacheHit(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	opts := Options{Scene: testScene(), Formats: []string{FormatJSON}}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute() error: %v", err)
	}
	sets := c.setCount()

	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute() error: %v", err)
	}
	if c.setCount() != sets {
		t.Errorf("second run wrote %d entries, want none", c.setCount()-sets)
	}

	for i, rr := range second.Renders {
		if !rr.CacheInfo.RenderHit || !rr.CacheInfo.ArtifactHit {
			t.Errorf("%s: second run should hit the cache, got %+v", rr.Name, rr.CacheInfo)
		}
		want := first.Renders[i]
		if rr.Hash != want.Hash {
			t.Errorf("%s: hash changed across cache round trip", rr.Name)
		}
		for j, in := range rr.Instructions {
			w := want.Instructions[j]
			if in.Pos != w.Pos || in.Role != w.Role || in.Placement != w.Placement || in.Fake != w.Fake || in.Reason != w.Reason {
				t.Errorf("%s[%d] = %+v, want %+v", rr.Name, j, in, w)
			}
		}
	}
}

func TestExecuteRefresh(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	opts := Options{Scene: testScene()}

	if _, err := r.Execute(context.Background(), opts); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	opts.Refresh = true
	res, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute(refresh) error: %v", err)
	}
	for _, rr := range res.Renders {
		if rr.CacheInfo.RenderHit {
			t.Errorf("%s: refresh should bypass the cache", rr.Name)
		}
	}
}

func TestExecuteOnly(t *testing.T) {
	r := NewRunner(nil, nil, nil)

	res, err := r.Execute(context.Background(), Options{Scene: testScene(), Only: []string{"shop"}})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if len(res.Renders) != 1 || res.Renders[0].Name != "shop" {
		t.Errorf("Only should keep just shop, got %d renders", len(res.Renders))
	}

	_, err = r.Execute(context.Background(), Options{Scene: testScene(), Only: []string{"shop", "barn"}})
	if err == nil {
		t.Fatal("Unknown request should fail")
	}
	if !apperr.Is(err, apperr.ErrCodeInvalidInput) || !strings.Contains(err.Error(), "barn") {
		t.Errorf("error = %v", err)
	}
}

func TestExecuteInvalidScene(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	bad := testScene()
	bad.Requests[0].Style = "castle"

	_, err := r.Execute(context.Background(), Options{Scene: bad})
	if err == nil {
		t.Fatal("Invalid style should fail")
	}
	if !apperr.Is(err, apperr.ErrCodeInvalidScene) {
		t.Errorf("code = %q, want %q", apperr.GetCode(err), apperr.ErrCodeInvalidScene)
	}

	_, err = r.Execute(context.Background(), Options{ScenePath: filepath.Join(t.TempDir(), "missing.toml")})
	if !apperr.Is(err, apperr.ErrCodeSceneNotFound) {
		t.Errorf("missing file code = %q", apperr.GetCode(err))
	}
}

func TestExecuteCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRunner(nil, nil, nil)
	if _, err := r.Execute(ctx, Options{Scene: testScene()}); err == nil {
		t.Error("Canceled context should fail")
	}
}

func TestWriteArtifacts(t *testing.T) {
	r := NewRunner(cache.NewNullCache(), nil, nil)
	res, err := r.Execute(context.Background(), Options{Scene: testScene(), Formats: []string{FormatTXT, FormatJSON}})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	dir := filepath.Join(t.TempDir(), "out")
	paths, err := WriteArtifacts(context.Background(), dir, res)
	if err != nil {
		t.Fatalf("WriteArtifacts() error: %v", err)
	}
	want := []string{
		filepath.Join(dir, "plain.home.json"),
		filepath.Join(dir, "plain.home.txt"),
		filepath.Join(dir, "plain.shop.json"),
		filepath.Join(dir, "plain.shop.txt"),
	}
	if strings.Join(paths, ",") != strings.Join(want, ",") {
		t.Errorf("paths = %v, want %v", paths, want)
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("%s not written: %v", p, err)
		}
	}

	if _, err := WriteArtifacts(context.Background(), "../escape", res); err == nil {
		t.Error("Traversal output dir should fail")
	}
}
