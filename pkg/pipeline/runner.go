package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/claimviz/pkg/cache"
	"github.com/matzehuels/claimviz/pkg/observability"
	"github.com/matzehuels/claimviz/pkg/overlay"
	"github.com/matzehuels/claimviz/pkg/scene"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
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
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → render → encode pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{RunID: uuid.NewString()}
	ctx, span := observability.Tracer().Start(ctx, "pipeline.Execute",
		trace.WithAttributes(attribute.String("claimviz.run_id", result.RunID)))
	defer span.End()
	opts.Logger = opts.Logger.With("run", result.RunID[:8])

	// Stage 1: Load
	loadStart := time.Now()
	sc, err := Load(ctx, opts)
	if err != nil {
		fail(span, err)
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Scene = sc.Name
	result.WorldDigest = cache.WorldDigest(sc.World)
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Requests = len(sc.Requests)
	span.SetAttributes(attribute.String("claimviz.scene", sc.Name))

	opts.Logger.Info("loaded scene",
		"scene", sc.Name,
		"requests", len(sc.Requests),
		"voxels", sc.World.Len(),
		"duration", result.Stats.LoadTime)

	// Stage 2 and 3: Render and encode, one goroutine per request
	renderStart := time.Now()
	renderer := overlay.NewRenderer(sc.World)
	result.Renders = make([]RenderResult, len(sc.Requests))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i, req := range sc.Requests {
		g.Go(func() error {
			rr, err := r.RenderRequest(gctx, renderer, result.WorldDigest, req, opts)
			if err != nil {
				return fmt.Errorf("request %q: %w", req.Name, err)
			}
			result.Renders[i] = *rr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fail(span, err)
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Stats.RenderTime = time.Since(renderStart)

	for _, rr := range result.Renders {
		result.Stats.Markers += len(rr.Instructions)
	}
	opts.Logger.Info("rendered scene",
		"markers", result.Stats.Markers,
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// RenderRequest renders and encodes one request of a loaded scene.
// worldDigest must be the digest of rd's world; it scopes the cache.
func (r *Runner) RenderRequest(ctx context.Context, rd *overlay.Renderer, worldDigest string, req scene.Request, opts Options) (*RenderResult, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	ctx, span := observability.Tracer().Start(ctx, "pipeline.RenderRequest",
		trace.WithAttributes(
			attribute.String("claimviz.request", req.Name),
			attribute.String("claimviz.style", req.Style.String()),
		))
	defer span.End()

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, req.Name, req.Style.String())
	start := time.Now()

	rr, err := r.renderRequest(ctx, rd, worldDigest, req, opts)
	markers := 0
	if rr != nil {
		markers = len(rr.Instructions)
	}
	hooks.OnRenderComplete(ctx, req.Name, req.Style.String(), markers, time.Since(start), err)
	if err != nil {
		fail(span, err)
		return nil, err
	}
	rr.Duration = time.Since(start)
	span.SetAttributes(attribute.Int("claimviz.markers", markers))

	opts.Logger.Info("rendered overlay",
		"request", req.Name,
		"style", req.Style,
		"markers", markers,
		"cached", rr.CacheInfo.RenderHit,
		"duration", rr.Duration)
	return rr, nil
}

func (r *Runner) renderRequest(ctx context.Context, rd *overlay.Renderer, worldDigest string, req scene.Request, opts Options) (*RenderResult, error) {
	ins, hit, err := r.InstructionsWithCacheInfo(ctx, rd, worldDigest, req.Request, opts)
	if err != nil {
		return nil, err
	}
	data, err := MarshalInstructions(ins)
	if err != nil {
		return nil, fmt.Errorf("serialize instructions: %w", err)
	}

	rr := &RenderResult{
		Name:         req.Name,
		Style:        req.Style,
		Region:       req.Region,
		Instructions: ins,
		Hash:         cache.Hash(data),
		CacheInfo:    CacheInfo{RenderHit: hit},
	}
	rr.Artifacts, rr.CacheInfo.ArtifactHit, err = r.EncodeWithCacheInfo(ctx, rr, opts)
	if err != nil {
		return nil, err
	}
	return rr, nil
}

// InstructionsWithCacheInfo renders req with caching and returns cache hit info.
func (r *Runner) InstructionsWithCacheInfo(ctx context.Context, rd *overlay.Renderer, worldDigest string, req overlay.Request, opts Options) ([]overlay.PlacementInstruction, bool, error) {
	cacheKey := r.Keyer.RenderKey(worldDigest, RenderKeyOpts(req))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if ins, err := UnmarshalInstructions(data); err == nil {
				return ins, true, nil
			}
			// Undecodable entries are recomputed and overwritten.
		}
	}

	ins, err := rd.Render(ctx, req)
	if err != nil {
		return nil, false, err
	}

	if data, err := MarshalInstructions(ins); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLRender); err != nil {
			opts.Logger.Warn("cache write failed", "key", cache.KeyType(cacheKey), "err", err)
		}
	}
	return ins, false, nil
}

// EncodeWithCacheInfo encodes rr's instructions in every requested format
// with caching and reports whether all artifacts came from the cache.
func (r *Runner) EncodeWithCacheInfo(ctx context.Context, rr *RenderResult, opts Options) (map[string][]byte, bool, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	if !opts.Refresh {
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(rr.Hash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	rendered, err := Encode(ctx, rr.Region, rr.Instructions, opts)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(rr.Hash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			opts.Logger.Warn("cache write failed", "key", cache.KeyType(key), "format", format, "err", err)
		}
	}
	return rendered, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func fail(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
