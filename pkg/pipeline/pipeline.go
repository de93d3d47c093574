// Package pipeline runs scenes through the overlay renderer.
//
// A run has three stages:
//
//  1. Load: read and validate a scene file and build its world
//  2. Render: plan and resolve every request of the scene, concurrently
//  3. Encode: turn each render into artifacts (JSON, ASCII map, SVG, PNG)
//
// Renders are cached by world digest and request parameters, artifacts by
// render hash and encoding parameters, so re-running an unchanged scene
// does no snapping at all.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    ScenePath: "harbor.toml",
//	    Formats:   []string{"json", "svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, r := range result.Renders {
//	    fmt.Println(r.Name, len(r.Instructions))
//	}
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/claimviz/pkg/cache"
	apperr "github.com/matzehuels/claimviz/pkg/errors"
	"github.com/matzehuels/claimviz/pkg/overlay"
	"github.com/matzehuels/claimviz/pkg/preview"
	"github.com/matzehuels/claimviz/pkg/scene"
	"github.com/matzehuels/claimviz/pkg/style"
	"github.com/matzehuels/claimviz/pkg/voxel"
)

const (
	// DefaultConcurrency is the number of requests rendered in parallel.
	DefaultConcurrency = 4

	// DefaultScale is the preview distance between blocks, in points.
	DefaultScale = int(preview.DefaultScale)
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatTXT  = "txt"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatTXT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
}

// Options contains all configuration for a pipeline run.
type Options struct {
	// ScenePath is the scene file to load. Ignored when Scene is set.
	ScenePath string `json:"scene_path,omitempty"`
	// Scene is an already decoded scene file.
	Scene *scene.File `json:"scene,omitempty"`
	// Only restricts the run to the named requests.
	Only []string `json:"only,omitempty"`

	Refresh     bool `json:"refresh,omitempty"`
	Concurrency int  `json:"concurrency,omitempty"`

	Formats  []string `json:"formats,omitempty"`
	Scale    int      `json:"scale,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies the run in logs and traces.
	RunID string

	Scene       string
	WorldDigest string

	// Renders holds one entry per request, in scene order.
	Renders []RenderResult

	Stats Stats
}

// RenderResult is the outcome of one request.
type RenderResult struct {
	Name   string
	Style  style.Style
	Region voxel.Region

	// Instructions are sorted by role, then position. Instructions served
	// from the cache carry no snap step counts.
	Instructions []overlay.PlacementInstruction

	// Hash is the content hash of the JSON-encoded instructions.
	Hash string

	// Artifacts contains encoded outputs keyed by format.
	Artifacts map[string][]byte

	CacheInfo CacheInfo
	Duration  time.Duration
}

// Stats contains run statistics.
type Stats struct {
	Requests   int
	Markers    int
	LoadTime   time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks which stages hit the cache.
type CacheInfo struct {
	RenderHit   bool // instructions came from cache
	ArtifactHit bool // every artifact came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return apperr.New(apperr.ErrCodeInvalidFormat, "invalid format: %q (must be one of: json, txt, svg, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks that a scene source is set.
func (o *Options) ValidateForLoad() error {
	if o.Scene == nil && strings.TrimSpace(o.ScenePath) == "" {
		return apperr.New(apperr.ErrCodeInvalidInput, "scene path or scene is required")
	}
	if o.Concurrency < 0 {
		return apperr.New(apperr.ErrCodeInvalidInput, "concurrency must not be negative")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Concurrency == 0 {
		o.Concurrency = DefaultConcurrency
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if o.Scale < 0 {
		return apperr.New(apperr.ErrCodeInvalidInput, "scale must not be negative")
	}
	return ValidateFormats(o.Formats)
}

// Wants reports whether the named request is selected by Only.
func (o *Options) Wants(name string) bool {
	return len(o.Only) == 0 || slices.Contains(o.Only, name)
}

// RenderKeyOpts returns cache key options for rendering req.
func RenderKeyOpts(req overlay.Request) cache.RenderKeyOpts {
	return cache.RenderKeyOpts{
		Style:     req.Style.String(),
		Min:       scene.PointOf(req.Region.Min),
		Max:       scene.PointOf(req.Region.Max),
		Origin:    scene.PointOf(req.Origin),
		Height:    req.Height,
		Submerged: req.Submerged,
		Radius:    req.Radius,
	}
}

// ArtifactKeyOpts returns cache key options for one artifact format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	if format == FormatSVG || format == FormatPNG {
		k.Scale = o.Scale
		k.Detailed = o.Detailed
	}
	return k
}

func errUnknownRequests(names []string) error {
	return apperr.New(apperr.ErrCodeInvalidInput, "unknown request(s): %s", strings.Join(names, ", "))
}
