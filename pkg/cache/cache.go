// Package cache stores rendered overlays and artifacts between runs.
//
// A render is a pure function of the world and the request, so its output
// can be cached under a key built from a digest of the world plus the
// request parameters. [Keyer] builds those keys and [Cache] stores the
// bytes. Backends:
//
//   - [NullCache]: disables caching
//   - [FileCache]: JSON entry files under a directory, the CLI default
//   - [RedisCache]: a shared Redis instance
//   - [MongoCache]: a MongoDB collection
//
// [Compressed] wraps any backend with zstd compression.
package cache

import (
	"context"
	"time"
)

// Default time-to-live per entry kind.
const (
	TTLRender   = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// RenderKey identifies the placement instructions of one request
	// rendered against the world with the given digest.
	RenderKey(worldDigest string, opts RenderKeyOpts) string
	// ArtifactKey identifies one encoded artifact of a render.
	ArtifactKey(renderHash string, opts ArtifactKeyOpts) string
}

// RenderKeyOpts are the request parameters that affect a render.
type RenderKeyOpts struct {
	Style     string `json:"style"`
	Min       [3]int `json:"min"`
	Max       [3]int `json:"max"`
	Origin    [3]int `json:"origin"`
	Height    *int   `json:"height,omitempty"`
	Submerged *bool  `json:"submerged,omitempty"`
	Radius    int    `json:"radius"`
}

// ArtifactKeyOpts are the encoding parameters that affect an artifact.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Scale    int    `json:"scale,omitempty"`
	Detailed bool   `json:"detailed,omitempty"`
}

// DefaultKeyer produces "kind:sha256" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// RenderKey implements Keyer.
func (DefaultKeyer) RenderKey(worldDigest string, opts RenderKeyOpts) string {
	return hashKey("render", worldDigest, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(renderHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", renderHash, opts)
}

// NullCache never stores anything; every Get is a miss.
type NullCache struct{}

// NewNullCache returns a cache that disables caching.
func NewNullCache() Cache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error                     { return nil }
func (*NullCache) Close() error                                             { return nil }
