package cache

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/claimviz/pkg/observability"
)

// Instrumented reports every Get and Set to the registered cache hooks.
type Instrumented struct {
	Cache
}

// NewInstrumented wraps c.
func NewInstrumented(c Cache) *Instrumented {
	return &Instrumented{Cache: c}
}

// Get implements Cache.
func (c *Instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := c.Cache.Get(ctx, key)
	if err == nil {
		if hit {
			observability.Cache().OnCacheHit(ctx, KeyType(key))
		} else {
			observability.Cache().OnCacheMiss(ctx, KeyType(key))
		}
	}
	return data, hit, err
}

// Set implements Cache.
func (c *Instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := c.Cache.Set(ctx, key, data, ttl)
	if err == nil {
		observability.Cache().OnCacheSet(ctx, KeyType(key), len(data))
	}
	return err
}

// KeyType extracts the kind from a "[scope:]kind:hash" key.
func KeyType(key string) string {
	i := strings.LastIndexByte(key, ':')
	if i < 0 {
		return "unknown"
	}
	kind := key[:i]
	if j := strings.LastIndexByte(kind, ':'); j >= 0 {
		kind = kind[j+1:]
	}
	if kind == "" {
		return "unknown"
	}
	return kind
}
