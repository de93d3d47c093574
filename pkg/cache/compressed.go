package cache

import (
	"context"
	"time"

	"github.com/klauspost/compress/zstd"
)

// Compressed wraps a cache with zstd compression. Rendered instruction
// lists are highly repetitive JSON and shrink by an order of magnitude.
type Compressed struct {
	inner Cache
	enc   *zstd.Encoder
	dec   *zstd.Decoder
}

// NewCompressed wraps inner.
func NewCompressed(inner Cache) (*Compressed, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		_ = enc.Close()
		return nil, err
	}
	return &Compressed{inner: inner, enc: enc, dec: dec}, nil
}

// Get decompresses a stored value. Undecodable entries are misses.
func (c *Compressed) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := c.inner.Get(ctx, key)
	if err != nil || !hit {
		return nil, false, err
	}
	out, err := c.dec.DecodeAll(data, nil)
	if err != nil {
		return nil, false, nil
	}
	return out, true, nil
}

// Set compresses and stores a value.
func (c *Compressed) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.inner.Set(ctx, key, c.enc.EncodeAll(data, nil), ttl)
}

// Delete removes a value.
func (c *Compressed) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, key)
}

// Close releases the codec and closes the inner cache.
func (c *Compressed) Close() error {
	c.dec.Close()
	if err := c.enc.Close(); err != nil {
		_ = c.inner.Close()
		return err
	}
	return c.inner.Close()
}

var _ Cache = (*Compressed)(nil)
