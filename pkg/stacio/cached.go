package stacio

import (
	"context"
	"time"

	"github.com/stacforge/gostac/pkg/cache"
	"github.com/stacforge/gostac/pkg/stac"
)

// Cached wraps another collaborator with a byte cache keyed by href. Only
// reads are cached; writes pass through and invalidate the entry so a
// subsequent read observes the new content.
type Cached struct {
	inner stac.IO
	cache cache.Cache
	ttl   time.Duration
}

// NewCached wraps inner with c. A ttl of 0 caches without expiration.
func NewCached(inner stac.IO, c cache.Cache, ttl time.Duration) *Cached {
	return &Cached{inner: inner, cache: c, ttl: ttl}
}

// ReadText returns the cached text for href, falling through to the inner
// collaborator on a miss. Cache backend failures are ignored on the read
// path; a broken cache degrades to uncached reads rather than breaking
// traversal.
func (c *Cached) ReadText(ctx context.Context, href string) (string, error) {
	if data, ok, err := c.cache.Get(ctx, href); err == nil && ok {
		return string(data), nil
	}

	text, err := c.inner.ReadText(ctx, href)
	if err != nil {
		return "", err
	}
	_ = c.cache.Set(ctx, href, []byte(text), c.ttl)
	return text, nil
}

// WriteText writes through to the inner collaborator and invalidates the
// cache entry for href.
func (c *Cached) WriteText(ctx context.Context, href string, text string) error {
	if err := c.inner.WriteText(ctx, href, text); err != nil {
		return err
	}
	return c.cache.Delete(ctx, href)
}
