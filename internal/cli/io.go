package cli

import (
	"context"

	"github.com/stacforge/gostac/pkg/cache"
	"github.com/stacforge/gostac/pkg/stac"
	"github.com/stacforge/gostac/pkg/stac/extensions"
	"github.com/stacforge/gostac/pkg/stacio"
)

// newIO builds the I/O stack commands read catalogs through: the default
// file/HTTP collaborator, wrapped in a document cache unless disabled.
// Redis is used when configured, otherwise a file cache; if neither can be
// set up, reads are simply uncached.
func newIO(ctx context.Context, cfg Config, noCache bool) stac.IO {
	base := stacio.NewDefault()
	if noCache {
		return base
	}

	c, err := newCache(ctx, cfg)
	if err != nil || c == nil {
		return base
	}
	return stacio.NewCached(base, c, cfg.cacheTTL())
}

func newCache(ctx context.Context, cfg Config) (cache.Cache, error) {
	if cfg.RedisAddr != "" {
		return cache.NewRedisCache(ctx, cfg.RedisAddr, "", 0)
	}
	dir, err := cfg.cacheDir()
	if err != nil {
		return nil, err
	}
	return cache.NewFileCache(dir)
}

// loadCatalog reads the catalog or collection at href with the standard
// I/O stack and the migration hooks of every bundled extension.
func loadCatalog(ctx context.Context, href string, cfg Config, noCache bool) (stac.Container, error) {
	opts := &stac.FromDictOptions{Hooks: extensions.DefaultHooks()}
	return stac.CatalogFromFile(ctx, href, newIO(ctx, cfg, noCache), opts)
}
