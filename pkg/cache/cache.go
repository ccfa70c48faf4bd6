// Package cache provides byte-level caching of fetched STAC documents with
// pluggable backends: files on disk, Redis, or a no-op cache for disabling
// caching entirely.
//
// Keys are arbitrary strings, typically the href of a fetched document.
// Backends hash keys where the storage layer needs safe names. Entries
// carry a time-to-live; a TTL of 0 means no expiration.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the contract shared by every backend. Get reports a miss with
// (nil, false, nil); errors are reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// Scoped wraps a cache with a key prefix, isolating namespaces that share
// one backend (for example one prefix per catalog host).
type Scoped struct {
	inner  Cache
	prefix string
}

// NewScoped creates a scoped view of inner with the given key prefix.
func NewScoped(inner Cache, prefix string) *Scoped {
	return &Scoped{inner: inner, prefix: prefix}
}

// Get retrieves a value under the prefixed key.
func (s *Scoped) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

// Set stores a value under the prefixed key.
func (s *Scoped) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return s.inner.Set(ctx, s.prefix+key, data, ttl)
}

// Delete removes the value under the prefixed key.
func (s *Scoped) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

// Close closes the underlying cache.
func (s *Scoped) Close() error { return s.inner.Close() }

// Ensure Scoped implements Cache.
var _ Cache = (*Scoped)(nil)
