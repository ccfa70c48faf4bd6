package stac

// ResolvedObjectCache maps object identity (by id, scoped to one root
// catalog) to the canonical in-memory instance. It is the single mechanism
// that collapses cycles and diamonds during resolution and full-copy
// operations: two traversal paths reaching the same logical object receive
// the same Go pointer.
//
// Being cached keeps an object alive for as long as its root catalog is
// alive. The cache is not safe for concurrent mutation.
type ResolvedObjectCache struct {
	byID map[string]Object
}

// NewResolvedObjectCache creates an empty cache.
func NewResolvedObjectCache() *ResolvedObjectCache {
	return &ResolvedObjectCache{byID: make(map[string]Object)}
}

// Cache registers obj under its id, overwriting any previous entry.
func (c *ResolvedObjectCache) Cache(obj Object) {
	c.byID[obj.ID()] = obj
}

// GetOrCache returns the cached instance sharing obj's id, registering and
// returning obj itself when no entry exists.
func (c *ResolvedObjectCache) GetOrCache(obj Object) Object {
	if cached, ok := c.byID[obj.ID()]; ok {
		return cached
	}
	c.byID[obj.ID()] = obj
	return obj
}

// Get returns the cached instance sharing obj's id, without mutating the
// cache. The second return value reports whether an entry was found.
func (c *ResolvedObjectCache) Get(obj Object) (Object, bool) {
	return c.GetByID(obj.ID())
}

// GetByID returns the cached instance for id, if any.
func (c *ResolvedObjectCache) GetByID(id string) (Object, bool) {
	cached, ok := c.byID[id]
	return cached, ok
}

// Remove evicts the entry sharing obj's id, if present.
func (c *ResolvedObjectCache) Remove(obj Object) {
	delete(c.byID, obj.ID())
}

// RemoveByID evicts the entry for id, if present.
func (c *ResolvedObjectCache) RemoveByID(id string) {
	delete(c.byID, id)
}

// Contains reports whether an entry sharing obj's id exists.
func (c *ResolvedObjectCache) Contains(obj Object) bool {
	_, ok := c.byID[obj.ID()]
	return ok
}

// Len returns the number of cached objects.
func (c *ResolvedObjectCache) Len() int {
	return len(c.byID)
}

// MergeCaches produces a new cache containing the union of a and b, with
// a's entries taking precedence on id collision. It is used when a catalog
// carrying its own cache is attached under a new root.
func MergeCaches(a, b *ResolvedObjectCache) *ResolvedObjectCache {
	merged := NewResolvedObjectCache()
	if b != nil {
		for id, obj := range b.byID {
			merged.byID[id] = obj
		}
	}
	if a != nil {
		for id, obj := range a.byID {
			merged.byID[id] = obj
		}
	}
	return merged
}
