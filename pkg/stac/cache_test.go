package stac

import "testing"

func TestResolvedObjectCacheGetOrCache(t *testing.T) {
	cache := NewResolvedObjectCache()
	a := NewCatalog("cat", "first")
	b := NewCatalog("cat", "second")

	if got := cache.GetOrCache(a); got != Object(a) {
		t.Fatalf("GetOrCache on empty cache returned %v, want the argument", got)
	}
	if got := cache.GetOrCache(b); got != Object(a) {
		t.Errorf("GetOrCache with colliding id returned the new object, want the cached one")
	}
	if cache.Len() != 1 {
		t.Errorf("cache has %d entries, want 1", cache.Len())
	}
}

func TestResolvedObjectCacheRemove(t *testing.T) {
	cache := NewResolvedObjectCache()
	a := NewCatalog("cat", "a catalog")
	cache.Cache(a)

	if !cache.Contains(a) {
		t.Fatalf("cache does not contain a just-cached object")
	}
	cache.Remove(a)
	if cache.Contains(a) {
		t.Errorf("cache still contains a removed object")
	}
	if _, ok := cache.GetByID("cat"); ok {
		t.Errorf("GetByID found an entry after removal")
	}
}

func TestMergeCachesPrecedence(t *testing.T) {
	winner := NewCatalog("shared", "from a")
	loser := NewCatalog("shared", "from b")
	onlyB := NewCatalog("only-b", "b only")

	a := NewResolvedObjectCache()
	a.Cache(winner)
	b := NewResolvedObjectCache()
	b.Cache(loser)
	b.Cache(onlyB)

	merged := MergeCaches(a, b)
	if merged.Len() != 2 {
		t.Fatalf("merged cache has %d entries, want 2", merged.Len())
	}
	if got, _ := merged.GetByID("shared"); got != Object(winner) {
		t.Errorf("id collision resolved to second cache's entry, want the first's")
	}
	if _, ok := merged.GetByID("only-b"); !ok {
		t.Errorf("entry unique to second cache was lost")
	}
}

func TestMergeCachesNil(t *testing.T) {
	a := NewResolvedObjectCache()
	a.Cache(NewCatalog("cat", "a catalog"))
	if got := MergeCaches(a, nil).Len(); got != 1 {
		t.Errorf("MergeCaches(a, nil) has %d entries, want 1", got)
	}
	if got := MergeCaches(nil, a).Len(); got != 1 {
		t.Errorf("MergeCaches(nil, a) has %d entries, want 1", got)
	}
}
