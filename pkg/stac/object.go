package stac

import (
	"context"
)

// IO is the collaborator the graph uses for all reads and writes of STAC
// JSON text. The default implementation in pkg/stacio handles local
// filesystem paths and plain HTTP(S) GET; alternate backends are swappable
// by providing another implementation.
//
// I/O errors propagate unchanged; the graph does not retry or wrap them
// beyond minimal context.
type IO interface {
	ReadText(ctx context.Context, href string) (string, error)
	WriteText(ctx context.Context, href string, text string) error
}

// Object is the common contract of Catalog, Collection and Item: link-list
// management, root/parent/self-href bookkeeping, lazy resolution,
// serialization, and cache-aware copying.
//
// At most one resolved "root" link and at most one "parent" link exist at
// any time; both are enforced by replace-on-set rather than a hard
// constraint. Traversal getters taking a context may perform blocking I/O.
type Object interface {
	Type() ObjectType
	ID() string
	SetID(id string)
	StacVersion() string
	Extensions() []string
	SetExtensions(uris []string)
	ExtraFields() map[string]any

	Links() []*Link
	AddLink(l *Link)
	GetLinks(rel string) []*Link
	GetSingleLink(rel string) *Link
	RemoveLinks(rel string)
	ClearLinks()

	SelfHref() string
	SetSelfHref(href string) error
	Root(ctx context.Context) (Object, error)
	SetRoot(root Object)
	Parent(ctx context.Context) (Object, error)
	SetParent(parent Object)
	ResolveLinks(ctx context.Context) error
	SetIO(io IO)

	ToDict(includeSelf bool) map[string]any
	Clone() Object
	FullCopy(ctx context.Context) (Object, error)
	SaveObject(ctx context.Context, includeSelf bool, destHref string) error

	// objectLinks lists the link relations whose targets belong to the
	// object graph (followed by ResolveLinks and FullCopy).
	objectLinks() []string
	common() *objectBase
}

// Container is implemented by Catalog and Collection, the two object types
// that organize children and items.
type Container interface {
	Object
	Description() string
	AddChild(ctx context.Context, child Container) error
	AddItem(ctx context.Context, item *Item) error
	Children(ctx context.Context) ([]Container, error)
	Items(ctx context.Context) ([]*Item, error)
	Walk(ctx context.Context, fn WalkFunc) error
	NormalizeHrefs(ctx context.Context, rootHref string, strategy HrefLayoutStrategy) error
	Save(ctx context.Context, catalogType CatalogType) error
}

// cacheOwner is implemented by objects that own a resolved-object cache
// (catalogs and collections). Root references are only useful when the root
// is a cache owner.
type cacheOwner interface {
	Object
	resolvedCache() *ResolvedObjectCache
}

// objectBase carries the state shared by every STAC object. The self field
// points back at the outer concrete object so that methods promoted through
// embedding still observe overridden behavior and can register the concrete
// type in caches.
type objectBase struct {
	id          string
	stacVersion string
	extensions  []string
	extraFields map[string]any
	links       []*Link
	self        Object
	io          IO
}

func newObjectBase(id string) objectBase {
	return objectBase{
		id:          id,
		stacVersion: DefaultStacVersion,
		extraFields: map[string]any{},
	}
}

func (b *objectBase) ID() string           { return b.id }
func (b *objectBase) SetID(id string)      { b.id = id }
func (b *objectBase) StacVersion() string  { return b.stacVersion }
func (b *objectBase) Extensions() []string { return b.extensions }

func (b *objectBase) SetExtensions(uris []string) { b.extensions = uris }

func (b *objectBase) ExtraFields() map[string]any {
	if b.extraFields == nil {
		b.extraFields = map[string]any{}
	}
	return b.extraFields
}

func (b *objectBase) SetIO(io IO)        { b.io = io }
func (b *objectBase) common() *objectBase { return b }

// Links returns the object's link list. The returned slice is the live
// list; use AddLink/RemoveLinks for mutation.
func (b *objectBase) Links() []*Link { return b.links }

// AddLink appends l and sets its owner to this object.
func (b *objectBase) AddLink(l *Link) {
	l.owner = b.self
	b.links = append(b.links, l)
}

// GetLinks returns all links with the given relation, or every link when
// rel is empty.
func (b *objectBase) GetLinks(rel string) []*Link {
	if rel == "" {
		return b.links
	}
	var out []*Link
	for _, l := range b.links {
		if l.Rel == rel {
			out = append(out, l)
		}
	}
	return out
}

// GetSingleLink returns the first link with the given relation, or nil.
func (b *objectBase) GetSingleLink(rel string) *Link {
	for _, l := range b.links {
		if l.Rel == rel {
			return l
		}
	}
	return nil
}

// RemoveLinks drops every link with the given relation.
func (b *objectBase) RemoveLinks(rel string) {
	out := b.links[:0]
	for _, l := range b.links {
		if l.Rel != rel {
			out = append(out, l)
		}
	}
	b.links = out
}

// ClearLinks drops every link.
func (b *objectBase) ClearLinks() { b.links = nil }

// SelfHref returns the absolute href this object was resolved from or
// assigned via SetSelfHref, or "" when unset.
func (b *objectBase) SelfHref() string {
	if l := b.GetSingleLink(RelSelf); l != nil {
		return l.TargetHref()
	}
	return ""
}

// SetSelfHref stores href (normalized to absolute, against the current
// working directory if relative) as the object's "self" link. The object is
// evicted from and re-registered in its root's resolved-object cache, since
// self hrefs anchor relative resolution elsewhere in the graph.
//
// Passing "" removes the self link.
func (b *objectBase) SetSelfHref(href string) error {
	cache := b.rootCache()
	if cache != nil {
		cache.Remove(b.self)
	}
	b.RemoveLinks(RelSelf)
	if href != "" {
		b.AddLink(selfLink(MakeAbsoluteHref(href, "", false)))
	}
	if cache != nil {
		cache.Cache(b.self)
	}
	return nil
}

// rootCache returns the resolved-object cache of this object's resolved
// root, or nil.
func (b *objectBase) rootCache() *ResolvedObjectCache {
	l := b.GetSingleLink(RelRoot)
	if l == nil || !l.IsResolved() {
		return nil
	}
	if co, ok := l.Target().(cacheOwner); ok {
		return co.resolvedCache()
	}
	return nil
}

// Root returns the root catalog, resolving the root link if necessary.
// After a lazy resolution the root is re-set on this object so that caches
// merge (the root was unknown when the link was created).
func (b *objectBase) Root(ctx context.Context) (Object, error) {
	l := b.GetSingleLink(RelRoot)
	if l == nil {
		return nil, nil
	}
	if !l.IsResolved() {
		if _, err := l.Resolve(ctx, nil); err != nil {
			return nil, err
		}
		b.self.SetRoot(l.Target())
		l = b.GetSingleLink(RelRoot)
	}
	return l.Target(), nil
}

// SetRoot replaces the root link. The object is evicted from the prior
// root's cache and registered into the new root's cache, keyed by id.
// Passing nil removes the root link.
func (b *objectBase) SetRoot(root Object) {
	if prev := b.GetSingleLink(RelRoot); prev != nil && prev.IsResolved() {
		if co, ok := prev.Target().(cacheOwner); ok {
			co.resolvedCache().Remove(b.self)
		}
	}
	b.RemoveLinks(RelRoot)
	if root != nil {
		b.AddLink(NewResolvedLink(RelRoot, root))
		if co, ok := root.(cacheOwner); ok {
			co.resolvedCache().Cache(b.self)
		}
	}
}

// Parent returns the parent object, resolving the parent link if necessary.
// Returns nil with no error when the object has no parent link.
func (b *objectBase) Parent(ctx context.Context) (Object, error) {
	l := b.GetSingleLink(RelParent)
	if l == nil {
		return nil, nil
	}
	if !l.IsResolved() {
		if _, err := l.Resolve(ctx, nil); err != nil {
			return nil, err
		}
	}
	return l.Target(), nil
}

// SetParent replaces the parent link. Passing nil removes it.
func (b *objectBase) SetParent(parent Object) {
	b.RemoveLinks(RelParent)
	if parent != nil {
		b.AddLink(NewResolvedLink(RelParent, parent))
	}
}

// ResolveLinks force-resolves every object link plus root and parent. Used
// before href-rewriting operations, where lazy resolution mid-rename could
// observe broken intermediate state.
func (b *objectBase) ResolveLinks(ctx context.Context) error {
	rels := map[string]bool{RelRoot: true, RelParent: true}
	for _, rel := range b.self.objectLinks() {
		rels[rel] = true
	}

	var root Object
	if l := b.GetSingleLink(RelRoot); l != nil && l.IsResolved() {
		root = l.Target()
	}

	for _, l := range b.links {
		if !rels[l.Rel] || l.IsResolved() {
			continue
		}
		linkRoot := root
		if l.Rel == RelRoot || l.Rel == RelParent {
			linkRoot = nil
		}
		if _, err := l.Resolve(ctx, linkRoot); err != nil {
			return err
		}
	}
	return nil
}

// FullCopy performs a deep, cache-aware clone of the object and everything
// reachable through its object links. Sharing structure is preserved: two
// links that pointed to the same logical object before the copy point to
// the same cloned instance afterward.
func (b *objectBase) FullCopy(ctx context.Context) (Object, error) {
	return fullCopy(ctx, b.self, nil, nil)
}

// cloneInto copies the shared object state from b into dst's base. Links
// are cloned (owners rebound to dst); resolved targets stay shared, which
// is what lets FullCopy discover original targets through the clone.
func (b *objectBase) cloneInto(dst Object, skipRels ...string) {
	c := dst.common()
	c.stacVersion = b.stacVersion
	c.extensions = append([]string(nil), b.extensions...)
	c.extraFields = cloneAnyMap(b.extraFields)
	c.io = b.io

	skip := map[string]bool{}
	for _, rel := range skipRels {
		skip[rel] = true
	}
	for _, l := range b.links {
		if skip[l.Rel] {
			continue
		}
		dst.AddLink(l.Clone())
	}
}

// cloneAnyMap deep-copies a JSON-shaped map (maps and slices are copied,
// scalars shared).
func cloneAnyMap(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneAny(v)
	}
	return out
}

func cloneAny(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneAnyMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneAny(e)
		}
		return out
	default:
		return v
	}
}

// linksToDicts serializes the link list, optionally omitting the self link.
// Resolved root and parent links without a determinable href are skipped,
// matching the behavior of self-contained trees that never assign hrefs.
func (b *objectBase) linksToDicts(includeSelf bool) []any {
	var out []any
	for _, l := range b.links {
		if l.Rel == RelSelf && !includeSelf {
			continue
		}
		d := l.ToDict()
		if _, ok := d["href"]; !ok {
			continue
		}
		out = append(out, d)
	}
	return out
}

// baseToDict populates the fields shared by catalogs and collections.
func (b *objectBase) baseToDict(typ ObjectType, includeSelf bool) map[string]any {
	d := make(map[string]any)
	for k, v := range b.extraFields {
		d[k] = v
	}
	d["type"] = string(typ)
	d["id"] = b.id
	d["stac_version"] = b.stacVersion
	if len(b.extensions) > 0 {
		d["stac_extensions"] = stringsToAny(b.extensions)
	}
	d["links"] = b.linksToDicts(includeSelf)
	return d
}

// baseFromDict consumes the shared fields from d, leaving everything else
// for the caller. Unknown keys land in extraFields.
func (b *objectBase) baseFromDict(d map[string]any, known map[string]bool) {
	if v, ok := d["id"].(string); ok {
		b.id = v
	}
	if v, ok := d["stac_version"].(string); ok {
		b.stacVersion = v
	}
	if raw, ok := d["stac_extensions"].([]any); ok {
		for _, e := range raw {
			if s, ok := e.(string); ok {
				b.extensions = append(b.extensions, s)
			}
		}
	}
	if raw, ok := d["links"].([]any); ok {
		for _, e := range raw {
			if ld, ok := e.(map[string]any); ok {
				b.AddLink(linkFromDict(ld))
			}
		}
	}
	for k, v := range d {
		if !known[k] {
			b.ExtraFields()[k] = v
		}
	}
}

func stringsToAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// fullCopy implements the cache-memoized deep copy over a possibly cyclic
// graph. root is the clone acting as the new tree's root (nil for the first
// object, which then roots itself); parent is the already-copied parent.
func fullCopy(ctx context.Context, src Object, root Object, parent Object) (Object, error) {
	clone := src.Clone()

	if root == nil {
		root = clone
	}
	clone.SetRoot(root)
	if parent != nil {
		clone.SetParent(parent)
	}

	rels := map[string]bool{}
	for _, rel := range src.objectLinks() {
		rels[rel] = true
	}

	var newCache *ResolvedObjectCache
	if co, ok := root.(cacheOwner); ok {
		newCache = co.resolvedCache()
	}

	for _, link := range clone.Links() {
		if !rels[link.Rel] {
			continue
		}
		if _, err := link.Resolve(ctx, nil); err != nil {
			return nil, err
		}
		target := link.Target()

		if newCache != nil {
			if cached, ok := newCache.Get(target); ok {
				target = cached
			} else {
				var targetParent Object
				if link.Rel == RelChild || link.Rel == RelItem {
					targetParent = clone
				}
				copied, err := fullCopy(ctx, target, root, targetParent)
				if err != nil {
					return nil, err
				}
				newCache.Cache(copied)
				target = copied
			}
		}

		if link.Rel == RelChild || link.Rel == RelItem {
			target.SetRoot(root)
			target.SetParent(clone)
		}
		link.target = target
	}

	return clone, nil
}
