package stac

import (
	"context"
	"fmt"
	"path"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/stacforge/gostac/pkg/errors"
)

// Catalog is a STAC object that organizes child catalogs, collections and
// items through "child" and "item" links. Every catalog owns a
// [ResolvedObjectCache]; when a catalog is attached under a new root the
// caches merge, with the root's entries winning on id collision.
type Catalog struct {
	objectBase

	// Title is the optional human-readable title.
	Title string
	// Desc is the required human-readable description.
	Desc string
	// CatalogType governs the href style used by Save. When empty, Save
	// infers it from the presence of a self href.
	CatalogType CatalogType

	cache *ResolvedObjectCache
}

// NewCatalog creates a catalog rooted at itself: its "root" link resolves
// to the catalog, and its cache contains the catalog.
func NewCatalog(id, description string) *Catalog {
	c := &Catalog{
		objectBase: newObjectBase(id),
		Desc:       description,
		cache:      NewResolvedObjectCache(),
	}
	c.self = c
	c.SetRoot(c)
	return c
}

// Type returns [TypeCatalog].
func (c *Catalog) Type() ObjectType { return TypeCatalog }

// Description returns the catalog's description.
func (c *Catalog) Description() string { return c.Desc }

func (c *Catalog) objectLinks() []string { return []string{RelChild, RelItem} }

func (c *Catalog) resolvedCache() *ResolvedObjectCache { return c.cache }

// SetRoot replaces the catalog's root link and merges this catalog's cache
// into the new root's, root entries winning on collision. Attaching an
// independently built subtree under a new root therefore preserves every
// already-resolved object.
func (c *Catalog) SetRoot(root Object) {
	c.objectBase.SetRoot(root)
	if root == nil || c.self == root {
		return
	}
	if co, ok := root.(cacheOwner); ok {
		merged := MergeCaches(co.resolvedCache(), c.cache)
		*co.resolvedCache() = *merged
		c.cache = co.resolvedCache()
	}
}

// IsRoot reports whether the catalog is its own root.
func (c *Catalog) IsRoot() bool {
	l := c.GetSingleLink(RelRoot)
	return l != nil && l.IsResolved() && l.Target() == c.self
}

// AddChild attaches child under this catalog: the child's root becomes this
// catalog's root, its parent becomes this catalog, and (when this catalog
// has a self href) the child receives a layout-derived self href. A
// resolved "child" link is appended.
func (c *Catalog) AddChild(ctx context.Context, child Container) error {
	root, err := c.Root(ctx)
	if err != nil {
		return err
	}
	if root == nil {
		root = c.self
	}
	child.SetRoot(root)
	child.SetParent(c.self)

	if selfHref := c.SelfHref(); selfHref != "" {
		layout := BestPracticesLayout{}
		href := layout.CatalogHref(child, path.Dir(selfHref), false)
		if err := child.SetSelfHref(href); err != nil {
			return err
		}
	}

	l := NewResolvedLink(RelChild, child)
	l.MediaType = MediaTypeJSON
	l.Title = containerTitle(child)
	c.AddLink(l)
	return nil
}

// AddItem attaches item under this catalog, mirroring [Catalog.AddChild]
// with an "item" link.
func (c *Catalog) AddItem(ctx context.Context, item *Item) error {
	root, err := c.Root(ctx)
	if err != nil {
		return err
	}
	if root == nil {
		root = c.self
	}
	item.SetRoot(root)
	item.SetParent(c.self)

	if selfHref := c.SelfHref(); selfHref != "" {
		layout := BestPracticesLayout{}
		href := layout.ItemHref(item, path.Dir(selfHref))
		if err := item.SetSelfHref(href); err != nil {
			return err
		}
	}

	l := NewResolvedLink(RelItem, item)
	l.MediaType = MediaTypeGeoJSON
	c.AddLink(l)
	return nil
}

// Children resolves and returns the catalog's child catalogs and
// collections. Resolution may perform I/O for links not yet visited.
func (c *Catalog) Children(ctx context.Context) ([]Container, error) {
	root, err := c.Root(ctx)
	if err != nil {
		return nil, err
	}
	var out []Container
	for _, l := range c.GetLinks(RelChild) {
		obj, err := l.Resolve(ctx, root)
		if err != nil {
			return nil, err
		}
		child, ok := obj.(Container)
		if !ok {
			return nil, errors.New(errors.ErrCodeTypeError,
				"child link of %s resolved to a %s, expected Catalog or Collection", c.id, obj.Type())
		}
		out = append(out, child)
	}
	return out, nil
}

// Items resolves and returns the catalog's direct items.
func (c *Catalog) Items(ctx context.Context) ([]*Item, error) {
	root, err := c.Root(ctx)
	if err != nil {
		return nil, err
	}
	var out []*Item
	for _, l := range c.GetLinks(RelItem) {
		obj, err := l.Resolve(ctx, root)
		if err != nil {
			return nil, err
		}
		item, ok := obj.(*Item)
		if !ok {
			return nil, errors.New(errors.ErrCodeTypeError,
				"item link of %s resolved to a %s, expected Feature", c.id, obj.Type())
		}
		out = append(out, item)
	}
	return out, nil
}

// GetChild returns the direct child with the given id, or nil.
func (c *Catalog) GetChild(ctx context.Context, id string) (Container, error) {
	children, err := c.Children(ctx)
	if err != nil {
		return nil, err
	}
	for _, child := range children {
		if child.ID() == id {
			return child, nil
		}
	}
	return nil, nil
}

// GetItem returns the direct item with the given id, or nil.
func (c *Catalog) GetItem(ctx context.Context, id string) (*Item, error) {
	items, err := c.Items(ctx)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.ID() == id {
			return item, nil
		}
	}
	return nil, nil
}

// RemoveChild detaches the direct child with the given id: the link is
// dropped, the child is evicted from the root cache, and its root and
// parent references are cleared.
func (c *Catalog) RemoveChild(id string) {
	c.removeByID(RelChild, id)
}

// RemoveItem detaches the direct item with the given id, mirroring
// [Catalog.RemoveChild].
func (c *Catalog) RemoveItem(id string) {
	c.removeByID(RelItem, id)
}

func (c *Catalog) removeByID(rel, id string) {
	kept := c.links[:0]
	for _, l := range c.links {
		if l.Rel == rel && l.IsResolved() && l.Target().ID() == id {
			target := l.Target()
			c.cache.Remove(target)
			target.SetRoot(nil)
			target.SetParent(nil)
			continue
		}
		kept = append(kept, l)
	}
	c.links = kept
}

// WalkFunc receives one (catalog, children, items) triple per catalog in a
// depth-first walk. Returning an error stops the walk.
type WalkFunc func(cat Container, children []Container, items []*Item) error

// Walk traverses the catalog tree depth-first, invoking fn once per
// catalog or collection. Children and items are re-derived from the live
// link list at each step, so the walk reflects current state rather than a
// snapshot. Unvisited links are resolved on the way, which may perform I/O.
func (c *Catalog) Walk(ctx context.Context, fn WalkFunc) error {
	return walkContainer(ctx, c.self.(Container), fn)
}

func walkContainer(ctx context.Context, cat Container, fn WalkFunc) error {
	children, err := cat.Children(ctx)
	if err != nil {
		return err
	}
	items, err := cat.Items(ctx)
	if err != nil {
		return err
	}
	if err := fn(cat, children, items); err != nil {
		return err
	}
	for _, child := range children {
		if err := walkContainer(ctx, child, fn); err != nil {
			return err
		}
	}
	return nil
}

// NormalizeHrefs recomputes every descendant's self href from the layout
// strategy (BestPracticesLayout when strategy is nil), rooted at rootHref.
// The tree is fully resolved first, and mutations are deferred into
// closures collected during a read-only pass so that in-progress
// relative-href resolution never observes a half-renamed tree.
func (c *Catalog) NormalizeHrefs(ctx context.Context, rootHref string, strategy HrefLayoutStrategy) error {
	if strategy == nil {
		strategy = BestPracticesLayout{}
	}
	if !IsAbsoluteHref(rootHref) {
		rootHref = MakeAbsoluteHref(rootHref, "", true)
	}

	setters, err := collectHrefSetters(ctx, c.self.(Container), rootHref, strategy, true)
	if err != nil {
		return err
	}
	for _, set := range setters {
		if err := set(); err != nil {
			return err
		}
	}
	return nil
}

func collectHrefSetters(ctx context.Context, cat Container, parentDir string, strategy HrefLayoutStrategy, isRoot bool) ([]func() error, error) {
	if err := cat.ResolveLinks(ctx); err != nil {
		return nil, err
	}

	newSelf := strategy.CatalogHref(cat, parentDir, isRoot)
	newDir := path.Dir(newSelf)

	var setters []func() error

	items, err := cat.Items(ctx)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if err := item.ResolveLinks(ctx); err != nil {
			return nil, err
		}
		href := strategy.ItemHref(item, newDir)
		it := item
		setters = append(setters, func() error { return it.SetSelfHref(href) })
	}

	children, err := cat.Children(ctx)
	if err != nil {
		return nil, err
	}
	for _, child := range children {
		childSetters, err := collectHrefSetters(ctx, child, newDir, strategy, false)
		if err != nil {
			return nil, err
		}
		setters = append(setters, childSetters...)
	}

	setters = append(setters, func() error { return cat.SetSelfHref(newSelf) })
	return setters, nil
}

// Save writes the catalog and every already-resolved descendant through the
// I/O collaborator, depth-first. Unresolved (unvisited) subtrees are left
// untouched on disk. catalogType overrides the stored type when non-empty;
// an empty stored type is inferred from the presence of a self href.
//
// A partial failure leaves some files written and others not; there is no
// rollback.
func (c *Catalog) Save(ctx context.Context, catalogType CatalogType) error {
	if catalogType != "" {
		c.CatalogType = catalogType
	}
	if c.CatalogType == "" {
		if c.SelfHref() != "" {
			c.CatalogType = CatalogTypeAbsolutePublished
		} else {
			c.CatalogType = CatalogTypeSelfContained
		}
	}
	return c.save(ctx, c.CatalogType)
}

func (c *Catalog) save(ctx context.Context, catalogType CatalogType) error {
	style := LinkAbsolute
	if catalogType != CatalogTypeAbsolutePublished {
		style = LinkRelative
	}

	for _, l := range c.GetLinks(RelChild) {
		if !l.IsResolved() {
			continue
		}
		child, ok := l.Target().(interface {
			save(ctx context.Context, catalogType CatalogType) error
		})
		if !ok {
			continue
		}
		if err := child.save(ctx, catalogType); err != nil {
			return err
		}
	}

	for _, l := range c.GetLinks(RelItem) {
		if !l.IsResolved() {
			continue
		}
		item := l.Target()
		setHierarchicalLinkTypes(item, style)
		includeSelf := catalogType == CatalogTypeAbsolutePublished
		if err := item.SaveObject(ctx, includeSelf, ""); err != nil {
			return err
		}
	}

	setHierarchicalLinkTypes(c.self, style)
	includeSelf := catalogType == CatalogTypeAbsolutePublished ||
		(catalogType == CatalogTypeRelativePublished && c.IsRoot())
	return c.SaveObject(ctx, includeSelf, "")
}

// hierarchicalRels are the relations whose hrefs follow the catalog type's
// absolute/relative style on save.
var hierarchicalRels = map[string]bool{
	RelChild:      true,
	RelItem:       true,
	RelParent:     true,
	RelRoot:       true,
	RelCollection: true,
}

func setHierarchicalLinkTypes(o Object, t LinkType) {
	for _, l := range o.Links() {
		if hierarchicalRels[l.Rel] {
			l.Type = t
		}
	}
}

// Describe returns an indented text rendering of the catalog tree,
// resolving every reachable child and item.
func (c *Catalog) Describe(ctx context.Context) (string, error) {
	var b strings.Builder
	depths := map[string]int{c.id: 0}
	err := c.Walk(ctx, func(cat Container, children []Container, items []*Item) error {
		depth := depths[cat.ID()]
		indent := strings.Repeat("    ", depth)
		fmt.Fprintf(&b, "%s* <%s id=%s>\n", indent, cat.Type(), cat.ID())
		for _, child := range children {
			depths[child.ID()] = depth + 1
		}
		for _, item := range items {
			fmt.Fprintf(&b, "%s    * <%s id=%s>\n", indent, item.Type(), item.ID())
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

// Clone returns a copy of the catalog with cloned links (resolved targets
// shared). The clone is rooted at itself regardless of the original's
// root; use [Object.FullCopy] for a deep, cache-aware copy of the tree.
func (c *Catalog) Clone() Object {
	clone := NewCatalog(c.id, c.Desc)
	clone.Title = c.Title
	clone.CatalogType = c.CatalogType
	c.cloneInto(clone, RelRoot)
	return clone
}

// ToDict serializes the catalog to its JSON wire form. The self link is
// emitted only when includeSelf is true.
func (c *Catalog) ToDict(includeSelf bool) map[string]any {
	d := c.baseToDict(TypeCatalog, includeSelf)
	d["description"] = c.Desc
	if c.Title != "" {
		d["title"] = c.Title
	}
	return d
}

var catalogKnownKeys = map[string]bool{
	"type": true, "id": true, "stac_version": true, "stac_extensions": true,
	"links": true, "description": true, "title": true,
}

// CatalogFromDict constructs a Catalog from its JSON wire form.
func CatalogFromDict(d map[string]any) (*Catalog, error) {
	id, _ := d["id"].(string)
	if id == "" {
		return nil, errors.New(errors.ErrCodeInvalidObject, "catalog dict missing id")
	}
	desc, _ := d["description"].(string)
	c := NewCatalog(id, desc)
	// Parsed catalogs carry their links verbatim; drop the self-root from
	// the constructor so the dict's own root link (if any) wins.
	c.objectBase.SetRoot(nil)
	c.baseFromDict(d, catalogKnownKeys)
	if title, ok := d["title"].(string); ok {
		c.Title = title
	}
	if c.GetSingleLink(RelRoot) == nil {
		c.objectBase.SetRoot(c)
	}
	return c, nil
}

// SaveObject serializes the object (with or without its self link) and
// writes it through the I/O collaborator to destHref, defaulting to the
// object's self href.
func (b *objectBase) SaveObject(ctx context.Context, includeSelf bool, destHref string) error {
	io := b.io
	if io == nil {
		if l := b.GetSingleLink(RelRoot); l != nil && l.IsResolved() {
			io = l.Target().common().io
		}
	}
	if io == nil {
		return errors.New(errors.ErrCodeIO, "cannot save %s: no I/O collaborator attached", b.id)
	}
	if destHref == "" {
		destHref = b.SelfHref()
	}
	if destHref == "" {
		return errors.New(errors.ErrCodeResolution, "cannot save %s: no self href and no destination", b.id)
	}

	text, err := json.MarshalIndent(b.self.ToDict(includeSelf), "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeSerialization, err, "marshal %s", b.id)
	}
	return io.WriteText(ctx, destHref, string(text)+"\n")
}

func containerTitle(o Object) string {
	switch t := o.(type) {
	case *Catalog:
		return t.Title
	case *Collection:
		return t.Title
	}
	return ""
}
