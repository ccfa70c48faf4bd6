package stac

import (
	"context"

	"github.com/stacforge/gostac/pkg/errors"
)

// DefaultLicense is used when a collection is created without one.
const DefaultLicense = "proprietary"

// Collection is a catalog whose items share metadata worth lifting to the
// parent: license, providers, spatiotemporal extent and property summaries.
// It behaves as a [Catalog] for all graph operations.
type Collection struct {
	Catalog

	// License is the SPDX identifier (or "proprietary"/"various") covering
	// the collection's data.
	License string
	// Keywords aid discovery.
	Keywords []string
	// Providers lists the organizations behind the data.
	Providers []*Provider
	// Extent is the collection's spatiotemporal coverage. Required.
	Extent *Extent
	// Summaries describes property distributions across the items.
	Summaries *Summaries
	// Assets are collection-level assets such as overview imagery.
	Assets map[string]*Asset
	// ItemAssets declares the assets items are expected to carry.
	ItemAssets map[string]*AssetDefinition
}

// NewCollection creates a collection rooted at itself.
func NewCollection(id, description string, extent *Extent) *Collection {
	c := &Collection{
		Catalog: Catalog{
			objectBase: newObjectBase(id),
			Desc:       description,
			cache:      NewResolvedObjectCache(),
		},
		License:   DefaultLicense,
		Extent:    extent,
		Summaries: NewSummaries(),
		Assets:    map[string]*Asset{},
	}
	c.self = c
	c.SetRoot(c)
	return c
}

// Type returns [TypeCollection].
func (c *Collection) Type() ObjectType { return TypeCollection }

// AddItem attaches item under this collection and records the collection on
// the item.
func (c *Collection) AddItem(ctx context.Context, item *Item) error {
	if err := c.Catalog.AddItem(ctx, item); err != nil {
		return err
	}
	item.SetCollection(c)
	return nil
}

// AddAsset stores a under key, taking ownership.
func (c *Collection) AddAsset(key string, a *Asset) {
	a.SetOwner(c)
	c.Assets[key] = a
}

// Clone returns a copy of the collection with cloned links (resolved targets
// shared) and deep-copied collection metadata.
func (c *Collection) Clone() Object {
	clone := NewCollection(c.id, c.Desc, nil)
	clone.Title = c.Title
	clone.CatalogType = c.CatalogType
	clone.License = c.License
	clone.Keywords = append([]string(nil), c.Keywords...)
	for _, p := range c.Providers {
		clone.Providers = append(clone.Providers, p.Clone())
	}
	if c.Extent != nil {
		extent, _ := ExtentFromDict(c.Extent.ToDict())
		clone.Extent = extent
	}
	if c.Summaries != nil {
		clone.Summaries = c.Summaries.Clone()
	}
	for key, a := range c.Assets {
		copied := a.Clone()
		copied.SetOwner(clone)
		clone.Assets[key] = copied
	}
	if c.ItemAssets != nil {
		clone.ItemAssets = map[string]*AssetDefinition{}
		for key, def := range c.ItemAssets {
			clone.ItemAssets[key] = AssetDefinitionFromDict(def.ToDict())
		}
	}
	c.cloneInto(clone, RelRoot)
	return clone
}

// ToDict serializes the collection to its JSON wire form.
func (c *Collection) ToDict(includeSelf bool) map[string]any {
	d := c.baseToDict(TypeCollection, includeSelf)
	d["description"] = c.Desc
	if c.Title != "" {
		d["title"] = c.Title
	}
	d["license"] = c.License
	if len(c.Keywords) > 0 {
		d["keywords"] = stringsToAny(c.Keywords)
	}
	if len(c.Providers) > 0 {
		providers := make([]any, len(c.Providers))
		for i, p := range c.Providers {
			providers[i] = p.ToDict()
		}
		d["providers"] = providers
	}
	if c.Extent != nil {
		d["extent"] = c.Extent.ToDict()
	}
	if c.Summaries != nil && !c.Summaries.IsEmpty() {
		d["summaries"] = c.Summaries.ToDict()
	}
	if len(c.Assets) > 0 {
		assets := make(map[string]any, len(c.Assets))
		for key, a := range c.Assets {
			assets[key] = a.ToDict()
		}
		d["assets"] = assets
	}
	if len(c.ItemAssets) > 0 {
		defs := make(map[string]any, len(c.ItemAssets))
		for key, def := range c.ItemAssets {
			defs[key] = def.ToDict()
		}
		d["item_assets"] = defs
	}
	return d
}

var collectionKnownKeys = map[string]bool{
	"type": true, "id": true, "stac_version": true, "stac_extensions": true,
	"links": true, "description": true, "title": true, "license": true,
	"keywords": true, "providers": true, "extent": true, "summaries": true,
	"assets": true, "item_assets": true,
}

// CollectionFromDict constructs a Collection from its JSON wire form.
func CollectionFromDict(d map[string]any) (*Collection, error) {
	id, _ := d["id"].(string)
	if id == "" {
		return nil, errors.New(errors.ErrCodeInvalidObject, "collection dict missing id")
	}
	desc, _ := d["description"].(string)
	c := NewCollection(id, desc, nil)
	c.objectBase.SetRoot(nil)
	c.baseFromDict(d, collectionKnownKeys)

	if title, ok := d["title"].(string); ok {
		c.Title = title
	}
	if license, ok := d["license"].(string); ok && license != "" {
		c.License = license
	}
	if raw, ok := d["keywords"].([]any); ok {
		for _, v := range raw {
			if s, ok := v.(string); ok {
				c.Keywords = append(c.Keywords, s)
			}
		}
	}
	if raw, ok := d["providers"].([]any); ok {
		for _, v := range raw {
			if pd, ok := v.(map[string]any); ok {
				c.Providers = append(c.Providers, ProviderFromDict(pd))
			}
		}
	}
	if ed, ok := d["extent"].(map[string]any); ok {
		extent, err := ExtentFromDict(ed)
		if err != nil {
			return nil, err
		}
		c.Extent = extent
	}
	if sd, ok := d["summaries"].(map[string]any); ok {
		c.Summaries = SummariesFromDict(sd)
	}
	if assets, ok := d["assets"].(map[string]any); ok {
		for key, raw := range assets {
			if ad, ok := raw.(map[string]any); ok {
				a := AssetFromDict(ad)
				a.SetOwner(c)
				c.Assets[key] = a
			}
		}
	}
	if defs, ok := d["item_assets"].(map[string]any); ok {
		c.ItemAssets = map[string]*AssetDefinition{}
		for key, raw := range defs {
			if ad, ok := raw.(map[string]any); ok {
				c.ItemAssets[key] = AssetDefinitionFromDict(ad)
			}
		}
	}
	if c.GetSingleLink(RelRoot) == nil {
		c.objectBase.SetRoot(c)
	}
	return c, nil
}
