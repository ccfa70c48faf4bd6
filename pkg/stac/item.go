package stac

import (
	"context"
	"time"

	"github.com/stacforge/gostac/pkg/errors"
)

// Item is a GeoJSON Feature describing a single spatiotemporal asset group.
// Its searchable metadata lives in the Properties bag; typed accessors below
// read and write the common-metadata fields inside it.
type Item struct {
	objectBase

	// Geometry is the GeoJSON geometry object, or nil.
	Geometry map[string]any
	// Bbox is the bounding box of the geometry, or nil.
	Bbox []float64
	// Properties is the item's property bag. Always non-nil.
	Properties map[string]any
	// Assets maps asset keys to assets owned by this item.
	Assets map[string]*Asset

	collectionID string
}

// NewItem creates an item. datetime may be nil only when properties carries
// both "start_datetime" and "end_datetime"; a null datetime with no range is
// rejected.
func NewItem(id string, geometry map[string]any, bbox []float64, datetime *time.Time, properties map[string]any) (*Item, error) {
	if properties == nil {
		properties = map[string]any{}
	}
	if datetime == nil {
		_, hasStart := properties["start_datetime"]
		_, hasEnd := properties["end_datetime"]
		if !hasStart || !hasEnd {
			return nil, errors.New(errors.ErrCodeInvalidDatetime,
				"item %s: a null datetime requires start_datetime and end_datetime", id)
		}
		properties["datetime"] = nil
	} else {
		properties["datetime"] = FormatDatetime(*datetime)
	}

	i := &Item{
		objectBase: newObjectBase(id),
		Geometry:   geometry,
		Bbox:       bbox,
		Properties: properties,
		Assets:     map[string]*Asset{},
	}
	i.self = i
	return i, nil
}

// Type returns [TypeItem].
func (i *Item) Type() ObjectType { return TypeItem }

func (i *Item) objectLinks() []string {
	return []string{RelCollection, RelSource, RelDerivedFrom}
}

// SetSelfHref re-anchors the item at href. Relative asset hrefs are
// rewritten against the new location so they keep pointing at the same
// files.
func (i *Item) SetSelfHref(href string) error {
	prev := i.SelfHref()
	if err := i.objectBase.SetSelfHref(href); err != nil {
		return err
	}
	next := i.SelfHref()
	if prev == "" || next == "" || prev == next {
		return nil
	}
	for _, a := range i.Assets {
		if IsAbsoluteHref(a.Href) {
			continue
		}
		abs := MakeAbsoluteHref(a.Href, prev, false)
		a.Href = MakeRelativeHref(abs, next, false)
	}
	return nil
}

// AddAsset stores a under key, taking ownership.
func (i *Item) AddAsset(key string, a *Asset) {
	a.SetOwner(i)
	i.Assets[key] = a
}

// RemoveAsset deletes the asset under key and clears its owner.
func (i *Item) RemoveAsset(key string) {
	if a, ok := i.Assets[key]; ok {
		a.SetOwner(nil)
		delete(i.Assets, key)
	}
}

// SetCollection records the item's parent collection: a "collection" link
// plus the collection id serialized on the item. Passing nil clears both.
func (i *Item) SetCollection(coll *Collection) {
	i.RemoveLinks(RelCollection)
	if coll == nil {
		i.collectionID = ""
		return
	}
	i.collectionID = coll.ID()
	i.AddLink(NewResolvedLink(RelCollection, coll))
}

// Collection resolves and returns the item's collection, or nil.
func (i *Item) Collection(ctx context.Context) (*Collection, error) {
	l := i.GetSingleLink(RelCollection)
	if l == nil {
		return nil, nil
	}
	root, err := i.Root(ctx)
	if err != nil {
		return nil, err
	}
	obj, err := l.Resolve(ctx, root)
	if err != nil {
		return nil, err
	}
	coll, ok := obj.(*Collection)
	if !ok {
		return nil, errors.New(errors.ErrCodeTypeError,
			"collection link of %s resolved to a %s, expected Collection", i.id, obj.Type())
	}
	return coll, nil
}

// CollectionID returns the id of the item's collection, or "".
func (i *Item) CollectionID() string { return i.collectionID }

// Datetime returns the item's nominal datetime, or nil for range-only items.
func (i *Item) Datetime() (*time.Time, error) {
	return i.propertyDatetime("datetime")
}

// SetDatetime sets the nominal datetime. Passing nil writes a JSON null,
// which is only valid alongside a start/end range.
func (i *Item) SetDatetime(t *time.Time) {
	if t == nil {
		i.Properties["datetime"] = nil
		return
	}
	i.Properties["datetime"] = FormatDatetime(*t)
}

// StartDatetime returns the start of the item's datetime range, or nil.
func (i *Item) StartDatetime() (*time.Time, error) {
	return i.propertyDatetime("start_datetime")
}

// EndDatetime returns the end of the item's datetime range, or nil.
func (i *Item) EndDatetime() (*time.Time, error) {
	return i.propertyDatetime("end_datetime")
}

func (i *Item) propertyDatetime(key string) (*time.Time, error) {
	v, ok := i.Properties[key]
	if !ok || v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidDatetime,
			"item %s: property %s is not a string", i.id, key)
	}
	t, err := ParseDatetime(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Common-metadata accessors. Each reads or writes the corresponding
// Properties key; getters return the zero value when the key is absent or
// the wrong shape.

func (i *Item) TitleProp() string       { s, _ := i.Properties["title"].(string); return s }
func (i *Item) SetTitleProp(v string)   { i.Properties["title"] = v }
func (i *Item) DescriptionProp() string { s, _ := i.Properties["description"].(string); return s }
func (i *Item) License() string         { s, _ := i.Properties["license"].(string); return s }
func (i *Item) SetLicense(v string)     { i.Properties["license"] = v }
func (i *Item) Platform() string        { s, _ := i.Properties["platform"].(string); return s }
func (i *Item) SetPlatform(v string)    { i.Properties["platform"] = v }
func (i *Item) Constellation() string   { s, _ := i.Properties["constellation"].(string); return s }
func (i *Item) Mission() string         { s, _ := i.Properties["mission"].(string); return s }

// Gsd returns the ground sample distance in meters, or nil.
func (i *Item) Gsd() *float64 {
	if f, ok := toFloat(i.Properties["gsd"]); ok {
		return &f
	}
	return nil
}

// SetGsd sets the ground sample distance.
func (i *Item) SetGsd(v float64) { i.Properties["gsd"] = v }

// Instruments returns the list of instrument names, or nil.
func (i *Item) Instruments() []string {
	raw, _ := i.Properties["instruments"].([]any)
	var out []string
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// SetInstruments sets the list of instrument names.
func (i *Item) SetInstruments(names []string) {
	i.Properties["instruments"] = stringsToAny(names)
}

// Created returns the creation timestamp of the item metadata, or nil.
func (i *Item) Created() (*time.Time, error) { return i.propertyDatetime("created") }

// Updated returns the last-update timestamp of the item metadata, or nil.
func (i *Item) Updated() (*time.Time, error) { return i.propertyDatetime("updated") }

// SetCreated sets the creation timestamp.
func (i *Item) SetCreated(t time.Time) { i.Properties["created"] = FormatDatetime(t) }

// SetUpdated sets the last-update timestamp.
func (i *Item) SetUpdated(t time.Time) { i.Properties["updated"] = FormatDatetime(t) }

// Clone returns a copy of the item with cloned links (resolved targets
// shared) and deep-copied geometry, properties and assets.
func (i *Item) Clone() Object {
	clone := &Item{
		objectBase:   newObjectBase(i.id),
		Bbox:         append([]float64(nil), i.Bbox...),
		Properties:   cloneAnyMap(i.Properties),
		Assets:       map[string]*Asset{},
		collectionID: i.collectionID,
	}
	clone.self = clone
	if i.Geometry != nil {
		clone.Geometry = cloneAnyMap(i.Geometry)
	}
	for key, a := range i.Assets {
		copied := a.Clone()
		copied.SetOwner(clone)
		clone.Assets[key] = copied
	}
	i.cloneInto(clone, RelRoot)
	return clone
}

// ToDict serializes the item to its GeoJSON Feature wire form.
func (i *Item) ToDict(includeSelf bool) map[string]any {
	d := i.baseToDict(TypeItem, includeSelf)
	if i.Geometry != nil {
		d["geometry"] = i.Geometry
	} else {
		d["geometry"] = nil
	}
	if len(i.Bbox) > 0 {
		bbox := make([]any, len(i.Bbox))
		for j, v := range i.Bbox {
			bbox[j] = v
		}
		d["bbox"] = bbox
	}
	d["properties"] = i.Properties
	assets := make(map[string]any, len(i.Assets))
	for key, a := range i.Assets {
		assets[key] = a.ToDict()
	}
	d["assets"] = assets
	if i.collectionID != "" {
		d["collection"] = i.collectionID
	}
	return d
}

var itemKnownKeys = map[string]bool{
	"type": true, "id": true, "stac_version": true, "stac_extensions": true,
	"links": true, "geometry": true, "bbox": true, "properties": true,
	"assets": true, "collection": true,
}

// ItemFromDict constructs an Item from its GeoJSON Feature wire form.
func ItemFromDict(d map[string]any) (*Item, error) {
	id, _ := d["id"].(string)
	if id == "" {
		return nil, errors.New(errors.ErrCodeInvalidObject, "item dict missing id")
	}
	i := &Item{
		objectBase: newObjectBase(id),
		Properties: map[string]any{},
		Assets:     map[string]*Asset{},
	}
	i.self = i
	i.baseFromDict(d, itemKnownKeys)

	if g, ok := d["geometry"].(map[string]any); ok {
		i.Geometry = g
	}
	if raw, ok := d["bbox"].([]any); ok {
		for _, v := range raw {
			if f, ok := toFloat(v); ok {
				i.Bbox = append(i.Bbox, f)
			}
		}
	}
	if props, ok := d["properties"].(map[string]any); ok {
		i.Properties = props
	}
	if v, ok := i.Properties["datetime"]; !ok || v == nil {
		_, hasStart := i.Properties["start_datetime"]
		_, hasEnd := i.Properties["end_datetime"]
		if !hasStart || !hasEnd {
			return nil, errors.New(errors.ErrCodeInvalidDatetime,
				"item %s: a null datetime requires start_datetime and end_datetime", id)
		}
	}
	if assets, ok := d["assets"].(map[string]any); ok {
		for key, raw := range assets {
			ad, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			a := AssetFromDict(ad)
			a.SetOwner(i)
			i.Assets[key] = a
		}
	}
	if cid, ok := d["collection"].(string); ok {
		i.collectionID = cid
	}
	return i, nil
}
