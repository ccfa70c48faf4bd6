package stac

import "path"

// HrefLayoutStrategy decides where catalogs, collections and items live
// when a tree is normalized under a root href. parentDir is the directory
// holding the parent's JSON file.
type HrefLayoutStrategy interface {
	CatalogHref(cat Container, parentDir string, isRoot bool) string
	ItemHref(item *Item, parentDir string) string
}

// BestPracticesLayout implements the layout recommended by the STAC best
// practices document: every catalog or collection lives in a directory
// named after its id ("<id>/catalog.json" or "<id>/collection.json"), and
// every item lives at "<id>/<id>.json".
type BestPracticesLayout struct{}

// CatalogHref returns the normalized href for a catalog or collection. The
// root object sits directly in parentDir rather than an id subdirectory.
func (BestPracticesLayout) CatalogHref(cat Container, parentDir string, isRoot bool) string {
	name := "catalog.json"
	if cat.Type() == TypeCollection {
		name = "collection.json"
	}
	if isRoot {
		return path.Join(parentDir, name)
	}
	return path.Join(parentDir, cat.ID(), name)
}

// ItemHref returns the normalized href for an item.
func (BestPracticesLayout) ItemHref(item *Item, parentDir string) string {
	return path.Join(parentDir, item.ID(), item.ID()+".json")
}
