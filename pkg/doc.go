// Package pkg provides the core libraries for working with SpatioTemporal
// Asset Catalogs (STAC).
//
// # Overview
//
// A STAC catalog is a tree of JSON documents: catalogs and collections
// organize the tree, items describe individual spatiotemporal assets. The
// pkg directory is organized into these areas:
//
//  1. [stac] - The object graph (Catalog, Collection, Item, Link) with lazy
//     link resolution, href normalization and deep copying
//  2. [stac/extensions] - Typed views over extension property namespaces
//     plus schema-version migration hooks
//  3. [stacio] - The I/O collaborator (filesystem, HTTP, caches, MongoDB)
//  4. [cache] - Byte-level document caches (file, Redis, null)
//  5. [validate] - JSON-schema validation of serialized objects
//  6. [viz] - Graphviz rendering of catalog trees
//  7. [errors] - Structured error codes shared across the module
//
// # Architecture
//
// The typical data flow:
//
//	catalog.json (disk or HTTP)
//	         ↓
//	    [stacio] package (read text, with caching and retry)
//	         ↓
//	    [stac] package (identify, migrate, construct, traverse)
//	         ↓
//	    [validate] / [viz] / serialization back through [stacio]
//
// # Quick Start
//
//	io := stacio.NewDefault()
//	cat, err := stac.CatalogFromFile(ctx, href, io, nil)
//	if err != nil {
//	    return err
//	}
//	err = cat.Walk(ctx, func(c stac.Container, children []stac.Container, items []*stac.Item) error {
//	    fmt.Println(c.ID())
//	    return nil
//	})
package pkg
