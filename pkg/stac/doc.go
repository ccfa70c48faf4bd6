// Package stac models the SpatioTemporal Asset Catalog (STAC) object graph.
//
// # Overview
//
// STAC catalogs are disk- or network-distributed graphs of JSON documents:
// a [Catalog] organizes child catalogs, [Collection] objects and [Item]
// leaves through typed [Link] edges. This package provides the in-memory
// object graph, bidirectional JSON (de)serialization, lazy link resolution
// for traversing trees that span many files, and a per-root
// [ResolvedObjectCache] that collapses cycles and diamonds into a single
// canonical instance per logical object.
//
// # Core Types
//
//   - [Catalog]: node organizing children and items
//   - [Collection]: catalog with extent, license, providers, and summaries
//   - [Item]: leaf granule, a GeoJSON Feature with assets
//   - [Link]: typed, possibly-unresolved edge to another object
//   - [Asset]: named pointer to actual data associated with an Item or Collection
//   - [Summaries]: aggregated list/range/schema statistics on a Collection
//
// # Lazy Resolution
//
// Links embedded in parsed JSON stay unresolved (plain href strings) until
// traversed. Traversal methods such as [Catalog.Children], [Catalog.Items],
// and the root/parent getters may therefore perform blocking I/O through the
// [IO] collaborator and return an error. Resolution consults the owning
// root's cache so that two paths reaching the same logical object yield the
// same Go pointer, which is what makes back-edges ("source", "derived_from")
// and diamond-shaped trees safe.
//
// # Quick Start
//
//	io := stacio.NewDefault()
//	obj, err := stac.FromFile(ctx, "https://example.com/catalog.json", io, nil)
//	if err != nil {
//	    return err
//	}
//	cat := obj.(*stac.Catalog)
//	err = cat.Walk(ctx, func(c stac.Container, children []stac.Container, items []*stac.Item) error {
//	    fmt.Println(c.ID(), len(children), len(items))
//	    return nil
//	})
//
// # Concurrency
//
// A root catalog's object graph, including its resolved-object cache, is
// mutable shared state. It is not safe for concurrent mutation; callers must
// serialize access when sharing a root across goroutines.
package stac
