// Package stacio implements the read/write collaborator the STAC object
// graph performs all of its I/O through.
//
// # Overview
//
//   - [Default]: local filesystem paths plus plain HTTP(S) GET with retry
//   - [Cached]: wraps another implementation with a byte cache for reads
//   - [Mongo]: stores documents in a MongoDB collection keyed by href
//
// Every implementation satisfies the same two-method contract consumed by
// the graph: read the text behind an href, write text to an href. Alternate
// backends (cloud object storage) slot in by implementing those two
// methods.
//
// # Quick Start
//
//	io := stacio.NewDefault()
//	cat, err := stac.CatalogFromFile(ctx, "https://example.com/catalog.json", io, nil)
package stacio
