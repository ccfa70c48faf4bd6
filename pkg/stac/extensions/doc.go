// Package extensions implements typed views over the namespaced property
// bags that STAC extensions define on core objects.
//
// # Design
//
// An extension never owns state. Each view (for example [EOItemExt]) holds a
// reference to the canonical property map of the object it extends, plus
// optional fallback maps consulted on reads, and exposes typed accessors
// over namespaced keys ("eo:cloud_cover"). Setting a nil value pops the key
// so serialized JSON stays minimal; fields where null is meaningful opt out
// via [Props.SetKeep].
//
// Presence is structural, not nominal: an object carries extension X iff its
// stac_extensions list contains a URI in X's schema-URI family, compared
// ignoring the version segment. [Spec] implements the presence operations
// shared by every extension.
//
// # Migration
//
// Extensions with renamed or restructured fields in older schema versions
// implement [github.com/stacforge/gostac/pkg/stac.ExtensionHooks].
// [DefaultHooks] bundles the hooks of every extension in this package;
// applications pass it (or their own registry) to deserialization.
package extensions
