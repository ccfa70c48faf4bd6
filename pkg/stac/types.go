package stac

// ObjectType identifies the concrete kind of a STAC object. The values match
// the "type" field of the JSON wire format.
type ObjectType string

// Object types.
const (
	TypeCatalog    ObjectType = "Catalog"
	TypeCollection ObjectType = "Collection"
	TypeItem       ObjectType = "Feature"
	TypeUnknown    ObjectType = ""
)

// Link relation types used by the core graph. Links with other rel values are
// carried through serialization untouched.
const (
	RelSelf        = "self"
	RelRoot        = "root"
	RelParent      = "parent"
	RelChild       = "child"
	RelItem        = "item"
	RelCollection  = "collection"
	RelSource      = "source"
	RelDerivedFrom = "derived_from"
	RelLicense     = "license"
	RelAlternate   = "alternate"
)

// Common media types for links and assets.
const (
	MediaTypeJSON    = "application/json"
	MediaTypeGeoJSON = "application/geo+json"
	MediaTypeHTML    = "text/html"
	MediaTypeText    = "text/plain"
	MediaTypeXML     = "application/xml"
	MediaTypePNG     = "image/png"
	MediaTypeJPEG    = "image/jpeg"
	MediaTypeGeoTIFF = "image/tiff; application=geotiff"
	MediaTypeCOG     = "image/tiff; application=geotiff; profile=cloud-optimized"
)

// CatalogType governs the href style used when a catalog tree is saved.
type CatalogType string

const (
	// CatalogTypeAbsolutePublished emits absolute hrefs everywhere and a
	// self link on every object. Saved trees are machine-addressable but
	// cannot be moved without rewriting.
	CatalogTypeAbsolutePublished CatalogType = "ABSOLUTE_PUBLISHED"

	// CatalogTypeRelativePublished emits relative hierarchical hrefs and a
	// single absolute self link on the root, anchoring the published
	// location while keeping the rest of the tree portable.
	CatalogTypeRelativePublished CatalogType = "RELATIVE_PUBLISHED"

	// CatalogTypeSelfContained emits relative hrefs and no self links at
	// all. Saved trees can be moved or shipped as a unit.
	CatalogTypeSelfContained CatalogType = "SELF_CONTAINED"
)
