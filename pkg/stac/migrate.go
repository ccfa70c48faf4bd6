package stac

import "regexp"

// Identification summarizes a raw STAC dict before object construction: its
// concrete type, source spec version and declared extension ids.
type Identification struct {
	ObjectType ObjectType
	Version    string
	Extensions []string
}

// Identify inspects a raw dict and determines what kind of STAC object it
// describes. Documents from spec versions before the "type" field became
// mandatory are classified by their distinguishing keys: an extent plus
// license means Collection, a geometry or properties member means Item, and
// a description with links means Catalog.
func Identify(d map[string]any) Identification {
	info := Identification{Version: DefaultStacVersion}
	if v, ok := d["stac_version"].(string); ok && v != "" {
		info.Version = v
	}
	if raw, ok := d["stac_extensions"].([]any); ok {
		for _, e := range raw {
			if s, ok := e.(string); ok {
				info.Extensions = append(info.Extensions, s)
			}
		}
	}

	switch d["type"] {
	case string(TypeCatalog):
		info.ObjectType = TypeCatalog
		return info
	case string(TypeCollection):
		info.ObjectType = TypeCollection
		return info
	case string(TypeItem):
		info.ObjectType = TypeItem
		return info
	}

	_, hasExtent := d["extent"]
	_, hasLicense := d["license"]
	_, hasGeometry := d["geometry"]
	_, hasProperties := d["properties"]
	_, hasDescription := d["description"]
	_, hasLinks := d["links"]

	switch {
	case hasExtent && hasLicense:
		info.ObjectType = TypeCollection
	case hasGeometry || hasProperties:
		info.ObjectType = TypeItem
	case hasDescription && hasLinks:
		info.ObjectType = TypeCatalog
	default:
		info.ObjectType = TypeUnknown
	}
	return info
}

// ExtensionHooks is implemented by extensions that need to rewrite raw dicts
// produced under older schema versions before object construction.
type ExtensionHooks interface {
	// SchemaURI returns the extension's current schema URI.
	SchemaURI() string
	// PrevExtensionIDs lists older URIs and short ids that identify the same
	// extension in pre-migration documents.
	PrevExtensionIDs() []string
	// Migrate rewrites d in place. version is the source STAC spec version;
	// info summarizes the document before any migration ran.
	Migrate(d map[string]any, version string, info Identification)
}

// HooksRegistry holds the extension hooks consulted during migration.
// Construct one at startup with the hooks your application knows about and
// pass it through [FromDictOptions]; there is no process-wide registry.
type HooksRegistry struct {
	hooks []ExtensionHooks
}

// NewHooksRegistry builds a registry from the given hooks, dispatched in
// argument order.
func NewHooksRegistry(hooks ...ExtensionHooks) *HooksRegistry {
	return &HooksRegistry{hooks: hooks}
}

// Add appends a hook. Intended for test scenarios; production registries
// should be fully built at construction time.
func (r *HooksRegistry) Add(h ExtensionHooks) {
	r.hooks = append(r.hooks, h)
}

// Migrate runs every hook whose current or previous ids appear in the
// document's declared extensions, in registration order, then rewrites the
// matched ids to the hook's current schema URI.
func (r *HooksRegistry) Migrate(d map[string]any, info Identification) {
	if r == nil {
		return
	}
	for _, h := range r.hooks {
		ids := map[string]bool{h.SchemaURI(): true}
		for _, id := range h.PrevExtensionIDs() {
			ids[id] = true
		}
		matched := false
		for _, declared := range info.Extensions {
			if ids[declared] {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		h.Migrate(d, info.Version, info)
		replaceExtensionIDs(d, ids, h.SchemaURI())
	}
}

// oldExtensionSchemaURIs maps the short extension ids used by pre-1.0 STAC
// versions to current schema URIs.
var oldExtensionSchemaURIs = map[string]string{
	"checksum":    "https://stac-extensions.github.io/file/v1.0.0/schema.json",
	"datacube":    "https://stac-extensions.github.io/datacube/v1.0.0/schema.json",
	"eo":          "https://stac-extensions.github.io/eo/v1.0.0/schema.json",
	"item-assets": "https://stac-extensions.github.io/item-assets/v1.0.0/schema.json",
	"label":       "https://stac-extensions.github.io/label/v1.0.0/schema.json",
	"pointcloud":  "https://stac-extensions.github.io/pointcloud/v1.0.0/schema.json",
	"projection":  "https://stac-extensions.github.io/projection/v1.0.0/schema.json",
	"sar":         "https://stac-extensions.github.io/sar/v1.0.0/schema.json",
	"sat":         "https://stac-extensions.github.io/sat/v1.0.0/schema.json",
	"scientific":  "https://stac-extensions.github.io/scientific/v1.0.0/schema.json",
	"version":     "https://stac-extensions.github.io/version/v1.0.0/schema.json",
	"view":        "https://stac-extensions.github.io/view/v1.0.0/schema.json",
}

// MigrateDict rewrites a raw dict from an older STAC version into the
// current schema: core field migrations first, then every matching
// extension hook from reg, then the version stamp. The dict is mutated in
// place and also returned.
func MigrateDict(d map[string]any, info Identification, reg *HooksRegistry) map[string]any {
	migrateCore(d, info)
	reg.Migrate(d, info)
	d["stac_version"] = DefaultStacVersion
	return d
}

func migrateCore(d map[string]any, info Identification) {
	if _, ok := d["type"]; !ok && info.ObjectType != TypeUnknown {
		d["type"] = string(info.ObjectType)
	}

	// Pre-1.0 documents declare extensions by short id rather than URI.
	if raw, ok := d["stac_extensions"].([]any); ok {
		rewritten := make([]any, 0, len(raw))
		for _, e := range raw {
			s, ok := e.(string)
			if !ok {
				continue
			}
			if uri, known := oldExtensionSchemaURIs[s]; known {
				s = uri
			}
			rewritten = append(rewritten, s)
		}
		d["stac_extensions"] = rewritten
	}

	if info.ObjectType == TypeCollection && VersionLessThan(info.Version, "1.0.0-beta.1") {
		migrateCollectionStacExtent(d)
	}
}

// migrateCollectionStacExtent rewrites the flat pre-beta extent form
// {"spatial": [...], "temporal": [...]} into the nested bbox/interval form.
func migrateCollectionStacExtent(d map[string]any) {
	extent, ok := d["extent"].(map[string]any)
	if !ok {
		return
	}
	if flat, ok := extent["spatial"].([]any); ok {
		extent["spatial"] = map[string]any{"bbox": []any{flat}}
	}
	if flat, ok := extent["temporal"].([]any); ok {
		extent["temporal"] = map[string]any{"interval": []any{flat}}
	}
}

func replaceExtensionIDs(d map[string]any, old map[string]bool, current string) {
	raw, ok := d["stac_extensions"].([]any)
	if !ok {
		return
	}
	out := make([]any, 0, len(raw))
	seen := false
	for _, e := range raw {
		s, isStr := e.(string)
		if isStr && old[s] {
			if !seen {
				out = append(out, current)
				seen = true
			}
			continue
		}
		out = append(out, e)
	}
	d["stac_extensions"] = out
}

// extensionFamilyRe strips the version segment from a schema URI so that
// URIs of different versions of one extension compare equal.
var extensionFamilyRe = regexp.MustCompile(`/v[0-9][^/]*/`)

// ExtensionFamily returns uri with its version segment normalized, used for
// version-agnostic extension presence checks.
func ExtensionFamily(uri string) string {
	return extensionFamilyRe.ReplaceAllString(uri, "/")
}
