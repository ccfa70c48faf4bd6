package stac

import "testing"

func TestIdentifyByTypeField(t *testing.T) {
	cases := []struct {
		typ  string
		want ObjectType
	}{
		{"Catalog", TypeCatalog},
		{"Collection", TypeCollection},
		{"Feature", TypeItem},
	}
	for _, tc := range cases {
		info := Identify(map[string]any{"type": tc.typ})
		if info.ObjectType != tc.want {
			t.Errorf("Identify(type=%s) = %s, want %s", tc.typ, info.ObjectType, tc.want)
		}
	}
}

func TestIdentifyPreTypeDocuments(t *testing.T) {
	cases := []struct {
		name string
		d    map[string]any
		want ObjectType
	}{
		{
			"collection by extent and license",
			map[string]any{"extent": map[string]any{}, "license": "MIT", "description": "d", "links": []any{}},
			TypeCollection,
		},
		{
			"item by geometry",
			map[string]any{"geometry": nil, "properties": map[string]any{}},
			TypeItem,
		},
		{
			"catalog by description and links",
			map[string]any{"description": "d", "links": []any{}},
			TypeCatalog,
		},
		{
			"unrecognizable",
			map[string]any{"id": "mystery"},
			TypeUnknown,
		},
	}
	for _, tc := range cases {
		if info := Identify(tc.d); info.ObjectType != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, info.ObjectType, tc.want)
		}
	}
}

func TestIdentifyVersionAndExtensions(t *testing.T) {
	d := map[string]any{
		"type":            "Feature",
		"stac_version":    "0.8.1",
		"stac_extensions": []any{"eo", "sar"},
	}
	info := Identify(d)
	if info.Version != "0.8.1" {
		t.Errorf("version = %q, want 0.8.1", info.Version)
	}
	if len(info.Extensions) != 2 || info.Extensions[0] != "eo" {
		t.Errorf("extensions = %v", info.Extensions)
	}

	// Missing version means current.
	info = Identify(map[string]any{"type": "Catalog"})
	if info.Version != DefaultStacVersion {
		t.Errorf("default version = %q, want %q", info.Version, DefaultStacVersion)
	}
}

func TestMigrateDictRewritesShortExtensionIDs(t *testing.T) {
	d := map[string]any{
		"type":            "Feature",
		"id":              "old",
		"stac_version":    "0.9.0",
		"stac_extensions": []any{"eo", "https://example.com/custom/v1.0.0/schema.json"},
		"properties":      map[string]any{},
	}
	info := Identify(d)
	MigrateDict(d, info, nil)

	if d["stac_version"] != DefaultStacVersion {
		t.Errorf("stac_version = %v, want %s", d["stac_version"], DefaultStacVersion)
	}
	exts := d["stac_extensions"].([]any)
	if exts[0] != "https://stac-extensions.github.io/eo/v1.0.0/schema.json" {
		t.Errorf("short id not rewritten: %v", exts[0])
	}
	if exts[1] != "https://example.com/custom/v1.0.0/schema.json" {
		t.Errorf("unknown extension URI was rewritten: %v", exts[1])
	}
}

func TestMigrateDictAddsTypeField(t *testing.T) {
	d := map[string]any{
		"id":           "old",
		"description":  "a pre-type catalog",
		"stac_version": "0.8.0",
		"links":        []any{},
	}
	MigrateDict(d, Identify(d), nil)
	if d["type"] != string(TypeCatalog) {
		t.Errorf("type = %v, want Catalog", d["type"])
	}
}

type renamingHooks struct {
	uri     string
	prev    []string
	applied int
}

func (h *renamingHooks) SchemaURI() string          { return h.uri }
func (h *renamingHooks) PrevExtensionIDs() []string { return h.prev }
func (h *renamingHooks) Migrate(d map[string]any, version string, _ Identification) {
	h.applied++
	d["migrated_from"] = version
}

func TestHooksRegistryDispatch(t *testing.T) {
	matching := &renamingHooks{
		uri:  "https://example.com/ext/v2.0.0/schema.json",
		prev: []string{"ext", "https://example.com/ext/v1.0.0/schema.json"},
	}
	other := &renamingHooks{uri: "https://example.com/other/v1.0.0/schema.json"}
	reg := NewHooksRegistry(matching, other)

	d := map[string]any{
		"type":            "Feature",
		"stac_version":    "0.9.0",
		"stac_extensions": []any{"ext"},
		"properties":      map[string]any{},
	}
	MigrateDict(d, Identify(d), reg)

	if matching.applied != 1 {
		t.Errorf("matching hook ran %d times, want 1", matching.applied)
	}
	if other.applied != 0 {
		t.Errorf("non-matching hook ran %d times", other.applied)
	}
	if d["migrated_from"] != "0.9.0" {
		t.Errorf("hook did not see the source version: %v", d["migrated_from"])
	}
	exts := d["stac_extensions"].([]any)
	if len(exts) != 1 || exts[0] != matching.uri {
		t.Errorf("declared extension not rewritten to current URI: %v", exts)
	}
}

func TestCompareVersions(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.0", 0},
		{"0.9.0", "1.0.0", -1},
		{"1.0.0", "0.9.0", 1},
		{"0.8.1", "0.9.0", -1},
		{"1.0.0-beta.2", "1.0.0", -1},
		{"1.0.0-beta.1", "1.0.0-beta.2", -1},
		{"1.0", "1.0.0", 0},
	}
	for _, tc := range cases {
		if got := CompareVersions(tc.a, tc.b); got != tc.want {
			t.Errorf("CompareVersions(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestExtensionFamily(t *testing.T) {
	a := ExtensionFamily("https://stac-extensions.github.io/eo/v1.0.0/schema.json")
	b := ExtensionFamily("https://stac-extensions.github.io/eo/v1.1.0/schema.json")
	if a != b {
		t.Errorf("families differ: %q vs %q", a, b)
	}
	c := ExtensionFamily("https://stac-extensions.github.io/sar/v1.0.0/schema.json")
	if a == c {
		t.Errorf("distinct extensions share a family: %q", a)
	}
}
