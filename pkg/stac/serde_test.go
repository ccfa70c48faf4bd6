package stac

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/stacforge/gostac/pkg/errors"
)

func TestItemRoundTrip(t *testing.T) {
	dt := time.Date(2021, 3, 1, 8, 0, 0, 0, time.UTC)
	item, err := NewItem("rt", map[string]any{"type": "Point", "coordinates": []any{1.5, 2.5}},
		[]float64{1.5, 2.5, 1.5, 2.5}, &dt, map[string]any{"platform": "sentinel-2a"})
	if err != nil {
		t.Fatalf("NewItem: %v", err)
	}
	item.AddAsset("data", &Asset{Href: "./data.tif", MediaType: MediaTypeCOG, Roles: []string{"data"}})
	item.ExtraFields()["custom:field"] = "kept"

	d := item.ToDict(false)
	parsed, err := FromDict(d, nil)
	if err != nil {
		t.Fatalf("FromDict: %v", err)
	}
	if _, ok := parsed.(*Item); !ok {
		t.Fatalf("FromDict returned a %T, want *Item", parsed)
	}

	if got := parsed.ToDict(false); !reflect.DeepEqual(got, d) {
		t.Errorf("round trip changed the document:\ngot  %#v\nwant %#v", got, d)
	}
}

func TestCollectionRoundTrip(t *testing.T) {
	coll := NewCollection("rt", "a collection", GlobalExtent())
	coll.Title = "Round Trip"
	coll.Keywords = []string{"test"}
	coll.Providers = []*Provider{{Name: "ACME", Roles: []string{ProviderRoleProducer}}}
	coll.Summaries.Add("platform", []any{"sentinel-2a", "sentinel-2b"})
	coll.Summaries.Add("eo:cloud_cover", RangeSummary{Minimum: 0.0, Maximum: 80.0})

	d := coll.ToDict(false)
	parsed, err := FromDict(d, nil)
	if err != nil {
		t.Fatalf("FromDict: %v", err)
	}
	parsedColl, ok := parsed.(*Collection)
	if !ok {
		t.Fatalf("FromDict returned a %T, want *Collection", parsed)
	}
	if parsedColl.License != DefaultLicense {
		t.Errorf("license = %q, want %q", parsedColl.License, DefaultLicense)
	}

	if got := parsedColl.ToDict(false); !reflect.DeepEqual(got, d) {
		t.Errorf("round trip changed the document:\ngot  %#v\nwant %#v", got, d)
	}
}

func TestCatalogRoundTrip(t *testing.T) {
	cat := NewCatalog("rt", "a catalog")
	cat.Title = "Round Trip"

	d := cat.ToDict(false)
	parsed, err := FromDict(d, nil)
	if err != nil {
		t.Fatalf("FromDict: %v", err)
	}
	if got := parsed.ToDict(false); !reflect.DeepEqual(got, d) {
		t.Errorf("round trip changed the document:\ngot  %#v\nwant %#v", got, d)
	}
}

func TestFromDictUnrecognizable(t *testing.T) {
	_, err := FromDict(map[string]any{"id": "mystery"}, nil)
	if err == nil {
		t.Fatalf("FromDict accepted an unrecognizable dict")
	}
	if errors.GetCode(err) != errors.ErrCodeInvalidObject {
		t.Errorf("error code = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidObject)
	}
}

func TestFromDictRejectsNullDatetimeWithoutRange(t *testing.T) {
	itemDict := func(props map[string]any) map[string]any {
		return map[string]any{
			"type":         "Feature",
			"id":           "bad",
			"stac_version": DefaultStacVersion,
			"geometry":     nil,
			"properties":   props,
			"assets":       map[string]any{},
			"links":        []any{},
		}
	}

	_, err := FromDict(itemDict(map[string]any{"datetime": nil}), nil)
	if errors.GetCode(err) != errors.ErrCodeInvalidDatetime {
		t.Errorf("null datetime: error code = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidDatetime)
	}

	_, err = FromDict(itemDict(map[string]any{}), nil)
	if errors.GetCode(err) != errors.ErrCodeInvalidDatetime {
		t.Errorf("absent datetime: error code = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidDatetime)
	}

	obj, err := FromDict(itemDict(map[string]any{
		"datetime":       nil,
		"start_datetime": "2020-01-01T00:00:00Z",
		"end_datetime":   "2020-02-01T00:00:00Z",
	}), nil)
	if err != nil {
		t.Fatalf("null datetime with a range rejected: %v", err)
	}
	if _, ok := obj.(*Item); !ok {
		t.Errorf("FromDict returned a %T, want *Item", obj)
	}
}

func TestFromDictMigratesOldCollection(t *testing.T) {
	d := map[string]any{
		"id":           "old",
		"description":  "a pre-1.0 collection",
		"license":      "MIT",
		"stac_version": "0.6.2",
		"extent": map[string]any{
			"spatial":  []any{-180.0, -90.0, 180.0, 90.0},
			"temporal": []any{"2019-01-01T00:00:00Z", nil},
		},
		"links": []any{},
	}

	obj, err := FromDict(d, nil)
	if err != nil {
		t.Fatalf("FromDict: %v", err)
	}
	coll, ok := obj.(*Collection)
	if !ok {
		t.Fatalf("FromDict returned a %T, want *Collection", obj)
	}
	if coll.StacVersion() != DefaultStacVersion {
		t.Errorf("stac version = %q, want %q", coll.StacVersion(), DefaultStacVersion)
	}
	if coll.Extent == nil || coll.Extent.Spatial == nil || len(coll.Extent.Spatial.Bboxes) != 1 {
		t.Fatalf("flat spatial extent not migrated: %#v", coll.Extent)
	}
	if got := coll.Extent.Spatial.Bboxes[0][2]; got != 180.0 {
		t.Errorf("migrated bbox east bound = %v, want 180", got)
	}
	if len(coll.Extent.Temporal.Intervals) != 1 || coll.Extent.Temporal.Intervals[0][1] != nil {
		t.Errorf("flat temporal extent not migrated: %#v", coll.Extent.Temporal)
	}

	// Migration copies before rewriting; the caller's dict is untouched.
	if d["stac_version"] != "0.6.2" {
		t.Errorf("FromDict mutated the input dict")
	}
}

func TestFromFileSetsSelfHrefAndIO(t *testing.T) {
	ctx := context.Background()
	io := newTestIO()

	item, err := ItemFromFile(ctx, "/data/a/a.json", io, nil)
	if err != nil {
		t.Fatalf("ItemFromFile: %v", err)
	}
	if got := item.SelfHref(); got != "/data/a/a.json" {
		t.Errorf("self href = %q, want /data/a/a.json", got)
	}
	if item.common().io == nil {
		t.Errorf("reader I/O not attached to the parsed object")
	}
}

func TestCatalogFromFileRejectsItem(t *testing.T) {
	ctx := context.Background()
	io := newTestIO()

	_, err := CatalogFromFile(ctx, "/data/a/a.json", io, nil)
	if errors.GetCode(err) != errors.ErrCodeTypeError {
		t.Errorf("error code = %s, want %s", errors.GetCode(err), errors.ErrCodeTypeError)
	}
}

func TestFromDictSkipMigration(t *testing.T) {
	d := map[string]any{
		"type":         "Catalog",
		"id":           "old",
		"description":  "stays old",
		"stac_version": "0.9.0",
		"links":        []any{},
	}
	obj, err := FromDict(d, &FromDictOptions{SkipMigration: true})
	if err != nil {
		t.Fatalf("FromDict: %v", err)
	}
	if got := obj.StacVersion(); got != "0.9.0" {
		t.Errorf("stac version = %q, want 0.9.0 (migration skipped)", got)
	}
}
