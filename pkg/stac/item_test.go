package stac

import (
	"context"
	"testing"
	"time"

	"github.com/stacforge/gostac/pkg/errors"
)

func TestNewItemNullDatetimeRequiresRange(t *testing.T) {
	_, err := NewItem("no-dt", nil, nil, nil, nil)
	if err == nil {
		t.Fatalf("NewItem accepted a null datetime without a range")
	}
	if errors.GetCode(err) != errors.ErrCodeInvalidDatetime {
		t.Errorf("error code = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidDatetime)
	}

	props := map[string]any{
		"start_datetime": "2020-01-01T00:00:00Z",
		"end_datetime":   "2020-02-01T00:00:00Z",
	}
	item, err := NewItem("ranged", nil, nil, nil, props)
	if err != nil {
		t.Fatalf("NewItem with range: %v", err)
	}
	v, ok := item.Properties["datetime"]
	if !ok || v != nil {
		t.Errorf("ranged item datetime = %v (present=%v), want explicit null", v, ok)
	}
	start, err := item.StartDatetime()
	if err != nil || start == nil {
		t.Errorf("StartDatetime = %v, %v", start, err)
	}
}

func TestItemDatetimeRoundTrip(t *testing.T) {
	dt := time.Date(2021, 6, 15, 12, 30, 0, 0, time.UTC)
	item, err := NewItem("dt", nil, nil, &dt, nil)
	if err != nil {
		t.Fatalf("NewItem: %v", err)
	}
	got, err := item.Datetime()
	if err != nil {
		t.Fatalf("Datetime: %v", err)
	}
	if got == nil || !got.Equal(dt) {
		t.Errorf("Datetime = %v, want %v", got, dt)
	}

	item.SetDatetime(nil)
	got, err = item.Datetime()
	if err != nil {
		t.Fatalf("Datetime after SetDatetime(nil): %v", err)
	}
	if got != nil {
		t.Errorf("Datetime = %v after SetDatetime(nil), want nil", got)
	}
}

func TestItemSetSelfHrefReanchorsAssets(t *testing.T) {
	item := mustItem(t, "item")
	if err := item.SetSelfHref("/a/b/item.json"); err != nil {
		t.Fatalf("SetSelfHref: %v", err)
	}
	item.AddAsset("data", &Asset{Href: "./data.tif", MediaType: MediaTypeCOG})
	item.AddAsset("thumb", &Asset{Href: "/a/b/thumb.png", MediaType: MediaTypePNG})

	if err := item.SetSelfHref("/a/c/item.json"); err != nil {
		t.Fatalf("SetSelfHref: %v", err)
	}

	if got := item.Assets["data"].Href; got != "../b/data.tif" {
		t.Errorf("relative asset href = %q, want ../b/data.tif", got)
	}
	if got := item.Assets["thumb"].Href; got != "/a/b/thumb.png" {
		t.Errorf("absolute asset href = %q, want unchanged /a/b/thumb.png", got)
	}
}

func TestItemAssetAbsoluteHref(t *testing.T) {
	item := mustItem(t, "item")
	if err := item.SetSelfHref("/data/item/item.json"); err != nil {
		t.Fatalf("SetSelfHref: %v", err)
	}
	item.AddAsset("data", &Asset{Href: "./data.tif"})

	if got := item.Assets["data"].AbsoluteHref(); got != "/data/item/data.tif" {
		t.Errorf("AbsoluteHref = %q, want /data/item/data.tif", got)
	}
}

func TestItemCommonMetadata(t *testing.T) {
	item := mustItem(t, "item")
	item.SetPlatform("landsat-8")
	item.SetInstruments([]string{"oli", "tirs"})
	item.SetGsd(30)
	item.SetLicense("CC-BY-4.0")

	if got := item.Platform(); got != "landsat-8" {
		t.Errorf("Platform = %q", got)
	}
	instruments := item.Instruments()
	if len(instruments) != 2 || instruments[0] != "oli" {
		t.Errorf("Instruments = %v", instruments)
	}
	if gsd := item.Gsd(); gsd == nil || *gsd != 30 {
		t.Errorf("Gsd = %v, want 30", gsd)
	}
	if got := item.License(); got != "CC-BY-4.0" {
		t.Errorf("License = %q", got)
	}
	if item.Gsd() != nil && item.Properties["gsd"] == nil {
		t.Errorf("Gsd accessor and property bag disagree")
	}
}

func TestItemCloneIsDeep(t *testing.T) {
	item := mustItem(t, "item")
	item.Geometry = map[string]any{"type": "Point", "coordinates": []any{1.0, 2.0}}
	item.Properties["platform"] = "sentinel-2a"
	item.AddAsset("data", &Asset{Href: "./data.tif"})

	clone := item.Clone().(*Item)
	clone.Properties["platform"] = "changed"
	clone.Geometry["type"] = "Polygon"
	clone.Assets["data"].Href = "./other.tif"

	if item.Properties["platform"] != "sentinel-2a" {
		t.Errorf("clone mutation leaked into original properties")
	}
	if item.Geometry["type"] != "Point" {
		t.Errorf("clone mutation leaked into original geometry")
	}
	if item.Assets["data"].Href != "./data.tif" {
		t.Errorf("clone mutation leaked into original assets")
	}
	if clone.Assets["data"].Owner() != Object(clone) {
		t.Errorf("cloned asset owner is not the clone")
	}
}

func TestItemCollectionLink(t *testing.T) {
	ctx := context.Background()
	coll := NewCollection("coll", "a collection", GlobalExtent())
	item := mustItem(t, "item")

	if err := coll.AddItem(ctx, item); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if got := item.CollectionID(); got != "coll" {
		t.Errorf("CollectionID = %q, want coll", got)
	}
	got, err := item.Collection(ctx)
	if err != nil {
		t.Fatalf("Collection: %v", err)
	}
	if got != coll {
		t.Errorf("Collection returned a different instance")
	}

	item.SetCollection(nil)
	if item.CollectionID() != "" {
		t.Errorf("CollectionID not cleared")
	}
	if item.GetSingleLink(RelCollection) != nil {
		t.Errorf("collection link not cleared")
	}
}
