package validate

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/stacforge/gostac/pkg/stac"
)

func TestSchemaURIsPerType(t *testing.T) {
	cat := stac.NewCatalog("cat", "a catalog")
	if uris := SchemaURIs(cat); len(uris) != 1 || uris[0] != CatalogSchemaURI {
		t.Errorf("catalog schemas = %v", uris)
	}

	coll := stac.NewCollection("coll", "a collection", stac.GlobalExtent())
	if uris := SchemaURIs(coll); len(uris) != 1 || uris[0] != CollectionSchemaURI {
		t.Errorf("collection schemas = %v", uris)
	}

	dt := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	item, err := stac.NewItem("item", nil, nil, &dt, nil)
	if err != nil {
		t.Fatalf("NewItem: %v", err)
	}
	if uris := SchemaURIs(item); len(uris) != 1 || uris[0] != ItemSchemaURI {
		t.Errorf("item schemas = %v", uris)
	}
}

func TestSchemaURIsIncludeExtensions(t *testing.T) {
	dt := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	item, err := stac.NewItem("item", nil, nil, &dt, nil)
	if err != nil {
		t.Fatalf("NewItem: %v", err)
	}
	ext := "https://stac-extensions.github.io/eo/v1.1.0/schema.json"
	item.SetExtensions([]string{ext})

	uris := SchemaURIs(item)
	if len(uris) != 2 || uris[0] != ItemSchemaURI || uris[1] != ext {
		t.Errorf("schemas = %v, want core schema then extension", uris)
	}
}

func TestNormalizeJSON(t *testing.T) {
	in := map[string]any{
		"bbox":  []float64{-10, -5, 10, 5},
		"count": 3,
		"tags":  []string{"a", "b"},
		"nested": map[string]any{
			"ratio": float32(0.5),
		},
	}
	want := map[string]any{
		"bbox":  []any{-10.0, -5.0, 10.0, 5.0},
		"count": 3.0,
		"tags":  []any{"a", "b"},
		"nested": map[string]any{
			"ratio": 0.5,
		},
	}
	if got := normalizeJSON(in); !reflect.DeepEqual(got, want) {
		t.Errorf("normalizeJSON =\n%#v\nwant\n%#v", got, want)
	}
}

func TestErrorMessageListsSchemas(t *testing.T) {
	err := &Error{
		ObjectID: "item",
		Failures: []Failure{
			{SchemaURI: ItemSchemaURI},
			{SchemaURI: "https://stac-extensions.github.io/eo/v1.1.0/schema.json"},
		},
	}
	msg := err.Error()
	if msg == "" {
		t.Fatalf("empty error message")
	}
	for _, f := range err.Failures {
		if !strings.Contains(msg, f.SchemaURI) {
			t.Errorf("message %q does not mention %s", msg, f.SchemaURI)
		}
	}
}
