package viz

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stacforge/gostac/pkg/stac"
)

func buildTree(t *testing.T) *stac.Catalog {
	t.Helper()
	ctx := context.Background()

	cat := stac.NewCatalog("root", "a catalog")
	coll := stac.NewCollection("coll", "a collection", stac.GlobalExtent())
	if err := cat.AddChild(ctx, coll); err != nil {
		t.Fatalf("AddChild: %v", err)
	}

	dt := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	item, err := stac.NewItem("item-1", nil, nil, &dt, nil)
	if err != nil {
		t.Fatalf("NewItem: %v", err)
	}
	if err := coll.AddItem(ctx, item); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	return cat
}

func TestToDOTNodesAndEdges(t *testing.T) {
	cat := buildTree(t)

	dot, err := ToDOT(context.Background(), cat, Options{})
	if err != nil {
		t.Fatalf("ToDOT: %v", err)
	}

	if !strings.HasPrefix(dot, "digraph G {") {
		t.Errorf("output does not start a digraph: %q", dot[:min(len(dot), 40)])
	}
	for _, want := range []string{`"root"`, `"coll"`, `"root" -> "coll";`} {
		if !strings.Contains(dot, want) {
			t.Errorf("output is missing %q", want)
		}
	}
	if strings.Contains(dot, `"item-1"`) {
		t.Errorf("items rendered without IncludeItems")
	}
	// Collections are visually distinguished from plain catalogs.
	if !strings.Contains(dot, "peripheries=2") {
		t.Errorf("collection node lacks its double border")
	}
}

func TestToDOTIncludeItems(t *testing.T) {
	cat := buildTree(t)

	dot, err := ToDOT(context.Background(), cat, Options{IncludeItems: true})
	if err != nil {
		t.Fatalf("ToDOT: %v", err)
	}
	if !strings.Contains(dot, `"item-1"`) {
		t.Errorf("item node missing")
	}
	if !strings.Contains(dot, `"coll" -> "item-1" [style=dashed];`) {
		t.Errorf("item edge missing or not dashed")
	}
}

func TestToDOTDetailedLabels(t *testing.T) {
	cat := buildTree(t)
	cat.Title = "Root Title"

	dot, err := ToDOT(context.Background(), cat, Options{Detailed: true})
	if err != nil {
		t.Fatalf("ToDOT: %v", err)
	}
	if !strings.Contains(dot, "Root Title") {
		t.Errorf("detailed label is missing the title")
	}
	if !strings.Contains(dot, "1 items") {
		t.Errorf("detailed label is missing the item count")
	}
}
