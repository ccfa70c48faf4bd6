package stac

import (
	"context"
	"testing"
	"time"

	json "github.com/goccy/go-json"
)

func mustItem(t *testing.T, id string) *Item {
	t.Helper()
	dt := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	item, err := NewItem(id, nil, nil, &dt, nil)
	if err != nil {
		t.Fatalf("NewItem(%s): %v", id, err)
	}
	return item
}

func TestNewCatalogIsSelfRooted(t *testing.T) {
	cat := NewCatalog("root", "a catalog")
	if !cat.IsRoot() {
		t.Errorf("new catalog is not its own root")
	}
	if !cat.resolvedCache().Contains(cat) {
		t.Errorf("new catalog is missing from its own cache")
	}
}

func TestAddChildSetsRootAndParent(t *testing.T) {
	ctx := context.Background()
	cat := NewCatalog("root", "a catalog")
	child := NewCatalog("child", "a child")

	if err := cat.AddChild(ctx, child); err != nil {
		t.Fatalf("AddChild: %v", err)
	}

	root, err := child.Root(ctx)
	if err != nil {
		t.Fatalf("Root: %v", err)
	}
	if root != Object(cat) {
		t.Errorf("child root = %v, want the parent catalog", root)
	}
	parent, err := child.Parent(ctx)
	if err != nil {
		t.Fatalf("Parent: %v", err)
	}
	if parent != Object(cat) {
		t.Errorf("child parent = %v, want the parent catalog", parent)
	}
	if !cat.resolvedCache().Contains(child) {
		t.Errorf("child missing from the root cache")
	}

	children, err := cat.Children(ctx)
	if err != nil {
		t.Fatalf("Children: %v", err)
	}
	if len(children) != 1 || children[0] != Container(child) {
		t.Errorf("Children returned %v, want the attached child", children)
	}
}

func TestAddChildAssignsLayoutHref(t *testing.T) {
	ctx := context.Background()
	cat := NewCatalog("root", "a catalog")
	if err := cat.SetSelfHref("/data/catalog.json"); err != nil {
		t.Fatalf("SetSelfHref: %v", err)
	}
	child := NewCatalog("child", "a child")
	if err := cat.AddChild(ctx, child); err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	if got := child.SelfHref(); got != "/data/child/catalog.json" {
		t.Errorf("child self href = %q, want /data/child/catalog.json", got)
	}
}

func TestRemoveChildDetaches(t *testing.T) {
	ctx := context.Background()
	cat := NewCatalog("root", "a catalog")
	child := NewCatalog("child", "a child")
	if err := cat.AddChild(ctx, child); err != nil {
		t.Fatalf("AddChild: %v", err)
	}

	cat.RemoveChild("child")

	children, err := cat.Children(ctx)
	if err != nil {
		t.Fatalf("Children: %v", err)
	}
	if len(children) != 0 {
		t.Errorf("catalog still has %d children after removal", len(children))
	}
	if cat.resolvedCache().Contains(child) {
		t.Errorf("removed child still cached")
	}
	if child.GetSingleLink(RelRoot) != nil {
		t.Errorf("removed child kept its root link")
	}
}

func TestWalkVisitsDepthFirst(t *testing.T) {
	ctx := context.Background()
	cat := NewCatalog("root", "a catalog")
	c1 := NewCatalog("c1", "first child")
	c2 := NewCatalog("c2", "second child")
	grand := NewCatalog("grand", "grandchild")

	if err := cat.AddChild(ctx, c1); err != nil {
		t.Fatalf("AddChild c1: %v", err)
	}
	if err := cat.AddChild(ctx, c2); err != nil {
		t.Fatalf("AddChild c2: %v", err)
	}
	if err := c1.AddChild(ctx, grand); err != nil {
		t.Fatalf("AddChild grand: %v", err)
	}
	if err := c2.AddItem(ctx, mustItem(t, "i1")); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	var visited []string
	var itemIDs []string
	err := cat.Walk(ctx, func(c Container, _ []Container, items []*Item) error {
		visited = append(visited, c.ID())
		for _, item := range items {
			itemIDs = append(itemIDs, item.ID())
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}

	want := []string{"root", "c1", "grand", "c2"}
	if len(visited) != len(want) {
		t.Fatalf("visited %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Fatalf("visited %v, want %v", visited, want)
		}
	}
	if len(itemIDs) != 1 || itemIDs[0] != "i1" {
		t.Errorf("walk saw items %v, want [i1]", itemIDs)
	}
}

func TestDescribe(t *testing.T) {
	ctx := context.Background()
	cat := NewCatalog("root", "a catalog")
	c1 := NewCatalog("c1", "a child")
	if err := cat.AddChild(ctx, c1); err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	if err := c1.AddItem(ctx, mustItem(t, "i1")); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	got, err := cat.Describe(ctx)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	want := "* <Catalog id=root>\n    * <Catalog id=c1>\n        * <Feature id=i1>\n"
	if got != want {
		t.Errorf("Describe =\n%q\nwant\n%q", got, want)
	}
}

func TestFullCopyPreservesSharedStructure(t *testing.T) {
	ctx := context.Background()
	cat := NewCatalog("root", "a catalog")
	c1 := NewCatalog("c1", "first child")
	c2 := NewCatalog("c2", "second child")
	shared := mustItem(t, "shared")

	if err := cat.AddChild(ctx, c1); err != nil {
		t.Fatalf("AddChild c1: %v", err)
	}
	if err := cat.AddChild(ctx, c2); err != nil {
		t.Fatalf("AddChild c2: %v", err)
	}
	// Both children reference the same item, forming a diamond.
	if err := c1.AddItem(ctx, shared); err != nil {
		t.Fatalf("c1.AddItem: %v", err)
	}
	if err := c2.AddItem(ctx, shared); err != nil {
		t.Fatalf("c2.AddItem: %v", err)
	}

	copied, err := cat.FullCopy(ctx)
	if err != nil {
		t.Fatalf("FullCopy: %v", err)
	}
	copiedCat, ok := copied.(*Catalog)
	if !ok {
		t.Fatalf("FullCopy returned a %T, want *Catalog", copied)
	}
	if !copiedCat.IsRoot() {
		t.Errorf("copied catalog is not its own root")
	}

	children, err := copiedCat.Children(ctx)
	if err != nil {
		t.Fatalf("Children: %v", err)
	}
	if len(children) != 2 {
		t.Fatalf("copy has %d children, want 2", len(children))
	}

	items1, err := children[0].Items(ctx)
	if err != nil {
		t.Fatalf("Items of first child: %v", err)
	}
	items2, err := children[1].Items(ctx)
	if err != nil {
		t.Fatalf("Items of second child: %v", err)
	}
	if len(items1) != 1 || len(items2) != 1 {
		t.Fatalf("copied children have %d and %d items, want 1 each", len(items1), len(items2))
	}
	if items1[0] != items2[0] {
		t.Errorf("diamond collapsed into two distinct item copies")
	}
	if items1[0] == shared {
		t.Errorf("copy shares the original item instance")
	}
	if children[0] == Container(c1) || children[1] == Container(c2) {
		t.Errorf("copy shares original child instances")
	}
}

func TestNormalizeHrefs(t *testing.T) {
	ctx := context.Background()
	cat := NewCatalog("root", "a catalog")
	c1 := NewCatalog("c1", "a child")
	item := mustItem(t, "i1")

	if err := cat.AddChild(ctx, c1); err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	if err := c1.AddItem(ctx, item); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if err := cat.NormalizeHrefs(ctx, "/data", nil); err != nil {
		t.Fatalf("NormalizeHrefs: %v", err)
	}

	if got := cat.SelfHref(); got != "/data/catalog.json" {
		t.Errorf("root self href = %q, want /data/catalog.json", got)
	}
	if got := c1.SelfHref(); got != "/data/c1/catalog.json" {
		t.Errorf("child self href = %q, want /data/c1/catalog.json", got)
	}
	if got := item.SelfHref(); got != "/data/c1/i1/i1.json" {
		t.Errorf("item self href = %q, want /data/c1/i1/i1.json", got)
	}
}

func TestNormalizeHrefsCollection(t *testing.T) {
	ctx := context.Background()
	cat := NewCatalog("root", "a catalog")
	coll := NewCollection("c1", "a collection", GlobalExtent())

	if err := cat.AddChild(ctx, coll); err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	if err := cat.NormalizeHrefs(ctx, "/data", nil); err != nil {
		t.Fatalf("NormalizeHrefs: %v", err)
	}
	if got := coll.SelfHref(); got != "/data/c1/collection.json" {
		t.Errorf("collection self href = %q, want /data/c1/collection.json", got)
	}
}

func TestSaveSelfContained(t *testing.T) {
	ctx := context.Background()
	cat := NewCatalog("root", "a catalog")
	c1 := NewCatalog("c1", "a child")
	item := mustItem(t, "i1")

	if err := cat.AddChild(ctx, c1); err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	if err := c1.AddItem(ctx, item); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := cat.NormalizeHrefs(ctx, "/data", nil); err != nil {
		t.Fatalf("NormalizeHrefs: %v", err)
	}

	io := newMemIO()
	cat.SetIO(io)
	if err := cat.Save(ctx, CatalogTypeSelfContained); err != nil {
		t.Fatalf("Save: %v", err)
	}

	for _, href := range []string{"/data/catalog.json", "/data/c1/catalog.json", "/data/c1/i1/i1.json"} {
		if _, ok := io.files[href]; !ok {
			t.Errorf("Save did not write %s", href)
		}
	}

	var d map[string]any
	if err := json.Unmarshal([]byte(io.files["/data/catalog.json"]), &d); err != nil {
		t.Fatalf("parse saved root: %v", err)
	}
	links, _ := d["links"].([]any)
	var childHref string
	for _, raw := range links {
		ld := raw.(map[string]any)
		rel, _ := ld["rel"].(string)
		if rel == RelSelf {
			t.Errorf("self-contained root carries a self link")
		}
		if rel == RelChild {
			childHref, _ = ld["href"].(string)
		}
	}
	if childHref != "./c1/catalog.json" {
		t.Errorf("child href = %q, want ./c1/catalog.json", childHref)
	}
}

func TestSaveAbsolutePublished(t *testing.T) {
	ctx := context.Background()
	cat := NewCatalog("root", "a catalog")
	if err := cat.NormalizeHrefs(ctx, "/data", nil); err != nil {
		t.Fatalf("NormalizeHrefs: %v", err)
	}

	io := newMemIO()
	cat.SetIO(io)
	if err := cat.Save(ctx, CatalogTypeAbsolutePublished); err != nil {
		t.Fatalf("Save: %v", err)
	}

	var d map[string]any
	if err := json.Unmarshal([]byte(io.files["/data/catalog.json"]), &d); err != nil {
		t.Fatalf("parse saved root: %v", err)
	}
	links, _ := d["links"].([]any)
	hasSelf := false
	for _, raw := range links {
		ld := raw.(map[string]any)
		if ld["rel"] == RelSelf {
			hasSelf = true
			if ld["href"] != "/data/catalog.json" {
				t.Errorf("self href = %v, want /data/catalog.json", ld["href"])
			}
		}
	}
	if !hasSelf {
		t.Errorf("published root is missing its self link")
	}
}

func TestSetRootMergesCaches(t *testing.T) {
	ctx := context.Background()
	cat := NewCatalog("root", "a catalog")
	sub := NewCatalog("sub", "an independently built subtree")
	leaf := NewCatalog("leaf", "a leaf")
	if err := sub.AddChild(ctx, leaf); err != nil {
		t.Fatalf("AddChild: %v", err)
	}

	if err := cat.AddChild(ctx, sub); err != nil {
		t.Fatalf("AddChild: %v", err)
	}

	// Attaching the subtree merged its cache into the new root's.
	if !cat.resolvedCache().Contains(leaf) {
		t.Errorf("root cache is missing the subtree's resolved objects")
	}
	if sub.resolvedCache() != cat.resolvedCache() {
		t.Errorf("subtree kept a private cache after re-rooting")
	}
}
