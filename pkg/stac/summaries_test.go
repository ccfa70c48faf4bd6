package stac

import "testing"

func TestSummariesAddClassifiesByShape(t *testing.T) {
	s := NewSummaries()
	s.Add("platform", []any{"sentinel-2a"})
	s.Add("eo:cloud_cover", RangeSummary{Minimum: 0.0, Maximum: 100.0})
	s.Add("gsd", map[string]any{"type": "number", "minimum": 10.0})

	if s.GetList("platform") == nil {
		t.Errorf("list summary not stored")
	}
	if _, ok := s.GetRange("eo:cloud_cover"); !ok {
		t.Errorf("range summary not stored")
	}
	if s.GetSchema("gsd") == nil {
		t.Errorf("schema summary not stored")
	}

	// Re-adding under another shape replaces the old classification.
	s.Add("platform", RangeSummary{Minimum: "a", Maximum: "z"})
	if s.GetList("platform") != nil {
		t.Errorf("stale list summary survived reclassification")
	}
	if _, ok := s.GetRange("platform"); !ok {
		t.Errorf("reclassified summary missing")
	}
}

func TestSummariesMaxcountBoundary(t *testing.T) {
	s := NewSummaries()
	s.SetMaxcount(2)
	s.Add("at-limit", []any{"a", "b"})
	s.Add("over-limit", []any{"a", "b", "c"})
	s.Add("range", RangeSummary{Minimum: 1.0, Maximum: 2.0})

	d := s.ToDict()
	if _, ok := d["at-limit"]; !ok {
		t.Errorf("list at the maxcount boundary was dropped")
	}
	if _, ok := d["over-limit"]; ok {
		t.Errorf("list over the maxcount boundary was serialized")
	}
	if _, ok := d["range"]; !ok {
		t.Errorf("range summary dropped; maxcount applies only to lists")
	}
}

func TestSummariesCombine(t *testing.T) {
	a := NewSummaries()
	a.Add("platform", []any{"sentinel-2a", "sentinel-2b"})
	b := NewSummaries()
	b.Add("platform", []any{"sentinel-2b", "landsat-8"})
	b.Add("gsd", RangeSummary{Minimum: 10.0, Maximum: 30.0})

	a.Combine(b)

	platforms := a.GetList("platform")
	want := []string{"sentinel-2a", "sentinel-2b", "landsat-8"}
	if len(platforms) != len(want) {
		t.Fatalf("combined list = %v, want %v", platforms, want)
	}
	for i := range want {
		if platforms[i] != want[i] {
			t.Errorf("combined list = %v, want %v", platforms, want)
			break
		}
	}
	if _, ok := a.GetRange("gsd"); !ok {
		t.Errorf("range from other summaries was not merged")
	}
}

func TestSummariesFromDict(t *testing.T) {
	d := map[string]any{
		"platform":       []any{"sentinel-2a"},
		"eo:cloud_cover": map[string]any{"minimum": 0.0, "maximum": 100.0},
		"proj:epsg":      map[string]any{"type": "integer", "minimum": 1024.0, "maximum": 32767.0},
	}
	s := SummariesFromDict(d)
	if s.GetList("platform") == nil {
		t.Errorf("list not parsed")
	}
	if r, ok := s.GetRange("eo:cloud_cover"); !ok || r.Maximum != 100.0 {
		t.Errorf("exact minimum/maximum pair not parsed as a range: %v", r)
	}
	// Three keys means schema, even though minimum and maximum appear.
	if s.GetSchema("proj:epsg") == nil {
		t.Errorf("schema with extra keys misparsed as a range")
	}
}

func TestSummariesCloneIsDeep(t *testing.T) {
	s := NewSummaries()
	s.Add("platform", []any{"a"})

	c := s.Clone()
	c.Lists["platform"][0] = "changed"

	if s.Lists["platform"][0] != "a" {
		t.Errorf("clone mutation leaked into original")
	}
}
