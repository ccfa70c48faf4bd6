package stac

import (
	"time"

	"github.com/stacforge/gostac/pkg/errors"
)

// SpatialExtent describes the bounding boxes covered by a collection. The
// first bbox is the overall extent; any further entries refine it.
type SpatialExtent struct {
	Bboxes [][]float64
}

// ToDict serializes the spatial extent.
func (s *SpatialExtent) ToDict() map[string]any {
	bboxes := make([]any, len(s.Bboxes))
	for i, bbox := range s.Bboxes {
		row := make([]any, len(bbox))
		for j, v := range bbox {
			row[j] = v
		}
		bboxes[i] = row
	}
	return map[string]any{"bbox": bboxes}
}

// TemporalExtent describes the time intervals covered by a collection.
// Each interval is a [start, end] pair; either bound may be nil for an
// open-ended interval, but not both.
type TemporalExtent struct {
	Intervals [][]*time.Time
}

// NewTemporalExtent creates a single-interval temporal extent. At least one
// bound must be set.
func NewTemporalExtent(start, end *time.Time) (*TemporalExtent, error) {
	if start == nil && end == nil {
		return nil, errors.New(errors.ErrCodeInvalidExtent,
			"temporal extent interval must have a start or an end")
	}
	return &TemporalExtent{Intervals: [][]*time.Time{{start, end}}}, nil
}

// ToDict serializes the temporal extent with null open bounds.
func (t *TemporalExtent) ToDict() map[string]any {
	intervals := make([]any, len(t.Intervals))
	for i, iv := range t.Intervals {
		row := make([]any, len(iv))
		for j, bound := range iv {
			if bound != nil {
				row[j] = FormatDatetime(*bound)
			} else {
				row[j] = nil
			}
		}
		intervals[i] = row
	}
	return map[string]any{"interval": intervals}
}

// Extent bundles a collection's spatial and temporal coverage.
type Extent struct {
	Spatial     *SpatialExtent
	Temporal    *TemporalExtent
	ExtraFields map[string]any
}

// GlobalExtent returns an extent covering the whole globe and all time,
// useful as a placeholder for newly scaffolded collections.
func GlobalExtent() *Extent {
	return &Extent{
		Spatial:  &SpatialExtent{Bboxes: [][]float64{{-180, -90, 180, 90}}},
		Temporal: &TemporalExtent{Intervals: [][]*time.Time{{nil, nil}}},
	}
}

// ToDict serializes the extent.
func (e *Extent) ToDict() map[string]any {
	d := make(map[string]any, 2+len(e.ExtraFields))
	for k, v := range e.ExtraFields {
		d[k] = v
	}
	if e.Spatial != nil {
		d["spatial"] = e.Spatial.ToDict()
	}
	if e.Temporal != nil {
		d["temporal"] = e.Temporal.ToDict()
	}
	return d
}

// ExtentFromDict constructs an Extent from its JSON wire form.
func ExtentFromDict(d map[string]any) (*Extent, error) {
	e := &Extent{}
	for k, v := range d {
		switch k {
		case "spatial":
			sd, _ := v.(map[string]any)
			e.Spatial = spatialFromDict(sd)
		case "temporal":
			td, _ := v.(map[string]any)
			temporal, err := temporalFromDict(td)
			if err != nil {
				return nil, err
			}
			e.Temporal = temporal
		default:
			if e.ExtraFields == nil {
				e.ExtraFields = map[string]any{}
			}
			e.ExtraFields[k] = v
		}
	}
	return e, nil
}

func spatialFromDict(d map[string]any) *SpatialExtent {
	s := &SpatialExtent{}
	raw, _ := d["bbox"].([]any)
	for _, rowAny := range raw {
		row, ok := rowAny.([]any)
		if !ok {
			continue
		}
		bbox := make([]float64, 0, len(row))
		for _, v := range row {
			if f, ok := toFloat(v); ok {
				bbox = append(bbox, f)
			}
		}
		s.Bboxes = append(s.Bboxes, bbox)
	}
	return s
}

func temporalFromDict(d map[string]any) (*TemporalExtent, error) {
	t := &TemporalExtent{}
	raw, _ := d["interval"].([]any)
	for _, rowAny := range raw {
		row, ok := rowAny.([]any)
		if !ok {
			continue
		}
		// Fully open [null, null] intervals are legal on the wire even
		// though NewTemporalExtent refuses to build one.
		iv := make([]*time.Time, 0, len(row))
		for _, v := range row {
			s, ok := v.(string)
			if !ok || s == "" {
				iv = append(iv, nil)
				continue
			}
			parsed, err := ParseDatetime(s)
			if err != nil {
				return nil, err
			}
			iv = append(iv, &parsed)
		}
		t.Intervals = append(t.Intervals, iv)
	}
	return t, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
