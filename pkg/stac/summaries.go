package stac

// DefaultSummariesMaxcount caps how many distinct values a list summary may
// hold before it is dropped from serialized output.
const DefaultSummariesMaxcount = 25

// RangeSummary summarizes a numeric or temporal property by its bounds.
type RangeSummary struct {
	Minimum any
	Maximum any
}

// ToDict serializes the range summary.
func (r RangeSummary) ToDict() map[string]any {
	return map[string]any{"minimum": r.Minimum, "maximum": r.Maximum}
}

// Summaries describes the distribution of property values across a
// collection's items. Each property is summarized as either a list of
// distinct values, a range, or a JSON schema.
type Summaries struct {
	Lists   map[string][]any
	Ranges  map[string]RangeSummary
	Schemas map[string]map[string]any
	Other   map[string]any

	maxcount int
}

// NewSummaries returns an empty Summaries with the default maxcount.
func NewSummaries() *Summaries {
	return &Summaries{
		Lists:    map[string][]any{},
		Ranges:   map[string]RangeSummary{},
		Schemas:  map[string]map[string]any{},
		Other:    map[string]any{},
		maxcount: DefaultSummariesMaxcount,
	}
}

// SetMaxcount changes the list-length cap applied during serialization.
func (s *Summaries) SetMaxcount(n int) {
	s.maxcount = n
}

// Add records a summary for prop, classifying the value by shape: slices
// become list summaries, RangeSummary values become range summaries, maps
// become schema summaries, and anything else lands in Other.
func (s *Summaries) Add(prop string, value any) {
	s.Remove(prop)
	switch v := value.(type) {
	case []any:
		s.Lists[prop] = v
	case RangeSummary:
		s.Ranges[prop] = v
	case *RangeSummary:
		s.Ranges[prop] = *v
	case map[string]any:
		s.Schemas[prop] = v
	default:
		s.Other[prop] = v
	}
}

// GetList returns the list summary for prop, or nil.
func (s *Summaries) GetList(prop string) []any {
	return s.Lists[prop]
}

// GetRange returns the range summary for prop.
func (s *Summaries) GetRange(prop string) (RangeSummary, bool) {
	r, ok := s.Ranges[prop]
	return r, ok
}

// GetSchema returns the schema summary for prop, or nil.
func (s *Summaries) GetSchema(prop string) map[string]any {
	return s.Schemas[prop]
}

// Remove deletes any summary recorded for prop.
func (s *Summaries) Remove(prop string) {
	delete(s.Lists, prop)
	delete(s.Ranges, prop)
	delete(s.Schemas, prop)
	delete(s.Other, prop)
}

// IsEmpty reports whether no summaries are recorded.
func (s *Summaries) IsEmpty() bool {
	return len(s.Lists) == 0 && len(s.Ranges) == 0 &&
		len(s.Schemas) == 0 && len(s.Other) == 0
}

// Combine merges the summaries from other into s. List summaries are
// unioned preserving first-seen order; other kinds are overwritten.
func (s *Summaries) Combine(other *Summaries) {
	for prop, values := range other.Lists {
		existing := s.Lists[prop]
		for _, v := range values {
			if !containsValue(existing, v) {
				existing = append(existing, v)
			}
		}
		s.Lists[prop] = existing
	}
	for prop, r := range other.Ranges {
		s.Ranges[prop] = r
	}
	for prop, schema := range other.Schemas {
		s.Schemas[prop] = schema
	}
	for prop, v := range other.Other {
		s.Other[prop] = v
	}
}

// Clone returns a deep copy of the summaries.
func (s *Summaries) Clone() *Summaries {
	c := NewSummaries()
	c.maxcount = s.maxcount
	for prop, values := range s.Lists {
		c.Lists[prop] = append([]any(nil), values...)
	}
	for prop, r := range s.Ranges {
		c.Ranges[prop] = r
	}
	for prop, schema := range s.Schemas {
		c.Schemas[prop] = cloneAnyMap(schema)
	}
	for prop, v := range s.Other {
		c.Other[prop] = cloneAny(v)
	}
	return c
}

// ToDict serializes the summaries. List summaries longer than maxcount are
// omitted to keep collection documents bounded.
func (s *Summaries) ToDict() map[string]any {
	d := map[string]any{}
	for prop, values := range s.Lists {
		if s.maxcount <= 0 || len(values) <= s.maxcount {
			d[prop] = values
		}
	}
	for prop, r := range s.Ranges {
		d[prop] = r.ToDict()
	}
	for prop, schema := range s.Schemas {
		d[prop] = schema
	}
	for prop, v := range s.Other {
		d[prop] = v
	}
	return d
}

// SummariesFromDict constructs Summaries from the "summaries" member of a
// collection document.
func SummariesFromDict(d map[string]any) *Summaries {
	s := NewSummaries()
	for prop, v := range d {
		switch val := v.(type) {
		case []any:
			s.Lists[prop] = val
		case map[string]any:
			min, hasMin := val["minimum"]
			max, hasMax := val["maximum"]
			if hasMin && hasMax && len(val) == 2 {
				s.Ranges[prop] = RangeSummary{Minimum: min, Maximum: max}
			} else {
				s.Schemas[prop] = val
			}
		default:
			s.Other[prop] = v
		}
	}
	return s
}

func containsValue(values []any, v any) bool {
	for _, existing := range values {
		if anyEqual(existing, v) {
			return true
		}
	}
	return false
}

func anyEqual(a, b any) bool {
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case float64:
		bv, ok := toFloat(b)
		return ok && av == bv
	case int:
		bv, ok := toFloat(b)
		return ok && float64(av) == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	}
	return false
}
