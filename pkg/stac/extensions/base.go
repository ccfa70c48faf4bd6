package extensions

// Props is a typed lens over an object's canonical property map. Reads
// consult the primary map first and each fallback in order; writes always
// target the primary map. The maps are referenced, never copied, so a view
// and its object cannot desynchronize.
type Props struct {
	primary   map[string]any
	fallbacks []map[string]any
}

// NewProps builds a view over primary with optional read fallbacks.
func NewProps(primary map[string]any, fallbacks ...map[string]any) Props {
	return Props{primary: primary, fallbacks: fallbacks}
}

// Get returns the value for key from the primary map, or the first fallback
// that carries it.
func (p Props) Get(key string) (any, bool) {
	if v, ok := p.primary[key]; ok {
		return v, true
	}
	for _, fb := range p.fallbacks {
		if v, ok := fb[key]; ok {
			return v, true
		}
	}
	return nil, false
}

// Set writes key in the primary map. A nil value pops the key.
func (p Props) Set(key string, v any) {
	if v == nil {
		delete(p.primary, key)
		return
	}
	p.primary[key] = v
}

// SetKeep writes key in the primary map, storing an explicit JSON null for
// nil values rather than popping the key. Used for fields where null is
// semantically meaningful, such as a missing EPSG code.
func (p Props) SetKeep(key string, v any) {
	p.primary[key] = v
}

// GetString returns the string value for key, or "".
func (p Props) GetString(key string) string {
	v, _ := p.Get(key)
	s, _ := v.(string)
	return s
}

// GetFloat returns the numeric value for key, or nil.
func (p Props) GetFloat(key string) *float64 {
	v, ok := p.Get(key)
	if !ok {
		return nil
	}
	if f, ok := toFloat(v); ok {
		return &f
	}
	return nil
}

// GetInt returns the integer value for key, or nil.
func (p Props) GetInt(key string) *int {
	if f := p.GetFloat(key); f != nil {
		n := int(*f)
		return &n
	}
	return nil
}

// GetStrings returns the string-list value for key, or nil.
func (p Props) GetStrings(key string) []string {
	v, _ := p.Get(key)
	raw, _ := v.([]any)
	var out []string
	for _, e := range raw {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// GetFloats returns the numeric-list value for key, or nil.
func (p Props) GetFloats(key string) []float64 {
	v, _ := p.Get(key)
	raw, _ := v.([]any)
	var out []float64
	for _, e := range raw {
		if f, ok := toFloat(e); ok {
			out = append(out, f)
		}
	}
	return out
}

// GetMap returns the object value for key, or nil.
func (p Props) GetMap(key string) map[string]any {
	v, _ := p.Get(key)
	m, _ := v.(map[string]any)
	return m
}

// GetMaps returns the object-list value for key, or nil.
func (p Props) GetMaps(key string) []map[string]any {
	v, _ := p.Get(key)
	raw, _ := v.([]any)
	var out []map[string]any
	for _, e := range raw {
		if m, ok := e.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
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

func stringsToAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func floatsToAny(fs []float64) []any {
	out := make([]any, len(fs))
	for i, f := range fs {
		out[i] = f
	}
	return out
}
