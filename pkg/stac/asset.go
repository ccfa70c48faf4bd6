package stac

// Asset points at data associated with an item or collection, such as an
// image file or metadata document.
type Asset struct {
	Href        string
	Title       string
	Description string
	MediaType   string
	Roles       []string
	ExtraFields map[string]any

	owner Object
}

// Owner returns the object this asset belongs to, or nil.
func (a *Asset) Owner() Object { return a.owner }

// SetOwner attaches the asset to an object. Owned assets can resolve
// relative hrefs against their owner's self href.
func (a *Asset) SetOwner(o Object) { a.owner = o }

// AbsoluteHref returns the asset href resolved against the owner's self
// href. Returns "" when the href is relative and no owner href is known.
func (a *Asset) AbsoluteHref() string {
	if IsAbsoluteHref(a.Href) {
		return a.Href
	}
	if a.owner == nil || a.owner.SelfHref() == "" {
		return ""
	}
	return MakeAbsoluteHref(a.Href, a.owner.SelfHref(), false)
}

// Clone returns a copy of the asset without an owner.
func (a *Asset) Clone() *Asset {
	c := &Asset{
		Href:        a.Href,
		Title:       a.Title,
		Description: a.Description,
		MediaType:   a.MediaType,
	}
	c.Roles = append(c.Roles, a.Roles...)
	if a.ExtraFields != nil {
		c.ExtraFields = cloneAnyMap(a.ExtraFields)
	}
	return c
}

// ToDict serializes the asset.
func (a *Asset) ToDict() map[string]any {
	d := make(map[string]any, 5+len(a.ExtraFields))
	for k, v := range a.ExtraFields {
		d[k] = v
	}
	d["href"] = a.Href
	if a.Title != "" {
		d["title"] = a.Title
	}
	if a.Description != "" {
		d["description"] = a.Description
	}
	if a.MediaType != "" {
		d["type"] = a.MediaType
	}
	if len(a.Roles) > 0 {
		d["roles"] = stringsToAny(a.Roles)
	}
	return d
}

// AssetFromDict constructs an Asset from its JSON wire form.
func AssetFromDict(d map[string]any) *Asset {
	a := &Asset{}
	for k, v := range d {
		switch k {
		case "href":
			a.Href, _ = v.(string)
		case "title":
			a.Title, _ = v.(string)
		case "description":
			a.Description, _ = v.(string)
		case "type":
			a.MediaType, _ = v.(string)
		case "roles":
			if roles, ok := v.([]any); ok {
				for _, r := range roles {
					if s, ok := r.(string); ok {
						a.Roles = append(a.Roles, s)
					}
				}
			}
		default:
			if a.ExtraFields == nil {
				a.ExtraFields = map[string]any{}
			}
			a.ExtraFields[k] = v
		}
	}
	return a
}

// AssetDefinition describes the assets items in a collection are expected
// to carry, keyed under the collection's item_assets field. Definitions
// have no href.
type AssetDefinition struct {
	Title       string
	Description string
	MediaType   string
	Roles       []string
	ExtraFields map[string]any
}

// ToDict serializes the asset definition.
func (a *AssetDefinition) ToDict() map[string]any {
	d := make(map[string]any, 4+len(a.ExtraFields))
	for k, v := range a.ExtraFields {
		d[k] = v
	}
	if a.Title != "" {
		d["title"] = a.Title
	}
	if a.Description != "" {
		d["description"] = a.Description
	}
	if a.MediaType != "" {
		d["type"] = a.MediaType
	}
	if len(a.Roles) > 0 {
		d["roles"] = stringsToAny(a.Roles)
	}
	return d
}

// AssetDefinitionFromDict constructs an AssetDefinition from its wire form.
func AssetDefinitionFromDict(d map[string]any) *AssetDefinition {
	a := &AssetDefinition{}
	for k, v := range d {
		switch k {
		case "title":
			a.Title, _ = v.(string)
		case "description":
			a.Description, _ = v.(string)
		case "type":
			a.MediaType, _ = v.(string)
		case "roles":
			if roles, ok := v.([]any); ok {
				for _, r := range roles {
					if s, ok := r.(string); ok {
						a.Roles = append(a.Roles, s)
					}
				}
			}
		default:
			if a.ExtraFields == nil {
				a.ExtraFields = map[string]any{}
			}
			a.ExtraFields[k] = v
		}
	}
	return a
}
