package stac

// Provider roles defined by the STAC collection spec.
const (
	ProviderRoleLicensor  = "licensor"
	ProviderRoleProducer  = "producer"
	ProviderRoleProcessor = "processor"
	ProviderRoleHost      = "host"
)

// Provider identifies an organization that captured, processed or hosts the
// data in a collection.
type Provider struct {
	Name        string
	Description string
	Roles       []string
	URL         string
	ExtraFields map[string]any
}

// ToDict serializes the provider.
func (p *Provider) ToDict() map[string]any {
	d := make(map[string]any, 4+len(p.ExtraFields))
	for k, v := range p.ExtraFields {
		d[k] = v
	}
	d["name"] = p.Name
	if p.Description != "" {
		d["description"] = p.Description
	}
	if len(p.Roles) > 0 {
		d["roles"] = stringsToAny(p.Roles)
	}
	if p.URL != "" {
		d["url"] = p.URL
	}
	return d
}

// ProviderFromDict constructs a Provider from its JSON wire form.
func ProviderFromDict(d map[string]any) *Provider {
	p := &Provider{}
	for k, v := range d {
		switch k {
		case "name":
			p.Name, _ = v.(string)
		case "description":
			p.Description, _ = v.(string)
		case "roles":
			if roles, ok := v.([]any); ok {
				for _, r := range roles {
					if s, ok := r.(string); ok {
						p.Roles = append(p.Roles, s)
					}
				}
			}
		case "url":
			p.URL, _ = v.(string)
		default:
			if p.ExtraFields == nil {
				p.ExtraFields = map[string]any{}
			}
			p.ExtraFields[k] = v
		}
	}
	return p
}

// Clone returns a deep copy of the provider.
func (p *Provider) Clone() *Provider {
	c := &Provider{Name: p.Name, Description: p.Description, URL: p.URL}
	c.Roles = append(c.Roles, p.Roles...)
	if p.ExtraFields != nil {
		c.ExtraFields = cloneAnyMap(p.ExtraFields)
	}
	return c
}
