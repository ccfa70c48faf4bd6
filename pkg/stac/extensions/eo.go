package extensions

import (
	"github.com/stacforge/gostac/pkg/errors"
	"github.com/stacforge/gostac/pkg/stac"
)

// EOSchemaURI is the current schema URI of the Electro-Optical extension.
const EOSchemaURI = "https://stac-extensions.github.io/eo/v1.1.0/schema.json"

var eoSpec = Spec{Name: "eo", SchemaURI: EOSchemaURI}

// EO returns the Electro-Optical extension's presence manager.
func EO() Spec { return eoSpec }

// Band is a view over one entry of an "eo:bands" list.
type Band struct {
	fields map[string]any
}

// NewBand creates a band with the given name.
func NewBand(name string) Band {
	return Band{fields: map[string]any{"name": name}}
}

// BandFromDict wraps an existing band dict.
func BandFromDict(d map[string]any) Band { return Band{fields: d} }

// ToDict returns the band's underlying dict.
func (b Band) ToDict() map[string]any { return b.fields }

func (b Band) Name() string       { s, _ := b.fields["name"].(string); return s }
func (b Band) CommonName() string { s, _ := b.fields["common_name"].(string); return s }

// SetCommonName sets the band's common name ("red", "nir", ...).
func (b Band) SetCommonName(v string) { b.fields["common_name"] = v }

// CenterWavelength returns the band center in micrometers, or nil.
func (b Band) CenterWavelength() *float64 {
	if f, ok := toFloat(b.fields["center_wavelength"]); ok {
		return &f
	}
	return nil
}

// SetCenterWavelength sets the band center in micrometers.
func (b Band) SetCenterWavelength(v float64) { b.fields["center_wavelength"] = v }

// FullWidthHalfMax returns the band width in micrometers, or nil.
func (b Band) FullWidthHalfMax() *float64 {
	if f, ok := toFloat(b.fields["full_width_half_max"]); ok {
		return &f
	}
	return nil
}

// SetFullWidthHalfMax sets the band width in micrometers.
func (b Band) SetFullWidthHalfMax(v float64) { b.fields["full_width_half_max"] = v }

// SolarIllumination returns the band's solar illumination in W/m2/micrometer,
// or nil.
func (b Band) SolarIllumination() *float64 {
	if f, ok := toFloat(b.fields["solar_illumination"]); ok {
		return &f
	}
	return nil
}

// EOItemExt is the Electro-Optical view over an item's properties.
type EOItemExt struct {
	Item  *stac.Item
	props Props
}

// EOAssetExt is the Electro-Optical view over an asset's fields. Reads fall
// back to the owning item's properties when the asset lacks a key.
type EOAssetExt struct {
	Asset *stac.Asset
	props Props
}

// EOExt constructs the Electro-Optical view matching obj's concrete type.
// Supported types are *stac.Item and *stac.Asset; anything else is a type
// error. The extension must be declared on the object (or the asset's
// owner) unless addIfMissing is set.
func EOExt(obj any, addIfMissing bool) (any, error) {
	switch o := obj.(type) {
	case *stac.Item:
		if err := eoSpec.Ensure(o, addIfMissing); err != nil {
			return nil, err
		}
		return &EOItemExt{Item: o, props: NewProps(o.Properties)}, nil
	case *stac.Asset:
		if err := eoSpec.EnsureOwner(o.Owner(), addIfMissing); err != nil {
			return nil, err
		}
		if o.ExtraFields == nil {
			o.ExtraFields = map[string]any{}
		}
		var fallbacks []map[string]any
		if item, ok := o.Owner().(*stac.Item); ok {
			fallbacks = append(fallbacks, item.Properties)
		}
		return &EOAssetExt{Asset: o, props: NewProps(o.ExtraFields, fallbacks...)}, nil
	}
	return nil, errors.New(errors.ErrCodeTypeError,
		"the eo extension does not apply to %T", obj)
}

// EOItem is EOExt specialized to items.
func EOItem(item *stac.Item, addIfMissing bool) (*EOItemExt, error) {
	v, err := EOExt(item, addIfMissing)
	if err != nil {
		return nil, err
	}
	return v.(*EOItemExt), nil
}

// EOAsset is EOExt specialized to assets.
func EOAsset(a *stac.Asset, addIfMissing bool) (*EOAssetExt, error) {
	v, err := EOExt(a, addIfMissing)
	if err != nil {
		return nil, err
	}
	return v.(*EOAssetExt), nil
}

// Bands returns the declared spectral bands, or nil.
func (e *EOItemExt) Bands() []Band { return bandsFrom(e.props) }

// SetBands replaces the declared spectral bands.
func (e *EOItemExt) SetBands(bands []Band) { setBands(e.props, bands) }

// CloudCover returns the cloud cover percentage, or nil.
func (e *EOItemExt) CloudCover() *float64 { return e.props.GetFloat("eo:cloud_cover") }

// SetCloudCover sets the cloud cover percentage. nil pops the field.
func (e *EOItemExt) SetCloudCover(v *float64) { setOptFloat(e.props, "eo:cloud_cover", v) }

// SnowCover returns the snow/ice cover percentage, or nil.
func (e *EOItemExt) SnowCover() *float64 { return e.props.GetFloat("eo:snow_cover") }

// SetSnowCover sets the snow/ice cover percentage. nil pops the field.
func (e *EOItemExt) SetSnowCover(v *float64) { setOptFloat(e.props, "eo:snow_cover", v) }

func (e *EOAssetExt) Bands() []Band          { return bandsFrom(e.props) }
func (e *EOAssetExt) SetBands(bands []Band)  { setBands(e.props, bands) }
func (e *EOAssetExt) CloudCover() *float64   { return e.props.GetFloat("eo:cloud_cover") }
func (e *EOAssetExt) SetCloudCover(v *float64) {
	setOptFloat(e.props, "eo:cloud_cover", v)
}

func bandsFrom(p Props) []Band {
	var out []Band
	for _, d := range p.GetMaps("eo:bands") {
		out = append(out, BandFromDict(d))
	}
	return out
}

func setBands(p Props, bands []Band) {
	if bands == nil {
		p.Set("eo:bands", nil)
		return
	}
	raw := make([]any, len(bands))
	for i, b := range bands {
		raw[i] = b.ToDict()
	}
	p.Set("eo:bands", raw)
}

func setOptFloat(p Props, key string, v *float64) {
	if v == nil {
		p.Set(key, nil)
		return
	}
	p.Set(key, *v)
}

// EOSummariesExt is the Electro-Optical view over a collection's summaries.
type EOSummariesExt struct {
	Summaries *stac.Summaries
}

// EOSummaries constructs the summaries view for coll.
func EOSummaries(coll *stac.Collection, addIfMissing bool) (*EOSummariesExt, error) {
	if err := eoSpec.Ensure(coll, addIfMissing); err != nil {
		return nil, err
	}
	if coll.Summaries == nil {
		coll.Summaries = stac.NewSummaries()
	}
	return &EOSummariesExt{Summaries: coll.Summaries}, nil
}

// Bands returns the summarized band list, or nil.
func (e *EOSummariesExt) Bands() []Band {
	var out []Band
	for _, v := range e.Summaries.GetList("eo:bands") {
		if d, ok := v.(map[string]any); ok {
			out = append(out, BandFromDict(d))
		}
	}
	return out
}

// SetBands summarizes the collection's band list.
func (e *EOSummariesExt) SetBands(bands []Band) {
	raw := make([]any, len(bands))
	for i, b := range bands {
		raw[i] = b.ToDict()
	}
	e.Summaries.Add("eo:bands", raw)
}

// CloudCover returns the summarized cloud cover range.
func (e *EOSummariesExt) CloudCover() (stac.RangeSummary, bool) {
	return e.Summaries.GetRange("eo:cloud_cover")
}

// SetCloudCover summarizes the collection's cloud cover range.
func (e *EOSummariesExt) SetCloudCover(min, max float64) {
	e.Summaries.Add("eo:cloud_cover", stac.RangeSummary{Minimum: min, Maximum: max})
}

type eoHooks struct{}

// EOHooks returns the Electro-Optical extension's migration hooks.
func EOHooks() stac.ExtensionHooks { return eoHooks{} }

func (eoHooks) SchemaURI() string { return EOSchemaURI }

func (eoHooks) PrevExtensionIDs() []string {
	return []string{"eo", "https://stac-extensions.github.io/eo/v1.0.0/schema.json"}
}

// Migrate lifts fields that moved from the eo namespace into common
// metadata as the spec evolved.
func (eoHooks) Migrate(d map[string]any, version string, info stac.Identification) {
	if info.ObjectType != stac.TypeItem {
		return
	}
	props, ok := d["properties"].(map[string]any)
	if !ok {
		return
	}
	if stac.VersionLessThan(version, "0.9.0") {
		renameProp(props, "eo:platform", "platform")
		renameProp(props, "eo:constellation", "constellation")
		if v, ok := props["eo:instrument"]; ok {
			if _, taken := props["instruments"]; !taken {
				props["instruments"] = []any{v}
			}
			delete(props, "eo:instrument")
		}
	}
	if stac.VersionLessThan(version, "1.0.0-beta.1") {
		renameProp(props, "eo:gsd", "gsd")
	}
}

func renameProp(props map[string]any, from, to string) {
	v, ok := props[from]
	if !ok {
		return
	}
	if _, taken := props[to]; !taken {
		props[to] = v
	}
	delete(props, from)
}
