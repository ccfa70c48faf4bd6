package extensions

import (
	"github.com/stacforge/gostac/pkg/errors"
	"github.com/stacforge/gostac/pkg/stac"
)

// SARSchemaURI is the current schema URI of the SAR extension.
const SARSchemaURI = "https://stac-extensions.github.io/sar/v1.0.0/schema.json"

var sarSpec = Spec{Name: "sar", SchemaURI: SARSchemaURI}

// SAR returns the SAR extension's presence manager.
func SAR() Spec { return sarSpec }

// Frequency bands defined by the SAR extension.
const (
	FrequencyBandP  = "P"
	FrequencyBandL  = "L"
	FrequencyBandS  = "S"
	FrequencyBandC  = "C"
	FrequencyBandX  = "X"
	FrequencyBandKu = "Ku"
	FrequencyBandK  = "K"
	FrequencyBandKa = "Ka"
)

// Polarizations defined by the SAR extension.
const (
	PolarizationHH = "HH"
	PolarizationVV = "VV"
	PolarizationHV = "HV"
	PolarizationVH = "VH"
)

// SARExt is the SAR view over an item's properties or an asset's fields.
type SARExt struct {
	props Props
}

// SARItem constructs the SAR view over an item.
func SARItem(item *stac.Item, addIfMissing bool) (*SARExt, error) {
	if err := sarSpec.Ensure(item, addIfMissing); err != nil {
		return nil, err
	}
	return &SARExt{props: NewProps(item.Properties)}, nil
}

// SARAsset constructs the SAR view over an asset.
func SARAsset(a *stac.Asset, addIfMissing bool) (*SARExt, error) {
	if err := sarSpec.EnsureOwner(a.Owner(), addIfMissing); err != nil {
		return nil, err
	}
	if a.ExtraFields == nil {
		a.ExtraFields = map[string]any{}
	}
	var fallbacks []map[string]any
	if item, ok := a.Owner().(*stac.Item); ok {
		fallbacks = append(fallbacks, item.Properties)
	}
	return &SARExt{props: NewProps(a.ExtraFields, fallbacks...)}, nil
}

// SAROf dispatches on obj's concrete type to construct its SAR view.
// Supported types are *stac.Item and *stac.Asset.
func SAROf(obj any, addIfMissing bool) (*SARExt, error) {
	switch o := obj.(type) {
	case *stac.Item:
		return SARItem(o, addIfMissing)
	case *stac.Asset:
		return SARAsset(o, addIfMissing)
	}
	return nil, errors.New(errors.ErrCodeTypeError,
		"the sar extension does not apply to %T", obj)
}

// InstrumentMode returns the acquisition mode (for example "IW"), or "".
func (e *SARExt) InstrumentMode() string { return e.props.GetString("sar:instrument_mode") }

// SetInstrumentMode sets the acquisition mode.
func (e *SARExt) SetInstrumentMode(v string) { e.props.Set("sar:instrument_mode", v) }

// FrequencyBand returns the radar frequency band, or "".
func (e *SARExt) FrequencyBand() string { return e.props.GetString("sar:frequency_band") }

// SetFrequencyBand sets the radar frequency band.
func (e *SARExt) SetFrequencyBand(v string) { e.props.Set("sar:frequency_band", v) }

// Polarizations returns the signal polarizations, or nil.
func (e *SARExt) Polarizations() []string { return e.props.GetStrings("sar:polarizations") }

// SetPolarizations sets the signal polarizations. The list must be
// non-empty.
func (e *SARExt) SetPolarizations(ps []string) error {
	if len(ps) == 0 {
		return errors.New(errors.ErrCodeInvalidObject,
			"sar:polarizations must be a non-empty list")
	}
	e.props.Set("sar:polarizations", stringsToAny(ps))
	return nil
}

// ProductType returns the product type (for example "GRD"), or "".
func (e *SARExt) ProductType() string { return e.props.GetString("sar:product_type") }

// SetProductType sets the product type.
func (e *SARExt) SetProductType(v string) { e.props.Set("sar:product_type", v) }

// CenterFrequency returns the center frequency in GHz, or nil.
func (e *SARExt) CenterFrequency() *float64 { return e.props.GetFloat("sar:center_frequency") }

// SetCenterFrequency sets the center frequency in GHz.
func (e *SARExt) SetCenterFrequency(v float64) { e.props.Set("sar:center_frequency", v) }

// ResolutionRange returns the range resolution in meters, or nil.
func (e *SARExt) ResolutionRange() *float64 { return e.props.GetFloat("sar:resolution_range") }

// ResolutionAzimuth returns the azimuth resolution in meters, or nil.
func (e *SARExt) ResolutionAzimuth() *float64 { return e.props.GetFloat("sar:resolution_azimuth") }

// LooksRange returns the number of range looks, or nil.
func (e *SARExt) LooksRange() *int { return e.props.GetInt("sar:looks_range") }

// LooksAzimuth returns the number of azimuth looks, or nil.
func (e *SARExt) LooksAzimuth() *int { return e.props.GetInt("sar:looks_azimuth") }

type sarHooks struct{}

// SARHooks returns the SAR extension's migration hooks.
func SARHooks() stac.ExtensionHooks { return sarHooks{} }

func (sarHooks) SchemaURI() string { return SARSchemaURI }

func (sarHooks) PrevExtensionIDs() []string {
	return []string{"sar"}
}

// Migrate lifts fields that moved from the sar namespace into common
// metadata in spec version 0.9.
func (sarHooks) Migrate(d map[string]any, version string, info stac.Identification) {
	if info.ObjectType != stac.TypeItem {
		return
	}
	props, ok := d["properties"].(map[string]any)
	if !ok {
		return
	}
	if stac.VersionLessThan(version, "0.9.0") {
		renameProp(props, "sar:platform", "platform")
		renameProp(props, "sar:constellation", "constellation")
		if v, ok := props["sar:instrument"]; ok {
			if _, taken := props["instruments"]; !taken {
				props["instruments"] = []any{v}
			}
			delete(props, "sar:instrument")
		}
	}
}

// DefaultHooks returns a registry carrying the migration hooks of every
// extension in this package. Applications with custom extensions build
// their own registry and append to it.
func DefaultHooks() *stac.HooksRegistry {
	return stac.NewHooksRegistry(EOHooks(), ProjectionHooks(), SARHooks())
}
