package extensions

import (
	"github.com/stacforge/gostac/pkg/errors"
	"github.com/stacforge/gostac/pkg/stac"
)

// ProjectionSchemaURI is the current schema URI of the Projection extension.
const ProjectionSchemaURI = "https://stac-extensions.github.io/projection/v1.1.0/schema.json"

var projectionSpec = Spec{Name: "projection", SchemaURI: ProjectionSchemaURI}

// Projection returns the Projection extension's presence manager.
func Projection() Spec { return projectionSpec }

// ProjectionExt is the Projection view over an item's properties or an
// asset's fields. Asset reads fall back to the owning item's properties.
type ProjectionExt struct {
	props Props
}

// ProjectionItem constructs the Projection view over an item.
func ProjectionItem(item *stac.Item, addIfMissing bool) (*ProjectionExt, error) {
	if err := projectionSpec.Ensure(item, addIfMissing); err != nil {
		return nil, err
	}
	return &ProjectionExt{props: NewProps(item.Properties)}, nil
}

// ProjectionAsset constructs the Projection view over an asset.
func ProjectionAsset(a *stac.Asset, addIfMissing bool) (*ProjectionExt, error) {
	if err := projectionSpec.EnsureOwner(a.Owner(), addIfMissing); err != nil {
		return nil, err
	}
	if a.ExtraFields == nil {
		a.ExtraFields = map[string]any{}
	}
	var fallbacks []map[string]any
	if item, ok := a.Owner().(*stac.Item); ok {
		fallbacks = append(fallbacks, item.Properties)
	}
	return &ProjectionExt{props: NewProps(a.ExtraFields, fallbacks...)}, nil
}

// ProjectionOf dispatches on obj's concrete type to construct its
// Projection view. Supported types are *stac.Item and *stac.Asset.
func ProjectionOf(obj any, addIfMissing bool) (*ProjectionExt, error) {
	switch o := obj.(type) {
	case *stac.Item:
		return ProjectionItem(o, addIfMissing)
	case *stac.Asset:
		return ProjectionAsset(o, addIfMissing)
	}
	return nil, errors.New(errors.ErrCodeTypeError,
		"the projection extension does not apply to %T", obj)
}

// Epsg returns the EPSG code, or nil. A nil return does not distinguish an
// absent field from an explicit null; data without a defined EPSG code
// stores null.
func (e *ProjectionExt) Epsg() *int { return e.props.GetInt("proj:epsg") }

// SetEpsg sets the EPSG code. A nil value is stored as an explicit JSON
// null, declaring that the data has no EPSG-codable CRS.
func (e *ProjectionExt) SetEpsg(v *int) {
	if v == nil {
		e.props.SetKeep("proj:epsg", nil)
		return
	}
	e.props.Set("proj:epsg", *v)
}

// Wkt2 returns the WKT2 CRS string, or "".
func (e *ProjectionExt) Wkt2() string { return e.props.GetString("proj:wkt2") }

// SetWkt2 sets the WKT2 CRS string.
func (e *ProjectionExt) SetWkt2(v string) { e.props.Set("proj:wkt2", v) }

// Geometry returns the footprint geometry in the data's native CRS, or nil.
func (e *ProjectionExt) Geometry() map[string]any { return e.props.GetMap("proj:geometry") }

// SetGeometry sets the native-CRS footprint geometry.
func (e *ProjectionExt) SetGeometry(g map[string]any) {
	if g == nil {
		e.props.Set("proj:geometry", nil)
		return
	}
	e.props.Set("proj:geometry", g)
}

// Bbox returns the native-CRS bounding box, or nil.
func (e *ProjectionExt) Bbox() []float64 { return e.props.GetFloats("proj:bbox") }

// SetBbox sets the native-CRS bounding box.
func (e *ProjectionExt) SetBbox(bbox []float64) {
	if bbox == nil {
		e.props.Set("proj:bbox", nil)
		return
	}
	e.props.Set("proj:bbox", floatsToAny(bbox))
}

// Centroid returns the lat/lon centroid as a {"lat":..,"lon":..} map, or
// nil.
func (e *ProjectionExt) Centroid() map[string]any { return e.props.GetMap("proj:centroid") }

// SetCentroid sets the lat/lon centroid.
func (e *ProjectionExt) SetCentroid(lat, lon float64) {
	e.props.Set("proj:centroid", map[string]any{"lat": lat, "lon": lon})
}

// Shape returns the pixel dimensions as [rows, cols], or nil.
func (e *ProjectionExt) Shape() []int {
	fs := e.props.GetFloats("proj:shape")
	if fs == nil {
		return nil
	}
	out := make([]int, len(fs))
	for i, f := range fs {
		out[i] = int(f)
	}
	return out
}

// SetShape sets the pixel dimensions as [rows, cols].
func (e *ProjectionExt) SetShape(shape []int) {
	raw := make([]any, len(shape))
	for i, n := range shape {
		raw[i] = n
	}
	e.props.Set("proj:shape", raw)
}

// Transform returns the affine georeferencing transform, or nil.
func (e *ProjectionExt) Transform() []float64 { return e.props.GetFloats("proj:transform") }

// SetTransform sets the affine georeferencing transform.
func (e *ProjectionExt) SetTransform(t []float64) {
	if t == nil {
		e.props.Set("proj:transform", nil)
		return
	}
	e.props.Set("proj:transform", floatsToAny(t))
}

type projectionHooks struct{}

// ProjectionHooks returns the Projection extension's migration hooks.
func ProjectionHooks() stac.ExtensionHooks { return projectionHooks{} }

func (projectionHooks) SchemaURI() string { return ProjectionSchemaURI }

func (projectionHooks) PrevExtensionIDs() []string {
	return []string{
		"proj",
		"projection",
		"https://stac-extensions.github.io/projection/v1.0.0/schema.json",
	}
}

// Migrate is a no-op; projection field names have been stable across schema
// versions.
func (projectionHooks) Migrate(d map[string]any, version string, info stac.Identification) {}
