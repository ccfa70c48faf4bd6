package extensions

import (
	"github.com/stacforge/gostac/pkg/errors"
	"github.com/stacforge/gostac/pkg/stac"
)

// Spec carries an extension's identity and implements presence management
// against the stac_extensions list of core objects. Presence checks compare
// URIs with the version segment stripped, so any version of the extension's
// schema URI counts as declared.
type Spec struct {
	// Name is the extension's short name, used in error messages.
	Name string
	// SchemaURI is the current-version schema URI added by AddTo.
	SchemaURI string
}

// Has reports whether o declares any version of this extension.
func (s Spec) Has(o stac.Object) bool {
	family := stac.ExtensionFamily(s.SchemaURI)
	for _, uri := range o.Extensions() {
		if stac.ExtensionFamily(uri) == family {
			return true
		}
	}
	return false
}

// AddTo declares the extension on o by appending the current schema URI,
// unless some version of it is already declared.
func (s Spec) AddTo(o stac.Object) {
	if s.Has(o) {
		return
	}
	o.SetExtensions(append(o.Extensions(), s.SchemaURI))
}

// RemoveFrom drops every URI in the extension's family from o.
func (s Spec) RemoveFrom(o stac.Object) {
	family := stac.ExtensionFamily(s.SchemaURI)
	var kept []string
	for _, uri := range o.Extensions() {
		if stac.ExtensionFamily(uri) != family {
			kept = append(kept, uri)
		}
	}
	o.SetExtensions(kept)
}

// Ensure verifies the extension is declared on o, declaring it first when
// addIfMissing is set. An undeclared extension without addIfMissing is an
// error the caller can recover from by retrying with addIfMissing.
func (s Spec) Ensure(o stac.Object, addIfMissing bool) error {
	if addIfMissing {
		s.AddTo(o)
	}
	if !s.Has(o) {
		return errors.New(errors.ErrCodeExtensionNotImplemented,
			"%s does not declare the %s extension (%s)", o.ID(), s.Name, s.SchemaURI)
	}
	return nil
}

// EnsureOwner is [Spec.Ensure] delegated to the owner of an asset or link.
// A nil owner with addIfMissing set is an error: there is no object to
// declare the extension on.
func (s Spec) EnsureOwner(owner stac.Object, addIfMissing bool) error {
	if owner == nil {
		if addIfMissing {
			return errors.New(errors.ErrCodeTypeError,
				"cannot declare the %s extension: asset or link has no owner", s.Name)
		}
		return errors.New(errors.ErrCodeExtensionNotImplemented,
			"ownerless asset or link cannot declare the %s extension", s.Name)
	}
	return s.Ensure(owner, addIfMissing)
}
