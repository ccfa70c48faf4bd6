package stac

import (
	"context"

	json "github.com/goccy/go-json"

	"github.com/stacforge/gostac/pkg/errors"
)

// FromDictOptions tunes deserialization. The zero value (or nil) means: no
// self href, migrate old versions with no extension hooks, no I/O attached.
type FromDictOptions struct {
	// Href, when non-empty, becomes the object's self href.
	Href string
	// SkipMigration disables the version-migration pass. Documents already
	// at the current version skip it implicitly.
	SkipMigration bool
	// Hooks supplies the extension hooks consulted during migration.
	Hooks *HooksRegistry
	// IO is attached to the constructed object for subsequent resolution
	// and saving.
	IO IO
}

// FromDict constructs a Catalog, Collection or Item from a raw JSON dict,
// dispatching on the identified object type. Documents from older STAC
// versions are migrated first unless opts disables it.
func FromDict(d map[string]any, opts *FromDictOptions) (Object, error) {
	if opts == nil {
		opts = &FromDictOptions{}
	}

	info := Identify(d)
	if info.ObjectType == TypeUnknown {
		return nil, errors.New(errors.ErrCodeInvalidObject,
			"dict is not a recognizable STAC object (no type, extent, geometry or description)")
	}
	if !opts.SkipMigration && info.Version != DefaultStacVersion {
		d = MigrateDict(cloneAnyMap(d), info, opts.Hooks)
	}

	var obj Object
	var err error
	switch info.ObjectType {
	case TypeCatalog:
		obj, err = CatalogFromDict(d)
	case TypeCollection:
		obj, err = CollectionFromDict(d)
	case TypeItem:
		obj, err = ItemFromDict(d)
	}
	if err != nil {
		return nil, err
	}

	if opts.IO != nil {
		obj.SetIO(opts.IO)
	}
	if opts.Href != "" {
		if err := obj.SetSelfHref(opts.Href); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

// FromFile reads href through io and constructs the object it contains. The
// object's self href is set to the absolute form of href.
func FromFile(ctx context.Context, href string, io IO, opts *FromDictOptions) (Object, error) {
	text, err := io.ReadText(ctx, href)
	if err != nil {
		return nil, err
	}
	var d map[string]any
	if err := json.Unmarshal([]byte(text), &d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeSerialization, err, "parse %s", href)
	}

	resolved := opts
	if resolved == nil {
		resolved = &FromDictOptions{}
	}
	o := *resolved
	o.Href = MakeAbsoluteHref(href, "", false)
	if o.IO == nil {
		o.IO = io
	}
	return FromDict(d, &o)
}

// CatalogFromFile reads href and asserts the result is a catalog or
// collection.
func CatalogFromFile(ctx context.Context, href string, io IO, opts *FromDictOptions) (Container, error) {
	obj, err := FromFile(ctx, href, io, opts)
	if err != nil {
		return nil, err
	}
	cat, ok := obj.(Container)
	if !ok {
		return nil, errors.New(errors.ErrCodeTypeError,
			"%s contains a %s, expected Catalog or Collection", href, obj.Type())
	}
	return cat, nil
}

// ItemFromFile reads href and asserts the result is an item.
func ItemFromFile(ctx context.Context, href string, io IO, opts *FromDictOptions) (*Item, error) {
	obj, err := FromFile(ctx, href, io, opts)
	if err != nil {
		return nil, err
	}
	item, ok := obj.(*Item)
	if !ok {
		return nil, errors.New(errors.ErrCodeTypeError,
			"%s contains a %s, expected Feature", href, obj.Type())
	}
	return item, nil
}
