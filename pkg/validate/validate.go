// Package validate checks serialized STAC objects against the core JSON
// schemas and the schemas of every extension they declare.
//
// Validation is distinct from the construction-time invariant checks in the
// core packages: an object can be built successfully and still fail its
// schema, for example when a declared extension requires fields that were
// never set.
package validate

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/stacforge/gostac/pkg/errors"
	"github.com/stacforge/gostac/pkg/stac"
)

// Core schema URIs for the current STAC version.
const (
	CatalogSchemaURI    = "https://schemas.stacspec.org/v1.0.0/catalog-spec/json-schema/catalog.json"
	CollectionSchemaURI = "https://schemas.stacspec.org/v1.0.0/collection-spec/json-schema/collection.json"
	ItemSchemaURI       = "https://schemas.stacspec.org/v1.0.0/item-spec/json-schema/item.json"
)

// SchemaURIs returns every schema obj must conform to: the core schema for
// its type followed by the schema of each declared extension.
func SchemaURIs(obj stac.Object) []string {
	var uris []string
	switch obj.Type() {
	case stac.TypeCatalog:
		uris = append(uris, CatalogSchemaURI)
	case stac.TypeCollection:
		uris = append(uris, CollectionSchemaURI)
	case stac.TypeItem:
		uris = append(uris, ItemSchemaURI)
	}
	return append(uris, obj.Extensions()...)
}

// Failure records one schema an object did not conform to.
type Failure struct {
	SchemaURI string
	Err       error
}

// Error aggregates every schema failure from one validation run.
type Error struct {
	ObjectID string
	Failures []Failure
}

func (e *Error) Error() string {
	uris := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		uris[i] = f.SchemaURI
	}
	return fmt.Sprintf("%s failed validation against %s", e.ObjectID, strings.Join(uris, ", "))
}

// Validator checks a STAC object against its applicable schemas.
type Validator interface {
	Validate(ctx context.Context, obj stac.Object) error
}

// SchemaValidator validates against remote JSON schemas, compiled once and
// cached per URI. Safe for concurrent use.
type SchemaValidator struct {
	mu       sync.Mutex
	compiler *jsonschema.Compiler
	schemas  map[string]*jsonschema.Schema
}

// NewSchemaValidator creates a validator that fetches schemas over HTTP.
func NewSchemaValidator() *SchemaValidator {
	client := &http.Client{Timeout: 30 * time.Second}
	compiler := jsonschema.NewCompiler()
	compiler.UseLoader(jsonschema.SchemeURLLoader{
		"file":  jsonschema.FileLoader{},
		"http":  &httpSchemaLoader{client: client},
		"https": &httpSchemaLoader{client: client},
	})
	return &SchemaValidator{
		compiler: compiler,
		schemas:  map[string]*jsonschema.Schema{},
	}
}

// Validate serializes obj and checks it against every applicable schema.
// All schemas are checked even after a failure, so the returned [Error]
// lists every non-conforming schema at once.
func (v *SchemaValidator) Validate(ctx context.Context, obj stac.Object) error {
	d := obj.ToDict(false)
	// Round-trip through the decoded-JSON shape the schema library expects.
	value := normalizeJSON(d)

	var failures []Failure
	for _, uri := range SchemaURIs(obj) {
		schema, err := v.schema(uri)
		if err != nil {
			return errors.Wrap(errors.ErrCodeValidation, err, "load schema %s", uri)
		}
		if err := schema.Validate(value); err != nil {
			failures = append(failures, Failure{SchemaURI: uri, Err: err})
		}
	}
	if len(failures) > 0 {
		return errors.Wrap(errors.ErrCodeValidation,
			&Error{ObjectID: obj.ID(), Failures: failures},
			"validate %s", obj.ID())
	}
	return nil
}

func (v *SchemaValidator) schema(uri string) (*jsonschema.Schema, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if s, ok := v.schemas[uri]; ok {
		return s, nil
	}
	s, err := v.compiler.Compile(uri)
	if err != nil {
		return nil, err
	}
	v.schemas[uri] = s
	return s, nil
}

type httpSchemaLoader struct {
	client *http.Client
}

func (l *httpSchemaLoader) Load(url string) (any, error) {
	resp, err := l.client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: %s", url, resp.Status)
	}
	return jsonschema.UnmarshalJSON(resp.Body)
}

// normalizeJSON rewrites Go-typed values into the decoded-JSON shapes the
// schema library compares against (float64 numbers, []any lists).
func normalizeJSON(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = normalizeJSON(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalizeJSON(e)
		}
		return out
	case []float64:
		out := make([]any, len(t))
		for i, f := range t {
			out[i] = f
		}
		return out
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case float32:
		return float64(t)
	default:
		return v
	}
}
