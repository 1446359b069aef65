// Package fixture implements a file-backed ddvalidate.Repository for
// tests and the CLI harness, grounded on the teacher's pattern of a pure
// compiler operating against an injected schema source (compiler.go's
// Loaders/decoder hooks) rather than a live database.
package fixture

import (
	"context"
	"fmt"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	yaml "github.com/goccy/go-yaml"

	"github.com/skofic/ddvalidate"
)

// Document is the on-disk shape a fixture dictionary file takes: a flat
// list of terms plus the collection names the repository should
// recognize as existing.
type Document struct {
	Terms       []*ddvalidate.Term `json:"terms" yaml:"terms"`
	Collections []string           `json:"collections" yaml:"collections"`
}

// Dictionary is an in-memory ddvalidate.Repository loaded from a single
// fixture file. It is safe for concurrent reads; it is never mutated
// after Load returns.
type Dictionary struct {
	terms       map[string]*ddvalidate.Term
	collections map[string]bool
}

var _ ddvalidate.Repository = (*Dictionary)(nil)

// LoadYAML reads a YAML fixture document from path.
func LoadYAML(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixture: reading %s: %w", path, err)
	}

	// goccy/go-yaml decodes into the generic shape first; the document is
	// then round-tripped through goccy/go-json so the same json struct
	// tags term.go already declares drive both file formats, instead of
	// duplicating every field with a parallel yaml tag.
	var generic any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("fixture: parsing %s as YAML: %w", path, err)
	}
	bridged, err := json.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("fixture: bridging %s to JSON: %w", path, err)
	}
	return loadJSONBytes(bridged, path)
}

// LoadJSON reads a JSON fixture document from path.
func LoadJSON(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixture: reading %s: %w", path, err)
	}
	return loadJSONBytes(data, path)
}

// Load dispatches to LoadYAML or LoadJSON by path's extension.
func Load(path string) (*Dictionary, error) {
	if strings.HasSuffix(path, ".json") {
		return LoadJSON(path)
	}
	return LoadYAML(path)
}

func loadJSONBytes(data []byte, path string) (*Dictionary, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("fixture: decoding %s: %w", path, err)
	}

	d := &Dictionary{
		terms:       make(map[string]*ddvalidate.Term, len(doc.Terms)),
		collections: make(map[string]bool, len(doc.Collections)),
	}
	for _, t := range doc.Terms {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("fixture: %s: term %q failed validation: %w", path, t.Key, err)
		}
		d.terms[t.Key] = t
	}
	for _, c := range doc.Collections {
		d.collections[c] = true
	}
	return d, nil
}

// GetTerm implements ddvalidate.Repository.
func (d *Dictionary) GetTerm(_ context.Context, key string) (*ddvalidate.Term, error) {
	t, ok := d.terms[key]
	if !ok {
		return nil, ddvalidate.ErrTermNotFound
	}
	return t, nil
}

// CollectionExists implements ddvalidate.Repository.
func (d *Dictionary) CollectionExists(_ context.Context, name string) (bool, error) {
	return d.collections[name], nil
}

// QueryEnumByCode implements ddvalidate.Repository's findEnumByCode by a
// linear scan of the loaded terms. Fixture dictionaries are small enough
// that this trades an index for simplicity; a production Repository
// would back this with a real query.
func (d *Dictionary) QueryEnumByCode(_ context.Context, codeField, value, enumType string) ([]string, error) {
	var matches []string
	for key, t := range d.terms {
		if t.Code == nil || t.Code.Field(codeField) != value {
			continue
		}
		if !t.InPath(enumType) {
			continue
		}
		matches = append(matches, key)
	}
	return matches, nil
}

// Len reports how many terms the dictionary holds.
func (d *Dictionary) Len() int { return len(d.terms) }
