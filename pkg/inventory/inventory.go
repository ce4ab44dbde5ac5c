// Package inventory provides the object-query capability backing panel
// variables: a registry of entity types, each answering fetch-all queries
// with filterable record sets.
package inventory

import (
	"context"
	"fmt"

	"github.com/samber/lo"
)

// UnknownEntityTypeError reports a query against an entity type the registry
// has never heard of.
type UnknownEntityTypeError struct {
	EntityType string
}

func (e *UnknownEntityTypeError) Error() string {
	return fmt.Sprintf("unknown inventory entity type %q", e.EntityType)
}

// UnknownAttributeError reports a filter referencing an attribute no record
// of the entity type carries.
type UnknownAttributeError struct {
	Attribute string
}

func (e *UnknownAttributeError) Error() string {
	return fmt.Sprintf("unknown inventory attribute %q", e.Attribute)
}

// Record is one inventory object: a display name plus arbitrary named
// attributes.
type Record struct {
	Name  string
	Attrs map[string]string
}

// Get returns the value of a named attribute. "name" resolves to the display
// name.
func (r Record) Get(attr string) (string, bool) {
	if attr == "name" {
		return r.Name, true
	}
	value, ok := r.Attrs[attr]
	return value, ok
}

// Fields returns the record as a flat field->value map including the name,
// suitable for template rendering.
func (r Record) Fields() map[string]string {
	fields := make(map[string]string, len(r.Attrs)+1)
	for key, value := range r.Attrs {
		fields[key] = value
	}
	fields["name"] = r.Name
	return fields
}

// ObjectSet is an immutable collection of records of one entity type.
type ObjectSet struct {
	records []Record
}

// NewObjectSet wraps records in a set.
func NewObjectSet(records []Record) ObjectSet {
	return ObjectSet{records: records}
}

// Count returns the number of records in the set.
func (s ObjectSet) Count() int {
	return len(s.records)
}

// Records returns the records in the set.
func (s ObjectSet) Records() []Record {
	return s.records
}

// First returns the first record; callers must check Count beforehand.
func (s ObjectSet) First() Record {
	return s.records[0]
}

// Filter returns the subset of records matching every criterion exactly.
// A criterion naming an attribute absent from every record in the set is a
// configuration mistake and fails with UnknownAttributeError.
func (s ObjectSet) Filter(criteria map[string]string) (ObjectSet, error) {
	filtered := s.records
	for attr, want := range criteria {
		known := lo.SomeBy(s.records, func(r Record) bool {
			_, ok := r.Get(attr)
			return ok
		})
		if !known {
			return ObjectSet{}, &UnknownAttributeError{Attribute: attr}
		}
		filtered = lo.Filter(filtered, func(r Record, _ int) bool {
			value, ok := r.Get(attr)
			return ok && value == want
		})
	}
	return ObjectSet{records: filtered}, nil
}

// Source answers fetch-all queries for a single entity type.
type Source interface {
	FetchAll(ctx context.Context) (ObjectSet, error)
}

// Registry maps entity-type names from the panels configuration to their
// query sources. It is populated at startup and read-only afterwards.
type Registry struct {
	sources map[string]Source
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{sources: make(map[string]Source)}
}

// Register binds an entity-type name to a source.
func (r *Registry) Register(entityType string, source Source) {
	r.sources[entityType] = source
}

// FetchAll fetches the full object set for an entity type.
func (r *Registry) FetchAll(ctx context.Context, entityType string) (ObjectSet, error) {
	source, ok := r.sources[entityType]
	if !ok {
		return ObjectSet{}, &UnknownEntityTypeError{EntityType: entityType}
	}
	return source.FetchAll(ctx)
}
