package inventory

import "context"

// StaticSource serves a fixed record set, seeded from the service
// configuration. Useful for self-contained deployments and tests.
type StaticSource struct {
	set ObjectSet
}

// NewStaticSource creates a source over the given records.
func NewStaticSource(records []Record) *StaticSource {
	return &StaticSource{set: NewObjectSet(records)}
}

// FetchAll returns the configured record set.
func (s *StaticSource) FetchAll(_ context.Context) (ObjectSet, error) {
	return s.set, nil
}
