// Package catalog defines the loosely-typed records returned by the remote
// catalog API and the defensive accessors used to read them.
//
// Records are read-only views over a decoded JSON object. Every accessor
// reports a FieldState instead of failing, so callers decide which states
// are fatal for their own pipeline.
package catalog

import "fmt"

// ResourceType identifies a kind of catalog resource.
type ResourceType string

// Resource types known to the catalog.
const (
	ResourcePerson   ResourceType = "person"
	ResourceStarship ResourceType = "starship"
	ResourcePlanet   ResourceType = "planet"
)

// String returns the resource type name.
func (r ResourceType) String() string {
	return string(r)
}

// Valid reports whether r is one of the known resource types.
func (r ResourceType) Valid() bool {
	switch r {
	case ResourcePerson, ResourceStarship, ResourcePlanet:
		return true
	}
	return false
}

// ID is a positive catalog identifier.
type ID int

// Valid reports whether the identifier can address a resource.
func (id ID) Valid() bool {
	return id > 0
}

// String returns the decimal form of the identifier.
func (id ID) String() string {
	return fmt.Sprintf("%d", int(id))
}
