package catalog

import "encoding/json"

// Field names used by the catalog API.
const (
	FieldStarships    = "starships"
	FieldResidents    = "residents"
	FieldCrew         = "crew"
	FieldName         = "name"
	FieldModel        = "model"
	FieldClass        = "starship_class"
	FieldManufacturer = "manufacturer"
)

// Person is a character record.
type Person struct {
	doc Document
}

// NewPerson wraps a fetched document as a person record.
func NewPerson(doc Document) Person {
	return Person{doc: doc}
}

// FirstStarship returns the first starship reference URL.
// An empty list reports FieldAbsent; a non-text or blank entry reports its own state.
func (p Person) FirstStarship() (string, FieldState) {
	list, state := p.doc.List(FieldStarships)
	if !state.Usable() {
		return "", state
	}
	if len(list) == 0 {
		return "", FieldAbsent
	}
	return TextValue(list[0])
}

// Starship is a vessel record.
type Starship struct {
	doc Document
}

// NewStarship wraps a fetched document as a starship record.
func NewStarship(doc Document) Starship {
	return Starship{doc: doc}
}

// Crew returns the crew field as text. It is usually locale-formatted such as
// "342,953" but may be a sentinel like "unknown".
func (s Starship) Crew() (string, FieldState) {
	return s.doc.Text(FieldCrew)
}

// CrewNumber returns the crew field when the catalog sent a bare JSON number.
func (s Starship) CrewNumber() (json.Number, FieldState) {
	return s.doc.Number(FieldCrew)
}

// Summary returns the display fields of the starship.
func (s Starship) Summary() StarshipSummary {
	return StarshipSummary{
		Name:         s.doc.optionalText(FieldName),
		Model:        s.doc.optionalText(FieldModel),
		Class:        s.doc.optionalText(FieldClass),
		Manufacturer: s.doc.optionalText(FieldManufacturer),
	}
}

// StarshipSummary is the pass-through view of a starship in the aggregate answer.
// The zero value is the "no starship" default.
type StarshipSummary struct {
	Name         string `json:"name,omitempty" yaml:"name,omitempty"`
	Model        string `json:"model,omitempty" yaml:"model,omitempty"`
	Class        string `json:"class,omitempty" yaml:"class,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty" yaml:"manufacturer,omitempty"`
}

// IsZero reports whether the summary carries no data.
func (s StarshipSummary) IsZero() bool {
	return s == StarshipSummary{}
}

// Planet is a planet record.
type Planet struct {
	doc Document
}

// NewPlanet wraps a fetched document as a planet record.
func NewPlanet(doc Document) Planet {
	return Planet{doc: doc}
}

// Residents returns the resident reference list in catalog order.
// Entries are returned untouched; callers skip the unusable ones.
func (p Planet) Residents() ([]any, FieldState) {
	return p.doc.List(FieldResidents)
}
