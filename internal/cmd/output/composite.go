package output

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/holocron/pkg/information"
)

// Composite renders an aggregate answer. Its JSON and YAML forms match the
// composite; its table form lists each field with its source.
type Composite struct {
	information.Composite
}

// NewComposite wraps c for formatting.
func NewComposite(c information.Composite) Composite {
	return Composite{Composite: c}
}

// TableData implements Tabular.
func (c Composite) TableData() Data {
	s := c.Starship
	p := c.Provenance
	return Data{
		Headers: titles("field", "value", "source"),
		Rows: [][]string{
			{"Starship", orDash(s.Name), string(p.Starship)},
			{"Model", orDash(s.Model), string(p.Starship)},
			{"Class", orDash(titleCase(s.Class)), string(p.Starship)},
			{"Manufacturer", orDash(s.Manufacturer), string(p.Starship)},
			{"Crew", strconv.FormatInt(c.Crew, 10), string(p.Crew)},
			{"Leia on planet", strconv.FormatBool(c.IsLeiaOnPlanet), string(p.IsLeiaOnPlanet)},
		},
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignLeft},
	}
}

// MarshalYAML keeps the YAML shape of the composite.
func (c Composite) MarshalYAML() (any, error) {
	return c.Composite, nil
}

func titles(names ...string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = titleCase(n)
	}
	return out
}

// titleCase title-cases catalog labels such as "deep space mobile battlestation".
func titleCase(s string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(s, "_", " "))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
