package catalog

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/agentstation/holocron/pkg/errors"
)

// FieldState describes how usable a document field is.
type FieldState int

const (
	// FieldPresent means the field exists with the expected shape and content.
	FieldPresent FieldState = iota
	// FieldAbsent means the field is missing or JSON null.
	FieldAbsent
	// FieldWrongShape means the field exists but has an unexpected JSON type.
	FieldWrongShape
	// FieldBlank means a text field exists but is empty after trimming.
	FieldBlank
)

// String returns a short name for the state.
func (s FieldState) String() string {
	switch s {
	case FieldPresent:
		return "present"
	case FieldAbsent:
		return "absent"
	case FieldWrongShape:
		return "wrong_shape"
	case FieldBlank:
		return "blank"
	}
	return "unknown"
}

// Usable reports whether the state carries a value.
func (s FieldState) Usable() bool {
	return s == FieldPresent
}

// Document is a decoded JSON object from the catalog.
// Numbers are kept as json.Number so no precision is lost before parsing.
type Document map[string]any

// DecodeDocument decodes a JSON object. Top-level values that are not
// objects are rejected.
func DecodeDocument(data []byte) (Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, errNotObject
	}
	return doc, nil
}

var errNotObject = errors.New("catalog document is not a JSON object")

// Text returns the trimmed string value of field.
func (d Document) Text(field string) (string, FieldState) {
	raw, ok := d[field]
	if !ok || raw == nil {
		return "", FieldAbsent
	}
	s, ok := raw.(string)
	if !ok {
		return "", FieldWrongShape
	}
	return TextValue(s)
}

// Number returns field when it is a JSON number.
func (d Document) Number(field string) (json.Number, FieldState) {
	raw, ok := d[field]
	if !ok || raw == nil {
		return "", FieldAbsent
	}
	switch v := raw.(type) {
	case json.Number:
		return v, FieldPresent
	case float64:
		// Documents built in code rather than decoded carry float64.
		return json.Number(formatFloat(v)), FieldPresent
	}
	return "", FieldWrongShape
}

// List returns field when it is a JSON array. An empty array is present.
func (d Document) List(field string) ([]any, FieldState) {
	raw, ok := d[field]
	if !ok || raw == nil {
		return nil, FieldAbsent
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, FieldWrongShape
	}
	return list, FieldPresent
}

// TextValue classifies an arbitrary value as text.
func TextValue(v any) (string, FieldState) {
	if v == nil {
		return "", FieldAbsent
	}
	s, ok := v.(string)
	if !ok {
		return "", FieldWrongShape
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", FieldBlank
	}
	return s, FieldPresent
}

// optionalText returns the trimmed text of field or "" for any other state.
func (d Document) optionalText(field string) string {
	s, state := d.Text(field)
	if !state.Usable() {
		return ""
	}
	return s
}

func formatFloat(f float64) string {
	b, _ := json.Marshal(f)
	return string(b)
}
