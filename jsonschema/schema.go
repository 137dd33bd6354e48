package jsonschema

import (
	"bytes"

	gojson "github.com/goccy/go-json"
)

// Draft07 is the $schema URI stamped on documents.
const Draft07 = "http://json-schema.org/draft-07/schema#"

// Schema is the Draft-07 subset emitted by Builder.
type Schema struct {
	Schema string `json:"$schema,omitempty"`
	Ref    string `json:"$ref,omitempty"`

	// Core
	Type string `json:"type,omitempty"`
	Enum []any  `json:"enum,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties *Schema            `json:"additionalProperties,omitempty"`

	// Array
	Items    *Items `json:"items,omitempty"`
	MinItems *int   `json:"minItems,omitempty"`
	MaxItems *int   `json:"maxItems,omitempty"`

	// Combinators
	AllOf []*Schema `json:"allOf,omitempty"`
	AnyOf []*Schema `json:"anyOf,omitempty"`
	OneOf []*Schema `json:"oneOf,omitempty"`

	Definitions map[string]*Schema `json:"definitions,omitempty"`
}

// Items is either one schema for every element or a list of positional schemas.
type Items struct {
	Schema *Schema
	Tuple  []*Schema
}

// MarshalJSON writes the tuple list when set, otherwise the single schema.
func (it Items) MarshalJSON() ([]byte, error) {
	if it.Tuple != nil {
		return gojson.Marshal(it.Tuple)
	}
	return gojson.Marshal(it.Schema)
}

// UnmarshalJSON accepts either a schema or an array of schemas.
func (it *Items) UnmarshalJSON(b []byte) error {
	if t := bytes.TrimSpace(b); len(t) > 0 && t[0] == '[' {
		it.Schema = nil
		return gojson.Unmarshal(t, &it.Tuple)
	}
	it.Tuple = nil
	return gojson.Unmarshal(b, &it.Schema)
}

// Marshal renders s as indented JSON. The compact encoding is indented in a
// second step; MarshalIndent mangles nested Items under definitions.
func Marshal(s *Schema) ([]byte, error) {
	b, err := gojson.Marshal(s)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := gojson.Indent(&buf, b, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Parse reads a document produced by Marshal.
func Parse(b []byte) (*Schema, error) {
	var s Schema
	if err := gojson.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
