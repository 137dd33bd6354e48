package schemable

import (
	"bytes"
	"errors"
	"fmt"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Tag identifies a Model variant.
type Tag string

const (
	TagLiteral       Tag = "literal"
	TagLiterals      Tag = "literals"
	TagLiteralsOr    Tag = "literalsOr"
	TagString        Tag = "string"
	TagNumber        Tag = "number"
	TagBoolean       Tag = "boolean"
	TagUnknownArray  Tag = "UnknownArray"
	TagUnknownRecord Tag = "UnknownRecord"
	TagType          Tag = "type"
	TagPartial       Tag = "partial"
	TagRecord        Tag = "record"
	TagArray         Tag = "array"
	TagTuple2        Tag = "tuple2"
	TagTuple3        Tag = "tuple3"
	TagIntersection  Tag = "intersection"
	TagSum           Tag = "sum"
	TagUnion         Tag = "union"
	TagLazy          Tag = "lazy"
	TagRef           Tag = "$ref"
)

// Model is the serializable representation of a schema description. Which
// fields are set depends on Tag; a Model is never mutated after construction.
// Its stored form is modelWire.
type Model struct {
	Tag Tag
	ID  string

	// literal
	Value any
	// literals, literalsOr
	Values []any
	// literalsOr fallback, lazy body
	Model *Model
	// type, partial
	Properties map[string]*Model
	// record
	Codomain *Model
	// array; stored as "items"
	Item *Model
	// tuple2, tuple3
	Items []*Model
	// intersection, union
	Models []*Model
	// sum; members are stored as "models"
	Discriminator string
	Members       map[string]*Model
}

// modelWire is the stored form of a Model. An array keeps its element under
// "items" like a tuple does, and a sum keeps its members under "models" like
// an intersection does; each field is told apart by its shape.
type modelWire struct {
	Tag Tag    `json:"_tag" yaml:"_tag"`
	ID  string `json:"id,omitempty" yaml:"id,omitempty"`
	// literal values may be false, 0, "" or null, so presence is carried by a pointer.
	Value         *any              `json:"value,omitempty" yaml:"value,omitempty"`
	Values        []any             `json:"values,omitempty" yaml:"values,omitempty"`
	Model         *Model            `json:"model,omitempty" yaml:"model,omitempty"`
	Properties    map[string]*Model `json:"properties,omitempty" yaml:"properties,omitempty"`
	Codomain      *Model            `json:"codomain,omitempty" yaml:"codomain,omitempty"`
	Items         *wireItems        `json:"items,omitempty" yaml:"items,omitempty"`
	Discriminator string            `json:"tag,omitempty" yaml:"tag,omitempty"`
	Models        *wireModels       `json:"models,omitempty" yaml:"models,omitempty"`
}

// wireItems is one model (array) or a list of models (tuple).
type wireItems struct {
	one  *Model
	many []*Model
}

func (w wireItems) MarshalJSON() ([]byte, error) {
	if w.one != nil {
		return gojson.Marshal(w.one)
	}
	return gojson.Marshal(w.many)
}

func (w *wireItems) UnmarshalJSON(b []byte) error {
	if isJSONArray(b) {
		return gojson.Unmarshal(b, &w.many)
	}
	return gojson.Unmarshal(b, &w.one)
}

func (w wireItems) MarshalYAML() (any, error) {
	if w.one != nil {
		return w.one, nil
	}
	return w.many, nil
}

func (w *wireItems) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		return node.Decode(&w.many)
	}
	return node.Decode(&w.one)
}

// wireModels is a list of models (intersection, union) or sum members by tag.
type wireModels struct {
	list    []*Model
	members map[string]*Model
}

func (w wireModels) MarshalJSON() ([]byte, error) {
	if w.members != nil {
		return gojson.Marshal(w.members)
	}
	return gojson.Marshal(w.list)
}

func (w *wireModels) UnmarshalJSON(b []byte) error {
	if isJSONArray(b) {
		return gojson.Unmarshal(b, &w.list)
	}
	return gojson.Unmarshal(b, &w.members)
}

func (w wireModels) MarshalYAML() (any, error) {
	if w.members != nil {
		return w.members, nil
	}
	return w.list, nil
}

func (w *wireModels) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		return node.Decode(&w.list)
	}
	return node.Decode(&w.members)
}

func isJSONArray(b []byte) bool {
	t := bytes.TrimSpace(b)
	return len(t) > 0 && t[0] == '['
}

func (m Model) wire() modelWire {
	w := modelWire{
		Tag:           m.Tag,
		ID:            m.ID,
		Values:        m.Values,
		Model:         m.Model,
		Properties:    m.Properties,
		Codomain:      m.Codomain,
		Discriminator: m.Discriminator,
	}
	if m.Tag == TagLiteral {
		v := m.Value
		w.Value = &v
	}
	switch {
	case m.Item != nil:
		w.Items = &wireItems{one: m.Item}
	case m.Items != nil:
		w.Items = &wireItems{many: m.Items}
	}
	switch {
	case m.Members != nil:
		w.Models = &wireModels{members: m.Members}
	case m.Models != nil:
		w.Models = &wireModels{list: m.Models}
	}
	return w
}

func (w modelWire) model() Model {
	m := Model{
		Tag:           w.Tag,
		ID:            w.ID,
		Values:        w.Values,
		Model:         w.Model,
		Properties:    w.Properties,
		Codomain:      w.Codomain,
		Discriminator: w.Discriminator,
	}
	if w.Value != nil {
		m.Value = normalizeDecoded(*w.Value)
	}
	for i, v := range m.Values {
		m.Values[i] = normalizeDecoded(v)
	}
	if w.Items != nil {
		m.Item, m.Items = w.Items.one, w.Items.many
	}
	if w.Models != nil {
		m.Models, m.Members = w.Models.list, w.Models.members
	}
	return m
}

// MarshalJSON encodes the model with goccy/go-json.
func (m Model) MarshalJSON() ([]byte, error) { return gojson.Marshal(m.wire()) }

// UnmarshalJSON decodes a model encoded by MarshalJSON.
func (m *Model) UnmarshalJSON(b []byte) error {
	var w modelWire
	if err := gojson.Unmarshal(b, &w); err != nil {
		return err
	}
	*m = w.model()
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (m Model) MarshalYAML() (any, error) { return m.wire(), nil }

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *Model) UnmarshalYAML(node *yaml.Node) error {
	var w modelWire
	if err := node.Decode(&w); err != nil {
		return err
	}
	*m = w.model()
	return nil
}

func normalizeDecoded(v any) any {
	if f, ok := toFloat(v); ok {
		return f
	}
	return v
}

// ParseModelJSON decodes and validates a JSON model document.
func ParseModelJSON(b []byte) (*Model, error) {
	var m Model
	if err := gojson.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("schemable: parse model json: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// ParseModelYAML decodes and validates a YAML model document.
func ParseModelYAML(b []byte) (*Model, error) {
	var m Model
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("schemable: parse model yaml: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// MarshalModelYAML encodes a model as YAML.
func MarshalModelYAML(m *Model) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ErrInvalidModel is wrapped by every error returned from Validate.
var ErrInvalidModel = errors.New("schemable: invalid model")

// Validate reports construction errors: unknown tags, missing children,
// empty or non-literal value sets, and references that no enclosing lazy of
// the same id resolves.
func (m *Model) Validate() error {
	return m.validate("/", Scope{})
}

func invalid(path, format string, a ...any) error {
	return fmt.Errorf("%w at %s: %s", ErrInvalidModel, path, fmt.Sprintf(format, a...))
}

func (m *Model) validate(path string, scope Scope) error {
	if m == nil {
		return invalid(path, "missing model")
	}
	child := func(name string, c *Model, s Scope) error {
		return c.validate(join(path, name), s)
	}
	switch m.Tag {
	case TagString, TagNumber, TagBoolean, TagUnknownArray, TagUnknownRecord:
		return nil
	case TagLiteral:
		if !IsLiteral(m.Value) {
			return invalid(path, "%T is not a literal", m.Value)
		}
		return nil
	case TagLiterals, TagLiteralsOr:
		if len(m.Values) == 0 {
			return invalid(path, "empty literal set")
		}
		for _, v := range m.Values {
			if !IsLiteral(v) {
				return invalid(path, "%T is not a literal", v)
			}
		}
		if m.Tag == TagLiteralsOr {
			return child("model", m.Model, scope)
		}
		return nil
	case TagType, TagPartial:
		for _, k := range SortedKeys(m.Properties) {
			if err := child("properties/"+k, m.Properties[k], scope); err != nil {
				return err
			}
		}
		return nil
	case TagRecord:
		return child("codomain", m.Codomain, scope)
	case TagArray:
		return child("items", m.Item, scope)
	case TagTuple2, TagTuple3, TagIntersection:
		want := map[Tag]int{TagTuple2: 2, TagTuple3: 3, TagIntersection: 2}[m.Tag]
		xs, field := m.Items, "items/"
		if m.Tag == TagIntersection {
			xs, field = m.Models, "models/"
		}
		if len(xs) != want {
			return invalid(path, "%s needs %d members, got %d", m.Tag, want, len(xs))
		}
		for i, x := range xs {
			if err := child(field+fmt.Sprint(i), x, scope); err != nil {
				return err
			}
		}
		return nil
	case TagSum:
		if m.Discriminator == "" {
			return invalid(path, "sum without tag field")
		}
		for _, k := range SortedKeys(m.Members) {
			if err := child("models/"+k, m.Members[k], scope); err != nil {
				return err
			}
		}
		return nil
	case TagUnion:
		if len(m.Models) == 0 {
			return invalid(path, "empty union")
		}
		for i, x := range m.Models {
			if err := child("models/"+fmt.Sprint(i), x, scope); err != nil {
				return err
			}
		}
		return nil
	case TagLazy:
		if m.ID == "" {
			return invalid(path, "lazy without id")
		}
		return child("model", m.Model, scope.Enter(m.ID))
	case TagRef:
		if !scope.Entered(m.ID) {
			return invalid(path, "dangling reference %q", m.ID)
		}
		return nil
	}
	return invalid(path, "unknown tag %q", m.Tag)
}

func join(path, name string) string {
	if path == "/" {
		return "/" + name
	}
	return path + "/" + name
}

// Uses reports whether the tree contains a node with the given tag.
func (m *Model) Uses(tag Tag) bool {
	if m == nil {
		return false
	}
	if m.Tag == tag {
		return true
	}
	for _, c := range m.children() {
		if c.Uses(tag) {
			return true
		}
	}
	return false
}

func (m *Model) children() []*Model {
	var out []*Model
	if m.Model != nil {
		out = append(out, m.Model)
	}
	for _, k := range SortedKeys(m.Properties) {
		out = append(out, m.Properties[k])
	}
	if m.Codomain != nil {
		out = append(out, m.Codomain)
	}
	if m.Item != nil {
		out = append(out, m.Item)
	}
	out = append(out, m.Items...)
	out = append(out, m.Models...)
	for _, k := range SortedKeys(m.Members) {
		out = append(out, m.Members[k])
	}
	return out
}
