package schemable_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/kr/pretty"

	"github.com/reoring/schemable"
)

func sampleModel() *schemable.Model {
	return &schemable.Model{Tag: schemable.TagLazy, ID: "Node", Model: &schemable.Model{
		Tag: schemable.TagType,
		Properties: map[string]*schemable.Model{
			"off":   {Tag: schemable.TagLiteral, Value: false},
			"zero":  {Tag: schemable.TagLiteral, Value: 0.0},
			"empty": {Tag: schemable.TagLiteral, Value: ""},
			"null":  {Tag: schemable.TagLiteral, Value: nil},
			"kind":  {Tag: schemable.TagLiteralsOr, ID: "Kind", Values: []any{"a", 1.0}, Model: &schemable.Model{Tag: schemable.TagString}},
			"pair":  {Tag: schemable.TagTuple2, Items: []*schemable.Model{{Tag: schemable.TagNumber}, {Tag: schemable.TagBoolean}}},
			"meta":  {Tag: schemable.TagRecord, Codomain: &schemable.Model{Tag: schemable.TagUnknownArray}},
			"shape": {Tag: schemable.TagSum, Discriminator: "type", Members: map[string]*schemable.Model{
				"circle": {Tag: schemable.TagType, Properties: map[string]*schemable.Model{"type": {Tag: schemable.TagLiteral, Value: "circle"}}},
			}},
			"any": {Tag: schemable.TagUnion, Models: []*schemable.Model{{Tag: schemable.TagUnknownRecord}, {Tag: schemable.TagString}}},
			"children": {Tag: schemable.TagArray, Item: &schemable.Model{Tag: schemable.TagRef, ID: "Node"}},
			"both": {Tag: schemable.TagIntersection, Models: []*schemable.Model{
				{Tag: schemable.TagPartial, Properties: map[string]*schemable.Model{"x": {Tag: schemable.TagNumber}}},
				{Tag: schemable.TagType, Properties: map[string]*schemable.Model{"y": {Tag: schemable.TagString}}},
			}},
		},
	}}
}

func TestModel_JSONRoundTrip(t *testing.T) {
	m := sampleModel()
	b, err := m.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := schemable.ParseModelJSON(b)
	if err != nil {
		t.Fatalf("parse: %v\n%s", err, b)
	}
	if !reflect.DeepEqual(got, m) {
		t.Fatalf("round trip mismatch: %v", pretty.Diff(m, got))
	}
}

func TestModel_YAMLRoundTrip(t *testing.T) {
	m := sampleModel()
	b, err := schemable.MarshalModelYAML(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := schemable.ParseModelYAML(b)
	if err != nil {
		t.Fatalf("parse: %v\n%s", err, b)
	}
	if !reflect.DeepEqual(got, m) {
		t.Fatalf("round trip mismatch: %v\n%s", pretty.Diff(m, got), b)
	}
}

func TestModel_LiteralWireFormat(t *testing.T) {
	b, err := (&schemable.Model{Tag: schemable.TagLiteral, Value: false}).MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"_tag":"literal","value":false}` {
		t.Fatalf("unexpected encoding: %s", b)
	}
	m, err := schemable.ParseModelJSON([]byte(`{"_tag":"literal","value":1}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if m.Value != 1.0 {
		t.Fatalf("numbers should decode as float64, got %#v", m.Value)
	}
}

func TestModel_ItemsAndModelsWireFormat(t *testing.T) {
	doc := `{"_tag":"type","properties":{
		"tags":{"_tag":"array","items":{"_tag":"string"}},
		"pair":{"_tag":"tuple2","items":[{"_tag":"number"},{"_tag":"boolean"}]},
		"shape":{"_tag":"sum","tag":"type","models":{"dot":{"_tag":"type","properties":{"type":{"_tag":"literal","value":"dot"}}}}},
		"either":{"_tag":"union","models":[{"_tag":"string"},{"_tag":"number"}]}
	}}`
	want := &schemable.Model{Tag: schemable.TagType, Properties: map[string]*schemable.Model{
		"tags": {Tag: schemable.TagArray, Item: &schemable.Model{Tag: schemable.TagString}},
		"pair": {Tag: schemable.TagTuple2, Items: []*schemable.Model{{Tag: schemable.TagNumber}, {Tag: schemable.TagBoolean}}},
		"shape": {Tag: schemable.TagSum, Discriminator: "type", Members: map[string]*schemable.Model{
			"dot": {Tag: schemable.TagType, Properties: map[string]*schemable.Model{"type": {Tag: schemable.TagLiteral, Value: "dot"}}},
		}},
		"either": {Tag: schemable.TagUnion, Models: []*schemable.Model{{Tag: schemable.TagString}, {Tag: schemable.TagNumber}}},
	}}
	got, err := schemable.ParseModelJSON([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected model: %v", pretty.Diff(want, got))
	}

	yamlDoc := `_tag: type
properties:
  tags:
    _tag: array
    items:
      _tag: string
  shape:
    _tag: sum
    tag: type
    models:
      dot:
        _tag: type
        properties:
          type:
            _tag: literal
            value: dot
`
	got, err = schemable.ParseModelYAML([]byte(yamlDoc))
	if err != nil {
		t.Fatalf("parse yaml: %v", err)
	}
	if got.Properties["tags"].Item == nil || got.Properties["shape"].Members["dot"] == nil {
		t.Fatalf("unexpected yaml model: %# v", pretty.Formatter(got))
	}

	b, err := want.Properties["tags"].MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"_tag":"array","items":{"_tag":"string"}}` {
		t.Fatalf("unexpected array encoding: %s", b)
	}
	b, err = (&schemable.Model{Tag: schemable.TagSum, Discriminator: "k", Members: map[string]*schemable.Model{"a": {Tag: schemable.TagString}}}).MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"_tag":"sum","tag":"k","models":{"a":{"_tag":"string"}}}` {
		t.Fatalf("unexpected sum encoding: %s", b)
	}
}

func TestModel_Validate(t *testing.T) {
	cases := []struct {
		name string
		m    *schemable.Model
		want string
	}{
		{"unknown tag", &schemable.Model{Tag: "nope"}, `unknown tag "nope"`},
		{"dangling ref", &schemable.Model{Tag: schemable.TagArray, Item: &schemable.Model{Tag: schemable.TagRef, ID: "A"}}, `at /items: dangling reference "A"`},
		{"ref to other lazy", &schemable.Model{Tag: schemable.TagLazy, ID: "A", Model: &schemable.Model{Tag: schemable.TagRef, ID: "B"}}, "dangling reference"},
		{"empty literals", &schemable.Model{Tag: schemable.TagLiterals}, "empty literal set"},
		{"non literal", &schemable.Model{Tag: schemable.TagLiteral, Value: []any{}}, "is not a literal"},
		{"tuple arity", &schemable.Model{Tag: schemable.TagTuple3, Items: []*schemable.Model{{Tag: schemable.TagString}}}, "tuple3 needs 3 members, got 1"},
		{"missing child", &schemable.Model{Tag: schemable.TagRecord}, "at /codomain: missing model"},
		{"sum without tag", &schemable.Model{Tag: schemable.TagSum}, "sum without tag field"},
		{"empty union", &schemable.Model{Tag: schemable.TagUnion}, "empty union"},
		{"lazy without id", &schemable.Model{Tag: schemable.TagLazy, Model: &schemable.Model{Tag: schemable.TagString}}, "lazy without id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.m.Validate()
			if err == nil {
				t.Fatalf("expected error")
			}
			if !errors.Is(err, schemable.ErrInvalidModel) || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
	if err := sampleModel().Validate(); err != nil {
		t.Fatalf("sample model should be valid: %v", err)
	}
}

func TestModel_Uses(t *testing.T) {
	m := sampleModel()
	if !m.Uses(schemable.TagUnion) || !m.Uses(schemable.TagRef) {
		t.Fatalf("expected union and $ref to be found")
	}
	if m.Uses(schemable.TagTuple3) {
		t.Fatalf("no tuple3 in sample")
	}
}
