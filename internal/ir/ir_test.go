package ir_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/kr/pretty"

	"github.com/reoring/schemable"
	ir "github.com/reoring/schemable/internal/ir"
)

func TestFromModel_Lazy(t *testing.T) {
	m := &schemable.Model{Tag: schemable.TagLazy, ID: "Node", Model: &schemable.Model{
		Tag: schemable.TagType,
		Properties: map[string]*schemable.Model{
			"value": {Tag: schemable.TagNumber},
			"next":  {Tag: schemable.TagArray, Item: &schemable.Model{Tag: schemable.TagRef, ID: "Node"}},
		},
	}}
	p, err := ir.FromModel(m)
	if err != nil {
		t.Fatalf("lower: %v", err)
	}
	want := &ir.Program{
		Root: &ir.Ref{Name: "Node"},
		Named: map[string]ir.Schema{
			"Node": &ir.Object{
				Fields: []ir.Field{
					{Name: "next", Schema: &ir.Array{Item: &ir.Ref{Name: "Node"}}},
					{Name: "value", Schema: &ir.Primitive{Name: "number"}},
				},
				Required: map[string]struct{}{"next": {}, "value": {}},
			},
		},
	}
	if !reflect.DeepEqual(p, want) {
		t.Fatalf("unexpected program: %v", pretty.Diff(want, p))
	}
}

func TestFromModel_IntersectionMerge(t *testing.T) {
	m := &schemable.Model{Tag: schemable.TagIntersection, Models: []*schemable.Model{
		{Tag: schemable.TagType, Properties: map[string]*schemable.Model{"b": {Tag: schemable.TagString}}},
		{Tag: schemable.TagPartial, Properties: map[string]*schemable.Model{"a": {Tag: schemable.TagBoolean}}},
	}}
	p, err := ir.FromModel(m)
	if err != nil {
		t.Fatalf("lower: %v", err)
	}
	want := &ir.Object{
		Fields: []ir.Field{
			{Name: "a", Schema: &ir.Primitive{Name: "boolean"}},
			{Name: "b", Schema: &ir.Primitive{Name: "string"}},
		},
		Required: map[string]struct{}{"b": {}},
	}
	if !reflect.DeepEqual(p.Root, want) {
		t.Fatalf("unexpected root: %v", pretty.Diff(want, p.Root))
	}

	mixed := &schemable.Model{Tag: schemable.TagIntersection, Models: []*schemable.Model{{Tag: schemable.TagString}, {Tag: schemable.TagNumber}}}
	if p, _ := ir.FromModel(mixed); p.Root.Kind() != ir.NodeAny {
		t.Fatalf("non-object intersection should lower to any, got %v", p.Root.Kind())
	}
}

func TestFromModel_Invalid(t *testing.T) {
	_, err := ir.FromModel(&schemable.Model{Tag: schemable.TagRecord})
	if !errors.Is(err, schemable.ErrInvalidModel) {
		t.Fatalf("expected invalid model, got %v", err)
	}
}
