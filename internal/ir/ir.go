// Package ir defines the minimal intermediate representation used by the
// code generator. This package is internal and not part of the public API.
package ir

import (
	"fmt"
	"sort"

	"github.com/reoring/schemable"
)

// NodeKind identifies an IR node type.
type NodeKind int

const (
	NodePrimitive NodeKind = iota
	NodeEnum
	NodeArray
	NodeTuple
	NodeMap
	NodeObject
	NodeOneOf
	NodeRef
	NodeAny
)

// Schema is the root IR node interface.
type Schema interface {
	Kind() NodeKind
}

// Primitive represents string/boolean/number primitives.
type Primitive struct {
	Name string // "string"|"boolean"|"number" (JSON compatible names)
}

func (p *Primitive) Kind() NodeKind { return NodePrimitive }

// Enum is a closed set of literal values.
type Enum struct {
	Values []any
}

func (e *Enum) Kind() NodeKind { return NodeEnum }

// Array represents an array of items. A nil Item means unknown elements.
type Array struct {
	Item Schema
}

func (a *Array) Kind() NodeKind { return NodeArray }

// Tuple is a fixed-length array.
type Tuple struct {
	Items []Schema
}

func (t *Tuple) Kind() NodeKind { return NodeTuple }

// Map is a record with string keys. A nil Value means unknown values.
type Map struct {
	Value Schema
}

func (m *Map) Kind() NodeKind { return NodeMap }

// Object represents an object with fields.
type Object struct {
	Fields   []Field // sorted by Name
	Required map[string]struct{}
}

func (o *Object) Kind() NodeKind { return NodeObject }

// Field maps a JSON name to a Schema.
type Field struct {
	Name   string
	Schema Schema
}

// OneOf represents a discriminated union. Discriminator is empty for open unions.
type OneOf struct {
	Discriminator string
	Mapping       map[string]Schema // discriminator value -> variant schema
	Variants      []Schema          // open union members
}

func (u *OneOf) Kind() NodeKind { return NodeOneOf }

// Ref names a type declared in Program.Named.
type Ref struct {
	Name string
}

func (r *Ref) Kind() NodeKind { return NodeRef }

// Any is a value with no usable static shape.
type Any struct{}

func (Any) Kind() NodeKind { return NodeAny }

// Program is a lowered Model: its root node plus the lazy shapes it names.
type Program struct {
	Root  Schema
	Named map[string]Schema
}

// FromModel lowers a validated Model. Each lazy becomes a named entry and
// every occurrence of it, including $ref, becomes a Ref.
func FromModel(m *schemable.Model) (*Program, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	p := &Program{Named: map[string]Schema{}}
	p.Root = p.lower(m)
	return p, nil
}

func (p *Program) lower(m *schemable.Model) Schema {
	switch m.Tag {
	case schemable.TagLiteral:
		return &Enum{Values: []any{m.Value}}
	case schemable.TagLiterals:
		return &Enum{Values: m.Values}
	case schemable.TagLiteralsOr:
		return &OneOf{Variants: []Schema{&Enum{Values: m.Values}, p.lower(m.Model)}}
	case schemable.TagString, schemable.TagNumber, schemable.TagBoolean:
		return &Primitive{Name: string(m.Tag)}
	case schemable.TagUnknownArray:
		return &Array{}
	case schemable.TagUnknownRecord:
		return &Map{}
	case schemable.TagType, schemable.TagPartial:
		o := &Object{Required: map[string]struct{}{}}
		for _, k := range schemable.SortedKeys(m.Properties) {
			o.Fields = append(o.Fields, Field{Name: k, Schema: p.lower(m.Properties[k])})
			if m.Tag == schemable.TagType {
				o.Required[k] = struct{}{}
			}
		}
		return o
	case schemable.TagRecord:
		return &Map{Value: p.lower(m.Codomain)}
	case schemable.TagArray:
		return &Array{Item: p.lower(m.Item)}
	case schemable.TagTuple2, schemable.TagTuple3:
		t := &Tuple{}
		for _, c := range m.Items {
			t.Items = append(t.Items, p.lower(c))
		}
		return t
	case schemable.TagIntersection:
		return merge(p.lower(m.Models[0]), p.lower(m.Models[1]))
	case schemable.TagSum:
		u := &OneOf{Discriminator: m.Discriminator, Mapping: map[string]Schema{}}
		for k, c := range m.Members {
			u.Mapping[k] = p.lower(c)
		}
		return u
	case schemable.TagUnion:
		u := &OneOf{}
		for _, c := range m.Models {
			u.Variants = append(u.Variants, p.lower(c))
		}
		return u
	case schemable.TagLazy:
		if _, ok := p.Named[m.ID]; !ok {
			p.Named[m.ID] = Any{} // placeholder while the body is lowered
			p.Named[m.ID] = p.lower(m.Model)
		}
		return &Ref{Name: m.ID}
	case schemable.TagRef:
		return &Ref{Name: m.ID}
	}
	panic(fmt.Sprintf("ir: unknown tag %q", m.Tag))
}

// merge flattens an intersection of two objects into one object. Any other
// combination has no static shape.
func merge(a, b Schema) Schema {
	oa, okA := a.(*Object)
	ob, okB := b.(*Object)
	if !okA || !okB {
		return Any{}
	}
	out := &Object{Required: map[string]struct{}{}}
	idx := map[string]int{}
	for _, o := range []*Object{oa, ob} {
		for _, f := range o.Fields {
			if i, ok := idx[f.Name]; ok {
				out.Fields[i] = f
			} else {
				idx[f.Name] = len(out.Fields)
				out.Fields = append(out.Fields, f)
			}
			if _, req := o.Required[f.Name]; req {
				out.Required[f.Name] = struct{}{}
			}
		}
	}
	sort.Slice(out.Fields, func(i, j int) bool { return out.Fields[i].Name < out.Fields[j].Name })
	return out
}
