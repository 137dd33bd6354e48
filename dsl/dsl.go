package dsl

import (
	"fmt"

	"github.com/reoring/schemable"
)

// DSL builds a Model. The scope passed to build lists the lazy ids being
// expanded along the current path.
type DSL struct {
	build func(s schemable.Scope) *schemable.Model
}

// Model builds the tree from an empty scope.
func (d DSL) Model() *schemable.Model { return d.build(schemable.Scope{}) }

// Compile builds the tree and validates it.
func (d DSL) Compile() (*schemable.Model, error) {
	m := d.Model()
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("dsl: compile: %w", err)
	}
	return m, nil
}

// leaf returns a DSL that always builds m.
func leaf(m schemable.Model) DSL {
	return DSL{build: func(schemable.Scope) *schemable.Model {
		out := m
		return &out
	}}
}

// Literal records a single literal value.
func Literal(value any, id ...string) DSL {
	return leaf(schemable.Model{Tag: schemable.TagLiteral, ID: schemable.ID(id), Value: schemable.NormalizeLiteral(value)})
}

// Literals records a closed set of literal values.
func Literals(values []any, id ...string) DSL {
	return leaf(schemable.Model{Tag: schemable.TagLiterals, ID: schemable.ID(id), Values: schemable.NormalizeLiterals(values)})
}

// LiteralsOr records literal values with a fallback model.
func LiteralsOr(values []any, or DSL, id ...string) DSL {
	lits := schemable.NormalizeLiterals(values)
	return DSL{build: func(s schemable.Scope) *schemable.Model {
		return &schemable.Model{Tag: schemable.TagLiteralsOr, ID: schemable.ID(id), Values: lits, Model: or.build(s)}
	}}
}

var (
	String        = leaf(schemable.Model{Tag: schemable.TagString})
	Number        = leaf(schemable.Model{Tag: schemable.TagNumber})
	Boolean       = leaf(schemable.Model{Tag: schemable.TagBoolean})
	UnknownArray  = leaf(schemable.Model{Tag: schemable.TagUnknownArray})
	UnknownRecord = leaf(schemable.Model{Tag: schemable.TagUnknownRecord})
)

func buildAll(s schemable.Scope, m map[string]DSL) map[string]*schemable.Model {
	return schemable.MapValues(m, func(d DSL) *schemable.Model { return d.build(s) })
}

// Type records an object whose properties are all required.
func Type(properties map[string]DSL, id ...string) DSL {
	return DSL{build: func(s schemable.Scope) *schemable.Model {
		return &schemable.Model{Tag: schemable.TagType, ID: schemable.ID(id), Properties: buildAll(s, properties)}
	}}
}

// Partial records an object whose properties are all optional.
func Partial(properties map[string]DSL, id ...string) DSL {
	return DSL{build: func(s schemable.Scope) *schemable.Model {
		return &schemable.Model{Tag: schemable.TagPartial, ID: schemable.ID(id), Properties: buildAll(s, properties)}
	}}
}

// Record records a string-keyed map with values described by codomain.
func Record(codomain DSL, id ...string) DSL {
	return DSL{build: func(s schemable.Scope) *schemable.Model {
		return &schemable.Model{Tag: schemable.TagRecord, ID: schemable.ID(id), Codomain: codomain.build(s)}
	}}
}

// Array records a list whose elements are described by items.
func Array(items DSL, id ...string) DSL {
	return DSL{build: func(s schemable.Scope) *schemable.Model {
		return &schemable.Model{Tag: schemable.TagArray, ID: schemable.ID(id), Item: items.build(s)}
	}}
}

// Tuple2 records a pair.
func Tuple2(a, b DSL, id ...string) DSL {
	return DSL{build: func(s schemable.Scope) *schemable.Model {
		return &schemable.Model{Tag: schemable.TagTuple2, ID: schemable.ID(id), Items: []*schemable.Model{a.build(s), b.build(s)}}
	}}
}

// Tuple3 records a triple.
func Tuple3(a, b, c DSL, id ...string) DSL {
	return DSL{build: func(s schemable.Scope) *schemable.Model {
		return &schemable.Model{Tag: schemable.TagTuple3, ID: schemable.ID(id), Items: []*schemable.Model{a.build(s), b.build(s), c.build(s)}}
	}}
}

// Intersection records a value matching both left and right.
func Intersection(left, right DSL, id ...string) DSL {
	return DSL{build: func(s schemable.Scope) *schemable.Model {
		return &schemable.Model{Tag: schemable.TagIntersection, ID: schemable.ID(id), Models: []*schemable.Model{left.build(s), right.build(s)}}
	}}
}

// Sum records a tagged union on the field tag.
func Sum(tag string, members map[string]DSL, id ...string) DSL {
	return DSL{build: func(s schemable.Scope) *schemable.Model {
		return &schemable.Model{Tag: schemable.TagSum, ID: schemable.ID(id), Discriminator: tag, Members: buildAll(s, members)}
	}}
}

// Union records an open union. It panics when members is empty.
func Union(members []DSL, id ...string) DSL {
	if len(members) == 0 {
		panic("dsl: empty union")
	}
	return DSL{build: func(s schemable.Scope) *schemable.Model {
		ms := make([]*schemable.Model, len(members))
		for i, d := range members {
			ms[i] = d.build(s)
		}
		return &schemable.Model{Tag: schemable.TagUnion, ID: schemable.ID(id), Models: ms}
	}}
}

// Lazy records a named recursive shape. Its body is built with id entered;
// a Lazy with an entered id builds a $ref.
func Lazy(id string, f func() DSL) DSL {
	return DSL{build: func(s schemable.Scope) *schemable.Model {
		if s.Entered(id) {
			return &schemable.Model{Tag: schemable.TagRef, ID: id}
		}
		return &schemable.Model{Tag: schemable.TagLazy, ID: id, Model: f().build(s.Enter(id))}
	}}
}

// Ref refers to the enclosing lazy named id. Compile reports a Ref with no
// such enclosing lazy.
func Ref(id string) DSL {
	return leaf(schemable.Model{Tag: schemable.TagRef, ID: id})
}
