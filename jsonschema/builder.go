// Package jsonschema interprets schema descriptions as JSON Schema Draft-07
// documents.
package jsonschema

import (
	"github.com/reoring/schemable"
)

// Builder compiles to a Schema. Lazy bodies are hoisted into the definitions
// of the root document.
type Builder struct {
	build func(c *compiler, s schemable.Scope) *Schema
}

type compiler struct {
	definitions map[string]*Schema
}

// Compile builds the document without a $schema stamp.
func (b Builder) Compile() *Schema {
	c := &compiler{definitions: map[string]*Schema{}}
	root := b.build(c, schemable.Scope{})
	if len(c.definitions) > 0 {
		root.Definitions = c.definitions
	}
	return root
}

// Document compiles a standalone Draft-07 document.
func (b Builder) Document() *Schema {
	root := b.Compile()
	root.Schema = Draft07
	return root
}

func constant(s Schema) Builder {
	return Builder{build: func(*compiler, schemable.Scope) *Schema {
		out := s
		return &out
	}}
}

func ptr(n int) *int { return &n }

// Literal is a single-value enum.
func Literal(value any) Builder {
	return constant(Schema{Enum: []any{schemable.NormalizeLiteral(value)}})
}

// Literals is an enum of values.
func Literals(values []any) Builder {
	return constant(Schema{Enum: schemable.NormalizeLiterals(values)})
}

// LiteralsOr accepts one of values or anything the or schema accepts, via anyOf.
func LiteralsOr(values []any, or Builder) Builder {
	enum := Literals(values)
	return Builder{build: func(c *compiler, s schemable.Scope) *Schema {
		return &Schema{AnyOf: []*Schema{enum.build(c, s), or.build(c, s)}}
	}}
}

var (
	String        = constant(Schema{Type: "string"})
	Number        = constant(Schema{Type: "number"})
	Boolean       = constant(Schema{Type: "boolean"})
	UnknownArray  = constant(Schema{Type: "array"})
	UnknownRecord = constant(Schema{Type: "object"})
)

func buildAll(c *compiler, s schemable.Scope, m map[string]Builder) map[string]*Schema {
	return schemable.MapValues(m, func(b Builder) *Schema { return b.build(c, s) })
}

// Type requires every declared property.
func Type(properties map[string]Builder) Builder {
	required := schemable.SortedKeys(properties)
	return Builder{build: func(c *compiler, s schemable.Scope) *Schema {
		return &Schema{Type: "object", Properties: buildAll(c, s, properties), Required: required}
	}}
}

// Partial declares properties without requiring them.
func Partial(properties map[string]Builder) Builder {
	return Builder{build: func(c *compiler, s schemable.Scope) *Schema {
		return &Schema{Type: "object", Properties: buildAll(c, s, properties)}
	}}
}

// Record constrains every property value with codomain.
func Record(codomain Builder) Builder {
	return Builder{build: func(c *compiler, s schemable.Scope) *Schema {
		return &Schema{Type: "object", AdditionalProperties: codomain.build(c, s)}
	}}
}

// Array constrains every element with items.
func Array(items Builder) Builder {
	return Builder{build: func(c *compiler, s schemable.Scope) *Schema {
		return &Schema{Type: "array", Items: &Items{Schema: items.build(c, s)}}
	}}
}

// Tuple2 is a positional array of exactly two elements.
func Tuple2(a, b Builder) Builder { return tuple(a, b) }

// Tuple3 is a positional array of exactly three elements.
func Tuple3(a, b, c Builder) Builder { return tuple(a, b, c) }

// tuple fixes the arity with minItems = maxItems.
func tuple(components ...Builder) Builder {
	return Builder{build: func(c *compiler, s schemable.Scope) *Schema {
		items := make([]*Schema, len(components))
		for i, b := range components {
			items[i] = b.build(c, s)
		}
		n := len(components)
		return &Schema{Type: "array", Items: &Items{Tuple: items}, MinItems: ptr(n), MaxItems: ptr(n)}
	}}
}

// Intersection requires both schemas via allOf.
func Intersection(left, right Builder) Builder {
	return Builder{build: func(c *compiler, s schemable.Scope) *Schema {
		return &Schema{AllOf: []*Schema{left.build(c, s), right.build(c, s)}}
	}}
}

// Sum emits the members under oneOf in key order. The tag field itself is
// constrained by each member's own schema.
func Sum(tag string, members map[string]Builder) Builder {
	keys := schemable.SortedKeys(members)
	return Builder{build: func(c *compiler, s schemable.Scope) *Schema {
		oneOf := make([]*Schema, len(keys))
		for i, k := range keys {
			oneOf[i] = members[k].build(c, s)
		}
		return &Schema{OneOf: oneOf}
	}}
}

// Union emits members under oneOf in declaration order. It panics when
// members is empty.
func Union(members []Builder) Builder {
	if len(members) == 0 {
		panic("jsonschema: empty union")
	}
	return Builder{build: func(c *compiler, s schemable.Scope) *Schema {
		oneOf := make([]*Schema, len(members))
		for i, b := range members {
			oneOf[i] = b.build(c, s)
		}
		return &Schema{OneOf: oneOf}
	}}
}

// DefinitionRef is the pointer under which a lazy body is stored.
func DefinitionRef(id string) string { return "#/definitions/" + id }

// Lazy compiles f's body once per document into definitions[id] and refers to
// it with $ref. Two different lazies sharing an id share one definition.
func Lazy(id string, f func() Builder) Builder {
	return Builder{build: func(c *compiler, s schemable.Scope) *Schema {
		if !s.Entered(id) {
			if _, done := c.definitions[id]; !done {
				// reserve the slot so nested occurrences see it taken
				c.definitions[id] = &Schema{}
				*c.definitions[id] = *f().build(c, s.Enter(id))
			}
		}
		return &Schema{Ref: DefinitionRef(id)}
	}}
}
