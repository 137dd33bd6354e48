package jsonschema

import "github.com/reoring/schemable"

// Interpreter applies schema descriptions to JSON Schema builders. Ids other
// than lazy ids are not represented in the document.
var Interpreter schemable.WithUnion[Builder] = interpreter{}

type interpreter struct{}

func (interpreter) Literal(value any, _ ...string) Builder     { return Literal(value) }
func (interpreter) Literals(values []any, _ ...string) Builder { return Literals(values) }
func (interpreter) LiteralsOr(values []any, or Builder, _ ...string) Builder {
	return LiteralsOr(values, or)
}
func (interpreter) String() Builder        { return String }
func (interpreter) Number() Builder        { return Number }
func (interpreter) Boolean() Builder       { return Boolean }
func (interpreter) UnknownArray() Builder  { return UnknownArray }
func (interpreter) UnknownRecord() Builder { return UnknownRecord }
func (interpreter) Type(properties map[string]Builder, _ ...string) Builder {
	return Type(properties)
}
func (interpreter) Partial(properties map[string]Builder, _ ...string) Builder {
	return Partial(properties)
}
func (interpreter) Record(codomain Builder, _ ...string) Builder { return Record(codomain) }
func (interpreter) Array(items Builder, _ ...string) Builder     { return Array(items) }
func (interpreter) Tuple2(a, b Builder, _ ...string) Builder     { return Tuple2(a, b) }
func (interpreter) Tuple3(a, b, c Builder, _ ...string) Builder  { return Tuple3(a, b, c) }
func (interpreter) Intersection(left, right Builder, _ ...string) Builder {
	return Intersection(left, right)
}
func (interpreter) Sum(tag string, members map[string]Builder, _ ...string) Builder {
	return Sum(tag, members)
}
func (interpreter) Lazy(id string, f func() Builder) Builder      { return Lazy(id, f) }
func (interpreter) Union(members []Builder, _ ...string) Builder { return Union(members) }
