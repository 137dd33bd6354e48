package dsl

import "github.com/reoring/schemable"

// Interpreter applies schema descriptions to Model builders.
var Interpreter schemable.WithUnion[DSL] = interpreter{}

type interpreter struct{}

func (interpreter) Literal(value any, id ...string) DSL     { return Literal(value, id...) }
func (interpreter) Literals(values []any, id ...string) DSL { return Literals(values, id...) }
func (interpreter) LiteralsOr(values []any, or DSL, id ...string) DSL {
	return LiteralsOr(values, or, id...)
}
func (interpreter) String() DSL        { return String }
func (interpreter) Number() DSL        { return Number }
func (interpreter) Boolean() DSL       { return Boolean }
func (interpreter) UnknownArray() DSL  { return UnknownArray }
func (interpreter) UnknownRecord() DSL { return UnknownRecord }
func (interpreter) Type(properties map[string]DSL, id ...string) DSL {
	return Type(properties, id...)
}
func (interpreter) Partial(properties map[string]DSL, id ...string) DSL {
	return Partial(properties, id...)
}
func (interpreter) Record(codomain DSL, id ...string) DSL { return Record(codomain, id...) }
func (interpreter) Array(items DSL, id ...string) DSL     { return Array(items, id...) }
func (interpreter) Tuple2(a, b DSL, id ...string) DSL     { return Tuple2(a, b, id...) }
func (interpreter) Tuple3(a, b, c DSL, id ...string) DSL  { return Tuple3(a, b, c, id...) }
func (interpreter) Intersection(left, right DSL, id ...string) DSL {
	return Intersection(left, right, id...)
}
func (interpreter) Sum(tag string, members map[string]DSL, id ...string) DSL {
	return Sum(tag, members, id...)
}
func (interpreter) Lazy(id string, f func() DSL) DSL        { return Lazy(id, f) }
func (interpreter) Union(members []DSL, id ...string) DSL { return Union(members, id...) }
