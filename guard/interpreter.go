package guard

import "github.com/reoring/schemable"

// Interpreter applies schema descriptions to guards. Ids only name shapes and
// have no effect on membership.
var Interpreter schemable.WithUnion[Guard] = interpreter{}

type interpreter struct{}

func (interpreter) Literal(value any, _ ...string) Guard     { return Literal(value) }
func (interpreter) Literals(values []any, _ ...string) Guard { return Literals(values) }
func (interpreter) LiteralsOr(values []any, or Guard, _ ...string) Guard {
	return LiteralsOr(values, or)
}
func (interpreter) String() Guard        { return String }
func (interpreter) Number() Guard        { return Number }
func (interpreter) Boolean() Guard       { return Boolean }
func (interpreter) UnknownArray() Guard  { return UnknownArray }
func (interpreter) UnknownRecord() Guard { return UnknownRecord }
func (interpreter) Type(properties map[string]Guard, _ ...string) Guard {
	return Type(properties)
}
func (interpreter) Partial(properties map[string]Guard, _ ...string) Guard {
	return Partial(properties)
}
func (interpreter) Record(codomain Guard, _ ...string) Guard { return Record(codomain) }
func (interpreter) Array(items Guard, _ ...string) Guard     { return Array(items) }
func (interpreter) Tuple2(a, b Guard, _ ...string) Guard     { return Tuple2(a, b) }
func (interpreter) Tuple3(a, b, c Guard, _ ...string) Guard  { return Tuple3(a, b, c) }
func (interpreter) Intersection(left, right Guard, _ ...string) Guard {
	return Intersection(left, right)
}
func (interpreter) Sum(tag string, members map[string]Guard, _ ...string) Guard {
	return Sum(tag, members)
}
func (interpreter) Lazy(id string, f func() Guard) Guard    { return Lazy(id, f) }
func (interpreter) Union(members []Guard, _ ...string) Guard { return Union(members) }
