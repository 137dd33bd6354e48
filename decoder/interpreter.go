package decoder

import "github.com/reoring/schemable"

// Interpreter applies schema descriptions to decoders.
var Interpreter schemable.WithUnion[Decoder] = interpreter{}

type interpreter struct{}

func (interpreter) Literal(value any, id ...string) Decoder     { return Literal(value, id...) }
func (interpreter) Literals(values []any, id ...string) Decoder { return Literals(values, id...) }
func (interpreter) LiteralsOr(values []any, or Decoder, id ...string) Decoder {
	return LiteralsOr(values, or, id...)
}
func (interpreter) String() Decoder        { return String }
func (interpreter) Number() Decoder        { return Number }
func (interpreter) Boolean() Decoder       { return Boolean }
func (interpreter) UnknownArray() Decoder  { return UnknownArray }
func (interpreter) UnknownRecord() Decoder { return UnknownRecord }
func (interpreter) Type(properties map[string]Decoder, _ ...string) Decoder {
	return Type(properties)
}
func (interpreter) Partial(properties map[string]Decoder, _ ...string) Decoder {
	return Partial(properties)
}
func (interpreter) Record(codomain Decoder, _ ...string) Decoder { return Record(codomain) }
func (interpreter) Array(items Decoder, _ ...string) Decoder     { return Array(items) }
func (interpreter) Tuple2(a, b Decoder, _ ...string) Decoder     { return Tuple2(a, b) }
func (interpreter) Tuple3(a, b, c Decoder, _ ...string) Decoder  { return Tuple3(a, b, c) }
func (interpreter) Intersection(left, right Decoder, _ ...string) Decoder {
	return Intersection(left, right)
}
func (interpreter) Sum(tag string, members map[string]Decoder, _ ...string) Decoder {
	return Sum(tag, members)
}
func (interpreter) Lazy(id string, f func() Decoder) Decoder      { return Lazy(id, f) }
func (interpreter) Union(members []Decoder, _ ...string) Decoder { return Union(members) }
