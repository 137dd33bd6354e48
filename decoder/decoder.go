// Package decoder interprets schema descriptions as decoders: functions from
// untyped input to a value, failing with a DecodeError tree that lists every
// part that did not match.
package decoder

import (
	"fmt"
	"strings"
	"sync"

	"github.com/reoring/schemable"
)

// Decoder converts untyped input into a decoded value.
type Decoder struct {
	decode func(v any) (any, *schemable.DecodeError)
}

// New wraps a decode function. f must return a non-nil error exactly when it fails.
func New(f func(v any) (any, *schemable.DecodeError)) Decoder { return Decoder{decode: f} }

// Decode returns the decoded value, or an error holding a *schemable.DecodeError.
// Output is never partial: on failure the value is nil.
func (d Decoder) Decode(v any) (any, error) {
	out, err := d.decode(v)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeTree is Decode with the error tree returned as is.
func (d Decoder) DecodeTree(v any) (any, *schemable.DecodeError) { return d.decode(v) }

func label(ids []string, fallback string) string {
	if id := schemable.ID(ids); id != "" {
		return id
	}
	return fallback
}

func literalsLabel(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = schemable.FormatLiteral(v)
	}
	return strings.Join(parts, " | ")
}

// Literal succeeds on values strictly equal to value. The expected label is
// the rendering of value unless an id is given.
func Literal(value any, id ...string) Decoder {
	lit := schemable.NormalizeLiteral(value)
	expected := label(id, schemable.FormatLiteral(lit))
	return Decoder{decode: func(v any) (any, *schemable.DecodeError) {
		if schemable.LiteralEqual(lit, v) {
			return v, nil
		}
		return nil, schemable.Leaf(v, expected, schemable.CannotDecode(v, expected))
	}}
}

// Literals succeeds on values strictly equal to one of values.
func Literals(values []any, id ...string) Decoder {
	lits := schemable.NormalizeLiterals(values)
	expected := label(id, literalsLabel(lits))
	return Decoder{decode: func(v any) (any, *schemable.DecodeError) {
		for _, lit := range lits {
			if schemable.LiteralEqual(lit, v) {
				return v, nil
			}
		}
		return nil, schemable.Leaf(v, expected, schemable.CannotDecode(v, expected))
	}}
}

// LiteralsOr succeeds on members of values, then falls back to or. When both
// fail the errors are combined with Or.
func LiteralsOr(values []any, or Decoder, id ...string) Decoder {
	return Alt(Literals(values, id...), func() Decoder { return or })
}

func primitive(expected string, is func(v any) bool) Decoder {
	return Decoder{decode: func(v any) (any, *schemable.DecodeError) {
		if is(v) {
			return v, nil
		}
		return nil, schemable.Leaf(v, expected)
	}}
}

var (
	// String decodes strings.
	String = primitive(schemable.LabelString, func(v any) bool {
		_, ok := v.(string)
		return ok
	})

	// Number decodes Go numeric values and json.Number, unchanged.
	Number = primitive(schemable.LabelNumber, schemable.IsNumber)

	// Boolean decodes bools.
	Boolean = primitive(schemable.LabelBoolean, func(v any) bool {
		_, ok := v.(bool)
		return ok
	})

	// UnknownArray decodes any slice or array into []any.
	UnknownArray = Decoder{decode: func(v any) (any, *schemable.DecodeError) {
		xs, ok := schemable.AsArray(v)
		if !ok {
			return nil, schemable.Leaf(v, schemable.LabelUnknownArray)
		}
		return xs, nil
	}}

	// UnknownRecord decodes any string-keyed map into map[string]any.
	UnknownRecord = Decoder{decode: func(v any) (any, *schemable.DecodeError) {
		r, ok := schemable.AsRecord(v)
		if !ok {
			return nil, schemable.Leaf(v, schemable.LabelUnknownRecord)
		}
		return r, nil
	}}
)

// Type decodes every declared property. The result holds exactly the declared
// keys; undeclared input keys are dropped. Every failing property is reported.
func Type(properties map[string]Decoder) Decoder {
	keys := schemable.SortedKeys(properties)
	return Decoder{decode: func(v any) (any, *schemable.DecodeError) {
		r, ok := schemable.AsRecord(v)
		if !ok {
			return nil, schemable.Leaf(v, schemable.LabelUnknownRecord)
		}
		out := make(map[string]any, len(keys))
		var errs []schemable.Labeled
		for _, k := range keys {
			x, err := properties[k].decode(schemable.Lookup(r, k))
			if err != nil {
				errs = append(errs, schemable.Key(k, err))
				continue
			}
			out[k] = x
		}
		if len(errs) > 0 {
			return nil, schemable.And(v, errs...)
		}
		return out, nil
	}}
}

// Partial is like Type but properties absent from the input are absent from
// the output.
func Partial(properties map[string]Decoder) Decoder {
	keys := schemable.SortedKeys(properties)
	return Decoder{decode: func(v any) (any, *schemable.DecodeError) {
		r, ok := schemable.AsRecord(v)
		if !ok {
			return nil, schemable.Leaf(v, schemable.LabelUnknownRecord)
		}
		out := make(map[string]any, len(keys))
		var errs []schemable.Labeled
		for _, k := range keys {
			x, present := r[k]
			if !present {
				continue
			}
			dx, err := properties[k].decode(x)
			if err != nil {
				errs = append(errs, schemable.Key(k, err))
				continue
			}
			out[k] = dx
		}
		if len(errs) > 0 {
			return nil, schemable.And(v, errs...)
		}
		return out, nil
	}}
}

// Record decodes every value of a record. The result has the input's keys.
func Record(codomain Decoder) Decoder {
	return Decoder{decode: func(v any) (any, *schemable.DecodeError) {
		r, ok := schemable.AsRecord(v)
		if !ok {
			return nil, schemable.Leaf(v, schemable.LabelUnknownRecord)
		}
		out := make(map[string]any, len(r))
		var errs []schemable.Labeled
		for _, k := range schemable.SortedKeys(r) {
			x, err := codomain.decode(r[k])
			if err != nil {
				errs = append(errs, schemable.Key(k, err))
				continue
			}
			out[k] = x
		}
		if len(errs) > 0 {
			return nil, schemable.And(v, errs...)
		}
		return out, nil
	}}
}

// Array decodes every element, reporting failures in index order.
func Array(items Decoder) Decoder {
	return Decoder{decode: func(v any) (any, *schemable.DecodeError) {
		xs, ok := schemable.AsArray(v)
		if !ok {
			return nil, schemable.Leaf(v, schemable.LabelUnknownArray)
		}
		out := make([]any, len(xs))
		var errs []schemable.Labeled
		for i, x := range xs {
			dx, err := items.decode(x)
			if err != nil {
				errs = append(errs, schemable.Index(i, err))
				continue
			}
			out[i] = dx
		}
		if len(errs) > 0 {
			return nil, schemable.And(v, errs...)
		}
		return out, nil
	}}
}

// Tuple2 decodes a two-element array.
func Tuple2(a, b Decoder) Decoder { return tuple(a, b) }

// Tuple3 decodes a three-element array.
func Tuple3(a, b, c Decoder) Decoder { return tuple(a, b, c) }

func tuple(components ...Decoder) Decoder {
	expected := schemable.TupleLabel(len(components))
	return Decoder{decode: func(v any) (any, *schemable.DecodeError) {
		xs, ok := schemable.AsArray(v)
		if !ok {
			return nil, schemable.Leaf(v, schemable.LabelUnknownArray)
		}
		if len(xs) != len(components) {
			return nil, schemable.Leaf(v, expected, schemable.CannotDecode(v, expected))
		}
		out := make([]any, len(xs))
		var errs []schemable.Labeled
		for i, d := range components {
			dx, err := d.decode(xs[i])
			if err != nil {
				errs = append(errs, schemable.Index(i, err))
				continue
			}
			out[i] = dx
		}
		if len(errs) > 0 {
			return nil, schemable.And(v, errs...)
		}
		return out, nil
	}}
}

// Intersection decodes the same input with both sides and merges the results
// with schemable.Intersect.
func Intersection(left, right Decoder) Decoder {
	return Decoder{decode: func(v any) (any, *schemable.DecodeError) {
		a, ea := left.decode(v)
		b, eb := right.decode(v)
		if err := both(v, ea, eb); err != nil {
			return nil, err
		}
		return schemable.Intersect(a, b), nil
	}}
}

// both combines the errors of two required branches, or returns nil.
func both(v any, ea, eb *schemable.DecodeError) *schemable.DecodeError {
	var errs []schemable.Labeled
	if ea != nil {
		errs = append(errs, schemable.Member(0, ea))
	}
	if eb != nil {
		errs = append(errs, schemable.Member(1, eb))
	}
	if len(errs) == 0 {
		return nil
	}
	return schemable.And(v, errs...)
}

// Sum reads the tag field and delegates to the member it names. An
// unrecognised tag fails with a leaf naming it; other members are never tried.
func Sum(tag string, members map[string]Decoder) Decoder {
	keys := make([]any, 0, len(members))
	for _, k := range schemable.SortedKeys(members) {
		keys = append(keys, k)
	}
	expected := literalsLabel(keys)
	if len(keys) == 0 {
		expected = schemable.LabelNever
	}
	return Decoder{decode: func(v any) (any, *schemable.DecodeError) {
		r, ok := schemable.AsRecord(v)
		if !ok {
			return nil, schemable.Leaf(v, schemable.LabelUnknownRecord)
		}
		t := schemable.Lookup(r, tag)
		if s, ok := t.(string); ok {
			if d, ok := members[s]; ok {
				return d.decode(r)
			}
		}
		msg := fmt.Sprintf("%s (tag field %q)", schemable.CannotDecode(t, expected), tag)
		return nil, schemable.Leaf(t, expected, msg)
	}}
}

// Union tries every member in order and returns the first success. When all
// fail, each member's error is reported under Or, in declaration order.
func Union(members []Decoder) Decoder {
	if len(members) == 0 {
		panic("decoder: empty union")
	}
	return Decoder{decode: func(v any) (any, *schemable.DecodeError) {
		errs := make([]*schemable.DecodeError, 0, len(members))
		for _, d := range members {
			out, err := d.decode(v)
			if err == nil {
				return out, nil
			}
			errs = append(errs, err)
		}
		return nil, schemable.Or(v, errs...)
	}}
}

// Lazy ties a recursive decoder named id. f runs once, on the first decode.
func Lazy(id string, f func() Decoder) Decoder {
	var (
		once sync.Once
		d    Decoder
	)
	return Decoder{decode: func(v any) (any, *schemable.DecodeError) {
		once.Do(func() { d = f() })
		return d.decode(v)
	}}
}
