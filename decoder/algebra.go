package decoder

import (
	"fmt"

	gojson "github.com/goccy/go-json"

	"github.com/reoring/schemable"
)

// Map transforms a successful value; errors pass through unchanged.
func Map(d Decoder, f func(v any) any) Decoder {
	return Decoder{decode: func(v any) (any, *schemable.DecodeError) {
		out, err := d.decode(v)
		if err != nil {
			return nil, err
		}
		return f(out), nil
	}}
}

// Of always succeeds with value, whatever the input.
func Of(value any) Decoder {
	return Decoder{decode: func(any) (any, *schemable.DecodeError) { return value, nil }}
}

// Ap decodes a function with fab and its argument with fa, from the same
// input, and applies one to the other. fab must yield a func(any) any. When
// both fail, both errors are kept under And.
func Ap(fab, fa Decoder) Decoder {
	return Decoder{decode: func(v any) (any, *schemable.DecodeError) {
		f, ef := fab.decode(v)
		a, ea := fa.decode(v)
		if ef != nil && ea != nil {
			return nil, both(v, ef, ea)
		}
		if ef != nil {
			return nil, ef
		}
		if ea != nil {
			return nil, ea
		}
		fn, ok := f.(func(any) any)
		if !ok {
			panic(fmt.Sprintf("decoder: Ap expects a func(any) any, got %T", f))
		}
		return fn(a), nil
	}}
}

// Alt tries d, then the decoder returned by that. When both fail the errors
// are combined with Or.
func Alt(d Decoder, that func() Decoder) Decoder {
	return Decoder{decode: func(v any) (any, *schemable.DecodeError) {
		out, e1 := d.decode(v)
		if e1 == nil {
			return out, nil
		}
		out, e2 := that().decode(v)
		if e2 == nil {
			return out, nil
		}
		return nil, schemable.Or(v, e1, e2)
	}}
}

// Zero always fails with a "never" leaf.
func Zero() Decoder {
	return Decoder{decode: func(v any) (any, *schemable.DecodeError) {
		return nil, schemable.Leaf(v, schemable.LabelNever)
	}}
}

// Parse chains a fallible step after d. A failing step becomes a leaf labeled
// id carrying the step's error message.
func Parse(d Decoder, parser func(v any) (any, error), id string) Decoder {
	return Decoder{decode: func(v any) (any, *schemable.DecodeError) {
		out, err := d.decode(v)
		if err != nil {
			return nil, err
		}
		res, perr := parser(out)
		if perr != nil {
			return nil, schemable.Leaf(out, id, perr.Error())
		}
		return res, nil
	}}
}

// Refinement keeps the values of d that pass check.
func Refinement(d Decoder, check func(v any) error, id string) Decoder {
	return Parse(d, func(v any) (any, error) {
		if err := check(v); err != nil {
			return nil, err
		}
		return v, nil
	}, id)
}

// DecodeInto decodes input with d and converts the result into T through a
// JSON round trip. Conversion failures are reported as a leaf labeled with T.
func DecodeInto[T any](d Decoder, input any) (T, error) {
	var out T
	v, derr := d.decode(input)
	if derr != nil {
		return out, derr
	}
	b, err := gojson.Marshal(v)
	if err == nil {
		err = gojson.Unmarshal(b, &out)
	}
	if err != nil {
		var zero T
		expected := fmt.Sprintf("%T", out)
		return zero, schemable.Leaf(v, expected, err.Error())
	}
	return out, nil
}
