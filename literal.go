package schemable

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"

	gojson "github.com/goccy/go-json"
)

// IsLiteral reports whether v can be used as an exact-match constant: a string,
// a number, a bool or nil.
func IsLiteral(v any) bool {
	switch v.(type) {
	case nil, string, bool:
		return true
	}
	_, ok := toFloat(v)
	return ok
}

// NormalizeLiteral converts numbers to float64 so that literals survive a JSON
// round trip unchanged. It panics when v is not a literal.
func NormalizeLiteral(v any) any {
	switch t := v.(type) {
	case nil, string, bool:
		return t
	}
	if f, ok := toFloat(v); ok {
		return f
	}
	panic(fmt.Sprintf("schemable: %T is not a literal", v))
}

// NormalizeLiterals applies NormalizeLiteral to a non-empty set of values.
func NormalizeLiterals(values []any) []any {
	if len(values) == 0 {
		panic("schemable: empty literal set")
	}
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = NormalizeLiteral(v)
	}
	return out
}

// LiteralEqual is strict equality between a literal and an input value.
// Numbers compare numerically whatever their Go kind; NaN equals nothing.
func LiteralEqual(lit, v any) bool {
	switch l := lit.(type) {
	case nil:
		return v == nil
	case string:
		s, ok := v.(string)
		return ok && s == l
	case bool:
		b, ok := v.(bool)
		return ok && b == l
	}
	lf, ok := toFloat(lit)
	if !ok {
		return false
	}
	vf, ok := toFloat(v)
	return ok && lf == vf
}

// LiteralIn reports whether v is strictly equal to one of the values.
func LiteralIn(values []any, v any) bool {
	for _, lit := range values {
		if LiteralEqual(lit, v) {
			return true
		}
	}
	return false
}

// FormatLiteral renders a value the way it appears in labels and messages.
func FormatLiteral(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case undefined:
		return "undefined"
	case string:
		return strconv.Quote(t)
	case bool:
		return strconv.FormatBool(t)
	}
	if f, ok := toFloat(v); ok {
		if math.IsNaN(f) {
			return "NaN"
		}
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	b, err := gojson.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

// IsNumber reports whether v is a Go numeric value or a json.Number.
func IsNumber(v any) bool {
	_, ok := toFloat(v)
	return ok
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}
