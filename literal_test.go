package schemable_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/reoring/schemable"
)

func TestLiteralEqual(t *testing.T) {
	cases := []struct {
		lit, v any
		want   bool
	}{
		{"a", "a", true},
		{"a", "b", false},
		{1.0, 1, true},
		{1.0, int64(1), true},
		{1.0, json.Number("1"), true},
		{1.0, "1", false},
		{true, true, true},
		{true, 1, false},
		{nil, nil, true},
		{nil, schemable.Undefined, false},
		{math.NaN(), math.NaN(), false},
	}
	for _, tc := range cases {
		if got := schemable.LiteralEqual(tc.lit, tc.v); got != tc.want {
			t.Fatalf("LiteralEqual(%#v, %#v) = %v, want %v", tc.lit, tc.v, got, tc.want)
		}
	}
}

func TestFormatLiteral(t *testing.T) {
	cases := map[string]any{
		`"a"`:       "a",
		"1":         1,
		"1.5":       float32(1.5),
		"true":      true,
		"null":      nil,
		"undefined": schemable.Undefined,
		"NaN":       math.NaN(),
		`{"a":1}`:   map[string]any{"a": 1},
	}
	for want, v := range cases {
		if got := schemable.FormatLiteral(v); got != want {
			t.Fatalf("FormatLiteral(%#v) = %q, want %q", v, got, want)
		}
	}
}

func TestNormalizeLiteral_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for non-literal")
		}
	}()
	schemable.NormalizeLiteral([]any{1})
}

func TestNormalizeLiterals_EmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for empty set")
		}
	}()
	schemable.NormalizeLiterals(nil)
}

func TestAsRecordAndArray(t *testing.T) {
	if _, ok := schemable.AsRecord(map[string]int{"a": 1}); !ok {
		t.Fatalf("typed map should be a record")
	}
	if _, ok := schemable.AsRecord(map[int]any{1: 1}); ok {
		t.Fatalf("int-keyed map is not a record")
	}
	if _, ok := schemable.AsRecord(nil); ok {
		t.Fatalf("nil is not a record")
	}
	if xs, ok := schemable.AsArray([2]string{"a", "b"}); !ok || len(xs) != 2 {
		t.Fatalf("array kind should be viewed as []any")
	}
	if _, ok := schemable.AsArray("ab"); ok {
		t.Fatalf("string is not an array")
	}
	for _, v := range []any{map[string]any(nil), map[string]int(nil)} {
		if r, ok := schemable.AsRecord(v); !ok || len(r) != 0 {
			t.Fatalf("typed nil map %T should be an empty record", v)
		}
	}
	for _, v := range []any{[]any(nil), []string(nil)} {
		if xs, ok := schemable.AsArray(v); !ok || len(xs) != 0 {
			t.Fatalf("typed nil slice %T should be an empty array", v)
		}
	}
	if !schemable.IsUndefined(schemable.Lookup(map[string]any{}, "x")) {
		t.Fatalf("missing key should be Undefined")
	}
	if v := schemable.Lookup(map[string]any{"x": nil}, "x"); v != nil {
		t.Fatalf("present null should stay nil, got %#v", v)
	}
}
