package schemable

import "strconv"

// Intersect merges the decoded values of the two sides of an intersection.
//
// When either operand is a keyed container the result is a fresh map holding
// the keys of a, then the keys of b (b wins on collisions). Strings and arrays
// contribute their elements under index keys; other scalars contribute nothing.
// Otherwise b is returned. Nested containers are never merged.
func Intersect(a, b any) any {
	_, ra := AsRecord(a)
	_, rb := AsRecord(b)
	if !ra && !rb {
		return b
	}
	out := map[string]any{}
	assign(out, a)
	assign(out, b)
	return out
}

func assign(dst map[string]any, v any) {
	if r, ok := AsRecord(v); ok {
		for k, x := range r {
			dst[k] = x
		}
		return
	}
	if s, ok := v.(string); ok {
		i := 0
		for _, c := range s {
			dst[strconv.Itoa(i)] = string(c)
			i++
		}
		return
	}
	if xs, ok := AsArray(v); ok {
		for i, x := range xs {
			dst[strconv.Itoa(i)] = x
		}
	}
}
