// Package guard interprets schema descriptions as boolean membership tests.
package guard

import (
	"sync"

	"github.com/reoring/schemable"
)

// Guard tests whether a value has a shape.
type Guard struct {
	is func(v any) bool
}

// New wraps a predicate into a Guard.
func New(is func(v any) bool) Guard { return Guard{is: is} }

// Is reports whether v has the guarded shape.
func (g Guard) Is(v any) bool { return g.is(v) }

// Literal accepts values strictly equal to value.
func Literal(value any) Guard {
	lit := schemable.NormalizeLiteral(value)
	return Guard{is: func(v any) bool { return schemable.LiteralEqual(lit, v) }}
}

// Literals accepts values strictly equal to one of values.
func Literals(values []any) Guard {
	lits := schemable.NormalizeLiterals(values)
	return Guard{is: func(v any) bool { return schemable.LiteralIn(lits, v) }}
}

// LiteralsOr accepts members of values or values accepted by or.
func LiteralsOr(values []any, or Guard) Guard {
	lits := schemable.NormalizeLiterals(values)
	if len(lits) == 1 {
		lit := lits[0]
		return Guard{is: func(v any) bool { return schemable.LiteralEqual(lit, v) || or.is(v) }}
	}
	return Guard{is: func(v any) bool { return schemable.LiteralIn(lits, v) || or.is(v) }}
}

var (
	// String accepts strings.
	String = Guard{is: func(v any) bool {
		_, ok := v.(string)
		return ok
	}}

	// Number accepts Go numeric values and json.Number.
	Number = Guard{is: schemable.IsNumber}

	// Boolean accepts bools.
	Boolean = Guard{is: func(v any) bool {
		_, ok := v.(bool)
		return ok
	}}

	// UnknownArray accepts slices and arrays.
	UnknownArray = Guard{is: func(v any) bool {
		_, ok := schemable.AsArray(v)
		return ok
	}}

	// UnknownRecord accepts maps with string keys.
	UnknownRecord = Guard{is: func(v any) bool {
		_, ok := schemable.AsRecord(v)
		return ok
	}}
)

// Type accepts records whose declared properties are all accepted by their
// guards. Undeclared keys are ignored.
func Type(properties map[string]Guard) Guard {
	keys := schemable.SortedKeys(properties)
	return Guard{is: func(v any) bool {
		r, ok := schemable.AsRecord(v)
		if !ok {
			return false
		}
		for _, k := range keys {
			if !properties[k].is(schemable.Lookup(r, k)) {
				return false
			}
		}
		return true
	}}
}

// Partial is like Type but missing properties are accepted.
func Partial(properties map[string]Guard) Guard {
	keys := schemable.SortedKeys(properties)
	return Guard{is: func(v any) bool {
		r, ok := schemable.AsRecord(v)
		if !ok {
			return false
		}
		for _, k := range keys {
			x, present := r[k]
			if present && !properties[k].is(x) {
				return false
			}
		}
		return true
	}}
}

// Record accepts records whose values are all accepted by codomain.
func Record(codomain Guard) Guard {
	return Guard{is: func(v any) bool {
		r, ok := schemable.AsRecord(v)
		if !ok {
			return false
		}
		for _, x := range r {
			if !codomain.is(x) {
				return false
			}
		}
		return true
	}}
}

// Array accepts arrays whose elements are all accepted by items.
func Array(items Guard) Guard {
	return Guard{is: func(v any) bool {
		xs, ok := schemable.AsArray(v)
		if !ok {
			return false
		}
		for _, x := range xs {
			if !items.is(x) {
				return false
			}
		}
		return true
	}}
}

// Tuple2 accepts arrays of exactly two elements accepted by a and b.
func Tuple2(a, b Guard) Guard { return tuple(a, b) }

// Tuple3 accepts arrays of exactly three elements accepted by a, b and c.
func Tuple3(a, b, c Guard) Guard { return tuple(a, b, c) }

func tuple(components ...Guard) Guard {
	return Guard{is: func(v any) bool {
		xs, ok := schemable.AsArray(v)
		if !ok || len(xs) != len(components) {
			return false
		}
		for i, g := range components {
			if !g.is(xs[i]) {
				return false
			}
		}
		return true
	}}
}

// Intersection accepts values accepted by both left and right.
func Intersection(left, right Guard) Guard {
	return Guard{is: func(v any) bool { return left.is(v) && right.is(v) }}
}

// Sum reads the tag field and delegates to the member it names. Any other tag
// is rejected; members are never tried in turn.
func Sum(tag string, members map[string]Guard) Guard {
	return Guard{is: func(v any) bool {
		r, ok := schemable.AsRecord(v)
		if !ok {
			return false
		}
		t, ok := r[tag].(string)
		if !ok {
			return false
		}
		g, ok := members[t]
		return ok && g.is(r)
	}}
}

// Union accepts values accepted by at least one member.
func Union(members []Guard) Guard {
	if len(members) == 0 {
		panic("guard: empty union")
	}
	return Guard{is: func(v any) bool {
		for _, g := range members {
			if g.is(v) {
				return true
			}
		}
		return false
	}}
}

// Lazy ties a recursive guard named id. f runs once, on the first test.
func Lazy(id string, f func() Guard) Guard {
	var (
		once sync.Once
		g    Guard
	)
	return Guard{is: func(v any) bool {
		once.Do(func() { g = f() })
		return g.is(v)
	}}
}

// Refinement narrows from with a predicate expressed as a fallible check.
func Refinement(from Guard, check func(v any) error) Guard {
	return Guard{is: func(v any) bool { return from.is(v) && check(v) == nil }}
}
