package schemable

import (
	"sort"
)

// Schemable is the contract every interpreter implements: one method per
// primitive of the schema algebra. K is the interpreter's artifact (a guard, a
// decoder, a Model builder, a JSON Schema builder).
//
// A schema description is a generic function over this contract, written once
// and applied to any interpreter:
//
//	func Point[K any](S schemable.Schemable[K]) K {
//	    return S.Tuple2(S.Number(), S.Number())
//	}
//
// Every id argument is optional; at most the first one is used.
type Schemable[K any] interface {
	Literal(value any, id ...string) K
	Literals(values []any, id ...string) K
	LiteralsOr(values []any, or K, id ...string) K
	String() K
	Number() K
	Boolean() K
	UnknownArray() K
	UnknownRecord() K
	Type(properties map[string]K, id ...string) K
	Partial(properties map[string]K, id ...string) K
	Record(codomain K, id ...string) K
	Array(items K, id ...string) K
	Tuple2(a, b K, id ...string) K
	Tuple3(a, b, c K, id ...string) K
	Intersection(left, right K, id ...string) K
	Sum(tag string, members map[string]K, id ...string) K
	// Lazy names a recursive shape. f is evaluated on demand; it may refer
	// back to the value Lazy returns.
	Lazy(id string, f func() K) K
}

// WithUnion extends Schemable with open unions. Not every interpreter has to
// support them.
type WithUnion[K any] interface {
	Schemable[K]
	Union(members []K, id ...string) K
}

// ID returns the optional id passed to a contract method, or "".
func ID(ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}

// SortedKeys returns the keys of m in ascending order. Interpreters use it
// wherever property order is observable.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MapValues applies f to every value of m.
func MapValues[V, W any](m map[string]V, f func(V) W) map[string]W {
	out := make(map[string]W, len(m))
	for k, v := range m {
		out[k] = f(v)
	}
	return out
}
