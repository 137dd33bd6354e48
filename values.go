package schemable

import "reflect"

type undefined struct{}

func (undefined) String() string { return "undefined" }

// Undefined stands for a property that is absent from its container. Type and
// sum schemas hand it to sub-schemas for missing keys, so that a missing key and
// an explicit null stay distinguishable.
var Undefined any = undefined{}

// IsUndefined reports whether v is Undefined.
func IsUndefined(v any) bool {
	_, ok := v.(undefined)
	return ok
}

// Lookup returns r[key], or Undefined when the key is absent.
func Lookup(r map[string]any, key string) any {
	v, ok := r[key]
	if !ok {
		return Undefined
	}
	return v
}

// AsRecord views v as a keyed container. Besides map[string]any it accepts any
// map kind with string keys, which is copied into a fresh map[string]any. A
// typed nil map is an empty record; only an untyped nil is rejected.
func AsRecord(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case nil:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

// AsArray views v as a sequential container. Besides []any it accepts any slice
// or array kind, which is copied into a fresh []any. A typed nil slice is an
// empty array; only an untyped nil is rejected.
func AsArray(v any) ([]any, bool) {
	switch t := v.(type) {
	case []any:
		return t, true
	case nil, string:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if k := rv.Kind(); k != reflect.Slice && k != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
