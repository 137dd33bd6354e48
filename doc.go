// Package schemable provides:
//
// - A schema algebra (Schemable) whose descriptions are written once and applied to many interpreters
// - A decode error tree (Leaf/And/Or) that reports every failing part instead of the first one
// - A serializable Model of a schema description, storable as JSON or YAML
// - A flattened error model via Issues (JSON Pointer, code, message)
//
// Design policy:
// - Keep the algebra, the error tree and the Model in the root package.
// - Put interpreters under guard/, decoder/, dsl/ and jsonschema/; they never depend on each other.
// - Put input drivers under source/, HTTP adapters under middleware/, the code generator under internal/gen and the CLI under cmd/schemable.
//
// Typical usage:
//
//	func Person[K any](S schemable.WithUnion[K]) K {
//	    return S.Type(map[string]K{
//	        "name": S.String(),
//	        "age":  S.Number(),
//	    })
//	}
//
//	ok := Person(guard.Interpreter).Is(v)
//	out, err := Person(decoder.Interpreter).Decode(v)
//	doc := Person(jsonschema.Interpreter).Document()
//	model := Person(dsl.Interpreter).Model()
package schemable
