// Package dsl interprets schema descriptions as Models: plain tagged trees that
// can be stored as JSON or YAML and turned back into any interpreter with
// schemable.Interpret.
//
// Overview
//   - DSL: a deferred Model builder. Model() builds, Compile() builds and validates.
//   - Constructors mirror the schemable contract (Literal, Type, Sum, Lazy, ...)
//     plus Ref for an explicit reference to an enclosing lazy.
//   - Interpreter: the contract implementation, for generic schema descriptions.
//   - Declaration: a named lazy DSL that hands out references to itself.
//
// Recursion
//
// A lazy node records its body once. Inside that body, any lazy node with the
// same id is emitted as {"_tag":"$ref","id":...} instead of being expanded
// again, so construction always terminates.
//
// Example
//
//	func Tree[K any](S schemable.Schemable[K]) K {
//	    var self K
//	    self = S.Lazy("Tree", func() K {
//	        return S.Type(map[string]K{
//	            "value":    S.Number(),
//	            "children": S.Array(self),
//	        })
//	    })
//	    return self
//	}
//
//	m, err := Tree(dsl.Interpreter).Compile()
//	// m.Tag == "lazy"; m.Model.Properties["children"].Item.Tag == "$ref"
package dsl
