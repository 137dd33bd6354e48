package schemable

// Scope is the set of lazy ids whose expansion is in progress along the
// current construction path. It is immutable: Enter returns a new Scope.
//
// A lazy node consults the scope of its caller. When its id is absent it is
// not yet entered and expands its body in the entered scope; when its id is
// present it emits a reference instead of recursing.
type Scope struct {
	top *scopeNode
}

type scopeNode struct {
	id     string
	parent *scopeNode
}

// Entered reports whether id is being expanded.
func (s Scope) Entered(id string) bool {
	for n := s.top; n != nil; n = n.parent {
		if n.id == id {
			return true
		}
	}
	return false
}

// Enter returns the scope with id added.
func (s Scope) Enter(id string) Scope {
	return Scope{top: &scopeNode{id: id, parent: s.top}}
}
