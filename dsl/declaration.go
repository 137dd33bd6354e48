package dsl

// Declaration is a named recursive shape declared once and referenced by id
// from its own body or from sibling declarations nested inside it.
type Declaration struct {
	ID  string
	dsl DSL
}

// Declare names the shape built by f. f may call Ref on the declaration.
func Declare(id string, f func() DSL) Declaration {
	return Declaration{ID: id, dsl: Lazy(id, f)}
}

// DSL returns the lazy node of the declaration.
func (d Declaration) DSL() DSL { return d.dsl }

// Ref returns a reference to the declaration.
func (d Declaration) Ref() DSL { return Ref(d.ID) }
