package schemable

import (
	"errors"
	"fmt"
)

// ErrUnionUnsupported is returned by Interpret when the model contains a union
// and the interpreter does not implement WithUnion.
var ErrUnionUnsupported = errors.New("schemable: interpreter does not support union")

// Interpret applies a stored Model to an interpreter, yielding the same
// artifact as applying the described schema directly.
func Interpret[K any](m *Model, S Schemable[K]) (K, error) {
	var zero K
	if err := m.Validate(); err != nil {
		return zero, err
	}
	u, withUnion := S.(WithUnion[K])
	if m.Uses(TagUnion) && !withUnion {
		return zero, fmt.Errorf("%w (%T)", ErrUnionUnsupported, S)
	}
	in := &interpreter[K]{s: S, u: u}
	return in.interpret(m, nil), nil
}

type interpreter[K any] struct {
	s Schemable[K]
	u WithUnion[K]
}

// binding resolves a $ref to the artifact of its enclosing lazy. The slot is
// filled once Lazy returns; interpreters evaluate lazy bodies on demand, after that.
type binding[K any] struct {
	id     string
	slot   *K
	parent *binding[K]
}

func (b *binding[K]) lookup(id string) *K {
	for n := b; n != nil; n = n.parent {
		if n.id == id {
			return n.slot
		}
	}
	return nil
}

func (in *interpreter[K]) interpret(m *Model, env *binding[K]) K {
	S := in.s
	rec := func(c *Model) K { return in.interpret(c, env) }
	id := []string{}
	if m.ID != "" {
		id = append(id, m.ID)
	}
	switch m.Tag {
	case TagLiteral:
		return S.Literal(m.Value, id...)
	case TagLiterals:
		return S.Literals(m.Values, id...)
	case TagLiteralsOr:
		return S.LiteralsOr(m.Values, rec(m.Model), id...)
	case TagString:
		return S.String()
	case TagNumber:
		return S.Number()
	case TagBoolean:
		return S.Boolean()
	case TagUnknownArray:
		return S.UnknownArray()
	case TagUnknownRecord:
		return S.UnknownRecord()
	case TagType:
		return S.Type(MapValues(m.Properties, rec), id...)
	case TagPartial:
		return S.Partial(MapValues(m.Properties, rec), id...)
	case TagRecord:
		return S.Record(rec(m.Codomain), id...)
	case TagArray:
		return S.Array(rec(m.Item), id...)
	case TagTuple2:
		return S.Tuple2(rec(m.Items[0]), rec(m.Items[1]), id...)
	case TagTuple3:
		return S.Tuple3(rec(m.Items[0]), rec(m.Items[1]), rec(m.Items[2]), id...)
	case TagIntersection:
		return S.Intersection(rec(m.Models[0]), rec(m.Models[1]), id...)
	case TagSum:
		return S.Sum(m.Discriminator, MapValues(m.Members, rec), id...)
	case TagUnion:
		members := make([]K, len(m.Models))
		for i, c := range m.Models {
			members[i] = rec(c)
		}
		return in.u.Union(members, id...)
	case TagLazy:
		slot := new(K)
		inner := &binding[K]{id: m.ID, slot: slot, parent: env}
		body := m.Model
		*slot = S.Lazy(m.ID, func() K { return in.interpret(body, inner) })
		return *slot
	case TagRef:
		return *env.lookup(m.ID)
	}
	// Validate rejects every other tag.
	panic(fmt.Sprintf("schemable: unknown tag %q", m.Tag))
}
