package guard_test

import (
	"errors"
	"testing"

	"github.com/reoring/schemable"
	"github.com/reoring/schemable/guard"
)

type check struct {
	in   any
	want bool
}

func expect(t *testing.T, name string, g guard.Guard, checks ...check) {
	t.Helper()
	for _, c := range checks {
		if got := g.Is(c.in); got != c.want {
			t.Fatalf("%s: Is(%#v) = %v, want %v", name, c.in, got, c.want)
		}
	}
}

func TestLiteralsOr(t *testing.T) {
	single := guard.LiteralsOr([]any{"a"}, guard.Boolean)
	expect(t, "single", single, check{"a", true}, check{true, true}, check{false, true}, check{"c", false})

	many := guard.LiteralsOr([]any{"a", "b"}, guard.Boolean)
	expect(t, "many", many, check{"a", true}, check{"b", true}, check{true, true}, check{"c", false})
}

func TestLiteral(t *testing.T) {
	expect(t, "number", guard.Literal(1), check{1.0, true}, check{int64(1), true}, check{"1", false})
	expect(t, "null", guard.Literal(nil), check{nil, true}, check{schemable.Undefined, false}, check{0, false})
	expect(t, "literals", guard.Literals([]any{"x", false}), check{false, true}, check{"x", true}, check{"y", false})
}

func TestRefinement(t *testing.T) {
	nonEmpty := guard.Refinement(guard.String, func(v any) error {
		if v.(string) == "" {
			return errors.New("please enter a non empty string")
		}
		return nil
	})
	expect(t, "refinement", nonEmpty, check{"a", true}, check{schemable.Undefined, false}, check{"", false})
}

func TestType(t *testing.T) {
	g := guard.Type(map[string]guard.Guard{"a": guard.String, "b": guard.Number})
	expect(t, "type", g,
		check{map[string]any{"a": "a", "b": 1}, true},
		check{map[string]any{"a": "a", "b": 1, "c": true}, true},
		check{schemable.Undefined, false},
		check{map[string]any{"a": "a"}, false},
	)
}

func TestPartial(t *testing.T) {
	g := guard.Partial(map[string]guard.Guard{"a": guard.String, "b": guard.Number})
	expect(t, "partial", g,
		check{map[string]any{"a": "a", "b": 1}, true},
		check{map[string]any{"a": "a"}, true},
		check{map[string]any{"b": 1}, true},
		check{map[string]any{}, true},
		check{map[string]any{"a": "a", "b": 1, "c": true}, true},
		check{schemable.Undefined, false},
		check{map[string]any{"a": "a", "b": "b"}, false},
		check{map[string]any{"a": nil}, false},
	)
}

func TestRecord(t *testing.T) {
	g := guard.Record(guard.String)
	expect(t, "record", g,
		check{map[string]any{}, true},
		check{map[string]any{"a": "a", "b": "b"}, true},
		check{map[string]string{"a": "a"}, true},
		check{schemable.Undefined, false},
		check{map[string]any{"a": "a", "b": 1}, false},
	)
}

func TestArray(t *testing.T) {
	g := guard.Array(guard.Number)
	expect(t, "array", g,
		check{[]any{}, true},
		check{[]any{1, 2, 3}, true},
		check{[]int{1, 2}, true},
		check{schemable.Undefined, false},
		check{[]any{"a"}, false},
	)
}

func TestTuples(t *testing.T) {
	g := guard.Tuple2(guard.String, guard.Number)
	expect(t, "tuple2", g,
		check{[]any{"a", 1}, true},
		check{[]any{1, 2}, false},
		check{[]any{"a", 1, true}, false},
		check{[]any{"a"}, false},
	)
	g3 := guard.Tuple3(guard.String, guard.Number, guard.Boolean)
	expect(t, "tuple3", g3, check{[]any{"a", 1, true}, true}, check{[]any{"a", 1}, false})
}

func TestIntersection(t *testing.T) {
	g := guard.Intersection(
		guard.Type(map[string]guard.Guard{"a": guard.String}),
		guard.Type(map[string]guard.Guard{"b": guard.Number}),
	)
	expect(t, "intersection", g, check{map[string]any{"a": "a", "b": 1}, true}, check{map[string]any{"a": "a"}, false})
}

func TestUnion(t *testing.T) {
	g := guard.Union([]guard.Guard{guard.String, guard.Number})
	expect(t, "union", g, check{"a", true}, check{1, true}, check{schemable.Undefined, false})
}

func TestUnion_EmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	guard.Union(nil)
}

func TestLazy(t *testing.T) {
	var g guard.Guard
	g = guard.Lazy("A", func() guard.Guard {
		return guard.Type(map[string]guard.Guard{
			"a": guard.Number,
			"b": guard.Array(g),
		})
	})
	expect(t, "lazy", g,
		check{map[string]any{"a": 1, "b": []any{}}, true},
		check{map[string]any{"a": 1, "b": []any{map[string]any{"a": 2, "b": []any{}}}}, true},
		check{map[string]any{"a": 1, "b": []any{map[string]any{"a": "x", "b": []any{}}}}, false},
	)
}

func TestSum(t *testing.T) {
	g := guard.Sum("_tag", map[string]guard.Guard{
		"A": guard.Type(map[string]guard.Guard{"_tag": guard.Literals([]any{"A"}), "a": guard.String}),
		"B": guard.Type(map[string]guard.Guard{"_tag": guard.Literals([]any{"B"}), "b": guard.Number}),
	})
	expect(t, "sum", g,
		check{map[string]any{"_tag": "A", "a": "a"}, true},
		check{map[string]any{"_tag": "B", "b": 1}, true},
		check{map[string]any{"_tag": "B", "a": "a"}, false},
		check{schemable.Undefined, false},
		check{map[string]any{}, false},
	)
}

// Tree is written once and applied through the interpreter.
func Tree[K any](S schemable.Schemable[K]) K {
	var self K
	self = S.Lazy("Tree", func() K {
		return S.Type(map[string]K{
			"value":    S.Number(),
			"children": S.Array(self),
		})
	})
	return self
}

func TestInterpreter(t *testing.T) {
	g := Tree[guard.Guard](guard.Interpreter)
	expect(t, "tree", g,
		check{map[string]any{"value": 1, "children": []any{map[string]any{"value": 2, "children": []any{}}}}, true},
		check{map[string]any{"value": 1}, false},
	)
}
