package schemable

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/schemable/i18n"
)

// Kind identifies a DecodeError node.
type Kind int

const (
	KindLeaf Kind = iota // Terminal rejection of a value.
	KindAnd              // Every labeled part was required and each listed one failed.
	KindOr               // Any alternative would have sufficed and all of them failed.
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindAnd:
		return "and"
	case KindOr:
		return "or"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// LabelKind tells how a Labeled error relates to the value that failed.
type LabelKind int

const (
	LabelKey    LabelKind = iota // Property name or sum tag.
	LabelIndex                   // Array or tuple position.
	LabelMember                  // Branch of an intersection or ap; not a path segment.
)

// Labeled is a sub-error of an And node.
type Labeled struct {
	Key   string
	Kind  LabelKind
	Error *DecodeError
}

// Key labels err with a property name.
func Key(key string, err *DecodeError) Labeled { return Labeled{Key: key, Kind: LabelKey, Error: err} }

// Index labels err with an array position.
func Index(i int, err *DecodeError) Labeled {
	return Labeled{Key: fmt.Sprint(i), Kind: LabelIndex, Error: err}
}

// Member labels err with the position of a combined branch.
func Member(i int, err *DecodeError) Labeled {
	return Labeled{Key: fmt.Sprint(i), Kind: LabelMember, Error: err}
}

// DecodeError is an immutable tree describing why a decode failed.
type DecodeError struct {
	Kind   Kind
	Actual any

	// Leaf
	Expected string
	Message  string

	// And
	Labeled []Labeled

	// Or
	Errors []*DecodeError
}

// Leaf builds a terminal failure: actual did not match expected. An optional
// message elaborates on it.
func Leaf(actual any, expected string, message ...string) *DecodeError {
	e := &DecodeError{Kind: KindLeaf, Actual: actual, Expected: expected}
	if len(message) > 0 {
		e.Message = message[0]
	}
	return e
}

// And combines failures of parts that were all required.
func And(actual any, errs ...Labeled) *DecodeError {
	if len(errs) == 0 {
		panic("schemable: And requires at least one error")
	}
	return &DecodeError{Kind: KindAnd, Actual: actual, Labeled: errs}
}

// Or combines failures of alternatives, in declaration order.
func Or(actual any, errs ...*DecodeError) *DecodeError {
	if len(errs) == 0 {
		panic("schemable: Or requires at least one error")
	}
	return &DecodeError{Kind: KindOr, Actual: actual, Errors: errs}
}

// CannotDecode renders the standard leaf message.
func CannotDecode(actual any, expected string) string {
	return i18n.T(i18n.KeyCannotDecode, map[string]string{"actual": FormatLiteral(actual), "expected": expected})
}

// Fold reduces the tree bottom-up.
func Fold[R any](e *DecodeError, leaf func(e *DecodeError) R, and func(e *DecodeError, parts []R) R, or func(e *DecodeError, alts []R) R) R {
	switch e.Kind {
	case KindAnd:
		parts := make([]R, len(e.Labeled))
		for i, l := range e.Labeled {
			parts[i] = Fold(l.Error, leaf, and, or)
		}
		return and(e, parts)
	case KindOr:
		alts := make([]R, len(e.Errors))
		for i, a := range e.Errors {
			alts[i] = Fold(a, leaf, and, or)
		}
		return or(e, alts)
	default:
		return leaf(e)
	}
}

// Leaves counts the terminal failures of the tree.
func (e *DecodeError) Leaves() int {
	return Fold(e,
		func(*DecodeError) int { return 1 },
		func(_ *DecodeError, parts []int) int { return sum(parts) },
		func(_ *DecodeError, alts []int) int { return sum(alts) },
	)
}

func sum(ns []int) int {
	t := 0
	for _, n := range ns {
		t += n
	}
	return t
}

// Error summarizes the first few issues of the tree.
func (e *DecodeError) Error() string {
	return "decode: " + e.Issues().Error()
}

func (e *DecodeError) leafMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return CannotDecode(e.Actual, e.Expected)
}

// Draw renders the whole tree as indented text, one node per line.
func (e *DecodeError) Draw() string {
	b := &strings.Builder{}
	e.draw(b, "")
	return strings.TrimSuffix(b.String(), "\n")
}

func (e *DecodeError) draw(b *strings.Builder, indent string) {
	switch e.Kind {
	case KindLeaf:
		b.WriteString(indent + e.leafMessage() + "\n")
	case KindAnd:
		for _, l := range e.Labeled {
			switch l.Kind {
			case LabelIndex:
				fmt.Fprintf(b, "%sindex %s\n", indent, l.Key)
			case LabelMember:
				fmt.Fprintf(b, "%smember %s\n", indent, l.Key)
			default:
				fmt.Fprintf(b, "%sproperty %q\n", indent, l.Key)
			}
			l.Error.draw(b, indent+"  ")
		}
	case KindOr:
		for i, a := range e.Errors {
			fmt.Fprintf(b, "%sunion member %d\n", indent, i)
			a.draw(b, indent+"  ")
		}
	}
}

// AsDecodeError extracts a DecodeError from err using errors.As.
func AsDecodeError(err error) (*DecodeError, bool) {
	if err == nil {
		return nil, false
	}
	var de *DecodeError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
