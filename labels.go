package schemable

import "strconv"

// Expected labels shared by the interpreters.
const (
	LabelString        = "string"
	LabelNumber        = "number"
	LabelBoolean       = "boolean"
	LabelUnknownArray  = "Array<unknown>"
	LabelUnknownRecord = "Record<string, unknown>"
	LabelNever         = "never"

	tupleLabelPrefix = "tuple of length "
)

// TupleLabel is the expected label of a tuple whose arity did not match.
func TupleLabel(n int) string { return tupleLabelPrefix + strconv.Itoa(n) }
