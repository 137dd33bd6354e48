package schemable

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/schemable/i18n"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType   = "invalid_type"
	CodeInvalidValue  = "invalid_value"
	CodeInvalidLength = "invalid_length"
	CodeNever         = "never"

	// CodeDuplicateKey is reported by source.DuplicateKeys, not by decoders.
	CodeDuplicateKey = "duplicate_key"
)

// Issue is one terminal failure of a DecodeError, located by JSON Pointer.
type Issue struct {
	Path     string `json:"path"` // JSON Pointer (for example: /items/2/price).
	Code     string `json:"code"` // One of the codes listed above.
	Message  string `json:"message"`
	Expected string `json:"expected"`
	Actual   any    `json:"actual"`
	// Params carries structured parameters (e.g., {"alternative": 1}) for i18n
	// and observability.
	Params map[string]any `json:"params,omitempty"`
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /path
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AsIssues extracts Issues from an error using errors.As internally. A
// DecodeError is flattened on the way.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	if de, ok := AsDecodeError(err); ok {
		return de.Issues(), true
	}
	return nil, false
}

// Issues flattens the tree into one Issue per leaf, in tree order. Key and
// index labels extend the path; member labels do not. Leaves reached through an
// Or carry the position of their alternative in Params["alternative"].
func (e *DecodeError) Issues() Issues {
	out := Issues{}
	e.collect(Root(), nil, &out)
	return out
}

func (e *DecodeError) collect(p PathRef, alt []int, out *Issues) {
	switch e.Kind {
	case KindLeaf:
		code := leafCode(e)
		it := Issue{
			Path:     p.Pointer(),
			Code:     code,
			Message:  e.leafMessage(),
			Expected: e.Expected,
			Actual:   e.Actual,
		}
		if len(alt) > 0 {
			it.Params = map[string]any{"alternative": alt[len(alt)-1], "alternatives": append([]int(nil), alt...)}
		}
		*out = append(*out, it)
	case KindAnd:
		for _, l := range e.Labeled {
			switch l.Kind {
			case LabelKey:
				l.Error.collect(p.Field(l.Key), alt, out)
			case LabelIndex:
				l.Error.collect(p.Segment(l.Key), alt, out)
			default:
				l.Error.collect(p, alt, out)
			}
		}
	case KindOr:
		for i, a := range e.Errors {
			a.collect(p, append(append([]int(nil), alt...), i), out)
		}
	}
}

func leafCode(e *DecodeError) string {
	switch {
	case e.Expected == LabelNever:
		return CodeNever
	case strings.HasPrefix(e.Expected, tupleLabelPrefix):
		return CodeInvalidLength
	}
	switch e.Expected {
	case LabelString, LabelNumber, LabelBoolean, LabelUnknownArray, LabelUnknownRecord:
		return CodeInvalidType
	}
	return CodeInvalidValue
}

// Localize returns a copy of the issues with default messages replaced by the
// current translator's wording for their code. Messages supplied by a leaf
// (refinement reasons, sum tag notes) are kept as they are.
func (iss Issues) Localize() Issues {
	out := make(Issues, len(iss))
	for i, it := range iss {
		data := map[string]string{"expected": it.Expected, "actual": FormatLiteral(it.Actual)}
		if it.Message == "" || it.Message == CannotDecode(it.Actual, it.Expected) || it.Message == i18n.T(it.Code, data) {
			it.Message = i18n.T(it.Code, data)
		}
		out[i] = it
	}
	return out
}
