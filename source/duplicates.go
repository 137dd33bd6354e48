package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	gojson "github.com/goccy/go-json"

	"github.com/reoring/schemable"
)

// The untyped value model keeps the last of two equal object keys, so a
// duplicate is only visible in the token stream.

type frameKind int

const (
	frameObject frameKind = iota
	frameArray
)

type frame struct {
	kind         frameKind
	keys         map[string]struct{}
	expectingKey bool
	key          string
	index        int
}

// DuplicateKeys scans a JSON document and reports every object key that
// appears twice in the same object. maxIssues <= 0 means unlimited.
func DuplicateKeys(b []byte, maxIssues int) (schemable.Issues, error) {
	dec := gojson.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var issues schemable.Issues
	var stack []*frame

	// valueDone advances the enclosing container past one complete value.
	valueDone := func() {
		if len(stack) == 0 {
			return
		}
		top := stack[len(stack)-1]
		if top.kind == frameArray {
			top.index++
		} else {
			top.expectingKey = true
		}
	}
	// path locates the member currently read by the innermost container.
	path := func() schemable.PathRef {
		p := schemable.Root()
		for _, f := range stack[:len(stack)-1] {
			if f.kind == frameArray {
				p = p.Index(f.index)
			} else {
				p = p.Field(f.key)
			}
		}
		return p
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return issues, fmt.Errorf("source: json: %w", err)
		}
		switch v := tok.(type) {
		case gojson.Delim:
			switch v {
			case '{':
				stack = append(stack, &frame{kind: frameObject, keys: map[string]struct{}{}, expectingKey: true})
			case '[':
				stack = append(stack, &frame{kind: frameArray})
			case '}', ']':
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
				valueDone()
			}
		case string:
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.kind == frameObject && top.expectingKey {
					if _, seen := top.keys[v]; seen {
						issues = append(issues, schemable.Issue{
							Path:    path().Field(v).Pointer(),
							Code:    schemable.CodeDuplicateKey,
							Message: "duplicate key " + schemable.FormatLiteral(v),
							Actual:  v,
						})
						if maxIssues > 0 && len(issues) >= maxIssues {
							return issues, nil
						}
					}
					top.keys[v] = struct{}{}
					top.key = v
					top.expectingKey = false
					continue
				}
			}
			valueDone()
		default:
			valueDone()
		}
	}
	if len(stack) > 0 {
		return issues, errors.New("source: json: unexpected end of input")
	}
	return issues, nil
}
