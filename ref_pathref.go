package schemable

import (
	"strconv"
	"strings"
)

// PathRef builds JSON Pointer paths in a chain-safe way.
type PathRef interface {
	Field(name string) PathRef
	Index(i int) PathRef
	Segment(raw string) PathRef
	Pointer() string
}

// Root returns the empty path.
func Root() PathRef { return &pathRef{parts: nil} }

type pathRef struct {
	parts []string
}

func (p *pathRef) Field(name string) PathRef {
	// escape '~' -> '~0', '/' -> '~1' per RFC6901
	esc := strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
	return p.Segment(esc)
}

func (p *pathRef) Index(i int) PathRef { return p.Segment(strconv.Itoa(i)) }

func (p *pathRef) Segment(raw string) PathRef {
	return &pathRef{parts: append(append([]string{}, p.parts...), raw)}
}

func (p *pathRef) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.parts, "/")
}
