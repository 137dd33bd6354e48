// Package gen renders Go type declarations for schema Models.
package gen

import (
	"fmt"
	"go/format"
	"sort"
	"strings"
	"unicode"

	"github.com/reoring/schemable"
	ir "github.com/reoring/schemable/internal/ir"
)

// RenderTypes renders a Go file in package pkg declaring type name for m, plus
// one named type per lazy shape in m.
func RenderTypes(pkg, name string, m *schemable.Model) ([]byte, error) {
	p, err := ir.FromModel(m)
	if err != nil {
		return nil, err
	}
	return RenderProgram(pkg, name, p)
}

// RenderProgram is RenderTypes over an already lowered Model.
func RenderProgram(pkg, name string, p *ir.Program) ([]byte, error) {
	if !isIdent(name) {
		return nil, fmt.Errorf("gen: invalid type name %q", name)
	}
	var b strings.Builder
	b.WriteString("// Code generated by schemable; DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package %s\n\n", pkg)

	declared := map[string]string{}
	declare := func(goName, id string) error {
		if prev, ok := declared[goName]; ok {
			return fmt.Errorf("gen: %q and %q both map to type %s", prev, id, goName)
		}
		declared[goName] = id
		return nil
	}

	ref, rootIsRef := p.Root.(*ir.Ref)
	switch {
	case rootIsRef && exported(ref.Name) == name:
		// the lazy declaration below is the root type
	case rootIsRef:
		if err := declare(name, name); err != nil {
			return nil, err
		}
		fmt.Fprintf(&b, "type %s = %s\n\n", name, exported(ref.Name))
	default:
		if err := declare(name, name); err != nil {
			return nil, err
		}
		fmt.Fprintf(&b, "type %s %s\n\n", name, goType(p.Root))
	}
	for _, id := range schemable.SortedKeys(p.Named) {
		goName := exported(id)
		if err := declare(goName, id); err != nil {
			return nil, err
		}
		fmt.Fprintf(&b, "type %s %s\n\n", goName, goType(p.Named[id]))
	}

	out, err := format.Source([]byte(b.String()))
	if err != nil {
		return nil, fmt.Errorf("gen: format: %w", err)
	}
	return out, nil
}

func goType(s ir.Schema) string {
	switch n := s.(type) {
	case *ir.Primitive:
		switch n.Name {
		case "string":
			return "string"
		case "number":
			return "float64"
		case "boolean":
			return "bool"
		}
	case *ir.Enum:
		return enumType(n.Values)
	case *ir.Array:
		if n.Item == nil {
			return "[]any"
		}
		return "[]" + goType(n.Item)
	case *ir.Tuple:
		return fmt.Sprintf("[%d]any", len(n.Items))
	case *ir.Map:
		if n.Value == nil {
			return "map[string]any"
		}
		return "map[string]" + goType(n.Value)
	case *ir.Object:
		return structType(n)
	case *ir.Ref:
		return "*" + exported(n.Name)
	case *ir.OneOf:
		if n.Discriminator != "" {
			return sumType(n)
		}
		return variantType(n.Variants)
	}
	return "any"
}

// sumType renders a tagged union of objects as one struct: the tag field is
// required and every member field is optional. Fields whose Go types differ
// between members become any.
func sumType(u *ir.OneOf) string {
	o := &ir.Object{
		Fields:   []ir.Field{{Name: u.Discriminator, Schema: &ir.Primitive{Name: "string"}}},
		Required: map[string]struct{}{u.Discriminator: {}},
	}
	idx := map[string]int{u.Discriminator: 0}
	for _, tag := range schemable.SortedKeys(u.Mapping) {
		member, ok := u.Mapping[tag].(*ir.Object)
		if !ok {
			return "any"
		}
		for _, f := range member.Fields {
			if f.Name == u.Discriminator {
				continue
			}
			if i, ok := idx[f.Name]; ok {
				if goType(o.Fields[i].Schema) != goType(f.Schema) {
					o.Fields[i].Schema = ir.Any{}
				}
				continue
			}
			idx[f.Name] = len(o.Fields)
			o.Fields = append(o.Fields, f)
		}
	}
	sort.Slice(o.Fields, func(i, j int) bool { return o.Fields[i].Name < o.Fields[j].Name })
	return structType(o)
}

// variantType is the Go type shared by every variant, or any.
func variantType(variants []ir.Schema) string {
	typ := ""
	for _, v := range variants {
		t := goType(v)
		if typ != "" && typ != t {
			return "any"
		}
		typ = t
	}
	if typ == "" {
		return "any"
	}
	return typ
}

// enumType is the Go type shared by every value, or any.
func enumType(values []any) string {
	kind := ""
	for _, v := range values {
		var k string
		switch {
		case v == nil:
			return "any"
		case schemable.IsNumber(v):
			k = "float64"
		default:
			switch v.(type) {
			case string:
				k = "string"
			case bool:
				k = "bool"
			default:
				return "any"
			}
		}
		if kind != "" && kind != k {
			return "any"
		}
		kind = k
	}
	if kind == "" {
		return "any"
	}
	return kind
}

func structType(o *ir.Object) string {
	var b strings.Builder
	b.WriteString("struct {\n")
	used := map[string]int{}
	for _, f := range o.Fields {
		field := exported(f.Name)
		if n := used[field]; n > 0 {
			used[field] = n + 1
			field = fmt.Sprintf("%s%d", field, n+1)
		} else {
			used[field] = 1
		}
		typ := goType(f.Schema)
		tag := f.Name
		if _, req := o.Required[f.Name]; !req {
			tag += ",omitempty"
			if !nilable(typ) {
				typ = "*" + typ
			}
		}
		fmt.Fprintf(&b, "%s %s `json:%q`\n", field, typ, tag)
	}
	b.WriteString("}")
	return b.String()
}

func nilable(typ string) bool {
	return typ == "any" || strings.HasPrefix(typ, "*") || strings.HasPrefix(typ, "[]") || strings.HasPrefix(typ, "map[")
}

// exported turns a JSON name or lazy id into an exported Go identifier.
func exported(s string) string {
	var b strings.Builder
	upper := true
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	out := b.String()
	if out == "" || !unicode.IsUpper([]rune(out)[0]) {
		out = "X" + out
	}
	return out
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r != '_' && !unicode.IsLetter(r) && (i == 0 || !unicode.IsDigit(r)) {
			return false
		}
	}
	return true
}

