// Package source reads JSON and YAML input into the untyped value model that
// guards and decoders consume: map[string]any, []any, string, bool, nil and
// numbers.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// NumberMode selects how JSON numbers are represented.
type NumberMode int

const (
	// NumberJSONNumber keeps numbers as json.Number, preserving their text.
	NumberJSONNumber NumberMode = iota
	// NumberFloat64 decodes numbers to float64.
	NumberFloat64
)

// Source produces one input value.
type Source interface {
	Value() (any, error)
}

type jsonSource struct {
	r    io.Reader
	mode NumberMode
}

// JSONBytes reads a single JSON value from b. Numbers are kept as json.Number.
func JSONBytes(b []byte) Source { return jsonSource{r: bytes.NewReader(b)} }

// JSONReader reads a single JSON value from r.
func JSONReader(r io.Reader) Source { return jsonSource{r: r} }

// WithNumberMode changes the number representation of a JSON source. Other
// sources are returned unchanged.
func WithNumberMode(s Source, mode NumberMode) Source {
	if js, ok := s.(jsonSource); ok {
		js.mode = mode
		return js
	}
	return s
}

func (s jsonSource) Value() (any, error) {
	dec := gojson.NewDecoder(s.r)
	if s.mode == NumberJSONNumber {
		dec.UseNumber()
	}
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("source: json: %w", err)
	}
	// exactly one value
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, errors.New("source: json: trailing data after value")
	}
	return v, nil
}

type yamlSource struct {
	b []byte
}

// YAMLBytes reads the first YAML document of b. Mappings become
// map[string]any; non-string keys are dropped.
func YAMLBytes(b []byte) Source { return yamlSource{b: b} }

func (s yamlSource) Value() (any, error) {
	var v any
	if err := yaml.Unmarshal(s.b, &v); err != nil {
		return nil, fmt.Errorf("source: yaml: %w", err)
	}
	return normalizeYAML(v), nil
}

// YAMLDocuments reads every document of a multi-document YAML stream.
func YAMLDocuments(b []byte) ([]any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	var docs []any
	for {
		var node any
		if err := dec.Decode(&node); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("source: yaml document %d: %w", len(docs), err)
		}
		docs = append(docs, normalizeYAML(node))
	}
	return docs, nil
}

func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = normalizeYAML(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			out[ks] = normalizeYAML(vv)
		}
		return out
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = normalizeYAML(t[i])
		}
		return arr
	default:
		return v
	}
}
