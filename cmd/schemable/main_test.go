package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/reoring/schemable/jsonschema"
)

const personModel = `{
  "_tag": "type",
  "properties": {
    "name": {"_tag": "string"},
    "age": {"_tag": "number"},
    "role": {"_tag": "literals", "values": ["admin", "user"]}
  }
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestRun_JSONSchema(t *testing.T) {
	dir := t.TempDir()
	model := writeFile(t, dir, "person.json", personModel)
	var stdout, stderr bytes.Buffer
	if err := run("jsonschema", []string{"-model", model}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v\n%s", err, stderr.String())
	}
	doc, err := jsonschema.Parse(stdout.Bytes())
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if doc.Schema != jsonschema.Draft07 || doc.Type != "object" || len(doc.Required) != 3 {
		t.Fatalf("unexpected document:\n%s", stdout.String())
	}
}

func TestRun_ValidateYAMLModel(t *testing.T) {
	dir := t.TempDir()
	model := writeFile(t, dir, "person.yaml", "_tag: type\nproperties:\n  name:\n    _tag: string\n  age:\n    _tag: number\n")
	good := writeFile(t, dir, "good.yaml", "name: a\nage: 3\n")
	bad := writeFile(t, dir, "bad.json", `{"name": 1}`)

	var stdout, stderr bytes.Buffer
	if err := run("validate", []string{"-model", model, "-input", good}, &stdout, &stderr); err != nil {
		t.Fatalf("valid input rejected: %v\n%s", err, stdout.String())
	}
	if strings.TrimSpace(stdout.String()) != "ok" {
		t.Fatalf("unexpected output: %q", stdout.String())
	}

	stdout.Reset()
	err := run("validate", []string{"-model", model, "-input", bad, "-format", "json"}, &stdout, &stderr)
	if !errors.Is(err, errInvalid) {
		t.Fatalf("expected errInvalid, got %v", err)
	}
	out := stdout.String()
	for _, want := range []string{`"valid": false`, `"path": "/age"`, `"path": "/name"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %s in:\n%s", want, out)
		}
	}

	stdout.Reset()
	if err := run("validate", []string{"-model", model, "-input", bad}, &stdout, &stderr); !errors.Is(err, errInvalid) {
		t.Fatalf("expected errInvalid, got %v", err)
	}
	if !strings.Contains(stdout.String(), "Cannot decode 1, expected string") {
		t.Fatalf("text report should draw the tree:\n%s", stdout.String())
	}
}

func TestRun_Gen(t *testing.T) {
	dir := t.TempDir()
	model := writeFile(t, dir, "person.json", personModel)
	out := filepath.Join(dir, "people", "person_gen.go")
	var stdout, stderr bytes.Buffer
	if err := run("gen", []string{"-model", model, "-type", "Person", "-o", out, "-v"}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v\n%s", err, stderr.String())
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	code := string(b)
	for _, want := range []string{"package people", "type Person struct", "`json:\"age\"`"} {
		if !strings.Contains(code, want) {
			t.Fatalf("missing %q in:\n%s", want, code)
		}
	}
	if !strings.Contains(stderr.String(), "gen: model=") {
		t.Fatalf("verbose log expected, got %q", stderr.String())
	}
}

func TestRun_Usage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run("nope", nil, &stdout, &stderr); !errors.Is(err, errUsage) {
		t.Fatalf("expected errUsage, got %v", err)
	}
	if err := run("validate", []string{"-model", "m.json"}, &stdout, &stderr); !errors.Is(err, errUsage) {
		t.Fatalf("expected errUsage, got %v", err)
	}
}

func TestRun_StrictKeysRejectsYAMLInput(t *testing.T) {
	dir := t.TempDir()
	model := writeFile(t, dir, "m.json", `{"_tag": "record", "codomain": {"_tag": "number"}}`)
	input := writeFile(t, dir, "in.yaml", "a: 1\n")

	var stdout, stderr bytes.Buffer
	err := run("validate", []string{"-model", model, "-input", input, "-strict-keys"}, &stdout, &stderr)
	if !errors.Is(err, errUsage) {
		t.Fatalf("expected errUsage, got %v", err)
	}
	if !strings.Contains(stderr.String(), "JSON input only") {
		t.Fatalf("unexpected stderr: %q", stderr.String())
	}
}

func TestDetectPackageName(t *testing.T) {
	cases := map[string]string{
		"x/my-pkg/a.go": "my_pkg",
		"x/v1.2/a.go":   "v1_2",
		"x/9lives/a.go": "main",
	}
	for in, want := range cases {
		if got := detectPackageName(in); got != want {
			t.Fatalf("%s: got %q, want %q", in, got, want)
		}
	}
}

func TestRun_ValidateStrictKeys(t *testing.T) {
	dir := t.TempDir()
	model := writeFile(t, dir, "m.json", `{"_tag": "record", "codomain": {"_tag": "number"}}`)
	input := writeFile(t, dir, "in.json", `{"a": 1, "a": 2}`)

	var stdout, stderr bytes.Buffer
	if err := run("validate", []string{"-model", model, "-input", input}, &stdout, &stderr); err != nil {
		t.Fatalf("duplicates are accepted by default: %v", err)
	}
	stdout.Reset()
	err := run("validate", []string{"-model", model, "-input", input, "-strict-keys"}, &stdout, &stderr)
	if !errors.Is(err, errInvalid) {
		t.Fatalf("expected errInvalid, got %v", err)
	}
	if want := `/a: duplicate key "a" (duplicate_key)`; !strings.Contains(stdout.String(), want) {
		t.Fatalf("missing %q in:\n%s", want, stdout.String())
	}
}
