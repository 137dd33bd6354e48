package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/kr/pretty"

	"github.com/reoring/schemable"
	"github.com/reoring/schemable/decoder"
	gen "github.com/reoring/schemable/internal/gen"
	"github.com/reoring/schemable/jsonschema"
	"github.com/reoring/schemable/source"
)

// errInvalid marks a validate run whose input was rejected.
var errInvalid = errors.New("input rejected")

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}
	err := run(os.Args[1], os.Args[2:], os.Stdout, os.Stderr)
	switch {
	case err == nil:
	case errors.Is(err, errInvalid):
		os.Exit(1)
	case errors.Is(err, flag.ErrHelp), errors.Is(err, errUsage):
		os.Exit(2)
	default:
		fatalf("%v", err)
	}
}

var errUsage = errors.New("usage")

func usage(w io.Writer) {
	fmt.Fprintln(w, "schemable CLI\n\nUsage:\n  schemable jsonschema -model m.json [-o out.json]\n  schemable validate -model m.json -input data.json [-format text|json] [-strict-keys]\n  schemable gen -model m.json -type Name [-pkg p] -o out.go\n\nModels and inputs are read as YAML when the file ends in .yaml or .yml.")
}

func run(sub string, args []string, stdout, stderr io.Writer) error {
	switch sub {
	case "jsonschema":
		return jsonSchemaCmd(args, stdout, stderr)
	case "validate":
		return validateCmd(args, stdout, stderr)
	case "gen":
		return genCmd(args, stdout, stderr)
	default:
		usage(stderr)
		return errUsage
	}
}

func newLogf(w io.Writer, verbose bool) func(string, ...any) {
	return func(format string, a ...any) {
		if verbose {
			fmt.Fprintf(w, format+"\n", a...)
		}
	}
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func loadModel(path string, logf func(string, ...any)) (*schemable.Model, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model: %w", err)
	}
	var m *schemable.Model
	if isYAML(path) {
		m, err = schemable.ParseModelYAML(b)
	} else {
		m, err = schemable.ParseModelJSON(b)
	}
	if err != nil {
		return nil, err
	}
	logf("model %s:\n%# v", path, pretty.Formatter(m))
	return m, nil
}

func writeOutput(out string, b []byte, stdout io.Writer) error {
	if out == "" {
		_, err := stdout.Write(b)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	if err := os.WriteFile(out, b, 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func jsonSchemaCmd(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("jsonschema", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var modelPath, out string
	var verbose bool
	fs.StringVar(&modelPath, "model", "", "model file (JSON or YAML)")
	fs.StringVar(&out, "o", "", "output filename (default stdout)")
	fs.BoolVar(&verbose, "v", false, "enable verbose logs")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if modelPath == "" {
		fs.Usage()
		return errUsage
	}
	logf := newLogf(stderr, verbose)

	m, err := loadModel(modelPath, logf)
	if err != nil {
		return err
	}
	b, err := schemable.Interpret[jsonschema.Builder](m, jsonschema.Interpreter)
	if err != nil {
		return err
	}
	doc, err := jsonschema.Marshal(b.Document())
	if err != nil {
		return fmt.Errorf("encoding schema: %w", err)
	}
	logf("jsonschema: %d bytes", len(doc))
	return writeOutput(out, append(doc, '\n'), stdout)
}

func validateCmd(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var modelPath, inputPath, format string
	var verbose, strictKeys bool
	fs.StringVar(&modelPath, "model", "", "model file (JSON or YAML)")
	fs.StringVar(&inputPath, "input", "", "input file (JSON or YAML)")
	fs.StringVar(&format, "format", "text", "report format: text|json")
	fs.BoolVar(&strictKeys, "strict-keys", false, "reject JSON input with duplicate object keys (not valid with YAML input)")
	fs.BoolVar(&verbose, "v", false, "enable verbose logs")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if modelPath == "" || inputPath == "" || (format != "text" && format != "json") {
		fs.Usage()
		return errUsage
	}
	if strictKeys && isYAML(inputPath) {
		fmt.Fprintln(stderr, "validate: -strict-keys applies to JSON input only")
		return errUsage
	}
	logf := newLogf(stderr, verbose)

	m, err := loadModel(modelPath, logf)
	if err != nil {
		return err
	}
	d, err := schemable.Interpret[decoder.Decoder](m, decoder.Interpreter)
	if err != nil {
		return err
	}
	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	src := source.JSONBytes(raw)
	if isYAML(inputPath) {
		src = source.YAMLBytes(raw)
	} else if strictKeys {
		dups, err := source.DuplicateKeys(raw, 0)
		if err != nil {
			return err
		}
		if len(dups) > 0 {
			return report(stdout, format, "", dups.Localize())
		}
	}
	input, err := src.Value()
	if err != nil {
		return err
	}

	_, derr := d.DecodeTree(input)
	if derr == nil {
		logf("validate: %s ok", inputPath)
		if format == "json" {
			fmt.Fprintln(stdout, `{"valid":true}`)
		} else {
			fmt.Fprintln(stdout, "ok")
		}
		return nil
	}
	return report(stdout, format, derr.Draw(), derr.Issues().Localize())
}

// report prints rejected input and returns errInvalid.
func report(stdout io.Writer, format, tree string, issues schemable.Issues) error {
	if format == "json" {
		b, err := gojson.Marshal(map[string]any{"valid": false, "issues": issues})
		if err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		var buf bytes.Buffer
		if err := gojson.Indent(&buf, b, "", "  "); err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		fmt.Fprintln(stdout, buf.String())
		return errInvalid
	}
	if tree != "" {
		fmt.Fprintln(stdout, tree)
	}
	for _, is := range issues {
		fmt.Fprintf(stdout, "%s: %s (%s)\n", is.Path, is.Message, is.Code)
	}
	return errInvalid
}

func genCmd(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("gen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var modelPath, typeName, pkg, out string
	var verbose bool
	fs.StringVar(&modelPath, "model", "", "model file (JSON or YAML)")
	fs.StringVar(&typeName, "type", "", "type name to generate")
	fs.StringVar(&pkg, "pkg", "", "package name (default: output directory name)")
	fs.StringVar(&out, "o", "", "output filename")
	fs.BoolVar(&verbose, "v", false, "enable verbose logs")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if modelPath == "" || typeName == "" || out == "" {
		fs.Usage()
		return errUsage
	}
	logf := newLogf(stderr, verbose)
	if pkg == "" {
		pkg = detectPackageName(out)
	}
	logf("gen: model=%s type=%s pkg=%s out=%s", modelPath, typeName, pkg, out)

	m, err := loadModel(modelPath, logf)
	if err != nil {
		return err
	}
	code, err := gen.RenderTypes(pkg, typeName, m)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	return writeOutput(out, code, stdout)
}

// detectPackageName uses the output directory name, or main.
func detectPackageName(out string) string {
	abs, err := filepath.Abs(filepath.Dir(out))
	if err != nil {
		return "main"
	}
	name := strings.ToLower(strings.Map(func(r rune) rune {
		if r == '-' || r == '.' {
			return '_'
		}
		return r
	}, filepath.Base(abs)))
	if name == "" || name == "/" || strings.ContainsAny(name[:1], "0123456789_") {
		return "main"
	}
	return name
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
