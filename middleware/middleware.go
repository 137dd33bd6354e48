// Package middleware validates JSON request bodies with a decoder at HTTP
// boundaries. Framework adapters live in the gin and echo submodules.
package middleware

import (
	"context"
	"fmt"
	"io"
	"net/http"

	gojson "github.com/goccy/go-json"

	"github.com/reoring/schemable"
	"github.com/reoring/schemable/decoder"
	"github.com/reoring/schemable/source"
)

type ctxKeyDecoded struct{}

// decoded boxes the value so that a decoded null is still found.
type decoded struct{ v any }

// ContextWithDecoded attaches a decoded body to the context.
func ContextWithDecoded(ctx context.Context, v any) context.Context {
	return context.WithValue(ctx, ctxKeyDecoded{}, decoded{v})
}

// DecodedFromContext retrieves the decoded body stored by ValidateJSON.
func DecodedFromContext(ctx context.Context) (any, bool) {
	d, ok := ctx.Value(ctxKeyDecoded{}).(decoded)
	return d.v, ok
}

// Options controls request decoding.
type Options struct {
	// StrictKeys rejects bodies repeating an object key.
	StrictKeys bool
	// MaxBytes bounds the body size; 0 means unlimited.
	MaxBytes int64
}

// DefaultOptions returns a recommended default for HTTP JSON boundaries:
// duplicate keys are errors and bodies are limited to 1 MiB.
func DefaultOptions() Options {
	return Options{StrictKeys: true, MaxBytes: 1 << 20}
}

// DecodeRequest reads the JSON body of r and decodes it with d. Rejected input
// is reported as schemable.Issues; read and syntax failures as plain errors.
func DecodeRequest(r *http.Request, d decoder.Decoder, opt Options) (any, error) {
	body := io.Reader(r.Body)
	if opt.MaxBytes > 0 {
		body = io.LimitReader(r.Body, opt.MaxBytes+1)
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}
	if opt.MaxBytes > 0 && int64(len(raw)) > opt.MaxBytes {
		return nil, fmt.Errorf("body exceeds %d bytes", opt.MaxBytes)
	}
	if opt.StrictKeys {
		dups, err := source.DuplicateKeys(raw, 0)
		if err != nil {
			return nil, err
		}
		if len(dups) > 0 {
			return nil, dups.Localize()
		}
	}
	input, err := source.JSONBytes(raw).Value()
	if err != nil {
		return nil, err
	}
	out, derr := d.DecodeTree(input)
	if derr != nil {
		return nil, derr.Issues().Localize()
	}
	return out, nil
}

// ErrorPayload shapes Issues for JSON responses.
func ErrorPayload(issues schemable.Issues) map[string]any {
	return map[string]any{"issues": issues}
}

// ValidateJSON decodes each request body with d, stores the result in the
// request context and calls next. Failures are answered with 400.
func ValidateJSON(d decoder.Decoder, opt Options) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			v, err := DecodeRequest(r, d, opt)
			if err != nil {
				payload := map[string]any{"error": err.Error()}
				if iss, ok := schemable.AsIssues(err); ok {
					payload = ErrorPayload(iss)
				}
				writeJSON(w, http.StatusBadRequest, payload)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithDecoded(r.Context(), v)))
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = gojson.NewEncoder(w).Encode(v)
}
