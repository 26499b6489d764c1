package result

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"hostbridge/internal/diagfmt"
)

// ErrAssembly marks a Result that could not be serialized or decoded.
var ErrAssembly = errors.New("result: assembly failed")

// Format selects the wire encoding.
type Format string

const (
	FormatJSON Format = "json"
	// FormatMsgpack is msgpack, base64-encoded so it fits in a string.
	FormatMsgpack Format = "msgpack"
)

// ParseFormat accepts "json" and "msgpack" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatMsgpack:
		return f, nil
	case "":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown result format %q (expected: json|msgpack)", s)
	}
}

type successWire struct {
	CompiledCode    string   `json:"compiledCode" msgpack:"compiledCode"`
	DependencyPaths []string `json:"dependencyPaths" msgpack:"dependencyPaths"`
}

type failureWire struct {
	Errors []diagfmt.Record `json:"errors" msgpack:"errors"`
}

// wire fixes the shape: exactly one of the two variants, with no null lists.
func wire(r Result) any {
	if r.Succeeded() {
		deps := r.DependencyPaths
		if deps == nil {
			deps = []string{}
		}
		return successWire{CompiledCode: *r.CompiledCode, DependencyPaths: deps}
	}
	errs := r.Errors
	if errs == nil {
		errs = []diagfmt.Record{}
	}
	return failureWire{Errors: errs}
}

// Encode serializes r into one transportable string.
func Encode(r Result, f Format) (string, error) {
	payload := wire(r)
	switch f {
	case FormatJSON, "":
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(payload); err != nil {
			return "", fmt.Errorf("%w: json: %w", ErrAssembly, err)
		}
		return strings.TrimSuffix(buf.String(), "\n"), nil
	case FormatMsgpack:
		data, err := msgpack.Marshal(payload)
		if err != nil {
			return "", fmt.Errorf("%w: msgpack: %w", ErrAssembly, err)
		}
		return base64.StdEncoding.EncodeToString(data), nil
	default:
		return "", fmt.Errorf("%w: unknown format %q", ErrAssembly, f)
	}
}

// Decode is the inverse of Encode.
func Decode(s string, f Format) (Result, error) {
	var r Result
	switch f {
	case FormatJSON, "":
		if err := json.Unmarshal([]byte(s), &r); err != nil {
			return Result{}, fmt.Errorf("%w: json: %w", ErrAssembly, err)
		}
	case FormatMsgpack:
		data, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return Result{}, fmt.Errorf("%w: base64: %w", ErrAssembly, err)
		}
		if err := msgpack.Unmarshal(data, &r); err != nil {
			return Result{}, fmt.Errorf("%w: msgpack: %w", ErrAssembly, err)
		}
	default:
		return Result{}, fmt.Errorf("%w: unknown format %q", ErrAssembly, f)
	}
	return r, nil
}
