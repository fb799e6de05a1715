// Package source decodes raw payloads (JSON or YAML) into the plain Go values
// a Schema or Params resolves: map[string]any, []any, string, float64/int,
// bool and nil.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	j "github.com/goccy/go-json"
)

// ErrTrailingData is returned when a JSON input holds more than one value.
var ErrTrailingData = errors.New("source: trailing data after JSON value")

// DecodeJSON decodes a single JSON value. Numbers decode as float64.
func DecodeJSON(b []byte) (any, error) {
	return DecodeJSONReader(bytes.NewReader(b))
}

// DecodeJSONReader decodes a single JSON value from r.
func DecodeJSONReader(r io.Reader) (any, error) {
	dec := j.NewDecoder(r)
	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("source: empty JSON input: %w", err)
		}
		return nil, fmt.Errorf("source: decode JSON: %w", err)
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, ErrTrailingData
	}
	return v, nil
}

// Decode sniffs data: a document starting with '{' or '[' is JSON, anything
// else is YAML.
func Decode(data []byte) (any, error) {
	if IsJSON(data) {
		return DecodeJSON(data)
	}
	return DecodeYAML(data)
}

// IsJSON reports whether data looks like a JSON object or array.
func IsJSON(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[')
}
