package parametric

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes. Built-in validators use their registry name as the code, so the
// values below double as the names they are registered under.
const (
	CodeRequired      = "required"
	CodePresent       = "present"
	CodeInvalidType   = "invalid_type"
	CodeInvalidFormat = "format"
	CodeInvalidEmail  = "email"
	CodeInvalidEnum   = "options"
	CodeTooSmall      = "gt"
	CodeInvalidUUID   = "uuid"
	// CodeCustom is used for validators attached without a registry name.
	CodeCustom = "custom"
)

// Declaration errors. They are returned from Build and never deferred to
// resolution.
var (
	ErrUnknownFilter    = errors.New("parametric: no filter registered")
	ErrUnknownValidator = errors.New("parametric: no validator registered")
	ErrUnknownPolicy    = errors.New("parametric: no policy registered")
	ErrInvalidArgs      = errors.New("parametric: invalid arguments")
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string `json:"path" yaml:"path"` // JSON Pointer (for example: /items/2/price).
	Code    string `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
	// Params carries structured parameters (e.g., {"options": [...], "got": "c"})
	// for i18n and observability.
	Params map[string]any `json:"params,omitempty" yaml:"params,omitempty"`
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
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. /email: is required
		fmt.Fprintf(b, "%s: %s", it.Path, it.Message)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Err returns the issues as an error, or nil when there are none. Resolution
// never fails on its own; callers decide whether issues mean failure.
func (iss Issues) Err() error {
	if len(iss) == 0 {
		return nil
	}
	return iss
}

// ByPath groups messages by path, preserving the order in which they were
// recorded for each path.
func (iss Issues) ByPath() map[string][]string {
	out := make(map[string][]string, len(iss))
	for _, it := range iss {
		out[it.Path] = append(out[it.Path], it.Message)
	}
	return out
}

// Messages returns the messages recorded at path.
func (iss Issues) Messages(path string) []string {
	var out []string
	for _, it := range iss {
		if it.Path == path {
			out = append(out, it.Message)
		}
	}
	return out
}

// Has reports whether any issue was recorded at path.
func (iss Issues) Has(path string) bool {
	for _, it := range iss {
		if it.Path == path {
			return true
		}
	}
	return false
}

// Paths lists distinct paths in first-seen order.
func (iss Issues) Paths() []string {
	var out []string
	seen := make(map[string]struct{}, len(iss))
	for _, it := range iss {
		if _, ok := seen[it.Path]; ok {
			continue
		}
		seen[it.Path] = struct{}{}
		out = append(out, it.Path)
	}
	return out
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
